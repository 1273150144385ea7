package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

var ErrUnsupportedFormat = errors.New("неподдерживаемый формат документа")

// Extract извлекает текст из pdf, docx или txt
func Extract(fileName string, body []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err = extractPDF(body)
	case ".docx":
		text, err = extractDOCX(body)
	case ".txt", ".md":
		if !utf8.Valid(body) {
			return "", errors.Wrap(ErrUnsupportedFormat, "текстовый файл не в кодировке UTF-8")
		}
		text = string(body)
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "файл: %v", fileName)
	}
	if err != nil {
		return "", err
	}
	return normalize(text), nil
}

// extractPDF парсер паникует на части поврежденных файлов, паника превращается в ошибку
func extractPDF(body []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ошибка чтения pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения pdf")
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "ошибка извлечения текста из pdf")
	}
	var buf bytes.Buffer
	if _, err = buf.ReadFrom(plain); err != nil {
		return "", errors.Wrap(err, "ошибка извлечения текста из pdf")
	}
	return buf.String(), nil
}

const docxMainPart = "word/document.xml"

func extractDOCX(body []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения docx")
	}
	for _, f := range archive.File {
		if f.Name != docxMainPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errors.Wrap(err, "ошибка чтения docx")
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "в архиве нет %v", docxMainPart)
}

// parseDocumentXML собирает текст из элементов w:t, абзацы w:p разделяются переводом строки
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "ошибка разбора docx")
		}
		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}
	return sb.String(), nil
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if blank || len(result) == 0 {
				continue
			}
			blank = true
			result = append(result, "")
			continue
		}
		blank = false
		result = append(result, line)
	}
	return strings.TrimSpace(strings.Join(result, "\n"))
}
