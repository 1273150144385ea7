package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	interviewapimodels "mock-interview-backend/models/api/interview"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	unicodeFont  = "Arial"
	fallbackFont = "Helvetica"
)

// GenerateTranscript формирует pdf со стенограммой интервью.
// Если в fontDir нет Arial.ttf, используется встроенный шрифт без поддержки кириллицы.
func GenerateTranscript(fontDir string, data interviewapimodels.ExportData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateTranscript panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	family, tr := setupFonts(pdf, fontDir)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// заголовок
	pdf.SetFont(family, "B", 16)
	pdf.MultiCell(0, 8, tr(fmt.Sprintf("Стенограмма интервью: %v", data.Title)), "", "L", false)
	pdf.SetFont(family, "", 10)
	if !data.CreatedAt.IsZero() {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Начато: %v", data.CreatedAt.Format("02.01.2006 15:04"))), "", 1, "L", false, 0, "")
	}
	if !data.CompletedAt.IsZero() {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Завершено: %v", data.CompletedAt.Format("02.01.2006 15:04"))), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, turn := range data.Turns {
		pdf.SetFont(family, "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %v", turn.QuestionIndex+1, turn.QuestionText)), "", "L", false)
		pdf.SetFont(family, "", 11)
		answer := turn.TranscriptText
		if strings.TrimSpace(answer) == "" {
			answer = "(нет ответа)"
		}
		pdf.MultiCell(0, 6, tr("Ответ: "+answer), "", "L", false)
		if turn.FeedbackText != "" {
			pdf.SetFont(family, "I", 11)
			pdf.MultiCell(0, 6, tr("Обратная связь: "+turn.FeedbackText), "", "L", false)
		}
		pdf.Ln(3)
	}

	if data.Report != "" {
		pdf.Ln(2)
		pdf.SetFont(family, "B", 13)
		pdf.CellFormat(0, 8, tr("Итоговый анализ"), "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 6, tr(data.Report), "", "L", false)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupFonts(pdf *fpdf.Fpdf, fontDir string) (family string, tr func(string) string) {
	if fontDir != "" {
		if _, err := os.Stat(filepath.Join(fontDir, "Arial.ttf")); err == nil {
			for style, file := range map[string]string{
				"":  "Arial.ttf",
				"B": "Arial Bold.ttf",
				"I": "Arial Italic.ttf",
			} {
				if _, err := os.Stat(filepath.Join(fontDir, file)); err != nil {
					file = "Arial.ttf"
				}
				pdf.AddUTF8Font(unicodeFont, style, file)
			}
			return unicodeFont, func(s string) string { return s }
		}
	}
	return fallbackFont, pdf.UnicodeTranslatorFromDescriptor("")
}
