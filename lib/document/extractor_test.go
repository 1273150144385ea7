package document

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.Nil(t, err)
	_, err = f.Write([]byte(documentXML))
	require.Nil(t, err)
	require.Nil(t, w.Close())
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	t.Run(`txt check`, func(t *testing.T) {
		text, err := Extract("resume.TXT", []byte("Иван Петров\r\n\r\n\r\nGo разработчик  \n"))
		require.Nil(t, err)
		require.Equal(t, "Иван Петров\n\nGo разработчик", text)
	})

	t.Run(`invalid utf8 txt check`, func(t *testing.T) {
		_, err := Extract("resume.txt", []byte{0xff, 0xfe, 0x00})
		require.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run(`docx check`, func(t *testing.T) {
		body := buildDocx(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Senior Go</w:t></w:r><w:r><w:t xml:space="preserve"> Developer</w:t></w:r></w:p>
<w:p><w:r><w:t>Требования:</w:t><w:tab/><w:t>PostgreSQL</w:t></w:r></w:p>
</w:body>
</w:document>`)
		text, err := Extract("vacancy.docx", body)
		require.Nil(t, err)
		require.Equal(t, "Senior Go Developer\nТребования:\tPostgreSQL", text)
	})

	t.Run(`docx without document part check`, func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		_, err := w.Create("other.xml")
		require.Nil(t, err)
		require.Nil(t, w.Close())
		_, err = Extract("vacancy.docx", buf.Bytes())
		require.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run(`broken docx check`, func(t *testing.T) {
		_, err := Extract("vacancy.docx", []byte("not a zip"))
		require.NotNil(t, err)
		require.False(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run(`unsupported format check`, func(t *testing.T) {
		_, err := Extract("photo.png", []byte{1, 2, 3})
		require.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run(`broken pdf check`, func(t *testing.T) {
		_, err := Extract("resume.pdf", []byte("%PDF-1.4 broken"))
		require.NotNil(t, err)
	})
}
