package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go &amp; Python</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestTextPlain(t *testing.T) {
	got, err := Text([]byte("hello resume"), ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "hello resume", got)
}

func TestTextUnsupported(t *testing.T) {
	_, err := Text([]byte("data"), ".rtf")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), ".rtf")
}

func TestTextEmpty(t *testing.T) {
	_, err := Text([]byte(" \n\t"), ExtTXT)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestTextInvalidPDF(t *testing.T) {
	_, err := Text([]byte("definitely not a pdf"), ExtPDF)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestTextDocx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": relsXML,
	})

	got, err := Text(data, ExtDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go & Python", got)
}

func TestTextDocxWithoutBody(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/_rels/document.xml.rels": relsXML})

	_, err := Text(data, ExtDOCX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read docx")
}

func TestTextDocxNotZip(t *testing.T) {
	_, err := Text([]byte("plain"), ExtDOCX)
	require.Error(t, err)
}

func TestSupported(t *testing.T) {
	tests := []struct {
		ext        string
		supported  bool
		uploadable bool
	}{
		{ext: ".pdf", supported: true, uploadable: true},
		{ext: ".DOCX", supported: true, uploadable: true},
		{ext: ".txt", supported: true, uploadable: false},
		{ext: ".doc", supported: false, uploadable: false},
		{ext: "", supported: false, uploadable: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.supported, Supported(tt.ext), tt.ext)
		assert.Equal(t, tt.uploadable, Uploadable(tt.ext), tt.ext)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".pdf", Ext("CV.Final.PDF"))
	assert.Equal(t, "", Ext("resume"))
}
