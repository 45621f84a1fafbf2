// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtTXT  = ".txt"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("no text could be extracted")
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	tabTag       = regexp.MustCompile(`<w:tab\s*/>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

// Ext returns the lowercased extension of a file name.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Supported reports whether ext (with the leading dot) can be extracted.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtPDF, ExtDOCX, ExtTXT:
		return true
	}
	return false
}

// Uploadable reports whether ext is accepted as an uploaded resume.
func Uploadable(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtPDF, ExtDOCX:
		return true
	}
	return false
}

// Text extracts the text of a document. The extension selects the parser.
func Text(data []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(ext) {
	case ExtPDF:
		text, err = pdfText(data)
	case ExtDOCX:
		text, err = docxText(data)
	case ExtTXT:
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}

	return text, nil
}

func pdfText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return xmlToText(doc.Editable().GetContent()), nil
}

// xmlToText flattens WordprocessingML into lines, one per paragraph.
func xmlToText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tabTag.ReplaceAllString(content, " ")
	content = anyTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
