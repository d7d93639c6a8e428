package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

var (
	// ErrUnsupportedMediaType indicates a declared content type this
	// extractor does not handle.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrCorruptInput indicates the payload could not be parsed as the
	// declared type at all.
	ErrCorruptInput = errors.New("corrupt input")
)

// Extractor converts a raw binary payload into normalized plain text.
// Implementations must be pure: no I/O, deterministic for identical bytes.
type Extractor interface {
	Extract(data []byte, contentType string) (string, error)
}

// PDFExtractor extracts text from PDF payloads using github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// Extract parses the payload as a PDF and concatenates per-page text with a
// newline separator, in page order. A page with no extractable text
// contributes an empty string; it is never an error on its own.
func (PDFExtractor) Extract(data []byte, contentType string) (string, error) {
	if normalizeContentType(contentType) != mimePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptInput, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that yields nothing is an empty contribution,
			// not a failed extraction.
			pages = append(pages, "")
			continue
		}
		// The library prefixes each page's text with a newline; strip it
		// so the join below is the only page separator.
		pages = append(pages, strings.TrimPrefix(text, "\n"))
	}

	return strings.Join(pages, "\n"), nil
}

func normalizeContentType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}

var _ Extractor = PDFExtractor{}
