// Package pdf extracts plain text from uploaded PDF bytes.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Extractor interface {
	Extract(raw []byte) (string, error)
}

type extractor struct{}

func NewExtractor() Extractor {
	return extractor{}
}

// Extract concatenates the plain text of every page, separated by a
// newline. A page that fails to render contributes an empty string
// instead of failing the document; only an unreadable file is an error.
func (extractor) Extract(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	parts := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			parts = append(parts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}
