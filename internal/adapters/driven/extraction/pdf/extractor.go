// Package pdf provides a text extraction adapter for PDF uploads.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
	"github.com/futureyou-labs/careerindex/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF bytes.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text content of the PDF. A file that cannot
// be parsed, or that parses to no usable text, fails with
// domain.ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The reader panics on some malformed xref/object structures rather
	// than returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parsing PDF: %v", domain.ErrExtraction, r)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrExtraction)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing PDF: %v", domain.ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: reading PDF text: %v", domain.ErrExtraction, err)
	}

	content, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: reading PDF text: %v", domain.ErrExtraction, err)
	}

	text = string(content)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: PDF contains no text", domain.ErrExtraction)
	}

	return text, nil
}
