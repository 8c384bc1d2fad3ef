package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureyou-labs/careerindex/internal/core/domain"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestExtract_EmptyInput(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_NotAPDF(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), []byte("plain text, not a PDF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_TruncatedPDF(t *testing.T) {
	extractor := New()

	// A PDF header without a body or xref table is not parseable.
	_, err := extractor.Extract(context.Background(), []byte("%PDF-1.4\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_CorruptCrossReference(t *testing.T) {
	extractor := New()

	// A structurally valid envelope whose xref entry for object 2 points
	// at object 1's bytes. Resolving the Pages reference makes the
	// reader panic instead of returning an error; Extract must turn
	// that into ErrExtraction.
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	objOffset := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 3\n")
	buf.WriteString("0000000000 65535 f \n")
	fmt.Fprintf(&buf, "%010d 00000 n \n", objOffset)
	fmt.Fprintf(&buf, "%010d 00000 n \n", objOffset)
	buf.WriteString("trailer\n<< /Size 3 /Root 1 0 R >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := extractor.Extract(context.Background(), buf.Bytes())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_CancelledContext(t *testing.T) {
	extractor := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, []byte("%PDF-1.4\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
