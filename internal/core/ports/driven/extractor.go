package driven

import "context"

// TextExtractor obtains plain text from uploaded file bytes.
// The core consumes raw byte decoding purely through this contract;
// a file with no usable text fails with domain.ErrExtraction.
type TextExtractor interface {
	// Extract returns the plain text content of the file.
	Extract(ctx context.Context, data []byte) (string, error)
}
