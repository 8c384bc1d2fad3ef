// Package chunker provides deterministic fixed-size text chunking with
// overlap. Chunking is pure: identical input and configuration always
// yield the identical sequence of chunks.
package chunker

import (
	"fmt"
	"strings"
)

// DefaultSize is the default window size in words.
const DefaultSize = 500

// DefaultOverlap is the default number of overlapping words between
// consecutive windows.
const DefaultOverlap = 50

// Chunker splits text into overlapping word windows. Windows advance by
// size - overlap words; the last window may be shorter than size.
type Chunker struct {
	size    int
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithSize sets the window size in words.
func WithSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a Chunker. Configuration is fixed per deployment, not per
// call; size must be strictly greater than overlap.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= c.overlap {
		return nil, fmt.Errorf("chunker: size %d must exceed overlap %d", c.size, c.overlap)
	}

	return c, nil
}

// Size returns the configured window size in words.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into overlapping word windows. Empty or
// whitespace-only input yields zero chunks; callers treat that as a
// failure condition, not a valid document.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	stride := c.size - c.overlap
	chunks := make([]string, 0, (len(words)/stride)+1)

	for start := 0; start < len(words); start += stride {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks
}
