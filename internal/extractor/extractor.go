// Package extractor turns uploaded document bytes into raw text, named
// sections, and an analysis summary.
package extractor

import (
	"bytes"
	"context"
	"errors"
)

// MaxFileSize is the upload cap. Oversized input is rejected before any
// parsing begins.
const MaxFileSize = 10 * 1024 * 1024

var (
	// ErrTooLarge reports an upload exceeding MaxFileSize.
	ErrTooLarge = errors.New("file exceeds maximum size of 10MB")
	// ErrUnparseable reports a document whose bytes could not be parsed.
	ErrUnparseable = errors.New("document could not be parsed")
)

// Extraction is the raw result of the extraction boundary: full text
// plus page count and source-specific metadata.
type Extraction struct {
	Text     string
	Pages    int
	Metadata map[string]string
}

// Extractor yields raw text and a page count from document bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Extraction, error)
}

// ForData picks an extractor based on content sniffing: PDF bytes go to
// the PDF extractor, anything else is treated as plain text.
func ForData(data []byte) Extractor {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return NewPDFExtractor()
	}
	return PlainTextExtractor{}
}

// PlainTextExtractor treats the upload as UTF-8 text with one page.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(_ context.Context, data []byte) (*Extraction, error) {
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}
	return &Extraction{
		Text:     string(data),
		Pages:    1,
		Metadata: map[string]string{"format": "text"},
	}, nil
}
