package docsystem

import (
	"context"
	"io"
)

// PDFConverter turns a document's bytes into a PDF rendition.
// The filename carries the source extension the converter dispatches on.
//
// Implementations should be stateless and thread-safe.
type PDFConverter interface {
	// ConvertToPDF returns the PDF bytes.
	// Fails with domain.ErrConfigurationMissing before any I/O when the
	// converter has no credentials, domain.ErrConversionFailed otherwise.
	ConvertToPDF(ctx context.Context, filename string, content io.Reader) ([]byte, error)

	// Name returns a human-readable converter name for logging/debugging.
	Name() string
}

// PDFRendition is a converted document ready to be served inline
type PDFRendition struct {
	Filename string
	Content  []byte
}
