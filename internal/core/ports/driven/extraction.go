package driven

import "context"

// ExtractedPage is one page of text returned by the extraction service.
type ExtractedPage struct {
	// PageNumber is the 1-based page index.
	PageNumber int

	// Content is the extracted page text.
	Content string
}

// TextExtractor converts rich binary documents (PDF, slide decks) into
// ordered page text via an external extraction service. Any failure is
// treated by the pipeline as "skip this node, non-fatal".
type TextExtractor interface {
	// SupportsMediaType reports whether the extractor can handle the
	// declared media type.
	SupportsMediaType(mediaType string) bool

	// ExtractPages converts raw bytes into ordered pages of text.
	ExtractPages(ctx context.Context, data []byte, mediaType string) ([]ExtractedPage, error)
}
