package out

import "context"

// Summarizer is the remote text-in, summary-out capability.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TextExtractor pulls plain text out of a spooled document, up to maxPages
// pages.
type TextExtractor interface {
	Text(ctx context.Context, path string, maxPages int) (string, error)
}
