package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	summaryout "lumina/internal/modules/summary/port/out"
)

type PDFTextExtractor struct{}

func NewPDFTextExtractor() summaryout.TextExtractor {
	return &PDFTextExtractor{}
}

func (e *PDFTextExtractor) Text(_ context.Context, path string, maxPages int) (string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	if maxPages > 0 && total > maxPages {
		total = maxPages
	}
	var parts []string
	for n := 1; n <= total; n++ {
		page := doc.Page(n)
		if page.V.IsNull() {
			continue
		}
		for _, text := range page.Content().Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
	}
	return strings.Join(parts, " "), nil
}
