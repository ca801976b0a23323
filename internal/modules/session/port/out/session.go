package out

import (
	"context"

	"lumina/internal/modules/session/domain"
)

// Rasterizer is the external page-image capability: page count plus
// "render page N at scale S". Failures are terminal for the session that
// requested them; the core never retries.
type Rasterizer interface {
	PageCount(ctx context.Context, path string) (int, error)
	RenderPage(ctx context.Context, path string, page int, scale float64) (domain.Page, error)
}
