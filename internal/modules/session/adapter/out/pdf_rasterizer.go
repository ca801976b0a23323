package out

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"rsc.io/pdf"

	"lumina/internal/modules/session/domain"
	sessionout "lumina/internal/modules/session/port/out"
)

// Fallback page geometry (US Letter in PDF points) for pages without a
// resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PDFRasterizer renders pages of a spooled PDF to bitmaps. pdfcpu does the
// structural work (page count, which also rejects corrupt files); page
// content is drawn from the positioned text runs and then upscaled for
// sharpness.
type PDFRasterizer struct{}

func NewPDFRasterizer() sessionout.Rasterizer {
	return &PDFRasterizer{}
}

func (r *PDFRasterizer) PageCount(_ context.Context, path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return count, nil
}

func (r *PDFRasterizer) RenderPage(ctx context.Context, path string, pageNum int, scale float64) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Page{}, fmt.Errorf("open pdf: %w", err)
	}
	if pageNum < 1 || pageNum > doc.NumPage() {
		return domain.Page{}, fmt.Errorf("page %d out of range 1..%d", pageNum, doc.NumPage())
	}
	page := doc.Page(pageNum)
	if page.V.IsNull() {
		return domain.Page{}, fmt.Errorf("pdf page %d is null", pageNum)
	}

	pageW, pageH := mediaBox(page)
	base := image.NewRGBA(image.Rect(0, 0, int(pageW), int(pageH)))
	xdraw.Draw(base, base.Bounds(), image.White, image.Point{}, xdraw.Src)

	drawer := &font.Drawer{Dst: base, Src: image.Black, Face: basicfont.Face7x13}
	for _, text := range page.Content().Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		// PDF origin is bottom-left; the image origin is top-left.
		drawer.Dot = fixed.P(int(text.X), int(pageH-text.Y))
		drawer.DrawString(text.S)
	}

	outW := int(pageW * scale)
	outH := int(pageH * scale)
	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.CatmullRom.Scale(img, img.Bounds(), base, base.Bounds(), xdraw.Src, nil)

	return domain.Page{Number: pageNum, Image: img, Width: outW, Height: outH}, nil
}

func mediaBox(page pdf.Page) (float64, float64) {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageWidth, defaultPageHeight
	}
	w := box.Index(2).Float64() - box.Index(0).Float64()
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}
