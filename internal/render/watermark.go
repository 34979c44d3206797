package render

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/cataworks/cata-api/internal/catalog"
)

const logoImageKey = "__watermark_logo__"

// loadWatermarkLogo reads and decodes the uploaded logo for overlay use.
// A missing or undecodable file yields nil and the overlay is skipped; the
// rest of the document renders normally.
func loadWatermarkLogo(ctx context.Context, path string, logger *slog.Logger) *catalog.CachedImage {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		logger.WarnContext(ctx, "watermark logo unavailable", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		logger.WarnContext(ctx, "watermark logo decode failed", "path", path, "error", err)
		return nil
	}
	return catalog.Downsample(src, 2*wmLogoSize)
}

// logoWatermark draws the low-opacity centered logo overlay.
func (d *drawState) logoWatermark() {
	if d.logo == nil {
		return
	}
	d.pdf.SetAlpha(wmLogoAlpha, "Normal")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(logoImageKey, opts, bytes.NewReader(d.logo.PNG))
	x := (d.pageW - wmLogoSize) / 2
	y := (d.pageH - wmLogoSize) / 2
	d.pdf.ImageOptions(logoImageKey, x, y, wmLogoSize, wmLogoSize, false, opts, 0, "")

	d.pdf.SetAlpha(1, "Normal")
}

// textWatermark tiles the rotated branding line across the page bounds.
func (d *drawState) textWatermark() {
	d.pdf.SetAlpha(wmTextAlpha, "Normal")
	d.setText(colText)
	d.pdf.SetFont("Helvetica", "B", wmTextSize)

	cx, cy := d.pageW/2, d.pageH/2
	d.pdf.TransformBegin()
	d.pdf.TransformRotate(wmTextAngle, cx, cy)

	for x := -d.pageW; x < d.pageW; x += wmTileSpacing {
		for y := -d.pageH; y < d.pageH; y += wmTileSpacing {
			d.textCentered(cx+x, cy+y, watermarkLabel)
		}
	}

	d.pdf.TransformEnd()
	d.pdf.SetAlpha(1, "Normal")
}
