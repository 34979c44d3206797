package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/cataworks/cata-api/internal/catalog"
	"github.com/cataworks/cata-api/internal/domain/model"
)

// RendererOptions groups dependencies for Renderer.
type RendererOptions struct {
	Images catalog.ImageSource  // Required: product image source
	Links  *catalog.LinkBuilder // Optional: defaults to a fresh builder
	Logger *slog.Logger         // Optional: structured logger
}

// Renderer produces catalog PDF documents. It is stateless across documents;
// the image source and link builder it holds carry the process-lifetime
// caches shared by the branded and unbranded passes of a job.
type Renderer struct {
	images catalog.ImageSource
	links  *catalog.LinkBuilder
	logger *slog.Logger
}

// NewRenderer constructs a Renderer.
func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.Images == nil {
		return nil, errors.New("image source is required")
	}
	links := opts.Links
	if links == nil {
		links = catalog.NewLinkBuilder()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		images: opts.Images,
		links:  links,
		logger: logger.With("component", "renderer"),
	}, nil
}

// Document describes one rendering pass.
type Document struct {
	Products   []model.Product // pre-sorted by category
	LogoPath   string          // uploaded logo; only read when Watermark is set
	WhatsApp   string          // raw contact number, normalized internally
	Watermark  bool
	OutputPath string
}

// Render walks the product list once and writes the document to
// doc.OutputPath. Any drawing failure aborts the whole document; no partial
// PDF is considered valid output. A missing or unreadable watermark logo is
// the single exception and is skipped silently.
func (r *Renderer) Render(ctx context.Context, doc Document) error {
	digits := model.NormalizeWhatsApp(doc.WhatsApp)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	d := &drawState{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: r.images,
		links:  r.links,
		digits: digits,
		mark:   doc.Watermark,
	}
	d.pageW, d.pageH = pdf.GetPageSize()

	if doc.Watermark {
		d.logo = loadWatermarkLogo(ctx, doc.LogoPath, r.logger)
	}

	// Cover page.
	d.newPage()
	d.cover()
	d.footer()

	// Body pages.
	d.newPage()
	y := topMargin
	currentCategory := ""
	for i := range doc.Products {
		p := &doc.Products[i]

		if p.Category != currentCategory {
			if currentCategory != "" {
				d.footer()
				d.newPage()
				y = topMargin
			}
			d.categoryBand(p.Category, y)
			y += bandAdvance
			currentCategory = p.Category
		}

		// Independent of the category check above; see SPEC_FULL §3.4 for
		// the preserved double-check behavior.
		if y+cardHeight > d.pageH-bottomMargin {
			d.footer()
			d.newPage()
			y = topMargin
		}

		d.card(ctx, p, y)
		y += cardHeight + cardGap
	}

	// The final page is closed unconditionally, header-only pages included.
	d.footer()

	if pdf.Err() {
		return fmt.Errorf("render document: %w", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(doc.OutputPath); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// drawState carries the per-document drawing cursor and shared assets.
type drawState struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images catalog.ImageSource
	links  *catalog.LinkBuilder
	digits string
	mark   bool
	logo   *catalog.CachedImage
	pageW  float64
	pageH  float64
}

// newPage starts a fresh page: background fill plus, on watermarked passes,
// the two overlay graphics.
func (d *drawState) newPage() {
	d.pdf.AddPage()

	d.setFill(colCream)
	d.pdf.Rect(0, 0, d.pageW, d.pageH, "F")

	if d.mark {
		d.logoWatermark()
		d.textWatermark()
	}
}

// cover draws the fixed first page.
func (d *drawState) cover() {
	d.setText(colText)
	d.pdf.SetFont("Helvetica", "B", 24)
	d.textCentered(d.pageW/2, 50, "Tu catálogo está listo")

	d.pdf.SetFont("Helvetica", "", 11)
	d.textCentered(d.pageW/2, 82, "Explora productos y pide directamente por WhatsApp.")
	d.textCentered(d.pageW/2, 90, "Haz clic en \"Lo quiero\" para comenzar tu compra.")
}

// categoryBand draws the green header band for a category at cursor y.
func (d *drawState) categoryBand(category string, y float64) {
	d.setFill(colGreen)
	d.pdf.RoundedRect(sideMargin, y, d.pageW-2*sideMargin, bandHeight, bandRadius, "1234", "F")

	d.setText(colCream)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.Text(sideMargin+10, y+9, d.tr(category))
}

// card draws one product card with cursor y at the card top.
func (d *drawState) card(ctx context.Context, p *model.Product, y float64) {
	contentW := d.pageW - 2*sideMargin

	d.setFill(colGray)
	d.pdf.RoundedRect(sideMargin, y, contentW, cardHeight-cardInsetB, cardRadius, "1234", "F")

	if img := d.images.Get(ctx, p.ImageURL); img != nil {
		d.placeImage(p.ImageURL, img, sideMargin+10, y+8)
	}

	textX := sideMargin + imageSlot + 22

	d.setText(colText)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.Text(textX, y+16, d.tr(truncateName(p.Name)))

	priceText := "Precio por DM"
	if p.HasPrice() {
		priceText = catalog.FormatPrice(*p.Price)
	}
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.Text(textX, y+27, d.tr(priceText))

	link := d.links.Link(p.Name, p.Price, d.digits)
	d.button(textX, y+28, buttonWidth, buttonHeight, "Lo quiero", link)
}

// footer draws the page-closing call-to-action button.
func (d *drawState) footer() {
	link := d.links.Link("Pedido desde el catálogo", nil, d.digits)
	x := (d.pageW - footerWidth) / 2
	y := d.pageH - footerBottomY - buttonHeight
	d.button(x, y, footerWidth, buttonHeight, "Finalizar pedido", link)
}

// button draws a rounded green button whose whole area is a clickable link.
func (d *drawState) button(x, y, w, h float64, label, url string) {
	d.setFill(colGreen)
	d.pdf.SetDrawColor(colGreenBorder.r, colGreenBorder.g, colGreenBorder.b)
	d.pdf.SetLineWidth(0.35)
	d.pdf.RoundedRect(x, y, w, h, buttonRadius, "1234", "FD")

	d.setText(colCream)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.textCentered(x+w/2, y+h/2+1.2, label)

	d.pdf.LinkString(x, y, w, h, url)
}

// placeImage embeds a cached PNG scaled to fit the square image slot.
func (d *drawState) placeImage(key string, img *catalog.CachedImage, x, y float64) {
	w, h := fitBox(img.Width, img.Height, imageSlot)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(img.PNG))
	d.pdf.ImageOptions(key, x+(imageSlot-w)/2, y+(imageSlot-h)/2, w, h, false, opts, 0, "")
}

func (d *drawState) textCentered(cx, y float64, s string) {
	t := d.tr(s)
	d.pdf.Text(cx-d.pdf.GetStringWidth(t)/2, y, t)
}

func (d *drawState) setFill(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *drawState) setText(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

// fitBox scales (w, h) to fit inside a box×box square, preserving aspect.
func fitBox(w, h int, box float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return box, box
	}
	if w >= h {
		return box, box * float64(h) / float64(w)
	}
	return box * float64(w) / float64(h), box
}
