// Package render walks a sorted product list and emits the paginated catalog
// document: a cover page, category header bands, fixed-height product cards,
// and the optional watermark overlays of the preview variant.
package render

// Palette (CATA brand colors).
var (
	colGreen       = rgb{34, 197, 94}   // #22C55E
	colGreenBorder = rgb{22, 163, 74}   // #16A34A
	colCream       = rgb{255, 255, 255} // #FFFFFF
	colGray        = rgb{243, 244, 246} // #F3F4F6
	colText        = rgb{17, 24, 39}    // #111827
)

type rgb struct{ r, g, b int }

// Page geometry in millimetres (A4 portrait: 210×297).
const (
	sideMargin   = 30.0
	topMargin    = 30.0
	bottomMargin = 30.0

	imageSlot  = 32.0 // square image slot inside a card
	cardHeight = 46.0 // vertical space one card consumes before the gap
	cardGap    = 4.0

	bandHeight  = 14.0 // category header band
	bandAdvance = 24.0 // cursor advance after drawing a band
	bandRadius  = 6.0

	cardRadius = 7.0
	cardInsetB = 6.0 // card panel is drawn slightly shorter than cardHeight

	buttonWidth  = 50.0
	buttonHeight = 13.0
	buttonRadius = 4.5

	footerWidth   = 60.0
	footerBottomY = 20.0 // distance from page bottom to footer button bottom

	// Name labels are hard-truncated at this many runes, ellipsis included.
	nameMaxRunes = 55
)

// Watermark overlay parameters.
const (
	wmLogoSize     = 120.0
	wmLogoAlpha    = 0.05
	wmTextAlpha    = 0.035
	wmTextSize     = 26.0
	wmTextAngle    = 30.0
	wmTileSpacing  = 70.0
	watermarkLabel = "Creado con CATA · Catálogos para WhatsApp"
)

// truncateName applies the fixed-length label truncation. Longer names keep
// their first runes and end with a three-dot ellipsis; the result is exactly
// nameMaxRunes runes long. Width is not measured.
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= nameMaxRunes {
		return name
	}
	return string(runes[:nameMaxRunes-3]) + "..."
}
