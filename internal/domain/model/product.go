//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Product is one row of a loaded catalog. Instances are built once per load,
// read-only afterward, and discarded after a rendering pass.
type Product struct {
	Category string
	Name     string

	// Price is nil when the source row left the price blank; the renderer
	// shows a "contact for price" placeholder instead.
	Price *float64

	// ImageURL is empty when the row carried no image reference.
	ImageURL string
}

// HasPrice reports whether the product carries a numeric price.
func (p *Product) HasPrice() bool {
	return p.Price != nil
}

// HasImage reports whether the product references a remote image.
func (p *Product) HasImage() bool {
	return p.ImageURL != ""
}
