package config

import "time"

// PaddleConfig contains Paddle (classic) payment gateway configuration.
// VendorID and AuthCode authenticate pay-link creation; PublicKey verifies
// inbound webhook signatures. All three are unset in development, which
// disables the corresponding endpoints with a 503 rather than failing startup.
type PaddleConfig struct {
	VendorID string `env:"VENDOR_ID"`
	AuthCode string `env:"VENDOR_AUTH_CODE"`

	// PublicKey is either PEM material or a path to a PEM file.
	PublicKey string `env:"PUBLIC_KEY"`

	// APIURL is the pay-link endpoint. Overridable for tests.
	APIURL string `env:"API_URL" envDefault:"https://vendors.paddle.com/api/2.0/product/generate_pay_link"`

	// Timeout bounds outbound Paddle API calls.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// ProductTitle and ProductPrice describe the single product sold:
	// the clean, unwatermarked catalog.
	ProductTitle string `env:"PRODUCT_TITLE" envDefault:"CATA — Catálogo sin marca de agua"`
	ProductPrice string `env:"PRODUCT_PRICE" envDefault:"USD:15.00"`
}

// CheckoutConfigured reports whether pay-link creation can be attempted.
func (p *PaddleConfig) CheckoutConfigured() bool {
	return p.VendorID != "" && p.AuthCode != ""
}

// WebhookConfigured reports whether webhook signatures can be verified.
func (p *PaddleConfig) WebhookConfigured() bool {
	return p.PublicKey != ""
}
