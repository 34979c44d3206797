package config

import "time"

const (
	defaultMaxCSVBytes  = 5 * 1024 * 1024
	defaultMaxLogoBytes = 2 * 1024 * 1024
)

// CatalogConfig contains catalog generation configuration: where uploads and
// rendered documents live on disk, how large uploads may be, and how remote
// product images are fetched.
type CatalogConfig struct {
	// TmpDir holds uploaded inputs for the duration of a render.
	TmpDir string `env:"CATA_TMP_DIR" envDefault:"tmp"`

	// OutputDir holds rendered PDF documents.
	OutputDir string `env:"CATA_OUTPUT_DIR" envDefault:"output"`

	// MaxCSVBytes is the hard ceiling for the uploaded product list.
	MaxCSVBytes int64 `env:"CATA_MAX_CSV_BYTES" envDefault:"5242880"`

	// MaxLogoBytes is the hard ceiling for the uploaded logo image.
	MaxLogoBytes int64 `env:"CATA_MAX_LOGO_BYTES" envDefault:"2097152"`

	// ImageFetchTimeout bounds each remote product-image request.
	ImageFetchTimeout time.Duration `env:"CATA_IMAGE_FETCH_TIMEOUT" envDefault:"6s"`
}

// Sanitize applies guardrails to catalog configuration values.
func (c *CatalogConfig) Sanitize() {
	if c.MaxCSVBytes <= 0 {
		c.MaxCSVBytes = defaultMaxCSVBytes
	}
	if c.MaxLogoBytes <= 0 {
		c.MaxLogoBytes = defaultMaxLogoBytes
	}
	if c.ImageFetchTimeout <= 0 {
		c.ImageFetchTimeout = 6 * time.Second
	}
	if c.TmpDir == "" {
		c.TmpDir = "tmp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
}
