package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// SiteURL is the public base URL of the application
	// (e.g. "https://cata.example.com"). Used to build payment return URLs.
	SiteURL string `env:"SITE_URL" envDefault:"http://127.0.0.1:8080"`

	// AllowedOrigins is a comma-delimited list of origins allowed by the
	// CORS middleware. "*" allows any origin.
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.SiteURL = strings.TrimSuffix(strings.TrimSpace(h.SiteURL), "/")
	h.AllowedOrigins = strings.TrimSpace(h.AllowedOrigins)
	if h.AllowedOrigins == "" {
		h.AllowedOrigins = "*"
	}
}

// Origins returns the allowed CORS origins as a slice.
func (h *HTTPConfig) Origins() []string {
	parts := strings.Split(h.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
