package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - catalog.go: upload limits, storage directories, image fetching
//   - database.go: database and Redis configuration
//   - http.go: HTTP server configuration
//   - paddle.go: payment gateway configuration
//   - services.go: service mode and sweeper configuration
type AppConfig struct {
	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Catalog generation configuration
	Catalog CatalogConfig

	// Payment gateway configuration
	Paddle PaddleConfig `envPrefix:"PADDLE_"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http,sweeper"`

	// Sweeper configuration
	Sweeper SweeperConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Catalog.Sanitize()
	c.Sweeper.Sanitize()
	c.Observability.Sanitize()
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsSweeperEnabled returns true if the retention sweeper service is enabled.
// The sweeper additionally honours its own enable toggle so operators can run
// SERVICES=http,sweeper everywhere and flip cleanup off via SWEEPER_ENABLED.
func (c *AppConfig) IsSweeperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeSweeper] && c.Sweeper.Enabled
}
