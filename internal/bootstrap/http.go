package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/core"
	httpx "github.com/cataworks/cata-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the HTTP server with the full route table and
// middleware stack. The caller owns starting and stopping it.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	// Assign concrete values into interface fields only when present so the
	// handlers' nil checks keep working.
	var payments core.PaymentRepository
	if cfg.Services.Payments != nil {
		payments = cfg.Services.Payments
	}
	var payLinks core.PayLinkCreator
	if cfg.Services.PayLinks != nil {
		payLinks = cfg.Services.PayLinks
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Generator:         cfg.Services.Catalog,
		Payments:          payments,
		PayLinks:          payLinks,
		Verifier:          cfg.Services.Verifier,
		Registry:          cfg.Services.Registry,
		Catalog:           appCfg.Catalog,
		Origins:           appCfg.HTTP.Origins(),
		PaddleConfigured:  appCfg.Paddle.CheckoutConfigured(),
		WebhookConfigured: appCfg.Paddle.WebhookConfigured(),
		SweeperEnabled:    appCfg.IsSweeperEnabled(),
		Logger:            logger,
	})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// Generation is synchronous and may fetch remote product images, so
		// the write timeout has to cover a full render.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
}
