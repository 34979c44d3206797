package httpx

import (
	"log/slog"
	"net/http"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/paddle"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Generator core.CatalogGenerator
	Payments  core.PaymentRepository
	PayLinks  core.PayLinkCreator
	Verifier  *paddle.Verifier // Optional: nil disables webhook processing
	Registry  core.JobRegistry // Optional: nil hides registry metrics

	Catalog config.CatalogConfig
	Origins []string

	// Health reporting flags.
	PaddleConfigured  bool
	WebhookConfigured bool
	SweeperEnabled    bool

	Logger *slog.Logger // Logger for handlers and middleware (optional)
}

// NewRouter creates and configures the HTTP router with logging, panic
// recovery, and CORS applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	catalogHandlers := &CatalogHandlers{
		Generator: services.Generator,
		Config:    services.Catalog,
		Logger:    logger,
	}
	paymentHandlers := &PaymentHandlers{
		Payments: services.Payments,
		PayLinks: services.PayLinks,
		Verifier: services.Verifier,
		Logger:   logger,
	}
	healthHandlers := &HealthHandlers{
		OutputDir:         services.Catalog.OutputDir,
		TmpDir:            services.Catalog.TmpDir,
		Registry:          services.Registry,
		PaddleConfigured:  services.PaddleConfigured,
		WebhookConfigured: services.WebhookConfigured,
		SweeperEnabled:    services.SweeperEnabled,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", catalogHandlers.Generate)
	mux.HandleFunc("GET /download/{job_id}", catalogHandlers.Download)
	mux.HandleFunc("GET /preview/{job_id}", catalogHandlers.Preview)
	mux.HandleFunc("GET /checkout", paymentHandlers.Checkout)
	mux.HandleFunc("POST /webhook/paddle", paymentHandlers.Webhook)
	mux.HandleFunc("GET /status", paymentHandlers.Status)
	mux.HandleFunc("GET /health", healthHandlers.Health)
	mux.HandleFunc("HEAD /health", healthHandlers.Health)
	mux.HandleFunc("GET /metrics", healthHandlers.Metrics)

	var handler http.Handler = mux
	handler = Recover(logger)(handler)
	handler = CORS(services.Origins)(handler)
	handler = Logging(logger)(handler)
	return handler
}
