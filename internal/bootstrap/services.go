package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/adapters/redisreg"
	"github.com/cataworks/cata-api/internal/adapters/sweeper"
	"github.com/cataworks/cata-api/internal/catalog"
	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/data"
	"github.com/cataworks/cata-api/internal/observability/statsd"
	"github.com/cataworks/cata-api/internal/paddle"
	"github.com/cataworks/cata-api/internal/render"
	"github.com/cataworks/cata-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Catalog  *service.CatalogService
	Payments *data.PaymentRepo
	PayLinks *paddle.Client
	Verifier *paddle.Verifier // nil when no webhook public key is configured
	Registry core.JobRegistry // nil when Redis is not configured

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client // may be nil
	Logger      *slog.Logger
}

// NewServices wires up all application services from their dependencies.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service dependencies are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "cata",
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create metrics sink: %w", err)
	}

	var registry core.JobRegistry
	if deps.RedisClient != nil {
		registry = redisreg.NewRegistry(deps.RedisClient, cfg.Sweeper.Retention)
	}

	images := catalog.NewImageCache(catalog.ImageCacheOptions{
		Client:  &http.Client{Timeout: cfg.Catalog.ImageFetchTimeout},
		Timeout: cfg.Catalog.ImageFetchTimeout,
		Logger:  logger,
	})

	renderer, err := render.NewRenderer(render.RendererOptions{
		Images: images,
		Links:  catalog.NewLinkBuilder(),
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create renderer: %w", err)
	}

	catalogSvc, err := service.NewCatalogService(service.CatalogServiceOptions{
		Renderer: renderer,
		Registry: registry,
		Logger:   logger,
		Metrics:  metricsSink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create catalog service: %w", err)
	}

	payLinks := paddle.NewClient(paddle.ClientOptions{
		Config:  cfg.Paddle,
		SiteURL: cfg.HTTP.SiteURL,
		HTTP:    &http.Client{Timeout: cfg.Paddle.Timeout},
		Logger:  logger,
	})

	var verifier *paddle.Verifier
	if cfg.Paddle.WebhookConfigured() {
		verifier, err = paddle.NewVerifier(cfg.Paddle.PublicKey)
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("load paddle public key: %w", err)
		}
	}

	var payments *data.PaymentRepo
	if deps.DB != nil {
		payments = data.NewPaymentRepo(deps.DB)
	}

	return ServiceContainer{
		Catalog:       catalogSvc,
		Payments:      payments,
		PayLinks:      payLinks,
		Verifier:      verifier,
		Registry:      registry,
		Observability: ObservabilityContainer{MetricsSink: metricsSink},
	}, nil
}

const shutdownWaitTimeout = 10 * time.Second

// ServiceOrchestrationConfig contains everything needed to run the enabled
// services until shutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and blocks until a
// termination signal arrives or one of them fails. On either event the
// remaining services are stopped gracefully.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Config.IsHTTPServerEnabled() {
		server := NewHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		g.Go(func() error {
			logger.Info("starting HTTP server", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("http server shutdown: %w", err)
			}
			return nil
		})
	}

	if cfg.Config.IsSweeperEnabled() {
		runner, err := sweeper.NewRunner(sweeper.RunnerOptions{
			Dirs:    []string{cfg.Config.Catalog.OutputDir, cfg.Config.Catalog.TmpDir},
			Config:  cfg.Config.Sweeper,
			Logger:  logger,
			Metrics: cfg.Services.Observability.MetricsSink,
		})
		if err != nil {
			return fmt.Errorf("create sweeper runner: %w", err)
		}
		g.Go(func() error {
			return runner.Run(gctx)
		})
	}

	err := g.Wait()

	if sink := cfg.Services.Observability.MetricsSink; sink != nil {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("close metrics sink failed", "error", cerr)
		}
	}

	logger.Info("all services stopped")
	return err
}
