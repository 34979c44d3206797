package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/cataworks/cata-api/internal/catalog"
	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/domain/model"
	apperrors "github.com/cataworks/cata-api/internal/errors"
	"github.com/cataworks/cata-api/internal/observability/metrics"
	"github.com/cataworks/cata-api/internal/observability/statsd"
	"github.com/cataworks/cata-api/internal/render"
)

const defaultMaxConcurrentRenders = 4

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Renderer *render.Renderer // Required: PDF renderer
	Registry core.JobRegistry // Optional: best-effort job bookkeeping
	Logger   *slog.Logger     // Optional: structured logger
	Metrics  statsd.Sink      // Optional: metrics sink (StatsD-compatible)

	// MaxConcurrentRenders bounds concurrent render jobs so a burst of
	// uploads cannot exhaust memory. Zero means the default.
	MaxConcurrentRenders int64
}

// CatalogService turns one render job into both catalog variants: the
// branded preview and the unbranded document behind the payment wall.
type CatalogService struct {
	renderer *render.Renderer
	registry core.JobRegistry
	logger   *slog.Logger
	metrics  statsd.Sink
	sem      *semaphore.Weighted
}

var _ core.CatalogGenerator = (*CatalogService)(nil)

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) (*CatalogService, error) {
	if opts.Renderer == nil {
		return nil, errors.New("renderer is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := opts.MaxConcurrentRenders
	if limit <= 0 {
		limit = defaultMaxConcurrentRenders
	}

	return &CatalogService{
		renderer: opts.Renderer,
		registry: opts.Registry,
		logger:   logger.With("component", "catalog_service"),
		metrics:  opts.Metrics,
		sem:      semaphore.NewWeighted(limit),
	}, nil
}

// Generate loads the job's product list and renders both document variants.
// The uploaded input files are deleted before returning, whether rendering
// succeeded or not.
func (s *CatalogService) Generate(ctx context.Context, job *model.RenderJob) error {
	defer s.removeInputs(job)

	if err := job.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire render slot: %w", err)
	}
	defer s.sem.Release(1)

	products, err := catalog.LoadProducts(job.CSVPath)
	if err != nil {
		metrics.EmitRender(s.metrics, metrics.RenderMetric{Err: err})
		return fmt.Errorf("load products: %w", err)
	}

	passes := []render.Document{
		{
			Products:   products,
			LogoPath:   job.LogoPath,
			WhatsApp:   job.WhatsApp,
			Watermark:  true,
			OutputPath: job.WatermarkedPath,
		},
		{
			Products:   products,
			LogoPath:   job.LogoPath,
			WhatsApp:   job.WhatsApp,
			Watermark:  false,
			OutputPath: job.CleanPath,
		},
	}

	for _, doc := range passes {
		start := time.Now()
		renderErr := s.renderer.Render(ctx, doc)
		metrics.EmitRender(s.metrics, metrics.RenderMetric{
			Products:  len(products),
			Watermark: doc.Watermark,
			Duration:  time.Since(start),
			Err:       renderErr,
		})
		if renderErr != nil {
			return fmt.Errorf("render %s: %w", filepath.Base(doc.OutputPath), renderErr)
		}
	}

	s.logger.InfoContext(ctx, "catalog generated",
		"job_id", job.ID,
		"products", len(products),
	)
	s.record(ctx, job, len(products))

	return nil
}

// removeInputs deletes the uploaded CSV and logo. Inputs are single-use;
// leaving them behind only feeds the sweeper.
func (s *CatalogService) removeInputs(job *model.RenderJob) {
	for _, path := range []string{job.CSVPath, job.LogoPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to remove uploaded input", "path", path, "error", err)
		}
	}
}

func (s *CatalogService) record(ctx context.Context, job *model.RenderJob, products int) {
	if s.registry == nil {
		return
	}
	entry := core.JobRegistryEntry{
		JobID:     job.ID,
		Products:  products,
		CreatedAt: job.CreatedAt,
	}
	if err := s.registry.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record job in registry", "job_id", job.ID, "error", err)
	}
}
