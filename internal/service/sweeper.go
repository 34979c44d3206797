package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/observability/metrics"
	"github.com/cataworks/cata-api/internal/observability/statsd"
)

// SweeperServiceOptions groups dependencies for SweeperService.
type SweeperServiceOptions struct {
	Dirs    []string             // Required: directories to sweep
	Config  config.SweeperConfig // Required: sweeper configuration
	Logger  *slog.Logger         // Optional: structured logger
	Metrics statsd.Sink          // Optional: metrics sink (StatsD-compatible)
}

// SweeperService deletes rendered documents and stray upload files once they
// outlive the retention window. Catalogs are downloadable for a bounded time
// only; the sweeper is what enforces that bound.
type SweeperService struct {
	dirs    []string
	config  config.SweeperConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewSweeperService constructs a new SweeperService.
func NewSweeperService(opts SweeperServiceOptions) (*SweeperService, error) {
	if len(opts.Dirs) == 0 {
		return nil, errors.New("at least one directory is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SweeperService{
		dirs:    opts.Dirs,
		config:  opts.Config,
		logger:  logger.With("component", "sweeper_service"),
		metrics: opts.Metrics,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *SweeperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting sweeper service",
		"interval", s.config.Interval,
		"retention", s.config.Retention,
		"dirs", s.dirs,
	)

	// Jitter so multiple instances started together do not sweep in lockstep.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "sweeper service stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// waitWithJitter sleeps a random delay up to 10% of the interval.
func (s *SweeperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func (s *SweeperService) sweep(ctx context.Context) {
	start := time.Now()
	removed, err := s.sweepOnce(ctx)

	result := metrics.ResultSuccess
	switch {
	case err != nil:
		result = metrics.ResultError
		s.logger.Error("sweep failed", "error", err, "removed", removed)
	case removed == 0:
		result = metrics.ResultNoop
	default:
		s.logger.InfoContext(ctx, "sweep completed",
			"removed", removed,
			"retention", s.config.Retention,
		)
	}

	if s.metrics != nil {
		tags := map[string]string{"result": result}
		s.metrics.Count("sweeper.runs", 1, tags)
		if removed > 0 {
			s.metrics.Count("sweeper.files_removed", removed, metrics.CloneTags(tags))
		}
		s.metrics.Timing("sweeper.duration", time.Since(start), metrics.CloneTags(tags))
		if err == nil {
			s.metrics.Gauge("sweeper.last_success_epoch", float64(time.Now().Unix()), nil)
		}
	}
}

// sweepOnce removes regular files older than the retention window from every
// configured directory. Individual failures are collected rather than
// aborting the pass; a missing directory is not an error.
func (s *SweeperService) sweepOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.config.Retention)

	var (
		removed int64
		errs    []error
	)

	for _, dir := range s.dirs {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("read %s: %w", dir, err))
			continue
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("stat %s: %w", entry.Name(), err))
				continue
			}
			if !info.ModTime().Before(cutoff) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
				continue
			}
			removed++
		}
	}

	return removed, errors.Join(errs...)
}
