// Package sweeper provides the adapter for running the file retention sweeper.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/observability/statsd"
	"github.com/cataworks/cata-api/internal/service"
)

// Runner constructs the sweeper service and runs its cleanup loop.
type Runner struct {
	sweeper *service.SweeperService
	logger  *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Dirs    []string
	Config  config.SweeperConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewRunner creates a new sweeper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if len(opts.Dirs) == 0 {
		return nil, errors.New("at least one directory is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	svc, err := service.NewSweeperService(service.SweeperServiceOptions{
		Dirs:    opts.Dirs,
		Config:  opts.Config,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire sweeper service: %w", err)
	}

	return &Runner{sweeper: svc, logger: opts.Logger}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting sweeper runner")
	return r.sweeper.Run(ctx)
}
