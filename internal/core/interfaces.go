package core

import (
	"context"
	"time"

	"github.com/cataworks/cata-api/internal/domain/model"
)

// This file contains the interface definitions (ports in hexagonal
// architecture) the HTTP layer and services depend on. Handlers and services
// should depend on these interfaces, not concrete implementations.

// CatalogGenerator renders both variants of a catalog from a prepared job.
type CatalogGenerator interface {
	Generate(ctx context.Context, job *model.RenderJob) error
}

// PaymentRepository defines payment state persistence per job.
type PaymentRepository interface {
	MarkPaid(ctx context.Context, jobID string, info map[string]string) error
	IsPaid(ctx context.Context, jobID string) (bool, error)
	Get(ctx context.Context, jobID string) (*model.PaymentRecord, error)
}

// PayLinkCreator creates a hosted checkout URL for unlocking a job's
// unbranded catalog.
type PayLinkCreator interface {
	CreatePayLink(ctx context.Context, jobID string) (string, error)
}

// JobRegistryEntry is the metadata recorded per generated catalog.
type JobRegistryEntry struct {
	JobID     string
	Products  int
	CreatedAt time.Time
}

// JobRegistry tracks recently generated catalogs. Implementations are
// best-effort; callers log and proceed when recording fails.
type JobRegistry interface {
	Record(ctx context.Context, entry JobRegistryEntry) error
	Count(ctx context.Context) (int64, error)
}
