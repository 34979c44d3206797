// Package redisreg tracks recently generated catalogs in Redis.
package redisreg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cataworks/cata-api/internal/core"
)

const defaultKeyPrefix = "cata:job:"

// Registry is a Redis-backed job registry. Entries expire with the same
// retention window the file sweeper enforces on disk, so the registry count
// tracks what is actually still downloadable.
type Registry struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ core.JobRegistry = (*Registry)(nil)

// NewRegistry creates a Redis-backed job registry with the given entry TTL.
func NewRegistry(client redis.UniversalClient, ttl time.Duration) *Registry {
	return &Registry{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    ttl,
	}
}

// NewRegistryWithPrefix creates a registry with a custom key prefix.
func NewRegistryWithPrefix(client redis.UniversalClient, ttl time.Duration, prefix string) *Registry {
	return &Registry{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Record stores the metadata of one generated catalog under its job ID.
func (r *Registry) Record(ctx context.Context, entry core.JobRegistryEntry) error {
	if entry.JobID == "" {
		return errors.New("job ID cannot be empty")
	}

	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	key := r.prefix + entry.JobID
	fields := map[string]any{
		"products":   strconv.Itoa(entry.Products),
		"created_at": created.UTC().Format(time.RFC3339),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record job %s: %w", entry.JobID, err)
	}
	return nil
}

// Get returns the recorded entry for a job, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, jobID string) (core.JobRegistryEntry, error) {
	if jobID == "" {
		return core.JobRegistryEntry{}, ErrNotFound
	}

	fields, err := r.client.HGetAll(ctx, r.prefix+jobID).Result()
	if err != nil {
		return core.JobRegistryEntry{}, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return core.JobRegistryEntry{}, ErrNotFound
	}

	entry := core.JobRegistryEntry{JobID: jobID}
	if v, parseErr := strconv.Atoi(fields["products"]); parseErr == nil {
		entry.Products = v
	}
	if ts, parseErr := time.Parse(time.RFC3339, fields["created_at"]); parseErr == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

// Count returns the number of live registry entries.
func (r *Registry) Count(ctx context.Context) (int64, error) {
	var count int64
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return count, nil
}

// ErrNotFound is returned when no entry exists for a job ID.
var ErrNotFound = errors.New("job not found in registry")
