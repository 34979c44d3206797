package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataworks/cata-api/internal/catalog"
	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/domain/model"
	apperrors "github.com/cataworks/cata-api/internal/errors"
	"github.com/cataworks/cata-api/internal/render"
)

type noImages struct{}

func (noImages) Get(context.Context, string) *catalog.CachedImage { return nil }

type fakeRegistry struct {
	entries []core.JobRegistryEntry
}

func (f *fakeRegistry) Record(_ context.Context, entry core.JobRegistryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRegistry) Count(context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

func newTestCatalogService(t *testing.T, registry core.JobRegistry) *CatalogService {
	t.Helper()

	renderer, err := render.NewRenderer(render.RendererOptions{Images: noImages{}})
	require.NoError(t, err)

	svc, err := NewCatalogService(CatalogServiceOptions{
		Renderer: renderer,
		Registry: registry,
	})
	require.NoError(t, err)
	return svc
}

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogServiceGenerate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "category,name,price,image_url\nDrinks,Cola 600ml,25,\nSnacks,Chips,,\n")

	registry := &fakeRegistry{}
	svc := newTestCatalogService(t, registry)

	job := &model.RenderJob{
		ID:              "job-1",
		CSVPath:         csvPath,
		WhatsApp:        "5215512345678",
		WatermarkedPath: filepath.Join(dir, "CATA_job-1_watermark.pdf"),
		CleanPath:       filepath.Join(dir, "CATA_job-1.pdf"),
	}

	require.NoError(t, svc.Generate(context.Background(), job))

	for _, out := range []string{job.WatermarkedPath, job.CleanPath} {
		info, err := os.Stat(out)
		require.NoError(t, err, "expected output %s", out)
		assert.Greater(t, info.Size(), int64(0))
	}

	// Inputs are single-use and must be gone after the job.
	_, err := os.Stat(csvPath)
	assert.True(t, os.IsNotExist(err))

	require.Len(t, registry.entries, 1)
	assert.Equal(t, "job-1", registry.entries[0].JobID)
	assert.Equal(t, 2, registry.entries[0].Products)
}

func TestCatalogServiceGenerateMissingContact(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "category,name,price,image_url\nDrinks,Cola,10,\n")

	svc := newTestCatalogService(t, nil)

	job := &model.RenderJob{
		ID:              "job-2",
		CSVPath:         csvPath,
		WatermarkedPath: filepath.Join(dir, "w.pdf"),
		CleanPath:       filepath.Join(dir, "c.pdf"),
	}

	err := svc.Generate(context.Background(), job)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	// Even a rejected job consumes its inputs.
	_, statErr := os.Stat(csvPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCatalogServiceGenerateMalformedPrice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "category,name,price,image_url\nDrinks,Cola,not-a-price,\n")

	svc := newTestCatalogService(t, nil)

	job := &model.RenderJob{
		ID:              "job-3",
		CSVPath:         csvPath,
		WhatsApp:        "5215512345678",
		WatermarkedPath: filepath.Join(dir, "w.pdf"),
		CleanPath:       filepath.Join(dir, "c.pdf"),
	}

	err := svc.Generate(context.Background(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed price")

	// No partial outputs.
	_, statErr := os.Stat(job.WatermarkedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewCatalogServiceRequiresRenderer(t *testing.T) {
	t.Parallel()

	_, err := NewCatalogService(CatalogServiceOptions{})
	require.Error(t, err)
}
