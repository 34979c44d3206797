package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/domain/model"
	"github.com/cataworks/cata-api/internal/mocks"
)

type generateForm struct {
	CSV      []byte
	CSVType  string
	Logo     []byte
	LogoType string
	LogoName string
	WhatsApp string
}

func buildGenerateBody(t *testing.T, form generateForm) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if form.CSV != nil {
		part := filePart(t, mw, "csv", "products.csv", form.CSVType)
		_, err := part.Write(form.CSV)
		require.NoError(t, err)
	}
	if form.Logo != nil {
		name := form.LogoName
		if name == "" {
			name = "logo.png"
		}
		part := filePart(t, mw, "logo", name, form.LogoType)
		_, err := part.Write(form.Logo)
		require.NoError(t, err)
	}
	if form.WhatsApp != "" {
		require.NoError(t, mw.WriteField("whatsapp", form.WhatsApp))
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func filePart(t *testing.T, mw *multipart.Writer, field, filename, contentType string) io.Writer {
	t.Helper()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	return part
}

func newCatalogHandlers(t *testing.T, generator *mocks.MockCatalogGenerator) (*CatalogHandlers, config.CatalogConfig) {
	t.Helper()

	cfg := config.CatalogConfig{
		TmpDir:       t.TempDir(),
		OutputDir:    t.TempDir(),
		MaxCSVBytes:  1 << 20,
		MaxLogoBytes: 1 << 20,
	}
	return &CatalogHandlers{Generator: generator, Config: cfg}, cfg
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	var captured *model.RenderJob
	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *model.RenderJob) error {
			captured = job
			return nil
		})

	body, contentType := buildGenerateBody(t, generateForm{
		CSV:      []byte("category,name,price,image_url\nDrinks,Cola,10,\n"),
		CSVType:  "text/csv",
		Logo:     []byte("fake-png-bytes"),
		LogoType: "image/png",
		WhatsApp: "+52 1 55 1234 5678",
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	jobID := resp["job_id"]
	require.NotEmpty(t, jobID)
	assert.Equal(t, "/download/"+jobID+"?watermark=1", resp["pdf_preview"])
	assert.Equal(t, "/download/"+jobID+"?watermark=0", resp["pdf_clean"])
	assert.Equal(t, "/preview/"+jobID, resp["preview_url"])

	require.NotNil(t, captured)
	assert.Equal(t, jobID, captured.ID)
	assert.Equal(t, filepath.Join(cfg.TmpDir, jobID+".csv"), captured.CSVPath)
	assert.Equal(t, filepath.Join(cfg.TmpDir, jobID+"_logo.png"), captured.LogoPath)
	assert.Equal(t, model.OutputPath(cfg.OutputDir, jobID, true), captured.WatermarkedPath)
	assert.Equal(t, model.OutputPath(cfg.OutputDir, jobID, false), captured.CleanPath)
	assert.Equal(t, "+52 1 55 1234 5678", captured.WhatsApp)

	// Uploads reached the tmp dir intact.
	data, err := os.ReadFile(captured.CSVPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cola")
}

func TestGenerateMissingWhatsApp(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	body, contentType := buildGenerateBody(t, generateForm{
		CSV:      []byte("category,name\nDrinks,Cola\n"),
		CSVType:  "text/csv",
		Logo:     []byte("png"),
		LogoType: "image/png",
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertDirEmpty(t, cfg.TmpDir)
}

func TestGenerateCSVTooLarge(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)
	h.Config.MaxCSVBytes = 16

	body, contentType := buildGenerateBody(t, generateForm{
		CSV:      []byte(strings.Repeat("x", 64)),
		CSVType:  "text/csv",
		Logo:     []byte("png"),
		LogoType: "image/png",
		WhatsApp: "5215512345678",
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assertDirEmpty(t, cfg.TmpDir)
}

func TestGenerateRejectsWrongLogoType(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	body, contentType := buildGenerateBody(t, generateForm{
		CSV:      []byte("category,name\nDrinks,Cola\n"),
		CSVType:  "text/csv",
		Logo:     []byte("GIF89a"),
		LogoType: "image/gif",
		LogoName: "logo.gif",
		WhatsApp: "5215512345678",
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertDirEmpty(t, cfg.TmpDir)
}

func TestDownloadServesVariants(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	writeOutput(t, cfg.OutputDir, model.OutputName("job-1", true), "%PDF-watermarked")
	writeOutput(t, cfg.OutputDir, model.OutputName("job-1", false), "%PDF-clean")

	router := newTestRouter(h)

	rec := doGet(router, "/download/job-1?watermark=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "CATA_job-1_watermark.pdf")
	assert.Equal(t, "%PDF-watermarked", rec.Body.String())

	rec = doGet(router, "/download/job-1?watermark=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-clean", rec.Body.String())
}

func TestPreviewServesWatermarkedInline(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	writeOutput(t, cfg.OutputDir, model.OutputName("job-2", true), "%PDF-watermarked")

	router := newTestRouter(h)
	rec := doGet(router, "/preview/job-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inline")
	assert.Equal(t, "%PDF-watermarked", rec.Body.String())
}

func TestDownloadMissingIs404(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, _ := newCatalogHandlers(t, generator)

	router := newTestRouter(h)
	rec := doGet(router, "/download/absent-job")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadRejectsTraversal(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	generator := mocks.NewMockCatalogGenerator(ctrl)
	h, cfg := newCatalogHandlers(t, generator)

	secret := filepath.Join(filepath.Dir(cfg.OutputDir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("nope"), 0o600))

	router := newTestRouter(h)
	rec := doGet(router, "/download/..%2Fsecret.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "nope")
}

func newTestRouter(h *CatalogHandlers) http.Handler {
	return NewRouter(RouterServices{
		Generator: h.Generator,
		Catalog:   h.Config,
		Origins:   []string{"*"},
	})
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func writeOutput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "expected %s to be empty", dir)
}
