// Package httpx provides HTTP handlers and utilities for the catalog API.
package httpx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cataworks/cata-api/config"
	"github.com/cataworks/cata-api/internal/core"
	"github.com/cataworks/cata-api/internal/domain/model"
	apperrors "github.com/cataworks/cata-api/internal/errors"
)

// CatalogHandlers provides HTTP handlers for catalog generation and download.
type CatalogHandlers struct {
	Generator core.CatalogGenerator
	Config    config.CatalogConfig
	Logger    *slog.Logger
}

// Generate handles multipart catalog generation requests. Uploads are
// streamed straight to the tmp directory; the renderer runs on this request
// goroutine and the response carries the download handles for both variants.
func (h *CatalogHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	jobID := uuid.NewString()
	csvPath := filepath.Join(h.Config.TmpDir, jobID+".csv")

	var (
		logoPath string
		whatsapp string
		haveCSV  bool
		haveLogo bool
	)

	cleanup := func() {
		for _, p := range []string{csvPath, logoPath} {
			if p != "" {
				_ = os.Remove(p)
			}
		}
	}

	for {
		part, nextErr := mr.NextPart()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			cleanup()
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: nextErr})
			return
		}

		var partErr error
		switch part.FormName() {
		case "csv":
			partErr = saveUpload(part, csvPath, uploadSpec{
				MaxBytes:     h.Config.MaxCSVBytes,
				AllowedTypes: []string{"text/"},
			})
			haveCSV = partErr == nil
		case "logo":
			logoPath = filepath.Join(h.Config.TmpDir, jobID+"_logo"+logoExt(part.FileName()))
			partErr = saveUpload(part, logoPath, uploadSpec{
				MaxBytes:     h.Config.MaxLogoBytes,
				AllowedTypes: []string{"image/png", "image/jpeg"},
			})
			haveLogo = partErr == nil
		case "whatsapp":
			whatsapp, partErr = readFormValue(part)
		}
		_ = part.Close()

		if partErr != nil {
			cleanup()
			WriteAppError(w, partErr)
			return
		}
	}

	if validationErr := validateGenerateInputs(haveCSV, haveLogo, whatsapp); validationErr != nil {
		cleanup()
		WriteAppError(w, validationErr)
		return
	}

	job := &model.RenderJob{
		ID:              jobID,
		CSVPath:         csvPath,
		LogoPath:        logoPath,
		WhatsApp:        whatsapp,
		CreatedAt:       time.Now(),
		WatermarkedPath: model.OutputPath(h.Config.OutputDir, jobID, true),
		CleanPath:       model.OutputPath(h.Config.OutputDir, jobID, false),
	}

	// The generator owns the inputs from here on, including their deletion.
	if genErr := h.Generator.Generate(r.Context(), job); genErr != nil {
		h.logger().ErrorContext(r.Context(), "catalog generation failed", "job_id", jobID, "error", genErr)
		var appErr *apperrors.AppError
		if errors.As(genErr, &appErr) {
			WriteAppError(w, genErr)
			return
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "generation_failed",
			Err:     errors.New("pdf generation failed"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"job_id":      jobID,
		"pdf_preview": "/download/" + jobID + "?watermark=1",
		"pdf_clean":   "/download/" + jobID + "?watermark=0",
		"preview_url": "/preview/" + jobID,
	})
}

// Download serves one rendered variant as an attachment.
func (h *CatalogHandlers) Download(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	if !validJobID(jobID) {
		WriteAppError(w, apperrors.NotFound("pdf not found"))
		return
	}

	watermarked := r.URL.Query().Get("watermark") != "0"
	h.serveVariant(w, r, servePDFParams{
		jobID:       jobID,
		watermarked: watermarked,
		disposition: "attachment",
	})
}

// Preview serves the watermarked variant inline for in-browser viewing.
func (h *CatalogHandlers) Preview(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	if !validJobID(jobID) {
		WriteAppError(w, apperrors.NotFound("pdf not found"))
		return
	}

	h.serveVariant(w, r, servePDFParams{
		jobID:       jobID,
		watermarked: true,
		disposition: "inline",
	})
}

type servePDFParams struct {
	jobID       string
	watermarked bool
	disposition string
}

func (h *CatalogHandlers) serveVariant(w http.ResponseWriter, r *http.Request, p servePDFParams) {
	name := model.OutputName(p.jobID, p.watermarked)
	path := filepath.Join(h.Config.OutputDir, name)

	if _, err := os.Stat(path); err != nil {
		WriteAppError(w, apperrors.NotFound("pdf not found"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", p.disposition, name))
	http.ServeFile(w, r, path)
}

func (h *CatalogHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func validateGenerateInputs(haveCSV, haveLogo bool, whatsapp string) error {
	if !haveCSV {
		return apperrors.Validation("csv file is required")
	}
	if !haveLogo {
		return apperrors.Validation("logo file is required")
	}
	if model.NormalizeWhatsApp(whatsapp) == "" {
		return apperrors.Validation("whatsapp number is required")
	}
	return nil
}

// validJobID rejects anything that is not a plain identifier so a crafted
// job_id can never escape the output directory.
func validJobID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// logoExt carries the uploaded file's extension through to the tmp copy so
// image decoding sees the format it expects. Anything unusual falls back to
// .png rather than trusting client input in a file name.
func logoExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return ext
	default:
		return ".png"
	}
}
