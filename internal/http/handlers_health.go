package httpx

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cataworks/cata-api/internal/core"
)

// Version is the reported service version.
const Version = "2.0.0"

// HealthHandlers reports service health and basic file metrics.
type HealthHandlers struct {
	OutputDir string
	TmpDir    string
	Registry  core.JobRegistry // nil when Redis is not configured

	// Configuration booleans surfaced for operators.
	PaddleConfigured  bool
	WebhookConfigured bool
	SweeperEnabled    bool
}

// Health returns liveness plus which optional subsystems are wired.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"modules": map[string]bool{
			"checkout": h.PaddleConfigured,
			"webhook":  h.WebhookConfigured,
			"registry": h.Registry != nil,
		},
		"config": map[string]bool{
			"paddle_configured": h.PaddleConfigured,
			"cleanup_enabled":   h.SweeperEnabled,
		},
	})
}

// Metrics returns output/tmp file counts and sizes, plus the registry job
// count when a registry is wired.
func (h *HealthHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	outputCount, outputBytes := dirStats(h.OutputDir, ".pdf")
	tmpCount, _ := dirStats(h.TmpDir, "")

	resp := map[string]any{
		"files": map[string]any{
			"output_count":   outputCount,
			"temp_count":     tmpCount,
			"output_size_mb": float64(outputBytes) / (1024 * 1024),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.Registry != nil {
		if count, err := h.Registry.Count(r.Context()); err == nil {
			resp["jobs"] = map[string]any{"registered": count}
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// dirStats counts regular files (optionally filtered by extension) and their
// total size. A missing directory reads as empty.
func dirStats(dir, ext string) (int, int64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}

	var (
		count int
		size  int64
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		count++
		if info, infoErr := entry.Info(); infoErr == nil {
			size += info.Size()
		}
	}
	return count, size
}
