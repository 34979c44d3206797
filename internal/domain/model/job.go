//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// ErrContactRequired is returned when a render job carries no usable
// WhatsApp contact number.
var ErrContactRequired = errors.New("whatsapp number is required")

// RenderJob describes one catalog generation request: the uploaded inputs,
// the contact number products link to, and where both rendered variants land.
// The backing input files are deleted once both documents are produced,
// successfully or not.
type RenderJob struct {
	ID        string
	CSVPath   string
	LogoPath  string
	WhatsApp  string // digits only
	CreatedAt time.Time

	// Output paths for the two rendering passes.
	WatermarkedPath string
	CleanPath       string
}

// OutputName returns the on-disk file name for one variant of a job.
func OutputName(jobID string, watermarked bool) string {
	if watermarked {
		return fmt.Sprintf("CATA_%s_watermark.pdf", jobID)
	}
	return fmt.Sprintf("CATA_%s.pdf", jobID)
}

// OutputPath returns the full path for one variant of a job.
func OutputPath(outputDir, jobID string, watermarked bool) string {
	return filepath.Join(outputDir, OutputName(jobID, watermarked))
}

// NormalizeWhatsApp strips every non-digit rune from a raw contact number.
func NormalizeWhatsApp(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the invariants a render job must hold before rendering.
func (j *RenderJob) Validate() error {
	if j.WhatsApp == "" {
		return ErrContactRequired
	}
	if j.CSVPath == "" {
		return errors.New("csv path is required")
	}
	return nil
}
