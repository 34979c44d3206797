package httpx

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	apperrors "github.com/cataworks/cata-api/internal/errors"
)

// uploadSpec describes one accepted multipart file field.
type uploadSpec struct {
	MaxBytes     int64
	AllowedTypes []string // content-type prefixes, e.g. "text/", "image/png"
}

// saveUpload streams one multipart part to dst, enforcing the declared
// content type and the byte ceiling. On any failure the partial file is
// removed so nothing half-written survives the request.
func saveUpload(part *multipart.Part, dst string, spec uploadSpec) error {
	contentType := part.Header.Get("Content-Type")
	if !typeAllowed(contentType, spec.AllowedTypes) {
		return apperrors.Validationf("unsupported content type %q for field %q", contentType, part.FormName())
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(part, spec.MaxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(dst)
		return fmt.Errorf("write upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(dst)
		return fmt.Errorf("close upload: %w", closeErr)
	case written > spec.MaxBytes:
		_ = os.Remove(dst)
		return apperrors.TooLarge(fmt.Sprintf("field %q exceeds %d bytes", part.FormName(), spec.MaxBytes))
	}

	return nil
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// readFormValue reads a small non-file part such as the contact number.
// A hard 1KB cap keeps a mislabelled file part from being buffered.
func readFormValue(part *multipart.Part) (string, error) {
	const maxValueBytes = 1024
	data, err := io.ReadAll(io.LimitReader(part, maxValueBytes+1))
	if err != nil {
		return "", fmt.Errorf("read form value: %w", err)
	}
	if len(data) > maxValueBytes {
		return "", apperrors.Validationf("form value %q too long", part.FormName())
	}
	return strings.TrimSpace(string(data)), nil
}
