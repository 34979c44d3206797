package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cataworks/cata-api/internal/core"
	apperrors "github.com/cataworks/cata-api/internal/errors"
	"github.com/cataworks/cata-api/internal/paddle"
)

// PaymentHandlers provides HTTP handlers for the Paddle payment flow.
type PaymentHandlers struct {
	Payments core.PaymentRepository
	PayLinks core.PayLinkCreator
	Verifier *paddle.Verifier // nil when no webhook public key is configured
	Logger   *slog.Logger
}

// Checkout creates a hosted pay link for unlocking a job's unbranded catalog.
func (h *PaymentHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job")
	if jobID == "" {
		WriteAppError(w, apperrors.Validation("job query parameter is required"))
		return
	}

	if h.PayLinks == nil {
		WriteAppError(w, apperrors.Unavailable("payment gateway not configured"))
		return
	}

	url, err := h.PayLinks.CreatePayLink(r.Context(), jobID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "checkout failed", "job_id", jobID, "error", err)
		WriteAppError(w, err)
		return
	}

	h.logger().InfoContext(r.Context(), "checkout created", "job_id", jobID)
	WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook processes form-encoded Paddle notifications. The detached signature
// must verify before any state changes; a rejected signature leaves no trace
// beyond a log line.
func (h *PaymentHandlers) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.Verifier == nil || h.Payments == nil {
		WriteAppError(w, apperrors.Unavailable("webhook processing not configured"))
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	signature := fields[paddle.SignatureField]
	delete(fields, paddle.SignatureField)

	if err := h.Verifier.Verify(fields, signature); err != nil {
		h.logger().WarnContext(r.Context(), "webhook signature rejected",
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		WriteAppError(w, apperrors.Unauthorized("invalid signature"))
		return
	}

	alertName := fields["alert_name"]
	if alertName == "" {
		alertName = fields["alert_type"]
	}
	passthrough := fields["passthrough"]

	if strings.Contains(strings.ToLower(alertName), "payment") && passthrough != "" {
		if err := h.Payments.MarkPaid(r.Context(), passthrough, fields); err != nil {
			h.logger().ErrorContext(r.Context(), "failed to record payment",
				"job_id", passthrough,
				"error", err,
			)
			WriteAppError(w, err)
			return
		}
		h.logger().InfoContext(r.Context(), "job marked paid", "job_id", passthrough, "alert", alertName)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports whether a job's unbranded catalog is unlocked.
func (h *PaymentHandlers) Status(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job")
	if jobID == "" {
		WriteAppError(w, apperrors.Validation("job query parameter is required"))
		return
	}

	if h.Payments == nil {
		WriteAppError(w, apperrors.Unavailable("payment store not configured"))
		return
	}

	paid, err := h.Payments.IsPaid(r.Context(), jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	resp := map[string]any{"paid": paid}
	if paid {
		resp["download"] = "/download/" + jobID + "?watermark=0"
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
