//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// PaymentRecord is the durable per-job payment confirmation. It is created or
// overwritten by an inbound payment notification and read by the status
// endpoint. Records are never deleted by this service.
type PaymentRecord struct {
	JobID string `json:"job_id"`
	Paid  bool   `json:"paid"`

	// PaidAt is nil until a payment notification has been recorded.
	PaidAt *time.Time `json:"paid_at,omitempty"`

	// Info carries the raw notification fields for operator inspection.
	Info map[string]string `json:"info,omitempty"`
}
