package booking

import (
	"encoding/json"
	"time"
)

const (
	EventBookingCreated   = "BookingCreated"
	EventBookingCancelled = "BookingCancelled"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "kost-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya booking_id
	Payload       json.RawMessage `json:"payload"`                  // payload spesifik
}

// ---- Payload tipe per event ----

type BookingCreatedPayload struct {
	BookingID      string    `json:"booking_id"`
	ExternalID     string    `json:"external_id"`
	OwnerID        string    `json:"owner_id"`
	KostID         string    `json:"kost_id"`
	TenantName     string    `json:"tenant_name"`
	TenantEmail    string    `json:"tenant_email"`
	StartDate      time.Time `json:"start_date"`
	DurationMonths int       `json:"duration_months"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
}

type BookingCancelledPayload struct {
	BookingID string `json:"booking_id"`
	OwnerID   string `json:"owner_id"`
	KostID    string `json:"kost_id"`
	Reason    string `json:"reason,omitempty"`
}
