package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	kafkax "github.com/ariefcatur/go-kost-market.git/internal/kafka"
	"github.com/ariefcatur/go-kost-market.git/internal/redisx"
)

type BookingHandler struct {
	Repo           *booking.Repo
	Producer       *kafkax.Producer // booking.created
	ProducerCancel *kafkax.Producer // booking.cancelled
	Redis          *redis.Client
	Service        string
}

type CreateBookingResp struct {
	BookingID  string  `json:"booking_id"`
	Amount     float64 `json:"amount"`
	Idempotent bool    `json:"idempotent"`
}

func (h *BookingHandler) createBooking(w http.ResponseWriter, r *http.Request) {
	var in booking.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if in.ExternalID == "" || in.KostID == "" || in.Tenant.Email == "" || in.StartDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookingID, amount, existed, err := h.Repo.CreateBookingTx(ctx, in)
	if errors.Is(err, booking.ErrKostNotFound) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Simpan shortcut idempotency di Redis (TTL 24h)
	idemKey := fmt.Sprintf(redisx.KeyIdemBookingCreate, in.ExternalID)
	_ = h.Redis.Set(ctx, idemKey, bookingID, redisx.TTLIdempotency).Err()

	// Cache status awal agar GET cepat
	h.cacheStatus(ctx, bookingID, booking.StatusPending, booking.PaymentPending)

	// Publish event (envelope v1)
	b, err := h.Repo.GetBooking(ctx, bookingID)
	if err == nil {
		ev := booking.Envelope{
			EventID:       uuid.NewString(),
			EventType:     booking.EventBookingCreated,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: bookingID,
		}
		ev.Payload = kafkax.MustMarshal(booking.BookingCreatedPayload{
			BookingID:      bookingID,
			ExternalID:     b.ExternalID,
			OwnerID:        b.OwnerID,
			KostID:         b.KostID,
			TenantName:     b.Tenant.Name,
			TenantEmail:    b.Tenant.Email,
			StartDate:      b.StartDate,
			DurationMonths: b.DurationMonths,
			Amount:         b.Payment.Amount,
			PaymentMethod:  b.Payment.Method,
		})
		h.Producer.Publish(booking.PartitionKey(bookingID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(booking.EventBookingCreated)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusAccepted, CreateBookingResp{BookingID: bookingID, Amount: amount, Idempotent: existed})
}

func (h *BookingHandler) getBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	key := fmt.Sprintf(redisx.KeyBookingStatus, bookingID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// 2) fallback DB
	b, err := h.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	h.cacheStatus(ctx, bookingID, b.Status, b.Payment.Status)
	writeJSON(w, http.StatusOK, statusBody(b.Status, b.Payment.Status))
}

func (h *BookingHandler) cancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Repo.Cancel(ctx, bookingID)
	if errors.Is(err, booking.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	} else if errors.Is(err, booking.ErrBadTransition) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.cacheStatus(ctx, bookingID, b.Status, b.Payment.Status)

	ev := booking.Envelope{
		EventID:       uuid.NewString(),
		EventType:     booking.EventBookingCancelled,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: bookingID,
	}
	ev.Payload = kafkax.MustMarshal(booking.BookingCancelledPayload{
		BookingID: bookingID,
		OwnerID:   b.OwnerID,
		KostID:    b.KostID,
	})
	h.ProducerCancel.Publish(booking.PartitionKey(bookingID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(booking.EventBookingCancelled)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, statusBody(b.Status, b.Payment.Status))
}

type updatePaymentReq struct {
	Status string `json:"status"` // paid | failed
}

// updatePayment: glue tipis untuk callback gateway / pencatatan kas manual.
func (h *BookingHandler) updatePayment(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	var req updatePaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Status != booking.PaymentPaid && req.Status != booking.PaymentFailed {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Repo.UpdatePayment(ctx, bookingID, req.Status)
	if errors.Is(err, booking.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	} else if errors.Is(err, booking.ErrBadTransition) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.cacheStatus(ctx, bookingID, b.Status, b.Payment.Status)
	writeJSON(w, http.StatusOK, statusBody(b.Status, b.Payment.Status))
}

func statusBody(status booking.Status, payStatus string) map[string]any {
	return map[string]any{"bookingStatus": status, "paymentStatus": payStatus}
}

func (h *BookingHandler) cacheStatus(ctx context.Context, bookingID string, status booking.Status, payStatus string) {
	key := fmt.Sprintf(redisx.KeyBookingStatus, bookingID)
	b, _ := json.Marshal(statusBody(status, payStatus))
	_ = h.Redis.Set(ctx, key, b, redisx.TTLStatusCache).Err()
}
