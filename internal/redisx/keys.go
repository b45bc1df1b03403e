package redisx

import "time"

const (
	// Sesi login owner: session:{token} -> owner_id.
	// Diisi oleh auth service; di sini hanya dibaca.
	KeySession = "session:%s"

	// Idempotency create booking: idem:booking:create:{external_id} -> booking_id
	KeyIdemBookingCreate = "idem:booking:create:%s"

	// Cache status booking: booking_status:{booking_id} -> {"bookingStatus":"...","paymentStatus":"..."}
	KeyBookingStatus = "booking_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
