package booking

import "time"

// Tenant adalah pihak penyewa pada satu booking. Email dipakai sebagai
// identitas tenant di seluruh agregasi (tidak ada entity tenant terpisah).
type Tenant struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
}

type Payment struct {
	Method string  `json:"method"` // midtrans | cash
	Status string  `json:"status"` // pending | paid | failed
	Amount float64 `json:"amount"`
}

type Booking struct {
	ID             string
	ExternalID     string
	OwnerID        string
	KostID         string
	Tenant         Tenant
	DurationMonths int
	StartDate      time.Time
	EndDate        time.Time
	Payment        Payment
	Status         Status // lihat status.go
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EndDate = start + durasi bulan kalender.
func EndDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}
