package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var (
	ErrNotFound      = errors.New("booking not found")
	ErrKostNotFound  = errors.New("kost not found")
	ErrBadTransition = errors.New("invalid status transition")
)

type CreateInput struct {
	ExternalID     string    `json:"external_id"`
	KostID         string    `json:"kost_id"`
	Tenant         Tenant    `json:"tenant"`
	PaymentMethod  string    `json:"payment_method"`
	StartDate      time.Time `json:"start_date"`
	DurationMonths int       `json:"duration_months"`
}

const bookingColumns = `id, external_id, owner_id, kost_id,
	tenant_name, tenant_email, tenant_phone, tenant_occupation,
	duration_months, start_date, end_date,
	amount, payment_method, payment_status, booking_status,
	created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	var status string
	err := row.Scan(&b.ID, &b.ExternalID, &b.OwnerID, &b.KostID,
		&b.Tenant.Name, &b.Tenant.Email, &b.Tenant.Phone, &b.Tenant.Occupation,
		&b.DurationMonths, &b.StartDate, &b.EndDate,
		&b.Payment.Amount, &b.Payment.Method, &b.Payment.Status, &status,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Booking{}, err
	}
	b.Status = Status(status)
	return b, nil
}

// CreateBookingTx: idempotent via external_id.
// - jika external_id sudah ada -> return existing booking_id + amount (existed=true).
// - owner & harga diambil dari row kost (hindari trust dari client).
func (r *Repo) CreateBookingTx(ctx context.Context, in CreateInput) (bookingID string, amount float64, existed bool, err error) {
	// cek existing by external_id
	row := r.DB.QueryRow(ctx, `SELECT id, amount FROM bookings WHERE external_id=$1`, in.ExternalID)
	if err = row.Scan(&bookingID, &amount); err == nil {
		return bookingID, amount, true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", 0, false, err
	}

	if in.DurationMonths < 1 {
		return "", 0, false, fmt.Errorf("invalid duration: %d", in.DurationMonths)
	}
	if in.PaymentMethod != MethodMidtrans && in.PaymentMethod != MethodCash {
		return "", 0, false, fmt.Errorf("invalid payment method: %s", in.PaymentMethod)
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", 0, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerID string
	var price float64
	err = tx.QueryRow(ctx, `SELECT owner_id, price FROM kosts WHERE id=$1`, in.KostID).Scan(&ownerID, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, false, ErrKostNotFound
	} else if err != nil {
		return "", 0, false, err
	}

	amount = price * float64(in.DurationMonths)
	bookingID = uuid.NewString()
	end := EndDate(in.StartDate, in.DurationMonths)

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings(id, external_id, owner_id, kost_id,
			tenant_name, tenant_email, tenant_phone, tenant_occupation,
			duration_months, start_date, end_date,
			amount, payment_method, payment_status, booking_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,'pending','pending')
	`, bookingID, in.ExternalID, ownerID, in.KostID,
		in.Tenant.Name, in.Tenant.Email, in.Tenant.Phone, in.Tenant.Occupation,
		in.DurationMonths, in.StartDate, end,
		amount, in.PaymentMethod)
	if err != nil {
		return "", 0, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", 0, false, err
	}
	return bookingID, amount, false, nil
}

func (r *Repo) GetBooking(ctx context.Context, id string) (Booking, error) {
	b, err := scanBooking(r.DB.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	return b, err
}

// ListByOwner mengembalikan seluruh booking milik satu owner, urut created_at.
// Filter owner_id wajib di query ini; semua agregasi stats bergantung padanya.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]Booking, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE owner_id=$1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdatePayment: pending -> paid | failed. Saat paid, booking pending ikut
// naik ke ordered (aturan penulis status, bukan bagian agregasi).
func (r *Repo) UpdatePayment(ctx context.Context, id, to string) (Booking, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Booking{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var payStatus string
	var status Status
	err = tx.QueryRow(ctx, `SELECT payment_status, booking_status FROM bookings WHERE id=$1 FOR UPDATE`, id).
		Scan(&payStatus, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	} else if err != nil {
		return Booking{}, err
	}

	if !CanTransitionPayment(payStatus, to) {
		return Booking{}, fmt.Errorf("%w: payment %s -> %s", ErrBadTransition, payStatus, to)
	}

	next := status
	if to == PaymentPaid && CanTransition(status, StatusOrdered) {
		next = StatusOrdered
	}
	_, err = tx.Exec(ctx, `UPDATE bookings SET payment_status=$2, booking_status=$3, updated_at=now()
		WHERE id=$1`, id, to, string(next))
	if err != nil {
		return Booking{}, err
	}

	b, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return Booking{}, err
	}
	return b, tx.Commit(ctx)
}

func (r *Repo) Cancel(ctx context.Context, id string) (Booking, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Booking{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status Status
	err = tx.QueryRow(ctx, `SELECT booking_status FROM bookings WHERE id=$1 FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	} else if err != nil {
		return Booking{}, err
	}

	if !CanTransition(status, StatusCancelled) {
		return Booking{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, status, StatusCancelled)
	}
	if _, err := tx.Exec(ctx, `UPDATE bookings SET booking_status='cancelled', updated_at=now()
		WHERE id=$1`, id); err != nil {
		return Booking{}, err
	}

	b, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return Booking{}, err
	}
	return b, tx.Commit(ctx)
}
