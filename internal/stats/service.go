package stats

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	"github.com/ariefcatur/go-kost-market.git/internal/kost"
)

type BookingSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]booking.Booking, error)
}

type KostSource interface {
	ListByOwner(ctx context.Context, ownerID string) ([]kost.Kost, error)
}

// Service merakit laporan komposit untuk satu owner. Stateless antar request;
// satu timestamp "now" dibekukan per laporan dan dipakai semua pass berbasis waktu.
type Service struct {
	Bookings BookingSource
	Kosts    KostSource
	Now      func() time.Time // override di test; nil -> time.Now
}

// Report menjalankan dua fetch (booking & kost, sudah terfilter owner) secara
// paralel, lalu fan-out semua pass agregasi. Gagal satu fetch -> laporan batal,
// tidak ada hasil parsial.
func (s *Service) Report(ctx context.Context, ownerID string) (*Report, error) {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	var bookings []booking.Booking
	var kosts []kost.Kost

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if bookings, err = s.Bookings.ListByOwner(gctx, ownerID); err != nil {
			return fmt.Errorf("fetch bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if kosts, err = s.Kosts.ListByOwner(gctx, ownerID); err != nil {
			return fmt.Errorf("fetch kosts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Pass-pass di bawah independen satu sama lain; tiap goroutine menulis
	// field laporan yang berbeda.
	rep := &Report{}
	var passes errgroup.Group
	passes.Go(func() error { rep.BasicStats = Basic(bookings, kosts); return nil })
	passes.Go(func() error { rep.MonthlyStats = Monthly(bookings); return nil })
	passes.Go(func() error { rep.PopularKosts = Popular(bookings, kosts); return nil })
	passes.Go(func() error { rep.TenantStats = Tenants(bookings); return nil })
	passes.Go(func() error { rep.DurationStats = Durations(bookings); return nil })
	passes.Go(func() error { rep.PaymentAnalytics = Payments(bookings); return nil })
	passes.Go(func() error { rep.OccupancyMetrics = Occupancy(bookings, now); return nil })
	passes.Go(func() error { rep.TenantDemographics = Demographics(bookings); return nil })
	passes.Go(func() error { rep.FacilitiesStats = Facilities(kosts); return nil })
	passes.Go(func() error { rep.ReviewStats = Reviews(kosts); return nil })
	passes.Go(func() error { rep.GrowthMetrics = Growth(bookings, now); return nil })
	passes.Go(func() error { rep.TenantRetention = Retention(bookings); return nil })
	_ = passes.Wait()

	return rep, nil
}
