package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	"github.com/ariefcatur/go-kost-market.git/internal/kost"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type bk struct {
	kostID     string
	email      string
	name       string
	occupation string
	amount     float64
	payStatus  string
	method     string
	months     int
	start      time.Time
	status     booking.Status
	created    time.Time
}

func mkBooking(b bk) booking.Booking {
	if b.status == "" {
		b.status = booking.StatusOrdered
	}
	if b.payStatus == "" {
		b.payStatus = booking.PaymentPaid
	}
	if b.method == "" {
		b.method = booking.MethodCash
	}
	if b.months == 0 {
		b.months = 1
	}
	if b.start.IsZero() {
		b.start = testNow.AddDate(0, 0, -10)
	}
	if b.created.IsZero() {
		b.created = b.start
	}
	return booking.Booking{
		ID:     b.email + "/" + b.kostID + b.start.Format("20060102"),
		KostID: b.kostID,
		Tenant: booking.Tenant{
			Name: b.name, Email: b.email, Phone: "0812", Occupation: b.occupation,
		},
		DurationMonths: b.months,
		StartDate:      b.start,
		EndDate:        booking.EndDate(b.start, b.months),
		Payment:        booking.Payment{Method: b.method, Status: b.payStatus, Amount: b.amount},
		Status:         b.status,
		CreatedAt:      b.created,
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"previous zero", 10, 0, 0},
		{"both zero", 0, 0, 0},
		{"doubled", 20, 10, 100},
		{"negative growth", 5, 10, -50},
		{"fractional", 110, 300, -63.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GrowthRate(tt.current, tt.previous))
		})
	}
}

func TestGrowthWindows(t *testing.T) {
	bookings := []booking.Booking{
		// window berjalan: 1 bulan terakhir
		mkBooking(bk{email: "a@x.id", amount: 300, created: testNow.AddDate(0, 0, -5)}),
		mkBooking(bk{email: "b@x.id", amount: 300, created: testNow.AddDate(0, 0, -20)}),
		// window sebelumnya
		mkBooking(bk{email: "c@x.id", amount: 200, created: testNow.AddDate(0, -1, -10)}),
		// terlalu lama, tidak dihitung
		mkBooking(bk{email: "d@x.id", amount: 900, created: testNow.AddDate(0, -3, 0)}),
	}
	g := Growth(bookings, testNow)
	assert.Equal(t, 100.0, g.OrderGrowth)   // 2 vs 1
	assert.Equal(t, 200.0, g.RevenueGrowth) // 600 vs 200
}

func TestGrowthEmptyPrevious(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 100, created: testNow.AddDate(0, 0, -1)}),
	}
	g := Growth(bookings, testNow)
	assert.Equal(t, 0.0, g.OrderGrowth)
	assert.Equal(t, 0.0, g.RevenueGrowth)
}

func TestRevenueSummary(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 500000, payStatus: booking.PaymentPaid, method: booking.MethodCash}),
		mkBooking(bk{email: "b@x.id", amount: 300000, payStatus: booking.PaymentPending, method: booking.MethodMidtrans}),
	}
	want := RevenueStats{
		TotalRevenue:    800000,
		AverageRevenue:  400000,
		MaxRevenue:      500000,
		MinRevenue:      300000,
		PendingRevenue:  300000,
		PaidRevenue:     500000,
		CashRevenue:     500000,
		TransferRevenue: 300000,
	}
	assert.Equal(t, want, RevenueSummary(bookings))
}

func TestRevenueSummaryEmpty(t *testing.T) {
	assert.Equal(t, RevenueStats{}, RevenueSummary(nil))
}

func TestRevenueFailedCountsNeither(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 100, payStatus: booking.PaymentPaid}),
		mkBooking(bk{email: "b@x.id", amount: 200, payStatus: booking.PaymentPending}),
		mkBooking(bk{email: "c@x.id", amount: 400, payStatus: booking.PaymentFailed}),
	}
	rs := RevenueSummary(bookings)
	assert.Equal(t, 700.0, rs.TotalRevenue)
	// failed tidak masuk paid maupun pending
	assert.LessOrEqual(t, rs.PaidRevenue+rs.PendingRevenue, rs.TotalRevenue)
	assert.Equal(t, 100.0, rs.PaidRevenue)
	assert.Equal(t, 200.0, rs.PendingRevenue)
}

func TestBasic(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 100, payStatus: booking.PaymentPaid}),
		mkBooking(bk{email: "b@x.id", amount: 200, payStatus: booking.PaymentPending}),
		mkBooking(bk{email: "c@x.id", amount: 300, payStatus: booking.PaymentFailed}),
	}
	kosts := []kost.Kost{{ID: "k1"}, {ID: "k2"}}
	bs := Basic(bookings, kosts)
	assert.Equal(t, 3, bs.TotalOrders)
	assert.Equal(t, 2, bs.TotalKosts)
	assert.Equal(t, 1, bs.PendingPayments)
	assert.Equal(t, 1, bs.PaidPayments)
	assert.Equal(t, 600.0, bs.RevenueStats.TotalRevenue)
}

func TestMonthlyBucketsByStartDate(t *testing.T) {
	mei := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	juni := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings := []booking.Booking{
		// start Mei tapi dibuat Juni: bucket tetap Mei
		mkBooking(bk{email: "a@x.id", occupation: "mahasiswa", amount: 100, months: 2, start: mei, created: juni, payStatus: booking.PaymentPaid, method: booking.MethodCash}),
		mkBooking(bk{email: "b@x.id", occupation: "karyawan", amount: 200, months: 4, start: mei, payStatus: booking.PaymentPending, method: booking.MethodMidtrans}),
		mkBooking(bk{email: "a@x.id", occupation: "mahasiswa", amount: 300, months: 1, start: juni}),
	}
	out := Monthly(bookings)
	require.Len(t, out, 2)

	// terbaru dulu
	assert.Equal(t, 6, out[0].Month)
	assert.Equal(t, 5, out[1].Month)

	m := out[1]
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, 300.0, m.Revenue)
	assert.Equal(t, 2, m.TotalOrders)
	assert.Equal(t, 1, m.PendingOrders)
	assert.Equal(t, 1, m.PaidOrders)
	assert.Equal(t, 1, m.CashPayments)
	assert.Equal(t, 1, m.TransferPayments)
	assert.Equal(t, 6, m.TotalDuration)
	assert.Equal(t, 3.0, m.AverageDuration)
	assert.Equal(t, 2, m.UniqueTenants)
	assert.Equal(t, []string{"karyawan", "mahasiswa"}, m.Occupations)
}

func TestPopularTopFiveAndJoin(t *testing.T) {
	kosts := []kost.Kost{
		{ID: "k1", Name: "Kost Melati", Location: "Jl. Melati 1", City: "Bandung", KostType: "putri", Price: 900000},
		{ID: "k9", Name: "Kost Sepi"}, // tanpa booking, tidak boleh muncul
	}
	var bookings []booking.Booking
	// k1 paling laris: 3 booking
	for i := 0; i < 3; i++ {
		bookings = append(bookings, mkBooking(bk{kostID: "k1", email: fmt.Sprintf("t%d@x.id", i), amount: 100, months: 2}))
	}
	// enam kost lain masing-masing 1 booking -> total 7 grup, terpotong jadi 5
	for i := 2; i <= 7; i++ {
		bookings = append(bookings, mkBooking(bk{kostID: fmt.Sprintf("k%d", i), email: "z@x.id", amount: 50}))
	}

	out := Popular(bookings, kosts)
	require.Len(t, out, 5)
	top := out[0]
	assert.Equal(t, "k1", top.KostID)
	assert.Equal(t, "Kost Melati", top.Name)
	assert.Equal(t, "Bandung", top.City)
	assert.Equal(t, "putri", top.KostType)
	assert.Equal(t, 900000.0, top.Price)
	assert.Equal(t, 3, top.BookingCount)
	assert.Equal(t, 300.0, top.TotalRevenue)
	assert.Equal(t, 2.0, top.AverageDuration)
	assert.Equal(t, 3, top.UniqueTenants)

	for _, p := range out {
		assert.NotEqual(t, "k9", p.KostID)
		assert.Greater(t, p.BookingCount, 0)
	}
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].BookingCount, out[i].BookingCount)
	}
}

func TestTenantsFirstSeenAndTopTen(t *testing.T) {
	var bookings []booking.Booking
	// tenant a: dua booking, profil diambil dari booking pertama
	bookings = append(bookings,
		mkBooking(bk{email: "a@x.id", name: "Andi", occupation: "mahasiswa", amount: 100, months: 2, start: testNow.AddDate(0, -2, 0)}),
		mkBooking(bk{email: "a@x.id", name: "Andi S.", occupation: "karyawan", amount: 200, months: 4, start: testNow.AddDate(0, -1, 0)}),
	)
	for i := 0; i < 10; i++ {
		bookings = append(bookings, mkBooking(bk{email: fmt.Sprintf("t%d@x.id", i), name: "X", amount: 10}))
	}

	out := Tenants(bookings)
	require.Len(t, out, 10) // 11 tenant distinct, terpotong 10

	top := out[0]
	assert.Equal(t, "a@x.id", top.Email)
	assert.Equal(t, "Andi", top.Name) // kemunculan pertama
	assert.Equal(t, "mahasiswa", top.Occupation)
	assert.Equal(t, 2, top.TotalBookings)
	assert.Equal(t, 300.0, top.TotalSpent)
	assert.Equal(t, 3.0, top.AverageDuration)
	assert.Equal(t, testNow.AddDate(0, -1, 0), top.LastBooking)
}

func TestDurations(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 100, months: 6}),
		mkBooking(bk{email: "b@x.id", amount: 100, months: 1}),
		mkBooking(bk{email: "c@x.id", amount: 200, months: 1}),
	}
	out := Durations(bookings)
	require.Len(t, out, 2)
	// urut naik
	assert.Equal(t, 1, out[0].DurationMonths)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 300.0, out[0].TotalRevenue)
	assert.Equal(t, 150.0, out[0].AverageRevenue)
	assert.Equal(t, 6, out[1].DurationMonths)
}

func TestPaymentsCompositeKey(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", amount: 100, payStatus: booking.PaymentPaid, method: booking.MethodCash}),
		mkBooking(bk{email: "b@x.id", amount: 300, payStatus: booking.PaymentPaid, method: booking.MethodCash}),
		mkBooking(bk{email: "c@x.id", amount: 50, payStatus: booking.PaymentPending, method: booking.MethodMidtrans}),
	}
	out := Payments(bookings)
	require.Len(t, out, 2)
	// urutan deterministik: (status, method) naik
	assert.Equal(t, "paid", out[0].Status)
	assert.Equal(t, "cash", out[0].Method)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 400.0, out[0].TotalAmount)
	assert.Equal(t, 200.0, out[0].AverageAmount)
	assert.Equal(t, "pending", out[1].Status)
	assert.Equal(t, "midtrans", out[1].Method)
}

func TestDemographics(t *testing.T) {
	bookings := []booking.Booking{
		mkBooking(bk{email: "a@x.id", occupation: "mahasiswa", amount: 100, months: 2}),
		mkBooking(bk{email: "b@x.id", occupation: "mahasiswa", amount: 300, months: 4}),
		mkBooking(bk{email: "c@x.id", occupation: "karyawan", amount: 500, months: 1}),
	}
	out := Demographics(bookings)
	require.Len(t, out, 2)
	assert.Equal(t, "mahasiswa", out[0].Occupation)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 3.0, out[0].AverageDuration)
	assert.Equal(t, 200.0, out[0].AveragePayment)
	assert.Equal(t, 400.0, out[0].TotalRevenue)
}

func TestOccupancyFrozenNow(t *testing.T) {
	mk := func(start, end time.Time, st booking.Status) booking.Booking {
		b := mkBooking(bk{email: "x@x.id", amount: 1, status: st})
		b.StartDate, b.EndDate = start, end
		return b
	}
	bookings := []booking.Booking{
		// berakhir kemarin: tidak occupied
		mk(testNow.AddDate(0, -1, 0), testNow.Add(-24*time.Hour), booking.StatusOrdered),
		// berakhir besok: occupied + ending soon
		mk(testNow.AddDate(0, -1, 0), testNow.Add(24*time.Hour), booking.StatusOrdered),
		// mulai 10 hari lagi: upcoming (dan occupied karena end >= now)
		mk(testNow.AddDate(0, 0, 10), testNow.AddDate(0, 3, 0), booking.StatusOrdered),
		// mulai 40 hari lagi: di luar window 30 hari
		mk(testNow.AddDate(0, 0, 40), testNow.AddDate(0, 4, 0), booking.StatusOrdered),
		// bukan ordered: tidak pernah dihitung
		mk(testNow.AddDate(0, 0, 1), testNow.Add(24*time.Hour), booking.StatusPending),
		mk(testNow.AddDate(0, 0, 1), testNow.Add(24*time.Hour), booking.StatusCancelled),
	}
	m := Occupancy(bookings, testNow)
	assert.Equal(t, 3, m.CurrentlyOccupied)
	assert.Equal(t, 1, m.UpcomingBookings)
	assert.Equal(t, 1, m.EndingSoon)
}

func TestReviews(t *testing.T) {
	kosts := []kost.Kost{
		{ID: "k1", Name: "Kost Melati", Reviews: []kost.Review{
			{Reviewer: "a", Rating: 3, Comment: "lumayan", CreatedAt: testNow},
			{Reviewer: "b", Rating: 4},
			{Reviewer: "c", Rating: 4},
		}},
		{ID: "k2", Name: "Kost Anggrek", Reviews: []kost.Review{{Reviewer: "a", Rating: 5}}},
		{ID: "k3", Name: "Kost Kosong"}, // tanpa review: tidak muncul
	}
	out := Reviews(kosts)
	require.Len(t, out, 2)
	assert.Equal(t, "k1", out[0].KostID)
	assert.Equal(t, 3, out[0].TotalReviews)
	assert.Equal(t, 3.7, out[0].AverageRating) // 11/3 dibulatkan 1 desimal
	require.Len(t, out[0].Reviews, 3)
	assert.Equal(t, "lumayan", out[0].Reviews[0].Comment)
	assert.Equal(t, 5.0, out[1].AverageRating)
}

func TestFacilities(t *testing.T) {
	kosts := []kost.Kost{
		{ID: "k1", Name: "Melati", Facilities: []string{"wifi", "ac"}},
		{ID: "k2", Name: "Anggrek", Facilities: []string{"wifi"}},
		{ID: "k3", Name: "Mawar", Facilities: []string{"parkir"}},
		{ID: "k4", Name: "Dahlia"},
	}
	out := Facilities(kosts)
	require.Len(t, out, 3)
	assert.Equal(t, "wifi", out[0].Facility)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, []string{"Melati", "Anggrek"}, out[0].Kosts)
	assert.Equal(t, 50.0, out[0].Percentage) // 2 dari 4 kost
	assert.Equal(t, 25.0, out[1].Percentage)
}

func TestRetention(t *testing.T) {
	tests := []struct {
		name     string
		bookings []booking.Booking
		want     float64
	}{
		{"no tenants", nil, 0},
		{
			"A=3 B=1 C=2",
			[]booking.Booking{
				mkBooking(bk{email: "a@x.id"}), mkBooking(bk{email: "a@x.id"}), mkBooking(bk{email: "a@x.id"}),
				mkBooking(bk{email: "b@x.id"}),
				mkBooking(bk{email: "c@x.id"}), mkBooking(bk{email: "c@x.id"}),
			},
			66.67,
		},
		{"all one-timers", []booking.Booking{mkBooking(bk{email: "a@x.id"}), mkBooking(bk{email: "b@x.id"})}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retention(tt.bookings))
		})
	}
}
