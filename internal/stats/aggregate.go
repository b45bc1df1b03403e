package stats

import (
	"math"
	"sort"
	"time"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	"github.com/ariefcatur/go-kost-market.git/internal/kost"
)

// Semua pass di file ini pure: (bookings/kosts milik satu owner, now) -> hasil.
// Scoping owner terjadi sekali di query fetch, bukan per pass.

const (
	popularKostLimit = 5
	tenantStatLimit  = 10

	// Horizon "segera": 30 hari dari now yang dibekukan per laporan.
	soonWindow = 30 * 24 * time.Hour
)

// GrowthRate = (current-previous)/previous*100, dijaga dari pembagian nol:
// previous nol -> 0, tidak pernah NaN/Inf. Pertumbuhan negatif valid.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

// Growth membandingkan window 1 bulan terakhir vs 1 bulan sebelumnya
// (bucket berdasarkan created_at booking).
func Growth(bookings []booking.Booking, now time.Time) GrowthMetrics {
	curFrom := now.AddDate(0, -1, 0)
	prevFrom := now.AddDate(0, -2, 0)

	var curOrders, prevOrders int
	var curRevenue, prevRevenue float64
	for _, b := range bookings {
		t := b.CreatedAt
		switch {
		case !t.Before(curFrom) && !t.After(now):
			curOrders++
			curRevenue += b.Payment.Amount
		case !t.Before(prevFrom) && t.Before(curFrom):
			prevOrders++
			prevRevenue += b.Payment.Amount
		}
	}
	return GrowthMetrics{
		OrderGrowth:   GrowthRate(float64(curOrders), float64(prevOrders)),
		RevenueGrowth: GrowthRate(curRevenue, prevRevenue),
	}
}

// RevenueSummary: satu pass untuk total/avg/max/min plus sum bersyarat
// per status dan per metode. Tanpa booking -> objek nol.
func RevenueSummary(bookings []booking.Booking) RevenueStats {
	var rs RevenueStats
	if len(bookings) == 0 {
		return rs
	}
	rs.MinRevenue = bookings[0].Payment.Amount
	for _, b := range bookings {
		amt := b.Payment.Amount
		rs.TotalRevenue += amt
		if amt > rs.MaxRevenue {
			rs.MaxRevenue = amt
		}
		if amt < rs.MinRevenue {
			rs.MinRevenue = amt
		}
		switch b.Payment.Status {
		case booking.PaymentPending:
			rs.PendingRevenue += amt
		case booking.PaymentPaid:
			rs.PaidRevenue += amt
		}
		switch b.Payment.Method {
		case booking.MethodCash:
			rs.CashRevenue += amt
		case booking.MethodMidtrans:
			rs.TransferRevenue += amt
		}
	}
	rs.AverageRevenue = round2(rs.TotalRevenue / float64(len(bookings)))
	return rs
}

func Basic(bookings []booking.Booking, kosts []kost.Kost) BasicStats {
	bs := BasicStats{
		TotalOrders:  len(bookings),
		TotalKosts:   len(kosts),
		RevenueStats: RevenueSummary(bookings),
	}
	for _, b := range bookings {
		switch b.Payment.Status {
		case booking.PaymentPending:
			bs.PendingPayments++
		case booking.PaymentPaid:
			bs.PaidPayments++
		}
	}
	return bs
}

// Monthly mengelompokkan per (tahun, bulan) dari start_date (bukan created_at),
// urut bucket terbaru dulu.
func Monthly(bookings []booking.Booking) []MonthlyStat {
	type key struct{ year, month int }
	type acc struct {
		MonthlyStat
		tenants     map[string]bool
		occupations map[string]bool
	}
	buckets := map[key]*acc{}
	for _, b := range bookings {
		k := key{b.StartDate.Year(), int(b.StartDate.Month())}
		a := buckets[k]
		if a == nil {
			a = &acc{
				MonthlyStat: MonthlyStat{Year: k.year, Month: k.month},
				tenants:     map[string]bool{},
				occupations: map[string]bool{},
			}
			buckets[k] = a
		}
		a.Revenue += b.Payment.Amount
		a.TotalOrders++
		switch b.Payment.Status {
		case booking.PaymentPending:
			a.PendingOrders++
		case booking.PaymentPaid:
			a.PaidOrders++
		}
		switch b.Payment.Method {
		case booking.MethodCash:
			a.CashPayments++
		case booking.MethodMidtrans:
			a.TransferPayments++
		}
		a.TotalDuration += b.DurationMonths
		a.tenants[b.Tenant.Email] = true
		if b.Tenant.Occupation != "" {
			a.occupations[b.Tenant.Occupation] = true
		}
	}

	out := make([]MonthlyStat, 0, len(buckets))
	for _, a := range buckets {
		a.AverageDuration = round2(float64(a.TotalDuration) / float64(a.TotalOrders))
		a.UniqueTenants = len(a.tenants)
		a.Occupations = sortedKeys(a.occupations)
		out = append(out, a.MonthlyStat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// Popular: group by kost_id lalu join ke data kost. Kost tanpa booking tidak
// pernah muncul (hanya booking yang mendorong agregasi ini). Top 5.
func Popular(bookings []booking.Booking, kosts []kost.Kost) []PopularKost {
	byID := make(map[string]kost.Kost, len(kosts))
	for _, k := range kosts {
		byID[k.ID] = k
	}

	type acc struct {
		PopularKost
		totalDuration int
		tenants       map[string]bool
	}
	groups := map[string]*acc{}
	for _, b := range bookings {
		a := groups[b.KostID]
		if a == nil {
			a = &acc{PopularKost: PopularKost{KostID: b.KostID}, tenants: map[string]bool{}}
			if k, ok := byID[b.KostID]; ok {
				a.Name, a.Location, a.City = k.Name, k.Location, k.City
				a.KostType, a.Price = k.KostType, k.Price
			}
			groups[b.KostID] = a
		}
		a.BookingCount++
		a.TotalRevenue += b.Payment.Amount
		a.totalDuration += b.DurationMonths
		a.tenants[b.Tenant.Email] = true
	}

	out := make([]PopularKost, 0, len(groups))
	for _, a := range groups {
		a.AverageDuration = round2(float64(a.totalDuration) / float64(a.BookingCount))
		a.UniqueTenants = len(a.tenants)
		out = append(out, a.PopularKost)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingCount != out[j].BookingCount {
			return out[i].BookingCount > out[j].BookingCount
		}
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].KostID < out[j].KostID
	})
	if len(out) > popularKostLimit {
		out = out[:popularKostLimit]
	}
	return out
}

// Tenants: group by email; name/phone/occupation dari kemunculan pertama pada
// urutan input (fetch sudah urut created_at, jadi deterministik). Top 10.
func Tenants(bookings []booking.Booking) []TenantStat {
	type acc struct {
		TenantStat
		totalDuration int
	}
	groups := map[string]*acc{}
	for _, b := range bookings {
		a := groups[b.Tenant.Email]
		if a == nil {
			a = &acc{TenantStat: TenantStat{
				Email:      b.Tenant.Email,
				Name:       b.Tenant.Name,
				Phone:      b.Tenant.Phone,
				Occupation: b.Tenant.Occupation,
			}}
			groups[b.Tenant.Email] = a
		}
		a.TotalBookings++
		a.TotalSpent += b.Payment.Amount
		a.totalDuration += b.DurationMonths
		if b.StartDate.After(a.LastBooking) {
			a.LastBooking = b.StartDate
		}
	}

	out := make([]TenantStat, 0, len(groups))
	for _, a := range groups {
		a.AverageDuration = round2(float64(a.totalDuration) / float64(a.TotalBookings))
		out = append(out, a.TenantStat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalBookings != out[j].TotalBookings {
			return out[i].TotalBookings > out[j].TotalBookings
		}
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Email < out[j].Email
	})
	if len(out) > tenantStatLimit {
		out = out[:tenantStatLimit]
	}
	return out
}

// Durations: group by lama sewa (bulan), urut naik.
func Durations(bookings []booking.Booking) []DurationStat {
	groups := map[int]*DurationStat{}
	for _, b := range bookings {
		a := groups[b.DurationMonths]
		if a == nil {
			a = &DurationStat{DurationMonths: b.DurationMonths}
			groups[b.DurationMonths] = a
		}
		a.Count++
		a.TotalRevenue += b.Payment.Amount
	}
	out := make([]DurationStat, 0, len(groups))
	for _, a := range groups {
		a.AverageRevenue = round2(a.TotalRevenue / float64(a.Count))
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DurationMonths < out[j].DurationMonths })
	return out
}

// Payments: group by pasangan (status, metode) sebagai field eksplisit.
// Diurutkan (status, method) supaya laporan berulang identik byte-per-byte.
func Payments(bookings []booking.Booking) []PaymentAnalytic {
	type key struct{ status, method string }
	groups := map[key]*PaymentAnalytic{}
	for _, b := range bookings {
		k := key{b.Payment.Status, b.Payment.Method}
		a := groups[k]
		if a == nil {
			a = &PaymentAnalytic{Status: k.status, Method: k.method}
			groups[k] = a
		}
		a.Count++
		a.TotalAmount += b.Payment.Amount
	}
	out := make([]PaymentAnalytic, 0, len(groups))
	for _, a := range groups {
		a.AverageAmount = round2(a.TotalAmount / float64(a.Count))
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Demographics: group by pekerjaan tenant, urut count turun.
func Demographics(bookings []booking.Booking) []TenantDemographic {
	type acc struct {
		TenantDemographic
		totalDuration int
	}
	groups := map[string]*acc{}
	for _, b := range bookings {
		a := groups[b.Tenant.Occupation]
		if a == nil {
			a = &acc{TenantDemographic: TenantDemographic{Occupation: b.Tenant.Occupation}}
			groups[b.Tenant.Occupation] = a
		}
		a.Count++
		a.totalDuration += b.DurationMonths
		a.TotalRevenue += b.Payment.Amount
	}
	out := make([]TenantDemographic, 0, len(groups))
	for _, a := range groups {
		a.AverageDuration = round2(float64(a.totalDuration) / float64(a.Count))
		a.AveragePayment = round2(a.TotalRevenue / float64(a.Count))
		out = append(out, a.TenantDemographic)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Occupation < out[j].Occupation
	})
	return out
}

// Occupancy: tiga hitungan point-in-time, semua dibatasi booking_status=ordered
// dan memakai now beku yang sama.
func Occupancy(bookings []booking.Booking, now time.Time) OccupancyMetrics {
	horizon := now.Add(soonWindow)
	var m OccupancyMetrics
	for _, b := range bookings {
		if b.Status != booking.StatusOrdered {
			continue
		}
		if !b.EndDate.Before(now) {
			m.CurrentlyOccupied++
		}
		if !b.StartDate.Before(now) && !b.StartDate.After(horizon) {
			m.UpcomingBookings++
		}
		if !b.EndDate.Before(now) && !b.EndDate.After(horizon) {
			m.EndingSoon++
		}
	}
	return m
}

// Reviews: per kost yang punya >=1 review; rating rata-rata 1 desimal;
// urut jumlah review turun.
func Reviews(kosts []kost.Kost) []ReviewStat {
	out := make([]ReviewStat, 0, len(kosts))
	for _, k := range kosts {
		if len(k.Reviews) == 0 {
			continue
		}
		rs := ReviewStat{
			KostID:       k.ID,
			Name:         k.Name,
			TotalReviews: len(k.Reviews),
			Reviews:      make([]ReviewEntry, 0, len(k.Reviews)),
		}
		var sum int
		for _, rv := range k.Reviews {
			sum += rv.Rating
			rs.Reviews = append(rs.Reviews, ReviewEntry{
				Rating:    rv.Rating,
				Comment:   rv.Comment,
				CreatedAt: rv.CreatedAt,
			})
		}
		rs.AverageRating = round1(float64(sum) / float64(len(k.Reviews)))
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalReviews != out[j].TotalReviews {
			return out[i].TotalReviews > out[j].TotalReviews
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Facilities: per string fasilitas, berapa kost yang memilikinya.
// TODO: konfirmasi ke product apakah persentase dihitung dari total kost owner
// atau basis lain; sementara pakai total kost owner.
func Facilities(kosts []kost.Kost) []FacilityStat {
	groups := map[string]*FacilityStat{}
	for _, k := range kosts {
		for _, f := range k.Facilities {
			a := groups[f]
			if a == nil {
				a = &FacilityStat{Facility: f, Kosts: []string{}}
				groups[f] = a
			}
			a.Count++
			a.Kosts = append(a.Kosts, k.Name)
		}
	}
	out := make([]FacilityStat, 0, len(groups))
	for _, a := range groups {
		if len(kosts) > 0 {
			a.Percentage = round2(float64(a.Count) / float64(len(kosts)) * 100)
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Facility < out[j].Facility
	})
	return out
}

// Retention: persentase tenant dengan lebih dari satu booking di antara semua
// tenant distinct milik owner. Tanpa tenant -> 0.
func Retention(bookings []booking.Booking) float64 {
	counts := map[string]int{}
	for _, b := range bookings {
		counts[b.Tenant.Email]++
	}
	if len(counts) == 0 {
		return 0
	}
	returning := 0
	for _, n := range counts {
		if n > 1 {
			returning++
		}
	}
	return round2(float64(returning) / float64(len(counts)) * 100)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
