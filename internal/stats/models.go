package stats

import "time"

// Report adalah satu laporan komposit untuk dashboard owner.
// Semua slice selalu non-nil supaya JSON-nya `[]`, bukan `null`.
type Report struct {
	BasicStats         BasicStats          `json:"basicStats"`
	MonthlyStats       []MonthlyStat       `json:"monthlyStats"`
	PopularKosts       []PopularKost       `json:"popularKosts"` // top 5
	TenantStats        []TenantStat        `json:"tenantStats"`  // top 10
	DurationStats      []DurationStat      `json:"durationStats"`
	PaymentAnalytics   []PaymentAnalytic   `json:"paymentAnalytics"`
	OccupancyMetrics   OccupancyMetrics    `json:"occupancyMetrics"`
	TenantDemographics []TenantDemographic `json:"tenantDemographics"`
	FacilitiesStats    []FacilityStat      `json:"facilitiesStats"`
	ReviewStats        []ReviewStat        `json:"reviewStats"`
	GrowthMetrics      GrowthMetrics       `json:"growthMetrics"`
	TenantRetention    float64             `json:"tenantRetention"`
}

type BasicStats struct {
	TotalOrders     int          `json:"totalOrders"`
	TotalKosts      int          `json:"totalKosts"`
	PendingPayments int          `json:"pendingPayments"`
	PaidPayments    int          `json:"paidPayments"`
	RevenueStats    RevenueStats `json:"revenueStats"`
}

// RevenueStats default-nya objek nol (owner tanpa booking), bukan null.
type RevenueStats struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	AverageRevenue  float64 `json:"averageRevenue"`
	MaxRevenue      float64 `json:"maxRevenue"`
	MinRevenue      float64 `json:"minRevenue"`
	PendingRevenue  float64 `json:"pendingRevenue"`
	PaidRevenue     float64 `json:"paidRevenue"`
	CashRevenue     float64 `json:"cashRevenue"`
	TransferRevenue float64 `json:"transferRevenue"`
}

// MonthlyStat: bucket per (tahun, bulan) dari start_date booking.
type MonthlyStat struct {
	Year             int      `json:"year"`
	Month            int      `json:"month"` // 1..12
	Revenue          float64  `json:"revenue"`
	TotalOrders      int      `json:"totalOrders"`
	PendingOrders    int      `json:"pendingOrders"`
	PaidOrders       int      `json:"paidOrders"`
	CashPayments     int      `json:"cashPayments"`
	TransferPayments int      `json:"transferPayments"`
	AverageDuration  float64  `json:"averageDuration"`
	TotalDuration    int      `json:"totalDuration"`
	UniqueTenants    int      `json:"uniqueTenants"`
	Occupations      []string `json:"occupations"`
}

type PopularKost struct {
	KostID          string  `json:"kostId"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	City            string  `json:"city"`
	KostType        string  `json:"type"`
	Price           float64 `json:"price"`
	BookingCount    int     `json:"bookingCount"`
	TotalRevenue    float64 `json:"totalRevenue"`
	AverageDuration float64 `json:"averageDuration"`
	UniqueTenants   int     `json:"uniqueTenants"`
}

// TenantStat: name/phone/occupation diambil dari booking pertama tenant
// (urutan created_at, lihat Repo.ListByOwner).
type TenantStat struct {
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Occupation      string    `json:"occupation"`
	TotalBookings   int       `json:"totalBookings"`
	TotalSpent      float64   `json:"totalSpent"`
	AverageDuration float64   `json:"averageDuration"`
	LastBooking     time.Time `json:"lastBooking"`
}

type DurationStat struct {
	DurationMonths int     `json:"durationMonths"`
	Count          int     `json:"count"`
	AverageRevenue float64 `json:"averageRevenue"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

type PaymentAnalytic struct {
	Status        string  `json:"status"`
	Method        string  `json:"method"`
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
}

type OccupancyMetrics struct {
	CurrentlyOccupied int `json:"currentlyOccupied"`
	UpcomingBookings  int `json:"upcomingBookings"`
	EndingSoon        int `json:"endingSoon"`
}

type TenantDemographic struct {
	Occupation      string  `json:"occupation"`
	Count           int     `json:"count"`
	AverageDuration float64 `json:"averageDuration"`
	AveragePayment  float64 `json:"averagePayment"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

type FacilityStat struct {
	Facility   string   `json:"facility"`
	Count      int      `json:"count"`
	Kosts      []string `json:"kosts"`
	Percentage float64  `json:"percentage"`
}

type ReviewEntry struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewStat struct {
	KostID        string        `json:"kostId"`
	Name          string        `json:"name"`
	TotalReviews  int           `json:"totalReviews"`
	AverageRating float64       `json:"averageRating"` // 1 desimal
	Reviews       []ReviewEntry `json:"reviews"`
}

type GrowthMetrics struct {
	OrderGrowth   float64 `json:"orderGrowth"`
	RevenueGrowth float64 `json:"revenueGrowth"`
}
