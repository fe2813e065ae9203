package domain

import "github.com/shopspring/decimal"

// AnalyticsFilters select the window and scope of company analytics.
// Dates are YYYY-MM-DD; empty PackageID/Destination mean "all".
type AnalyticsFilters struct {
	From        string
	To          string
	PackageID   string
	Destination string
}

type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type Series struct {
	Label string        `json:"label"`
	Data  []SeriesPoint `json:"data"`
}

type Funnel struct {
	Impressions   int `json:"impressions"`
	Clicks        int `json:"clicks"`
	BookingStarts int `json:"bookingStarts"`
	Bookings      int `json:"bookings"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthCount struct {
	Month    string `json:"month"`
	Bookings int    `json:"bookings"`
}

// AnalyticsSummary is pre-aggregated by the backend; the client only renders it.
type AnalyticsSummary struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Bookings        int             `json:"bookings"`
	Travelers       int             `json:"travelers"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`
	ConversionRate  float64         `json:"conversionRate"`
	Funnel          Funnel          `json:"funnel"`
	StatusBreakdown []StatusCount   `json:"statusBreakdown"`
	BookingsByMonth []MonthCount    `json:"bookingsByMonth"`
	Series          []Series        `json:"series"`
}

type TopPackage struct {
	PackageID FlexID          `json:"packageId"`
	Title     string          `json:"title"`
	Revenue   decimal.Decimal `json:"revenue"`
	Bookings  int             `json:"bookings"`
}

type RecentBooking struct {
	ID           FlexID          `json:"id"`
	PackageID    FlexID          `json:"packageId"`
	PackageTitle string          `json:"packageTitle"`
	TravelerName string          `json:"travelerName"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CreatedAt    string          `json:"createdAt"`
}

type PackageOption struct {
	ID    FlexID `json:"id"`
	Title string `json:"title"`
}

type DestinationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
