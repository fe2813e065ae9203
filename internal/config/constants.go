package config

import "time"

const (
	// Offer mapping defaults
	PlaceholderImageURL = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=1200&h=800&fit=crop"
	DefaultStarRating   = 4.5
	MinStarRating       = 1.0
	MaxStarRating       = 5.0

	// Persisted keys of the local mock store
	StoreKeyPackages  = "travel_packages"
	StoreKeyBookings  = "bookings"
	StoreKeyChat      = "chat_messages"
	StoreKeyCompanies = "companies"
	StoreKeyToken     = "auth_token"

	// Postgres mock store pool
	DBMaxConns = 4
	DBMinConns = 1

	// Company analytics filter bar
	FilterDebounce       = 250 * time.Millisecond
	PackageQueryDebounce = 250 * time.Millisecond
	TopPackagesSort      = "revenue"
	TopPackagesLimit     = 20
	RecentBookingsLimit  = 20

	// Chat suggestions
	SuggestLimit = 10
	SuggestSort  = "price:asc"

	// Company dashboard
	DefaultCompanyName      = "My Travel Company"
	SearchAppearancesFactor = 15

	// Per-chat rate limit
	RateLimitPerMinute = 20
	RateLimitBurst     = 5

	// Telegram rendering
	MaxTelegramMessageLen = 4096
	PackagesPerPage       = 5
	DescriptionPreviewLen = 280

	// Search listing reuse window
	ListingCacheTTL = 30 * time.Second

	ShutdownTimeout = 5 * time.Second
)

// AnalyticsPresets are the quick date ranges offered by the filter bar, in days.
var AnalyticsPresets = []int{7, 30, 90}
