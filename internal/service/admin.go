package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

type PlatformStats struct {
	TotalUsers        int
	TotalCompanies    int
	TotalPackages     int
	TotalBookings     int
	TotalRevenue      decimal.Decimal
	ActivePackages    int
	VerifiedCompanies int
	// MonthlyGrowth is the booking count change against the previous month, in percent.
	MonthlyGrowth float64
}

type AdminOverview struct {
	Stats     PlatformStats
	Companies []domain.Company
	Packages  []domain.TravelPackage
	Bookings  []domain.Booking
}

type AdminService struct {
	companies datasource.CompanySource
	packages  datasource.PackageSource
	bookings  datasource.BookingSource
	now       func() time.Time
}

func NewAdminService(companies datasource.CompanySource, packages datasource.PackageSource, bookings datasource.BookingSource) *AdminService {
	return &AdminService{companies: companies, packages: packages, bookings: bookings, now: time.Now}
}

func (s *AdminService) Overview(ctx context.Context) (*AdminOverview, error) {
	companies, err := s.companies.List(ctx, "-created_date")
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	packages, err := s.packages.List(ctx, domain.PackageQuery{Sort: "-created_date"})
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	bookings, err := s.bookings.List(ctx, domain.BookingQuery{Sort: "-created_date"})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &AdminOverview{
		Stats:     ComputePlatformStats(companies, packages, bookings, s.now()),
		Companies: companies,
		Packages:  packages,
		Bookings:  bookings,
	}, nil
}

// ComputePlatformStats derives platform totals. Users are the distinct
// traveler emails seen in bookings plus company contacts.
func ComputePlatformStats(companies []domain.Company, packages []domain.TravelPackage, bookings []domain.Booking, now time.Time) PlatformStats {
	stats := PlatformStats{
		TotalCompanies: len(companies),
		TotalPackages:  len(packages),
		TotalBookings:  len(bookings),
		TotalRevenue:   decimal.Zero,
	}
	users := make(map[string]struct{})
	for _, c := range companies {
		if c.IsVerified {
			stats.VerifiedCompanies++
		}
		if c.ContactEmail != "" {
			users[strings.ToLower(c.ContactEmail)] = struct{}{}
		}
	}
	for _, p := range packages {
		if p.IsActive {
			stats.ActivePackages++
		}
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	var current, previous int
	for _, b := range bookings {
		if b.Status == domain.BookingConfirmed {
			stats.TotalRevenue = stats.TotalRevenue.Add(b.TotalAmount)
		}
		if b.TravelerEmail != "" {
			users[strings.ToLower(b.TravelerEmail)] = struct{}{}
		}
		created := b.CreatedDate.In(now.Location())
		switch {
		case !created.Before(thisMonth):
			current++
		case !created.Before(lastMonth):
			previous++
		}
	}
	stats.TotalUsers = len(users)
	if previous > 0 {
		growth := float64(current-previous) / float64(previous) * 100
		stats.MonthlyGrowth = math.Round(growth*10) / 10
	}
	return stats
}

func (s *AdminService) ToggleVerified(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, companyID, datasource.Patch{"is_verified": !c.IsVerified})
}

func (s *AdminService) ToggleCompanyActive(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, companyID, datasource.Patch{"is_active": !c.IsActive})
}

// SetBookingStatus records a status change decided by an operator.
func (s *AdminService) SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		return nil, invalid("Status must be pending, confirmed, cancelled or completed.")
	}
	return s.bookings.Update(ctx, bookingID, datasource.Patch{"status": status})
}
