package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

type CompanyStats struct {
	TotalPackages     int
	TotalBookings     int
	TotalRevenue      decimal.Decimal
	AverageRating     float64
	SearchAppearances int
}

type CompanyDashboard struct {
	Company  *domain.Company
	Packages []domain.TravelPackage
	Bookings []domain.Booking
	Stats    CompanyStats
}

// PackageInput is what a company fills in to publish a package.
type PackageInput struct {
	Title              string
	Destination        string
	Description        string
	Price              decimal.Decimal
	OriginalPrice      *decimal.Decimal
	DurationDays       int
	AvailableDates     []string
	TransportType      domain.TransportType
	AccommodationLevel domain.AccommodationLevel
	MaxTravelers       int
	Includes           []string
	Country            string
	Continent          string
	ImageURL           string
}

type CompanyService struct {
	companies datasource.CompanySource
	packages  datasource.PackageSource
	bookings  datasource.BookingSource
}

func NewCompanyService(companies datasource.CompanySource, packages datasource.PackageSource, bookings datasource.BookingSource) *CompanyService {
	return &CompanyService{companies: companies, packages: packages, bookings: bookings}
}

func contactOf(u *domain.AuthUser) string {
	if u.Email != "" {
		return u.Email
	}
	return u.Mobile
}

// Profile returns the company owned by u, creating a default one on first visit.
func (s *CompanyService) Profile(ctx context.Context, u *domain.AuthUser) (*domain.Company, error) {
	if u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	contact := contactOf(u)
	c, err := s.companies.FindByEmail(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("find company: %w", err)
	}
	if c != nil {
		return c, nil
	}
	c, err = s.companies.Create(ctx, domain.Company{
		CompanyName:  config.DefaultCompanyName,
		CompanyType:  domain.CompanyTravelAgency,
		ContactEmail: contact,
		Description:  "Add your company description here",
		IsActive:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// UpdateProfile changes profile fields of the company owned by u.
func (s *CompanyService) UpdateProfile(ctx context.Context, u *domain.AuthUser, patch datasource.Patch) (*domain.Company, error) {
	c, err := s.Profile(ctx, u)
	if err != nil {
		return nil, err
	}
	for _, locked := range []string{"id", "is_verified", "is_active", "total_bookings", "total_revenue", "created_date"} {
		delete(patch, locked)
	}
	if name, ok := patch["company_name"].(string); ok && strings.TrimSpace(name) == "" {
		return nil, invalid("Company name cannot be empty.")
	}
	if v, ok := patch["company_type"]; ok && !domain.CompanyType(fmt.Sprint(v)).Valid() {
		return nil, invalid("Company type must be travel_agency, hotel, transport or tour_operator.")
	}
	if len(patch) == 0 {
		return c, nil
	}
	return s.companies.Update(ctx, c.ID, patch)
}

// providerID is the id packages of u are filed under: the backend company id
// when the session carries one, otherwise the local profile id.
func (s *CompanyService) providerID(ctx context.Context, u *domain.AuthUser) (string, *domain.Company, error) {
	c, err := s.Profile(ctx, u)
	if err != nil {
		return "", nil, err
	}
	if u.CompanyID != "" {
		return string(u.CompanyID), c, nil
	}
	return c.ID, c, nil
}

func (s *CompanyService) Dashboard(ctx context.Context, u *domain.AuthUser) (*CompanyDashboard, error) {
	providerID, company, err := s.providerID(ctx, u)
	if err != nil {
		return nil, err
	}
	packages, err := s.packages.List(ctx, domain.PackageQuery{ProviderID: providerID, Sort: "-created_date"})
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	bookings := []domain.Booking{}
	if len(packages) > 0 {
		ids := make([]string, len(packages))
		for i, p := range packages {
			ids[i] = p.ID
		}
		all, err := s.bookings.List(ctx, domain.BookingQuery{Sort: "-created_date"})
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		for _, b := range all {
			if slices.Contains(ids, string(b.PackageID)) {
				bookings = append(bookings, b)
			}
		}
	}

	return &CompanyDashboard{
		Company:  company,
		Packages: packages,
		Bookings: bookings,
		Stats:    ComputeCompanyStats(packages, bookings),
	}, nil
}

// ComputeCompanyStats counts revenue of confirmed bookings only and rounds the
// average rating to one decimal.
func ComputeCompanyStats(packages []domain.TravelPackage, bookings []domain.Booking) CompanyStats {
	stats := CompanyStats{
		TotalPackages:     len(packages),
		TotalBookings:     len(bookings),
		TotalRevenue:      decimal.Zero,
		SearchAppearances: len(packages) * config.SearchAppearancesFactor,
	}
	for _, b := range bookings {
		if b.Status == domain.BookingConfirmed {
			stats.TotalRevenue = stats.TotalRevenue.Add(b.TotalAmount)
		}
	}
	if len(packages) > 0 {
		var sum float64
		for _, p := range packages {
			sum += p.StarRating
		}
		stats.AverageRating = math.Round(sum/float64(len(packages))*10) / 10
	}
	return stats
}

func (s *CompanyService) AddPackage(ctx context.Context, u *domain.AuthUser, in PackageInput) (*domain.TravelPackage, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Destination = strings.TrimSpace(in.Destination)
	switch {
	case in.Title == "":
		return nil, invalid("Please enter a package title.")
	case in.Destination == "":
		return nil, invalid("Please enter a destination.")
	case in.Price.IsNegative():
		return nil, invalid("Price cannot be negative.")
	case in.TransportType != "" && !in.TransportType.Valid():
		return nil, invalid("Transport must be flight, bus, train or car.")
	case in.AccommodationLevel != "" && !in.AccommodationLevel.Valid():
		return nil, invalid("Accommodation must be budget, standard, luxury or premium.")
	}

	providerID, company, err := s.providerID(ctx, u)
	if err != nil {
		return nil, err
	}
	providerName := company.CompanyName
	if providerName == "" {
		providerName = config.DefaultCompanyName
	}
	pkg := domain.TravelPackage{
		Title:              in.Title,
		Destination:        in.Destination,
		Description:        strings.TrimSpace(in.Description),
		Price:              in.Price,
		OriginalPrice:      in.OriginalPrice,
		ImageURL:           in.ImageURL,
		AvailableDates:     in.AvailableDates,
		StarRating:         config.DefaultStarRating,
		TransportType:      in.TransportType,
		AccommodationLevel: in.AccommodationLevel,
		Includes:           in.Includes,
		ProviderID:         providerID,
		ProviderName:       providerName,
		IsActive:           true,
		Country:            in.Country,
		Continent:          in.Continent,
	}
	if pkg.ImageURL == "" {
		pkg.ImageURL = config.PlaceholderImageURL
	}
	if pkg.AvailableDates == nil {
		pkg.AvailableDates = []string{}
	}
	if in.DurationDays > 0 {
		pkg.DurationDays = &in.DurationDays
	}
	if in.MaxTravelers > 0 {
		pkg.MaxTravelers = &in.MaxTravelers
	}
	created, err := s.packages.Create(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	return created, nil
}

// owned loads package id and checks it belongs to u.
func (s *CompanyService) owned(ctx context.Context, u *domain.AuthUser, id string) (*domain.TravelPackage, error) {
	providerID, _, err := s.providerID(ctx, u)
	if err != nil {
		return nil, err
	}
	pkg, err := s.packages.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}
	if pkg.ProviderID != providerID && u.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return pkg, nil
}

func (s *CompanyService) ToggleActive(ctx context.Context, u *domain.AuthUser, id string) (*domain.TravelPackage, error) {
	pkg, err := s.owned(ctx, u, id)
	if err != nil {
		return nil, err
	}
	return s.packages.Update(ctx, id, datasource.Patch{"is_active": !pkg.IsActive})
}

func (s *CompanyService) DeletePackage(ctx context.Context, u *domain.AuthUser, id string) error {
	if _, err := s.owned(ctx, u, id); err != nil {
		return err
	}
	return s.packages.Delete(ctx, id)
}
