package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

type BookingForm struct {
	PackageID       string
	FullName        string
	Email           string
	Phone           string
	Travelers       int
	TravelDate      string
	PaymentMethod   domain.PaymentMethod
	SpecialRequests string
}

type BookingService struct {
	packages datasource.PackageSource
	bookings datasource.BookingSource
	users    datasource.UserSource
}

func NewBookingService(packages datasource.PackageSource, bookings datasource.BookingSource, users datasource.UserSource) *BookingService {
	return &BookingService{packages: packages, bookings: bookings, users: users}
}

// Prefill returns a form with the package defaults and the current user's contact details.
func (s *BookingService) Prefill(ctx context.Context, packageID string) (*domain.TravelPackage, BookingForm, error) {
	pkg, err := s.findPackage(ctx, packageID)
	if err != nil {
		return nil, BookingForm{}, err
	}
	form := BookingForm{
		PackageID:     pkg.ID,
		Travelers:     1,
		PaymentMethod: domain.PaymentVisa,
	}
	if len(pkg.AvailableDates) > 0 {
		form.TravelDate = pkg.AvailableDates[0]
	}
	if me := s.users.Me(ctx); me != nil {
		form.FullName = me.Name
		form.Email = me.Email
		form.Phone = me.Mobile
	}
	return pkg, form, nil
}

// Checkout creates a confirmed booking priced at package price times travelers.
func (s *BookingService) Checkout(ctx context.Context, f BookingForm) (*domain.Booking, error) {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	switch {
	case f.FullName == "":
		return nil, invalid("Please enter the lead traveler's full name.")
	case f.Email == "":
		return nil, invalid("Please enter a contact email.")
	case !emailPattern.MatchString(f.Email):
		return nil, invalid("Please enter a valid email address.")
	case f.Travelers < 1:
		return nil, domain.ErrInvalidTravelers
	}
	if f.PaymentMethod == "" {
		f.PaymentMethod = domain.PaymentVisa
	}
	if !f.PaymentMethod.Valid() {
		return nil, invalid("Unsupported payment method.")
	}

	pkg, err := s.findPackage(ctx, f.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, domain.ErrPackageInactive
	}
	if pkg.MaxTravelers != nil && *pkg.MaxTravelers > 0 && f.Travelers > *pkg.MaxTravelers {
		return nil, invalid(fmt.Sprintf("This package allows at most %d travelers.", *pkg.MaxTravelers))
	}
	travelDate := f.TravelDate
	if travelDate == "" && len(pkg.AvailableDates) > 0 {
		travelDate = pkg.AvailableDates[0]
	}
	if travelDate != "" && len(pkg.AvailableDates) > 0 && !slices.Contains(pkg.AvailableDates, travelDate) {
		return nil, invalid("Please pick one of the available dates.")
	}

	created, err := s.bookings.Create(ctx, domain.Booking{
		PackageID:         domain.FlexID(pkg.ID),
		PackageTitle:      pkg.Title,
		TravelerName:      f.FullName,
		TravelerEmail:     f.Email,
		TravelerPhone:     strings.TrimSpace(f.Phone),
		NumberOfTravelers: f.Travelers,
		TravelDate:        travelDate,
		TotalAmount:       pkg.Price.Mul(decimal.NewFromInt(int64(f.Travelers))),
		Status:            domain.BookingConfirmed,
		PaymentMethod:     f.PaymentMethod,
		SpecialRequests:   strings.TrimSpace(f.SpecialRequests),
		ProviderID:        domain.FlexID(pkg.ProviderID),
		ProviderName:      pkg.ProviderName,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return created, nil
}

// Confirmation loads a booking for the confirmation view. Travelers see
// their own bookings, companies the ones filed under their company id and
// admins all of them; anything else reads as not found.
func (s *BookingService) Confirmation(ctx context.Context, u *domain.AuthUser, id string) (*domain.Booking, error) {
	if u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	switch {
	case u.Role == domain.RoleAdmin:
	case u.Email != "" && strings.EqualFold(b.TravelerEmail, u.Email):
	case u.Role == domain.RoleCompany && u.CompanyID != "" && b.ProviderID == u.CompanyID:
	default:
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

// ForTraveler lists bookings made with email, newest first.
func (s *BookingService) ForTraveler(ctx context.Context, email string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx, domain.BookingQuery{Sort: "-created_date"})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if strings.EqualFold(b.TravelerEmail, email) {
			out = append(out, b)
		}
	}
	return out, nil
}

// findPackage falls back to scanning the listing when direct lookup fails.
func (s *BookingService) findPackage(ctx context.Context, id string) (*domain.TravelPackage, error) {
	pkg, err := s.packages.Get(ctx, id)
	if err == nil {
		return pkg, nil
	}
	all, listErr := s.packages.List(ctx, domain.PackageQuery{})
	if listErr != nil {
		return nil, fmt.Errorf("find package: %w", errors.Join(err, listErr))
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, domain.ErrPackageNotFound
}
