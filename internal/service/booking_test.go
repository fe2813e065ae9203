package service

import (
	"context"
	"testing"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(t *testing.T, packages ...domain.TravelPackage) (*BookingService, *datasource.LocalBookings) {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, store.WriteList(context.Background(), st, config.StoreKeyPackages, packages))
	bookings := datasource.NewLocalBookings(st)
	return NewBookingService(datasource.NewLocalPackages(st), bookings, datasource.PlaceholderUsers{}), bookings
}

func knownPackage() domain.TravelPackage {
	return domain.TravelPackage{
		ID:             "42",
		Title:          "Lisbon Weekend",
		Destination:    "Lisbon",
		Price:          decimal.NewFromInt(500),
		AvailableDates: []string{"2025-06-01", "2025-07-01"},
		StarRating:     4.5,
		ProviderID:     "3",
		ProviderName:   "Atlas Journeys",
		IsActive:       true,
	}
}

func TestCheckout_JaneDoeTwoTravelers(t *testing.T) {
	svc, bookings := newBookingFixture(t, knownPackage())

	b, err := svc.Checkout(context.Background(), BookingForm{
		PackageID: "42",
		FullName:  "Jane Doe",
		Email:     "jane@x.com",
		Travelers: 2,
	})
	require.NoError(t, err)

	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(1000)), "total %s", b.TotalAmount)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentVisa, b.PaymentMethod)
	assert.Equal(t, "2025-06-01", b.TravelDate)
	assert.Equal(t, "Lisbon Weekend", b.PackageTitle)
	assert.Equal(t, domain.FlexID("3"), b.ProviderID)

	stored, err := bookings.Get(context.Background(), string(b.ID))
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(1000)))
}

func TestCheckout_Rejections(t *testing.T) {
	inactive := knownPackage()
	inactive.ID = "43"
	inactive.IsActive = false
	svc, _ := newBookingFixture(t, knownPackage(), inactive)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, BookingForm{PackageID: "42", Email: "jane@x.com", Travelers: 1})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Checkout(ctx, BookingForm{PackageID: "42", FullName: "Jane", Email: "jane@x.com", Travelers: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidTravelers)

	_, err = svc.Checkout(ctx, BookingForm{PackageID: "43", FullName: "Jane", Email: "jane@x.com", Travelers: 1})
	assert.ErrorIs(t, err, domain.ErrPackageInactive)

	_, err = svc.Checkout(ctx, BookingForm{PackageID: "999", FullName: "Jane", Email: "jane@x.com", Travelers: 1})
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)

	_, err = svc.Checkout(ctx, BookingForm{PackageID: "42", FullName: "Jane", Email: "jane@x.com", Travelers: 1, TravelDate: "2030-01-01"})
	assert.ErrorAs(t, err, &vErr)
}

func TestPrefill_UsesFirstDateAndPlaceholderUser(t *testing.T) {
	svc, _ := newBookingFixture(t, knownPackage())

	pkg, form, err := svc.Prefill(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon Weekend", pkg.Title)
	assert.Equal(t, "2025-06-01", form.TravelDate)
	assert.Equal(t, 1, form.Travelers)
	assert.Equal(t, "Current User", form.FullName)
}

func TestForTraveler(t *testing.T) {
	svc, _ := newBookingFixture(t, knownPackage())
	ctx := context.Background()
	for _, email := range []string{"jane@x.com", "bob@x.com", "JANE@x.com"} {
		_, err := svc.Checkout(ctx, BookingForm{PackageID: "42", FullName: "T", Email: email, Travelers: 1})
		require.NoError(t, err)
	}

	list, err := svc.ForTraveler(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestConfirmation_VisibleToOwnerProviderAndAdmin(t *testing.T) {
	svc, _ := newBookingFixture(t, knownPackage())
	ctx := context.Background()
	b, err := svc.Checkout(ctx, BookingForm{PackageID: "42", FullName: "Jane Doe", Email: "jane@x.com", Travelers: 1})
	require.NoError(t, err)
	id := string(b.ID)

	tests := []struct {
		name    string
		user    *domain.AuthUser
		wantErr error
	}{
		{"traveler", &domain.AuthUser{Email: "JANE@x.com", Role: domain.RoleTraveler}, nil},
		{"provider", &domain.AuthUser{Email: "ops@atlas.io", Role: domain.RoleCompany, CompanyID: "3"}, nil},
		{"admin", &domain.AuthUser{Email: "root@hub.io", Role: domain.RoleAdmin}, nil},
		{"other traveler", &domain.AuthUser{Email: "bob@x.com", Role: domain.RoleTraveler}, domain.ErrBookingNotFound},
		{"other company", &domain.AuthUser{Email: "ops@acme.io", Role: domain.RoleCompany, CompanyID: "9"}, domain.ErrBookingNotFound},
		{"signed out", nil, domain.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Confirmation(ctx, tt.user, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID)
			assert.Equal(t, "Lisbon Weekend", got.PackageTitle)
		})
	}

	_, err = svc.Confirmation(ctx, &domain.AuthUser{Role: domain.RoleAdmin}, "999")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
