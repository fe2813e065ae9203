package service

import (
	"context"
	"testing"
	"time"

	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type companyFixture struct {
	svc       *CompanyService
	admin     *AdminService
	companies *datasource.LocalCompanies
	packages  *datasource.LocalPackages
	bookings  *datasource.LocalBookings
}

func newCompanyFixture() companyFixture {
	st := store.NewMemoryStore()
	f := companyFixture{
		companies: datasource.NewLocalCompanies(st),
		packages:  datasource.NewLocalPackages(st),
		bookings:  datasource.NewLocalBookings(st),
	}
	f.svc = NewCompanyService(f.companies, f.packages, f.bookings)
	f.admin = NewAdminService(f.companies, f.packages, f.bookings)
	return f
}

func TestComputeCompanyStats(t *testing.T) {
	packages := []domain.TravelPackage{{StarRating: 4.5}, {StarRating: 4.0}, {StarRating: 4.8}}
	bookings := []domain.Booking{
		{Status: domain.BookingConfirmed, TotalAmount: decimal.NewFromInt(1000)},
		{Status: domain.BookingPending, TotalAmount: decimal.NewFromInt(700)},
		{Status: domain.BookingConfirmed, TotalAmount: decimal.RequireFromString("250.50")},
	}

	stats := ComputeCompanyStats(packages, bookings)
	assert.Equal(t, 3, stats.TotalPackages)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, 4.4, stats.AverageRating)
	assert.Equal(t, 45, stats.SearchAppearances)

	empty := ComputeCompanyStats(nil, nil)
	assert.Zero(t, empty.AverageRating)
	assert.True(t, empty.TotalRevenue.IsZero())
}

func TestCompanyService_DashboardFlow(t *testing.T) {
	f := newCompanyFixture()
	ctx := context.Background()
	owner := &domain.AuthUser{Email: "ops@acme.io", Role: domain.RoleCompany, CompanyID: "acme-42"}

	dash, err := f.svc.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "My Travel Company", dash.Company.CompanyName)
	assert.Empty(t, dash.Packages)

	created, err := f.svc.AddPackage(ctx, owner, PackageInput{
		Title:       "Porto Food Tour",
		Destination: "Porto",
		Price:       decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-42", created.ProviderID)
	assert.Equal(t, "My Travel Company", created.ProviderName)
	assert.Equal(t, "7", created.ID, "six seeded packages precede it")

	_, err = f.bookings.Create(ctx, domain.Booking{PackageID: domain.FlexID(created.ID), NumberOfTravelers: 2, Status: domain.BookingConfirmed, TotalAmount: decimal.NewFromInt(600)})
	require.NoError(t, err)
	_, err = f.bookings.Create(ctx, domain.Booking{PackageID: "1", NumberOfTravelers: 1, Status: domain.BookingConfirmed, TotalAmount: decimal.NewFromInt(99)})
	require.NoError(t, err)

	dash, err = f.svc.Dashboard(ctx, owner)
	require.NoError(t, err)
	require.Len(t, dash.Packages, 1)
	require.Len(t, dash.Bookings, 1)
	assert.True(t, dash.Stats.TotalRevenue.Equal(decimal.NewFromInt(600)))

	toggled, err := f.svc.ToggleActive(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	stranger := &domain.AuthUser{Email: "other@x.io", Role: domain.RoleCompany}
	_, err = f.svc.ToggleActive(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, f.svc.DeletePackage(ctx, stranger, created.ID), domain.ErrForbidden)

	require.NoError(t, f.svc.DeletePackage(ctx, owner, created.ID))
	dash, err = f.svc.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, dash.Packages)
}

func TestCompanyService_AddPackageValidation(t *testing.T) {
	f := newCompanyFixture()
	owner := &domain.AuthUser{Email: "ops@acme.io"}

	_, err := f.svc.AddPackage(context.Background(), owner, PackageInput{Destination: "Porto"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.AddPackage(context.Background(), owner, PackageInput{Title: "x", Destination: "y", TransportType: "boat"})
	assert.ErrorAs(t, err, &vErr)
}

func TestCompanyService_UpdateProfileKeepsVerification(t *testing.T) {
	f := newCompanyFixture()
	owner := &domain.AuthUser{Email: "ops@acme.io"}

	c, err := f.svc.UpdateProfile(context.Background(), owner, datasource.Patch{
		"company_name": "Acme Travel",
		"is_verified":  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Travel", c.CompanyName)
	assert.False(t, c.IsVerified)
}

func TestCompanyService_UpdateProfileRules(t *testing.T) {
	f := newCompanyFixture()
	ctx := context.Background()
	owner := &domain.AuthUser{Email: "ops@acme.io", Role: domain.RoleCompany}

	_, err := f.svc.UpdateProfile(ctx, owner, datasource.Patch{"company_type": domain.CompanyType("airline")})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = f.svc.UpdateProfile(ctx, owner, datasource.Patch{"company_name": "  "})
	require.ErrorAs(t, err, &vErr)

	c, err := f.svc.UpdateProfile(ctx, owner, datasource.Patch{"is_active": false})
	require.NoError(t, err)
	assert.True(t, c.IsActive, "suspension is an admin decision")

	c, err = f.svc.UpdateProfile(ctx, owner, datasource.Patch{
		"company_type":  domain.CompanyTourOperator,
		"contact_phone": "+351 21 000 0000",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyTourOperator, c.CompanyType)
	assert.Equal(t, "+351 21 000 0000", c.ContactPhone)
}

func TestCompanyService_SignedOutUser(t *testing.T) {
	f := newCompanyFixture()
	ctx := context.Background()

	_, err := f.svc.Dashboard(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = f.svc.AddPackage(ctx, nil, PackageInput{Title: "Porto", Destination: "Porto"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = f.svc.ToggleActive(ctx, nil, "1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, f.svc.DeletePackage(ctx, nil, "1"), domain.ErrNotAuthenticated)
	_, err = f.svc.UpdateProfile(ctx, nil, datasource.Patch{"company_name": "x"})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestComputePlatformStats(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	companies := []domain.Company{
		{ContactEmail: "a@co.io", IsVerified: true},
		{ContactEmail: "b@co.io"},
	}
	packages := []domain.TravelPackage{{IsActive: true}, {IsActive: false}, {IsActive: true}}
	booking := func(email string, created time.Time, status domain.BookingStatus, amount int64) domain.Booking {
		return domain.Booking{TravelerEmail: email, CreatedDate: created, Status: status, TotalAmount: decimal.NewFromInt(amount)}
	}
	bookings := []domain.Booking{
		booking("jane@x.com", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), domain.BookingConfirmed, 100),
		booking("JANE@x.com", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), domain.BookingConfirmed, 200),
		booking("bob@x.com", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), domain.BookingCancelled, 300),
		booking("amy@x.com", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), domain.BookingConfirmed, 400),
		booking("amy@x.com", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), domain.BookingPending, 50),
		booking("old@x.com", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), domain.BookingPending, 50),
	}

	stats := ComputePlatformStats(companies, packages, bookings, now)
	assert.Equal(t, 6, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalCompanies)
	assert.Equal(t, 3, stats.TotalPackages)
	assert.Equal(t, 6, stats.TotalBookings)
	assert.Equal(t, 2, stats.ActivePackages)
	assert.Equal(t, 1, stats.VerifiedCompanies)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 50.0, stats.MonthlyGrowth)
}

func TestAdminService_Toggles(t *testing.T) {
	f := newCompanyFixture()
	ctx := context.Background()
	c, err := f.companies.Create(ctx, domain.Company{CompanyName: "Acme", ContactEmail: "a@co.io", IsActive: true})
	require.NoError(t, err)

	c, err = f.admin.ToggleVerified(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, c.IsVerified)

	c, err = f.admin.ToggleCompanyActive(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, c.IsActive)

	overview, err := f.admin.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Stats.VerifiedCompanies)
	assert.Equal(t, 6, overview.Stats.TotalPackages)
}
