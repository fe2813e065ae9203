package datasource

import (
	"context"
	"log/slog"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

// Patch is a partial update keyed by the entity's JSON field names.
type Patch map[string]any

type PackageSource interface {
	List(ctx context.Context, q domain.PackageQuery) ([]domain.TravelPackage, error)
	Get(ctx context.Context, id string) (*domain.TravelPackage, error)
	Create(ctx context.Context, p domain.TravelPackage) (*domain.TravelPackage, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.TravelPackage, error)
	Delete(ctx context.Context, id string) error
}

type BookingSource interface {
	List(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, b domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type ChatSource interface {
	List(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	Get(ctx context.Context, id string) (*domain.ChatMessage, error)
	Create(ctx context.Context, m domain.ChatMessage) (*domain.ChatMessage, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.ChatMessage, error)
	Delete(ctx context.Context, id string) error
}

type CompanySource interface {
	List(ctx context.Context, sort string) ([]domain.Company, error)
	FindByEmail(ctx context.Context, email string) (*domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	Create(ctx context.Context, c domain.Company) (*domain.Company, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.Company, error)
}

type UserSource interface {
	Me(ctx context.Context) *domain.AuthUser
}

// Sources bundles the entity facades chosen for this process.
type Sources struct {
	Packages  PackageSource
	Bookings  BookingSource
	Chat      ChatSource
	Companies CompanySource
	Users     UserSource
}

// New picks the strategy once: with the API enabled every remote facade is
// wrapped in a local fallback, otherwise the local mock store serves everything.
func New(cfg *config.Config, client *api.Client, st store.Store) *Sources {
	localPackages := NewLocalPackages(st)
	localBookings := NewLocalBookings(st)
	src := &Sources{
		Packages:  localPackages,
		Bookings:  localBookings,
		Chat:      NewLocalChat(st),
		Companies: NewLocalCompanies(st),
		Users:     PlaceholderUsers{},
	}
	if !cfg.APIEnabled() {
		slog.Info("api integration disabled, using local mock store")
		return src
	}

	src.Packages = &FallbackPackages{
		Remote: NewRemotePackages(api.NewPackagesAPI(client, cfg.Paths)),
		Local:  localPackages,
	}
	src.Bookings = &FallbackBookings{
		Remote: NewRemoteBookings(api.NewBookingsAPI(client, cfg.Paths)),
		Local:  localBookings,
	}
	src.Users = NewRemoteUsers(api.NewAuthAPI(client, cfg.Paths))
	return src
}

func fallback[T any](ctx context.Context, entity, op string, remote, local func() (T, error)) (T, error) {
	v, err := remote()
	if err == nil {
		return v, nil
	}
	slog.WarnContext(ctx, "api call failed, falling back to local store", "entity", entity, "op", op, "error", err)
	return local()
}
