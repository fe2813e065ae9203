package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

type LocalBookings struct {
	t *table[domain.Booking]
}

func NewLocalBookings(st store.Store) *LocalBookings {
	return &LocalBookings{t: &table[domain.Booking]{
		store: st,
		key:   config.StoreKeyBookings,
		id:    func(b *domain.Booking) *string { return (*string)(&b.ID) },
		onCreate: func(b *domain.Booking) {
			if b.CreatedDate.IsZero() {
				b.CreatedDate = time.Now().UTC()
			}
			if b.Status == "" {
				b.Status = domain.BookingPending
			}
		},
	}}
}

func (s *LocalBookings) List(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	list, err := s.t.all(ctx)
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, b := range list {
		if q.PackageID != "" && string(b.PackageID) != q.PackageID {
			continue
		}
		out = append(out, b)
	}
	sortBookings(out, q.Sort)
	return out, nil
}

func (s *LocalBookings) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.t.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s *LocalBookings) Create(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	if b.NumberOfTravelers < 1 {
		return nil, domain.ErrInvalidTravelers
	}
	return s.t.create(ctx, b)
}

func (s *LocalBookings) Update(ctx context.Context, id string, patch Patch) (*domain.Booking, error) {
	b, err := s.t.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s *LocalBookings) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, id)
}

func sortBookings(list []domain.Booking, order string) {
	field, desc := parseSort(order)
	switch field {
	case "created_date":
		sortBy(list, desc, func(b *domain.Booking) int64 { return b.CreatedDate.UnixNano() })
	case "total_amount":
		sortBy(list, desc, func(b *domain.Booking) float64 { return b.TotalAmount.InexactFloat64() })
	case "travel_date":
		sortBy(list, desc, func(b *domain.Booking) string { return b.TravelDate })
	}
}

type RemoteBookings struct {
	api *api.BookingsAPI
}

func NewRemoteBookings(a *api.BookingsAPI) *RemoteBookings {
	return &RemoteBookings{api: a}
}

func (s *RemoteBookings) List(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	params := api.Params{}
	if q.PackageID != "" {
		params["packageId"] = q.PackageID
	}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	list, err := s.api.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

func (s *RemoteBookings) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *RemoteBookings) Create(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	if b.NumberOfTravelers < 1 {
		return nil, domain.ErrInvalidTravelers
	}
	created, err := s.api.Create(ctx, &b)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return created, nil
}

func (s *RemoteBookings) Update(ctx context.Context, id string, patch Patch) (*domain.Booking, error) {
	b, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return b, nil
}

func (s *RemoteBookings) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

type FallbackBookings struct {
	Remote BookingSource
	Local  BookingSource
}

func (s *FallbackBookings) List(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	return fallback(ctx, "booking", "list",
		func() ([]domain.Booking, error) { return s.Remote.List(ctx, q) },
		func() ([]domain.Booking, error) { return s.Local.List(ctx, q) })
}

func (s *FallbackBookings) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return fallback(ctx, "booking", "get",
		func() (*domain.Booking, error) { return s.Remote.Get(ctx, id) },
		func() (*domain.Booking, error) { return s.Local.Get(ctx, id) })
}

func (s *FallbackBookings) Create(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	if b.NumberOfTravelers < 1 {
		return nil, domain.ErrInvalidTravelers
	}
	return fallback(ctx, "booking", "create",
		func() (*domain.Booking, error) { return s.Remote.Create(ctx, b) },
		func() (*domain.Booking, error) { return s.Local.Create(ctx, b) })
}

func (s *FallbackBookings) Update(ctx context.Context, id string, patch Patch) (*domain.Booking, error) {
	return fallback(ctx, "booking", "update",
		func() (*domain.Booking, error) { return s.Remote.Update(ctx, id, patch) },
		func() (*domain.Booking, error) { return s.Local.Update(ctx, id, patch) })
}

func (s *FallbackBookings) Delete(ctx context.Context, id string) error {
	_, err := fallback(ctx, "booking", "delete",
		func() (struct{}, error) { return struct{}{}, s.Remote.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.Local.Delete(ctx, id) })
	return err
}
