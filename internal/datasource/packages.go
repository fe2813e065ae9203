package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

// LocalPackages serves packages from the mock store, seeding samples on first use.
type LocalPackages struct {
	t *table[domain.TravelPackage]
}

func NewLocalPackages(st store.Store) *LocalPackages {
	return &LocalPackages{t: &table[domain.TravelPackage]{
		store: st,
		key:   config.StoreKeyPackages,
		id:    func(p *domain.TravelPackage) *string { return &p.ID },
		onCreate: func(p *domain.TravelPackage) {
			if p.CreatedDate.IsZero() {
				p.CreatedDate = time.Now().UTC()
			}
			if p.AvailableDates == nil {
				p.AvailableDates = []string{}
			}
		},
	}}
}

func (s *LocalPackages) all(ctx context.Context) ([]domain.TravelPackage, error) {
	list, err := s.t.all(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}
	seed := samplePackages()
	if err := s.t.replaceAll(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed packages: %w", err)
	}
	return seed, nil
}

func (s *LocalPackages) List(ctx context.Context, q domain.PackageQuery) ([]domain.TravelPackage, error) {
	list, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TravelPackage, 0, len(list))
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	for _, p := range list {
		if q.ProviderID != "" && p.ProviderID != q.ProviderID {
			continue
		}
		if needle != "" && !matchesPackage(&p, needle) {
			continue
		}
		out = append(out, p)
	}
	sortPackages(out, q.Sort)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *LocalPackages) Get(ctx context.Context, id string) (*domain.TravelPackage, error) {
	if _, err := s.all(ctx); err != nil {
		return nil, err
	}
	p, err := s.t.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPackageNotFound
	}
	return p, nil
}

func (s *LocalPackages) Create(ctx context.Context, p domain.TravelPackage) (*domain.TravelPackage, error) {
	if _, err := s.all(ctx); err != nil {
		return nil, err
	}
	return s.t.create(ctx, p)
}

func (s *LocalPackages) Update(ctx context.Context, id string, patch Patch) (*domain.TravelPackage, error) {
	p, err := s.t.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPackageNotFound
	}
	return p, nil
}

func (s *LocalPackages) Delete(ctx context.Context, id string) error {
	return s.t.delete(ctx, id)
}

func matchesPackage(p *domain.TravelPackage, needle string) bool {
	for _, field := range []string{p.Title, p.Destination, p.Country, p.Continent, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortPackages(list []domain.TravelPackage, order string) {
	field, desc := parseSort(order)
	switch field {
	case "price":
		sortBy(list, desc, func(p *domain.TravelPackage) float64 { return p.Price.InexactFloat64() })
	case "star_rating", "rating":
		sortBy(list, desc, func(p *domain.TravelPackage) float64 { return p.StarRating })
	case "duration_days", "duration":
		sortBy(list, desc, func(p *domain.TravelPackage) int { return p.Duration() })
	case "title":
		sortBy(list, desc, func(p *domain.TravelPackage) string { return p.Title })
	case "created_date":
		sortBy(list, desc, func(p *domain.TravelPackage) int64 { return p.CreatedDate.UnixNano() })
	}
}

// RemotePackages maps backend offers into packages. Company-owned packages go
// through the company-scoped endpoints.
type RemotePackages struct {
	api *api.PackagesAPI
}

func NewRemotePackages(a *api.PackagesAPI) *RemotePackages {
	return &RemotePackages{api: a}
}

func (s *RemotePackages) List(ctx context.Context, q domain.PackageQuery) ([]domain.TravelPackage, error) {
	var (
		raw any
		err error
	)
	if q.Query != "" {
		raw, err = s.api.Search(ctx, map[string]any{"query": q.Query, "limit": q.Limit, "sort": q.Sort})
	} else {
		params := api.Params{}
		if q.ProviderID != "" {
			params["companyId"] = q.ProviderID
		}
		if q.Sort != "" {
			params["sort"] = q.Sort
		}
		if q.Limit > 0 {
			params["limit"] = q.Limit
		}
		raw, err = s.api.List(ctx, params)
	}
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return api.MapOffersList(raw), nil
}

func (s *RemotePackages) Get(ctx context.Context, id string) (*domain.TravelPackage, error) {
	raw, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	p := api.MapOffer(raw)
	if p == nil {
		return nil, domain.ErrPackageNotFound
	}
	return p, nil
}

func (s *RemotePackages) Create(ctx context.Context, p domain.TravelPackage) (*domain.TravelPackage, error) {
	body := api.OfferFromPackage(&p)
	var (
		raw any
		err error
	)
	if p.ProviderID != "" {
		raw, err = s.api.CompanyCreate(ctx, body)
	} else {
		raw, err = s.api.Create(ctx, body)
	}
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if created := api.MapOffer(raw); created != nil && created.ID != "" {
		return created, nil
	}
	return &p, nil
}

// Update reads the current offer, applies patch and sends the whole offer back.
func (s *RemotePackages) Update(ctx context.Context, id string, patch Patch) (*domain.TravelPackage, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := applyPatch(*current, patch)
	if err != nil {
		return nil, err
	}
	updated.ID = id
	body := api.OfferFromPackage(&updated)

	var raw any
	if updated.ProviderID != "" {
		raw, err = s.api.CompanyUpdate(ctx, id, body)
	} else {
		raw, err = s.api.Update(ctx, id, body)
	}
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	if mapped := api.MapOffer(raw); mapped != nil && mapped.ID != "" {
		return mapped, nil
	}
	return &updated, nil
}

func (s *RemotePackages) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

type FallbackPackages struct {
	Remote PackageSource
	Local  PackageSource
}

func (s *FallbackPackages) List(ctx context.Context, q domain.PackageQuery) ([]domain.TravelPackage, error) {
	return fallback(ctx, "package", "list",
		func() ([]domain.TravelPackage, error) { return s.Remote.List(ctx, q) },
		func() ([]domain.TravelPackage, error) { return s.Local.List(ctx, q) })
}

func (s *FallbackPackages) Get(ctx context.Context, id string) (*domain.TravelPackage, error) {
	return fallback(ctx, "package", "get",
		func() (*domain.TravelPackage, error) { return s.Remote.Get(ctx, id) },
		func() (*domain.TravelPackage, error) { return s.Local.Get(ctx, id) })
}

func (s *FallbackPackages) Create(ctx context.Context, p domain.TravelPackage) (*domain.TravelPackage, error) {
	return fallback(ctx, "package", "create",
		func() (*domain.TravelPackage, error) { return s.Remote.Create(ctx, p) },
		func() (*domain.TravelPackage, error) { return s.Local.Create(ctx, p) })
}

func (s *FallbackPackages) Update(ctx context.Context, id string, patch Patch) (*domain.TravelPackage, error) {
	return fallback(ctx, "package", "update",
		func() (*domain.TravelPackage, error) { return s.Remote.Update(ctx, id, patch) },
		func() (*domain.TravelPackage, error) { return s.Local.Update(ctx, id, patch) })
}

func (s *FallbackPackages) Delete(ctx context.Context, id string) error {
	_, err := fallback(ctx, "package", "delete",
		func() (struct{}, error) { return struct{}{}, s.Remote.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.Local.Delete(ctx, id) })
	return err
}
