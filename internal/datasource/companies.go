package datasource

import (
	"context"
	"strings"
	"time"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

// LocalCompanies holds company profiles; there is no backend endpoint for them.
type LocalCompanies struct {
	t *table[domain.Company]
}

func NewLocalCompanies(st store.Store) *LocalCompanies {
	return &LocalCompanies{t: &table[domain.Company]{
		store: st,
		key:   config.StoreKeyCompanies,
		id:    func(c *domain.Company) *string { return &c.ID },
		onCreate: func(c *domain.Company) {
			if c.CreatedDate.IsZero() {
				c.CreatedDate = time.Now().UTC()
			}
		},
	}}
}

func (s *LocalCompanies) List(ctx context.Context, sort string) ([]domain.Company, error) {
	list, err := s.t.all(ctx)
	if err != nil {
		return nil, err
	}
	field, desc := parseSort(sort)
	switch field {
	case "created_date":
		sortBy(list, desc, func(c *domain.Company) int64 { return c.CreatedDate.UnixNano() })
	case "company_name":
		sortBy(list, desc, func(c *domain.Company) string { return c.CompanyName })
	}
	return list, nil
}

// FindByEmail returns nil without error when no company uses email.
func (s *LocalCompanies) FindByEmail(ctx context.Context, email string) (*domain.Company, error) {
	list, err := s.t.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].ContactEmail, email) {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (s *LocalCompanies) Get(ctx context.Context, id string) (*domain.Company, error) {
	c, err := s.t.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (s *LocalCompanies) Create(ctx context.Context, c domain.Company) (*domain.Company, error) {
	return s.t.create(ctx, c)
}

func (s *LocalCompanies) Update(ctx context.Context, id string, patch Patch) (*domain.Company, error) {
	c, err := s.t.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}
