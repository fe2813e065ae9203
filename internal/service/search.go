package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortPriceLow  SortOrder = "price_low"
	SortPriceHigh SortOrder = "price_high"
	SortRating    SortOrder = "rating"
	SortDuration  SortOrder = "duration"
)

// SearchFilters mirror the search page controls. Empty fields mean "all".
type SearchFilters struct {
	Query         string
	Budget        string // "min-max", "min+" or "min"
	Transport     domain.TransportType
	Accommodation domain.AccommodationLevel
	MinRating     float64
	Sort          SortOrder
}

type SearchService struct {
	packages datasource.PackageSource
	cache    *ListingCache
}

func NewSearchService(packages datasource.PackageSource) *SearchService {
	return &SearchService{packages: packages, cache: NewListingCache(config.ListingCacheTTL)}
}

// Search loads the listing and applies filters locally.
func (s *SearchService) Search(ctx context.Context, f SearchFilters) ([]domain.TravelPackage, error) {
	all := s.cache.Get()
	if all == nil {
		var err error
		all, err = s.packages.List(ctx, domain.PackageQuery{})
		if err != nil {
			return nil, fmt.Errorf("list packages: %w", err)
		}
		s.cache.Set(all)
	}
	return FilterPackages(all, f), nil
}

// Invalidate drops the cached listing after packages change.
func (s *SearchService) Invalidate() {
	s.cache.Invalidate()
}

func (s *SearchService) Package(ctx context.Context, id string) (*domain.TravelPackage, error) {
	return s.packages.Get(ctx, id)
}

// FilterPackages returns the packages matching f in the requested order.
// Inactive packages are never listed.
func FilterPackages(list []domain.TravelPackage, f SearchFilters) []domain.TravelPackage {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	minPrice, maxPrice, hasBudget := parseBudget(f.Budget)

	out := make([]domain.TravelPackage, 0, len(list))
	for _, p := range list {
		if !p.IsActive {
			continue
		}
		if query != "" && !containsFold(query, p.Destination, p.Title, p.Country) {
			continue
		}
		if hasBudget {
			if p.Price.LessThan(minPrice) {
				continue
			}
			if maxPrice != nil && p.Price.GreaterThan(*maxPrice) {
				continue
			}
		}
		if f.Transport != "" && p.TransportType != f.Transport {
			continue
		}
		if f.Accommodation != "" && p.AccommodationLevel != f.Accommodation {
			continue
		}
		if f.MinRating > 0 && p.StarRating < f.MinRating {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow, "":
		slices.SortStableFunc(out, func(a, b domain.TravelPackage) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.TravelPackage) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b domain.TravelPackage) int { return cmp.Compare(b.StarRating, a.StarRating) })
	case SortDuration:
		slices.SortStableFunc(out, func(a, b domain.TravelPackage) int { return a.Duration() - b.Duration() })
	}
	return out
}

// ParseSearchArgs reads "key=value" tokens out of free text; the rest is the query.
// Recognised keys: budget, transport, stay, rating, sort.
func ParseSearchArgs(text string) SearchFilters {
	var f SearchFilters
	var words []string
	for _, tok := range strings.Fields(text) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			words = append(words, tok)
			continue
		}
		switch strings.ToLower(key) {
		case "budget":
			f.Budget = value
		case "transport":
			f.Transport = domain.TransportType(strings.ToLower(value))
		case "stay", "accommodation":
			f.Accommodation = domain.AccommodationLevel(strings.ToLower(value))
		case "rating":
			f.MinRating, _ = strconv.ParseFloat(value, 64)
		case "sort":
			f.Sort = SortOrder(strings.ToLower(value))
		default:
			words = append(words, tok)
		}
	}
	f.Query = strings.Join(words, " ")
	return f
}

func parseBudget(budget string) (decimal.Decimal, *decimal.Decimal, bool) {
	budget = strings.TrimSpace(budget)
	if budget == "" || budget == "all" {
		return decimal.Zero, nil, false
	}
	lo, hi, ranged := strings.Cut(strings.TrimSuffix(budget, "+"), "-")
	minPrice, err := decimal.NewFromString(lo)
	if err != nil {
		return decimal.Zero, nil, false
	}
	if !ranged {
		return minPrice, nil, true
	}
	maxPrice, err := decimal.NewFromString(hi)
	if err != nil || maxPrice.IsZero() {
		return minPrice, nil, true
	}
	return minPrice, &maxPrice, true
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
