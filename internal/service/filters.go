package service

import (
	"context"
	"sync"
	"time"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"golang.org/x/sync/errgroup"
)

type AnalyticsFetcher interface {
	Summary(ctx context.Context, companyID string, f domain.AnalyticsFilters) (*domain.AnalyticsSummary, error)
	TopPackages(ctx context.Context, companyID string, f domain.AnalyticsFilters, sort string, limit int) ([]domain.TopPackage, error)
	RecentBookings(ctx context.Context, companyID string, f domain.AnalyticsFilters, limit int) ([]domain.RecentBooking, error)
	Packages(ctx context.Context, companyID, query string) ([]domain.PackageOption, error)
	Destinations(ctx context.Context, companyID string) ([]domain.DestinationOption, error)
}

// AnalyticsView is one consistent render of the dashboard panels. Each panel
// fails independently.
type AnalyticsView struct {
	Filters           domain.AnalyticsFilters
	Summary           *domain.AnalyticsSummary
	SummaryErr        error
	TopPackages       []domain.TopPackage
	TopPackagesErr    error
	RecentBookings    []domain.RecentBooking
	RecentBookingsErr error
}

// FilterBar debounces analytics filter changes. Only the last change within
// the window triggers fetches, and a result is dropped when the filters changed
// again while it was in flight.
type FilterBar struct {
	fetcher   AnalyticsFetcher
	companyID string
	ctx       context.Context
	debounce  time.Duration

	onView     func(AnalyticsView)
	onPackages func([]domain.PackageOption)

	mu       sync.Mutex
	filters  domain.AnalyticsFilters
	gen      uint64
	timer    *time.Timer
	pkgGen   uint64
	pkgTimer *time.Timer
	closed   bool
}

type FilterBarOptions struct {
	Debounce   time.Duration
	OnView     func(AnalyticsView)
	OnPackages func([]domain.PackageOption)
}

// NewFilterBar binds a bar to companyID. ctx carries credentials and bounds
// every fetch the bar makes.
func NewFilterBar(ctx context.Context, fetcher AnalyticsFetcher, companyID string, opts FilterBarOptions) *FilterBar {
	if opts.Debounce <= 0 {
		opts.Debounce = config.FilterDebounce
	}
	if opts.OnView == nil {
		opts.OnView = func(AnalyticsView) {}
	}
	if opts.OnPackages == nil {
		opts.OnPackages = func([]domain.PackageOption) {}
	}
	return &FilterBar{
		fetcher:    fetcher,
		companyID:  companyID,
		ctx:        ctx,
		debounce:   opts.Debounce,
		onView:     opts.OnView,
		onPackages: opts.OnPackages,
	}
}

func (b *FilterBar) Filters() domain.AnalyticsFilters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// Set replaces the filters and restarts the debounce window.
func (b *FilterBar) Set(f domain.AnalyticsFilters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.filters = f
	b.gen++
	gen := b.gen
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, func() { b.fetch(gen, f) })
}

// Update applies fn to the current filters, then behaves like Set.
func (b *FilterBar) Update(fn func(*domain.AnalyticsFilters)) {
	f := b.Filters()
	fn(&f)
	b.Set(f)
}

// ApplyPreset sets a window of the given number of days ending at now.
func (b *FilterBar) ApplyPreset(days int, now time.Time) {
	b.Update(func(f *domain.AnalyticsFilters) {
		*f = PresetRange(*f, days, now)
	})
}

// PresetRange returns f with From/To spanning the given number of days up to now.
func PresetRange(f domain.AnalyticsFilters, days int, now time.Time) domain.AnalyticsFilters {
	f.From = now.AddDate(0, 0, -days).Format(time.DateOnly)
	f.To = now.Format(time.DateOnly)
	return f
}

// SetPackageQuery debounces the package dropdown search on its own window.
func (b *FilterBar) SetPackageQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.pkgGen++
	gen := b.pkgGen
	if b.pkgTimer != nil {
		b.pkgTimer.Stop()
	}
	b.pkgTimer = time.AfterFunc(config.PackageQueryDebounce, func() {
		items, err := b.fetcher.Packages(b.ctx, b.companyID, query)
		if err != nil {
			items = []domain.PackageOption{}
		}
		b.mu.Lock()
		stale := b.closed || gen != b.pkgGen
		b.mu.Unlock()
		if !stale {
			b.onPackages(items)
		}
	})
}

// Destinations loads the destination dropdown once; errors read as no options.
func (b *FilterBar) Destinations() []domain.DestinationOption {
	items, err := b.fetcher.Destinations(b.ctx, b.companyID)
	if err != nil {
		return []domain.DestinationOption{}
	}
	return items
}

// Close stops pending timers; later results are discarded.
func (b *FilterBar) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
	}
	if b.pkgTimer != nil {
		b.pkgTimer.Stop()
	}
}

func (b *FilterBar) fetch(gen uint64, f domain.AnalyticsFilters) {
	view := AnalyticsView{Filters: f}
	var g errgroup.Group
	g.Go(func() error {
		view.Summary, view.SummaryErr = b.fetcher.Summary(b.ctx, b.companyID, f)
		return nil
	})
	g.Go(func() error {
		view.TopPackages, view.TopPackagesErr = b.fetcher.TopPackages(b.ctx, b.companyID, f, config.TopPackagesSort, config.TopPackagesLimit)
		return nil
	})
	g.Go(func() error {
		view.RecentBookings, view.RecentBookingsErr = b.fetcher.RecentBookings(b.ctx, b.companyID, f, config.RecentBookingsLimit)
		return nil
	})
	_ = g.Wait()

	b.mu.Lock()
	stale := b.closed || gen != b.gen
	b.mu.Unlock()
	if stale {
		return
	}
	b.onView(view)
}
