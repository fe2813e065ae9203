package api

import (
	"context"
	"encoding/json"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
)

type AnalyticsAPI struct {
	c     *Client
	paths config.Paths
}

func NewAnalyticsAPI(c *Client, paths config.Paths) *AnalyticsAPI {
	return &AnalyticsAPI{c: c, paths: paths}
}

func filterParams(companyID string, f domain.AnalyticsFilters) Params {
	p := Params{}
	setIf(p, "from", f.From)
	setIf(p, "to", f.To)
	setIf(p, "companyId", companyID)
	return p
}

func (a *AnalyticsAPI) Summary(ctx context.Context, companyID string, f domain.AnalyticsFilters) (*domain.AnalyticsSummary, error) {
	p := filterParams(companyID, f)
	setIf(p, "packageId", f.PackageID)
	setIf(p, "destination", f.Destination)

	var s domain.AnalyticsSummary
	if err := a.c.Do(ctx, Request{Path: a.paths.Analytics + "/summary", Params: p}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *AnalyticsAPI) TopPackages(ctx context.Context, companyID string, f domain.AnalyticsFilters, sort string, limit int) ([]domain.TopPackage, error) {
	if sort == "" {
		sort = config.TopPackagesSort
	}
	if limit <= 0 {
		limit = config.TopPackagesLimit
	}
	p := filterParams(companyID, f)
	p["sort"] = sort
	p["limit"] = limit

	var raw json.RawMessage
	if err := a.c.Do(ctx, Request{Path: a.paths.Analytics + "/top-packages", Params: p}, &raw); err != nil {
		return nil, err
	}
	return decodeItems[domain.TopPackage](raw)
}

func (a *AnalyticsAPI) RecentBookings(ctx context.Context, companyID string, f domain.AnalyticsFilters, limit int) ([]domain.RecentBooking, error) {
	if limit <= 0 {
		limit = config.RecentBookingsLimit
	}
	p := filterParams(companyID, f)
	p["limit"] = limit

	var raw json.RawMessage
	if err := a.c.Do(ctx, Request{Path: a.paths.Analytics + "/recent-bookings", Params: p}, &raw); err != nil {
		return nil, err
	}
	return decodeItems[domain.RecentBooking](raw)
}

func (a *AnalyticsAPI) Packages(ctx context.Context, companyID, query string) ([]domain.PackageOption, error) {
	p := Params{"query": query}
	setIf(p, "companyId", companyID)

	var raw json.RawMessage
	if err := a.c.Do(ctx, Request{Path: a.paths.CompanyPkgs, Params: p}, &raw); err != nil {
		return nil, err
	}
	return decodeItems[domain.PackageOption](raw)
}

func (a *AnalyticsAPI) Destinations(ctx context.Context, companyID string) ([]domain.DestinationOption, error) {
	p := Params{}
	setIf(p, "companyId", companyID)

	var raw json.RawMessage
	if err := a.c.Do(ctx, Request{Path: a.paths.CompanyDests, Params: p}, &raw); err != nil {
		return nil, err
	}
	return decodeItems[domain.DestinationOption](raw)
}

func setIf(p Params, key, value string) {
	if value != "" {
		p[key] = value
	}
}
