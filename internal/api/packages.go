package api

import (
	"context"
	"net/http"

	"github.com/set-night/travelhub/internal/config"
)

// PackagesAPI returns offers undecoded; callers run them through MapOffer.
type PackagesAPI struct {
	c     *Client
	paths config.Paths
}

func NewPackagesAPI(c *Client, paths config.Paths) *PackagesAPI {
	return &PackagesAPI{c: c, paths: paths}
}

func (a *PackagesAPI) List(ctx context.Context, params Params) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Path: a.paths.Packages, Params: params}, &out)
	return out, err
}

func (a *PackagesAPI) Get(ctx context.Context, id string) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Path: a.paths.Packages + "/" + escape(id)}, &out)
	return out, err
}

func (a *PackagesAPI) Create(ctx context.Context, body any) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.Packages, Body: body}, &out)
	return out, err
}

func (a *PackagesAPI) Update(ctx context.Context, id string, body any) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Method: http.MethodPatch, Path: a.paths.Packages + "/" + escape(id), Body: body}, &out)
	return out, err
}

func (a *PackagesAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: a.paths.Packages + "/" + escape(id)}, nil)
}

func (a *PackagesAPI) Search(ctx context.Context, body any) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.SearchOffers, Body: body}, &out)
	return out, err
}

func (a *PackagesAPI) CompanyCreate(ctx context.Context, body any) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.CompanyOffers, Body: body}, &out)
	return out, err
}

func (a *PackagesAPI) CompanyUpdate(ctx context.Context, id string, body any) (any, error) {
	var out any
	err := a.c.Do(ctx, Request{Method: http.MethodPut, Path: a.paths.CompanyOffers + "/" + escape(id), Body: body}, &out)
	return out, err
}
