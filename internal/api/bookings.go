package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
)

type BookingsAPI struct {
	c     *Client
	paths config.Paths
}

func NewBookingsAPI(c *Client, paths config.Paths) *BookingsAPI {
	return &BookingsAPI{c: c, paths: paths}
}

func (a *BookingsAPI) List(ctx context.Context, params Params) ([]domain.Booking, error) {
	var raw json.RawMessage
	if err := a.c.Do(ctx, Request{Path: a.paths.Bookings, Params: params}, &raw); err != nil {
		return nil, err
	}
	return decodeItems[domain.Booking](raw)
}

func (a *BookingsAPI) Get(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.Do(ctx, Request{Path: a.paths.Bookings + "/" + escape(id)}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *BookingsAPI) Create(ctx context.Context, body *domain.Booking) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.Bookings, Body: body}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *BookingsAPI) Update(ctx context.Context, id string, patch any) (*domain.Booking, error) {
	var b domain.Booking
	if err := a.c.Do(ctx, Request{Method: http.MethodPatch, Path: a.paths.Bookings + "/" + escape(id), Body: patch}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *BookingsAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: a.paths.Bookings + "/" + escape(id)}, nil)
}
