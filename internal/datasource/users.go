package datasource

import (
	"context"
	"log/slog"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/domain"
)

// PlaceholderUsers is used when the API is disabled.
type PlaceholderUsers struct{}

func (PlaceholderUsers) Me(context.Context) *domain.AuthUser {
	return placeholderUser()
}

// RemoteUsers asks the backend who the caller is and never fails: errors
// degrade to the placeholder user.
type RemoteUsers struct {
	auth *api.AuthAPI
}

func NewRemoteUsers(a *api.AuthAPI) *RemoteUsers {
	return &RemoteUsers{auth: a}
}

func (s *RemoteUsers) Me(ctx context.Context) *domain.AuthUser {
	u, err := s.auth.Me(ctx)
	if err != nil || u == nil {
		slog.WarnContext(ctx, "falling back to placeholder user", "error", err)
		return placeholderUser()
	}
	return u
}

func placeholderUser() *domain.AuthUser {
	return &domain.AuthUser{Name: "Current User"}
}
