package session

import (
	"slices"

	"github.com/set-night/travelhub/internal/domain"
)

const (
	RouteHome             = "/"
	RouteLogin            = "/login"
	RouteSignup           = "/signup"
	RouteAdminPanel       = "/AdminPanel"
	RouteCompanyDashboard = "/CompanyDashboard"
)

type Outcome int

const (
	Allow Outcome = iota
	// Wait means the session is still loading; render nothing yet.
	Wait
	RedirectLogin
	RedirectHome
)

type Decision struct {
	Outcome Outcome
	// From is the location to return to after login.
	From string
}

type Viewer interface {
	State() State
	Role() domain.Role
}

// Guard decides whether v may view from. An empty allow list admits any
// authenticated user. This only routes; the backend enforces authorization.
func Guard(v Viewer, from string, allow ...domain.Role) Decision {
	switch v.State() {
	case StateLoading:
		return Decision{Outcome: Wait}
	case StateAnonymous:
		return Decision{Outcome: RedirectLogin, From: from}
	}
	if len(allow) > 0 && !slices.Contains(allow, v.Role()) {
		return Decision{Outcome: RedirectHome}
	}
	return Decision{Outcome: Allow}
}

// Landing is the default page after login for role.
func Landing(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return RouteAdminPanel
	case domain.RoleCompany:
		return RouteCompanyDashboard
	}
	return RouteHome
}

// AfterLogin returns from when role may view it, otherwise the role landing.
func AfterLogin(role domain.Role, from string) string {
	switch {
	case from == "" || from == RouteLogin || from == RouteSignup:
		return Landing(role)
	case from == RouteAdminPanel && role != domain.RoleAdmin:
		return Landing(role)
	case from == RouteCompanyDashboard && role != domain.RoleCompany:
		return Landing(role)
	}
	return from
}
