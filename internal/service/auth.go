package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/session"
)

var (
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	phonePattern = regexp.MustCompile(`^[+]?\d[\d\s-]{6,}$`)
)

// ValidationError is a form problem shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

type LoginForm struct {
	Email    string
	Mobile   string
	Password string
	Remember bool
	// From is the protected location the user was sent away from, if any.
	From string
}

type SignupForm struct {
	Email    string
	Mobile   string
	Password string
	Role     domain.Role
	Remember bool
}

// ValidateLogin requires exactly one well-formed identifier.
func ValidateLogin(f LoginForm) error {
	email, mobile := strings.TrimSpace(f.Email), strings.TrimSpace(f.Mobile)
	switch {
	case email == "" && mobile == "":
		return invalid("Please enter your email OR mobile number.")
	case email != "" && mobile != "":
		return invalid("Please provide only one: email OR mobile (not both).")
	case email != "" && !emailPattern.MatchString(email):
		return invalid("Please enter a valid email address.")
	case mobile != "" && !phonePattern.MatchString(mobile):
		return invalid("Please enter a valid mobile number.")
	}
	return nil
}

func ValidateSignup(f SignupForm) error {
	if strings.TrimSpace(f.Email) == "" && strings.TrimSpace(f.Mobile) == "" {
		return invalid("Please enter email or mobile number.")
	}
	if strings.TrimSpace(f.Password) == "" {
		return invalid("Please enter a password.")
	}
	if f.Role != "" && domain.ParseRole(string(f.Role)) == "" {
		return invalid("Role must be TRAVELER, COMPANY or ADMIN.")
	}
	return nil
}

// AuthService runs the login and signup pages against a chat's session.
// Accounts live on the backend only, so with the API disabled every
// attempt fails with domain.ErrAuthUnavailable.
type AuthService struct {
	enabled bool
}

func NewAuthService(apiEnabled bool) *AuthService {
	return &AuthService{enabled: apiEnabled}
}

// Login validates the form before any network call and returns the route to land on.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, f LoginForm) (*domain.AuthUser, string, error) {
	if err := ValidateLogin(f); err != nil {
		return nil, "", err
	}
	if !s.enabled {
		return nil, "", domain.ErrAuthUnavailable
	}
	u, err := sess.Login(ctx, session.LoginInput{
		Email:    strings.TrimSpace(f.Email),
		Mobile:   strings.TrimSpace(f.Mobile),
		Password: f.Password,
		Remember: f.Remember,
	})
	if err != nil {
		return nil, "", err
	}
	return u, session.AfterLogin(u.Role, f.From), nil
}

func (s *AuthService) Signup(ctx context.Context, sess *session.Session, f SignupForm) (*domain.AuthUser, error) {
	if err := ValidateSignup(f); err != nil {
		return nil, err
	}
	if !s.enabled {
		return nil, domain.ErrAuthUnavailable
	}
	return sess.Signup(ctx, session.SignupInput{
		Email:    strings.TrimSpace(f.Email),
		Mobile:   strings.TrimSpace(f.Mobile),
		Password: f.Password,
		Role:     domain.ParseRole(string(f.Role)),
		Remember: f.Remember,
	})
}
