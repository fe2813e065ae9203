package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
)

type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "loading"
}

// AuthClient is the subset of the auth API a session needs.
type AuthClient interface {
	Login(ctx context.Context, body api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, body api.SignupRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*domain.AuthUser, error)
	Logout(ctx context.Context) error
}

// TokenStores are the two places a bearer token may live: Persistent survives
// restarts ("remember me"), Ephemeral lasts for the process.
type TokenStores struct {
	Persistent store.Store
	Ephemeral  store.Store
}

type LoginInput struct {
	Email    string
	Mobile   string
	Password string
	Remember bool
}

type SignupInput struct {
	Email    string
	Mobile   string
	Password string
	Role     domain.Role
	Remember bool
}

// Session is the auth state of one chat.
type Session struct {
	auth     AuthClient
	tokens   TokenStores
	tokenKey string
	jar      http.CookieJar

	mu    sync.RWMutex
	state State
	token string
	user  *domain.AuthUser
}

func New(auth AuthClient, tokens TokenStores, tokenKey string) *Session {
	jar, _ := cookiejar.New(nil)
	return &Session{
		auth:     auth,
		tokens:   tokens,
		tokenKey: tokenKey,
		jar:      jar,
		state:    StateLoading,
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *domain.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Context attaches this session's bearer token and cookie jar to ctx.
func (s *Session) Context(ctx context.Context) context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return api.WithCredentials(ctx, &api.Credentials{Token: s.token, Jar: s.jar})
}

// Restore hydrates the session from a persisted token, if any.
func (s *Session) Restore(ctx context.Context) State {
	token, err := s.readToken(ctx)
	if err != nil {
		slog.Error("read persisted token", "error", err)
	}
	if token == "" {
		s.setAnonymous()
		return StateAnonymous
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if _, err := s.LoadMe(ctx); err != nil {
		slog.Debug("persisted token rejected", "error", err)
	}
	return s.State()
}

func (s *Session) Login(ctx context.Context, in LoginInput) (*domain.AuthUser, error) {
	res, err := s.auth.Login(s.Context(ctx), api.LoginRequest{
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: in.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.accept(ctx, res, in.Remember)
}

func (s *Session) Signup(ctx context.Context, in SignupInput) (*domain.AuthUser, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleTraveler
	}
	res, err := s.auth.Signup(s.Context(ctx), api.SignupRequest{
		Email:    in.Email,
		Mobile:   in.Mobile,
		Password: in.Password,
		Role:     role,
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return s.accept(ctx, res, in.Remember)
}

// accept persists the issued token and adopts the returned user, asking the
// backend when the response carried none.
func (s *Session) accept(ctx context.Context, res *api.AuthResponse, remember bool) (*domain.AuthUser, error) {
	if token := res.BearerToken(); token != "" {
		if err := s.writeToken(ctx, token, remember); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
	}
	if res.User == nil {
		return s.LoadMe(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = NormalizeUser(res.User, DecodeClaims(s.token), nil)
	s.state = StateAuthenticated
	u := *s.user
	return &u, nil
}

// LoadMe revalidates the current token. Any failure leaves the session anonymous.
func (s *Session) LoadMe(ctx context.Context) (*domain.AuthUser, error) {
	me, err := s.auth.Me(s.Context(ctx))
	if err == nil && me == nil {
		err = domain.ErrNotAuthenticated
	}
	if err != nil {
		s.setAnonymous()
		return nil, fmt.Errorf("load me: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = NormalizeUser(me, DecodeClaims(s.token), s.user)
	s.state = StateAuthenticated
	u := *s.user
	return &u, nil
}

// Logout tells the backend best-effort, then always forgets every token.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.auth.Logout(s.Context(ctx)); err != nil {
		slog.Warn("server logout failed", "error", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.writeToken(ctx, "", false); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = StateAnonymous
}

func (s *Session) readToken(ctx context.Context) (string, error) {
	token, err := store.GetString(ctx, s.tokens.Persistent, s.tokenKey)
	if err != nil || token != "" {
		return token, err
	}
	return store.GetString(ctx, s.tokens.Ephemeral, s.tokenKey)
}

// writeToken clears both locations, then stores token in the one chosen by remember.
func (s *Session) writeToken(ctx context.Context, token string, remember bool) error {
	err := errors.Join(
		s.tokens.Persistent.Delete(ctx, s.tokenKey),
		s.tokens.Ephemeral.Delete(ctx, s.tokenKey),
	)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if token == "" {
		return nil
	}
	target := s.tokens.Ephemeral
	if remember {
		target = s.tokens.Persistent
	}
	if err := store.SetString(ctx, target, s.tokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// TokenKey is the store key holding the bearer token of one chat.
func TokenKey(chatID int64) string {
	return fmt.Sprintf("%s:%d", config.StoreKeyToken, chatID)
}
