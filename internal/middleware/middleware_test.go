package middleware

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/session"
	"github.com/set-night/travelhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	role string
}

func (a stubAuth) Login(context.Context, api.LoginRequest) (*api.AuthResponse, error) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"` + a.role + `","companyId":7}`))
	return &api.AuthResponse{Token: "h." + payload + ".s", User: &domain.AuthUser{Email: "a@b.co"}}, nil
}

func (a stubAuth) Signup(ctx context.Context, _ api.SignupRequest) (*api.AuthResponse, error) {
	return a.Login(ctx, api.LoginRequest{})
}

func (stubAuth) Me(context.Context) (*domain.AuthUser, error) { return &domain.AuthUser{}, nil }
func (stubAuth) Logout(context.Context) error                 { return nil }

func messageUpdate(chatID, userID int64) *models.Update {
	return &models.Update{Message: &models.Message{
		Chat: models.Chat{ID: chatID},
		From: &models.User{ID: userID},
	}}
}

func newManager(role string) *session.Manager {
	return session.NewManager(stubAuth{role: role}, session.TokenStores{
		Persistent: store.NewMemoryStore(),
		Ephemeral:  store.NewMemoryStore(),
	})
}

func TestOriginOf(t *testing.T) {
	o := OriginOf(messageUpdate(10, 20))
	assert.Equal(t, Origin{Kind: "message", ChatID: 10, UserID: 20}, o)

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{
		From:    models.User{ID: 5},
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: 6}}},
	}}
	assert.Equal(t, Origin{Kind: "callback_query", ChatID: 6, UserID: 5}, OriginOf(cb))
	assert.Equal(t, "unknown", OriginOf(&models.Update{}).Kind)
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(config.RateLimitPerMinute, 2)
	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2), "buckets are per chat")
}

func TestSessionLoaderAttachesSessionAndCredentials(t *testing.T) {
	var got *session.Session
	var creds *api.Credentials
	h := SessionLoader(newManager("TRAVELER"))(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		got = GetSession(ctx)
		creds = api.CredentialsFrom(ctx)
	})

	h(context.Background(), nil, messageUpdate(1, 1))
	require.NotNil(t, got)
	assert.Equal(t, session.StateAnonymous, got.State())
	assert.NotNil(t, creds)
}

func TestRequireRole(t *testing.T) {
	ctx := context.Background()
	mgr := newManager("COMPANY")
	company := mgr.Get(ctx, 1)
	_, err := company.Login(ctx, session.LoginInput{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	anonymous := mgr.Get(ctx, 2)

	var reached bool
	var denied *session.Decision
	guard := RequireRole(GuardOptions{
		Route: session.RouteAdminPanel,
		Allow: []domain.Role{domain.RoleAdmin},
		Deny: func(_ context.Context, _ *bot.Bot, _ *models.Update, d session.Decision) {
			denied = &d
		},
		Override: func(userID int64) bool { return userID == 99 },
	})
	h := guard(func(context.Context, *bot.Bot, *models.Update) { reached = true })

	h(WithSession(ctx, anonymous), nil, messageUpdate(2, 2))
	require.NotNil(t, denied)
	assert.Equal(t, session.RedirectLogin, denied.Outcome)
	assert.Equal(t, session.RouteAdminPanel, denied.From)
	assert.False(t, reached)

	denied = nil
	h(WithSession(ctx, company), nil, messageUpdate(1, 1))
	require.NotNil(t, denied)
	assert.Equal(t, session.RedirectHome, denied.Outcome)

	denied = nil
	h(WithSession(ctx, anonymous), nil, messageUpdate(2, 99))
	assert.Nil(t, denied)
	assert.True(t, reached)
}
