package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/session"
)

// DenyFunc answers an update the guard did not let through.
type DenyFunc func(ctx context.Context, b *bot.Bot, update *models.Update, d session.Decision)

// GuardOptions configure RequireRole.
type GuardOptions struct {
	// Route names the protected page, remembered for the post-login redirect.
	Route string
	Allow []domain.Role
	Deny  DenyFunc
	// Override admits operator accounts regardless of session role.
	Override func(userID int64) bool
}

// RequireRole wraps a single handler with role routing. It only decides what
// the chat sees; the backend enforces authorization.
func RequireRole(opts GuardOptions) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if opts.Override != nil && opts.Override(OriginOf(update).UserID) {
				next(ctx, b, update)
				return
			}

			s := GetSession(ctx)
			if s == nil {
				return
			}
			d := session.Guard(s, opts.Route, opts.Allow...)
			if d.Outcome == session.Allow {
				next(ctx, b, update)
				return
			}
			if opts.Deny != nil {
				opts.Deny(ctx, b, update, d)
			}
		}
	}
}
