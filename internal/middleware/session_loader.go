package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/session"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the chat session from context.
func GetSession(ctx context.Context) *session.Session {
	s, ok := ctx.Value(SessionKey).(*session.Session)
	if !ok {
		return nil
	}
	return s
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(s.Context(ctx), SessionKey, s)
}

// SessionLoader returns middleware that restores the chat's session and
// attaches it, with its API credentials, to the context.
func SessionLoader(sessions *session.Manager) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			origin := OriginOf(update)
			if origin.ChatID == 0 {
				next(ctx, b, update)
				return
			}
			next(WithSession(ctx, sessions.Get(ctx, origin.ChatID)), b, update)
		}
	}
}
