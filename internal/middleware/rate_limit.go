package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/config"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per chat.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		limiters: make(map[int64]*rate.Limiter),
	}
}

func (r *RateLimiter) Allow(chatID int64) bool {
	r.mu.Lock()
	l, ok := r.limiters[chatID]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[chatID] = l
	}
	r.mu.Unlock()
	return l.Allow()
}

// RateLimit returns middleware that drops messages above the per-chat rate.
// Callbacks are never limited.
func RateLimit(limiter *RateLimiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !limiter.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID, "per_minute", config.RateLimitPerMinute)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please wait a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
