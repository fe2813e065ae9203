package handler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/middleware"
	"github.com/set-night/travelhub/internal/service"
	"github.com/set-night/travelhub/internal/session"
	tg "github.com/set-night/travelhub/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	sources   *datasource.Sources
	auth      *service.AuthService
	search    *service.SearchService
	booking   *service.BookingService
	chat      *service.ChatService
	company   *service.CompanyService
	admin     *service.AdminService
	analytics service.AnalyticsFetcher
	events    *tg.EventLogger

	mu       sync.Mutex
	results  map[int64][]domain.TravelPackage
	returnTo map[int64]string
	bars     map[int64]*service.FilterBar
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot     *bot.Bot
	Cfg     *config.Config
	Sources *datasource.Sources
	Auth    *service.AuthService
	Search  *service.SearchService
	Booking *service.BookingService
	Chat    *service.ChatService
	Company *service.CompanyService
	Admin   *service.AdminService
	// Analytics is nil when the backend is disabled.
	Analytics service.AnalyticsFetcher
	Events    *tg.EventLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		sources:   deps.Sources,
		auth:      deps.Auth,
		search:    deps.Search,
		booking:   deps.Booking,
		chat:      deps.Chat,
		company:   deps.Company,
		admin:     deps.Admin,
		analytics: deps.Analytics,
		events:    deps.Events,
		results:   make(map[int64][]domain.TravelPackage),
		returnTo:  make(map[int64]string),
		bars:      make(map[int64]*service.FilterBar),
	}
}

// userMessage turns err into text fit for the chat. Unexpected errors are
// logged and mirrored to the log chat.
func (h *Handler) userMessage(err error, where string) string {
	var vErr *service.ValidationError
	var reqErr *api.RequestError
	switch {
	case errors.As(err, &vErr):
		return "⚠️ " + vErr.Message
	case errors.Is(err, domain.ErrPackageNotFound):
		return "❌ Package not found."
	case errors.Is(err, domain.ErrBookingNotFound):
		return "❌ Booking not found."
	case errors.Is(err, domain.ErrCompanyNotFound):
		return "❌ Company not found."
	case errors.Is(err, domain.ErrPackageInactive):
		return "⛔ This package is not available right now."
	case errors.Is(err, domain.ErrInvalidTravelers):
		return "⚠️ Number of travelers must be at least 1."
	case errors.Is(err, domain.ErrForbidden):
		return "⛔ You can only manage your own packages."
	case errors.Is(err, domain.ErrChatBusy):
		return "⏳ Still working on your previous message."
	case errors.Is(err, domain.ErrAuthUnavailable):
		return "🔒 Accounts are not available: this bot runs without the travel backend."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "🔒 You are signed out. Sign in again with /login."
	case errors.Is(err, domain.ErrMissingCredential):
		return "🔒 Sign-in failed. Please try again."
	case errors.As(err, &reqErr):
		slog.Warn("backend request failed", "where", where, "status", reqErr.Status, "error", err)
		return "❌ " + reqErr.Message
	}
	slog.Error("handler failed", "where", where, "error", err)
	h.events.LogError(err, where)
	return "❌ Something went wrong. Please try again."
}

func (h *Handler) fail(ctx context.Context, b *bot.Bot, chatID int64, err error, where string) {
	tg.Reply(ctx, b, chatID, h.userMessage(err, where))
}

// signedInUser takes one snapshot of the chat's user for the whole update.
// It is nil when nobody is signed in, including after a concurrent /logout.
func signedInUser(ctx context.Context) *domain.AuthUser {
	s := middleware.GetSession(ctx)
	if s == nil || !s.IsAuthenticated() {
		return nil
	}
	return s.User()
}

// answer acknowledges a callback query, optionally with a toast.
func answer(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}

// deny answers updates the role guard did not let through.
func (h *Handler) deny(ctx context.Context, b *bot.Bot, update *models.Update, d session.Decision) {
	chatID := middleware.OriginOf(update).ChatID
	if update.CallbackQuery != nil {
		answer(ctx, b, update, "")
	}
	switch d.Outcome {
	case session.Wait:
		tg.Reply(ctx, b, chatID, "⏳ Loading your session, try again in a moment.")
	case session.RedirectLogin:
		h.mu.Lock()
		h.returnTo[chatID] = d.From
		h.mu.Unlock()
		tg.Reply(ctx, b, chatID, "🔒 Please sign in first:\n/login <email|mobile> <password>")
	case session.RedirectHome:
		tg.Reply(ctx, b, chatID, "⛔ This page is not available for your account.\n\n"+helpText)
	}
}

func (h *Handler) guard(route string, allow ...domain.Role) func(bot.HandlerFunc) bot.HandlerFunc {
	opts := middleware.GuardOptions{Route: route, Allow: allow, Deny: h.deny}
	if route == session.RouteAdminPanel {
		opts.Override = h.cfg.IsAdmin
	}
	return middleware.RequireRole(opts)
}

func (h *Handler) takeReturnTo(chatID int64) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	from := h.returnTo[chatID]
	delete(h.returnTo, chatID)
	return from
}
