package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	travelhub "github.com/set-night/travelhub"
	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/handler"
	"github.com/set-night/travelhub/internal/middleware"
	"github.com/set-night/travelhub/internal/repository"
	"github.com/set-night/travelhub/internal/service"
	"github.com/set-night/travelhub/internal/session"
	"github.com/set-night/travelhub/internal/store"
	"github.com/set-night/travelhub/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the persisted key store behind the local mock data and tokens
	persistent, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize data sources and services
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, cfg.DebugAPI)
	sources := datasource.New(cfg, client, persistent)

	var suggester service.Suggester
	var analytics service.AnalyticsFetcher
	if cfg.APIEnabled() {
		suggester = api.NewChatAPI(client, cfg.Paths)
		analytics = api.NewAnalyticsAPI(client, cfg.Paths)
	}

	sessions := session.NewManager(api.NewAuthAPI(client, cfg.Paths), session.TokenStores{
		Persistent: persistent,
		Ephemeral:  store.NewMemoryStore(),
	})

	// Handler pointer for use in default handler closure
	var h *handler.Handler
	var events *telegram.EventLogger

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(func(err error, where string) { events.LogError(err, where) }),
			middleware.Logging(),
			middleware.RateLimit(middleware.NewRateLimiter(config.RateLimitPerMinute, config.RateLimitBurst)),
			middleware.SessionLoader(sessions),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil || update.Message.Text == "" {
				return
			}
			// Free text goes to the travel assistant
			h.HandleText(ctx, b, update)
		}),
	}
	if cfg.WebhookURL != "" {
		opts = append(opts, bot.WithWebhookSecretToken(webhookSecret(cfg.BotToken)))
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	events = telegram.NewEventLogger(b, cfg)

	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Sources:   sources,
		Auth:      service.NewAuthService(cfg.APIEnabled()),
		Search:    service.NewSearchService(sources.Packages),
		Booking:   service.NewBookingService(sources.Packages, sources.Bookings, sources.Users),
		Chat:      service.NewChatService(suggester, sources.Packages, sources.Chat),
		Company:   service.NewCompanyService(sources.Companies, sources.Packages, sources.Bookings),
		Admin:     service.NewAdminService(sources.Companies, sources.Packages, sources.Bookings),
		Analytics: analytics,
		Events:    events,
	})

	// Register all handlers
	h.Register()

	if cfg.WebhookURL != "" {
		if err := runWebhook(ctx, b, cfg); err != nil {
			slog.Error("webhook server failed", "error", err)
			os.Exit(1)
		}
	} else {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: cfg.DropPendingUpdates}); err != nil {
			slog.Warn("failed to delete webhook", "error", err)
		}
		slog.Info("starting bot", "username", me.Username, "id", me.ID, "api", cfg.APIEnabled())
		b.Start(ctx)
	}

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}

// openStore selects the persisted key store backend. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "", "file":
		st, err := store.NewFileStore(cfg.StoreDir)
		return st, func() {}, err

	case "postgres":
		migrations, err := fs.Sub(travelhub.MigrationsFS, "migrations")
		if err != nil {
			return nil, nil, fmt.Errorf("load embedded migrations: %w", err)
		}
		st, err := repository.OpenPGStore(ctx, cfg.DatabaseURL, migrations)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil

	case "redis":
		st, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				slog.Error("close redis", "error", err)
			}
		}, nil

	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
