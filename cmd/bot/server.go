package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-telegram/bot"
	"github.com/julienschmidt/httprouter"
	"github.com/set-night/travelhub/internal/config"
)

// webhookSecret derives the secret Telegram echoes back on every webhook call.
func webhookSecret(botToken string) string {
	sum := sha256.Sum256([]byte("webhook:" + botToken))
	return hex.EncodeToString(sum[:16])
}

func webhookPath(webhookURL string) string {
	u, err := url.Parse(webhookURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/webhook"
	}
	return u.Path
}

func newRouter(webhook http.Handler, path string) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	router.Handler(http.MethodPost, path, webhook)
	return router
}

// runWebhook registers the webhook and serves updates until ctx is done.
func runWebhook(ctx context.Context, b *bot.Bot, cfg *config.Config) error {
	ok, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:                cfg.WebhookURL,
		DropPendingUpdates: cfg.DropPendingUpdates,
		SecretToken:        webhookSecret(cfg.BotToken),
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	if !ok {
		return errors.New("set webhook: rejected by telegram")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(b.WebhookHandler(), webhookPath(cfg.WebhookURL)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go b.StartWebhook(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("webhook server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
