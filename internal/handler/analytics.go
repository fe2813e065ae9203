package handler

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/middleware"
	"github.com/set-night/travelhub/internal/service"
	tg "github.com/set-night/travelhub/internal/telegram"
)

const analyticsUsage = "Usage:\n/analytics [7|30|90]: summary for the last days\n" +
	"/analytics package <title>: scope to one package\n" +
	"/analytics dest: scope to one destination\n" +
	"/analytics all: clear package and destination"

// filterBar returns the chat's analytics bar, creating it bound to the
// session's credentials and company.
func (h *Handler) filterBar(ctx context.Context, b *bot.Bot, chatID int64) (*service.FilterBar, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if bar, ok := h.bars[chatID]; ok {
		return bar, nil
	}

	s := middleware.GetSession(ctx)
	u := signedInUser(ctx)
	if s == nil || u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	companyID := string(u.CompanyID)
	if companyID == "" {
		return nil, errNoCompany
	}

	// Fetches outlive the update; keep credentials, drop cancellation.
	barCtx := context.WithoutCancel(s.Context(ctx))
	bar := service.NewFilterBar(barCtx, h.analytics, companyID, service.FilterBarOptions{
		OnView: func(v service.AnalyticsView) {
			if err := tg.SendLongMessage(barCtx, b, chatID, analyticsText(v), tg.PresetKeyboard(config.AnalyticsPresets)); err != nil {
				slog.Error("send analytics", "chat_id", chatID, "error", err)
			}
		},
		OnPackages: func(items []domain.PackageOption) {
			h.sendPackageOptions(barCtx, b, chatID, items)
		},
	})
	h.bars[chatID] = bar
	return bar, nil
}

var errNoCompany = &service.ValidationError{Message: "Your account is not linked to a company on the backend."}

func (h *Handler) closeBar(chatID int64) {
	h.mu.Lock()
	bar, ok := h.bars[chatID]
	delete(h.bars, chatID)
	h.mu.Unlock()
	if ok {
		bar.Close()
	}
}

func (h *Handler) handleAnalytics(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if h.analytics == nil {
		tg.Reply(ctx, b, chatID, "📊 Analytics need the backend API (set USE_API and API_BASE_URL).")
		return
	}
	bar, err := h.filterBar(ctx, b, chatID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "analytics")
		return
	}

	args := strings.Fields(commandArgs(update.Message.Text))
	switch {
	case len(args) == 0:
		bar.ApplyPreset(config.AnalyticsPresets[1], time.Now())
	case args[0] == "package" && len(args) > 1:
		bar.SetPackageQuery(strings.Join(args[1:], " "))
		return
	case args[0] == "dest":
		h.sendDestinations(ctx, b, chatID, bar.Destinations())
		return
	case args[0] == "all":
		bar.Update(func(f *domain.AnalyticsFilters) {
			f.PackageID, f.Destination = "", ""
		})
	default:
		days, err := strconv.Atoi(args[0])
		if err != nil || !slices.Contains(config.AnalyticsPresets, days) {
			tg.Reply(ctx, b, chatID, analyticsUsage)
			return
		}
		bar.ApplyPreset(days, time.Now())
	}
	tg.Reply(ctx, b, chatID, "⏳ Loading analytics…")
}

func (h *Handler) sendPackageOptions(ctx context.Context, b *bot.Bot, chatID int64, items []domain.PackageOption) {
	if len(items) == 0 {
		tg.Reply(ctx, b, chatID, "No packages match that title.")
		return
	}
	rows := [][]models.InlineKeyboardButton{tg.ButtonRow(tg.InlineButton("All packages", tg.CallbackPackageScope))}
	for _, item := range items {
		rows = append(rows, tg.ButtonRow(tg.InlineButton(item.Title, tg.CallbackPackageScope+string(item.ID))))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Pick a package:",
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func (h *Handler) sendDestinations(ctx context.Context, b *bot.Bot, chatID int64, items []domain.DestinationOption) {
	if len(items) == 0 {
		tg.Reply(ctx, b, chatID, "No destinations available.")
		return
	}
	rows := [][]models.InlineKeyboardButton{tg.ButtonRow(tg.InlineButton("All destinations", tg.CallbackDestination))}
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = item.Value
		}
		// Callback data is capped at 64 bytes.
		if len(tg.CallbackDestination+item.Value) > 64 {
			continue
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(label, tg.CallbackDestination+item.Value)))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Pick a destination:",
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

// scopeCallback applies a filter change picked from an inline keyboard.
func (h *Handler) scopeCallback(ctx context.Context, b *bot.Bot, update *models.Update, prefix string, apply func(*service.FilterBar, string)) {
	if update.CallbackQuery == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	if msg == nil || h.analytics == nil {
		answer(ctx, b, update, "")
		return
	}
	bar, err := h.filterBar(ctx, b, msg.Chat.ID)
	if err != nil {
		answer(ctx, b, update, h.userMessage(err, "analytics"))
		return
	}
	apply(bar, strings.TrimPrefix(update.CallbackQuery.Data, prefix))
	answer(ctx, b, update, "Updating…")
}

func (h *Handler) handlePresetCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.scopeCallback(ctx, b, update, tg.CallbackPreset, func(bar *service.FilterBar, value string) {
		if days, err := strconv.Atoi(value); err == nil {
			bar.ApplyPreset(days, time.Now())
		}
	})
}

func (h *Handler) handlePackageScope(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.scopeCallback(ctx, b, update, tg.CallbackPackageScope, func(bar *service.FilterBar, value string) {
		bar.Update(func(f *domain.AnalyticsFilters) { f.PackageID = value })
	})
}

func (h *Handler) handleDestinationScope(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.scopeCallback(ctx, b, update, tg.CallbackDestination, func(bar *service.FilterBar, value string) {
		bar.Update(func(f *domain.AnalyticsFilters) { f.Destination = value })
	})
}

