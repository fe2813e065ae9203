package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/service"
	tg "github.com/set-night/travelhub/internal/telegram"
)

// pageBounds returns the slice bounds of page within n results.
func pageBounds(n, page int) (int, int) {
	start := page * config.PackagesPerPage
	if start > n {
		start = n
	}
	return start, min(start+config.PackagesPerPage, n)
}

func resultsKeyboard(results []domain.TravelPackage, page int) *models.InlineKeyboardMarkup {
	start, end := pageBounds(len(results), page)
	return tg.ResultsKeyboard(results[start:end], page, pageCount(len(results), config.PackagesPerPage))
}

func (h *Handler) handleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	results, err := h.search.Search(ctx, service.ParseSearchArgs(commandArgs(update.Message.Text)))
	if err != nil {
		h.fail(ctx, b, chatID, err, "search")
		return
	}
	h.mu.Lock()
	h.results[chatID] = results
	h.mu.Unlock()

	var markup models.ReplyMarkup
	if len(results) > 0 {
		markup = resultsKeyboard(results, 0)
	}
	tg.SendLongMessage(ctx, b, chatID, resultsText(results, 0), markup)
}

func (h *Handler) handleSearchPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	answer(ctx, b, update, "")
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackSearchPage))
	if err != nil || page < 0 {
		return
	}
	h.mu.Lock()
	results := h.results[msg.Chat.ID]
	h.mu.Unlock()
	if len(results) == 0 {
		tg.Reply(ctx, b, msg.Chat.ID, "This search has expired. Run /search again.")
		return
	}
	page = min(page, pageCount(len(results), config.PackagesPerPage)-1)
	tg.EditLongMessage(ctx, b, msg.Chat.ID, msg.ID, resultsText(results, page), resultsKeyboard(results, page))
}

func (h *Handler) handlePackage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	id := commandArgs(update.Message.Text)
	if id == "" {
		tg.Reply(ctx, b, chatID, "Usage: /package <id>")
		return
	}
	h.showPackage(ctx, b, chatID, id)
}

func (h *Handler) handlePackageCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	answer(ctx, b, update, "")
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		h.showPackage(ctx, b, msg.Chat.ID, strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackPackage))
	}
}

func (h *Handler) showPackage(ctx context.Context, b *bot.Bot, chatID int64, id string) {
	pkg, err := h.search.Package(ctx, id)
	if err != nil {
		h.fail(ctx, b, chatID, err, "package")
		return
	}
	var markup models.ReplyMarkup
	if pkg.IsActive {
		markup = tg.PackageKeyboard(pkg)
	}
	if err := tg.SendCard(ctx, b, chatID, pkg.ImageURL, tg.PackageDetails(pkg), markup); err != nil {
		h.fail(ctx, b, chatID, err, "package card")
	}
}
