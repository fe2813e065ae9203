package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/domain"
	tg "github.com/set-night/travelhub/internal/telegram"
)

func (h *Handler) sendAdminPanel(ctx context.Context, b *bot.Bot, chatID int64) {
	o, err := h.admin.Overview(ctx)
	if err != nil {
		h.fail(ctx, b, chatID, err, "admin overview")
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, c := range o.Companies {
		verify := "✔️ Verify"
		if c.IsVerified {
			verify = "✖️ Unverify"
		}
		state := "⛔ Suspend"
		if !c.IsActive {
			state = "▶️ Reactivate"
		}
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(c.CompanyName+": "+verify, tg.CallbackVerify+c.ID),
			tg.InlineButton(state, tg.CallbackCompanyState+c.ID),
		))
	}
	var markup models.ReplyMarkup
	if len(rows) > 0 {
		markup = tg.InlineKeyboard(rows...)
	}
	tg.SendLongMessage(ctx, b, chatID, adminText(o), markup)
}

func (h *Handler) handleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendAdminPanel(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleSetStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(commandArgs(update.Message.Text))
	if len(args) != 2 {
		tg.Reply(ctx, b, chatID, "Usage: /setstatus <booking id> <pending|confirmed|cancelled|completed>")
		return
	}
	booking, err := h.admin.SetBookingStatus(ctx, args[0], domain.BookingStatus(strings.ToLower(args[1])))
	if err != nil {
		h.fail(ctx, b, chatID, err, "set booking status")
		return
	}
	tg.SendLongMessage(ctx, b, chatID, "Updated:\n"+tg.BookingLine(booking), nil)
}

func (h *Handler) companyCallback(ctx context.Context, b *bot.Bot, update *models.Update, prefix string, toggle func(context.Context, string) (*domain.Company, error)) {
	if update.CallbackQuery == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	if _, err := toggle(ctx, strings.TrimPrefix(update.CallbackQuery.Data, prefix)); err != nil {
		answer(ctx, b, update, h.userMessage(err, "admin company toggle"))
		return
	}
	answer(ctx, b, update, "Saved")
	if msg != nil {
		h.sendAdminPanel(ctx, b, msg.Chat.ID)
	}
}

func (h *Handler) handleToggleVerified(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.companyCallback(ctx, b, update, tg.CallbackVerify, h.admin.ToggleVerified)
}

func (h *Handler) handleToggleCompanyActive(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.companyCallback(ctx, b, update, tg.CallbackCompanyState, h.admin.ToggleCompanyActive)
}
