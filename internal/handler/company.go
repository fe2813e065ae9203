package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	tg "github.com/set-night/travelhub/internal/telegram"
)

func (h *Handler) sendDashboard(ctx context.Context, b *bot.Bot, chatID int64) {
	d, err := h.company.Dashboard(ctx, signedInUser(ctx))
	if err != nil {
		h.fail(ctx, b, chatID, err, "dashboard")
		return
	}

	var rows [][]models.InlineKeyboardButton
	for i := range d.Packages {
		p := &d.Packages[i]
		rows = append(rows, tg.ButtonRow(tg.InlineButton(p.Title, tg.CallbackPackage+p.ID)), tg.OwnerKeyboard(p))
	}
	var markup models.ReplyMarkup
	if len(rows) > 0 {
		markup = tg.InlineKeyboard(rows...)
	}
	tg.SendLongMessage(ctx, b, chatID, dashboardText(d), markup)
}

func (h *Handler) handleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendDashboard(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleAddPackage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	in, err := parsePackage(args)
	if args == "" || err != nil {
		tg.SendLongMessage(ctx, b, chatID, addPackageUsage, nil)
		return
	}
	pkg, err := h.company.AddPackage(ctx, signedInUser(ctx), in)
	if err != nil {
		h.fail(ctx, b, chatID, err, "add package")
		return
	}
	h.search.Invalidate()
	h.events.LogNewPackage(pkg)
	tg.SendLongMessage(ctx, b, chatID, "✅ Package published.\n\n"+tg.PackageDetails(pkg), nil)
}

func (h *Handler) handleToggleActive(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		answer(ctx, b, update, "")
		return
	}
	id := strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackToggleActive)

	pkg, err := h.company.ToggleActive(ctx, signedInUser(ctx), id)
	if err != nil {
		answer(ctx, b, update, h.userMessage(err, "toggle package"))
		return
	}
	h.search.Invalidate()
	if pkg.IsActive {
		answer(ctx, b, update, "Package activated")
	} else {
		answer(ctx, b, update, "Package deactivated")
	}
	h.sendDashboard(ctx, b, msg.Chat.ID)
}

func (h *Handler) handleDeletePackage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		answer(ctx, b, update, "")
		return
	}
	id := strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackDeletePkg)

	if err := h.company.DeletePackage(ctx, signedInUser(ctx), id); err != nil {
		answer(ctx, b, update, h.userMessage(err, "delete package"))
		return
	}
	h.search.Invalidate()
	answer(ctx, b, update, "Package deleted")
	h.sendDashboard(ctx, b, msg.Chat.ID)
}

// handleProfile shows the company profile, or updates it when given
// key=value segments.
func (h *Handler) handleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	u := signedInUser(ctx)

	args := commandArgs(update.Message.Text)
	if args == "" {
		c, err := h.company.Profile(ctx, u)
		if err != nil {
			h.fail(ctx, b, chatID, err, "profile")
			return
		}
		tg.SendLongMessage(ctx, b, chatID, profileText(c), nil)
		return
	}

	patch, err := parseProfile(args)
	if err != nil {
		tg.SendLongMessage(ctx, b, chatID, profileUsage, nil)
		return
	}
	c, err := h.company.UpdateProfile(ctx, u, patch)
	if err != nil {
		h.fail(ctx, b, chatID, err, "update profile")
		return
	}
	tg.SendLongMessage(ctx, b, chatID, "✅ Profile saved.\n\n"+profileText(c), nil)
}
