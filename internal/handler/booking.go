package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/domain"
	tg "github.com/set-night/travelhub/internal/telegram"
)

const (
	bookUsage    = "Usage: /book <id> <travelers> <name>; <email>[; phone[; requests]]"
	bookingUsage = "Usage: /booking <reference>"
)

func (h *Handler) handleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	form, err := parseBook(commandArgs(update.Message.Text))
	if err != nil {
		tg.Reply(ctx, b, chatID, bookUsage)
		return
	}

	pkg, prefill, err := h.booking.Prefill(ctx, form.PackageID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "book prefill")
		return
	}
	// A bare "/book <id>" shows the prefilled form.
	if form.FullName == "" && form.Email == "" {
		prefill.Travelers = form.Travelers
		h.fillContact(ctx, &prefill.FullName, &prefill.Email)
		tg.SendLongMessage(ctx, b, chatID, bookingPrompt(pkg, prefill), nil)
		return
	}
	if form.Email == "" {
		form.Email = prefill.Email
		h.fillContact(ctx, nil, &form.Email)
	}

	booking, err := h.booking.Checkout(ctx, form)
	if err != nil {
		h.fail(ctx, b, chatID, err, "checkout")
		return
	}
	h.events.LogBooking(booking)
	tg.SendLongMessage(ctx, b, chatID, tg.BookingConfirmation(booking), nil)
}

// fillContact completes empty fields from the signed-in user.
func (h *Handler) fillContact(ctx context.Context, name, email *string) {
	u := signedInUser(ctx)
	if u == nil {
		return
	}
	if name != nil && (*name == "" || *name == "Current User") {
		*name = u.Name
	}
	if email != nil && *email == "" {
		*email = u.Email
	}
}

func (h *Handler) handleBookCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	answer(ctx, b, update, "")
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	id := strings.TrimPrefix(update.CallbackQuery.Data, tg.CallbackBook)

	pkg, prefill, err := h.booking.Prefill(ctx, id)
	if err != nil {
		h.fail(ctx, b, msg.Chat.ID, err, "book prefill")
		return
	}
	h.fillContact(ctx, &prefill.FullName, &prefill.Email)
	tg.SendLongMessage(ctx, b, msg.Chat.ID, bookingPrompt(pkg, prefill), nil)
}

func (h *Handler) handleBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	u := signedInUser(ctx)
	if u == nil {
		h.fail(ctx, b, chatID, domain.ErrNotAuthenticated, "bookings")
		return
	}

	email := u.Email
	if email == "" {
		tg.Reply(ctx, b, chatID, "Your account has no email, so bookings cannot be matched to it.")
		return
	}
	list, err := h.booking.ForTraveler(ctx, email)
	if err != nil {
		h.fail(ctx, b, chatID, err, "bookings")
		return
	}
	tg.SendLongMessage(ctx, b, chatID, bookingsText(list), nil)
}

// handleBookingDetails shows the confirmation of one booking again.
func (h *Handler) handleBookingDetails(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, err := parseBookingRef(commandArgs(update.Message.Text))
	if err != nil {
		tg.Reply(ctx, b, chatID, bookingUsage)
		return
	}
	booking, err := h.booking.Confirmation(ctx, signedInUser(ctx), id)
	if err != nil {
		h.fail(ctx, b, chatID, err, "booking details")
		return
	}
	tg.SendLongMessage(ctx, b, chatID, tg.BookingConfirmation(booking), nil)
}
