package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/middleware"
	"github.com/set-night/travelhub/internal/session"
	tg "github.com/set-night/travelhub/internal/telegram"
)

const (
	loginUsage  = "Usage: /login <email|mobile> <password> [nr]\nAdd \"nr\" to stay signed in only until the bot restarts."
	signupUsage = "Usage: /signup <email|mobile> <password> [TRAVELER|COMPANY] [nr]"
)

// deleteCredentials removes the message carrying a password from the chat.
func deleteCredentials(ctx context.Context, b *bot.Bot, msg *models.Message) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})
}

func (h *Handler) handleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	s := middleware.GetSession(ctx)
	if update.Message == nil || s == nil {
		return
	}
	chatID := update.Message.Chat.ID

	form, err := parseLogin(commandArgs(update.Message.Text))
	if err != nil {
		tg.Reply(ctx, b, chatID, loginUsage)
		return
	}
	deleteCredentials(ctx, b, update.Message)
	form.From = h.takeReturnTo(chatID)

	u, route, err := h.auth.Login(ctx, s, form)
	if err != nil {
		h.fail(ctx, b, chatID, err, "login")
		return
	}
	h.closeBar(chatID)
	tg.Reply(ctx, b, chatID, fmt.Sprintf("✅ Welcome back, %s!\n\n%s", u.DisplayName(), routeHint(route)))
}

func (h *Handler) handleSignup(ctx context.Context, b *bot.Bot, update *models.Update) {
	s := middleware.GetSession(ctx)
	if update.Message == nil || s == nil {
		return
	}
	chatID := update.Message.Chat.ID

	form, err := parseSignup(commandArgs(update.Message.Text))
	if err != nil {
		tg.Reply(ctx, b, chatID, signupUsage)
		return
	}
	deleteCredentials(ctx, b, update.Message)

	u, err := h.auth.Signup(ctx, s, form)
	if err != nil {
		h.fail(ctx, b, chatID, err, "signup")
		return
	}
	h.closeBar(chatID)
	h.events.LogSignup(u, chatID)
	tg.Reply(ctx, b, chatID, fmt.Sprintf("🎉 Account created. Welcome, %s!\n\n%s", u.DisplayName(), routeHint(session.Landing(u.Role))))
}

func (h *Handler) handleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	s := middleware.GetSession(ctx)
	if update.Message == nil || s == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.closeBar(chatID)
	if err := s.Logout(ctx); err != nil {
		h.fail(ctx, b, chatID, err, "logout")
		return
	}
	tg.Reply(ctx, b, chatID, "👋 You are signed out.")
}
