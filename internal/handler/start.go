package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/middleware"
	"github.com/set-night/travelhub/internal/service"
	tg "github.com/set-night/travelhub/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	name := "traveler"
	if u := signedInUser(ctx); u != nil {
		name = u.DisplayName()
	} else if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	tg.Reply(ctx, b, chatID, fmt.Sprintf("👋 Hi, %s!\n\n%s\n\n%s", name, service.WelcomeMessage, helpText))
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	tg.Reply(ctx, b, update.Message.Chat.ID, helpText)
}

func (h *Handler) handleMe(ctx context.Context, b *bot.Bot, update *models.Update) {
	s := middleware.GetSession(ctx)
	if update.Message == nil || s == nil {
		return
	}
	chatID := update.Message.Chat.ID

	u := signedInUser(ctx)
	if u == nil {
		tg.SendLongMessage(ctx, b, chatID, accountText(nil, s.State()), nil)
		return
	}
	if u.Name == "" {
		// The profile endpoint may know the display name the token lacks.
		if me := h.sources.Users.Me(ctx); me != nil && me.Name != "" {
			u.Name = me.Name
		}
	}
	tg.SendLongMessage(ctx, b, chatID, accountText(u, s.State()), nil)
}

func (h *Handler) handleNewChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.chat.Reset(update.Message.Chat.ID)
	tg.Reply(ctx, b, update.Message.Chat.ID, service.WelcomeMessage)
}

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	entries, err := h.chat.History(ctx, chatID)
	if err != nil {
		h.fail(ctx, b, chatID, err, "chat history")
		return
	}
	tg.SendLongMessage(ctx, b, chatID, historyText(entries), nil)
}

func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		answer(ctx, b, update, "")
	}
}

// HandleText sends free text to the travel assistant.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	chatID := update.Message.Chat.ID

	stopTyping := tg.StartTyping(ctx, b, chatID)
	reply, err := h.chat.Send(ctx, chatID, update.Message.Text)
	stopTyping()
	if err != nil {
		h.fail(ctx, b, chatID, err, "chat")
		return
	}

	var markup models.ReplyMarkup
	if len(reply.Offers) > 0 {
		page := reply.Offers[:min(len(reply.Offers), 10)]
		markup = tg.ResultsKeyboard(page, 0, 1)
	}
	if err := tg.SendLongMessage(ctx, b, chatID, chatReplyText(reply), markup); err != nil {
		h.fail(ctx, b, chatID, err, "chat reply")
	}
}
