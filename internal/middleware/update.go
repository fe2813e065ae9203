package middleware

import "github.com/go-telegram/bot/models"

// Origin identifies where an update came from.
type Origin struct {
	Kind   string
	ChatID int64
	UserID int64
}

func OriginOf(update *models.Update) Origin {
	switch {
	case update.Message != nil:
		o := Origin{Kind: "message", ChatID: update.Message.Chat.ID}
		if update.Message.From != nil {
			o.UserID = update.Message.From.ID
		}
		return o
	case update.CallbackQuery != nil:
		o := Origin{Kind: "callback_query", UserID: update.CallbackQuery.From.ID}
		if msg := update.CallbackQuery.Message.Message; msg != nil {
			o.ChatID = msg.Chat.ID
		}
		return o
	}
	return Origin{Kind: "unknown"}
}
