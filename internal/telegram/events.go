package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
)

// EventLogger mirrors operational events into forum topics of a log chat.
type EventLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewEventLogger(b *bot.Bot, cfg *config.Config) *EventLogger {
	return &EventLogger{bot: b, cfg: cfg}
}

type EventType string

const (
	EventError      EventType = "error"
	EventBooking    EventType = "booking"
	EventSignup     EventType = "signup"
	EventNewPackage EventType = "newPackage"
)

// Log posts message to the topic of eventType. Unconfigured topics are skipped.
func (l *EventLogger) Log(eventType EventType, message string) {
	if l == nil || l.bot == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}
	topicID := l.topicID(eventType)
	if topicID == 0 {
		return
	}

	if len([]rune(message)) > config.MaxTelegramMessageLen {
		message = string([]rune(message)[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       models.ParseModeMarkdownV1,
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram event", "type", eventType, "error", err)
	}
}

func (l *EventLogger) LogError(err error, where string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format(time.DateTime))
	l.Log(EventError, msg)
}

func (l *EventLogger) LogBooking(b *domain.Booking) {
	msg := fmt.Sprintf("🧳 *Booking Confirmed*\n\n*ID:* `%s`\n*Package:* %s\n*Traveler:* %s\n*Travelers:* %d\n*Total:* $%s",
		b.ID, EscapeMarkdown(b.PackageTitle), EscapeMarkdown(b.TravelerName), b.NumberOfTravelers, b.TotalAmount.StringFixed(2))
	l.Log(EventBooking, msg)
}

func (l *EventLogger) LogSignup(u *domain.AuthUser, telegramID int64) {
	msg := fmt.Sprintf("👤 *New Signup*\n\n*Telegram ID:* `%d`\n*User:* %s\n*Role:* %s",
		telegramID, EscapeMarkdown(u.DisplayName()), u.Role)
	l.Log(EventSignup, msg)
}

func (l *EventLogger) LogNewPackage(p *domain.TravelPackage) {
	msg := fmt.Sprintf("🗺 *New Package*\n\n*ID:* `%s`\n*Title:* %s\n*Provider:* %s\n*Price:* $%s",
		p.ID, EscapeMarkdown(p.Title), EscapeMarkdown(p.ProviderName), p.Price.StringFixed(2))
	l.Log(EventNewPackage, msg)
}

func (l *EventLogger) topicID(eventType EventType) int {
	switch eventType {
	case EventError:
		return l.cfg.LogTopicError
	case EventBooking:
		return l.cfg.LogTopicBooking
	case EventSignup:
		return l.cfg.LogTopicSignup
	case EventNewPackage:
		return l.cfg.LogTopicNewPackage
	default:
		return 0
	}
}
