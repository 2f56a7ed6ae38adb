// Package telegram posts registrant notifications to an organizer chat.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"eventregistration/internal/domain"
)

// sender is the part of *tgbotapi.BotAPI the sink uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type sink struct {
	bot    sender
	chatID int64
}

// NewSink connects to the Bot API with token and returns a NotificationSink
// that posts every notification to chatID.
func NewSink(token string, chatID int64) (domain.NotificationSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return newSink(bot, chatID), nil
}

func newSink(bot sender, chatID int64) *sink {
	return &sink{bot: bot, chatID: chatID}
}

func (s *sink) Notify(ctx context.Context, n *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, format(n))); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func format(n *domain.Notification) string {
	return fmt.Sprintf("%s\nRegistration: %s\nEvent: %s\nUser: %s",
		n.Message, n.RegistrationID, n.EventID, n.UserID)
}
