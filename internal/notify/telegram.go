// Package notify pushes best-effort notifications to external channels.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vaaltic/crm/internal/models"
)

// TelegramNotifier posts new-lead announcements into a configured chat.
// Failures are logged, never propagated; lead creation must not depend
// on Telegram availability.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) LeadCreated(lead *models.Lead) {
	if n == nil || n.chatID == 0 {
		return
	}
	text := fmt.Sprintf("New lead: %s <%s> via %s", lead.Name, lead.Email, lead.Source)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[notify][telegram] send failed: %v", err)
	}
}
