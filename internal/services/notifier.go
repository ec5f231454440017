package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier reenvía notificaciones por Telegram. Es opcional:
// si no hay bot configurado, el puntero es nil y los envíos se omiten.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramNotifier(botToken string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[telegram] bot autorizado como @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot}, nil
}

func (t *TelegramNotifier) Send(chatID int64, text string) {
	if t == nil || t.bot == nil || chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[telegram] envío fallido chat=%d: %v", chatID, err)
	}
}
