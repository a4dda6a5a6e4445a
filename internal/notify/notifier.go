// Package notify доставляет уведомления участникам семьи в Telegram.
// notifier.go — транспортный слой: отправка текста в конкретный чат.
package notify

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"
)

// Notifier отправляет текстовое сообщение в чат.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Telegram — уведомления через Telegram-бота.
type Telegram struct {
	bot *telego.Bot
}

// NewTelegram создаёт уведомитель поверх бота.
func NewTelegram(token string) (*Telegram, error) {
	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram-бота: %w", err)
	}
	return &Telegram{bot: bot}, nil
}

// Send отправляет сообщение в чат.
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	_, err := t.bot.SendMessage(ctx, telegoutil.Message(telegoutil.ID(chatID), text))
	if err != nil {
		return fmt.Errorf("ошибка отправки сообщения (chat=%d): %w", chatID, err)
	}
	return nil
}

// Noop — заглушка, когда токен бота не задан.
// Сервис полностью работоспособен без Telegram, уведомления просто
// не уходят.
type Noop struct{}

// Send ничего не делает.
func (Noop) Send(ctx context.Context, chatID int64, text string) error {
	log.WithField("chat_id", chatID).Debug("Уведомления отключены, сообщение не отправлено")
	return nil
}
