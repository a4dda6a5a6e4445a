// Package notify — events.go составляет тексты уведомлений о событиях
// сервиса и рассылает их нужным получателям.
//
// Доставка — побочный эффект: любая ошибка здесь логируется и никогда
// не возвращается вызывающему.
package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
)

// Recipient — адресат уведомления.
// ChatID равен нулю, если пользователь не привязал Telegram.
type Recipient struct {
	UserID string
	Name   string
	ChatID int64
}

// UserDirectory отвечает на вопрос «кому слать».
// Реализуется сервисом пользователей.
type UserDirectory interface {
	Parents(ctx context.Context, familyID string) ([]Recipient, error)
	Recipient(ctx context.Context, userID string) (Recipient, error)
}

// Events рассылает уведомления о событиях сервиса.
type Events struct {
	users    UserDirectory
	notifier Notifier
}

// NewEvents создаёт рассыльщик событий.
func NewEvents(users UserDirectory, notifier Notifier) *Events {
	return &Events{users: users, notifier: notifier}
}

// LogPending сообщает родителям семьи о новой записи на проверку.
func (e *Events) LogPending(ctx context.Context, familyID, childID, activityName string, units int) {
	child, err := e.users.Recipient(ctx, childID)
	if err != nil {
		log.WithError(err).WithField("user_id", childID).Error("Ошибка поиска ребёнка для уведомления")
		return
	}

	parents, err := e.users.Parents(ctx, familyID)
	if err != nil {
		log.WithError(err).WithField("family_id", familyID).Error("Ошибка поиска родителей для уведомления")
		return
	}

	text := fmt.Sprintf("📝 %s ждёт проверки: «%s» ×%d", child.Name, activityName, units)
	for _, p := range parents {
		e.send(ctx, p, text)
	}
}

// LogVerified сообщает ребёнку о результате проверки.
func (e *Events) LogVerified(ctx context.Context, childID, activityName, status string, amount float64) {
	child, err := e.users.Recipient(ctx, childID)
	if err != nil {
		log.WithError(err).WithField("user_id", childID).Error("Ошибка поиска ребёнка для уведомления")
		return
	}

	var text string
	if status == common.StatusApproved {
		text = fmt.Sprintf("✅ «%s» подтверждено! Заработано %.2f ₽", activityName, amount)
	} else {
		text = fmt.Sprintf("❌ «%s» отклонено", activityName)
	}
	e.send(ctx, child, text)
}

// StreakAtRisk напоминает пользователю, что серия сегодня ещё не продлена.
func (e *Events) StreakAtRisk(ctx context.Context, userID string, streak int) {
	r, err := e.users.Recipient(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка поиска получателя напоминания")
		return
	}

	text := fmt.Sprintf("🔥 Твоя серия — %s! Запиши задание сегодня, иначе она сгорит", common.FormatStreak(streak))
	e.send(ctx, r, text)
}

func (e *Events) send(ctx context.Context, r Recipient, text string) {
	if r.ChatID == 0 {
		return
	}
	if err := e.notifier.Send(ctx, r.ChatID, text); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": r.UserID,
			"chat_id": r.ChatID,
		}).Error("Ошибка доставки уведомления")
	}
}
