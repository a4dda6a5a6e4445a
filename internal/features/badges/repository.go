// Package badges — repository.go выполняет операции с коллекцией
// user_badges документного хранилища.
// Документ пользователя: {userId, badges: {badgeId: {earnedAt, progress}}}.
package badges

import (
	"context"
	"errors"
	"fmt"

	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с картами наград.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий наград.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// EarnedMap возвращает карту полученных значков пользователя.
// Если документа нет — создаёт пустой и возвращает пустую карту:
// так документ появляется при первой же проверке, как и в остальных
// мутирующих операциях сервиса.
func (r *Repository) EarnedMap(ctx context.Context, userID string) (map[string]Earned, error) {
	doc, err := r.store.Get(ctx, store.CollUserBadges, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("ошибка чтения наград (user=%s): %w", userID, err)
		}
		empty := store.Document{"userId": userID, "badges": store.Document{}}
		if err := r.store.Set(ctx, store.CollUserBadges, userID, empty); err != nil {
			return nil, fmt.Errorf("ошибка создания карты наград (user=%s): %w", userID, err)
		}
		return map[string]Earned{}, nil
	}

	return earnedFromDoc(doc), nil
}

// SaveEarnedMap перезаписывает карту наград пользователя.
func (r *Repository) SaveEarnedMap(ctx context.Context, userID string, earned map[string]Earned) error {
	badgesDoc := make(store.Document, len(earned))
	for id, e := range earned {
		badgesDoc[id] = store.Document{
			"earnedAt": store.EncodeTime(e.EarnedAt),
			"progress": e.Progress,
		}
	}

	err := r.store.Update(ctx, store.CollUserBadges, userID, store.Document{"badges": badgesDoc})
	if err != nil {
		return fmt.Errorf("ошибка записи наград (user=%s): %w", userID, err)
	}
	return nil
}

// earnedFromDoc разбирает вложенную карту badges.
// Повреждённые записи пропускаются молча: лучше потерять отметку
// в ответе, чем уронить проверку значков целиком.
func earnedFromDoc(doc store.Document) map[string]Earned {
	earned := make(map[string]Earned)

	badgesRaw, ok := doc["badges"].(map[string]any)
	if !ok {
		return earned
	}

	for id, raw := range badgesRaw {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		e := Earned{Progress: store.Int(entry, "progress")}
		if t, ok := store.Time(entry, "earnedAt"); ok {
			e.EarnedAt = t
		}
		earned[id] = e
	}
	return earned
}
