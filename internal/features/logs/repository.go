// Package logs — repository.go выполняет операции с коллекцией logs
// документного хранилища.
package logs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с записями активности.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий записей.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// Create сохраняет новую запись активности.
func (r *Repository) Create(ctx context.Context, l *Log) error {
	if err := r.store.Set(ctx, store.CollLogs, l.ID, logToDoc(l)); err != nil {
		return fmt.Errorf("ошибка создания записи: %w", err)
	}
	return nil
}

// Get возвращает запись по идентификатору.
func (r *Repository) Get(ctx context.Context, id string) (*Log, error) {
	doc, err := r.store.Get(ctx, store.CollLogs, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrLogNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return logFromDoc(doc), nil
}

// SetVerification записывает результат проверки.
func (r *Repository) SetVerification(ctx context.Context, id, status, verifiedBy string, verifiedAt time.Time) error {
	err := r.store.Update(ctx, store.CollLogs, id, store.Document{
		"verificationStatus": status,
		"verifiedBy":         verifiedBy,
		"verifiedAt":         store.EncodeTime(verifiedAt),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrLogNotFound
		}
		return fmt.Errorf("ошибка записи результата проверки: %w", err)
	}
	return nil
}

// ListByUser возвращает записи пользователя, свежие первыми.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*Log, error) {
	return r.list(ctx, store.Eq("userId", userID))
}

// ListPendingByFamily возвращает непроверенные записи семьи,
// свежие первыми. Это рабочая очередь родителя.
func (r *Repository) ListPendingByFamily(ctx context.Context, familyID string) ([]*Log, error) {
	return r.list(ctx,
		store.Eq("familyId", familyID),
		store.Eq("verificationStatus", common.StatusPending),
	)
}

func (r *Repository) list(ctx context.Context, filters ...store.Filter) ([]*Log, error) {
	docs, err := r.store.Query(ctx, store.CollLogs, filters...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки записей: %w", err)
	}

	list := make([]*Log, 0, len(docs))
	for _, doc := range docs {
		list = append(list, logFromDoc(doc))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}
