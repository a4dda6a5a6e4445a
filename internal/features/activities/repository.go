// Package activities — repository.go выполняет операции с коллекцией
// activities документного хранилища.
package activities

import (
	"context"
	"errors"
	"fmt"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с заданиями.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий заданий.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// Create сохраняет новое задание.
func (r *Repository) Create(ctx context.Context, a *Activity) error {
	if err := r.store.Set(ctx, store.CollActivities, a.ID, activityToDoc(a)); err != nil {
		return fmt.Errorf("ошибка создания задания: %w", err)
	}
	return nil
}

// Get возвращает задание по идентификатору.
func (r *Repository) Get(ctx context.Context, id string) (*Activity, error) {
	doc, err := r.store.Get(ctx, store.CollActivities, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrActivityNotFound
		}
		return nil, fmt.Errorf("ошибка получения задания: %w", err)
	}
	return activityFromDoc(doc), nil
}

// ListByFamily возвращает все задания семьи.
func (r *Repository) ListByFamily(ctx context.Context, familyID string) ([]*Activity, error) {
	docs, err := r.store.Query(ctx, store.CollActivities, store.Eq("familyId", familyID))
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заданий семьи: %w", err)
	}

	list := make([]*Activity, 0, len(docs))
	for _, doc := range docs {
		list = append(list, activityFromDoc(doc))
	}
	return list, nil
}

// Delete удаляет задание.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.CollActivities, id); err != nil {
		return fmt.Errorf("ошибка удаления задания: %w", err)
	}
	return nil
}

// DeleteLogs удаляет все записи активности по заданию.
// Вызывается каскадно при удалении самого задания.
func (r *Repository) DeleteLogs(ctx context.Context, activityID string) (int, error) {
	docs, err := r.store.Query(ctx, store.CollLogs, store.Eq("activityId", activityID))
	if err != nil {
		return 0, fmt.Errorf("ошибка выборки записей задания: %w", err)
	}

	for _, doc := range docs {
		if err := r.store.Delete(ctx, store.CollLogs, store.Str(doc, "id")); err != nil {
			return 0, fmt.Errorf("ошибка каскадного удаления записи: %w", err)
		}
	}
	return len(docs), nil
}
