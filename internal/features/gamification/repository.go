// Package gamification — repository.go выполняет операции
// с коллекцией user_stats документного хранилища.
package gamification

import (
	"context"
	"errors"
	"fmt"

	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с коллекцией user_stats.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий статистики.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// Get возвращает статистику пользователя.
// Для пользователя без статистики возвращает store.ErrNotFound.
func (r *Repository) Get(ctx context.Context, userID string) (*UserStats, error) {
	doc, err := r.store.Get(ctx, store.CollUserStats, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения статистики (user=%s): %w", userID, err)
	}
	return statsFromDoc(doc), nil
}

// GetOrCreate возвращает статистику пользователя, создавая запись
// с нулевыми значениями при первом обращении.
// Единая точка ленивой инициализации для всех мутирующих операций.
func (r *Repository) GetOrCreate(ctx context.Context, userID string) (*UserStats, error) {
	stats, err := r.Get(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	stats = defaultStats(userID)
	if err := r.store.Set(ctx, store.CollUserStats, userID, statsToDoc(stats)); err != nil {
		return nil, fmt.Errorf("ошибка создания статистики (user=%s): %w", userID, err)
	}
	return stats, nil
}

// Patch частично обновляет документ статистики.
func (r *Repository) Patch(ctx context.Context, userID string, patch store.Document) error {
	if err := r.store.Update(ctx, store.CollUserStats, userID, patch); err != nil {
		return fmt.Errorf("ошибка обновления статистики (user=%s): %w", userID, err)
	}
	return nil
}

// WithMinStreak возвращает статистику всех пользователей с серией >= minStreak.
// Используется планировщиком вечерних напоминаний.
func (r *Repository) WithMinStreak(ctx context.Context, minStreak int) ([]*UserStats, error) {
	docs, err := r.store.Query(ctx, store.CollUserStats, store.GTE("currentStreak", minStreak))
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки серий: %w", err)
	}

	stats := make([]*UserStats, 0, len(docs))
	for _, doc := range docs {
		stats = append(stats, statsFromDoc(doc))
	}
	return stats, nil
}
