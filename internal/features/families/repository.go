// Package families — repository.go выполняет операции с коллекцией
// families документного хранилища.
package families

import (
	"context"
	"errors"
	"fmt"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с семьями.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий семей.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// Create сохраняет новую семью.
func (r *Repository) Create(ctx context.Context, f *Family) error {
	if err := r.store.Set(ctx, store.CollFamilies, f.ID, familyToDoc(f)); err != nil {
		return fmt.Errorf("ошибка создания семьи: %w", err)
	}
	return nil
}

// Get возвращает семью по идентификатору.
func (r *Repository) Get(ctx context.Context, id string) (*Family, error) {
	doc, err := r.store.Get(ctx, store.CollFamilies, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrFamilyNotFound
		}
		return nil, fmt.Errorf("ошибка получения семьи: %w", err)
	}
	return familyFromDoc(doc), nil
}

// GetByInviteCode возвращает семью по коду приглашения.
func (r *Repository) GetByInviteCode(ctx context.Context, code string) (*Family, error) {
	docs, err := r.store.Query(ctx, store.CollFamilies, store.Eq("inviteCode", code))
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска семьи по коду: %w", err)
	}
	if len(docs) == 0 {
		return nil, common.ErrInviteCodeNotFound
	}
	return familyFromDoc(docs[0]), nil
}

// InviteCodeTaken проверяет занятость кода приглашения.
func (r *Repository) InviteCodeTaken(ctx context.Context, code string) (bool, error) {
	docs, err := r.store.Query(ctx, store.CollFamilies, store.Eq("inviteCode", code))
	if err != nil {
		return false, fmt.Errorf("ошибка проверки кода приглашения: %w", err)
	}
	return len(docs) > 0, nil
}
