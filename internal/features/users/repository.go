// Package users — repository.go выполняет операции с коллекцией users
// документного хранилища.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

// Repository предоставляет методы для работы с пользователями.
type Repository struct {
	store store.Store
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(st store.Store) *Repository {
	return &Repository{store: st}
}

// Create сохраняет нового пользователя.
func (r *Repository) Create(ctx context.Context, u *User) error {
	if err := r.store.Set(ctx, store.CollUsers, u.ID, userToDoc(u)); err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

// Get возвращает пользователя по идентификатору.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	doc, err := r.store.Get(ctx, store.CollUsers, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return userFromDoc(doc), nil
}

// GetByEmail возвращает пользователя по email (без учёта регистра).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	docs, err := r.store.Query(ctx, store.CollUsers, store.Eq("email", strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя по email: %w", err)
	}
	if len(docs) == 0 {
		return nil, common.ErrUserNotFound
	}
	return userFromDoc(docs[0]), nil
}

// Patch сливает изменения в документ пользователя.
func (r *Repository) Patch(ctx context.Context, id string, patch store.Document) error {
	err := r.store.Update(ctx, store.CollUsers, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return nil
}

// ListByFamily возвращает всех членов семьи.
func (r *Repository) ListByFamily(ctx context.Context, familyID string) ([]*User, error) {
	docs, err := r.store.Query(ctx, store.CollUsers, store.Eq("familyId", familyID))
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки членов семьи: %w", err)
	}

	list := make([]*User, 0, len(docs))
	for _, doc := range docs {
		list = append(list, userFromDoc(doc))
	}
	return list, nil
}
