// Package users управляет учётными записями родителей и детей.
// models.go описывает пользователя и его документное представление.
package users

import (
	"time"

	"domovenok.ru/chores-backend/internal/store"
)

// User — учётная запись.
// Роль назначается при регистрации и не меняется: родитель проверяет
// записи и управляет заданиями, ребёнок записывает активность.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	// parent | child
	Role     string `json:"role"`
	FamilyID string `json:"family_id,omitempty"`
	// Куда слать уведомления (0 — телеграм не привязан)
	TelegramChatID int64     `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func userToDoc(u *User) store.Document {
	return store.Document{
		"id":             u.ID,
		"email":          u.Email,
		"passwordHash":   u.PasswordHash,
		"name":           u.Name,
		"role":           u.Role,
		"familyId":       u.FamilyID,
		"telegramChatId": u.TelegramChatID,
		"createdAt":      store.EncodeTime(u.CreatedAt),
	}
}

func userFromDoc(doc store.Document) *User {
	u := &User{
		ID:             store.Str(doc, "id"),
		Email:          store.Str(doc, "email"),
		PasswordHash:   store.Str(doc, "passwordHash"),
		Name:           store.Str(doc, "name"),
		Role:           store.Str(doc, "role"),
		FamilyID:       store.Str(doc, "familyId"),
		TelegramChatID: int64(store.Int(doc, "telegramChatId")),
	}
	if t, ok := store.Time(doc, "createdAt"); ok {
		u.CreatedAt = t
	}
	return u
}
