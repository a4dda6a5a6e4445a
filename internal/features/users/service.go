// Package users — service.go содержит регистрацию, вход и профиль.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/notify"
	"domovenok.ru/chores-backend/internal/server/middleware"
	"domovenok.ru/chores-backend/internal/store"
)

// Service управляет учётными записями.
type Service struct {
	repo      *Repository
	jwtSecret string
	jwtTTL    time.Duration
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис пользователей.
func NewService(repo *Repository, jwtSecret string, jwtTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		now:       time.Now,
	}
}

// Register создаёт учётную запись и сразу выдаёт токен.
func (s *Service) Register(ctx context.Context, email, password, name, role string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", common.ErrWrongCredentials
	}
	if len(password) < 6 {
		return nil, "", common.ErrWeakPassword
	}
	if name == "" {
		return nil, "", common.ErrEmptyName
	}
	if role != common.RoleParent && role != common.RoleChild {
		return nil, "", common.ErrWrongRole
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	log.WithFields(log.Fields{
		"user_id": u.ID,
		"role":    role,
	}).Info("Зарегистрирован пользователь")

	token, err := s.token(u)
	return u, token, err
}

// Login проверяет пароль и выдаёт токен.
// «Нет такого пользователя» и «неверный пароль» неразличимы снаружи.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, "", common.ErrWrongCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrWrongCredentials
	}

	token, err := s.token(u)
	return u, token, err
}

// Profile возвращает учётную запись по идентификатору.
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return s.repo.Get(ctx, userID)
}

// SetFamily записывает пользователя в семью.
func (s *Service) SetFamily(ctx context.Context, userID, familyID string) error {
	return s.repo.Patch(ctx, userID, store.Document{"familyId": familyID})
}

// Members возвращает всех членов семьи.
func (s *Service) Members(ctx context.Context, familyID string) ([]*User, error) {
	return s.repo.ListByFamily(ctx, familyID)
}

// LinkTelegram привязывает Telegram-чат для уведомлений.
func (s *Service) LinkTelegram(ctx context.Context, userID string, chatID int64) error {
	return s.repo.Patch(ctx, userID, store.Document{"telegramChatId": chatID})
}

// Token выпускает свежий токен для пользователя.
// Нужен после вступления в семью: в старом токене familyId пустой.
func (s *Service) Token(u *User) (string, error) {
	return s.token(u)
}

func (s *Service) token(u *User) (string, error) {
	return middleware.GenerateToken(s.jwtSecret, u.ID, u.Role, u.FamilyID, s.jwtTTL)
}

// FamilyID возвращает семью пользователя.
func (s *Service) FamilyID(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.FamilyID, nil
}

// Parents возвращает родителей семьи как адресатов уведомлений.
func (s *Service) Parents(ctx context.Context, familyID string) ([]notify.Recipient, error) {
	members, err := s.repo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	var parents []notify.Recipient
	for _, m := range members {
		if m.Role == common.RoleParent {
			parents = append(parents, notify.Recipient{UserID: m.ID, Name: m.Name, ChatID: m.TelegramChatID})
		}
	}
	return parents, nil
}

// Recipient возвращает пользователя как адресата уведомлений.
func (s *Service) Recipient(ctx context.Context, userID string) (notify.Recipient, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return notify.Recipient{}, err
	}
	return notify.Recipient{UserID: u.ID, Name: u.Name, ChatID: u.TelegramChatID}, nil
}
