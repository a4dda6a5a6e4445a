// Package families — service.go содержит создание семьи, вступление
// по коду приглашения и просмотр состава.
package families

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/features/users"
)

// Алфавит кода приглашения: без 0/O и 1/I, которые путают на слух
// и при перепечатке с бумажки на холодильнике.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLen = 6

// UserDirectory — операции над пользователями, нужные семьям.
// Реализуется сервисом пользователей.
type UserDirectory interface {
	Profile(ctx context.Context, userID string) (*users.User, error)
	SetFamily(ctx context.Context, userID, familyID string) error
	Members(ctx context.Context, familyID string) ([]*users.User, error)
}

// Service управляет семьями.
type Service struct {
	repo  *Repository
	users UserDirectory
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис семей.
func NewService(repo *Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users, now: time.Now}
}

// Create создаёт семью и записывает в неё создателя.
// Создатель не должен уже состоять в семье.
func (s *Service) Create(ctx context.Context, creatorID, name string) (*Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyName
	}

	creator, err := s.users.Profile(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.FamilyID != "" {
		return nil, common.ErrAlreadyInFamily
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	f := &Family{
		ID:         uuid.NewString(),
		Name:       name,
		InviteCode: code,
		CreatedBy:  creatorID,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	if err := s.users.SetFamily(ctx, creatorID, f.ID); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"family_id":   f.ID,
		"invite_code": code,
		"created_by":  creatorID,
	}).Info("Создана семья")

	return f, nil
}

// Join записывает пользователя в семью по коду приглашения.
// Возвращает семью и обновлённого пользователя — обработчик выпустит
// ему свежий токен с заполненным familyId.
func (s *Service) Join(ctx context.Context, userID, code string) (*Family, *users.User, error) {
	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if u.FamilyID != "" {
		return nil, nil, common.ErrAlreadyInFamily
	}

	f, err := s.repo.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.SetFamily(ctx, userID, f.ID); err != nil {
		return nil, nil, err
	}
	u.FamilyID = f.ID

	log.WithFields(log.Fields{
		"family_id": f.ID,
		"user_id":   userID,
	}).Info("Пользователь вступил в семью")

	return f, u, nil
}

// Details возвращает семью и её состав.
// Доступно только членам семьи.
func (s *Service) Details(ctx context.Context, familyID string) (*Family, []*users.User, error) {
	if familyID == "" {
		return nil, nil, common.ErrFamilyNotFound
	}

	f, err := s.repo.Get(ctx, familyID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.users.Members(ctx, familyID)
	if err != nil {
		return nil, nil, err
	}
	return f, members, nil
}

// uniqueInviteCode подбирает свободный код приглашения.
func (s *Service) uniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}
		taken, err := s.repo.InviteCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("не удалось подобрать свободный код приглашения")
}

func randomInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("ошибка генерации кода приглашения: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
