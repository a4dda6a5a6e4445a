// Package activities — service.go содержит бизнес-логику заданий.
package activities

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
)

// Service управляет заданиями семьи.
type Service struct {
	repo *Repository
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис заданий.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create создаёт новое задание семьи. Ставка обязана быть положительной:
// бесплатные и «штрафные» задания не поддерживаются.
func (s *Service) Create(ctx context.Context, familyID, createdBy, name, description, unit string, rate float64) (*Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyName
	}
	if rate <= 0 {
		return nil, common.ErrInvalidRate
	}
	if unit = strings.TrimSpace(unit); unit == "" {
		unit = "раз"
	}

	a := &Activity{
		ID:          uuid.NewString(),
		FamilyID:    familyID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Unit:        unit,
		Rate:        rate,
		CreatedBy:   createdBy,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"activity_id": a.ID,
		"family_id":   familyID,
		"rate":        rate,
	}).Info("Создано задание")

	return a, nil
}

// Get возвращает задание, проверяя принадлежность семье запрашивающего.
func (s *Service) Get(ctx context.Context, familyID, activityID string) (*Activity, error) {
	a, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if a.FamilyID != familyID {
		return nil, common.ErrNotFamilyMember
	}
	return a, nil
}

// ListByFamily возвращает все задания семьи.
func (s *Service) ListByFamily(ctx context.Context, familyID string) ([]*Activity, error) {
	return s.repo.ListByFamily(ctx, familyID)
}

// Delete удаляет задание вместе со всеми его записями активности.
// Записи без задания бессмысленны: ни проверить, ни оценить их нельзя.
// Уже начисленные опыт и заработок при этом не откатываются.
func (s *Service) Delete(ctx context.Context, familyID, activityID string) error {
	a, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return err
	}
	if a.FamilyID != familyID {
		return common.ErrNotFamilyMember
	}

	removed, err := s.repo.DeleteLogs(ctx, activityID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, activityID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"activity_id":  activityID,
		"family_id":    familyID,
		"logs_removed": removed,
	}).Info("Задание удалено")

	return nil
}
