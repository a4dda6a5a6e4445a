// Package logs — service.go содержит бизнес-логику записей активности
// и запускает игровые начисления на двух событиях жизненного цикла:
// создание записи и её подтверждение.
package logs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/features/activities"
)

// ActivityProvider возвращает задание семьи.
// Реализуется сервисом заданий.
type ActivityProvider interface {
	Get(ctx context.Context, familyID, activityID string) (*activities.Activity, error)
}

// Progression запускает игровые начисления.
// Реализуется сервисом прогрессии; оба метода не возвращают ошибок —
// сбой начислений не должен ломать работу с записями.
type Progression interface {
	OnLogCreated(ctx context.Context, userID string)
	OnLogApproved(ctx context.Context, userID string, amount float64)
}

// Events рассылает уведомления участникам семьи.
// Реализуется пакетом notify; сбой доставки только логируется.
type Events interface {
	LogPending(ctx context.Context, familyID, childID, activityName string, units int)
	LogVerified(ctx context.Context, childID, activityName, status string, amount float64)
}

// Service управляет записями активности.
type Service struct {
	repo        *Repository
	activities  ActivityProvider
	progression Progression
	events      Events
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис записей.
func NewService(repo *Repository, ap ActivityProvider, pr Progression, ev Events) *Service {
	return &Service{
		repo:        repo,
		activities:  ap,
		progression: pr,
		events:      ev,
		now:         time.Now,
	}
}

// Create создаёт запись активности от имени ребёнка.
// Запись рождается со статусом pending; опыт и серия начисляются сразу,
// не дожидаясь проверки родителем. Сбой начислений или уведомления
// не откатывает запись.
func (s *Service) Create(ctx context.Context, userID, familyID, activityID string, units int) (*Log, error) {
	if units <= 0 {
		return nil, common.ErrInvalidUnits
	}

	activity, err := s.activities.Get(ctx, familyID, activityID)
	if err != nil {
		return nil, err
	}

	l := &Log{
		ID:                 uuid.NewString(),
		ActivityID:         activityID,
		UserID:             userID,
		FamilyID:           familyID,
		Units:              units,
		Timestamp:          s.now(),
		VerificationStatus: common.StatusPending,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"log_id":      l.ID,
		"user_id":     userID,
		"activity_id": activityID,
		"units":       units,
	}).Info("Создана запись активности")

	s.progression.OnLogCreated(ctx, userID)
	s.events.LogPending(ctx, familyID, userID, activity.Name, units)

	return l, nil
}

// Verify переводит запись из pending в approved или rejected.
// Проверка выполняется ровно один раз: повторный вызов возвращает
// ErrAlreadyVerified независимо от нового статуса.
//
// Сумма заработка считается по текущей ставке задания; если задание
// уже удалили, ставка равна нулю — подтверждение проходит, но денег
// не приносит.
func (s *Service) Verify(ctx context.Context, parentID, familyID, logID, status string) (*Log, error) {
	if status != common.StatusApproved && status != common.StatusRejected {
		return nil, common.ErrInvalidStatus
	}

	l, err := s.repo.Get(ctx, logID)
	if err != nil {
		return nil, err
	}
	if l.FamilyID != familyID {
		return nil, common.ErrNotFamilyMember
	}
	if l.VerificationStatus != common.StatusPending {
		return nil, common.ErrAlreadyVerified
	}

	var amount float64
	activityName := ""
	activity, err := s.activities.Get(ctx, familyID, l.ActivityID)
	switch {
	case err == nil:
		amount = float64(l.Units) * activity.Rate
		activityName = activity.Name
	case errors.Is(err, common.ErrActivityNotFound):
		// Задание удалено — запись подтверждаем с нулевой суммой
	default:
		return nil, err
	}

	verifiedAt := s.now()
	if err := s.repo.SetVerification(ctx, logID, status, parentID, verifiedAt); err != nil {
		return nil, err
	}

	l.VerificationStatus = status
	l.VerifiedBy = parentID
	l.VerifiedAt = &verifiedAt

	log.WithFields(log.Fields{
		"log_id":  logID,
		"status":  status,
		"parent":  parentID,
		"amount":  amount,
		"user_id": l.UserID,
	}).Info("Запись проверена")

	if status == common.StatusApproved {
		s.progression.OnLogApproved(ctx, l.UserID, amount)
	}
	s.events.LogVerified(ctx, l.UserID, activityName, status, amount)

	return l, nil
}

// ListMine возвращает записи пользователя, свежие первыми.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*Log, error) {
	return s.repo.ListByUser(ctx, userID)
}

// PendingForFamily возвращает очередь непроверенных записей семьи.
func (s *Service) PendingForFamily(ctx context.Context, familyID string) ([]*Log, error) {
	return s.repo.ListPendingByFamily(ctx, familyID)
}
