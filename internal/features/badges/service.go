// Package badges — service.go содержит логику проверки и выдачи значков.
//
// Выдача монотонна и необратима: попав в карту наград, значок никогда
// не переоценивается и не отзывается, даже если статистика потом
// опустится ниже порога (серия сбросилась — «Огонёк» остаётся).
package badges

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/store"
)

// Service управляет значками.
type Service struct {
	repo  *Repository
	store store.Store
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис значков.
func NewService(repo *Repository, st store.Store) *Service {
	return &Service{repo: repo, store: st, now: time.Now}
}

// CheckAndAward проверяет каталог против текущей статистики пользователя
// и выдаёт ВСЕ новые заслуженные значки разом. Возвращает только
// выданные этим вызовом; уже полученные никогда не попадают в результат.
//
// У пользователя без статистики выдавать нечего: возвращаем пустой
// список и НЕ создаём статистику — её заводят начисляющие операции.
func (s *Service) CheckAndAward(ctx context.Context, userID string) ([]Badge, error) {
	statsDoc, err := s.store.Get(ctx, store.CollUserStats, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	earned, err := s.repo.EarnedMap(ctx, userID)
	if err != nil {
		return nil, err
	}

	evaluatedAt := s.now()
	var newlyEarned []Badge

	for _, badge := range Catalog() {
		if _, already := earned[badge.ID]; already {
			continue
		}
		if !meetsRequirement(badge, statsDoc) {
			continue
		}

		earned[badge.ID] = Earned{EarnedAt: evaluatedAt, Progress: 100}
		newlyEarned = append(newlyEarned, badge)

		log.WithFields(log.Fields{
			"user_id": userID,
			"badge":   badge.ID,
		}).Info("Новый значок")
	}

	if len(newlyEarned) > 0 {
		if err := s.repo.SaveEarnedMap(ctx, userID, earned); err != nil {
			return nil, err
		}
		err = s.store.Update(ctx, store.CollUserStats, userID, store.Document{
			"badgesEarned": len(earned),
		})
		if err != nil {
			return nil, err
		}
	}

	return newlyEarned, nil
}

// meetsRequirement сравнивает требование значка с полем статистики.
// Неизвестные и необеспеченные типы требований (pages_read,
// goals_completed) всегда false — значок остаётся недостижимым.
func meetsRequirement(badge Badge, statsDoc store.Document) bool {
	switch badge.RequirementType {
	case ReqActivityCount:
		return store.Int(statsDoc, "totalActivitiesLogged") >= badge.RequirementValue
	case ReqTotalEarnings:
		return store.Float(statsDoc, "totalEarnings") >= float64(badge.RequirementValue)
	case ReqCurrentStreak:
		return store.Int(statsDoc, "currentStreak") >= badge.RequirementValue
	default:
		return false
	}
}

// UserBadges возвращает полученные значки пользователя и прогресс
// по остальным. Для пользователя без статистики прогресс везде 0.
func (s *Service) UserBadges(ctx context.Context, userID string) (earned []UserBadge, available []UserBadge, err error) {
	statsDoc, err := s.store.Get(ctx, store.CollUserStats, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, err
		}
		statsDoc = store.Document{}
	}

	earnedMap, err := s.repo.EarnedMap(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	for _, badge := range Catalog() {
		if e, ok := earnedMap[badge.ID]; ok {
			earned = append(earned, UserBadge{Badge: badge, EarnedAt: e.EarnedAt, Progress: 100})
			continue
		}
		available = append(available, UserBadge{Badge: badge, Progress: progressFor(badge, statsDoc)})
	}
	return earned, available, nil
}

// progressFor считает процент выполнения требования (0–100).
func progressFor(badge Badge, statsDoc store.Document) int {
	var current float64
	switch badge.RequirementType {
	case ReqActivityCount:
		current = float64(store.Int(statsDoc, "totalActivitiesLogged"))
	case ReqTotalEarnings:
		current = store.Float(statsDoc, "totalEarnings")
	case ReqCurrentStreak:
		current = float64(store.Int(statsDoc, "currentStreak"))
	default:
		return 0
	}

	if badge.RequirementValue <= 0 {
		return 0
	}
	progress := int(current / float64(badge.RequirementValue) * 100)
	if progress > 100 {
		progress = 100
	}
	return progress
}
