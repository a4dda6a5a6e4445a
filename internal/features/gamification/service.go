// Package gamification — service.go содержит бизнес-логику прогрессии
// и оркестрацию двух триггерных событий: «запись создана» и
// «запись подтверждена».
//
// Игровые начисления — побочный эффект основного запроса. Ошибка любого
// шага логируется и НЕ прерывает ни остальные шаги, ни внешний запрос.
package gamification

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/features/badges"
	"domovenok.ru/chores-backend/internal/store"
)

// BadgeChecker проверяет и выдаёт новые значки пользователю.
// Реализуется сервисом значков; в тестах подменяется заглушкой.
type BadgeChecker interface {
	CheckAndAward(ctx context.Context, userID string) ([]badges.Badge, error)
}

// Service управляет игровой прогрессией.
type Service struct {
	repo   *Repository
	badges BadgeChecker
	// Базовый опыт за одну запись активности (из конфигурации)
	xpPerActivity int
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис прогрессии.
func NewService(repo *Repository, badgeChecker BadgeChecker, xpPerActivity int) *Service {
	return &Service{
		repo:          repo,
		badges:        badgeChecker,
		xpPerActivity: xpPerActivity,
		now:           time.Now,
	}
}

// AwardXP начисляет amount опыта пользователю и раскручивает каскад
// повышений уровня. Статистика создаётся лениво при первом начислении.
func (s *Service) AwardXP(ctx context.Context, userID string, amount int, reason string) (*AwardResult, error) {
	stats, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := applyXP(stats, amount)

	err = s.repo.Patch(ctx, userID, store.Document{
		"experiencePoints": stats.ExperiencePoints,
		"totalExperience":  stats.TotalExperience,
		"level":            stats.Level,
	})
	if err != nil {
		return nil, err
	}

	if result.LevelUp {
		log.WithFields(log.Fields{
			"user_id": userID,
			"from":    result.OldLevel,
			"to":      result.Level,
			"reason":  reason,
		}).Info("Пользователь повысил уровень")
	}

	return &result, nil
}

// UpdateStreak обновляет серию активных дней пользователя.
// Повторная активность в те же сутки ничего не меняет (идемпотентность);
// каждая седьмая веха серии даёт бонусный опыт через AwardXP —
// бонус сам может поднять уровень.
func (s *Service) UpdateStreak(ctx context.Context, userID string) (*StreakResult, error) {
	stats, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	tr := advanceStreak(stats, s.now())
	if !tr.dirty {
		return &tr.result, nil
	}

	err = s.repo.Patch(ctx, userID, store.Document{
		"currentStreak":    tr.result.CurrentStreak,
		"longestStreak":    tr.result.LongestStreak,
		"lastActivityDate": store.EncodeTime(tr.lastActivity),
	})
	if err != nil {
		return nil, err
	}

	if tr.result.StreakBonusXP > 0 {
		log.WithFields(log.Fields{
			"user_id": userID,
			"streak":  tr.result.CurrentStreak,
			"bonus":   tr.result.StreakBonusXP,
		}).Info("Бонус за веху серии")

		if _, err := s.AwardXP(ctx, userID, tr.result.StreakBonusXP, "streak_bonus"); err != nil {
			// Серия уже записана; потерянный бонус — меньшее зло,
			// чем откат серии.
			log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления бонуса за серию")
		}
	}

	return &tr.result, nil
}

// IncrementActivityCount увеличивает счётчик записей активности на 1.
func (s *Service) IncrementActivityCount(ctx context.Context, userID string) error {
	stats, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Patch(ctx, userID, store.Document{
		"totalActivitiesLogged": stats.TotalActivitiesLogged + 1,
	})
}

// AddToTotalEarnings добавляет amount к накопленному заработку.
func (s *Service) AddToTotalEarnings(ctx context.Context, userID string, amount float64) error {
	stats, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Patch(ctx, userID, store.Document{
		"totalEarnings": stats.TotalEarnings + amount,
	})
}

// Stats возвращает статистику пользователя (store.ErrNotFound, если её нет).
func (s *Service) Stats(ctx context.Context, userID string) (*UserStats, error) {
	return s.repo.Get(ctx, userID)
}

// OnLogCreated выполняет цепочку начислений после создания записи активности:
// базовый опыт → серия → счётчик записей → проверка значков.
// Порядок фиксирован: пороги значков читают счётчики, обновлённые
// предыдущими шагами.
func (s *Service) OnLogCreated(ctx context.Context, userID string) {
	if _, err := s.AwardXP(ctx, userID, s.xpPerActivity, "activity_logged"); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления опыта за запись")
	}

	if _, err := s.UpdateStreak(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка обновления серии")
	}

	if err := s.IncrementActivityCount(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка счётчика записей")
	}

	s.checkBadges(ctx, userID)
}

// OnLogApproved выполняет цепочку начислений после подтверждения записи:
// опыт за заработок → накопленный заработок → проверка значков.
func (s *Service) OnLogApproved(ctx context.Context, userID string, amount float64) {
	if _, err := s.AwardXP(ctx, userID, XPForEarnings(amount), "earnings"); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления опыта за заработок")
	}

	if err := s.AddToTotalEarnings(ctx, userID, amount); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка накопления заработка")
	}

	s.checkBadges(ctx, userID)
}

func (s *Service) checkBadges(ctx context.Context, userID string) {
	newBadges, err := s.badges.CheckAndAward(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка проверки значков")
		return
	}
	for _, b := range newBadges {
		log.WithFields(log.Fields{
			"user_id": userID,
			"badge":   b.ID,
		}).Info("Выдан значок")
	}
}

// StreaksAtRisk возвращает пользователей с серией >= minStreak,
// у которых сегодня (по UTC) ещё не было активности.
// Используется планировщиком вечерних напоминаний.
func (s *Service) StreaksAtRisk(ctx context.Context, minStreak int) ([]*UserStats, error) {
	all, err := s.repo.WithMinStreak(ctx, minStreak)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var atRisk []*UserStats
	for _, st := range all {
		// Серия под угрозой, если с последней активности прошли
		// почти сутки: до сброса остаётся меньше суток.
		if st.LastActivityDate == nil {
			continue
		}
		if now.Sub(*st.LastActivityDate) >= 18*time.Hour {
			atRisk = append(atRisk, st)
		}
	}
	return atRisk, nil
}
