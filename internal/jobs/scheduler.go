// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: вечерние напоминания о сериях,
// которые сегодня ещё не продлены.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"domovenok.ru/chores-backend/internal/features/gamification"
	"domovenok.ru/chores-backend/internal/notify"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron        *cron.Cron
	progression *gamification.Service
	events      *notify.Events
	// Напоминаем только про серии не короче этого порога
	minStreak int
}

// NewScheduler создаёт планировщик задач.
// Расписание считается в UTC — в нём же живут и окна серий.
func NewScheduler(progression *gamification.Service, events *notify.Events, minStreak int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		progression: progression,
		events:      events,
		minStreak:   minStreak,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Вечерние напоминания в 20:00 UTC
	s.cron.AddFunc("0 20 * * *", func() {
		log.Debug("[CRON] Проверка серий под угрозой")
		s.remindStreaksAtRisk(ctx)
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (UTC)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) remindStreaksAtRisk(ctx context.Context) {
	atRisk, err := s.progression.StreaksAtRisk(ctx, s.minStreak)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка выборки серий под угрозой")
		return
	}

	for _, stats := range atRisk {
		s.events.StreakAtRisk(ctx, stats.UserID, stats.CurrentStreak)
	}

	if len(atRisk) > 0 {
		log.WithField("count", len(atRisk)).Info("[CRON] Разосланы напоминания о сериях")
	}
}
