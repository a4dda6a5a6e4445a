// Package gamification — streak.go содержит машину состояний серии.
// Серия считается по ПРОШЕДШИМ суткам с последней зачтённой активности,
// а не по смене календарной даты (см. common.ElapsedDays).
package gamification

import (
	"time"

	"domovenok.ru/chores-backend/internal/common"
)

// streakTransition описывает, что нужно записать в хранилище
// после обновления серии.
type streakTransition struct {
	result StreakResult
	// Надо ли вообще писать (повтор в тот же день — нет)
	dirty bool
	// Новое значение lastActivityDate (записывается только при dirty)
	lastActivity time.Time
}

// advanceStreak применяет одно событие активности к серии.
// Переходы:
//   - нет прежней активности → серия = 1
//   - прошло 0 суток       → без изменений, дата НЕ сдвигается
//   - прошло ровно 1 сутки → серия +1
//   - прошло 2+ суток      → серия сбрасывается в 1
//
// longestStreak подтягивается после каждого перехода. Бонус за веху
// (каждые 7 дней) считается здесь, а начисляется сервисом.
func advanceStreak(stats *UserStats, now time.Time) streakTransition {
	current := stats.CurrentStreak
	longest := stats.LongestStreak
	continued := false

	if stats.LastActivityDate == nil {
		current = 1
	} else {
		switch days := common.ElapsedDays(now, *stats.LastActivityDate); {
		case days == 0:
			// Повтор в тот же день: серия и дата остаются как есть,
			// иначе частые записи отодвигали бы границу суток.
			return streakTransition{
				result: StreakResult{
					CurrentStreak: current,
					LongestStreak: longest,
				},
			}
		case days == 1:
			current++
			continued = true
		default:
			current = 1
		}
	}

	if current > longest {
		longest = current
	}

	bonus := 0
	if current%7 == 0 {
		bonus = current * 10
	}

	return streakTransition{
		result: StreakResult{
			CurrentStreak:   current,
			LongestStreak:   longest,
			StreakBonusXP:   bonus,
			StreakContinued: continued,
		},
		dirty:        true,
		lastActivity: now,
	}
}
