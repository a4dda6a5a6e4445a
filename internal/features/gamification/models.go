// Package gamification управляет игровой прогрессией: опыт, уровни,
// серии активных дней и счётчики достижений.
// models.go описывает агрегат статистики пользователя и результаты операций.
package gamification

import (
	"time"

	"domovenok.ru/chores-backend/internal/store"
)

// UserStats — агрегат игровой статистики одного пользователя.
// Создаётся лениво при первом игровом событии; никогда не удаляется.
type UserStats struct {
	UserID string `json:"user_id"`
	// Текущий уровень (минимум 1)
	Level int `json:"level"`
	// Опыт внутри текущего уровня (всегда < порога следующего уровня)
	ExperiencePoints int `json:"experience_points"`
	// Суммарный опыт за всё время (только растёт)
	TotalExperience int `json:"total_experience"`
	// Текущая серия активных дней
	CurrentStreak int `json:"current_streak"`
	// Личный рекорд серии (не убывает)
	LongestStreak int `json:"longest_streak"`
	// Момент последней зачтённой активности; nil до первой записи
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	// Сколько всего записей активности сделано
	TotalActivitiesLogged int `json:"total_activities_logged"`
	// Сумма заработка по подтверждённым записям
	TotalEarnings float64 `json:"total_earnings"`
	// Сколько значков получено (= размер карты наград)
	BadgesEarned int `json:"badges_earned"`
}

// AwardResult — итог начисления опыта.
type AwardResult struct {
	XPAwarded     int  `json:"xp_awarded"`
	NewXP         int  `json:"new_xp"`
	NewTotalXP    int  `json:"new_total_xp"`
	Level         int  `json:"level"`
	LevelUp       bool `json:"level_up"`
	OldLevel      int  `json:"old_level,omitempty"`
	XPToNextLevel int  `json:"xp_to_next_level"`
}

// StreakResult — итог обновления серии.
type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	// Бонусный опыт за вехи серии (каждые 7 дней); 0, если вехи нет
	StreakBonusXP int `json:"streak_bonus_xp"`
	// Выросла ли серия этим обновлением
	StreakContinued bool `json:"streak_continued"`
}

// statsToDoc сериализует агрегат в документ хранилища.
// Имена полей фиксированы схемой коллекции user_stats.
func statsToDoc(s *UserStats) store.Document {
	doc := store.Document{
		"userId":                s.UserID,
		"level":                 s.Level,
		"experiencePoints":      s.ExperiencePoints,
		"totalExperience":       s.TotalExperience,
		"currentStreak":         s.CurrentStreak,
		"longestStreak":         s.LongestStreak,
		"lastActivityDate":      nil,
		"totalActivitiesLogged": s.TotalActivitiesLogged,
		"totalEarnings":         s.TotalEarnings,
		"badgesEarned":          s.BadgesEarned,
	}
	if s.LastActivityDate != nil {
		doc["lastActivityDate"] = store.EncodeTime(*s.LastActivityDate)
	}
	return doc
}

// statsFromDoc восстанавливает агрегат из документа.
// Отсутствующие поля получают безопасные значения по умолчанию:
// документы старых версий не должны ломать сервис.
func statsFromDoc(doc store.Document) *UserStats {
	s := &UserStats{
		UserID:                store.Str(doc, "userId"),
		Level:                 store.Int(doc, "level"),
		ExperiencePoints:      store.Int(doc, "experiencePoints"),
		TotalExperience:       store.Int(doc, "totalExperience"),
		CurrentStreak:         store.Int(doc, "currentStreak"),
		LongestStreak:         store.Int(doc, "longestStreak"),
		TotalActivitiesLogged: store.Int(doc, "totalActivitiesLogged"),
		TotalEarnings:         store.Float(doc, "totalEarnings"),
		BadgesEarned:          store.Int(doc, "badgesEarned"),
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if t, ok := store.Time(doc, "lastActivityDate"); ok {
		s.LastActivityDate = &t
	}
	return s
}

// defaultStats — состояние нового пользователя: первый уровень, всё по нулям.
func defaultStats(userID string) *UserStats {
	return &UserStats{UserID: userID, Level: 1}
}
