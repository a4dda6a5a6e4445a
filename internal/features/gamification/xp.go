// Package gamification — xp.go содержит формулы опыта и уровней.
// Формулы фиксированы, без конфигурации: менять их — значит менять баланс
// всей прогрессии, это осознанно зашито в код.
package gamification

import "math"

// XPForEarnings переводит заработок в опыт: 1 рубль = 10 очков.
// Дробная часть отбрасывается.
func XPForEarnings(amount float64) int {
	return int(amount * 10)
}

// XPToNextLevel возвращает, сколько опыта нужно набрать ВНУТРИ уровня level,
// чтобы перейти на следующий. Экспоненциальный рост: floor(100 * level^1.5).
//
//	уровень 1 → 100
//	уровень 2 → 282
//	уровень 3 → 519
//	уровень 10 → 3162
func XPToNextLevel(level int) int {
	return int(100 * math.Pow(float64(level), 1.5))
}

// applyXP добавляет amount опыта к статистике и раскручивает каскад
// повышений уровня: одно крупное начисление может пересечь несколько
// порогов подряд, поэтому цикл, а не однократная проверка.
// Мутирует stats; возвращает итог начисления.
func applyXP(stats *UserStats, amount int) AwardResult {
	oldLevel := stats.Level

	stats.ExperiencePoints += amount
	stats.TotalExperience += amount

	levelUp := false
	for stats.ExperiencePoints >= XPToNextLevel(stats.Level) {
		stats.ExperiencePoints -= XPToNextLevel(stats.Level)
		stats.Level++
		levelUp = true
	}

	result := AwardResult{
		XPAwarded:     amount,
		NewXP:         stats.ExperiencePoints,
		NewTotalXP:    stats.TotalExperience,
		Level:         stats.Level,
		LevelUp:       levelUp,
		XPToNextLevel: XPToNextLevel(stats.Level),
	}
	if levelUp {
		result.OldLevel = oldLevel
	}
	return result
}
