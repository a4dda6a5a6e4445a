package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPToNextLevel(1))
	assert.Equal(t, 282, XPToNextLevel(2))
	assert.Equal(t, 519, XPToNextLevel(3))
	assert.Equal(t, 3162, XPToNextLevel(10))
}

func TestXPForEarnings(t *testing.T) {
	assert.Equal(t, 60, XPForEarnings(6.0))
	// Дробная часть отбрасывается
	assert.Equal(t, 9, XPForEarnings(0.99))
	assert.Equal(t, 123, XPForEarnings(12.35))
	assert.Equal(t, 0, XPForEarnings(0))
}

func TestApplyXP_NoLevelUp(t *testing.T) {
	stats := defaultStats("u1")

	result := applyXP(stats, 50)

	assert.Equal(t, 50, result.XPAwarded)
	assert.Equal(t, 50, result.NewXP)
	assert.Equal(t, 50, result.NewTotalXP)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LevelUp)
	assert.Equal(t, 100, result.XPToNextLevel)
}

func TestApplyXP_SingleLevelUp(t *testing.T) {
	stats := defaultStats("u1")

	result := applyXP(stats, 120)

	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LevelUp)
	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 20, result.NewXP)
	assert.Equal(t, 120, result.NewTotalXP)
}

// Одно крупное начисление может пересечь несколько порогов подряд:
// 400 опыта с первого уровня — это 100 (до 2-го) + 282 (до 3-го) + 18 остатка.
func TestApplyXP_CascadingLevelUps(t *testing.T) {
	stats := defaultStats("u1")

	result := applyXP(stats, 400)

	assert.Equal(t, 3, result.Level)
	assert.True(t, result.LevelUp)
	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 18, result.NewXP)
	assert.Equal(t, 400, result.NewTotalXP)
	assert.Equal(t, 519, result.XPToNextLevel)
}

func TestApplyXP_ExactThreshold(t *testing.T) {
	stats := defaultStats("u1")

	result := applyXP(stats, 100)

	assert.Equal(t, 2, result.Level)
	assert.Equal(t, 0, result.NewXP)
}
