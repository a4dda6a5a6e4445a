package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var streakNow = time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

func statsWithStreak(current, longest int, last time.Time) *UserStats {
	s := defaultStats("u1")
	s.CurrentStreak = current
	s.LongestStreak = longest
	s.LastActivityDate = &last
	return s
}

func TestAdvanceStreak_FirstActivity(t *testing.T) {
	tr := advanceStreak(defaultStats("u1"), streakNow)

	assert.True(t, tr.dirty)
	assert.Equal(t, 1, tr.result.CurrentStreak)
	assert.Equal(t, 1, tr.result.LongestStreak)
	assert.False(t, tr.result.StreakContinued)
	assert.Equal(t, streakNow, tr.lastActivity)
}

func TestAdvanceStreak_SameDayIsNoop(t *testing.T) {
	last := streakNow.Add(-6 * time.Hour)
	tr := advanceStreak(statsWithStreak(4, 9, last), streakNow)

	assert.False(t, tr.dirty)
	assert.Equal(t, 4, tr.result.CurrentStreak)
	assert.Equal(t, 9, tr.result.LongestStreak)
	assert.Zero(t, tr.result.StreakBonusXP)
}

func TestAdvanceStreak_NextDayIncrements(t *testing.T) {
	last := streakNow.Add(-30 * time.Hour)
	tr := advanceStreak(statsWithStreak(4, 9, last), streakNow)

	assert.True(t, tr.dirty)
	assert.Equal(t, 5, tr.result.CurrentStreak)
	assert.Equal(t, 9, tr.result.LongestStreak)
	assert.True(t, tr.result.StreakContinued)
}

func TestAdvanceStreak_GapResetsButKeepsLongest(t *testing.T) {
	last := streakNow.Add(-72 * time.Hour)
	tr := advanceStreak(statsWithStreak(15, 15, last), streakNow)

	assert.True(t, tr.dirty)
	assert.Equal(t, 1, tr.result.CurrentStreak)
	assert.Equal(t, 15, tr.result.LongestStreak)
	assert.False(t, tr.result.StreakContinued)
}

func TestAdvanceStreak_MilestoneBonus(t *testing.T) {
	last := streakNow.Add(-25 * time.Hour)
	tr := advanceStreak(statsWithStreak(6, 6, last), streakNow)

	assert.Equal(t, 7, tr.result.CurrentStreak)
	assert.Equal(t, 70, tr.result.StreakBonusXP)

	// Веха строго каждые 7 дней: на 8-й бонуса нет
	tr = advanceStreak(statsWithStreak(7, 7, last), streakNow)
	assert.Equal(t, 8, tr.result.CurrentStreak)
	assert.Zero(t, tr.result.StreakBonusXP)

	tr = advanceStreak(statsWithStreak(13, 13, last), streakNow)
	assert.Equal(t, 14, tr.result.CurrentStreak)
	assert.Equal(t, 140, tr.result.StreakBonusXP)
}

func TestAdvanceStreak_LongestFollowsCurrent(t *testing.T) {
	last := streakNow.Add(-25 * time.Hour)
	tr := advanceStreak(statsWithStreak(9, 9, last), streakNow)

	assert.Equal(t, 10, tr.result.CurrentStreak)
	assert.Equal(t, 10, tr.result.LongestStreak)
}
