package badges

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domovenok.ru/chores-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	svc := NewService(NewRepository(st), st)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC) }
	return svc, st
}

func setStats(t *testing.T, st *store.Memory, userID string, doc store.Document) {
	t.Helper()
	doc["userId"] = userID
	require.NoError(t, st.Set(context.Background(), store.CollUserStats, userID, doc))
}

func badgeIDs(list []Badge) []string {
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestCheckAndAward_NoStatsNoSideEffects(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	earned, err := svc.CheckAndAward(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, earned)

	// Ни статистика, ни карта наград не создаются
	_, err = st.Get(ctx, store.CollUserStats, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, store.CollUserBadges, "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckAndAward_FirstActivityBadge(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{"totalActivitiesLogged": 1})

	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_steps"}, badgeIDs(earned))

	doc, err := st.Get(ctx, store.CollUserStats, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Int(doc, "badgesEarned"))
}

func TestCheckAndAward_MultipleAtOnce(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{
		"totalActivitiesLogged": 12,
		"totalEarnings":         55.0,
		"currentStreak":         7,
	})

	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"first_steps", "getting_started", "first_dollar", "money_maker", "on_fire"},
		badgeIDs(earned))

	doc, err := st.Get(ctx, store.CollUserStats, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, store.Int(doc, "badgesEarned"))
}

func TestCheckAndAward_NeverReturnsAlreadyEarned(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{"totalActivitiesLogged": 1})

	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, earned, 1)

	again, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again)
}

// Значки не отзываются: серия сгорела, а «Огонёк» остался.
func TestCheckAndAward_BadgesArePermanent(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{"currentStreak": 7})
	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, badgeIDs(earned), "on_fire")

	// Серия сброшена
	require.NoError(t, st.Update(ctx, store.CollUserStats, "u1", store.Document{"currentStreak": 1}))

	_, err = svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)

	got, _, err := svc.UserBadges(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, badgeIDs(userBadgeDefs(got)), "on_fire")
}

// Значки за чтение и цели описаны в каталоге, но источника данных
// для них нет — они не выдаются ни при какой статистике.
func TestCheckAndAward_UnreachableTypesNeverUnlock(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{
		"totalActivitiesLogged": 100000,
		"totalEarnings":         100000.0,
		"currentStreak":         100000,
	})

	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)

	ids := badgeIDs(earned)
	assert.NotContains(t, ids, "bookworm")
	assert.NotContains(t, ids, "avid_reader")
	assert.NotContains(t, ids, "library_master")
	assert.NotContains(t, ids, "goal_crusher")
	// Все достижимые при этом выданы
	assert.Len(t, ids, len(Catalog())-4)
}

func TestUserBadges_Progress(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	setStats(t, st, "u1", store.Document{"totalActivitiesLogged": 5})

	earned, err := svc.CheckAndAward(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, earned, 1)

	got, available, err := svc.UserBadges(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Progress)

	for _, b := range available {
		if b.ID == "getting_started" {
			// 5 из 10 записей
			assert.Equal(t, 50, b.Progress)
		}
	}
}

func userBadgeDefs(list []UserBadge) []Badge {
	defs := make([]Badge, 0, len(list))
	for _, ub := range list {
		defs = append(defs, ub.Badge)
	}
	return defs
}
