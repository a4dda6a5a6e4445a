package logs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/features/activities"
	"domovenok.ru/chores-backend/internal/features/badges"
	"domovenok.ru/chores-backend/internal/features/gamification"
	"domovenok.ru/chores-backend/internal/store"
)

var logNow = time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

// activityStub отдаёт заранее заданные задания.
type activityStub struct {
	items map[string]*activities.Activity
}

func (a *activityStub) Get(ctx context.Context, familyID, activityID string) (*activities.Activity, error) {
	item, ok := a.items[activityID]
	if !ok {
		return nil, common.ErrActivityNotFound
	}
	if item.FamilyID != familyID {
		return nil, common.ErrNotFamilyMember
	}
	return item, nil
}

// progressionStub фиксирует вызовы игровых начислений.
type progressionStub struct {
	created  []string
	approved []float64
}

func (p *progressionStub) OnLogCreated(ctx context.Context, userID string) {
	p.created = append(p.created, userID)
}

func (p *progressionStub) OnLogApproved(ctx context.Context, userID string, amount float64) {
	p.approved = append(p.approved, amount)
}

// eventsStub фиксирует разосланные уведомления.
type eventsStub struct {
	pending  int
	verified []string
}

func (e *eventsStub) LogPending(ctx context.Context, familyID, childID, activityName string, units int) {
	e.pending++
}

func (e *eventsStub) LogVerified(ctx context.Context, childID, activityName, status string, amount float64) {
	e.verified = append(e.verified, status)
}

func newTestService(t *testing.T) (*Service, *progressionStub, *eventsStub) {
	t.Helper()
	st := store.NewMemory()
	acts := &activityStub{items: map[string]*activities.Activity{
		"dishes": {ID: "dishes", FamilyID: "f1", Name: "Помыть посуду", Rate: 3.0},
	}}
	progression := &progressionStub{}
	events := &eventsStub{}
	svc := NewService(NewRepository(st), acts, progression, events)
	svc.now = func() time.Time { return logNow }
	return svc, progression, events
}

func TestCreate(t *testing.T) {
	svc, progression, events := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 2)
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, common.StatusPending, l.VerificationStatus)
	assert.Equal(t, 2, l.Units)
	assert.Equal(t, logNow, l.Timestamp)
	assert.Nil(t, l.VerifiedAt)

	assert.Equal(t, []string{"child"}, progression.created)
	assert.Equal(t, 1, events.pending)
}

func TestCreate_InvalidUnits(t *testing.T) {
	svc, progression, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "child", "f1", "dishes", 0)
	assert.ErrorIs(t, err, common.ErrInvalidUnits)

	_, err = svc.Create(context.Background(), "child", "f1", "dishes", -3)
	assert.ErrorIs(t, err, common.ErrInvalidUnits)

	assert.Empty(t, progression.created)
}

func TestCreate_UnknownActivity(t *testing.T) {
	svc, progression, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "child", "f1", "ghost", 1)
	assert.ErrorIs(t, err, common.ErrActivityNotFound)
	assert.Empty(t, progression.created)
}

func TestVerify_Approve(t *testing.T) {
	svc, progression, events := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 2)
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, "parent", "f1", l.ID, common.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, common.StatusApproved, verified.VerificationStatus)
	assert.Equal(t, "parent", verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)

	// 2 единицы по ставке 3.0
	require.Len(t, progression.approved, 1)
	assert.InDelta(t, 6.0, progression.approved[0], 0.01)
	assert.Equal(t, []string{common.StatusApproved}, events.verified)
}

func TestVerify_RejectSkipsEarnings(t *testing.T) {
	svc, progression, events := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 2)
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, "parent", "f1", l.ID, common.StatusRejected)
	require.NoError(t, err)

	assert.Equal(t, common.StatusRejected, verified.VerificationStatus)
	assert.Empty(t, progression.approved)
	// Уведомление об отказе уходит в любом случае
	assert.Equal(t, []string{common.StatusRejected}, events.verified)
}

// Проверка выполняется ровно один раз, даже с другим статусом.
func TestVerify_SecondAttemptFails(t *testing.T) {
	svc, progression, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "parent", "f1", l.ID, common.StatusApproved)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "parent", "f1", l.ID, common.StatusRejected)
	assert.ErrorIs(t, err, common.ErrAlreadyVerified)
	assert.Len(t, progression.approved, 1)
}

func TestVerify_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "parent", "f1", "any", "maybe")
	assert.ErrorIs(t, err, common.ErrInvalidStatus)
}

func TestVerify_ForeignFamily(t *testing.T) {
	svc, progression, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "stranger", "f2", l.ID, common.StatusApproved)
	assert.ErrorIs(t, err, common.ErrNotFamilyMember)
	assert.Empty(t, progression.approved)
}

// Задание удалили между созданием записи и проверкой:
// подтверждение проходит, но сумма равна нулю.
func TestVerify_DeletedActivityAmountZero(t *testing.T) {
	st := store.NewMemory()
	acts := &activityStub{items: map[string]*activities.Activity{
		"dishes": {ID: "dishes", FamilyID: "f1", Name: "Помыть посуду", Rate: 3.0},
	}}
	progression := &progressionStub{}
	svc := NewService(NewRepository(st), acts, progression, &eventsStub{})
	svc.now = func() time.Time { return logNow }
	ctx := context.Background()

	l, err := svc.Create(ctx, "child", "f1", "dishes", 2)
	require.NoError(t, err)

	delete(acts.items, "dishes")

	verified, err := svc.Verify(ctx, "parent", "f1", l.ID, common.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, common.StatusApproved, verified.VerificationStatus)

	require.Len(t, progression.approved, 1)
	assert.Zero(t, progression.approved[0])
}

func TestListMine_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	svc.now = func() time.Time { return logNow.Add(-time.Hour) }
	older, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)

	svc.now = func() time.Time { return logNow }
	newer, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)

	list, err := svc.ListMine(ctx, "child")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestPendingForFamily(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	l1, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)
	l2, err := svc.Create(ctx, "child", "f1", "dishes", 1)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "parent", "f1", l1.ID, common.StatusApproved)
	require.NoError(t, err)

	pending, err := svc.PendingForFamily(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, l2.ID, pending[0].ID)
}

// Сквозной сценарий на настоящих сервисах: ребёнок записывает активность,
// родитель подтверждает — опыт, серия, заработок и значки сходятся.
func TestLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	activityService := activities.NewService(activities.NewRepository(st))
	badgeService := badges.NewService(badges.NewRepository(st), st)
	progression := gamification.NewService(gamification.NewRepository(st), badgeService, 5)
	svc := NewService(NewRepository(st), activityService, progression, &eventsStub{})

	activity, err := activityService.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 3.0)
	require.NoError(t, err)

	l, err := svc.Create(ctx, "child", "f1", activity.ID, 2)
	require.NoError(t, err)

	stats, err := progression.Stats(ctx, "child")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.ExperiencePoints)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.TotalActivitiesLogged)

	earned, _, err := badgeService.UserBadges(ctx, "child")
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, "first_steps", earned[0].Badge.ID)

	// Подтверждение: 2 × 3.00 = 6.00 ₽ и 60 опыта
	_, err = svc.Verify(ctx, "parent", "f1", l.ID, common.StatusApproved)
	require.NoError(t, err)

	stats, err = progression.Stats(ctx, "child")
	require.NoError(t, err)
	assert.Equal(t, 65, stats.ExperiencePoints)
	assert.InDelta(t, 6.0, stats.TotalEarnings, 0.01)

	earned, _, err = badgeService.UserBadges(ctx, "child")
	require.NoError(t, err)
	ids := make([]string, 0, len(earned))
	for _, b := range earned {
		ids = append(ids, b.Badge.ID)
	}
	assert.ElementsMatch(t, []string{"first_steps", "first_dollar"}, ids)

	_, err = svc.Verify(ctx, "parent", "f1", l.ID, common.StatusApproved)
	assert.ErrorIs(t, err, common.ErrAlreadyVerified)
}
