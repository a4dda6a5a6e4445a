package activities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	svc := NewService(NewRepository(st))
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "f1", "parent", "  Помыть посуду ", "после ужина", "", 2.5)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Помыть посуду", a.Name)
	assert.Equal(t, "после ужина", a.Description)
	// Единица по умолчанию
	assert.Equal(t, "раз", a.Unit)
	assert.InDelta(t, 2.5, a.Rate, 0.001)

	got, err := svc.Get(ctx, "f1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "f1", "parent", "  ", "", "раз", 2.5)
	assert.ErrorIs(t, err, common.ErrEmptyName)

	_, err = svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 0)
	assert.ErrorIs(t, err, common.ErrInvalidRate)

	_, err = svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", -1.5)
	assert.ErrorIs(t, err, common.ErrInvalidRate)
}

func TestGet_ForeignFamily(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 2.5)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "f2", a.ID)
	assert.ErrorIs(t, err, common.ErrNotFamilyMember)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "f1", "ghost")
	assert.ErrorIs(t, err, common.ErrActivityNotFound)
}

func TestListByFamily(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 2.5)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "f1", "parent", "Вынести мусор", "", "раз", 1.0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "f2", "parent", "Чужое задание", "", "раз", 1.0)
	require.NoError(t, err)

	list, err := svc.ListByFamily(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// Удаление задания уносит с собой все его записи активности,
// записи других заданий не трогает.
func TestDelete_CascadesLogs(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 2.5)
	require.NoError(t, err)

	require.NoError(t, st.Set(ctx, store.CollLogs, "l1", store.Document{
		"id": "l1", "activityId": a.ID, "userId": "child", "familyId": "f1",
	}))
	require.NoError(t, st.Set(ctx, store.CollLogs, "l2", store.Document{
		"id": "l2", "activityId": a.ID, "userId": "child", "familyId": "f1",
	}))
	require.NoError(t, st.Set(ctx, store.CollLogs, "other", store.Document{
		"id": "other", "activityId": "another-activity", "userId": "child", "familyId": "f1",
	}))

	require.NoError(t, svc.Delete(ctx, "f1", a.ID))

	_, err = svc.Get(ctx, "f1", a.ID)
	assert.ErrorIs(t, err, common.ErrActivityNotFound)

	_, err = st.Get(ctx, store.CollLogs, "l1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, store.CollLogs, "l2")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Get(ctx, store.CollLogs, "other")
	assert.NoError(t, err)
}

func TestDelete_ForeignFamily(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "f1", "parent", "Помыть посуду", "", "раз", 2.5)
	require.NoError(t, err)

	err = svc.Delete(ctx, "f2", a.ID)
	assert.ErrorIs(t, err, common.ErrNotFamilyMember)

	// Задание осталось на месте
	_, err = svc.Get(ctx, "f1", a.ID)
	assert.NoError(t, err)
}
