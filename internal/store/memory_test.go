package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Set(ctx, "users", "u1", Document{"name": "Маша", "level": 3})
	require.NoError(t, err)

	doc, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Маша", Str(doc, "name"))
	// После клонирования через JSON числа становятся float64
	assert.Equal(t, float64(3), doc["level"])
	assert.Equal(t, 3, Int(doc, "level"))
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "users", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "users", "u1", Document{"name": "Маша"}))

	doc, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	doc["name"] = "Петя"

	again, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Маша", Str(again, "name"))
}

func TestMemory_UpdateMergesPatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "users", "u1", Document{"name": "Маша", "level": 1}))
	require.NoError(t, m.Update(ctx, "users", "u1", Document{"level": 2}))

	doc, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Маша", Str(doc, "name"))
	assert.Equal(t, 2, Int(doc, "level"))
}

func TestMemory_UpdateMissing(t *testing.T) {
	m := NewMemory()

	err := m.Update(context.Background(), "users", "nope", Document{"level": 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DeleteMissingIsNoError(t *testing.T) {
	m := NewMemory()

	assert.NoError(t, m.Delete(context.Background(), "users", "nope"))
}

func TestMemory_QueryEq(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "logs", "l1", Document{"userId": "u1", "units": 2}))
	require.NoError(t, m.Set(ctx, "logs", "l2", Document{"userId": "u2", "units": 3}))
	require.NoError(t, m.Set(ctx, "logs", "l3", Document{"userId": "u1", "units": 1}))

	docs, err := m.Query(ctx, "logs", Eq("userId", "u1"))
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemory_QueryTimestampRangeInclusive(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC)

	require.NoError(t, m.Set(ctx, "logs", "edge-start", Document{"timestamp": EncodeTime(start)}))
	require.NoError(t, m.Set(ctx, "logs", "edge-end", Document{"timestamp": EncodeTime(end)}))
	require.NoError(t, m.Set(ctx, "logs", "inside", Document{"timestamp": EncodeTime(start.Add(12 * time.Hour))}))
	// Микросекунда за границей окна
	require.NoError(t, m.Set(ctx, "logs", "after", Document{"timestamp": EncodeTime(end.Add(time.Microsecond))}))
	require.NoError(t, m.Set(ctx, "logs", "before", Document{"timestamp": EncodeTime(start.Add(-time.Microsecond))}))

	docs, err := m.Query(ctx, "logs", GTE("timestamp", start), LTE("timestamp", end))
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemory_QueryNumericGTE(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "user_stats", "u1", Document{"currentStreak": 3}))
	require.NoError(t, m.Set(ctx, "user_stats", "u2", Document{"currentStreak": 7}))
	require.NoError(t, m.Set(ctx, "user_stats", "u3", Document{"currentStreak": 12}))

	docs, err := m.Query(ctx, "user_stats", GTE("currentStreak", 7))
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemory_QueryMissingFieldNeverMatches(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "user_stats", "u1", Document{"lastActivityDate": nil}))

	docs, err := m.Query(ctx, "user_stats", GTE("lastActivityDate", time.Now()))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeTime_Roundtrip(t *testing.T) {
	orig := time.Date(2026, 8, 31, 14, 30, 45, 123456789, time.UTC)

	decoded, ok := DecodeTime(EncodeTime(orig))
	require.True(t, ok)
	assert.True(t, orig.Equal(decoded))
}
