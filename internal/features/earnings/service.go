// Package earnings — service.go содержит расчёт заработка по записям.
//
// В отличие от игровых начислений расчёт заработка — это деньги:
// любая ошибка чтения прерывает расчёт и возвращается вызывающему,
// частичная сводка хуже отсутствия сводки.
package earnings

import (
	"context"
	"fmt"
	"time"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/store"
)

// Service считает заработок.
type Service struct {
	store store.Store
	// Подменяется в тестах для контроля времени
	now func() time.Time
}

// NewService создаёт новый сервис расчёта заработка.
func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// CalculateForWindow считает заработок пользователя за период.
// Обе границы входят в период. Записи оцениваются по текущим ставкам
// заданий семьи; запись без задания (задание удалили) остаётся
// в счётчике, но денег не приносит.
//
// Побочных эффектов нет: расчёт можно повторять сколько угодно раз,
// результат зависит только от данных на момент вызова.
func (s *Service) CalculateForWindow(ctx context.Context, userID, familyID string, start, end time.Time) (*Summary, error) {
	rates, err := s.familyRates(ctx, familyID)
	if err != nil {
		return nil, err
	}

	docs, err := s.store.Query(ctx, store.CollLogs,
		store.Eq("userId", userID),
		store.Eq("familyId", familyID),
		store.GTE("timestamp", start),
		store.LTE("timestamp", end),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки записей (user=%s): %w", userID, err)
	}

	summary := &Summary{PeriodStart: start, PeriodEnd: end}
	for _, doc := range docs {
		// Ставка 0, если задания уже нет в карте
		amount := float64(store.Int(doc, "units")) * rates[store.Str(doc, "activityId")]

		switch store.Str(doc, "verificationStatus") {
		case common.StatusApproved:
			summary.Verified += amount
			summary.VerifiedCount++
		case common.StatusPending:
			summary.Pending += amount
			summary.PendingCount++
		}
		// Отклонённые записи не входят никуда
	}

	summary.Total = summary.Verified + summary.Pending
	return summary, nil
}

// CalculateToday считает заработок за текущие сутки (UTC).
func (s *Service) CalculateToday(ctx context.Context, userID, familyID string) (*Summary, error) {
	start, end := common.DayWindow(s.now())
	return s.CalculateForWindow(ctx, userID, familyID, start, end)
}

// CalculateWeekly считает заработок за последние 7 суток.
func (s *Service) CalculateWeekly(ctx context.Context, userID, familyID string) (*Summary, error) {
	start, end := common.WeekWindow(s.now())
	return s.CalculateForWindow(ctx, userID, familyID, start, end)
}

// familyRates строит карту activityId → ставка по всем заданиям семьи.
func (s *Service) familyRates(ctx context.Context, familyID string) (map[string]float64, error) {
	docs, err := s.store.Query(ctx, store.CollActivities, store.Eq("familyId", familyID))
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заданий (family=%s): %w", familyID, err)
	}

	rates := make(map[string]float64, len(docs))
	for _, doc := range docs {
		rates[store.Str(doc, "id")] = store.Float(doc, "rate")
	}
	return rates, nil
}
