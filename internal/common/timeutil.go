// Package common содержит общие утилиты, используемые во всём проекте.
// timeutil.go — работа с временными окнами и подсчёт прошедших дней.
// Все расчёты ведутся в UTC: клиенты живут в разных часовых поясах,
// а серверное время должно быть одним для всех.
package common

import "time"

// DayWindow возвращает границы суток [00:00:00, 23:59:59] UTC для момента t.
// Обе границы включительные — так же считает и калькулятор заработка.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}

// WeekWindow возвращает скользящее окно [now − 7 суток, now].
func WeekWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	return now.AddDate(0, 0, -7), now
}

// ElapsedDays возвращает число ПОЛНЫХ прошедших суток между last и now.
//
// Важно: это именно прошедшее время, а не смена календарной даты.
// Активность в 23:59 и в 00:01 следующего дня даёт 0 — серия не растёт.
func ElapsedDays(now, last time.Time) int {
	return int(now.Sub(last).Hours() / 24)
}

// StartOfDay возвращает начало суток UTC для момента t.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
