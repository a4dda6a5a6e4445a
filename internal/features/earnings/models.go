// Package earnings считает заработок ребёнка по записям активности.
// models.go описывает сводку заработка за период.
package earnings

import "time"

// Summary — сводка заработка за период.
// Verified — подтверждённые родителем записи, Pending — ожидающие
// проверки. Отклонённые записи не входят никуда.
type Summary struct {
	Verified      float64   `json:"verified"`
	Pending       float64   `json:"pending"`
	Total         float64   `json:"total"`
	VerifiedCount int       `json:"verified_count"`
	PendingCount  int       `json:"pending_count"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
}
