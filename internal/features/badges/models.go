// Package badges управляет значками — наградами за достижения.
// models.go описывает определение значка и запись о его получении.
package badges

import "time"

// Типы требований значков. Первые три читают поля статистики;
// pages_read и goals_completed определены в каталоге, но источника
// данных для них пока нет — такие значки не выдаются.
const (
	ReqActivityCount  = "activity_count"
	ReqTotalEarnings  = "total_earnings"
	ReqCurrentStreak  = "current_streak"
	ReqPagesRead      = "pages_read"
	ReqGoalsCompleted = "goals_completed"
)

// Редкость значка (влияет только на отображение).
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Badge — неизменяемое определение значка из каталога.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	// Какое поле статистики проверяется
	RequirementType string `json:"requirement_type"`
	// Порог, с которого значок считается заработанным
	RequirementValue int    `json:"requirement_value"`
	Rarity           string `json:"rarity"`
}

// Earned — запись о полученном значке.
// Попав в карту наград, значок не переоценивается и не отзывается.
type Earned struct {
	EarnedAt time.Time `json:"earned_at"`
	Progress int       `json:"progress"`
}

// UserBadge — значок вместе с отметкой о получении (для ответов API).
type UserBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
	Progress int       `json:"progress"`
}
