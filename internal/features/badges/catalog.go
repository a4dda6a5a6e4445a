// Package badges — catalog.go содержит фиксированный каталог значков.
// Каталог загружается один раз и читается всеми пользователями;
// порядок записей определяет порядок выдачи при одной проверке.
package badges

// catalog — все значки сервиса.
// Значки за чтение (pages_read) и цели (goals_completed) описаны заранее:
// статистики для них ещё нет, поэтому сейчас они недостижимы.
var catalog = []Badge{
	// --- За количество записей ---
	{
		ID:               "first_steps",
		Name:             "Первые шаги",
		Description:      "Записать первое выполненное задание",
		Icon:             "🎯",
		Category:         "activity",
		RequirementType:  ReqActivityCount,
		RequirementValue: 1,
		Rarity:           RarityCommon,
	},
	{
		ID:               "getting_started",
		Name:             "Разгон",
		Description:      "Записать 10 заданий",
		Icon:             "🌟",
		Category:         "activity",
		RequirementType:  ReqActivityCount,
		RequirementValue: 10,
		Rarity:           RarityCommon,
	},
	{
		ID:               "dedicated",
		Name:             "Упорство",
		Description:      "Записать 50 заданий",
		Icon:             "💪",
		Category:         "activity",
		RequirementType:  ReqActivityCount,
		RequirementValue: 50,
		Rarity:           RarityRare,
	},
	{
		ID:               "super_achiever",
		Name:             "Супергерой",
		Description:      "Записать 100 заданий",
		Icon:             "🏆",
		Category:         "activity",
		RequirementType:  ReqActivityCount,
		RequirementValue: 100,
		Rarity:           RarityEpic,
	},
	{
		ID:               "legendary_worker",
		Name:             "Легенда труда",
		Description:      "Записать 500 заданий",
		Icon:             "👑",
		Category:         "activity",
		RequirementType:  ReqActivityCount,
		RequirementValue: 500,
		Rarity:           RarityLegendary,
	},

	// --- За заработок ---
	{
		ID:               "first_dollar",
		Name:             "Первый рубль",
		Description:      "Заработать первый рубль",
		Icon:             "💵",
		Category:         "earnings",
		RequirementType:  ReqTotalEarnings,
		RequirementValue: 1,
		Rarity:           RarityCommon,
	},
	{
		ID:               "money_maker",
		Name:             "Копилка",
		Description:      "Заработать 50 рублей",
		Icon:             "💰",
		Category:         "earnings",
		RequirementType:  ReqTotalEarnings,
		RequirementValue: 50,
		Rarity:           RarityRare,
	},
	{
		ID:               "big_earner",
		Name:             "Добытчик",
		Description:      "Заработать 100 рублей",
		Icon:             "💸",
		Category:         "earnings",
		RequirementType:  ReqTotalEarnings,
		RequirementValue: 100,
		Rarity:           RarityEpic,
	},
	{
		ID:               "wealth_builder",
		Name:             "Банкир",
		Description:      "Заработать 500 рублей",
		Icon:             "🏦",
		Category:         "earnings",
		RequirementType:  ReqTotalEarnings,
		RequirementValue: 500,
		Rarity:           RarityLegendary,
	},

	// --- За серии ---
	{
		ID:               "on_fire",
		Name:             "Огонёк",
		Description:      "Держать серию 7 дней",
		Icon:             "🔥",
		Category:         "streak",
		RequirementType:  ReqCurrentStreak,
		RequirementValue: 7,
		Rarity:           RarityRare,
	},
	{
		ID:               "unstoppable",
		Name:             "Неудержимый",
		Description:      "Держать серию 30 дней",
		Icon:             "⚡",
		Category:         "streak",
		RequirementType:  ReqCurrentStreak,
		RequirementValue: 30,
		Rarity:           RarityEpic,
	},
	{
		ID:               "streak_master",
		Name:             "Мастер серий",
		Description:      "Держать серию 100 дней",
		Icon:             "🌠",
		Category:         "streak",
		RequirementType:  ReqCurrentStreak,
		RequirementValue: 100,
		Rarity:           RarityLegendary,
	},

	// --- За чтение (пока недостижимы) ---
	{
		ID:               "bookworm",
		Name:             "Книжный червь",
		Description:      "Прочитать 100 страниц",
		Icon:             "📚",
		Category:         "reading",
		RequirementType:  ReqPagesRead,
		RequirementValue: 100,
		Rarity:           RarityCommon,
	},
	{
		ID:               "avid_reader",
		Name:             "Заядлый читатель",
		Description:      "Прочитать 500 страниц",
		Icon:             "📖",
		Category:         "reading",
		RequirementType:  ReqPagesRead,
		RequirementValue: 500,
		Rarity:           RarityRare,
	},
	{
		ID:               "library_master",
		Name:             "Хозяин библиотеки",
		Description:      "Прочитать 1000 страниц",
		Icon:             "🏛️",
		Category:         "reading",
		RequirementType:  ReqPagesRead,
		RequirementValue: 1000,
		Rarity:           RarityEpic,
	},

	// --- За цели (пока недостижимы) ---
	{
		ID:               "goal_crusher",
		Name:             "Покоритель целей",
		Description:      "Достичь первой цели накоплений",
		Icon:             "🎊",
		Category:         "special",
		RequirementType:  ReqGoalsCompleted,
		RequirementValue: 1,
		Rarity:           RarityRare,
	},
}

// Catalog возвращает каталог значков в порядке выдачи.
// Возвращаемый срез общий — менять его нельзя.
func Catalog() []Badge {
	return catalog
}

// ByID возвращает определение значка по идентификатору.
func ByID(id string) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
