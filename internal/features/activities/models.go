// Package activities управляет заданиями семьи — справочником дел,
// которые дети записывают, а родители оплачивают.
// models.go описывает задание и его документное представление.
package activities

import (
	"time"

	"domovenok.ru/chores-backend/internal/store"
)

// Activity — задание семьи.
// После создания задание не редактируется: калькулятор заработка
// оценивает записи по текущей ставке, и её изменение задним числом
// переписало бы уже посчитанные деньги.
type Activity struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"family_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// Единица измерения: «раз», «страница», «минута»
	Unit string `json:"unit"`
	// Ставка в рублях за единицу
	Rate      float64   `json:"rate"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func activityToDoc(a *Activity) store.Document {
	return store.Document{
		"id":          a.ID,
		"familyId":    a.FamilyID,
		"name":        a.Name,
		"description": a.Description,
		"unit":        a.Unit,
		"rate":        a.Rate,
		"createdBy":   a.CreatedBy,
		"createdAt":   store.EncodeTime(a.CreatedAt),
	}
}

func activityFromDoc(doc store.Document) *Activity {
	a := &Activity{
		ID:          store.Str(doc, "id"),
		FamilyID:    store.Str(doc, "familyId"),
		Name:        store.Str(doc, "name"),
		Description: store.Str(doc, "description"),
		Unit:        store.Str(doc, "unit"),
		Rate:        store.Float(doc, "rate"),
		CreatedBy:   store.Str(doc, "createdBy"),
	}
	if t, ok := store.Time(doc, "createdAt"); ok {
		a.CreatedAt = t
	}
	return a
}
