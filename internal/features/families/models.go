// Package families управляет семьями — группами из родителей и детей,
// объединённых кодом приглашения.
// models.go описывает семью и её документное представление.
package families

import (
	"time"

	"domovenok.ru/chores-backend/internal/store"
)

// Family — семья.
// Код приглашения выдаётся при создании и не меняется; по нему
// остальные члены семьи присоединяются к ней.
type Family struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func familyToDoc(f *Family) store.Document {
	return store.Document{
		"id":         f.ID,
		"name":       f.Name,
		"inviteCode": f.InviteCode,
		"createdBy":  f.CreatedBy,
		"createdAt":  store.EncodeTime(f.CreatedAt),
	}
}

func familyFromDoc(doc store.Document) *Family {
	f := &Family{
		ID:         store.Str(doc, "id"),
		Name:       store.Str(doc, "name"),
		InviteCode: store.Str(doc, "inviteCode"),
		CreatedBy:  store.Str(doc, "createdBy"),
	}
	if t, ok := store.Time(doc, "createdAt"); ok {
		f.CreatedAt = t
	}
	return f
}
