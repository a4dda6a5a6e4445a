// Package logs управляет записями активности — отметками ребёнка
// о выполненном задании, которые проверяет родитель.
// models.go описывает запись и её документное представление.
package logs

import (
	"time"

	"domovenok.ru/chores-backend/internal/store"
)

// Log — одна запись активности.
//
// Запись создаётся ребёнком со статусом pending и ровно один раз
// переводится родителем в approved или rejected. Сама запись после
// создания не редактируется; меняются только поля проверки.
type Log struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	UserID     string `json:"user_id"`
	FamilyID   string `json:"family_id"`
	// Сколько единиц задания выполнено (строго положительное)
	Units     int       `json:"units"`
	Timestamp time.Time `json:"timestamp"`
	// pending | approved | rejected
	VerificationStatus string     `json:"verification_status"`
	VerifiedBy         string     `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
}

func logToDoc(l *Log) store.Document {
	doc := store.Document{
		"id":                 l.ID,
		"activityId":         l.ActivityID,
		"userId":             l.UserID,
		"familyId":           l.FamilyID,
		"units":              l.Units,
		"timestamp":          store.EncodeTime(l.Timestamp),
		"verificationStatus": l.VerificationStatus,
		"verifiedBy":         l.VerifiedBy,
	}
	if l.VerifiedAt != nil {
		doc["verifiedAt"] = store.EncodeTime(*l.VerifiedAt)
	} else {
		doc["verifiedAt"] = nil
	}
	return doc
}

func logFromDoc(doc store.Document) *Log {
	l := &Log{
		ID:                 store.Str(doc, "id"),
		ActivityID:         store.Str(doc, "activityId"),
		UserID:             store.Str(doc, "userId"),
		FamilyID:           store.Str(doc, "familyId"),
		Units:              store.Int(doc, "units"),
		VerificationStatus: store.Str(doc, "verificationStatus"),
		VerifiedBy:         store.Str(doc, "verifiedBy"),
	}
	if t, ok := store.Time(doc, "timestamp"); ok {
		l.Timestamp = t
	}
	if t, ok := store.Time(doc, "verifiedAt"); ok {
		l.VerifiedAt = &t
	}
	return l
}
