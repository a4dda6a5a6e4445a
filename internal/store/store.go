// Package store определяет абстрактное документное хранилище,
// через которое работают все фичи сервиса.
//
// Хранилище — это набор коллекций; в коллекции лежат JSON-документы
// с произвольными полями. Интерфейс сознательно узкий: get/set/update/query.
// Сервисы получают Store через конструктор, поэтому в тестах вместо
// PostgreSQL подставляется память (NewMemory).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда документ отсутствует в коллекции.
var ErrNotFound = errors.New("документ не найден")

// Document — один документ хранилища.
// Значения должны быть JSON-совместимыми: string, float64/int, bool,
// nil, вложенные map[string]any и []any. Метки времени храним строками
// RFC3339Nano в UTC (см. EncodeTime), чтобы диапазонные фильтры работали
// одинаково в PostgreSQL и в памяти.
type Document = map[string]any

// Операторы фильтров запроса.
const (
	OpEqual = "=="
	OpGTE   = ">="
	OpLTE   = "<="
)

// Filter — одно условие запроса Query: поле, оператор, значение.
type Filter struct {
	Field string
	Op    string
	Value any
}

// Eq создаёт фильтр равенства.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEqual, Value: value} }

// GTE создаёт фильтр «больше или равно».
func GTE(field string, value any) Filter { return Filter{Field: field, Op: OpGTE, Value: value} }

// LTE создаёт фильтр «меньше или равно».
func LTE(field string, value any) Filter { return Filter{Field: field, Op: OpLTE, Value: value} }

// Store — документное хранилище.
//
// Get возвращает ErrNotFound, если документа нет.
// Set полностью перезаписывает документ (создаёт при отсутствии).
// Update сливает patch в существующий документ; для отсутствующего
// документа возвращает ErrNotFound.
// Query возвращает документы коллекции, удовлетворяющие ВСЕМ фильтрам.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
}

// Имена коллекций. Совпадают с именами полей в документах других коллекций
// (например, logs.activityId ссылается на activities).
const (
	CollUsers      = "users"
	CollFamilies   = "families"
	CollActivities = "activities"
	CollLogs       = "logs"
	CollUserStats  = "user_stats"
	CollUserBadges = "user_badges"
)

// EncodeTime сериализует момент времени для хранения в документе.
func EncodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// DecodeTime восстанавливает момент времени из значения документа.
// Понимает строку RFC3339 и time.Time (документ, ещё не прошедший
// сериализацию). Возвращает false для nil и чужих типов.
func DecodeTime(v any) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC(), true
	case string:
		t, err := time.Parse(time.RFC3339Nano, tv)
		if err != nil {
			t, err = time.Parse(time.RFC3339, tv)
		}
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	default:
		return time.Time{}, false
	}
}

// Str достаёт строковое поле документа; для отсутствующего поля — "".
func Str(doc Document, field string) string {
	s, _ := doc[field].(string)
	return s
}

// Int достаёт целочисленное поле. После прохода через JSON числа
// становятся float64, поэтому принимаем оба представления.
// Отсутствующее или нечисловое поле — 0 (безопасный дефолт).
func Int(doc Document, field string) int {
	switch n := doc[field].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float достаёт число с плавающей точкой; отсутствующее поле — 0.
func Float(doc Document, field string) float64 {
	switch n := doc[field].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Time достаёт метку времени; вторым значением сообщает, была ли она.
func Time(doc Document, field string) (time.Time, bool) {
	return DecodeTime(doc[field])
}
