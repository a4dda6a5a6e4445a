// memory.go — хранилище в памяти для тестов и локальной разработки.
// Семантика полностью повторяет PostgreSQL-реализацию: та же обработка
// отсутствующих документов, то же слияние Update, те же фильтры Query.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory — потокобезопасное документное хранилище в памяти.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Document // коллекция → id → документ
}

// NewMemory создаёт пустое хранилище.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Document)}
}

// Get возвращает копию документа.
func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc), nil
}

// Set перезаписывает документ целиком.
func (m *Memory) Set(_ context.Context, collection, id string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]Document)
	}
	m.data[collection][id] = cloneDocument(doc)
	return nil
}

// Update сливает patch в существующий документ.
func (m *Memory) Update(_ context.Context, collection, id string, patch Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range cloneDocument(patch) {
		doc[k] = v
	}
	return nil
}

// Delete удаляет документ. Удаление отсутствующего документа — не ошибка,
// так же ведёт себя и SQL DELETE.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[collection], id)
	return nil
}

// Query возвращает документы, удовлетворяющие всем фильтрам.
func (m *Memory) Query(_ context.Context, collection string, filters ...Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Document
	for _, doc := range m.data[collection] {
		if matchesAll(doc, filters) {
			result = append(result, cloneDocument(doc))
		}
	}
	return result, nil
}

func matchesAll(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if !matches(doc, f) {
			return false
		}
	}
	return true
}

func matches(doc Document, f Filter) bool {
	v, ok := doc[f.Field]
	if !ok || v == nil {
		return false
	}

	switch f.Op {
	case OpEqual:
		return normalize(v) == normalize(f.Value)
	case OpGTE:
		cmp, ok := compare(v, f.Value)
		return ok && cmp >= 0
	case OpLTE:
		cmp, ok := compare(v, f.Value)
		return ok && cmp <= 0
	default:
		return false
	}
}

// compare сравнивает значение документа со значением фильтра.
// Метки времени сравниваются как время, числа — как числа,
// остальное — лексикографически.
func compare(docVal, filterVal any) (int, bool) {
	if dt, ok := DecodeTime(docVal); ok {
		ft, ok := DecodeTime(filterVal)
		if !ok {
			return 0, false
		}
		switch {
		case dt.Before(ft):
			return -1, true
		case dt.After(ft):
			return 1, true
		default:
			return 0, true
		}
	}

	if dn, ok := toFloat(docVal); ok {
		fn, ok := toFloat(filterVal)
		if !ok {
			return 0, false
		}
		switch {
		case dn < fn:
			return -1, true
		case dn > fn:
			return 1, true
		default:
			return 0, true
		}
	}

	ds := fmt.Sprint(docVal)
	fs := fmt.Sprint(filterVal)
	switch {
	case ds < fs:
		return -1, true
	case ds > fs:
		return 1, true
	default:
		return 0, true
	}
}

// normalize приводит значение к сравнимому виду: числа — к float64,
// время — к канонической строке.
func normalize(v any) any {
	if n, ok := toFloat(v); ok {
		return n
	}
	if t, ok := DecodeTime(v); ok {
		return EncodeTime(t)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// cloneDocument делает глубокую копию через JSON, заодно приводя типы
// к тем же, что вернёт PostgreSQL (числа → float64, время → строка).
// Так тесты на памяти ловят те же сюрпризы сериализации, что и прод.
func cloneDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		// Несериализуемый документ не переживёт и PostgreSQL;
		// копируем поверхностно, чтобы не терять данные в тестах.
		out := make(Document, len(doc))
		for k, v := range doc {
			out[k] = v
		}
		return out
	}
	var out Document
	_ = json.Unmarshal(b, &out)
	return out
}
