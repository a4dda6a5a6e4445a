// postgres.go — реализация документного хранилища поверх PostgreSQL.
// Все документы лежат в одной таблице documents (collection, id, data JSONB);
// частичное обновление выполняется на стороне базы оператором `data || patch`,
// поэтому параллельные Update разных полей не затирают документ целиком.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres — документное хранилище в таблице documents.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres создаёт хранилище поверх готового пула соединений.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Get возвращает документ по коллекции и id.
func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	var raw []byte
	err := p.db.QueryRow(ctx, query, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения документа %s/%s: %w", collection, id, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("повреждённый документ %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Set полностью перезаписывает документ (upsert).
func (p *Postgres) Set(ctx context.Context, collection, id string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа: %w", err)
	}

	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := p.db.Exec(ctx, query, collection, id, raw); err != nil {
		return fmt.Errorf("ошибка записи документа %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update сливает patch в существующий документ на стороне базы.
func (p *Postgres) Update(ctx context.Context, collection, id string, patch Document) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("ошибка сериализации patch: %w", err)
	}

	query := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`
	tag, err := p.db.Exec(ctx, query, collection, id, raw)
	if err != nil {
		return fmt.Errorf("ошибка обновления документа %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет документ. Отсутствующий документ — не ошибка.
func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := p.db.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("ошибка удаления документа %s/%s: %w", collection, id, err)
	}
	return nil
}

// Query возвращает документы коллекции по набору фильтров.
// Равенство сравнивает текстовое представление поля, диапазонные
// операторы приводят поле к timestamptz или numeric в зависимости
// от типа значения фильтра.
func (p *Postgres) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT data FROM documents WHERE collection = $1`)

	args := []any{collection}
	for _, f := range filters {
		clause, arg, err := buildClause(f, len(args)+1)
		if err != nil {
			return nil, err
		}
		sb.WriteString(" AND ")
		sb.WriteString(clause)
		args = append(args, arg)
	}

	rows, err := p.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса коллекции %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("повреждённый документ в коллекции %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// buildClause собирает SQL-условие для одного фильтра.
// Имя поля подставляется как параметр быть не может (jsonb-оператор
// требует литерал), поэтому пропускаем только безопасные имена.
func buildClause(f Filter, argN int) (string, any, error) {
	if !isSafeField(f.Field) {
		return "", nil, fmt.Errorf("недопустимое имя поля фильтра: %q", f.Field)
	}

	switch f.Op {
	case OpEqual:
		return fmt.Sprintf(`data->>'%s' = $%d`, f.Field, argN), fmt.Sprint(normalize(f.Value)), nil
	case OpGTE, OpLTE:
		op := ">="
		if f.Op == OpLTE {
			op = "<="
		}
		if t, ok := DecodeTime(f.Value); ok {
			return fmt.Sprintf(`(data->>'%s')::timestamptz %s $%d::timestamptz`, f.Field, op, argN), EncodeTime(t), nil
		}
		if n, ok := toFloat(f.Value); ok {
			return fmt.Sprintf(`(data->>'%s')::numeric %s $%d::numeric`, f.Field, op, argN), n, nil
		}
		return fmt.Sprintf(`data->>'%s' %s $%d`, f.Field, op, argN), fmt.Sprint(f.Value), nil
	default:
		return "", nil, fmt.Errorf("неизвестный оператор фильтра: %q", f.Op)
	}
}

// isSafeField разрешает только идентификаторы вида camelCase/snake_case.
func isSafeField(field string) bool {
	if field == "" {
		return false
	}
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
