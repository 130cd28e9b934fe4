package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	perrors "github.com/p-blackswan/storefront/internal/errors"
)

// collection stores JSON documents of type T in a table shaped
// (id, body, created_at).
type collection[T any] struct {
	db      *sql.DB
	table   string
	dialect Dialect
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT body FROM %s ORDER BY created_at DESC, id DESC`, c.table)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", c.table, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (c collection[T]) get(ctx context.Context, id string) (T, error) {
	var doc T
	query := c.dialect.rebind(fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, c.table))

	var body string
	err := c.db.QueryRowContext(ctx, query, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return doc, perrors.ErrNotFound
	}
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return doc, fmt.Errorf("decode %s document: %w", c.table, err)
	}
	return doc, nil
}

func (c collection[T]) insert(ctx context.Context, id string, createdAt time.Time, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}
	query := c.dialect.rebind(fmt.Sprintf(`INSERT INTO %s (id, body, created_at) VALUES (?, ?, ?)`, c.table))
	_, err = c.db.ExecContext(ctx, query, id, string(body), createdAt.UnixMilli())
	return err
}

func (c collection[T]) update(ctx context.Context, id string, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}
	query := c.dialect.rebind(fmt.Sprintf(`UPDATE %s SET body = ? WHERE id = ?`, c.table))
	res, err := c.db.ExecContext(ctx, query, string(body), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	query := c.dialect.rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, c.table))
	_, err := c.db.ExecContext(ctx, query, id)
	return err
}
