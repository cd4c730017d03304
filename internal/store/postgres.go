package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresStore keeps documents in a single JSONB table created by the
// db/migrations goose files.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) Get(ctx context.Context, id string) (Document, error) {
	const query = `
		SELECT id, rev, kind, COALESCE(unique_key, ''), body
		FROM documents
		WHERE id = $1`

	var doc Document
	err := r.db.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.Rev, &doc.Kind, &doc.Key, &doc.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func (r *PostgresStore) Iterate(ctx context.Context, fn func(Document) error) error {
	const query = `
		SELECT id, rev, kind, COALESCE(unique_key, ''), body
		FROM documents
		ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Rev, &doc.Kind, &doc.Key, &doc.Body); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PostgresStore) Save(ctx context.Context, doc Document) (Document, error) {
	doc, err := prepare(doc, newDocID)
	if err != nil {
		return Document{}, err
	}

	const sql = `
		INSERT INTO documents (id, rev, kind, unique_key, body, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NOW())`

	_, err = r.db.Exec(ctx, sql, doc.ID, doc.Rev, doc.Kind, doc.Key, []byte(doc.Body))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Document{}, ErrConflict
		}
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

func (r *PostgresStore) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresStore) Close() error {
	r.db.Close()
	return nil
}
