package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/activitytrack/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS activities (
	position BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	date TEXT,
	notes TEXT NOT NULL DEFAULT '',
	done BOOLEAN NOT NULL DEFAULT FALSE
)`

// Postgres keeps the collection in a single activities table, ordered by an
// identity column. Like the other drivers it treats the collection as one
// replaceable document: WriteAll swaps the table contents inside a
// transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to url and ensures the schema.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) ReadAll(ctx context.Context) ([]domain.Activity, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, date, notes, done FROM activities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	defer rows.Close()

	items := []domain.Activity{}
	for rows.Next() {
		var item domain.Activity
		if err := rows.Scan(&item.ID, &item.Title, &item.Date, &item.Notes, &item.Done); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return items, nil
}

func (p *Postgres) WriteAll(ctx context.Context, items []domain.Activity) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}
	for _, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO activities (id, title, date, notes, done) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.Title, item.Date, item.Notes, item.Done)
		if err != nil {
			return fmt.Errorf("insert activity %s: %w", item.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
