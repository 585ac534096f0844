package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"example.com/activitytrack/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS activities (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	date TEXT,
	notes TEXT NOT NULL DEFAULT '',
	done BOOLEAN NOT NULL DEFAULT FALSE
)`

// SQLite keeps the collection in a single activities table. The position
// column preserves insertion order; WriteAll replaces the table contents in
// one transaction so the replace-the-document semantics hold.
type SQLite struct {
	db *sqlx.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

type activityRow struct {
	ID    string  `db:"id"`
	Title string  `db:"title"`
	Date  *string `db:"date"`
	Notes string  `db:"notes"`
	Done  bool    `db:"done"`
}

func (s *SQLite) ReadAll(ctx context.Context) ([]domain.Activity, error) {
	var rows []activityRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, title, date, notes, done FROM activities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}

	items := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.Activity{
			ID:    row.ID,
			Title: row.Title,
			Date:  row.Date,
			Notes: row.Notes,
			Done:  row.Done,
		})
	}
	return items, nil
}

func (s *SQLite) WriteAll(ctx context.Context, items []domain.Activity) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}
	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, title, date, notes, done) VALUES (?, ?, ?, ?, ?)`,
			item.ID, item.Title, item.Date, item.Notes, item.Done)
		if err != nil {
			return fmt.Errorf("insert activity %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error { return s.db.Close() }
