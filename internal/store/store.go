// Package store persists the activity collection as a single replaceable
// document behind a small driver factory.
package store

import (
	"context"
	"fmt"

	"example.com/activitytrack/internal/domain"
)

// Store reads and writes the full ordered activity collection. WriteAll
// replaces the persisted document wholesale; the collection round-trips
// exactly through ReadAll.
type Store interface {
	ReadAll(ctx context.Context) ([]domain.Activity, error)
	WriteAll(ctx context.Context, items []domain.Activity) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a driver.
type Options struct {
	Driver      string
	DataFile    string // file driver: path of the JSON document
	SQLitePath  string // sqlite driver: path of the database file
	PostgresURL string // postgres driver: connection string
}

// Open constructs the store selected by opts.Driver. The file driver is the
// default when the driver name is empty.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFile(opts.DataFile)
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(opts.SQLitePath)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// DecodeError reports malformed persisted content. It is surfaced instead of
// being coerced to an empty collection so corruption cannot silently drop
// every record.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
