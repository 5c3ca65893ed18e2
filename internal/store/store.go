package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultImageTable is the table the site photos live in.
const DefaultImageTable = "face-the-wall"

// ErrTableMissing indicates the image table has not been migrated yet.
var ErrTableMissing = errors.New("image table does not exist")

// StoreError reports a failed image store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("image store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store provides read access to site images backed by Postgres.
type Store struct {
	db    *sql.DB
	table string
}

// New sets up a Store using the provided database handle. An empty table
// name selects DefaultImageTable.
func New(db *sql.DB, table string) *Store {
	if table == "" {
		table = DefaultImageTable
	}
	return &Store{db: db, table: table}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}

// TableExists reports whether the image table is present.
func (s *Store) TableExists(ctx context.Context) (bool, error) {
	var name sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT to_regclass($1)`, s.quotedTable()).Scan(&name); err != nil {
		return false, &StoreError{Op: "check table", Err: err}
	}
	return name.Valid, nil
}

func (s *Store) quotedTable() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// classify maps driver errors onto the package's sentinel errors.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ErrTableMissing, pgErr.Message)
	}
	return err
}
