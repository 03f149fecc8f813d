package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultSQLiteDSN keeps the SQLite backend inside the process: nothing
// outlives a restart unless the operator points the DSN at a file.
const DefaultSQLiteDSN = ":memory:"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// OpenSQLite opens the database backing SQLiteRegistry and creates its
// schema. The pool is capped at one connection so an in-memory database is
// shared by every registry and transactions are serialized.
func OpenSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}

	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("session: pragma %q: %w", p, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS analysis_sessions (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT    NOT NULL,
			id         TEXT    NOT NULL,
			data       TEXT    NOT NULL,
			updated_at TEXT    NOT NULL,
			UNIQUE (kind, id)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session: migration: %w", err)
	}
	return db, nil
}

// SQLiteRegistry stores records as JSON rows, one namespace ("kind") per
// technique. Several registries may share one *sql.DB.
type SQLiteRegistry[T Record[T]] struct {
	db   *sql.DB
	kind string
	name string
}

// NewSQLiteRegistry creates a registry over db. kind namespaces the rows;
// name is used in error messages.
func NewSQLiteRegistry[T Record[T]](db *sql.DB, kind, name string) *SQLiteRegistry[T] {
	return &SQLiteRegistry[T]{db: db, kind: kind, name: name}
}

// Insert implements Registry.
func (r *SQLiteRegistry[T]) Insert(ctx context.Context, rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.name, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM analysis_sessions WHERE kind = ? AND id = ?`,
		r.kind, rec.SessionID(),
	).Scan(&n); err != nil {
		return fmt.Errorf("checking %s id: %w", r.name, err)
	}
	if n > 0 {
		return ErrDuplicateID
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO analysis_sessions (kind, id, data, updated_at) VALUES (?, ?, ?, ?)`,
		r.kind, rec.SessionID(), string(data), stamp(),
	); err != nil {
		return fmt.Errorf("inserting %s: %w", r.name, err)
	}
	return tx.Commit()
}

// Get implements Registry.
func (r *SQLiteRegistry[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM analysis_sessions WHERE kind = ? AND id = ?`,
		r.kind, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, NotFoundf("%s %q does not exist", r.name, id)
	}
	if err != nil {
		return zero, fmt.Errorf("loading %s %q: %w", r.name, id, err)
	}
	return r.decode(data)
}

// Update implements Registry. The row is read and rewritten inside one
// transaction; a non-nil error from fn rolls it back untouched.
func (r *SQLiteRegistry[T]) Update(ctx context.Context, id string, fn func(rec T) error) (T, error) {
	var zero T

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM analysis_sessions WHERE kind = ? AND id = ?`,
		r.kind, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, NotFoundf("%s %q does not exist", r.name, id)
	}
	if err != nil {
		return zero, fmt.Errorf("loading %s %q: %w", r.name, id, err)
	}

	rec, err := r.decode(data)
	if err != nil {
		return zero, err
	}
	if err := fn(rec); err != nil {
		return zero, err
	}

	updated, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encoding %s: %w", r.name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE analysis_sessions SET data = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		string(updated), stamp(), r.kind, id,
	); err != nil {
		return zero, fmt.Errorf("updating %s %q: %w", r.name, id, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("committing %s %q: %w", r.name, id, err)
	}
	return rec, nil
}

// List implements Registry.
func (r *SQLiteRegistry[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM analysis_sessions WHERE kind = ? ORDER BY seq`,
		r.kind,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", r.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.name, err)
		}
		rec, err := r.decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRegistry[T]) decode(data string) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		var zero T
		return zero, fmt.Errorf("decoding %s: %w", r.name, err)
	}
	return rec, nil
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
