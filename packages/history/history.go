// Package history records executed request outcomes in a local SQLite
// database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/bcurl/packages/executor"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const createTable = `
CREATE TABLE IF NOT EXISTS requests (
	id          TEXT NOT NULL,
	url         TEXT NOT NULL,
	method      TEXT NOT NULL,
	status      INTEGER,
	error       TEXT,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

// Recorder appends one row per outcome to a SQLite history file.
type Recorder struct {
	db      *sql.DB
	timeout time.Duration
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot connect to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot create history table: %w", err)
	}

	return &Recorder{db: db, timeout: 30 * time.Second}, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Record inserts one row per outcome, in input order.
func (r *Recorder) Record(method string, outcomes []executor.Outcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin history transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO requests (id, url, method, status, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("cannot prepare history insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range outcomes {
		o := &outcomes[i]

		var status any
		var errText any
		if o.Response != nil {
			status = o.Response.StatusCode
		}
		if o.Err != nil {
			errText = o.Err.Error()
		}

		if _, err := stmt.ExecContext(ctx, o.ID, o.URL, method, status, errText, o.Elapsed.Milliseconds(), now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("cannot insert history row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit history rows: %w", err)
	}
	return nil
}
