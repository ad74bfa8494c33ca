// Package history keeps a journal of activations in a sqlite database in the
// state directory. Tokens are never stored here.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the journal database inside the state directory.
const FileName = "history.db"

const schema = `CREATE TABLE IF NOT EXISTS activations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	account      TEXT NOT NULL,
	config       TEXT NOT NULL,
	activated_at INTEGER NOT NULL
)`

type Entry struct {
	ID          int64
	Account     string
	Config      string
	ActivatedAt time.Time
}

type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends an activation.
func (j *Journal) Record(ctx context.Context, account, config string, at time.Time) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO activations (account, config, activated_at) VALUES (?, ?, ?)",
		account, config, at.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record activation: %w", err)
	}
	return nil
}

// Recent returns up to limit activations, newest first. limit <= 0 returns
// all of them.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, account, config, activated_at FROM activations ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ns int64
		)
		if err := rows.Scan(&e.ID, &e.Account, &e.Config, &ns); err != nil {
			return nil, fmt.Errorf("failed to scan activation: %w", err)
		}
		e.ActivatedAt = time.Unix(0, ns)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Last returns the most recent activation. ok is false on an empty journal.
func (j *Journal) Last(ctx context.Context) (e Entry, ok bool, err error) {
	var ns int64
	err = j.db.QueryRowContext(ctx,
		"SELECT id, account, config, activated_at FROM activations ORDER BY id DESC LIMIT 1").
		Scan(&e.ID, &e.Account, &e.Config, &ns)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to query last activation: %w", err)
	}
	e.ActivatedAt = time.Unix(0, ns)
	return e, true, nil
}
