// Package history persists command history across terminal sessions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"shellmate/internal/domain"
)

// SQLiteStore keeps an append-only command history per session key in a
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs the
// schema migration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			session_key TEXT NOT NULL,
			command     TEXT NOT NULL,
			created_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_key, id)
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records one executed command line.
func (s *SQLiteStore) Append(ctx context.Context, sessionKey, command string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO history (session_key, command, created_at) VALUES (?, ?, ?)",
		sessionKey, command, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.NewDomainError("SQLiteStore.Append", domain.ErrHistoryStore, err.Error())
	}
	return nil
}

// Tail returns the most recent n command lines for the session, oldest first.
func (s *SQLiteStore) Tail(ctx context.Context, sessionKey string, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT command FROM (
			SELECT id, command FROM history
			WHERE session_key = ?
			ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		sessionKey, n,
	)
	if err != nil {
		return nil, domain.NewDomainError("SQLiteStore.Tail", domain.ErrHistoryStore, err.Error())
	}
	defer rows.Close()

	var commands []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, domain.NewDomainError("SQLiteStore.Tail", domain.ErrHistoryStore, err.Error())
		}
		commands = append(commands, cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDomainError("SQLiteStore.Tail", domain.ErrHistoryStore, err.Error())
	}
	return commands, nil
}

// Replace rewrites the stored history for a session in one transaction.
// Called at session end so the store reflects the final in-memory ring.
func (s *SQLiteStore) Replace(ctx context.Context, sessionKey string, commands []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewDomainError("SQLiteStore.Replace", domain.ErrHistoryStore, err.Error())
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history WHERE session_key = ?", sessionKey); err != nil {
		return domain.NewDomainError("SQLiteStore.Replace", domain.ErrHistoryStore, err.Error())
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, cmd := range commands {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO history (session_key, command, created_at) VALUES (?, ?, ?)",
			sessionKey, cmd, now,
		); err != nil {
			return domain.NewDomainError("SQLiteStore.Replace", domain.ErrHistoryStore, err.Error())
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.NewDomainError("SQLiteStore.Replace", domain.ErrHistoryStore, err.Error())
	}
	return nil
}
