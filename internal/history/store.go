// Package history keeps a local append-only log of past day plans so
// exercises can be compared against what the client actually did before.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/claude/coachplan/internal/plan"
)

// maxEntriesPerClient bounds how many historical day plans are kept per
// client. Older entries are dropped on insert.
const maxEntriesPerClient = 50

// Store is the SQLite-backed session history log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dir/history.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS session_history (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL,
		fecha       TEXT NOT NULL,
		day_plan    TEXT NOT NULL,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_history_client
		ON session_history (client_id, fecha)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history index: %w", err)
	}

	return &Store{db: db}, nil
}

// Append records a historical day plan for a client and trims the
// client's log to the most recent entries.
func (s *Store) Append(ctx context.Context, h plan.HistoricalSession) error {
	if h.ID == "" || h.ClienteID == "" || h.Fecha == "" {
		return fmt.Errorf("append history: %w", plan.ErrInvalidParameter)
	}
	raw, err := json.Marshal(h.DayPlan)
	if err != nil {
		return fmt.Errorf("encoding day plan: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO session_history (id, client_id, fecha, day_plan) VALUES (?, ?, ?, ?)`,
		h.ID, h.ClienteID, h.Fecha, string(raw),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM session_history WHERE client_id = ? AND id NOT IN (
			SELECT id FROM session_history WHERE client_id = ?
			ORDER BY fecha DESC, recorded_at DESC LIMIT ?
		)`,
		h.ClienteID, h.ClienteID, maxEntriesPerClient,
	)
	if err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}

	return tx.Commit()
}

// ForClient returns a client's history, most recent first.
func (s *Store) ForClient(ctx context.Context, clienteID string) ([]plan.HistoricalSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fecha, day_plan FROM session_history
		 WHERE client_id = ? ORDER BY fecha DESC, recorded_at DESC`,
		clienteID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []plan.HistoricalSession
	for rows.Next() {
		h := plan.HistoricalSession{ClienteID: clienteID}
		var raw string
		if err := rows.Scan(&h.ID, &h.Fecha, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &h.DayPlan); err != nil {
			return nil, fmt.Errorf("decoding day plan %s: %w", h.ID, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Count returns how many entries a client currently has.
func (s *Store) Count(ctx context.Context, clienteID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_history WHERE client_id = ?`, clienteID,
	).Scan(&n)
	return n, err
}

// Close closes the history database.
func (s *Store) Close() error {
	return s.db.Close()
}
