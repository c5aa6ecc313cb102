package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/coachplan/internal/plan"
)

// ErrNotFound is returned when a program does not exist.
var ErrNotFound = errors.New("not found")

// Program is a stored weekly training program for one client.
type Program struct {
	ID        uuid.UUID        `json:"id"`
	ClienteID string           `json:"clienteId"`
	Name      string           `json:"name"`
	Week      plan.Weekly      `json:"week"`
	Targets   plan.WeekTargets `json:"targets"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CreateProgram inserts a new program and returns it with its generated ID.
func (db *DB) CreateProgram(ctx context.Context, clienteID, name string, week plan.Weekly, targets plan.WeekTargets) (*Program, error) {
	if week == nil {
		week = plan.EmptyWeek()
	}
	weekJSON, err := json.Marshal(week)
	if err != nil {
		return nil, fmt.Errorf("encoding week: %w", err)
	}
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return nil, fmt.Errorf("encoding targets: %w", err)
	}

	p := &Program{ID: uuid.New(), ClienteID: clienteID, Name: name, Week: week, Targets: targets}
	err = db.Pool.QueryRow(ctx,
		`INSERT INTO programs (id, client_id, name, week, targets)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		p.ID, clienteID, name, weekJSON, targetsJSON,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting program: %w", err)
	}
	return p, nil
}

// GetProgram retrieves a program by ID.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*Program, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, client_id, name, week, targets, created_at, updated_at
		 FROM programs WHERE id = $1`, id)
	p, err := scanProgram(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListPrograms retrieves all programs for a client, newest first.
func (db *DB) ListPrograms(ctx context.Context, clienteID string) ([]Program, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, client_id, name, week, targets, created_at, updated_at
		 FROM programs WHERE client_id = $1 ORDER BY updated_at DESC`, clienteID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// UpdateProgramWeek replaces a program's weekly plan.
func (db *DB) UpdateProgramWeek(ctx context.Context, id uuid.UUID, week plan.Weekly) error {
	weekJSON, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("encoding week: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE programs SET week = $2, updated_at = NOW() WHERE id = $1`,
		id, weekJSON)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProgramTargets replaces a program's weekly targets.
func (db *DB) UpdateProgramTargets(ctx context.Context, id uuid.UUID, targets plan.WeekTargets) error {
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE programs SET targets = $2, updated_at = NOW() WHERE id = $1`,
		id, targetsJSON)
	if err != nil {
		return fmt.Errorf("updating targets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProgram removes a program.
func (db *DB) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProgram(row pgx.Row) (*Program, error) {
	var p Program
	var weekJSON, targetsJSON []byte
	err := row.Scan(&p.ID, &p.ClienteID, &p.Name, &weekJSON, &targetsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(weekJSON, &p.Week); err != nil {
		return nil, fmt.Errorf("decoding week for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(targetsJSON, &p.Targets); err != nil {
		return nil, fmt.Errorf("decoding targets for %s: %w", p.ID, err)
	}
	return &p, nil
}
