package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/coachplan/internal/history"
	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Local (direct DB
// access) and HTTPClient (remote via REST API) both satisfy this
// interface.
type DataSource interface {
	GetProgram(ctx context.Context, id uuid.UUID) (*storage.Program, error)
	ListPrograms(ctx context.Context, clienteID string) ([]storage.Program, error)
	HistoryForClient(ctx context.Context, clienteID string) ([]plan.HistoricalSession, error)
}

// Local serves MCP tools straight from the program database and the
// history store.
type Local struct {
	DB   *storage.DB
	Hist *history.Store
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) GetProgram(ctx context.Context, id uuid.UUID) (*storage.Program, error) {
	return l.DB.GetProgram(ctx, id)
}

func (l Local) ListPrograms(ctx context.Context, clienteID string) ([]storage.Program, error) {
	return l.DB.ListPrograms(ctx, clienteID)
}

func (l Local) HistoryForClient(ctx context.Context, clienteID string) ([]plan.HistoricalSession, error) {
	return l.Hist.ForClient(ctx, clienteID)
}
