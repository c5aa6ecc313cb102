package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

// ProgramStore is the persistence surface the handlers need for programs.
type ProgramStore interface {
	CreateProgram(ctx context.Context, clienteID, name string, week plan.Weekly, targets plan.WeekTargets) (*storage.Program, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*storage.Program, error)
	ListPrograms(ctx context.Context, clienteID string) ([]storage.Program, error)
	UpdateProgramWeek(ctx context.Context, id uuid.UUID, week plan.Weekly) error
	UpdateProgramTargets(ctx context.Context, id uuid.UUID, targets plan.WeekTargets) error
	DeleteProgram(ctx context.Context, id uuid.UUID) error
}

// HistoryStore is the persistence surface for past day plans.
type HistoryStore interface {
	Append(ctx context.Context, h plan.HistoricalSession) error
	ForClient(ctx context.Context, clienteID string) ([]plan.HistoricalSession, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	programs ProgramStore
	history  HistoryStore
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(programs ProgramStore, history HistoryStore, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		programs: programs,
		history:  history,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/{id}", s.handleGetProgram)
	s.router.Get("/api/v1/programs/{id}/view", s.handleProgramView)
	s.router.Get("/api/v1/programs/{id}/compare/{sessionID}", s.handleCompareSession)
	s.router.Get("/api/v1/history", s.handleListHistory)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Delete("/api/v1/programs/{id}", s.handleDeleteProgram)
		r.Put("/api/v1/programs/{id}/targets", s.handleUpdateTargets)
		r.Post("/api/v1/programs/{id}/reorder", s.handleReorder)
		r.Post("/api/v1/programs/{id}/bulk", s.handleBulk)
		r.Post("/api/v1/programs/{id}/drop", s.handleDrop)
		r.Post("/api/v1/history", s.handleAppendHistory)
	})
}
