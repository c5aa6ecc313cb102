package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/coachplan/internal/plan"
)

type reorderRequest struct {
	SrcDay   string `json:"srcDay"`
	SrcIndex int    `json:"srcIndex"`
	Indices  []int  `json:"indices,omitempty"`
	DstDay   string `json:"dstDay"`
	DstIndex int    `json:"dstIndex"`
}

// handleReorder moves one session (srcIndex) or several (indices) within
// or across days and persists the resulting week.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	p, ok := s.programFromRequest(w, r)
	if !ok {
		return
	}
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var next plan.Weekly
	var err error
	if len(req.Indices) > 0 {
		next, err = plan.ReorderMulti(p.Week, req.SrcDay, req.Indices, req.DstDay, req.DstIndex)
	} else {
		next, err = plan.ReorderSingle(p.Week, req.SrcDay, req.SrcIndex, req.DstDay, req.DstIndex)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.persistWeek(w, r, p.ID, next)
}

type bulkRequest struct {
	Action     string   `json:"action"`
	IDs        []string `json:"ids"`
	TargetDay  string   `json:"targetDay,omitempty"`
	Percentage float64  `json:"percentage,omitempty"`
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	p, ok := s.programFromRequest(w, r)
	if !ok {
		return
	}
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids required"})
		return
	}

	var next plan.Weekly
	var err error
	switch req.Action {
	case "duplicate":
		next = plan.Duplicate(p.Week, req.IDs)
	case "move":
		next, err = plan.Move(p.Week, req.IDs, req.TargetDay)
	case "reduce-volume":
		next, err = plan.ReduceVolume(p.Week, req.IDs, req.Percentage)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown action: " + req.Action})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.persistWeek(w, r, p.ID, next)
}

type dropRequest struct {
	Day     string           `json:"day"`
	Payload plan.DropPayload `json:"payload"`
}

// handleDrop applies a drag-and-drop payload to a day. Multi-session
// payloads move sessions between days; session payloads insert a new
// session at the end of the day.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	p, ok := s.programFromRequest(w, r)
	if !ok {
		return
	}
	var req dropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var next plan.Weekly
	switch req.Payload.Type {
	case plan.PayloadMultiSession:
		item, err := req.Payload.DecodeMultiSession()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		next, err = plan.AppendToDay(p.Week, item.SourceDay, item.Indices, req.Day)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	case plan.PayloadSession:
		var sess plan.Session
		if err := json.Unmarshal(req.Payload.Item, &sess); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session payload: " + err.Error()})
			return
		}
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
		next = p.Week.Clone()
		dd, exists := next[req.Day]
		if !exists {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown day: " + req.Day})
			return
		}
		dd.Sessions = append(dd.Sessions, sess)
		next[req.Day] = dd
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported payload type: " + req.Payload.Type})
		return
	}

	s.persistWeek(w, r, p.ID, next)
}

// handleProgramView derives the visible days for a program from query
// parameters, plus a per-day summary for rendering.
func (s *Server) handleProgramView(w http.ResponseWriter, r *http.Request) {
	p, ok := s.programFromRequest(w, r)
	if !ok {
		return
	}
	cfg := viewConfigFromQuery(r)
	days := plan.VisibleDays(p.Week, cfg, p.Targets)

	type daySummary struct {
		Day      string  `json:"day"`
		Sessions int     `json:"sessions"`
		Minutes  float64 `json:"minutes"`
		Exceeded bool    `json:"exceeded"`
	}
	summaries := make([]daySummary, 0, len(days))
	for _, day := range days {
		dp := p.Week[day]
		summaries = append(summaries, daySummary{
			Day:      day,
			Sessions: len(dp.Sessions),
			Minutes:  dp.DurationMinutes(),
			Exceeded: plan.DayExceedsTargets(dp, p.Targets),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":      days,
		"summaries": summaries,
	})
}

func viewConfigFromQuery(r *http.Request) plan.ViewConfig {
	q := r.URL.Query()
	cfg := plan.ViewConfig{
		Preset:              q.Get("preset"),
		SortMode:            q.Get("sort"),
		FocusFilter:         q.Get("focus"),
		ModalityFilter:      q.Get("modality"),
		OnlyWithSessions:    q.Get("onlySessions") == "true",
		OnlyExceededTargets: q.Get("onlyExceeded") == "true",
		SelectionMode:       q.Get("selection"),
		WeekdayQuery:        q.Get("weekday"),
		TagQuery:            q.Get("tag"),
	}
	if v := q.Get("max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxVisibleDays = n
		}
	}
	if v := q.Get("pinned"); v != "" {
		cfg.PinnedDays = strings.Split(v, ",")
	}
	return cfg
}

// handleCompareSession compares one exercise of the program against the
// client's most recent matching historical session.
func (s *Server) handleCompareSession(w http.ResponseWriter, r *http.Request) {
	p, ok := s.programFromRequest(w, r)
	if !ok {
		return
	}
	sessionID := chi.URLParam(r, "sessionID")
	day, idx, found := p.Week.FindSession(sessionID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found in program"})
		return
	}
	current := p.Week[day].Sessions[idx]

	hist, err := s.history.ForClient(r.Context(), p.ClienteID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	prior := plan.FindPrior(sessionID, current, hist)
	result := plan.Compare(sessionID, current.Block, current, prior)
	writeJSON(w, http.StatusOK, result)
}

// persistWeek stores an updated week and responds with it.
func (s *Server) persistWeek(w http.ResponseWriter, r *http.Request, id uuid.UUID, week plan.Weekly) {
	if err := s.programs.UpdateProgramWeek(r.Context(), id, week); err != nil {
		if errors.Is(err, plan.ErrInvalidParameter) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("persist week error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"week": week})
}
