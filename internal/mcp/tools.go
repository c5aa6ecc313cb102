package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/coachplan/internal/plan"
	"github.com/claude/coachplan/internal/storage"
)

// parseIDs splits a comma-separated session ID list, dropping empties.
func parseIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// --- Tool definitions ---

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Retrieve a weekly training program by ID, including all days, sessions, and weekly targets."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolGetWeekOverview = mcp.NewTool("get_week_overview",
	mcp.WithDescription("Per-day summary of a program: session count, total planned minutes, focus, and whether the day exceeds the weekly targets."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolGetVisibleDays = mcp.NewTool("get_visible_days",
	mcp.WithDescription("Derive which days of a program are visible under a view configuration (preset, filters, sorting, day limit)."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithString("preset", mcp.Description("Day preset. Defaults to 'all'."), mcp.Enum("custom", "all", "weekdays", "weekend", "empty", "exceeded")),
	mcp.WithString("sort", mcp.Description("Sort mode. Defaults to week order."), mcp.Enum("default", "alphabetical", "sessions", "duration")),
	mcp.WithString("max", mcp.Description("Maximum number of days to show (positive integer). Defaults to unlimited.")),
	mcp.WithString("focus", mcp.Description("Only days whose focus matches (case-insensitive substring)")),
	mcp.WithString("modality", mcp.Description("Only days containing a session of this modality")),
	mcp.WithString("only_sessions", mcp.Description("Set to 'true' to hide days without sessions")),
	mcp.WithString("only_exceeded", mcp.Description("Set to 'true' to show only days exceeding the weekly targets")),
)

var toolCompareExercise = mcp.NewTool("compare_exercise",
	mcp.WithDescription("Compare an exercise session of a program against the client's most recent matching historical session. Reports per-field improvements and regressions."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID within the program week")),
)

var toolReduceVolumePreview = mcp.NewTool("reduce_volume_preview",
	mcp.WithDescription("Preview a bulk volume reduction (5-50%) on selected sessions without persisting. Series round to the nearest integer with a floor of 1; weights scale proportionally."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithString("ids", mcp.Required(), mcp.Description("Comma-separated session IDs")),
	mcp.WithString("percentage", mcp.Required(), mcp.Description("Reduction percentage between 5 and 50")),
)

// --- Tool handlers ---

func (h *handlers) program(ctx context.Context, req mcp.CallToolRequest) (*storage.Program, *mcp.CallToolResult) {
	idStr, err := req.RequireString("program_id")
	if err != nil {
		return nil, mcp.NewToolResultError("program_id parameter is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, mcp.NewToolResultError("invalid program_id: " + err.Error())
	}
	p, err := h.ds.GetProgram(ctx, id)
	if err != nil {
		h.log.Error("mcp get program", "error", err)
		return nil, mcp.NewToolResultError("program lookup failed: " + err.Error())
	}
	return p, nil
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.program(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.program(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	type dayOverview struct {
		Day      string  `json:"day"`
		Focus    string  `json:"focus,omitempty"`
		Sessions int     `json:"sessions"`
		Minutes  float64 `json:"minutes"`
		Exceeded bool    `json:"exceeded"`
	}
	overview := make([]dayOverview, 0, len(plan.DayOrder))
	for _, day := range plan.DayOrder {
		dp := p.Week[day]
		overview = append(overview, dayOverview{
			Day:      day,
			Focus:    dp.Focus,
			Sessions: len(dp.Sessions),
			Minutes:  dp.DurationMinutes(),
			Exceeded: plan.DayExceedsTargets(dp, p.Targets),
		})
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"programId": p.ID,
		"name":      p.Name,
		"targets":   p.Targets,
		"days":      overview,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVisibleDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.program(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	cfg := plan.ViewConfig{
		Preset:              req.GetString("preset", plan.PresetAll),
		SortMode:            req.GetString("sort", plan.SortDefault),
		FocusFilter:         req.GetString("focus", ""),
		ModalityFilter:      req.GetString("modality", ""),
		OnlyWithSessions:    req.GetString("only_sessions", "") == "true",
		OnlyExceededTargets: req.GetString("only_exceeded", "") == "true",
	}
	if v := req.GetString("max", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return mcp.NewToolResultError("max must be a positive integer"), nil
		}
		cfg.MaxVisibleDays = n
	}

	days := plan.VisibleDays(p.Week, cfg, p.Targets)
	result, err := mcp.NewToolResultJSON(map[string]any{"days": days})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.program(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	day, idx, found := p.Week.FindSession(sessionID)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("session %s not found in program", sessionID)), nil
	}
	current := p.Week[day].Sessions[idx]

	hist, err := h.ds.HistoryForClient(ctx, p.ClienteID)
	if err != nil {
		h.log.Error("mcp compare_exercise", "error", err)
		return mcp.NewToolResultError("history lookup failed: " + err.Error()), nil
	}

	prior := plan.FindPrior(sessionID, current, hist)
	comparison := plan.Compare(sessionID, current.Block, current, prior)
	result, err := mcp.NewToolResultJSON(comparison)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) reduceVolumePreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := h.program(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	idsStr, err := req.RequireString("ids")
	if err != nil {
		return mcp.NewToolResultError("ids parameter is required"), nil
	}
	ids := parseIDs(idsStr)
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids must list at least one session ID"), nil
	}
	pctStr, err := req.RequireString("percentage")
	if err != nil {
		return mcp.NewToolResultError("percentage parameter is required"), nil
	}
	pct, err := strconv.ParseFloat(pctStr, 64)
	if err != nil {
		return mcp.NewToolResultError("percentage must be a number"), nil
	}

	preview, err := plan.ReduceVolume(p.Week, ids, pct)
	if err != nil {
		return mcp.NewToolResultError("reduction rejected: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"percentage": pct,
		"ids":        ids,
		"week":       preview,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
