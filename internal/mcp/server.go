package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("CoachPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("CoachPlan training program server. Query weekly training programs, derive visible-day views, compare exercises against a client's history, and preview volume reductions. Programs are identified by UUID; sessions by their IDs within the week."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolGetWeekOverview, Handler: h.getWeekOverview},
		server.ServerTool{Tool: toolGetVisibleDays, Handler: h.getVisibleDays},
		server.ServerTool{Tool: toolCompareExercise, Handler: h.compareExercise},
		server.ServerTool{Tool: toolReduceVolumePreview, Handler: h.reduceVolumePreview},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resViewCatalog, Handler: h.viewCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
