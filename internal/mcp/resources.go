package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/coachplan/internal/plan"
)

var resViewCatalog = mcp.NewResource(
	"coachplan://view_catalog",
	"View Catalog",
	mcp.WithResourceDescription("Week day order plus the presets, sort modes, and selection modes accepted by the view tools"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) viewCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := map[string]any{
		"dayOrder": plan.DayOrder,
		"presets": []string{
			plan.PresetCustom, plan.PresetAll, plan.PresetWeekdays,
			plan.PresetWeekend, plan.PresetEmpty, plan.PresetExceeded,
		},
		"sortModes": []string{
			plan.SortDefault, plan.SortAlphabetical, plan.SortSessions, plan.SortDuration,
		},
		"selectionModes": []string{
			plan.SelectManual, plan.SelectWeekday, plan.SelectTag,
		},
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
