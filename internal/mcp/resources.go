package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) summaryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds := h.ds.Dataset()
	if ds == nil {
		return nil, fmt.Errorf("dataset not loaded yet")
	}
	return jsonResource(req.Params.URI, ds.Summary())
}

func (h *handlers) personalRecordsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds := h.ds.Dataset()
	if ds == nil {
		return nil, fmt.Errorf("dataset not loaded yet")
	}
	return jsonResource(req.Params.URI, map[string]any{
		"records": ds.PersonalRecords(),
		"lifts":   ds.LiftRecords(),
	})
}

func (h *handlers) recentWorkoutsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds := h.ds.Dataset()
	if ds == nil {
		return nil, fmt.Errorf("dataset not loaded yet")
	}
	return jsonResource(req.Params.URI, ds.RecentWorkouts(10, 0))
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
