package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/category"
	"github.com/Mossaka/hevy-visualization/internal/models"
)

// fixedSource serves one pre-built dataset.
type fixedSource struct {
	ds *analysis.Dataset
}

func (f *fixedSource) Dataset() *analysis.Dataset { return f.ds }

func testHandlers(t *testing.T) *handlers {
	t.Helper()
	start := time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC)
	mkSet := func(offset time.Duration, exercise string, typ models.SetType, weight float64, reps int) models.Set {
		return models.Set{
			Workout:   "Push Day",
			Start:     start.Add(offset),
			End:       start.Add(offset + time.Hour),
			Exercise:  exercise,
			Type:      typ,
			WeightLbs: weight,
			Reps:      reps,
			Category:  category.Classify(exercise),
		}
	}
	ds, err := analysis.New([]models.Set{
		mkSet(0, "Bench Press (Barbell)", models.SetTypeWarmup, 135, 10),
		mkSet(5*time.Minute, "Bench Press (Barbell)", models.SetTypeNormal, 185, 5),
		mkSet(10*time.Minute, "Bench Press (Barbell)", models.SetTypeNormal, 185, 8),
	}, analysis.Options{})
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return &handlers{
		ds:  &fixedSource{ds: ds},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestGetSummaryTool(t *testing.T) {
	h := testHandlers(t)
	result, err := h.getSummary(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("getSummary error = %v", err)
	}
	if result.IsError {
		t.Fatalf("getSummary returned tool error: %s", textOf(t, result))
	}
	if body := textOf(t, result); !strings.Contains(body, `"total_sets":3`) {
		t.Errorf("summary body missing set count: %s", body)
	}
}

func TestGetExerciseStatsTool(t *testing.T) {
	h := testHandlers(t)

	result, err := h.getExerciseStats(context.Background(), callToolRequest(map[string]any{
		"exercise": "Bench Press (Barbell)",
	}))
	if err != nil {
		t.Fatalf("getExerciseStats error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}
	if body := textOf(t, result); !strings.Contains(body, `"volume":2405`) {
		t.Errorf("stats body missing volume: %s", body)
	}

	// Unknown exercise is a tool error, not a transport failure.
	result, err = h.getExerciseStats(context.Background(), callToolRequest(map[string]any{
		"exercise": "Snatch (Barbell)",
	}))
	if err != nil {
		t.Fatalf("getExerciseStats error = %v", err)
	}
	if !result.IsError {
		t.Error("unknown exercise should yield a tool error")
	}

	// Missing parameter likewise.
	result, err = h.getExerciseStats(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("getExerciseStats error = %v", err)
	}
	if !result.IsError {
		t.Error("missing exercise parameter should yield a tool error")
	}
}

func TestGetCategoryStatsTool(t *testing.T) {
	h := testHandlers(t)

	result, err := h.getCategoryStats(context.Background(), callToolRequest(map[string]any{
		"category": "Chest",
	}))
	if err != nil {
		t.Fatalf("getCategoryStats error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}

	result, err = h.getCategoryStats(context.Background(), callToolRequest(map[string]any{
		"category": "Cardio",
	}))
	if err != nil {
		t.Fatalf("getCategoryStats error = %v", err)
	}
	if !result.IsError {
		t.Error("unknown category should yield a tool error")
	}
}

func TestComparePeriodsTool(t *testing.T) {
	h := testHandlers(t)

	result, err := h.comparePeriods(context.Background(), callToolRequest(map[string]any{
		"a": "2025-01", "b": "2025-01",
	}))
	if err != nil {
		t.Fatalf("comparePeriods error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, result))
	}

	result, err = h.comparePeriods(context.Background(), callToolRequest(map[string]any{
		"a": "whenever", "b": "2025-01",
	}))
	if err != nil {
		t.Fatalf("comparePeriods error = %v", err)
	}
	if !result.IsError {
		t.Error("bad period label should yield a tool error")
	}
}

func TestToolsBeforeLoad(t *testing.T) {
	h := &handlers{
		ds:  &fixedSource{},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	result, err := h.getSummary(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("getSummary error = %v", err)
	}
	if !result.IsError {
		t.Error("tools before the first load should yield a tool error")
	}
}

func TestSummaryResource(t *testing.T) {
	h := testHandlers(t)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "hevyviz://summary"

	contents, err := h.summaryResource(context.Background(), req)
	if err != nil {
		t.Fatalf("summaryResource error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	if text.URI != "hevyviz://summary" || text.MIMEType != "application/json" {
		t.Errorf("resource meta = %q %q", text.URI, text.MIMEType)
	}
}
