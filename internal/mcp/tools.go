package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Mossaka/hevy-visualization/internal/analysis"
	"github.com/Mossaka/hevy-visualization/internal/models"
)

// --- Tool definitions ---

var toolGetSummary = mcp.NewTool("get_summary",
	mcp.WithDescription("Overview of the whole training log: workout and set counts, total volume (warmups excluded), top exercises by volume, and per-category breakdown."),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Full history aggregate for one exercise: sets, volume, average/max weight and reps, and best estimated 1RM. Returns an error when the exercise was never logged."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exact exercise name as logged, e.g. 'Bench Press (Barbell)'")),
)

var toolGetCategoryStats = mcp.NewTool("get_category_stats",
	mcp.WithDescription("Per-category aggregates, or the per-exercise breakdown of one category."),
	mcp.WithString("category", mcp.Description("Category name (Chest, Back, Legs, Shoulders, Arms, Core, Other). Omit for all categories.")),
)

var toolGetMonthlySummary = mcp.NewTool("get_monthly_summary",
	mcp.WithDescription("One calendar month's workouts, sets, volume, training days, top exercises, and volume change versus the previous month."),
	mcp.WithString("month", mcp.Description("Month as YYYY-MM. Defaults to the most recent month with data.")),
)

var toolGetQuarterlyTrends = mcp.NewTool("get_quarterly_trends",
	mcp.WithDescription("Quarter-by-quarter progression: volume, workouts, quarter-over-quarter change, tracked-lift 1RMs, and regression flags. The first quarter has no prior data to compare against."),
)

var toolComparePeriods = mcp.NewTool("compare_periods",
	mcp.WithDescription("Compare training volume and set counts between two periods. Periods may be a year (2025), a month (2025-03), or a quarter (2025-Q1)."),
	mcp.WithString("a", mcp.Required(), mcp.Description("Baseline period")),
	mcp.WithString("b", mcp.Required(), mcp.Description("Comparison period")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Best set per exercise by estimated 1RM (Brzycki), plus tracked-lift records with working-weight recommendations."),
	mcp.WithNumber("top", mcp.Description("Limit to the top N exercises. Defaults to all.")),
)

var toolGetGoalProgress = mcp.NewTool("get_goal_progress",
	mcp.WithDescription("Progress toward each tracked lift's strength goal: baseline, current and target 1RM, and progress percentage clamped to 0-100."),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("Recent workout sessions, newest first, with per-set weights, reps, and PR flags. Pages over distinct training days, so every session of a day stays on one page."),
	mcp.WithNumber("days", mcp.Description("Training days per page. Defaults to 10.")),
	mcp.WithNumber("page", mcp.Description("Page index, 0 = newest. Defaults to 0.")),
)

var toolGetTrainingBalance = mcp.NewTool("get_training_balance",
	mcp.WithDescription("Structural balance ratios: push/pull and upper/lower volume. A ratio is null when its denominator has no volume."),
)

// dataset returns the current dataset, or an error result while none is
// loaded.
func (h *handlers) dataset() (*analysis.Dataset, *mcp.CallToolResult) {
	ds := h.ds.Dataset()
	if ds == nil {
		return nil, mcp.NewToolResultError("dataset not loaded yet")
	}
	return ds, nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("encoding result: " + err.Error()), nil
	}
	return result, nil
}

// --- Tool handlers ---

func (h *handlers) getSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	return toolJSON(ds.Summary())
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	detail, ok := ds.ExerciseDetail(exercise)
	if !ok {
		return mcp.NewToolResultError("no data for exercise " + exercise), nil
	}
	return toolJSON(detail)
}

func (h *handlers) getCategoryStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	cat := req.GetString("category", "")
	if cat == "" {
		return toolJSON(ds.CategoryAnalysis())
	}
	stats, ok := ds.CategoryExercises(models.Category(cat))
	if !ok {
		return mcp.NewToolResultError("unknown category " + cat), nil
	}
	return toolJSON(stats)
}

func (h *handlers) getMonthlySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	month := req.GetString("month", "")
	detail, ok := ds.MonthlyDetail(month)
	if !ok {
		return mcp.NewToolResultError("no data for month " + month), nil
	}
	return toolJSON(detail)
}

func (h *handlers) getQuarterlyTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	return toolJSON(ds.QuarterlyProgression())
}

func (h *handlers) comparePeriods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	a, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a parameter is required"), nil
	}
	b, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b parameter is required"), nil
	}
	cmp, err := ds.ComparePeriods(a, b)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(cmp)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	records := ds.PersonalRecords()
	if top := req.GetInt("top", 0); top > 0 && top < len(records) {
		records = records[:top]
	}
	return toolJSON(map[string]any{
		"records": records,
		"lifts":   ds.LiftRecords(),
	})
}

func (h *handlers) getGoalProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	return toolJSON(ds.GoalStatuses())
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	days := req.GetInt("days", 10)
	page := req.GetInt("page", 0)
	return toolJSON(ds.RecentWorkouts(days, page))
}

func (h *handlers) getTrainingBalance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds, errResult := h.dataset()
	if errResult != nil {
		return errResult, nil
	}
	return toolJSON(ds.Balance())
}
