// Package mcp exposes the workout analytics over the Model Context Protocol
// so LLM clients can query training data directly.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HevyViz", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout analytics server over Hevy strength-training exports. Query training summaries, per-exercise and per-category stats, monthly and quarterly trends, personal records, and goal progress. All weights are pounds."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSummary, Handler: h.getSummary},
		server.ServerTool{Tool: toolGetExerciseStats, Handler: h.getExerciseStats},
		server.ServerTool{Tool: toolGetCategoryStats, Handler: h.getCategoryStats},
		server.ServerTool{Tool: toolGetMonthlySummary, Handler: h.getMonthlySummary},
		server.ServerTool{Tool: toolGetQuarterlyTrends, Handler: h.getQuarterlyTrends},
		server.ServerTool{Tool: toolComparePeriods, Handler: h.comparePeriods},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetGoalProgress, Handler: h.getGoalProgress},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetTrainingBalance, Handler: h.getTrainingBalance},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resSummary, Handler: h.summaryResource},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecordsResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkoutsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resSummary = mcp.NewResource(
	"hevyviz://summary",
	"Training Summary",
	mcp.WithResourceDescription("Overview of the whole training log: workouts, sets, volume, top exercises, and category breakdown"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"hevyviz://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("Every exercise's best set by estimated one-rep max"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"hevyviz://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The ten most recent workout sessions with per-set detail and PR flags"),
	mcp.WithMIMEType("application/json"),
)
