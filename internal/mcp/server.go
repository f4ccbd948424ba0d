package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/gymlog/internal/session"
	"github.com/meltforce/gymlog/internal/storage"
)

// New creates an MCP server with all tools and resources registered.
func New(tracker *session.Tracker, store *storage.Store, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymLog workout tracker. Query workout history, exercise progress, weekly training summaries, and barbell plate breakdowns. All weights are in kilograms."),
	)

	h := &handlers{tracker: tracker, store: store, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
		server.ServerTool{Tool: toolCalculatePlates, Handler: h.calculatePlates},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	tracker *session.Tracker
	store   *storage.Store
	log     *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"gymlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Finished workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
