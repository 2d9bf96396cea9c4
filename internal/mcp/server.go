// Package mcp exposes the status board to MCP clients: typed tools over the
// store and its derived views, doc resources describing the reporting
// workflow, and traffic-logging middleware.
package mcp

import (
	"context"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/store"
)

// Board defines the store operations needed by MCP.
type Board interface {
	AddProject(ctx context.Context, req store.AddProjectRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, id string, patch store.ProjectPatch) (*project.Project, error)
	DeleteProject(ctx context.Context, id string) error
	AddUpdate(ctx context.Context, projectID string, draft store.UpdateDraft) (*project.WeeklyUpdate, error)
	EditUpdate(ctx context.Context, projectID, updateID string, patch store.UpdatePatch) (*project.WeeklyUpdate, error)
	DeleteUpdate(ctx context.Context, projectID, updateID string) error
	SetSelectedDate(ctx context.Context, date string)
	TogglePresentation(ctx context.Context, id string) (*project.Project, error)
	Reorder(ctx context.Context, ids []string) []project.Project
	Projects() []project.Project
	Project(id string) (*project.Project, error)
	SelectedDate() string
	ProjectsWithUpdateOn(date string) []project.Project
	Prefs() store.Prefs
	SetPrefs(ctx context.Context, patch store.PrefsPatch) store.Prefs
}

// Config contains server configuration.
type Config struct {
	Board  Board
	Logger *slog.Logger
}

// NewServer creates and configures an MCP server with all tools, resources
// and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "statusdeck",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Board)

	return server
}
