// Package app is the composition root: it creates the upstream client,
// registers every tool on an MCP server instance and exposes the stdio
// serve loop. No business logic lives here, only wiring.
package app

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"kimai-mcp/internal/adapter/kimai"
	"kimai-mcp/internal/config"
	"kimai-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// App wires the adapter and the MCP server.
type App struct {
	log *slog.Logger
	mcp *server.MCPServer
}

func New(log *slog.Logger, cfg config.Config) *App {
	client := kimai.NewClient(cfg.Kimai.BaseURL, cfg.Kimai.APIToken, cfg.Kimai.Timeout, log)

	s := server.NewMCPServer(
		"kimai-mcp",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	registered := tools.All(tools.Deps{Client: client, Log: log})
	for _, t := range registered {
		s.AddTool(t.Def, t.Handler)
	}
	log.Debug("tools registered", slog.Int("count", len(registered)))

	return &App{log: log, mcp: s}
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects or the process receives a termination signal. Logs must
// already be routed to stderr: stdout carries the protocol stream.
func (a *App) ServeStdio() error {
	a.log.Info("mcp server listening on stdio", slog.String("version", Version))
	return server.ServeStdio(a.mcp)
}

func serverInstructions() string {
	return `This server exposes a Kimai time-tracking instance.

Typical workflows:
- Track work live: find IDs with list_projects and list_activities, then
  start_timesheet; stop_timesheet when done.
- Record past work: create_timesheet with explicit begin and end.
- Reporting: get_timesheet_summary aggregates hours by project and
  activity; filter by user, customer, project, activity or date range.

IDs are numeric and can be discovered through the list_* tools. All
list tools accept format="markdown" for human-readable output; the
default "json" returns the upstream payload verbatim. Datetimes are
ISO 8601, e.g. 2025-11-06T09:00:00.`
}
