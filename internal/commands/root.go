package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kimai-mcp/internal/app"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kimai-mcp",
	Short: "MCP server for the Kimai time-tracking API",
	Long: `kimai-mcp bridges MCP clients to a Kimai time-tracking instance.
It exposes timesheet, project, activity and customer operations as MCP
tools over stdio, plus a client-side summary report.

Configuration comes from the environment:
  KIMAI_BASE_URL   base URL of the Kimai instance (required)
  KIMAI_API_TOKEN  API token with API access enabled (required)
  KIMAI_TIMEOUT    per-request HTTP timeout, default 30s`,
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. It always writes to stderr: in
// serve mode stdout carries the MCP protocol stream.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
