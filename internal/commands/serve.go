package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kimai-mcp/internal/app"
	"kimai-mcp/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Start the MCP server and speak the protocol over stdin/stdout.
Point an MCP client at this command; logs go to stderr so they never
corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return app.New(log, cfg).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
