package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"kimai-mcp/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server registers",
	Long:  `Print the name and description of every registered tool, for checking client configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range tools.All(tools.Deps{Log: newLogger()}) {
			fmt.Printf("%-24s%s\n", t.Def.Name, t.Def.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
