package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kimai-mcp/internal/adapter/kimai"
	"kimai-mcp/internal/config"
	"kimai-mcp/internal/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify connectivity and API token validity",
	Long: `Probe the configured Kimai instance: fetch the version, then list a
handful of entries from each collection endpoint. Exits non-zero when
any probe fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		fmt.Println("Testing Kimai API connection...")
		fmt.Println()
		fmt.Printf("URL:   %s\n", cfg.Kimai.BaseURL)
		fmt.Printf("Token: %s\n", maskToken(cfg.Kimai.APIToken))
		fmt.Println()

		client := kimai.NewClient(cfg.Kimai.BaseURL, cfg.Kimai.APIToken, cfg.Kimai.Timeout, newLogger())
		ctx := cmd.Context()

		raw, err := client.Request(ctx, http.MethodGet, "version", nil, nil)
		if err != nil {
			color.Red("✗ version: %v", err)
			return errors.New("connection check failed")
		}
		var v domain.Version
		if err := json.Unmarshal(raw, &v); err != nil {
			color.Red("✗ version: %v", err)
			return errors.New("connection check failed")
		}
		color.Green("✓ connected to Kimai %s", v.Version)

		failed := false
		for _, endpoint := range []string{"timesheets", "projects", "activities", "customers"} {
			q := url.Values{}
			q.Set("size", "5")
			raw, err := client.Request(ctx, http.MethodGet, endpoint, q, nil)
			if err != nil {
				color.Red("✗ %s: %v", endpoint, err)
				failed = true
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				color.Red("✗ %s: unexpected response shape", endpoint)
				failed = true
				continue
			}
			color.Green("✓ %s: %d found", endpoint, len(items))
		}
		if failed {
			return errors.New("connection check failed")
		}

		fmt.Println()
		color.Green("All checks passed. The MCP server is ready to use.")
		return nil
	},
}

// maskToken keeps enough of the token to recognize it without leaking it.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "********"
	}
	return token[:8] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
