package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"kimai-mcp/internal/domain"
	"kimai-mcp/internal/format"
)

type versionInput struct {
	Format string `json:"format"`
}

func systemTools(d Deps) []Tool {
	return []Tool{getVersionTool(d)}
}

// getVersionTool doubles as a connectivity check: it is the cheapest
// authenticated endpoint the upstream API offers.
func getVersionTool(d Deps) Tool {
	def := mcp.NewTool("get_version",
		mcp.WithDescription("Report the version of the configured Kimai instance. Also serves as a quick connectivity and credentials check."),
		mcp.WithTitleAnnotation("Get Version"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := versionInput{Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := validateFormat(in.Format); err != nil {
			return errResult(err), nil
		}

		raw, err := d.Client.Request(ctx, http.MethodGet, "version", nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			var v domain.Version
			if err := json.Unmarshal(raw, &v); err != nil {
				return errResult(fmt.Errorf("decode version: %w", err)), nil
			}
			return textResult(format.Version(v)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}
