// Package tools defines the MCP tool surface: one closed input schema
// per operation, validated before any upstream call, with responses
// rendered through the format package.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kimai-mcp/internal/format"
	"kimai-mcp/internal/ports"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// Deps carries what every tool handler needs. Now is injectable so
// tests can pin the clock.
type Deps struct {
	Client ports.KimaiClient
	Log    *slog.Logger
	Now    func() time.Time
}

// Tool pairs a definition with its handler, ready for registration on
// an MCP server.
type Tool struct {
	Def     mcp.Tool
	Handler server.ToolHandlerFunc
}

// All returns the complete tool surface with per-call logging wrapped
// around every handler. Failures always come back as tool error
// results, never as protocol-level errors.
func All(d Deps) []Tool {
	if d.Now == nil {
		d.Now = time.Now
	}

	var tools []Tool
	tools = append(tools, timesheetTools(d)...)
	tools = append(tools, projectTools(d)...)
	tools = append(tools, activityTools(d)...)
	tools = append(tools, customerTools(d)...)
	tools = append(tools, reportTools(d)...)
	tools = append(tools, systemTools(d)...)

	for i := range tools {
		tools[i].Handler = withLogging(d.Log, tools[i].Def.Name, tools[i].Handler)
	}
	return tools
}

// withLogging logs one line per call with a correlation id, so
// concurrent invocations stay distinguishable in the stream.
func withLogging(log *slog.Logger, name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		l := log.With(slog.String("tool", name), slog.String("call_id", uuid.NewString()))
		start := time.Now()

		res, err := next(ctx, req)

		dur := slog.Duration("duration", time.Since(start))
		switch {
		case err != nil:
			l.Error("tool call failed", dur, slog.String("error", err.Error()))
		case res != nil && res.IsError:
			l.Warn("tool call rejected", dur)
		default:
			l.Info("tool call completed", dur)
		}
		return res, err
	}
}

// decodeInput unmarshals the argument bag into a closed input struct.
// Unknown keys are rejected so a typo fails loudly instead of being
// silently ignored. Defaults must be set on dst before decoding.
func decodeInput(req mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return fmt.Errorf("read arguments: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// textResult caps the response length and wraps the text.
func textResult(s string) *mcp.CallToolResult {
	return mcp.NewToolResultText(format.Truncate(s))
}

// errResult reports any failure as a tool error result.
func errResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}
