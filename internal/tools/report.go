package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"kimai-mcp/internal/format"
	"kimai-mcp/internal/usecase"
)

type summaryInput struct {
	User     *int   `json:"user"`
	Customer *int   `json:"customer"`
	Project  *int   `json:"project"`
	Activity *int   `json:"activity"`
	Begin    string `json:"begin"`
	End      string `json:"end"`
	Format   string `json:"format"`
}

func (in summaryInput) validate() error {
	for _, f := range []struct {
		name string
		id   *int
	}{
		{"user", in.User}, {"customer", in.Customer}, {"project", in.Project}, {"activity", in.Activity},
	} {
		if err := validateOptionalID(f.name, f.id); err != nil {
			return err
		}
	}
	if in.Begin != "" {
		if err := validateTimestamp("begin", in.Begin); err != nil {
			return err
		}
	}
	if in.End != "" {
		if err := validateTimestamp("end", in.End); err != nil {
			return err
		}
	}
	return validateFormat(in.Format)
}

func reportTools(d Deps) []Tool {
	return []Tool{getTimesheetSummaryTool(d)}
}

func getTimesheetSummaryTool(d Deps) Tool {
	def := mcp.NewTool("get_timesheet_summary",
		mcp.WithDescription("Generate an aggregate report over timesheet data: total hours, billable vs non-billable split, and time distribution across projects and activities. Filter by user, customer, project, activity or date range."),
		mcp.WithTitleAnnotation("Timesheet Summary"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("user", mcp.Description("Filter by user ID. Example: 1")),
		mcp.WithNumber("customer", mcp.Description("Filter by customer ID. Example: 1")),
		mcp.WithNumber("project", mcp.Description("Filter by project ID. Example: 1")),
		mcp.WithNumber("activity", mcp.Description("Filter by activity ID. Example: 355")),
		mcp.WithString("begin", mcp.Description("Start of the report window (ISO 8601). Example: 2025-11-01T00:00:00")),
		mcp.WithString("end", mcp.Description("End of the report window (ISO 8601). Example: 2025-11-30T23:59:59")),
		mcp.WithString("format", mcp.DefaultString(formatMarkdown), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := summaryInput{Format: formatMarkdown}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		uc := &usecase.SummaryUseCase{Log: d.Log, Kimai: d.Client}
		summary, err := uc.Run(ctx, usecase.Filter{
			User:     intOrZero(in.User),
			Customer: intOrZero(in.Customer),
			Project:  intOrZero(in.Project),
			Activity: intOrZero(in.Activity),
			Begin:    in.Begin,
			End:      in.End,
		})
		if err != nil {
			return errResult(err), nil
		}

		if in.Format == formatJSON {
			out, err := format.SummaryJSON(summary)
			if err != nil {
				return errResult(err), nil
			}
			return textResult(out), nil
		}
		return textResult(format.SummaryMarkdown(summary)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
