package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"kimai-mcp/internal/domain"
	"kimai-mcp/internal/format"
)

func timesheetTools(d Deps) []Tool {
	return []Tool{
		listTimesheetsTool(d),
		getTimesheetTool(d),
		startTimesheetTool(d),
		stopTimesheetTool(d),
		createTimesheetTool(d),
		updateTimesheetTool(d),
		deleteTimesheetTool(d),
	}
}

func decodeTimesheet(raw json.RawMessage) (domain.Timesheet, error) {
	var ts domain.Timesheet
	if err := json.Unmarshal(raw, &ts); err != nil {
		return domain.Timesheet{}, fmt.Errorf("decode timesheet: %w", err)
	}
	return ts, nil
}

type listTimesheetsInput struct {
	User     *int   `json:"user"`
	Customer *int   `json:"customer"`
	Project  *int   `json:"project"`
	Activity *int   `json:"activity"`
	Page     int    `json:"page"`
	Size     int    `json:"size"`
	Active   *bool  `json:"active"`
	Exported *bool  `json:"exported"`
	Begin    string `json:"begin"`
	End      string `json:"end"`
	Format   string `json:"format"`
}

func (in listTimesheetsInput) validate() error {
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
	if err := validatePage(in.Page); err != nil {
		return err
	}
	if err := validateSize(in.Size); err != nil {
		return err
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

func listTimesheetsTool(d Deps) Tool {
	def := mcp.NewTool("list_timesheets",
		mcp.WithDescription("List timesheet entries with optional filters for user, customer, project, activity, running state, export state and date range. Paginated; returns duration and metadata per entry."),
		mcp.WithTitleAnnotation("List Timesheets"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("user", mcp.Description("Filter by user ID. Example: 1")),
		mcp.WithNumber("customer", mcp.Description("Filter by customer ID. Example: 1")),
		mcp.WithNumber("project", mcp.Description("Filter by project ID. Example: 5")),
		mcp.WithNumber("activity", mcp.Description("Filter by activity ID. Example: 10")),
		mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number (1-based). Example: 1")),
		mcp.WithNumber("size", mcp.DefaultNumber(defaultPageSize), mcp.Description("Results per page (1-100). Example: 50")),
		mcp.WithBoolean("active", mcp.Description("Filter for running timesheets only. Example: true")),
		mcp.WithBoolean("exported", mcp.Description("Filter by export status. Example: false")),
		mcp.WithString("begin", mcp.Description("Only entries starting at or after this ISO-8601 datetime. Example: 2025-11-01T00:00:00")),
		mcp.WithString("end", mcp.Description("Only entries up to this ISO-8601 datetime. Example: 2025-11-30T23:59:59")),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := listTimesheetsInput{Page: 1, Size: defaultPageSize, Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(in.Page))
		q.Set("size", strconv.Itoa(in.Size))
		setOptionalID(q, "user", in.User)
		setOptionalID(q, "customer", in.Customer)
		setOptionalID(q, "project", in.Project)
		setOptionalID(q, "activity", in.Activity)
		setOptionalFlag(q, "active", in.Active)
		setOptionalFlag(q, "exported", in.Exported)
		if in.Begin != "" {
			q.Set("begin", in.Begin)
		}
		if in.End != "" {
			q.Set("end", in.End)
		}

		raw, err := d.Client.Request(ctx, http.MethodGet, "timesheets", q, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			var items []domain.Timesheet
			if err := json.Unmarshal(raw, &items); err != nil {
				return errResult(fmt.Errorf("decode timesheets: %w", err)), nil
			}
			return textResult(format.Timesheets(items)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func getTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("get_timesheet",
		mcp.WithDescription("Get full details of one timesheet entry, including rate, tags and export state."),
		mcp.WithTitleAnnotation("Get Timesheet"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Timesheet ID. Example: 1245")),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := getEntityInput{Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		raw, err := d.Client.Request(ctx, http.MethodGet, fmt.Sprintf("timesheets/%d", in.ID), nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			ts, err := decodeTimesheet(raw)
			if err != nil {
				return errResult(err), nil
			}
			return textResult(format.Timesheet(ts)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type startTimesheetInput struct {
	Project     int    `json:"project"`
	Activity    int    `json:"activity"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

func (in startTimesheetInput) validate() error {
	if err := validateID("project", in.Project); err != nil {
		return err
	}
	if err := validateID("activity", in.Activity); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

func startTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("start_timesheet",
		mcp.WithDescription("Start tracking time for a project and activity. Creates a running entry beginning now; stop it later with stop_timesheet. Returns the created entry with its ID."),
		mcp.WithTitleAnnotation("Start Timesheet"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("project", mcp.Required(), mcp.Description("Project ID to track time for. Example: 1")),
		mcp.WithNumber("activity", mcp.Required(), mcp.Description("Activity ID to track. Example: 355")),
		mcp.WithString("description", mcp.Description("Optional description of the work. Example: 'Implementing new feature'")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags. Example: 'development,urgent'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in startTimesheetInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{
			"project":  in.Project,
			"activity": in.Activity,
			"begin":    d.Now().UTC().Format(time.RFC3339),
		}
		if in.Description != "" {
			body["description"] = in.Description
		}
		if tags := normalizeTags(in.Tags); tags != "" {
			body["tags"] = tags
		}

		raw, err := d.Client.Request(ctx, http.MethodPost, "timesheets", nil, body)
		if err != nil {
			return errResult(err), nil
		}
		ts, err := decodeTimesheet(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Timesheet started successfully!\n\n" + format.Timesheet(ts)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func stopTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("stop_timesheet",
		mcp.WithDescription("Stop a running timesheet entry. The upstream system sets the end time and calculates the duration; stopping an entry that is not running is reported as an upstream error."),
		mcp.WithTitleAnnotation("Stop Timesheet"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Timesheet ID to stop. Example: 1245")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in idInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		raw, err := d.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("timesheets/%d/stop", in.ID), nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		ts, err := decodeTimesheet(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Timesheet stopped successfully!\n\n" + format.Timesheet(ts)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type createTimesheetInput struct {
	Project     int    `json:"project"`
	Activity    int    `json:"activity"`
	Begin       string `json:"begin"`
	End         string `json:"end"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

func (in createTimesheetInput) validate() error {
	if err := validateID("project", in.Project); err != nil {
		return err
	}
	if err := validateID("activity", in.Activity); err != nil {
		return err
	}
	if in.Begin == "" {
		return fmt.Errorf("begin is required (ISO-8601 datetime like 2025-11-06T09:00:00)")
	}
	if err := validateTimestamp("begin", in.Begin); err != nil {
		return err
	}
	if in.End != "" {
		if err := validateTimestamp("end", in.End); err != nil {
			return err
		}
	}
	return validateDescription(in.Description)
}

func createTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("create_timesheet",
		mcp.WithDescription("Record a timesheet entry with explicit start and end times, e.g. for past work that was not tracked live. Omit end to create a running entry."),
		mcp.WithTitleAnnotation("Create Timesheet"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("project", mcp.Required(), mcp.Description("Project ID. Example: 1")),
		mcp.WithNumber("activity", mcp.Required(), mcp.Description("Activity ID. Example: 355")),
		mcp.WithString("begin", mcp.Required(), mcp.Description("Start datetime (ISO 8601). Example: 2025-11-06T09:00:00")),
		mcp.WithString("end", mcp.Description("End datetime (ISO 8601); omit for a running entry. Example: 2025-11-06T17:00:00")),
		mcp.WithString("description", mcp.Description("Work description. Example: 'Code review and testing'")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags. Example: 'review,testing'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in createTimesheetInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{
			"project":  in.Project,
			"activity": in.Activity,
			"begin":    in.Begin,
		}
		if in.End != "" {
			body["end"] = in.End
		}
		if in.Description != "" {
			body["description"] = in.Description
		}
		if tags := normalizeTags(in.Tags); tags != "" {
			body["tags"] = tags
		}

		raw, err := d.Client.Request(ctx, http.MethodPost, "timesheets", nil, body)
		if err != nil {
			return errResult(err), nil
		}
		ts, err := decodeTimesheet(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Timesheet created successfully!\n\n" + format.Timesheet(ts)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type updateTimesheetInput struct {
	ID          int     `json:"id"`
	Begin       string  `json:"begin"`
	End         string  `json:"end"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
}

func (in updateTimesheetInput) validate() error {
	if err := validateID("id", in.ID); err != nil {
		return err
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
	if in.Description != nil {
		return validateDescription(*in.Description)
	}
	return nil
}

func updateTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("update_timesheet",
		mcp.WithDescription("Update an existing timesheet entry. Only the provided fields change; an empty description or tags value clears that field."),
		mcp.WithTitleAnnotation("Update Timesheet"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Timesheet ID to update. Example: 1245")),
		mcp.WithString("begin", mcp.Description("New start datetime (ISO 8601). Example: 2025-11-06T09:30:00")),
		mcp.WithString("end", mcp.Description("New end datetime (ISO 8601). Example: 2025-11-06T17:30:00")),
		mcp.WithString("description", mcp.Description("Updated description; empty string clears it")),
		mcp.WithString("tags", mcp.Description("Updated comma-separated tags; empty string clears them")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in updateTimesheetInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{}
		if in.Begin != "" {
			body["begin"] = in.Begin
		}
		if in.End != "" {
			body["end"] = in.End
		}
		if in.Description != nil {
			body["description"] = *in.Description
		}
		if in.Tags != nil {
			body["tags"] = normalizeTags(*in.Tags)
		}

		raw, err := d.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("timesheets/%d", in.ID), nil, body)
		if err != nil {
			return errResult(err), nil
		}
		ts, err := decodeTimesheet(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Timesheet updated successfully!\n\n" + format.Timesheet(ts)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func deleteTimesheetTool(d Deps) Tool {
	def := mcp.NewTool("delete_timesheet",
		mcp.WithDescription("Delete a timesheet entry permanently. This cannot be undone."),
		mcp.WithTitleAnnotation("Delete Timesheet"),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Timesheet ID to delete. Example: 1245")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in idInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		if _, err := d.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("timesheets/%d", in.ID), nil, nil); err != nil {
			return errResult(err), nil
		}
		return textResult(fmt.Sprintf("✓ Timesheet #%d deleted successfully.", in.ID)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func setOptionalID(q url.Values, key string, id *int) {
	if id != nil {
		q.Set(key, strconv.Itoa(*id))
	}
}

func setOptionalFlag(q url.Values, key string, flag *bool) {
	if flag == nil {
		return
	}
	if *flag {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
}
