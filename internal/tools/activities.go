package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"kimai-mcp/internal/domain"
	"kimai-mcp/internal/format"
)

func activityTools(d Deps) []Tool {
	return []Tool{
		listActivitiesTool(d),
		getActivityTool(d),
		createActivityTool(d),
		updateActivityTool(d),
	}
}

func decodeActivity(raw json.RawMessage) (domain.Activity, error) {
	var a domain.Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Activity{}, fmt.Errorf("decode activity: %w", err)
	}
	return a, nil
}

type listActivitiesInput struct {
	Project *int   `json:"project"`
	Visible *bool  `json:"visible"`
	Term    string `json:"term"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Format  string `json:"format"`
}

func (in listActivitiesInput) validate() error {
	if err := validateOptionalID("project", in.Project); err != nil {
		return err
	}
	if err := validateTerm(in.Term); err != nil {
		return err
	}
	if err := validatePage(in.Page); err != nil {
		return err
	}
	if err := validateSize(in.Size); err != nil {
		return err
	}
	return validateFormat(in.Format)
}

func listActivitiesTool(d Deps) Tool {
	def := mcp.NewTool("list_activities",
		mcp.WithDescription("List activities with optional filters for project, visibility and a name search term. Activities without a project association are global and usable everywhere."),
		mcp.WithTitleAnnotation("List Activities"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("project", mcp.Description("Filter by project ID. Example: 1")),
		mcp.WithBoolean("visible", mcp.Description("Filter by visibility. Example: true")),
		mcp.WithString("term", mcp.Description("Search term to filter activities by name. Example: 'Code Review'")),
		mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number (1-based). Example: 1")),
		mcp.WithNumber("size", mcp.DefaultNumber(defaultPageSize), mcp.Description("Results per page (1-100). Example: 50")),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := listActivitiesInput{Page: 1, Size: defaultPageSize, Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(in.Page))
		q.Set("size", strconv.Itoa(in.Size))
		setOptionalID(q, "project", in.Project)
		setOptionalFlag(q, "visible", in.Visible)
		if in.Term != "" {
			q.Set("term", in.Term)
		}

		raw, err := d.Client.Request(ctx, http.MethodGet, "activities", q, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			var items []domain.Activity
			if err := json.Unmarshal(raw, &items); err != nil {
				return errResult(fmt.Errorf("decode activities: %w", err)), nil
			}
			return textResult(format.Activities(items)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func getActivityTool(d Deps) Tool {
	def := mcp.NewTool("get_activity",
		mcp.WithDescription("Get full details of one activity, including its project association and billing configuration."),
		mcp.WithTitleAnnotation("Get Activity"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Activity ID. Example: 355")),
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

		raw, err := d.Client.Request(ctx, http.MethodGet, fmt.Sprintf("activities/%d", in.ID), nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			a, err := decodeActivity(raw)
			if err != nil {
				return errResult(err), nil
			}
			return textResult(format.Activity(a)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type createActivityInput struct {
	Name     string `json:"name"`
	Project  *int   `json:"project"`
	Visible  bool   `json:"visible"`
	Billable bool   `json:"billable"`
	Color    string `json:"color"`
}

func (in createActivityInput) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateOptionalID("project", in.Project); err != nil {
		return err
	}
	if in.Color != "" {
		return validateColor(in.Color)
	}
	return nil
}

func createActivityTool(d Deps) Tool {
	def := mcp.NewTool("create_activity",
		mcp.WithDescription("Create a new activity, either bound to one project or global (usable from all projects) when the project ID is omitted."),
		mcp.WithTitleAnnotation("Create Activity"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name", mcp.Required(), mcp.Description("Activity name (1-150 characters). Example: 'Code Review'")),
		mcp.WithNumber("project", mcp.Description("Project ID; omit for a global activity. Example: 1")),
		mcp.WithBoolean("visible", mcp.DefaultBool(true), mcp.Description("Whether the activity is visible. Default: true")),
		mcp.WithBoolean("billable", mcp.DefaultBool(true), mcp.Description("Whether the activity is billable. Default: true")),
		mcp.WithString("color", mcp.Description("Hex color code (#RRGGBB). Example: '#FF5733'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := createActivityInput{Visible: true, Billable: true}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{
			"name":     in.Name,
			"visible":  in.Visible,
			"billable": in.Billable,
		}
		if in.Project != nil {
			body["project"] = *in.Project
		}
		if in.Color != "" {
			body["color"] = in.Color
		}

		raw, err := d.Client.Request(ctx, http.MethodPost, "activities", nil, body)
		if err != nil {
			return errResult(err), nil
		}
		a, err := decodeActivity(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Activity created successfully!\n\n" + format.Activity(a)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type updateActivityInput struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Visible  *bool  `json:"visible"`
	Billable *bool  `json:"billable"`
	Color    string `json:"color"`
}

func (in updateActivityInput) validate() error {
	if err := validateID("id", in.ID); err != nil {
		return err
	}
	if in.Name != "" {
		if err := validateName(in.Name); err != nil {
			return err
		}
	}
	if in.Color != "" {
		return validateColor(in.Color)
	}
	return nil
}

func updateActivityTool(d Deps) Tool {
	def := mcp.NewTool("update_activity",
		mcp.WithDescription("Update an activity's name, visibility, billable status or color. Only the provided fields change."),
		mcp.WithTitleAnnotation("Update Activity"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Activity ID to update. Example: 355")),
		mcp.WithString("name", mcp.Description("Updated activity name (1-150 characters)")),
		mcp.WithBoolean("visible", mcp.Description("Updated visibility status")),
		mcp.WithBoolean("billable", mcp.Description("Updated billable status")),
		mcp.WithString("color", mcp.Description("Updated hex color code (#RRGGBB)")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in updateActivityInput
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{}
		if in.Name != "" {
			body["name"] = in.Name
		}
		if in.Visible != nil {
			body["visible"] = *in.Visible
		}
		if in.Billable != nil {
			body["billable"] = *in.Billable
		}
		if in.Color != "" {
			body["color"] = in.Color
		}

		raw, err := d.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("activities/%d", in.ID), nil, body)
		if err != nil {
			return errResult(err), nil
		}
		a, err := decodeActivity(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Activity updated successfully!\n\n" + format.Activity(a)), nil
	}
	return Tool{Def: def, Handler: handler}
}
