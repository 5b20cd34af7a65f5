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

func projectTools(d Deps) []Tool {
	return []Tool{
		listProjectsTool(d),
		getProjectTool(d),
		createProjectTool(d),
		updateProjectTool(d),
	}
}

func decodeProject(raw json.RawMessage) (domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Project{}, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}

type listProjectsInput struct {
	Customer *int   `json:"customer"`
	Visible  *bool  `json:"visible"`
	Page     int    `json:"page"`
	Size     int    `json:"size"`
	Format   string `json:"format"`
}

func (in listProjectsInput) validate() error {
	if err := validateOptionalID("customer", in.Customer); err != nil {
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

func listProjectsTool(d Deps) Tool {
	def := mcp.NewTool("list_projects",
		mcp.WithDescription("List projects with optional filters for customer and visibility. Useful for discovering the project IDs that timesheet operations need."),
		mcp.WithTitleAnnotation("List Projects"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("customer", mcp.Description("Filter by customer ID. Example: 1")),
		mcp.WithBoolean("visible", mcp.Description("Filter by visibility status. Example: true")),
		mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number (1-based). Example: 1")),
		mcp.WithNumber("size", mcp.DefaultNumber(defaultPageSize), mcp.Description("Results per page (1-100). Example: 50")),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := listProjectsInput{Page: 1, Size: defaultPageSize, Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(in.Page))
		q.Set("size", strconv.Itoa(in.Size))
		setOptionalID(q, "customer", in.Customer)
		setOptionalFlag(q, "visible", in.Visible)

		raw, err := d.Client.Request(ctx, http.MethodGet, "projects", q, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			var items []domain.Project
			if err := json.Unmarshal(raw, &items); err != nil {
				return errResult(fmt.Errorf("decode projects: %w", err)), nil
			}
			return textResult(format.Projects(items)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func getProjectTool(d Deps) Tool {
	def := mcp.NewTool("get_project",
		mcp.WithDescription("Get full details of one project, including customer, color and billing configuration."),
		mcp.WithTitleAnnotation("Get Project"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Project ID. Example: 1")),
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

		raw, err := d.Client.Request(ctx, http.MethodGet, fmt.Sprintf("projects/%d", in.ID), nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			p, err := decodeProject(raw)
			if err != nil {
				return errResult(err), nil
			}
			return textResult(format.Project(p)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type createProjectInput struct {
	Name     string `json:"name"`
	Customer int    `json:"customer"`
	Visible  bool   `json:"visible"`
	Billable bool   `json:"billable"`
	Color    string `json:"color"`
}

func (in createProjectInput) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateID("customer", in.Customer); err != nil {
		return err
	}
	if in.Color != "" {
		return validateColor(in.Color)
	}
	return nil
}

func createProjectTool(d Deps) Tool {
	def := mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project under a customer. The project is immediately available for timesheet entries."),
		mcp.WithTitleAnnotation("Create Project"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name (1-150 characters). Example: 'New Website Development'")),
		mcp.WithNumber("customer", mcp.Required(), mcp.Description("Customer ID. Example: 1")),
		mcp.WithBoolean("visible", mcp.DefaultBool(true), mcp.Description("Whether the project is visible. Default: true")),
		mcp.WithBoolean("billable", mcp.DefaultBool(true), mcp.Description("Whether the project is billable. Default: true")),
		mcp.WithString("color", mcp.Description("Hex color code (#RRGGBB). Example: '#008000'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := createProjectInput{Visible: true, Billable: true}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{
			"name":     in.Name,
			"customer": in.Customer,
			"visible":  in.Visible,
			"billable": in.Billable,
		}
		if in.Color != "" {
			body["color"] = in.Color
		}

		raw, err := d.Client.Request(ctx, http.MethodPost, "projects", nil, body)
		if err != nil {
			return errResult(err), nil
		}
		p, err := decodeProject(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Project created successfully!\n\n" + format.Project(p)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type updateProjectInput struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Visible  *bool  `json:"visible"`
	Billable *bool  `json:"billable"`
	Color    string `json:"color"`
}

func (in updateProjectInput) validate() error {
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

func updateProjectTool(d Deps) Tool {
	def := mcp.NewTool("update_project",
		mcp.WithDescription("Update a project's name, visibility, billable status or color. Only the provided fields change."),
		mcp.WithTitleAnnotation("Update Project"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Project ID to update. Example: 1")),
		mcp.WithString("name", mcp.Description("Updated project name (1-150 characters)")),
		mcp.WithBoolean("visible", mcp.Description("Updated visibility status")),
		mcp.WithBoolean("billable", mcp.Description("Updated billable status")),
		mcp.WithString("color", mcp.Description("Updated hex color code (#RRGGBB)")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in updateProjectInput
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

		raw, err := d.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("projects/%d", in.ID), nil, body)
		if err != nil {
			return errResult(err), nil
		}
		p, err := decodeProject(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Project updated successfully!\n\n" + format.Project(p)), nil
	}
	return Tool{Def: def, Handler: handler}
}
