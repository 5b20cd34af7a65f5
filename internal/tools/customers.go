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

func customerTools(d Deps) []Tool {
	return []Tool{
		listCustomersTool(d),
		getCustomerTool(d),
		createCustomerTool(d),
		updateCustomerTool(d),
	}
}

func decodeCustomer(raw json.RawMessage) (domain.Customer, error) {
	var c domain.Customer
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Customer{}, fmt.Errorf("decode customer: %w", err)
	}
	return c, nil
}

type listCustomersInput struct {
	Visible *bool  `json:"visible"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Format  string `json:"format"`
}

func (in listCustomersInput) validate() error {
	if err := validatePage(in.Page); err != nil {
		return err
	}
	if err := validateSize(in.Size); err != nil {
		return err
	}
	return validateFormat(in.Format)
}

func listCustomersTool(d Deps) Tool {
	def := mcp.NewTool("list_customers",
		mcp.WithDescription("List customers with an optional visibility filter. Useful for finding the customer IDs that project creation needs."),
		mcp.WithTitleAnnotation("List Customers"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithBoolean("visible", mcp.Description("Filter by visibility. Example: true")),
		mcp.WithNumber("page", mcp.DefaultNumber(1), mcp.Description("Page number (1-based). Example: 1")),
		mcp.WithNumber("size", mcp.DefaultNumber(defaultPageSize), mcp.Description("Results per page (1-100). Example: 50")),
		mcp.WithString("format", mcp.DefaultString(formatJSON), mcp.Enum(formatJSON, formatMarkdown),
			mcp.Description("Response format: 'json' or 'markdown'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := listCustomersInput{Page: 1, Size: defaultPageSize, Format: formatJSON}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(in.Page))
		q.Set("size", strconv.Itoa(in.Size))
		setOptionalFlag(q, "visible", in.Visible)

		raw, err := d.Client.Request(ctx, http.MethodGet, "customers", q, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			var items []domain.Customer
			if err := json.Unmarshal(raw, &items); err != nil {
				return errResult(fmt.Errorf("decode customers: %w", err)), nil
			}
			return textResult(format.Customers(items)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

func getCustomerTool(d Deps) Tool {
	def := mcp.NewTool("get_customer",
		mcp.WithDescription("Get full details of one customer, including currency and billing configuration."),
		mcp.WithTitleAnnotation("Get Customer"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Customer ID. Example: 1")),
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

		raw, err := d.Client.Request(ctx, http.MethodGet, fmt.Sprintf("customers/%d", in.ID), nil, nil)
		if err != nil {
			return errResult(err), nil
		}
		if in.Format == formatMarkdown {
			c, err := decodeCustomer(raw)
			if err != nil {
				return errResult(err), nil
			}
			return textResult(format.Customer(c)), nil
		}
		return textResult(format.JSON(raw)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type createCustomerInput struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Visible  bool   `json:"visible"`
	Billable bool   `json:"billable"`
	Color    string `json:"color"`
}

func (in createCustomerInput) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateCurrency(in.Currency); err != nil {
		return err
	}
	if in.Color != "" {
		return validateColor(in.Color)
	}
	return nil
}

func createCustomerTool(d Deps) Tool {
	def := mcp.NewTool("create_customer",
		mcp.WithDescription("Create a new customer with a billing currency. The customer is immediately available for project creation."),
		mcp.WithTitleAnnotation("Create Customer"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("name", mcp.Required(), mcp.Description("Customer name (1-150 characters). Example: 'Acme Corporation'")),
		mcp.WithString("currency", mcp.DefaultString("USD"), mcp.Description("3-letter currency code. Example: 'USD', 'EUR', 'CAD'")),
		mcp.WithBoolean("visible", mcp.DefaultBool(true), mcp.Description("Whether the customer is visible. Default: true")),
		mcp.WithBoolean("billable", mcp.DefaultBool(true), mcp.Description("Whether the customer is billable. Default: true")),
		mcp.WithString("color", mcp.Description("Hex color code (#RRGGBB). Example: '#008000'")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := createCustomerInput{Currency: "USD", Visible: true, Billable: true}
		if err := decodeInput(req, &in); err != nil {
			return errResult(err), nil
		}
		if err := in.validate(); err != nil {
			return errResult(err), nil
		}

		body := map[string]any{
			"name":     in.Name,
			"currency": in.Currency,
			"visible":  in.Visible,
			"billable": in.Billable,
		}
		if in.Color != "" {
			body["color"] = in.Color
		}

		raw, err := d.Client.Request(ctx, http.MethodPost, "customers", nil, body)
		if err != nil {
			return errResult(err), nil
		}
		c, err := decodeCustomer(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Customer created successfully!\n\n" + format.Customer(c)), nil
	}
	return Tool{Def: def, Handler: handler}
}

type updateCustomerInput struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Visible  *bool  `json:"visible"`
	Billable *bool  `json:"billable"`
	Color    string `json:"color"`
}

func (in updateCustomerInput) validate() error {
	if err := validateID("id", in.ID); err != nil {
		return err
	}
	if in.Name != "" {
		if err := validateName(in.Name); err != nil {
			return err
		}
	}
	if in.Currency != "" {
		if err := validateCurrency(in.Currency); err != nil {
			return err
		}
	}
	if in.Color != "" {
		return validateColor(in.Color)
	}
	return nil
}

func updateCustomerTool(d Deps) Tool {
	def := mcp.NewTool("update_customer",
		mcp.WithDescription("Update a customer's name, currency, visibility, billable status or color. Only the provided fields change."),
		mcp.WithTitleAnnotation("Update Customer"),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Customer ID to update. Example: 1")),
		mcp.WithString("name", mcp.Description("Updated customer name (1-150 characters)")),
		mcp.WithString("currency", mcp.Description("Updated 3-letter currency code")),
		mcp.WithBoolean("visible", mcp.Description("Updated visibility status")),
		mcp.WithBoolean("billable", mcp.Description("Updated billable status")),
		mcp.WithString("color", mcp.Description("Updated hex color code (#RRGGBB)")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in updateCustomerInput
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
		if in.Currency != "" {
			body["currency"] = in.Currency
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

		raw, err := d.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("customers/%d", in.ID), nil, body)
		if err != nil {
			return errResult(err), nil
		}
		c, err := decodeCustomer(raw)
		if err != nil {
			return errResult(err), nil
		}
		return textResult("✓ Customer updated successfully!\n\n" + format.Customer(c)), nil
	}
	return Tool{Def: def, Handler: handler}
}
