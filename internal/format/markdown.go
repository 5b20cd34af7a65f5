package format

import (
	"fmt"
	"strings"

	"kimai-mcp/internal/domain"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Timesheet renders a single entry.
func Timesheet(ts domain.Timesheet) string {
	status := "✓ Completed"
	end := "Still running..."
	if ts.Running() {
		status = "⏱️ RUNNING"
	} else {
		end = *ts.End
	}

	lines := []string{
		fmt.Sprintf("## Timesheet #%d", ts.ID),
		"**Status:** " + status,
		fmt.Sprintf("**Project ID:** %d", ts.Project),
		fmt.Sprintf("**Activity ID:** %d", ts.Activity),
		"**Start:** " + ts.Begin,
		"**End:** " + end,
		fmt.Sprintf("**Duration:** %.2f hours (%d seconds)", ts.Hours(), ts.Duration),
		"**Billable:** " + yesNo(ts.Billable),
		"**Exported:** " + yesNo(ts.Exported),
	}
	if ts.Description != "" {
		lines = append(lines, "**Description:** "+ts.Description)
	}
	if len(ts.Tags) > 0 {
		lines = append(lines, "**Tags:** "+strings.Join(ts.Tags, ", "))
	}
	if ts.Rate != nil && *ts.Rate != 0 {
		lines = append(lines, fmt.Sprintf("**Rate:** %v", *ts.Rate))
	}
	return strings.Join(lines, "\n")
}

// Timesheets renders a list with a duration rollup.
func Timesheets(items []domain.Timesheet) string {
	if len(items) == 0 {
		return "No timesheets found."
	}

	var total int64
	for _, ts := range items {
		total += ts.Duration
	}

	lines := []string{
		fmt.Sprintf("# Timesheets (%d entries)", len(items)),
		fmt.Sprintf("**Total Duration:** %.2f hours", float64(total)/3600),
		"",
	}
	for _, ts := range items {
		lines = append(lines, Timesheet(ts), "")
	}
	return strings.Join(lines, "\n")
}

// Project renders a single project.
func Project(p domain.Project) string {
	lines := []string{
		fmt.Sprintf("## %s (#%d)", p.Name, p.ID),
	}
	if p.Number != nil && *p.Number != "" {
		lines = append(lines, "**Number:** "+*p.Number)
	}
	lines = append(lines,
		fmt.Sprintf("**Customer ID:** %d", p.Customer),
		"**Visible:** "+yesNo(p.Visible),
		"**Billable:** "+yesNo(p.Billable),
	)
	if p.Color != nil && *p.Color != "" {
		lines = append(lines, "**Color:** "+*p.Color)
	}
	if p.Comment != "" {
		lines = append(lines, "**Comment:** "+p.Comment)
	}
	return strings.Join(lines, "\n")
}

// Projects renders a list of projects.
func Projects(items []domain.Project) string {
	if len(items) == 0 {
		return "No projects found."
	}

	lines := []string{
		fmt.Sprintf("# Projects (%d total)", len(items)),
		"",
	}
	for _, p := range items {
		lines = append(lines, Project(p), "")
	}
	return strings.Join(lines, "\n")
}

// Activity renders a single activity. Activities without a project are
// global and shown as such.
func Activity(a domain.Activity) string {
	project := "Global"
	if !a.Global() {
		project = fmt.Sprintf("%d", *a.Project)
	}

	lines := []string{
		fmt.Sprintf("## %s (#%d)", a.Name, a.ID),
	}
	if a.Number != nil && *a.Number != "" {
		lines = append(lines, "**Number:** "+*a.Number)
	}
	lines = append(lines,
		"**Project ID:** "+project,
		"**Visible:** "+yesNo(a.Visible),
		"**Billable:** "+yesNo(a.Billable),
	)
	if a.Color != nil && *a.Color != "" {
		lines = append(lines, "**Color:** "+*a.Color)
	}
	if a.Comment != "" {
		lines = append(lines, "**Comment:** "+a.Comment)
	}
	return strings.Join(lines, "\n")
}

// Activities renders a list of activities.
func Activities(items []domain.Activity) string {
	if len(items) == 0 {
		return "No activities found."
	}

	lines := []string{
		fmt.Sprintf("# Activities (%d total)", len(items)),
		"",
	}
	for _, a := range items {
		lines = append(lines, Activity(a), "")
	}
	return strings.Join(lines, "\n")
}

// Customer renders a single customer.
func Customer(c domain.Customer) string {
	lines := []string{
		fmt.Sprintf("## %s (#%d)", c.Name, c.ID),
	}
	if c.Number != nil && *c.Number != "" {
		lines = append(lines, "**Number:** "+*c.Number)
	}
	lines = append(lines,
		"**Currency:** "+c.Currency,
		"**Visible:** "+yesNo(c.Visible),
		"**Billable:** "+yesNo(c.Billable),
	)
	if c.Color != nil && *c.Color != "" {
		lines = append(lines, "**Color:** "+*c.Color)
	}
	if c.Comment != "" {
		lines = append(lines, "**Comment:** "+c.Comment)
	}
	return strings.Join(lines, "\n")
}

// Customers renders a list of customers.
func Customers(items []domain.Customer) string {
	if len(items) == 0 {
		return "No customers found."
	}

	lines := []string{
		fmt.Sprintf("# Customers (%d total)", len(items)),
		"",
	}
	for _, c := range items {
		lines = append(lines, Customer(c), "")
	}
	return strings.Join(lines, "\n")
}

// Version renders the upstream version payload.
func Version(v domain.Version) string {
	lines := []string{
		"# Kimai Instance",
		"**Version:** " + v.Version,
	}
	if v.Copyright != "" {
		lines = append(lines, "**Copyright:** "+v.Copyright)
	}
	return strings.Join(lines, "\n")
}
