package tools

import (
	"encoding/json"
	"strings"
	"testing"
)

// Three entries across two projects: 1h billable + 1h non-billable on
// project 1, 3h billable on project 2.
const summaryEntriesJSON = `[
  {"id":1,"project":1,"activity":9,"user":1,"begin":"2025-11-03T09:00:00+0000","end":"2025-11-03T10:00:00+0000","duration":3600,"billable":true},
  {"id":2,"project":1,"activity":9,"user":1,"begin":"2025-11-04T09:00:00+0000","end":"2025-11-04T10:00:00+0000","duration":3600,"billable":false},
  {"id":3,"project":2,"activity":10,"user":1,"begin":"2025-11-05T09:00:00+0000","end":"2025-11-05T12:00:00+0000","duration":10800,"billable":true}
]`

func TestGetTimesheetSummary_MarkdownDefault(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(summaryEntriesJSON)}
	tool := findTool(t, testDeps(fake), "get_timesheet_summary")

	res := callTool(t, tool, map[string]any{})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}

	text := resultText(t, res)
	for _, want := range []string{
		"# Timesheet Summary Report",
		"**Total Entries:** 3",
		"**Total Time:** 5.00 hours",
		"**Billable Time:** 4.00 hours (80.0%)",
		"**Non-Billable Time:** 1.00 hours (20.0%)",
		"- Project #2: 3.00 hours (1 entries)",
		"- Project #1: 2.00 hours (2 entries)",
		"- Activity #10: 3.00 hours (1 entries)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q:\n%s", want, text)
		}
	}

	// Largest project first.
	if strings.Index(text, "- Project #2:") > strings.Index(text, "- Project #1:") {
		t.Errorf("projects not ordered by duration:\n%s", text)
	}
}

func TestGetTimesheetSummary_FetchesWideWindow(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(`[]`)}
	tool := findTool(t, testDeps(fake), "get_timesheet_summary")

	res := callTool(t, tool, map[string]any{
		"user":  3,
		"begin": "2025-11-01T00:00:00",
		"end":   "2025-11-30T23:59:59",
	})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	if fake.method != "GET" || fake.path != "timesheets" {
		t.Errorf("request = %s %s, want GET timesheets", fake.method, fake.path)
	}
	if got := fake.query.Get("size"); got != "1000" {
		t.Errorf("size = %q, want the aggregation fetch size 1000", got)
	}
	if got := fake.query.Get("user"); got != "3" {
		t.Errorf("user = %q, want 3", got)
	}
	if got := fake.query.Get("begin"); got != "2025-11-01T00:00:00" {
		t.Errorf("begin = %q not forwarded", got)
	}
}

func TestGetTimesheetSummary_JSON(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(summaryEntriesJSON)}
	tool := findTool(t, testDeps(fake), "get_timesheet_summary")

	res := callTool(t, tool, map[string]any{"format": "json"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}

	var payload struct {
		TotalEntries  int     `json:"total_entries"`
		TotalHours    float64 `json:"total_hours"`
		BillableHours float64 `json:"billable_hours"`
		ByProject     map[string]struct {
			Hours float64 `json:"hours"`
			Count int     `json:"count"`
		} `json:"by_project"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("summary json does not parse: %v", err)
	}
	if payload.TotalEntries != 3 || payload.TotalHours != 5 || payload.BillableHours != 4 {
		t.Errorf("totals = %+v", payload)
	}
	bucket, ok := payload.ByProject["2"]
	if !ok || bucket.Hours != 3 || bucket.Count != 1 {
		t.Errorf("by_project[2] = %+v, ok = %v", bucket, ok)
	}
}

func TestGetTimesheetSummary_RejectsBadFilters(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"negative project", map[string]any{"project": -1}},
		{"bad begin", map[string]any{"begin": "last tuesday"}},
		{"bad format", map[string]any{"format": "csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{}
			tool := findTool(t, testDeps(fake), "get_timesheet_summary")

			res := callTool(t, tool, tt.args)
			if !res.IsError {
				t.Fatal("expected validation error")
			}
			if fake.calls != 0 {
				t.Errorf("validation failure made %d upstream calls", fake.calls)
			}
		})
	}
}
