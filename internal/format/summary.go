package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kimai-mcp/internal/domain"
)

type summaryPayload struct {
	TotalEntries     int                      `json:"total_entries"`
	TotalHours       float64                  `json:"total_hours"`
	BillableHours    float64                  `json:"billable_hours"`
	NonBillableHours float64                  `json:"non_billable_hours"`
	ByProject        map[string]bucketPayload `json:"by_project"`
	ByActivity       map[string]bucketPayload `json:"by_activity"`
}

type bucketPayload struct {
	Hours float64 `json:"hours"`
	Count int     `json:"count"`
}

// SummaryMarkdown renders the aggregate report. Buckets are listed in
// the order they carry, largest duration first.
func SummaryMarkdown(s domain.Summary) string {
	lines := []string{
		"# Timesheet Summary Report",
		"",
		"## Overview",
		fmt.Sprintf("**Total Entries:** %d", s.TotalEntries),
		fmt.Sprintf("**Total Time:** %.2f hours", s.TotalHours()),
		fmt.Sprintf("**Billable Time:** %.2f hours (%.1f%%)", s.BillableHours(), s.BillablePercent()),
		fmt.Sprintf("**Non-Billable Time:** %.2f hours (%.1f%%)", s.NonBillableHours(), s.NonBillablePercent()),
		"",
		"## By Project",
	}
	for _, b := range s.ByProject {
		lines = append(lines, fmt.Sprintf("- Project #%d: %.2f hours (%d entries)", b.ID, b.Hours(), b.Count))
	}
	lines = append(lines, "", "## By Activity")
	for _, b := range s.ByActivity {
		lines = append(lines, fmt.Sprintf("- Activity #%d: %.2f hours (%d entries)", b.ID, b.Hours(), b.Count))
	}
	return strings.Join(lines, "\n")
}

// SummaryJSON renders the aggregate report as indented JSON with
// hours rounded to two decimals.
func SummaryJSON(s domain.Summary) (string, error) {
	payload := summaryPayload{
		TotalEntries:     s.TotalEntries,
		TotalHours:       round2(s.TotalHours()),
		BillableHours:    round2(s.BillableHours()),
		NonBillableHours: round2(s.NonBillableHours()),
		ByProject:        buckets(s.ByProject),
		ByActivity:       buckets(s.ByActivity),
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return string(out), nil
}

func buckets(bs []domain.Bucket) map[string]bucketPayload {
	out := make(map[string]bucketPayload, len(bs))
	for _, b := range bs {
		out[strconv.Itoa(b.ID)] = bucketPayload{Hours: round2(b.Hours()), Count: b.Count}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
