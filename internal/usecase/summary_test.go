package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"kimai-mcp/internal/domain"
)

type fakeClient struct {
	raw json.RawMessage
	err error

	method string
	path   string
	query  url.Values
}

func (f *fakeClient) Request(_ context.Context, method, path string, query url.Values, _ any) (json.RawMessage, error) {
	f.method, f.path, f.query = method, path, query
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummarize_Totals(t *testing.T) {
	entries := []domain.Timesheet{
		{ID: 1, Project: 5, Activity: 9, Duration: 7200, Billable: true},
		{ID: 2, Project: 5, Activity: 9, Duration: 3600, Billable: true},
		{ID: 3, Project: 2, Activity: 4, Duration: 3600},
	}
	s := Summarize(entries)

	if s.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", s.TotalEntries)
	}
	if s.TotalSeconds != 14400 {
		t.Errorf("TotalSeconds = %d, want 14400", s.TotalSeconds)
	}
	if s.BillableSeconds != 10800 {
		t.Errorf("BillableSeconds = %d, want 10800", s.BillableSeconds)
	}
	if len(s.ByProject) != 2 || len(s.ByActivity) != 2 {
		t.Fatalf("buckets = %d projects / %d activities, want 2 / 2", len(s.ByProject), len(s.ByActivity))
	}
	if s.ByProject[0].ID != 5 || s.ByProject[0].Seconds != 10800 || s.ByProject[0].Count != 2 {
		t.Errorf("dominant project bucket = %+v, want id 5 / 10800s / 2 entries", s.ByProject[0])
	}
}

func TestSummarize_OrdersBucketsByDuration(t *testing.T) {
	entries := []domain.Timesheet{
		{ID: 1, Project: 1, Activity: 1, Duration: 600},
		{ID: 2, Project: 2, Activity: 2, Duration: 7200},
		{ID: 3, Project: 3, Activity: 3, Duration: 1800},
	}
	s := Summarize(entries)

	want := []int{2, 3, 1}
	for i, b := range s.ByProject {
		if b.ID != want[i] {
			t.Errorf("ByProject[%d].ID = %d, want %d", i, b.ID, want[i])
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalEntries != 0 || s.TotalSeconds != 0 {
		t.Errorf("empty input produced %+v", s)
	}
	if len(s.ByProject) != 0 || len(s.ByActivity) != 0 {
		t.Errorf("empty input produced buckets: %+v", s)
	}
}

func TestRun_BuildsQuery(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(`[]`)}
	uc := &SummaryUseCase{Log: testLogger(), Kimai: fake}

	_, err := uc.Run(context.Background(), Filter{
		User:     3,
		Customer: 7,
		Project:  5,
		Activity: 9,
		Begin:    "2025-01-01T00:00:00",
		End:      "2025-01-31T23:59:59",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if fake.method != "GET" || fake.path != "timesheets" {
		t.Errorf("request = %s %s, want GET timesheets", fake.method, fake.path)
	}
	want := map[string]string{
		"size":     "1000",
		"user":     "3",
		"customer": "7",
		"project":  "5",
		"activity": "9",
		"begin":    "2025-01-01T00:00:00",
		"end":      "2025-01-31T23:59:59",
	}
	for k, v := range want {
		if got := fake.query.Get(k); got != v {
			t.Errorf("query[%s] = %q, want %q", k, got, v)
		}
	}
}

func TestRun_OmitsUnsetFilters(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(`[]`)}
	uc := &SummaryUseCase{Log: testLogger(), Kimai: fake}

	if _, err := uc.Run(context.Background(), Filter{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(fake.query); got != 1 {
		t.Errorf("query has %d params %v, want only size", got, fake.query)
	}
}

func TestRun_AggregatesFetchedEntries(t *testing.T) {
	fake := &fakeClient{raw: json.RawMessage(
		`[{"id":1,"project":5,"activity":9,"duration":28800,"billable":true}]`,
	)}
	uc := &SummaryUseCase{Log: testLogger(), Kimai: fake}

	s, err := uc.Run(context.Background(), Filter{Project: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.TotalEntries != 1 || s.TotalSeconds != 28800 || s.BillableSeconds != 28800 {
		t.Errorf("summary = %+v, want one 8h billable entry", s)
	}
}

func TestRun_PropagatesClientError(t *testing.T) {
	wantErr := errors.New("boom")
	uc := &SummaryUseCase{Log: testLogger(), Kimai: &fakeClient{err: wantErr}}

	if _, err := uc.Run(context.Background(), Filter{}); !errors.Is(err, wantErr) {
		t.Errorf("Run error = %v, want wrapped boom", err)
	}
}

func TestRun_MissingClient(t *testing.T) {
	uc := &SummaryUseCase{Log: testLogger()}
	if _, err := uc.Run(context.Background(), Filter{}); err == nil {
		t.Error("expected error for missing client")
	}
}
