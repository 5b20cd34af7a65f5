package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"kimai-mcp/internal/domain"
	"kimai-mcp/internal/ports"
)

// summaryFetchSize is the page size used when fetching entries for
// aggregation. Kimai has no summary endpoint, so the report is computed
// client-side; windows with more entries than this are summarized from
// the first summaryFetchSize returned.
const summaryFetchSize = 1000

// SummaryUseCase fetches a filtered window of timesheets and aggregates
// them locally into totals and per-project / per-activity buckets.
type SummaryUseCase struct {
	Log   *slog.Logger
	Kimai ports.KimaiClient
}

// Filter narrows the aggregation window. Zero fields are left out of
// the upstream query.
type Filter struct {
	User     int
	Customer int
	Project  int
	Activity int
	Begin    string
	End      string
}

func (uc *SummaryUseCase) Run(ctx context.Context, f Filter) (domain.Summary, error) {
	if uc.Kimai == nil {
		return domain.Summary{}, errors.New("usecase not initialized: missing client")
	}

	q := url.Values{}
	q.Set("size", strconv.Itoa(summaryFetchSize))
	if f.User != 0 {
		q.Set("user", strconv.Itoa(f.User))
	}
	if f.Customer != 0 {
		q.Set("customer", strconv.Itoa(f.Customer))
	}
	if f.Project != 0 {
		q.Set("project", strconv.Itoa(f.Project))
	}
	if f.Activity != 0 {
		q.Set("activity", strconv.Itoa(f.Activity))
	}
	if f.Begin != "" {
		q.Set("begin", f.Begin)
	}
	if f.End != "" {
		q.Set("end", f.End)
	}

	raw, err := uc.Kimai.Request(ctx, http.MethodGet, "timesheets", q, nil)
	if err != nil {
		return domain.Summary{}, err
	}

	var entries []domain.Timesheet
	if err := json.Unmarshal(raw, &entries); err != nil {
		return domain.Summary{}, fmt.Errorf("decode timesheets: %w", err)
	}
	uc.Log.Info("aggregating timesheets", slog.Int("count", len(entries)))

	return Summarize(entries), nil
}

// Summarize aggregates entries into a Summary. Buckets are ordered by
// descending duration; ties keep first-seen order.
func Summarize(entries []domain.Timesheet) domain.Summary {
	s := domain.Summary{TotalEntries: len(entries)}

	projects := newBuckets()
	activities := newBuckets()
	for _, ts := range entries {
		s.TotalSeconds += ts.Duration
		if ts.Billable {
			s.BillableSeconds += ts.Duration
		}
		projects.add(ts.Project, ts.Duration)
		activities.add(ts.Activity, ts.Duration)
	}

	s.ByProject = projects.sorted()
	s.ByActivity = activities.sorted()
	return s
}

// buckets accumulates per-id totals while remembering first-seen order.
type buckets struct {
	index map[int]int
	items []domain.Bucket
}

func newBuckets() *buckets {
	return &buckets{index: make(map[int]int)}
}

func (b *buckets) add(id int, seconds int64) {
	i, ok := b.index[id]
	if !ok {
		i = len(b.items)
		b.index[id] = i
		b.items = append(b.items, domain.Bucket{ID: id})
	}
	b.items[i].Seconds += seconds
	b.items[i].Count++
}

func (b *buckets) sorted() []domain.Bucket {
	sort.SliceStable(b.items, func(i, j int) bool {
		return b.items[i].Seconds > b.items[j].Seconds
	})
	return b.items
}
