package domain

// Summary is an aggregate computed locally from a filtered set of
// timesheets. It is never fetched from the upstream system.
type Summary struct {
	TotalEntries    int
	TotalSeconds    int64
	BillableSeconds int64
	ByProject       []Bucket
	ByActivity      []Bucket
}

// Bucket accumulates duration and entry count for one project or activity.
type Bucket struct {
	ID      int
	Seconds int64
	Count   int
}

// Hours converts the bucket duration from seconds to hours.
func (b Bucket) Hours() float64 {
	return float64(b.Seconds) / 3600
}

// TotalHours converts the total duration from seconds to hours.
func (s Summary) TotalHours() float64 {
	return float64(s.TotalSeconds) / 3600
}

// BillableHours converts the billable duration from seconds to hours.
func (s Summary) BillableHours() float64 {
	return float64(s.BillableSeconds) / 3600
}

// NonBillableHours is the non-billable share of the total duration.
func (s Summary) NonBillableHours() float64 {
	return float64(s.TotalSeconds-s.BillableSeconds) / 3600
}

// BillablePercent is the billable share of the total in percent,
// or 0 when nothing was tracked.
func (s Summary) BillablePercent() float64 {
	if s.TotalSeconds == 0 {
		return 0
	}
	return float64(s.BillableSeconds) / float64(s.TotalSeconds) * 100
}

// NonBillablePercent is the non-billable share of the total in percent,
// or 0 when nothing was tracked.
func (s Summary) NonBillablePercent() float64 {
	if s.TotalSeconds == 0 {
		return 0
	}
	return float64(s.TotalSeconds-s.BillableSeconds) / float64(s.TotalSeconds) * 100
}
