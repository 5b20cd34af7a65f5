package domain

// Timesheet mirrors a Kimai timesheet record as returned by the API.
// Begin and End stay strings: Kimai emits ISO-8601 with a "+0000" style
// offset that encoding/json cannot parse into time.Time, and the adapter
// only ever echoes them back to the caller.
type Timesheet struct {
	ID          int      `json:"id"`
	Project     int      `json:"project"`
	Activity    int      `json:"activity"`
	User        int      `json:"user"`
	Begin       string   `json:"begin"`
	End         *string  `json:"end"`
	Duration    int64    `json:"duration"` // seconds; 0 while running
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Exported    bool     `json:"exported"`
	Billable    bool     `json:"billable"`
	Rate        *float64 `json:"rate"`
}

// Running reports whether the entry is still being tracked (no end time).
func (t Timesheet) Running() bool {
	return t.End == nil
}

// Hours converts the recorded duration from seconds to hours.
func (t Timesheet) Hours() float64 {
	return float64(t.Duration) / 3600
}
