package domain

// Activity mirrors a Kimai activity record. Project is nil for global
// activities, which are usable from any project.
type Activity struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Number   *string `json:"number"`
	Project  *int    `json:"project"`
	Visible  bool    `json:"visible"`
	Billable bool    `json:"billable"`
	Color    *string `json:"color"`
	Comment  string  `json:"comment"`
}

// Global reports whether the activity is not bound to a single project.
func (a Activity) Global() bool {
	return a.Project == nil
}
