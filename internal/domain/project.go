package domain

// Project mirrors a Kimai project record.
type Project struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Number   *string `json:"number"`
	Customer int     `json:"customer"`
	Visible  bool    `json:"visible"`
	Billable bool    `json:"billable"`
	Color    *string `json:"color"`
	Comment  string  `json:"comment"`
}
