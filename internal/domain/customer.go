package domain

// Customer mirrors a Kimai customer record.
type Customer struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Number   *string `json:"number"`
	Currency string  `json:"currency"`
	Visible  bool    `json:"visible"`
	Billable bool    `json:"billable"`
	Color    *string `json:"color"`
	Comment  string  `json:"comment"`
}
