package domain

// Example is a stored SAIL snippet with the field values it starts from.
type Example struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Source      string            `json:"source"`
	State       map[string]string `json:"state,omitempty"`
}
