package models

// Service is a billable offering. Price is in whole currency units.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
}
