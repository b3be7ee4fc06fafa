package models

import "time"

// Invoice is immutable once generated. Amount, Tax and Total are whole
// currency units; Tax is always 18% of Amount, rounded.
type Invoice struct {
	ID            string        `json:"id"`
	AppointmentID string        `json:"appointmentId"`
	CustomerID    string        `json:"customerId"`
	Date          string        `json:"date"` // YYYY-MM-DD
	Amount        int64         `json:"amount"`
	Tax           int64         `json:"tax"`
	Total         int64         `json:"total"`
	Method        PaymentMethod `json:"method"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}
