package models

// Appointment references a customer, staff member and service by id only.
// Dangling references are tolerated and resolved to "unknown" at display
// time.
type Appointment struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customerId"`
	StaffID    string            `json:"staffId"`
	ServiceID  string            `json:"serviceId"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Time       string            `json:"time"` // HH:mm
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes,omitempty"`
}
