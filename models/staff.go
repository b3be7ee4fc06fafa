package models

// Staff is a member of the business team. AttendanceToday is a local-session
// flag: it is never mirrored remotely and is reset to false whenever the
// record is rehydrated from the remote store.
type Staff struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Role            StaffRole `json:"role"`
	Phone           string    `json:"phone"`
	CommissionRate  float64   `json:"commissionRate"`
	Avatar          string    `json:"avatar,omitempty"`
	Status          string    `json:"status"`
	AttendanceToday bool      `json:"attendanceToday"`
}
