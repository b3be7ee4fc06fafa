package models

// Customer belongs to one business. Phone acts as the natural dedup key
// within a tenant; no uniqueness is enforced beyond convention. Visit and
// loyalty counters are incremented by callers, never by the cache.
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Notes         string `json:"notes,omitempty"`
	TotalVisits   int    `json:"totalVisits"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
	LastVisit     string `json:"lastVisit,omitempty"` // YYYY-MM-DD
	Photo         string `json:"photo,omitempty"`
}
