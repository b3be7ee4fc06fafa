package models

// InventoryItem tracks a stocked product. Stock never goes below zero;
// decrements clamp at zero and no upper bound is enforced.
type InventoryItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Stock         int    `json:"stock"`
	Unit          string `json:"unit"`
	MinStockAlert int    `json:"minStockAlert"`
	Vendor        string `json:"vendor,omitempty"`
	LastRestocked string `json:"lastRestocked,omitempty"` // YYYY-MM-DD
	Image         string `json:"image,omitempty"`
}
