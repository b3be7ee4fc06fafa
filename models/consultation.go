package models

import "time"

// Recommendation is one service suggestion from a face analysis.
type Recommendation struct {
	Service string `json:"service"`
	Reason  string `json:"reason"`
}

// FaceAnalysis is the fixed-shape result of the AI vision call.
type FaceAnalysis struct {
	FaceShape       string           `json:"faceShape"`
	SkinTone        string           `json:"skinTone"`
	AgeGroup        string           `json:"ageGroup"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Consultation is a stored AI consultation session. The collection is
// append-only.
type Consultation struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customerName"`
	Result       FaceAnalysis `json:"result"`
	CreatedAt    time.Time    `json:"createdAt"`
}
