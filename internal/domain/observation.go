package domain

import "time"

// Observation is one receipt line item handed over by the receipt
// confirmation collaborator after the user accepts the parsed receipt.
type Observation struct {
	Name         string    `json:"name"`
	UnitPrice    float64   `json:"unitPrice"`
	Quantity     float64   `json:"quantity"`
	Size         float64   `json:"size,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	Category     string    `json:"category,omitempty"`
	PurchaseDate time.Time `json:"purchaseDate"`
	StoreName    string    `json:"storeName"`
	ReporterID   string    `json:"reporterId"`
}

// AIEstimate is a single AI-guessed price handed over by the estimation
// collaborator, recorded under the synthetic AIEstimateStore.
type AIEstimate struct {
	NormalizedName string  `json:"normalizedName"`
	ItemName       string  `json:"itemName"`
	UnitPrice      float64 `json:"unitPrice"`
	UserID         string  `json:"userId"`
	Size           float64 `json:"size,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	VariantName    string  `json:"variantName,omitempty"`
}
