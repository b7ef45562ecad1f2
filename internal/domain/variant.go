package domain

import "time"

// VariantSource records how a variant entered the catalog.
type VariantSource string

const (
	VariantSourceReceipt    VariantSource = "receipt_discovered"
	VariantSourceManual     VariantSource = "manual"
	VariantSourceAIEstimate VariantSource = "ai_estimate"
)

// VariantRecord is a known package variant of a base item, e.g. "Milk 2L"
// under base item "milk". Within a base item group, variant names are unique
// case-insensitively. EstimatedPrice of zero means unknown.
type VariantRecord struct {
	BaseItem       string        `json:"baseItem"`
	VariantName    string        `json:"variantName"`
	Size           float64       `json:"size"`
	Unit           string        `json:"unit"`
	Category       string        `json:"category,omitempty"`
	EstimatedPrice float64       `json:"estimatedPrice,omitempty"`
	Source         VariantSource `json:"source"`
	CreatedAt      time.Time     `json:"createdAt"`
}
