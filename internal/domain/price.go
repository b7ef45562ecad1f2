package domain

import "time"

// AIEstimateStore is the synthetic store name that holds AI-guessed prices.
// Records under it are superseded the moment a real receipt-derived record
// exists for the same item; read paths must prefer non-estimate records.
const AIEstimateStore = "AI Estimate"

// PriceRecord is the ledger's unit of truth: exactly one exists per
// (normalizedItemName, storeKey) pair at any time. Records are created on the
// first observation of a pair, mutated on every later one, and never deleted.
type PriceRecord struct {
	NormalizedItemName string    `json:"normalizedItemName"`
	DisplayItemName    string    `json:"displayItemName"`
	StoreKey           string    `json:"storeKey"`
	StoreName          string    `json:"storeName"`
	StoreID            string    `json:"storeId,omitempty"`
	UnitPrice          float64   `json:"unitPrice"`
	MinPrice           float64   `json:"minPrice"`
	MaxPrice           float64   `json:"maxPrice"`
	AveragePrice       float64   `json:"averagePrice"`
	Confidence         float64   `json:"confidence"`
	ReportCount        int       `json:"reportCount"`
	LastSeenDate       time.Time `json:"lastSeenDate"`
	Size               float64   `json:"size,omitempty"`
	Unit               string    `json:"unit,omitempty"`
	VariantName        string    `json:"variantName,omitempty"`
	LastReportedBy     string    `json:"lastReportedBy"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CheapestPrice is the best known price for an item across stores.
type CheapestPrice struct {
	Price      float64   `json:"price"`
	Store      string    `json:"store"`
	LastSeen   time.Time `json:"lastSeen"`
	Confidence float64   `json:"confidence"`
}

// PriceEstimate summarises what is known about an item's price.
type PriceEstimate struct {
	Cheapest   CheapestPrice `json:"cheapest"`
	Average    float64       `json:"average"`
	StoreCount int           `json:"storeCount"`
}

// StorePrice is one store's entry in a cross-store comparison.
type StorePrice struct {
	Price      float64   `json:"price"`
	Confidence float64   `json:"confidence"`
	LastSeen   time.Time `json:"lastSeen"`
}

// StoreComparison is the result of comparing an item across a set of stores.
type StoreComparison struct {
	ByStore        map[string]StorePrice `json:"byStore"`
	CheapestStore  string                `json:"cheapestStore"`
	CheapestPrice  float64               `json:"cheapestPrice"`
	AveragePrice   float64               `json:"averagePrice"`
	StoresWithData int                   `json:"storesWithData"`
}
