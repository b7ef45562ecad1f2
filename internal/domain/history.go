package domain

import "time"

// PurchaseHistoryEntry is one user's historical observation, appended when a
// receipt is confirmed. It feeds analytics only, never the ledger.
type PurchaseHistoryEntry struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	NormalizedItemName string    `json:"normalizedItemName"`
	ItemName           string    `json:"itemName"`
	UnitPrice          float64   `json:"unitPrice"`
	Quantity           float64   `json:"quantity"`
	StoreName          string    `json:"storeName"`
	StoreID            string    `json:"storeId,omitempty"`
	PurchaseDate       time.Time `json:"purchaseDate"`
}

// Deal is a specific instance where a user paid more for an item than the
// cheapest known current price at a different store.
type Deal struct {
	ItemName       string    `json:"itemName"`
	PaidPrice      float64   `json:"paidPrice"`
	PaidStore      string    `json:"paidStore"`
	CheapestPrice  float64   `json:"cheapestPrice"`
	CheapestStore  string    `json:"cheapestStore"`
	Savings        float64   `json:"savings"`
	SavingsPercent float64   `json:"savingsPercent"`
	LastPurchased  time.Time `json:"lastPurchased"`
}

// StoreSaving is the projected monthly saving from switching to one store.
type StoreSaving struct {
	StoreID        string  `json:"storeId"`
	StoreName      string  `json:"storeName"`
	MonthlySaving  float64 `json:"monthlySaving"`
	ItemsConsidered int    `json:"itemsConsidered"`
}

// Recommendation is a ranked store-switch suggestion: the store with the
// largest projected saving plus up to three runner-ups.
type Recommendation struct {
	TopPick   StoreSaving   `json:"topPick"`
	RunnerUps []StoreSaving `json:"runnerUps,omitempty"`
}
