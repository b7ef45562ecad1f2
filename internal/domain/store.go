package domain

// StoreType classifies a retailer by format.
type StoreType string

const (
	StoreTypeSupermarket StoreType = "supermarket"
	StoreTypeDiscounter  StoreType = "discounter"
	StoreTypeConvenience StoreType = "convenience"
	StoreTypePremium     StoreType = "premium"
	StoreTypeFrozen      StoreType = "frozen"
	StoreTypeWholesale   StoreType = "wholesale"
	StoreTypeSpecialty   StoreType = "specialty"
)

// StoreIdentity is a canonical retailer record. The alias set is how free-text
// receipt store names get mapped back to a stable ID; aliases must be disjoint
// across all identities (a data-entry error otherwise, never auto-corrected).
// Identities are static reference data loaded once at startup and immutable
// at runtime.
type StoreIdentity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	BrandColor  string    `json:"brandColor"`
	StoreType   StoreType `json:"storeType"`
	Aliases     []string  `json:"aliases"`
	MarketShare float64   `json:"marketShare"`
	CuisineTags []string  `json:"cuisineTags,omitempty"`
}
