package domain

import (
	"context"
	"time"
)

// PriceRepository persists price records keyed by (normalized item, store key).
type PriceRepository interface {
	// Apply runs a read-modify-write transaction against one ledger key.
	// mutate receives a copy of the existing record (nil if none) and returns
	// the record to store. Concurrent Apply calls on the same key serialize;
	// calls on different keys do not contend.
	Apply(ctx context.Context, itemKey, storeKey string, mutate func(existing *PriceRecord) (*PriceRecord, error)) (*PriceRecord, error)

	// Get returns the record for one key, or ErrRecordNotFound.
	Get(ctx context.Context, itemKey, storeKey string) (*PriceRecord, error)

	// ListByItem returns all records for an item across stores, ordered by
	// store key. An empty slice is a normal outcome.
	ListByItem(ctx context.Context, itemKey string) ([]*PriceRecord, error)
}

// VariantRepository persists the package-variant catalog, indexed by base item.
type VariantRepository interface {
	// Insert adds a variant, or returns ErrDuplicateVariant when the name is
	// already taken (case-insensitively) under the same base item.
	Insert(ctx context.Context, v *VariantRecord) error

	ListByBaseItem(ctx context.Context, baseItem string) ([]*VariantRecord, error)
}

// HistoryRepository is the append-only per-user purchase log.
type HistoryRepository interface {
	Append(ctx context.Context, e *PurchaseHistoryEntry) error

	// ListByUserSince returns the user's entries with purchase date >= since,
	// most recent first.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*PurchaseHistoryEntry, error)
}

// PreferenceRepository exposes a user's explicit variant choices per item.
// The write path belongs to an external collaborator; the inference engine
// only reads.
type PreferenceRepository interface {
	// PreferredVariant returns the user's chosen variant name for an item,
	// or "" when none is recorded.
	PreferredVariant(ctx context.Context, userID, itemName string) (string, error)

	SetPreferredVariant(ctx context.Context, userID, itemName, variantName string) error
}
