package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/pricelens/backend/internal/domain"
)

// VariantStore is a thread-safe in-memory variant catalog indexed by base item.
type VariantStore struct {
	mu     sync.RWMutex
	byBase map[string][]*domain.VariantRecord
}

// NewVariantStore creates an empty variant catalog.
func NewVariantStore() *VariantStore {
	return &VariantStore{
		byBase: make(map[string][]*domain.VariantRecord),
	}
}

// Insert adds a variant under its base item. Variant names are unique
// case-insensitively within a base item group; duplicates return
// domain.ErrDuplicateVariant.
func (s *VariantStore) Insert(ctx context.Context, v *domain.VariantRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.ToLower(v.VariantName)
	for _, existing := range s.byBase[v.BaseItem] {
		if strings.ToLower(existing.VariantName) == name {
			return domain.ErrDuplicateVariant
		}
	}

	cp := *v
	s.byBase[v.BaseItem] = append(s.byBase[v.BaseItem], &cp)
	return nil
}

// ListByBaseItem returns all known variants of a base item in insertion order.
func (s *VariantStore) ListByBaseItem(ctx context.Context, baseItem string) ([]*domain.VariantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants := s.byBase[baseItem]
	out := make([]*domain.VariantRecord, 0, len(variants))
	for _, v := range variants {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}
