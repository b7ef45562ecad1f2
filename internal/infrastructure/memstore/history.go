package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// HistoryStore is a thread-safe append-only purchase log indexed by user.
type HistoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]*domain.PurchaseHistoryEntry
}

// NewHistoryStore creates an empty purchase history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		byUser: make(map[string][]*domain.PurchaseHistoryEntry),
	}
}

// Append records one purchase history entry.
func (s *HistoryStore) Append(ctx context.Context, e *domain.PurchaseHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *e
	s.byUser[e.UserID] = append(s.byUser[e.UserID], &cp)
	return nil
}

// ListByUserSince returns the user's entries purchased on or after since,
// most recent first.
func (s *HistoryStore) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.PurchaseHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.PurchaseHistoryEntry
	for _, e := range s.byUser[userID] {
		if e.PurchaseDate.Before(since) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}
