package memstore

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/pricelens/backend/internal/domain"
)

// lockStripes is the number of key-level mutexes. Upserts on the same
// (item, store) key hash to the same stripe and serialize; distinct keys
// almost always land on different stripes and proceed in parallel.
const lockStripes = 64

// PriceStore is a thread-safe in-memory price ledger. It keeps one record per
// (itemKey, storeKey) pair and gives Apply read-modify-write atomicity per key.
type PriceStore struct {
	mu      sync.RWMutex
	records map[string]map[string]*domain.PriceRecord
	stripes [lockStripes]sync.Mutex
}

// NewPriceStore creates an empty price ledger store.
func NewPriceStore() *PriceStore {
	return &PriceStore{
		records: make(map[string]map[string]*domain.PriceRecord),
	}
}

func (s *PriceStore) stripe(itemKey, storeKey string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(itemKey))
	h.Write([]byte{0})
	h.Write([]byte(storeKey))
	return &s.stripes[h.Sum32()%lockStripes]
}

// Apply runs mutate as an atomic read-modify-write transaction on one key.
// mutate gets a copy of the current record (nil if absent) and returns the
// record to store. The stored record and the returned record are copies, so
// callers can never alias internal state.
func (s *PriceStore) Apply(ctx context.Context, itemKey, storeKey string, mutate func(existing *domain.PriceRecord) (*domain.PriceRecord, error)) (*domain.PriceRecord, error) {
	lock := s.stripe(itemKey, storeKey)
	lock.Lock()
	defer lock.Unlock()

	var existing *domain.PriceRecord
	s.mu.RLock()
	if byStore, ok := s.records[itemKey]; ok {
		if rec, ok := byStore[storeKey]; ok {
			existing = clone(rec)
		}
	}
	s.mu.RUnlock()

	next, err := mutate(existing)
	if err != nil {
		return nil, err
	}
	if next == nil {
		// mutate declined to write
		return existing, nil
	}

	stored := clone(next)
	s.mu.Lock()
	byStore, ok := s.records[itemKey]
	if !ok {
		byStore = make(map[string]*domain.PriceRecord)
		s.records[itemKey] = byStore
	}
	byStore[storeKey] = stored
	s.mu.Unlock()

	return clone(stored), nil
}

// Get returns the record for one key, or domain.ErrRecordNotFound.
func (s *PriceStore) Get(ctx context.Context, itemKey, storeKey string) (*domain.PriceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStore, ok := s.records[itemKey]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	rec, ok := byStore[storeKey]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return clone(rec), nil
}

// ListByItem returns every store's record for an item, ordered by store key.
func (s *PriceStore) ListByItem(ctx context.Context, itemKey string) ([]*domain.PriceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStore, ok := s.records[itemKey]
	if !ok {
		return nil, nil
	}

	out := make([]*domain.PriceRecord, 0, len(byStore))
	for _, rec := range byStore {
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreKey < out[j].StoreKey })
	return out, nil
}

// Size returns the total number of ledger records (for monitoring).
func (s *PriceStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, byStore := range s.records {
		n += len(byStore)
	}
	return n
}

func clone(rec *domain.PriceRecord) *domain.PriceRecord {
	if rec == nil {
		return nil
	}
	cp := *rec
	return &cp
}
