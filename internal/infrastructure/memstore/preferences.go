package memstore

import (
	"context"
	"strings"
	"sync"
)

// PreferenceStore holds each user's explicit variant choice per item.
type PreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]string
}

// NewPreferenceStore creates an empty preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		prefs: make(map[string]string),
	}
}

func prefKey(userID, itemName string) string {
	return userID + "\x00" + strings.ToLower(strings.TrimSpace(itemName))
}

// PreferredVariant returns the user's chosen variant name for an item, or "".
func (s *PreferenceStore) PreferredVariant(ctx context.Context, userID, itemName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs[prefKey(userID, itemName)], nil
}

// SetPreferredVariant records the user's variant choice for an item.
func (s *PreferenceStore) SetPreferredVariant(ctx context.Context, userID, itemName, variantName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefKey(userID, itemName)] = variantName
	return nil
}
