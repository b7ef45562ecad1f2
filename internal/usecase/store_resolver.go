package usecase

import (
	"sort"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// noiseSuffixes are trailing words that receipt headers tack onto a store
// name ("TESCO EXPRESS", "Aldi Stores Ltd"). Stripping one of them and
// retrying the exact lookup recovers the base name.
var noiseSuffixes = []string{
	"express", "extra", "metro", "local", "superstore", "supermarket",
	"stores", "store", "ltd", "plc", "uk", "gb", "oriental", "grocery",
	"wholesale",
}

// strippedPunctuation is removed wholesale during normalization. & and
// hyphens survive on purpose: they distinguish aliases like "m&s" and "co-op".
const strippedPunctuation = `.,;:!?'"` + "‘’“”"

// StoreResolver canonicalizes free-text retailer names into stable store IDs.
// It runs an explicit ordered list of match strategies, first match wins:
// exact alias -> suffix-stripped alias -> whole-word ID -> alias prefix.
// Absence of a match is a normal outcome, not an error.
//
// The alias tables are built once at construction and never mutated, so a
// single resolver is safe to share across requests without locking.
type StoreResolver struct {
	byID           map[string]*domain.StoreIdentity
	aliasToID      map[string]string
	orderedAliases []string
	orderedIDs     []string
	sorted         []domain.StoreIdentity
	logger         *zap.Logger
}

// NewStoreResolver builds a resolver over the given catalog.
// Pass nil logger to disable logging.
func NewStoreResolver(catalog []domain.StoreIdentity, logger *zap.Logger) *StoreResolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &StoreResolver{
		byID:      make(map[string]*domain.StoreIdentity, len(catalog)),
		aliasToID: make(map[string]string),
		logger:    logger,
	}

	r.sorted = make([]domain.StoreIdentity, len(catalog))
	copy(r.sorted, catalog)
	sort.SliceStable(r.sorted, func(i, j int) bool {
		return r.sorted[i].MarketShare > r.sorted[j].MarketShare
	})

	for i := range r.sorted {
		store := &r.sorted[i]
		r.byID[store.ID] = store
		r.orderedIDs = append(r.orderedIDs, store.ID)
		for _, alias := range store.Aliases {
			alias = NormalizeStoreName(alias)
			if alias == "" {
				continue
			}
			if prev, taken := r.aliasToID[alias]; taken && prev != store.ID {
				// Disjointness is a catalog invariant; keep the first owner
				// and flag the data-entry error instead of auto-correcting.
				logger.Warn("store alias claimed by two stores",
					zap.String("alias", alias),
					zap.String("kept", prev),
					zap.String("ignored", store.ID),
				)
				continue
			}
			r.aliasToID[alias] = store.ID
			r.orderedAliases = append(r.orderedAliases, alias)
		}
	}

	// Longest aliases and IDs first so prefix/word scans are deterministic
	// and the most specific candidate wins ties.
	byLengthDesc := func(list []string) {
		sort.SliceStable(list, func(i, j int) bool {
			if len(list[i]) != len(list[j]) {
				return len(list[i]) > len(list[j])
			}
			return list[i] < list[j]
		})
	}
	byLengthDesc(r.orderedAliases)
	byLengthDesc(r.orderedIDs)

	return r
}

// NormalizeStoreName lowercases, trims, strips punctuation, and collapses
// internal whitespace. An all-noise input normalizes to "".
func NormalizeStoreName(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// Resolve canonicalizes a raw store name. The second return is false when no
// strategy matched; callers keep the raw name alongside a null canonical ID.
func (r *StoreResolver) Resolve(raw string) (string, bool) {
	cleaned := NormalizeStoreName(raw)
	if cleaned == "" {
		return "", false
	}

	forms := []string{cleaned}
	for _, stripped := range r.suffixStrippedForms(cleaned) {
		forms = append(forms, stripped)
	}

	// 1. Exact alias lookup.
	if id, ok := r.aliasToID[cleaned]; ok {
		return id, true
	}

	// 2. Suffix-stripping retry, exact lookup on each stripped form.
	for _, stripped := range forms[1:] {
		if id, ok := r.aliasToID[stripped]; ok {
			return id, true
		}
	}

	// 3. Whole-word store ID contained in the cleaned or stripped string.
	for _, form := range forms {
		if id, ok := r.matchIDWord(form); ok {
			return id, true
		}
	}

	// 4. Cleaned or stripped string starts with a known alias. Prefix, not
	// substring: "hasda mini mart" must not match "asda".
	for _, form := range forms {
		if id, ok := r.matchAliasPrefix(form); ok {
			return id, true
		}
	}

	r.logger.Debug("unrecognized store name", zap.String("raw", raw))
	return "", false
}

// suffixStrippedForms strips a single trailing occurrence of each noise
// suffix, as a whole word, and returns the distinct stripped candidates.
func (r *StoreResolver) suffixStrippedForms(cleaned string) []string {
	var forms []string
	seen := map[string]bool{cleaned: true}
	for _, suffix := range noiseSuffixes {
		stripped, ok := strings.CutSuffix(cleaned, " "+suffix)
		if !ok {
			continue
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == "" || seen[stripped] {
			continue
		}
		seen[stripped] = true
		forms = append(forms, stripped)
	}
	return forms
}

func (r *StoreResolver) matchIDWord(form string) (string, bool) {
	words := strings.Fields(form)
	for _, id := range r.orderedIDs {
		for _, word := range words {
			if word == id {
				return id, true
			}
		}
	}
	return "", false
}

func (r *StoreResolver) matchAliasPrefix(form string) (string, bool) {
	for _, alias := range r.orderedAliases {
		if strings.HasPrefix(form, alias) {
			return r.aliasToID[alias], true
		}
	}
	return "", false
}

// AllStores returns every store identity sorted by market share, descending.
func (r *StoreResolver) AllStores() []domain.StoreIdentity {
	out := make([]domain.StoreIdentity, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// StoreInfo returns the identity for a canonical ID.
func (r *StoreResolver) StoreInfo(id string) (*domain.StoreIdentity, bool) {
	store, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	cp := *store
	return &cp, true
}
