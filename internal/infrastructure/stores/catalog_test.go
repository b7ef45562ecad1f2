package stores

import (
	"strings"
	"testing"
)

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Catalog() {
		if s.ID == "" {
			t.Errorf("store %q has an empty ID", s.DisplayName)
		}
		if seen[s.ID] {
			t.Errorf("duplicate store ID %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestCatalogAliasesDisjoint(t *testing.T) {
	owner := make(map[string]string)
	for _, s := range Catalog() {
		for _, alias := range s.Aliases {
			if prev, ok := owner[alias]; ok && prev != s.ID {
				t.Errorf("alias %q claimed by both %q and %q", alias, prev, s.ID)
			}
			owner[alias] = s.ID
		}
	}
}

func TestCatalogAliasesNormalized(t *testing.T) {
	for _, s := range Catalog() {
		for _, alias := range s.Aliases {
			if alias != strings.ToLower(alias) {
				t.Errorf("alias %q of %q is not lowercase", alias, s.ID)
			}
			if alias != strings.TrimSpace(alias) {
				t.Errorf("alias %q of %q has surrounding whitespace", alias, s.ID)
			}
			if strings.Contains(alias, "  ") {
				t.Errorf("alias %q of %q has doubled whitespace", alias, s.ID)
			}
			for _, r := range alias {
				switch {
				case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '&', r == '-':
				default:
					t.Errorf("alias %q of %q contains %q, which normalization would strip", alias, s.ID, r)
				}
			}
		}
	}
}

func TestCatalogEntriesComplete(t *testing.T) {
	for _, s := range Catalog() {
		if s.DisplayName == "" {
			t.Errorf("store %q has no display name", s.ID)
		}
		if len(s.Aliases) == 0 {
			t.Errorf("store %q has no aliases", s.ID)
		}
		if s.MarketShare <= 0 {
			t.Errorf("store %q has market share %v, want positive", s.ID, s.MarketShare)
		}
		if s.StoreType == "" {
			t.Errorf("store %q has no store type", s.ID)
		}
	}
}
