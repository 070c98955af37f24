// Package match resolves a free-text question to at most one catalog fabric.
//
// Matching runs three tiers in order and stops at the first tier that finds
// anything: exact pattern name, containment of a pattern/manufacturer/colorway
// inside the question, then single-word overlap with the pattern name. Within
// a tier the earliest fabric in catalog order wins. There is no scoring.
package match

import (
	"strings"

	"github.com/tayloree/fabric-chat/internal/catalog"
)

// Tier identifies which strategy produced a match.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierContains
	TierWord
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierContains:
		return "contains"
	case TierWord:
		return "word"
	default:
		return "none"
	}
}

// Match is a resolved fabric and where it came from.
type Match struct {
	Fabric catalog.Fabric
	Index  int
	Tier   Tier
}

// Find returns the first fabric matching query, or false when no tier
// matches. A blank query never matches. Find only reads cat and is safe for
// concurrent use.
func Find(query string, cat *catalog.Catalog) (Match, bool) {
	q := normalize(query)
	if q == "" || cat.Len() == 0 {
		return Match{}, false
	}

	if i := firstIndex(cat, func(f catalog.Fabric) bool {
		return strings.ToLower(f.Pattern()) == q
	}); i >= 0 {
		return Match{Fabric: cat.At(i), Index: i, Tier: TierExact}, true
	}

	if i := firstIndex(cat, func(f catalog.Fabric) bool {
		return containedIn(q, f.Pattern()) || containedIn(q, f.Maker()) || containedIn(q, f.Color())
	}); i >= 0 {
		return Match{Fabric: cat.At(i), Index: i, Tier: TierContains}, true
	}

	words := strings.Fields(q)
	if i := firstIndex(cat, func(f catalog.Fabric) bool {
		pattern := strings.ToLower(f.Pattern())
		for _, w := range words {
			if strings.Contains(pattern, w) {
				return true
			}
		}
		return false
	}); i >= 0 {
		return Match{Fabric: cat.At(i), Index: i, Tier: TierWord}, true
	}

	return Match{}, false
}

// normalize trims and lower-cases a query the way Find compares it.
func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// containedIn reports whether a non-empty field appears inside q.
func containedIn(q, field string) bool {
	field = strings.ToLower(field)
	return field != "" && strings.Contains(q, field)
}

func firstIndex(cat *catalog.Catalog, fn func(catalog.Fabric) bool) int {
	for i := 0; i < cat.Len(); i++ {
		if fn(cat.At(i)) {
			return i
		}
	}
	return -1
}
