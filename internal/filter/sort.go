package filter

import (
	"sort"
	"strings"

	"github.com/tayloree/fabric-chat/internal/catalog"
)

// NormalizeSortMode maps user input to "", "name" or "manufacturer".
// Unknown values fall back to catalog order.
func NormalizeSortMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name", "pattern", "pattern-name":
		return "name"
	case "manufacturer", "maker", "brand":
		return "manufacturer"
	default:
		return ""
	}
}

// sortFabrics returns a sorted copy; ties keep catalog order.
func sortFabrics(items []catalog.Fabric, mode string) []catalog.Fabric {
	out := make([]catalog.Fabric, len(items))
	copy(out, items)

	key := func(f catalog.Fabric) string { return strings.ToLower(CleanText(f.Pattern())) }
	if mode == "manufacturer" {
		key = func(f catalog.Fabric) string { return strings.ToLower(CleanText(f.Maker())) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := key(out[i]), key(out[j])
		// Fabrics missing the sort key go last.
		if (left == "") != (right == "") {
			return right == ""
		}
		return left < right
	})
	return out
}
