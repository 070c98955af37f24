package filter

import (
	"html"
	"strings"

	"github.com/tayloree/fabric-chat/internal/catalog"
)

// Options holds all filter criteria.
type Options struct {
	Manufacturer string
	Colorway     string
	FabricType   string
	Query        string
	Sort         string
	Limit        int
}

// Apply filters fabrics according to the given options. It never changes
// which fabric the question resolver would pick; it only narrows listings.
func Apply(items []catalog.Fabric, opts Options) []catalog.Fabric {
	result := items

	if opts.Manufacturer != "" {
		maker := strings.ToLower(strings.TrimSpace(opts.Manufacturer))
		result = where(result, func(f catalog.Fabric) bool {
			return strings.Contains(strings.ToLower(CleanText(f.Maker())), maker)
		})
	}

	if opts.Colorway != "" {
		matcher := newColorMatcher(opts.Colorway)
		result = where(result, func(f catalog.Fabric) bool {
			return matcher.matches(CleanText(f.Color()))
		})
	}

	if opts.FabricType != "" {
		kind := strings.ToLower(strings.TrimSpace(opts.FabricType))
		result = where(result, func(f catalog.Fabric) bool {
			return strings.Contains(strings.ToLower(CleanText(f.Type())), kind)
		})
	}

	if opts.Query != "" {
		q := strings.ToLower(strings.TrimSpace(opts.Query))
		result = where(result, func(f catalog.Fabric) bool {
			for _, field := range []string{f.Pattern(), f.Maker(), f.Color(), f.Type()} {
				if strings.Contains(strings.ToLower(CleanText(field)), q) {
					return true
				}
			}
			return false
		})
	}

	if mode := NormalizeSortMode(opts.Sort); mode != "" {
		result = sortFabrics(result, mode)
	}

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}

	return result
}

// Manufacturers returns a map of manufacturer name to fabric count. Fabrics
// without a manufacturer are not counted.
func Manufacturers(items []catalog.Fabric) map[string]int {
	makers := make(map[string]int)
	for _, item := range items {
		if maker := CleanText(item.Maker()); maker != "" {
			makers[maker]++
		}
	}
	return makers
}

// CleanText unescapes HTML entities and normalizes whitespace.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func where(items []catalog.Fabric, fn func(catalog.Fabric) bool) []catalog.Fabric {
	var result []catalog.Fabric
	for _, item := range items {
		if fn(item) {
			result = append(result, item)
		}
	}
	return result
}
