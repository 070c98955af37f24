package filter

import "strings"

var colorSynonyms = map[string][]string{
	"gray":   {"grey"},
	"multi":  {"multicolor", "multicolour", "multi-color", "multi-colour", "multicolored"},
	"navy":   {"navy blue", "dark blue"},
	"ivory":  {"cream", "off white", "off-white", "ecru"},
	"orange": {"rust", "tangerine", "burnt orange"},
	"brown":  {"chocolate", "tan", "camel"},
}

type colorMatcher struct {
	aliases []string
}

func newColorMatcher(wanted string) colorMatcher {
	return colorMatcher{aliases: colorAliasList(wanted)}
}

func colorAliasList(wanted string) []string {
	raw := normalizeColor(wanted)
	if raw == "" {
		return nil
	}
	group := resolveColorGroup(raw)

	out := make([]string, 0, 2+len(colorSynonyms[group]))
	addAlias := func(alias string) {
		alias = normalizeColor(alias)
		if alias == "" {
			return
		}
		for _, existing := range out {
			if existing == alias {
				return
			}
		}
		out = append(out, alias)
	}

	addAlias(raw)
	addAlias(group)
	for _, s := range colorSynonyms[group] {
		addAlias(s)
	}
	return out
}

func resolveColorGroup(norm string) string {
	if _, ok := colorSynonyms[norm]; ok {
		return norm
	}
	for key, synonyms := range colorSynonyms {
		for _, s := range synonyms {
			if normalizeColor(s) == norm {
				return key
			}
		}
	}
	return norm
}

// matches reports whether colorway mentions any alias.
func (m colorMatcher) matches(colorway string) bool {
	norm := normalizeColor(colorway)
	if norm == "" {
		return false
	}
	for _, alias := range m.aliases {
		if strings.Contains(norm, alias) {
			return true
		}
	}
	return false
}

func normalizeColor(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
