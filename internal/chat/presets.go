package chat

import "strings"

// DefaultPresets are the quick-suggestion questions offered when none are
// configured.
var DefaultPresets = []string{
	"What is the Tweed Multi fabric?",
	"Do you have anything orange?",
	"Tell me about tweed fabrics",
}

// Presets returns the non-blank entries of custom, or DefaultPresets when
// there are none.
func Presets(custom []string) []string {
	out := make([]string, 0, len(custom))
	for _, p := range custom {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultPresets...)
	}
	return out
}
