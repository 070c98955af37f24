package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the light/dark presentation mode. It never affects data.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(raw string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q (use light or dark)", raw)
	}
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the label for the control that switches away from t.
func (t Theme) ToggleLabel() string {
	if t == ThemeDark {
		return "☀ Light"
	}
	return "☾ Dark"
}

// Palette holds the chat screen styles for one theme.
type Palette struct {
	Header     lipgloss.Style
	Meta       lipgloss.Style
	Hint       lipgloss.Style
	BotBubble  lipgloss.Style
	UserBubble lipgloss.Style
	CardTitle  lipgloss.Style
	CardLabel  lipgloss.Style
	Card       lipgloss.Style
	Typing     lipgloss.Style
	Input      lipgloss.Style
}

// PaletteFor returns the chat styles for t.
func PaletteFor(t Theme) Palette {
	accent, text, muted, botBg, userBg, border := lipgloss.Color("25"), lipgloss.Color("235"),
		lipgloss.Color("243"), lipgloss.Color("254"), lipgloss.Color("153"), lipgloss.Color("245")
	if t == ThemeDark {
		accent, text, muted, botBg, userBg, border = lipgloss.Color("86"), lipgloss.Color("252"),
			lipgloss.Color("245"), lipgloss.Color("237"), lipgloss.Color("24"), lipgloss.Color("241")
	}

	bubble := lipgloss.NewStyle().Foreground(text).Padding(0, 1)
	return Palette{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Meta:       lipgloss.NewStyle().Foreground(muted),
		Hint:       lipgloss.NewStyle().Foreground(muted).Faint(true),
		BotBubble:  bubble.Background(botBg),
		UserBubble: bubble.Background(userBg),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		CardLabel:  lipgloss.NewStyle().Foreground(muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(text).
			Padding(0, 1),
		Typing: lipgloss.NewStyle().Foreground(accent),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}
