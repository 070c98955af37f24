package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/filter"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta
	introStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// FabricJSON is the JSON output shape for a catalog fabric.
type FabricJSON struct {
	PatternName  string `json:"patternName"`
	Manufacturer string `json:"manufacturer"`
	Colorway     string `json:"colorway"`
	FabricType   string `json:"fabricType"`
}

// CardJSON is the JSON output shape for a formatted fabric card.
type CardJSON struct {
	Title        string `json:"title"`
	Manufacturer string `json:"manufacturer"`
	Colorway     string `json:"colorway"`
	FabricType   string `json:"fabricType"`
}

// ReplyJSON is the JSON output shape for an answer.
type ReplyJSON struct {
	Question string    `json:"question"`
	Matched  bool      `json:"matched"`
	Tier     string    `json:"tier"`
	Intro    string    `json:"intro,omitempty"`
	Text     string    `json:"text,omitempty"`
	Fabric   *CardJSON `json:"fabric,omitempty"`
}

// TextRenderer writes conversation entries as styled terminal text.
type TextRenderer struct {
	W io.Writer
}

// Render implements chat.Renderer.
func (r TextRenderer) Render(e chat.Entry) error {
	if e.Speaker == chat.SpeakerUser {
		_, err := fmt.Fprintf(r.W, "%s %s\n", userStyle.Render("you:"), e.Reply.Text)
		return err
	}
	PrintReply(r.W, e.Reply)
	return nil
}

// PrintReply renders a bot reply: plain text, or an intro line plus a card.
func PrintReply(w io.Writer, reply chat.Reply) {
	if !reply.Matched() {
		fmt.Fprintf(w, "%s\n\n", reply.Text)
		return
	}

	fmt.Fprintf(w, "%s\n", introStyle.Render(reply.Intro))
	fmt.Fprintf(w, "%s\n\n", cardStyle.Render(CardText(reply.Card)))
}

// CardText lays out a card as a title line followed by the labelled fields.
func CardText(card chat.Card) string {
	lines := []string{
		titleStyle.Render(card.Title),
		fmt.Sprintf("%s %s", labelStyle.Render("Manufacturer:"), card.Manufacturer),
		fmt.Sprintf("%s %s", labelStyle.Render("Colorway:"), card.Colorway),
		fmt.Sprintf("%s %s", labelStyle.Render("Fabric Type:"), card.FabricType),
	}
	return strings.Join(lines, "\n")
}

// PrintReplyJSON renders an answer as JSON.
func PrintReplyJSON(w io.Writer, question string, reply chat.Reply) error {
	return json.NewEncoder(w).Encode(toReplyJSON(question, reply))
}

// PrintFabrics renders a catalog listing to the writer.
func PrintFabrics(w io.Writer, fabrics []catalog.Fabric, total int) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Fabric Catalog"),
		cyanStyle.Render(fmt.Sprintf("%d of %d fabrics", len(fabrics), total)),
	)

	for _, f := range fabrics {
		printFabric(w, f)
		fmt.Fprintln(w)
	}
}

// PrintFabricsJSON renders fabrics as JSON.
func PrintFabricsJSON(w io.Writer, fabrics []catalog.Fabric) error {
	out := make([]FabricJSON, 0, len(fabrics))
	for _, f := range fabrics {
		out = append(out, toFabricJSON(f))
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintManufacturers renders manufacturers and their fabric counts, most
// fabrics first.
func PrintManufacturers(w io.Writer, makers map[string]int) {
	type makerCount struct {
		Name  string
		Count int
	}
	sorted := make([]makerCount, 0, len(makers))
	for k, v := range makers {
		sorted = append(sorted, makerCount{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})

	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Manufacturers in the catalog:"))
	for _, m := range sorted {
		noun := "fabrics"
		if m.Count == 1 {
			noun = "fabric"
		}
		fmt.Fprintf(w, "  %s: %d %s\n", cyanStyle.Render(m.Name), m.Count, noun)
	}
	fmt.Fprintln(w)
}

// PrintManufacturersJSON renders manufacturers as JSON.
func PrintManufacturersJSON(w io.Writer, makers map[string]int) error {
	return json.NewEncoder(w).Encode(makers)
}

// PrintPresets renders the quick-suggestion questions, numbered from 1.
func PrintPresets(w io.Writer, presets []string) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Quick questions:"))
	for i, p := range presets {
		fmt.Fprintf(w, "  %s %s\n", cyanStyle.Render(fmt.Sprintf("%d.", i+1)), p)
	}
	fmt.Fprintln(w)
}

// PrintPresetsJSON renders the quick-suggestion questions as JSON.
func PrintPresetsJSON(w io.Writer, presets []string) error {
	if presets == nil {
		presets = []string{}
	}
	return json.NewEncoder(w).Encode(presets)
}

// PrintCatalogContext prints a dim line showing which dataset was loaded.
func PrintCatalogContext(w io.Writer, source string, count int) {
	fmt.Fprintf(w, "%s\n\n",
		dimStyle.Render(fmt.Sprintf("Using dataset: %s — %d fabrics", source, count)),
	)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

func printFabric(w io.Writer, f catalog.Fabric) {
	title := filter.CleanText(f.Pattern())
	if title == "" {
		title = chat.UnknownPattern
	}
	fmt.Fprintf(w, "  %s\n", titleStyle.Render(title))

	var meta []string
	if maker := filter.CleanText(f.Maker()); maker != "" {
		meta = append(meta, maker)
	}
	if color := filter.CleanText(f.Color()); color != "" {
		meta = append(meta, color)
	}
	if kind := filter.CleanText(f.Type()); kind != "" {
		meta = append(meta, kind)
	}
	if len(meta) > 0 {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(strings.Join(meta, " | ")))
	}
}

func toFabricJSON(f catalog.Fabric) FabricJSON {
	return FabricJSON{
		PatternName:  filter.CleanText(f.Pattern()),
		Manufacturer: filter.CleanText(f.Maker()),
		Colorway:     filter.CleanText(f.Color()),
		FabricType:   filter.CleanText(f.Type()),
	}
}

func toReplyJSON(question string, reply chat.Reply) ReplyJSON {
	out := ReplyJSON{
		Question: question,
		Matched:  reply.Matched(),
		Tier:     reply.Tier.String(),
	}
	if !reply.Matched() {
		out.Text = reply.Text
		return out
	}
	out.Intro = reply.Intro
	out.Fabric = &CardJSON{
		Title:        reply.Card.Title,
		Manufacturer: reply.Card.Manufacturer,
		Colorway:     reply.Card.Colorway,
		FabricType:   reply.Card.FabricType,
	}
	return out
}
