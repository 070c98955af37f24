package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

const (
	minChatWidth = 40
	// header (2) + presets (1) + hints (1) + bordered input (3)
	chatChromeHeight = 7
	bubbleMaxWidth   = 64
)

type chatModelConfig struct {
	ctx         context.Context
	loader      *catalog.Loader
	source      string
	presets     []string
	theme       display.Theme
	sessionOpts []chat.Option
}

type chatLoadedMsg struct {
	result catalog.Result
}

type chatReplyMsg struct {
	reply chat.Reply
	err   error
}

type chatModel struct {
	ctx         context.Context
	source      string
	sessionOpts []chat.Option

	loading bool
	loadCmd tea.Cmd
	spinner spinner.Model

	session *chat.Session
	entries []chat.Entry
	pending bool

	presets     []string
	presetIndex int

	theme   display.Theme
	palette display.Palette

	input      textinput.Model
	transcript viewport.Model

	width, height int
}

func newChatModel(cfg chatModelConfig) chatModel {
	ctx := cfg.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "Ask about a pattern, manufacturer or colorway..."
	input.Prompt = "› "
	input.CharLimit = 500

	palette := display.PaletteFor(cfg.theme)
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = palette.Typing

	return chatModel{
		ctx:         ctx,
		source:      cfg.source,
		sessionOpts: cfg.sessionOpts,
		loading:     true,
		loadCmd:     loadCatalogCmd(ctx, cfg.loader, cfg.source),
		spinner:     spin,
		presets:     cfg.presets,
		theme:       cfg.theme,
		palette:     palette,
		input:       input,
		transcript:  viewport.New(0, 0),
	}
}

func loadCatalogCmd(ctx context.Context, loader *catalog.Loader, source string) tea.Cmd {
	return func() tea.Msg {
		return chatLoadedMsg{result: <-loader.LoadAsync(ctx, source)}
	}
}

func respondCmd(ctx context.Context, session *chat.Session, question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := session.Respond(ctx, question)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case chatLoadedMsg:
		// A failed load still opens the conversation; the greeting explains it.
		m.loading = false
		m.session = chat.NewSession(msg.result, m.sessionOpts...)
		m.entries = append(m.entries, chat.BotEntry(m.session.Greeting()))
		m.refreshTranscript()
		return m, m.input.Focus()

	case chatReplyMsg:
		m.pending = false
		switch {
		case errors.Is(msg.err, chat.ErrEmptyQuestion), errors.Is(msg.err, context.Canceled):
		case msg.err != nil:
			m.entries = append(m.entries, chat.BotEntry(chat.TextReply("Something went wrong: "+msg.err.Error())))
		default:
			m.entries = append(m.entries, chat.BotEntry(msg.reply))
		}
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.pending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			if m.pending {
				m.refreshTranscript()
			}
			return m, cmd
		}
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}
	if m.loading {
		if keyMsg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+t":
		m.setTheme(m.theme.Toggle())
		return m, nil
	case "tab":
		m.fillNextPreset()
		return m, nil
	case "enter":
		return m.submit()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input as a question. Blank input and input typed while
// an answer is pending are ignored.
func (m chatModel) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.pending || m.session == nil {
		return m, nil
	}

	m.input.Reset()
	m.entries = append(m.entries, chat.UserEntry(question))
	m.pending = true
	m.refreshTranscript()
	return m, tea.Batch(m.spinner.Tick, respondCmd(m.ctx, m.session, question))
}

func (m *chatModel) fillNextPreset() {
	if len(m.presets) == 0 {
		return
	}
	m.input.SetValue(m.presets[m.presetIndex])
	m.input.CursorEnd()
	m.presetIndex = (m.presetIndex + 1) % len(m.presets)
}

func (m *chatModel) setTheme(theme display.Theme) {
	m.theme = theme
	m.palette = display.PaletteFor(theme)
	m.spinner.Style = m.palette.Typing
	m.refreshTranscript()
}

func (m *chatModel) resize() {
	width := maxInt(minChatWidth, m.width)
	m.transcript.Width = width
	m.transcript.Height = maxInt(3, m.height-chatChromeHeight)
	m.input.Width = maxInt(10, width-6)
	m.refreshTranscript()
}

func (m *chatModel) refreshTranscript() {
	m.transcript.SetContent(m.renderTranscript())
	m.transcript.GotoBottom()
}

func (m chatModel) renderTranscript() string {
	width := maxInt(minChatWidth, m.width)
	bubbleWidth := minInt(bubbleMaxWidth, width-4)

	blocks := make([]string, 0, len(m.entries)+1)
	for _, entry := range m.entries {
		blocks = append(blocks, m.renderEntry(entry, width, bubbleWidth))
	}
	if m.pending {
		blocks = append(blocks, m.palette.Typing.Render(m.spinner.View()+" typing…"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m chatModel) renderEntry(entry chat.Entry, width, bubbleWidth int) string {
	if entry.Speaker == chat.SpeakerUser {
		bubble := m.palette.UserBubble.Render(wrapBubble(entry.Reply.Text, bubbleWidth))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	if !entry.Reply.Matched() {
		return m.palette.BotBubble.Render(wrapBubble(entry.Reply.Text, bubbleWidth))
	}

	card := entry.Reply.Card
	lines := []string{
		m.palette.CardTitle.Render(wrapBubble(card.Title, bubbleWidth-4)),
		fmt.Sprintf("%s %s", m.palette.CardLabel.Render("Manufacturer:"), card.Manufacturer),
		fmt.Sprintf("%s %s", m.palette.CardLabel.Render("Colorway:"), card.Colorway),
		fmt.Sprintf("%s %s", m.palette.CardLabel.Render("Fabric Type:"), card.FabricType),
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.palette.BotBubble.Render(wrapBubble(entry.Reply.Intro, bubbleWidth)),
		m.palette.Card.Render(strings.Join(lines, "\n")),
	)
}

// wrapBubble word-wraps text and hard-wraps words longer than width.
func wrapBubble(text string, width int) string {
	width = maxInt(8, width)
	return wrap.String(wordwrap.String(text, width), width)
}

func (m chatModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.width == 0 || m.height == 0 {
		return m.palette.Meta.Render("Loading interface...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.transcript.View(),
		m.footerView(),
		m.palette.Input.Width(maxInt(minChatWidth, m.width)-2).Render(m.input.View()),
	)
}

func (m chatModel) loadingView() string {
	lines := []string{
		m.palette.Header.Render("Fabric Assistant"),
		"",
		fmt.Sprintf("%s Loading fabric dataset from %s", m.spinner.View(), m.source),
		m.palette.Hint.Render("Tip: press q to cancel."),
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (m chatModel) headerView() string {
	status := "dataset unavailable"
	if m.session != nil && m.session.LoadErr() == nil {
		status = fmt.Sprintf("%s · %d fabrics", m.source, m.session.Catalog().Len())
	}

	title := m.palette.Header.Render("Fabric Assistant")
	toggle := m.palette.Meta.Render("ctrl+t " + m.theme.ToggleLabel())
	gap := maxInt(1, maxInt(minChatWidth, m.width)-lipgloss.Width(title)-lipgloss.Width(toggle)-2)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(title + strings.Repeat(" ", gap) + toggle + "\n" + m.palette.Meta.Render(status))
}

func (m chatModel) footerView() string {
	quick := make([]string, 0, len(m.presets))
	for i, p := range m.presets {
		quick = append(quick, fmt.Sprintf("%d) %s", i+1, p))
	}
	width := maxInt(minChatWidth, m.width) - 2
	presetLine := truncateLine("Quick: "+strings.Join(quick, "  "), width)
	hints := "enter send • tab quick question • pgup/pgdn scroll • ctrl+t theme • esc quit"

	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(m.palette.Meta.Render(presetLine) + "\n" + m.palette.Hint.Render(truncateLine(hints, width)))
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width < 2 {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
