package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/chat"
	"github.com/tayloree/fabric-chat/internal/display"
)

func strPtr(value string) *string { return &value }

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Fabric{
		{PatternName: strPtr("Tweed Multi"), Manufacturer: strPtr("Acme"), Colorway: strPtr("Blue")},
		{PatternName: strPtr("Sunset Stripe"), Manufacturer: strPtr("Bolt Co"), Colorway: strPtr("Orange")},
	})
}

func newTestChatModel() chatModel {
	return newChatModel(chatModelConfig{
		ctx:         context.Background(),
		loader:      catalog.NewLoader(catalog.Options{}),
		source:      "fabrics.json",
		presets:     chat.DefaultPresets,
		theme:       display.ThemeLight,
		sessionOpts: []chat.Option{chat.WithThinkingDelay(0)},
	})
}

func update(t *testing.T, m chatModel, msg tea.Msg) (chatModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(chatModel)
	require.True(t, ok)
	return model, cmd
}

func loadedChatModel(t *testing.T) chatModel {
	t.Helper()
	m := newTestChatModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, chatLoadedMsg{result: catalog.Result{Catalog: testCatalog()}})
	return m
}

func TestChatModel_StartsLoading(t *testing.T) {
	m := newTestChatModel()

	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading fabric dataset from fabrics.json")
}

func TestChatModel_LoadedShowsGreeting(t *testing.T) {
	m := loadedChatModel(t)

	assert.False(t, m.loading)
	require.Len(t, m.entries, 1)
	assert.Equal(t, chat.GreetingText, m.entries[0].Reply.Text)
	assert.Contains(t, m.View(), "Fabric Assistant")
	assert.Contains(t, m.View(), "2 fabrics")
}

func TestChatModel_LoadErrorDoesNotQuit(t *testing.T) {
	m := newTestChatModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, chatLoadedMsg{result: catalog.Result{Err: errors.New("boom")}})

	assert.False(t, m.loading)
	assert.True(t, m.input.Focused())
	require.Len(t, m.entries, 1)
	assert.Equal(t, chat.LoadFailureText, m.entries[0].Reply.Text)
	assert.Contains(t, m.View(), "dataset unavailable")

	m.input.SetValue("tweed")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, respondCmd(m.ctx, m.session, "tweed")())
	assert.Equal(t, chat.NoMatchText, m.entries[len(m.entries)-1].Reply.Text)
}

func TestChatModel_BlankInputIgnored(t *testing.T) {
	m := loadedChatModel(t)
	m.input.SetValue("   ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.pending)
	assert.Len(t, m.entries, 1)
}

func TestChatModel_SendAndReceiveCard(t *testing.T) {
	m := loadedChatModel(t)
	m.input.SetValue("What is the Tweed Multi fabric?")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, m.pending)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.entries, 2)
	assert.Equal(t, chat.SpeakerUser, m.entries[1].Speaker)
	assert.Contains(t, m.renderTranscript(), "typing")

	msg := respondCmd(m.ctx, m.session, "What is the Tweed Multi fabric?")()
	m, _ = update(t, m, msg)

	assert.False(t, m.pending)
	require.Len(t, m.entries, 3)
	reply := m.entries[2].Reply
	assert.True(t, reply.Matched())
	assert.Equal(t, "Tweed Multi", reply.Card.Title)
	assert.Equal(t, chat.Placeholder, reply.Card.FabricType)
	assert.Contains(t, m.renderTranscript(), "Here's what I found for Tweed Multi")
	assert.NotContains(t, m.renderTranscript(), "typing")
}

func TestChatModel_IgnoresEnterWhilePending(t *testing.T) {
	m := loadedChatModel(t)
	m.input.SetValue("tweed")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.input.SetValue("orange")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Len(t, m.entries, 2)
	assert.Equal(t, "orange", m.input.Value())
}

func TestChatModel_TabCyclesPresets(t *testing.T) {
	m := loadedChatModel(t)

	for i := 0; i <= len(chat.DefaultPresets); i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, chat.DefaultPresets[i%len(chat.DefaultPresets)], m.input.Value())
	}
}

func TestChatModel_ThemeToggle(t *testing.T) {
	m := loadedChatModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, display.ThemeDark, m.theme)
	assert.Contains(t, m.View(), "Light")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, display.ThemeLight, m.theme)
}

func TestChatModel_ThemeDoesNotChangeAnswers(t *testing.T) {
	light := loadedChatModel(t)
	dark := loadedChatModel(t)
	dark, _ = update(t, dark, tea.KeyMsg{Type: tea.KeyCtrlT})

	a := respondCmd(light.ctx, light.session, "anything orange?")().(chatReplyMsg)
	b := respondCmd(dark.ctx, dark.session, "anything orange?")().(chatReplyMsg)

	assert.Equal(t, a.reply, b.reply)
}

func TestChatModel_EscQuits(t *testing.T) {
	m := loadedChatModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestChatModel_CancelledReplyIsDropped(t *testing.T) {
	m := loadedChatModel(t)
	m.pending = true

	m, _ = update(t, m, chatReplyMsg{err: context.Canceled})

	assert.False(t, m.pending)
	assert.Len(t, m.entries, 1)
}

func TestChatModel_RespondHonoursThinkingDelay(t *testing.T) {
	session := chat.NewSession(
		catalog.Result{Catalog: testCatalog()},
		chat.WithThinkingDelay(20*time.Millisecond),
	)

	start := time.Now()
	msg := respondCmd(context.Background(), session, "tweed")().(chatReplyMsg)

	require.NoError(t, msg.err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWrapBubble(t *testing.T) {
	wrapped := wrapBubble("a fairly long line of text that needs wrapping", 12)

	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 12)
	}
}
