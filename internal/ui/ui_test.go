package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatdeck/internal/chat"
	"chatdeck/internal/models"
	"chatdeck/internal/styles"
)

type stubBackend struct {
	details map[int64]*models.ConversationDetail
	sent    []models.ChatRequest
}

func (s *stubBackend) ListAgents(context.Context) ([]models.Agent, error) {
	return []models.Agent{{ID: 1, DisplayName: "Sage", Description: "Wise"}, {ID: 2, DisplayName: "Scout"}}, nil
}

func (s *stubBackend) ListConversations(context.Context) ([]models.ConversationSummary, error) {
	return []models.ConversationSummary{{ID: 42, Title: "Greetings", MessageCount: 3}}, nil
}

func (s *stubBackend) GetConversation(_ context.Context, id int64) (*models.ConversationDetail, error) {
	if d, ok := s.details[id]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func (s *stubBackend) SendChat(_ context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	s.sent = append(s.sent, req)
	return &models.ChatResponse{Response: "hello there", ConversationID: 42}, nil
}

type memPrefs struct {
	theme     string
	developer bool
}

func (p *memPrefs) Theme() (string, error)             { return p.theme, nil }
func (p *memPrefs) SetTheme(theme string) error         { p.theme = theme; return nil }
func (p *memPrefs) DeveloperMode() (bool, error)       { return p.developer, nil }
func (p *memPrefs) SetDeveloperMode(enabled bool) error { p.developer = enabled; return nil }

type harness struct {
	t       *testing.T
	m       *Model
	backend *stubBackend
	prefs   *memPrefs
	delays  []time.Duration
}

func newHarness(t *testing.T, location string, prefs *memPrefs) *harness {
	t.Helper()
	backend := &stubBackend{details: map[int64]*models.ConversationDetail{
		42: {ID: 42, AgentName: "Sage", Messages: []models.Message{
			{Role: models.RoleSystem, Content: "be wise"},
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleAssistant, Content: "hello"},
		}},
	}}
	ctrl := chat.New(backend, prefs, chat.WithGate(chat.SecretGate{Secret: "mellon"}))
	m := InitialModel(ctrl, location)
	h := &harness{t: t, m: &m, backend: backend, prefs: prefs}
	// Timers are recorded instead of scheduled.
	m.tick = func(d time.Duration, _ func(time.Time) tea.Msg) tea.Cmd {
		h.delays = append(h.delays, d)
		return nil
	}
	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.settle(h.m.start())
	return h
}

// settle runs cmd and everything it leads to until only timers remain.
func (h *harness) settle(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(h.t, steps, 200, "commands did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case JobDoneMsg:
			_, follow := h.m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func (h *harness) key(k tea.KeyType) {
	h.t.Helper()
	_, cmd := h.m.Update(tea.KeyMsg{Type: k})
	h.settle(cmd)
}

func (h *harness) selectFirstAgent() {
	h.t.Helper()
	h.key(tea.KeyCtrlA)
	require.Equal(h.t, ModalAgents, h.m.Modal)
	h.key(tea.KeyEnter)
}

func TestWelcomeText(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})
	assert.Equal(t, genericWelcome, h.m.WelcomeText())

	h.selectFirstAgent()
	assert.Equal(t, ModalNone, h.m.Modal)
	assert.Equal(t, "Start chatting with Sage!", h.m.WelcomeText())
	assert.Contains(t, h.m.View(), "Start chatting with Sage!")
	assert.True(t, h.m.TextInput.Focused())
}

func TestSendThroughComposer(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})
	h.selectFirstAgent()

	h.m.TextInput.SetValue("  hello  ")
	h.key(tea.KeyEnter)

	require.Len(t, h.backend.sent, 1)
	assert.Equal(t, "hello", h.backend.sent[0].Messages[0].Content)
	assert.Empty(t, h.m.TextInput.Value())
	assert.Len(t, h.m.Ctrl.Transcript(), 2)
	assert.Equal(t, int64(42), h.m.Ctrl.Session().ActiveConversationID)

	view := h.m.View()
	assert.Contains(t, view, "YOU")
	assert.Contains(t, view, "there")
	assert.Contains(t, view, "Tokens used: N/A")
}

func TestEnterWithoutAgentWarns(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})

	h.key(tea.KeyEnter)

	assert.Empty(t, h.backend.sent)
	assert.Equal(t, chat.ToneError, h.m.Ctrl.Status().Tone)
	assert.Contains(t, h.m.View(), "Please select an agent first")
	assert.Contains(t, h.delays, chat.ErrorDisplayTime)
}

func TestViewerModeHidesControls(t *testing.T) {
	h := newHarness(t, "/conversations/42", &memPrefs{})

	assert.Equal(t, chat.ModeViewer, h.m.Ctrl.Mode())
	view := h.m.View()
	assert.Contains(t, view, "Read-only conversation")
	assert.Contains(t, view, "be wise", "viewer shows every role")
	assert.Contains(t, view, "VIEWER")

	h.key(tea.KeyCtrlA)
	assert.Equal(t, ModalNone, h.m.Modal)
	h.key(tea.KeyCtrlO)
	assert.Equal(t, ModalNone, h.m.Modal)
	h.key(tea.KeyCtrlD)
	assert.Equal(t, ModalNone, h.m.Modal)

	h.key(tea.KeyCtrlB)
	assert.Equal(t, chat.ModeNormal, h.m.Ctrl.Mode())
	assert.NotContains(t, h.m.View(), "Read-only conversation")
}

func TestDeveloperPromptAndHistory(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})

	h.key(tea.KeyCtrlO)
	assert.Equal(t, ModalNone, h.m.Modal, "conversation list needs developer mode")

	_, _ = h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, ModalSecret, h.m.Modal)
	h.m.SecretInput.SetValue("mellon")
	h.key(tea.KeyEnter)

	assert.Equal(t, ModalNone, h.m.Modal)
	assert.True(t, h.m.Ctrl.Session().DeveloperMode)
	assert.True(t, h.prefs.developer)
	assert.Empty(t, h.m.SecretInput.Value())

	h.key(tea.KeyCtrlO)
	require.Equal(t, ModalHistory, h.m.Modal)
	assert.Contains(t, h.m.View(), "Greetings")

	h.key(tea.KeyEnter)
	assert.Equal(t, ModalNone, h.m.Modal)
	assert.Equal(t, chat.ModeViewer, h.m.Ctrl.Mode())
	assert.Equal(t, "/conversations/42", h.m.Ctrl.Location())
}

func TestCtrlHStaysBackspace(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{developer: true})
	h.selectFirstAgent()

	_, _ = h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	_, _ = h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})

	assert.Equal(t, ModalNone, h.m.Modal)
	assert.Equal(t, "a", h.m.TextInput.Value())
}

func TestDeveloperPromptWrongSecret(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})

	_, _ = h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	h.m.SecretInput.SetValue("nope")
	h.key(tea.KeyEnter)

	assert.Equal(t, ModalNone, h.m.Modal)
	assert.False(t, h.m.Ctrl.Session().DeveloperMode)
	assert.False(t, h.prefs.developer)
	assert.Equal(t, chat.Status{Text: "Incorrect password", Tone: chat.ToneError}, h.m.Ctrl.Status())
}

func TestDeveloperToggleOffSkipsPrompt(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{developer: true})

	h.key(tea.KeyCtrlD)

	assert.Equal(t, ModalNone, h.m.Modal)
	assert.False(t, h.m.Ctrl.Session().DeveloperMode)
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})
	require.Equal(t, "light", styles.CurrentTheme.Name)

	h.key(tea.KeyCtrlT)
	assert.Equal(t, "dark", styles.CurrentTheme.Name)
	assert.Equal(t, "dark", h.prefs.theme)

	h.key(tea.KeyCtrlT)
	assert.Equal(t, "light", styles.CurrentTheme.Name)
}

func TestShortcutsFollowMode(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})
	keys := func() []string {
		var out []string
		for _, s := range h.m.shortcuts() {
			out = append(out, s.key)
		}
		return out
	}
	assert.Contains(t, keys(), "Ctrl+A")
	assert.NotContains(t, keys(), "Ctrl+O")
	assert.NotContains(t, keys(), "Ctrl+B")

	h = newHarness(t, "/conversations/42", &memPrefs{})
	assert.Equal(t, []string{"Ctrl+C", "Ctrl+B", "Ctrl+T", "Ctrl+S"}, keys())
}

func TestShortcutsModal(t *testing.T) {
	h := newHarness(t, "/", &memPrefs{})

	h.key(tea.KeyCtrlS)
	require.Equal(t, ModalShortcuts, h.m.Modal)
	assert.Contains(t, h.m.View(), "Keyboard Shortcuts")

	h.key(tea.KeyEsc)
	assert.Equal(t, ModalNone, h.m.Modal)
}
