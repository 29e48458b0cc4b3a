package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatdeck/internal/chat"
	"chatdeck/internal/styles"
)

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.Logger = l }
}

// InitialModel wires a Model to ctrl. The session starts at location when
// the program calls Init.
func InitialModel(ctrl *chat.Controller, location string, opts ...Option) Model {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = MaxInputHeight
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	si := textinput.New()
	si.Placeholder = "Developer password"
	si.EchoMode = textinput.EchoPassword
	si.EchoCharacter = '•'
	si.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		Ctrl:          ctrl,
		Logger:        slog.New(slog.DiscardHandler),
		Viewport:      viewport.New(60, 15),
		AgentViewport: viewport.New(ModalWidth-4, 15),
		TextInput:     ti,
		SecretInput:   si,
		Spinner:       sp,
		Location:      location,
		tick:          tea.Tick,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.applyTheme()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
		m.start(),
	)
}

func (m *Model) start() tea.Cmd {
	m.Ctrl.Start(m.Location)
	m.sync()
	return m.flushJobs()
}

func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// applyTheme restyles the widgets from the controller's theme.
func (m *Model) applyTheme() {
	t := styles.Apply(m.Ctrl.Theme())
	prompt := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	placeholder := lipgloss.NewStyle().Foreground(t.TextMuted)

	m.TextInput.FocusedStyle.Prompt = prompt
	m.TextInput.BlurredStyle.Prompt = prompt.Foreground(t.TextMuted)
	m.TextInput.FocusedStyle.Placeholder = placeholder
	m.TextInput.BlurredStyle.Placeholder = placeholder
	m.SecretInput.PromptStyle = prompt
	m.SecretInput.PlaceholderStyle = placeholder
	m.Spinner.Style = lipgloss.NewStyle().Foreground(t.Primary)

	m.Renderer = nil
	m.RendererKey = ""
}
