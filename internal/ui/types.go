package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"chatdeck/internal/chat"
)

const (
	MaxChatWidth = 100

	HistoryPageSize = 10
	MaxInputHeight  = 6
)

var ModalWidth = 60

// JobDoneMsg carries a finished controller job back onto the event loop.
type JobDoneMsg struct {
	Name  string
	Apply func()
}

type Modal int

const (
	ModalNone Modal = iota
	ModalAgents
	ModalHistory
	ModalShortcuts
	ModalSecret
)

type Model struct {
	Ctrl   *chat.Controller
	Logger *slog.Logger

	Viewport     viewport.Model
	TextInput    textarea.Model
	SecretInput  textinput.Model
	Spinner      spinner.Model
	Renderer     *glamour.TermRenderer
	RendererKey  string
	WindowWidth  int
	WindowHeight int
	Location     string

	Modal              Modal
	AgentSelectedIdx   int
	AgentViewport      viewport.Model
	HistorySelectedIdx int
	HistoryPage        int

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}
