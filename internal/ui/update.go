package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"chatdeck/internal/chat"
	"chatdeck/internal/styles"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var spCmd tea.Cmd
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.Ctrl.Session().Pending {
			m.UpdateViewport()
		}
		return m, spCmd

	case JobDoneMsg:
		if msg.Apply != nil {
			msg.Apply()
		}
		m.sync()
		return m, m.flushJobs()

	case tea.KeyMsg:
		switch m.Modal {
		case ModalAgents:
			return m.updateAgentSelector(msg)
		case ModalHistory:
			return m.updateHistorySelector(msg)
		case ModalShortcuts:
			switch msg.String() {
			case "ctrl+c":
				return m.quit()
			case "esc", "enter", "?", "ctrl+s":
				m.Modal = ModalNone
			}
			return m, nil
		case ModalSecret:
			return m.updateSecretPrompt(msg)
		}

		if isNewlineShortcut(msg) {
			if m.Ctrl.ComposerEnabled() {
				m.TextInput.InsertString("\n")
				m.updateInputLayout()
			}
			return m, nil
		}

		vis := m.Ctrl.Visibility()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()

		case tea.KeyCtrlN:
			m.report("clear chat", m.Ctrl.ClearChat())
			return m.after()

		case tea.KeyCtrlA:
			if !vis.AgentList {
				return m, nil
			}
			m.Modal = ModalAgents
			m.AgentSelectedIdx = m.currentAgentIndex()
			m.UpdateAgentSelectorContent()
			m.SyncAgentViewportScroll()
			return m, nil

		case tea.KeyCtrlO:
			if !vis.ConversationList {
				return m, nil
			}
			m.Modal = ModalHistory
			m.HistoryPage = 0
			m.HistorySelectedIdx = 0
			return m, nil

		case tea.KeyCtrlS:
			m.Modal = ModalShortcuts
			return m, nil

		case tea.KeyCtrlD:
			if !vis.DeveloperToggle {
				return m, nil
			}
			if m.Ctrl.NeedsSecret() {
				m.Modal = ModalSecret
				m.SecretInput.Reset()
				m.TextInput.Blur()
				return m, m.SecretInput.Focus()
			}
			m.report("toggle developer mode", m.Ctrl.ToggleDeveloper(""))
			return m.after()

		case tea.KeyCtrlT:
			m.Ctrl.ToggleTheme()
			m.applyTheme()
			return m.after()

		case tea.KeyCtrlB:
			m.report("back to chat", m.Ctrl.BackToChat())
			return m.after()

		case tea.KeyCtrlR:
			if vis.AgentList {
				m.report("refresh agents", m.Ctrl.RefreshAgents())
			}
			if !m.Ctrl.Session().ViewerMode {
				m.report("refresh conversations", m.Ctrl.RefreshConversations())
			}
			return m.after()

		case tea.KeyPgUp, tea.KeyPgDown:
			m.Viewport, vpCmd = m.Viewport.Update(msg)
			return m, vpCmd

		case tea.KeyEnter:
			if !vis.Composer || m.Ctrl.Session().Pending {
				return m, nil
			}
			err := m.Ctrl.Send(m.TextInput.Value())
			if err == nil {
				m.TextInput.Reset()
			}
			m.report("send", err)
			return m.after()
		}

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > 60 {
			ModalWidth = 60
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}
		styles.SetContentWidth(ModalWidth - 6)

		m.AgentViewport.Width = styles.ContentWidth
		m.AgentViewport.Height = msg.Height - 15
		if m.AgentViewport.Height > 20 {
			m.AgentViewport.Height = 20
		}
		if m.AgentViewport.Height < 5 {
			m.AgentViewport.Height = 5
		}

		m.Viewport.Width = m.chatWidth() - 2
		m.updateInputLayout()
		m.UpdateViewport()
		return m, nil
	}

	if !m.Ctrl.ComposerEnabled() {
		m.Viewport, vpCmd = m.Viewport.Update(msg)
		return m, vpCmd
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Terminal background color replies and cursor reports can leak into the input
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *Model) updateAgentSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	agents := m.Ctrl.Agents()
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "ctrl+a":
		m.Modal = ModalNone
		return m, nil
	case "ctrl+r":
		m.report("refresh agents", m.Ctrl.RefreshAgents())
		return m.after()
	case "up", "k":
		if len(agents) == 0 {
			return m, nil
		}
		m.AgentSelectedIdx--
		if m.AgentSelectedIdx < 0 {
			m.AgentSelectedIdx = len(agents) - 1
		}
	case "down", "j":
		if len(agents) == 0 {
			return m, nil
		}
		m.AgentSelectedIdx++
		if m.AgentSelectedIdx >= len(agents) {
			m.AgentSelectedIdx = 0
		}
	case "enter":
		if m.AgentSelectedIdx < 0 || m.AgentSelectedIdx >= len(agents) {
			return m, nil
		}
		m.report("select agent", m.Ctrl.SelectAgent(agents[m.AgentSelectedIdx]))
		m.Modal = ModalNone
		m.TextInput.Reset()
		return m.after()
	}
	m.UpdateAgentSelectorContent()
	m.SyncAgentViewportScroll()
	return m, nil
}

func (m *Model) updateHistorySelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.historyPageItems()
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "ctrl+o":
		m.Modal = ModalNone
		return m, nil
	case "ctrl+r":
		m.report("refresh conversations", m.Ctrl.RefreshConversations())
		return m.after()
	case "up", "k":
		if len(page) == 0 {
			return m, nil
		}
		m.HistorySelectedIdx--
		if m.HistorySelectedIdx < 0 {
			m.HistorySelectedIdx = len(page) - 1
		}
	case "down", "j":
		if len(page) == 0 {
			return m, nil
		}
		m.HistorySelectedIdx++
		if m.HistorySelectedIdx >= len(page) {
			m.HistorySelectedIdx = 0
		}
	case "left", "h":
		if m.HistoryPage > 0 {
			m.HistoryPage--
			m.HistorySelectedIdx = 0
		}
	case "right", "l":
		if m.HistoryPage < m.historyPageCount()-1 {
			m.HistoryPage++
			m.HistorySelectedIdx = 0
		}
	case "enter":
		if m.HistorySelectedIdx < 0 || m.HistorySelectedIdx >= len(page) {
			return m, nil
		}
		id := page[m.HistorySelectedIdx].ID
		m.Modal = ModalNone
		m.report("view conversation", m.Ctrl.ViewConversation(id))
		return m.after()
	}
	return m, nil
}

func (m *Model) updateSecretPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		m.closeSecretPrompt()
		return m.after()
	case tea.KeyEnter:
		secret := m.SecretInput.Value()
		m.closeSecretPrompt()
		m.report("toggle developer mode", m.Ctrl.ToggleDeveloper(secret))
		return m.after()
	}
	var cmd tea.Cmd
	m.SecretInput, cmd = m.SecretInput.Update(msg)
	return m, cmd
}

func (m *Model) closeSecretPrompt() {
	m.Modal = ModalNone
	m.SecretInput.Reset()
	m.SecretInput.Blur()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Ctrl.Close()
	return m, tea.Quit
}

// after syncs the widgets with the controller and runs whatever it queued.
func (m *Model) after() (tea.Model, tea.Cmd) {
	m.sync()
	return m, m.flushJobs()
}

// report logs handler errors. The controller has already told the user
// about anything they need to see.
func (m *Model) report(action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrSendInFlight):
		m.Logger.Debug("ignored", "action", action, "error", err)
	default:
		m.Logger.Info("handler rejected", "action", action, "error", err)
	}
}

func (m *Model) sync() {
	if m.Ctrl.Theme() != styles.CurrentTheme.Name {
		m.applyTheme()
	}
	if m.Ctrl.ComposerEnabled() && m.Modal != ModalSecret {
		m.TextInput.Focus()
	} else {
		m.TextInput.Blur()
	}
	m.updateInputLayout()
	m.UpdateViewport()
}

func (m *Model) flushJobs() tea.Cmd {
	jobs := m.Ctrl.TakeJobs()
	if len(jobs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, job := range jobs {
		cmds = append(cmds, m.jobCmd(job))
	}
	return tea.Batch(cmds...)
}

// jobCmd runs job as a command. Timer jobs fire after their delay.
func (m *Model) jobCmd(job chat.Job) tea.Cmd {
	run := func() tea.Msg {
		return JobDoneMsg{Name: job.Name, Apply: job.Run()}
	}
	if job.Delay > 0 {
		return m.tick(job.Delay, func(time.Time) tea.Msg { return run() })
	}
	return run
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

func (m *Model) chatWidth() int {
	w := m.WindowWidth - 2
	if w > MaxChatWidth {
		w = MaxChatWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > MaxInputHeight {
		lineCount = MaxInputHeight
	}

	m.TextInput.MaxHeight = MaxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	reserved := 6
	if m.Ctrl.Visibility().Composer {
		reserved += m.TextInput.Height() + 2
	}
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}
