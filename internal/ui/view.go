package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chatdeck/internal/chat"
	"chatdeck/internal/styles"
)

const genericWelcome = "Welcome to the AI Chatbot Platform! Select an agent with Ctrl+A to start a conversation."

func (m *Model) UpdateAgentSelectorContent() {
	agents := m.Ctrl.Agents()
	if len(agents) == 0 {
		text := "No active agents found"
		if m.Ctrl.AgentsLoading() {
			text = "Loading agents..."
		}
		m.AgentViewport.SetContent(styles.ModalItemStyle.Foreground(styles.HintColor).Render(text))
		return
	}

	current := int64(-1)
	if a := m.Ctrl.Session().SelectedAgent; a != nil {
		current = a.ID
	}

	items := make([]string, 0, len(agents))
	for i, agent := range agents {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(agent.Accent())).Render("●")
		name := dot + " " + agent.Label()
		if agent.ID == current {
			name += " (current)"
		}
		blurb := TruncateRunes(agent.Blurb(), styles.ContentWidth-6)

		style := styles.ModalItemStyle
		if i == m.AgentSelectedIdx {
			style = styles.ModalSelectedStyle
		}
		desc := lipgloss.NewStyle().Foreground(styles.HintColor).Render("  " + blurb)
		items = append(items, style.Render(name+"\n"+desc))
	}
	m.AgentViewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m *Model) RenderAgentSelector() string {
	title := styles.ModalTitleStyle.Render("Select Agent")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.AgentViewport.View())

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: select • Ctrl+R: refresh • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderHistorySelector() string {
	convs := m.Ctrl.Conversations()
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Conversations (%d) - Page %d/%d", len(convs), m.HistoryPage+1, m.historyPageCount()))

	var body string
	page := m.historyPageItems()
	switch {
	case len(page) == 0 && m.Ctrl.ConversationsLoading():
		body = styles.ModalItemStyle.Foreground(styles.HintColor).Render("Loading conversations...")
	case len(page) == 0:
		body = styles.ModalItemStyle.Foreground(styles.HintColor).Render("No conversations yet")
	default:
		items := make([]string, 0, len(page))
		for i, conv := range page {
			isSelected := i == m.HistorySelectedIdx
			cursor := "  "
			if isSelected {
				cursor = "> "
			}
			meta := fmt.Sprintf("%d msgs", conv.MessageCount)
			if rel := RelativeTime(conv.CreatedAt.Time); rel != "" {
				meta = rel + " • " + meta
			}
			availableWidth := styles.ContentWidth - 2 - len(cursor) - 1 - lipgloss.Width(meta)
			title := TruncateRunes(PromptPreview(conv.DisplayTitle()), availableWidth)

			itemContent := fmt.Sprintf("%s%s %s", cursor, title, lipgloss.NewStyle().Foreground(styles.HintColor).Render(meta))
			if isSelected {
				items = append(items, styles.ModalSelectedStyle.Render(itemContent))
			} else {
				items = append(items, styles.ModalItemStyle.Render(itemContent))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • ←/→: page • Enter: view • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

type shortcut struct {
	key  string
	desc string
}

// shortcuts lists the bindings usable in the current mode.
func (m *Model) shortcuts() []shortcut {
	vis := m.Ctrl.Visibility()
	list := []shortcut{{"Ctrl+C", "Quit"}}
	if vis.AgentList {
		list = append(list, shortcut{"Ctrl+A", "Select Agent"})
	}
	if vis.ConversationList {
		list = append(list, shortcut{"Ctrl+O", "Browse Conversations"})
	}
	if vis.ClearChat {
		list = append(list, shortcut{"Ctrl+N", "Clear Chat"})
	}
	if vis.DeveloperToggle {
		list = append(list, shortcut{"Ctrl+D", "Toggle Developer Mode"})
	}
	if vis.BackToChat {
		list = append(list, shortcut{"Ctrl+B", "Back to Chat"})
	}
	if !m.Ctrl.Session().ViewerMode {
		list = append(list, shortcut{"Ctrl+R", "Refresh Lists"})
	}
	list = append(list,
		shortcut{"Ctrl+T", "Toggle Theme"},
		shortcut{"Ctrl+S", "View Shortcuts (this menu)"},
	)
	if vis.Composer {
		list = append(list, shortcut{"Shift+Enter", "New Line (in input)"})
	}
	return list
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	var items []string
	for _, s := range m.shortcuts() {
		line := fmt.Sprintf("%s %s", styles.KeyStyle.Render(s.key), styles.DescStyle.Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	listContent := lipgloss.JoinVertical(lipgloss.Left, items...)
	content := lipgloss.JoinVertical(lipgloss.Left, title, listContent)

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderSecretPrompt() string {
	title := styles.ModalTitleStyle.Render("Enable Developer Mode")
	body := styles.ModalItemStyle.Render(m.SecretInput.View())
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: confirm • Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) modeBadge() string {
	t := styles.CurrentTheme
	switch m.Ctrl.Mode() {
	case chat.ModeViewer:
		return styles.ModeBadge("VIEWER", t.ModeViewer)
	case chat.ModeDeveloper:
		return styles.ModeBadge("DEV", t.ModeDeveloper)
	default:
		return styles.ModeBadge("CHAT", t.ModeNormal)
	}
}

// StatusLine renders the status text in the tone the controller set.
func (m *Model) StatusLine() string {
	st := m.Ctrl.Status()
	text := st.Text
	if m.Ctrl.Session().Pending {
		text = m.Spinner.View() + " " + text
	}
	switch st.Tone {
	case chat.ToneError:
		return styles.ErrorStyle.Render(text)
	case chat.ToneSuccess:
		return styles.SuccessStyle.Render(text)
	default:
		return styles.StatusStyle.Render(text)
	}
}

func (m *Model) RenderBottomBar() string {
	agentName := "no agent"
	if a := m.Ctrl.Session().SelectedAgent; a != nil {
		agentName = a.Label()
	}
	agent := lipgloss.NewStyle().
		Foreground(styles.CurrentTheme.Primary).
		Render(TruncateRunes(agentName, 25))

	conv := ""
	if id := m.Ctrl.Session().ActiveConversationID; id != 0 {
		conv = lipgloss.NewStyle().
			Foreground(styles.CurrentTheme.TextMuted).
			Render(fmt.Sprintf("#%d", id))
	}

	help := lipgloss.NewStyle().
		Foreground(styles.CurrentTheme.TextMuted).
		Render("Help: ^S")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, m.modeBadge(), "  ", agent, "  ", conv)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, m.StatusLine(), "  ", help)

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CurrentTheme.Border).
		Padding(0, 1).
		Render(bar)
}

// WelcomeText is shown while the transcript is empty.
func (m *Model) WelcomeText() string {
	if a := m.Ctrl.Session().SelectedAgent; a != nil {
		return fmt.Sprintf("Start chatting with %s!", a.Label())
	}
	return genericWelcome
}

func (m *Model) WelcomeScreen(width, height int) string {
	title := styles.WelcomeTitleStyle.Render("CHATDECK")
	subtitle := styles.WelcomeSubtitleStyle.Width(max(width-4, 10)).Align(lipgloss.Center).Render(m.WelcomeText())
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) UpdateViewport() {
	transcript := m.Ctrl.Transcript()
	pending := m.Ctrl.Session().Pending

	if len(transcript) == 0 && !pending {
		if m.Ctrl.Session().ViewerMode {
			m.Viewport.SetContent(styles.StatusStyle.Render("Loading conversation..."))
			return
		}
		m.Viewport.SetContent(m.WelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	agentName := m.Ctrl.Header().Title
	developer := m.Ctrl.Session().DeveloperMode
	renderer := m.markdownRenderer(max(m.Viewport.Width-4, 20))

	parts := make([]string, 0, len(transcript)+1)
	for _, msg := range transcript {
		parts = append(parts, FormatMessage(msg, agentName, developer, m.Viewport.Width, renderer))
	}
	if pending {
		label := styles.RoleBadge("assistant", RoleLabel("assistant", agentName, false))
		parts = append(parts, fmt.Sprintf("%s\n%s %s", label, m.Spinner.View(), chat.StatusThinking))
	}
	m.Viewport.SetContent(strings.Join(parts, "\n\n"))
	m.Viewport.GotoBottom()
}

func (m *Model) renderHeader() string {
	h := m.Ctrl.Header()
	if h.Title == "" {
		return styles.TitleStyle.Render("CHATDECK")
	}
	title := styles.TitleStyle.Render(h.Title)
	if h.Subtitle == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, styles.SubtitleStyle.Render(h.Subtitle))
}

func (m *Model) View() string {
	parts := []string{m.renderHeader(), "", m.Viewport.View(), ""}

	if m.Ctrl.Visibility().Composer {
		inputWidth := m.WindowWidth - 4
		box := styles.InputBoxStyle
		if !m.Ctrl.ComposerEnabled() {
			box = styles.DisabledInputBoxStyle
		}
		parts = append(parts, box.Width(inputWidth).Render(m.TextInput.View()))
	} else {
		parts = append(parts, styles.SubtitleStyle.Render("Read-only conversation • Ctrl+B: back to chat"))
	}

	chatContent := lipgloss.JoinVertical(lipgloss.Center, parts...)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, m.RenderBottomBar())

	var modal string
	switch m.Modal {
	case ModalAgents:
		modal = m.RenderAgentSelector()
	case ModalHistory:
		modal = m.RenderHistorySelector()
	case ModalShortcuts:
		modal = m.RenderShortcutsModal()
	case ModalSecret:
		modal = m.RenderSecretPrompt()
	default:
		return content
	}

	modal = styles.ModalStyle.Width(ModalWidth).Render(modal)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}
