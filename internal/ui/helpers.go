package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"chatdeck/internal/models"
	"chatdeck/internal/styles"
)

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

func PromptPreview(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.Join(strings.Fields(s), " ")
	const maxRunes = 500
	r := []rune(s)
	if len(r) > maxRunes {
		return string(r[:maxRunes])
	}
	return s
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	}
	if d < 24*time.Hour {
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", hrs)
	}
	days := int(d.Hours() / 24)
	if days < 14 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}

// RoleLabel is the badge text for role. Developer mode shows the raw role
// so unusual roles are identifiable.
func RoleLabel(role models.Role, agentName string, developer bool) string {
	if developer {
		if role == "" {
			return "UNKNOWN"
		}
		return strings.ToUpper(string(role))
	}
	switch role {
	case models.RoleUser:
		return "YOU"
	case models.RoleAssistant:
		if agentName != "" {
			return strings.ToUpper(agentName)
		}
		return "ASSISTANT"
	case models.RoleSystem:
		return "SYSTEM"
	case models.RoleTool:
		return "TOOL"
	case models.RoleFunction:
		return "FUNCTION"
	default:
		return "MESSAGE"
	}
}

// FormatMessage renders one transcript entry. Assistant content goes through
// renderer when one is available.
func FormatMessage(msg models.Message, agentName string, developer bool, width int, renderer *glamour.TermRenderer) string {
	label := styles.RoleBadge(string(msg.Role), RoleLabel(msg.Role, agentName, developer))

	switch msg.Role {
	case models.RoleUser:
		body := styles.UserMsgStyle.Width(max(width-4, 10)).Render(msg.Content)
		return fmt.Sprintf("%s\n%s", label, body)
	case models.RoleAssistant:
		content := msg.Content
		if renderer != nil {
			if rendered, err := renderer.Render(msg.Content); err == nil {
				content = strings.TrimSpace(rendered)
			}
		}
		return fmt.Sprintf("%s\n%s", label, styles.AiMsgStyle.Render(content))
	default:
		body := styles.RoleMsgStyle.Width(max(width-4, 10)).Render(msg.Content)
		return fmt.Sprintf("%s\n%s", label, body)
	}
}

func (m *Model) currentAgentIndex() int {
	s := m.Ctrl.Session()
	if s.SelectedAgent == nil {
		return 0
	}
	for i, a := range m.Ctrl.Agents() {
		if a.ID == s.SelectedAgent.ID {
			return i
		}
	}
	return 0
}

// SyncAgentViewportScroll keeps the highlighted agent inside the modal
// viewport. Each agent takes two lines: name and description.
func (m *Model) SyncAgentViewportScroll() {
	const itemHeight = 2

	top := m.AgentSelectedIdx * itemHeight
	bottom := top + itemHeight
	if bottom > m.AgentViewport.YOffset+m.AgentViewport.Height {
		m.AgentViewport.SetYOffset(bottom - m.AgentViewport.Height)
	}
	if top < m.AgentViewport.YOffset {
		m.AgentViewport.SetYOffset(top)
	}
}

func (m *Model) historyPageCount() int {
	n := len(m.Ctrl.Conversations())
	pages := (n + HistoryPageSize - 1) / HistoryPageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (m *Model) historyPageItems() []models.ConversationSummary {
	convs := m.Ctrl.Conversations()
	start := m.HistoryPage * HistoryPageSize
	if start >= len(convs) {
		return nil
	}
	end := start + HistoryPageSize
	if end > len(convs) {
		end = len(convs)
	}
	return convs[start:end]
}

// markdownRenderer returns a glamour renderer for the current theme and
// width, building one only when either changed.
func (m *Model) markdownRenderer(width int) *glamour.TermRenderer {
	key := fmt.Sprintf("%s/%d", styles.CurrentTheme.Markdown, width)
	if m.Renderer != nil && m.RendererKey == key {
		return m.Renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(styles.CurrentTheme.Markdown),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.Logger.Warn("markdown renderer unavailable", "error", err)
		return nil
	}
	m.Renderer = r
	m.RendererKey = key
	return r
}
