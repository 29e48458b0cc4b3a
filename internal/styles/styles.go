package styles

import "github.com/charmbracelet/lipgloss"

var (
	ContentWidth = 54
)

var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	UserMsgStyle lipgloss.Style
	AiMsgStyle   lipgloss.Style
	RoleMsgStyle lipgloss.Style

	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	StatusStyle  lipgloss.Style

	InputBoxStyle         lipgloss.Style
	DisabledInputBoxStyle lipgloss.Style

	WelcomeTitleStyle    lipgloss.Style
	WelcomeSubtitleStyle lipgloss.Style

	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	ModalItemStyle     lipgloss.Style
	ModalSelectedStyle lipgloss.Style

	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style

	HintColor lipgloss.Color
)

func init() {
	build(CurrentTheme)
}

func build(t Theme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(t.TextSecondary).
		Italic(true)

	UserMsgStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		PaddingLeft(2).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(RoleColor("user"))

	AiMsgStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(RoleColor("assistant"))

	RoleMsgStyle = lipgloss.NewStyle().
		Foreground(t.TextSecondary).
		PaddingLeft(2).
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.TextMuted)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	StatusStyle = lipgloss.NewStyle().
		Foreground(t.TextSecondary)

	InputBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	DisabledInputBoxStyle = InputBoxStyle.
		BorderForeground(t.TextMuted).
		Foreground(t.TextMuted)

	WelcomeTitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	WelcomeSubtitleStyle = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Italic(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(ContentWidth).
		MarginBottom(1)

	ModalItemStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Width(ContentWidth).
		Foreground(t.TextPrimary)

	ModalSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Width(ContentWidth).
		Background(t.BgSelected).
		Foreground(t.TextPrimary)

	KeyStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true).
		Width(12)

	DescStyle = lipgloss.NewStyle().
		Foreground(t.TextSecondary)

	HintColor = t.TextMuted
}

// RoleBadge renders the label shown above a message by role.
func RoleBadge(role, label string) string {
	return lipgloss.NewStyle().
		Foreground(CurrentTheme.TextInverse).
		Background(RoleColor(role)).
		Bold(true).
		Padding(0, 1).
		MarginRight(1).
		Render(label)
}

// ModeBadge renders the bottom bar mode indicator.
func ModeBadge(label string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.TextInverse).
		Background(color).
		Padding(0, 1).
		Render(label)
}

// SetContentWidth resizes the modal content styles.
func SetContentWidth(w int) {
	ContentWidth = w
	build(CurrentTheme)
}
