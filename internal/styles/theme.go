package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines a complete color scheme for the application
type Theme struct {
	Name string

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Background colors
	BgSurface  lipgloss.Color
	BgElevated lipgloss.Color
	BgSelected lipgloss.Color

	// Text colors
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border lipgloss.Color

	// Mode badges
	ModeNormal    lipgloss.Color
	ModeDeveloper lipgloss.Color
	ModeViewer    lipgloss.Color

	// Glamour style for assistant markdown
	Markdown string
}

// DarkTheme is the dark mode color scheme
var DarkTheme = Theme{
	Name: "dark",

	Primary:   lipgloss.Color("#818CF8"), // Indigo 400
	Secondary: lipgloss.Color("#22D3EE"), // Cyan 400
	Accent:    lipgloss.Color("#F472B6"), // Pink 400

	BgSurface:  lipgloss.Color("#141419"),
	BgElevated: lipgloss.Color("#1E1E2A"),
	BgSelected: lipgloss.Color("#5C5C7A"),

	TextPrimary:   lipgloss.Color("#F1F5F9"), // Slate 100
	TextSecondary: lipgloss.Color("#94A3B8"), // Slate 400
	TextMuted:     lipgloss.Color("#64748B"), // Slate 500
	TextInverse:   lipgloss.Color("#FFFFFF"),

	Success: lipgloss.Color("#34D399"), // Emerald 400
	Warning: lipgloss.Color("#FBBF24"), // Amber 400
	Error:   lipgloss.Color("#FB7185"), // Rose 400
	Info:    lipgloss.Color("#60A5FA"), // Blue 400

	Border: lipgloss.Color("#27272A"),

	ModeNormal:    lipgloss.Color("#81D4FA"),
	ModeDeveloper: lipgloss.Color("#CE93D8"),
	ModeViewer:    lipgloss.Color("#FFCC80"),

	Markdown: "dark",
}

// LightTheme is the light mode color scheme
var LightTheme = Theme{
	Name: "light",

	Primary:   lipgloss.Color("#4F46E5"), // Indigo 600
	Secondary: lipgloss.Color("#0891B2"), // Cyan 600
	Accent:    lipgloss.Color("#DB2777"), // Pink 600

	BgSurface:  lipgloss.Color("#FFFFFF"),
	BgElevated: lipgloss.Color("#F4F4F5"), // Zinc 100
	BgSelected: lipgloss.Color("#C7D2FE"), // Indigo 200

	TextPrimary:   lipgloss.Color("#18181B"), // Zinc 900
	TextSecondary: lipgloss.Color("#52525B"), // Zinc 600
	TextMuted:     lipgloss.Color("#A1A1AA"), // Zinc 400
	TextInverse:   lipgloss.Color("#FFFFFF"),

	Success: lipgloss.Color("#10B981"), // Emerald 500
	Warning: lipgloss.Color("#F59E0B"), // Amber 500
	Error:   lipgloss.Color("#EF4444"), // Red 500
	Info:    lipgloss.Color("#3B82F6"), // Blue 500

	Border: lipgloss.Color("#E4E4E7"), // Zinc 200

	ModeNormal:    lipgloss.Color("#0284C7"),
	ModeDeveloper: lipgloss.Color("#7C3AED"),
	ModeViewer:    lipgloss.Color("#D97706"),

	Markdown: "light",
}

// CurrentTheme holds the active theme
var CurrentTheme = LightTheme

// ThemeByName returns the theme for "dark"; anything else is light.
func ThemeByName(name string) Theme {
	if name == DarkTheme.Name {
		return DarkTheme
	}
	return LightTheme
}

// Apply makes the named theme current and rebuilds every style from it.
func Apply(name string) Theme {
	CurrentTheme = ThemeByName(name)
	build(CurrentTheme)
	return CurrentTheme
}

// RoleColors gives each known message role its badge color. Roles not listed
// use the theme's muted text color.
var RoleColors = map[string]lipgloss.Color{
	"user":      lipgloss.Color("#90CAF9"),
	"assistant": lipgloss.Color("#B39DDB"),
	"system":    lipgloss.Color("#FFCC80"),
	"tool":      lipgloss.Color("#80CBC4"),
	"function":  lipgloss.Color("#A5D6A7"),
}

// RoleColor returns the badge color for role.
func RoleColor(role string) lipgloss.Color {
	if c, ok := RoleColors[role]; ok {
		return c
	}
	return CurrentTheme.TextMuted
}
