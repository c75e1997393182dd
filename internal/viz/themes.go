package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the braille canvas and the stats panel.
type Theme struct {
	Name    string
	Grains  lipgloss.Color
	Outline lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeSand = Theme{
		Name:    "sand",
		Grains:  lipgloss.Color("#e0c080"),
		Outline: lipgloss.Color("#ffd27f"),
		Accent:  lipgloss.Color("#ff9f43"),
		Muted:   lipgloss.Color("#776655"),
		Warning: lipgloss.Color("#ff4757"),
	}

	ThemeWater = Theme{
		Name:    "water",
		Grains:  lipgloss.Color("#6fa8dc"),
		Outline: lipgloss.Color("#4fc3f7"),
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Grains:  lipgloss.Color("#00cc00"),
		Outline: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{ThemeSand, ThemeWater, ThemeRetroGreen}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
