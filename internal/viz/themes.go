package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bubblesort/internal/sorting"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color

	// Bar colors, one per element state.
	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
	Final     lipgloss.Color
}

// Available themes
var (
	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Bar:       lipgloss.Color("#00a8cc"),
		Comparing: lipgloss.Color("#ffcc00"),
		Swapping:  lipgloss.Color("#ff4444"),
		Sorted:    lipgloss.Color("#00ff88"),
		Final:     lipgloss.Color("#ffd700"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Bar:       lipgloss.Color("#00ffff"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#ff0000"),
		Sorted:    lipgloss.Color("#00ff00"),
		Final:     lipgloss.Color("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Bar:       lipgloss.Color("#00aa00"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#ff0000"),
		Sorted:    lipgloss.Color("#88ff88"),
		Final:     lipgloss.Color("#ffffff"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Bar:       lipgloss.Color("#cccccc"),
		Comparing: lipgloss.Color("#0088ff"),
		Swapping:  lipgloss.Color("#ffaa00"),
		Sorted:    lipgloss.Color("#00ff00"),
		Final:     lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Bar:       lipgloss.Color("#feca57"),
		Comparing: lipgloss.Color("#ff9ff3"),
		Swapping:  lipgloss.Color("#ff4757"),
		Sorted:    lipgloss.Color("#5fd068"),
		Final:     lipgloss.Color("#fff5f5"),
	}

	// All available themes
	Themes = []Theme{
		ThemeOcean,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// StateColor is the bar color for an element in state s.
func (t Theme) StateColor(s sorting.ElementState) lipgloss.Color {
	switch s {
	case sorting.Comparing:
		return t.Comparing
	case sorting.Swapping:
		return t.Swapping
	case sorting.Sorted:
		return t.Sorted
	case sorting.FinalHighlight:
		return t.Final
	default:
		return t.Bar
	}
}
