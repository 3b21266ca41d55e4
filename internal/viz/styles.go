package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	Header     lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Code       lipgloss.Style
	ActiveCode lipgloss.Style
	Graph      lipgloss.Style
	Status     lipgloss.Style
	Notice     lipgloss.Style
	Subtle     lipgloss.Style
	Panel      lipgloss.Style
	Stats      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted).
			Width(12),
		Value: lipgloss.NewStyle().
			Foreground(t.Text),
		Code: lipgloss.NewStyle().
			Foreground(t.Muted),
		ActiveCode: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Graph: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Padding(1, 0),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Notice: lipgloss.NewStyle().
			Italic(true).
			Foreground(t.Accent),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(44),
	}
}

// ProgressBar renders a bar filled to percent (0..1).
func ProgressBar(percent float64, width int, fill lipgloss.Color) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat("░", width-filled)
}

// Separator is a horizontal rule with a centered diamond.
func Separator(width int, s lipgloss.Style) string {
	if width < 8 {
		return s.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Render(left + " ◆ " + right)
}
