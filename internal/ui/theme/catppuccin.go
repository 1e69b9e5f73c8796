// Package theme pins the TUI palette and the shared styles built on it.
// Colors are Catppuccin Mocha. Views render through the semantic styles
// below instead of picking raw colors, so the whole app shifts together
// if the palette ever changes.
package theme

import "github.com/charmbracelet/lipgloss"

// Mocha swatches.
const (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
)

var (
	// Pane frames card-like views such as the sign-in and upload forms.
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
)

// LevelStyle maps a muscle development level onto the palette: strong
// renders green, moderate peach, and anything else (weak included) red.
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "strong":
		return Good
	case "moderate":
		return Hot
	default:
		return Bad
	}
}
