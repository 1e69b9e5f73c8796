// Package components holds small reusable TUI widgets.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"physiq/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the palette closes without a command.
type PaletteCancelMsg struct{}

const (
	maxSuggestions  = 5
	fallbackOverlay = 64
)

var (
	overlayStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Known commands, shown as completions. Must stay in sync with
// executePalette in app/model.go.
var paletteHints = []string{
	"analysis:upload <path>",
	"analysis:show <id>",
	"data:refresh",
	"session:logout",
}

// Palette is the colon-command overlay backed by bubbles/textinput.
// It owns no command semantics: it collects a line and hands it to the
// root model via PaletteSubmitMsg.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with a cleared input and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if suggestions := p.suggestions(); len(suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range suggestions {
			sb.WriteString(suggestionStyle.Render("  "+s) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = fallbackOverlay
	}
	return overlayStyle.Width(w - 2).Render(sb.String())
}

func (p Palette) suggestions() []string {
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	matching := make([]string, 0, maxSuggestions)
	for _, hint := range paletteHints {
		if prefix != "" && !strings.HasPrefix(hint, prefix) {
			continue
		}
		matching = append(matching, hint)
		if len(matching) == maxSuggestions {
			break
		}
	}
	return matching
}
