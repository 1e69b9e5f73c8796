package upload

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "physiq/internal/modules/analysis/dto"
	"physiq/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type UploadPort interface {
	Upload(ctx context.Context, path string) (analysisdto.AnalysisOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// DoneMsg reports a finished upload. On success the app model navigates
// straight to the new analysis.
type DoneMsg struct {
	Out analysisdto.AnalysisOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      UploadPort
	path      textinput.Model
	spinner   spinner.Model
	uploading bool
	errMsg    string
	width     int
	height    int
}

func New(port UploadPort) Model {
	ti := textinput.New()
	ti.Placeholder = "path to a body photo (jpg, png, …)"
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		path:    ti,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// StartUpload kicks off an upload for path without going through the
// text input, used by the command palette.
func (m *Model) StartUpload(path string) tea.Cmd {
	if m.uploading {
		return nil
	}
	m.uploading = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.uploadCmd(path))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DoneMsg:
		m.uploading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.errMsg = ""
			m.path.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		// A second enter while the request runs must not start another
		// upload; the service would refuse it anyway.
		if m.uploading {
			return m, nil
		}
		if msg.String() == "enter" {
			path := strings.TrimSpace(m.path.Value())
			if path == "" {
				m.errMsg = "enter a file path first"
				return m, nil
			}
			m.uploading = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.uploadCmd(path))
		}
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Upload a photo") + "\n\n")
	sb.WriteString(theme.Muted.Render("The file is checked locally before anything is sent:") + "\n")
	sb.WriteString(theme.Muted.Render("only image files are accepted.") + "\n\n")
	sb.WriteString(m.path.View() + "\n\n")

	switch {
	case m.uploading:
		sb.WriteString(m.spinner.View() + " analyzing…\n")
	case m.errMsg != "":
		sb.WriteString(theme.Bad.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("enter: upload"))

	card := theme.Pane.Width(min(m.width-4, 64)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// Uploading reports whether an upload request is in flight.
func (m Model) Uploading() bool { return m.uploading }

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Upload(context.Background(), path)
		return DoneMsg{Out: out, Err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
