package detail

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "physiq/internal/modules/analysis/dto"
	"physiq/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AnalysisPort interface {
	Get(ctx context.Context, id string) (analysisdto.AnalysisDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Detail analysisdto.AnalysisDetailOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders one analysis fullscreen. The app model pushes it on top
// of the tab layout and pops it on esc.
type Model struct {
	port    AnalysisPort
	detail  analysisdto.AnalysisDetailOutput
	body    viewport.Model
	spinner spinner.Model
	loading bool
	errMsg  string
	width   int
	height  int
}

func New(port AnalysisPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, body: vp, spinner: sp}
}

// Open starts loading the analysis with the given id.
func (m *Model) Open(id string) tea.Cmd {
	m.loading = true
	m.errMsg = ""
	m.detail = analysisdto.AnalysisDetailOutput{}
	return tea.Batch(m.spinner.Tick, m.loadCmd(id))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 2
		m.body.Height = m.height - 2
		m.body.SetContent(m.renderDetail())

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.detail = msg.Detail
		m.body.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.body, vCmd = m.body.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading analysis…")
	}
	if m.errMsg != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("analysis: "+m.errMsg)+"\n\n"+theme.Muted.Render("esc: back"))
	}
	return m.body.View()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("No analysis loaded")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Analysis "+d.TakenAt.Format("Jan 2, 2006 15:04")) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:    ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("score: ") + theme.Hot.Render(fmt.Sprintf("%.1f", d.ProgressScore)) + "\n\n")

	if len(d.MuscleGroups) > 0 {
		sb.WriteString(theme.Title.Render("Muscle groups") + "\n")
		muscles := make([]string, 0, len(d.MuscleGroups))
		for muscle := range d.MuscleGroups {
			muscles = append(muscles, muscle)
		}
		sort.Strings(muscles)
		for _, muscle := range muscles {
			sb.WriteString(fmt.Sprintf("  %-14s %s\n", muscle, levelLabel(d.MuscleGroups[muscle])))
		}
		sb.WriteString("\n")
	}

	if len(d.WeakAreas) > 0 {
		sb.WriteString(theme.Title.Render("Weak areas") + "\n")
		for _, area := range d.WeakAreas {
			sb.WriteString("  " + theme.Bad.Render("▾ ") + area + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Recommendations) > 0 {
		sb.WriteString(theme.Title.Render("Recommendations") + "\n")
		for i, rec := range d.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
		sb.WriteString("\n")
	}

	if d.OverallAssessment != "" {
		sb.WriteString(theme.Title.Render("Assessment") + "\n")
		sb.WriteString("  " + d.OverallAssessment + "\n\n")
	}

	if d.ImageBase64 != "" {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("photo attached (%d KiB base64)", len(d.ImageBase64)/1024)) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("esc: back"))
	return sb.String()
}

func levelLabel(level string) string {
	return theme.LevelStyle(level).Render(level)
}

func (m Model) loadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return LoadedMsg{Detail: detail, Err: err}
	}
}
