package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "physiq/internal/modules/progress/dto"
	"physiq/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProgressPort interface {
	Overview(ctx context.Context) (progressdto.OverviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Overview progressdto.OverviewOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     ProgressPort
	overview progressdto.OverviewOutput
	body     viewport.Model
	spinner  spinner.Model
	loading  bool
	errMsg   string
	width    int
	height   int
}

func New(port ProgressPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		body:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Refresh reloads stats and the trend from the server.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 2
		m.body.Height = m.height - 2
		m.body.SetContent(m.renderOverview())

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.overview = msg.Overview
		m.body.SetContent(m.renderOverview())

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
			m.spinner.View()+" Loading progress…")
	}
	if m.errMsg != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("progress: "+m.errMsg)+"\n\n"+theme.Muted.Render("r: retry"))
	}
	return m.body.View()
}

// ─── private ─────────────────────────────────────────────────────────────────

const trendBarWidth = 40

func (m Model) renderOverview() string {
	o := m.overview
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Progress") + "\n\n")
	sb.WriteString(theme.Muted.Render("analyses:    ") + fmt.Sprintf("%d", o.Stats.TotalAnalyses) + "\n")
	sb.WriteString(theme.Muted.Render("streak:      ") + fmt.Sprintf("%d days", o.Stats.CurrentStreak) + "\n")
	sb.WriteString(theme.Muted.Render("improvement: ") + fmt.Sprintf("%+.1f%%", o.Stats.ImprovementPct) + "\n\n")

	if len(o.Stats.MuscleDevelopment) > 0 {
		sb.WriteString(theme.Title.Render("Muscle development") + "\n\n")
		muscles := make([]string, 0, len(o.Stats.MuscleDevelopment))
		for muscle := range o.Stats.MuscleDevelopment {
			muscles = append(muscles, muscle)
		}
		sort.Strings(muscles)
		for _, muscle := range muscles {
			level := o.Stats.MuscleDevelopment[muscle]
			sb.WriteString(fmt.Sprintf("%-14s %s\n", muscle, renderLevel(level)))
		}
		sb.WriteString("\n")
	}

	if len(o.Trend) > 0 {
		sb.WriteString(theme.Title.Render("Score trend") + "\n\n")
		for _, point := range o.Trend {
			bar := scoreBar(point.Score)
			sb.WriteString(fmt.Sprintf("%s  %s %5.1f\n",
				theme.Muted.Render(point.Date.Format("Jan 02")), bar, point.Score))
		}
	} else {
		sb.WriteString(theme.Muted.Render("No analyses yet — upload a photo to start the trend."))
	}

	return sb.String()
}

func renderLevel(level string) string {
	bars := map[string]string{"strong": "███ ", "moderate": "██  "}
	bar, ok := bars[level]
	if !ok {
		bar = "█   "
	}
	return theme.LevelStyle(level).Render(bar + level)
}

func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * trendBarWidth)
	return theme.Good.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", trendBarWidth-filled))
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.port.Overview(context.Background())
		return LoadedMsg{Overview: overview, Err: err}
	}
}
