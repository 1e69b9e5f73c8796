package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "physiq/internal/modules/dashboard/dto"
	"physiq/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DashboardPort interface {
	Load(ctx context.Context) (dashdto.SnapshotOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries the composed dashboard snapshot. Err is the first
// failure of the three concurrent fetches; there is never a partial
// snapshot alongside it.
type LoadedMsg struct {
	Snapshot dashdto.SnapshotOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry dashdto.EntryOutput
}

func (i entryItem) Title() string {
	return i.entry.TakenAt.Format("Mon Jan 2 2006")
}

func (i entryItem) Description() string {
	return fmt.Sprintf("score %.1f  weak areas %d", i.entry.Score, i.entry.WeakAreas)
}

func (i entryItem) FilterValue() string {
	return i.entry.TakenAt.Format("2006-01-02")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     DashboardPort
	list     list.Model
	snapshot dashdto.SnapshotOutput
	spinner  spinner.Model
	loading  bool
	errMsg   string
	width    int
	height   int
}

func New(port DashboardPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Analyses"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Refresh reloads the snapshot from the server.
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
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.snapshot = msg.Snapshot
		items := make([]list.Item, len(msg.Snapshot.Entries))
		for i, entry := range msg.Snapshot.Entries {
			items[i] = entryItem{entry: entry}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	if m.errMsg != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("dashboard: "+m.errMsg)+"\n\n"+theme.Muted.Render("r: retry"))
	}

	listW := m.width * 5 / 10
	summaryW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	summaryPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(summaryW - 2).
		Height(m.height - 2).
		Padding(1).
		Render(m.renderSummary())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, summaryPane)
}

// SelectedAnalysisID returns the current selection's analysis ID, if any.
func (m Model) SelectedAnalysisID() (string, bool) {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 5 / 10
	m.list.SetSize(listW, m.height)
}

func (m Model) renderSummary() string {
	s := m.snapshot
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Welcome back, "+s.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("email:   ") + s.Email + "\n")
	sb.WriteString(theme.Muted.Render("joined:  ") + s.Joined.Format("Jan 2, 2006") + "\n\n")
	sb.WriteString(theme.Muted.Render("analyses:    ") + fmt.Sprintf("%d", s.TotalAnalyses) + "\n")
	sb.WriteString(theme.Muted.Render("streak:      ") + fmt.Sprintf("%d days", s.CurrentStreak) + "\n")
	sb.WriteString(theme.Muted.Render("improvement: ") + fmt.Sprintf("%+.1f%%", s.ImprovementPct) + "\n")
	if s.LatestScore > 0 {
		sb.WriteString(theme.Muted.Render("latest:      ") + theme.Hot.Render(fmt.Sprintf("%.1f", s.LatestScore)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open analysis  r: refresh"))
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.port.Load(context.Background())
		return LoadedMsg{Snapshot: snapshot, Err: err}
	}
}
