package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "physiq/internal/modules/analysis/dto"
	dashdto "physiq/internal/modules/dashboard/dto"
	progressdto "physiq/internal/modules/progress/dto"
	sessiondto "physiq/internal/modules/session/dto"
	apperrors "physiq/internal/platform/errors"
	"physiq/internal/ui/components"
	"physiq/internal/ui/theme"
	authview "physiq/internal/ui/views/auth"
	dashview "physiq/internal/ui/views/dashboard"
	detailview "physiq/internal/ui/views/detail"
	progressview "physiq/internal/ui/views/progress"
	uploadview "physiq/internal/ui/views/upload"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// What the root model needs from each module, and nothing more. The
// sub-views declare their own even narrower ports; the bridges at the
// bottom of this file connect the two.

type sessionPort interface {
	Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error)
	Register(ctx context.Context, email, password, name string) (sessiondto.SessionOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

type analysisPort interface {
	Get(ctx context.Context, id string) (analysisdto.AnalysisDetailOutput, error)
	Upload(ctx context.Context, path string) (analysisdto.AnalysisOutput, error)
}

type dashboardPort interface {
	Load(ctx context.Context) (dashdto.SnapshotOutput, error)
}

type progressPort interface {
	Overview(ctx context.Context) (progressdto.OverviewOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabProgress
	tabUpload
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Progress", "Upload"}

func (t tabID) next() tabID { return (t + 1) % tabCount }
func (t tabID) prev() tabID { return (t + tabCount - 1) % tabCount }

// ─── messages ────────────────────────────────────────────────────────────────

type statusLoadedMsg struct {
	out sessiondto.StatusOutput
	err error
}

type loggedOutMsg struct{ err error }

// ─── keys ────────────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Refresh key.Binding
	Back    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open analysis")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh data")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Refresh, k.Back},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Bubble Tea root. It decides who owns the screen at any
// moment (sign-in gate, pushed analysis detail, help overlay, palette,
// or one of the tabs) and routes messages accordingly. Business calls
// go through the port interfaces; pixels belong to the sub-views.
type Model struct {
	session sessionPort

	authView     authview.Model
	dashView     dashview.Model
	progressView progressview.Model
	uploadView   uploadview.Model
	detailView   detailview.Model

	authActive   bool
	detailOpen   bool
	activeTab    tabID
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	accountEmail string
	status       string
	width        int
	height       int
}

func NewModel(
	session sessionPort,
	analysis analysisPort,
	dashboard dashboardPort,
	progress progressPort,
) Model {
	return Model{
		session:      session,
		authView:     authview.New(authPortBridge{p: session}),
		dashView:     dashview.New(dashPortBridge{p: dashboard}),
		progressView: progressview.New(progressPortBridge{p: progress}),
		uploadView:   uploadview.New(uploadPortBridge{p: analysis}),
		detailView:   detailview.New(detailPortBridge{p: analysis}),
		authActive:   true,
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "checking session…",
	}
}

func (m Model) Init() tea.Cmd {
	// Dashboard and progress wait: their first load fires once the
	// stored session is confirmed, or once a sign-in succeeds.
	return tea.Batch(
		m.authView.Init(),
		m.uploadView.Init(),
		m.loadStatusCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// An open palette owns the input stream outright.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	// When any data load comes back because the server no longer
	// accepts the stored token, the whole app drops to the sign-in
	// gate, no matter which view asked.
	if err, ok := loadError(msg); ok && !m.authActive && sessionRejected(err) {
		return m.signOut("session expired — sign in again"), nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case statusLoadedMsg:
		if msg.err != nil {
			m.status = "session check: " + msg.err.Error()
		} else if msg.out.Authenticated {
			m.authActive = false
			m.accountEmail = msg.out.Email
			m.status = "ready"
			cmds = append(cmds, m.dashView.Refresh(), m.progressView.Refresh())
		} else {
			m.status = "ready"
		}

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout: " + msg.err.Error()
		} else {
			m = m.signOut("signed out")
		}

	case authview.DoneMsg:
		// Bubbles up from the auth form so the gate can drop and the
		// signed-in tabs can start loading.
		if msg.Err == nil {
			m.authActive = false
			m.accountEmail = msg.Out.Email
			m.activeTab = tabDashboard
			m.status = "signed in as " + msg.Out.Email
			cmds = append(cmds, m.dashView.Refresh(), m.progressView.Refresh())
		}
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case dashview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case progressview.LoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd

	case uploadview.DoneMsg:
		// Bubbles up from the upload form; a finished upload lands on
		// its analysis, mirroring the web flow.
		var cmd tea.Cmd
		m.uploadView, cmd = m.uploadView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil {
			m.detailOpen = true
			m.status = "analysis ready"
			cmds = append(cmds, m.detailView.Open(msg.Out.ID),
				m.dashView.Refresh(), m.progressView.Refresh())
		}
		return m, tea.Batch(cmds...)

	case detailview.LoadedMsg:
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		var keyCmd tea.Cmd
		var done bool
		m, keyCmd, done = m.handleKey(msg)
		cmds = append(cmds, keyCmd)
		if done {
			return m, tea.Batch(cmds...)
		}
	}

	// Whatever was not consumed above goes to whichever view owns the
	// screen: the gate first, then a pushed detail, then the active tab.
	var viewCmd tea.Cmd
	switch {
	case m.authActive:
		m.authView, viewCmd = m.authView.Update(msg)
	case m.detailOpen:
		m.detailView, viewCmd = m.detailView.Update(msg)
	default:
		switch m.activeTab {
		case tabDashboard:
			m.dashView, viewCmd = m.dashView.Update(msg)
		case tabProgress:
			m.progressView, viewCmd = m.progressView.Update(msg)
		case tabUpload:
			m.uploadView, viewCmd = m.uploadView.Update(msg)
		}
	}
	cmds = append(cmds, viewCmd)

	return m, tea.Batch(cmds...)
}

// handleKey applies the global key bindings for the current gate state.
// done=false means the key should still reach the owning view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	// Signed out, the form owns the keyboard; only the quit chord is
	// global.
	if m.authActive {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit, true
		}
		return m, nil, false
	}

	if m.showHelp {
		if s := msg.String(); s == "?" || s == "esc" {
			m.showHelp = false
		}
		return m, nil, true
	}

	if m.detailOpen {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit, true
		case "esc":
			m.detailOpen = false
			m.status = "ready"
			return m, nil, true
		}
		return m, nil, false
	}

	// Printable keys on the upload tab belong to the path input, so
	// only chords that cannot occur in a file path act globally.
	if m.activeTab == tabUpload {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit, true
		case "tab":
			m.activeTab = m.activeTab.next()
		case "shift+tab":
			m.activeTab = m.activeTab.prev()
		}
		return m, nil, false
	}

	// An open list filter wants free typing.
	if m.subViewFiltering() {
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "tab":
		m.activeTab = m.activeTab.next()
	case "shift+tab":
		m.activeTab = m.activeTab.prev()
	case "?":
		m.showHelp = !m.showHelp
	case ":":
		return m, m.palette.Open(), true
	case "r":
		if m.activeTab == tabDashboard {
			return m, m.dashView.Refresh(), false
		}
		if m.activeTab == tabProgress {
			return m, m.progressView.Refresh(), false
		}
	case "enter":
		if m.activeTab == tabDashboard {
			if id, ok := m.dashView.SelectedAnalysisID(); ok {
				m.detailOpen = true
				return m, m.detailView.Open(id), false
			}
		}
	}
	return m, nil, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.authActive {
		return m.authView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, m.contentView(contentH), statusBar)
}

func (m Model) contentView(height int) string {
	switch {
	case m.showHelp:
		return lipgloss.NewStyle().Width(m.width).Height(height).
			Render(m.help.View(m.keys))
	case m.detailOpen:
		return m.detailView.View()
	}
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabProgress:
		return m.progressView.View()
	case tabUpload:
		return m.uploadView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	cells := make([]string, 0, tabCount)
	for i, label := range tabLabels {
		style := theme.Muted
		if tabID(i) == m.activeTab {
			style = theme.Hot
		}
		cells = append(cells, style.Render(" "+label+" "))
	}
	bar := "physiq  " + strings.Join(cells, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.accountEmail != "" {
		left = theme.Hot.Render("● "+m.accountEmail) + "  " + left
	}
	right := theme.Muted.Render("? help · tab switch · : palette · q quit")
	pad := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", pad) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette commands ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "analysis:upload":
		if len(parts) < 2 {
			m.status = "usage: analysis:upload <path>"
			return m, nil
		}
		// Everything after the verb is the path; it may contain spaces.
		path := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.activeTab = tabUpload
		m.detailOpen = false
		return m, m.uploadView.StartUpload(path)

	case "analysis:show":
		if len(parts) < 2 {
			m.status = "usage: analysis:show <id>"
			return m, nil
		}
		m.detailOpen = true
		return m, m.detailView.Open(parts[1])

	case "data:refresh":
		m.status = "refreshing…"
		return m, tea.Batch(m.dashView.Refresh(), m.progressView.Refresh())

	case "session:logout":
		return m, m.logoutCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── session gate ────────────────────────────────────────────────────────────

// loadError extracts the error from any message that reports the result
// of a server data load. Auth form results are excluded: a failed
// sign-in is the form's own business.
func loadError(msg tea.Msg) (error, bool) {
	switch msg := msg.(type) {
	case dashview.LoadedMsg:
		return msg.Err, true
	case progressview.LoadedMsg:
		return msg.Err, true
	case uploadview.DoneMsg:
		return msg.Err, true
	case detailview.LoadedMsg:
		return msg.Err, true
	}
	return nil, false
}

// sessionRejected reports whether a load failed because the server no
// longer accepts the stored token.
func sessionRejected(err error) bool {
	return errors.Is(err, apperrors.ErrSessionExpired) ||
		errors.Is(err, apperrors.ErrUnauthenticated)
}

func (m Model) signOut(status string) Model {
	m.authActive = true
	m.detailOpen = false
	m.accountEmail = ""
	m.status = status
	return m
}

// subViewFiltering reports whether the active tab has a list filter
// open, which claims the printable keys.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabDashboard {
		return m.dashView.Filtering()
	}
	return false
}

// ─── sizing ──────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	// The auth view gets the whole terminal. Everything else lives
	// between the tab bar and the status bar.
	full := tea.WindowSizeMsg{Width: m.width, Height: m.height}
	m.authView, _ = m.authView.Update(full)

	inner := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(inner)
	m.progressView, _ = m.progressView.Update(inner)
	m.uploadView, _ = m.uploadView.Update(inner)
	m.detailView, _ = m.detailView.Update(inner)
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Status(context.Background())
		return statusLoadedMsg{out: out, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.session.Logout(context.Background())}
	}
}

// ─── bridges ─────────────────────────────────────────────────────────────────
// A bridge hands a sub-view exactly the slice of a port it consumes, so
// view packages never learn the wider port surface.

type authPortBridge struct{ p sessionPort }

func (b authPortBridge) Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error) {
	return b.p.Login(ctx, email, password)
}
func (b authPortBridge) Register(ctx context.Context, email, password, name string) (sessiondto.SessionOutput, error) {
	return b.p.Register(ctx, email, password, name)
}

type dashPortBridge struct{ p dashboardPort }

func (b dashPortBridge) Load(ctx context.Context) (dashdto.SnapshotOutput, error) {
	return b.p.Load(ctx)
}

type progressPortBridge struct{ p progressPort }

func (b progressPortBridge) Overview(ctx context.Context) (progressdto.OverviewOutput, error) {
	return b.p.Overview(ctx)
}

type uploadPortBridge struct{ p analysisPort }

func (b uploadPortBridge) Upload(ctx context.Context, path string) (analysisdto.AnalysisOutput, error) {
	return b.p.Upload(ctx, path)
}

type detailPortBridge struct{ p analysisPort }

func (b detailPortBridge) Get(ctx context.Context, id string) (analysisdto.AnalysisDetailOutput, error) {
	return b.p.Get(ctx, id)
}
