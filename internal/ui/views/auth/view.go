package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "physiq/internal/modules/session/dto"
	"physiq/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error)
	Register(ctx context.Context, email, password, name string) (sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// DoneMsg reports a finished sign-in or sign-up attempt. The app model
// watches it to drop the gate once a session exists.
type DoneMsg struct {
	Out sessiondto.SessionOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeSignIn mode = iota
	modeSignUp
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
)

type Model struct {
	port       SessionPort
	mode       mode
	inputs     [3]textinput.Model
	focus      int
	spinner    spinner.Model
	submitting bool
	errMsg     string
	width      int
	height     int
}

func New(port SessionPort) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		inputs:  [3]textinput.Model{email, password, name},
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+r":
			m.toggleMode()
			return m, nil
		case "enter":
			if m.focus < m.lastField() {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	if m.mode == modeSignIn {
		sb.WriteString(theme.Title.Render("Sign in") + "\n\n")
	} else {
		sb.WriteString(theme.Title.Render("Create account") + "\n\n")
	}

	sb.WriteString(m.inputs[fieldEmail].View() + "\n")
	sb.WriteString(m.inputs[fieldPassword].View() + "\n")
	if m.mode == modeSignUp {
		sb.WriteString(m.inputs[fieldName].View() + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.submitting:
		sb.WriteString(m.spinner.View() + " signing in…\n")
	case m.errMsg != "":
		sb.WriteString(theme.Bad.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n")
	if m.mode == modeSignIn {
		sb.WriteString(theme.Muted.Render("enter: sign in  ctrl+r: create account  q: quit"))
	} else {
		sb.WriteString(theme.Muted.Render("enter: create account  ctrl+r: sign in  q: quit"))
	}

	card := theme.Pane.Width(48).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) toggleMode() {
	if m.mode == modeSignIn {
		m.mode = modeSignUp
	} else {
		m.mode = modeSignIn
	}
	m.errMsg = ""
	m.setFocus(fieldEmail)
}

func (m Model) lastField() int {
	if m.mode == modeSignUp {
		return fieldName
	}
	return fieldPassword
}

func (m *Model) setFocus(target int) {
	last := m.lastField()
	if target > last {
		target = fieldEmail
	}
	if target < fieldEmail {
		target = last
	}
	m.focus = target
	for i := range m.inputs {
		if i == target {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	signUp := m.mode == modeSignUp

	m.submitting = true
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		if signUp {
			out, err := m.port.Register(context.Background(), email, password, name)
			return DoneMsg{Out: out, Err: err}
		}
		out, err := m.port.Login(context.Background(), email, password)
		return DoneMsg{Out: out, Err: err}
	})
}
