package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beginnergain/server/client"
)

type loginSuccessMsg struct {
	user client.User
}

type loginRejectedMsg struct {
	emailNotExist bool
	passwordFail  bool
}

type loginErrorMsg struct {
	err error
}

// LoginModel is the credentials form. It renders the outcome flags of the
// session's last attempt: unknown email and wrong password are separate
// messages, never both at once.
type LoginModel struct {
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	emailNotExist bool
	passwordFail  bool
	err           error
	session       *client.Session
}

func NewLoginModel(session *client.Session) *LoginModel {
	return &LoginModel{
		focusedInput: 0,
		session:      session,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func loginCmd(session *client.Session, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := session.Login(ctx, email, password); err != nil {
			return loginErrorMsg{err: err}
		}

		if user := session.User(); user != nil {
			return loginSuccessMsg{user: *user}
		}

		return loginRejectedMsg{
			emailNotExist: session.EmailNotExist(),
			passwordFail:  session.PasswordFail(),
		}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSuccessMsg:
		m.loading = false
		m.err = nil
		m.emailNotExist = false
		m.passwordFail = false
		return m, nil

	case loginRejectedMsg:
		m.loading = false
		m.err = nil
		m.emailNotExist = msg.emailNotExist
		m.passwordFail = msg.passwordFail
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if !m.session.CanSubmit(m.emailInput, m.passwordInput) {
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.emailNotExist = false
			m.passwordFail = false
			return m, loginCmd(m.session, m.emailInput, m.passwordInput)
		case "backspace":
			if m.focusedInput == 0 && len(m.emailInput) > 0 {
				m.emailInput = m.emailInput[:len(m.emailInput)-1]
			} else if m.focusedInput == 1 && len(m.passwordInput) > 0 {
				m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
			}
		case "ctrl+l":
			m.emailInput = ""
			m.passwordInput = ""
			m.err = nil
			m.emailNotExist = false
			m.passwordFail = false
		default:
			if len(msg.String()) == 1 {
				if m.focusedInput == 0 {
					m.emailInput += msg.String()
				} else {
					m.passwordInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := TitleStyle.Render("SIGN IN")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	emailLabel := LabelStyle.Width(15).Render("Email:")
	emailStyle := InputStyle
	if m.focusedInput == 0 {
		emailStyle = FocusedInputStyle
	}
	emailField := lipgloss.JoinHorizontal(lipgloss.Left, emailLabel, emailStyle.Width(50).Render(m.emailInput))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(emailField))
	b.WriteString("\n\n")

	passwordLabel := LabelStyle.Width(15).Render("Password:")
	passwordStyle := InputStyle
	if m.focusedInput == 1 {
		passwordStyle = FocusedInputStyle
	}
	masked := strings.Repeat("•", len(m.passwordInput))
	passwordField := lipgloss.JoinHorizontal(lipgloss.Left, passwordLabel, passwordStyle.Width(50).Render(masked))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(passwordField))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(centered(InfoStyle.Render("Signing in...")))
	case m.emailNotExist:
		b.WriteString(centered(ErrorStyle.Render("No account exists for that email")))
	case m.passwordFail:
		b.WriteString(centered(ErrorStyle.Render("Wrong password")))
	case m.err != nil:
		b.WriteString(centered(ErrorStyle.Render(m.err.Error())))
	}
	b.WriteString("\n\n")

	help := InfoStyle.Render("tab switch  •  enter sign in  •  ctrl+l clear  •  ctrl+c quit")
	b.WriteString(centered(help))

	return BoxStyle.Width(76).Render(b.String())
}

func centered(s string) string {
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(s)
}
