package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beginnergain/server/client"
)

type View int

const (
	LoginView View = iota
	ProjectsView
)

// Model is the root bubbletea model switching between the login form and
// the project list.
type Model struct {
	currentView View
	login       *LoginModel
	projects    *ProjectsModel
	session     *client.Session
	width       int
	height      int

	userName  string
	userEmail string
}

func NewModel(session *client.Session, api *client.Client) Model {
	return Model{
		currentView: LoginView,
		login:       NewLoginModel(session),
		projects:    NewProjectsModel(api),
		session:     session,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		m.userName = msg.user.Name
		m.userEmail = msg.user.Email
		m.projects.SetUser(msg.user.ID)
		m.currentView = ProjectsView

		updatedLogin, _ := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		// Nudge the project list so it starts loading.
		updatedProjects, cmd := m.projects.Update(nil)
		m.projects = updatedProjects.(*ProjectsModel)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == ProjectsView {
				return m, tea.Quit
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case ProjectsView:
		updatedProjects, cmd := m.projects.Update(msg)
		m.projects = updatedProjects.(*ProjectsModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.currentView == ProjectsView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render(m.userName)
		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.userEmail + ")")
		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case ProjectsView:
		mainContent = m.projects.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
