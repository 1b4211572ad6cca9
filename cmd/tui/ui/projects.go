package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/beginnergain/server/client"
)

type projectsLoadedMsg struct {
	projects []client.Project
}

type projectsErrorMsg struct {
	err error
}

// ProjectsModel lists the logged-in user's projects in creation order.
type ProjectsModel struct {
	projects []client.Project
	cursor   int
	loading  bool
	loaded   bool
	err      error
	api      *client.Client
	userID   uuid.UUID
}

func NewProjectsModel(api *client.Client) *ProjectsModel {
	return &ProjectsModel{
		projects: []client.Project{},
		api:      api,
	}
}

func (m *ProjectsModel) Init() tea.Cmd {
	return nil
}

// SetUser fixes whose projects the list shows and forces a reload.
func (m *ProjectsModel) SetUser(userID uuid.UUID) {
	m.userID = userID
	m.loaded = false
}

func listProjectsCmd(api *client.Client, userID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		projects, err := api.ProjectsByUser(ctx, userID)
		if err != nil {
			return projectsErrorMsg{err: err}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = 0
		}
		return m, nil

	case projectsErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listProjectsCmd(m.api, m.userID)
			}
		}
	}

	if !m.loaded && !m.loading && m.userID != uuid.Nil {
		m.loading = true
		return m, listProjectsCmd(m.api, m.userID)
	}

	return m, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func (m *ProjectsModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("YOUR PROJECTS")
	b.WriteString(centered(lipgloss.NewStyle().MarginTop(2).MarginBottom(2).Render(header)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(centered(InfoStyle.Render("Loading projects...")))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(centered(ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	case len(m.projects) == 0:
		b.WriteString(centered(InfoStyle.Render("No projects yet.")))
		b.WriteString("\n")
	default:
		for i, project := range m.projects {
			borderColor := Muted
			if i == m.cursor {
				borderColor = Accent
			}
			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(borderColor).
				Padding(1, 2).
				Width(70).
				MarginBottom(1)

			nameLine := SuccessStyle.Render(project.Name)
			descLine := lipgloss.NewStyle().Foreground(Text).Render(truncate(project.Description, 60))
			metaLine := InfoStyle.Render("Created " + project.CreatedAt.Format("2006-01-02"))
			if project.HasDocument {
				metaLine += lipgloss.NewStyle().Foreground(Secondary).Render("  •  has document")
			}

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, nameLine, descLine, metaLine))
			b.WriteString(centered(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  r refresh  •  ctrl+c quit")
	b.WriteString(centered(help))

	return BoxStyle.Width(76).Render(b.String())
}
