package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/azpanel/internal/core"
	"github.com/inovacc/azpanel/internal/giturl"
	"github.com/inovacc/azpanel/internal/model"
)

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	copiedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Margin(1, 0, 0, 0)
)

// row is one visible line of the hierarchy: a project header or, for
// expanded projects, one of its repositories.
type row struct {
	project model.Project
	repo    *model.Repository
}

type refreshedMsg struct{}

type feedbackExpiredMsg struct{}

// PanelModel is the interactive organization browser.
type PanelModel struct {
	panel *core.Panel

	search  textinput.Model
	spin    spinner.Model
	rows    []row
	cursor  int
	width   int
	height  int
	loading bool
}

// NewPanelModel builds the browse view over a hydrated panel controller.
func NewPanelModel(panel *core.Panel) PanelModel {
	search := textinput.New()
	search.Placeholder = "filter projects and repositories"
	search.Prompt = "/ "
	search.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := PanelModel{
		panel:   panel,
		search:  search,
		spin:    spin,
		loading: true,
	}

	return m
}

func (m PanelModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, refreshCmd(m.panel))
}

// refreshCmd runs the hierarchy fetch off the UI loop, the same way the
// panel's suspension points are modeled: state mutation only happens when
// the message comes back.
func refreshCmd(panel *core.Panel) tea.Cmd {
	return func() tea.Msg {
		_ = panel.Refresh(context.Background())

		return refreshedMsg{}
	}
}

// feedbackExpiryCmd repaints once the controller's copy feedback timer has
// fired; the controller owns the actual expiry.
func feedbackExpiryCmd() tea.Cmd {
	return tea.Tick(core.DefaultFeedbackDuration+50*time.Millisecond, func(time.Time) tea.Msg {
		return feedbackExpiredMsg{}
	})
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case refreshedMsg:
		m.loading = false
		m.rebuildRows()

		return m, nil

	case feedbackExpiredMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd

		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearching(msg)
		}

		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m PanelModel) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "enter":
		m.search.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)
	m.panel.SetQuery(m.search.Value())
	m.rebuildRows()

	return m, cmd
}

func (m PanelModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.search.Focus()

		return m, textinput.Blink

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.panel.SetQuery("")
			m.rebuildRows()
		}

		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

		return m, nil

	case "enter", " ":
		if r, ok := m.currentRow(); ok && r.repo == nil {
			m.panel.ToggleExpanded(r.project.ID)
			m.rebuildRows()
		}

		return m, nil

	case "c":
		return m.copyCurrent(giturl.KindHTTPS)

	case "s":
		return m.copyCurrent(giturl.KindSSH)

	case "r":
		m.loading = true

		return m, tea.Batch(m.spin.Tick, refreshCmd(m.panel))
	}

	return m, nil
}

func (m PanelModel) copyCurrent(kind giturl.Kind) (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok || r.repo == nil {
		return m, nil
	}

	m.panel.Copy(kind, r.project.Name, r.repo.Name, r.repo.ID)

	return m, feedbackExpiryCmd()
}

func (m PanelModel) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}

	return m.rows[m.cursor], true
}

// rebuildRows flattens the filtered view into visible lines. While a query
// is active every shown project is rendered open, so matches are never
// hidden behind a collapsed parent.
func (m *PanelModel) rebuildRows() {
	view := m.panel.View()
	searching := m.panel.Query() != ""

	rows := make([]row, 0, len(view.Projects))

	for _, fp := range view.Projects {
		rows = append(rows, row{project: fp.Project})

		if !searching && !m.panel.IsExpanded(fp.Project.ID) {
			continue
		}

		for i := range fp.Repositories {
			rows = append(rows, row{project: fp.Project, repo: &fp.Repositories[i]})
		}
	}

	m.rows = rows

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m PanelModel) View() string {
	var body string

	creds := m.panel.Credentials()
	org := ""

	if creds != nil {
		org = giturl.Slug(creds.OrganizationURL)
	}

	header := titleStyle.Render(fmt.Sprintf("Azure DevOps — %s", org))

	switch {
	case m.loading:
		body = m.spin.View() + " loading organization hierarchy..."
	case len(m.rows) == 0 && m.panel.View().NoResults:
		body = dimStyle.Render("no projects or repositories match the filter")
	case len(m.rows) == 0:
		body = dimStyle.Render("no projects found in this organization")
	default:
		body = m.renderRows()
	}

	searchLine := m.search.View()

	help := helpStyle.Render("↑/↓ move · enter expand · / filter · c copy https · s copy ssh · r refresh · q quit")

	return docStyle.Render(header + "\n\n" + searchLine + "\n\n" + body + help)
}

func (m PanelModel) renderRows() string {
	feedback := m.panel.Feedback()

	out := ""

	for i, r := range m.rows {
		line := ""

		if r.repo == nil {
			marker := "▸"
			if m.panel.IsExpanded(r.project.ID) || m.panel.Query() != "" {
				marker = "▾"
			}

			line = fmt.Sprintf("%s %s", marker, r.project.Name)

			if r.project.Description != "" {
				line += dimStyle.Render("  " + r.project.Description)
			}
		} else {
			line = "    " + r.repo.Name

			if branch := shortBranch(r.repo.DefaultBranch); branch != "" {
				line += dimStyle.Render("  " + branch)
			}

			if feedback != nil && feedback.RepositoryID == r.repo.ID {
				line += copiedStyle.Render(fmt.Sprintf("  ✓ copied (%s)", feedback.Kind))
			}
		}

		if i == m.cursor {
			line = selectedStyle.Render(line)
		}

		out += line + "\n"
	}

	return out
}

// shortBranch strips the refs/heads/ prefix for display.
func shortBranch(ref string) string {
	const prefix = "refs/heads/"

	if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
		return ref[len(prefix):]
	}

	return ref
}
