package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"

	"github.com/notepid/hazardwatch/internal/console/app"
)

type screen int

const (
	screenHome screen = iota
	screenReport
	screenPending
	screenValidated
	screenLeaderboard
	screenActivity
	screenIdentity
	screenQuit
)

// subModel is implemented by every screen reachable from the home menu.
type subModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(w, h int)
	Finished() bool
}

type rootModel struct {
	app *app.App

	width  int
	height int

	active screen
	sub    subModel

	homeList list.Model
}

type menuItem struct {
	title string
	desc  string
	to    screen
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

func NewRootModel(a *app.App) tea.Model {
	items := []list.Item{
		menuItem{title: "Report a hazard", desc: "Submit air, water or waste hazards", to: screenReport},
		menuItem{title: "Validate hazards", desc: "Vote on pending reports", to: screenPending},
		menuItem{title: "Validated hazards", desc: "Most urgent first, mark resolved", to: screenValidated},
		menuItem{title: "Leaderboard", desc: "Points and levels", to: screenLeaderboard},
		menuItem{title: "Activity", desc: "Recent reports, votes and rewards", to: screenActivity},
		menuItem{title: "Switch identity", desc: "Log in with a Darpan ID", to: screenIdentity},
		menuItem{title: "Quit", desc: "Exit", to: screenQuit},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Hazard Watch"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return &rootModel{
		app:      a,
		active:   screenHome,
		homeList: l,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.homeList.SetSize(msg.Width, msg.Height-3)
		if m.sub != nil {
			m.sub.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	if m.active == screenHome || m.sub == nil {
		return m.updateHome(msg)
	}

	cmd := m.sub.Update(msg)
	if m.sub.Finished() {
		m.active = screenHome
		m.sub = nil
	}
	return m, cmd
}

func (m *rootModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.homeList.SelectedItem().(menuItem); ok {
				if it.to == screenQuit {
					return m, tea.Quit
				}
				return m, m.activate(it.to)
			}
		}
	}

	return m, cmd
}

func (m *rootModel) activate(s screen) tea.Cmd {
	switch s {
	case screenReport:
		m.sub = newReportModel(m.app)
	case screenPending:
		m.sub = newPendingModel(m.app)
	case screenValidated:
		m.sub = newValidatedModel(m.app)
	case screenLeaderboard:
		m.sub = newLeaderboardModel(m.app)
	case screenActivity:
		m.sub = newActivityModel(m.app)
	case screenIdentity:
		m.sub = newIdentityModel(m.app)
	default:
		return nil
	}
	m.active = s
	m.sub.SetSize(m.width, m.height)
	return m.sub.Init()
}

func (m *rootModel) View() string {
	if m.active != screenHome && m.sub != nil {
		return m.sub.View()
	}
	return m.homeList.View() + "\n" + m.sessionLine()
}

func (m *rootModel) sessionLine() string {
	current, err := m.app.Store.CurrentUser()
	if err != nil {
		return errStyle.Render("Error: ") + err.Error()
	}
	if current.IsZero() {
		return dimStyle.Render("Not logged in")
	}
	return dimStyle.Render("Acting as ") + titleStyle.Render(current.Key())
}
