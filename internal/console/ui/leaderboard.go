package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/user"
)

var (
	rankStyle   = lipgloss.NewStyle().Width(5).Foreground(lipgloss.Color("8"))
	leaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	ngoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

type leaderboardModel struct {
	app *app.App

	width  int
	height int

	Done bool

	rows []user.Standing
	err  error
}

func newLeaderboardModel(a *app.App) *leaderboardModel {
	m := &leaderboardModel{app: a}
	m.rows, m.err = a.Store.Leaderboard()
	return m
}

func (m *leaderboardModel) Init() tea.Cmd { return nil }

func (m *leaderboardModel) Finished() bool { return m.Done }

func (m *leaderboardModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *leaderboardModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			m.Done = true
		case "r":
			m.rows, m.err = m.app.Store.Leaderboard()
		}
	}
	return nil
}

func (m *leaderboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Leaderboard error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	return titleStyle.Render("Leaderboard") + "\n\n" + renderLeaderboard(m.rows, m.height-6) + "\n\n(r to refresh, esc to go back)"
}

// renderLeaderboard draws at most limit rows; limit <= 0 draws all of them.
func renderLeaderboard(rows []user.Standing, limit int) string {
	if len(rows) == 0 {
		return dimStyle.Render("No users yet. Report or vote on a hazard to earn points.")
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	var b strings.Builder
	for i, s := range rows {
		line := standingLine(s)
		switch {
		case i == 0 && s.Points > 0:
			line = leaderStyle.Render(line)
		case strings.HasPrefix(s.Username, user.NGOPrefix):
			line = ngoStyle.Render(line)
		}
		b.WriteString(rankStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
