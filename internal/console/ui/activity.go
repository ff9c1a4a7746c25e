package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/console/app"
)

const activityLimit = 50

type activityModel struct {
	app *app.App

	width  int
	height int

	Done bool

	entries []activity.Entry
	err     error
}

func newActivityModel(a *app.App) *activityModel {
	m := &activityModel{app: a}
	m.reload()
	return m
}

func (m *activityModel) Init() tea.Cmd { return nil }

func (m *activityModel) Finished() bool { return m.Done }

func (m *activityModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *activityModel) reload() {
	m.entries, m.err = m.app.Activity.Recent(activityLimit)
}

func (m *activityModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			m.Done = true
		case "r":
			m.reload()
		}
	}
	return nil
}

func (m *activityModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Activity error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent activity"))
	b.WriteString("\n\n")
	if len(m.entries) == 0 {
		b.WriteString(dimStyle.Render("Nothing has happened yet."))
	}
	shown := m.entries
	if rows := m.height - 6; rows > 0 && len(shown) > rows {
		shown = shown[:rows]
	}
	for _, e := range shown {
		b.WriteString(entryLine(e))
		b.WriteString("\n")
	}
	b.WriteString("\n(r to refresh, esc to go back)")
	return b.String()
}
