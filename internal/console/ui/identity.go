package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/notepid/hazardwatch/internal/console/app"
)

type identityModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form   *huh.Form
	err    error
	notice string

	who  identityInput
	save bool
}

func newIdentityModel(a *app.App) *identityModel {
	m := &identityModel{app: a, who: prefillIdentity(a.Store), save: true}
	m.form = huh.NewForm(
		huh.NewGroup(m.who.fields()...),
		huh.NewGroup(
			huh.NewConfirm().Title("Switch to this identity?").Value(&m.save),
		),
	)
	return m
}

func (m *identityModel) Init() tea.Cmd { return m.form.Init() }

func (m *identityModel) Finished() bool { return m.Done }

func (m *identityModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *identityModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil || m.notice != "" {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.Done = true
			}
		}
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.Done = true
		return nil
	}

	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f

	if m.form.State == huh.StateCompleted {
		if !m.save {
			m.Done = true
			return nil
		}
		id, err := m.who.identity()
		if err != nil {
			m.err = err
			return nil
		}
		if err := m.app.Store.SetCurrentUser(id); err != nil {
			m.err = err
			return nil
		}
		m.notice = "Now acting as " + id.Key()
		return nil
	}
	return cmd
}

func (m *identityModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Identity error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice) + "\n\nPress Enter to continue."
	}
	return m.form.View() + "\n\n(esc to go back)"
}
