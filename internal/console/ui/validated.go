package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"

	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/hazard"
)

type validatedModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state  validatedState
	list   list.Model
	err    error
	notice string

	selected *hazard.Hazard
}

type validatedState int

const (
	validatedStateList validatedState = iota
	validatedStateDetail
)

func newValidatedModel(a *app.App) *validatedModel {
	m := &validatedModel{app: a, state: validatedStateList}
	m.reloadList()
	return m
}

func (m *validatedModel) Init() tea.Cmd { return nil }

func (m *validatedModel) Finished() bool { return m.Done }

func (m *validatedModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *validatedModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil || m.notice != "" {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.notice = ""
				m.refreshSelected()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == validatedStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() != "enter" {
			return cmd
		}
		it, ok := m.list.SelectedItem().(item)
		if !ok {
			return cmd
		}
		switch m.state {
		case validatedStateList:
			h, err := m.app.Store.Get(it.id)
			if err != nil {
				m.err = err
				return nil
			}
			m.selected = &h
			m.state = validatedStateDetail
			m.list = newResolveActionList(h, m.width, m.height)
		case validatedStateDetail:
			switch it.kind {
			case "resolve":
				m.resolve()
			case "back":
				m.back()
			}
		}
		return nil
	}

	return cmd
}

func (m *validatedModel) resolve() {
	if m.selected == nil {
		return
	}
	h, err := m.app.Store.ResolveAsCurrent(m.selected.ID)
	if err != nil {
		if errors.Is(err, hazard.ErrAuthRequired) {
			err = fmt.Errorf("%w\nUse Switch identity from the main menu first", err)
		}
		m.err = err
		return
	}
	m.notice = fmt.Sprintf("Hazard #%d marked resolved by %s.", h.ID, h.ResolvedBy.Key())
	if h.ResolvedBy.IsNGO() {
		m.notice += fmt.Sprintf(" NGO bonus: %d points.", m.app.Store.Rules().NGOResolveBonus)
	}
}

func (m *validatedModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice) + "\n\nPress Enter to continue."
	}

	switch m.state {
	case validatedStateList:
		m.list.Title = "Validated hazards"
		return m.list.View() + "\n(q to quit, enter to select)"
	default:
		if m.selected == nil {
			return "No hazard selected\n\n(esc to go back)"
		}
		m.list.Title = "Actions"
		return hazardDetail(*m.selected) + "\n" + m.list.View() + "\n(esc to go back)"
	}
}

func (m *validatedModel) reloadList() {
	hazards, err := m.app.Store.ListForValidation()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(hazards))
	for _, h := range hazards {
		items = append(items, item{id: h.ID, title: hazardTitle(h), desc: validatedDesc(h), kind: "hazard"})
	}
	m.list = newList(items, m.width, m.height-2, true)
	m.list.Title = "Validated hazards"
}

func newResolveActionList(h hazard.Hazard, w, height int) list.Model {
	var items []list.Item
	if h.Status != hazard.StatusResolved {
		items = append(items, item{title: "Mark resolved", desc: "Resolve as the current identity", kind: "resolve"})
	}
	items = append(items, item{title: "Back", desc: "Return to validated hazards", kind: "back"})
	return newList(items, w, height-14, false)
}

func (m *validatedModel) refreshSelected() {
	if m.state != validatedStateDetail || m.selected == nil {
		m.reloadList()
		return
	}
	h, err := m.app.Store.Get(m.selected.ID)
	if err != nil {
		m.back()
		return
	}
	m.selected = &h
	m.list = newResolveActionList(h, m.width, m.height)
}

func (m *validatedModel) back() {
	switch m.state {
	case validatedStateList:
		m.Done = true
	default:
		m.state = validatedStateList
		m.selected = nil
		m.reloadList()
	}
}
