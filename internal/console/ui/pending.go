package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"

	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/hazard"
)

type pendingModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state  pendingState
	list   list.Model
	err    error
	notice string

	selected *hazard.Hazard

	form   *huh.Form
	voter  identityInput
	ballot bool
	save   bool
}

type pendingState int

const (
	pendingStateList pendingState = iota
	pendingStateDetail
	pendingStateVote
)

func newPendingModel(a *app.App) *pendingModel {
	m := &pendingModel{app: a, state: pendingStateList}
	m.reloadList()
	return m
}

func (m *pendingModel) Init() tea.Cmd { return nil }

func (m *pendingModel) Finished() bool { return m.Done }

func (m *pendingModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *pendingModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil || m.notice != "" {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.notice = ""
				m.state = pendingStateList
				m.form = nil
				m.selected = nil
				m.reloadList()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == pendingStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	switch m.state {
	case pendingStateList:
		return m.updateList(msg)
	case pendingStateDetail:
		return m.updateDetail(msg)
	case pendingStateVote:
		return m.updateForm(msg)
	default:
		return nil
	}
}

func (m *pendingModel) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(item)
			if !ok {
				return cmd
			}
			h, err := m.app.Store.Get(it.id)
			if err != nil {
				m.err = err
				return nil
			}
			m.selected = &h
			m.state = pendingStateDetail
			m.list = newVoteActionList(m.width, m.height)
			return nil
		}
	}

	return cmd
}

func (m *pendingModel) updateDetail(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(item)
			if !ok {
				return cmd
			}
			switch it.kind {
			case "vote_valid":
				return m.startVote(true)
			case "vote_invalid":
				return m.startVote(false)
			case "back":
				m.back()
			}
			return nil
		}
	}

	return cmd
}

func (m *pendingModel) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.err = fmt.Errorf("internal error: form not initialized")
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
		if !m.save || m.selected == nil {
			m.back()
			return nil
		}
		voter, err := m.voter.identity()
		if err != nil {
			m.err = err
			return nil
		}
		h, err := m.app.Store.CastVote(m.selected.ID, voter, m.ballot)
		if err != nil {
			m.err = err
			return nil
		}
		m.notice = "Vote recorded: " + voteSummary(h.Votes)
		switch h.ValidationStatus {
		case hazard.ValidationValid:
			m.notice += fmt.Sprintf("\nHazard #%d is now validated. The reporter earned %d points.", h.ID, m.app.Store.Rules().ReporterBonus)
		case hazard.ValidationInvalid:
			m.notice += fmt.Sprintf("\nHazard #%d was rejected as invalid.", h.ID)
		}
		return nil
	}
	return cmd
}

func (m *pendingModel) startVote(valid bool) tea.Cmd {
	m.state = pendingStateVote
	m.voter = prefillIdentity(m.app.Store)
	m.ballot = valid
	m.save = true

	label := "invalid"
	if valid {
		label = "valid"
	}
	m.form = huh.NewForm(
		huh.NewGroup(m.voter.fields()...),
		huh.NewGroup(
			huh.NewConfirm().Title(fmt.Sprintf("Vote %s on hazard #%d?", label, m.selected.ID)).Value(&m.save),
		),
	)
	return m.form.Init()
}

func (m *pendingModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Vote error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice) + "\n\nPress Enter to continue."
	}

	switch m.state {
	case pendingStateList:
		m.list.Title = "Pending hazards"
		return m.list.View() + "\n(q to quit, enter to select)"
	case pendingStateDetail:
		if m.selected == nil {
			return "No hazard selected\n\n(esc to go back)"
		}
		m.list.Title = "Actions"
		return hazardDetail(*m.selected) + "\n" + m.list.View() + "\n(esc to go back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *pendingModel) reloadList() {
	hazards, err := m.app.Store.ListPending()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(hazards))
	for _, h := range hazards {
		items = append(items, item{id: h.ID, title: hazardTitle(h), desc: pendingDesc(h), kind: "hazard"})
	}
	m.list = newList(items, m.width, m.height-2, true)
	m.list.Title = "Pending hazards"
}

func newVoteActionList(w, h int) list.Model {
	items := []list.Item{
		item{title: "Vote valid", desc: "The hazard is real", kind: "vote_valid"},
		item{title: "Vote invalid", desc: "The report is wrong or a duplicate", kind: "vote_invalid"},
		item{title: "Back", desc: "Return to pending hazards", kind: "back"},
	}
	return newList(items, w, h-14, false)
}

func (m *pendingModel) back() {
	switch m.state {
	case pendingStateList:
		m.Done = true
	case pendingStateDetail:
		m.state = pendingStateList
		m.selected = nil
		m.form = nil
		m.reloadList()
	default:
		m.state = pendingStateDetail
		m.form = nil
		m.list = newVoteActionList(m.width, m.height)
	}
}
