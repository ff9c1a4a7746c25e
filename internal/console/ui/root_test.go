package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notepid/hazardwatch/internal/config"
	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/hazard"
	"github.com/notepid/hazardwatch/internal/user"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, cleanup, err := app.New(config.Default(), true)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(cleanup)
	return a
}

func press(m tea.Model, keys ...tea.KeyType) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	return m
}

func TestRootOpensAndLeavesScreens(t *testing.T) {
	m := NewRootModel(newTestApp(t))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if !strings.Contains(m.View(), "Not logged in") {
		t.Fatalf("expected session line on home screen:\n%s", m.View())
	}

	m = press(m, tea.KeyEnter)
	if !strings.Contains(m.View(), "(esc to go back)") {
		t.Fatalf("expected report screen:\n%s", m.View())
	}
	m = press(m, tea.KeyEsc)
	if !strings.Contains(m.View(), "Hazard Watch") {
		t.Fatalf("expected home screen after esc:\n%s", m.View())
	}

	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	if !strings.Contains(m.View(), "Leaderboard") || !strings.Contains(m.View(), "No users yet") {
		t.Fatalf("expected empty leaderboard:\n%s", m.View())
	}
	m = press(m, tea.KeyEsc)
	if !strings.Contains(m.View(), "Hazard Watch") {
		t.Fatalf("expected home screen after esc:\n%s", m.View())
	}
}

func TestRootShowsSessionIdentity(t *testing.T) {
	a := newTestApp(t)
	ngo, _ := user.ParseIdentity("green99", true)
	if err := a.Store.SetCurrentUser(ngo); err != nil {
		t.Fatal(err)
	}

	m := NewRootModel(a)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.View(), "NGO_green99") {
		t.Fatalf("expected session identity on home screen:\n%s", m.View())
	}
}

func validatedHazard(t *testing.T, a *app.App) hazard.Hazard {
	t.Helper()
	reporter, _ := user.ParseIdentity("alice1", false)
	h, err := a.Store.SubmitReport(hazard.Submission{
		Reporter:    reporter,
		Description: "Untreated effluent flowing into the canal",
		Type:        hazard.Water,
		Location:    &hazard.Location{Lat: 1, Lng: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"voter01", "voter02", "voter03"} {
		voter, _ := user.ParseIdentity(id, false)
		if _, err := a.Store.CastVote(h.ID, voter, true); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func TestValidatedResolveAsSession(t *testing.T) {
	a := newTestApp(t)
	h := validatedHazard(t, a)

	m := newValidatedModel(a)
	m.SetSize(100, 40)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected == nil || m.selected.ID != h.ID {
		t.Fatalf("expected hazard %d selected, got %+v", h.ID, m.selected)
	}

	m.resolve()
	if m.err != nil {
		t.Fatalf("resolve: %v", m.err)
	}
	if !strings.Contains(m.notice, "resolved by voter03") {
		t.Fatalf("unexpected notice %q", m.notice)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected.Status != hazard.StatusResolved {
		t.Fatalf("expected refreshed hazard to be resolved, got %s", m.selected.Status)
	}
}

func TestValidatedResolveRequiresIdentity(t *testing.T) {
	storage := hazard.NewMemoryStorage()
	a := &app.App{Config: config.Default(), Store: hazard.NewStore(storage, hazard.DefaultRules())}
	h := validatedHazard(t, a)
	if err := storage.Save(hazard.KeyCurrentUser, nil); err != nil {
		t.Fatal(err)
	}

	m := newValidatedModel(a)
	m.SetSize(100, 40)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected == nil || m.selected.ID != h.ID {
		t.Fatalf("expected hazard %d selected, got %+v", h.ID, m.selected)
	}

	m.resolve()
	if !errors.Is(m.err, hazard.ErrAuthRequired) {
		t.Fatalf("expected auth required, got %v", m.err)
	}
	if !strings.Contains(m.View(), "Switch identity") {
		t.Fatalf("expected hint in view:\n%s", m.View())
	}
}
