package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/notepid/hazardwatch/internal/hazard"
	"github.com/notepid/hazardwatch/internal/user"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type item struct {
	id    int64
	title string
	desc  string
	kind  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func newList(items []list.Item, w, h int, filter bool) list.Model {
	h = max(h, 4)
	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(filter)
	l.SetShowHelp(true)
	return l
}

// identityInput backs the Darpan ID fields of a form.
type identityInput struct {
	id  string
	ngo bool
}

// prefillIdentity starts from the session identity, with the NGO marker
// turned back into the toggle.
func prefillIdentity(store *hazard.Store) identityInput {
	current, err := store.CurrentUser()
	if err != nil || current.IsZero() {
		return identityInput{}
	}
	return identityInput{id: current.ID, ngo: current.IsNGO()}
}

func (in *identityInput) fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Darpan ID").Value(&in.id).Validate(validDarpanID),
		huh.NewConfirm().Title("Registered NGO?").Affirmative("Yes").Negative("No").Value(&in.ngo),
	}
}

func (in identityInput) identity() (user.Identity, error) {
	return user.ParseIdentity(in.id, in.ngo)
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func minLength(field string, n int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		if utf8.RuneCountInString(s) < n {
			return fmt.Errorf("%s must be at least %d characters", field, n)
		}
		return nil
	}
}

func validDarpanID(s string) error {
	return user.ValidateID(strings.TrimSpace(s))
}

func validCoordinate(field string, min, max float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		if v < min || v > max {
			return fmt.Errorf("%s must be between %g and %g", field, min, max)
		}
		return nil
	}
}
