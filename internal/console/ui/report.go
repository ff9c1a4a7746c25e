package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	log "github.com/sirupsen/logrus"

	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/hazard"
)

type reportModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form   *huh.Form
	err    error
	notice string

	who         identityInput
	description string
	category    string
	lat         string
	lng         string
	imagePath   string
	save        bool
}

func newReportModel(a *app.App) *reportModel {
	m := &reportModel{
		app:      a,
		who:      prefillIdentity(a.Store),
		category: string(hazard.Air),
		save:     true,
	}

	options := make([]huh.Option[string], 0, len(hazard.Categories))
	for _, c := range hazard.Categories {
		options = append(options, huh.NewOption(categoryLabel(c), string(c)))
	}
	rules := a.Store.Rules()

	m.form = huh.NewForm(
		huh.NewGroup(m.who.fields()...),
		huh.NewGroup(
			huh.NewText().Title("Description").Value(&m.description).Validate(minLength("description", rules.MinDescription)),
			huh.NewSelect[string]().Title("Hazard type").Options(options...).Value(&m.category),
		),
		huh.NewGroup(
			huh.NewInput().Title("Latitude").Value(&m.lat).Validate(validCoordinate("latitude", -90, 90)),
			huh.NewInput().Title("Longitude").Value(&m.lng).Validate(validCoordinate("longitude", -180, 180)),
			huh.NewInput().Title("Image file (optional)").Value(&m.imagePath),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Submit report?").Value(&m.save),
		),
	)
	return m
}

func (m *reportModel) Init() tea.Cmd { return m.form.Init() }

func (m *reportModel) Finished() bool { return m.Done }

func (m *reportModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *reportModel) Update(msg tea.Msg) tea.Cmd {
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
		h, err := m.submit()
		if err != nil {
			m.err = err
			return nil
		}
		m.notice = fmt.Sprintf("Hazard #%d reported. It needs %d valid votes to be confirmed.", h.ID, m.app.Store.Rules().VoteThreshold)
		return nil
	}
	return cmd
}

func (m *reportModel) submit() (hazard.Hazard, error) {
	reporter, err := m.who.identity()
	if err != nil {
		return hazard.Hazard{}, err
	}
	loc, err := hazard.ParseLocation(m.lat, m.lng)
	if err != nil {
		return hazard.Hazard{}, err
	}

	var img *hazard.Image
	if path := strings.TrimSpace(m.imagePath); path != "" {
		img, err = hazard.ReadImageFile(path, m.app.Store.Rules().MaxImageBytes)
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("image rejected")
			return hazard.Hazard{}, err
		}
	}

	return m.app.Store.SubmitReport(hazard.Submission{
		Reporter:    reporter,
		Description: m.description,
		Type:        hazard.Category(m.category),
		Location:    loc,
		Image:       img,
	})
}

func (m *reportModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Report error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	if m.notice != "" {
		return noticeStyle.Render(m.notice) + "\n\nPress Enter to continue."
	}
	return titleStyle.Render("Report a hazard") + "\n\n" + m.form.View() + "\n\n(esc to go back)"
}
