package ui

import (
	"fmt"
	"strings"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/hazard"
	"github.com/notepid/hazardwatch/internal/user"
)

func categoryLabel(c hazard.Category) string {
	switch c {
	case hazard.Air:
		return "Air pollution"
	case hazard.Water:
		return "Water contamination"
	case hazard.Waste:
		return "Waste dumping"
	default:
		return string(c)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func hazardTitle(h hazard.Hazard) string {
	return fmt.Sprintf("#%d %s", h.ID, truncate(h.Description, 60))
}

func voteSummary(v hazard.Votes) string {
	return fmt.Sprintf("Valid (%d) / Invalid (%d)", v.Valid, v.Invalid)
}

func pendingDesc(h hazard.Hazard) string {
	return categoryLabel(h.Type) + " • " + voteSummary(h.Votes)
}

func validatedDesc(h hazard.Hazard) string {
	s := fmt.Sprintf("Urgency: %d • Status: %s", h.Urgency(), h.Status)
	if h.ResolvedBy != nil {
		s += " • Resolved by " + h.ResolvedBy.Key()
	}
	return s
}

func hazardDetail(h hazard.Hazard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Hazard #%d: %s", h.ID, categoryLabel(h.Type))))
	fmt.Fprintf(&b, "Reported by: %s\n", h.Reporter.Key())
	fmt.Fprintf(&b, "Description: %s\n", h.Description)
	fmt.Fprintf(&b, "Location:    %s\n", h.Location)
	fmt.Fprintf(&b, "Map:         %s\n", h.Location.MapURL())
	if h.Image != nil {
		fmt.Fprintf(&b, "Image:       %s, %d bytes\n", h.Image.MIME, len(h.Image.Data))
	} else {
		b.WriteString("Image:       none\n")
	}
	fmt.Fprintf(&b, "Votes:       %s\n", voteSummary(h.Votes))
	fmt.Fprintf(&b, "Validation:  %s\n", h.ValidationStatus)
	fmt.Fprintf(&b, "Status:      %s\n", h.Status)
	if h.ResolvedBy != nil {
		fmt.Fprintf(&b, "Resolved by: %s\n", h.ResolvedBy.Key())
	}
	return b.String()
}

func standingLine(s user.Standing) string {
	return fmt.Sprintf("%s: %d points (Level %d)", s.Username, s.Points, s.Level)
}

func entryLine(e activity.Entry) string {
	var what string
	switch e.Kind {
	case activity.KindSubmitted:
		what = fmt.Sprintf("%s reported hazard #%d (%s)", e.Actor, e.HazardID, e.Detail)
	case activity.KindVoted:
		what = fmt.Sprintf("%s voted %s on #%d", e.Actor, e.Detail, e.HazardID)
	case activity.KindValidated:
		what = fmt.Sprintf("hazard #%d validated", e.HazardID)
	case activity.KindInvalidated:
		what = fmt.Sprintf("hazard #%d rejected as invalid", e.HazardID)
	case activity.KindResolved:
		what = fmt.Sprintf("%s resolved #%d", e.Actor, e.HazardID)
	case activity.KindPoints:
		what = fmt.Sprintf("%s earned %d points (%s)", e.Actor, e.Points, e.Detail)
	default:
		what = fmt.Sprintf("%s %s #%d", e.Actor, e.Kind, e.HazardID)
	}
	return e.At.Local().Format("2006-01-02 15:04") + "  " + what
}
