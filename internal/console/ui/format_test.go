package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/hazard"
	"github.com/notepid/hazardwatch/internal/user"
)

func TestStandingLine(t *testing.T) {
	got := standingLine(user.Standing{Username: "NGO_green99", Points: 25, Level: 3})
	if got != "NGO_green99: 25 points (Level 3)" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestVoteSummary(t *testing.T) {
	if got := voteSummary(hazard.Votes{Valid: 2, Invalid: 1}); got != "Valid (2) / Invalid (1)" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestValidatedDesc(t *testing.T) {
	h := hazard.Hazard{Type: hazard.Water, Status: hazard.StatusPending}
	if got := validatedDesc(h); got != "Urgency: 2 • Status: pending" {
		t.Fatalf("unexpected desc %q", got)
	}

	ngo, _ := user.ParseIdentity("green99", true)
	h.Status = hazard.StatusResolved
	h.ResolvedBy = &ngo
	if got := validatedDesc(h); !strings.HasSuffix(got, "Resolved by NGO_green99") {
		t.Fatalf("expected resolver in %q", got)
	}
}

func TestHazardDetailLinksMap(t *testing.T) {
	h := hazard.Hazard{
		ID:          42,
		Description: "Leachate pooling beside the landfill",
		Type:        hazard.Waste,
		Location:    hazard.Location{Lat: 12.5, Lng: 77.25},
		Votes:       hazard.Votes{Valid: 1},
	}
	got := hazardDetail(h)
	for _, want := range []string{"Hazard #42", "openstreetmap.org", "Image:       none", "Valid (1) / Invalid (0)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in detail:\n%s", want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged, got %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Fatalf("expected truncated, got %q", got)
	}
}

func TestEntryLine(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	got := entryLine(activity.Entry{At: at, Kind: activity.KindPoints, Actor: "alice1", Points: 10, Detail: "reporter bonus"})
	if got != "2024-06-01 12:00  alice1 earned 10 points (reporter bonus)" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestRenderLeaderboard(t *testing.T) {
	if got := renderLeaderboard(nil, 0); !strings.Contains(got, "No users yet") {
		t.Fatalf("expected empty message, got %q", got)
	}

	rows := []user.Standing{
		{Username: "alice1", Points: 13, Level: 2},
		{Username: "NGO_green99", Points: 5, Level: 1},
		{Username: "bob123", Points: 1, Level: 1},
	}
	got := renderLeaderboard(rows, 2)
	if !strings.Contains(got, "alice1: 13 points (Level 2)") || !strings.Contains(got, "NGO_green99: 5 points (Level 1)") {
		t.Fatalf("unexpected leaderboard:\n%s", got)
	}
	if strings.Contains(got, "bob123") {
		t.Fatalf("expected limit to cut rows:\n%s", got)
	}
}

func TestValidators(t *testing.T) {
	if err := minLength("description", 10)("123456789"); err == nil {
		t.Fatal("expected 9 characters to fail")
	}
	if err := minLength("description", 10)("  1234567890 "); err != nil {
		t.Fatalf("expected 10 characters to pass, got %v", err)
	}
	if err := minLength("description", 10)(" 123456789"); err != nil {
		t.Fatalf("expected leading space to count, got %v", err)
	}
	if err := minLength("description", 10)("          "); err == nil {
		t.Fatal("expected blank to fail")
	}
	if err := validDarpanID("abc"); err == nil {
		t.Fatal("expected short id to fail")
	}
	if err := validDarpanID(" abc123 "); err != nil {
		t.Fatalf("expected id to pass, got %v", err)
	}
	if err := validCoordinate("latitude", -90, 90)("95"); err == nil {
		t.Fatal("expected out of range latitude to fail")
	}
	if err := validCoordinate("latitude", -90, 90)("x"); err == nil {
		t.Fatal("expected non-number to fail")
	}
	if err := nonEmpty("path")("  "); err == nil {
		t.Fatal("expected blank to fail")
	}
}
