package hazard

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/notepid/hazardwatch/internal/user"
)

func TestDecodeStoredHazard(t *testing.T) {
	raw := `[{
		"id": 1717243200000,
		"reporter": "alice1",
		"description": "Open burning of plastic behind the market",
		"type": "air",
		"lat": 12.9716,
		"lng": 77.5946,
		"image": "data:image/png;base64,iVBORw0KGgo=",
		"status": "resolved",
		"validation_status": "valid",
		"votes": {"true": 3, "false": 1},
		"resolvedBy": "NGO_green99"
	}]`

	hazards, err := decodeHazards([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hazards) != 1 {
		t.Fatalf("expected 1 hazard, got %d", len(hazards))
	}
	h := hazards[0]
	if h.Reporter.Key() != "alice1" || h.Reporter.IsNGO() {
		t.Fatalf("unexpected reporter %v", h.Reporter)
	}
	if h.Location != (Location{Lat: 12.9716, Lng: 77.5946}) {
		t.Fatalf("unexpected location %v", h.Location)
	}
	if h.Votes != (Votes{Valid: 3, Invalid: 1}) {
		t.Fatalf("unexpected votes %+v", h.Votes)
	}
	if h.Status != StatusResolved || h.ValidationStatus != ValidationValid {
		t.Fatalf("unexpected statuses %s/%s", h.Status, h.ValidationStatus)
	}
	if h.ResolvedBy == nil || !h.ResolvedBy.IsNGO() || h.ResolvedBy.ID != "green99" {
		t.Fatalf("unexpected resolver %v", h.ResolvedBy)
	}
	if h.Image == nil || h.Image.MIME != "image/png" || len(h.Image.Data) != 8 {
		t.Fatalf("unexpected image %+v", h.Image)
	}
}

func TestDecodeHazardDefaults(t *testing.T) {
	raw := `[{"id": 5, "reporter": "bob123", "description": "Dumped construction debris", "type": "waste", "lat": 0, "lng": 0, "image": null, "votes": {"true": 0, "false": 0}, "resolvedBy": null}]`

	hazards, err := decodeHazards([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	h := hazards[0]
	if h.Status != StatusPending || h.ValidationStatus != ValidationPending {
		t.Fatalf("expected pending defaults, got %s/%s", h.Status, h.ValidationStatus)
	}
	if h.Image != nil || h.ResolvedBy != nil {
		t.Fatalf("expected nil image and resolver, got %v %v", h.Image, h.ResolvedBy)
	}
}

func TestEncodeHazardUsesStoredFieldNames(t *testing.T) {
	reporter, _ := user.ParseIdentity("green99", true)
	h := Hazard{
		ID:               7,
		Reporter:         reporter,
		Description:      "Chemical foam on the lake surface",
		Type:             Water,
		Location:         Location{Lat: 1.5, Lng: -2.25},
		Status:           StatusPending,
		ValidationStatus: ValidationPending,
		Votes:            Votes{Valid: 1},
	}

	b, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	for _, want := range []string{
		`"reporter":"NGO_green99"`,
		`"lat":1.5`,
		`"lng":-2.25`,
		`"validation_status":"pending"`,
		`"votes":{"true":1,"false":0}`,
		`"resolvedBy":null`,
		`"image":null`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestDecodeRejectsMalformedImage(t *testing.T) {
	raw := `[{"id": 1, "reporter": "bob123", "type": "air", "image": "https://example.com/a.png"}]`
	if _, err := decodeHazards([]byte(raw)); err == nil {
		t.Fatal("expected error for non data URL image")
	}
}
