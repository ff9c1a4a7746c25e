package hazard

import (
	"encoding/json"
	"fmt"

	"github.com/notepid/hazardwatch/internal/user"
)

// hazardRecord is the persisted shape of a hazard.
type hazardRecord struct {
	ID               int64            `json:"id"`
	Reporter         user.Identity    `json:"reporter"`
	Description      string           `json:"description"`
	Type             Category         `json:"type"`
	Lat              float64          `json:"lat"`
	Lng              float64          `json:"lng"`
	Image            *Image           `json:"image"`
	Status           Status           `json:"status"`
	ValidationStatus ValidationStatus `json:"validation_status"`
	Votes            Votes            `json:"votes"`
	ResolvedBy       *user.Identity   `json:"resolvedBy"`
}

// MarshalJSON writes the persisted record shape.
func (h Hazard) MarshalJSON() ([]byte, error) {
	return json.Marshal(hazardRecord{
		ID:               h.ID,
		Reporter:         h.Reporter,
		Description:      h.Description,
		Type:             h.Type,
		Lat:              h.Location.Lat,
		Lng:              h.Location.Lng,
		Image:            h.Image,
		Status:           h.Status,
		ValidationStatus: h.ValidationStatus,
		Votes:            h.Votes,
		ResolvedBy:       h.ResolvedBy,
	})
}

// UnmarshalJSON reads the persisted record shape. Missing statuses default
// to pending.
func (h *Hazard) UnmarshalJSON(b []byte) error {
	var rec hazardRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return fmt.Errorf("decode hazard: %w", err)
	}
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.ValidationStatus == "" {
		rec.ValidationStatus = ValidationPending
	}
	if rec.ResolvedBy != nil && rec.ResolvedBy.IsZero() {
		rec.ResolvedBy = nil
	}
	*h = Hazard{
		ID:               rec.ID,
		Reporter:         rec.Reporter,
		Description:      rec.Description,
		Type:             rec.Type,
		Location:         Location{Lat: rec.Lat, Lng: rec.Lng},
		Image:            rec.Image,
		Status:           rec.Status,
		ValidationStatus: rec.ValidationStatus,
		Votes:            rec.Votes,
		ResolvedBy:       rec.ResolvedBy,
	}
	return nil
}

func decodeHazards(data []byte) ([]Hazard, error) {
	var hazards []Hazard
	if err := json.Unmarshal(data, &hazards); err != nil {
		return nil, err
	}
	return hazards, nil
}
