package hazard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64
	Lng float64
}

// ParseLocation reads coordinates as typed into a form. Both values are
// required.
func ParseLocation(lat, lng string) (*Location, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return nil, &ValidationError{Field: "location", Reason: "latitude and longitude are required"}
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, &ValidationError{Field: "location", Reason: fmt.Sprintf("latitude %q is not a number", lat)}
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, &ValidationError{Field: "location", Reason: fmt.Sprintf("longitude %q is not a number", lng)}
	}
	loc := &Location{Lat: la, Lng: ln}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

// Validate checks that both coordinates are finite and in range.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || math.IsInf(l.Lat, 0) || l.Lat < -90 || l.Lat > 90 {
		return &ValidationError{Field: "location", Reason: "latitude must be between -90 and 90"}
	}
	if math.IsNaN(l.Lng) || math.IsInf(l.Lng, 0) || l.Lng < -180 || l.Lng > 180 {
		return &ValidationError{Field: "location", Reason: "longitude must be between -180 and 180"}
	}
	return nil
}

// MapURL links to the location on OpenStreetMap.
func (l Location) MapURL() string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f", l.Lat, l.Lng, l.Lat, l.Lng)
}

func (l Location) String() string {
	return fmt.Sprintf("(%g, %g)", l.Lat, l.Lng)
}
