package hazard

import "github.com/notepid/hazardwatch/internal/user"

// Status is the operational state of a hazard.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// ValidationStatus is the outcome of community voting.
type ValidationStatus string

const (
	ValidationPending ValidationStatus = "pending"
	ValidationValid   ValidationStatus = "valid"
	ValidationInvalid ValidationStatus = "invalid"
)

// Votes counts ballots cast on a hazard.
type Votes struct {
	Valid   int `json:"true"`
	Invalid int `json:"false"`
}

// Hazard is one submitted report.
type Hazard struct {
	ID               int64
	Reporter         user.Identity
	Description      string
	Type             Category
	Location         Location
	Image            *Image
	Status           Status
	ValidationStatus ValidationStatus
	Votes            Votes
	ResolvedBy       *user.Identity
}

// Urgency returns the display rank of the hazard's category.
func (h Hazard) Urgency() int {
	return h.Type.Urgency()
}

// Submission is the input to Store.SubmitReport.
type Submission struct {
	Reporter    user.Identity
	Description string
	Type        Category
	Location    *Location // nil when coordinates were not supplied
	Image       *Image    // optional
}
