package activity

import "time"

// Kind names what happened to a hazard or a user's points.
type Kind string

const (
	KindSubmitted   Kind = "submitted"
	KindVoted       Kind = "voted"
	KindValidated   Kind = "validated"
	KindInvalidated Kind = "invalidated"
	KindResolved    Kind = "resolved"
	KindPoints      Kind = "points"
)

// Entry is one line of the activity journal.
type Entry struct {
	ID       int64
	At       time.Time
	Kind     Kind
	HazardID int64
	Actor    string // persisted username
	Points   int    // only for KindPoints
	Detail   string
}
