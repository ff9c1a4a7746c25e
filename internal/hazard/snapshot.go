package hazard

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/user"
)

// snapshot is one read of the persisted records plus the changes an
// operation made to it.
type snapshot struct {
	at      time.Time
	users   *user.Roster
	hazards []Hazard
	current *user.Identity
	events  []activity.Entry
}

func (s *Store) load() (*snapshot, error) {
	snap := &snapshot{at: s.now(), users: user.NewRoster()}

	data, found, err := s.storage.Load(KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if found && len(data) > 0 {
		if err := json.Unmarshal(data, snap.users); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
	}

	data, found, err = s.storage.Load(KeyHazards)
	if err != nil {
		return nil, fmt.Errorf("load hazards: %w", err)
	}
	if found && len(data) > 0 {
		hazards, err := decodeHazards(data)
		if err != nil {
			return nil, fmt.Errorf("decode hazards: %w", err)
		}
		snap.hazards = hazards
	}

	return snap, nil
}

// commit persists the snapshot, then hands its events to the journal.
func (s *Store) commit(snap *snapshot) error {
	hazards := snap.hazards
	if hazards == nil {
		hazards = []Hazard{}
	}
	hazardsJSON, err := json.Marshal(hazards)
	if err != nil {
		return fmt.Errorf("encode hazards: %w", err)
	}
	usersJSON, err := json.Marshal(snap.users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	records := map[string][]byte{
		KeyHazards: hazardsJSON,
		KeyUsers:   usersJSON,
	}
	if snap.current != nil {
		records[KeyCurrentUser] = []byte(snap.current.Key())
	}

	if batch, ok := s.storage.(BatchStorage); ok {
		if err := batch.SaveRecords(records); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	} else {
		for _, key := range []string{KeyHazards, KeyUsers, KeyCurrentUser} {
			value, ok := records[key]
			if !ok {
				continue
			}
			if err := s.storage.Save(key, value); err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
	}

	if s.journal == nil {
		return nil
	}
	for _, e := range snap.events {
		if err := s.journal.Record(e); err != nil {
			log.WithError(err).WithField("kind", e.Kind).Warn("failed to journal activity")
		}
	}
	return nil
}

func (snap *snapshot) find(id int64) (int, error) {
	for i := range snap.hazards {
		if snap.hazards[i].ID == id {
			return i, nil
		}
	}
	return -1, &NotFoundError{ID: id}
}

// nextID derives an id from the clock, bumped past every existing id so ids
// stay unique and increasing even when the clock stalls.
func (snap *snapshot) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, h := range snap.hazards {
		if h.ID >= id {
			id = h.ID + 1
		}
	}
	return id
}

func (snap *snapshot) setCurrent(id user.Identity) {
	snap.current = &id
}

func (snap *snapshot) award(id user.Identity, points int, hazardID int64, reason string) {
	snap.users.Award(id, points)
	if points <= 0 {
		return
	}
	snap.events = append(snap.events, activity.Entry{
		At:       snap.at,
		Kind:     activity.KindPoints,
		HazardID: hazardID,
		Actor:    id.Key(),
		Points:   points,
		Detail:   reason,
	})
}

func (snap *snapshot) note(kind activity.Kind, hazardID int64, actor user.Identity, detail string) {
	snap.events = append(snap.events, activity.Entry{
		At:       snap.at,
		Kind:     kind,
		HazardID: hazardID,
		Actor:    actor.Key(),
		Detail:   detail,
	})
}
