package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Roster holds every known user in first-seen order.
type Roster struct {
	order []string
	users map[string]*User
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{users: make(map[string]*User)}
}

// Ensure returns the user for id, creating it with zero points if absent.
func (r *Roster) Ensure(id Identity) *User {
	return r.ensureKey(id.Key())
}

func (r *Roster) ensureKey(key string) *User {
	if u, ok := r.users[key]; ok {
		return u
	}
	u := &User{Username: key}
	r.users[key] = u
	r.order = append(r.order, key)
	return u
}

// Award ensures the user exists and adds points. Non-positive amounts only
// ensure the record; points never decrease.
func (r *Roster) Award(id Identity, points int) User {
	u := r.Ensure(id)
	if points > 0 {
		u.Points += points
	}
	return *u
}

// Get looks a user up by persisted username.
func (r *Roster) Get(username string) (User, bool) {
	u, ok := r.users[username]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// Len returns the number of known users.
func (r *Roster) Len() int { return len(r.order) }

// Users returns all users in first-seen order.
func (r *Roster) Users() []User {
	out := make([]User, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.users[key])
	}
	return out
}

// Leaderboard ranks users by points, highest first. Users with equal points
// keep their first-seen order.
func (r *Roster) Leaderboard() []Standing {
	users := r.Users()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})
	out := make([]Standing, 0, len(users))
	for _, u := range users {
		out = append(out, Standing{Username: u.Username, Points: u.Points, Level: u.Level()})
	}
	return out
}

type userRecord struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

// MarshalJSON writes the roster as a username-keyed object in first-seen
// order. The level field is derived, never read back.
func (r *Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		u := r.users[key]
		v, err := json.Marshal(userRecord{Points: u.Points, Level: u.Level()})
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a username-keyed object, keeping key order.
func (r *Roster) UnmarshalJSON(data []byte) error {
	*r = Roster{users: make(map[string]*User)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode users: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode users: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode users: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode users: unexpected key %v", tok)
		}
		var rec userRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("decode user %q: %w", key, err)
		}
		u := r.ensureKey(key)
		u.Points = max(rec.Points, 0)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode users: %w", err)
	}
	return nil
}
