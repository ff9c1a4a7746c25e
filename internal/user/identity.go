package user

import (
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes individual reporters from NGO accounts.
type Kind int

const (
	Individual Kind = iota
	NGO
)

// NGOPrefix marks NGO accounts in persisted usernames.
const NGOPrefix = "NGO_"

// MinIDLen is the shortest accepted Darpan ID.
const MinIDLen = 6

// ErrInvalidIdentity is returned for IDs that are not alphanumeric or too short.
var ErrInvalidIdentity = errors.New("invalid Darpan ID: must be alphanumeric and at least 6 characters")

// Identity is the unauthenticated key a participant acts under.
type Identity struct {
	Kind Kind
	ID   string
}

// ParseIdentity validates a raw ID as typed by the user. The ngo flag selects
// the NGO account variant.
func ParseIdentity(id string, ngo bool) (Identity, error) {
	id = strings.TrimSpace(id)
	if err := ValidateID(id); err != nil {
		return Identity{}, err
	}
	kind := Individual
	if ngo {
		kind = NGO
	}
	return Identity{Kind: kind, ID: id}, nil
}

// ParseKey reads a persisted username back into an Identity.
func ParseKey(key string) (Identity, error) {
	if rest, ok := strings.CutPrefix(key, NGOPrefix); ok {
		return ParseIdentity(rest, true)
	}
	return ParseIdentity(key, false)
}

// ValidateID checks the Darpan ID rules: ASCII letters and digits, at least
// MinIDLen of them.
func ValidateID(id string) error {
	if len(id) < MinIDLen {
		return ErrInvalidIdentity
	}
	for _, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return ErrInvalidIdentity
		}
	}
	return nil
}

// Validate reports whether i was built from a valid ID.
func (i Identity) Validate() error {
	if i.Kind != Individual && i.Kind != NGO {
		return fmt.Errorf("unknown identity kind %d", i.Kind)
	}
	return ValidateID(i.ID)
}

// Key returns the username under which the identity is persisted.
func (i Identity) Key() string {
	if i.ID == "" {
		return ""
	}
	if i.Kind == NGO {
		return NGOPrefix + i.ID
	}
	return i.ID
}

// IsNGO reports whether the identity is an NGO account.
func (i Identity) IsNGO() bool { return i.Kind == NGO }

// IsZero reports whether no identity is set.
func (i Identity) IsZero() bool { return i.ID == "" }

func (i Identity) String() string { return i.Key() }

// MarshalText encodes the identity as its persisted username.
func (i Identity) MarshalText() ([]byte, error) {
	return []byte(i.Key()), nil
}

// UnmarshalText decodes a persisted username. An empty value yields the zero
// identity.
func (i *Identity) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*i = Identity{}
		return nil
	}
	parsed, err := ParseKey(string(b))
	if err != nil {
		return fmt.Errorf("identity %q: %w", string(b), err)
	}
	*i = parsed
	return nil
}
