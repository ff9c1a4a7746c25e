package hazard

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/user"
)

// Journal receives activity entries after the change they describe has been
// persisted.
type Journal interface {
	Record(e activity.Entry) error
}

// Store owns hazards and users and applies every state change to them.
// Each mutation reads the persisted snapshot, changes it and writes it back.
type Store struct {
	mu      sync.Mutex
	storage Storage
	rules   Rules
	journal Journal
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithJournal records lifecycle and point events to j.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

// WithClock replaces the clock used for hazard ids and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store over the given storage.
func NewStore(storage Storage, rules Rules, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		rules:   rules,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the scoring rules the store applies.
func (s *Store) Rules() Rules { return s.rules }

// SubmitReport validates and stores a new hazard report.
func (s *Store) SubmitReport(sub Submission) (Hazard, error) {
	if err := s.validateSubmission(sub); err != nil {
		log.WithError(err).Debug("report rejected")
		return Hazard{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return Hazard{}, err
	}

	h := Hazard{
		ID:               snap.nextID(s.now()),
		Reporter:         sub.Reporter,
		Description:      sub.Description,
		Type:             sub.Type,
		Location:         *sub.Location,
		Image:            sub.Image,
		Status:           StatusPending,
		ValidationStatus: ValidationPending,
	}
	snap.hazards = append(snap.hazards, h)
	snap.users.Ensure(sub.Reporter)
	snap.setCurrent(sub.Reporter)
	snap.note(activity.KindSubmitted, h.ID, sub.Reporter, string(h.Type))

	if err := s.commit(snap); err != nil {
		return Hazard{}, err
	}

	log.WithFields(log.Fields{
		"hazard":   h.ID,
		"reporter": h.Reporter.Key(),
		"type":     h.Type,
	}).Info("hazard reported")
	return h, nil
}

func (s *Store) validateSubmission(sub Submission) error {
	if err := checkIdentity("reporter", sub.Reporter); err != nil {
		return err
	}
	if strings.TrimSpace(sub.Description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if utf8.RuneCountInString(sub.Description) < s.rules.MinDescription {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("too short (minimum %d characters)", s.rules.MinDescription)}
	}
	if !sub.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be one of air, water, waste"}
	}
	if sub.Location == nil {
		return &ValidationError{Field: "location", Reason: "latitude and longitude are required"}
	}
	if err := sub.Location.Validate(); err != nil {
		return err
	}
	if sub.Image == nil {
		return nil
	}
	if err := sub.Image.Validate(); err != nil {
		return err
	}
	if s.rules.MaxImageBytes > 0 && int64(len(sub.Image.Data)) > s.rules.MaxImageBytes {
		return &ValidationError{Field: "image", Reason: fmt.Sprintf("larger than %d bytes", s.rules.MaxImageBytes)}
	}
	return nil
}

// CastVote records one ballot on a pending hazard. The voter earns the voter
// reward; when a side reaches the threshold the hazard is decided, and a
// valid outcome earns the reporter the reporter bonus.
func (s *Store) CastVote(hazardID int64, voter user.Identity, isValid bool) (Hazard, error) {
	if err := checkIdentity("voter", voter); err != nil {
		log.WithError(err).Debug("vote rejected")
		return Hazard{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return Hazard{}, err
	}
	i, err := snap.find(hazardID)
	if err != nil {
		return Hazard{}, err
	}
	h := &snap.hazards[i]

	if h.ValidationStatus != ValidationPending {
		return Hazard{}, &ValidationError{Field: "hazard", Reason: fmt.Sprintf("voting closed, hazard is already %s", h.ValidationStatus)}
	}
	if !s.rules.AllowSelfVote && h.Reporter == voter {
		return Hazard{}, &ValidationError{Field: "voter", Reason: "reporters cannot vote on their own hazard"}
	}

	snap.users.Ensure(voter)
	ballot := "invalid"
	if isValid {
		h.Votes.Valid++
		ballot = "valid"
	} else {
		h.Votes.Invalid++
	}
	snap.note(activity.KindVoted, h.ID, voter, ballot)

	if h.Votes.Valid >= s.rules.VoteThreshold {
		h.ValidationStatus = ValidationValid
		snap.note(activity.KindValidated, h.ID, voter, "")
		snap.award(h.Reporter, s.rules.ReporterBonus, h.ID, "reporter bonus")
	} else if h.Votes.Invalid >= s.rules.VoteThreshold {
		h.ValidationStatus = ValidationInvalid
		snap.note(activity.KindInvalidated, h.ID, voter, "")
	}
	snap.award(voter, s.rules.VoterReward, h.ID, "vote")
	snap.setCurrent(voter)

	out := *h
	if err := s.commit(snap); err != nil {
		return Hazard{}, err
	}

	log.WithFields(log.Fields{
		"hazard":     out.ID,
		"voter":      voter.Key(),
		"valid":      isValid,
		"validation": out.ValidationStatus,
	}).Info("vote cast")
	return out, nil
}

// Resolve marks a hazard resolved by resolver, which must be the identity
// bound to the current session. NGO resolvers earn the NGO resolve bonus.
func (s *Store) Resolve(hazardID int64, resolver user.Identity) (Hazard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentLocked()
	if err != nil {
		return Hazard{}, err
	}
	if resolver.IsZero() || current.IsZero() {
		return Hazard{}, &AuthRequiredError{Action: "update status"}
	}
	if resolver != current {
		return Hazard{}, &AuthRequiredError{Action: "update status as " + resolver.Key()}
	}
	return s.resolveLocked(hazardID, resolver)
}

// ResolveAsCurrent resolves a hazard as the current session identity.
func (s *Store) ResolveAsCurrent(hazardID int64) (Hazard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentLocked()
	if err != nil {
		return Hazard{}, err
	}
	return s.resolveLocked(hazardID, current)
}

func (s *Store) resolveLocked(hazardID int64, resolver user.Identity) (Hazard, error) {
	if resolver.IsZero() {
		return Hazard{}, &AuthRequiredError{Action: "update status"}
	}
	if err := checkIdentity("resolver", resolver); err != nil {
		return Hazard{}, err
	}

	snap, err := s.load()
	if err != nil {
		return Hazard{}, err
	}
	i, err := snap.find(hazardID)
	if err != nil {
		return Hazard{}, err
	}
	h := &snap.hazards[i]

	if h.Status == StatusResolved {
		by := "someone"
		if h.ResolvedBy != nil {
			by = h.ResolvedBy.Key()
		}
		return Hazard{}, &ValidationError{Field: "hazard", Reason: "already resolved by " + by}
	}

	h.Status = StatusResolved
	who := resolver
	h.ResolvedBy = &who
	snap.users.Ensure(resolver)
	snap.note(activity.KindResolved, h.ID, resolver, "")
	if resolver.IsNGO() {
		snap.award(resolver, s.rules.NGOResolveBonus, h.ID, "ngo resolution")
	}

	out := *h
	if err := s.commit(snap); err != nil {
		return Hazard{}, err
	}

	log.WithFields(log.Fields{
		"hazard":   out.ID,
		"resolver": resolver.Key(),
	}).Info("hazard resolved")
	return out, nil
}

// CurrentUser returns the session identity, or the zero identity when none
// has been established.
func (s *Store) CurrentUser() (user.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *Store) currentLocked() (user.Identity, error) {
	data, found, err := s.storage.Load(KeyCurrentUser)
	if err != nil {
		return user.Identity{}, fmt.Errorf("load current user: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if !found || key == "" {
		return user.Identity{}, nil
	}
	id, err := user.ParseKey(key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("ignoring malformed current user")
		return user.Identity{}, nil
	}
	return id, nil
}

// SetCurrentUser binds the session to id.
func (s *Store) SetCurrentUser(id user.Identity) error {
	if err := checkIdentity("identity", id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(KeyCurrentUser, []byte(id.Key())); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	return nil
}

// Get returns one hazard by id.
func (s *Store) Get(hazardID int64) (Hazard, error) {
	snap, err := s.read()
	if err != nil {
		return Hazard{}, err
	}
	i, err := snap.find(hazardID)
	if err != nil {
		return Hazard{}, err
	}
	return snap.hazards[i], nil
}

// ListAll returns every hazard in submission order.
func (s *Store) ListAll() ([]Hazard, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.hazards, nil
}

// ListPending returns hazards still awaiting a vote outcome, in submission
// order.
func (s *Store) ListPending() ([]Hazard, error) {
	return s.filter(func(h Hazard) bool { return h.ValidationStatus == ValidationPending })
}

// ListForValidation returns validated hazards, most urgent category first.
// Hazards of equal urgency keep submission order.
func (s *Store) ListForValidation() ([]Hazard, error) {
	out, err := s.filter(func(h Hazard) bool { return h.ValidationStatus == ValidationValid })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Urgency() > out[j].Urgency()
	})
	return out, nil
}

// Leaderboard ranks all known users by points.
func (s *Store) Leaderboard() ([]user.Standing, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	return snap.users.Leaderboard(), nil
}

func (s *Store) filter(keep func(Hazard) bool) ([]Hazard, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []Hazard
	for _, h := range snap.hazards {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *Store) read() (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func checkIdentity(field string, id user.Identity) error {
	if id.IsZero() {
		return &ValidationError{Field: field, Reason: "Darpan ID is required"}
	}
	if err := id.Validate(); err != nil {
		return &ValidationError{Field: field, Reason: err.Error()}
	}
	return nil
}
