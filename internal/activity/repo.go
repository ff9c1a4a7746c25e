package activity

import (
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Repo persists journal entries in the activity table.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new activity repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Record appends an entry. A zero At is stamped with the current time.
func (r *Repo) Record(e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT INTO activity (at_ms, kind, hazard_id, actor, points, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.At.UTC().UnixMilli(), string(e.Kind), e.HazardID, e.Actor, e.Points, e.Detail)
	if err != nil {
		return fmt.Errorf("record %s activity: %w", e.Kind, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *Repo) Recent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, at_ms, kind, hazard_id, actor, points, detail
		FROM activity ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var atMs int64
		var kind string
		if err := rows.Scan(&e.ID, &atMs, &kind, &e.HazardID, &e.Actor, &e.Points, &e.Detail); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(atMs).UTC()
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Log is an in-memory journal for runs without a database.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLog creates an empty in-memory journal.
func NewLog() *Log {
	return &Log{}
}

// Record appends an entry.
func (l *Log) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.At.IsZero() {
		e.At = time.Now()
	}
	e.ID = int64(len(l.entries) + 1)
	l.entries = append(l.entries, e)
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, min(limit, len(l.entries)))
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}
