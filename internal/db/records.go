package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Load returns the value stored under key. found is false when the key has
// never been saved.
func (db *DB) Load(key string) (value []byte, found bool, err error) {
	err = db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load record %s: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key, replacing any previous value.
func (db *DB) Save(key string, value []byte) error {
	if _, err := db.Exec(upsertRecord, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("save record %s: %w", key, err)
	}
	return nil
}

// SaveRecords stores several records in one transaction: either all of them
// are written or none.
func (db *DB) SaveRecords(records map[string][]byte) error {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, k := range keys {
		if _, err := tx.Exec(upsertRecord, k, records[k], now); err != nil {
			return fmt.Errorf("save record %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

const upsertRecord = `
	INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`
