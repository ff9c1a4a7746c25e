package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "hazardwatch.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Fatalf("close database: %v", err)
		}
	})
	return database
}

func TestLoadMissingRecord(t *testing.T) {
	database := openTestDB(t)

	value, found, err := database.Load("hazards")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found || value != nil {
		t.Fatalf("expected missing record, got found=%v value=%q", found, value)
	}
}

func TestSaveThenLoadReplaces(t *testing.T) {
	database := openTestDB(t)

	if err := database.Save("currentUser", []byte(`"alice1"`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := database.Save("currentUser", []byte(`"NGO_river42"`)); err != nil {
		t.Fatalf("save again: %v", err)
	}

	value, found, err := database.Load("currentUser")
	if err != nil || !found {
		t.Fatalf("expected record, got found=%v err=%v", found, err)
	}
	if string(value) != `"NGO_river42"` {
		t.Fatalf("expected latest value, got %q", value)
	}
}

func TestSaveRecordsWritesAll(t *testing.T) {
	database := openTestDB(t)

	err := database.SaveRecords(map[string][]byte{
		"users":   []byte(`{"alice1":{"points":1,"level":1}}`),
		"hazards": []byte(`[]`),
	})
	if err != nil {
		t.Fatalf("save records: %v", err)
	}

	for _, key := range []string{"users", "hazards"} {
		if _, found, err := database.Load(key); err != nil || !found {
			t.Fatalf("expected %s to be stored, found=%v err=%v", key, found, err)
		}
	}
}

func TestOpenTwiceRunsMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Save("hazards", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	var count int
	if err := second.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("expected %d migrations recorded, got %d", len(migrations), count)
	}
	if _, found, _ := second.Load("hazards"); !found {
		t.Fatalf("expected data to survive reopen")
	}
}
