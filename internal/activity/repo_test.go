package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/notepid/hazardwatch/internal/db"
)

func TestRepoRecordAndRecent(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "activity.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer database.Close()

	repo := NewRepo(database.DB)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.Record(Entry{At: at, Kind: KindSubmitted, HazardID: 7, Actor: "alice1"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(Entry{At: at.Add(time.Minute), Kind: KindPoints, HazardID: 7, Actor: "bobby1", Points: 1, Detail: "vote"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := repo.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != KindPoints || entries[0].Points != 1 || entries[0].Actor != "bobby1" {
		t.Fatalf("expected newest points entry first, got %+v", entries[0])
	}
	if !entries[1].At.Equal(at) || entries[1].HazardID != 7 {
		t.Fatalf("unexpected oldest entry: %+v", entries[1])
	}

	limited, err := repo.Recent(1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected 1 entry with limit, got %d err=%v", len(limited), err)
	}
}

func TestLogRecent(t *testing.T) {
	l := NewLog()
	for i := 1; i <= 3; i++ {
		l.Record(Entry{Kind: KindVoted, HazardID: int64(i)})
	}

	entries, _ := l.Recent(2)
	if len(entries) != 2 || entries[0].HazardID != 3 || entries[1].HazardID != 2 {
		t.Fatalf("expected hazards 3,2 newest first, got %+v", entries)
	}
	if empty, _ := l.Recent(0); len(empty) != 0 {
		t.Fatalf("expected no entries for zero limit")
	}
}
