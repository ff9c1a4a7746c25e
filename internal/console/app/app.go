package app

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/notepid/hazardwatch/internal/activity"
	"github.com/notepid/hazardwatch/internal/config"
	"github.com/notepid/hazardwatch/internal/db"
	"github.com/notepid/hazardwatch/internal/hazard"
)

// Journal is where the store records activity and where the console reads
// it back.
type Journal interface {
	hazard.Journal
	Recent(limit int) ([]activity.Entry, error)
}

type App struct {
	Config *config.Config
	DBPath string
	DB     *db.DB // nil when running in memory

	Store    *hazard.Store
	Activity Journal
}

// New wires the store to SQLite, or to in-memory storage when memory is set.
func New(cfg *config.Config, memory bool) (*App, func(), error) {
	if memory {
		journal := activity.NewLog()
		a := &App{
			Config:   cfg,
			Store:    hazard.NewStore(hazard.NewMemoryStorage(), cfg.Rules(), hazard.WithJournal(journal)),
			Activity: journal,
		}
		log.Info("running with in-memory storage")
		return a, func() {}, nil
	}

	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	path := cfg.DatabasePath()
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}

	journal := activity.NewRepo(database.DB)
	a := &App{
		Config:   cfg,
		DBPath:   path,
		DB:       database,
		Store:    hazard.NewStore(database, cfg.Rules(), hazard.WithJournal(journal)),
		Activity: journal,
	}
	log.WithField("path", path).Info("database opened")

	cleanup := func() {
		_ = database.Close()
	}

	return a, cleanup, nil
}
