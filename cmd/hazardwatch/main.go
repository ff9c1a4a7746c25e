package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/notepid/hazardwatch/internal/config"
	"github.com/notepid/hazardwatch/internal/console/app"
	"github.com/notepid/hazardwatch/internal/console/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code. Deferred cleanups have finished by the
// time it returns.
func run(args []string, stderr io.Writer) int {
	a, cleanup, err := start(args, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	log.Info("console starting")
	p := tea.NewProgram(ui.NewRootModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("console failed")
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	log.Info("console stopped")
	return 0
}

// start parses flags, loads configuration, points logging at the log file
// and opens the app. The returned cleanup closes the database, then the log.
func start(args []string, stderr io.Writer) (*app.App, func(), error) {
	fs := flag.NewFlagSet("hazardwatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	memory := fs.Bool("memory", false, "keep everything in memory instead of SQLite")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}

	logFile, err := setupLogging(cfg.Log, cfg.LogPath())
	if err != nil {
		return nil, nil, err
	}
	closeLog := func() {
		log.SetOutput(stderr)
		_ = logFile.Close()
	}

	a, cleanup, err := app.New(cfg, *memory)
	if err != nil {
		log.WithError(err).Error("failed to start")
		closeLog()
		return nil, nil, err
	}

	return a, func() {
		cleanup()
		closeLog()
	}, nil
}

// setupLogging sends logs to a file; the terminal belongs to the console.
func setupLogging(cfg config.LogConfig, path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		})
	}
	log.SetOutput(f)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	return f, nil
}
