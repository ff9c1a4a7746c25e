package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/notepid/hazardwatch/internal/hazard"
)

// Config holds the hazardwatch configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Log     LogConfig     `yaml:"log"`
	Scoring ScoringConfig `yaml:"scoring"`
	Reports ReportsConfig `yaml:"reports"`
}

// PathsConfig holds filesystem paths for data.
type PathsConfig struct {
	Data     string `yaml:"data" env:"HAZARDWATCH_DATA_DIR"`
	Database string `yaml:"database" env:"HAZARDWATCH_DATABASE"`
}

// LogConfig controls the log file written while the console runs.
type LogConfig struct {
	Level  string `yaml:"level" env:"HAZARDWATCH_LOG_LEVEL"`
	Format string `yaml:"format" env:"HAZARDWATCH_LOG_FORMAT"`
	File   string `yaml:"file" env:"HAZARDWATCH_LOG_FILE"`
}

// ScoringConfig holds the voting and points rules.
type ScoringConfig struct {
	VoteThreshold   int  `yaml:"vote_threshold" env:"HAZARDWATCH_VOTE_THRESHOLD"`
	ReporterBonus   int  `yaml:"reporter_bonus" env:"HAZARDWATCH_REPORTER_BONUS"`
	VoterReward     int  `yaml:"voter_reward" env:"HAZARDWATCH_VOTER_REWARD"`
	NGOResolveBonus int  `yaml:"ngo_resolve_bonus" env:"HAZARDWATCH_NGO_RESOLVE_BONUS"`
	AllowSelfVote   bool `yaml:"allow_self_vote" env:"HAZARDWATCH_ALLOW_SELF_VOTE"`
}

// ReportsConfig holds limits applied to new reports.
type ReportsConfig struct {
	MinDescription int   `yaml:"min_description" env:"HAZARDWATCH_MIN_DESCRIPTION"`
	MaxImageBytes  int64 `yaml:"max_image_bytes" env:"HAZARDWATCH_MAX_IMAGE_BYTES"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	rules := hazard.DefaultRules()
	return &Config{
		Paths: PathsConfig{
			Data: "./data",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scoring: ScoringConfig{
			VoteThreshold:   rules.VoteThreshold,
			ReporterBonus:   rules.ReporterBonus,
			VoterReward:     rules.VoterReward,
			NGOResolveBonus: rules.NGOResolveBonus,
			AllowSelfVote:   rules.AllowSelfVote,
		},
		Reports: ReportsConfig{
			MinDescription: rules.MinDescription,
			MaxImageBytes:  rules.MaxImageBytes,
		},
	}
}

// Load reads and parses a YAML config file, then applies HAZARDWATCH_*
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the store cannot work with.
func (c *Config) Validate() error {
	if c.Scoring.VoteThreshold <= 0 {
		return fmt.Errorf("scoring.vote_threshold must be positive, got %d", c.Scoring.VoteThreshold)
	}
	for name, v := range map[string]int{
		"scoring.reporter_bonus":    c.Scoring.ReporterBonus,
		"scoring.voter_reward":      c.Scoring.VoterReward,
		"scoring.ngo_resolve_bonus": c.Scoring.NGOResolveBonus,
		"reports.min_description":   c.Reports.MinDescription,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if c.Reports.MaxImageBytes < 0 {
		return fmt.Errorf("reports.max_image_bytes must not be negative, got %d", c.Reports.MaxImageBytes)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// DatabasePath returns the SQLite file, defaulting to hazardwatch.db in the
// data directory.
func (c *Config) DatabasePath() string {
	if c.Paths.Database != "" {
		return c.Paths.Database
	}
	return filepath.Join(c.Paths.Data, "hazardwatch.db")
}

// LogPath returns the log file, defaulting to hazardwatch.log in the data
// directory.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Paths.Data, "hazardwatch.log")
}

// Rules converts the scoring and report settings for the store.
func (c *Config) Rules() hazard.Rules {
	return hazard.Rules{
		VoteThreshold:   c.Scoring.VoteThreshold,
		ReporterBonus:   c.Scoring.ReporterBonus,
		VoterReward:     c.Scoring.VoterReward,
		NGOResolveBonus: c.Scoring.NGOResolveBonus,
		AllowSelfVote:   c.Scoring.AllowSelfVote,
		MinDescription:  c.Reports.MinDescription,
		MaxImageBytes:   c.Reports.MaxImageBytes,
	}
}
