// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config controls runtime behavior of the CLI.
type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string `env:"PACER_DB"`

	LogLevel string `env:"PACER_LOG_LEVEL" envDefault:"info"`

	// FFProbe is the ffprobe executable used to read video durations.
	FFProbe string `env:"PACER_FFPROBE" envDefault:"ffprobe"`

	// HoursPerDay is the daily study time assumed when suggesting deadlines.
	HoursPerDay float64 `env:"PACER_HOURS_PER_DAY" envDefault:"2"`

	PomodoroWork  time.Duration `env:"PACER_POMODORO_WORK" envDefault:"25m"`
	PomodoroBreak time.Duration `env:"PACER_POMODORO_BREAK" envDefault:"5m"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		FFProbe:       "ffprobe",
		HoursPerDay:   2,
		PomodoroWork:  25 * time.Minute,
		PomodoroBreak: 5 * time.Minute,
	}
}

// Load reads an optional .env file from the working directory and then
// parses the environment. Variables already set take precedence over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the environment without touching .env files.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unusable values and fills empty ones with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if strings.TrimSpace(c.FFProbe) == "" {
		c.FFProbe = def.FFProbe
	}
	if c.HoursPerDay < 0 || c.HoursPerDay > 24 {
		return fmt.Errorf("invalid hours per day %g: must be between 0 and 24", c.HoursPerDay)
	}
	if c.HoursPerDay == 0 {
		c.HoursPerDay = def.HoursPerDay
	}
	if c.PomodoroWork <= 0 {
		c.PomodoroWork = def.PomodoroWork
	}
	if c.PomodoroBreak <= 0 {
		c.PomodoroBreak = def.PomodoroBreak
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
