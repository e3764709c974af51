// Package config loads process settings from the environment and game tuning
// from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration
type Config struct {
	ServerPort      string        `env:"PORT"             envDefault:"8080"`
	DatabaseType    string        `env:"DB_TYPE"          envDefault:"sqlite"`
	DatabasePath    string        `env:"DB_PATH"          envDefault:"./questforge.db"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	TimeZone        string        `env:"TIMEZONE"         envDefault:"UTC"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	Debug           bool          `env:"DEBUG"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	GameConfigPath  string        `env:"GAME_CONFIG"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Email     EmailConfig     `envPrefix:"SES_"`

	// Game is filled from GameConfigPath, not the environment
	Game GameConfig
}

// RateLimitConfig bounds API requests per client IP
type RateLimitConfig struct {
	PerMinute int `env:"PER_MINUTE" envDefault:"120"`
	Burst     int `env:"BURST"      envDefault:"30"`
}

// EmailConfig configures level-up notifications over Amazon SES.
// An empty FromEmail disables sending.
type EmailConfig struct {
	Region    string `env:"REGION"     envDefault:"us-east-1"`
	FromEmail string `env:"FROM_EMAIL"`
	FromName  string `env:"FROM_NAME"  envDefault:"QuestForge"`
	AppURL    string `env:"APP_URL"    envDefault:"http://localhost:8080"`
}

// GameConfig tunes the game rules
type GameConfig struct {
	DailyQuestsCount int `toml:"daily_quests_count"`
	HistoryLimit     int `toml:"history_limit"`
	MaxSaveRetries   int `toml:"max_save_retries"`
}

// DefaultGameConfig returns the standard rules
func DefaultGameConfig() GameConfig {
	return GameConfig{
		DailyQuestsCount: 3,
		HistoryLimit:     50,
		MaxSaveRetries:   3,
	}
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	game, err := LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Game = game

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves TimeZone. Calendar days for streaks and daily draws are
// counted in this zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadGameConfig reads game tuning from a TOML file. An empty path or a
// missing file yields the defaults; missing or non-positive keys keep theirs.
func LoadGameConfig(path string) (GameConfig, error) {
	game := DefaultGameConfig()
	if path == "" {
		return game, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return game, nil
	}
	if err != nil {
		return game, fmt.Errorf("read game config: %w", err)
	}

	var file GameConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return game, fmt.Errorf("parse game config: %w", err)
	}
	if file.DailyQuestsCount > 0 {
		game.DailyQuestsCount = file.DailyQuestsCount
	}
	if file.HistoryLimit > 0 {
		game.HistoryLimit = file.HistoryLimit
	}
	if file.MaxSaveRetries > 0 {
		game.MaxSaveRetries = file.MaxSaveRetries
	}
	return game, nil
}

// Save writes the game tuning as TOML
func (g GameConfig) Save(path string) error {
	data, err := toml.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write game config: %w", err)
	}
	return nil
}
