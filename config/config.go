package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"bacgo/core"
)

// Config holds the complete application configuration.
type Config struct {
	// RankingsDir is where the file-backed ranking store keeps its files.
	RankingsDir string `json:"rankings_dir" env:"BACGO_RANKINGS_DIR"`

	// Difficulties is the selectable difficulty catalog.
	Difficulties []DifficultyConfig `json:"difficulties,omitempty"`

	// Logging configuration.
	Logging LoggingConfig `json:"logging"`
}

// DifficultyConfig is one catalog entry.
type DifficultyConfig struct {
	Label      string `json:"label"`
	NumberSize int    `json:"number_size"`
	DigitsNum  int    `json:"digits_num"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `json:"level" env:"BACGO_LOG_LEVEL"`
	Output string `json:"output" env:"BACGO_LOG_OUTPUT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RankingsDir: ".rankings",
		Difficulties: []DifficultyConfig{
			{Label: "easy", NumberSize: 3, DigitsNum: 6},
			{Label: "normal", NumberSize: 4, DigitsNum: 9},
			{Label: "hard", NumberSize: 5, DigitsNum: 15},
		},
		Logging: LoggingConfig{Level: "info", Output: "stderr"},
	}
}

// Load builds the configuration from defaults and environment overrides.
func Load() (*Config, error) {
	cfg := Default()
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a JSON configuration file on top of the defaults, then
// applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "error": true, "fatal": true,
	"panic": true, "disabled": true,
}

// Validate checks the rankings directory, catalog and logging settings.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.RankingsDir) == "" {
		errs = append(errs, "rankings_dir is empty")
	}
	if len(c.Difficulties) == 0 {
		errs = append(errs, "difficulties catalog is empty")
	}
	for i, d := range c.Difficulties {
		if _, err := core.NewDifficulty(d.NumberSize, d.DigitsNum); err != nil {
			errs = append(errs, fmt.Sprintf("difficulties[%d] (%s): %v", i, d.Label, err))
		}
	}
	if !logLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

// NumberParams materializes the catalog into validated number parameters.
func (c *Config) NumberParams() ([]core.NumberParams, error) {
	out := make([]core.NumberParams, 0, len(c.Difficulties))
	for _, d := range c.Difficulties {
		difficulty, err := core.NewDifficulty(d.NumberSize, d.DigitsNum)
		if err != nil {
			return nil, err
		}
		params, err := core.StandardParams(difficulty, d.Label)
		if err != nil {
			return nil, err
		}
		out = append(out, params)
	}
	return out, nil
}
