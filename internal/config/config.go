// Package config loads runwise settings from TOML, a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all runwise configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Hiring  HiringConfig  `toml:"hiring"`
	Serve   ServeConfig   `toml:"serve"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ProjectionMonths int    `toml:"projection_months"`
	CurrencySymbol   string `toml:"currency_symbol"`
	DataDir          string `toml:"data_dir,omitempty"`
}

// HiringConfig holds the assumptions behind the hiring capacity estimate.
type HiringConfig struct {
	AverageSalary   float64 `toml:"average_salary"`
	MinRunwayMonths float64 `toml:"min_runway_months"`
}

// ServeConfig holds daemon settings.
type ServeConfig struct {
	Addr         string `toml:"addr"`
	Schedule     string `toml:"schedule"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Environment variables that override the file.
const (
	EnvDataDir  = "RUNWISE_DATA_DIR"
	EnvLogLevel = "RUNWISE_LOG_LEVEL"
	EnvCurrency = "RUNWISE_CURRENCY"
	EnvMonths   = "RUNWISE_PROJECTION_MONTHS"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ProjectionMonths: 24,
			CurrencySymbol:   "€",
		},
		Hiring: HiringConfig{
			AverageSalary:   12000,
			MinRunwayMonths: 6,
		},
		Serve: ServeConfig{
			Addr:         "127.0.0.1:8789",
			Schedule:     "@every 15s",
			EventsBuffer: 200,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runwise")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns where the database and daemon files live.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "runwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "runwise")
}

// DBPath returns the SQLite database path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir(), "runwise.db")
}

// Load reads .env (if present) and the config file, returning defaults for
// anything missing, then applies environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), fmt.Errorf("reading .env: %w", err)
	}
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path without touching .env, then applies
// environment overrides.
func LoadFile(path string) (Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ReadFile reads the config at path over the defaults, ignoring the
// environment. A missing file yields the defaults.
func ReadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.CurrencySymbol = v
	}
	if v := os.Getenv(EnvMonths); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s=%q: want a positive integer", EnvMonths, v)
		}
		cfg.General.ProjectionMonths = n
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
