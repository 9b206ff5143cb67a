// Package config loads balloonlog configuration from TOML.
// Defaults cover a fresh install; ~/.balloonlog/config.toml overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Client   ClientConfig   `toml:"client"`
	Storage  StorageConfig  `toml:"storage"`
	Day      DayConfig      `toml:"day"`
	Altitude AltitudeConfig `toml:"altitude"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig controls the REST backend.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ClientConfig controls the questioning client.
type ClientConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"` // Go duration string
}

// StorageConfig controls the sqlite database location.
type StorageConfig struct {
	Dir       string `toml:"dir"`        // data directory, db file lives inside
	BackupDir string `toml:"backup_dir"` // rotated snapshot directory
}

// DayConfig controls the slot window.
type DayConfig struct {
	WindowEnd string `toml:"window_end"` // "HH:MM" past-midnight close of the slot window
}

// AltitudeConfig controls the display projection.
type AltitudeConfig struct {
	Floor     int `toml:"floor"`         // altitude never displays below this
	StepDelay int `toml:"step_delay_ms"` // delay between animation steps
}

// LogConfig controls logging output. When File is set the server log is
// rotated with lumberjack.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DefaultConfig returns the configuration for a fresh install.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 10000,
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:10000",
			Timeout: "10s",
		},
		Storage: StorageConfig{
			Dir:       filepath.Join(Home(), "data"),
			BackupDir: filepath.Join(Home(), "backups"),
		},
		Day: DayConfig{
			WindowEnd: "03:00",
		},
		Altitude: AltitudeConfig{
			Floor:     0,
			StepDelay: 20,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Home returns the balloonlog home directory. BALLOONLOG_HOME overrides
// the default ~/.balloonlog.
func Home() string {
	if env := os.Getenv("BALLOONLOG_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".balloonlog")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Home(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
