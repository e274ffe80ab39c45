// Package config loads and saves the YAML configuration file. Credentials
// (Google OAuth, CalDAV password) stay in the environment or .env; the
// config file only carries non-secret settings.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DataFile is the path of the flat JSON state file.
	DataFile string `yaml:"data_file"`

	// CalendarName is the CalDAV calendar events are pushed into.
	CalendarName string `yaml:"calendar_name"`

	// CalDAVEndpoint is the CalDAV server base URL. Defaults to iCloud.
	CalDAVEndpoint string `yaml:"caldav_endpoint"`

	// GoogleCalendarID is the target calendar for Google pushes.
	// "primary" addresses the account's default calendar.
	GoogleCalendarID string `yaml:"google_calendar_id"`
}

// DefaultPath returns the default config location, ~/.flowlyfe/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowlyfe", "config.yaml"), nil
}

// DefaultConfig returns an in-memory default configuration. The data file
// lives next to the config file.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills missing values with defaults so partially-filled configs
// from older versions keep working.
func (c *Config) Normalize() {
	if c.DataFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataFile = filepath.Join(home, ".flowlyfe", "state.json")
		} else {
			c.DataFile = "state.json"
		}
	}
	if c.CalendarName == "" {
		c.CalendarName = "Flowlyfe"
	}
	if c.CalDAVEndpoint == "" {
		c.CalDAVEndpoint = "https://caldav.icloud.com/"
	}
	if c.GoogleCalendarID == "" {
		c.GoogleCalendarID = "primary"
	}
}

// Load reads the YAML config at path. On first run (file missing) a default
// config is written with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config atomically (temp file + rename) with 0600 perms,
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".flowlyfe-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
