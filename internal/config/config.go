// Package config loads and saves user preferences for the bluetrax tools.
//
// Preferences live in a YAML file under the user config directory
// (~/.config/bluetrax/config.yaml on Linux). Everything in it has a
// sensible default, so a missing file is not an error; command-line flags
// always win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "bluetrax"
	configFile = "config.yaml"
)

// Preferences are the persisted defaults for the scan and watch commands.
type Preferences struct {
	// Device is the adapter index to scan with (hci0 is 0).
	Device int `yaml:"device"`

	// Length is the inquiry cycle length in 1.28s units.
	Length int `yaml:"length"`

	// Flush forces a sink flush after every message instead of only at
	// cycle boundaries.
	Flush bool `yaml:"flush"`

	// Listen, when set, serves the live record feed on this address.
	Listen string `yaml:"listen,omitempty"`

	// LogLevel overrides the default logging verbosity.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the preferences used when no config file exists.
func Default() *Preferences {
	return &Preferences{
		Device: 0,
		Length: 8,
	}
}

// Path returns the location of the preferences file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, appName, configFile), nil
}

// Load reads preferences from the given path. A missing file yields the
// defaults; a malformed one is an error so typos never silently vanish.
func Load(path string) (*Preferences, error) {
	prefs := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return prefs, nil
}

// Save writes preferences to the given path, creating the directory as
// needed.
func (p *Preferences) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
