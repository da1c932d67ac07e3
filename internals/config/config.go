// Package config holds the process-wide settings every API call reads:
// the token, the issue-backing repository, and the archive branch.
// Settings come from a YAML file written by the setup wizard, with
// environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

type Settings struct {
	Token  string `yaml:"token"`
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
}

// ErrNotConfigured means neither the settings file nor the environment
// provides the required values; the setup wizard has to run first.
var ErrNotConfigured = errors.New("gitpress is not configured, run gitpress-setup")

// DefaultPath is where the wizard writes and Load reads by default.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "gitpress", "config.yaml")
}

// Load reads path (DefaultPath when empty) and applies environment
// overrides: GITPRESS_TOKEN, GITPRESS_OWNER, GITPRESS_REPO,
// GITPRESS_BRANCH.
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	var s Settings
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// environment-only configuration is fine
	default:
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	applyEnv(&s.Token, "GITPRESS_TOKEN")
	applyEnv(&s.Owner, "GITPRESS_OWNER")
	applyEnv(&s.Repo, "GITPRESS_REPO")
	applyEnv(&s.Branch, "GITPRESS_BRANCH")

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate requires token, owner, and repo. Branch may be empty: CDN
// URLs then omit the version tag, and archiving is unavailable.
func (s Settings) Validate() error {
	if s.Token == "" || s.Owner == "" || s.Repo == "" {
		return ErrNotConfigured
	}
	return nil
}

// Save writes the settings file, creating its directory, with
// owner-only permissions since it contains the token.
func (s Settings) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
