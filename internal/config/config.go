// Package config handles essayflow's persisted configuration. The API
// credential is the only thing that survives across sessions; essays and
// results are memory-only by design.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvAPIKey overrides the configured credential for one session.
const EnvAPIKey = "ESSAYFLOW_API_KEY"

// Config is the on-disk configuration.
type Config struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url,omitempty"`
	Model         string `toml:"model,omitempty"`
	FallbackModel string `toml:"fallback_model,omitempty"`
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "essayflow", "config.toml"), nil
}

// Load reads the config at path. A missing file is not an error; it yields
// an empty config.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating the directory if needed. The
// file holds a credential, so it is not group or world readable.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Credential resolves the effective API credential: explicit flag value,
// then environment, then the config file. Empty means none available.
func (c *Config) Credential(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIKey); env != "" {
		return env
	}
	return c.APIKey
}
