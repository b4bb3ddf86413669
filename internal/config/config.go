// Package config loads the optional user configuration. The config file is
// JSONC (comments and trailing commas allowed) and currently holds one
// knob: where the bookmark store lives.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	DataFile string `json:"data_file,omitempty"`
}

var (
	errConfigNotFound = errors.New("config file not found")
	errConfigInvalid  = errors.New("invalid config file")
)

// appDir is the directory name under the user config root.
const appDir = "sbm"

// DataFileName is the default store file name.
const DataFileName = "data.json"

// configRoot returns the user config root: $XDG_CONFIG_HOME if set,
// otherwise ~/.config. Empty if the home directory cannot be determined.
func configRoot(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return xdg
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config")
}

// Load reads the config file. With an empty explicitPath the global file
// ($XDG_CONFIG_HOME/sbm/config.json or ~/.config/sbm/config.json) is used
// and may be absent; an explicit path must exist.
func Load(env map[string]string, explicitPath string) (Config, error) {
	path := explicitPath
	mustExist := explicitPath != ""

	if path == "" {
		root := configRoot(env)
		if root == "" {
			return Config{}, nil
		}

		path = filepath.Join(root, appDir, "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("%w: %s", errConfigNotFound, path)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

// DataFile resolves the store path: the config value if set (with a
// leading ~/ expanded), otherwise the default next to the config file.
func DataFile(cfg Config, env map[string]string) (string, error) {
	if cfg.DataFile != "" {
		return expandHome(cfg.DataFile)
	}

	root := configRoot(env)
	if root == "" {
		return "", errors.New("cannot determine config directory (set --store)")
	}

	return filepath.Join(root, appDir, DataFileName), nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %s: %w", path, err)
	}

	return filepath.Join(home, path[2:]), nil
}
