// Package config loads workspace settings from the .chassis.yaml file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file, looked up at the
// workspace root.
const FileName = ".chassis.yaml"

// Config controls which documents a workspace scan picks up and how they
// are stored.
type Config struct {
	// Include restricts scanning to paths matching these glob patterns,
	// relative to the workspace root. Empty means every recognized
	// document.
	Include []string `yaml:"include"`

	// Exclude drops paths matching these glob patterns. Exclusions win
	// over inclusions.
	Exclude []string `yaml:"exclude"`

	// Worlds includes .world documents in the scan alongside .sdf ones.
	Worlds bool `yaml:"worlds"`

	// StoreRaw keeps a compressed copy of each document body in the store
	// so queries can serve the original text without touching disk.
	StoreRaw bool `yaml:"store_raw"`
}

// Default returns the configuration used when no .chassis.yaml exists.
func Default() *Config {
	return &Config{
		Worlds:   true,
		StoreRaw: true,
	}
}

// Load reads the workspace configuration from rootDir. A missing file is
// not an error; the defaults apply. Unknown keys are rejected so that a
// typo cannot silently change the scan scope.
func Load(rootDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, FileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("parsing %s: invalid glob pattern %q", FileName, pattern)
		}
	}
	return cfg, nil
}

// Matches reports whether a workspace-relative path passes the include and
// exclude patterns. It does not check the file extension; the walker owns
// which document types exist.
func (c *Config) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}

	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
