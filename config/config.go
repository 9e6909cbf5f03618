// Package config loads factory options from a JSON or YAML file, for
// deployments that want Init's parameters out of a file rather than
// hardcoded options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Factory is the on-disk shape of one factory's Init parameters.
type Factory struct {
	Name             string `json:"name" yaml:"name"`
	MachineID        uint16 `json:"machineId" yaml:"machineId"`
	EpochRFC3339     string `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	BaseKeyHex       string `json:"baseKeyHex,omitempty" yaml:"baseKeyHex,omitempty"`
	Cipher64         string `json:"cipher64,omitempty" yaml:"cipher64,omitempty"`
	Cipher96         string `json:"cipher96,omitempty" yaml:"cipher96,omitempty"`
	Cipher128        string `json:"cipher128,omitempty" yaml:"cipher128,omitempty"`
	PBKDF2Iterations int    `json:"pbkdf2Iterations,omitempty" yaml:"pbkdf2Iterations,omitempty"`
	SpeckEnabled     bool   `json:"speckEnabled,omitempty" yaml:"speckEnabled,omitempty"`
}

// Config is the top-level configuration file: one or more factories to
// initialize at startup.
type Config struct {
	Factories []Factory `json:"factories" yaml:"factories"`
}

// Default returns an empty configuration; a caller with no config file
// is expected to call nonce.Init directly instead.
func Default() Config {
	return Config{}
}

// Load reads a factory configuration from a JSON or YAML file, chosen
// by the file extension. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("nonce/config: read %s: %w", path, err)
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("nonce/config: parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("nonce/config: parse json: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("nonce/config: parse %s as json: %w", path, err)
		}
	}
	return cfg, nil
}
