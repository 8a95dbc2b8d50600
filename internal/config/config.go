// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads indelve's optional YAML configuration file,
// ~/.config/indelve/config.yaml, following the same load/override
// pattern as the rest of the ambient stack: defaults first, file
// overrides defaults, environment variables override the file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/indelve/internal/errors"
)

const (
	configDirName  = "indelve"
	configFileName = "config.yaml"

	// EnvProviders overrides the configured provider list with a
	// comma-separated list of provider names.
	EnvProviders = "INDELVE_PROVIDERS"
)

// Config is the on-disk shape of config.yaml.
type Config struct {
	// Providers, if non-empty, restricts the aggregator to this list
	// instead of the full static registry.
	Providers []string `yaml:"providers,omitempty"`

	// Columns is the default set of columns shown by the table
	// formatter when --columns is not passed.
	Columns []string `yaml:"columns,omitempty"`

	// MetricsAddr, if set, is the default --metrics-addr value.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// DefaultConfig returns the configuration used when no config file is
// present.
func DefaultConfig() *Config {
	return &Config{
		Columns: []string{"name", "description"},
	}
}

// Path returns the path to the user's config file, honoring
// $XDG_CONFIG_HOME when set.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDirName, configFileName)
}

// Load reads and parses the config file at Path(), applying
// environment variable overrides. A missing file is not an error: it
// yields DefaultConfig() with environment overrides still applied.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
		// No config file; defaults stand.
	case err != nil:
		return nil, errors.NewConfigError(
			"Cannot read configuration file",
			err.Error(),
			"Check file permissions, or remove the file to use defaults",
			err,
		)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError(
				"Invalid configuration format",
				"YAML parsing failed in "+Path(),
				"Fix the syntax error or delete the file to fall back to defaults",
				err,
			)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvProviders); v != "" {
		parts := strings.Split(v, ",")
		providers := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				providers = append(providers, p)
			}
		}
		c.Providers = providers
	}
}
