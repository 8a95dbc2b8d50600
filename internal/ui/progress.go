// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressConfig controls whether and how progress bars render.
// Quiet and JSON output both suppress the bar since it would corrupt
// piped or machine-readable output.
type ProgressConfig struct {
	Enabled bool
}

// NewProgressConfig derives progress bar settings from the CLI's
// global flags: disabled under --quiet, JSON output, or whenever color
// output is off (--no-color, NO_COLOR, or stdout not a terminal; see
// InitColors).
func NewProgressConfig(quiet, jsonMode bool) ProgressConfig {
	if quiet || jsonMode {
		return ProgressConfig{Enabled: false}
	}
	return ProgressConfig{Enabled: !color.NoColor}
}

// NewProgressBar creates a progress bar with the given total and
// description, or a no-op bar when cfg.Enabled is false.
func NewProgressBar(cfg ProgressConfig, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return progressbar.DefaultSilent(total)
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
