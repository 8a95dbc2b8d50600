// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package xdgpaths enumerates candidate ".desktop" files from the
// freedesktop XDG Base Directory application search path
// (http://standards.freedesktop.org/basedir-spec/basedir-spec-latest.html).
// It does not parse or validate the files it finds — that is pkg/appindex's
// job — and it does not recurse into subdirectories.
package xdgpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const applicationsSubdir = "applications"

// DataHome returns $XDG_DATA_HOME, defaulting to "$HOME/.local/share" when
// unset or empty, per the XDG Base Directory Specification.
func DataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// DataDirs returns the colon-separated $XDG_DATA_DIRS, defaulting to
// "/usr/local/share:/usr/share" when unset or empty, in preference order.
func DataDirs() []string {
	v := os.Getenv("XDG_DATA_DIRS")
	if v == "" {
		v = "/usr/local/share:/usr/share"
	}
	var dirs []string
	for _, d := range strings.Split(v, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// ApplicationDirs returns the full, preference-ordered list of
// "<data dir>/applications" directories to search: XDG_DATA_HOME first,
// then each XDG_DATA_DIRS entry.
func ApplicationDirs() []string {
	dirs := make([]string, 0, 1+len(DataDirs()))
	if home := DataHome(); home != "" {
		dirs = append(dirs, filepath.Join(home, applicationsSubdir))
	}
	for _, d := range DataDirs() {
		dirs = append(dirs, filepath.Join(d, applicationsSubdir))
	}
	return dirs
}

// ApplicationFiles enumerates every top-level directory entry across
// ApplicationDirs(), in enumeration order. It does not recurse and does
// not filter by extension — both are left to the caller. A directory
// that cannot be read (missing, permission denied, or not a directory)
// is silently skipped, so one bad entry in $XDG_DATA_DIRS never
// prevents discovery in the rest.
func ApplicationFiles() []string {
	var files []string
	for _, dir := range ApplicationDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files
}
