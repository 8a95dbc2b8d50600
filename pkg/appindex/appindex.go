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

// Package appindex loads and caches normalized application records from
// ".desktop" files, supporting a full reload and an incremental
// mtime-delta refresh. It is the one stateful piece of the applications
// provider: the scoring engine (pkg/scoring) is pure and reads whatever
// snapshot the index hands it.
package appindex

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kraklabs/indelve/pkg/desktopentry"
	"github.com/kraklabs/indelve/pkg/util"
	"github.com/kraklabs/indelve/pkg/xdgpaths"
)

// AppRecord is the normalized, validated representation of one
// ".desktop" file. Every AppRecord that ever enters an Index was a
// regular ".desktop" file, typed Application, not Hidden, not a
// Screensaver, with a resolvable TryExec (if any) and a non-empty Exec,
// at the moment it was added.
type AppRecord struct {
	Name        string
	Exec        string
	Comment     string
	GenericName string
	Icon        string
}

// ProgressCallback is called to report progress while a full load scans
// discovered ".desktop" paths.
// Parameters:
//   - current: number of paths examined so far (1-based)
//   - total: total number of discovered paths
type ProgressCallback func(current, total int64)

// Index is the in-memory cache of AppRecords for one discovery pass.
// Index is safe for concurrent Snapshot calls from any number of
// goroutines; Refresh mutates it under a lock, publishing an immutable
// snapshot slice so concurrent readers never observe a half-built index.
type Index struct {
	mu              sync.RWMutex
	records         []AppRecord
	lastRefreshTime time.Time
	logger          *slog.Logger
	onProgress      ProgressCallback // Optional callback for progress reporting

	// discover is swappable for tests; defaults to xdgpaths.ApplicationFiles.
	discover func() []string
}

// New creates an Index and performs the initial full load. The returned
// error is only non-nil if filesystem enumeration itself cannot be
// attempted at all; individual file failures never propagate (they are
// swallowed and the offending file excluded).
func New(logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{
		logger:   logger,
		discover: xdgpaths.ApplicationFiles,
	}
	idx.fullLoad()
	return idx, nil
}

// SetProgressCallback sets an optional callback invoked while a full
// load scans discovered paths, so a caller (e.g. the CLI under
// --rebuild) can drive a progress bar. It does not apply to the initial
// load performed by New, only to subsequent Refresh(force=true) calls.
func (idx *Index) SetProgressCallback(cb ProgressCallback) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.onProgress = cb
}

// Snapshot returns the current records as of the last completed Refresh
// (or the initial load). The returned slice must not be mutated by the
// caller; it is shared with the index's internal state.
func (idx *Index) Snapshot() []AppRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.records
}

// LastRefreshTime returns the timestamp of the most recent successful
// full load or partial refresh.
func (idx *Index) LastRefreshTime() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastRefreshTime
}

// Refresh reloads or incrementally updates the index.
//
// Refresh(force=true) discards the current index and repeats a full
// load from scratch — afterwards the index equals what a fresh New()
// would produce from the current filesystem.
//
// Refresh(force=false) compares each discovered file's mtime against
// LastRefreshTime and, for any file modified since, attempts to add a
// new AppRecord. This is deliberately limited: it *appends*
// newly-modified entries without removing the prior version of the same
// file or evicting files that have disappeared. A stricter
// replace-by-path-and-sweep-missing semantics would be an easy upgrade,
// but this append-on-mtime-change baseline matches the original
// provider's behavior and is kept as a documented, deliberate limitation
// rather than silently changed.
func (idx *Index) Refresh(force bool) {
	if force {
		idx.fullLoad()
		return
	}
	idx.incrementalRefresh()
}

func (idx *Index) fullLoad() {
	paths := idx.discover()

	idx.mu.RLock()
	onProgress := idx.onProgress
	idx.mu.RUnlock()

	records := make([]AppRecord, 0, len(paths))
	for i, path := range paths {
		if rec, ok := idx.tryLoad(path); ok {
			records = append(records, rec)
		}
		if onProgress != nil {
			onProgress(int64(i+1), int64(len(paths)))
		}
	}

	idx.mu.Lock()
	idx.records = records
	idx.lastRefreshTime = time.Now()
	idx.mu.Unlock()

	idx.logger.Info("appindex.full_load", "records", len(records))
}

func (idx *Index) incrementalRefresh() {
	paths := idx.discover()
	since := idx.LastRefreshTime()

	var added []AppRecord
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.ModTime().After(since) {
			continue
		}
		if rec, ok := idx.tryLoad(path); ok {
			added = append(added, rec)
		}
	}

	idx.mu.Lock()
	idx.records = append(idx.records, added...)
	idx.lastRefreshTime = time.Now()
	idx.mu.Unlock()

	if len(added) > 0 {
		idx.logger.Info("appindex.incremental_refresh", "added", len(added))
	}
}

// tryLoad attempts to build a validated AppRecord from the file at path.
// Any failure — I/O, parse, or validation — is reported as
// (zero-value, false); the caller excludes the file and continues.
// Parse failures are also logged at debug level.
func (idx *Index) tryLoad(path string) (AppRecord, bool) {
	if filepath.Ext(path) != ".desktop" {
		return AppRecord{}, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return AppRecord{}, false
	}

	entry, err := desktopentry.Parse(path)
	if err != nil {
		idx.logger.Debug("appindex.parse_failed", "path", path, "err", err)
		return AppRecord{}, false
	}

	if entry.Type != "Application" {
		return AppRecord{}, false
	}
	if entry.Hidden {
		return AppRecord{}, false
	}
	for _, cat := range entry.Categories {
		if cat == "Screensaver" {
			return AppRecord{}, false
		}
	}
	if entry.TryExec != "" {
		if _, ok := util.Which(entry.TryExec); !ok {
			return AppRecord{}, false
		}
	}
	if entry.Exec == "" {
		return AppRecord{}, false
	}

	return AppRecord{
		Name:        entry.Name,
		Exec:        entry.Exec,
		Comment:     entry.Comment,
		GenericName: entry.GenericName,
		Icon:        entry.Icon,
	}, true
}
