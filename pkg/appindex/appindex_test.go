// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package appindex

import (
	"log/slog"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDesktopFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newTestIndex(t *testing.T, dir string) *Index {
	t.Helper()
	idx := &Index{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		discover: func() []string {
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			var paths []string
			for _, e := range entries {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
			return paths
		},
	}
	idx.fullLoad()
	return idx
}

const validEntry = `[Desktop Entry]
Type=Application
Name=Firefox
GenericName=Web Browser
Comment=Browse the World Wide Web
Exec=firefox %u
Icon=firefox
`

func TestFullLoad_ValidEntry(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)

	idx := newTestIndex(t, dir)
	records := idx.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "Firefox", records[0].Name)
	assert.False(t, idx.LastRefreshTime().IsZero())
}

func TestFullLoad_ExcludesHiddenScreensaverAndNonApplication(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "hidden.desktop", `[Desktop Entry]
Type=Application
Name=Hidden
Hidden=true
Exec=x
`)
	writeDesktopFile(t, dir, "screensaver.desktop", `[Desktop Entry]
Type=Application
Name=Saver
Categories=Screensaver;
Exec=x
`)
	writeDesktopFile(t, dir, "link.desktop", `[Desktop Entry]
Type=Link
Name=NotAnApp
Exec=x
`)
	writeDesktopFile(t, dir, "noexec.desktop", `[Desktop Entry]
Type=Application
Name=NoExec
`)

	idx := newTestIndex(t, dir)
	assert.Empty(t, idx.Snapshot())
}

func TestFullLoad_TryExecMustResolveOnPath(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "missing.desktop", `[Desktop Entry]
Type=Application
Name=Missing
TryExec=definitely-not-a-real-binary-xyz
Exec=x
`)
	writeDesktopFile(t, dir, "present.desktop", `[Desktop Entry]
Type=Application
Name=Present
TryExec=ls
Exec=ls
`)

	idx := newTestIndex(t, dir)
	records := idx.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "Present", records[0].Name)
}

func TestFullLoad_IgnoresNonDesktopFiles(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "readme.txt", "not a desktop file")

	idx := newTestIndex(t, dir)
	assert.Empty(t, idx.Snapshot())
}

func TestRefresh_ForceReloadsFromScratch(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)
	idx := newTestIndex(t, dir)
	require.Len(t, idx.Snapshot(), 1)

	require.NoError(t, os.Remove(filepath.Join(dir, "firefox.desktop")))
	idx.Refresh(true)
	assert.Empty(t, idx.Snapshot())
}

func TestRefresh_ForceIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)
	idx := newTestIndex(t, dir)

	idx.Refresh(true)
	first := idx.Snapshot()
	idx.Refresh(true)
	second := idx.Snapshot()
	assert.Equal(t, first, second)
}

func TestSetProgressCallback_ReportsEachPathOnFullLoad(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)
	writeDesktopFile(t, dir, "terminal.desktop", `[Desktop Entry]
Type=Application
Name=Terminal
Exec=term
`)
	idx := newTestIndex(t, dir)

	var calls [][2]int64
	idx.SetProgressCallback(func(current, total int64) {
		calls = append(calls, [2]int64{current, total})
	})
	idx.Refresh(true)

	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.EqualValues(t, 2, call[1])
	}
	assert.EqualValues(t, 1, calls[0][0])
	assert.EqualValues(t, 2, calls[1][0])
}

func TestRefresh_IncrementalAppendsNewlyModifiedWithoutRemovingStale(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)
	idx := newTestIndex(t, dir)
	require.Len(t, idx.Snapshot(), 1)

	// Back-date the refresh stamp so the next write is seen as "newer".
	idx.mu.Lock()
	idx.lastRefreshTime = time.Now().Add(-time.Hour)
	idx.mu.Unlock()

	writeDesktopFile(t, dir, "terminal.desktop", `[Desktop Entry]
Type=Application
Name=Terminal
Exec=term
`)

	// firefox.desktop's mtime also postdates the back-dated stamp, so it
	// is appended a second time alongside terminal.desktop: the prior
	// version of a modified file is not removed.
	idx.Refresh(false)
	records := idx.Snapshot()
	require.Len(t, records, 3)

	// Deleting the file on disk does not evict it from an incremental
	// refresh: this is the documented append-only limitation.
	require.NoError(t, os.Remove(filepath.Join(dir, "terminal.desktop")))
	idx.Refresh(false)
	assert.Len(t, idx.Snapshot(), 3)
}

func TestRefresh_IncrementalSkipsUnmodifiedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", validEntry)
	idx := newTestIndex(t, dir)

	idx.Refresh(false)
	assert.Len(t, idx.Snapshot(), 1)
}
