// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package xdgpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationDirs_UsesEnvOverrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/home/x/.local/share")
	t.Setenv("XDG_DATA_DIRS", "/a:/b")

	dirs := ApplicationDirs()
	assert.Equal(t, []string{
		"/home/x/.local/share/applications",
		"/a/applications",
		"/b/applications",
	}, dirs)
}

func TestDataDirs_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_DATA_DIRS", "")

	dirs := DataDirs()
	assert.Equal(t, []string{"/usr/local/share", "/usr/share"}, dirs)
}

func TestApplicationFiles_EnumeratesTopLevelOnly(t *testing.T) {
	home := t.TempDir()
	apps := filepath.Join(home, "applications")
	require.NoError(t, os.MkdirAll(filepath.Join(apps, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(apps, "a.desktop"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(apps, "nested", "b.desktop"), []byte(""), 0o644))

	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_DATA_DIRS", t.TempDir())

	files := ApplicationFiles()
	require.Len(t, files, 2) // "a.desktop" and the "nested" directory entry itself
	for _, f := range files {
		assert.Equal(t, apps, filepath.Dir(f))
	}
}

func TestApplicationFiles_MissingDirIsSkipped(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "does-not-exist"))
	t.Setenv("XDG_DATA_DIRS", filepath.Join(t.TempDir(), "also-missing"))

	assert.Empty(t, ApplicationFiles())
}
