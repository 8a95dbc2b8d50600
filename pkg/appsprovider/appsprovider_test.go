// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package appsprovider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/indelve/pkg/provider"
)

const gimpEntry = `[Desktop Entry]
Type=Application
Name=GNU Image Manipulation Program
GenericName=Image Editor
Comment=Create images and edit photographs
Exec=gimp %U
Icon=gimp
`

const firefoxEntry = `[Desktop Entry]
Type=Application
Name=Firefox
GenericName=Web Browser
Comment=Browse the World Wide Web
Exec=firefox %u
Icon=firefox
`

const hiddenEntry = `[Desktop Entry]
Type=Application
Name=Hidden App
Exec=hiddenapp
Hidden=true
`

func withXDGHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	apps := filepath.Join(home, "applications")
	require.NoError(t, os.MkdirAll(apps, 0o755))
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_DATA_DIRS", t.TempDir())
	return apps
}

func writeEntry(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestProvider_SearchScenarioC_Firefox(t *testing.T) {
	apps := withXDGHome(t)
	writeEntry(t, apps, "firefox.desktop", firefoxEntry)
	writeEntry(t, apps, "gimp.desktop", gimpEntry)
	writeEntry(t, apps, "hidden.desktop", hiddenEntry)

	p, err := construct()
	require.NoError(t, err)

	results, err := p.Search(context.Background(), "fire")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Firefox", results[0].Name)
	assert.Equal(t, 7024, results[0].Relevance)
}

func TestProvider_SearchScenarioD_NoMatch(t *testing.T) {
	apps := withXDGHome(t)
	writeEntry(t, apps, "firefox.desktop", firefoxEntry)

	p, err := construct()
	require.NoError(t, err)

	results, err := p.Search(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProvider_SearchRejectsEmptyQuery(t *testing.T) {
	withXDGHome(t)

	p, err := construct()
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "")
	assert.ErrorIs(t, err, provider.ErrInapplicableQuery)
}

func TestProvider_HiddenEntryExcluded(t *testing.T) {
	apps := withXDGHome(t)
	writeEntry(t, apps, "hidden.desktop", hiddenEntry)

	p, err := construct()
	require.NoError(t, err)

	assert.Equal(t, 0, p.(*Provider).IndexSize())
}

func TestProvider_RefreshForcePicksUpNewFiles(t *testing.T) {
	apps := withXDGHome(t)

	p, err := construct()
	require.NoError(t, err)
	assert.Equal(t, 0, p.(*Provider).IndexSize())

	writeEntry(t, apps, "gimp.desktop", gimpEntry)
	require.NoError(t, p.Refresh(context.Background(), true))
	assert.Equal(t, 1, p.(*Provider).IndexSize())
}

func TestProvider_SetProgressCallbackForwardsToIndex(t *testing.T) {
	apps := withXDGHome(t)
	writeEntry(t, apps, "gimp.desktop", gimpEntry)
	writeEntry(t, apps, "firefox.desktop", firefoxEntry)

	p, err := construct()
	require.NoError(t, err)

	var calls int
	p.(*Provider).SetProgressCallback(func(current, total int64) {
		calls++
		assert.EqualValues(t, 2, total)
	})
	require.NoError(t, p.Refresh(context.Background(), true))
	assert.Equal(t, 2, calls)
}
