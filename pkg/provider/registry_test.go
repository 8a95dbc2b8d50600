// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLookup(t *testing.T) {
	Register("registry-test-ok", func() (Provider, error) { return nil, nil }, Description{Short: "s", Long: "l"})

	factory, desc, ok := Lookup("registry-test-ok")
	require.True(t, ok)
	assert.Equal(t, "s", desc.Short)
	_, err := factory()
	assert.NoError(t, err)
}

func TestLookup_Unknown(t *testing.T) {
	_, _, ok := Lookup("registry-test-does-not-exist")
	assert.False(t, ok)
}

func TestDescribeAll_MissingShapeIsFatal(t *testing.T) {
	Register("registry-test-bad-shape", func() (Provider, error) { return nil, errors.New("unused") }, Description{Short: "", Long: ""})

	_, err := DescribeAll()
	require.Error(t, err)
	var shapeErr *DescriptionShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestValidateItemRecord(t *testing.T) {
	assert.NoError(t, ValidateItemRecord(ItemRecord{Relevance: 100, Name: "ok"}))
	assert.Error(t, ValidateItemRecord(ItemRecord{Relevance: -1, Name: "ok"}))
	assert.Error(t, ValidateItemRecord(ItemRecord{Relevance: 100, Name: ""}))
}
