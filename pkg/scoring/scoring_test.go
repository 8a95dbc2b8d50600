// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/indelve/pkg/appindex"
)

func app(name, generic, comment string) appindex.AppRecord {
	return appindex.AppRecord{Name: name, GenericName: generic, Comment: comment, Exec: "x"}
}

func TestScore_AcronymMatchOnName(t *testing.T) {
	rec := app("GNU Image Manipulation Program", "Image Editor", "Create images and edit photographs")
	assert.Equal(t, 8600, Score(rec, "gimp"))
}

func TestScore_AcronymMatchAcrossWords(t *testing.T) {
	// l: start_string+letter_word (2000), o: letter_capital via the
	// embedded capital O after a lowercase letter (800), w: letter_word
	// (1200), +found (3000) = 7000.
	rec := app("LibreOffice Writer", "Word Processor", "Write letters, reports")
	assert.Equal(t, 7000, Score(rec, "low"))
}

func TestScore_SubstringMatchWithLengthBoost(t *testing.T) {
	rec := app("Firefox", "Web Browser", "Browse the World Wide Web")
	assert.Equal(t, 7024, Score(rec, "fire"))
}

func TestScore_MultiWordSubstringQueryMatchesUnstrippedField(t *testing.T) {
	// "web browser" must substring-match "Web Browser" literally, space
	// and all — only the acronym sub-scorer strips separators.
	// generic_name: +found(1800) + +start_string(2600) = 4400, one key
	// matched (no penalty), boosted by ln(11)/5+1 ~= 1.4796 -> 6510.
	rec := app("Firefox", "Web Browser", "Browse the World Wide Web")
	assert.Equal(t, 6510, Score(rec, "web browser"))
}

func TestScore_NoMatchIsZero(t *testing.T) {
	rec := app("Firefox", "Web Browser", "Browse the World Wide Web")
	assert.Equal(t, 0, Score(rec, "xyz"))
}

func TestScore_CaseInsensitive(t *testing.T) {
	rec := app("GIMP", "Image Editor", "")
	assert.Equal(t, Score(rec, "gimp"), Score(rec, "GIMP"))
	assert.Equal(t, Score(rec, "gimp"), Score(rec, "GiMp"))
}

func TestScore_EmptyQueryIsZero(t *testing.T) {
	rec := app("GIMP", "Image Editor", "")
	assert.Equal(t, 0, Score(rec, ""))
	assert.Equal(t, 0, Score(rec, "   "))
}

func TestScore_NeverExceedsMax(t *testing.T) {
	rec := app("Code", "Code", "Code Code Code")
	assert.LessOrEqual(t, Score(rec, "code"), 10000)
}

func TestToItemRecord_OmitsZeroScore(t *testing.T) {
	rec := app("Firefox", "Web Browser", "")
	_, ok := ToItemRecord(rec, "xyz")
	assert.False(t, ok)
}

func TestToItemRecord_PopulatesFields(t *testing.T) {
	rec := appindex.AppRecord{Name: "Firefox", Exec: "firefox %u", Comment: "Browse the web", Icon: "firefox"}
	item, ok := ToItemRecord(rec, "fire")
	assert.True(t, ok)
	assert.Equal(t, "Firefox", item.Name)
	assert.Equal(t, "firefox %u", item.Exec)
	assert.Equal(t, "firefox", item.Icon)
	assert.Greater(t, item.Relevance, 0)
}
