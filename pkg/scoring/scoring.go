// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scoring implements a dual substring/acronym relevance model:
// every candidate is scored by both a literal substring sub-scorer and
// a recursive acronym sub-scorer, and the higher of the two (clamped
// into the shared relevance band) is the candidate's final score.
// Package scoring has no knowledge of
// ".desktop" files or the filesystem; it is a pure function of an
// AppRecord and a query string, which keeps it trivially unit
// testable and reusable by any future provider that wants the same
// ranking behavior.
package scoring

import (
	"strings"

	"github.com/kraklabs/indelve/pkg/appindex"
	"github.com/kraklabs/indelve/pkg/provider"
	"github.com/kraklabs/indelve/pkg/relevance"
	"github.com/kraklabs/indelve/pkg/util"
)

// Score returns the relevance of rec against query, in
// [relevance.Min, relevance.Max]. A return of relevance.Min means
// neither sub-scorer produced a positive score: either no substring or
// acronym alignment exists, or the best acronym alignment's penalties
// outweigh its bonuses.
//
// The substring and acronym sub-scorers are deliberately fed different
// query variants: substring matching is a literal search, so it uses q
// (just case-folded) — "web browser" must remain findable inside
// "Web Browser". Acronym matching treats word separators as invisible,
// so it uses q′ (case-folded with spaces, underscores, and hyphens
// removed) — "vs-code" and "vs code" should acronym-match
// "Visual Studio Code" identically. Mirrors the original provider's
// split between its unstripped queryLower and its separator-stripped
// acronym query.
func Score(rec appindex.AppRecord, query string) int {
	q := util.FoldASCII(strings.TrimSpace(query))
	if q == "" {
		return relevance.Min
	}
	qAcr := stripSeparators(q)

	sub := substringScore(q, rec.Name, rec.Comment, rec.GenericName)

	acr := 0
	if s, ok := acronymScore(qAcr, rec.Name, acronymName); ok && s > acr {
		acr = s
	}
	if s, ok := acronymScore(qAcr, rec.GenericName, acronymGeneric); ok && s > acr {
		acr = s
	}

	best := sub
	if acr > best {
		best = acr
	}
	return relevance.Clamp(best)
}

// stripSeparators removes the separators an acronym match treats as
// invisible word boundaries rather than literal characters to align.
func stripSeparators(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c == ' ' || c == '_' || c == '-' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToItemRecord converts a matched AppRecord into the provider-facing
// shape, or returns ok=false when the record scored relevance.Min:
// zero-score candidates are never surfaced.
func ToItemRecord(rec appindex.AppRecord, query string) (provider.ItemRecord, bool) {
	score := Score(rec, query)
	if score == relevance.Min {
		return provider.ItemRecord{}, false
	}
	return provider.ItemRecord{
		Relevance:   score,
		Name:        rec.Name,
		Exec:        rec.Exec,
		Description: rec.Comment,
		Icon:        rec.Icon,
	}, true
}
