// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package scoring

import (
	"math"
	"strings"

	"github.com/kraklabs/indelve/pkg/util"
)

// substringScore computes the substring sub-score for one candidate
// against the already case-folded query q. name/comment/genericName are
// the candidate's original-cased field values.
func substringScore(q, name, comment, genericName string) int {
	total := 0
	keysMatched := 0

	if s, ok := substringContribution(q, name, substringName); ok {
		total += s
		keysMatched++
	}
	if s, ok := substringContribution(q, comment, substringComment); ok {
		total += s
		keysMatched++
	}
	if s, ok := substringContribution(q, genericName, substringGeneric); ok {
		total += s
		keysMatched++
	}

	total -= substringMultiplesPenalty[keysMatched]

	// Longer queries that still match are more distinctive and should
	// outrank short queries that happen to hit.
	boost := math.Log(float64(len(q)))/5 + 1
	return int(float64(total) * boost)
}

// substringContribution finds the first occurrence of q in the
// case-folded value of field and returns the points it earns: a base
// "found" bonus plus a start-of-string or start-of-word bonus when the
// match lands at one of those boundaries. ok is false when q does not
// occur in field at all, in which case the key contributes nothing.
func substringContribution(q, field string, w substringWeights) (int, bool) {
	folded := util.FoldASCII(field)
	idx := strings.Index(folded, q)
	if idx == -1 {
		return 0, false
	}

	score := w.Found
	switch {
	case idx == 0:
		score += w.StartString
	case field[idx-1] == ' ':
		score += w.StartWord
	}
	return score, true
}
