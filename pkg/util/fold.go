// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

// FoldASCII lower-cases s assuming ASCII input. Unicode-correct folding
// would need golang.org/x/text/cases; none of the example data this
// launcher reads (.desktop Name/Comment/GenericName fields) requires it
// today, so the source's ASCII assumption is kept as-is.
func FoldASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
