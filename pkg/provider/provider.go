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

// Package provider defines the contract every search source fulfills, and
// the result record aggregated across providers. A provider is a
// pluggable source of search results: it owns its own index (if any),
// refreshes it on request, and answers queries against a shared
// relevance scale (see package relevance).
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/kraklabs/indelve/pkg/relevance"
)

// ItemRecord is one ranked search result crossing the aggregator boundary.
type ItemRecord struct {
	Relevance   int    `json:"relevance"`
	Name        string `json:"name"`
	Exec        string `json:"exec"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Description is the static, human-facing description every provider
// declares for `indelve -l` / `indelve -d <name>`.
type Description struct {
	Short string
	Long  string
}

// Provider is the capability set every search source implements:
// construct (via a registered Factory), Refresh, Search, and a static
// Description. Construction failures are reported by the Factory, not by
// this interface, so a successfully-returned Provider is always usable.
type Provider interface {
	// Refresh reloads or incrementally updates the provider's index.
	// Providers without an index may make this a no-op. Must never fail
	// user-visibly: internal per-item errors are swallowed.
	Refresh(ctx context.Context, force bool) error

	// Search returns ranked results for query. query is guaranteed
	// non-empty after case folding by the caller's contract, but a
	// provider may still reject it with ErrInapplicableQuery when the
	// query is the wrong shape for this provider (e.g. too short).
	Search(ctx context.Context, query string) ([]ItemRecord, error)
}

// ErrInapplicableQuery signals that query is not applicable to this
// provider (e.g. empty, or too short for the provider's matching
// strategy). The aggregator catches this and silently skips the
// provider for this search; it must never reach the CLI.
var ErrInapplicableQuery = errors.New("provider: inapplicable query")

// ValidateItemRecord structurally validates r at the aggregator/provider
// boundary. Go's static typing already rules out most shape errors; it
// cannot enforce that Relevance lands inside the shared band — worth
// checking where a provider's bug would otherwise silently corrupt the
// sort order — or that Name is non-empty, so both are checked here.
func ValidateItemRecord(r ItemRecord) error {
	if r.Relevance < relevance.Min || r.Relevance > relevance.Max {
		return fmt.Errorf("provider: relevance %d out of band [%d,%d]", r.Relevance, relevance.Min, relevance.Max)
	}
	if r.Name == "" {
		return errors.New("provider: item record has empty name")
	}
	return nil
}
