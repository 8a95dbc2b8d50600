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

// Package appsprovider registers the "applications" provider: it
// fulfills pkg/provider.Provider by composing an appindex.Index with
// the pkg/scoring engine, over the XDG-discovered ".desktop" files.
package appsprovider

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kraklabs/indelve/internal/errors"
	"github.com/kraklabs/indelve/pkg/appindex"
	"github.com/kraklabs/indelve/pkg/provider"
	"github.com/kraklabs/indelve/pkg/scoring"
)

const Name = "applications"

func init() {
	provider.Register(Name, construct, provider.Description{
		Short: "Installed desktop applications",
		Long:  "Searches .desktop entries discovered under the XDG application directories, ranking matches by substring and acronym relevance.",
	})
}

// Provider implements provider.Provider over an appindex.Index.
type Provider struct {
	index *appindex.Index
}

func construct() (provider.Provider, error) {
	idx, err := appindex.New(slog.Default().With("provider", Name))
	if err != nil {
		return nil, errors.NewProviderError(
			"Cannot initialize applications provider",
			"Failed to enumerate XDG application directories",
			"Check that $XDG_DATA_HOME and $XDG_DATA_DIRS are readable",
			err,
		)
	}
	return &Provider{index: idx}, nil
}

// Refresh delegates to the underlying index.
func (p *Provider) Refresh(_ context.Context, force bool) error {
	p.index.Refresh(force)
	return nil
}

// IndexSize reports the current number of records held by the
// underlying index, for the aggregator's index-size gauge
// (pkg/indelve.Metrics.IndexRecords).
func (p *Provider) IndexSize() int {
	return len(p.index.Snapshot())
}

// SetProgressCallback wires fn into the underlying index, so a forced
// Refresh reports progress over its directory scan. See
// pkg/indelve.Indelve.SetProgress.
func (p *Provider) SetProgressCallback(fn func(current, total int64)) {
	p.index.SetProgressCallback(fn)
}

// Search rejects an empty query and otherwise scores every indexed
// record, returning the non-zero matches unsorted; the aggregator
// performs the final sort across providers.
func (p *Provider) Search(_ context.Context, query string) ([]provider.ItemRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, provider.ErrInapplicableQuery
	}

	records := p.index.Snapshot()
	results := make([]provider.ItemRecord, 0, len(records))
	for _, rec := range records {
		if item, ok := scoring.ToItemRecord(rec, query); ok {
			results = append(results, item)
		}
	}
	return results, nil
}
