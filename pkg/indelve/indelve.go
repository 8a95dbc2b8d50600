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

// Package indelve implements the aggregator: it selects a provider set
// from pkg/provider's compile-time registry, fans Refresh and Search out
// across them concurrently, and merges results onto the single shared
// relevance scale.
package indelve

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kraklabs/indelve/internal/ui"
	"github.com/kraklabs/indelve/pkg/provider"
)

// NoProvidersError is returned from New when every requested provider
// name was either unknown or failed to construct, leaving nothing to
// search.
type NoProvidersError struct{}

func (e *NoProvidersError) Error() string {
	return "indelve: no providers could be loaded"
}

// WarnSink receives a non-fatal provider warning: name is the provider
// concerned, err is nil for an unknown name and non-nil for a
// construction failure. Errors returned by a provider's Refresh are
// delivered here too, with err non-nil.
type WarnSink func(name string, err error)

// defaultWarnSink prints to stderr through the shared ui package,
// matching the rest of the CLI's warning formatting.
func defaultWarnSink(name string, err error) {
	if err == nil {
		ui.Warningf("unknown provider %q, skipping", name)
		return
	}
	ui.Warningf("provider %q failed to load: %v", name, err)
}

// Option configures an Indelve instance at construction time.
type Option func(*Indelve)

// WithMetrics attaches Prometheus instrumentation (pkg C14). A nil
// Metrics (the zero value of this option) disables instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(ind *Indelve) { ind.metrics = m }
}

// WithWarnSink overrides the destination for non-fatal provider-load
// warnings. Intended primarily for tests that want to assert on
// warnings instead of printing them.
func WithWarnSink(sink WarnSink) Option {
	return func(ind *Indelve) { ind.warn = sink }
}

// Indelve is the aggregator: it owns every active provider instance and
// is the sole entry point the CLI talks to.
type Indelve struct {
	mu        sync.RWMutex
	providers map[string]provider.Provider
	// order is the provider names in the order they were successfully
	// constructed, i.e. the order requested of New (the registry's
	// sorted name list when none were given). Search results are merged
	// in this order before the final relevance sort, giving a stable
	// provider-then-insertion tie-break.
	order []string

	metrics *Metrics
	warn    WarnSink
}

// New constructs an Indelve aggregator. names selects which providers to
// activate; when names is empty, every provider in pkg/provider's
// registry is requested. An unknown name or a provider that fails to
// construct produces a non-fatal warning (see WarnSink) and is skipped.
// New fails with *NoProvidersError only when zero providers end up
// active.
func New(names []string, opts ...Option) (*Indelve, error) {
	ind := &Indelve{
		providers: make(map[string]provider.Provider),
		warn:      defaultWarnSink,
	}
	for _, opt := range opts {
		opt(ind)
	}

	if len(names) == 0 {
		names = provider.Names()
	}

	for _, name := range names {
		factory, _, ok := provider.Lookup(name)
		if !ok {
			ind.warn(name, nil)
			ind.metrics.observeLoad(name, "unknown")
			continue
		}

		p, err := factory()
		if err != nil {
			ind.warn(name, err)
			ind.metrics.observeLoad(name, "load_error")
			continue
		}

		ind.providers[name] = p
		ind.order = append(ind.order, name)
		ind.metrics.observeLoad(name, "loaded")
	}

	if len(ind.providers) == 0 {
		return nil, &NoProvidersError{}
	}
	return ind, nil
}

// ProviderNames returns the names of the currently active providers, in
// the order they were activated by New.
func (ind *Indelve) ProviderNames() []string {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	out := make([]string, len(ind.order))
	copy(out, ind.order)
	return out
}

// ListProviders returns the full static registry's provider names,
// regardless of which are currently active — this is what `indelve -l`
// shows.
func ListProviders() []string {
	return provider.Names()
}

// progressReporter is implemented by providers that can report progress
// while rebuilding their index (today, only pkg/appsprovider.Provider,
// via its appindex.Index). Providers that don't implement it simply
// never receive a callback.
type progressReporter interface {
	SetProgressCallback(fn func(current, total int64))
}

// SetProgress wires fn into every active provider that supports
// progress reporting, so a caller (e.g. the CLI's --rebuild flag) can
// drive a progress bar across a forced Refresh. fn is called with the
// reporting provider's name plus the current/total counts it reports.
// Providers that don't implement progressReporter are left untouched.
func (ind *Indelve) SetProgress(fn func(providerName string, current, total int64)) {
	ind.mu.RLock()
	defer ind.mu.RUnlock()
	for name, p := range ind.providers {
		reporter, ok := p.(progressReporter)
		if !ok {
			continue
		}
		name := name
		reporter.SetProgressCallback(func(current, total int64) { fn(name, current, total) })
	}
}

// ListProviderDescriptions returns every registered provider's
// Description, keyed by name. Fails with *provider.DescriptionShapeError
// if any registered provider lacks a complete description.
func ListProviderDescriptions() (map[string]provider.Description, error) {
	return provider.DescribeAll()
}

// Refresh invokes Refresh(force) on every active provider concurrently.
// Provider errors are logged as warnings and otherwise swallowed:
// refresh is always best-effort and never fails the caller.
func (ind *Indelve) Refresh(ctx context.Context, force bool) {
	ind.mu.RLock()
	names := make([]string, len(ind.order))
	copy(names, ind.order)
	providers := make(map[string]provider.Provider, len(ind.providers))
	for k, v := range ind.providers {
		providers[k] = v
	}
	ind.mu.RUnlock()

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string, p provider.Provider) {
			defer wg.Done()
			if err := p.Refresh(ctx, force); err != nil {
				ind.warn(name, err)
				return
			}
			if sized, ok := p.(sizedIndex); ok {
				ind.metrics.observeIndexSize(name, sized.IndexSize())
			}
		}(name, providers[name])
	}
	wg.Wait()
}

// searchSlot holds one provider's Search outcome, indexed by its
// position in Indelve.order so the merge step below can flatten results
// in a fixed, deterministic order regardless of goroutine completion
// order.
type searchSlot struct {
	name  string
	items []provider.ItemRecord
	err   error
}

// Search runs query against every active provider concurrently, merges
// the results, and returns them sorted descending by relevance, with
// ties broken by provider activation order then by each provider's
// own result order — both preserved by flattening searchSlots in
// Indelve.order before the stable sort below.
//
// query must be non-empty; an empty query is a fatal usage error at
// this boundary (unlike at an individual provider, where it is merely
// InapplicableQuery). A provider reporting provider.ErrInapplicableQuery
// is silently skipped. Any other provider error is fatal and is
// returned to the caller unchanged. A malformed ItemRecord returned by a
// provider is a programming error and is also returned as an error.
func (ind *Indelve) Search(ctx context.Context, query string) ([]provider.ItemRecord, error) {
	if query == "" {
		return nil, fmt.Errorf("indelve: search query must not be empty")
	}

	ind.mu.RLock()
	names := make([]string, len(ind.order))
	copy(names, ind.order)
	providers := make(map[string]provider.Provider, len(ind.providers))
	for k, v := range ind.providers {
		providers[k] = v
	}
	ind.mu.RUnlock()

	slots := make([]searchSlot, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string, p provider.Provider) {
			defer wg.Done()
			start := time.Now()
			items, err := p.Search(ctx, query)
			ind.metrics.observeSearchDuration(name, time.Since(start))
			slots[i] = searchSlot{name: name, items: items, err: err}
		}(i, name, providers[name])
	}
	wg.Wait()

	var merged []provider.ItemRecord
	for _, slot := range slots {
		if slot.err != nil {
			if slot.err == provider.ErrInapplicableQuery {
				continue
			}
			return nil, slot.err
		}
		for _, item := range slot.items {
			if err := provider.ValidateItemRecord(item); err != nil {
				return nil, fmt.Errorf("provider %q returned invalid item: %w", slot.name, err)
			}
			merged = append(merged, item)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})
	return merged, nil
}
