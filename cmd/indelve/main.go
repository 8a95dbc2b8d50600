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

// Package main implements the indelve CLI: a short-query application
// launcher over the provider framework in pkg/indelve.
//
// Usage:
//
//	indelve [options] QUERY
//	indelve -l | --list-providers
//	indelve -d NAME | --provider-description NAME
//	indelve -i | --interactive
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/indelve/internal/config"
	"github.com/kraklabs/indelve/internal/errors"
	"github.com/kraklabs/indelve/internal/ui"
	_ "github.com/kraklabs/indelve/pkg/appsprovider"
	"github.com/kraklabs/indelve/pkg/indelve"
)

// GlobalFlags holds the CLI flags that shape how every command behaves,
// mirroring the GlobalFlags struct convention used throughout this
// codebase's other command-line front ends.
type GlobalFlags struct {
	Providers     string
	ListProviders bool
	ProviderDesc  string
	Columns       string
	Format        string
	Interactive   bool
	Watch         bool
	Rebuild       bool
	MetricsAddr   string
	NoColor       bool
	Quiet         bool
}

func main() {
	var g GlobalFlags

	flag.StringVarP(&g.Providers, "providers", "p", "", "Comma-separated provider names to activate (default: all registered)")
	flag.BoolVarP(&g.ListProviders, "list-providers", "l", false, "List available providers and exit")
	flag.StringVarP(&g.ProviderDesc, "provider-description", "d", "", "Print the description of the named provider and exit")
	flag.StringVarP(&g.Columns, "columns", "c", "", "Comma-separated output columns: name,exec,description,icon")
	flag.StringVarP(&g.Format, "format", "f", "table", "Output format: table or json")
	flag.BoolVarP(&g.Interactive, "interactive", "i", false, "Read queries interactively until EOF")
	flag.BoolVar(&g.Watch, "watch", false, "Watch XDG application directories and refresh the index on change")
	flag.BoolVar(&g.Rebuild, "rebuild", false, "Force a full index rebuild before searching, showing progress")
	flag.StringVar(&g.MetricsAddr, "metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	flag.BoolVar(&g.NoColor, "no-color", false, "Disable color output")
	flag.BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress non-essential output")

	flag.Usage = printUsage
	flag.Parse()

	if os.Getenv("NO_COLOR") != "" {
		g.NoColor = true
	}
	if g.Format == "json" {
		g.Quiet = true
	}

	ui.InitColors(g.NoColor)

	cfg, err := config.Load()
	if err != nil {
		errors.FatalError(err, g.Format == "json")
	}

	if g.ListProviders {
		runListProviders()
		return
	}
	if g.ProviderDesc != "" {
		runProviderDescription(g.ProviderDesc, g.Format == "json")
		return
	}

	metricsAddr := g.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsAddr
	}
	var metrics *indelve.Metrics
	if metricsAddr != "" {
		metrics = indelve.NewMetrics(prometheus.DefaultRegisterer)
		go serveMetrics(metricsAddr)
	}

	names := providerNames(g, cfg)
	ind, err := indelve.New(names, indelve.WithMetrics(metrics))
	if err != nil {
		errors.FatalError(err, g.Format == "json")
	}

	columns := resolveColumns(g.Columns, cfg)
	if err := validateColumns(columns); err != nil {
		errors.FatalError(err, g.Format == "json")
	}

	if g.Rebuild {
		runRebuild(ind, g.Quiet, g.Format == "json")
	}

	if g.Watch {
		go runWatch(ind)
	}

	if g.Interactive {
		runInteractive(ind, g.Format, columns, g.Quiet)
		return
	}

	query, err := resolveQuery(flag.Args())
	if err != nil {
		errors.FatalError(err, g.Format == "json")
	}

	runSearch(ind, query, g.Format, columns, g.Quiet)
}

func providerNames(g GlobalFlags, cfg *config.Config) []string {
	if g.Providers != "" {
		return splitCSV(g.Providers)
	}
	return cfg.Providers
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveQuery returns the search query from the positional argument,
// falling back to standard input when it is "-" or omitted entirely.
func resolveQuery(args []string) (string, error) {
	var raw string
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.NewQueryError(
				"Cannot read query from standard input",
				err.Error(),
				"Pass the query as a positional argument instead",
				err,
			)
		}
		raw = string(data)
	} else {
		raw = args[0]
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		return "", errors.NewQueryError(
			"No query provided",
			"The query was empty after trimming whitespace",
			"Pass a non-empty QUERY argument or pipe one on standard input",
			nil,
		)
	}
	return query, nil
}

func runSearch(ind *indelve.Indelve, query, format string, columns []string, quiet bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := ind.Search(ctx, query)
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Search failed",
			err.Error(),
			"This indicates a provider bug; please report it",
			err,
		), format == "json")
	}

	if err := render(os.Stdout, format, columns, results, quiet); err != nil {
		errors.FatalError(err, format == "json")
	}
}

// runRebuild forces a full index rebuild across every active provider
// before the CLI's usual search/interactive/watch flow runs, rendering
// a progress bar over each provider's rescan as it reports progress
// (today, only the applications provider does, via pkg/appindex).
// Providers that don't report progress simply rebuild silently.
func runRebuild(ind *indelve.Indelve, quiet, jsonMode bool) {
	progressCfg := ui.NewProgressConfig(quiet, jsonMode)

	var mu sync.Mutex
	bars := make(map[string]*progressbar.ProgressBar)

	ind.SetProgress(func(providerName string, current, total int64) {
		mu.Lock()
		bar, ok := bars[providerName]
		if !ok {
			bar = ui.NewProgressBar(progressCfg, total, fmt.Sprintf("Rebuilding %s", providerName))
			bars[providerName] = bar
		}
		mu.Unlock()
		_ = bar.Set64(current)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ind.Refresh(ctx, true)

	mu.Lock()
	defer mu.Unlock()
	for _, bar := range bars {
		_ = bar.Finish()
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	ui.Info(fmt.Sprintf("metrics listening on %s/metrics", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ui.Warningf("metrics server error: %v", err)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `indelve - ranked application launcher core

Usage:
  indelve [options] QUERY
  indelve -l | --list-providers
  indelve -d NAME | --provider-description NAME
  indelve -i | --interactive

QUERY may be "-" or omitted, in which case it is read from standard input.

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  indelve gimp
  indelve -f json low
  indelve -c name,icon fire
  echo gimp | indelve
  indelve --watch -i
  indelve --rebuild gimp
`)
}
