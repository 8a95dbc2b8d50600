// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kraklabs/indelve/internal/ui"
	"github.com/kraklabs/indelve/pkg/indelve"
)

// runInteractive implements `indelve -i`: read queries line by line from
// standard input until EOF, printing results for each one. Unlike
// runSearch, an empty line is skipped and a search or render error is
// reported inline rather than aborting the whole session.
func runInteractive(ind *indelve.Indelve, format string, columns []string, quiet bool) {
	ui.Info("interactive mode: type a query and press enter, Ctrl-D to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		results, err := ind.Search(ctx, query)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			continue
		}
		if err := render(os.Stdout, format, columns, results, quiet); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
	}
}
