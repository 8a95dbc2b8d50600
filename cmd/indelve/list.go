// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/kraklabs/indelve/internal/errors"
	"github.com/kraklabs/indelve/internal/ui"
	"github.com/kraklabs/indelve/pkg/indelve"
)

// runListProviders implements `indelve -l`: print every registered
// provider with its short description.
func runListProviders() {
	descs, err := indelve.ListProviderDescriptions()
	if err != nil {
		errors.FatalError(err, false)
	}

	names := make([]string, 0, len(descs))
	for name := range descs {
		names = append(names, name)
	}
	sort.Strings(names)

	ui.Header("Available Providers")
	for _, name := range names {
		fmt.Printf("%s\t%s\n", ui.Label(name), descs[name].Short)
	}
	fmt.Printf("\n%s provider(s)\n", ui.CountText(len(names)))
}

// runProviderDescription implements `indelve -d NAME`: print the full
// description of one provider, or fail if the name is unregistered.
func runProviderDescription(name string, jsonMode bool) {
	descs, err := indelve.ListProviderDescriptions()
	if err != nil {
		errors.FatalError(err, jsonMode)
	}

	desc, ok := descs[name]
	if !ok {
		errors.FatalError(errors.NewQueryError(
			"Unknown provider "+quote(name),
			"No provider is registered under that name",
			"Run 'indelve -l' to see available providers",
			nil,
		), jsonMode)
	}

	ui.Header(name)
	ui.SubHeader(desc.Short)
	fmt.Fprintf(os.Stdout, "\n%s\n", desc.Long)
}
