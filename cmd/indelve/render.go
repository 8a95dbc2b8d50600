// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kraklabs/indelve/internal/config"
	"github.com/kraklabs/indelve/internal/errors"
	"github.com/kraklabs/indelve/internal/ui"
	"github.com/kraklabs/indelve/pkg/provider"
)

// validColumns are the only column names accepted by --columns.
var validColumns = map[string]bool{
	"name": true, "exec": true, "description": true, "icon": true,
}

func resolveColumns(flagValue string, cfg *config.Config) []string {
	if flagValue != "" {
		return splitCSV(flagValue)
	}
	if len(cfg.Columns) > 0 {
		return cfg.Columns
	}
	return []string{"name", "description"}
}

func validateColumns(columns []string) error {
	for _, c := range columns {
		if !validColumns[c] {
			return errors.NewQueryError(
				"Unknown column "+quote(c),
				"Valid columns are: name, exec, description, icon",
				"Check the spelling passed to --columns",
				nil,
			)
		}
	}
	return nil
}

func quote(s string) string { return fmt.Sprintf("%q", s) }

func columnValue(item provider.ItemRecord, column string) string {
	switch column {
	case "name":
		return item.Name
	case "exec":
		return item.Exec
	case "description":
		return item.Description
	case "icon":
		return item.Icon
	default:
		return ""
	}
}

// render writes results to w in the requested format ("table" or
// "json"), restricted to columns. An unrecognized format is a usage
// error. quiet suppresses the table format's header/count chrome (set
// whenever --format json is active, or the user passed -q/--quiet);
// it has no effect on the json format, which is already chrome-free.
func render(w io.Writer, format string, columns []string, results []provider.ItemRecord, quiet bool) error {
	switch format {
	case "json":
		return renderJSON(w, columns, results)
	case "table", "":
		renderTable(w, columns, results, quiet)
		return nil
	default:
		return errors.NewQueryError(
			"Unknown output format "+quote(format),
			"Valid formats are: table, json",
			"Pass --format table or --format json",
			nil,
		)
	}
}

func renderTable(w io.Writer, columns []string, results []provider.ItemRecord, quiet bool) {
	if !quiet {
		ui.Header("Search Results")
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := append([]string{"relevance"}, columns...)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, strings.ToUpper(h))
	}
	fmt.Fprintln(tw)

	for _, item := range results {
		fmt.Fprintf(tw, "%d", item.Relevance)
		for _, c := range columns {
			fmt.Fprint(tw, "\t", formatColumnValue(item, c))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	if !quiet {
		fmt.Fprintf(w, "\n%s result(s)\n", ui.CountText(len(results)))
	}
}

// formatColumnValue is columnValue plus table-only dim styling for the
// exec column: a command line is secondary information next to the
// name/description that sold the match.
func formatColumnValue(item provider.ItemRecord, column string) string {
	v := columnValue(item, column)
	if column == "exec" {
		return ui.DimText(v)
	}
	return v
}

// jsonRow is the per-result shape emitted by --format json: always
// includes relevance plus whichever columns were requested.
type jsonRow map[string]any

func renderJSON(w io.Writer, columns []string, results []provider.ItemRecord) error {
	rows := make([]jsonRow, 0, len(results))
	for _, item := range results {
		row := jsonRow{"relevance": item.Relevance}
		for _, c := range columns {
			row[c] = columnValue(item, c)
		}
		rows = append(rows, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"results": rows, "count": len(rows)})
}
