// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package desktopentry parses the subset of the freedesktop Desktop Entry
// Specification (http://standards.freedesktop.org/desktop-entry-spec/latest/)
// that pkg/appindex needs: the "[Desktop Entry]" group and its Type,
// Hidden, TryExec, Exec, Categories, Name, GenericName, Comment, and Icon
// keys. Localized key variants ("Name[de]") are ignored in favor of the
// unlocalized key, matching the original provider's use of pyxdg's
// unlocalized getters.
//
// No library in this module's dependency graph parses Desktop Entry
// files (they are a flavor of INI, but distinct enough — trailing
// semicolon-separated lists, no nesting — that reaching for a generic
// INI package would buy nothing over a small hand-rolled scanner); see
// DESIGN.md for why this package is built on the standard library
// alone.
package desktopentry

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry is the normalized content of a "[Desktop Entry]" group.
type Entry struct {
	Type        string
	Hidden      bool
	TryExec     string
	Exec        string
	Categories  []string
	Name        string
	GenericName string
	Comment     string
	Icon        string
}

// ParseError reports a problem parsing a single ".desktop" file. The
// caller (pkg/appindex) swallows these per-file, matching the original
// provider's FileParseError/ParsingError/DuplicateGroupError/
// DuplicateKeyError handling.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

const mainGroup = "Desktop Entry"

// Parse reads and parses the Desktop Entry group of the file at path.
// It returns the underlying I/O error when the file cannot be opened or
// read, and a *ParseError when the file is missing the main group,
// contains a second "[Desktop Entry]" group, or contains a duplicate key
// within the main group — mirroring pyxdg's DuplicateGroupError and DuplicateKeyError,
// both of which the Python original treats as fatal-per-file.
func Parse(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	var entry Entry
	var foundMainGroup bool
	currentGroup := ""
	seenKeys := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			currentGroup = trimmed[1 : len(trimmed)-1]
			seenKeys = map[string]bool{}
			if currentGroup == mainGroup {
				if foundMainGroup {
					return Entry{}, &ParseError{Path: path, Message: fmt.Sprintf("duplicate group %q", mainGroup)}
				}
				foundMainGroup = true
			}
			continue
		}
		if currentGroup != mainGroup {
			continue
		}

		key, value, ok := splitKeyValue(trimmed)
		if !ok {
			continue
		}
		// Ignore localized variants ("Name[de]"): only the unlocalized
		// key is consumed, matching pyxdg's default (unlocalized) getters.
		if strings.Contains(key, "[") {
			continue
		}
		if seenKeys[key] {
			return Entry{}, &ParseError{Path: path, Message: fmt.Sprintf("duplicate key %q", key)}
		}
		seenKeys[key] = true

		switch key {
		case "Type":
			entry.Type = value
		case "Hidden":
			entry.Hidden = strings.EqualFold(value, "true")
		case "TryExec":
			entry.TryExec = value
		case "Exec":
			entry.Exec = value
		case "Categories":
			entry.Categories = splitSemicolonList(value)
		case "Name":
			entry.Name = value
		case "GenericName":
			entry.GenericName = value
		case "Comment":
			entry.Comment = value
		case "Icon":
			entry.Icon = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, err
	}
	if !foundMainGroup {
		return Entry{}, &ParseError{Path: path, Message: "missing [Desktop Entry] group"}
	}
	return entry, nil
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// splitSemicolonList splits a Desktop Entry "list" value (semicolon
// separated, conventionally with a trailing semicolon) into its elements.
func splitSemicolonList(value string) []string {
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
