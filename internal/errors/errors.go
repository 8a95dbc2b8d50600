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

// Package errors provides the structured, user-facing error type used
// throughout indelve's CLI: every fatal condition the user can hit
// carries a short title, a longer detail, and an actionable suggestion,
// instead of a bare Go error string.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserError is an error meant to be read by the person running the
// CLI, not just logged. Title is the one-line summary, Detail expands
// on what went wrong, and Suggestion proposes the next step. Cause, if
// present, is the underlying error that triggered this one.
type UserError struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	Suggestion string `json:"suggestion"`
	Cause      error  `json:"-"`
}

func (e *UserError) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *UserError) Unwrap() error { return e.Cause }

func newUserError(kind, title, detail, suggestion string, cause error) *UserError {
	return &UserError{Kind: kind, Title: title, Detail: detail, Suggestion: suggestion, Cause: cause}
}

// NewConfigError reports a problem reading or parsing configuration.
func NewConfigError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("config", title, detail, suggestion, cause)
}

// NewProviderError reports a provider that failed to construct or run.
func NewProviderError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("provider", title, detail, suggestion, cause)
}

// NewQueryError reports a malformed or rejected search query.
func NewQueryError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("query", title, detail, suggestion, cause)
}

// NewInternalError reports a condition that should never happen and
// indicates a bug rather than user error.
func NewInternalError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("internal", title, detail, suggestion, cause)
}

// NewPermissionError reports a filesystem permission failure.
func NewPermissionError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("permission", title, detail, suggestion, cause)
}

// FatalError prints err to stderr and exits the process with a
// non-zero status. In JSON mode the error is emitted as a single JSON
// object on stderr instead of the "ERROR: ..." plain-text line, so
// scripts consuming --format json output never have to parse prose.
func FatalError(err error, jsonMode bool) {
	if err == nil {
		os.Exit(1)
	}

	if jsonMode {
		payload := toUserError(err)
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(payload)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
	if ue, ok := err.(*UserError); ok && ue.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", ue.Suggestion)
	}
	os.Exit(1)
}

func toUserError(err error) *UserError {
	if ue, ok := err.(*UserError); ok {
		return ue
	}
	return &UserError{Kind: "internal", Title: err.Error()}
}
