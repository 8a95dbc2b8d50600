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

// Package ui holds the terminal output helpers shared by every indelve
// command: colored headers and labels, warning/info lines, and count
// formatting. Color is auto-detected from the output stream and can be
// forced off via --no-color or NO_COLOR.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
	warningColor = color.New(color.FgYellow)
	countColor   = color.New(color.FgGreen)
)

// InitColors enables or disables color output. Pass noColor=true to
// force plain text regardless of the output stream; otherwise color is
// used only when stdout is a terminal.
func InitColors(noColor bool) {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
		return
	}
	color.NoColor = false
}

// Header prints a bold section heading.
func Header(text string) {
	headerColor.Println(text)
}

// SubHeader prints a lighter-weight heading under a Header.
func SubHeader(text string) {
	fmt.Println(text)
}

// Label formats a field label for use inline with fmt.Printf.
func Label(text string) string {
	return labelColor.Sprint(text)
}

// DimText formats low-emphasis text, such as file paths.
func DimText(text string) string {
	return dimColor.Sprint(text)
}

// CountText formats a numeric count for display.
func CountText(n int) string {
	return countColor.Sprintf("%d", n)
}

// Warning prints a warning line to stderr.
func Warning(text string) {
	fmt.Fprintln(os.Stderr, warningColor.Sprint("WARNING: ")+text)
}

// Warningf prints a formatted warning line to stderr.
func Warningf(format string, args ...interface{}) {
	Warning(fmt.Sprintf(format, args...))
}

// Info prints an informational line to stderr.
func Info(text string) {
	fmt.Fprintln(os.Stderr, text)
}
