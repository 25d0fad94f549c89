// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"os"

	"golang.org/x/term"
)

// Formatter decorates text with ANSI escapes, provided the output is an
// interactive terminal.
type Formatter struct {
	enabled bool
}

// NewFormatter constructs a formatter for a given output, which is enabled
// only when that output is a terminal.
func NewFormatter(out *os.File) Formatter {
	return Formatter{term.IsTerminal(int(out.Fd()))}
}

// PlainFormatter constructs a formatter which never emits escapes.
func PlainFormatter() Formatter {
	return Formatter{false}
}

// Enabled checks whether this formatter emits escapes.
func (p Formatter) Enabled() bool {
	return p.enabled
}

// Format decorates a given string with an escape.
func (p Formatter) Format(text string, escape AnsiEscape) string {
	if !p.enabled {
		return text
	}
	//
	return escape.Build() + text + ResetAnsiEscape().Build()
}

// Width returns the width of the terminal attached to a given output, or a
// default when it is not a terminal.
func Width(out *os.File, def uint) uint {
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
		return uint(w)
	}
	//
	return def
}
