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
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-termcore/pkg/arith"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/termio"
)

// printBufferTree prints the red-black tree of a buffer, one node per line and
// indented by depth.  Red nodes are coloured when writing to a terminal, and
// lines are clipped to its width.
func printBufferTree(out *os.File, tbl *term.Table, buf *arith.Buffer) {
	writeBufferTree(out, termio.NewFormatter(out), termio.Width(out, 0), tbl, buf)
}

// writeBufferTree writes the tree of a buffer, clipping each line to a given
// width (where 0 means unlimited).
func writeBufferTree(out io.Writer, formatter termio.Formatter, width uint, tbl *term.Table,
	buf *arith.Buffer) {
	var (
		red   = termio.NewAnsiEscape().FgColour(termio.TERM_RED)
		black = termio.BoldAnsiEscape()
	)
	//
	buf.Visit(func(depth uint, isRed bool, m *arith.Monomial) {
		var (
			colour, escape = "B", black
			text           = monomialString(tbl, m)
		)
		//
		if isRed {
			colour, escape = "R", red
		}
		//
		if m.Coeff.Sign() == 0 {
			text = text + " (deleted)"
		}
		//
		if indent := 2*depth + 2; width > indent && uint(len(text)) > width-indent {
			text = text[:width-indent-1] + "~"
		}
		//
		fmt.Fprintf(out, "%s%s %s\n", strings.Repeat("  ", int(depth)), formatter.Format(colour, escape), text)
	})
}

func monomialString(tbl *term.Table, m *arith.Monomial) string {
	var coeff = m.Coeff.RatString()
	//
	if m.Prod.IsEmpty() {
		return coeff
	}
	//
	return fmt.Sprintf("%s*%s", coeff, m.Prod.String(func(x int32) string {
		return tbl.String(term.Term(x))
	}))
}
