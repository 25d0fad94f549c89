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
	"os"
	"strings"

	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/source"
	"github.com/consensys/go-termcore/pkg/util/source/sexp"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetInt gets an expected signed integer, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint64 gets an expected 64-bit unsigned integer, or exits if an error
// arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// ReadTerms parses each command-line argument as a single term, printing any
// syntax errors and exiting if there are any.
func ReadTerms(env *Environment, args []string) []term.Term {
	var (
		terms  = make([]term.Term, len(args))
		errors []source.SyntaxError
	)
	//
	for i, arg := range args {
		var (
			errs    []source.SyntaxError
			srcfile = source.NewSourceFile(fmt.Sprintf("arg%d", i+1), arg)
		)
		//
		terms[i], errs = ParseTerm(env, srcfile)
		errors = append(errors, errs...)
	}
	//
	if len(errors) != 0 {
		for _, err := range errors {
			printSyntaxError(&err)
		}
		//
		os.Exit(4)
	}
	//
	return terms
}

// ParseTerm parses a given source file into a single term.
func ParseTerm(env *Environment, srcfile *source.File) (term.Term, []source.SyntaxError) {
	s, srcmap, err := sexp.Parse(srcfile)
	//
	if err != nil {
		return term.NullTerm, []source.SyntaxError{*err}
	}
	//
	return env.Translate(s, srcmap)
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	var (
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length = max(1, min(len(line.String())-lineOffset, span.Length()))
	)
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
