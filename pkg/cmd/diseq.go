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

	"github.com/spf13/cobra"
)

var diseqCmd = &cobra.Command{
	Use:   "diseq [flags] lhs rhs",
	Short: "check whether two terms are known to be disequal.",
	Long: `Determine whether two terms of the same sort are disequal using cheap
syntactic reasoning.  This prints "disequal" when the terms can never be equal,
and "unknown" otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			env   = NewEnvironment()
			tbl   = env.Table()
			terms = ReadTerms(env, args)
		)
		//
		if tbl.TypeOf(terms[0]) != tbl.TypeOf(terms[1]) {
			fmt.Printf("incompatible sorts %s and %s\n", tbl.TypeString(tbl.TypeOf(terms[0])),
				tbl.TypeString(tbl.TypeOf(terms[1])))
			os.Exit(3)
		}
		//
		if env.Oracle().Disequal(terms[0], terms[1]) {
			fmt.Println("disequal")
		} else {
			fmt.Println("unknown")
		}
		//
		env.Close()
	},
}

func init() {
	rootCmd.AddCommand(diseqCmd)
}
