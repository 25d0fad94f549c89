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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var polyCmd = &cobra.Command{
	Use:   "poly [flags] expr1 expr2 ...",
	Short: "sum arithmetic terms into a canonical polynomial.",
	Long: `Parse each argument as an arithmetic term, accumulate their sum in an
arithmetic buffer, and print the resulting canonical polynomial.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			env   = NewEnvironment()
			tbl   = env.Table()
			terms = ReadTerms(env, args)
			buf   = env.Bridge().NewBuffer()
		)
		//
		for i, t := range terms {
			if !tbl.IsArithmetic(t) {
				fmt.Printf("arg%d: expected arithmetic term, found %s\n", i+1, tbl.String(t))
				os.Exit(3)
			}
			//
			env.Bridge().AddTerm(buf, t)
		}
		//
		log.Debugf("buffer holds %d nodes (%d terms) with black height %d", buf.NumNodes(), buf.NumTerms(),
			buf.BlackHeight())
		//
		if GetFlag(cmd, "tree") {
			printBufferTree(os.Stdout, tbl, buf)
		}
		//
		fmt.Println(tbl.String(env.Bridge().Export(buf)))
		env.Close()
	},
}

func init() {
	rootCmd.AddCommand(polyCmd)
	polyCmd.Flags().Bool("tree", false, "print the underlying red-black tree")
}
