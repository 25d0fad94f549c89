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

	"github.com/consensys/go-termcore/pkg/bounds"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/spf13/cobra"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds [flags] term",
	Short: "infer bounds on a bit-vector term.",
	Long: `Infer the unsigned and signed bounds of a bit-vector term from the bits
which are statically known, and print those bits (most significant first).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			env = NewEnvironment()
			tbl = env.Table()
			t   = ReadTerms(env, args)[0]
		)
		//
		if !tbl.IsBitvector(t) {
			fmt.Printf("expected bit-vector term, found %s\n", tbl.String(t))
			os.Exit(3)
		}
		//
		fmt.Printf("unsigned: [%d, %d]\n", bounds.LowerBoundUnsigned(tbl, t), bounds.UpperBoundUnsigned(tbl, t))
		fmt.Printf("signed:   [%s, %s]\n", bounds.LowerBoundSigned(tbl, t).Signed(),
			bounds.UpperBoundSigned(tbl, t).Signed())
		fmt.Printf("bits:     %s\n", knownBits(tbl, t))
		env.Close()
	},
}

// knownBits renders the statically known bits of a bit-vector term, where an
// unknown bit is written as "?".
func knownBits(tbl *term.Table, t term.Term) string {
	var (
		builder strings.Builder
		width   = tbl.BitSize(t)
	)
	//
	for i := width; i > 0; i-- {
		switch bounds.ExtractBit(tbl, t, i-1) {
		case term.True:
			builder.WriteString("1")
		case term.False:
			builder.WriteString("0")
		default:
			builder.WriteString("?")
		}
	}
	//
	return builder.String()
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}
