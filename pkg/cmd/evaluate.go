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

	"github.com/consensys/go-termcore/pkg/bv"
	"github.com/consensys/go-termcore/pkg/eval"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] term",
	Short: "evaluate a bit-vector term over constant children.",
	Long: `Evaluate a composite, bit-select or polynomial bit-vector (or boolean)
term whose children are all constants, and print its value in binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			env = NewEnvironment()
			t   = ReadTerms(env, args)[0]
		)
		//
		value, err := evaluate(env.Table(), t)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		fmt.Printf("%s = %s\n", env.Table().String(t), value)
		env.Close()
	},
}

// evaluate computes the value of a term whose children are constants.
func evaluate(tbl *term.Table, t term.Term) (*bv.Constant, error) {
	if value, ok := constantValue(tbl, t); ok {
		return value, nil
	} else if !tbl.IsBoolean(t) && !tbl.IsBitvector(t) {
		return nil, fmt.Errorf("expected bit-vector or boolean term, found %s", tbl.String(t))
	} else if !eval.HasChildren(tbl, t) {
		return nil, fmt.Errorf("cannot evaluate %s", tbl.String(t))
	}
	//
	var (
		children = eval.Children(tbl, t)
		values   = make([]*bv.Constant, len(children))
		out      = bv.New(1)
	)
	//
	for i, child := range children {
		value, ok := constantValue(tbl, child)
		if !ok {
			return nil, fmt.Errorf("child %s is not a constant", tbl.String(child))
		}
		//
		values[i] = value
	}
	//
	eval.ComputeValue(tbl, t, values, out)
	//
	return out, nil
}

// constantValue returns the value of a boolean or bit-vector constant.
func constantValue(tbl *term.Table, t term.Term) (*bv.Constant, bool) {
	switch {
	case t == term.True:
		return bv.NewUint64(1, 1), true
	case t == term.False:
		return bv.NewUint64(1, 0), true
	case tbl.IsBitvector(t) && eval.Classify(tbl, t) == eval.ConstantTerm:
		return tbl.BVValueOf(t), true
	default:
		return nil, false
	}
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
