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
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-termcore/pkg/arith"
	"github.com/consensys/go-termcore/pkg/pprod"
	"github.com/consensys/go-termcore/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// number of distinct variables used by random products
const checkVars = 8

var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "stress test the arithmetic buffer.",
	Long: `Perform random insertions, resets and normalisations on arithmetic buffers,
checking the red-black tree invariants after every step.  Then check the
product of random polynomials against their fingerprints.  Each worker owns
its own buffers and power product table.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			count   = GetUint(cmd, "count")
			seed    = GetUint64(cmd, "seed")
			workers = GetUint(cmd, "workers")
			stats   = util.NewPerfStats()
			errs    = make([]error, workers)
			wg      sync.WaitGroup
		)
		//
		for i := range workers {
			wg.Add(1)
			//
			go func(id uint) {
				defer wg.Done()
				errs[id] = stressBuffer(id, count, seed+uint64(id))
			}(i)
		}
		//
		wg.Wait()
		stats.Log("buffer check")
		//
		if err := errors.Join(errs...); err != nil {
			log.Error(err)
			os.Exit(4)
		}
		//
		fmt.Printf("ok (%d steps across %d workers)\n", count*workers, workers)
	},
}

// stressBuffer applies a random sequence of updates to a buffer, checking its
// invariants after each.
func stressBuffer(id uint, count uint, seed uint64) error {
	var (
		rng       = rand.New(rand.NewPCG(seed, uint64(id)))
		tbl       = pprod.NewTable()
		buf       = arith.NewBuffer(tbl)
		prods     = randomProducts(tbl, rng, 32)
		maxNodes  uint
		maxHeight uint
	)
	//
	defer buf.Dispose()
	//
	for step := range count {
		switch r := rng.IntN(100); {
		case r < 2:
			buf.Reset()
		case r < 4:
			buf.Normalize()
			//
			if buf.NumNodes() != buf.NumTerms() {
				return fmt.Errorf("worker %d, step %d: normalised buffer has %d nodes for %d terms", id, step,
					buf.NumNodes(), buf.NumTerms())
			}
		default:
			buf.AddMono(randomCoeff(rng), prods[rng.IntN(len(prods))])
		}
		//
		if err := buf.Check(); err != nil {
			return fmt.Errorf("worker %d, step %d: %w", id, step, err)
		}
		//
		maxNodes = max(maxNodes, buf.NumNodes())
		maxHeight = max(maxHeight, buf.BlackHeight())
	}
	//
	log.Debugf("worker %d: at most %d nodes with black height %d", id, maxNodes, maxHeight)
	//
	return checkProduct(id, tbl, rng, prods)
}

// checkProduct multiplies two random polynomials, and compares the fingerprint
// of the result against the product of their fingerprints.
func checkProduct(id uint, tbl *pprod.Table, rng *rand.Rand, prods []*pprod.Product) error {
	var (
		p, q, aux = arith.NewBuffer(tbl), arith.NewBuffer(tbl), arith.NewBuffer(tbl)
		values    [checkVars + 1]fr.Element
		expected  fr.Element
	)
	//
	for i := range values {
		values[i].SetUint64(rng.Uint64())
	}
	//
	env := func(x int32) fr.Element { return values[x] }
	//
	for range 8 {
		p.AddMono(randomCoeff(rng), prods[rng.IntN(len(prods))])
		q.AddMono(randomCoeff(rng), prods[rng.IntN(len(prods))])
	}
	//
	fp, fq := p.Fingerprint(env), q.Fingerprint(env)
	expected.Mul(&fp, &fq)
	p.MulBuffer(q, aux)
	//
	if actual := p.Fingerprint(env); !actual.Equal(&expected) {
		return fmt.Errorf("worker %d: fingerprint mismatch for product", id)
	}
	//
	return p.Check()
}

// randomProducts generates a set of power products over a small number of
// variables, including the empty product.
func randomProducts(tbl *pprod.Table, rng *rand.Rand, n uint) []*pprod.Product {
	var prods = []*pprod.Product{tbl.Empty()}
	//
	for range n {
		prod := tbl.Empty()
		//
		for range 1 + rng.IntN(3) {
			x := 1 + rng.Int32N(checkVars)
			prod = tbl.Mul(prod, tbl.VarExp(x, 1+rng.Uint32N(3)))
		}
		//
		prods = append(prods, prod)
	}
	//
	return prods
}

// randomCoeff returns a small nonzero rational.
func randomCoeff(rng *rand.Rand) *big.Rat {
	var num = rng.Int64N(20) - 10
	//
	if num >= 0 {
		num++
	}
	//
	return big.NewRat(num, 1+rng.Int64N(4))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("count", 10000, "number of random steps per worker")
	checkCmd.Flags().Uint64("seed", 1, "seed for the random number generator")
	checkCmd.Flags().Uint("workers", 1, "number of concurrent workers")
}
