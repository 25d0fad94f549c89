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
	"github.com/consensys/go-termcore/pkg/arith"
	"github.com/consensys/go-termcore/pkg/domain"
	"github.com/consensys/go-termcore/pkg/oracle"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/worker"
)

// Environment holds the state shared by a single command invocation: the term
// table, the scratch space of the (single) worker, and the variables declared
// so far.
type Environment struct {
	tbl    *term.Table
	worker *worker.Context
	bridge *arith.Bridge
	cache  *domain.Cache
	vars   map[string]term.Term
}

// NewEnvironment constructs an empty environment.
func NewEnvironment() *Environment {
	var (
		tbl = term.NewTable()
		w   = worker.New(0)
	)
	//
	return &Environment{tbl, w, arith.NewBridge(tbl, w), domain.NewCache(tbl), make(map[string]term.Term)}
}

// Table returns the term table of this environment.
func (p *Environment) Table() *term.Table {
	return p.tbl
}

// Bridge returns the bridge between terms and arithmetic buffers.
func (p *Environment) Bridge() *arith.Bridge {
	return p.bridge
}

// Oracle constructs a disequality oracle over this environment's terms.
func (p *Environment) Oracle() *oracle.Oracle {
	return oracle.NewOracle(p.tbl, p.cache, p.worker)
}

// Close releases the scratch space held by this environment.
func (p *Environment) Close() {
	p.worker.Close()
}
