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
package worker

import (
	"github.com/consensys/go-termcore/pkg/pprod"
	"github.com/consensys/go-termcore/pkg/term"
	"github.com/consensys/go-termcore/pkg/util/collection/pool"
	log "github.com/sirupsen/logrus"
)

// Context holds the scratch storage owned by a single worker.  Independent
// workers never share a context, hence they never contend for scratch memory.
// A context must be passed explicitly to any operation needing scratch
// storage, and closed when its worker terminates.
type Context struct {
	id    uint
	terms *pool.Store[term.Term]
	prods *pool.Store[*pprod.Product]
}

// New constructs a fresh context for a given worker.
func New(id uint) *Context {
	return &Context{id, pool.NewStore[term.Term](), pool.NewStore[*pprod.Product]()}
}

// ID returns the identifier of the worker owning this context.
func (p *Context) ID() uint {
	return p.id
}

// Terms returns the store of term vectors owned by this worker.
func (p *Context) Terms() *pool.Store[term.Term] {
	return p.terms
}

// Products returns the store of power product vectors owned by this worker.
func (p *Context) Products() *pool.Store[*pprod.Product] {
	return p.prods
}

// Close frees all scratch storage retained by this context.
func (p *Context) Close() {
	log.Debugf("worker %d closing (%d term vectors, %d product vectors retained)", p.id,
		p.terms.Retained(), p.prods.Retained())
	//
	p.terms.Close()
	p.prods.Close()
}
