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
package term

import "fmt"

// UnitTypeRep returns the unique representative of a type with exactly one
// element.  For a scalar type this is its only constant, for a tuple type the
// tuple of representatives of its elements, and for a function type (whose
// range is a unit type) a fresh uninterpreted term.  Representatives are
// memoised, so repeated calls return the same term.
func (p *Table) UnitTypeRep(tau Type) Term {
	if !p.IsUnitType(tau) {
		panic(fmt.Sprintf("type %s is not a unit type", p.TypeString(tau)))
	} else if rep, ok := p.units[tau]; ok {
		return rep
	}
	//
	var rep Term
	//
	switch p.TypeKindOf(tau) {
	case ScalarType:
		rep = p.Constant(tau, 0)
	case TupleType:
		var (
			elems = p.TupleElems(tau)
			args  = make([]Term, len(elems))
		)
		//
		for i, elem := range elems {
			args[i] = p.UnitTypeRep(elem)
		}
		//
		rep = p.Tuple(args...)
	default:
		rep = p.NewVar(tau, fmt.Sprintf("unit!%d", tau))
	}
	//
	p.units[tau] = rep
	//
	return rep
}
