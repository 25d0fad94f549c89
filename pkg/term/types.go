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

import (
	"fmt"
	"strings"
)

// Type identifies a type in a Table.
type Type int32

// TypeKind identifies the category of a type.
type TypeKind uint8

// Type kinds
const (
	BoolType TypeKind = iota
	IntType
	RealType
	BitvectorType
	ScalarType
	UninterpretedType
	TupleType
	FunctionType
)

// Predefined types.
const (
	Bool Type = 0
	Int  Type = 1
	Real Type = 2
)

type typeDesc struct {
	kind TypeKind
	// bitwidth of a bitvector type or cardinality of a scalar type
	size uint32
	// element types of a tuple, or domain followed by range of a function
	elems []Type
	// name of a scalar or uninterpreted type
	name string
}

// types is the type table embedded in a term table.  Structural types
// (bitvectors, tuples and functions) are interned, whereas scalar and
// uninterpreted types are nominal.
type types struct {
	descs []typeDesc
	index map[string]Type
}

func newTypes() types {
	var p = types{index: make(map[string]Type)}
	//
	p.descs = append(p.descs, typeDesc{kind: BoolType}, typeDesc{kind: IntType}, typeDesc{kind: RealType})
	//
	return p
}

func (p *types) intern(desc typeDesc) Type {
	var key = fmt.Sprintf("%d:%d:%v", desc.kind, desc.size, desc.elems)
	//
	if tau, ok := p.index[key]; ok {
		return tau
	}
	//
	tau := p.fresh(desc)
	p.index[key] = tau
	//
	return tau
}

func (p *types) fresh(desc typeDesc) Type {
	p.descs = append(p.descs, desc)
	//
	return Type(len(p.descs) - 1)
}

// BVType returns the type of bitvectors of a given width.
func (p *Table) BVType(width uint) Type {
	if width == 0 {
		panic("bitvector type must have positive width")
	}
	//
	return p.types.intern(typeDesc{kind: BitvectorType, size: uint32(width)})
}

// NewScalarType constructs a fresh scalar (i.e. enumeration) type with a given
// number of elements.
func (p *Table) NewScalarType(name string, card uint32) Type {
	if card == 0 {
		panic("scalar type must be non-empty")
	}
	//
	return p.types.fresh(typeDesc{kind: ScalarType, size: card, name: name})
}

// NewUninterpretedType constructs a fresh uninterpreted type.
func (p *Table) NewUninterpretedType(name string) Type {
	return p.types.fresh(typeDesc{kind: UninterpretedType, name: name})
}

// TupleType returns the type of tuples with given element types.
func (p *Table) TupleType(elems ...Type) Type {
	if len(elems) == 0 {
		panic("tuple type must have at least one element")
	}
	//
	return p.types.intern(typeDesc{kind: TupleType, elems: append([]Type(nil), elems...)})
}

// FunctionType returns the type of functions from a given domain to a given
// range.
func (p *Table) FunctionType(dom []Type, rng Type) Type {
	if len(dom) == 0 {
		panic("function type must have at least one argument")
	}
	//
	elems := append(append([]Type(nil), dom...), rng)
	//
	return p.types.intern(typeDesc{kind: FunctionType, elems: elems})
}

// TypeKindOf returns the kind of a given type.
func (p *Table) TypeKindOf(tau Type) TypeKind {
	return p.types.descs[tau].kind
}

// TypeWidth returns the width of a bitvector type.
func (p *Table) TypeWidth(tau Type) uint {
	if p.TypeKindOf(tau) != BitvectorType {
		panic(fmt.Sprintf("type %s is not a bitvector type", p.TypeString(tau)))
	}
	//
	return uint(p.types.descs[tau].size)
}

// Cardinality returns the number of elements of a scalar type.
func (p *Table) Cardinality(tau Type) uint32 {
	if p.TypeKindOf(tau) != ScalarType {
		panic(fmt.Sprintf("type %s is not a scalar type", p.TypeString(tau)))
	}
	//
	return p.types.descs[tau].size
}

// TupleElems returns the element types of a tuple type.
func (p *Table) TupleElems(tau Type) []Type {
	if p.TypeKindOf(tau) != TupleType {
		panic(fmt.Sprintf("type %s is not a tuple type", p.TypeString(tau)))
	}
	//
	return p.types.descs[tau].elems
}

// FunctionSignature returns the domain and range of a function type.
func (p *Table) FunctionSignature(tau Type) ([]Type, Type) {
	if p.TypeKindOf(tau) != FunctionType {
		panic(fmt.Sprintf("type %s is not a function type", p.TypeString(tau)))
	}
	//
	elems := p.types.descs[tau].elems
	//
	return elems[:len(elems)-1], elems[len(elems)-1]
}

// IsUnitType checks whether a type has exactly one element.
func (p *Table) IsUnitType(tau Type) bool {
	var desc = p.types.descs[tau]
	//
	switch desc.kind {
	case ScalarType:
		return desc.size == 1
	case TupleType:
		for _, elem := range desc.elems {
			if !p.IsUnitType(elem) {
				return false
			}
		}
		//
		return true
	case FunctionType:
		return p.IsUnitType(desc.elems[len(desc.elems)-1])
	default:
		return false
	}
}

// TypeString returns a textual representation of a type.
func (p *Table) TypeString(tau Type) string {
	var desc = p.types.descs[tau]
	//
	switch desc.kind {
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case RealType:
		return "real"
	case BitvectorType:
		return fmt.Sprintf("bv%d", desc.size)
	case ScalarType, UninterpretedType:
		return desc.name
	default:
		var elems = make([]string, len(desc.elems))
		//
		for i, elem := range desc.elems {
			elems[i] = p.TypeString(elem)
		}
		//
		if desc.kind == TupleType {
			return fmt.Sprintf("(tuple %s)", strings.Join(elems, " "))
		}
		//
		return fmt.Sprintf("(-> %s)", strings.Join(elems, " "))
	}
}
