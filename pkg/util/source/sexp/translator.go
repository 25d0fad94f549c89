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
package sexp

import (
	"github.com/consensys/go-termcore/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into an expression of type T, such as a number or a variable.  The
// boolean indicates whether the rule applied.
type SymbolRule[T any] func(string) (T, bool, error)

// ListRule is responsible for converting a list into an expression of type T.
type ListRule[T any] func(*List) (T, []source.SyntaxError)

// RecursiveRule is a wrapper for translating lists whose elements can be
// built by recursively reusing the enclosing translator.  Observe that the
// arguments are already translated into the correct form.
type RecursiveRule[T any] func(string, []T) (T, error)

// ===================================================================
// Translator
// ===================================================================

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.
type Translator[T any] struct {
	// Rules for parsing lists
	lists map[string]ListRule[T]
	// Rules for parsing symbols, tried in order
	symbols []SymbolRule[T]
	// Maps S-Expressions to their spans in the original source file.
	srcmap *source.Map[SExp]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T any](srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		lists:   make(map[string]ListRule[T]),
		symbols: make([]SymbolRule[T], 0),
		srcmap:  srcmap,
	}
}

// Translate a given S-Expression into the structured representation T.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := sexp.(type) {
	case *List:
		return p.translateList(e)
	case *Symbol:
		for _, rule := range p.symbols {
			node, ok, err := rule(e.Value)
			if ok && err != nil {
				return empty, p.SyntaxErrors(sexp, err.Error())
			} else if ok {
				return node, nil
			}
		}
		//
		return empty, p.SyntaxErrors(sexp, "unknown symbol")
	}
	// Unreachable for parsed S-Expressions.
	return empty, p.SyntaxErrors(sexp, "invalid s-expression")
}

// AddListRule adds a raw list rule to this translator.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a list rule whose arguments are translated
// before the rule is applied.
func (p *Translator[T]) AddRecursiveListRule(name string, rule RecursiveRule[T]) {
	p.lists[name] = func(l *List) (T, []source.SyntaxError) {
		var (
			empty  T
			errors []source.SyntaxError
			args   = make([]T, len(l.Elements)-1)
		)
		// Translate arguments
		for i, s := range l.Elements[1:] {
			var errs []source.SyntaxError
			args[i], errs = p.Translate(s)
			errors = append(errors, errs...)
		}
		//
		if len(errors) != 0 {
			return empty, errors
		}
		// Apply constructor
		node, err := rule(l.Head(), args)
		if err != nil {
			return empty, p.SyntaxErrors(l, err.Error())
		}
		//
		return node, nil
	}
}

// AddSymbolRule adds a new symbol rule to this translator.
func (p *Translator[T]) AddSymbolRule(rule SymbolRule[T]) {
	p.symbols = append(p.symbols, rule)
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.srcmap.SyntaxError(s, msg)
}

// SyntaxErrors constructs a suitable syntax error for a given S-Expression.
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

// Translate a list whose head symbol determines the rule to apply.
func (p *Translator[T]) translateList(l *List) (T, []source.SyntaxError) {
	var empty T
	//
	if l.Head() == "" {
		return empty, p.SyntaxErrors(l, "invalid list")
	} else if rule, ok := p.lists[l.Head()]; ok {
		return rule(l)
	}
	//
	return empty, p.SyntaxErrors(l, "unknown list encountered")
}
