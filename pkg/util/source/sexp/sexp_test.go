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
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/consensys/go-termcore/pkg/util/source"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_3(t *testing.T) {
	e1 := Symbol{"symbol"}
	CheckOk(t, &e1, "symbol")
}

func TestSexp_4(t *testing.T) {
	e1 := Symbol{"#b0101"}
	CheckOk(t, &e1, "  #b0101 ")
}

func TestSexp_5(t *testing.T) {
	e1 := Symbol{"-1/2"}
	CheckOk(t, &e1, "-1/2")
}

func TestSexp_6(t *testing.T) {
	e1 := Symbol{"symbol123"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(symbol123)")
}

func TestSexp_7(t *testing.T) {
	e1 := Symbol{"symbol"}
	e2 := List{[]SExp{&e1, &e1}}
	CheckOk(t, &e2, "(symbol symbol)")
}

func TestSexp_8(t *testing.T) {
	e1 := Symbol{"+"}
	e2 := Symbol{"1"}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "(+ 1)")
}

func TestSexp_9(t *testing.T) {
	e1 := Symbol{"hello"}
	e2 := Symbol{"world"}
	e3 := List{[]SExp{&e2}}
	e4 := List{[]SExp{&e1, &e3}}
	CheckOk(t, &e4, "(hello(world))")
}

func TestSexp_10(t *testing.T) {
	e1 := Symbol{"x:bv8"}
	e2 := Symbol{"y"}
	e3 := Symbol{"bvudiv"}
	e4 := List{[]SExp{&e3, &e1, &e2}}
	CheckOk(t, &e4, "(bvudiv ; comment\n\tx:bv8 y)")
}

func TestSexp_11(t *testing.T) {
	srcfile := source.NewSourceFile("test", "a b (c)")
	terms, srcmap, err := ParseAll(srcfile)
	//
	if err != nil {
		t.Fatal(err)
	} else if len(terms) != 3 {
		t.Fatalf("expected 3 terms, found %d", len(terms))
	}
	//
	CheckSpan(t, srcmap.Get(terms[0]), 0, 1)
	CheckSpan(t, srcmap.Get(terms[1]), 2, 3)
	CheckSpan(t, srcmap.Get(terms[2]), 4, 7)
	CheckSpan(t, srcmap.Get(terms[2].AsList().Get(0)), 5, 6)
}

// ============================================================================
// Negative Tests
// ============================================================================

// unexpected end of list
func TestSexp_Err1(t *testing.T) {
	CheckErr(t, ")")
}

// unexpected end of list
func TestSexp_Err2(t *testing.T) {
	CheckErr(t, "())")
}

// unexpected remainder
func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(string) x")
}

// unexpected end of file
func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "(another (string)")
}

// empty input
func TestSexp_Err5(t *testing.T) {
	CheckErr(t, "  ; nothing")
}

// ============================================================================
// Translator
// ============================================================================

func TestTranslator_1(t *testing.T) {
	n, errs := CheckTranslate(t, "(+ 1 (* 2 3) 4)")
	//
	if len(errs) != 0 {
		t.Fatal(errs[0].Error())
	} else if n != 11 {
		t.Errorf("expected 11, found %d", n)
	}
}

func TestTranslator_2(t *testing.T) {
	_, errs := CheckTranslate(t, "(+ 1 x (* y))")
	//
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, found %d", len(errs))
	}
	//
	CheckSpan(t, errs[0].Span(), 5, 6)
	CheckSpan(t, errs[1].Span(), 10, 11)
	//
	if errs[0].Message() != "unknown symbol" {
		t.Errorf("unexpected message %q", errs[0].Message())
	}
}

func TestTranslator_3(t *testing.T) {
	_, errs := CheckTranslate(t, "(* 2 (- 3))")
	//
	if len(errs) != 1 || errs[0].Message() != "unknown list encountered" {
		t.Fatalf("unexpected errors %v", errs)
	}
	//
	CheckSpan(t, errs[0].Span(), 5, 10)
}

func TestTranslator_4(t *testing.T) {
	_, errs := CheckTranslate(t, "(*)")
	//
	if len(errs) != 1 || errs[0].Message() != "empty product" {
		t.Fatalf("unexpected errors %v", errs)
	}
	//
	line := errs[0].FirstEnclosingLine()
	//
	if line.Number() != 1 || line.String() != "(*)" {
		t.Errorf("unexpected line %d: %s", line.Number(), line.String())
	}
}

// ============================================================================
// Helpers
// ============================================================================

func CheckOk(t *testing.T, sexp1 SExp, input string) {
	sexp2, _, err := Parse(source.NewSourceFile("test", input))
	//
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(sexp1, sexp2) {
		t.Errorf("%s != %s", sexp1, sexp2)
	}
}

func CheckErr(t *testing.T, input string) {
	_, _, err := Parse(source.NewSourceFile("test", input))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}

func CheckSpan(t *testing.T, span source.Span, start, end int) {
	t.Helper()
	//
	if span.Start() != start || span.End() != end {
		t.Errorf("expected span %d:%d, found %d:%d", start, end, span.Start(), span.End())
	}
}

// CheckTranslate evaluates a simple integer expression language.
func CheckTranslate(t *testing.T, input string) (int, []source.SyntaxError) {
	sexp, srcmap, err := Parse(source.NewSourceFile("test", input))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	translator := NewTranslator[int](srcmap)
	translator.AddSymbolRule(func(s string) (int, bool, error) {
		n, err := strconv.Atoi(s)
		return n, err == nil, nil
	})
	translator.AddRecursiveListRule("+", func(_ string, args []int) (int, error) {
		var sum int
		for _, arg := range args {
			sum += arg
		}
		//
		return sum, nil
	})
	translator.AddRecursiveListRule("*", func(_ string, args []int) (int, error) {
		if len(args) == 0 {
			return 0, errors.New("empty product")
		}
		//
		var prod = 1
		for _, arg := range args {
			prod *= arg
		}
		//
		return prod, nil
	})
	//
	return translator.Translate(sexp)
}
