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

// String returns a textual representation of a term as an S-expression.
func (p *Table) String(t Term) string {
	var buf strings.Builder
	//
	p.write(&buf, t)
	//
	return buf.String()
}

func (p *Table) write(buf *strings.Builder, t Term) {
	switch {
	case t == NullTerm:
		buf.WriteString("<null>")
		return
	case t == True:
		buf.WriteString("true")
		return
	case t == False:
		buf.WriteString("false")
		return
	case !t.IsPos():
		buf.WriteString("(not ")
		p.write(buf, t.Not())
		buf.WriteString(")")
		//
		return
	}
	//
	switch kind := p.Kind(t); kind {
	case Reserved:
		buf.WriteString("<const>")
	case Constant:
		fmt.Fprintf(buf, "%s!%d", p.TypeString(p.TypeOf(t)), p.ConstantIndexOf(t))
	case Uninterpreted:
		buf.WriteString(p.NameOf(t))
	case ArithConstant:
		buf.WriteString(p.RationalOf(t).RatString())
	case BV64Constant, BVConstant:
		buf.WriteString(p.BVValueOf(t).String())
	case PowerProduct:
		p.writeProduct(buf, t)
	case ArithPoly:
		p.writeArithPoly(buf, p.PolyOf(t))
	case BV64Poly:
		poly := p.BV64PolyOf(t)
		buf.WriteString("(+")
		//
		for _, m := range poly.Mono {
			buf.WriteString(" ")
			p.writeMonomial(buf, fmt.Sprint(m.Coeff), m.Coeff == 1, m.Var)
		}
		//
		buf.WriteString(")")
	case BVPoly:
		poly := p.BVPolyOf(t)
		buf.WriteString("(+")
		//
		for i := range poly.Mono {
			buf.WriteString(" ")
			p.writeMonomial(buf, poly.Mono[i].Coeff.String(), poly.Mono[i].Coeff.IsInt64() &&
				poly.Mono[i].Coeff.Int64() == 1, poly.Mono[i].Var)
		}
		//
		buf.WriteString(")")
	case Bit:
		index, arg := p.SelectOf(t)
		buf.WriteString("(bit ")
		p.write(buf, arg)
		fmt.Fprintf(buf, " %d)", index)
	default:
		buf.WriteString("(")
		buf.WriteString(kind.String())
		//
		for _, arg := range p.Args(t) {
			buf.WriteString(" ")
			p.write(buf, arg)
		}
		//
		buf.WriteString(")")
	}
}

func (p *Table) writeProduct(buf *strings.Builder, t Term) {
	var pairs = p.PProdOfTerm(t).Pairs()
	//
	if len(pairs) > 1 {
		buf.WriteString("(*")
	}
	//
	for i, pair := range pairs {
		if i > 0 || len(pairs) > 1 {
			buf.WriteString(" ")
		}
		//
		if pair.Exp == 1 {
			p.write(buf, Term(pair.Var))
		} else {
			buf.WriteString("(^ ")
			p.write(buf, Term(pair.Var))
			fmt.Fprintf(buf, " %d)", pair.Exp)
		}
	}
	//
	if len(pairs) > 1 {
		buf.WriteString(")")
	}
}

func (p *Table) writeArithPoly(buf *strings.Builder, poly *Polynomial) {
	buf.WriteString("(+")
	//
	for i := range poly.Mono {
		var (
			coeff = &poly.Mono[i].Coeff
			unit  = coeff.IsInt() && coeff.Num().IsInt64() && coeff.Num().Int64() == 1
		)
		//
		buf.WriteString(" ")
		p.writeMonomial(buf, coeff.RatString(), unit, poly.Mono[i].Var)
	}
	//
	buf.WriteString(")")
}

func (p *Table) writeMonomial(buf *strings.Builder, coeff string, unit bool, v Term) {
	switch {
	case v == ConstIdx:
		buf.WriteString(coeff)
	case unit:
		p.write(buf, v)
	default:
		fmt.Fprintf(buf, "(* %s ", coeff)
		p.write(buf, v)
		buf.WriteString(")")
	}
}
