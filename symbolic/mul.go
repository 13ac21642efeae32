package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

// MulOf builds an unevaluated product. The factors are kept exactly as
// given.
func MulOf(factors ...Expr) Expr { return &Mul{factors: append([]Expr(nil), factors...)} }

// Div builds the unevaluated quotient a * b^-1.
func Div(a, b Expr) Expr { return MulOf(a, Inverse(b)) }

func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

func (m *Mul) simplify() Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.simplify()
	}
	return foldMul(factors)
}

// foldMul combines simplified factors: nested products are flattened,
// literals multiplied, and powers of the same base merged by adding their
// exponents. A base whose exponents cancel drops out, which is what turns
// f * f^-1 into 1 for any f that is not an exact zero.
func foldMul(factors []Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}
	type group struct {
		base Expr
		exps []Expr
	}
	coeff := N(1)
	groups := map[string]*group{}
	order := []string{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := asPower(f)
		key := Srepr(base)
		g, seen := groups[key]
		if !seen {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.exps = append(g.exps, exp)
	}
	sort.Strings(order)

	others := make([]Expr, 0, len(order))
	refold := false
	for _, key := range order {
		g := groups[key]
		exp := g.exps[0]
		if len(g.exps) > 1 {
			exp = foldAdd(g.exps)
		}
		if isNumEqual(exp, 0) {
			if n, ok := g.base.(*Num); ok && n.IsZero() {
				fail("mul", "0 * 0^-1 is undefined")
			}
			continue
		}
		switch p := foldPow(g.base, exp).(type) {
		case *Num:
			coeff = numMul(coeff, p)
		case *Mul:
			refold = true
			others = append(others, p.factors...)
		default:
			others = append(others, p)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if refold {
		return foldMul(append([]Expr{coeff}, others...))
	}
	if len(others) == 0 {
		return coeff
	}
	if len(others) == 1 {
		if coeff.IsOne() {
			return others[0]
		}
		if a, ok := others[0].(*Add); ok {
			terms := make([]Expr, len(a.terms))
			for i, t := range a.terms {
				terms[i] = foldMul([]Expr{coeff, t})
			}
			return foldAdd(terms)
		}
	}
	if coeff.IsOne() {
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

func asPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func (m *Mul) prec() int {
	if len(m.factors) > 1 {
		if c, ok := m.factors[0].(*Num); ok && c.IsNegative() {
			return precAdd
		}
	}
	return precMul
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	var sb strings.Builder
	factors := m.factors
	if c, ok := factors[0].(*Num); ok && c.IsNegOne() && len(factors) > 1 {
		sb.WriteString("-")
		factors = factors[1:]
	}
	for i, f := range factors {
		if i > 0 {
			sb.WriteString("*")
		} else if n, ok := f.(*Num); ok && n.IsInteger() {
			sb.WriteString(n.String())
			continue
		}
		sb.WriteString(wrap(f, precMul))
	}
	return sb.String()
}

// LaTeX renders factors raised to negative integer powers as a fraction.
func (m *Mul) LaTeX() string {
	if len(m.factors) == 0 {
		return "1"
	}
	factors := m.factors
	sign := ""
	if c, ok := factors[0].(*Num); ok && c.IsNegOne() && len(factors) > 1 {
		sign = "-"
		factors = factors[1:]
	}
	var num, den []string
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if en, ok := p.exp.(*Num); ok && en.IsNegative() && en.IsInteger() {
				if en.IsNegOne() {
					den = append(den, p.base.LaTeX())
				} else {
					den = append(den, (&Pow{base: p.base, exp: numNeg(en)}).LaTeX())
				}
				continue
			}
		}
		if n, ok := f.(*Num); ok && n.IsInteger() && len(num) == 0 {
			num = append(num, n.LaTeX())
			continue
		}
		num = append(num, wrapTeX(f, precMul))
	}
	numStr := strings.Join(num, " \\cdot ")
	if len(den) == 0 {
		return sign + numStr
	}
	if numStr == "" {
		numStr = "1"
	}
	return sign + "\\frac{" + numStr + "}{" + strings.Join(den, " \\cdot ") + "}"
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return &Mul{factors: newFactors}
}

func (m *Mul) diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, fi.diff(varName))
		for j, fj := range m.factors {
			if j != i {
				parts = append(parts, fj)
			}
		}
		terms[i] = &Mul{factors: parts}
	}
	return &Add{terms: terms}
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Mul", m.factors)
}
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
