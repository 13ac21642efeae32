package symbolic

import (
	"strings"
)

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

// PowOf builds an unevaluated power.
func PowOf(base, exp Expr) Expr { return &Pow{base: base, exp: exp} }

// Inverse builds e^-1.
func Inverse(e Expr) Expr { return &Pow{base: e, exp: N(-1)} }

// SqrtOf builds e^(1/2).
func SqrtOf(e Expr) Expr { return &Pow{base: e, exp: F(1, 2)} }

// RootOf builds e^(1/n).
func RootOf(e Expr, n int64) Expr { return &Pow{base: e, exp: F(1, n)} }

func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

func (p *Pow) simplify() Expr {
	return foldPow(p.base.simplify(), p.exp.simplify())
}

// foldPow evaluates base^exp for simplified operands. Only real-valued
// identities are applied: (b^(2k))^r becomes |b|^(2kr), and powers of a
// power merge when the outer exponent is an integer or the inner base is
// known to be non-negative.
func foldPow(base, exp Expr) Expr {
	en, expIsNum := exp.(*Num)
	if expIsNum {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if expIsNum {
			return numPow(bn, en)
		}
		if bn.IsOne() {
			return N(1)
		}
		return &Pow{base: base, exp: exp}
	}
	if !expIsNum {
		return &Pow{base: base, exp: exp}
	}
	switch b := base.(type) {
	case *Pow:
		if merged, ok := mergePow(b, en); ok {
			return merged
		}
	case *Mul:
		if en.IsInteger() {
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = foldPow(f, en)
			}
			return foldMul(factors)
		}
	}
	return &Pow{base: base, exp: exp}
}

func mergePow(inner *Pow, outer *Num) (Expr, bool) {
	ie, ok := inner.exp.(*Num)
	if !ok {
		if outer.IsInteger() {
			return foldPow(inner.base, foldMul([]Expr{inner.exp, outer})), true
		}
		return nil, false
	}
	combined := numMul(ie, outer)
	switch {
	case outer.IsInteger():
		return foldPow(inner.base, combined), true
	case isEvenInteger(ie):
		return foldPow(foldFunc("abs", inner.base), combined), true
	case nonNegative(inner.base):
		return foldPow(inner.base, combined), true
	}
	return nil, false
}

func isEvenInteger(n *Num) bool {
	return n.IsInteger() && n.val.Num().Bit(0) == 0
}

// nonNegative reports whether e is known to be >= 0 for every real value
// of its variables.
func nonNegative(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return !v.IsNegative()
	case *Func:
		return v.name == "abs" || v.name == "exp"
	case *Pow:
		if en, ok := v.exp.(*Num); ok && isEvenInteger(en) {
			return true
		}
		return nonNegative(v.base)
	case *Mul:
		for _, f := range v.factors {
			if !nonNegative(f) {
				return false
			}
		}
		return true
	}
	return false
}

func (p *Pow) String() string {
	baseStr := wrap(p.base, precAtom)
	expStr := p.exp.String()
	if !isPlainExponent(p.exp) {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func isPlainExponent(e Expr) bool {
	switch v := e.(type) {
	case *Num:
		return v.IsInteger() && !v.IsNegative()
	case *Sym:
		return true
	}
	return false
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && !en.IsInteger() && en.val.Num().IsInt64() && en.val.Num().Int64() == 1 {
		inner := p.base.LaTeX()
		q := en.val.Denom().String()
		if q == "2" {
			return "\\sqrt{" + inner + "}"
		}
		return "\\sqrt[" + q + "]{" + inner + "}"
	}
	if en, ok := p.exp.(*Num); ok && en.IsNegOne() {
		return "\\frac{1}{" + p.base.LaTeX() + "}"
	}
	baseStr := wrapTeX(p.base, precAtom)
	if _, isFunc := p.base.(*Func); isFunc {
		baseStr = "\\left(" + p.base.LaTeX() + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return &Pow{base: p.base.Sub(varName, value), exp: p.exp.Sub(varName, value)}
}

func (p *Pow) diff(varName string) Expr {
	if !dependsOn(p.exp, varName) {
		return &Mul{factors: []Expr{
			p.exp,
			&Pow{base: p.base, exp: &Add{terms: []Expr{p.exp, N(-1)}}},
			p.base.diff(varName),
		}}
	}
	if !dependsOn(p.base, varName) {
		return &Mul{factors: []Expr{p, &Func{name: "log", arg: p.base}, p.exp.diff(varName)}}
	}
	logTerm := &Mul{factors: []Expr{p.exp.diff(varName), &Func{name: "log", arg: p.base}}}
	divTerm := &Mul{factors: []Expr{p.exp, p.base.diff(varName), Inverse(p.base)}}
	return &Mul{factors: []Expr{p, &Add{terms: []Expr{logTerm, divTerm}}}}
}

func (p *Pow) prec() int        { return precPow }
func (p *Pow) exprType() string { return "pow" }
func (p *Pow) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Pow", []Expr{p.base, p.exp})
}
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
