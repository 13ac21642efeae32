package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

// AddOf builds an unevaluated sum. The terms are kept exactly as given.
func AddOf(terms ...Expr) Expr { return &Add{terms: append([]Expr(nil), terms...)} }

// Neg flips the sign of e without evaluating: literals are negated, any
// other operand becomes -1*e.
func Neg(e Expr) Expr {
	if n, ok := e.(*Num); ok {
		return numNeg(n)
	}
	return &Mul{factors: []Expr{N(-1), e}}
}

// Minus builds the unevaluated difference a - b.
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }

func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

func (a *Add) simplify() Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.simplify()
	}
	return foldAdd(terms)
}

// foldAdd combines simplified terms: nested sums are flattened, literals
// accumulated, like terms merged by the structural key of their
// non-numeric part and sin²+cos² pairs collapsed.
func foldAdd(terms []Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}
	type group struct {
		rest  Expr
		coeff *Num
	}
	constant := N(0)
	groups := map[string]*group{}
	order := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)
			continue
		}
		coeff, rest := extractCoefficient(t)
		key := Srepr(rest)
		g, seen := groups[key]
		if !seen {
			g = &group{rest: rest, coeff: N(0)}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff = numAdd(g.coeff, coeff)
	}
	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		switch {
		case g.coeff.IsZero():
			continue
		case g.coeff.IsOne():
			result = append(result, g.rest)
		default:
			result = append(result, scale(g.coeff, g.rest))
		}
	}
	result, constant = collapsePythagorean(result, constant)
	if !constant.IsZero() {
		result = append(result, constant)
	}
	switch len(result) {
	case 0:
		return N(0)
	case 1:
		return result[0]
	}
	return &Add{terms: result}
}

// scale rebuilds coeff*rest in the canonical layout foldMul produces.
func scale(coeff *Num, rest Expr) Expr {
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{coeff}, m.factors...)}
	}
	return &Mul{factors: []Expr{coeff, rest}}
}

func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: append([]Expr(nil), rest...)}
		}
	}
	return N(1), e
}

// collapsePythagorean replaces each pair c*sin(u)^2 + c*cos(u)^2 with c.
func collapsePythagorean(terms []Expr, constant *Num) ([]Expr, *Num) {
	type trigTerm struct {
		funcName string
		argKey   string
		coeff    *Num
		idx      int
	}
	for {
		var trig []trigTerm
		for idx, t := range terms {
			coeff, inner := extractCoefficient(t)
			p, ok := inner.(*Pow)
			if !ok || !isNumEqual(p.exp, 2) {
				continue
			}
			if fn, ok := p.base.(*Func); ok && (fn.name == "sin" || fn.name == "cos") {
				trig = append(trig, trigTerm{fn.name, Srepr(fn.arg), coeff, idx})
			}
		}
		i, j := -1, -1
	search:
		for a := 0; a < len(trig); a++ {
			for b := a + 1; b < len(trig); b++ {
				ta, tb := trig[a], trig[b]
				if ta.argKey == tb.argKey && ta.funcName != tb.funcName && numCmp(ta.coeff, tb.coeff) == 0 {
					i, j = a, b
					break search
				}
			}
		}
		if i < 0 {
			return terms, constant
		}
		constant = numAdd(constant, trig[i].coeff)
		kept := make([]Expr, 0, len(terms)-2)
		for idx, t := range terms {
			if idx != trig[i].idx && idx != trig[j].idx {
				kept = append(kept, t)
			}
		}
		terms = kept
	}
}

// splitSign reports whether e renders with a leading minus and returns
// its magnitude.
func splitSign(e Expr) (bool, Expr) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if len(v.factors) >= 2 {
			if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
				rest := v.factors[1:]
				if c.IsNegOne() {
					if len(rest) == 1 {
						return true, rest[0]
					}
					return true, &Mul{factors: rest}
				}
				return true, &Mul{factors: append([]Expr{numNeg(c)}, rest...)}
			}
		}
	}
	return false, e
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			sb.WriteString(t.String())
			continue
		}
		if neg, mag := splitSign(t); neg {
			sb.WriteString(" - ")
			sb.WriteString(wrap(mag, precMul))
			continue
		}
		sb.WriteString(" + ")
		sb.WriteString(wrap(t, precAdd))
	}
	return sb.String()
}

func (a *Add) LaTeX() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			sb.WriteString(t.LaTeX())
			continue
		}
		if neg, mag := splitSign(t); neg {
			sb.WriteString(" - ")
			sb.WriteString(wrapTeX(mag, precMul))
			continue
		}
		sb.WriteString(" + ")
		sb.WriteString(wrapTeX(t, precAdd))
	}
	return sb.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return &Add{terms: newTerms}
}

func (a *Add) diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.diff(varName)
	}
	return &Add{terms: dTerms}
}

func (a *Add) prec() int        { return precAdd }
func (a *Add) exprType() string { return "add" }
func (a *Add) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Add", a.terms)
}
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}

// wrap parenthesizes e when it binds looser than min.
func wrap(e Expr, min int) string {
	if e.prec() < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func wrapTeX(e Expr, min int) string {
	if e.prec() < min {
		return "\\left(" + e.LaTeX() + "\\right)"
	}
	return e.LaTeX()
}
