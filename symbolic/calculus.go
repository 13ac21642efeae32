package symbolic

import (
	"strings"
)

// ============================================================
// Derivative: d/dvar expr
// ============================================================

type Derivative struct {
	expr    Expr
	varName string
}

// DerivativeOf builds an unevaluated derivative of e with respect to
// varName.
func DerivativeOf(e Expr, varName string) Expr { return &Derivative{expr: e, varName: varName} }

func (d *Derivative) Expr() Expr      { return d.expr }
func (d *Derivative) VarName() string { return d.varName }

func (d *Derivative) simplify() Expr {
	return d.expr.simplify().diff(d.varName).simplify()
}

func (d *Derivative) diff(varName string) Expr { return d.simplify().diff(varName) }

// Sub leaves the differentiation variable alone; other variables are
// substituted inside the operand.
func (d *Derivative) Sub(varName string, value Expr) Expr {
	if varName == d.varName {
		return d
	}
	return &Derivative{expr: d.expr.Sub(varName, value), varName: d.varName}
}

func (d *Derivative) String() string {
	return "Derivative(" + d.expr.String() + ", " + d.varName + ")"
}

func (d *Derivative) LaTeX() string {
	return "\\frac{d}{d" + d.varName + "}\\left(" + d.expr.LaTeX() + "\\right)"
}

func (d *Derivative) prec() int        { return precAtom }
func (d *Derivative) exprType() string { return "derivative" }
func (d *Derivative) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Derivative", []Expr{d.expr, S(d.varName)})
}
func (d *Derivative) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "derivative", "expr": d.expr.toJSON(), "var": d.varName}
}

// ============================================================
// Integral: indefinite ∫ expr dvar
// ============================================================

type Integral struct {
	expr    Expr
	varName string
}

// IntegralOf builds an unevaluated indefinite integral of e with respect to
// varName.
func IntegralOf(e Expr, varName string) Expr { return &Integral{expr: e, varName: varName} }

func (i *Integral) Expr() Expr      { return i.expr }
func (i *Integral) VarName() string { return i.varName }

// simplify integrates by rule where a rule applies and otherwise keeps the
// integral with a simplified integrand, so equal integrands still share a
// structural key.
func (i *Integral) simplify() Expr {
	inner := i.expr.simplify()
	if res, ok := integrate(inner, i.varName); ok {
		return res.simplify()
	}
	return &Integral{expr: inner, varName: i.varName}
}

func (i *Integral) diff(varName string) Expr {
	if varName == i.varName {
		return i.expr
	}
	if !dependsOn(i.expr, varName) {
		return N(0)
	}
	fail("diff", "cannot differentiate an integral over "+i.varName+" with respect to "+varName)
	return nil
}

// Sub leaves the integration variable alone.
func (i *Integral) Sub(varName string, value Expr) Expr {
	if varName == i.varName {
		return i
	}
	return &Integral{expr: i.expr.Sub(varName, value), varName: i.varName}
}

func (i *Integral) String() string {
	return "Integral(" + i.expr.String() + ", " + i.varName + ")"
}

func (i *Integral) LaTeX() string {
	return "\\int " + wrapTeX(i.expr, precMul) + "\\, d" + i.varName
}

func (i *Integral) prec() int        { return precAtom }
func (i *Integral) exprType() string { return "integral" }
func (i *Integral) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Integral", []Expr{i.expr, S(i.varName)})
}
func (i *Integral) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "integral", "expr": i.expr.toJSON(), "var": i.varName}
}

// integrate is the rule-based antiderivative for simplified input. It
// reports false when no rule matches.
func integrate(e Expr, varName string) (Expr, bool) {
	x := S(varName)
	if !dependsOn(e, varName) {
		return &Mul{factors: []Expr{e, x}}, true
	}
	switch v := e.(type) {
	case *Sym:
		return &Mul{factors: []Expr{F(1, 2), &Pow{base: x, exp: N(2)}}}, true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for idx, t := range v.terms {
			it, ok := integrate(t, varName)
			if !ok {
				return nil, false
			}
			terms[idx] = it
		}
		return &Add{terms: terms}, true
	case *Mul:
		var consts, deps []Expr
		for _, f := range v.factors {
			if dependsOn(f, varName) {
				deps = append(deps, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(deps) != 1 {
			return nil, false
		}
		inner, ok := integrate(deps[0], varName)
		if !ok {
			return nil, false
		}
		return &Mul{factors: append(consts, inner)}, true
	case *Pow:
		sym, ok := v.base.(*Sym)
		n, ok2 := v.exp.(*Num)
		if !ok || !ok2 || sym.name != varName {
			return nil, false
		}
		if n.IsNegOne() {
			return LnOf(AbsOf(x)), true
		}
		next := numAdd(n, N(1))
		return &Mul{factors: []Expr{numRecip(next), &Pow{base: x, exp: next}}}, true
	case *Func:
		if v.name == "log" {
			if a, ok := v.arg.(*Func); ok && a.name == "abs" && isSym(a.arg, varName) {
				return &Add{terms: []Expr{&Mul{factors: []Expr{x, v}}, Neg(x)}}, true
			}
			return nil, false
		}
		slope, ok := linearSlope(v.arg, varName)
		if !ok {
			return nil, false
		}
		k := numRecip(slope)
		switch v.name {
		case "sin":
			return &Mul{factors: []Expr{numNeg(k), CosOf(v.arg)}}, true
		case "cos":
			return &Mul{factors: []Expr{k, SinOf(v.arg)}}, true
		case "exp":
			return &Mul{factors: []Expr{k, ExpOf(v.arg)}}, true
		}
	}
	return nil, false
}

// linearSlope returns a when arg = a*varName + b with a non-zero literal a.
func linearSlope(arg Expr, varName string) (*Num, bool) {
	d := arg.diff(varName).simplify()
	n, ok := d.(*Num)
	if !ok || n.IsZero() {
		return nil, false
	}
	return n, true
}

func isSym(e Expr, name string) bool {
	s, ok := e.(*Sym)
	return ok && s.name == name
}

// ============================================================
// Limit: lim_{var -> point} expr
// ============================================================

type Limit struct {
	expr    Expr
	varName string
	point   Expr
}

// LimitOf builds an unevaluated limit of e as varName approaches point.
func LimitOf(e Expr, varName string, point Expr) Expr {
	return &Limit{expr: e, varName: varName, point: point}
}

func (l *Limit) Expr() Expr      { return l.expr }
func (l *Limit) VarName() string { return l.varName }
func (l *Limit) Point() Expr     { return l.point }

// simplify returns the operand itself once it no longer depends on the
// variable, and otherwise tries direct substitution. A limit that cannot be
// decided that way stays unevaluated.
func (l *Limit) simplify() Expr {
	inner := l.expr.simplify()
	point := l.point.simplify()
	if !dependsOn(inner, l.varName) {
		return inner
	}
	if containsIntegralOver(inner, l.varName) {
		return &Limit{expr: inner, varName: l.varName, point: point}
	}
	if val, err := Simplify(inner.Sub(l.varName, point)); err == nil && !dependsOn(val, l.varName) {
		return val
	}
	return &Limit{expr: inner, varName: l.varName, point: point}
}

func containsIntegralOver(e Expr, varName string) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if i, ok := n.(*Integral); ok && i.varName == varName {
			found = true
		}
		return !found
	})
	return found
}

func (l *Limit) diff(varName string) Expr {
	if !dependsOn(l, varName) {
		return N(0)
	}
	fail("diff", "cannot differentiate an unevaluated limit")
	return nil
}

// Sub substitutes into the approach point only when varName is the limit
// variable.
func (l *Limit) Sub(varName string, value Expr) Expr {
	if varName == l.varName {
		return &Limit{expr: l.expr, varName: l.varName, point: l.point.Sub(varName, value)}
	}
	return &Limit{expr: l.expr.Sub(varName, value), varName: l.varName, point: l.point.Sub(varName, value)}
}

func (l *Limit) String() string {
	return "Limit(" + l.expr.String() + ", " + l.varName + ", " + l.point.String() + ")"
}

func (l *Limit) LaTeX() string {
	return "\\lim_{" + l.varName + " \\to " + l.point.LaTeX() + "} " + wrapTeX(l.expr, precMul)
}

func (l *Limit) prec() int        { return precAtom }
func (l *Limit) exprType() string { return "limit" }
func (l *Limit) writeSrepr(sb *strings.Builder) {
	writeCall(sb, "Limit", []Expr{l.expr, S(l.varName), l.point})
}
func (l *Limit) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  "limit",
		"expr":  l.expr.toJSON(),
		"var":   l.varName,
		"point": l.point.toJSON(),
	}
}
