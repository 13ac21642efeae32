package symbolic

import (
	"fmt"
	"strings"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr { return funcOf("sin", arg) }
func CosOf(arg Expr) Expr { return funcOf("cos", arg) }
func ExpOf(arg Expr) Expr { return funcOf("exp", arg) }
func LnOf(arg Expr) Expr  { return funcOf("log", arg) }
func AbsOf(arg Expr) Expr { return funcOf("abs", arg) }

// knownFuncs lists the function names the kernel understands.
var knownFuncs = map[string]bool{"sin": true, "cos": true, "exp": true, "log": true, "abs": true}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func (f *Func) simplify() Expr {
	return foldFunc(f.name, f.arg.simplify())
}

// foldFunc applies the exact special values and inverse pairs. Transcendental
// values at non-trivial literals (sin(2), exp(3)) stay unevaluated.
func foldFunc(name string, arg Expr) Expr {
	switch name {
	case "sin":
		if isNumEqual(arg, 0) {
			return N(0)
		}
	case "cos":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "log" && nonNegative(inner.arg) {
			return inner.arg
		}
	case "log":
		if n, ok := arg.(*Num); ok {
			if !n.IsPositive() {
				fail("log", fmt.Sprintf("logarithm of non-positive literal %s", n))
			}
			if n.IsOne() {
				return N(0)
			}
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok {
			return numAbs(n)
		}
		if nonNegative(arg) {
			return arg
		}
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 2 {
			if coeff, ok := m.factors[0].(*Num); ok {
				rest := m.factors[1:]
				var inner Expr = &Mul{factors: rest}
				if len(rest) == 1 {
					inner = rest[0]
				}
				return foldMul([]Expr{numAbs(coeff), foldFunc("abs", inner)})
			}
		}
	default:
		fail("func", "unknown function "+name)
	}
	return &Func{name: name, arg: arg}
}

func (f *Func) String() string {
	return f.name + "(" + f.arg.String() + ")"
}

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "exp":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "log":
		return "\\ln\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return &Func{name: f.name, arg: f.arg.Sub(varName, value)}
}

func (f *Func) diff(varName string) Expr {
	du := f.arg.diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = Neg(SinOf(f.arg))
	case "exp":
		outer = ExpOf(f.arg)
	case "log":
		outer = Inverse(f.arg)
	case "abs":
		// d|u| = u/|u| du, undefined at u = 0 like the function's kink.
		outer = &Mul{factors: []Expr{f.arg, Inverse(AbsOf(f.arg))}}
	default:
		fail("diff", "cannot differentiate "+f.name)
	}
	return &Mul{factors: []Expr{outer, du}}
}

func (f *Func) prec() int        { return precAtom }
func (f *Func) exprType() string { return "func" }
func (f *Func) writeSrepr(sb *strings.Builder) {
	name := f.name
	if name == "abs" {
		name = "Abs"
	}
	writeCall(sb, name, []Expr{f.arg})
}
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
