// Package symbolic provides the exact symbolic kernel behind the puzzle
// generator.
//
// Design goals:
//   - Constructors never fold: a tree keeps the shape it was built with
//     until Simplify is called explicitly
//   - Exact rational arithmetic (math/big.Rat), no floating point anywhere
//   - Deterministic simplification and stable output
//   - Structural keys (Srepr) that distinguish value-equal trees of
//     different shape
//
// The kernel is deliberately narrow. It decides the identities the
// generator relies on (inverse pairs, additive cancellation, the
// Pythagorean identity, roots of powers, limits of constants) and reports
// an *AlgebraError for anything it cannot decide.
package symbolic

import (
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an immutable expression tree. The set of node types is
// closed: Num, Sym, Add, Mul, Pow, Func, Derivative, Integral and Limit.
type Expr interface {
	String() string
	LaTeX() string
	// Sub replaces every free occurrence of varName with value. The result
	// is not simplified.
	Sub(varName string, value Expr) Expr

	simplify() Expr
	diff(varName string) Expr
	writeSrepr(sb *strings.Builder)
	prec() int
	exprType() string
	toJSON() map[string]interface{}
}

// Printing precedence, loosest first.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

// ============================================================
// Sym: the free variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

// X is the free variable every builder works in.
var X = S("x")

func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }
func (s *Sym) simplify() Expr { return s }
func (s *Sym) prec() int      { return precAtom }
func (s *Sym) exprType() string {
	return "sym"
}
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}
func (s *Sym) writeSrepr(sb *strings.Builder) {
	sb.WriteString("Symbol('")
	sb.WriteString(s.name)
	sb.WriteString("')")
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}
func (s *Sym) diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Tree helpers
// ============================================================

// Children returns the direct operands of e in construction order.
func Children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return append([]Expr(nil), v.terms...)
	case *Mul:
		return append([]Expr(nil), v.factors...)
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	case *Derivative:
		return []Expr{v.expr}
	case *Integral:
		return []Expr{v.expr}
	case *Limit:
		return []Expr{v.expr, v.point}
	}
	return nil
}

// Walk visits e and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func Walk(e Expr, fn func(Expr) bool) {
	if !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, fn)
	}
}

// Size counts the nodes of e.
func Size(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool { n++; return true })
	return n
}

// FreeSymbols returns the names of the variables e depends on. Variables
// bound by a Limit are not free.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

// SortedFreeSymbols is FreeSymbols in lexical order.
func SortedFreeSymbols(e Expr) []string {
	syms := FreeSymbols(e)
	names := make([]string, 0, len(syms))
	for n := range syms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Limit:
		inner := map[string]struct{}{}
		collectSymbols(v.expr, inner)
		delete(inner, v.varName)
		for k := range inner {
			out[k] = struct{}{}
		}
		collectSymbols(v.point, out)
	default:
		for _, c := range Children(e) {
			collectSymbols(c, out)
		}
	}
}

func dependsOn(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}
