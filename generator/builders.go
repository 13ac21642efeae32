package generator

import (
	"github.com/njchilds90/trickone/symbolic"
)

// Var is the name of the free variable every builder works in.
const Var = "x"

const (
	recursiveDepth = 3
	rootWrapChance = 0.3
	minRootDegree  = 2
	maxRootDegree  = 6
)

// Builder produces a core expression for a level. Builders never simplify.
type Builder interface {
	Build(level Level) symbolic.Expr
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(level Level) symbolic.Expr

func (f BuilderFunc) Build(level Level) symbolic.Expr { return f(level) }

// RandomBuilder is the default Builder: one randomized construction per
// level.
type RandomBuilder struct {
	terms *Terms
}

func NewBuilder(terms *Terms) *RandomBuilder {
	return &RandomBuilder{terms: terms}
}

func (b *RandomBuilder) Build(level Level) symbolic.Expr {
	switch level {
	case Elementary:
		return b.BuildElementary()
	case Polynomial:
		return b.BuildPolynomial()
	default:
		return b.BuildRecursive()
	}
}

func x() symbolic.Expr { return symbolic.S(Var) }

// BuildElementary starts from a literal and applies two to four rounds of
// add, subtract, multiply or divide with a fresh literal. Division is a
// product with the literal's -1 power.
func (b *RandomBuilder) BuildElementary() symbolic.Expr {
	var expr symbolic.Expr = symbolic.N(b.terms.Literal())
	rounds := b.terms.IntRange(2, 4)
	for i := 0; i < rounds; i++ {
		n := symbolic.N(b.terms.Literal())
		switch b.terms.Pick(4) {
		case 0:
			expr = symbolic.AddOf(expr, n)
		case 1:
			expr = symbolic.Minus(expr, n)
		case 2:
			expr = symbolic.MulOf(expr, n)
		default:
			expr = symbolic.MulOf(expr, symbolic.Inverse(n))
		}
	}
	return expr
}

// BuildPolynomial returns a polynomial of degree 1 to 3, multiplied by a
// second polynomial of degree 1 to 2 half of the time and, on an
// independent coin, wrapped as the square root of its own square.
func (b *RandomBuilder) BuildPolynomial() symbolic.Expr {
	p := b.polynomial(1, 3)
	if b.terms.Chance(0.5) {
		p = symbolic.MulOf(p, b.polynomial(1, 2))
	}
	if b.terms.Chance(0.5) {
		p = symbolic.SqrtOf(symbolic.PowOf(p, symbolic.N(2)))
	}
	return p
}

func (b *RandomBuilder) polynomial(minDegree, maxDegree int) symbolic.Expr {
	degree := b.terms.IntRange(minDegree, maxDegree)
	terms := make([]symbolic.Expr, 0, degree+1)
	for i := 0; i <= degree; i++ {
		terms = append(terms, b.monomial(i))
	}
	return symbolic.AddOf(terms...)
}

func (b *RandomBuilder) monomial(power int) symbolic.Expr {
	c := symbolic.N(b.terms.Literal())
	switch power {
	case 0:
		return c
	case 1:
		return symbolic.MulOf(c, x())
	}
	return symbolic.MulOf(c, symbolic.PowOf(x(), symbolic.N(int64(power))))
}

// BuildRecursive builds a depth-3 binary tree of mixed leaves and wraps it
// in one of derivative, integral, sine or exponential.
func (b *RandomBuilder) BuildRecursive() symbolic.Expr {
	tree := b.tree(recursiveDepth)
	switch b.terms.Pick(4) {
	case 0:
		return symbolic.DerivativeOf(tree, Var)
	case 1:
		return symbolic.IntegralOf(tree, Var)
	case 2:
		return symbolic.SinOf(tree)
	default:
		return symbolic.ExpOf(tree)
	}
}

func (b *RandomBuilder) tree(depth int) symbolic.Expr {
	if depth == 0 {
		return b.leaf()
	}
	left := b.tree(depth - 1)
	right := b.tree(depth - 1)
	switch b.terms.Pick(3) {
	case 0:
		return symbolic.AddOf(left, right)
	case 1:
		return symbolic.Minus(left, right)
	default:
		return symbolic.MulOf(left, right)
	}
}

func (b *RandomBuilder) leaf() symbolic.Expr {
	var leaf symbolic.Expr
	switch b.terms.Pick(7) {
	case 0:
		leaf = b.BuildPolynomial()
	case 1:
		leaf = symbolic.SinOf(x())
	case 2:
		leaf = symbolic.CosOf(x())
	case 3:
		leaf = symbolic.ExpOf(x())
	case 4:
		leaf = symbolic.LnOf(symbolic.AbsOf(x()))
	case 5:
		leaf = x()
	default:
		leaf = symbolic.N(b.terms.Literal())
	}
	if b.terms.Chance(rootWrapChance) {
		leaf = rootOfPower(leaf, int64(b.terms.IntRange(minRootDegree, maxRootDegree)))
	}
	return leaf
}

// rootOfPower builds (|e|^n)^(1/n).
func rootOfPower(e symbolic.Expr, n int64) symbolic.Expr {
	return symbolic.RootOf(symbolic.PowOf(symbolic.AbsOf(e), symbolic.N(n)), n)
}
