package generator

import (
	"fmt"

	"github.com/njchilds90/trickone/symbolic"
)

// Strategy names one identity that forces a core expression to equal 1.
type Strategy int

const (
	// MulInverse is f * f^-1.
	MulInverse Strategy = iota
	// ShiftedInverse is (f+1) * (f+1)^-1.
	ShiftedInverse
	// ExpZero is exp(f - f).
	ExpZero
	// Pythagorean is sin(f)^2 + cos(f)^2.
	Pythagorean
	// RootPower is r * r^-1 with r = (|f|^n)^(1/n).
	RootPower
	// LimitWrapped is a limit in x of a point-independent inner identity.
	LimitWrapped
)

var strategyNames = map[Strategy]string{
	MulInverse:     "mul_inverse",
	ShiftedInverse: "shifted_inverse",
	ExpZero:        "exp_zero",
	Pythagorean:    "pythagorean",
	RootPower:      "root_power",
	LimitWrapped:   "limit_wrapped",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

var levelStrategies = map[Level][]Strategy{
	Elementary: {MulInverse},
	Polynomial: {MulInverse, ShiftedInverse},
	Recursive:  {MulInverse, ExpZero, Pythagorean, RootPower, LimitWrapped},
}

// StrategiesFor returns the strategies Force chooses from at level.
func StrategiesFor(level Level) []Strategy {
	return append([]Strategy(nil), levelStrategies[level]...)
}

// LimitPoints are the approach points a limit-wrapped identity uses.
var LimitPoints = []int64{0, 1, -1, 2}

// LimitCores are the inner identities a limit-wrapped identity can wrap.
var LimitCores = []Strategy{MulInverse, ExpZero, Pythagorean}

// Transformer wraps a core expression in an identity equal to 1.
type Transformer interface {
	Force(core symbolic.Expr, level Level) symbolic.Expr
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(core symbolic.Expr, level Level) symbolic.Expr

func (f TransformerFunc) Force(core symbolic.Expr, level Level) symbolic.Expr { return f(core, level) }

// RandomTransformer picks a strategy uniformly from the level's set.
type RandomTransformer struct {
	terms *Terms
}

func NewTransformer(terms *Terms) *RandomTransformer {
	return &RandomTransformer{terms: terms}
}

func (t *RandomTransformer) Force(core symbolic.Expr, level Level) symbolic.Expr {
	set := levelStrategies[level]
	if len(set) == 0 {
		set = levelStrategies[Elementary]
	}
	return t.ForceWith(core, set[t.terms.Pick(len(set))])
}

// ForceWith applies one named strategy. Random parameters (root degree,
// limit point and inner identity) are drawn from the transformer's Terms.
func (t *RandomTransformer) ForceWith(core symbolic.Expr, s Strategy) symbolic.Expr {
	switch s {
	case MulInverse:
		return MulInverseOf(core)
	case ShiftedInverse:
		return MulInverseOf(symbolic.AddOf(core, symbolic.N(1)))
	case ExpZero:
		return ExpZeroOf(core)
	case Pythagorean:
		return PythagoreanOf(core)
	case RootPower:
		return RootPowerOf(core, int64(t.terms.IntRange(minRootDegree, maxRootDegree)))
	case LimitWrapped:
		inner := LimitCores[t.terms.Pick(len(LimitCores))]
		point := LimitPoints[t.terms.Pick(len(LimitPoints))]
		return LimitOf(core, inner, point)
	}
	panic(fmt.Sprintf("generator: unknown strategy %d", int(s)))
}

// MulInverseOf builds f * f^-1.
func MulInverseOf(f symbolic.Expr) symbolic.Expr {
	return symbolic.MulOf(f, symbolic.Inverse(f))
}

// ExpZeroOf builds exp(f - f).
func ExpZeroOf(f symbolic.Expr) symbolic.Expr {
	return symbolic.ExpOf(symbolic.Minus(f, f))
}

// PythagoreanOf builds sin(f)^2 + cos(f)^2.
func PythagoreanOf(f symbolic.Expr) symbolic.Expr {
	two := symbolic.N(2)
	return symbolic.AddOf(
		symbolic.PowOf(symbolic.SinOf(f), two),
		symbolic.PowOf(symbolic.CosOf(f), two),
	)
}

// RootPowerOf builds r * r^-1 where r = (|f|^n)^(1/n).
func RootPowerOf(f symbolic.Expr, n int64) symbolic.Expr {
	return MulInverseOf(rootOfPower(f, n))
}

// LimitOf wraps the inner identity over f in a limit as x approaches
// point. inner must be one of LimitCores.
func LimitOf(f symbolic.Expr, inner Strategy, point int64) symbolic.Expr {
	var body symbolic.Expr
	switch inner {
	case MulInverse:
		body = MulInverseOf(f)
	case ExpZero:
		body = ExpZeroOf(f)
	case Pythagorean:
		body = PythagoreanOf(f)
	default:
		panic(fmt.Sprintf("generator: %s cannot be limit-wrapped", inner))
	}
	return symbolic.LimitOf(body, Var, symbolic.N(point))
}
