package symbolic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/trickone/symbolic"
)

var x = symbolic.X

func simplified(t *testing.T, e symbolic.Expr) string {
	t.Helper()
	out, err := symbolic.Simplify(e)
	if err != nil {
		t.Fatalf("Simplify(%s): %v", e, err)
	}
	return out.String()
}

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symbolic.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symbolic.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := symbolic.F(-2, 5)
	if n.LaTeX() != `-\frac{2}{5}` {
		t.Errorf("want -\\frac{2}{5}, got %s", n.LaTeX())
	}
}

// ============================================================
// Construction never folds
// ============================================================

func TestConstructors_KeepStructure(t *testing.T) {
	sum := symbolic.AddOf(symbolic.N(2), symbolic.N(3))
	if sum.String() != "2 + 3" {
		t.Errorf("want 2 + 3, got %s", sum)
	}
	prod := symbolic.MulOf(symbolic.N(2), symbolic.N(3))
	if prod.String() != "2*3" {
		t.Errorf("want 2*3, got %s", prod)
	}
	pair := symbolic.MulOf(x, symbolic.Inverse(x))
	if pair.String() != "x*x^(-1)" {
		t.Errorf("want x*x^(-1), got %s", pair)
	}
	if symbolic.Size(pair) != 5 {
		t.Errorf("want 5 nodes, got %d", symbolic.Size(pair))
	}
}

func TestSimplify_Arithmetic(t *testing.T) {
	if got := simplified(t, symbolic.AddOf(symbolic.N(2), symbolic.N(3))); got != "5" {
		t.Errorf("want 5, got %s", got)
	}
	if got := simplified(t, symbolic.MulOf(symbolic.N(2), symbolic.N(3))); got != "6" {
		t.Errorf("want 6, got %s", got)
	}
	if got := simplified(t, symbolic.Div(symbolic.N(3), symbolic.N(6))); got != "1/2" {
		t.Errorf("want 1/2, got %s", got)
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_CollapseToZero(t *testing.T) {
	if got := simplified(t, symbolic.Minus(x, x)); got != "0" {
		t.Errorf("want 0, got %s", got)
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	if got := simplified(t, symbolic.AddOf(x, x)); got != "2*x" {
		t.Errorf("want 2*x, got %s", got)
	}
}

func TestAdd_CancelNestedStructure(t *testing.T) {
	e := symbolic.AddOf(
		symbolic.MulOf(symbolic.N(3), symbolic.PowOf(x, symbolic.N(2))),
		symbolic.SinOf(symbolic.AddOf(x, symbolic.N(1))),
		symbolic.Div(symbolic.ExpOf(x), symbolic.AddOf(x, symbolic.N(4))),
	)
	if got := simplified(t, symbolic.Minus(e, e)); got != "0" {
		t.Errorf("E - E: want 0, got %s", got)
	}
}

func TestAdd_Pythagorean(t *testing.T) {
	e := symbolic.AddOf(
		symbolic.PowOf(symbolic.SinOf(x), symbolic.N(2)),
		symbolic.PowOf(symbolic.CosOf(x), symbolic.N(2)),
	)
	if got := simplified(t, e); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
	scaled := symbolic.AddOf(
		symbolic.MulOf(symbolic.N(3), symbolic.PowOf(symbolic.SinOf(x), symbolic.N(2))),
		symbolic.MulOf(symbolic.N(3), symbolic.PowOf(symbolic.CosOf(x), symbolic.N(2))),
	)
	if got := simplified(t, scaled); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}

func TestAdd_PythagoreanNeedsSameArgument(t *testing.T) {
	e := symbolic.AddOf(
		symbolic.PowOf(symbolic.SinOf(x), symbolic.N(2)),
		symbolic.PowOf(symbolic.CosOf(symbolic.MulOf(symbolic.N(2), x)), symbolic.N(2)),
	)
	if symbolic.IsZero(symbolic.Minus(e, symbolic.N(1))) {
		t.Errorf("sin(x)^2 + cos(2x)^2 must not reduce to 1")
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestMul_InversePair(t *testing.T) {
	if got := simplified(t, symbolic.MulOf(x, symbolic.Inverse(x))); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

func TestMul_InverseOfZero(t *testing.T) {
	_, err := symbolic.Simplify(symbolic.MulOf(symbolic.N(0), symbolic.Inverse(symbolic.N(0))))
	if !errors.Is(err, symbolic.ErrAlgebra) {
		t.Fatalf("want ErrAlgebra, got %v", err)
	}
	var ae *symbolic.AlgebraError
	if !errors.As(err, &ae) || ae.Op != "pow" {
		t.Errorf("want pow AlgebraError, got %#v", err)
	}
}

func TestMul_InverseOfCompositeZero(t *testing.T) {
	zero := symbolic.Minus(symbolic.N(3), symbolic.N(3))
	_, err := symbolic.Simplify(symbolic.MulOf(zero, symbolic.Inverse(zero)))
	if !errors.Is(err, symbolic.ErrAlgebra) {
		t.Errorf("want ErrAlgebra, got %v", err)
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_Numeric(t *testing.T) {
	if got := simplified(t, symbolic.PowOf(symbolic.N(2), symbolic.N(10))); got != "1024" {
		t.Errorf("want 1024, got %s", got)
	}
	if got := simplified(t, symbolic.SqrtOf(symbolic.N(4))); got != "2" {
		t.Errorf("want 2, got %s", got)
	}
	if got := simplified(t, symbolic.PowOf(symbolic.F(8, 27), symbolic.F(-1, 3))); got != "3/2" {
		t.Errorf("want 3/2, got %s", got)
	}
}

func TestPow_NestedLiteralPowersStayBounded(t *testing.T) {
	var e symbolic.Expr = symbolic.N(2)
	for i := 0; i < 6; i++ {
		e = symbolic.PowOf(e, symbolic.N(64))
	}
	out, err := symbolic.Simplify(e)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if _, ok := out.(*symbolic.Pow); !ok {
		t.Errorf("want an unevaluated power, got %T", out)
	}

	// (2^64)^64 is still folded exactly.
	two64 := symbolic.PowOf(symbolic.PowOf(symbolic.N(2), symbolic.N(64)), symbolic.N(64))
	folded, err := symbolic.Simplify(two64)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if _, isNum := folded.(*symbolic.Num); !isNum {
		t.Errorf("want a literal for 2^4096, got %T", folded)
	}
}

func TestPow_IrrationalStays(t *testing.T) {
	if got := simplified(t, symbolic.SqrtOf(symbolic.N(2))); got != "2^(1/2)" {
		t.Errorf("want 2^(1/2), got %s", got)
	}
}

func TestPow_EvenRootOfNegative(t *testing.T) {
	_, err := symbolic.Simplify(symbolic.SqrtOf(symbolic.N(-4)))
	if !errors.Is(err, symbolic.ErrAlgebra) {
		t.Errorf("want ErrAlgebra, got %v", err)
	}
}

func TestPow_RootOfSquare(t *testing.T) {
	e := symbolic.PowOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.F(1, 2))
	if got := simplified(t, e); got != "abs(x)" {
		t.Errorf("want abs(x), got %s", got)
	}
}

func TestPow_RootPowerPair(t *testing.T) {
	for n := int64(2); n <= 6; n++ {
		root := symbolic.RootOf(symbolic.PowOf(symbolic.AbsOf(symbolic.AddOf(x, symbolic.N(1))), symbolic.N(n)), n)
		if got := simplified(t, symbolic.MulOf(root, symbolic.Inverse(root))); got != "1" {
			t.Errorf("n=%d: want 1, got %s", n, got)
		}
	}
}

func TestPow_LaTeX(t *testing.T) {
	if got := symbolic.SqrtOf(x).LaTeX(); got != `\sqrt{x}` {
		t.Errorf("want \\sqrt{x}, got %s", got)
	}
	if got := symbolic.RootOf(x, 3).LaTeX(); got != `\sqrt[3]{x}` {
		t.Errorf("want \\sqrt[3]{x}, got %s", got)
	}
	if got := symbolic.MulOf(x, symbolic.Inverse(x)).LaTeX(); got != `\frac{x}{x}` {
		t.Errorf("want \\frac{x}{x}, got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_SpecialValues(t *testing.T) {
	cases := map[string]symbolic.Expr{
		"0": symbolic.SinOf(symbolic.N(0)),
		"1": symbolic.CosOf(symbolic.N(0)),
	}
	for want, e := range cases {
		if got := simplified(t, e); got != want {
			t.Errorf("%s: want %s, got %s", e, want, got)
		}
	}
	if got := simplified(t, symbolic.ExpOf(symbolic.Minus(x, x))); got != "1" {
		t.Errorf("exp(x - x): want 1, got %s", got)
	}
	if got := simplified(t, symbolic.LnOf(symbolic.N(1))); got != "0" {
		t.Errorf("log(1): want 0, got %s", got)
	}
	if got := simplified(t, symbolic.ExpOf(symbolic.LnOf(symbolic.AbsOf(x)))); got != "abs(x)" {
		t.Errorf("exp(log|x|): want abs(x), got %s", got)
	}
}

func TestFunc_LogOfNonPositive(t *testing.T) {
	_, err := symbolic.Simplify(symbolic.LnOf(symbolic.N(0)))
	if !errors.Is(err, symbolic.ErrAlgebra) {
		t.Errorf("want ErrAlgebra, got %v", err)
	}
}

func TestFunc_LaTeX(t *testing.T) {
	if got := symbolic.SinOf(x).LaTeX(); got != `\sin\left(x\right)` {
		t.Errorf("got %s", got)
	}
	if got := symbolic.LnOf(symbolic.AbsOf(x)).LaTeX(); got != `\ln\left(\left|x\right|\right)` {
		t.Errorf("got %s", got)
	}
}

// ============================================================
// Calculus tests
// ============================================================

func TestDiff_PowerRule(t *testing.T) {
	d, err := symbolic.Diff(symbolic.PowOf(x, symbolic.N(3)), "x")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "3*x^2" {
		t.Errorf("want 3*x^2, got %s", d)
	}
}

func TestDiff_Sin(t *testing.T) {
	d, err := symbolic.Diff(symbolic.SinOf(x), "x")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "cos(x)" {
		t.Errorf("want cos(x), got %s", d)
	}
}

func TestDerivative_Node(t *testing.T) {
	d := symbolic.DerivativeOf(symbolic.PowOf(x, symbolic.N(2)), "x")
	if d.String() != "Derivative(x^2, x)" {
		t.Errorf("got %s", d)
	}
	if got := simplified(t, d); got != "2*x" {
		t.Errorf("want 2*x, got %s", got)
	}
}

func TestIntegral_Power(t *testing.T) {
	i := symbolic.IntegralOf(symbolic.PowOf(x, symbolic.N(2)), "x")
	if got := simplified(t, i); got != "(1/3)*x^3" {
		t.Errorf("want (1/3)*x^3, got %s", got)
	}
}

func TestIntegral_InverseX(t *testing.T) {
	i := symbolic.IntegralOf(symbolic.Inverse(x), "x")
	if got := simplified(t, i); got != "log(abs(x))" {
		t.Errorf("want log(abs(x)), got %s", got)
	}
}

func TestIntegrate_LinearArgument(t *testing.T) {
	arg := symbolic.MulOf(symbolic.N(2), x)
	res, ok, err := symbolic.Integrate(symbolic.SinOf(arg), "x")
	if err != nil || !ok {
		t.Fatalf("integrate sin(2x): ok=%v err=%v", ok, err)
	}
	d, err := symbolic.Diff(res, "x")
	if err != nil {
		t.Fatal(err)
	}
	if !symbolic.IsZero(symbolic.Minus(d, symbolic.SinOf(arg))) {
		t.Errorf("d/dx %s = %s, want sin(2*x)", res, d)
	}
}

func TestIntegral_Unevaluated(t *testing.T) {
	i := symbolic.IntegralOf(symbolic.ExpOf(symbolic.PowOf(x, symbolic.N(2))), "x")
	if got := simplified(t, i); got != "Integral(exp(x^2), x)" {
		t.Errorf("got %s", got)
	}
	d, err := symbolic.Diff(i, "x")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "exp(x^2)" {
		t.Errorf("d/dx of an integral: want exp(x^2), got %s", d)
	}
	if got := simplified(t, symbolic.Minus(i, i)); got != "0" {
		t.Errorf("I - I: want 0, got %s", got)
	}
}

func TestLimit_Substitution(t *testing.T) {
	l := symbolic.LimitOf(symbolic.AddOf(x, symbolic.N(1)), "x", symbolic.N(2))
	if l.String() != "Limit(x + 1, x, 2)" {
		t.Errorf("got %s", l)
	}
	if got := simplified(t, l); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}

func TestLimit_OfConstantCore(t *testing.T) {
	for _, p := range []int64{0, 1, -1, 2} {
		l := symbolic.LimitOf(symbolic.MulOf(x, symbolic.Inverse(x)), "x", symbolic.N(p))
		if got := simplified(t, l); got != "1" {
			t.Errorf("point %d: want 1, got %s", p, got)
		}
	}
}

func TestLimit_Undecided(t *testing.T) {
	res, ok, err := symbolic.EvalLimit(symbolic.Inverse(x), "x", symbolic.N(0))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("limit of 1/x at 0 must stay unevaluated, got %s", res)
	}
	integral := symbolic.IntegralOf(symbolic.ExpOf(symbolic.PowOf(x, symbolic.N(2))), "x")
	_, ok, err = symbolic.EvalLimit(integral, "x", symbolic.N(0))
	if err != nil || ok {
		t.Errorf("limit of an unevaluated integral: ok=%v err=%v", ok, err)
	}
}

func TestLimit_BindsVariable(t *testing.T) {
	l := symbolic.LimitOf(symbolic.MulOf(x, symbolic.S("a")), "x", symbolic.S("b"))
	got := strings.Join(symbolic.SortedFreeSymbols(l), ",")
	if got != "a,b" {
		t.Errorf("want a,b, got %s", got)
	}
}

// ============================================================
// Structural keys
// ============================================================

func TestSrepr_Format(t *testing.T) {
	e := symbolic.MulOf(symbolic.N(2), symbolic.Inverse(x))
	want := "Mul(Integer(2), Pow(Symbol('x'), Integer(-1)))"
	if got := symbolic.Srepr(e); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
	if got := symbolic.Srepr(symbolic.F(1, 2)); got != "Rational(1, 2)" {
		t.Errorf("got %s", got)
	}
	if got := symbolic.Srepr(symbolic.AbsOf(x)); got != "Abs(Symbol('x'))" {
		t.Errorf("got %s", got)
	}
	if got := symbolic.Srepr(symbolic.LimitOf(symbolic.N(1), "x", symbolic.N(0))); got != "Limit(Integer(1), Symbol('x'), Integer(0))" {
		t.Errorf("got %s", got)
	}
}

func TestSrepr_OrderSensitive(t *testing.T) {
	a := symbolic.AddOf(x, symbolic.N(1))
	b := symbolic.AddOf(symbolic.N(1), x)
	if symbolic.Srepr(a) == symbolic.Srepr(b) {
		t.Errorf("reordered operands must have distinct keys")
	}
	if simplified(t, a) != simplified(t, b) {
		t.Errorf("reordered operands must still simplify alike")
	}
}

func TestSrepr_ValueEqualShapesDiffer(t *testing.T) {
	a := symbolic.MulOf(x, symbolic.Inverse(x))
	b := symbolic.ExpOf(symbolic.Minus(x, x))
	if symbolic.Equal(a, b) {
		t.Errorf("%s and %s must be distinct", a, b)
	}
	if !symbolic.Equal(a, symbolic.MulOf(x, symbolic.Inverse(x))) {
		t.Errorf("identical trees must be equal")
	}
}

// ============================================================
// Substitution
// ============================================================

func TestSub_BoundVariables(t *testing.T) {
	i := symbolic.IntegralOf(x, "x")
	if !symbolic.Equal(symbolic.Sub(i, "x", symbolic.N(2)), i) {
		t.Errorf("integration variable must not be substituted")
	}
	e := symbolic.AddOf(x, symbolic.N(1))
	if got := symbolic.Sub(e, "x", symbolic.N(2)).String(); got != "2 + 1" {
		t.Errorf("want 2 + 1, got %s", got)
	}
}

// ============================================================
// JSON
// ============================================================

func TestJSON_RoundTrip(t *testing.T) {
	inner := symbolic.AddOf(
		symbolic.PowOf(symbolic.SinOf(x), symbolic.N(2)),
		symbolic.PowOf(symbolic.CosOf(symbolic.MulOf(symbolic.F(1, 2), x)), symbolic.N(2)),
	)
	exprs := []symbolic.Expr{
		symbolic.LimitOf(inner, "x", symbolic.N(-1)),
		symbolic.DerivativeOf(symbolic.LnOf(symbolic.AbsOf(x)), "x"),
		symbolic.IntegralOf(symbolic.RootOf(x, 3), "x"),
	}
	for _, e := range exprs {
		s, err := symbolic.ToJSON(e)
		if err != nil {
			t.Fatal(err)
		}
		back, err := symbolic.ParseJSON(s)
		if err != nil {
			t.Fatalf("ParseJSON(%s): %v", s, err)
		}
		if symbolic.Srepr(back) != symbolic.Srepr(e) {
			t.Errorf("round trip changed %s into %s", symbolic.Srepr(e), symbolic.Srepr(back))
		}
	}
}

func TestJSON_UnknownFunction(t *testing.T) {
	_, err := symbolic.ParseJSON(`{"type":"func","name":"tan","arg":{"type":"sym","name":"x"}}`)
	if err == nil {
		t.Errorf("want error for unknown function")
	}
}

// ============================================================
// Engine
// ============================================================

func TestEngine(t *testing.T) {
	eng := symbolic.NewEngine()
	e := symbolic.MulOf(x, symbolic.Inverse(x))
	out, err := eng.Simplify(e)
	if err != nil {
		t.Fatal(err)
	}
	if !eng.IsZero(symbolic.Minus(out, symbolic.N(1))) {
		t.Errorf("want 1, got %s", out)
	}
	if eng.Key(e) != symbolic.Srepr(e) {
		t.Errorf("Key must be the structural key")
	}
	if eng.Display(e) != "x*x^(-1)" || eng.Typeset(e) != `\frac{x}{x}` {
		t.Errorf("got %q / %q", eng.Display(e), eng.Typeset(e))
	}
}
