package symbolic

// ============================================================
// Top-level API
// ============================================================

// Simplify evaluates e exactly. It returns an *AlgebraError when e contains
// an operation the kernel cannot evaluate, such as a division by an exact
// zero or the logarithm of a non-positive literal.
func Simplify(e Expr) (out Expr, err error) {
	defer guard(&err)
	return e.simplify(), nil
}

// IsZero reports whether e simplifies to the literal 0. A tree that cannot
// be simplified is not zero.
func IsZero(e Expr) bool {
	s, err := Simplify(e)
	if err != nil {
		return false
	}
	return isNumEqual(s, 0)
}

// Equal reports whether a and b are the same tree.
func Equal(a, b Expr) bool { return Srepr(a) == Srepr(b) }

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value)
}

// Diff differentiates e with respect to varName and simplifies the result.
func Diff(e Expr, varName string) (out Expr, err error) {
	defer guard(&err)
	return e.simplify().diff(varName).simplify(), nil
}

// Integrate returns an antiderivative of e, omitting the constant. ok is
// false when no integration rule applies.
func Integrate(e Expr, varName string) (out Expr, ok bool, err error) {
	defer guard(&err)
	res, ok := integrate(e.simplify(), varName)
	if !ok {
		return nil, false, nil
	}
	return res.simplify(), true, nil
}

// EvalLimit evaluates the limit of e as varName approaches point by direct
// substitution. ok is false when the limit stays unevaluated.
func EvalLimit(e Expr, varName string, point Expr) (out Expr, ok bool, err error) {
	defer guard(&err)
	res := (&Limit{expr: e, varName: varName, point: point}).simplify()
	if _, unevaluated := res.(*Limit); unevaluated {
		return res, false, nil
	}
	return res, true, nil
}
