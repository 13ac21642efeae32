package symbolic

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) diff(string) Expr      { return N(0) }
func (n *Num) exprType() string      { return "num" }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) prec() int {
	if n.val.Sign() < 0 || !n.val.IsInt() {
		return precAdd
	}
	return precAtom
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) writeSrepr(sb *strings.Builder) {
	if n.val.IsInt() {
		sb.WriteString("Integer(")
		sb.WriteString(n.val.Num().String())
		sb.WriteString(")")
		return
	}
	sb.WriteString("Rational(")
	sb.WriteString(n.val.Num().String())
	sb.WriteString(", ")
	sb.WriteString(n.val.Denom().String())
	sb.WriteString(")")
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		fail("pow", "division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}
func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(big.NewRat(v, 1)) == 0
}

// maxExactExponent bounds the integer powers folded to a literal. Larger
// powers stay as Pow nodes.
const maxExactExponent = 64

// maxExactBits bounds the size of a folded integer power, so nested powers
// of literals cannot grow without limit.
const maxExactBits = 1 << 16

// numPow raises b to the rational power e exactly, or leaves the power
// unevaluated when the result is irrational.
func numPow(b, e *Num) Expr {
	if e.IsInteger() {
		k := e.val.Num()
		if !k.IsInt64() || k.Int64() > maxExactExponent || k.Int64() < -maxExactExponent {
			return &Pow{base: b, exp: e}
		}
		p := k.Int64()
		if b.IsZero() {
			if p < 0 {
				fail("pow", "division by zero")
			}
			return N(0)
		}
		neg := p < 0
		if neg {
			p = -p
		}
		if int64(b.val.Num().BitLen()+b.val.Denom().BitLen())*p > maxExactBits {
			return &Pow{base: b, exp: e}
		}
		num := new(big.Int).Exp(b.val.Num(), big.NewInt(p), nil)
		den := new(big.Int).Exp(b.val.Denom(), big.NewInt(p), nil)
		r := new(big.Rat).SetFrac(num, den)
		if neg {
			r.Inv(r)
		}
		return &Num{val: r}
	}
	if b.IsZero() {
		if e.IsNegative() {
			fail("pow", "division by zero")
		}
		return N(0)
	}
	q := e.val.Denom()
	if !q.IsInt64() || q.Int64() > maxExactExponent {
		return &Pow{base: b, exp: e}
	}
	root, ok := ratRoot(b, q.Int64())
	if !ok {
		if b.IsNegative() && q.Bit(0) == 0 {
			fail("pow", fmt.Sprintf("even root of negative number %s", b))
		}
		return &Pow{base: b, exp: e}
	}
	return numPow(root, &Num{val: new(big.Rat).SetInt(e.val.Num())})
}

// ratRoot returns the exact real k-th root of r when one exists.
func ratRoot(r *Num, k int64) (*Num, bool) {
	neg := r.IsNegative()
	if neg && k%2 == 0 {
		return nil, false
	}
	a := numAbs(r)
	n, ok1 := intRoot(a.val.Num(), k)
	d, ok2 := intRoot(a.val.Denom(), k)
	if !ok1 || !ok2 {
		return nil, false
	}
	out := new(big.Rat).SetFrac(n, d)
	if neg {
		out.Neg(out)
	}
	return &Num{val: out}, true
}

// intRoot computes floor(n^(1/k)) by bisection and reports whether it is
// exact. n must be non-negative.
func intRoot(n *big.Int, k int64) (*big.Int, bool) {
	if n.Sign() == 0 {
		return new(big.Int), true
	}
	kk := big.NewInt(k)
	lo := big.NewInt(0)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()/int(k)+1))
	one := big.NewInt(1)
	mid := new(big.Int)
	pow := new(big.Int)
	for lo.Cmp(hi) < 0 {
		mid.Add(lo, hi)
		mid.Add(mid, one)
		mid.Rsh(mid, 1)
		pow.Exp(mid, kk, nil)
		if pow.Cmp(n) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, one)
		}
	}
	pow.Exp(lo, kk, nil)
	return lo, pow.Cmp(n) == 0
}
