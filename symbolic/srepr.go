package symbolic

import "strings"

// Srepr returns the structural key of e: a canonical rendering of the exact
// tree, e.g. Mul(Integer(2), Pow(Symbol('x'), Integer(-1))). Two trees have
// the same key if and only if they have the same shape. Operand order is
// part of the shape, so x + 1 and 1 + x are distinct.
func Srepr(e Expr) string {
	var sb strings.Builder
	e.writeSrepr(&sb)
	return sb.String()
}

func writeCall(sb *strings.Builder, name string, args []Expr) {
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.writeSrepr(sb)
	}
	sb.WriteByte(')')
}
