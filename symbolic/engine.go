package symbolic

// Engine exposes the kernel as a value so callers can depend on an
// interface instead of package functions.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (*Engine) Simplify(e Expr) (Expr, error) { return Simplify(e) }
func (*Engine) IsZero(e Expr) bool            { return IsZero(e) }
func (*Engine) Key(e Expr) string             { return Srepr(e) }
func (*Engine) Display(e Expr) string         { return e.String() }
func (*Engine) Typeset(e Expr) string         { return e.LaTeX() }
