package signature

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
)

// checkArities walks e and verifies that every application references a
// declared operation whose arity matches the number of arguments at that
// call site.
func checkArities(e expr.Expr, ops map[string]Operation) error {
	switch e.Kind() {
	case expr.KindVariable, expr.KindConstant:
		return nil
	case expr.KindApplication:
		op, ok := ops[e.Op()]
		if !ok {
			return fmt.Errorf("undeclared operation %q", e.Op())
		}
		if op.Arity() != len(e.Args()) {
			return fmt.Errorf("operation %q has arity %d but is applied to %d argument(s)", e.Op(), op.Arity(), len(e.Args()))
		}
		for _, a := range e.Args() {
			if err := checkArities(a, ops); err != nil {
				return err
			}
		}
		return nil
	case expr.KindEquation:
		if err := checkArities(e.LHS(), ops); err != nil {
			return err
		}
		return checkArities(e.RHS(), ops)
	default:
		return nil
	}
}
