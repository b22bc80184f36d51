package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

var quotientBuilders = map[signature.AxiomKind]func(string) expr.Expr{
	signature.Commutativity: expr.Commutativity,
	signature.Idempotence:   expr.Idempotence,
}

// RunQuotient emits, for each binary operation and each of
// (COMMUTATIVITY, IDEMPOTENCE), one child adding the canonical axiom if
// the operation does not already carry that kind.
func RunQuotient(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for _, op := range sig.BinaryOperations() {
		for _, kind := range []signature.AxiomKind{signature.Commutativity, signature.Idempotence} {
			if sig.HasAxiomKindForOp(op.Name, kind) {
				continue
			}

			child := sig.Clone()
			child.Axioms = append(child.Axioms, signature.Axiom{
				Kind:        kind,
				Equation:    quotientBuilders[kind](op.Name),
				Operations:  []string{op.Name},
				Description: fmt.Sprintf("quotiented %s by %s", op.Name, kind),
			})
			child.WithDerivation(fmt.Sprintf("QUOTIENT(%s, %s)", op.Name, kind))

			out = append(out, MoveResult{
				Signature:   child,
				Kind:        Quotient,
				Parents:     []string{sig.Name},
				Description: fmt.Sprintf("quotiented %s by %s", op.Name, kind),
			})
		}
	}

	return out
}
