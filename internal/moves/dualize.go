package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// RunDualize emits, for every binary operation not already witnessed by a
// COMMUTATIVITY axiom, one child with the canonical commutativity axiom
// appended for that operation.
func RunDualize(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for _, op := range sig.BinaryOperations() {
		if sig.HasAxiomKindForOp(op.Name, signature.Commutativity) {
			continue
		}

		child := sig.Clone()
		child.Axioms = append(child.Axioms, signature.Axiom{
			Kind:        signature.Commutativity,
			Equation:    expr.Commutativity(op.Name),
			Operations:  []string{op.Name},
			Description: fmt.Sprintf("%s made commutative", op.Name),
		})
		child.WithDerivation(fmt.Sprintf("DUALIZE(%s)", op.Name))

		out = append(out, MoveResult{
			Signature:   child,
			Kind:        Dualize,
			Parents:     []string{sig.Name},
			Description: fmt.Sprintf("added commutativity for %s", op.Name),
		})
	}

	return out
}
