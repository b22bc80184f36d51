package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// RunSelfDistrib emits, for each binary operation, a left-only child
// adding left self-distributivity if absent, and independently a full
// child adding whichever of left/right self-distributivity are missing
// (no child at all if both are already present).
func RunSelfDistrib(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for _, op := range sig.BinaryOperations() {
		hasLeft := sig.HasAxiomKindForOp(op.Name, signature.SelfDistributivity)
		hasRight := sig.HasAxiomKindForOp(op.Name, signature.RightSelfDistrib)

		if !hasLeft {
			child := sig.Clone()
			child.Axioms = append(child.Axioms, leftSelfDistribAxiom(op.Name))
			child.WithDerivation(fmt.Sprintf("SELF_DISTRIB(%s, left)", op.Name))
			out = append(out, MoveResult{
				Signature:   child,
				Kind:        SelfDistrib,
				Parents:     []string{sig.Name},
				Description: fmt.Sprintf("added left self-distributivity for %s", op.Name),
			})
		}

		var missing []signature.Axiom
		if !hasLeft {
			missing = append(missing, leftSelfDistribAxiom(op.Name))
		}
		if !hasRight {
			missing = append(missing, rightSelfDistribAxiom(op.Name))
		}
		if len(missing) == 0 {
			continue
		}

		child := sig.Clone()
		child.Axioms = append(child.Axioms, missing...)
		child.WithDerivation(fmt.Sprintf("SELF_DISTRIB(%s, full)", op.Name))
		out = append(out, MoveResult{
			Signature:   child,
			Kind:        SelfDistrib,
			Parents:     []string{sig.Name},
			Description: fmt.Sprintf("completed self-distributivity for %s", op.Name),
		})
	}

	return out
}

func leftSelfDistribAxiom(op string) signature.Axiom {
	return signature.Axiom{
		Kind:        signature.SelfDistributivity,
		Equation:    expr.LeftSelfDistributivity(op),
		Operations:  []string{op},
		Description: fmt.Sprintf("%s is left self-distributive", op),
	}
}

func rightSelfDistribAxiom(op string) signature.Axiom {
	return signature.Axiom{
		Kind:        signature.RightSelfDistrib,
		Equation:    expr.RightSelfDistributivity(op),
		Operations:  []string{op},
		Description: fmt.Sprintf("%s is right self-distributive", op),
	}
}
