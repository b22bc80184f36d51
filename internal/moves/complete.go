package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// RunComplete independently produces, for each binary operation: (a) a
// right-identity child if none exists, (b) a right-inverse child if an
// identity exists but no inverse does. Additionally it produces, once
// per signature: (c) a second-operation left-distributivity child if the
// signature has exactly one binary operation, and (d) a norm/POSITIVITY
// marker child.
func RunComplete(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for _, op := range sig.BinaryOperations() {
		if child, ok := completeIdentity(sig, op); ok {
			out = append(out, child)
		}
		if child, ok := completeInverse(sig, op); ok {
			out = append(out, child)
		}
	}

	if child, ok := completeSecondOperation(sig); ok {
		out = append(out, child)
	}
	if child, ok := completeNorm(sig); ok {
		out = append(out, child)
	}

	return out
}

func completeIdentity(sig *signature.Signature, op signature.Operation) (MoveResult, bool) {
	if sig.HasAxiomKindForOp(op.Name, signature.Identity) {
		return MoveResult{}, false
	}

	identityName := "e_" + op.Name
	if _, exists := sig.Operation(identityName); exists {
		return MoveResult{}, false
	}

	child := sig.Clone()
	child.Operations = append(child.Operations, signature.Nullary(identityName, op.Codomain))
	child.Axioms = append(child.Axioms, signature.Axiom{
		Kind:        signature.Identity,
		Equation:    expr.RightIdentity(op.Name, identityName),
		Operations:  []string{op.Name, identityName},
		Description: fmt.Sprintf("%s has right identity %s", op.Name, identityName),
	})
	child.WithDerivation(fmt.Sprintf("COMPLETE(identity, %s)", op.Name))

	return MoveResult{
		Signature:   child,
		Kind:        Complete,
		Parents:     []string{sig.Name},
		Description: fmt.Sprintf("added right identity %s for %s", identityName, op.Name),
	}, true
}

func completeInverse(sig *signature.Signature, op signature.Operation) (MoveResult, bool) {
	if sig.HasAxiomKindForOp(op.Name, signature.Inverse) {
		return MoveResult{}, false
	}

	identityName := ""
	for _, ax := range sig.Axioms {
		if ax.Kind == signature.Identity && ax.MentionsOp(op.Name) && len(ax.Operations) >= 2 {
			identityName = ax.Operations[1]
			break
		}
	}
	if identityName == "" {
		return MoveResult{}, false
	}

	invName := "inv_" + op.Name
	if _, exists := sig.Operation(invName); exists {
		return MoveResult{}, false
	}

	child := sig.Clone()
	child.Operations = append(child.Operations, signature.Unary(invName, op.Codomain, op.Codomain))
	child.Axioms = append(child.Axioms, signature.Axiom{
		Kind:        signature.Inverse,
		Equation:    expr.RightInverse(op.Name, invName, identityName),
		Operations:  []string{op.Name, invName},
		Description: fmt.Sprintf("%s has right inverse %s", op.Name, invName),
	})
	child.WithDerivation(fmt.Sprintf("COMPLETE(inverse, %s)", op.Name))

	return MoveResult{
		Signature:   child,
		Kind:        Complete,
		Parents:     []string{sig.Name},
		Description: fmt.Sprintf("added right inverse %s for %s", invName, op.Name),
	}, true
}

func completeSecondOperation(sig *signature.Signature) (MoveResult, bool) {
	binaries := sig.BinaryOperations()
	if len(binaries) != 1 {
		return MoveResult{}, false
	}
	op := binaries[0]

	op2Name := "op2"
	if _, exists := sig.Operation(op2Name); exists {
		return MoveResult{}, false
	}

	child := sig.Clone()
	child.Operations = append(child.Operations, signature.Binary(op2Name, op.Codomain))
	child.Axioms = append(child.Axioms, signature.Axiom{
		Kind:        signature.Distributivity,
		Equation:    expr.LeftDistributivity(op.Name, op2Name),
		Operations:  []string{op2Name, op.Name},
		Description: fmt.Sprintf("%s distributes over %s", op2Name, op.Name),
	})
	child.WithDerivation(fmt.Sprintf("COMPLETE(distributivity, %s)", op2Name))

	return MoveResult{
		Signature:   child,
		Kind:        Complete,
		Parents:     []string{sig.Name},
		Description: fmt.Sprintf("added second operation %s distributing over %s", op2Name, op.Name),
	}, true
}

func completeNorm(sig *signature.Signature) (MoveResult, bool) {
	if len(sig.Sorts) == 0 {
		return MoveResult{}, false
	}
	if _, exists := sig.Operation("norm"); exists {
		return MoveResult{}, false
	}

	sortName := sig.Sorts[0].Name

	child := sig.Clone()
	child.Operations = append(child.Operations, signature.Unary("norm", sortName, sortName))
	child.Axioms = append(child.Axioms, signature.Axiom{
		Kind:       signature.Positivity,
		Equation:   expr.Eq(expr.App("norm", expr.Var("x")), expr.App("norm", expr.Var("x"))),
		Operations: []string{"norm"},
		Description: "norm marker: positivity is not expressible in first-order " +
			"equational logic, so this axiom is a no-op marker rather than a constraint",
	})
	child.WithDerivation("COMPLETE(norm)")

	return MoveResult{
		Signature:   child,
		Kind:        Complete,
		Parents:     []string{sig.Name},
		Description: "added norm operation with positivity marker",
	}, true
}
