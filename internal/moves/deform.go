package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

const deformParamSort = "Param"
const deformParamConst = "q"

// RunDeform emits, for each axiom not of kind CUSTOM or POSITIVITY, one
// child in which that axiom alone is replaced by a deformed, CUSTOM-
// tagged variant introducing a fresh Param sort.
func RunDeform(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for i, ax := range sig.Axioms {
		if ax.Kind == signature.Custom || ax.Kind == signature.Positivity {
			continue
		}

		child := sig.Clone()
		ensureParamSort(child)

		var deformed signature.Axiom
		switch ax.Kind {
		case signature.Associativity:
			op := ax.Operations[0]
			qOp := ensureQOp(child, op)
			deformed = deformedAssociativity(ax, op, qOp)
		case signature.Commutativity:
			op := ax.Operations[0]
			qOp := ensureQOp(child, op)
			deformed = deformedCommutativity(ax, op, qOp)
		default:
			deformed = signature.Axiom{
				Kind:        signature.Custom,
				Equation:    ax.Equation,
				Operations:  ax.Operations,
				Description: fmt.Sprintf("deformed variant of %s (kept verbatim, re-tagged)", ax.Kind),
			}
		}

		child.Axioms[i] = deformed
		child.WithDerivation(fmt.Sprintf("DEFORM(%s)", ax.Kind))

		out = append(out, MoveResult{
			Signature:   child,
			Kind:        Deform,
			Parents:     []string{sig.Name},
			Description: fmt.Sprintf("deformed %s axiom", ax.Kind),
		})
	}

	return out
}

func ensureParamSort(sig *signature.Signature) {
	if sig.HasSort(deformParamSort) {
		return
	}
	sig.Sorts = append(sig.Sorts, signature.Sort{Name: deformParamSort, Description: "deformation parameter"})
	sig.Operations = append(sig.Operations, signature.Nullary(deformParamConst, deformParamSort))
}

// ensureQOp adds (if absent) the auxiliary q_op: Param x S -> S
// operation for op and returns its name.
func ensureQOp(sig *signature.Signature, op string) string {
	qOp := "q_" + op
	if _, exists := sig.Operation(qOp); exists {
		return qOp
	}
	base, _ := sig.Operation(op)
	codomain := base.Codomain
	sig.Operations = append(sig.Operations, signature.Operation{
		Name:     qOp,
		Domain:   []string{deformParamSort, codomain},
		Codomain: codomain,
	})
	return qOp
}

func deformedAssociativity(ax signature.Axiom, op, qOp string) signature.Axiom {
	x, y, z := expr.Var("x"), expr.Var("y"), expr.Var("z")
	lhs := ax.Equation.LHS() // (x op y) op z
	rhsDeformed := expr.App(qOp, expr.Const(deformParamConst), expr.App(op, x, expr.App(op, y, z)))
	return signature.Axiom{
		Kind:        signature.Custom,
		Equation:    expr.Eq(lhs, rhsDeformed),
		Operations:  append(append([]string{}, ax.Operations...), qOp),
		Description: fmt.Sprintf("deformed associativity of %s by parameter %s", op, deformParamConst),
	}
}

func deformedCommutativity(ax signature.Axiom, op, qOp string) signature.Axiom {
	x, y := expr.Var("x"), expr.Var("y")
	lhs := ax.Equation.LHS() // x op y
	rhsDeformed := expr.App(qOp, expr.Const(deformParamConst), expr.App(op, y, x))
	return signature.Axiom{
		Kind:        signature.Custom,
		Equation:    expr.Eq(lhs, rhsDeformed),
		Operations:  append(append([]string{}, ax.Operations...), qOp),
		Description: fmt.Sprintf("deformed commutativity of %s by parameter %s", op, deformParamConst),
	}
}
