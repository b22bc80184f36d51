package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// RunInternalize emits, for every binary operation f: S x S -> S, one
// child adding a fresh sort Hom_f, a binary evaluation operation
// eval_f: Hom_f x S -> S, a unary currying operation curry_f: S -> Hom_f,
// and a single CUSTOM axiom eval_f(curry_f(a), b) = f(a, b).
func RunInternalize(sig *signature.Signature) []MoveResult {
	var out []MoveResult

	for _, op := range sig.BinaryOperations() {
		homSort := "Hom_" + op.Name
		evalName := "eval_" + op.Name
		curryName := "curry_" + op.Name

		if sig.HasSort(homSort) {
			continue
		}
		if _, exists := sig.Operation(evalName); exists {
			continue
		}
		if _, exists := sig.Operation(curryName); exists {
			continue
		}

		s := op.Domain[0]

		child := sig.Clone()
		child.Sorts = append(child.Sorts, signature.Sort{Name: homSort, Description: fmt.Sprintf("curried %s", op.Name)})
		child.Operations = append(child.Operations,
			signature.Operation{Name: evalName, Domain: []string{homSort, s}, Codomain: op.Codomain},
			signature.Unary(curryName, s, homSort),
		)

		a, b := expr.Var("a"), expr.Var("b")
		eq := expr.Eq(
			expr.App(evalName, expr.App(curryName, a), b),
			expr.App(op.Name, a, b),
		)
		child.Axioms = append(child.Axioms, signature.Axiom{
			Kind:        signature.Custom,
			Equation:    eq,
			Operations:  []string{evalName, curryName, op.Name},
			Description: fmt.Sprintf("curry/eval adjunction internalizing %s", op.Name),
		})
		child.WithDerivation(fmt.Sprintf("INTERNALIZE(%s)", op.Name))

		out = append(out, MoveResult{
			Signature:   child,
			Kind:        Internalize,
			Parents:     []string{sig.Name},
			Description: fmt.Sprintf("internalized %s as %s/%s", op.Name, evalName, curryName),
		})
	}

	return out
}
