package moves

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// RunTransfer produces exactly one child whose sorts are the first sort
// of a and the first sort of b (renamed on collision), with a's
// operations copied under an "a_" prefix, b's under a "b_" prefix, every
// axiom equation rewritten to use the new prefixes, and a fresh unary
// transfer operation a-sort -> b-sort. If both parents have at least one
// binary operation, a FUNCTORIALITY axiom is appended over each parent's
// first binary operation.
func RunTransfer(a, b *signature.Signature) []MoveResult {
	if len(a.Sorts) == 0 || len(b.Sorts) == 0 {
		return nil
	}

	sortA := a.Sorts[0].Name
	sortB := b.Sorts[0].Name
	newSortA, newSortB := sortA, sortB
	if sortA == sortB {
		newSortA = sortA + "_A"
		newSortB = sortB + "_B"
	}

	child := signature.New(fmt.Sprintf("Transfer(%s,%s)", a.Name, b.Name))
	child.Sorts = []signature.Sort{{Name: newSortA}, {Name: newSortB}}

	sortMapA := sortRenameMap(a, sortA, newSortA, "a_")
	sortMapB := sortRenameMap(b, sortB, newSortB, "b_")

	opMapA := copyPrefixedOperations(child, a, "a_", sortMapA)
	opMapB := copyPrefixedOperations(child, b, "b_", sortMapB)

	for _, ax := range a.Axioms {
		child.Axioms = append(child.Axioms, rewriteAxiom(ax, opMapA))
	}
	for _, ax := range b.Axioms {
		child.Axioms = append(child.Axioms, rewriteAxiom(ax, opMapB))
	}

	child.Operations = append(child.Operations, signature.Unary("transfer", newSortA, newSortB))

	binA := a.BinaryOperations()
	binB := b.BinaryOperations()
	if len(binA) > 0 && len(binB) > 0 {
		opA := opMapA[binA[0].Name]
		opB := opMapB[binB[0].Name]
		x, y := expr.Var("x"), expr.Var("y")
		eq := expr.Eq(
			expr.App("transfer", expr.App(opA, x, y)),
			expr.App(opB, expr.App("transfer", x), expr.App("transfer", y)),
		)
		child.Axioms = append(child.Axioms, signature.Axiom{
			Kind:        signature.Functoriality,
			Equation:    eq,
			Operations:  []string{"transfer", opA, opB},
			Description: fmt.Sprintf("transfer is functorial for %s and %s", opA, opB),
		})
	}

	child.WithDerivation(fmt.Sprintf("TRANSFER(%s, %s)", a.Name, b.Name))

	return []MoveResult{{
		Signature:   child,
		Kind:        Transfer,
		Parents:     []string{a.Name, b.Name},
		Description: fmt.Sprintf("transferred structure between %s and %s", a.Name, b.Name),
	}}
}

// sortRenameMap maps every sort of parent to its prefixed name in the
// child, except the designated first sort which maps to newFirst.
func sortRenameMap(parent *signature.Signature, first, newFirst, prefix string) map[string]string {
	m := make(map[string]string, len(parent.Sorts))
	for _, s := range parent.Sorts {
		if s.Name == first {
			m[s.Name] = newFirst
		} else {
			m[s.Name] = prefix + s.Name
		}
	}
	return m
}

// copyPrefixedOperations copies parent's operations into child with
// names prefixed and sort references rewritten through sortMap. It
// returns the old-name -> new-name operation map for axiom rewriting.
func copyPrefixedOperations(child *signature.Signature, parent *signature.Signature, prefix string, sortMap map[string]string) map[string]string {
	opMap := make(map[string]string, len(parent.Operations))
	for _, op := range parent.Operations {
		newName := prefix + op.Name
		opMap[op.Name] = newName

		domain := make([]string, len(op.Domain))
		for i, d := range op.Domain {
			domain[i] = sortMap[d]
		}
		child.Operations = append(child.Operations, signature.Operation{
			Name:     newName,
			Domain:   domain,
			Codomain: sortMap[op.Codomain],
		})
	}
	return opMap
}

func rewriteAxiom(ax signature.Axiom, opMap map[string]string) signature.Axiom {
	ops := make([]string, len(ax.Operations))
	for i, o := range ax.Operations {
		if renamed, ok := opMap[o]; ok {
			ops[i] = renamed
		} else {
			ops[i] = o
		}
	}
	return signature.Axiom{
		Kind:        ax.Kind,
		Equation:    renameOps(ax.Equation, opMap),
		Operations:  ops,
		Description: ax.Description,
	}
}

// renameOps returns a copy of e with every application's operation name
// rewritten through opMap.
func renameOps(e expr.Expr, opMap map[string]string) expr.Expr {
	switch e.Kind() {
	case expr.KindVariable:
		return expr.Var(e.Name())
	case expr.KindConstant:
		name := e.Name()
		if renamed, ok := opMap[name]; ok {
			name = renamed
		}
		return expr.Const(name)
	case expr.KindApplication:
		args := e.Args()
		newArgs := make([]expr.Expr, len(args))
		for i, a := range args {
			newArgs[i] = renameOps(a, opMap)
		}
		newOp := e.Op()
		if renamed, ok := opMap[newOp]; ok {
			newOp = renamed
		}
		return expr.App(newOp, newArgs...)
	case expr.KindEquation:
		return expr.Eq(renameOps(e.LHS(), opMap), renameOps(e.RHS(), opMap))
	default:
		return e
	}
}
