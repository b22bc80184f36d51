package moves

import (
	"fmt"
	"sort"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// abstractableKinds is the set of axiom kinds whose canonical equation
// builder needs nothing but a single operation name. Kinds whose
// canonical forms require extra operations (IDENTITY needs a constant,
// INVERSE needs a unary) are dropped by ABSTRACT.
var abstractableKinds = map[signature.AxiomKind]func(string) expr.Expr{
	signature.Associativity: expr.Associativity,
	signature.Commutativity: expr.Commutativity,
	signature.Idempotence:   expr.Idempotence,
}

// RunAbstract produces a single abstract signature carrying every shared,
// single-operation-buildable axiom kind of a and b, over one fresh
// binary operation on one fresh sort. Returns no result if the shared,
// buildable kind set is empty.
func RunAbstract(a, b *signature.Signature) []MoveResult {
	kindsA := a.AllAxiomKinds()
	kindsB := b.AllAxiomKinds()

	var shared []signature.AxiomKind
	for k := range kindsA {
		if _, ok := kindsB[k]; !ok {
			continue
		}
		if _, buildable := abstractableKinds[k]; buildable {
			shared = append(shared, k)
		}
	}
	if len(shared) == 0 {
		return nil
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	child := signature.New(fmt.Sprintf("Abstract(%s,%s)", a.Name, b.Name))
	child.Sorts = []signature.Sort{{Name: "A"}}
	child.Operations = []signature.Operation{signature.Binary("op", "A")}

	for _, k := range shared {
		builder := abstractableKinds[k]
		child.Axioms = append(child.Axioms, signature.Axiom{
			Kind:        k,
			Equation:    builder("op"),
			Operations:  []string{"op"},
			Description: fmt.Sprintf("abstracted shared %s from %s and %s", k, a.Name, b.Name),
		})
	}

	child.WithDerivation(fmt.Sprintf("ABSTRACT(%s, %s)", a.Name, b.Name))

	return []MoveResult{{
		Signature:   child,
		Kind:        Abstract,
		Parents:     []string{a.Name, b.Name},
		Description: fmt.Sprintf("abstracted %d shared axiom kind(s) from %s and %s", len(shared), a.Name, b.Name),
	}}
}
