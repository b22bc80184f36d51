// Package seeds holds the catalog of classical algebraic structures the
// discovery pipeline starts exploring from: Semigroup, Monoid, Group,
// Ring, Lattice, Lie algebra, Quasigroup, Boolean algebra. Each
// constructor returns a fresh, independently owned *signature.Signature
// with an empty derivation chain — the pipeline clones from here, it
// never mutates a catalog entry in place.
package seeds

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// Semigroup: one sort, one associative binary operation.
func Semigroup() *signature.Signature {
	sig := signature.New("Semigroup")
	sig.Description = "a set with one associative binary operation"
	sig.Sorts = []signature.Sort{{Name: "S", Description: "the underlying carrier"}}
	sig.Operations = []signature.Operation{signature.Binary("mul", "S")}
	sig.Axioms = []signature.Axiom{
		{
			Kind:        signature.Associativity,
			Equation:    expr.Associativity("mul"),
			Operations:  []string{"mul"},
			Description: "mul is associative",
		},
	}
	return sig
}

// Monoid: Semigroup plus a two-sided identity element.
func Monoid() *signature.Signature {
	sig := Semigroup()
	sig.Name = "Monoid"
	sig.Description = "a semigroup with a two-sided identity element"
	sig.Operations = append(sig.Operations, signature.Nullary("e_mul", "S"))
	sig.Axioms = append(sig.Axioms,
		signature.Axiom{
			Kind:        signature.Identity,
			Equation:    expr.LeftIdentity("mul", "e_mul"),
			Operations:  []string{"mul", "e_mul"},
			Description: "e_mul is a left identity for mul",
		},
		signature.Axiom{
			Kind:        signature.Identity,
			Equation:    expr.RightIdentity("mul", "e_mul"),
			Operations:  []string{"mul", "e_mul"},
			Description: "e_mul is a right identity for mul",
		},
	)
	return sig
}

// Group: Monoid plus a two-sided inverse operation.
func Group() *signature.Signature {
	sig := Monoid()
	sig.Name = "Group"
	sig.Description = "a monoid in which every element has a two-sided inverse"
	sig.Operations = append(sig.Operations, signature.Unary("inv_mul", "S", "S"))
	sig.Axioms = append(sig.Axioms,
		signature.Axiom{
			Kind:        signature.Inverse,
			Equation:    expr.RightInverse("mul", "inv_mul", "e_mul"),
			Operations:  []string{"mul", "inv_mul"},
			Description: "inv_mul is a right inverse for mul",
		},
	)
	return sig
}

// Ring: an additive commutative group (add, zero, neg) together with an
// associative multiplication distributing over addition — 4 operations,
// the shape spec.md's TRANSFER(Group, Ring) worked example assumes.
func Ring() *signature.Signature {
	sig := signature.New("Ring")
	sig.Description = "an additive abelian group with a distributive associative multiplication"
	sig.Sorts = []signature.Sort{{Name: "R", Description: "the underlying carrier"}}
	sig.Operations = []signature.Operation{
		signature.Binary("add", "R"),
		signature.Nullary("zero", "R"),
		signature.Unary("neg", "R", "R"),
		signature.Binary("mul", "R"),
	}
	sig.Axioms = []signature.Axiom{
		{Kind: signature.Associativity, Equation: expr.Associativity("add"), Operations: []string{"add"}, Description: "add is associative"},
		{Kind: signature.Commutativity, Equation: expr.Commutativity("add"), Operations: []string{"add"}, Description: "add is commutative"},
		{Kind: signature.Identity, Equation: expr.RightIdentity("add", "zero"), Operations: []string{"add", "zero"}, Description: "zero is an additive identity"},
		{Kind: signature.Inverse, Equation: expr.RightInverse("add", "neg", "zero"), Operations: []string{"add", "neg"}, Description: "neg is an additive inverse"},
		{Kind: signature.Associativity, Equation: expr.Associativity("mul"), Operations: []string{"mul"}, Description: "mul is associative"},
		{Kind: signature.Distributivity, Equation: expr.LeftDistributivity("add", "mul"), Operations: []string{"mul", "add"}, Description: "mul distributes over add"},
	}
	return sig
}

// Lattice: two binary operations (meet, join), each idempotent,
// commutative, and associative, tied together by the absorption laws.
func Lattice() *signature.Signature {
	sig := signature.New("Lattice")
	sig.Description = "a set with idempotent commutative associative meet and join tied by absorption"
	sig.Sorts = []signature.Sort{{Name: "L", Description: "the underlying carrier"}}
	sig.Operations = []signature.Operation{
		signature.Binary("meet", "L"),
		signature.Binary("join", "L"),
	}
	sig.Axioms = []signature.Axiom{
		{Kind: signature.Associativity, Equation: expr.Associativity("meet"), Operations: []string{"meet"}, Description: "meet is associative"},
		{Kind: signature.Commutativity, Equation: expr.Commutativity("meet"), Operations: []string{"meet"}, Description: "meet is commutative"},
		{Kind: signature.Idempotence, Equation: expr.Idempotence("meet"), Operations: []string{"meet"}, Description: "meet is idempotent"},
		{Kind: signature.Associativity, Equation: expr.Associativity("join"), Operations: []string{"join"}, Description: "join is associative"},
		{Kind: signature.Commutativity, Equation: expr.Commutativity("join"), Operations: []string{"join"}, Description: "join is commutative"},
		{Kind: signature.Idempotence, Equation: expr.Idempotence("join"), Operations: []string{"join"}, Description: "join is idempotent"},
		{Kind: signature.Absorption, Equation: absorption("meet", "join"), Operations: []string{"meet", "join"}, Description: "meet absorbs join"},
		{Kind: signature.Absorption, Equation: absorption("join", "meet"), Operations: []string{"join", "meet"}, Description: "join absorbs meet"},
	}
	return sig
}

// absorption builds x op1 (x op2 y) = x.
func absorption(op1, op2 string) expr.Expr {
	x, y := expr.Var("x"), expr.Var("y")
	return expr.Eq(expr.App(op1, x, expr.App(op2, x, y)), x)
}

// LieAlgebra: one anticommutative bracket operation satisfying the
// Jacobi identity.
func LieAlgebra() *signature.Signature {
	sig := signature.New("LieAlgebra")
	sig.Description = "a carrier with an anticommutative bracket satisfying the Jacobi identity"
	sig.Sorts = []signature.Sort{{Name: "G", Description: "the underlying carrier"}}
	sig.Operations = []signature.Operation{
		signature.Binary("bracket", "G"),
		signature.Unary("neg", "G", "G"),
	}
	sig.Axioms = []signature.Axiom{
		{
			Kind:        signature.Anticommutativity,
			Equation:    expr.Anticommutativity("bracket", "neg"),
			Operations:  []string{"bracket", "neg"},
			Description: "bracket is anticommutative",
		},
		{
			Kind:        signature.Jacobi,
			Equation:    expr.Jacobi("bracket"),
			Operations:  []string{"bracket"},
			Description: "bracket satisfies the Jacobi identity",
		},
	}
	return sig
}

// Quasigroup: one binary operation plus left and right division,
// witnessing unique solvability (the Latin-square property) via the
// cancellation identities ldiv(x, mul(x, y)) = y and rdiv(mul(x, y), y) = x
// together with mul(x, ldiv(x, y)) = y and mul(rdiv(x, y), y) = x.
func Quasigroup() *signature.Signature {
	sig := signature.New("Quasigroup")
	sig.Description = "a binary operation with left and right division witnessing unique solvability"
	sig.Sorts = []signature.Sort{{Name: "Q", Description: "the underlying carrier"}}
	sig.Operations = []signature.Operation{
		signature.Binary("mul", "Q"),
		signature.Binary("ldiv", "Q"),
		signature.Binary("rdiv", "Q"),
	}
	x, y := expr.Var("x"), expr.Var("y")
	sig.Axioms = []signature.Axiom{
		{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("ldiv", x, expr.App("mul", x, y)), y),
			Operations:  []string{"ldiv", "mul"},
			Description: "ldiv cancels mul on the left: x\\(x*y) = y",
		},
		{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("mul", x, expr.App("ldiv", x, y)), y),
			Operations:  []string{"mul", "ldiv"},
			Description: "mul cancels ldiv on the left: x*(x\\y) = y",
		},
		{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("rdiv", expr.App("mul", x, y), y), x),
			Operations:  []string{"rdiv", "mul"},
			Description: "rdiv cancels mul on the right: (x*y)/y = x",
		},
		{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("mul", expr.App("rdiv", x, y), y), x),
			Operations:  []string{"mul", "rdiv"},
			Description: "mul cancels rdiv on the right: (x/y)*y = x",
		},
	}
	return sig
}

// BooleanAlgebra: a bounded, complemented distributive lattice — meet
// and join with top/bottom constants, complementation, and the
// distributive law layered on top of Lattice's absorption structure.
func BooleanAlgebra() *signature.Signature {
	sig := Lattice()
	sig.Name = "BooleanAlgebra"
	sig.Description = "a bounded complemented distributive lattice"
	sig.Operations = append(sig.Operations,
		signature.Nullary("top", "L"),
		signature.Nullary("bottom", "L"),
		signature.Unary("complement", "L", "L"),
	)
	sig.Axioms = append(sig.Axioms,
		signature.Axiom{
			Kind:        signature.Distributivity,
			Equation:    expr.LeftDistributivity("join", "meet"),
			Operations:  []string{"meet", "join"},
			Description: "meet distributes over join",
		},
		signature.Axiom{
			Kind:        signature.Identity,
			Equation:    expr.RightIdentity("meet", "top"),
			Operations:  []string{"meet", "top"},
			Description: "top is an identity for meet",
		},
		signature.Axiom{
			Kind:        signature.Identity,
			Equation:    expr.RightIdentity("join", "bottom"),
			Operations:  []string{"join", "bottom"},
			Description: "bottom is an identity for join",
		},
		signature.Axiom{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("meet", expr.Var("x"), expr.App("complement", expr.Var("x"))), expr.Const("bottom")),
			Operations:  []string{"meet", "complement"},
			Description: "x meet complement(x) = bottom",
		},
		signature.Axiom{
			Kind:        signature.Custom,
			Equation:    expr.Eq(expr.App("join", expr.Var("x"), expr.App("complement", expr.Var("x"))), expr.Const("top")),
			Operations:  []string{"join", "complement"},
			Description: "x join complement(x) = top",
		},
	)
	return sig
}

// All returns one fresh instance of every catalog entry, in the fixed
// order the pipeline iterates the seed frontier.
func All() []*signature.Signature {
	return []*signature.Signature{
		Semigroup(),
		Monoid(),
		Group(),
		Ring(),
		Lattice(),
		LieAlgebra(),
		Quasigroup(),
		BooleanAlgebra(),
	}
}

// ByName looks up a catalog entry by its seed name (case-sensitive,
// matching the Signature.Name each constructor assigns).
func ByName(name string) (*signature.Signature, error) {
	for _, ctor := range []func() *signature.Signature{
		Semigroup, Monoid, Group, Ring, Lattice, LieAlgebra, Quasigroup, BooleanAlgebra,
	} {
		sig := ctor()
		if sig.Name == name {
			return sig, nil
		}
	}
	return nil, fmt.Errorf("seeds: no catalog entry named %q", name)
}

// Names returns the catalog's seed names in fixed iteration order.
func Names() []string {
	names := make([]string, 0, 8)
	for _, sig := range All() {
		names = append(names, sig.Name)
	}
	return names
}
