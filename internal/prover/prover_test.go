package prover

import (
	"context"
	"testing"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/modelfind"
	"github.com/latticeforge/discovery/internal/seeds"
)

func TestProveGroupRightIdentityHolds(t *testing.T) {
	// every group model already satisfies x*e = x by construction
	// (Monoid's RightIdentity axiom); this should hold up to size 3
	// with no countermodel.
	sig := seeds.Group()
	x := expr.Var("x")
	goal := expr.Eq(expr.App("mul", x, expr.Const("e_mul")), x)

	status, _, err := Prove(context.Background(), sig, goal, 3, modelfind.DefaultOptions())
	if err != nil {
		t.Fatalf("Prove() error = %v", err)
	}
	if status != Proved {
		t.Errorf("Prove(group right identity) = %s, want PROVED", status)
	}
}

func TestProveRejectsNonEquationGoal(t *testing.T) {
	sig := seeds.Semigroup()
	notAnEquation := expr.Var("x")

	status, _, err := Prove(context.Background(), sig, notAnEquation, 2, modelfind.DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for a non-equation goal")
	}
	if status != Error {
		t.Errorf("status = %s, want ERROR", status)
	}
}

func TestProveDisprovesFalseGoalOnSemigroup(t *testing.T) {
	// a bare semigroup has no identity axiom at all, so some associative
	// table of size 2 will violate "x*y = x" (a constraint no seed axiom
	// enforces).
	sig := seeds.Semigroup()
	x, y := expr.Var("x"), expr.Var("y")
	goal := expr.Eq(expr.App("mul", x, y), x)

	status, _, err := Prove(context.Background(), sig, goal, 2, modelfind.DefaultOptions())
	if err != nil {
		t.Fatalf("Prove() error = %v", err)
	}
	if status != Disproved {
		t.Errorf("Prove(left-zero goal on unconstrained semigroup) = %s, want DISPROVED", status)
	}
}
