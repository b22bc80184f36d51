package modelfind

import (
	"context"
	"testing"

	"github.com/latticeforge/discovery/internal/cayley"
	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/seeds"
	"github.com/latticeforge/discovery/internal/signature"
)

func TestIsHeavyLieAlgebra(t *testing.T) {
	if !IsHeavy(seeds.LieAlgebra()) {
		t.Error("LieAlgebra carries a JACOBI axiom and should be heavy")
	}
}

func TestIsHeavySemigroupIsNot(t *testing.T) {
	if IsHeavy(seeds.Semigroup()) {
		t.Error("Semigroup has no distributivity-flavored axiom and should not be heavy")
	}
}

func TestIsHeavyQuasigroupIsNot(t *testing.T) {
	// Quasigroup's cancellation laws are tagged CUSTOM, which disqualifies
	// a signature from symmetry breaking regardless of its other axioms.
	if IsHeavy(seeds.Quasigroup()) {
		t.Error("a signature with a CUSTOM axiom should never be heavy")
	}
}

func TestSolveAtSemigroupSizeOneHasModel(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), seeds.Semigroup(), 1, DefaultOptions())
	if timedOut {
		t.Fatal("size 1 search should never time out")
	}
	if len(models) == 0 {
		t.Fatal("a one-element carrier always admits an associative operation")
	}
}

func TestSolveAtSemigroupSizeTwoFindsAssociativeTables(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), seeds.Semigroup(), 2, DefaultOptions())
	if timedOut {
		t.Fatal("size 2 semigroup search should complete within the default budget")
	}
	if len(models) == 0 {
		t.Fatal("expected at least one associative table of size 2")
	}
	for _, m := range models {
		if !cayley.IsAssociative(m, "mul") {
			t.Errorf("returned model fails associativity: %+v", m.Binary["mul"])
		}
	}
}

func TestSolveAtGroupSizeOneTrivialModel(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), seeds.Group(), 1, DefaultOptions())
	if timedOut {
		t.Fatal("size 1 group search should never time out")
	}
	if len(models) == 0 {
		t.Fatal("the trivial group has a model at size 1")
	}
}

func TestSolveAtGroupSizeTwoFindsValidGroup(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), seeds.Group(), 2, DefaultOptions())
	if timedOut {
		t.Fatal("size 2 group search should complete within the default budget")
	}
	if len(models) == 0 {
		t.Fatal("Z/2Z witnesses a group of order 2")
	}
	for _, m := range models {
		if !cayley.IsAssociative(m, "mul") {
			t.Error("group model's mul must be associative")
		}
		if !cayley.IsLatinSquare(m, "mul") {
			t.Error("group model's mul must be a Latin square")
		}
		if _, ok := cayley.IdentityElement(m, "mul"); !ok {
			t.Error("group model must have a two-sided identity")
		}
	}
}

// groupWithIdempotentMul appends x*x = x to Group's axioms. Combined with
// the group axioms this forces every element to equal the identity, so
// only the trivial (size 1) model can exist.
func groupWithIdempotentMul() *signature.Signature {
	sig := seeds.Group()
	sig.Axioms = append(sig.Axioms, signature.Axiom{
		Kind:       signature.Idempotence,
		Equation:   expr.Idempotence("mul"),
		Operations: []string{"mul"},
	})
	return sig
}

func TestSolveAtGroupIdempotentSizeOneHasModel(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), groupWithIdempotentMul(), 1, DefaultOptions())
	if timedOut {
		t.Fatal("size 1 search should never time out")
	}
	if len(models) == 0 {
		t.Fatal("the trivial group is idempotent and should still be found at size 1")
	}
}

func TestSolveAtGroupIdempotentSizeTwoHasNoModel(t *testing.T) {
	models, timedOut := SolveAt(context.Background(), groupWithIdempotentMul(), 2, DefaultOptions())
	if timedOut {
		t.Fatal("size 2 search space is small enough to exhaust within the default budget")
	}
	if len(models) != 0 {
		t.Errorf("an idempotent group operation forces a trivial carrier, got %d models at size 2", len(models))
	}
}

func TestComputeSpectrumSemigroupFindsModelsAcrossRange(t *testing.T) {
	spectrum := ComputeSpectrum(context.Background(), seeds.Semigroup(), 1, 2, DefaultOptions())
	if !spectrum.HasAnyModel() {
		t.Fatal("semigroups have models at every small size")
	}
	if spectrum.CountAt(1) == 0 {
		t.Error("expected at least one model at size 1")
	}
	if spectrum.CountAt(2) == 0 {
		t.Error("expected at least one model at size 2")
	}
	if _, ok := spectrum.CheckedSizes[1]; !ok {
		t.Error("size 1 should be recorded in CheckedSizes")
	}
	if _, ok := spectrum.CheckedSizes[2]; !ok {
		t.Error("size 2 should be recorded in CheckedSizes")
	}
}

func TestComputeSpectrumStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	spectrum := ComputeSpectrum(ctx, seeds.Semigroup(), 1, 3, DefaultOptions())
	if !spectrum.TimedOut(1) {
		t.Error("an already-cancelled context should mark the first attempted size as timed out")
	}
	if _, ok := spectrum.Models[3]; ok {
		t.Error("the spectrum should stop attempting further sizes once the context is done")
	}
}
