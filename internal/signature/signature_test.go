package signature

import (
	"testing"

	"github.com/latticeforge/discovery/internal/expr"
)

func semigroup() *Signature {
	sig := New("Semigroup")
	sig.Sorts = []Sort{{Name: "S"}}
	sig.Operations = []Operation{Binary("mul", "S")}
	sig.Axioms = []Axiom{{
		Kind:       Associativity,
		Equation:   expr.Associativity("mul"),
		Operations: []string{"mul"},
	}}
	return sig
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	if err := semigroup().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsUndeclaredSort(t *testing.T) {
	sig := semigroup()
	sig.Operations = append(sig.Operations, Operation{Name: "bad", Domain: []string{"Ghost"}, Codomain: "S"})
	if err := sig.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for undeclared sort")
	}
}

func TestValidateRejectsDuplicateOperation(t *testing.T) {
	sig := semigroup()
	sig.Operations = append(sig.Operations, Binary("mul", "S"))
	if err := sig.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for duplicate operation")
	}
}

func TestValidateRejectsArityMismatch(t *testing.T) {
	sig := semigroup()
	sig.Axioms = []Axiom{{
		Kind:       Custom,
		Equation:   expr.Eq(expr.App("mul", expr.Var("x")), expr.Var("x")),
		Operations: []string{"mul"},
	}}
	if err := sig.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for arity mismatch")
	}
}

func TestCloneDoesNotAliasParent(t *testing.T) {
	sig := semigroup()
	clone := sig.Clone()
	clone.Operations[0].Name = "mutated"
	if sig.Operations[0].Name == "mutated" {
		t.Fatal("Clone aliased the parent's operation slice")
	}
	clone.Axioms[0].Operations[0] = "mutated"
	if sig.Axioms[0].Operations[0] == "mutated" {
		t.Fatal("Clone aliased the parent's axiom operations slice")
	}
}

func TestFingerprintInvariantUnderRenaming(t *testing.T) {
	a := semigroup()

	b := New("Halbgruppe")
	b.Sorts = []Sort{{Name: "T"}}
	b.Operations = []Operation{Binary("star", "T")}
	b.Axioms = []Axiom{{
		Kind:       Associativity,
		Equation:   expr.Associativity("star"),
		Operations: []string{"star"},
	}}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("Fingerprint differs under pure renaming: %s vs %s", a.Fingerprint(), b.Fingerprint())
	}
}

func TestFingerprintLength(t *testing.T) {
	fp := semigroup().Fingerprint()
	if len(fp) != 16 {
		t.Errorf("Fingerprint length = %d, want 16", len(fp))
	}
}

func TestRoundTrip(t *testing.T) {
	sig := semigroup()
	sig.WithDerivation("SEED(Semigroup)")
	sig.Metadata["origin"] = "seed"

	m := sig.ToMap()
	back, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if !sig.Equal(back) {
		t.Fatalf("round trip mismatch:\noriginal: %+v\nback:     %+v", sig, back)
	}
}
