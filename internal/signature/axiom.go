package signature

import "github.com/latticeforge/discovery/internal/expr"

// AxiomKind is the closed set of canonical equational-law shapes a move
// or seed can attach to an operation.
type AxiomKind string

const (
	Associativity      AxiomKind = "ASSOCIATIVITY"
	Commutativity      AxiomKind = "COMMUTATIVITY"
	Identity           AxiomKind = "IDENTITY"
	Inverse            AxiomKind = "INVERSE"
	Distributivity     AxiomKind = "DISTRIBUTIVITY"
	Anticommutativity  AxiomKind = "ANTICOMMUTATIVITY"
	Idempotence        AxiomKind = "IDEMPOTENCE"
	Nilpotence         AxiomKind = "NILPOTENCE"
	Jacobi             AxiomKind = "JACOBI"
	Positivity         AxiomKind = "POSITIVITY"
	Bilinearity        AxiomKind = "BILINEARITY"
	Homomorphism       AxiomKind = "HOMOMORPHISM"
	Functoriality      AxiomKind = "FUNCTORIALITY"
	Absorption         AxiomKind = "ABSORPTION"
	Modularity         AxiomKind = "MODULARITY"
	SelfDistributivity AxiomKind = "SELF_DISTRIBUTIVITY"
	RightSelfDistrib   AxiomKind = "RIGHT_SELF_DISTRIBUTIVITY"
	Custom             AxiomKind = "CUSTOM"
)

// Axiom pairs an equational law with the operations it constrains.
type Axiom struct {
	Kind        AxiomKind
	Equation    expr.Expr
	Operations  []string
	Description string
}

// Clone returns a deep-enough copy (Expr is immutable, so only the slice
// needs copying) suitable for embedding in a child signature.
func (a Axiom) Clone() Axiom {
	ops := make([]string, len(a.Operations))
	copy(ops, a.Operations)
	return Axiom{Kind: a.Kind, Equation: a.Equation, Operations: ops, Description: a.Description}
}

// MentionsOp reports whether op is among a.Operations.
func (a Axiom) MentionsOp(op string) bool {
	for _, o := range a.Operations {
		if o == op {
			return true
		}
	}
	return false
}
