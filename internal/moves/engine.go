// Package moves implements the eight structural transformations that
// generate candidate signatures from one or two parent signatures.
package moves

import "github.com/latticeforge/discovery/internal/signature"

// Kind is the closed set of move transformations.
type Kind string

const (
	Abstract    Kind = "ABSTRACT"
	Dualize     Kind = "DUALIZE"
	Complete    Kind = "COMPLETE"
	Quotient    Kind = "QUOTIENT"
	Internalize Kind = "INTERNALIZE"
	Transfer    Kind = "TRANSFER"
	Deform      Kind = "DEFORM"
	SelfDistrib Kind = "SELF_DISTRIB"
)

// Unary lists every move that takes a single parent signature.
var Unary = []Kind{Dualize, Complete, Quotient, Internalize, Deform, SelfDistrib}

// Pairwise lists every move that takes two parent signatures.
var Pairwise = []Kind{Abstract, Transfer}

// All lists every move kind, in the fixed order spec.md section 4.3
// presents them.
var All = []Kind{Abstract, Dualize, Complete, Quotient, Internalize, Transfer, Deform, SelfDistrib}

// MoveResult is one produced child signature together with its
// provenance: which move produced it, from which parent(s), and a
// human-readable description.
type MoveResult struct {
	Signature   *signature.Signature
	Kind        Kind
	Parents     []string
	Description string
}

// Engine dispatches the eight moves over a frontier of signatures.
type Engine struct {
	Allowed map[Kind]bool
}

// NewEngine constructs an engine allowing exactly the given kinds. A nil
// or empty allow-list permits every move.
func NewEngine(allowed ...Kind) *Engine {
	e := &Engine{Allowed: make(map[Kind]bool)}
	if len(allowed) == 0 {
		for _, k := range All {
			e.Allowed[k] = true
		}
		return e
	}
	for _, k := range allowed {
		e.Allowed[k] = true
	}
	return e
}

func (e *Engine) isAllowed(k Kind) bool {
	if e == nil || len(e.Allowed) == 0 {
		return true
	}
	return e.Allowed[k]
}

// ApplyAll runs every allowed move over frontier: unary moves over each
// signature in declaration order, pairwise moves over every ordered pair
// (i != j) in declaration order, so result ordering is a deterministic
// function of frontier's ordering.
func (e *Engine) ApplyAll(frontier []*signature.Signature) []MoveResult {
	var out []MoveResult

	for _, sig := range frontier {
		if e.isAllowed(Dualize) {
			out = append(out, RunDualize(sig)...)
		}
		if e.isAllowed(Complete) {
			out = append(out, RunComplete(sig)...)
		}
		if e.isAllowed(Quotient) {
			out = append(out, RunQuotient(sig)...)
		}
		if e.isAllowed(Internalize) {
			out = append(out, RunInternalize(sig)...)
		}
		if e.isAllowed(Deform) {
			out = append(out, RunDeform(sig)...)
		}
		if e.isAllowed(SelfDistrib) {
			out = append(out, RunSelfDistrib(sig)...)
		}
	}

	for i, a := range frontier {
		for j, b := range frontier {
			if i == j {
				continue
			}
			if e.isAllowed(Abstract) {
				out = append(out, RunAbstract(a, b)...)
			}
			if e.isAllowed(Transfer) {
				out = append(out, RunTransfer(a, b)...)
			}
		}
	}

	return out
}
