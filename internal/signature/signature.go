package signature

import "fmt"

// Signature is a typed algebraic skeleton: sorts, typed operations, and
// equational axioms, with full move provenance. Signatures are owned by
// their producer (a seed constructor or the move engine); the pipeline
// holds a collection of owned candidates. Clone before mutating — moves
// must never alias a parent's slices.
type Signature struct {
	Name             string
	Sorts            []Sort
	Operations       []Operation
	Axioms           []Axiom
	Description      string
	DerivationChain  []string
	Metadata         map[string]string
}

// New constructs an empty, named signature ready for population.
func New(name string) *Signature {
	return &Signature{Name: name, Metadata: map[string]string{}}
}

// Clone performs a deep copy suitable as the entry point of a move: the
// parent is never mutated, and the child can append freely.
func (s *Signature) Clone() *Signature {
	sorts := make([]Sort, len(s.Sorts))
	copy(sorts, s.Sorts)

	ops := make([]Operation, len(s.Operations))
	for i, o := range s.Operations {
		ops[i] = o.Clone()
	}

	axioms := make([]Axiom, len(s.Axioms))
	for i, a := range s.Axioms {
		axioms[i] = a.Clone()
	}

	chain := make([]string, len(s.DerivationChain))
	copy(chain, s.DerivationChain)

	meta := make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}

	return &Signature{
		Name:            s.Name,
		Sorts:           sorts,
		Operations:      ops,
		Axioms:          axioms,
		Description:     s.Description,
		DerivationChain: chain,
		Metadata:        meta,
	}
}

// WithDerivation appends exactly one provenance entry and returns s for
// chaining. Every move must call this exactly once per produced child.
func (s *Signature) WithDerivation(entry string) *Signature {
	s.DerivationChain = append(s.DerivationChain, entry)
	return s
}

// HasSort reports whether name is a declared sort.
func (s *Signature) HasSort(name string) bool {
	for _, sort := range s.Sorts {
		if sort.Name == name {
			return true
		}
	}
	return false
}

// Operation looks up an operation by name.
func (s *Signature) Operation(name string) (Operation, bool) {
	for _, o := range s.Operations {
		if o.Name == name {
			return o, true
		}
	}
	return Operation{}, false
}

// BinaryOperations returns every operation of arity 2, in declaration order.
func (s *Signature) BinaryOperations() []Operation {
	var out []Operation
	for _, o := range s.Operations {
		if o.Arity() == 2 {
			out = append(out, o)
		}
	}
	return out
}

// AxiomKindsForOp returns the set of axiom kinds mentioning op.
func (s *Signature) AxiomKindsForOp(op string) map[AxiomKind]struct{} {
	out := make(map[AxiomKind]struct{})
	for _, a := range s.Axioms {
		if a.MentionsOp(op) {
			out[a.Kind] = struct{}{}
		}
	}
	return out
}

// HasAxiomKindForOp reports whether op already carries an axiom of kind k.
func (s *Signature) HasAxiomKindForOp(op string, k AxiomKind) bool {
	for _, a := range s.Axioms {
		if a.Kind == k && a.MentionsOp(op) {
			return true
		}
	}
	return false
}

// AllAxiomKinds returns the distinct set of axiom kinds present in s.
func (s *Signature) AllAxiomKinds() map[AxiomKind]struct{} {
	out := make(map[AxiomKind]struct{})
	for _, a := range s.Axioms {
		out[a.Kind] = struct{}{}
	}
	return out
}

// Validate checks the invariants of spec.md section 3:
//  1. every sort reference inside operations/axioms resolves;
//  2. every axiom's operation references resolve, with arity matching
//     the call sites used in its equation;
//  3. operation names are unique, sort names are unique, and every
//     axiom's operation list is non-empty.
func (s *Signature) Validate() error {
	sortNames := make(map[string]struct{}, len(s.Sorts))
	for _, sort := range s.Sorts {
		if _, dup := sortNames[sort.Name]; dup {
			return fmt.Errorf("signature %q: duplicate sort %q", s.Name, sort.Name)
		}
		sortNames[sort.Name] = struct{}{}
	}

	opNames := make(map[string]Operation, len(s.Operations))
	for _, op := range s.Operations {
		if _, dup := opNames[op.Name]; dup {
			return fmt.Errorf("signature %q: duplicate operation %q", s.Name, op.Name)
		}
		opNames[op.Name] = op
		for _, dom := range op.Domain {
			if _, ok := sortNames[dom]; !ok {
				return fmt.Errorf("signature %q: operation %q references undeclared sort %q", s.Name, op.Name, dom)
			}
		}
		if _, ok := sortNames[op.Codomain]; !ok {
			return fmt.Errorf("signature %q: operation %q references undeclared codomain sort %q", s.Name, op.Name, op.Codomain)
		}
	}

	for _, ax := range s.Axioms {
		if len(ax.Operations) == 0 {
			return fmt.Errorf("signature %q: axiom kind %s has empty operation list", s.Name, ax.Kind)
		}
		for _, opName := range ax.Operations {
			op, ok := opNames[opName]
			if !ok {
				return fmt.Errorf("signature %q: axiom kind %s references undeclared operation %q", s.Name, ax.Kind, opName)
			}
			if err := checkArities(ax.Equation, opNames); err != nil {
				return fmt.Errorf("signature %q: axiom kind %s over %q: %w", s.Name, ax.Kind, op.Name, err)
			}
		}
	}

	return nil
}
