package signature

import (
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
)

// ToMap produces a structural representation of s suitable for
// from_dict(to_dict(sig)) == sig round-tripping (spec.md section 8).
// internal/discovery embeds this same structural map in its documents;
// equations stay nested expression maps and are not rendered as strings.
func (s *Signature) ToMap() map[string]any {
	sorts := make([]any, len(s.Sorts))
	for i, sort := range s.Sorts {
		sorts[i] = map[string]any{"name": sort.Name, "description": sort.Description}
	}

	ops := make([]any, len(s.Operations))
	for i, op := range s.Operations {
		domain := make([]any, len(op.Domain))
		for j, d := range op.Domain {
			domain[j] = d
		}
		ops[i] = map[string]any{"name": op.Name, "domain": domain, "codomain": op.Codomain}
	}

	axioms := make([]any, len(s.Axioms))
	for i, ax := range s.Axioms {
		operations := make([]any, len(ax.Operations))
		for j, o := range ax.Operations {
			operations[j] = o
		}
		axioms[i] = map[string]any{
			"kind":        string(ax.Kind),
			"equation":    ax.Equation.ToMap(),
			"operations":  operations,
			"description": ax.Description,
		}
	}

	chain := make([]any, len(s.DerivationChain))
	for i, d := range s.DerivationChain {
		chain[i] = d
	}

	meta := make(map[string]any, len(s.Metadata))
	for k, v := range s.Metadata {
		meta[k] = v
	}

	return map[string]any{
		"name":             s.Name,
		"sorts":            sorts,
		"operations":       ops,
		"axioms":           axioms,
		"description":      s.Description,
		"derivation_chain": chain,
		"metadata":         meta,
	}
}

// FromMap reconstructs a Signature from a map produced by ToMap.
func FromMap(m map[string]any) (*Signature, error) {
	sig := New("")

	if name, ok := m["name"].(string); ok {
		sig.Name = name
	}
	if desc, ok := m["description"].(string); ok {
		sig.Description = desc
	}

	rawSorts, _ := m["sorts"].([]any)
	for _, raw := range rawSorts {
		sm, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("signature.FromMap: malformed sort entry")
		}
		name, _ := sm["name"].(string)
		desc, _ := sm["description"].(string)
		sig.Sorts = append(sig.Sorts, Sort{Name: name, Description: desc})
	}

	rawOps, _ := m["operations"].([]any)
	for _, raw := range rawOps {
		om, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("signature.FromMap: malformed operation entry")
		}
		name, _ := om["name"].(string)
		codomain, _ := om["codomain"].(string)
		rawDomain, _ := om["domain"].([]any)
		domain := make([]string, len(rawDomain))
		for i, d := range rawDomain {
			domain[i], _ = d.(string)
		}
		sig.Operations = append(sig.Operations, Operation{Name: name, Domain: domain, Codomain: codomain})
	}

	rawAxioms, _ := m["axioms"].([]any)
	for _, raw := range rawAxioms {
		am, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("signature.FromMap: malformed axiom entry")
		}
		kind, _ := am["kind"].(string)
		desc, _ := am["description"].(string)
		rawOperations, _ := am["operations"].([]any)
		operations := make([]string, len(rawOperations))
		for i, o := range rawOperations {
			operations[i], _ = o.(string)
		}
		eqMap, ok := am["equation"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("signature.FromMap: axiom missing equation")
		}
		eq, err := expr.FromMap(eqMap)
		if err != nil {
			return nil, fmt.Errorf("signature.FromMap: %w", err)
		}
		sig.Axioms = append(sig.Axioms, Axiom{
			Kind:        AxiomKind(kind),
			Equation:    eq,
			Operations:  operations,
			Description: desc,
		})
	}

	rawChain, _ := m["derivation_chain"].([]any)
	for _, d := range rawChain {
		if s, ok := d.(string); ok {
			sig.DerivationChain = append(sig.DerivationChain, s)
		}
	}

	rawMeta, _ := m["metadata"].(map[string]any)
	for k, v := range rawMeta {
		if s, ok := v.(string); ok {
			sig.Metadata[k] = s
		}
	}

	return sig, nil
}

// Equal reports field-wise equality of s and other, used to verify the
// from_dict(to_dict(sig)) == sig round-trip property.
func (s *Signature) Equal(other *Signature) bool {
	if s.Name != other.Name || s.Description != other.Description {
		return false
	}
	if len(s.Sorts) != len(other.Sorts) || len(s.Operations) != len(other.Operations) || len(s.Axioms) != len(other.Axioms) {
		return false
	}
	for i := range s.Sorts {
		if s.Sorts[i] != other.Sorts[i] {
			return false
		}
	}
	for i := range s.Operations {
		a, b := s.Operations[i], other.Operations[i]
		if a.Name != b.Name || a.Codomain != b.Codomain || len(a.Domain) != len(b.Domain) {
			return false
		}
		for j := range a.Domain {
			if a.Domain[j] != b.Domain[j] {
				return false
			}
		}
	}
	for i := range s.Axioms {
		a, b := s.Axioms[i], other.Axioms[i]
		if a.Kind != b.Kind || a.Description != b.Description || !a.Equation.Equal(b.Equation) {
			return false
		}
		if len(a.Operations) != len(b.Operations) {
			return false
		}
		for j := range a.Operations {
			if a.Operations[j] != b.Operations[j] {
				return false
			}
		}
	}
	if len(s.DerivationChain) != len(other.DerivationChain) {
		return false
	}
	for i := range s.DerivationChain {
		if s.DerivationChain[i] != other.DerivationChain[i] {
			return false
		}
	}
	if len(s.Metadata) != len(other.Metadata) {
		return false
	}
	for k, v := range s.Metadata {
		if other.Metadata[k] != v {
			return false
		}
	}
	return true
}
