package signature

import (
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// fingerprintPayload is the canonical serialization fed to the digest:
// sort count, sorted operation arities, sorted axiom kind names. Two
// signatures differing only in naming of sorts/operations/variables
// produce an identical payload and therefore an identical fingerprint.
type fingerprintPayload struct {
	Sorts      int      `json:"sorts"`
	OpArities  []int    `json:"op_arities"`
	AxiomKinds []string `json:"axiom_kinds"`
}

// Fingerprint returns the 16-hex-character fast-novelty digest of s. It
// is not an isomorphism oracle: distinct equations sharing the same kind
// set collide deliberately (spec.md section 4.2).
func (s *Signature) Fingerprint() string {
	arities := make([]int, len(s.Operations))
	for i, op := range s.Operations {
		arities[i] = op.Arity()
	}
	sort.Ints(arities)

	kindSet := s.AllAxiomKinds()
	kinds := make([]string, 0, len(kindSet))
	for k := range kindSet {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	payload := fingerprintPayload{
		Sorts:      len(s.Sorts),
		OpArities:  arities,
		AxiomKinds: kinds,
	}

	// encoding/json marshals struct fields in declaration order, giving a
	// stable, canonical byte representation for identical payload values.
	raw, err := json.Marshal(payload)
	if err != nil {
		// payload is composed entirely of ints/strings; Marshal cannot fail.
		panic(err)
	}

	digest := chainhash.DoubleHashB(raw)
	return hex.EncodeToString(digest[:8])
}
