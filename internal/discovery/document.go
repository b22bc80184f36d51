// Package discovery defines the persisted discovery document: the
// top-level record a pipeline run emits for one scored candidate,
// serialized at the API/storage boundary. Grounded on the teacher's
// pkg/models.PrivacyAnalysisResult — its own top-level persisted result
// document — generalized from a transaction-analysis result to a
// signature-discovery result.
package discovery

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/latticeforge/discovery/internal/scoring"
	"github.com/latticeforge/discovery/internal/signature"
)

// Document is the persisted, serializable record of one discovered
// signature: its full structure, provenance, and score.
type Document struct {
	ID              string
	RunID           string
	Name            string
	Signature       *signature.Signature
	DerivationChain []string
	Score           float64
	ScoreBreakdown  scoring.Breakdown
	Fingerprint     string
	Notes           string
	CreatedAt       time.Time
}

// New builds a Document from a scored signature. id is generated fresh;
// callers that need deterministic IDs (tests, replays) should set d.ID
// directly afterward. runID identifies the exploration run that
// produced it, so subscribers can scope a websocket feed to one run.
func New(sig *signature.Signature, breakdown scoring.Breakdown, notes string, createdAt time.Time, runID string) *Document {
	return &Document{
		ID:              uuid.NewString(),
		RunID:           runID,
		Name:            sig.Name,
		Signature:       sig,
		DerivationChain: append([]string(nil), sig.DerivationChain...),
		Score:           breakdown.Total,
		ScoreBreakdown:  breakdown,
		Fingerprint:     sig.Fingerprint(),
		Notes:           notes,
		CreatedAt:       createdAt,
	}
}

// ToMap renders d as the JSON-ready structure of spec.md section 6: id,
// name, signature (the structural map from Signature.ToMap; axiom
// equations are nested expression maps, not rendered strings),
// derivation_chain, score, full score_breakdown, fingerprint, notes.
func (d *Document) ToMap() map[string]any {
	chain := make([]any, len(d.DerivationChain))
	for i, c := range d.DerivationChain {
		chain[i] = c
	}
	return map[string]any{
		"id":               d.ID,
		"run_id":           d.RunID,
		"name":             d.Name,
		"signature":        d.Signature.ToMap(),
		"derivation_chain": chain,
		"score":            d.Score,
		"score_breakdown":  breakdownToMap(d.ScoreBreakdown),
		"fingerprint":      d.Fingerprint,
		"notes":            d.Notes,
		"created_at":       d.CreatedAt.Format(time.RFC3339Nano),
	}
}

// FromMap reconstructs a Document from a map produced by ToMap.
func FromMap(m map[string]any) (*Document, error) {
	sigMap, ok := m["signature"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("discovery.FromMap: missing signature")
	}
	sig, err := signature.FromMap(sigMap)
	if err != nil {
		return nil, fmt.Errorf("discovery.FromMap: %w", err)
	}

	d := &Document{Signature: sig}
	d.ID, _ = m["id"].(string)
	d.RunID, _ = m["run_id"].(string)
	d.Name, _ = m["name"].(string)
	d.Fingerprint, _ = m["fingerprint"].(string)
	d.Notes, _ = m["notes"].(string)
	if score, ok := m["score"].(float64); ok {
		d.Score = score
	}

	rawChain, _ := m["derivation_chain"].([]any)
	for _, c := range rawChain {
		if s, ok := c.(string); ok {
			d.DerivationChain = append(d.DerivationChain, s)
		}
	}

	if bm, ok := m["score_breakdown"].(map[string]any); ok {
		d.ScoreBreakdown = breakdownFromMap(bm)
	}

	if ts, ok := m["created_at"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			d.CreatedAt = parsed
		}
	}

	return d, nil
}

func breakdownToMap(b scoring.Breakdown) map[string]any {
	return map[string]any{
		"connectivity":      b.Connectivity,
		"richness":          b.Richness,
		"tension":           b.Tension,
		"economy":           b.Economy,
		"fertility":         b.Fertility,
		"axiom_synergy":     b.AxiomSynergy,
		"has_models":        b.HasModels,
		"model_diversity":   b.ModelDiversity,
		"spectrum_pattern":  b.SpectrumPattern,
		"solver_difficulty": b.SolverDifficulty,
		"is_novel":          b.IsNovel,
		"distance":          b.Distance,
		"total":             b.Total,
	}
}

func breakdownFromMap(m map[string]any) scoring.Breakdown {
	get := func(key string) float64 {
		if v, ok := m[key].(float64); ok {
			return v
		}
		return 0
	}
	return scoring.Breakdown{
		Connectivity:     get("connectivity"),
		Richness:         get("richness"),
		Tension:          get("tension"),
		Economy:          get("economy"),
		Fertility:        get("fertility"),
		AxiomSynergy:     get("axiom_synergy"),
		HasModels:        get("has_models"),
		ModelDiversity:   get("model_diversity"),
		SpectrumPattern:  get("spectrum_pattern"),
		SolverDifficulty: get("solver_difficulty"),
		IsNovel:          get("is_novel"),
		Distance:         get("distance"),
		Total:            get("total"),
	}
}
