package discovery

import (
	"testing"
	"time"

	"github.com/latticeforge/discovery/internal/scoring"
	"github.com/latticeforge/discovery/internal/seeds"
)

func TestDocumentRoundTrip(t *testing.T) {
	sig := seeds.Monoid()
	sig.WithDerivation("COMPLETE(identity, mul)")
	breakdown := scoring.Score(sig, nil, true, scoring.DefaultWeights())

	doc := New(sig, breakdown, "a test discovery", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "run-1")
	doc.ID = "fixed-id-for-test"

	back, err := FromMap(doc.ToMap())
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if back.ID != doc.ID || back.RunID != doc.RunID || back.Name != doc.Name || back.Fingerprint != doc.Fingerprint || back.Notes != doc.Notes {
		t.Errorf("round-trip mismatch: got %+v, want %+v", back, doc)
	}
	if back.Score != doc.Score {
		t.Errorf("Score = %f, want %f", back.Score, doc.Score)
	}
	if !back.CreatedAt.Equal(doc.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", back.CreatedAt, doc.CreatedAt)
	}
	if len(back.DerivationChain) != len(doc.DerivationChain) {
		t.Fatalf("DerivationChain length = %d, want %d", len(back.DerivationChain), len(doc.DerivationChain))
	}
	for i := range doc.DerivationChain {
		if back.DerivationChain[i] != doc.DerivationChain[i] {
			t.Errorf("DerivationChain[%d] = %q, want %q", i, back.DerivationChain[i], doc.DerivationChain[i])
		}
	}
	if back.ScoreBreakdown != doc.ScoreBreakdown {
		t.Errorf("ScoreBreakdown = %+v, want %+v", back.ScoreBreakdown, doc.ScoreBreakdown)
	}
	if !back.Signature.Equal(doc.Signature) {
		t.Error("Signature did not round-trip field-for-field")
	}
}

func TestNewDocumentGeneratesUniqueIDs(t *testing.T) {
	sig := seeds.Semigroup()
	b := scoring.Score(sig, nil, false, scoring.DefaultWeights())
	d1 := New(sig, b, "", time.Now(), "run-1")
	d2 := New(sig, b, "", time.Now(), "run-1")
	if d1.ID == d2.ID {
		t.Error("New should assign a fresh UUID per document")
	}
}
