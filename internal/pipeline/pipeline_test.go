package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/latticeforge/discovery/internal/moves"
	"github.com/latticeforge/discovery/internal/novelty"
	"github.com/latticeforge/discovery/internal/seeds"
	"github.com/latticeforge/discovery/internal/signature"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Depth = 1
	cfg.MinModelSize = 1
	cfg.MaxModelSize = 2
	cfg.MaxModelsPerSize = 2
	cfg.SolverTimeout = 500 * time.Millisecond
	cfg.ScoreThreshold = 0
	cfg.TopN = 50
	return cfg
}

func TestRunProducesScoredCandidates(t *testing.T) {
	p := New(smallConfig(), novelty.NewMemStore(), nil)
	seedList := []*signature.Signature{seeds.Semigroup()}

	candidates, err := p.Run(context.Background(), seedList)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate from a single move-engine pass over Semigroup")
	}
	for _, c := range candidates {
		if c.Signature == nil {
			t.Error("candidate has nil signature")
		}
		if c.Spectrum == nil {
			t.Errorf("candidate %s has no spectrum after model-check phase", c.Signature.Name)
		}
		if c.Breakdown.Total < 0 || c.Breakdown.Total > 1.001 {
			t.Errorf("candidate %s total score out of range: %f", c.Signature.Name, c.Breakdown.Total)
		}
	}
}

func TestRunSortsCandidatesByTotalScoreDescending(t *testing.T) {
	p := New(smallConfig(), novelty.NewMemStore(), nil)
	seedList := []*signature.Signature{seeds.Semigroup(), seeds.Monoid()}

	candidates, err := p.Run(context.Background(), seedList)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Breakdown.Total > candidates[i-1].Breakdown.Total {
			t.Errorf("candidates not sorted descending at index %d: %f > %f",
				i, candidates[i].Breakdown.Total, candidates[i-1].Breakdown.Total)
		}
	}
}

func TestRunRespectsScoreThreshold(t *testing.T) {
	cfg := smallConfig()
	cfg.ScoreThreshold = 2.0 // unreachable: every structural score is <= 1
	p := New(cfg, novelty.NewMemStore(), nil)

	candidates, err := p.Run(context.Background(), []*signature.Signature{seeds.Semigroup()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates to survive an unreachable threshold, got %d", len(candidates))
	}
}

func TestRunRespectsTopN(t *testing.T) {
	cfg := smallConfig()
	cfg.TopN = 1
	p := New(cfg, novelty.NewMemStore(), nil)

	candidates, err := p.Run(context.Background(), []*signature.Signature{seeds.Semigroup(), seeds.Monoid(), seeds.Group()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(candidates) > 1 {
		t.Errorf("len(candidates) = %d, want <= 1 (TopN)", len(candidates))
	}
}

func TestRunWithWorkerPoolMatchesSequentialCandidateCount(t *testing.T) {
	seedList := []*signature.Signature{seeds.Semigroup(), seeds.Monoid()}

	seqCfg := smallConfig()
	seqCfg.Workers = 0
	seqResult, err := New(seqCfg, novelty.NewMemStore(), nil).Run(context.Background(), seedList)
	if err != nil {
		t.Fatalf("sequential Run() error = %v", err)
	}

	parCfg := smallConfig()
	parCfg.Workers = 4
	parResult, err := New(parCfg, novelty.NewMemStore(), nil).Run(context.Background(), seedList)
	if err != nil {
		t.Fatalf("parallel Run() error = %v", err)
	}

	if len(seqResult) != len(parResult) {
		t.Errorf("sequential found %d candidates, parallel found %d", len(seqResult), len(parResult))
	}
}

func TestRunRespectsCancelledContext(t *testing.T) {
	p := New(smallConfig(), novelty.NewMemStore(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, []*signature.Signature{seeds.Semigroup()})
	if err == nil {
		t.Error("expected an error from Run() on an already-cancelled context")
	}
}

func TestDefaultConfigAllowsEveryMoveByDefault(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.AllowedMoves) != 0 {
		t.Errorf("DefaultConfig().AllowedMoves = %v, want empty (meaning: allow all)", cfg.AllowedMoves)
	}
	e := moves.NewEngine(cfg.AllowedMoves...)
	if len(e.ApplyAll([]*signature.Signature{seeds.Semigroup()})) == 0 {
		t.Error("expected at least one move result with every move allowed")
	}
}
