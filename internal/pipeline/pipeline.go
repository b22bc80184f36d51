// Package pipeline drives the discovery loop: iterative deepening over a
// seed frontier, a cheap structural-score filter before any model search
// runs, then full scoring (model spectrum + novelty) over the surviving
// top-N candidates. The two-phase split exists because depth-2 exploration
// over a handful of seeds produces tens of thousands of candidates while
// model checking is exponential in domain size — scoring every candidate
// structurally first keeps the expensive phase bounded to Config.TopN.
//
// The optional worker pool over the model-checking phase is generalized
// from the teacher's internal/shadow.ShadowRunner dual-invocation shape
// (production vs. shadow heuristic run side by side per transaction) into
// N independent candidate solves running side by side, and its progress
// reporting is grounded on internal/scanner/block_scanner.go's
// ScanRange: atomic counters updated from worker goroutines, a
// cooperative ctx.Done() check between units of work, and periodic
// progress logging through the caller's own logger rather than the
// teacher's package-level log.Printf.
package pipeline

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/latticeforge/discovery/internal/modelfind"
	"github.com/latticeforge/discovery/internal/moves"
	"github.com/latticeforge/discovery/internal/novelty"
	"github.com/latticeforge/discovery/internal/scoring"
	"github.com/latticeforge/discovery/internal/signature"
	"github.com/latticeforge/discovery/internal/telemetry"
)

// Config governs one run of the pipeline: which moves to apply, how deep
// to iterate, the model-finder size range, the two-phase scoring knobs,
// and the optional worker count for the model-checking phase.
type Config struct {
	Depth            int
	AllowedMoves     []moves.Kind
	MinModelSize     int
	MaxModelSize     int
	MaxModelsPerSize int
	SolverTimeout    time.Duration
	ScoreThreshold   float64
	TopN             int
	Workers          int
	Weights          scoring.Weights
}

// DefaultConfig returns the baseline exploration parameters spec.md §4.7
// assumes (depth 2, domain sizes 1..6, top-N 200).
func DefaultConfig() Config {
	return Config{
		Depth:            2,
		MinModelSize:     1,
		MaxModelSize:     6,
		MaxModelsPerSize: 4,
		SolverTimeout:    2 * time.Second,
		ScoreThreshold:   0.2,
		TopN:             200,
		Workers:          0,
		Weights:          scoring.DefaultWeights(),
	}
}

// Candidate is one signature produced by the pipeline together with its
// provenance and, once the model-checking phase has run, its spectrum
// and full score.
type Candidate struct {
	Signature       *signature.Signature
	Move            moves.Kind
	Parents         []string
	Description     string
	StructuralScore float64
	Spectrum        *signature.ModelSpectrum
	Breakdown       scoring.Breakdown
}

// Progress is a snapshot of a run's counters, safe to read concurrently
// with the run in progress.
type Progress struct {
	Depth            int
	FrontierSize     int
	CandidatesEmitted int64
	CandidatesScored int64
	ModelsChecked    int64
}

// Pipeline runs the discovery loop against a novelty store and emits
// scored candidates.
type Pipeline struct {
	cfg     Config
	engine  *moves.Engine
	store   novelty.Store
	log     *telemetry.Logger

	candidatesEmitted atomic.Int64
	candidatesScored  atomic.Int64
	modelsChecked     atomic.Int64
	depth             atomic.Int64
	frontierSize      atomic.Int64
}

// New constructs a Pipeline. log may be nil (a no-op logger is used).
func New(cfg Config, store novelty.Store, log *telemetry.Logger) *Pipeline {
	if log == nil {
		log = telemetry.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		engine: moves.NewEngine(cfg.AllowedMoves...),
		store:  store,
		log:    log.Component("pipeline"),
	}
}

// Progress returns a snapshot of the run's counters.
func (p *Pipeline) Progress() Progress {
	return Progress{
		Depth:             int(p.depth.Load()),
		FrontierSize:      int(p.frontierSize.Load()),
		CandidatesEmitted: p.candidatesEmitted.Load(),
		CandidatesScored:  p.candidatesScored.Load(),
		ModelsChecked:     p.modelsChecked.Load(),
	}
}

// Run drives the iterative-deepening loop over seeds to cfg.Depth,
// structurally scores every produced candidate, keeps those at or above
// cfg.ScoreThreshold, takes the top cfg.TopN by structural score, runs
// the model finder over each (optionally parallelized across
// cfg.Workers goroutines), and returns every surviving candidate fully
// scored, sorted by total score descending. ctx cancellation is checked
// between moves-application rounds and between model-finder calls; a
// cancelled run returns whatever candidates were scored so far and a
// non-nil error.
func (p *Pipeline) Run(ctx context.Context, seeds []*signature.Signature) ([]Candidate, error) {
	frontier := seeds
	var allResults []moves.MoveResult

	for d := 1; d <= p.cfg.Depth; d++ {
		if err := ctx.Err(); err != nil {
			return p.finalize(ctx, allResults), err
		}

		p.depth.Store(int64(d))
		p.frontierSize.Store(int64(len(frontier)))
		p.log.Info("expanding frontier", zap.Int("depth", d), zap.Int("frontier_size", len(frontier)))

		results := p.engine.ApplyAll(frontier)
		p.candidatesEmitted.Add(int64(len(results)))
		allResults = append(allResults, results...)

		next := make([]*signature.Signature, 0, len(results))
		for _, r := range results {
			next = append(next, r.Signature)
		}
		frontier = next
	}

	return p.finalize(ctx, allResults), ctx.Err()
}

func (p *Pipeline) finalize(ctx context.Context, results []moves.MoveResult) []Candidate {
	known, _ := p.store.Known(ctx)

	structural := make([]Candidate, 0, len(results))
	for _, r := range results {
		isNovel := true
		if known != nil {
			_, seen := known[r.Signature.Fingerprint()]
			isNovel = !seen
		}
		s := scoring.StructuralScore(r.Signature, isNovel, p.cfg.Weights)
		p.candidatesScored.Add(1)
		if s < p.cfg.ScoreThreshold {
			continue
		}
		structural = append(structural, Candidate{
			Signature:       r.Signature,
			Move:            r.Kind,
			Parents:         r.Parents,
			Description:     r.Description,
			StructuralScore: s,
		})
	}

	sort.Slice(structural, func(i, j int) bool {
		return structural[i].StructuralScore > structural[j].StructuralScore
	})
	if len(structural) > p.cfg.TopN {
		dropped := len(structural) - p.cfg.TopN
		p.log.Info("dropping candidates below top-N", zap.Int("dropped", dropped), zap.Int("top_n", p.cfg.TopN))
		structural = structural[:p.cfg.TopN]
	}

	p.modelCheck(ctx, structural, known)

	sort.Slice(structural, func(i, j int) bool {
		return structural[i].Breakdown.Total > structural[j].Breakdown.Total
	})
	return structural
}

// modelCheck runs the finite-model finder over every candidate and
// assigns its full score in place. With cfg.Workers <= 0 this runs
// sequentially; otherwise it fans out across a bounded worker pool,
// mirroring the teacher's ShadowRunner running production and shadow
// heuristics side by side rather than one at a time.
func (p *Pipeline) modelCheck(ctx context.Context, candidates []Candidate, known map[string]struct{}) {
	opts := modelfind.Options{MaxModels: p.cfg.MaxModelsPerSize, NodeBudget: modelfind.DefaultOptions().NodeBudget}

	work := func(i int) {
		c := &candidates[i]
		callCtx := ctx
		var cancel context.CancelFunc
		if p.cfg.SolverTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.cfg.SolverTimeout)
			defer cancel()
		}
		spectrum := modelfind.ComputeSpectrum(callCtx, c.Signature, p.cfg.MinModelSize, p.cfg.MaxModelSize, opts)
		p.modelsChecked.Add(1)

		isNovel := true
		if known != nil {
			_, seen := known[c.Signature.Fingerprint()]
			isNovel = !seen
		}
		c.Spectrum = spectrum
		c.Breakdown = scoring.Score(c.Signature, spectrum, isNovel, p.cfg.Weights)
	}

	if p.cfg.Workers <= 0 {
		for i := range candidates {
			if ctx.Err() != nil {
				return
			}
			work(i)
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				work(i)
			}
		}()
	}
	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
