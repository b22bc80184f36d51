// Package scoring implements the twelve-dimension interestingness
// evaluator: each dimension is a pure function of a signature (and,
// where noted, its model spectrum and novelty status) in [0,1], combined
// into a single weighted total.
//
// Calibrated Interestingness Score
//
// Replaces a single ad-hoc "is this interesting" heuristic with twelve
// independently weighted signals spanning structural shape
// (connectivity, richness, tension, economy, fertility, axiom_synergy),
// model-theoretic evidence (has_models, model_diversity,
// spectrum_pattern, solver_difficulty), and provenance (is_novel,
// distance). Default weights sum to 1.0.
package scoring

import (
	"math"

	"github.com/latticeforge/discovery/internal/cayley"
	"github.com/latticeforge/discovery/internal/signature"
)

// Weights assigns a coefficient to each of the twelve dimensions.
type Weights struct {
	Connectivity     float64
	Richness         float64
	Tension          float64
	Economy          float64
	Fertility        float64
	AxiomSynergy     float64
	HasModels        float64
	ModelDiversity   float64
	SpectrumPattern  float64
	SolverDifficulty float64
	IsNovel          float64
	Distance         float64
}

// DefaultWeights returns the calibrated baseline weights; they sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Connectivity:     0.05,
		Richness:         0.08,
		Tension:          0.08,
		Economy:          0.10,
		Fertility:        0.03,
		AxiomSynergy:     0.06,
		HasModels:        0.15,
		ModelDiversity:   0.10,
		SpectrumPattern:  0.10,
		SolverDifficulty: 0.05,
		IsNovel:          0.15,
		Distance:         0.05,
	}
}

// Breakdown holds each dimension's raw [0,1] value plus the weighted total.
type Breakdown struct {
	Connectivity     float64
	Richness         float64
	Tension          float64
	Economy          float64
	Fertility        float64
	AxiomSynergy     float64
	HasModels        float64
	ModelDiversity   float64
	SpectrumPattern  float64
	SolverDifficulty float64
	IsNovel          float64
	Distance         float64
	Total            float64
}

// moveKindNames mirrors internal/moves.Kind's eight values. Kept as a
// local constant slice rather than an import of internal/moves: scoring
// only needs the kind vocabulary for the "distance" dimension's
// substring count, not the move implementations themselves.
var moveKindNames = []string{
	"ABSTRACT", "DUALIZE", "COMPLETE", "QUOTIENT",
	"INTERNALIZE", "TRANSFER", "DEFORM", "SELF_DISTRIB",
}

// Score computes the full breakdown for sig. spectrum may be nil (no
// model-finding was attempted); when nil, the four model-theoretic
// dimensions are exactly 0. isNovel should come from a novelty store
// lookup of sig.Fingerprint() against the known-set.
func Score(sig *signature.Signature, spectrum *signature.ModelSpectrum, isNovel bool, w Weights) Breakdown {
	b := Breakdown{
		Connectivity:     connectivity(sig),
		Richness:         richness(sig),
		Tension:          tension(sig),
		Economy:          economy(sig),
		Fertility:        fertility(sig),
		AxiomSynergy:     axiomSynergy(sig),
		HasModels:        hasModels(spectrum),
		ModelDiversity:   modelDiversity(sig, spectrum),
		SpectrumPattern:  spectrumPattern(spectrum),
		SolverDifficulty: solverDifficulty(spectrum),
		IsNovel:          boolScore(isNovel),
		Distance:         distance(sig),
	}
	b.Total = b.Connectivity*w.Connectivity +
		b.Richness*w.Richness +
		b.Tension*w.Tension +
		b.Economy*w.Economy +
		b.Fertility*w.Fertility +
		b.AxiomSynergy*w.AxiomSynergy +
		b.HasModels*w.HasModels +
		b.ModelDiversity*w.ModelDiversity +
		b.SpectrumPattern*w.SpectrumPattern +
		b.SolverDifficulty*w.SolverDifficulty +
		b.IsNovel*w.IsNovel +
		b.Distance*w.Distance
	return b
}

// StructuralScore computes the cheap structural-only subset of Score
// (everything but has_models/model_diversity/spectrum_pattern/
// solver_difficulty) — the pipeline's first-phase filter before any
// finite-model search runs.
func StructuralScore(sig *signature.Signature, isNovel bool, w Weights) float64 {
	return connectivity(sig)*w.Connectivity +
		richness(sig)*w.Richness +
		tension(sig)*w.Tension +
		economy(sig)*w.Economy +
		fertility(sig)*w.Fertility +
		axiomSynergy(sig)*w.AxiomSynergy +
		boolScore(isNovel)*w.IsNovel +
		distance(sig)*w.Distance
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func connectivity(sig *signature.Signature) float64 {
	if len(sig.Sorts) <= 1 {
		return 0.5
	}

	mentioned := make(map[string]struct{})
	multiSortOps := 0
	for _, op := range sig.Operations {
		touched := make(map[string]struct{})
		for _, d := range op.Domain {
			mentioned[d] = struct{}{}
			touched[d] = struct{}{}
		}
		mentioned[op.Codomain] = struct{}{}
		touched[op.Codomain] = struct{}{}
		if len(touched) > 1 {
			multiSortOps++
		}
	}

	fracSorts := float64(len(mentioned)) / float64(len(sig.Sorts))
	if fracSorts > 1 {
		fracSorts = 1
	}
	fracOps := 0.0
	if len(sig.Operations) > 0 {
		fracOps = float64(multiSortOps) / float64(len(sig.Operations))
	}
	return (fracSorts + fracOps) / 2
}

func richness(sig *signature.Signature) float64 {
	denom := len(sig.Operations)
	if denom == 0 {
		denom = 1
	}
	r := float64(len(sig.Axioms)) / float64(denom)
	return math.Exp(-(r - 1) * (r - 1))
}

func tension(sig *signature.Signature) float64 {
	if len(sig.Axioms) == 0 {
		return 0
	}
	kinds := sig.AllAxiomKinds()
	v := float64(len(kinds)) / 6.0
	if v > 1 {
		v = 1
	}
	return v
}

func economy(sig *signature.Signature) float64 {
	s := len(sig.Sorts) + len(sig.Operations) + len(sig.Axioms)
	switch {
	case s <= 2:
		return 0.4
	case s <= 12:
		return 1.0 - math.Max(0, float64(s-5))*0.08
	default:
		return math.Max(0.1, 1.0-float64(s)*0.06)
	}
}

func fertility(sig *signature.Signature) float64 {
	sortsScore := math.Min(float64(len(sig.Sorts))/3.0, 1.0)
	binScore := math.Min(float64(len(sig.BinaryOperations()))/3.0, 1.0)
	return (sortsScore + binScore) / 2
}

func axiomSynergy(sig *signature.Signature) float64 {
	best := 0.0
	for _, op := range sig.BinaryOperations() {
		kinds := sig.AxiomKindsForOp(op.Name)
		_, hasSD := kinds[signature.SelfDistributivity]
		_, hasRSD := kinds[signature.RightSelfDistrib]
		_, hasIdem := kinds[signature.Idempotence]

		var score float64
		switch {
		case hasSD && hasRSD:
			score = 1.0
		case hasIdem && hasSD:
			score = 0.9
		default:
			score = 0.0
		}
		if score > best {
			best = score
		}
	}
	return best
}

func hasModels(spectrum *signature.ModelSpectrum) float64 {
	if spectrum == nil {
		return 0
	}
	if spectrum.HasAnyModel() {
		return 1.0
	}
	if len(spectrum.TimedOutSizes) > 0 {
		return 0.5
	}
	return 0.0
}

// modelDiversity blends three signals: how contiguous the sizes bearing
// models are (coverage), how many models the spectrum turned up on
// average (countScore), and how structurally distinct those models
// actually are from one another (distinctness) rather than relabelings
// of the same underlying structure. A spectrum with ten models at a
// size that are all isomorphic to each other is less interesting than
// one with ten genuinely different models, even though recordModel's
// exact-table dedup lets both through.
func modelDiversity(sig *signature.Signature, spectrum *signature.ModelSpectrum) float64 {
	if spectrum == nil {
		return 0
	}
	sizes := spectrum.SizesWithModels()
	if len(sizes) == 0 {
		return 0
	}
	minSize, maxSize := sizes[0], sizes[0]
	total := 0
	for _, n := range sizes {
		if n < minSize {
			minSize = n
		}
		if n > maxSize {
			maxSize = n
		}
		total += spectrum.CountAt(n)
	}
	coverage := float64(len(sizes)) / float64(maxSize-minSize+1)
	avg := float64(total) / float64(len(sizes))
	countScore := 1 - math.Exp(-avg/3)
	distinctness := meanModelDistinctness(sig, spectrum, sizes)
	return (coverage + countScore + distinctness) / 3
}

// meanModelDistinctness averages 1-ModelSimilarity over every pair of
// models at the same size, across every size that holds more than one
// model. Sizes holding a single model (nothing to compare) contribute
// nothing; a pair of tables sharing none of sig's binary operations
// still counts, as fully distinct (ModelSimilarity gives 0). Returns 1 when
// there's nothing to compare, since a spectrum with no duplicate risk
// shouldn't be penalized.
func meanModelDistinctness(sig *signature.Signature, spectrum *signature.ModelSpectrum, sizes []int) float64 {
	if sig == nil {
		return 1
	}
	ops := binaryOpNames(sig)
	if len(ops) == 0 {
		return 1
	}
	total := 0.0
	pairs := 0
	for _, n := range sizes {
		models := spectrum.Models[n]
		for i := 0; i < len(models); i++ {
			for j := i + 1; j < len(models); j++ {
				total += 1 - cayley.ModelSimilarity(models[i], models[j], ops)
				pairs++
			}
		}
	}
	if pairs == 0 {
		return 1
	}
	return total / float64(pairs)
}

func binaryOpNames(sig *signature.Signature) []string {
	ops := sig.BinaryOperations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

var primeSizes = map[int]struct{}{2: {}, 3: {}, 5: {}, 7: {}, 11: {}, 13: {}, 17: {}, 19: {}, 23: {}}
var powerOfTwoSizes = map[int]struct{}{1: {}, 2: {}, 4: {}, 8: {}, 16: {}, 32: {}}

func spectrumPattern(spectrum *signature.ModelSpectrum) float64 {
	if spectrum == nil {
		return 0
	}
	sizes := spectrum.SizesWithModels()
	if len(sizes) < 2 {
		return 0
	}

	if allIn(sizes, primeSizes) {
		return 0.9
	}
	if allIn(sizes, powerOfTwoSizes) {
		return 0.8
	}
	if isArithmeticOrGeometric(sizes) {
		return 0.7
	}
	if isStrictlyMonotoneCounts(spectrum, sizes) {
		return 0.5
	}
	return 0
}

func allIn(sizes []int, set map[int]struct{}) bool {
	for _, n := range sizes {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

func isArithmeticOrGeometric(sizes []int) bool {
	if len(sizes) < 3 {
		// two points always fit an arithmetic progression trivially;
		// spec requires >= 2 sizes, so treat 2-point sets as arithmetic
		return true
	}
	diff := sizes[1] - sizes[0]
	arithmetic := true
	for i := 2; i < len(sizes); i++ {
		if sizes[i]-sizes[i-1] != diff {
			arithmetic = false
			break
		}
	}
	if arithmetic {
		return true
	}
	if sizes[0] == 0 {
		return false
	}
	ratioOK := sizes[1]%sizes[0] == 0
	if !ratioOK {
		return false
	}
	ratio := sizes[1] / sizes[0]
	for i := 2; i < len(sizes); i++ {
		if sizes[i-1] == 0 || sizes[i]%sizes[i-1] != 0 || sizes[i]/sizes[i-1] != ratio {
			return false
		}
	}
	return true
}

func isStrictlyMonotoneCounts(spectrum *signature.ModelSpectrum, sizes []int) bool {
	for i := 1; i < len(sizes); i++ {
		if spectrum.CountAt(sizes[i]) <= spectrum.CountAt(sizes[i-1]) {
			return false
		}
	}
	return true
}

func solverDifficulty(spectrum *signature.ModelSpectrum) float64 {
	if spectrum == nil {
		return 0
	}

	checked := spectrum.CheckedSizes
	if len(checked) == 0 {
		return 0
	}

	timeoutRatio := float64(len(spectrum.TimedOutSizes)) / float64(len(checked))
	penaltyTimeout := 1 - timeoutRatio

	var nonZeroCounts []int
	for n := range checked {
		c := spectrum.CountAt(n)
		if c > 0 {
			nonZeroCounts = append(nonZeroCounts, c)
		}
	}
	penaltyFlat := 1.0
	if len(nonZeroCounts) >= 3 && allEqual(nonZeroCounts) {
		penaltyFlat = 0.7
	}

	return penaltyTimeout * penaltyFlat
}

func allEqual(xs []int) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func distance(sig *signature.Signature) float64 {
	chainScore := math.Min(float64(len(sig.DerivationChain))/5.0, 1.0)

	present := make(map[string]struct{})
	for _, entry := range sig.DerivationChain {
		for _, kind := range moveKindNames {
			if containsSubstring(entry, kind) {
				present[kind] = struct{}{}
			}
		}
	}
	kindScore := float64(len(present)) / 8.0

	return (chainScore + kindScore) / 2
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
