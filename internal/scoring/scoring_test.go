package scoring

import (
	"math"
	"testing"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	total := w.Connectivity + w.Richness + w.Tension + w.Economy + w.Fertility +
		w.AxiomSynergy + w.HasModels + w.ModelDiversity + w.SpectrumPattern +
		w.SolverDifficulty + w.IsNovel + w.Distance
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("DefaultWeights sum = %f, want 1.0", total)
	}
}

func singleSorted() *signature.Signature {
	sig := signature.New("S")
	sig.Sorts = []signature.Sort{{Name: "A"}}
	sig.Operations = []signature.Operation{signature.Binary("f", "A")}
	sig.Axioms = []signature.Axiom{{Kind: signature.Associativity, Equation: expr.Associativity("f"), Operations: []string{"f"}}}
	return sig
}

func TestConnectivitySingleSortedIsHalf(t *testing.T) {
	if got := connectivity(singleSorted()); got != 0.5 {
		t.Errorf("connectivity(single-sorted) = %f, want 0.5", got)
	}
}

func TestConnectivityMultiSortedFullyTouched(t *testing.T) {
	sig := signature.New("Multi")
	sig.Sorts = []signature.Sort{{Name: "A"}, {Name: "B"}}
	sig.Operations = []signature.Operation{
		{Name: "f", Domain: []string{"A", "B"}, Codomain: "A"},
	}
	got := connectivity(sig)
	// both sorts mentioned (fracSorts=1), the one op touches 2 sorts (fracOps=1)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("connectivity(fully touched multi-sort) = %f, want 1.0", got)
	}
}

func TestRichnessPerfectRatioScoresOne(t *testing.T) {
	sig := signature.New("R")
	sig.Operations = []signature.Operation{signature.Binary("f", "A")}
	sig.Axioms = []signature.Axiom{{Kind: signature.Associativity, Equation: expr.Associativity("f"), Operations: []string{"f"}}}
	if got := richness(sig); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("richness(1 axiom, 1 op) = %f, want 1.0", got)
	}
}

func TestTensionNoAxiomsIsZero(t *testing.T) {
	sig := signature.New("Empty")
	if got := tension(sig); got != 0 {
		t.Errorf("tension(no axioms) = %f, want 0", got)
	}
}

func TestTensionCapsAtOne(t *testing.T) {
	sig := signature.New("Many")
	kinds := []signature.AxiomKind{
		signature.Associativity, signature.Commutativity, signature.Identity,
		signature.Inverse, signature.Distributivity, signature.Idempotence,
		signature.Jacobi, signature.Custom,
	}
	for _, k := range kinds {
		sig.Axioms = append(sig.Axioms, signature.Axiom{Kind: k, Equation: expr.Associativity("f"), Operations: []string{"f"}})
	}
	if got := tension(sig); got != 1.0 {
		t.Errorf("tension(8 distinct kinds) = %f, want 1.0 (capped)", got)
	}
}

func TestEconomySmallBand(t *testing.T) {
	sig := signature.New("Tiny")
	sig.Sorts = []signature.Sort{{Name: "A"}}
	if got := economy(sig); got != 0.4 {
		t.Errorf("economy(s=1) = %f, want 0.4", got)
	}
}

func TestFertilityCapsAtOne(t *testing.T) {
	sig := signature.New("Rich")
	sig.Sorts = []signature.Sort{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	sig.Operations = []signature.Operation{
		signature.Binary("f", "A"), signature.Binary("g", "A"), signature.Binary("h", "A"), signature.Binary("k", "A"),
	}
	if got := fertility(sig); got != 1.0 {
		t.Errorf("fertility(4 sorts, 4 binary ops) = %f, want 1.0", got)
	}
}

func TestAxiomSynergyFullSelfDistributive(t *testing.T) {
	sig := signature.New("SD")
	sig.Operations = []signature.Operation{signature.Binary("f", "A")}
	sig.Axioms = []signature.Axiom{
		{Kind: signature.SelfDistributivity, Equation: expr.LeftSelfDistributivity("f"), Operations: []string{"f"}},
		{Kind: signature.RightSelfDistrib, Equation: expr.RightSelfDistributivity("f"), Operations: []string{"f"}},
	}
	if got := axiomSynergy(sig); got != 1.0 {
		t.Errorf("axiomSynergy(full SD) = %f, want 1.0", got)
	}
}

func TestAxiomSynergyNoneIsZero(t *testing.T) {
	if got := axiomSynergy(singleSorted()); got != 0 {
		t.Errorf("axiomSynergy(associativity only) = %f, want 0", got)
	}
}

func TestHasModelsNilSpectrumIsZero(t *testing.T) {
	if got := hasModels(nil); got != 0 {
		t.Errorf("hasModels(nil) = %f, want 0", got)
	}
}

func TestHasModelsEmptyWithTimeoutIsHalf(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.TimedOutSizes[5] = struct{}{}
	if got := hasModels(spec); got != 0.5 {
		t.Errorf("hasModels(timed out, no models) = %f, want 0.5", got)
	}
}

func TestHasModelsWithModelIsOne(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[2] = []*signature.CayleyTable{signature.NewCayleyTable(2)}
	if got := hasModels(spec); got != 1.0 {
		t.Errorf("hasModels(has model) = %f, want 1.0", got)
	}
}

func TestModelDiversityNoModelsIsZero(t *testing.T) {
	spec := signature.NewModelSpectrum()
	if got := modelDiversity(singleSorted(), spec); got != 0 {
		t.Errorf("modelDiversity(empty) = %f, want 0", got)
	}
}

func TestModelDiversityFullCoverage(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[2] = []*signature.CayleyTable{signature.NewCayleyTable(2)}
	spec.Models[3] = []*signature.CayleyTable{signature.NewCayleyTable(3)}
	got := modelDiversity(singleSorted(), spec)
	if got <= 0 || got > 1 {
		t.Errorf("modelDiversity(contiguous sizes) = %f, want in (0, 1]", got)
	}
}

func TestModelDiversityPenalizesDuplicateModels(t *testing.T) {
	sig := singleSorted()
	table := signature.NewCayleyTable(3)
	table.Binary["f"] = [][]int{make([]int, 3), make([]int, 3), make([]int, 3)}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			table.Binary["f"][i][j] = (i + j) % 3
		}
	}
	dup := table.Clone()

	spec := signature.NewModelSpectrum()
	spec.Models[3] = []*signature.CayleyTable{table, dup}

	got := modelDiversity(sig, spec)
	if got <= 0 || got >= 1 {
		t.Errorf("modelDiversity(two identical models) = %f, want in (0, 1) since distinctness should pull it down", got)
	}
}

func TestSpectrumPatternPrimesOnly(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[2] = []*signature.CayleyTable{signature.NewCayleyTable(2)}
	spec.Models[3] = []*signature.CayleyTable{signature.NewCayleyTable(3)}
	spec.Models[5] = []*signature.CayleyTable{signature.NewCayleyTable(5)}
	if got := spectrumPattern(spec); got != 0.9 {
		t.Errorf("spectrumPattern({2,3,5}) = %f, want 0.9", got)
	}
}

func TestSpectrumPatternPowersOfTwo(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[4] = []*signature.CayleyTable{signature.NewCayleyTable(4)}
	spec.Models[8] = []*signature.CayleyTable{signature.NewCayleyTable(8)}
	if got := spectrumPattern(spec); got != 0.8 {
		t.Errorf("spectrumPattern({4,8}) = %f, want 0.8", got)
	}
}

func TestSpectrumPatternUnderTwoSizesIsZero(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[2] = []*signature.CayleyTable{signature.NewCayleyTable(2)}
	if got := spectrumPattern(spec); got != 0 {
		t.Errorf("spectrumPattern(single size) = %f, want 0", got)
	}
}

func TestSolverDifficultyNoTimeoutsFullPenalty(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.Models[2] = []*signature.CayleyTable{signature.NewCayleyTable(2)}
	spec.CheckedSizes[2] = struct{}{}
	if got := solverDifficulty(spec); got != 1.0 {
		t.Errorf("solverDifficulty(no timeouts, no flat counts) = %f, want 1.0", got)
	}
}

func TestSolverDifficultyAllTimedOutIsZero(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.TimedOutSizes[2] = struct{}{}
	spec.TimedOutSizes[3] = struct{}{}
	spec.CheckedSizes[2] = struct{}{}
	spec.CheckedSizes[3] = struct{}{}
	if got := solverDifficulty(spec); got != 0 {
		t.Errorf("solverDifficulty(all timed out) = %f, want 0", got)
	}
}

func TestSolverDifficultyCountsProvenEmptySizes(t *testing.T) {
	spec := signature.NewModelSpectrum()
	spec.CheckedSizes[2] = struct{}{}
	spec.CheckedSizes[3] = struct{}{}
	spec.TimedOutSizes[3] = struct{}{}
	if got := solverDifficulty(spec); got != 0.5 {
		t.Errorf("solverDifficulty(1 of 2 checked sizes timed out) = %f, want 0.5", got)
	}
}

func TestDistanceEmptyChainIsZero(t *testing.T) {
	sig := signature.New("Root")
	if got := distance(sig); got != 0 {
		t.Errorf("distance(no derivation) = %f, want 0", got)
	}
}

func TestDistanceGrowsWithChain(t *testing.T) {
	sig := signature.New("Derived")
	sig.WithDerivation("DUALIZE(mul)")
	sig.WithDerivation("COMPLETE(identity, mul)")
	got := distance(sig)
	if got <= 0 {
		t.Errorf("distance(2-entry chain with 2 distinct kinds) = %f, want > 0", got)
	}
}

func TestScoreTotalMatchesWeightedSum(t *testing.T) {
	sig := singleSorted()
	w := DefaultWeights()
	b := Score(sig, nil, true, w)
	want := b.Connectivity*w.Connectivity + b.Richness*w.Richness + b.Tension*w.Tension +
		b.Economy*w.Economy + b.Fertility*w.Fertility + b.AxiomSynergy*w.AxiomSynergy +
		b.HasModels*w.HasModels + b.ModelDiversity*w.ModelDiversity + b.SpectrumPattern*w.SpectrumPattern +
		b.SolverDifficulty*w.SolverDifficulty + b.IsNovel*w.IsNovel + b.Distance*w.Distance
	if math.Abs(b.Total-want) > 1e-9 {
		t.Errorf("Score.Total = %f, want %f", b.Total, want)
	}
}

func TestScoreWithNilSpectrumZeroesModelDimensions(t *testing.T) {
	b := Score(singleSorted(), nil, true, DefaultWeights())
	if b.HasModels != 0 || b.ModelDiversity != 0 || b.SpectrumPattern != 0 || b.SolverDifficulty != 0 {
		t.Error("model-theoretic dimensions must be exactly 0 when spectrum is nil")
	}
}
