package cayley

import (
	"math"
	"testing"

	"github.com/latticeforge/discovery/internal/signature"
)

func TestVariationOfInformationIdentical(t *testing.T) {
	a := []int{0, 0, 1, 1, 2, 2}
	b := []int{0, 0, 1, 1, 2, 2}
	if vi := variationOfInformation(a, b); vi > 0.01 {
		t.Errorf("VI = %f, want ~0 for identical partitions", vi)
	}
}

func TestVariationOfInformationDiffers(t *testing.T) {
	a := []int{0, 0, 0, 1, 1, 1}
	b := []int{0, 1, 0, 1, 0, 1}
	if vi := variationOfInformation(a, b); vi < 0.1 {
		t.Errorf("VI = %f, want > 0 for dissimilar partitions", vi)
	}
}

func TestAdjustedRandIndexPerfectAgreement(t *testing.T) {
	a := []int{0, 0, 1, 1, 2, 2}
	b := []int{0, 0, 1, 1, 2, 2}
	if ari := adjustedRandIndex(a, b); math.Abs(ari-1.0) > 0.01 {
		t.Errorf("ARI = %f, want ~1.0", ari)
	}
}

func TestModelSimilarityIdenticalTablesIsOne(t *testing.T) {
	table := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"*": {
				{0, 1, 2},
				{1, 2, 0},
				{2, 0, 1},
			},
		},
	}
	sim := ModelSimilarity(table, table, []string{"*"})
	if math.Abs(sim-1.0) > 0.01 {
		t.Errorf("ModelSimilarity(t, t) = %f, want ~1.0", sim)
	}
}

func TestModelSimilarityMismatchedSizeIsZero(t *testing.T) {
	a := &signature.CayleyTable{Size: 2, Binary: map[string][][]int{"*": {{0, 1}, {1, 0}}}}
	b := &signature.CayleyTable{Size: 3, Binary: map[string][][]int{"*": {{0, 1, 2}, {1, 2, 0}, {2, 0, 1}}}}
	if sim := ModelSimilarity(a, b, []string{"*"}); sim != 0 {
		t.Errorf("ModelSimilarity(size 2, size 3) = %f, want 0", sim)
	}
}

func TestRowPartitionGroupsIdenticalRowMultisets(t *testing.T) {
	table := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"*": {
				{0, 1, 2},
				{1, 2, 0},
				{0, 1, 2},
			},
		},
	}
	labels := rowPartition(table, "*")
	if labels[0] != labels[2] {
		t.Errorf("rows 0 and 2 have identical multisets, want same label: got %v", labels)
	}
	if labels[0] == labels[1] {
		t.Errorf("row 1 has a distinct multiset from row 0, want different label: got %v", labels)
	}
}

func TestIsIsomorphicRejectsLatinSquareVsConstantTable(t *testing.T) {
	z3 := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"+": {
				{0, 1, 2},
				{1, 2, 0},
				{2, 0, 1},
			},
		},
	}
	constant := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"+": {
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
			},
		},
	}
	if IsIsomorphic(z3, constant, []string{"+"}) {
		t.Error("a Latin square and a constant table must not be isomorphic")
	}
}

func TestIsIsomorphicAcceptsRelabeledTable(t *testing.T) {
	z3 := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"+": {
				{0, 1, 2},
				{1, 2, 0},
				{2, 0, 1},
			},
		},
	}
	// Same group with 0 and 1 swapped throughout.
	relabeled := &signature.CayleyTable{
		Size: 3,
		Binary: map[string][][]int{
			"+": {
				{2, 0, 1},
				{0, 1, 2},
				{1, 2, 0},
			},
		},
	}
	if !IsIsomorphic(z3, relabeled, []string{"+"}) {
		t.Error("relabeling domain elements must preserve isomorphism")
	}
}
