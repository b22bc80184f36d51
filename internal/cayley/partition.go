package cayley

import (
	"math"

	"github.com/latticeforge/discovery/internal/signature"
)

// rowPartition labels each row of op's table by the sorted multiset of
// values it contains, so two rows get the same label exactly when they
// contain the same values with the same multiplicities. Any isomorphism
// between two tables must map rows onto rows with matching labels, so
// this partition is an isomorphism invariant: isomorphic tables always
// induce VI-identical row partitions (up to label renaming), though the
// converse doesn't hold.
func rowPartition(t *signature.CayleyTable, op string) []int {
	table, ok := t.Binary[op]
	if !ok {
		return nil
	}
	labels := make([]int, len(table))
	seen := make(map[string]int)
	for i, row := range table {
		key := multisetKey(row)
		id, ok := seen[key]
		if !ok {
			id = len(seen)
			seen[key] = id
		}
		labels[i] = id
	}
	return labels
}

func multisetKey(row []int) string {
	counts := make(map[int]int, len(row))
	for _, v := range row {
		counts[v]++
	}
	key := make([]byte, 0, len(row)*2)
	for v := 0; v < len(row); v++ {
		if c, ok := counts[v]; ok {
			key = append(key, byte(v), byte(c))
		}
	}
	return string(key)
}

// variationOfInformation computes the VI distance between two partitions
// of the same n elements, encoded as per-index class labels. VI is an
// information-theoretic distance: 0 for identical partitions, larger as
// two partitions diverge.
//
// VI(C, C') = H(C|C') + H(C'|C), the sum of conditional entropies.
func variationOfInformation(predicted, groundTruth []int) float64 {
	n := len(predicted)
	if n != len(groundTruth) || n < 2 {
		return 0.0
	}
	nf := float64(n)

	predLabels := uniqueLabels(predicted)
	gtLabels := uniqueLabels(groundTruth)

	predMap := make(map[int]int, len(predLabels))
	for i, l := range predLabels {
		predMap[l] = i
	}
	gtMap := make(map[int]int, len(gtLabels))
	for i, l := range gtLabels {
		gtMap[l] = i
	}

	nij := make([][]int, len(predLabels))
	for i := range nij {
		nij[i] = make([]int, len(gtLabels))
	}
	for k := 0; k < n; k++ {
		nij[predMap[predicted[k]]][gtMap[groundTruth[k]]]++
	}

	rowSums := make([]int, len(predLabels))
	colSums := make([]int, len(gtLabels))
	for i := range nij {
		for j := range nij[i] {
			rowSums[i] += nij[i][j]
			colSums[j] += nij[i][j]
		}
	}

	hCgivenCp := 0.0
	for i := range nij {
		for j := range nij[i] {
			if nij[i][j] > 0 && colSums[j] > 0 {
				pij := float64(nij[i][j]) / nf
				hCgivenCp -= pij * math.Log2(float64(nij[i][j])/float64(colSums[j]))
			}
		}
	}

	hCpgivenC := 0.0
	for i := range nij {
		for j := range nij[i] {
			if nij[i][j] > 0 && rowSums[i] > 0 {
				pij := float64(nij[i][j]) / nf
				hCpgivenC -= pij * math.Log2(float64(nij[i][j])/float64(rowSums[i]))
			}
		}
	}

	return hCgivenCp + hCpgivenC
}

// ModelSimilarity scores how structurally alike two same-size models of
// the same signature are, by averaging the Adjusted Rand Index of their
// row partitions (see rowPartition) over every named operation they
// share. 1.0 means every operation's rows group identically; values near
// 0 mean the two tables partition their rows in essentially unrelated
// ways. Used by the scoring package's modelDiversity to tell a spectrum containing several
// genuinely different models of a size apart from one padded with
// near-duplicates.
func ModelSimilarity(a, b *signature.CayleyTable, ops []string) float64 {
	if a.Size != b.Size || len(ops) == 0 {
		return 0
	}
	total := 0.0
	counted := 0
	for _, op := range ops {
		_, okA := a.Binary[op]
		_, okB := b.Binary[op]
		if !okA || !okB {
			continue
		}
		total += adjustedRandIndex(rowPartition(a, op), rowPartition(b, op))
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// adjustedRandIndex computes the Adjusted Rand Index between two
// partitions: 1.0 for perfect agreement, ~0.0 for independent random
// partitions, -1 for systematically opposed ones.
func adjustedRandIndex(predicted, groundTruth []int) float64 {
	n := len(predicted)
	if n != len(groundTruth) || n < 2 {
		return 0.0
	}

	predLabels := uniqueLabels(predicted)
	gtLabels := uniqueLabels(groundTruth)

	predMap := make(map[int]int, len(predLabels))
	for i, l := range predLabels {
		predMap[l] = i
	}
	gtMap := make(map[int]int, len(gtLabels))
	for i, l := range gtLabels {
		gtMap[l] = i
	}

	nij := make([][]int, len(predLabels))
	for i := range nij {
		nij[i] = make([]int, len(gtLabels))
	}
	for k := 0; k < n; k++ {
		nij[predMap[predicted[k]]][gtMap[groundTruth[k]]]++
	}

	rowSums := make([]int, len(predLabels))
	colSums := make([]int, len(gtLabels))
	for i := range nij {
		for j := range nij[i] {
			rowSums[i] += nij[i][j]
			colSums[j] += nij[i][j]
		}
	}

	sumNijC2 := 0.0
	for i := range nij {
		for j := range nij[i] {
			sumNijC2 += comb2(nij[i][j])
		}
	}
	sumAiC2 := 0.0
	for _, a := range rowSums {
		sumAiC2 += comb2(a)
	}
	sumBjC2 := 0.0
	for _, b := range colSums {
		sumBjC2 += comb2(b)
	}

	nC2 := comb2(n)
	if nC2 == 0 {
		return 0.0
	}

	expectedIndex := (sumAiC2 * sumBjC2) / nC2
	maxIndex := 0.5 * (sumAiC2 + sumBjC2)

	denominator := maxIndex - expectedIndex
	if math.Abs(denominator) < 1e-12 {
		return 1.0
	}
	return (sumNijC2 - expectedIndex) / denominator
}

func comb2(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(n) * float64(n-1) / 2.0
}

func uniqueLabels(labels []int) []int {
	seen := make(map[int]bool, len(labels))
	var result []int
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			result = append(result, l)
		}
	}
	return result
}
