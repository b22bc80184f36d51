package signature

import "sort"

// CayleyTable is a finite model of a signature at a fixed domain size:
// every binary operation as an n x n matrix of domain indices, every
// unary operation as a length-n vector, and every constant as a single
// index, all in [0, n).
type CayleyTable struct {
	Size     int
	Binary   map[string][][]int
	Unary    map[string][]int
	Constant map[string]int
}

// NewCayleyTable allocates an empty table of the given size.
func NewCayleyTable(n int) *CayleyTable {
	return &CayleyTable{
		Size:     n,
		Binary:   make(map[string][][]int),
		Unary:    make(map[string][]int),
		Constant: make(map[string]int),
	}
}

// Clone returns a deep copy.
func (t *CayleyTable) Clone() *CayleyTable {
	cp := NewCayleyTable(t.Size)
	for name, table := range t.Binary {
		rows := make([][]int, len(table))
		for i, row := range table {
			rows[i] = append([]int(nil), row...)
		}
		cp.Binary[name] = rows
	}
	for name, vec := range t.Unary {
		cp.Unary[name] = append([]int(nil), vec...)
	}
	for name, idx := range t.Constant {
		cp.Constant[name] = idx
	}
	return cp
}

// Equal reports whether t and other assign identical values to every
// cell of every operation table.
func (t *CayleyTable) Equal(other *CayleyTable) bool {
	if t.Size != other.Size {
		return false
	}
	if len(t.Binary) != len(other.Binary) || len(t.Unary) != len(other.Unary) || len(t.Constant) != len(other.Constant) {
		return false
	}
	for name, table := range t.Binary {
		otherTable, ok := other.Binary[name]
		if !ok {
			return false
		}
		for i, row := range table {
			for j, v := range row {
				if otherTable[i][j] != v {
					return false
				}
			}
		}
	}
	for name, vec := range t.Unary {
		otherVec, ok := other.Unary[name]
		if !ok {
			return false
		}
		for i, v := range vec {
			if otherVec[i] != v {
				return false
			}
		}
	}
	for name, idx := range t.Constant {
		otherIdx, ok := other.Constant[name]
		if !ok || otherIdx != idx {
			return false
		}
	}
	return true
}

// ModelSpectrum maps domain size to the models found at that size, and
// records sizes where the finder timed out without a definitive answer
// (distinguishing "proven empty" from "inconclusive"). CheckedSizes
// records every size the finder actually attempted, regardless of
// outcome — including sizes proven to have zero models, which never
// get an entry in Models since that map only holds sizes with at
// least one result. Callers that need "how many sizes did we actually
// search" (as opposed to "how many sizes turned up a model") must use
// CheckedSizes, not len(Models).
type ModelSpectrum struct {
	Models        map[int][]*CayleyTable
	TimedOutSizes map[int]struct{}
	CheckedSizes  map[int]struct{}
}

// NewModelSpectrum allocates an empty spectrum.
func NewModelSpectrum() *ModelSpectrum {
	return &ModelSpectrum{
		Models:        make(map[int][]*CayleyTable),
		TimedOutSizes: make(map[int]struct{}),
		CheckedSizes:  make(map[int]struct{}),
	}
}

// CountAt returns the number of models found at size n.
func (m *ModelSpectrum) CountAt(n int) int { return len(m.Models[n]) }

// HasAnyModel reports whether the spectrum contains at least one model
// at any size.
func (m *ModelSpectrum) HasAnyModel() bool {
	for _, models := range m.Models {
		if len(models) > 0 {
			return true
		}
	}
	return false
}

// SizesWithModels returns, in ascending order, every size with at least
// one model.
func (m *ModelSpectrum) SizesWithModels() []int {
	var out []int
	for n, models := range m.Models {
		if len(models) > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// TimedOut reports whether size n was recorded as inconclusive.
func (m *ModelSpectrum) TimedOut(n int) bool {
	_, ok := m.TimedOutSizes[n]
	return ok
}
