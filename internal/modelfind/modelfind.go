// Package modelfind implements the finite-model finder: given a
// signature and a domain size n, it searches for Cayley-table models
// satisfying every axiom.
//
// Bounded Backtracking Model Search
//
// The finder is not a general SMT solver — it is a constrained
// backtracking search over the finite space of operation-table cell
// assignments, in the same spirit as the teacher's CP-SAT backtracking
// matcher: assign one cell at a time, check every axiom whose operands
// are now fully assigned, and prune immediately on violation rather than
// waiting for a complete table. A lex-leader symmetry-breaking
// constraint collapses permutation-equivalent tables for "heavy"
// signatures, and a node-visit budget stands in for a wall-clock
// timeout so the search always terminates.
//
// References: the solver structure mirrors
// internal/heuristics/cpsat_solver.go's backtracking-with-pruning shape
// and internal/heuristics/dp_solver.go's guardrail-then-search idiom.
package modelfind

import (
	"context"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/signature"
)

// heavyKinds is the set of axiom kinds that make a signature "heavy"
// per spec — distributivity-flavored axioms that benefit from lex-leader
// symmetry breaking on the first binary operation's first row.
var heavyKinds = map[signature.AxiomKind]struct{}{
	signature.SelfDistributivity: {},
	signature.RightSelfDistrib:   {},
	signature.Distributivity:     {},
	signature.Jacobi:             {},
}

// IsHeavy reports whether sig is single-sorted, carries no CUSTOM axiom,
// and has at least one axiom of a heavy kind.
func IsHeavy(sig *signature.Signature) bool {
	if len(sig.Sorts) != 1 {
		return false
	}
	found := false
	for _, ax := range sig.Axioms {
		if ax.Kind == signature.Custom {
			return false
		}
		if _, ok := heavyKinds[ax.Kind]; ok {
			found = true
		}
	}
	return found
}

// Options bounds a single-size search.
type Options struct {
	MaxModels  int // stop once this many distinct models are collected
	NodeBudget int // backtracking node-visit ceiling standing in for a wall-clock timeout
}

// DefaultOptions returns a reasonable bound for interactive exploration.
func DefaultOptions() Options {
	return Options{MaxModels: 4, NodeBudget: 2_000_000}
}

type cell struct {
	opName   string
	arity    int
	i, j     int // only meaningful for arity 1 (i) and arity 2 (i, j)
	boundary bool // true on the last cell of its operation's table
}

// solver holds the mutable search state for one SolveAt call.
type solver struct {
	ctx      context.Context
	sig      *signature.Signature
	n        int
	opts     Options
	cells    []cell
	table    *signature.CayleyTable
	heavy    bool
	firstBin string
	models   []*signature.CayleyTable
	nodes    int
	timedOut bool
}

// SolveAt searches for up to opts.MaxModels distinct Cayley-table models
// of sig at domain size n. Returns the models found and whether the
// search was cut short by the node budget or ctx cancellation before it
// could prove there were no more.
func SolveAt(ctx context.Context, sig *signature.Signature, n int, opts Options) ([]*signature.CayleyTable, bool) {
	if n <= 0 {
		return nil, false
	}

	s := &solver{
		ctx:   ctx,
		sig:   sig,
		n:     n,
		opts:  opts,
		table: signature.NewCayleyTable(n),
		heavy: IsHeavy(sig),
	}
	s.cells = buildCells(sig, n)
	for _, op := range sig.BinaryOperations() {
		s.firstBin = op.Name
		break
	}
	s.initTable()

	s.backtrack(0)

	return s.models, s.timedOut
}

// ComputeSpectrum iterates domain sizes minN..maxN inclusive, solving
// independently at each size, and assembles the results into a
// ModelSpectrum.
func ComputeSpectrum(ctx context.Context, sig *signature.Signature, minN, maxN int, opts Options) *signature.ModelSpectrum {
	spectrum := signature.NewModelSpectrum()
	for n := minN; n <= maxN; n++ {
		models, timedOut := SolveAt(ctx, sig, n, opts)
		spectrum.CheckedSizes[n] = struct{}{}
		if len(models) > 0 {
			spectrum.Models[n] = models
		}
		if timedOut {
			spectrum.TimedOutSizes[n] = struct{}{}
		}
		if ctx != nil && ctx.Err() != nil {
			break
		}
	}
	return spectrum
}

func buildCells(sig *signature.Signature, n int) []cell {
	var cells []cell
	for _, op := range sig.Operations {
		switch op.Arity() {
		case 0:
			cells = append(cells, cell{opName: op.Name, arity: 0, boundary: true})
		case 1:
			for i := 0; i < n; i++ {
				cells = append(cells, cell{opName: op.Name, arity: 1, i: i, boundary: i == n-1})
			}
		case 2:
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					cells = append(cells, cell{opName: op.Name, arity: 2, i: i, j: j, boundary: i == n-1 && j == n-1})
				}
			}
		}
	}
	return cells
}

func (s *solver) initTable() {
	for _, op := range s.sig.Operations {
		switch op.Arity() {
		case 0:
			s.table.Constant[op.Name] = -1
		case 1:
			s.table.Unary[op.Name] = make([]int, s.n)
			for i := range s.table.Unary[op.Name] {
				s.table.Unary[op.Name][i] = -1
			}
		case 2:
			rows := make([][]int, s.n)
			for i := range rows {
				row := make([]int, s.n)
				for j := range row {
					row[j] = -1
				}
				rows[i] = row
			}
			s.table.Binary[op.Name] = rows
		}
	}
}

// backtrack assigns cells[idx:] and checks newly-determined axioms at
// each operation boundary. Returns true if the search should stop
// entirely (budget exhausted, model quota reached, or context done).
func (s *solver) backtrack(idx int) bool {
	s.nodes++
	if s.nodes > s.opts.NodeBudget {
		s.timedOut = true
		return true
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.timedOut = true
		return true
	}

	if idx == len(s.cells) {
		s.recordModel()
		return len(s.models) >= s.opts.MaxModels
	}

	c := s.cells[idx]
	lo := 0
	if s.heavy && c.opName == s.firstBin && c.arity == 2 && c.i == 0 && c.j > 0 {
		lo = s.table.Binary[c.opName][0][c.j-1]
	}

	for v := lo; v < s.n; v++ {
		s.setCell(c, v)

		if c.boundary && !s.axiomsHoldForCompletedOps() {
			s.setCell(c, -1)
			continue
		}

		if s.backtrack(idx + 1) {
			s.setCell(c, -1)
			return true
		}
		s.setCell(c, -1)
	}
	return false
}

func (s *solver) setCell(c cell, v int) {
	switch c.arity {
	case 0:
		s.table.Constant[c.opName] = v
	case 1:
		s.table.Unary[c.opName][c.i] = v
	case 2:
		s.table.Binary[c.opName][c.i][c.j] = v
	}
}

// completedOps returns the set of operation names whose cells are all
// currently assigned (no -1 sentinel remaining).
func (s *solver) completedOps() map[string]bool {
	done := make(map[string]bool)
	for _, op := range s.sig.Operations {
		complete := true
		switch op.Arity() {
		case 0:
			complete = s.table.Constant[op.Name] != -1
		case 1:
			for _, v := range s.table.Unary[op.Name] {
				if v == -1 {
					complete = false
					break
				}
			}
		case 2:
			for _, row := range s.table.Binary[op.Name] {
				for _, v := range row {
					if v == -1 {
						complete = false
						break
					}
				}
				if !complete {
					break
				}
			}
		}
		if complete {
			done[op.Name] = true
		}
	}
	return done
}

// axiomsHoldForCompletedOps checks every axiom whose referenced
// operations are all complete against the table's *current* values.
// Cells get unassigned and reassigned to different values as backtrack
// explores sibling branches, so nothing here is memoized across calls —
// an axiom checked true for one assignment of its boundary cell says
// nothing about a later assignment of that same cell, and must be
// re-verified from scratch every time its operations are complete.
func (s *solver) axiomsHoldForCompletedOps() bool {
	done := s.completedOps()
	for _, ax := range s.sig.Axioms {
		ready := true
		for _, opName := range ax.Operations {
			if !done[opName] {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		if !axiomHolds(ax, s.table) {
			return false
		}
	}
	return true
}

func (s *solver) recordModel() {
	for _, ax := range s.sig.Axioms {
		if !axiomHolds(ax, s.table) {
			return
		}
	}
	for _, existing := range s.models {
		if existing.Equal(s.table) {
			return
		}
	}
	s.models = append(s.models, s.table.Clone())
}

// axiomHolds enumerates every ground instantiation of ax's free
// variables over [0, n) and checks equation equality under each.
func axiomHolds(ax signature.Axiom, table *signature.CayleyTable) bool {
	vars := expr.SortedVariableNames(ax.Equation)
	n := table.Size
	env := make(map[string]int, len(vars))

	var enumerate func(k int) bool
	enumerate = func(k int) bool {
		if k == len(vars) {
			lhs, okL := evalGround(ax.Equation.LHS(), env, table)
			rhs, okR := evalGround(ax.Equation.RHS(), env, table)
			return okL && okR && lhs == rhs
		}
		for v := 0; v < n; v++ {
			env[vars[k]] = v
			if !enumerate(k + 1) {
				return false
			}
		}
		return true
	}
	return enumerate(0)
}

// evalGround evaluates a ground (ax-equation-side) expression against a
// fully assigned table. ok is false if it encounters an unassigned cell.
func evalGround(e expr.Expr, env map[string]int, table *signature.CayleyTable) (int, bool) {
	switch e.Kind() {
	case expr.KindVariable:
		v, ok := env[e.Name()]
		return v, ok
	case expr.KindConstant:
		v, ok := table.Constant[e.Name()]
		return v, ok && v != -1
	case expr.KindApplication:
		args := e.Args()
		switch len(args) {
		case 0:
			v, ok := table.Constant[e.Op()]
			return v, ok && v != -1
		case 1:
			a, ok := evalGround(args[0], env, table)
			if !ok {
				return 0, false
			}
			vec, exists := table.Unary[e.Op()]
			if !exists || a < 0 || a >= len(vec) {
				return 0, false
			}
			v := vec[a]
			return v, v != -1
		case 2:
			a, ok1 := evalGround(args[0], env, table)
			b, ok2 := evalGround(args[1], env, table)
			if !ok1 || !ok2 {
				return 0, false
			}
			rows, exists := table.Binary[e.Op()]
			if !exists || a < 0 || a >= len(rows) || b < 0 || b >= len(rows[a]) {
				return 0, false
			}
			v := rows[a][b]
			return v, v != -1
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
