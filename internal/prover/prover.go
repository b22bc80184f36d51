// Package prover implements the Prove boundary of spec.md sections 6
// and 7: a goal holds iff the finite-model finder exhausts its bounded
// search space without turning up a countermodel. No behavioral
// contract beyond status plus optional proof text is promised — the
// teacher has no theorem prover of its own, so this follows its general
// pattern of guarding an expensive search with a hard size ceiling
// (internal/heuristics/cpsat_solver.go's "refuse large unconstrained
// instances" guardrail).
package prover

import (
	"context"
	"fmt"

	"github.com/latticeforge/discovery/internal/expr"
	"github.com/latticeforge/discovery/internal/modelfind"
	"github.com/latticeforge/discovery/internal/signature"
)

// Status is the closed set of outcomes Prove can report.
type Status string

const (
	Proved   Status = "PROVED"
	Disproved Status = "DISPROVED"
	Timeout  Status = "TIMEOUT"
	Error    Status = "ERROR"
)

// Prove checks goal against the models of sig at every domain size from
// 1 to maxSize. It enumerates models of sig with modelfind.SolveAt and
// evaluates goal in each one; no negated-goal axiom is added to sig.
// Disproved means some model of sig violates goal (the returned text
// names its size). Proved means every size was searched to completion
// and no model violates goal. Timeout means some size's search stopped
// early (node budget spent, or opts.MaxModels models collected) without
// a countermodel turning up, or ctx was cancelled.
func Prove(ctx context.Context, sig *signature.Signature, goal expr.Expr, maxSize int, opts modelfind.Options) (Status, string, error) {
	if goal.Kind() != expr.KindEquation {
		return Error, "", fmt.Errorf("prover: goal must be an equation, got kind %d", goal.Kind())
	}

	anyTimedOut := false
	for n := 1; n <= maxSize; n++ {
		if ctx.Err() != nil {
			return Timeout, "", ctx.Err()
		}

		models, timedOut := modelfind.SolveAt(ctx, sig, n, opts)
		if timedOut || (len(models) > 0 && len(models) >= opts.MaxModels) {
			anyTimedOut = true
		}

		for _, m := range models {
			if !goalHoldsInModel(goal, m) {
				return Disproved, fmt.Sprintf("size %d admits a model violating the goal", n), nil
			}
		}
	}

	if anyTimedOut {
		return Timeout, fmt.Sprintf("search incomplete up to size %d", maxSize), nil
	}
	return Proved, fmt.Sprintf("no countermodel found up to size %d", maxSize), nil
}

// goalHoldsInModel enumerates every ground instantiation of goal's free
// variables over table's domain and checks equality under each — the
// same ground-evaluation contract internal/modelfind's axiom checker
// uses, applied here to an arbitrary goal equation rather than a
// signature axiom.
func goalHoldsInModel(goal expr.Expr, table *signature.CayleyTable) bool {
	vars := expr.SortedVariableNames(goal)
	n := table.Size
	env := make(map[string]int, len(vars))

	var enumerate func(k int) bool
	enumerate = func(k int) bool {
		if k == len(vars) {
			lhs, okL := evalGround(goal.LHS(), env, table)
			rhs, okR := evalGround(goal.RHS(), env, table)
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

func evalGround(e expr.Expr, env map[string]int, table *signature.CayleyTable) (int, bool) {
	switch e.Kind() {
	case expr.KindVariable:
		v, ok := env[e.Name()]
		return v, ok
	case expr.KindConstant:
		v, ok := table.Constant[e.Name()]
		return v, ok
	case expr.KindApplication:
		args := e.Args()
		switch len(args) {
		case 0:
			v, ok := table.Constant[e.Op()]
			return v, ok
		case 1:
			a, ok := evalGround(args[0], env, table)
			if !ok {
				return 0, false
			}
			vec, exists := table.Unary[e.Op()]
			if !exists || a < 0 || a >= len(vec) {
				return 0, false
			}
			return vec[a], true
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
			return rows[a][b], true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
