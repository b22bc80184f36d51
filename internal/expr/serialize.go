package expr

import "fmt"

// ToMap produces a structural, exactly round-trippable representation of
// e. This is distinct from String(): String() renders the canonical
// human-readable form used in persisted discovery documents, while ToMap
// preserves the full variable/constant distinction needed for an exact
// FromMap(ToMap(e)) == e round trip.
func (e Expr) ToMap() map[string]any {
	switch e.kind {
	case KindVariable:
		return map[string]any{"kind": "variable", "name": e.name}
	case KindConstant:
		return map[string]any{"kind": "constant", "name": e.name}
	case KindApplication:
		args := make([]any, len(e.args))
		for i, a := range e.args {
			args[i] = a.ToMap()
		}
		return map[string]any{"kind": "application", "op": e.op, "args": args}
	case KindEquation:
		return map[string]any{"kind": "equation", "lhs": e.lhs.ToMap(), "rhs": e.rhs.ToMap()}
	default:
		return map[string]any{"kind": "invalid"}
	}
}

// FromMap reconstructs an Expr from a map produced by ToMap.
func FromMap(m map[string]any) (Expr, error) {
	kind, _ := m["kind"].(string)
	switch kind {
	case "variable":
		name, _ := m["name"].(string)
		return Var(name), nil
	case "constant":
		name, _ := m["name"].(string)
		return Const(name), nil
	case "application":
		op, _ := m["op"].(string)
		rawArgs, _ := m["args"].([]any)
		args := make([]Expr, len(rawArgs))
		for i, raw := range rawArgs {
			argMap, ok := raw.(map[string]any)
			if !ok {
				return Expr{}, fmt.Errorf("expr.FromMap: application argument %d is not a map", i)
			}
			arg, err := FromMap(argMap)
			if err != nil {
				return Expr{}, err
			}
			args[i] = arg
		}
		return App(op, args...), nil
	case "equation":
		lhsMap, ok := m["lhs"].(map[string]any)
		if !ok {
			return Expr{}, fmt.Errorf("expr.FromMap: equation missing lhs")
		}
		rhsMap, ok := m["rhs"].(map[string]any)
		if !ok {
			return Expr{}, fmt.Errorf("expr.FromMap: equation missing rhs")
		}
		lhs, err := FromMap(lhsMap)
		if err != nil {
			return Expr{}, err
		}
		rhs, err := FromMap(rhsMap)
		if err != nil {
			return Expr{}, err
		}
		return Eq(lhs, rhs), nil
	default:
		return Expr{}, fmt.Errorf("expr.FromMap: unknown kind %q", kind)
	}
}
