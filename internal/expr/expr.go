// Package expr implements the immutable first-order expression tree shared
// by axioms: variables, constants, operation application, and equations.
package expr

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the closed set of expression variants.
type Kind int

const (
	KindVariable Kind = iota
	KindConstant
	KindApplication
	KindEquation
)

// Expr is an immutable node in a first-order expression tree. The zero
// value is not valid; construct nodes with Var, Const, App, or Eq.
type Expr struct {
	kind Kind

	// Variable, Constant
	name string

	// Application
	op   string
	args []Expr

	// Equation
	lhs, rhs *Expr
}

// Var constructs a universally-quantified variable reference.
func Var(name string) Expr { return Expr{kind: KindVariable, name: name} }

// Const constructs a named constant reference.
func Const(name string) Expr { return Expr{kind: KindConstant, name: name} }

// App constructs an application of op to args, in order.
func App(op string, args ...Expr) Expr {
	cp := make([]Expr, len(args))
	copy(cp, args)
	return Expr{kind: KindApplication, op: op, args: cp}
}

// Eq constructs the equation lhs = rhs.
func Eq(lhs, rhs Expr) Expr {
	l, r := lhs, rhs
	return Expr{kind: KindEquation, lhs: &l, rhs: &r}
}

// Kind reports which variant e is.
func (e Expr) Kind() Kind { return e.kind }

// Name returns the variable or constant name. Panics on other kinds.
func (e Expr) Name() string {
	if e.kind != KindVariable && e.kind != KindConstant {
		panic("expr: Name called on non-leaf expression")
	}
	return e.name
}

// Op returns the application's operation name. Panics on other kinds.
func (e Expr) Op() string {
	if e.kind != KindApplication {
		panic("expr: Op called on non-application expression")
	}
	return e.op
}

// Args returns the application's ordered arguments. Panics on other kinds.
func (e Expr) Args() []Expr {
	if e.kind != KindApplication {
		panic("expr: Args called on non-application expression")
	}
	cp := make([]Expr, len(e.args))
	copy(cp, e.args)
	return cp
}

// LHS returns the equation's left side. Panics on other kinds.
func (e Expr) LHS() Expr {
	if e.kind != KindEquation {
		panic("expr: LHS called on non-equation expression")
	}
	return *e.lhs
}

// RHS returns the equation's right side. Panics on other kinds.
func (e Expr) RHS() Expr {
	if e.kind != KindEquation {
		panic("expr: RHS called on non-equation expression")
	}
	return *e.rhs
}

// Size counts the AST nodes in e, including e itself.
func (e Expr) Size() int {
	switch e.kind {
	case KindVariable, KindConstant:
		return 1
	case KindApplication:
		n := 1
		for _, a := range e.args {
			n += a.Size()
		}
		return n
	case KindEquation:
		return 1 + e.lhs.Size() + e.rhs.Size()
	default:
		return 0
	}
}

// Variables returns the set of free variable names occurring in e.
func (e Expr) Variables() map[string]struct{} {
	out := make(map[string]struct{})
	e.collectVariables(out)
	return out
}

func (e Expr) collectVariables(out map[string]struct{}) {
	switch e.kind {
	case KindVariable:
		out[e.name] = struct{}{}
	case KindConstant:
	case KindApplication:
		for _, a := range e.args {
			a.collectVariables(out)
		}
	case KindEquation:
		e.lhs.collectVariables(out)
		e.rhs.collectVariables(out)
	}
}

// Substitute returns a new expression with every free variable whose name
// is a key of sigma replaced by the mapped expression. Because variables
// carry no binder in this AST, substitution recurses structurally and is
// trivially capture-free.
func (e Expr) Substitute(sigma map[string]Expr) Expr {
	switch e.kind {
	case KindVariable:
		if repl, ok := sigma[e.name]; ok {
			return repl
		}
		return e
	case KindConstant:
		return e
	case KindApplication:
		args := make([]Expr, len(e.args))
		for i, a := range e.args {
			args[i] = a.Substitute(sigma)
		}
		return App(e.op, args...)
	case KindEquation:
		l := e.lhs.Substitute(sigma)
		r := e.rhs.Substitute(sigma)
		return Eq(l, r)
	default:
		return e
	}
}

// String renders e in its canonical textual form: binary applications as
// "(lhs op rhs)", unary as "op(arg)", n-ary as "op(a, b, c)", constants
// and variables bare, equations as "lhs = rhs".
func (e Expr) String() string {
	switch e.kind {
	case KindVariable, KindConstant:
		return e.name
	case KindApplication:
		switch len(e.args) {
		case 2:
			return fmt.Sprintf("(%s %s %s)", e.args[0].String(), e.op, e.args[1].String())
		case 1:
			return fmt.Sprintf("%s(%s)", e.op, e.args[0].String())
		default:
			parts := make([]string, len(e.args))
			for i, a := range e.args {
				parts[i] = a.String()
			}
			return fmt.Sprintf("%s(%s)", e.op, strings.Join(parts, ", "))
		}
	case KindEquation:
		return fmt.Sprintf("%s = %s", e.lhs.String(), e.rhs.String())
	default:
		return "<invalid>"
	}
}

// Equal reports whether e and other are structurally identical.
func (e Expr) Equal(other Expr) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case KindVariable, KindConstant:
		return e.name == other.name
	case KindApplication:
		if e.op != other.op || len(e.args) != len(other.args) {
			return false
		}
		for i := range e.args {
			if !e.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	case KindEquation:
		return e.lhs.Equal(*other.lhs) && e.rhs.Equal(*other.rhs)
	default:
		return false
	}
}

// SortedVariableNames returns the free variable names of e in ascending
// lexical order — convenient for deterministic iteration during ground
// instantiation.
func SortedVariableNames(e Expr) []string {
	set := e.Variables()
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
