/*
Package guard implements guard conditions for match arms.

A guard is a boolean expression which is evaluated after its arm's pattern
matched, against the bindings that match produced:

	OptionalInt::Value(i) if i > 5

is written as

	pmatch.When(pattern.Ctor("OptionalInt", "Value", pattern.Bind("i")),
	    guard.Gt(guard.Var("i"), guard.Lit(value.Int(5))), "big")

Guards declare the names they read (Vars), which lets an arm list be checked
for unbound guard variables before any value is matched.
*/
package guard

import (
	"github.com/npillmayer/pmatch/binding"
	"github.com/npillmayer/pmatch/value"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Guard is a boolean condition over a binding environment.
type Guard interface {
	Eval(binding.Env) bool
	Vars() []string
}

// Operand is a term of a comparison.
type Operand interface {
	resolve(binding.Env) (value.Value, bool)
	vars() []string
}

type variable string

// Var is an operand denoting the value bound to name.
func Var(name string) Operand {
	return variable(name)
}

func (v variable) resolve(env binding.Env) (value.Value, bool) {
	return env.Lookup(string(v))
}

func (v variable) vars() []string {
	return []string{string(v)}
}

type literal struct {
	v value.Value
}

// Lit is a constant operand.
func Lit(v value.Value) Operand {
	return literal{v: v}
}

func (l literal) resolve(binding.Env) (value.Value, bool) {
	return l.v, l.v != nil
}

func (l literal) vars() []string {
	return nil
}

// --- Comparisons -----------------------------------------------------------

// Op is a comparison operator.
type Op uint8

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opNames = [...]string{"==", "!=", "<", "<=", ">", ">="}

func (op Op) String() string {
	return opNames[op]
}

type comparison struct {
	op       Op
	lhs, rhs Operand
}

// Compare creates a guard comparing lhs and rhs. Ordering is defined for ints,
// chars and strings; ordering comparisons of other or mismatched kinds are false.
func Compare(op Op, lhs, rhs Operand) Guard {
	return comparison{op: op, lhs: lhs, rhs: rhs}
}

func Eq(lhs, rhs Operand) Guard { return Compare(OpEq, lhs, rhs) }
func Ne(lhs, rhs Operand) Guard { return Compare(OpNe, lhs, rhs) }
func Lt(lhs, rhs Operand) Guard { return Compare(OpLt, lhs, rhs) }
func Le(lhs, rhs Operand) Guard { return Compare(OpLe, lhs, rhs) }
func Gt(lhs, rhs Operand) Guard { return Compare(OpGt, lhs, rhs) }
func Ge(lhs, rhs Operand) Guard { return Compare(OpGe, lhs, rhs) }

func (c comparison) Eval(env binding.Env) bool {
	a, ok := c.lhs.resolve(env)
	if !ok {
		return false
	}
	b, ok := c.rhs.resolve(env)
	if !ok {
		return false
	}
	switch c.op {
	case OpEq:
		return value.Equal(a, b)
	case OpNe:
		return !value.Equal(a, b)
	}
	cmp, ok := order(a, b)
	if !ok {
		return false
	}
	switch c.op {
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

func (c comparison) Vars() []string {
	return merge(c.lhs.vars(), c.rhs.vars())
}

func order(a, b value.Value) (int, bool) {
	switch x := a.(type) {
	case value.Int:
		if y, ok := b.(value.Int); ok {
			return compare(x, y), true
		}
	case value.Char:
		if y, ok := b.(value.Char); ok {
			return compare(x, y), true
		}
	case value.Str:
		if y, ok := b.(value.Str); ok {
			return compare(x, y), true
		}
	}
	return 0, false
}

func compare[T constraints.Ordered](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// --- Connectives -----------------------------------------------------------

type conjunction []Guard
type disjunction []Guard
type negation struct{ g Guard }

// And is true if all of gs are. Evaluation stops at the first false guard.
func And(gs ...Guard) Guard { return conjunction(gs) }

// Or is true if any of gs is. Evaluation stops at the first true guard.
func Or(gs ...Guard) Guard { return disjunction(gs) }

// Not negates g.
func Not(g Guard) Guard { return negation{g: g} }

func (c conjunction) Eval(env binding.Env) bool {
	for _, g := range c {
		if !g.Eval(env) {
			return false
		}
	}
	return true
}

func (d disjunction) Eval(env binding.Env) bool {
	for _, g := range d {
		if g.Eval(env) {
			return true
		}
	}
	return false
}

func (n negation) Eval(env binding.Env) bool {
	return !n.g.Eval(env)
}

func (c conjunction) Vars() []string { return varsOf(c) }
func (d disjunction) Vars() []string { return varsOf(d) }
func (n negation) Vars() []string    { return n.g.Vars() }

// --- Predicates ------------------------------------------------------------

type predicate struct {
	fn   func(binding.Env) bool
	vars []string
}

// Func wraps a client predicate. vars has to list every name fn reads from the
// environment.
func Func(fn func(binding.Env) bool, vars ...string) Guard {
	return predicate{fn: fn, vars: vars}
}

func (p predicate) Eval(env binding.Env) bool {
	return p.fn(env)
}

func (p predicate) Vars() []string {
	return merge(nil, p.vars)
}

// ---------------------------------------------------------------------------

func varsOf(gs []Guard) []string {
	var vars []string
	for _, g := range gs {
		vars = merge(vars, g.Vars())
	}
	return vars
}

// merge appends the names of more not yet contained in names.
func merge(names, more []string) []string {
	for _, n := range more {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}
