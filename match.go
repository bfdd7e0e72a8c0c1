package pmatch

import (
	"fmt"

	"github.com/npillmayer/pmatch/binding"
	"github.com/npillmayer/pmatch/maybe"
	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/result"
	"github.com/npillmayer/pmatch/value"
	"golang.org/x/exp/constraints"
)

// Selection is the outcome of a successful match.
type Selection struct {
	Arm     int         // index of the winning arm
	Handler string      // handler identifier of the winning arm
	Env     binding.Env // bindings produced by the winning arm's pattern
}

// Matcher is a validated, reusable list of match arms.
type Matcher struct {
	arms  []Arm
	props props
}

// Compile validates arms and creates a matcher for them. The arm list is copied.
func Compile(arms []Arm, opts ...Option) (*Matcher, error) {
	m := &Matcher{arms: append([]Arm(nil), arms...)}
	for _, option := range opts {
		m.props = option.config(m.props)
	}
	if err := Validate(m.arms); err != nil {
		tracer().Errorf("cannot compile match arms: %v", err)
		return nil, err
	}
	if m.props.hasFallback {
		m.arms = append(m.arms, Arm{Pattern: pattern.Any(), Handler: m.props.fallback})
	}
	return m, nil
}

// Evaluate validates arms and matches v against them. It returns the index of the
// winning arm and the bindings of its pattern. It fails with a *ValidationError
// for malformed arms, or with ErrNoArmMatched.
func Evaluate(v value.Value, arms []Arm, opts ...Option) (int, binding.Env, error) {
	m, err := Compile(arms, opts...)
	if err != nil {
		return -1, binding.Empty(), err
	}
	return m.Evaluate(v)
}

// Len returns the number of arms, including an implicit fallback arm.
func (m *Matcher) Len() int {
	return len(m.arms)
}

// Arm returns arm #i.
func (m *Matcher) Arm(i int) Arm {
	return m.arms[i]
}

// HasCatchAll reports whether an unguarded arm matches every value. If it does,
// m never fails with ErrNoArmMatched.
func (m *Matcher) HasCatchAll() bool {
	for _, arm := range m.arms {
		if arm.Guard == nil && pattern.IsCatchAll(arm.Pattern) {
			return true
		}
	}
	return false
}

// Evaluate matches v against m's arms, see package-level Evaluate.
func (m *Matcher) Evaluate(v value.Value) (int, binding.Env, error) {
	sel, err := m.Select(v)
	if err != nil {
		return -1, binding.Empty(), err
	}
	return sel.Arm, sel.Env, nil
}

// Match is Select packed into a Result, for use in a switch:
//
//	switch r := m.Match(v).Match(); r {
//	case r.Ok(&sel):
//	    …
//	case r.Err(&err):
//	    …
//	}
func (m *Matcher) Match(v value.Value) result.Result[Selection] {
	sel, err := m.Select(v)
	return result.From(sel, err)
}

// Select finds the first arm matching v. Arms are tried in order; an arm wins if
// its pattern matches and its guard, if present, holds for the pattern's bindings.
// Guards of arms following the winner are never evaluated.
func (m *Matcher) Select(v value.Value) (Selection, error) {
	assertThat(v != nil, "cannot match nil value")
	for i, arm := range m.arms {
		if m.props.traceArms {
			tracer().Debugf("arm #%d: matching %s against pattern\n%s", i, v, pattern.Sprint(arm.Pattern))
		}
		env, ok := m.match(arm.Pattern, v, binding.Empty()).Get()
		if !ok {
			continue
		}
		if arm.Guard != nil && !arm.Guard.Eval(env) {
			tracer().Debugf("arm #%d: pattern %s matched, guard rejected %s", i, arm.Pattern, env)
			continue
		}
		tracer().Debugf("arm #%d: %s => %s with %s", i, arm.Pattern, arm.Handler, env)
		return Selection{Arm: i, Handler: arm.Handler, Env: env}, nil
	}
	return Selection{Arm: -1}, fmt.Errorf("%w: %s", ErrNoArmMatched, v)
}

// Dispatch selects the arm matching v and calls the handler registered for the
// arm's handler identifier.
func Dispatch[T any](m *Matcher, v value.Value, handlers map[string]func(binding.Env) T) (T, error) {
	var zero T
	sel, err := m.Select(v)
	if err != nil {
		return zero, err
	}
	h, ok := handlers[sel.Handler]
	if !ok || h == nil {
		return zero, fmt.Errorf("%w: %q (arm #%d)", ErrNoHandler, sel.Handler, sel.Arm)
	}
	return h(sel.Env), nil
}

// --- Structural matching ---------------------------------------------------

// match matches p against v, extending env with p's bindings. If p does not
// match, nothing is returned and env is left as is.
func (m *Matcher) match(p pattern.Pattern, v value.Value, env binding.Env) maybe.Maybe[binding.Env] {
	switch p := p.(type) {
	case pattern.Wildcard:
		return maybe.Just(env)
	case pattern.Binding:
		return maybe.Just(env.Bind(p.Name, v, m.props.mode))
	case pattern.Literal:
		if value.Equal(p.Value, v) {
			return maybe.Just(env)
		}
	case pattern.Range:
		if inRange(p, v) {
			return maybe.Just(env)
		}
	case pattern.Or:
		for _, alt := range p.Alts {
			if r := m.match(alt, v, env); r.IsJust() {
				return r
			}
		}
	case pattern.Tuple:
		if t, ok := v.(*value.Tuple); ok && t.Len() == len(p.Elems) {
			return m.matchSeq(p.Elems, t.At, env)
		}
	case pattern.Struct:
		if s, ok := v.(*value.Struct); ok && s.Name() == p.Name {
			return m.matchStruct(p, s, env)
		}
	case pattern.Variant:
		x, ok := v.(*value.Variant)
		if !ok || x.EnumName() != p.Enum || x.Case() != p.Case {
			break
		}
		if p.Ellipsis {
			return maybe.Just(env)
		}
		if x.Len() == len(p.Payload) {
			return m.matchSeq(p.Payload, x.At, env)
		}
	case pattern.Binder:
		mode := binding.ByValue
		if p.ByRef {
			mode = binding.ByReference
		}
		return maybe.AndThen(func(e binding.Env) maybe.Maybe[binding.Env] {
			return maybe.Just(e.Bind(p.Name, v, mode))
		}, m.match(p.Inner, v, env))
	default:
		panic(fmt.Sprintf("pmatch: unknown pattern type %T", p))
	}
	return maybe.Nothing[binding.Env]()
}

// matchSeq matches pats against the values at(0) … at(len(pats)-1), stopping at
// the first mismatch.
func (m *Matcher) matchSeq(pats []pattern.Pattern, at func(int) value.Value, env binding.Env) maybe.Maybe[binding.Env] {
	for i, p := range pats {
		var ok bool
		if env, ok = m.match(p, at(i), env).Get(); !ok {
			return maybe.Nothing[binding.Env]()
		}
	}
	return maybe.Just(env)
}

func (m *Matcher) matchStruct(p pattern.Struct, s *value.Struct, env binding.Env) maybe.Maybe[binding.Env] {
	// field names of a valid pattern are unique, thus equal counts mean equal field sets
	if !p.Rest && s.Len() != len(p.Fields) {
		return maybe.Nothing[binding.Env]()
	}
	for _, f := range p.Fields {
		fv, ok := s.Field(f.Name)
		if !ok {
			return maybe.Nothing[binding.Env]()
		}
		if env, ok = m.match(f.Pattern, fv, env).Get(); !ok {
			return maybe.Nothing[binding.Env]()
		}
	}
	return maybe.Just(env)
}

func inRange(r pattern.Range, v value.Value) bool {
	switch x := v.(type) {
	case value.Int:
		lo, okl := r.Lo.(value.Int)
		hi, okh := r.Hi.(value.Int)
		return okl && okh && within(lo, x, hi)
	case value.Char:
		lo, okl := r.Lo.(value.Char)
		hi, okh := r.Hi.(value.Char)
		return okl && okh && within(lo, x, hi)
	}
	return false
}

func within[T constraints.Ordered](lo, x, hi T) bool {
	return lo <= x && x <= hi
}
