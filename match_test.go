package pmatch

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/pmatch/binding"
	"github.com/npillmayer/pmatch/guard"
	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/value"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	optInt   = value.NewEnum("OptionalInt", value.Case("Value", 1), value.Case("Missing", 0))
	optTuple = value.NewEnum("OptionalTuple", value.Case("Value", 3), value.Case("Missing", 0))
)

func TestLiteralArms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	arms := []Arm{
		Case(pattern.LitInt(1), "A"),
		Case(pattern.LitInt(5), "B"),
		Case(pattern.Any(), "C"),
	}
	i, env, err := Evaluate(value.Int(5), arms)
	require.NoError(t, err)
	if i != 1 {
		t.Errorf("expected arm #1 (B) to win, winner is #%d", i)
	}
	if !env.IsEmpty() {
		t.Errorf("expected environment to be empty, is %s", env)
	}
}

func TestGuardedVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	arms := []Arm{
		When(pattern.VariantOf(optInt, "Value", pattern.Bind("i")),
			guard.Gt(guard.Var("i"), guard.Lit(value.Int(5))), "A"),
		Case(pattern.VariantOf(optInt, "Value").Etc(), "B"),
		Case(pattern.VariantOf(optInt, "Missing"), "C"),
	}
	i, env, err := Evaluate(optInt.MustMake("Value", value.Int(7)), arms)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, []string{"i"}, env.Names())
	iv, _ := env.Lookup("i")
	assert.Equal(t, value.Int(7), iv)

	// guard rejects ⇒ structurally weaker arm wins
	i, env, err = Evaluate(optInt.MustMake("Value", value.Int(5)), arms)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.True(t, env.IsEmpty(), "bindings of rejected arm must not leak, got %s", env)

	i, _, err = Evaluate(optInt.MustMake("Missing"), arms)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestTupleBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	arms := []Arm{Case(pattern.TupleOf(pattern.Bind("x"), pattern.Any()), "A")}
	i, env, err := Evaluate(value.NewTuple(value.Int(5), value.Str("five")), arms)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "{x: 5}", env.String())
	assert.Empty(t, env.Moved(), "binding an int out of a tuple copies it")
}

func TestCharRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	arms := []Arm{
		Case(pattern.CharRange('a', 'j'), "early"),
		Case(pattern.CharRange('k', 'z'), "late"),
		Case(pattern.Any(), "else"),
	}
	m, err := Compile(arms)
	require.NoError(t, err)
	table := map[rune]string{'m': "late", 'a': "early", 'j': "early", 'k': "late", 'z': "late", '💅': "else"}
	for c, want := range table {
		sel, err := m.Select(value.Char(c))
		require.NoError(t, err)
		if sel.Handler != want {
			t.Errorf("expected %q to select %s, selected %s", c, want, sel.Handler)
		}
	}
	// a range over chars never matches an int
	sel, _ := m.Select(value.Int('m'))
	assert.Equal(t, "else", sel.Handler)
}

func TestInconsistentOrFailsValidation(t *testing.T) {
	arms := []Arm{Case(pattern.OneOf(pattern.LitInt(1), pattern.Bind("x")), "A")}
	err := Validate(arms)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternValidation))
	assert.True(t, errors.Is(err, pattern.ErrInconsistentOr))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, verr.Arm)
	assert.Equal(t, "A", verr.Handler)

	_, _, err = Evaluate(value.Int(1), arms)
	assert.True(t, errors.Is(err, pattern.ErrInconsistentOr), "Evaluate has to validate, got %v", err)
}

func TestNoArmMatched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	i, env, err := Evaluate(value.Int(9), []Arm{Case(pattern.LitInt(1), "A")})
	if !errors.Is(err, ErrNoArmMatched) {
		t.Fatalf("expected ErrNoArmMatched, got %v", err)
	}
	assert.Equal(t, -1, i)
	assert.True(t, env.IsEmpty())
	assert.Contains(t, err.Error(), "9")
}

func TestRangeInclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m, err := Compile([]Arm{Case(pattern.IntRange(1, 5), "in")})
	require.NoError(t, err)
	for n := int64(-2); n <= 8; n++ {
		_, _, err := m.Evaluate(value.Int(n))
		if inside := n >= 1 && n <= 5; inside != (err == nil) {
			t.Errorf("expected 1..=5 matching %d to be %v, got err=%v", n, inside, err)
		}
	}
}

func TestFirstMatchWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	v := value.NewTuple(value.Int(3), value.Char('q'))
	matching := []pattern.Pattern{
		pattern.Any(),
		pattern.Bind("t"),
		pattern.TupleOf(pattern.IntRange(0, 9), pattern.Any()),
		pattern.TupleOf(pattern.OneOf(pattern.LitInt(3), pattern.LitInt(4)), pattern.LitChar('q')),
		pattern.At("whole", pattern.TupleOf(pattern.Bind("n"), pattern.CharRange('a', 'z'))),
	}
	for i := range matching {
		for j := i + 1; j < len(matching); j++ {
			arms := []Arm{
				Case(pattern.LitInt(0), "never"),
				Case(matching[i], "first"),
				Case(matching[j], "second"),
			}
			sel, err := mustCompile(t, arms).Select(v)
			require.NoError(t, err)
			if sel.Arm != 1 || sel.Handler != "first" {
				t.Errorf("expected %s to shadow %s, winner is #%d", matching[i], matching[j], sel.Arm)
			}
		}
	}
}

func TestTrailingWildcardIsTotal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m := mustCompile(t, []Arm{
		Case(pattern.LitStr("five"), "five"),
		Case(pattern.StructOf("Point", pattern.Pun("x"), pattern.Pun("y")), "point"),
		Case(pattern.Any(), "rest"),
	})
	assert.True(t, m.HasCatchAll())
	values := []value.Value{
		value.Int(1), value.Char('x'), value.Bool(true), value.Str("six"),
		value.NewTuple(), optTuple.MustMake("Missing"),
		value.NewStruct("Point", value.F("x", value.Int(0))),
	}
	for _, v := range values {
		if _, _, err := m.Evaluate(v); err != nil {
			t.Errorf("expected trailing wildcard to catch %s, got %v", v, err)
		}
	}
}

func TestGuardsFollowArmOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	var calls []string
	spy := func(name string, outcome bool) guard.Guard {
		return guard.Func(func(binding.Env) bool {
			calls = append(calls, name)
			return outcome
		})
	}
	m := mustCompile(t, []Arm{
		When(pattern.LitInt(1), spy("g0", true), "A"), // pattern fails, guard not evaluated
		When(pattern.Any(), spy("g1", false), "B"),
		When(pattern.Any(), spy("g2", true), "C"),
		When(pattern.Any(), spy("g3", true), "D"),
	})
	sel, err := m.Select(value.Int(2))
	require.NoError(t, err)
	assert.Equal(t, "C", sel.Handler)
	assert.Equal(t, []string{"g1", "g2"}, calls)
	assert.False(t, m.HasCatchAll(), "guarded catch-alls do not make a matcher total")
}

func TestUnboundGuardVariable(t *testing.T) {
	arms := []Arm{
		Case(pattern.Any(), "A"),
		When(pattern.TupleOf(pattern.Bind("x"), pattern.Any()),
			guard.Eq(guard.Var("x"), guard.Var("y")), "B"),
	}
	_, err := Compile(arms)
	assert.True(t, errors.Is(err, ErrUnboundGuardVariable), "got %v", err)
	assert.True(t, errors.Is(err, ErrPatternValidation))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Arm)
	// names bound inside an ellipsis are not visible to guards
	_, err = Compile([]Arm{When(pattern.Ctor("OptionalInt", "Value").Etc(),
		guard.Func(func(binding.Env) bool { return true }, "i"), "A")})
	assert.True(t, errors.Is(err, ErrUnboundGuardVariable), "got %v", err)
}

func TestDuplicateBindingFailsValidation(t *testing.T) {
	err := Validate([]Arm{Case(pattern.TupleOf(pattern.Bind("x"), pattern.Bind("x")), "A")})
	assert.True(t, errors.Is(err, pattern.ErrDuplicateBinding), "got %v", err)
}

func TestStructPatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	origin := value.NewStruct("Point", value.F("x", value.Int(0)), value.F("y", value.Int(0)))
	m := mustCompile(t, []Arm{
		Case(pattern.StructOf("Point", pattern.Pun("x")), "exact-x"),
		Case(pattern.StructOf("Point", pattern.Field("x", pattern.LitInt(1))).WithRest(), "x-is-1"),
		Case(pattern.StructOf("Other", pattern.Pun("x"), pattern.Pun("y")), "other"),
		Case(pattern.StructOf("Point", pattern.Pun("x"), pattern.Pun("y")), "point"),
	})
	sel, err := m.Select(origin)
	require.NoError(t, err)
	assert.Equal(t, "point", sel.Handler)
	assert.Equal(t, "{x: 0, y: 0}", sel.Env.String())

	p1 := value.NewStruct("Point", value.F("x", value.Int(1)), value.F("y", value.Int(9)))
	sel, err = m.Select(p1)
	require.NoError(t, err)
	assert.Equal(t, "x-is-1", sel.Handler)

	// missing fields are a non-match
	_, _, err = m.Evaluate(value.NewStruct("Point", value.F("y", value.Int(0)), value.F("z", value.Int(0))))
	assert.True(t, errors.Is(err, ErrNoArmMatched))
}

func TestVariantPayloads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	m := mustCompile(t, []Arm{
		Case(pattern.VariantOf(optTuple, "Value", pattern.LitInt(0), pattern.Any(), pattern.Any()), "zero"),
		Case(pattern.VariantOf(optTuple, "Value").Etc(), "tuple"),
		Case(pattern.VariantOf(optTuple, "Missing"), "missing"),
	})
	sel, err := m.Select(optTuple.MustMake("Value", value.Int(5), value.Int(-2), value.Int(3)))
	require.NoError(t, err)
	assert.Equal(t, "tuple", sel.Handler)
	assert.True(t, sel.Env.IsEmpty())
	// a variant of another enum with the same case names does not match
	other := value.NewEnum("Other", value.Case("Missing", 0))
	_, _, err = m.Evaluate(other.MustMake("Missing"))
	assert.True(t, errors.Is(err, ErrNoArmMatched))
}

func TestOrPatternBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	m := mustCompile(t, []Arm{
		Case(pattern.OneOf(
			pattern.TupleOf(pattern.Bind("n"), pattern.LitInt(0)),
			pattern.TupleOf(pattern.LitInt(0), pattern.Bind("n")),
		), "axis"),
		Case(pattern.OneOf(pattern.LitInt(1), pattern.LitInt(2)), "one or two"),
		Case(pattern.Any(), "anything"),
	})
	sel, err := m.Select(value.NewTuple(value.Int(0), value.Int(4)))
	require.NoError(t, err)
	assert.Equal(t, "axis", sel.Handler)
	assert.Equal(t, "{n: 4}", sel.Env.String())
	for n, want := range map[int64]string{1: "one or two", 2: "one or two", 3: "anything"} {
		sel, _ := m.Select(value.Int(n))
		assert.Equal(t, want, sel.Handler)
	}
}

func TestBinderOverRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	m := mustCompile(t, []Arm{
		Case(pattern.At("e", pattern.IntRange(1, 5)), "range element"),
		Case(pattern.Any(), "anything"),
	})
	sel, err := m.Select(value.Int(1))
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Arm)
	e, ok := sel.Env.Lookup("e")
	assert.True(t, ok)
	assert.Equal(t, value.Int(1), e)
}

func TestOwnership(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	tuple := value.NewTuple(value.Int(5), value.Str("five"))
	// let (x, _s) = tuple  ⇒ tuple is partially moved
	_, env, err := Evaluate(tuple, []Arm{Case(pattern.TupleOf(pattern.Bind("x"), pattern.Bind("_s")), "A")})
	require.NoError(t, err)
	assert.Equal(t, []string{"_s"}, env.Moved())

	// ref whole ⇒ aliasing, nothing moved
	_, env, err = Evaluate(tuple, []Arm{Case(pattern.Ref("whole"), "A")})
	require.NoError(t, err)
	whole, _ := env.Lookup("whole")
	if whole.(*value.Tuple) != tuple {
		t.Error("expected by-reference binding to alias the matched tuple, doesn't")
	}
	assert.Empty(t, env.Moved())

	// by-value binder produces an independent copy
	_, env, err = Evaluate(tuple, []Arm{Case(pattern.At("c", pattern.Any()), "A")})
	require.NoError(t, err)
	c, _ := env.Lookup("c")
	if c.(*value.Tuple) == tuple {
		t.Error("expected by-value binding to hold a copy, holds the original")
	}
	assert.True(t, value.Equal(c, tuple))
	assert.Equal(t, []string{"c"}, env.Moved())
}

func TestBindByReferenceOption(t *testing.T) {
	tuple := value.NewTuple(value.Str("a"))
	_, env, err := Evaluate(tuple, []Arm{Case(pattern.Bind("t"), "A")}, BindByReference())
	require.NoError(t, err)
	tv, _ := env.Lookup("t")
	assert.Same(t, tuple, tv)
	b, _ := env.Binding("t")
	assert.Equal(t, binding.ByReference, b.Mode)
}

func TestFallbackOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch")
	defer teardown()
	//
	m, err := Compile([]Arm{Case(pattern.LitInt(1), "one")}, Fallback("other"), TraceArms(true))
	require.NoError(t, err)
	assert.True(t, m.HasCatchAll())
	assert.Equal(t, 2, m.Len())
	i, _, err := m.Evaluate(value.Int(9))
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "other", m.Arm(i).Handler)
}

func TestMatchResult(t *testing.T) {
	m := mustCompile(t, []Arm{Case(pattern.LitBool(true), "yes")})
	var sel Selection
	var err error
	switch r := m.Match(value.Bool(true)).Match(); r {
	case r.Ok(&sel):
		t.Logf("selected %s", sel.Handler)
	case r.Err(&err):
		t.Errorf("expected true to match, got %v", err)
	}
	assert.Equal(t, "yes", sel.Handler)
	switch r := m.Match(value.Bool(false)).Match(); r {
	case r.Ok(&sel):
		t.Errorf("expected false not to match, selected %s", sel.Handler)
	case r.Err(&err):
	}
	assert.True(t, errors.Is(err, ErrNoArmMatched))
}

func TestDispatch(t *testing.T) {
	m := mustCompile(t, []Arm{
		Case(pattern.VariantOf(optInt, "Value", pattern.Bind("i")), "value"),
		Case(pattern.VariantOf(optInt, "Missing"), "missing"),
	})
	handlers := map[string]func(binding.Env) int64{
		"value": func(env binding.Env) int64 {
			i, _ := env.Lookup("i")
			return int64(i.(value.Int)) * 2
		},
	}
	n, err := Dispatch(m, optInt.MustMake("Value", value.Int(21)), handlers)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	_, err = Dispatch(m, optInt.MustMake("Missing"), handlers)
	assert.True(t, errors.Is(err, ErrNoHandler), "got %v", err)
}

func TestCompileCopiesArms(t *testing.T) {
	arms := []Arm{Case(pattern.LitInt(1), "one")}
	m := mustCompile(t, arms)
	arms[0] = Case(pattern.Any(), "any")
	_, _, err := m.Evaluate(value.Int(2))
	assert.True(t, errors.Is(err, ErrNoArmMatched))
}

func TestMatcherIsShareable(t *testing.T) {
	m := mustCompile(t, []Arm{
		Case(pattern.At("e", pattern.IntRange(1, 5)), "small"),
		Case(pattern.Bind("n"), "large"),
	})
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 1; g <= 16; g++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			sel, err := m.Select(value.Int(n))
			if err == nil && (sel.Handler == "small") != (n <= 5) {
				err = errors.New("wrong arm selected for " + value.Int(n).String())
			}
			errs <- err
		}(int64(g))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

// ---------------------------------------------------------------------------

func mustCompile(t *testing.T, arms []Arm) *Matcher {
	t.Helper()
	m, err := Compile(arms)
	require.NoError(t, err)
	return m
}
