/*
Package pmatch implements a pattern-matching evaluator. For a value and an
ordered list of match arms it decides which arm matches first, and returns the
bindings the winning arm's pattern produced.

An arm is a pattern, an optional guard and a handler identifier. Arms are tried
strictly in declaration order: the first arm whose pattern matches the value
structurally and whose guard (if any) holds wins. Earlier arms therefore shadow
later overlapping ones, which is intended:

	arms := []pmatch.Arm{
	    pmatch.When(pattern.Ctor("OptionalInt", "Value", pattern.Bind("i")),
	        guard.Gt(guard.Var("i"), guard.Lit(value.Int(5))), "big"),
	    pmatch.Case(pattern.Ctor("OptionalInt", "Value").Etc(), "some"),
	    pmatch.Case(pattern.Ctor("OptionalInt", "Missing"), "none"),
	}
	index, env, err := pmatch.Evaluate(v, arms)

Arm lists are validated before matching: or-patterns have to bind the same
names in every alternative, names may not be bound twice, and guards may only
read names their pattern binds. Validation problems are reported as
*ValidationError, independently of any value. If no arm matches, evaluation
fails with ErrNoArmMatched. The engine does not try to prove exhaustiveness;
clients needing totality add a catch-all arm or use option Fallback.

Matching is pure and synchronous. A compiled Matcher is read-only and may be
shared between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pmatch

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("pmatch: "+msg, msgargs...)
		panic(msg)
	}
}
