/*
Package pattern defines the closed set of patterns a matcher can try against a
value, together with the static analysis a list of match arms needs before any
value is seen.

Patterns are plain immutable values:

	Wildcard                    _
	Binding                     x
	Literal                     5, 'c', true, "five"
	Range                       1..=5, 'a'..='j'
	Or                          1 | 2
	Tuple                       (x, _)
	Struct                      Point { x, y: 0, .. }
	Variant                     OptionalInt::Value(i), OptionalTuple::Value(..)
	Binder                      e @ 1..=5, ref mr

Check validates a pattern without a value: alternatives of an or-pattern have
to bind identical sets of names, and no name may be bound twice within one
pattern. Names lists the names a pattern binds, which is what guard analysis
works with.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch.pattern")
}
