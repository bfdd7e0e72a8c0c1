package pmatch

import "github.com/npillmayer/pmatch/binding"

type props struct {
	mode        binding.Mode
	fallback    string
	hasFallback bool
	traceArms   bool
}

// Option is a type to help configuring matchers at compile time.
type Option struct {
	config func(props) props
}

// Fallback appends an implicit wildcard arm with the given handler identifier.
// A matcher with a fallback never fails with ErrNoArmMatched. The fallback arm's
// index is the number of explicit arms.
func Fallback(handler string) Option {
	conf := func(p props) props {
		p.fallback, p.hasFallback = handler, true
		return p
	}
	return Option{config: conf}
}

// BindByReference lets plain binding patterns alias the matched value instead of
// binding an independent copy. Binder patterns state their mode explicitly and
// are not affected.
func BindByReference() Option {
	conf := func(p props) props {
		p.mode = binding.ByReference
		return p
	}
	return Option{config: conf}
}

// TraceArms switches on tracing of every arm attempt, including a tree print of
// the arm's pattern. Traces are emitted at debug level with key 'pmatch'.
func TraceArms(on bool) Option {
	conf := func(p props) props {
		p.traceArms = on
		return p
	}
	return Option{config: conf}
}
