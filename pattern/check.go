package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pmatch/value"
	"golang.org/x/exp/slices"
)

// ErrInvalid is the category of all errors reported by Check.
var ErrInvalid = errors.New("invalid pattern")

// Kinds of pattern validation errors. Unknown variant cases and payload arity
// mismatches of declared variants are reported as value.ErrUnknownCase and
// value.ErrArity.
var (
	ErrNilPattern       = errors.New("nil pattern")
	ErrEmptyName        = errors.New("empty binding name")
	ErrDuplicateBinding = errors.New("name bound more than once")
	ErrInconsistentOr   = errors.New("alternatives bind different names")
	ErrEmptyOr          = errors.New("or-pattern without alternatives")
	ErrBadLiteral       = errors.New("literal is not a scalar value")
	ErrBadRange         = errors.New("range bounds must be ints or chars of the same kind")
	ErrEmptyRange       = errors.New("range is empty")
	ErrDuplicateField   = errors.New("field listed more than once")
	ErrEllipsisPayload  = errors.New("ellipsis variant pattern with payload patterns")
)

// Error is a pattern validation error. It locates the offending sub-pattern by
// a path from the pattern's root, with tuple and payload positions written as
// `.0`, struct fields as `.name`, or-alternatives as `|1` and binders as `@`.
type Error struct {
	Path   string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalid.Error())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap makes errors.Is work for ErrInvalid as well as for the error kind.
func (e *Error) Unwrap() []error {
	return []error{ErrInvalid, e.Kind}
}

func invalid(path string, kind error, format string, args ...interface{}) *Error {
	err := &Error{Path: path, Kind: kind, Detail: fmt.Sprintf(format, args...)}
	tracer().Debugf("%s", err.Error())
	return err
}

// Check validates p. It returns nil or an *Error.
func Check(p Pattern) error {
	if _, err := check(p, ""); err != nil {
		return err
	}
	return nil
}

// check returns the names bound by p, in binding order.
func check(p Pattern, path string) ([]string, *Error) {
	switch p := p.(type) {
	case nil:
		return nil, invalid(path, ErrNilPattern, "")
	case Wildcard:
		return nil, nil
	case Binding:
		if p.Name == "" {
			return nil, invalid(path, ErrEmptyName, "")
		}
		return []string{p.Name}, nil
	case Literal:
		switch p.Value.(type) {
		case value.Int, value.Char, value.Bool, value.Str:
			return nil, nil
		}
		return nil, invalid(path, ErrBadLiteral, "%s", str(p.Value))
	case Range:
		return nil, checkRange(p, path)
	case Or:
		return checkOr(p, path)
	case Tuple:
		return checkSeq(p.Elems, path, nil)
	case Struct:
		var names []string
		seen := make(map[string]bool, len(p.Fields))
		for _, f := range p.Fields {
			fpath := path + "." + f.Name
			if seen[f.Name] {
				return nil, invalid(fpath, ErrDuplicateField, "%s.%s", p.Name, f.Name)
			}
			seen[f.Name] = true
			sub, err := check(f.Pattern, fpath)
			if err != nil {
				return nil, err
			}
			if names, err = disjointUnion(names, sub, fpath); err != nil {
				return nil, err
			}
		}
		return names, nil
	case Variant:
		return checkVariant(p, path)
	case Binder:
		if p.Name == "" {
			return nil, invalid(path, ErrEmptyName, "")
		}
		inner, err := check(p.Inner, path+"@")
		if err != nil {
			return nil, err
		}
		return disjointUnion(inner, []string{p.Name}, path)
	}
	panic(fmt.Sprintf("pattern: unknown pattern type %T", p))
}

func checkRange(p Range, path string) *Error {
	switch lo := p.Lo.(type) {
	case value.Int:
		if hi, ok := p.Hi.(value.Int); ok {
			if lo > hi {
				return invalid(path, ErrEmptyRange, "%s", p)
			}
			return nil
		}
	case value.Char:
		if hi, ok := p.Hi.(value.Char); ok {
			if lo > hi {
				return invalid(path, ErrEmptyRange, "%s", p)
			}
			return nil
		}
	}
	return invalid(path, ErrBadRange, "%s", p)
}

func checkOr(p Or, path string) ([]string, *Error) {
	if len(p.Alts) == 0 {
		return nil, invalid(path, ErrEmptyOr, "")
	}
	var first, firstSorted []string
	for i, alt := range p.Alts {
		names, err := check(alt, fmt.Sprintf("%s|%d", path, i))
		if err != nil {
			return nil, err
		}
		sorted := slices.Clone(names)
		slices.Sort(sorted)
		if i == 0 {
			first, firstSorted = names, sorted
			continue
		}
		if !slices.Equal(firstSorted, sorted) {
			return nil, invalid(path, ErrInconsistentOr,
				"alternative 0 binds {%s}, alternative %d binds {%s}",
				strings.Join(firstSorted, ", "), i, strings.Join(sorted, ", "))
		}
	}
	return first, nil
}

func checkSeq(pats []Pattern, path string, names []string) ([]string, *Error) {
	for i, sub := range pats {
		epath := fmt.Sprintf("%s.%d", path, i)
		subnames, err := check(sub, epath)
		if err != nil {
			return nil, err
		}
		if names, err = disjointUnion(names, subnames, epath); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func checkVariant(p Variant, path string) ([]string, *Error) {
	if p.Ellipsis && len(p.Payload) > 0 {
		return nil, invalid(path, ErrEllipsisPayload, "%s::%s", p.Enum, p.Case)
	}
	if p.Decl != nil {
		if p.Decl.Name() != p.Enum {
			return nil, invalid(path, value.ErrUnknownCase, "pattern for enum %s declared as %s",
				p.Enum, p.Decl.Name())
		}
		c, ok := p.Decl.Lookup(p.Case)
		if !ok {
			return nil, invalid(path, value.ErrUnknownCase, "%s::%s", p.Enum, p.Case)
		}
		if !p.Ellipsis && c.Arity != len(p.Payload) {
			return nil, invalid(path, value.ErrArity, "%s::%s takes %d values, pattern has %d",
				p.Enum, p.Case, c.Arity, len(p.Payload))
		}
	}
	if p.Ellipsis {
		return nil, nil
	}
	return checkSeq(p.Payload, path, nil)
}

func disjointUnion(names, more []string, path string) ([]string, *Error) {
	for _, n := range more {
		if slices.Contains(names, n) {
			return nil, invalid(path, ErrDuplicateBinding, "%s", n)
		}
		names = append(names, n)
	}
	return names, nil
}

// Names returns the names bound by p in binding order. For or-patterns the
// names of the first alternative are reported, which for a valid pattern are the
// names of every alternative.
func Names(p Pattern) []string {
	var names []string
	var collect func(Pattern)
	collect = func(p Pattern) {
		switch p := p.(type) {
		case Binding:
			names = append(names, p.Name)
		case Or:
			if len(p.Alts) > 0 {
				collect(p.Alts[0])
			}
		case Tuple:
			for _, e := range p.Elems {
				collect(e)
			}
		case Struct:
			for _, f := range p.Fields {
				collect(f.Pattern)
			}
		case Variant:
			if !p.Ellipsis {
				for _, e := range p.Payload {
					collect(e)
				}
			}
		case Binder:
			collect(p.Inner)
			names = append(names, p.Name)
		}
	}
	collect(p)
	return names
}

// IsCatchAll reports whether p matches every value: wildcards, bindings,
// binders over a catch-all, and or-patterns with a catch-all alternative.
func IsCatchAll(p Pattern) bool {
	switch p := p.(type) {
	case Wildcard, Binding:
		return true
	case Binder:
		return IsCatchAll(p.Inner)
	case Or:
		for _, alt := range p.Alts {
			if IsCatchAll(alt) {
				return true
			}
		}
	}
	return false
}
