package pattern

import (
	"strings"

	"github.com/npillmayer/pmatch/value"
)

// Pattern is a matchable shape. The interface is sealed.
type Pattern interface {
	String() string
	isPattern()
}

// Wildcard matches any value and binds nothing.
type Wildcard struct{}

// Binding matches any value and binds Name to it.
type Binding struct {
	Name string
}

// Literal matches a scalar value equal to Value.
type Literal struct {
	Value value.Value
}

// Range matches an int or char value v with Lo <= v <= Hi.
type Range struct {
	Lo, Hi value.Value
}

// Or matches if any of its alternatives matches. Alternatives are tried left to right.
type Or struct {
	Alts []Pattern
}

// Tuple matches a tuple of equal arity elementwise.
type Tuple struct {
	Elems []Pattern
}

// FieldPattern is a pattern for a named struct field.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// Struct matches a struct value of the same name. With Rest unset, the struct
// must not have fields other than the ones listed.
type Struct struct {
	Name   string
	Fields []FieldPattern
	Rest   bool
}

// Variant matches a variant of enum Enum with case Case. With Ellipsis set the
// payload is not inspected. Decl is optional; if present, Check verifies Case and
// the payload arity against it.
type Variant struct {
	Enum     string
	Case     string
	Payload  []Pattern
	Ellipsis bool
	Decl     *value.Enum
}

// Binder matches if Inner does, and binds Name to the whole matched value.
// With ByRef set, the binding aliases the matched value instead of copying it.
type Binder struct {
	Inner Pattern
	Name  string
	ByRef bool
}

func (Wildcard) isPattern() {}
func (Binding) isPattern()  {}
func (Literal) isPattern()  {}
func (Range) isPattern()    {}
func (Or) isPattern()       {}
func (Tuple) isPattern()    {}
func (Struct) isPattern()   {}
func (Variant) isPattern()  {}
func (Binder) isPattern()   {}

// --- Constructors ----------------------------------------------------------

// Any returns the wildcard pattern.
func Any() Wildcard { return Wildcard{} }

// Bind returns a pattern binding name.
func Bind(name string) Binding { return Binding{Name: name} }

func LitInt(n int64) Literal  { return Literal{Value: value.Int(n)} }
func LitChar(c rune) Literal  { return Literal{Value: value.Char(c)} }
func LitBool(b bool) Literal  { return Literal{Value: value.Bool(b)} }
func LitStr(s string) Literal { return Literal{Value: value.Str(s)} }

func IntRange(lo, hi int64) Range {
	return Range{Lo: value.Int(lo), Hi: value.Int(hi)}
}

func CharRange(lo, hi rune) Range {
	return Range{Lo: value.Char(lo), Hi: value.Char(hi)}
}

// OneOf combines alternatives into an or-pattern.
func OneOf(alts ...Pattern) Or {
	return Or{Alts: alts}
}

// TupleOf creates a tuple pattern.
func TupleOf(elems ...Pattern) Tuple {
	return Tuple{Elems: elems}
}

// Field creates a pattern for struct field name.
func Field(name string, p Pattern) FieldPattern {
	return FieldPattern{Name: name, Pattern: p}
}

// Pun creates the field shorthand `name`, which binds field name to a variable
// of the same name.
func Pun(name string) FieldPattern {
	return FieldPattern{Name: name, Pattern: Bind(name)}
}

// StructOf creates a struct pattern requiring exact field coverage.
func StructOf(name string, fields ...FieldPattern) Struct {
	return Struct{Name: name, Fields: fields}
}

// WithRest returns a copy of s which ignores unlisted fields.
func (s Struct) WithRest() Struct {
	s.Rest = true
	return s
}

// Ctor creates a variant pattern for an enum which is known by name only.
func Ctor(enum, cse string, payload ...Pattern) Variant {
	return Variant{Enum: enum, Case: cse, Payload: payload}
}

// VariantOf creates a variant pattern for a declared enum.
func VariantOf(decl *value.Enum, cse string, payload ...Pattern) Variant {
	return Variant{Enum: decl.Name(), Case: cse, Payload: payload, Decl: decl}
}

// Etc returns a copy of v matching any payload, like `Case(..)`.
func (v Variant) Etc() Variant {
	v.Ellipsis = true
	v.Payload = nil
	return v
}

// At creates `name @ inner`.
func At(name string, inner Pattern) Binder {
	return Binder{Inner: inner, Name: name}
}

// Ref creates `ref name`, an aliasing binding of the whole value.
func Ref(name string) Binder {
	return Binder{Inner: Wildcard{}, Name: name, ByRef: true}
}

// RefAt creates `ref name @ inner`.
func RefAt(name string, inner Pattern) Binder {
	return Binder{Inner: inner, Name: name, ByRef: true}
}

// --- Printing --------------------------------------------------------------

func (Wildcard) String() string  { return "_" }
func (p Binding) String() string { return p.Name }
func (p Literal) String() string { return str(p.Value) }
func (p Range) String() string   { return str(p.Lo) + "..=" + str(p.Hi) }

func (p Or) String() string {
	return joinPatterns(p.Alts, " | ")
}

func (p Tuple) String() string {
	if len(p.Elems) == 1 {
		return "(" + str(p.Elems[0]) + ",)"
	}
	return "(" + joinPatterns(p.Elems, ", ") + ")"
}

func (p Struct) String() string {
	parts := make([]string, 0, len(p.Fields)+1)
	for _, f := range p.Fields {
		if b, ok := f.Pattern.(Binding); ok && b.Name == f.Name {
			parts = append(parts, f.Name)
			continue
		}
		parts = append(parts, f.Name+": "+str(f.Pattern))
	}
	if p.Rest {
		parts = append(parts, "..")
	}
	if len(parts) == 0 {
		return p.Name + " {}"
	}
	return p.Name + " { " + strings.Join(parts, ", ") + " }"
}

func (p Variant) String() string {
	s := p.Enum + "::" + p.Case
	switch {
	case p.Ellipsis:
		return s + "(..)"
	case len(p.Payload) == 0:
		return s
	}
	return s + "(" + joinPatterns(p.Payload, ", ") + ")"
}

func (p Binder) String() string {
	name := p.Name
	if p.ByRef {
		name = "ref " + name
	}
	switch inner := p.Inner.(type) {
	case Wildcard:
		return name
	case Or:
		return name + " @ (" + inner.String() + ")"
	}
	return name + " @ " + str(p.Inner)
}

func joinPatterns(pats []Pattern, sep string) string {
	parts := make([]string, len(pats))
	for i, p := range pats {
		parts[i] = str(p)
	}
	return strings.Join(parts, sep)
}

type stringer interface {
	String() string
}

func str(s stringer) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
