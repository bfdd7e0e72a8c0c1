/*
Package value defines the closed set of values the matcher operates on.

A Value is one of

	Int | Char | Bool | Str | *Tuple | *Struct | *Variant

Compound values are pointers. Two values are the same storage iff they are
the same pointer, which is what by-reference bindings rely on. Values are
immutable after construction; accessors returning slices return fresh copies.

Variants are created from an Enum declaration only, which guarantees that their
case name is drawn from the enum's case set and that the payload arity fits the
case.
*/
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the tag of a value.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindChar
	KindBool
	KindStr
	KindTuple
	KindStruct
	KindVariant
)

var kindNames = [...]string{"<invalid>", "int", "char", "bool", "str", "tuple", "struct", "variant"}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return kindNames[0]
	}
	return kindNames[k]
}

// Value is a matchable value. The interface is sealed.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// --- Scalars ---------------------------------------------------------------

type Int int64
type Char rune
type Bool bool
type Str string

func (Int) Kind() Kind  { return KindInt }
func (Char) Kind() Kind { return KindChar }
func (Bool) Kind() Kind { return KindBool }
func (Str) Kind() Kind  { return KindStr }

func (Int) isValue()  {}
func (Char) isValue() {}
func (Bool) isValue() {}
func (Str) isValue()  {}

func (n Int) String() string  { return strconv.FormatInt(int64(n), 10) }
func (c Char) String() string { return strconv.QuoteRune(rune(c)) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (s Str) String() string  { return strconv.Quote(string(s)) }

// --- Tuple -----------------------------------------------------------------

// Tuple is an ordered, fixed-length sequence of values.
type Tuple struct {
	elems []Value
}

// NewTuple creates a tuple from elems. The slice is copied.
func NewTuple(elems ...Value) *Tuple {
	for i, e := range elems {
		assertThat(e != nil, "tuple element #%d is nil", i)
	}
	return &Tuple{elems: append([]Value(nil), elems...)}
}

func (*Tuple) Kind() Kind { return KindTuple }
func (*Tuple) isValue()   {}

func (t *Tuple) Len() int {
	return len(t.elems)
}

func (t *Tuple) At(i int) Value {
	return t.elems[i]
}

// Elems returns a copy of the tuple's elements.
func (t *Tuple) Elems() []Value {
	return append([]Value(nil), t.elems...)
}

func (t *Tuple) String() string {
	if len(t.elems) == 1 {
		return "(" + t.elems[0].String() + ",)"
	}
	return "(" + join(t.elems) + ")"
}

// --- Struct ----------------------------------------------------------------

// Field is a named struct member.
type Field struct {
	Name  string
	Value Value
}

// F is a shortcut for creating a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Struct is a named record. Fields keep their declaration order.
type Struct struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewStruct creates a struct value. Duplicate field names panic.
func NewStruct(name string, fields ...Field) *Struct {
	s := &Struct{
		name:   name,
		fields: append([]Field(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range s.fields {
		_, dup := s.index[f.Name]
		assertThat(!dup, "duplicate field %q in struct %s", f.Name, name)
		assertThat(f.Value != nil, "field %s.%s is nil", name, f.Name)
		s.index[f.Name] = i
	}
	return s
}

func (*Struct) Kind() Kind { return KindStruct }
func (*Struct) isValue()   {}

func (s *Struct) Name() string {
	return s.name
}

func (s *Struct) Len() int {
	return len(s.fields)
}

// Field returns the value of the field called name.
func (s *Struct) Field(name string) (Value, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Value, true
}

// Fields returns a copy of the struct's fields in declaration order.
func (s *Struct) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

func (s *Struct) String() string {
	if len(s.fields) == 0 {
		return s.name + " {}"
	}
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteString(" { ")
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Value.String())
	}
	b.WriteString(" }")
	return b.String()
}

// --- Variant ---------------------------------------------------------------

// Variant is a case of an algebraic data type with a positional payload.
type Variant struct {
	enum    *Enum
	cse     string
	payload []Value
}

func (*Variant) Kind() Kind { return KindVariant }
func (*Variant) isValue()   {}

// Enum returns the declaration the variant was made from.
func (v *Variant) Enum() *Enum {
	return v.enum
}

func (v *Variant) EnumName() string {
	return v.enum.name
}

func (v *Variant) Case() string {
	return v.cse
}

func (v *Variant) Len() int {
	return len(v.payload)
}

func (v *Variant) At(i int) Value {
	return v.payload[i]
}

// Payload returns a copy of the variant's payload.
func (v *Variant) Payload() []Value {
	return append([]Value(nil), v.payload...)
}

func (v *Variant) String() string {
	s := v.enum.name + "::" + v.cse
	if len(v.payload) == 0 {
		return s
	}
	return s + "(" + join(v.payload) + ")"
}

// ---------------------------------------------------------------------------

func join(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("value: "+msg, msgargs...)
		panic(msg)
	}
}
