/*
Package binding implements the environment a successful match hands to its
handler: an immutable, insertion-ordered mapping from names to values.

Environments are persistent. Extending an environment with With creates a new
incarnation and shares the bindings of the original, leaving it unmodified.
A matcher can therefore try sub-patterns speculatively and simply drop a failed
extension, without ever undoing anything.

Each binding records how it captured its value: ByValue bindings hold an
independent copy; ByReference bindings alias the matched value's storage.
*/
package binding

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pmatch/maybe"
	"github.com/npillmayer/pmatch/value"
)

// Mode tells how a binding captures its value.
type Mode uint8

const (
	// ByValue bindings own an independent copy. For non-copy values this is a
	// move out of the matched value.
	ByValue Mode = iota
	// ByReference bindings alias the original storage.
	ByReference
)

func (m Mode) String() string {
	if m == ByReference {
		return "ref"
	}
	return "value"
}

// Binding is a named association to a value.
type Binding struct {
	Name  string
	Value value.Value
	Mode  Mode
}

// Moves reports whether b transfers ownership out of the matched value.
func (b Binding) Moves() bool {
	return b.Mode == ByValue && !value.IsCopy(b.Value)
}

// Env is an immutable binding environment. The zero value is the empty environment.
type Env struct {
	last   *link
	length int
}

type link struct {
	prev    *link
	binding Binding
}

// Empty returns the empty environment.
func Empty() Env {
	return Env{}
}

// With returns a new environment containing all bindings of e plus b.
// b.Name must not be bound in e.
func (e Env) With(b Binding) Env {
	assertThat(b.Name != "", "binding without a name")
	assertThat(b.Value != nil, "binding %q to nil value", b.Name)
	assertThat(!e.Has(b.Name), "name %q bound twice", b.Name)
	return Env{last: &link{prev: e.last, binding: b}, length: e.length + 1}
}

// Bind binds name to v, capturing v according to mode. By-value bindings
// store a clone of v.
func (e Env) Bind(name string, v value.Value, mode Mode) Env {
	if mode == ByValue {
		v = value.Clone(v)
	}
	return e.With(Binding{Name: name, Value: v, Mode: mode})
}

// Union returns an environment with the bindings of e followed by those of other.
func (e Env) Union(other Env) Env {
	if other.length == 0 {
		return e
	}
	if e.length == 0 {
		return other
	}
	for _, b := range other.Bindings() {
		e = e.With(b)
	}
	return e
}

func (e Env) Len() int {
	return e.length
}

func (e Env) IsEmpty() bool {
	return e.length == 0
}

func (e Env) find(name string) *link {
	for l := e.last; l != nil; l = l.prev {
		if l.binding.Name == name {
			return l
		}
	}
	return nil
}

func (e Env) Has(name string) bool {
	return e.find(name) != nil
}

// Lookup returns the value bound to name.
func (e Env) Lookup(name string) (value.Value, bool) {
	if l := e.find(name); l != nil {
		return l.binding.Value, true
	}
	return nil, false
}

// Get returns the value bound to name as an option.
func (e Env) Get(name string) maybe.Maybe[value.Value] {
	v, ok := e.Lookup(name)
	return maybe.Of(v, ok)
}

// Binding returns the complete binding for name.
func (e Env) Binding(name string) (Binding, bool) {
	if l := e.find(name); l != nil {
		return l.binding, true
	}
	return Binding{}, false
}

// Bindings returns all bindings in insertion order.
func (e Env) Bindings() []Binding {
	bs := make([]Binding, e.length)
	i := e.length
	for l := e.last; l != nil; l = l.prev {
		i--
		bs[i] = l.binding
	}
	return bs
}

// Names returns the bound names in insertion order.
func (e Env) Names() []string {
	names := make([]string, e.length)
	i := e.length
	for l := e.last; l != nil; l = l.prev {
		i--
		names[i] = l.binding.Name
	}
	return names
}

// Moved returns the names, in insertion order, whose bindings moved a value
// out of the matched value. A caller must treat the matched value as partially
// moved if Moved is non-empty.
func (e Env) Moved() []string {
	var moved []string
	for _, b := range e.Bindings() {
		if b.Moves() {
			moved = append(moved, b.Name)
		}
	}
	return moved
}

func (e Env) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, b := range e.Bindings() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.Name)
		sb.WriteString(": ")
		if b.Mode == ByReference {
			sb.WriteByte('&')
		}
		sb.WriteString(b.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("binding: "+msg, msgargs...)
		panic(msg)
	}
}
