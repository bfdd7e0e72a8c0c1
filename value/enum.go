package value

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCase is returned if a variant names a case its enum does not declare.
	ErrUnknownCase = errors.New("unknown enum case")
	// ErrArity is returned if a variant payload does not fit the arity of its case.
	ErrArity = errors.New("payload arity mismatch")
)

// CaseDecl declares a single case of an enum together with its payload arity.
type CaseDecl struct {
	Name  string
	Arity int
}

// Case is a shortcut for creating a CaseDecl.
func Case(name string, arity int) CaseDecl {
	return CaseDecl{Name: name, Arity: arity}
}

// Enum declares an algebraic data type: a name and a finite, ordered set of cases.
//
//	optInt := value.NewEnum("OptionalInt", value.Case("Value", 1), value.Case("Missing", 0))
//	seven := optInt.MustMake("Value", value.Int(7))
type Enum struct {
	name  string
	cases []CaseDecl
	index map[string]int
}

// NewEnum declares an enum. Declaring a case twice panics.
func NewEnum(name string, cases ...CaseDecl) *Enum {
	e := &Enum{
		name:  name,
		cases: append([]CaseDecl(nil), cases...),
		index: make(map[string]int, len(cases)),
	}
	for i, c := range e.cases {
		_, dup := e.index[c.Name]
		assertThat(!dup, "duplicate case %s::%s", name, c.Name)
		assertThat(c.Arity >= 0, "negative arity for case %s::%s", name, c.Name)
		e.index[c.Name] = i
	}
	return e
}

func (e *Enum) Name() string {
	return e.name
}

// Cases returns the declared cases in declaration order.
func (e *Enum) Cases() []CaseDecl {
	return append([]CaseDecl(nil), e.cases...)
}

// Lookup finds the declaration for a case name.
func (e *Enum) Lookup(caseName string) (CaseDecl, bool) {
	i, ok := e.index[caseName]
	if !ok {
		return CaseDecl{}, false
	}
	return e.cases[i], true
}

// Make creates a variant of case caseName. It fails with ErrUnknownCase or ErrArity.
func (e *Enum) Make(caseName string, payload ...Value) (*Variant, error) {
	c, ok := e.Lookup(caseName)
	if !ok {
		return nil, fmt.Errorf("%w: %s::%s", ErrUnknownCase, e.name, caseName)
	}
	if c.Arity != len(payload) {
		return nil, fmt.Errorf("%w: %s::%s takes %d values, got %d", ErrArity,
			e.name, caseName, c.Arity, len(payload))
	}
	for i, p := range payload {
		assertThat(p != nil, "payload #%d of %s::%s is nil", i, e.name, caseName)
	}
	return &Variant{enum: e, cse: caseName, payload: append([]Value(nil), payload...)}, nil
}

// MustMake is like Make, but panics on error.
func (e *Enum) MustMake(caseName string, payload ...Value) *Variant {
	v, err := e.Make(caseName, payload...)
	if err != nil {
		panic(err.Error())
	}
	return v
}
