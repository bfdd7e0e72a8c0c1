package value

// Equal reports deep structural equality of a and b. Struct fields are compared
// by name, regardless of declaration order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Int, Char, Bool, Str:
		return a == b
	case *Tuple:
		y := b.(*Tuple)
		return x == y || equalSeq(x.elems, y.elems)
	case *Struct:
		y := b.(*Struct)
		if x == y {
			return true
		}
		if x.name != y.name || len(x.fields) != len(y.fields) {
			return false
		}
		for _, f := range x.fields {
			if g, ok := y.Field(f.Name); !ok || !Equal(f.Value, g) {
				return false
			}
		}
		return true
	case *Variant:
		y := b.(*Variant)
		if x == y {
			return true
		}
		return x.enum.name == y.enum.name && x.cse == y.cse && equalSeq(x.payload, y.payload)
	}
	return false
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy of v. Scalars are returned unchanged.
func Clone(v Value) Value {
	switch x := v.(type) {
	case *Tuple:
		return &Tuple{elems: cloneSeq(x.elems)}
	case *Struct:
		s := &Struct{
			name:   x.name,
			fields: make([]Field, len(x.fields)),
			index:  make(map[string]int, len(x.fields)),
		}
		for i, f := range x.fields {
			s.fields[i] = Field{Name: f.Name, Value: Clone(f.Value)}
			s.index[f.Name] = i
		}
		return s
	case *Variant:
		return &Variant{enum: x.enum, cse: x.cse, payload: cloneSeq(x.payload)}
	}
	return v
}

func cloneSeq(vals []Value) []Value {
	if vals == nil {
		return nil
	}
	c := make([]Value, len(vals))
	for i, v := range vals {
		c[i] = Clone(v)
	}
	return c
}

// IsCopy reports whether binding v by value leaves the original intact, i.e.
// whether v is made from copy kinds only. Int, Char and Bool are copy kinds;
// a tuple is if all of its elements are. Str, structs and variants are not:
// binding them by value moves them out of the matched value.
func IsCopy(v Value) bool {
	switch x := v.(type) {
	case Int, Char, Bool:
		return true
	case *Tuple:
		for _, e := range x.elems {
			if !IsCopy(e) {
				return false
			}
		}
		return true
	}
	return false
}
