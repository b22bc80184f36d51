package signature

// Sort is a named type, optionally annotated with a human description.
type Sort struct {
	Name        string
	Description string
}

// Operation is a named, typed function symbol: an ordered tuple of
// domain sort names and a codomain sort name. Arity is derived, not
// stored, so it can never drift from len(Domain).
type Operation struct {
	Name     string
	Domain   []string
	Codomain string
}

// Arity returns the number of arguments this operation takes. 0 models a
// constant, 1 a unary operation, 2 a binary operation.
func (o Operation) Arity() int { return len(o.Domain) }

// Clone returns a copy with its own domain slice.
func (o Operation) Clone() Operation {
	dom := make([]string, len(o.Domain))
	copy(dom, o.Domain)
	return Operation{Name: o.Name, Domain: dom, Codomain: o.Codomain}
}

// Binary constructs an operation of arity 2 over a single sort.
func Binary(name, sort string) Operation {
	return Operation{Name: name, Domain: []string{sort, sort}, Codomain: sort}
}

// Unary constructs an operation of arity 1 from domSort to codSort.
func Unary(name, domSort, codSort string) Operation {
	return Operation{Name: name, Domain: []string{domSort}, Codomain: codSort}
}

// Nullary constructs a constant-valued operation (arity 0) of the given sort.
func Nullary(name, sort string) Operation {
	return Operation{Name: name, Domain: nil, Codomain: sort}
}
