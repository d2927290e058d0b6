package gather

// symbolToken is the hidden payload behind a Symbol. The name is for error
// messages only; identity is what makes two symbols equal.
type symbolToken struct {
	name string
}

// Symbol is an opaque handle a gatherer exports so that later-declared
// artifacts can name it as a dependency. Symbols compare by identity, never
// by name: two NewSymbol("Trace") calls yield distinct, unrelated symbols.
type Symbol *symbolToken

// NewSymbol mints a fresh dependency symbol. The name appears in diagnostics
// when a dependency cannot be resolved.
func NewSymbol(name string) Symbol {
	return &symbolToken{name: name}
}

// SymbolName returns the diagnostic name of s, or "<nil>" for a nil symbol.
func SymbolName(s Symbol) string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}
