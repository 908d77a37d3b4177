package ast

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"aster/internal/source"
)

// Symbols is the process-wide identifier table.
var Symbols = source.NewInterner()

// ErrInvalidIdent is matched by every *IdentError.
var ErrInvalidIdent = errors.New("invalid identifier")

// IdentError reports a string that cannot become an identifier.
type IdentError struct {
	Input  string
	Reason string
}

func (e *IdentError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Input, e.Reason)
}

func (e *IdentError) Is(target error) bool { return target == ErrInvalidIdent }

// Ident is an interned identifier. Equal names share a Sym.
type Ident struct {
	Sym source.StringID
}

// IdentLike is anything that converts to an Ident without ambiguity.
type IdentLike interface {
	string | Ident
}

// NewIdent normalizes s to NFC, checks its shape and interns it.
func NewIdent(s string) (Ident, error) {
	if s == "" {
		return Ident{}, &IdentError{Input: s, Reason: "empty"}
	}
	if !utf8.ValidString(s) {
		return Ident{}, &IdentError{Input: s, Reason: "not valid UTF-8"}
	}
	n := norm.NFC.String(s)
	for i, r := range n {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return Ident{}, &IdentError{Input: s, Reason: fmt.Sprintf("unexpected %q at byte %d", r, i)}
		}
	}
	return Ident{Sym: Symbols.Intern(n)}, nil
}

// ToIdent converts v to an Ident. Invalid strings and the zero Ident
// panic with *IdentError.
func ToIdent[T IdentLike](v T) Ident {
	switch x := any(v).(type) {
	case Ident:
		if !x.IsValid() {
			panic(&IdentError{Reason: "zero identifier"})
		}
		return x
	case string:
		id, err := NewIdent(x)
		if err != nil {
			panic(err)
		}
		return id
	}
	panic("unreachable")
}

func (id Ident) IsValid() bool { return id.Sym != source.NoStringID }

func (id Ident) String() string {
	s, _ := Symbols.Lookup(id.Sym)
	return s
}
