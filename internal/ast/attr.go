package ast

import "aster/internal/source"

// AttrStyle says whether an attribute applies to the enclosing node (`#![..]`)
// or to the following one (`#[..]`).
type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// Attribute описывает аннотацию вида `#[name(args...)]`.
type Attribute struct {
	Style AttrStyle
	Value MetaItem
	// SugaredDoc is set for `/// text` doc comments lowered to `#[doc = "text"]`.
	SugaredDoc bool
	Span       source.Span
}

type MetaKind uint8

const (
	MetaWord      MetaKind = iota // name
	MetaList                      // name(a, b = "c")
	MetaNameValue                 // name = "lit"
)

// MetaItem is the structured payload of an attribute.
type MetaItem struct {
	Kind  MetaKind
	Name  string
	List  []MetaItem // MetaList only
	Value Lit        // MetaNameValue only
	Span  source.Span
}

type LitKind uint8

const (
	LitStr LitKind = iota
	LitInt
	LitBool
)

// Lit is a literal on the right-hand side of a name-value meta item.
type Lit struct {
	Kind LitKind
	Str  string
	Int  uint64
	Bool bool
	Span source.Span
}

func StrLit(s string) Lit { return Lit{Kind: LitStr, Str: s} }
func IntLit(n uint64) Lit { return Lit{Kind: LitInt, Int: n} }
func BoolLit(b bool) Lit  { return Lit{Kind: LitBool, Bool: b} }

func Word(name string) MetaItem {
	return MetaItem{Kind: MetaWord, Name: name}
}

func NameValue(name string, lit Lit) MetaItem {
	return MetaItem{Kind: MetaNameValue, Name: name, Value: lit}
}

func List(name string, items ...MetaItem) MetaItem {
	return MetaItem{Kind: MetaList, Name: name, List: items}
}
