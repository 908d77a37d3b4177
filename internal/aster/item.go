package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// ItemBuilder builds a top-level struct declaration.
type ItemBuilder[R any] struct {
	callback Invoker[*ast.Item, R]
	span     source.Span
	ident    ast.Ident
	vis      ast.Visibility
	attrs    []ast.Attribute
	generics []ast.Ident
	done     finished
}

func NewItem[N ast.IdentLike](name N) *ItemBuilder[*ast.Item] {
	return ItemWithCallback[N, *ast.Item](name, Identity[*ast.Item]{})
}

func ItemWithCallback[N ast.IdentLike, R any](name N, callback Invoker[*ast.Item, R]) *ItemBuilder[R] {
	return &ItemBuilder[R]{callback: callback, ident: ast.ToIdent(name)}
}

func (b *ItemBuilder[R]) Span(sp source.Span) *ItemBuilder[R] {
	b.done.check("item builder")
	b.span = sp
	return b
}

func (b *ItemBuilder[R]) Pub() *ItemBuilder[R] {
	b.done.check("item builder")
	b.vis = ast.VisPublic
	return b
}

func (b *ItemBuilder[R]) WithAttrs(attrs ...ast.Attribute) *ItemBuilder[R] {
	b.done.check("item builder")
	b.attrs = append(b.attrs, attrs...)
	return b
}

// Invoke receives an attribute from a nested AttrBuilder.
func (b *ItemBuilder[R]) Invoke(a ast.Attribute) *ItemBuilder[R] {
	return b.WithAttrs(a)
}

func (b *ItemBuilder[R]) Attr() *AttrBuilder[*ItemBuilder[R]] {
	b.done.check("item builder")
	return AttrWithCallback[*ItemBuilder[R]](b).Span(b.span)
}

// Generic declares type parameters, in order.
func (b *ItemBuilder[R]) Generic(names ...string) *ItemBuilder[R] {
	b.done.check("item builder")
	for _, name := range names {
		b.generics = append(b.generics, ast.ToIdent(name))
	}
	return b
}

// Struct opens a brace body; building it finishes the item.
func (b *ItemBuilder[R]) Struct() *StructDefBuilder[R] {
	b.done.check("item builder")
	return StructDefWithCallback[R](itemBodySink[R]{b}).Span(b.span)
}

// TupleStruct opens a positional body; building it finishes the item.
func (b *ItemBuilder[R]) TupleStruct() *TupleDefBuilder[R] {
	b.done.check("item builder")
	return TupleDefWithCallback[R](itemBodySink[R]{b}).Span(b.span)
}

// UnitStruct finishes the item as `struct S;`.
func (b *ItemBuilder[R]) UnitStruct() R {
	return b.BuildStruct(ast.VariantData{Kind: ast.VariantUnit, ID: ast.NewPlaceholderID()})
}

func (b *ItemBuilder[R]) BuildStruct(data ast.VariantData) R {
	b.done.finish("item builder")
	return b.callback.Invoke(&ast.Item{
		ID:       ast.NewPlaceholderID(),
		Ident:    b.ident,
		Vis:      b.vis,
		Attrs:    b.attrs,
		Generics: b.generics,
		Data:     data,
		Span:     b.span,
	})
}

type itemBodySink[R any] struct {
	b *ItemBuilder[R]
}

func (s itemBodySink[R]) Invoke(data ast.VariantData) R {
	return s.b.BuildStruct(data)
}
