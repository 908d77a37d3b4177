package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// AstBuilder is the entry point. It only carries the span that every builder
// it starts inherits.
type AstBuilder struct {
	span source.Span
}

func New() AstBuilder { return AstBuilder{} }

func (b AstBuilder) Span(sp source.Span) AstBuilder {
	b.span = sp
	return b
}

func (b AstBuilder) Ident(name string) ast.Ident {
	return ast.ToIdent(name)
}

func (b AstBuilder) Attr() *AttrBuilder[ast.Attribute] {
	return NewAttr().Span(b.span)
}

func (b AstBuilder) Ty() *TypeBuilder[*ast.Type] {
	return NewTy().Span(b.span)
}

func (b AstBuilder) Path() *PathBuilder[ast.Path] {
	return NewPath().Span(b.span)
}

func (b AstBuilder) StructField(name string) *StructFieldBuilder[ast.StructField] {
	return NewNamedField(name).Span(b.span)
}

func (b AstBuilder) TupleField() *StructFieldBuilder[ast.StructField] {
	return NewUnnamedField().Span(b.span)
}

func (b AstBuilder) StructDef() *StructDefBuilder[ast.VariantData] {
	return NewStructDef().Span(b.span)
}

func (b AstBuilder) TupleDef() *TupleDefBuilder[ast.VariantData] {
	return NewTupleDef().Span(b.span)
}

func (b AstBuilder) Item(name string) *ItemBuilder[*ast.Item] {
	return NewItem(name).Span(b.span)
}
