package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// StructDefBuilder collects the named fields of `struct S { ... }`.
type StructDefBuilder[R any] struct {
	callback Invoker[ast.VariantData, R]
	span     source.Span
	fields   []ast.StructField
	done     finished
}

func NewStructDef() *StructDefBuilder[ast.VariantData] {
	return StructDefWithCallback[ast.VariantData](Identity[ast.VariantData]{})
}

func StructDefWithCallback[R any](callback Invoker[ast.VariantData, R]) *StructDefBuilder[R] {
	return &StructDefBuilder[R]{callback: callback}
}

func (b *StructDefBuilder[R]) Span(sp source.Span) *StructDefBuilder[R] {
	b.done.check("struct def builder")
	b.span = sp
	return b
}

// Field opens a named field that returns to this builder once its type is set.
func (b *StructDefBuilder[R]) Field(name string) *StructFieldBuilder[*StructDefBuilder[R]] {
	b.done.check("struct def builder")
	return NamedFieldWithCallback[string, *StructDefBuilder[R]](name, b).Span(b.span)
}

// WithFields appends finished fields. Positional fields do not belong in a
// brace struct and panic.
func (b *StructDefBuilder[R]) WithFields(fields ...ast.StructField) *StructDefBuilder[R] {
	for _, f := range fields {
		b.Invoke(f)
	}
	return b
}

// Invoke receives a finished field.
func (b *StructDefBuilder[R]) Invoke(f ast.StructField) *StructDefBuilder[R] {
	b.done.check("struct def builder")
	if _, ok := f.Kind.(ast.NamedField); !ok {
		panic("aster: positional field in a brace struct")
	}
	b.fields = append(b.fields, f)
	return b
}

func (b *StructDefBuilder[R]) Build() R {
	b.done.finish("struct def builder")
	return b.callback.Invoke(ast.VariantData{
		Kind:   ast.VariantStruct,
		Fields: b.fields,
		ID:     ast.NewPlaceholderID(),
	})
}

// TupleDefBuilder collects the positional fields of `struct S(...);`.
type TupleDefBuilder[R any] struct {
	callback Invoker[ast.VariantData, R]
	span     source.Span
	fields   []ast.StructField
	done     finished
}

func NewTupleDef() *TupleDefBuilder[ast.VariantData] {
	return TupleDefWithCallback[ast.VariantData](Identity[ast.VariantData]{})
}

func TupleDefWithCallback[R any](callback Invoker[ast.VariantData, R]) *TupleDefBuilder[R] {
	return &TupleDefBuilder[R]{callback: callback}
}

func (b *TupleDefBuilder[R]) Span(sp source.Span) *TupleDefBuilder[R] {
	b.done.check("tuple def builder")
	b.span = sp
	return b
}

// Field opens the next positional field.
func (b *TupleDefBuilder[R]) Field() *StructFieldBuilder[*TupleDefBuilder[R]] {
	b.done.check("tuple def builder")
	return UnnamedFieldWithCallback[*TupleDefBuilder[R]](b).Span(b.span)
}

func (b *TupleDefBuilder[R]) WithFields(fields ...ast.StructField) *TupleDefBuilder[R] {
	for _, f := range fields {
		b.Invoke(f)
	}
	return b
}

func (b *TupleDefBuilder[R]) Invoke(f ast.StructField) *TupleDefBuilder[R] {
	b.done.check("tuple def builder")
	if _, ok := f.Kind.(ast.UnnamedField); !ok {
		panic("aster: named field in a tuple struct")
	}
	b.fields = append(b.fields, f)
	return b
}

func (b *TupleDefBuilder[R]) Build() R {
	b.done.finish("tuple def builder")
	return b.callback.Invoke(ast.VariantData{
		Kind:   ast.VariantTuple,
		Fields: b.fields,
		ID:     ast.NewPlaceholderID(),
	})
}
