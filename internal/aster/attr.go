package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// AttrBuilder builds one attribute.
type AttrBuilder[R any] struct {
	callback Invoker[ast.Attribute, R]
	span     source.Span
	style    ast.AttrStyle
	done     finished
}

// NewAttr returns an attribute builder whose result is the attribute itself.
func NewAttr() *AttrBuilder[ast.Attribute] {
	return AttrWithCallback[ast.Attribute](Identity[ast.Attribute]{})
}

func AttrWithCallback[R any](callback Invoker[ast.Attribute, R]) *AttrBuilder[R] {
	return &AttrBuilder[R]{callback: callback}
}

func (b *AttrBuilder[R]) Span(sp source.Span) *AttrBuilder[R] {
	b.done.check("attribute builder")
	b.span = sp
	return b
}

// Inner switches to the `#![..]` form.
func (b *AttrBuilder[R]) Inner() *AttrBuilder[R] {
	b.done.check("attribute builder")
	b.style = ast.AttrInner
	return b
}

// Build wraps meta into an attribute. Meta items without a span get the
// builder span.
func (b *AttrBuilder[R]) Build(meta ast.MetaItem) R {
	return b.build(meta, false)
}

func (b *AttrBuilder[R]) build(meta ast.MetaItem, sugared bool) R {
	b.done.finish("attribute builder")
	if meta.Span.IsDummy() {
		meta.Span = b.span
	}
	return b.callback.Invoke(ast.Attribute{
		Style:      b.style,
		Value:      meta,
		SugaredDoc: sugared,
		Span:       b.span,
	})
}

// Word builds `#[name]`.
func (b *AttrBuilder[R]) Word(name string) R {
	return b.Build(ast.Word(name))
}

// NameValue builds `#[name = lit]`.
func (b *AttrBuilder[R]) NameValue(name string, lit ast.Lit) R {
	if lit.Span.IsDummy() {
		lit.Span = b.span
	}
	return b.Build(ast.NameValue(name, lit))
}

func (b *AttrBuilder[R]) NameValueStr(name, value string) R {
	return b.NameValue(name, ast.StrLit(value))
}

// List opens `#[name(...)]`.
func (b *AttrBuilder[R]) List(name string) *MetaListBuilder[R] {
	b.done.check("attribute builder")
	return MetaListWithCallback[R](name, attrMetaSink[R]{b}).Span(b.span)
}

// Doc builds a doc comment, printed as `/// text`.
func (b *AttrBuilder[R]) Doc(text string) R {
	lit := ast.StrLit(text)
	lit.Span = b.span
	return b.build(ast.NameValue("doc", lit), true)
}

func (b *AttrBuilder[R]) Derive(traits ...string) R {
	return b.List("derive").Words(traits...).Build()
}

func (b *AttrBuilder[R]) Allow(lints ...string) R {
	return b.List("allow").Words(lints...).Build()
}

type attrMetaSink[R any] struct {
	b *AttrBuilder[R]
}

func (s attrMetaSink[R]) Invoke(meta ast.MetaItem) R {
	return s.b.Build(meta)
}

// MetaListBuilder builds the `name(a, b = "c")` form.
type MetaListBuilder[R any] struct {
	callback Invoker[ast.MetaItem, R]
	name     string
	span     source.Span
	items    []ast.MetaItem
	done     finished
}

// NewMetaList returns a list builder whose result is the meta item itself.
func NewMetaList(name string) *MetaListBuilder[ast.MetaItem] {
	return MetaListWithCallback[ast.MetaItem](name, Identity[ast.MetaItem]{})
}

func MetaListWithCallback[R any](name string, callback Invoker[ast.MetaItem, R]) *MetaListBuilder[R] {
	return &MetaListBuilder[R]{callback: callback, name: name}
}

func (b *MetaListBuilder[R]) Span(sp source.Span) *MetaListBuilder[R] {
	b.done.check("meta list builder")
	b.span = sp
	return b
}

func (b *MetaListBuilder[R]) Word(name string) *MetaListBuilder[R] {
	return b.WithItem(ast.Word(name))
}

func (b *MetaListBuilder[R]) Words(names ...string) *MetaListBuilder[R] {
	for _, name := range names {
		b.Word(name)
	}
	return b
}

func (b *MetaListBuilder[R]) NameValue(name string, lit ast.Lit) *MetaListBuilder[R] {
	if lit.Span.IsDummy() {
		lit.Span = b.span
	}
	return b.WithItem(ast.NameValue(name, lit))
}

func (b *MetaListBuilder[R]) NameValueStr(name, value string) *MetaListBuilder[R] {
	return b.NameValue(name, ast.StrLit(value))
}

// WithItem appends already built items, nested lists included.
func (b *MetaListBuilder[R]) WithItem(items ...ast.MetaItem) *MetaListBuilder[R] {
	b.done.check("meta list builder")
	for _, it := range items {
		if it.Span.IsDummy() {
			it.Span = b.span
		}
		b.items = append(b.items, it)
	}
	return b
}

func (b *MetaListBuilder[R]) Build() R {
	b.done.finish("meta list builder")
	meta := ast.List(b.name, b.items...)
	meta.Span = b.span
	return b.callback.Invoke(meta)
}
