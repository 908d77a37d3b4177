package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// TypeBuilder builds one type. Wrapping methods such as Ref or Option return
// a builder for the inner type that keeps this builder's continuation.
type TypeBuilder[R any] struct {
	callback Invoker[*ast.Type, R]
	span     source.Span
	done     finished
}

// NewTy returns a type builder whose result is the type itself.
func NewTy() *TypeBuilder[*ast.Type] {
	return TyWithCallback[*ast.Type](Identity[*ast.Type]{})
}

func TyWithCallback[R any](callback Invoker[*ast.Type, R]) *TypeBuilder[R] {
	return &TypeBuilder[R]{callback: callback}
}

func (b *TypeBuilder[R]) Span(sp source.Span) *TypeBuilder[R] {
	b.done.check("type builder")
	b.span = sp
	return b
}

// Build hands ty to the continuation as is.
func (b *TypeBuilder[R]) Build(ty *ast.Type) R {
	b.done.finish("type builder")
	return b.callback.Invoke(ty)
}

func (b *TypeBuilder[R]) node(kind ast.TypeKind) *ast.Type {
	return &ast.Type{ID: ast.NewPlaceholderID(), Kind: kind, Span: b.span}
}

// Path opens a path type such as `std::collections::HashMap<K, V>`.
func (b *TypeBuilder[R]) Path() *PathBuilder[R] {
	b.done.check("type builder")
	return PathWithCallback[R](InvokerFunc[ast.Path, R](func(p ast.Path) R {
		ty := b.node(ast.TypePath)
		ty.Path = &p
		return b.Build(ty)
	})).Span(b.span)
}

// Id builds a single-segment path type.
func (b *TypeBuilder[R]) Id(name string) R {
	return b.Path().Id(name).Build()
}

func (b *TypeBuilder[R]) Bool() R  { return b.Id("bool") }
func (b *TypeBuilder[R]) Isize() R { return b.Id("isize") }
func (b *TypeBuilder[R]) I8() R    { return b.Id("i8") }
func (b *TypeBuilder[R]) I16() R   { return b.Id("i16") }
func (b *TypeBuilder[R]) I32() R   { return b.Id("i32") }
func (b *TypeBuilder[R]) I64() R   { return b.Id("i64") }
func (b *TypeBuilder[R]) Usize() R { return b.Id("usize") }
func (b *TypeBuilder[R]) U8() R    { return b.Id("u8") }
func (b *TypeBuilder[R]) U16() R   { return b.Id("u16") }
func (b *TypeBuilder[R]) U32() R   { return b.Id("u32") }
func (b *TypeBuilder[R]) U64() R   { return b.Id("u64") }
func (b *TypeBuilder[R]) F32() R   { return b.Id("f32") }
func (b *TypeBuilder[R]) F64() R   { return b.Id("f64") }
func (b *TypeBuilder[R]) Str() R   { return b.Id("str") }

// StringTy builds the owned `String` type.
func (b *TypeBuilder[R]) StringTy() R { return b.Id("String") }

// Unit builds `()`.
func (b *TypeBuilder[R]) Unit() R {
	b.done.check("type builder")
	return b.Build(b.node(ast.TypeTuple))
}

// Infer builds `_`.
func (b *TypeBuilder[R]) Infer() R {
	b.done.check("type builder")
	return b.Build(b.node(ast.TypeInfer))
}

// wrap returns a builder for an inner type; finishing it finishes b with
// outer(inner).
func (b *TypeBuilder[R]) wrap(outer func(inner *ast.Type) *ast.Type) *TypeBuilder[R] {
	b.done.check("type builder")
	return TyWithCallback[R](InvokerFunc[*ast.Type, R](func(inner *ast.Type) R {
		return b.Build(outer(inner))
	})).Span(b.span)
}

func (b *TypeBuilder[R]) pointerLike(kind ast.TypeKind, mut ast.Mutability) *TypeBuilder[R] {
	return b.wrap(func(inner *ast.Type) *ast.Type {
		ty := b.node(kind)
		ty.Elem = inner
		ty.Mut = mut
		return ty
	})
}

// Ref opens the pointee of `&T`.
func (b *TypeBuilder[R]) Ref() *TypeBuilder[R] {
	return b.pointerLike(ast.TypeRef, ast.Immutable)
}

// RefMut opens the pointee of `&mut T`.
func (b *TypeBuilder[R]) RefMut() *TypeBuilder[R] {
	return b.pointerLike(ast.TypeRef, ast.Mutable)
}

// Ptr opens the pointee of `*const T`.
func (b *TypeBuilder[R]) Ptr() *TypeBuilder[R] {
	return b.pointerLike(ast.TypePtr, ast.Immutable)
}

// PtrMut opens the pointee of `*mut T`.
func (b *TypeBuilder[R]) PtrMut() *TypeBuilder[R] {
	return b.pointerLike(ast.TypePtr, ast.Mutable)
}

// Slice opens the element of `[T]`.
func (b *TypeBuilder[R]) Slice() *TypeBuilder[R] {
	return b.wrap(func(inner *ast.Type) *ast.Type {
		ty := b.node(ast.TypeSlice)
		ty.Elem = inner
		return ty
	})
}

// Array opens the element of `[T; n]`.
func (b *TypeBuilder[R]) Array(n uint64) *TypeBuilder[R] {
	return b.wrap(func(inner *ast.Type) *ast.Type {
		ty := b.node(ast.TypeArray)
		ty.Elem = inner
		ty.Len = n
		return ty
	})
}

// Generic opens the only argument of `name<T>`.
func (b *TypeBuilder[R]) Generic(name string) *TypeBuilder[R] {
	id := ast.ToIdent(name)
	return b.wrap(func(inner *ast.Type) *ast.Type {
		ty := b.node(ast.TypePath)
		ty.Path = &ast.Path{
			Segments: []ast.PathSegment{{Ident: id, Args: []*ast.Type{inner}}},
			Span:     b.span,
		}
		return ty
	})
}

func (b *TypeBuilder[R]) Option() *TypeBuilder[R] { return b.Generic("Option") }
func (b *TypeBuilder[R]) Box() *TypeBuilder[R]    { return b.Generic("Box") }
func (b *TypeBuilder[R]) Vec() *TypeBuilder[R]    { return b.Generic("Vec") }

// Tuple opens `(A, B, ...)`.
func (b *TypeBuilder[R]) Tuple() *TupleTypeBuilder[R] {
	b.done.check("type builder")
	return &TupleTypeBuilder[R]{parent: b}
}

// TupleTypeBuilder collects tuple members. Members are complete types, built
// for instance with NewTy().
type TupleTypeBuilder[R any] struct {
	parent *TypeBuilder[R]
	elems  []*ast.Type
	done   finished
}

func (b *TupleTypeBuilder[R]) WithTy(ty *ast.Type) *TupleTypeBuilder[R] {
	b.done.check("tuple type builder")
	b.elems = append(b.elems, ty)
	return b
}

func (b *TupleTypeBuilder[R]) WithTys(tys ...*ast.Type) *TupleTypeBuilder[R] {
	for _, ty := range tys {
		b.WithTy(ty)
	}
	return b
}

func (b *TupleTypeBuilder[R]) Build() R {
	b.done.finish("tuple type builder")
	ty := b.parent.node(ast.TypeTuple)
	ty.Elems = b.elems
	return b.parent.Build(ty)
}
