package aster

import (
	"aster/internal/ast"
	"aster/internal/source"
)

// PathBuilder builds a path segment by segment.
type PathBuilder[R any] struct {
	callback Invoker[ast.Path, R]
	span     source.Span
	global   bool
	segments []ast.PathSegment
	done     finished
}

// NewPath returns a path builder whose result is the path itself.
func NewPath() *PathBuilder[ast.Path] {
	return PathWithCallback[ast.Path](Identity[ast.Path]{})
}

func PathWithCallback[R any](callback Invoker[ast.Path, R]) *PathBuilder[R] {
	return &PathBuilder[R]{callback: callback}
}

func (b *PathBuilder[R]) Span(sp source.Span) *PathBuilder[R] {
	b.done.check("path builder")
	b.span = sp
	return b
}

// Global prefixes the path with `::`.
func (b *PathBuilder[R]) Global() *PathBuilder[R] {
	b.done.check("path builder")
	b.global = true
	return b
}

// Id appends a plain segment.
func (b *PathBuilder[R]) Id(name string) *PathBuilder[R] {
	return b.Invoke(ast.PathSegment{Ident: ast.ToIdent(name)})
}

func (b *PathBuilder[R]) Ids(names ...string) *PathBuilder[R] {
	for _, name := range names {
		b.Id(name)
	}
	return b
}

// Segment opens a segment that takes generic arguments.
func (b *PathBuilder[R]) Segment(name string) *SegmentBuilder[*PathBuilder[R]] {
	b.done.check("path builder")
	return SegmentWithCallback[*PathBuilder[R]](name, b)
}

// Invoke appends a finished segment.
func (b *PathBuilder[R]) Invoke(seg ast.PathSegment) *PathBuilder[R] {
	b.done.check("path builder")
	b.segments = append(b.segments, seg)
	return b
}

// Build finishes the path. A path without segments is a caller bug.
func (b *PathBuilder[R]) Build() R {
	b.done.finish("path builder")
	if len(b.segments) == 0 {
		panic("aster: path has no segments")
	}
	return b.callback.Invoke(ast.Path{
		Global:   b.global,
		Segments: b.segments,
		Span:     b.span,
	})
}

// SegmentBuilder builds `name<A, B>`. Arguments are complete types.
type SegmentBuilder[R any] struct {
	callback Invoker[ast.PathSegment, R]
	ident    ast.Ident
	args     []*ast.Type
	done     finished
}

func SegmentWithCallback[R any](name string, callback Invoker[ast.PathSegment, R]) *SegmentBuilder[R] {
	return &SegmentBuilder[R]{callback: callback, ident: ast.ToIdent(name)}
}

func (b *SegmentBuilder[R]) WithTy(ty *ast.Type) *SegmentBuilder[R] {
	b.done.check("path segment builder")
	b.args = append(b.args, ty)
	return b
}

func (b *SegmentBuilder[R]) WithTys(tys ...*ast.Type) *SegmentBuilder[R] {
	for _, ty := range tys {
		b.WithTy(ty)
	}
	return b
}

func (b *SegmentBuilder[R]) Build() R {
	b.done.finish("path segment builder")
	return b.callback.Invoke(ast.PathSegment{Ident: b.ident, Args: b.args})
}
