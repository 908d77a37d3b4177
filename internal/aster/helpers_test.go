package aster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"aster/internal/ast"
)

// ignoreIDs drops placeholder ids, which differ on every run.
var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(ast.StructField{}, "ID"),
	cmpopts.IgnoreFields(ast.Type{}, "ID"),
	cmpopts.IgnoreFields(ast.VariantData{}, "ID"),
	cmpopts.IgnoreFields(ast.Item{}, "ID"),
	cmpopts.EquateEmpty(),
}

func pathTy(names ...string) *ast.Type {
	p := &ast.Path{}
	for _, n := range names {
		p.Segments = append(p.Segments, ast.PathSegment{Ident: ast.ToIdent(n)})
	}
	return &ast.Type{Kind: ast.TypePath, Path: p}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
