package testkit

import (
	"strings"
	"testing"

	"aster/internal/ast"
	"aster/internal/aster"
	"aster/internal/source"
)

func buildSample(sp source.Span) *ast.Item {
	return aster.New().Span(sp).Item("Pair").
		TupleStruct().
		Field().Ty().Tuple().WithTy(aster.NewTy().Span(sp).I32()).Build().
		Field().Ty().Option().Ref().Str().
		Build()
}

func TestCheckIDs(t *testing.T) {
	it := buildSample(source.NoSpan)
	if err := CheckIDs([]*ast.Item{it}, 0); err == nil || !strings.Contains(err.Error(), "unassigned") {
		t.Fatalf("expected unassigned id error, got %v", err)
	}

	ids := ast.NewIDAssigner()
	ids.AssignItem(it)
	if err := CheckIDs([]*ast.Item{it}, ids.Count()); err != nil {
		t.Fatalf("CheckIDs: %v", err)
	}

	it.Data.Fields[1].Type.ID = it.ID
	if err := CheckIDs([]*ast.Item{it}, ids.Count()); err == nil || !strings.Contains(err.Error(), "used by both") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestCheckSpans(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("pair.toml", []byte("[[struct]]\nname = \"Pair\"\n"))
	sf := fs.Get(id)

	good := buildSample(source.Span{File: id, Start: 0, End: 10})
	if err := CheckSpans([]*ast.Item{good}, sf); err != nil {
		t.Fatalf("CheckSpans: %v", err)
	}

	dummy := buildSample(source.NoSpan)
	if err := CheckSpans([]*ast.Item{dummy}, sf); err == nil {
		t.Fatal("expected error for dummy spans")
	}

	past := buildSample(source.Span{File: id, Start: 0, End: 1000})
	if err := CheckSpans([]*ast.Item{past}, sf); err == nil {
		t.Fatal("expected error for span past content")
	}

	if err := CheckSpans(nil, nil); err == nil {
		t.Fatal("expected error for nil file")
	}
}
