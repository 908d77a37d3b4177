package aster

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"aster/internal/ast"
	"aster/internal/source"
)

func TestAttrBuilder_Forms(t *testing.T) {
	tests := []struct {
		name string
		got  ast.Attribute
		want ast.Attribute
	}{
		{
			name: "word",
			got:  NewAttr().Word("inline"),
			want: ast.Attribute{Value: ast.Word("inline")},
		},
		{
			name: "name value",
			got:  NewAttr().NameValue("recursion_limit", ast.IntLit(128)),
			want: ast.Attribute{Value: ast.NameValue("recursion_limit", ast.IntLit(128))},
		},
		{
			name: "inner",
			got:  NewAttr().Inner().Word("no_std"),
			want: ast.Attribute{Style: ast.AttrInner, Value: ast.Word("no_std")},
		},
		{
			name: "doc",
			got:  NewAttr().Doc(" Frame width."),
			want: ast.Attribute{Value: ast.NameValue("doc", ast.StrLit(" Frame width.")), SugaredDoc: true},
		},
		{
			name: "derive",
			got:  NewAttr().Derive("Debug", "Clone"),
			want: ast.Attribute{Value: ast.List("derive", ast.Word("Debug"), ast.Word("Clone"))},
		},
		{
			name: "allow",
			got:  NewAttr().Allow("dead_code"),
			want: ast.Attribute{Value: ast.List("allow", ast.Word("dead_code"))},
		},
		{
			name: "nested list",
			got: NewAttr().List("serde").
				NameValueStr("rename", "ID").
				WithItem(NewMetaList("skip_serializing_if").Word("is_none").Build()).
				Build(),
			want: ast.Attribute{Value: ast.List("serde",
				ast.NameValue("rename", ast.StrLit("ID")),
				ast.List("skip_serializing_if", ast.Word("is_none")),
			)},
		},
		{
			name: "empty list",
			got:  NewAttr().List("non_exhaustive").Build(),
			want: ast.Attribute{Value: ast.List("non_exhaustive")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got, ignoreIDs); diff != "" {
				t.Errorf("attribute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttrBuilder_SpanFillsNestedNodes(t *testing.T) {
	sp := source.Span{File: 2, Start: 5, End: 9}
	explicit := source.Span{File: 2, Start: 6, End: 7}
	item := ast.Word("kept")
	item.Span = explicit

	a := NewAttr().Span(sp).List("cfg").Word("test").WithItem(item).Build()
	if a.Span != sp || a.Value.Span != sp {
		t.Errorf("attr/meta span = %v/%v, want %v", a.Span, a.Value.Span, sp)
	}
	if a.Value.List[0].Span != sp {
		t.Errorf("word span = %v, want %v", a.Value.List[0].Span, sp)
	}
	if a.Value.List[1].Span != explicit {
		t.Errorf("explicit span overwritten: %v", a.Value.List[1].Span)
	}

	doc := NewAttr().Span(sp).Doc("x")
	if doc.Value.Value.Span != sp {
		t.Errorf("doc literal span = %v", doc.Value.Value.Span)
	}
}

func TestAttrBuilder_Consumed(t *testing.T) {
	b := NewAttr()
	b.Word("a")
	mustPanic(t, "Word twice", func() { b.Word("b") })
	mustPanic(t, "Inner after build", func() { b.Inner() })

	l := NewMetaList("x")
	l.Build()
	mustPanic(t, "list reuse", func() { l.Word("y") })
}
