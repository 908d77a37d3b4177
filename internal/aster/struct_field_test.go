package aster

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aster/internal/ast"
	"aster/internal/source"
)

func TestNamedField_Defaults(t *testing.T) {
	i32 := pathTy("i32")
	for _, name := range []string{"x", "value", "_tmp", "поле"} {
		t.Run(name, func(t *testing.T) {
			field := NewNamedField(name).BuildType(i32)
			want := ast.StructField{
				Kind: ast.NamedField{Name: ast.ToIdent(name), Vis: ast.VisInherited},
				Type: i32,
			}
			if diff := cmp.Diff(want, field, ignoreIDs); diff != "" {
				t.Errorf("field mismatch (-want +got):\n%s", diff)
			}
			if field.Type != i32 {
				t.Error("type must be the value supplied at finalization")
			}
			if !field.Span.IsDummy() {
				t.Errorf("default span = %v, want dummy", field.Span)
			}
			if !field.ID.IsPlaceholder() {
				t.Errorf("id %v is not a placeholder", field.ID)
			}
		})
	}
}

func TestNamedField_AcceptsIdent(t *testing.T) {
	id := ast.ToIdent("from_ident")
	field := NewNamedField(id).BuildType(pathTy("u8"))
	if name, ok := field.Name(); !ok || name != id {
		t.Errorf("Name() = %v, %v", name, ok)
	}
}

func TestNamedField_InvalidNamePanics(t *testing.T) {
	mustPanic(t, "invalid name", func() { NewNamedField("not valid") })
	mustPanic(t, "zero ident", func() { NewNamedField(ast.Ident{}) })
	mustPanic(t, "zero ident via callback", func() {
		NamedFieldWithCallback[ast.Ident, ast.StructField](ast.Ident{}, Identity[ast.StructField]{})
	})
}

func TestUnnamedField_Defaults(t *testing.T) {
	field := NewUnnamedField().BuildType(pathTy("String"))
	if _, ok := field.Kind.(ast.UnnamedField); !ok {
		t.Fatalf("kind = %#v, want UnnamedField", field.Kind)
	}
	if field.Visibility() != ast.VisInherited {
		t.Errorf("visibility = %v", field.Visibility())
	}
}

func TestPub_EitherKind(t *testing.T) {
	named := NewNamedField("x").Pub().BuildType(pathTy("i32"))
	if k, ok := named.Kind.(ast.NamedField); !ok || k.Vis != ast.VisPublic || k.Name.String() != "x" {
		t.Errorf("named kind = %#v", named.Kind)
	}
	unnamed := NewUnnamedField().Pub().BuildType(pathTy("i32"))
	if k, ok := unnamed.Kind.(ast.UnnamedField); !ok || k.Vis != ast.VisPublic {
		t.Errorf("unnamed kind = %#v", unnamed.Kind)
	}
}

func TestPub_Idempotent(t *testing.T) {
	once := NewNamedField("x").Pub().BuildType(pathTy("i32"))
	twice := NewNamedField("x").Pub().Pub().BuildType(pathTy("i32"))
	if once.Visibility() != twice.Visibility() {
		t.Errorf("Pub twice = %v, once = %v", twice.Visibility(), once.Visibility())
	}
}

func TestAttrs_OrderPreserved(t *testing.T) {
	a1 := NewAttr().Word("inline")
	a2 := NewAttr().NameValueStr("doc", "second")
	a3 := NewAttr().Word("a3")

	t.Run("bulk", func(t *testing.T) {
		field := NewNamedField("x").WithAttrs(a1, a2).WithAttrs(a3).BuildType(pathTy("i32"))
		if diff := cmp.Diff([]ast.Attribute{a1, a2, a3}, field.Attrs); diff != "" {
			t.Errorf("attrs (-want +got):\n%s", diff)
		}
	})

	t.Run("nested", func(t *testing.T) {
		field := NewNamedField("x").
			Attr().Word("inline").
			Attr().NameValueStr("doc", "second").
			Ty().I32()
		if diff := cmp.Diff([]ast.Attribute{a1, a2}, field.Attrs); diff != "" {
			t.Errorf("attrs (-want +got):\n%s", diff)
		}
	})

	t.Run("mixed", func(t *testing.T) {
		field := NewNamedField("x").
			Attr().Word("inline").
			WithAttrs(a2).
			AddAttr(a3).
			Ty().I32()
		if diff := cmp.Diff([]ast.Attribute{a1, a2, a3}, field.Attrs); diff != "" {
			t.Errorf("attrs (-want +got):\n%s", diff)
		}
	})

	t.Run("seq", func(t *testing.T) {
		field := NewUnnamedField().WithAttrSeq(slices.Values([]ast.Attribute{a1, a1})).Ty().I32()
		if len(field.Attrs) != 2 {
			t.Errorf("duplicates must be kept, got %d attrs", len(field.Attrs))
		}
	})
}

func TestSpan_RecordedAndPropagated(t *testing.T) {
	sp := source.Span{File: 3, Start: 10, End: 24}
	field := NewNamedField("x").
		Span(source.Span{File: 1, Start: 1, End: 2}).
		Span(sp).
		Attr().Word("inline").
		Ty().Option().I32()

	if field.Span != sp {
		t.Errorf("field span = %v, want %v (last write wins)", field.Span, sp)
	}
	if field.Attrs[0].Span != sp {
		t.Errorf("attr span = %v, want %v", field.Attrs[0].Span, sp)
	}
	if field.Type.Span != sp || field.Type.Path.Segments[0].Args[0].Span != sp {
		t.Errorf("type spans = %v / %v, want %v", field.Type.Span, field.Type.Path.Segments[0].Args[0].Span, sp)
	}
}

func TestSpan_SubBuilderOverrideStaysLocal(t *testing.T) {
	fieldSpan := source.Span{File: 1, Start: 0, End: 30}
	tySpan := source.Span{File: 1, Start: 20, End: 23}
	field := NewNamedField("x").Span(fieldSpan).Ty().Span(tySpan).I32()
	if field.Span != fieldSpan {
		t.Errorf("field span = %v, want %v", field.Span, fieldSpan)
	}
	if field.Type.Span != tySpan {
		t.Errorf("type span = %v, want %v", field.Type.Span, tySpan)
	}
}

type recordingSink struct {
	got []ast.StructField
}

func (r *recordingSink) Invoke(f ast.StructField) int {
	r.got = append(r.got, f)
	return len(r.got)
}

func TestContinuation_Forwarding(t *testing.T) {
	sink := &recordingSink{}
	n := NamedFieldWithCallback[string, int]("x", sink).Ty().I32()
	if n != 1 || len(sink.got) != 1 {
		t.Fatalf("continuation result = %d, calls = %d", n, len(sink.got))
	}
	if name, _ := sink.got[0].Name(); name.String() != "x" {
		t.Errorf("continuation got %v", sink.got[0].Kind)
	}

	m := UnnamedFieldWithCallback[int](sink).BuildType(pathTy("u8"))
	if m != 2 {
		t.Errorf("second invocation returned %d", m)
	}
}

func TestContinuation_IdentityLaw(t *testing.T) {
	ty := pathTy("i32")
	direct := NewNamedField("x").BuildType(ty)
	viaFunc := NamedFieldWithCallback[string, ast.StructField]("x", InvokerFunc[ast.StructField, ast.StructField](func(f ast.StructField) ast.StructField {
		return f
	})).BuildType(ty)
	if diff := cmp.Diff(direct, viaFunc, ignoreIDs); diff != "" {
		t.Errorf("identity mismatch (-direct +func):\n%s", diff)
	}
}

func TestBuilderIsConsumed(t *testing.T) {
	b := NewNamedField("x")
	b.BuildType(pathTy("i32"))
	mustPanic(t, "BuildType twice", func() { b.BuildType(pathTy("i32")) })
	mustPanic(t, "Pub after build", func() { b.Pub() })
	mustPanic(t, "Span after build", func() { b.Span(source.NoSpan) })
	mustPanic(t, "Attr after build", func() { b.Attr() })
	mustPanic(t, "Ty after build", func() { b.Ty() })
}

func TestFreshIDs(t *testing.T) {
	a := NewNamedField("x").Ty().I32()
	b := NewNamedField("x").Ty().I32()
	if a.ID == b.ID {
		t.Errorf("both fields got id %v", a.ID)
	}
}

func TestEndToEnd_PublicSerdeField(t *testing.T) {
	field := NewNamedField("x").
		Pub().
		Attr().List("serde").Word("default").Build().
		Ty().I32()

	want := ast.StructField{
		Kind: ast.NamedField{Name: ast.ToIdent("x"), Vis: ast.VisPublic},
		Type: pathTy("i32"),
		Attrs: []ast.Attribute{
			{Style: ast.AttrOuter, Value: ast.List("serde", ast.Word("default"))},
		},
	}
	if diff := cmp.Diff(want, field, ignoreIDs); diff != "" {
		t.Errorf("field mismatch (-want +got):\n%s", diff)
	}
}
