package astcodec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"aster/internal/ast"
	"aster/internal/aster"
	"aster/internal/source"
)

// Unmarshal decodes items produced by Marshal. Fields are rebuilt through
// the builders, so every node comes back with a fresh placeholder id.
func Unmarshal(data []byte) ([]*ast.Item, error) {
	var b bundle
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return nil, fmt.Errorf("astcodec: decode: %w", err)
	}
	if b.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, b.Schema, SchemaVersion)
	}
	items := make([]*ast.Item, 0, len(b.Items))
	for i := range b.Items {
		it, err := decodeItem(&b.Items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, b.Items[i].Name, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func decodeSpan(r spanRecord) source.Span {
	return source.Span{File: source.FileID(r.File), Start: r.Start, End: r.End}
}

func decodeItem(r *itemRecord) (*ast.Item, error) {
	name, err := ast.NewIdent(r.Name)
	if err != nil {
		return nil, err
	}
	b := aster.NewItem(name).Span(decodeSpan(r.Span)).WithAttrs(decodeAttrs(r.Attrs)...)
	if r.Pub {
		b.Pub()
	}
	for _, g := range r.Generics {
		if _, err := ast.NewIdent(g); err != nil {
			return nil, fmt.Errorf("generic: %w", err)
		}
		b.Generic(g)
	}

	switch ast.VariantKind(r.Kind) {
	case ast.VariantUnit:
		return b.UnitStruct(), nil
	case ast.VariantStruct:
		def := b.Struct()
		for i := range r.Fields {
			fr := &r.Fields[i]
			if !fr.Named {
				return nil, fmt.Errorf("field %d: positional field in a brace struct", i)
			}
			id, err := ast.NewIdent(fr.Name)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			ty, err := decodeType(fr.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", fr.Name, err)
			}
			fb := aster.NamedFieldWithCallback[ast.Ident, *aster.StructDefBuilder[*ast.Item]](id, def)
			def = finishField(fb, fr, ty)
		}
		return def.Build(), nil
	case ast.VariantTuple:
		def := b.TupleStruct()
		for i := range r.Fields {
			fr := &r.Fields[i]
			if fr.Named {
				return nil, fmt.Errorf("field %d: named field in a tuple struct", i)
			}
			ty, err := decodeType(fr.Type)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", i, err)
			}
			def = finishField(def.Field(), fr, ty)
		}
		return def.Build(), nil
	default:
		return nil, fmt.Errorf("unknown variant kind %d", r.Kind)
	}
}

func finishField[R any](fb *aster.StructFieldBuilder[R], fr *fieldRecord, ty *ast.Type) R {
	fb.Span(decodeSpan(fr.Span)).WithAttrs(decodeAttrs(fr.Attrs)...)
	if fr.Pub {
		fb.Pub()
	}
	return fb.BuildType(ty)
}

func decodeAttrs(recs []attrRecord) []ast.Attribute {
	if len(recs) == 0 {
		return nil
	}
	out := make([]ast.Attribute, 0, len(recs))
	for _, r := range recs {
		a := ast.Attribute{
			Value:      decodeMeta(r.Meta),
			SugaredDoc: r.Doc,
			Span:       decodeSpan(r.Span),
		}
		if r.Inner {
			a.Style = ast.AttrInner
		}
		out = append(out, a)
	}
	return out
}

func decodeMeta(r metaRecord) ast.MetaItem {
	m := ast.MetaItem{
		Kind: ast.MetaKind(r.Kind),
		Name: r.Name,
		Value: ast.Lit{
			Kind: ast.LitKind(r.Lit.Kind),
			Str:  r.Lit.Str,
			Int:  r.Lit.Int,
			Bool: r.Lit.Bool,
			Span: decodeSpan(r.Lit.Span),
		},
		Span: decodeSpan(r.Span),
	}
	for _, it := range r.List {
		m.List = append(m.List, decodeMeta(it))
	}
	return m
}

func decodeType(r *typeRecord) (*ast.Type, error) {
	if r == nil {
		return nil, ErrMissingType
	}
	t := &ast.Type{
		ID:   ast.NewPlaceholderID(),
		Kind: ast.TypeKind(r.Kind),
		Len:  r.Len,
		Span: decodeSpan(r.Span),
	}
	if r.Mut {
		t.Mut = ast.Mutable
	}
	switch t.Kind {
	case ast.TypePath:
		if len(r.Segments) == 0 {
			return nil, fmt.Errorf("path type without segments")
		}
		t.Path = &ast.Path{Global: r.Global, Span: decodeSpan(r.PathSpan)}
		for _, sr := range r.Segments {
			id, err := ast.NewIdent(sr.Name)
			if err != nil {
				return nil, err
			}
			seg := ast.PathSegment{Ident: id}
			for _, ar := range sr.Args {
				arg, err := decodeType(ar)
				if err != nil {
					return nil, err
				}
				seg.Args = append(seg.Args, arg)
			}
			t.Path.Segments = append(t.Path.Segments, seg)
		}
	case ast.TypeRef, ast.TypePtr, ast.TypeSlice, ast.TypeArray:
		elem, err := decodeType(r.Elem)
		if err != nil {
			return nil, err
		}
		t.Elem = elem
	case ast.TypeTuple:
		for _, er := range r.Elems {
			e, err := decodeType(er)
			if err != nil {
				return nil, err
			}
			t.Elems = append(t.Elems, e)
		}
	case ast.TypeInfer:
	default:
		return nil, fmt.Errorf("unknown type kind %d", r.Kind)
	}
	return t, nil
}
