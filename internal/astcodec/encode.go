package astcodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"aster/internal/ast"
	"aster/internal/source"
)

// SchemaVersion is bumped whenever the record layout changes.
const SchemaVersion uint16 = 1

var (
	ErrSchemaMismatch = errors.New("astcodec: schema mismatch")
	ErrMissingType    = errors.New("astcodec: field without type")
)

// Marshal encodes items. Node ids are not stored; decoding hands out fresh
// placeholders.
func Marshal(items []*ast.Item) ([]byte, error) {
	b := bundle{Schema: SchemaVersion, Items: make([]itemRecord, 0, len(items))}
	for _, it := range items {
		rec, err := encodeItem(it)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.Ident, err)
		}
		b.Items = append(b.Items, rec)
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeSpan(sp source.Span) spanRecord {
	return spanRecord{File: uint32(sp.File), Start: sp.Start, End: sp.End}
}

func encodeItem(it *ast.Item) (itemRecord, error) {
	rec := itemRecord{
		Name:  it.Ident.String(),
		Pub:   it.Vis == ast.VisPublic,
		Attrs: encodeAttrs(it.Attrs),
		Kind:  uint8(it.Data.Kind),
		Span:  encodeSpan(it.Span),
	}
	for _, g := range it.Generics {
		rec.Generics = append(rec.Generics, g.String())
	}
	for i := range it.Data.Fields {
		f := &it.Data.Fields[i]
		if f.Type == nil {
			return itemRecord{}, fmt.Errorf("field %d: %w", i, ErrMissingType)
		}
		fr := fieldRecord{
			Pub:   f.Visibility() == ast.VisPublic,
			Type:  encodeType(f.Type),
			Attrs: encodeAttrs(f.Attrs),
			Span:  encodeSpan(f.Span),
		}
		if name, ok := f.Name(); ok {
			fr.Named = true
			fr.Name = name.String()
		}
		rec.Fields = append(rec.Fields, fr)
	}
	return rec, nil
}

func encodeAttrs(attrs []ast.Attribute) []attrRecord {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attrRecord, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attrRecord{
			Inner: a.Style == ast.AttrInner,
			Doc:   a.SugaredDoc,
			Meta:  encodeMeta(a.Value),
			Span:  encodeSpan(a.Span),
		})
	}
	return out
}

func encodeMeta(m ast.MetaItem) metaRecord {
	rec := metaRecord{
		Kind: uint8(m.Kind),
		Name: m.Name,
		Lit: litRecord{
			Kind: uint8(m.Value.Kind),
			Str:  m.Value.Str,
			Int:  m.Value.Int,
			Bool: m.Value.Bool,
			Span: encodeSpan(m.Value.Span),
		},
		Span: encodeSpan(m.Span),
	}
	for _, it := range m.List {
		rec.List = append(rec.List, encodeMeta(it))
	}
	return rec
}

func encodeType(t *ast.Type) *typeRecord {
	if t == nil {
		return nil
	}
	rec := &typeRecord{
		Kind: uint8(t.Kind),
		Elem: encodeType(t.Elem),
		Mut:  t.Mut == ast.Mutable,
		Len:  t.Len,
		Span: encodeSpan(t.Span),
	}
	if t.Path != nil {
		rec.Global = t.Path.Global
		rec.PathSpan = encodeSpan(t.Path.Span)
		for _, seg := range t.Path.Segments {
			sr := segmentRecord{Name: seg.Ident.String()}
			for _, a := range seg.Args {
				sr.Args = append(sr.Args, encodeType(a))
			}
			rec.Segments = append(rec.Segments, sr)
		}
	}
	for _, e := range t.Elems {
		rec.Elems = append(rec.Elems, encodeType(e))
	}
	return rec
}
