package manifest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"aster/internal/ast"
	"aster/internal/aster"
	"aster/internal/source"
)

// ErrSyntax marks a type or attribute string that does not parse.
var ErrSyntax = errors.New("syntax error")

// ParseType parses a type expression such as `Option<&str>`.
// Nodes carry NoSpan and placeholder ids.
func ParseType(s string) (*ast.Type, error) {
	expr, err := parseTypeExpr(s)
	if err != nil {
		return nil, err
	}
	return lowerType(aster.NewTy(), expr, source.NoSpan), nil
}

// ParseMeta parses the inside of an attribute, e.g. `serde(default)`.
func ParseMeta(s string) (ast.MetaItem, error) {
	m, err := metaParser.ParseString("", s)
	if err != nil {
		return ast.MetaItem{}, syntaxError("attribute", s, err)
	}
	return lowerMeta(m)
}

func parseTypeExpr(s string) (*typeExpr, error) {
	expr, err := typeParser.ParseString("", s)
	if err != nil {
		return nil, syntaxError("type", s, err)
	}
	if err := checkType(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

func syntaxError(what, input string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return fmt.Errorf("%w in %s %q at column %d: %s", ErrSyntax, what, input, perr.Position().Column, perr.Message())
	}
	return fmt.Errorf("%w in %s %q: %v", ErrSyntax, what, input, err)
}

// checkType validates identifiers and array lengths so lowering cannot panic.
func checkType(e *typeExpr) error {
	switch {
	case e.Ref != nil:
		return checkType(e.Ref.Elem)
	case e.Ptr != nil:
		return checkType(e.Ptr.Elem)
	case e.Slice != nil:
		if e.Slice.Len != nil {
			if _, err := strconv.ParseUint(*e.Slice.Len, 10, 64); err != nil {
				return fmt.Errorf("array length %s: %w", *e.Slice.Len, err)
			}
		}
		return checkType(e.Slice.Elem)
	case e.Tuple != nil:
		for _, el := range e.Tuple.Elems {
			if err := checkType(el); err != nil {
				return err
			}
		}
	case e.Path != nil:
		for _, seg := range e.Path.Segments {
			if _, err := ast.NewIdent(seg.Name); err != nil {
				return err
			}
			for _, arg := range seg.Args {
				if err := checkType(arg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// lowerType drives tb with a checked expression. Nested complete types are
// built with sp.
func lowerType[R any](tb *aster.TypeBuilder[R], e *typeExpr, sp source.Span) R {
	switch {
	case e.Ref != nil:
		if e.Ref.Mut {
			return lowerType(tb.RefMut(), e.Ref.Elem, sp)
		}
		return lowerType(tb.Ref(), e.Ref.Elem, sp)
	case e.Ptr != nil:
		if e.Ptr.Mut {
			return lowerType(tb.PtrMut(), e.Ptr.Elem, sp)
		}
		return lowerType(tb.Ptr(), e.Ptr.Elem, sp)
	case e.Slice != nil:
		if e.Slice.Len == nil {
			return lowerType(tb.Slice(), e.Slice.Elem, sp)
		}
		n, _ := strconv.ParseUint(*e.Slice.Len, 10, 64)
		return lowerType(tb.Array(n), e.Slice.Elem, sp)
	case e.Tuple != nil:
		elems := e.Tuple.Elems
		if len(elems) == 1 && !e.Tuple.Trailing {
			// (T) is just T
			return lowerType(tb, elems[0], sp)
		}
		tup := tb.Tuple()
		for _, el := range elems {
			tup.WithTy(lowerType(aster.NewTy().Span(sp), el, sp))
		}
		return tup.Build()
	case e.Infer:
		return tb.Infer()
	default:
		pb := tb.Path()
		if e.Path.Global {
			pb.Global()
		}
		for _, seg := range e.Path.Segments {
			if len(seg.Args) == 0 {
				pb.Id(seg.Name)
				continue
			}
			sb := pb.Segment(seg.Name)
			for _, arg := range seg.Args {
				sb.WithTy(lowerType(aster.NewTy().Span(sp), arg, sp))
			}
			sb.Build()
		}
		return pb.Build()
	}
}

func lowerMeta(m *metaItem) (ast.MetaItem, error) {
	switch {
	case m.Value != nil:
		lit, err := lowerLit(m.Value)
		if err != nil {
			return ast.MetaItem{}, fmt.Errorf("%s: %w", m.Name, err)
		}
		return ast.NameValue(m.Name, lit), nil
	case m.List != nil:
		items := make([]ast.MetaItem, 0, len(m.List.Items))
		for _, it := range m.List.Items {
			sub, err := lowerMeta(it)
			if err != nil {
				return ast.MetaItem{}, err
			}
			items = append(items, sub)
		}
		return ast.List(m.Name, items...), nil
	default:
		return ast.Word(m.Name), nil
	}
}

func lowerLit(l *metaLit) (ast.Lit, error) {
	switch {
	case l.Str != nil:
		return ast.StrLit(*l.Str), nil
	case l.Int != nil:
		n, err := strconv.ParseUint(*l.Int, 10, 64)
		if err != nil {
			return ast.Lit{}, err
		}
		return ast.IntLit(n), nil
	default:
		return ast.BoolLit(*l.Bool == "true"), nil
	}
}

// Lower builds one item per struct declaration, in manifest order.
func Lower(fs *source.FileSet, m *Manifest) ([]*ast.Item, error) {
	items := make([]*ast.Item, 0, len(m.Structs))
	for i := range m.Structs {
		it, err := lowerStruct(fs, &m.Structs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func lowerStruct(fs *source.FileSet, st *StructDecl) (*ast.Item, error) {
	name, err := ast.NewIdent(st.Name)
	if err != nil {
		return nil, newError(fs, st.Span, "struct name", err)
	}
	attrs, err := lowerAttrs(fs, st.Span, st.Doc, st.Attrs)
	if err != nil {
		return nil, err
	}
	for _, g := range st.Generics {
		if _, err := ast.NewIdent(g); err != nil {
			return nil, newError(fs, st.Span, fmt.Sprintf("struct %s: generic parameter", st.Name), err)
		}
	}

	b := aster.NewItem(name).Span(st.Span).WithAttrs(attrs...).Generic(st.Generics...)
	if st.Pub {
		b.Pub()
	}

	switch st.Kind {
	case KindUnit:
		return b.UnitStruct(), nil
	case KindTuple:
		def := b.TupleStruct()
		for i := range st.Fields {
			if def, err = lowerField(fs, def.Field(), &st.Fields[i]); err != nil {
				return nil, err
			}
		}
		return def.Build(), nil
	default:
		def := b.Struct()
		for i := range st.Fields {
			f := &st.Fields[i]
			id, err := ast.NewIdent(f.Name)
			if err != nil {
				return nil, newError(fs, f.Span, fmt.Sprintf("struct %s: field name", st.Name), err)
			}
			fb := aster.NamedFieldWithCallback[ast.Ident, *aster.StructDefBuilder[*ast.Item]](id, def)
			if def, err = lowerField(fs, fb, f); err != nil {
				return nil, err
			}
		}
		return def.Build(), nil
	}
}

func lowerField[R any](fs *source.FileSet, fb *aster.StructFieldBuilder[R], f *FieldDecl) (R, error) {
	var zero R
	expr, err := parseTypeExpr(f.Type)
	if err != nil {
		return zero, newError(fs, f.Span, "field type", err)
	}
	attrs, err := lowerAttrs(fs, f.Span, f.Doc, f.Attrs)
	if err != nil {
		return zero, err
	}
	fb.Span(f.Span).WithAttrs(attrs...)
	if f.Pub {
		fb.Pub()
	}
	return lowerType(fb.Ty(), expr, f.Span), nil
}

// lowerAttrs turns `doc` into sugared doc lines followed by `attrs`.
func lowerAttrs(fs *source.FileSet, sp source.Span, doc string, raw []string) ([]ast.Attribute, error) {
	var out []ast.Attribute
	if doc != "" {
		for line := range strings.SplitSeq(strings.TrimRight(doc, "\n"), "\n") {
			if line != "" {
				line = " " + line
			}
			out = append(out, aster.NewAttr().Span(sp).Doc(line))
		}
	}
	for _, s := range raw {
		meta, err := ParseMeta(s)
		if err != nil {
			return nil, newError(fs, sp, "attribute", err)
		}
		out = append(out, aster.NewAttr().Span(sp).Build(meta))
	}
	return out, nil
}
