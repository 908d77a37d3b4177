package astfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"aster/internal/ast"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// AlignFields pads `name:` so that the types of a brace struct line up.
	AlignFields bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w   *Writer
	opt Options
}

// FormatItems renders items separated by blank lines.
func FormatItems(items []*ast.Item, opt Options) []byte {
	opt = opt.withDefaults()
	p := printer{w: NewWriter(opt), opt: opt}
	for i, it := range items {
		if i > 0 {
			p.w.Newline()
		}
		p.printItem(it)
	}
	return p.w.Bytes()
}

func FormatItem(it *ast.Item, opt Options) []byte {
	return FormatItems([]*ast.Item{it}, opt)
}

// FormatField renders a single field: its attributes on their own lines,
// then `vis name: Type` without a trailing comma.
func FormatField(f *ast.StructField) string {
	var sb strings.Builder
	for _, a := range f.Attrs {
		sb.WriteString(FormatAttr(a))
		sb.WriteByte('\n')
	}
	sb.WriteString(fieldHead(f))
	sb.WriteString(FormatType(f.Type))
	return sb.String()
}

func (p *printer) printItem(it *ast.Item) {
	for _, a := range it.Attrs {
		p.w.WriteString(FormatAttr(a))
		p.w.Newline()
	}
	var head strings.Builder
	if it.Vis == ast.VisPublic {
		head.WriteString("pub ")
	}
	head.WriteString("struct ")
	head.WriteString(it.Ident.String())
	if len(it.Generics) > 0 {
		head.WriteByte('<')
		for i, g := range it.Generics {
			if i > 0 {
				head.WriteString(", ")
			}
			head.WriteString(g.String())
		}
		head.WriteByte('>')
	}
	p.w.WriteString(head.String())

	switch it.Data.Kind {
	case ast.VariantUnit:
		p.w.WriteString(";")
		p.w.Newline()
	case ast.VariantTuple:
		p.printTupleBody(it.Data.Fields)
	default:
		p.printBraceBody(it.Data.Fields)
	}
}

func (p *printer) printTupleBody(fields []ast.StructField) {
	p.w.WriteString("(")
	for i := range fields {
		if i > 0 {
			p.w.WriteString(", ")
		}
		f := &fields[i]
		for _, a := range f.Attrs {
			// `///` would swallow the rest of the line
			a.SugaredDoc = false
			p.w.WriteString(FormatAttr(a))
			p.w.WriteString(" ")
		}
		p.w.WriteString(fieldHead(f))
		p.w.WriteString(FormatType(f.Type))
	}
	p.w.WriteString(");")
	p.w.Newline()
}

func (p *printer) printBraceBody(fields []ast.StructField) {
	if len(fields) == 0 {
		p.w.WriteString(" {}")
		p.w.Newline()
		return
	}
	p.w.WriteString(" {")
	p.w.Newline()
	p.w.Indent()

	width := 0
	if p.opt.AlignFields {
		for i := range fields {
			width = max(width, runewidth.StringWidth(fieldHead(&fields[i])))
		}
	}
	for i := range fields {
		f := &fields[i]
		for _, a := range f.Attrs {
			p.w.WriteString(FormatAttr(a))
			p.w.Newline()
		}
		head := fieldHead(f)
		if p.opt.AlignFields {
			head += strings.Repeat(" ", width-runewidth.StringWidth(head))
		}
		p.w.WriteString(head)
		p.w.WriteString(FormatType(f.Type))
		p.w.WriteString(",")
		p.w.Newline()
	}

	p.w.Dedent()
	p.w.WriteString("}")
	p.w.Newline()
}

// fieldHead is everything before the type: `pub name: ` or `pub `.
func fieldHead(f *ast.StructField) string {
	var sb strings.Builder
	if f.Visibility() == ast.VisPublic {
		sb.WriteString("pub ")
	}
	if name, ok := f.Name(); ok {
		sb.WriteString(name.String())
		sb.WriteString(": ")
	}
	return sb.String()
}
