package astfmt

import (
	"strconv"
	"strings"

	"aster/internal/ast"
)

// FormatType renders t in surface syntax. A missing type prints as `_`.
func FormatType(t *ast.Type) string {
	var sb strings.Builder
	writeType(&sb, t)
	return sb.String()
}

func writeType(sb *strings.Builder, t *ast.Type) {
	if t == nil {
		sb.WriteByte('_')
		return
	}
	switch t.Kind {
	case ast.TypePath:
		writePath(sb, t.Path)
	case ast.TypeRef:
		sb.WriteByte('&')
		if t.Mut == ast.Mutable {
			sb.WriteString("mut ")
		}
		writeType(sb, t.Elem)
	case ast.TypePtr:
		if t.Mut == ast.Mutable {
			sb.WriteString("*mut ")
		} else {
			sb.WriteString("*const ")
		}
		writeType(sb, t.Elem)
	case ast.TypeSlice:
		sb.WriteByte('[')
		writeType(sb, t.Elem)
		sb.WriteByte(']')
	case ast.TypeArray:
		sb.WriteByte('[')
		writeType(sb, t.Elem)
		sb.WriteString("; ")
		sb.WriteString(strconv.FormatUint(t.Len, 10))
		sb.WriteByte(']')
	case ast.TypeTuple:
		sb.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, e)
		}
		// (T,) keeps a one-element tuple from reading as parentheses
		if len(t.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case ast.TypeInfer:
		sb.WriteByte('_')
	}
}

func writePath(sb *strings.Builder, p *ast.Path) {
	if p == nil {
		return
	}
	if p.Global {
		sb.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident.String())
		if len(seg.Args) > 0 {
			sb.WriteByte('<')
			for j, a := range seg.Args {
				if j > 0 {
					sb.WriteString(", ")
				}
				writeType(sb, a)
			}
			sb.WriteByte('>')
		}
	}
}
