package astfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"aster/internal/ast"
)

// FormatAttr renders `#[meta]`, `#![meta]`, or a `///` doc line.
// Multi-line doc text falls back to `#[doc = "..."]`.
func FormatAttr(a ast.Attribute) string {
	if a.SugaredDoc && a.Value.Kind == ast.MetaNameValue && a.Value.Value.Kind == ast.LitStr &&
		!strings.ContainsAny(a.Value.Value.Str, "\r\n") {
		if a.Style == ast.AttrInner {
			return "//!" + a.Value.Value.Str
		}
		return "///" + a.Value.Value.Str
	}
	if a.Style == ast.AttrInner {
		return "#![" + FormatMeta(a.Value) + "]"
	}
	return "#[" + FormatMeta(a.Value) + "]"
}

func FormatMeta(m ast.MetaItem) string {
	var sb strings.Builder
	writeMeta(&sb, m)
	return sb.String()
}

func writeMeta(sb *strings.Builder, m ast.MetaItem) {
	sb.WriteString(m.Name)
	switch m.Kind {
	case ast.MetaNameValue:
		sb.WriteString(" = ")
		sb.WriteString(FormatLit(m.Value))
	case ast.MetaList:
		sb.WriteByte('(')
		for i, it := range m.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeMeta(sb, it)
		}
		sb.WriteByte(')')
	}
}

func FormatLit(l ast.Lit) string {
	switch l.Kind {
	case ast.LitInt:
		return strconv.FormatUint(l.Int, 10)
	case ast.LitBool:
		return strconv.FormatBool(l.Bool)
	default:
		return quoteRust(l.Str)
	}
}

// quoteRust quotes s as a Rust string literal. Printable runes stay as
// they are, everything else becomes `\u{hex}`. Invalid UTF-8 bytes
// cannot live in a Rust str and turn into U+FFFD.
func quoteRust(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(`\u{fffd}`)
			continue
		}
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) {
				sb.WriteRune(r)
			} else {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
