package manifest

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var tokens = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{M}\p{Nd}_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Sep", Pattern: `::`},
	{Name: "Punct", Pattern: `[&*\[\]();,<>=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	typeParser = participle.MustBuild[typeExpr](
		participle.Lexer(tokens),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	)
	metaParser = participle.MustBuild[metaItem](
		participle.Lexer(tokens),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(4),
	)
)

// Type grammar.

type typeExpr struct {
	Ref   *refType   `  @@`
	Ptr   *ptrType   `| @@`
	Slice *sliceType `| @@`
	Tuple *tupleType `| @@`
	Infer bool       `| @"_"`
	Path  *pathType  `| @@`
}

type refType struct {
	Mut  bool      `"&" @"mut"?`
	Elem *typeExpr `@@`
}

type ptrType struct {
	Mut  bool      `"*" ( @"mut" | "const" )`
	Elem *typeExpr `@@`
}

// sliceType covers both `[T]` and `[T; N]`.
type sliceType struct {
	Elem *typeExpr `"[" @@`
	Len  *string   `( ";" @Int )? "]"`
}

type tupleType struct {
	Elems    []*typeExpr `"(" ( @@ ( "," @@ )*`
	Trailing bool        `@","? )? ")"`
}

type pathType struct {
	Global   bool           `@"::"?`
	Segments []*pathSegment `@@ ( "::" @@ )*`
}

type pathSegment struct {
	Name string      `@Ident`
	Args []*typeExpr `( "<" @@ ( "," @@ )* ","? ">" )?`
}

// Meta grammar.

type metaItem struct {
	Name  string    `@Ident`
	Value *metaLit  `( "=" @@`
	List  *metaList `| @@ )?`
}

type metaList struct {
	Items []*metaItem `"(" ( @@ ( "," @@ )* ","? )? ")"`
}

type metaLit struct {
	Str  *string `  @String`
	Int  *string `| @Int`
	Bool *string `| @( "true" | "false" )`
}
