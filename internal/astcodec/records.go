package astcodec

// Records mirror the ast node model with plain, msgpack friendly fields.
// Identifiers travel as strings: symbol ids are only meaningful inside one
// process.

type bundle struct {
	Schema uint16
	Items  []itemRecord
}

type spanRecord struct {
	File  uint32
	Start uint32
	End   uint32
}

type itemRecord struct {
	Name     string
	Pub      bool
	Attrs    []attrRecord
	Generics []string
	Kind     uint8 // ast.VariantKind
	Fields   []fieldRecord
	Span     spanRecord
}

type fieldRecord struct {
	Named bool
	Name  string
	Pub   bool
	Type  *typeRecord
	Attrs []attrRecord
	Span  spanRecord
}

type attrRecord struct {
	Inner bool
	Doc   bool
	Meta  metaRecord
	Span  spanRecord
}

type metaRecord struct {
	Kind uint8 // ast.MetaKind
	Name string
	List []metaRecord
	Lit  litRecord
	Span spanRecord
}

type litRecord struct {
	Kind uint8 // ast.LitKind
	Str  string
	Int  uint64
	Bool bool
	Span spanRecord
}

type typeRecord struct {
	Kind     uint8 // ast.TypeKind
	Global   bool
	Segments []segmentRecord
	PathSpan spanRecord
	Elem     *typeRecord
	Mut      bool
	Len      uint64
	Elems    []*typeRecord
	Span     spanRecord
}

type segmentRecord struct {
	Name string
	Args []*typeRecord
}
