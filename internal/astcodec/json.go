package astcodec

import (
	"encoding/json"
	"fmt"

	"aster/internal/ast"
	"aster/internal/astfmt"
)

// The JSON form is for inspection by other tools; it is not read back.
// Types are rendered in surface syntax.

type jsonDoc struct {
	Schema uint16     `json:"schema"`
	Items  []jsonItem `json:"items"`
}

type jsonItem struct {
	Name     string      `json:"name"`
	Pub      bool        `json:"pub,omitempty"`
	Kind     string      `json:"kind"`
	Generics []string    `json:"generics,omitempty"`
	Attrs    []string    `json:"attrs,omitempty"`
	Fields   []jsonField `json:"fields,omitempty"`
	ID       string      `json:"id"`
}

type jsonField struct {
	Name  string   `json:"name,omitempty"`
	Pub   bool     `json:"pub,omitempty"`
	Type  string   `json:"type"`
	Attrs []string `json:"attrs,omitempty"`
	ID    string   `json:"id"`
}

// MarshalJSON renders items as indented JSON.
func MarshalJSON(items []*ast.Item) ([]byte, error) {
	doc := jsonDoc{Schema: SchemaVersion, Items: make([]jsonItem, 0, len(items))}
	for _, it := range items {
		ji := jsonItem{
			Name:  it.Ident.String(),
			Pub:   it.Vis == ast.VisPublic,
			Kind:  it.Data.Kind.String(),
			Attrs: formatAttrs(it.Attrs),
			ID:    it.ID.String(),
		}
		for _, g := range it.Generics {
			ji.Generics = append(ji.Generics, g.String())
		}
		for i := range it.Data.Fields {
			f := &it.Data.Fields[i]
			if f.Type == nil {
				return nil, fmt.Errorf("item %s field %d: %w", it.Ident, i, ErrMissingType)
			}
			jf := jsonField{
				Pub:   f.Visibility() == ast.VisPublic,
				Type:  astfmt.FormatType(f.Type),
				Attrs: formatAttrs(f.Attrs),
				ID:    f.ID.String(),
			}
			if name, ok := f.Name(); ok {
				jf.Name = name.String()
			}
			ji.Fields = append(ji.Fields, jf)
		}
		doc.Items = append(doc.Items, ji)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func formatAttrs(attrs []ast.Attribute) []string {
	var out []string
	for _, a := range attrs {
		out = append(out, astfmt.FormatAttr(a))
	}
	return out
}
