package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"aster/internal/ast"
	"aster/internal/source"
)

// CheckIDs verifies that the id pass ran over items:
// 1) every node id is valid and not a placeholder
// 2) ids are unique across all items
// 3) ids are dense: exactly 1..count are used
func CheckIDs(items []*ast.Item, count int) error {
	seen := make(map[ast.NodeID]string, count)
	visit := func(id ast.NodeID, what string) error {
		if !id.IsValid() || id.IsPlaceholder() {
			return fmt.Errorf("%s has unassigned id %s", what, id)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("id %s used by both %s and %s", id, prev, what)
		}
		seen[id] = what
		return nil
	}
	for _, it := range items {
		if err := walk(it, visit); err != nil {
			return err
		}
	}
	if len(seen) != count {
		return fmt.Errorf("assigner handed out %d ids, tree holds %d", count, len(seen))
	}
	for id := range seen {
		n, err := safecast.Conv[int](uint32(id))
		if err != nil || n < 1 || n > count {
			return fmt.Errorf("id %s outside 1..%d", id, count)
		}
	}
	return nil
}

// CheckSpans verifies that every node span points into sf:
// 1) spans are not dummy and name sf
// 2) Start <= End <= len(content)
// 3) a field type is covered by its field span
func CheckSpans(items []*ast.Item, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(sp source.Span, what string) error {
		if sp.IsDummy() {
			return fmt.Errorf("%s has no span", what)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s span %v outside content (len %d)", what, sp, lenContent)
		}
		return nil
	}
	for _, it := range items {
		name := "item " + it.Ident.String()
		if err := check(it.Span, name); err != nil {
			return err
		}
		for i := range it.Data.Fields {
			f := &it.Data.Fields[i]
			what := fmt.Sprintf("%s field %d", name, i)
			if err := check(f.Span, what); err != nil {
				return err
			}
			if f.Type == nil {
				return fmt.Errorf("%s has no type", what)
			}
			if err := check(f.Type.Span, what+" type"); err != nil {
				return err
			}
			if !f.Span.Contains(f.Type.Span) {
				return fmt.Errorf("%s type span %v outside field span %v", what, f.Type.Span, f.Span)
			}
		}
	}
	return nil
}

func walk(it *ast.Item, visit func(ast.NodeID, string) error) error {
	name := "item " + it.Ident.String()
	if err := visit(it.ID, name); err != nil {
		return err
	}
	if err := visit(it.Data.ID, name+" body"); err != nil {
		return err
	}
	for i := range it.Data.Fields {
		f := &it.Data.Fields[i]
		what := fmt.Sprintf("%s field %d", name, i)
		if err := visit(f.ID, what); err != nil {
			return err
		}
		if err := walkType(f.Type, what+" type", visit); err != nil {
			return err
		}
	}
	return nil
}

func walkType(t *ast.Type, what string, visit func(ast.NodeID, string) error) error {
	if t == nil {
		return nil
	}
	if err := visit(t.ID, what); err != nil {
		return err
	}
	if err := walkType(t.Elem, what+" elem", visit); err != nil {
		return err
	}
	for i, e := range t.Elems {
		if err := walkType(e, fmt.Sprintf("%s[%d]", what, i), visit); err != nil {
			return err
		}
	}
	if t.Path != nil {
		for _, seg := range t.Path.Segments {
			for i, a := range seg.Args {
				if err := walkType(a, fmt.Sprintf("%s<%s#%d>", what, seg.Ident, i), visit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
