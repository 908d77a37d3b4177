package ast

// IDAssigner binds dense node ids to trees produced by the builders.
// It is the later pass that turns placeholders into real ids.
type IDAssigner struct {
	next uint32
}

// NewIDAssigner starts numbering at 1.
func NewIDAssigner() *IDAssigner {
	return &IDAssigner{}
}

func (a *IDAssigner) alloc() NodeID {
	a.next++
	id := NodeID(a.next)
	if id.IsPlaceholder() {
		panic("ast: node id space exhausted")
	}
	return id
}

// Count returns how many ids were handed out.
func (a *IDAssigner) Count() int {
	return int(a.next)
}

// AssignItem numbers it in pre-order: item, body, then each field followed by its type.
func (a *IDAssigner) AssignItem(it *Item) {
	it.ID = a.alloc()
	it.Data.ID = a.alloc()
	for i := range it.Data.Fields {
		a.AssignField(&it.Data.Fields[i])
	}
}

// AssignField numbers f and its type tree.
func (a *IDAssigner) AssignField(f *StructField) {
	f.ID = a.alloc()
	a.AssignType(f.Type)
}

// AssignType numbers t and every nested type.
func (a *IDAssigner) AssignType(t *Type) {
	if t == nil {
		return
	}
	t.ID = a.alloc()
	if t.Path != nil {
		for _, seg := range t.Path.Segments {
			for _, arg := range seg.Args {
				a.AssignType(arg)
			}
		}
	}
	a.AssignType(t.Elem)
	for _, e := range t.Elems {
		a.AssignType(e)
	}
}

// CountPlaceholders walks it and reports the ids still unassigned.
func CountPlaceholders(it *Item) int {
	n := 0
	visit := func(id NodeID) {
		if id.IsPlaceholder() {
			n++
		}
	}
	visit(it.ID)
	visit(it.Data.ID)
	var walk func(*Type)
	walk = func(t *Type) {
		if t == nil {
			return
		}
		visit(t.ID)
		if t.Path != nil {
			for _, seg := range t.Path.Segments {
				for _, arg := range seg.Args {
					walk(arg)
				}
			}
		}
		walk(t.Elem)
		for _, e := range t.Elems {
			walk(e)
		}
	}
	for i := range it.Data.Fields {
		visit(it.Data.Fields[i].ID)
		walk(it.Data.Fields[i].Type)
	}
	return n
}
