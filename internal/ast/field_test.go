package ast

import "testing"

func TestWithVisibility_KeepsVariant(t *testing.T) {
	name := ToIdent("x")
	named := WithVisibility(NamedField{Name: name}, VisPublic)
	if k, ok := named.(NamedField); !ok || k.Name != name || k.Vis != VisPublic {
		t.Errorf("named = %#v", named)
	}
	unnamed := WithVisibility(UnnamedField{}, VisPublic)
	if k, ok := unnamed.(UnnamedField); !ok || k.Vis != VisPublic {
		t.Errorf("unnamed = %#v", unnamed)
	}
	if back := WithVisibility(named, VisInherited); back.Visibility() != VisInherited {
		t.Errorf("visibility not reset: %v", back.Visibility())
	}
}

func TestStructField_Accessors(t *testing.T) {
	f := StructField{Kind: NamedField{Name: ToIdent("y"), Vis: VisPublic}}
	if n, ok := f.Name(); !ok || n.String() != "y" {
		t.Errorf("Name() = %v, %v", n, ok)
	}
	if f.Visibility() != VisPublic {
		t.Errorf("Visibility() = %v", f.Visibility())
	}
	pos := StructField{Kind: UnnamedField{}}
	if _, ok := pos.Name(); ok {
		t.Error("positional field reported a name")
	}
	if (&StructField{}).Visibility() != VisInherited {
		t.Error("zero field must be inherited")
	}
}

func TestVisibilityString(t *testing.T) {
	if VisInherited.String() != "inherited" || VisPublic.String() != "public" {
		t.Errorf("got %q %q", VisInherited, VisPublic)
	}
}
