package ast

// Visibility описывает доступность поля или элемента.
type Visibility uint8

const (
	// VisInherited is the default: private to the enclosing module.
	VisInherited Visibility = iota
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	default:
		return "inherited"
	}
}
