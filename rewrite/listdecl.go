package rewrite

import "github.com/rubiojr/tmplvars/ast"

// listDeclaration builds the stand-in for a list variable: a const bound
// to a one-element array whose element is a value marker (primitive
// children) or an object of value markers (object children). Other child
// shapes produce no declaration.
func (m markers) listDeclaration(target string, v Var) (*ast.VariableDeclaration, bool) {
	var elem ast.Node
	switch v.Config.ChildType() {
	case ChildPrimitive:
		elem = m.value(KindPrimitive, v.Name)
	case ChildObject:
		var props []ast.Node
		if v.Config.Child != nil {
			for _, p := range v.Config.Child.Props {
				props = append(props, m.f.Property(p, m.value(KindObjectProperty, p)))
			}
		}
		elem = m.f.Object(props...)
	default:
		return nil, false
	}
	return m.f.Const(target, m.f.Array(elem)), true
}
