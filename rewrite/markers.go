package rewrite

import "github.com/rubiojr/tmplvars/ast"

// Value marker kinds.
const (
	KindFormat         = "format"
	KindObjectProperty = "objectProperty"
	KindPrimitive      = "primitive"
)

const (
	markerOpen  = "open"
	markerClose = "close"
	elseType    = "else"
)

// markers builds the marker calls left in the tree for the renderer.
type markers struct {
	f     *ast.Factory
	names Markers
	ctx   string // context identifier
}

func (m markers) value(kind, name string) ast.Node {
	return m.f.CallNamed(m.names.Value, m.f.String(kind), m.f.String(name), m.f.Identifier(m.ctx))
}

func (m markers) list(edge, name string) ast.Node {
	return m.f.CallNamed(m.names.List, m.f.String(edge), m.f.String(name), m.f.Identifier(m.ctx))
}

func (m markers) control(statementType, edge string, args []ast.Operand) ast.Node {
	objs := make([]ast.Node, len(args))
	for i, a := range args {
		objs[i] = m.f.Object(
			m.f.Property("type", m.f.String(a.Kind)),
			m.f.Property("value", m.f.String(a.Value)),
		)
	}
	return m.f.CallNamed(m.names.Control, m.f.Strings(statementType, edge), m.f.Array(objs...), m.f.Identifier(m.ctx))
}

func (m markers) controlOpen(c Classification) ast.Node {
	return m.control(c.StatementType, markerOpen, c.Args)
}

func (m markers) controlClose(c Classification) ast.Node {
	return m.control(c.StatementType, markerClose, c.Args)
}

func (m markers) elseOpen() ast.Node  { return m.control(elseType, markerOpen, nil) }
func (m markers) elseClose() ast.Node { return m.control(elseType, markerClose, nil) }
