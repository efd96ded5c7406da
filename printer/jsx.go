package printer

import (
	"strings"

	"github.com/rubiojr/tmplvars/ast"
)

func (p *printer) jsxStr(n ast.Node) string {
	var sb strings.Builder
	p.writeJSX(&sb, n)
	return sb.String()
}

func (p *printer) writeJSX(sb *strings.Builder, n ast.Node) {
	switch e := n.(type) {
	case *ast.JSXElement:
		name := ast.JSXName(e.Name)
		sb.WriteString("<" + name)
		for _, a := range e.Attributes {
			sb.WriteByte(' ')
			p.writeJSXAttribute(sb, a)
		}
		if e.SelfClosing && len(e.Children) == 0 {
			sb.WriteString(" />")
			return
		}
		sb.WriteByte('>')
		p.writeJSXChildren(sb, e.Children)
		sb.WriteString("</" + name + ">")
	case *ast.JSXFragment:
		sb.WriteString("<>")
		p.writeJSXChildren(sb, e.Children)
		sb.WriteString("</>")
	case *ast.JSXText:
		sb.WriteString(e.Value)
	case *ast.JSXExpressionContainer:
		if _, empty := e.Expression.(*ast.JSXEmptyExpression); empty {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{" + p.expr(e.Expression, precLowest) + "}")
	default:
		// Children inserted by transforms may be plain expressions.
		sb.WriteString("{" + p.expr(n, precLowest) + "}")
	}
}

func (p *printer) writeJSXChildren(sb *strings.Builder, children []ast.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		p.writeJSX(sb, c)
	}
}

func (p *printer) writeJSXAttribute(sb *strings.Builder, a ast.Node) {
	switch attr := a.(type) {
	case *ast.JSXSpreadAttribute:
		sb.WriteString("{..." + p.expr(attr.Argument, precAssign) + "}")
	case *ast.JSXAttribute:
		sb.WriteString(ast.JSXName(attr.Name))
		switch v := attr.Value.(type) {
		case nil:
		case *ast.StringLiteral:
			sb.WriteString("=" + jsxAttrString(v.Value))
		case *ast.JSXExpressionContainer:
			sb.WriteString("=")
			p.writeJSX(sb, v)
		default:
			sb.WriteString("={" + p.expr(v, precLowest) + "}")
		}
	}
}

// jsxAttrString quotes an attribute value. Markup strings have no
// escapes, so values holding a double quote use single quotes, and values
// holding both become an expression container.
func jsxAttrString(v string) string {
	switch {
	case !strings.Contains(v, `"`):
		return `"` + v + `"`
	case !strings.Contains(v, "'"):
		return "'" + v + "'"
	}
	return "{" + quote(v, '"') + "}"
}
