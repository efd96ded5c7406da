package parser

import (
	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/scanner"
)

// Markup is read with the scanner's raw methods. On entry to parseJSX the
// current token is "<" and the scanner sits right after it; on return the
// scanner sits right after the element's final ">" and the caller
// advances to the next token.

func (p *parser) rawPos() ast.Pos { return toPos(p.sc.Pos()) }

func (p *parser) rawExpect(text string) {
	p.sc.SkipSpace()
	if !p.sc.LookingAt(text) {
		p.failAt(p.rawPos(), "expected %q in markup", text)
	}
	p.sc.Advance(len(text))
}

// parseJSX parses an element or fragment whose "<" starts at pos.
func (p *parser) parseJSX(pos ast.Pos) ast.Node {
	p.sc.SkipSpace()
	if p.sc.LookingAt(">") {
		p.sc.Advance(1)
		frag := &ast.JSXFragment{}
		frag.Loc = pos
		frag.Children = p.parseJSXChildren()
		p.rawExpect("</")
		p.rawExpect(">")
		return frag
	}

	el := &ast.JSXElement{Attributes: []ast.Node{}, Children: []ast.Node{}}
	el.Loc = pos
	el.Name = p.parseJSXElementName()
	for {
		p.sc.SkipSpace()
		switch {
		case p.sc.AtEOF():
			p.failAt(pos, "unterminated <%s> tag", ast.JSXName(el.Name))
		case p.sc.LookingAt("/>"):
			p.sc.Advance(2)
			el.SelfClosing = true
			return el
		case p.sc.LookingAt(">"):
			p.sc.Advance(1)
			el.Children = p.parseJSXChildren()
			p.parseJSXClosing(el)
			return el
		case p.sc.LookingAt("{"):
			el.Attributes = append(el.Attributes, p.parseJSXSpreadAttribute())
		default:
			el.Attributes = append(el.Attributes, p.parseJSXAttribute())
		}
	}
}

func (p *parser) parseJSXElementName() ast.Node {
	pos := p.rawPos()
	name := p.sc.ReadJSXName()
	if name == "" {
		p.failAt(pos, "expected element name")
	}
	id := &ast.JSXIdentifier{Name: name}
	id.Loc = pos
	var out ast.Node = id
	for p.sc.LookingAt(".") {
		p.sc.Advance(1)
		ppos := p.rawPos()
		prop := p.sc.ReadJSXName()
		if prop == "" {
			p.failAt(ppos, "expected member name")
		}
		pid := &ast.JSXIdentifier{Name: prop}
		pid.Loc = ppos
		m := &ast.JSXMemberExpression{Object: out, Property: pid}
		m.Loc = pos
		out = m
	}
	return out
}

func (p *parser) parseJSXClosing(el *ast.JSXElement) {
	closePos := p.rawPos()
	p.rawExpect("</")
	p.sc.SkipSpace()
	name := p.parseJSXElementName()
	if ast.JSXName(name) != ast.JSXName(el.Name) {
		p.failAt(closePos, "expected </%s>, found </%s>", ast.JSXName(el.Name), ast.JSXName(name))
	}
	p.rawExpect(">")
}

func (p *parser) parseJSXAttribute() *ast.JSXAttribute {
	pos := p.rawPos()
	name := p.sc.ReadJSXName()
	if name == "" {
		c, _ := p.sc.Peek()
		p.failAt(pos, "unexpected %q in tag", c)
	}
	attr := &ast.JSXAttribute{Name: &ast.JSXIdentifier{BaseNode: ast.BaseNode{Loc: pos}, Name: name}}
	attr.Loc = pos
	p.sc.SkipSpace()
	if !p.sc.LookingAt("=") {
		return attr
	}
	p.sc.Advance(1)
	p.sc.SkipSpace()
	vpos := p.rawPos()
	switch {
	case p.sc.LookingAt("\"") || p.sc.LookingAt("'"):
		v, err := p.sc.ReadJSXString()
		if err != nil {
			se := err.(*scanner.Error)
			p.failAt(toPos(se.Pos), "%s", se.Msg)
		}
		s := &ast.StringLiteral{Value: v}
		s.Loc = vpos
		attr.Value = s
	case p.sc.LookingAt("{"):
		c := p.parseJSXExpressionContainer()
		if _, empty := c.Expression.(*ast.JSXEmptyExpression); empty {
			p.failAt(vpos, "attribute %s has an empty expression", name)
		}
		attr.Value = c
	default:
		p.failAt(vpos, "expected attribute value for %s", name)
	}
	return attr
}

func (p *parser) parseJSXSpreadAttribute() *ast.JSXSpreadAttribute {
	s := &ast.JSXSpreadAttribute{}
	s.Loc = p.rawPos()
	p.sc.Advance(1)
	p.next()
	p.expect("...")
	s.Argument = p.parseAssign()
	p.expectClose("}")
	return s
}

// parseJSXExpressionContainer parses {expr} or {} (with optional
// comments). The scanner sits on the "{".
func (p *parser) parseJSXExpressionContainer() *ast.JSXExpressionContainer {
	c := &ast.JSXExpressionContainer{}
	c.Loc = p.rawPos()
	p.sc.Advance(1)
	p.next()
	if p.tok.Is("}") {
		empty := &ast.JSXEmptyExpression{}
		empty.Loc = p.pos()
		c.Expression = empty
		return c
	}
	c.Expression = p.parseExpression()
	p.expectClose("}")
	return c
}

func (p *parser) parseJSXChildren() []ast.Node {
	children := []ast.Node{}
	for {
		pos := p.rawPos()
		switch {
		case p.sc.AtEOF():
			p.failAt(pos, "unterminated markup")
		case p.sc.LookingAt("</"):
			return children
		case p.sc.LookingAt("<"):
			p.sc.Advance(1)
			children = append(children, p.parseJSX(pos))
		case p.sc.LookingAt("{"):
			children = append(children, p.parseJSXExpressionContainer())
		default:
			t := &ast.JSXText{Value: p.sc.ReadJSXText()}
			t.Loc = pos
			children = append(children, t)
		}
	}
}
