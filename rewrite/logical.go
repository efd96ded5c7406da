package rewrite

import "github.com/rubiojr/tmplvars/ast"

// container handles markup expression slots. A guarded slot
// (control && right) is replaced by right bracketed with control
// markers, and a slot showing a list, either as a bare alias or as
// alias.map(...), is bracketed with list markers naming the original
// list. Control markers enclose list markers.
func (c *component) container(p *ast.Path) {
	cont := p.Node.(*ast.JSXExpressionContainer)
	var opens, closes []ast.Node

	if cls, right, ok := c.logicalControl(cont.Expression); ok {
		cont.Expression = right
		opens = append(opens, c.m.controlOpen(cls))
		closes = append(closes, c.m.controlClose(cls))
	}
	if list, ok := c.listSlot(cont.Expression); ok {
		opens = append(opens, c.m.list(markerOpen, list))
		closes = append([]ast.Node{c.m.list(markerClose, list)}, closes...)
	}
	if len(opens) == 0 {
		return
	}

	if p.InList() {
		p.InsertBefore(c.containers(opens)...)
		p.InsertAfter(c.containers(closes)...)
		return
	}
	// Attribute values have no siblings; concatenate instead.
	parts := append(append(opens, cont.Expression), closes...)
	cont.Expression = c.f.Concat(parts...)
}

func (c *component) containers(exprs []ast.Node) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		out[i] = c.f.JSXContainer(e)
	}
	return out
}

// logicalControl recognizes left && right where left classifies as a
// control expression.
func (c *component) logicalControl(expr ast.Node) (Classification, ast.Node, bool) {
	l, ok := expr.(*ast.LogicalExpression)
	if !ok || l.Operator != "&&" {
		return Classification{}, nil, false
	}
	cls := Classify(l.Left, c.controls, c.renamed)
	if !cls.OK() {
		return Classification{}, nil, false
	}
	return cls, l.Right, true
}

// listSlot reports the original list shown by a slot expression: a bare
// alias identifier or a repeat call on one.
func (c *component) listSlot(expr ast.Node) (string, bool) {
	if id, ok := expr.(*ast.Identifier); ok {
		return c.listName(id.Name)
	}
	m, method, ok := ast.MemberCallee(expr)
	if !ok || !c.isRepeatMethod(method) {
		return "", false
	}
	id, ok := m.Object.(*ast.Identifier)
	if !ok {
		return "", false
	}
	return c.listName(id.Name)
}
