package rewrite

import "github.com/rubiojr/tmplvars/ast"

// ternaryDepth bounds the upward search from a control identifier to the
// conditional expression whose test holds it: x ? ..., !x ? ...,
// x === y ? ....
const ternaryDepth = 2

// controlIdentifier rewrites the ternary around a control identifier. It
// reports whether the ternary was replaced.
func (c *component) controlIdentifier(p *ast.Path) bool {
	cond := p.FindParent(func(a *ast.Path) bool {
		_, ok := a.Node.(*ast.ConditionalExpression)
		return ok
	}, ternaryDepth)
	if cond == nil || !inTest(p, cond) {
		return false
	}
	return c.rewriteTernary(cond)
}

func inTest(p, cond *ast.Path) bool {
	for cur := p; cur.Parent != nil; cur = cur.Parent {
		if cur.Parent == cond {
			return cur.Key == "test"
		}
	}
	return false
}

// rewriteTernary replaces test ? a : b with
//
//	open + a + close + elseOpen + b + elseClose
//
// when the test classifies. Each ternary is considered once.
func (c *component) rewriteTernary(cp *ast.Path) bool {
	cond := cp.Node.(*ast.ConditionalExpression)
	if c.handled[cond] {
		return false
	}
	c.handled[cond] = true
	cls := Classify(cond.Test, c.controls, c.renamed)
	if !cls.OK() {
		return false
	}
	cp.ReplaceWith(c.f.Concat(
		c.m.controlOpen(cls),
		cond.Consequent,
		c.m.controlClose(cls),
		c.m.elseOpen(),
		cond.Alternate,
		c.m.elseClose(),
	))
	return true
}
