package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/parser"
	"github.com/rubiojr/tmplvars/printer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseFile("test.jsx", src)
	require.NoError(t, err)
	return prog
}

func render(prog *ast.Program) string { return printer.Print(prog, printer.Options{}) }

func TestTraverseVisitsInOrder(t *testing.T) {
	prog := parse(t, "const a = b + c;\nf(d);\n")
	var names []string
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			names = append(names, p.Node.(*ast.Identifier).Name)
		},
	})
	assert.Equal(t, []string{"a", "b", "c", "f", "d"}, names)
}

func TestReplaceWithReentersNode(t *testing.T) {
	prog := parse(t, "x;\n")
	f := ast.NewFactory()
	var seen []string
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			name := p.Node.(*ast.Identifier).Name
			seen = append(seen, name)
			if name == "x" {
				p.ReplaceWith(f.Identifier("y"))
			}
		},
	})
	assert.Equal(t, []string{"x", "y"}, seen)
	assert.Equal(t, "y;\n", render(prog))
}

func TestReplaceWithIsBounded(t *testing.T) {
	prog := parse(t, "x;\n")
	f := ast.NewFactory()
	calls := 0
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			calls++
			p.ReplaceWith(f.Identifier("x"))
		},
	})
	assert.Equal(t, 32, calls)
}

func TestRemoveSkipsChildren(t *testing.T) {
	prog := parse(t, "drop(a);\nkeep(b);\n")
	var names []string
	ast.Traverse(prog, ast.Visitor{
		"ExpressionStatement": func(p *ast.Path) {
			call := p.Node.(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
			if ast.IsIdentifier(call.Callee, "drop") {
				p.Remove()
			}
		},
		"Identifier": func(p *ast.Path) {
			names = append(names, p.Node.(*ast.Identifier).Name)
		},
	})
	assert.Equal(t, []string{"keep", "b"}, names)
	assert.Equal(t, "keep(b);\n", render(prog))
}

func TestInsertBeforeAndAfter(t *testing.T) {
	prog := parse(t, "mid;\n")
	f := ast.NewFactory()
	var seen []string
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			seen = append(seen, p.Node.(*ast.Identifier).Name)
		},
		"ExpressionStatement": func(p *ast.Path) {
			if !ast.IsIdentifier(p.Node.(*ast.ExpressionStatement).Expression, "mid") {
				return
			}
			assert.True(t, p.InsertBefore(f.ExprStmt(f.Identifier("before"))))
			assert.True(t, p.InsertAfter(f.ExprStmt(f.Identifier("after"))))
			assert.Equal(t, 1, p.Index())
		},
	})
	assert.Equal(t, "before;\nmid;\nafter;\n", render(prog))
	assert.Equal(t, []string{"mid", "after"}, seen, "nodes inserted before are not visited")
}

func TestInsertOutsideList(t *testing.T) {
	prog := parse(t, "a = b;\n")
	ast.Traverse(prog, ast.Visitor{
		"AssignmentExpression": func(p *ast.Path) {
			assert.False(t, p.InList())
			assert.False(t, p.InsertBefore(&ast.Identifier{Name: "z"}))
			assert.Equal(t, -1, p.Index())
		},
	})
}

func TestAncestorReplacementIsTraversed(t *testing.T) {
	prog := parse(t, "ok ? a : b;\n")
	f := ast.NewFactory()
	var names []string
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			id := p.Node.(*ast.Identifier)
			names = append(names, id.Name)
			if id.Name != "ok" {
				return
			}
			cond := p.FindParent(func(a *ast.Path) bool {
				_, ok := a.Node.(*ast.ConditionalExpression)
				return ok
			}, 1)
			require.NotNil(t, cond)
			c := cond.Node.(*ast.ConditionalExpression)
			cond.ReplaceWith(f.Concat(c.Consequent, f.Identifier("sep"), c.Alternate))
		},
	})
	assert.Equal(t, []string{"ok", "a", "sep", "b"}, names)
	assert.Equal(t, "a + sep + b;\n", render(prog))
}

func TestFindParentDepth(t *testing.T) {
	prog := parse(t, "f(!x);\n")
	isCall := func(p *ast.Path) bool {
		_, ok := p.Node.(*ast.CallExpression)
		return ok
	}
	ast.Traverse(prog, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			if !ast.IsIdentifier(p.Node, "x") {
				return
			}
			assert.Nil(t, p.FindParent(isCall, 1))
			assert.NotNil(t, p.FindParent(isCall, 2))
			assert.NotNil(t, p.FindParent(isCall, 0))
		},
	})
}

func TestSiblings(t *testing.T) {
	prog := parse(t, "function A() {}\nA.x = 1;\nconst B = 2;\n")
	var sibs []string
	ast.Traverse(prog, ast.Visitor{
		"ExpressionStatement": func(p *ast.Path) {
			for _, s := range p.Siblings() {
				sibs = append(sibs, s.Node.Type())
			}
		},
	})
	assert.Equal(t, []string{"FunctionDeclaration", "VariableDeclaration"}, sibs)
}

func TestUnshiftContainer(t *testing.T) {
	prog := parse(t, "function A() {\n  return 1;\n}\n")
	f := ast.NewFactory()
	ast.Traverse(prog, ast.Visitor{
		"BlockStatement": func(p *ast.Path) {
			assert.True(t, p.UnshiftContainer("body", f.Const("a", f.Number(0)), f.Const("b", f.Number(1))))
			assert.False(t, p.UnshiftContainer("missing"))
		},
	})
	assert.Equal(t, "function A() {\n  const a = 0;\n  const b = 1;\n  return 1;\n}\n", render(prog))
}

func TestPathTraverseSharesScope(t *testing.T) {
	prog := parse(t, "function A() { return _ref; }\n")
	var inner *ast.Scope
	root := ast.Traverse(prog, ast.Visitor{
		"FunctionDeclaration": func(p *ast.Path) {
			p.Traverse(ast.Visitor{
				"ReturnStatement": func(rp *ast.Path) { inner = rp.Scope() },
			})
			p.Skip()
		},
	})
	require.NotNil(t, inner)
	assert.Same(t, root.Scope(), inner)
	assert.Equal(t, "_ref2", inner.GenerateUID("ref"))
}

func TestCloneIsDeep(t *testing.T) {
	prog := parse(t, "const a = [b, { c: <div id={d}>text</div> }];\n")
	cp := ast.Clone(prog).(*ast.Program)
	ast.Traverse(cp, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			p.Node.(*ast.Identifier).Name += "2"
		},
	})
	assert.Equal(t, "const a = [b, { c: <div id={d}>text</div> }];\n", render(prog))
	assert.Equal(t, "const a2 = [b2, { c2: <div id={d2}>text</div> }];\n", render(cp))
}

func TestCloneCoversStatements(t *testing.T) {
	src := `for (const k of ks) {
  try {
    f(k);
  } catch (e) {
    throw e;
  }
}

class A extends B {
  m() {
    return /x/.test(k), k;
  }
}
`
	prog := parse(t, src)
	cp := ast.Clone(prog).(*ast.Program)
	ast.Traverse(cp, ast.Visitor{
		"Identifier": func(p *ast.Path) {
			p.Node.(*ast.Identifier).Name += "2"
		},
	})
	assert.Equal(t, src, render(prog))
	assert.Equal(t, `for (const k2 of ks2) {
  try {
    f2(k2);
  } catch (e2) {
    throw e2;
  }
}

class A2 extends B2 {
  m2() {
    return /x/.test2(k2), k2;
  }
}
`, render(cp))
}

func TestInspect(t *testing.T) {
	prog := parse(t, "f(() => x);\ny;\n")
	var names []string
	ast.Inspect(prog, func(n ast.Node) bool {
		if ast.IsFunction(n) {
			return false
		}
		if id, ok := n.(*ast.Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"f", "y"}, names)
}
