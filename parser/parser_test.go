package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/tmplvars/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseFile("test.jsx", src)
	require.NoError(t, err)
	return prog
}

func mustExpr(t *testing.T, src string) ast.Node {
	t.Helper()
	expr, err := ParseExpression(src)
	require.NoError(t, err)
	return expr
}

func bodyTypes(prog *ast.Program) []string {
	var out []string
	for _, s := range prog.Body {
		out = append(out, s.Type())
	}
	return out
}

func TestParseModule(t *testing.T) {
	prog := mustParse(t, `
import React, { useState as state } from 'react';
import * as ui from "./ui";
import './global.css';

export function Card(props) { return null; }
export default Card;
export const Badge = () => <span />;
export { Card as Default, Badge };
export { helper } from './helper';
Card.templateVars = ['title'];
`)
	assert.Equal(t, []string{
		"ImportDeclaration", "ImportDeclaration", "ImportDeclaration",
		"ExportNamedDeclaration", "ExportDefaultDeclaration", "ExportNamedDeclaration",
		"ExportNamedDeclaration", "ExportNamedDeclaration", "ExpressionStatement",
	}, bodyTypes(prog))
	assert.Equal(t, "test.jsx", prog.SourceFile)

	imp := prog.Body[0].(*ast.ImportDeclaration)
	require.Len(t, imp.Specifiers, 2)
	assert.IsType(t, &ast.ImportDefaultSpecifier{}, imp.Specifiers[0])
	spec := imp.Specifiers[1].(*ast.ImportSpecifier)
	assert.True(t, ast.IsIdentifier(spec.Imported, "useState"))
	assert.True(t, ast.IsIdentifier(spec.Local, "state"))

	assert.IsType(t, &ast.ImportNamespaceSpecifier{}, prog.Body[1].(*ast.ImportDeclaration).Specifiers[0])
	assert.Empty(t, prog.Body[2].(*ast.ImportDeclaration).Specifiers)

	reexport := prog.Body[7].(*ast.ExportNamedDeclaration)
	assert.Nil(t, reexport.Declaration)
	assert.NotNil(t, reexport.Source)
}

func TestParseDescriptorStatement(t *testing.T) {
	prog := mustParse(t, "Card.templateVars = ['title', ['items', { type: 'list', child: { type: 'object', props: ['a'] } }]];\n")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignmentExpression)
	assert.Equal(t, "=", assign.Operator)
	member := assign.Left.(*ast.MemberExpression)
	assert.True(t, ast.IsIdentifier(member.Object, "Card"))
	assert.True(t, ast.IsIdentifier(member.Property, "templateVars"))

	got, ok := ast.ToValue(assign.Right)
	require.True(t, ok)
	want := []any{"title", []any{"items", map[string]any{
		"type":  "list",
		"child": map[string]any{"type": "object", "props": []any{"a"}},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptor value mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ast.Pos{Line: 1, Col: 1}, stmt.Position())
}

func TestParsePrecedence(t *testing.T) {
	expr := mustExpr(t, "a || b && c === d + e * f")
	or := expr.(*ast.LogicalExpression)
	assert.Equal(t, "||", or.Operator)
	and := or.Right.(*ast.LogicalExpression)
	assert.Equal(t, "&&", and.Operator)
	eq := and.Right.(*ast.BinaryExpression)
	assert.Equal(t, "===", eq.Operator)
	plus := eq.Right.(*ast.BinaryExpression)
	assert.Equal(t, "+", plus.Operator)
	assert.Equal(t, "*", plus.Right.(*ast.BinaryExpression).Operator)

	pow := mustExpr(t, "a ** b ** c").(*ast.BinaryExpression)
	assert.True(t, ast.IsIdentifier(pow.Left, "a"), "** is right-associative")

	nc := mustExpr(t, "a ?? b").(*ast.LogicalExpression)
	assert.Equal(t, "??", nc.Operator)
}

func TestParseConditionalAndUnary(t *testing.T) {
	cond := mustExpr(t, "!visible ? a : b ? c : d").(*ast.ConditionalExpression)
	assert.Equal(t, "!", cond.Test.(*ast.UnaryExpression).Operator)
	assert.IsType(t, &ast.ConditionalExpression{}, cond.Alternate)

	u := mustExpr(t, "typeof x").(*ast.UnaryExpression)
	assert.Equal(t, "typeof", u.Operator)

	up := mustExpr(t, "i++").(*ast.UpdateExpression)
	assert.False(t, up.Prefix)
	up = mustExpr(t, "--i").(*ast.UpdateExpression)
	assert.True(t, up.Prefix)
}

func TestParseArrows(t *testing.T) {
	tests := []struct {
		src    string
		params int
		async  bool
		block  bool
	}{
		{"x => x", 1, false, false},
		{"() => 1", 0, false, false},
		{"(a, b) => a + b", 2, false, false},
		{"({ a, ...rest }, [b, c] = []) => { return a; }", 2, false, true},
		{"async (x) => await x", 1, true, false},
		{"async x => x", 1, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			fn, ok := mustExpr(t, tt.src).(*ast.ArrowFunctionExpression)
			require.True(t, ok)
			assert.Len(t, fn.Params, tt.params)
			assert.Equal(t, tt.async, fn.Async)
			_, block := fn.Body.(*ast.BlockStatement)
			assert.Equal(t, tt.block, block)
		})
	}

	// A parenthesized expression is not an arrow.
	assert.IsType(t, &ast.BinaryExpression{}, mustExpr(t, "(a + b) * c"))
}

func TestParsePatterns(t *testing.T) {
	prog := mustParse(t, "function Card({ title, tags: list = [], ...rest }, [first, , third]) {}\n")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Params, 2)

	obj := fn.Params[0].(*ast.ObjectPattern)
	require.Len(t, obj.Properties, 3)
	title := obj.Properties[0].(*ast.ObjectProperty)
	assert.True(t, title.Shorthand)
	tags := obj.Properties[1].(*ast.ObjectProperty)
	assert.IsType(t, &ast.AssignmentPattern{}, tags.Value)
	assert.IsType(t, &ast.RestElement{}, obj.Properties[2])

	arr := fn.Params[1].(*ast.ArrayPattern)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1])
}

func TestParseMembersAndCalls(t *testing.T) {
	call := mustExpr(t, "items?.map(fn)").(*ast.CallExpression)
	m := call.Callee.(*ast.MemberExpression)
	assert.True(t, m.Optional)

	idx := mustExpr(t, "a[0]").(*ast.MemberExpression)
	assert.True(t, idx.Computed)

	n := mustExpr(t, "new Date(1)").(*ast.NewExpression)
	assert.Len(t, n.Arguments, 1)

	spread := mustExpr(t, "f(...args)").(*ast.CallExpression)
	assert.IsType(t, &ast.SpreadElement{}, spread.Arguments[0])

	kw := mustExpr(t, "props.default").(*ast.MemberExpression)
	assert.True(t, ast.IsIdentifier(kw.Property, "default"))
}

func TestParseObjectLiteral(t *testing.T) {
	obj := mustExpr(t, "({ a, 'b-c': 1, [k]: 2, m() { return 1; }, async n() {}, ...o })").(*ast.ObjectExpression)
	require.Len(t, obj.Properties, 6)
	assert.True(t, obj.Properties[0].(*ast.ObjectProperty).Shorthand)
	assert.IsType(t, &ast.StringLiteral{}, obj.Properties[1].(*ast.ObjectProperty).Key)
	assert.True(t, obj.Properties[2].(*ast.ObjectProperty).Computed)
	assert.IsType(t, &ast.FunctionExpression{}, obj.Properties[3].(*ast.ObjectProperty).Value)
	assert.True(t, obj.Properties[4].(*ast.ObjectProperty).Value.(*ast.FunctionExpression).Async)
	assert.IsType(t, &ast.SpreadElement{}, obj.Properties[5])
}

func TestParseTemplateLiteral(t *testing.T) {
	tpl := mustExpr(t, "`Hello ${user.name}, you have ${count} ${`nested ${x}`}`").(*ast.TemplateLiteral)
	assert.Equal(t, []string{"Hello ", ", you have ", " ", ""}, tpl.Quasis)
	require.Len(t, tpl.Expressions, 3)
	assert.IsType(t, &ast.MemberExpression{}, tpl.Expressions[0])
	assert.IsType(t, &ast.TemplateLiteral{}, tpl.Expressions[2])
}

func TestParseJSX(t *testing.T) {
	el := mustExpr(t, `<ui.Card id="main" data-x='y' disabled {...rest} value={v}>
  Hello {name}!
  <br/>
  <>{items.map(i => <li key={i}>{i}</li>)}</>
</ui.Card>`).(*ast.JSXElement)

	assert.Equal(t, "ui.Card", ast.JSXName(el.Name))
	require.Len(t, el.Attributes, 5)
	id := el.Attributes[0].(*ast.JSXAttribute)
	assert.Equal(t, "main", id.Value.(*ast.StringLiteral).Value)
	assert.Equal(t, "data-x", ast.JSXName(el.Attributes[1].(*ast.JSXAttribute).Name))
	assert.Nil(t, el.Attributes[2].(*ast.JSXAttribute).Value)
	assert.IsType(t, &ast.JSXSpreadAttribute{}, el.Attributes[3])
	assert.IsType(t, &ast.JSXExpressionContainer{}, el.Attributes[4].(*ast.JSXAttribute).Value)

	var kinds []string
	for _, c := range el.Children {
		kinds = append(kinds, c.Type())
	}
	assert.Equal(t, []string{
		"JSXText", "JSXExpressionContainer", "JSXText", "JSXElement", "JSXText", "JSXFragment", "JSXText",
	}, kinds)
	assert.Equal(t, "\n  Hello ", el.Children[0].(*ast.JSXText).Value)
	assert.True(t, el.Children[3].(*ast.JSXElement).SelfClosing)

	empty := mustExpr(t, "<div>{/* note */}</div>").(*ast.JSXElement)
	assert.IsType(t, &ast.JSXEmptyExpression{}, empty.Children[0].(*ast.JSXExpressionContainer).Expression)
}

func TestParseJSXInExpressions(t *testing.T) {
	cond := mustExpr(t, "ok ? <a /> : <b>x</b>").(*ast.ConditionalExpression)
	assert.IsType(t, &ast.JSXElement{}, cond.Consequent)
	assert.IsType(t, &ast.JSXElement{}, cond.Alternate)

	// "<" after an operand is a comparison.
	assert.Equal(t, "<", mustExpr(t, "a < b").(*ast.BinaryExpression).Operator)
}

func TestParseASI(t *testing.T) {
	prog := mustParse(t, "const a = 1\nconst b = 2\nf()\nreturnValue\n")
	assert.Len(t, prog.Body, 4)

	prog = mustParse(t, "function f() {\n  return\n  1\n}\n")
	body := prog.Body[0].(*ast.FunctionDeclaration).Body.(*ast.BlockStatement)
	require.Len(t, body.Body, 2)
	assert.Nil(t, body.Body[0].(*ast.ReturnStatement).Argument)
}

func TestParseStatements(t *testing.T) {
	stmts, err := ParseStatements("import { a } from 'rt';\nconst b = a();\n")
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		msg  string
		line int
	}{
		{"with (a) {}", `unsupported statement "with"`, 1},
		{"x = 1;\nx = -a ** 2", "must be parenthesized", 2},
		{"try {}", `expected "catch" or "finally"`, 1},
		{"throw\nerr", "illegal newline after throw", 2},
		{"x = /abc", "unterminated regular expression", 1},
		{"for (let a, b of c) {}", "more than one variable", 1},
		{"for await (x in y) {}", "for await requires an of loop", 1},
		{"switch (x) { default: default: }", "multiple default clauses", 1},
		{"class A { get x = 1 }", `expected "("`, 1},
		{"tag`x`", "tagged templates are not supported", 1},
		{"<div></span>", "expected </div>, found </span>", 1},
		{"<div>", "unterminated", 1},
		{"<a b={} />", "attribute b has an empty expression", 1},
		{"f(", "unexpected end of input", 1},
		{"1 = 2", "invalid assignment target", 1},
		{"'open", "unterminated string", 1},
		{"function f() {", "unterminated block", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseFile("bad.jsx", tt.src)
			require.Error(t, err)
			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Contains(t, perr.Msg, tt.msg)
			assert.Equal(t, tt.line, perr.Pos.Line)
			assert.Equal(t, "bad.jsx", perr.File)
			assert.Contains(t, err.Error(), "bad.jsx:")
		})
	}
}

func TestParseExpressionTrailing(t *testing.T) {
	_, err := ParseExpression("a b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after expression")
}

func TestParseLoops(t *testing.T) {
	prog := mustParse(t, `
for (let i = 0, n = list.length; i < n; i++) total += list[i];
for (;;) {}
for (key in obj) {}
for (const [k, v] of Object.entries(obj)) {}
for await (const chunk of stream) {}
while (queue.length) queue.pop();
do { n-- } while (n > 0)
outer: for (const row of rows) { continue outer; }
`)
	assert.Equal(t, []string{
		"ForStatement", "ForStatement", "ForInStatement", "ForOfStatement", "ForOfStatement",
		"WhileStatement", "DoWhileStatement", "LabeledStatement",
	}, bodyTypes(prog))

	loop := prog.Body[0].(*ast.ForStatement)
	assert.Len(t, loop.Init.(*ast.VariableDeclaration).Declarations, 2)
	assert.Equal(t, "<", loop.Test.(*ast.BinaryExpression).Operator)
	assert.IsType(t, &ast.UpdateExpression{}, loop.Update)
	assert.IsType(t, &ast.ExpressionStatement{}, loop.Body)

	forever := prog.Body[1].(*ast.ForStatement)
	assert.Nil(t, forever.Init)
	assert.Nil(t, forever.Test)
	assert.Nil(t, forever.Update)

	assert.True(t, ast.IsIdentifier(prog.Body[2].(*ast.ForInStatement).Left, "key"))
	entries := prog.Body[3].(*ast.ForOfStatement)
	assert.False(t, entries.Await)
	assert.IsType(t, &ast.ArrayPattern{}, entries.Left.(*ast.VariableDeclaration).Declarations[0].(*ast.VariableDeclarator).ID)
	assert.True(t, prog.Body[4].(*ast.ForOfStatement).Await)

	labeled := prog.Body[7].(*ast.LabeledStatement)
	assert.True(t, ast.IsIdentifier(labeled.Label, "outer"))
	body := labeled.Body.(*ast.ForOfStatement).Body.(*ast.BlockStatement)
	assert.True(t, ast.IsIdentifier(body.Body[0].(*ast.ContinueStatement).Label, "outer"))
}

func TestParseSwitchAndTry(t *testing.T) {
	prog := mustParse(t, `
switch (kind) {
  case 'a':
  case 'b':
    run();
    break
  default:
    stop();
}
try { risky(); } catch ({ message }) { report(message); } finally { done(); }
try { risky(); } catch { throw new Error('failed'); }
debugger;
`)
	assert.Equal(t, []string{"SwitchStatement", "TryStatement", "TryStatement", "DebuggerStatement"}, bodyTypes(prog))

	sw := prog.Body[0].(*ast.SwitchStatement)
	require.Len(t, sw.Cases, 3)
	assert.Empty(t, sw.Cases[0].(*ast.SwitchCase).Consequent)
	assert.Len(t, sw.Cases[1].(*ast.SwitchCase).Consequent, 2)
	assert.Nil(t, sw.Cases[2].(*ast.SwitchCase).Test)
	assert.Nil(t, sw.Cases[1].(*ast.SwitchCase).Consequent[1].(*ast.BreakStatement).Label)

	full := prog.Body[1].(*ast.TryStatement)
	assert.IsType(t, &ast.ObjectPattern{}, full.Handler.(*ast.CatchClause).Param)
	assert.NotNil(t, full.Finalizer)

	bare := prog.Body[2].(*ast.TryStatement)
	assert.Nil(t, bare.Handler.(*ast.CatchClause).Param)
	assert.Nil(t, bare.Finalizer)
	thrown := bare.Handler.(*ast.CatchClause).Body.(*ast.BlockStatement).Body[0].(*ast.ThrowStatement)
	assert.IsType(t, &ast.NewExpression{}, thrown.Argument)
}

func TestParseClasses(t *testing.T) {
	prog := mustParse(t, `
export default class Store extends Base.Model {
  static count = 0;
  #items = []
  static = 'field'
  constructor(x) { super(x); }
  get size() { return this.#items.length; }
  set size(v) {}
  static async load() {}
  async *[Symbol.asyncIterator]() { yield* this.#items; }
}
const Anon = class extends Store {};
`)
	decl := prog.Body[0].(*ast.ExportDefaultDeclaration).Declaration.(*ast.ClassDeclaration)
	assert.True(t, ast.IsIdentifier(decl.ID, "Store"))
	assert.IsType(t, &ast.MemberExpression{}, decl.SuperClass)

	type member struct {
		Kind     string
		Key      string
		Static   bool
		Computed bool
	}
	var got []member
	for _, n := range decl.Body {
		switch m := n.(type) {
		case *ast.MethodDefinition:
			key := ""
			if id, ok := m.Key.(*ast.Identifier); ok {
				key = id.Name
			}
			got = append(got, member{m.Kind, key, m.Static, m.Computed})
		case *ast.PropertyDefinition:
			got = append(got, member{"field", m.Key.(*ast.Identifier).Name, m.Static, m.Computed})
		}
	}
	want := []member{
		{"field", "count", true, false},
		{"field", "#items", false, false},
		{"field", "static", false, false},
		{"constructor", "constructor", false, false},
		{"get", "size", false, false},
		{"set", "size", false, false},
		{"method", "load", true, false},
		{"method", "", false, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("class members (-want +got):\n%s", diff)
	}

	iter := decl.Body[7].(*ast.MethodDefinition).Value.(*ast.FunctionExpression)
	assert.True(t, iter.Async)
	assert.True(t, iter.Generator)

	ctor := decl.Body[3].(*ast.MethodDefinition).Value.(*ast.FunctionExpression)
	call := ctor.Body.(*ast.BlockStatement).Body[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	assert.IsType(t, &ast.Super{}, call.Callee)

	anon := prog.Body[1].(*ast.VariableDeclaration).Declarations[0].(*ast.VariableDeclarator).Init.(*ast.ClassExpression)
	assert.Nil(t, anon.ID)
	assert.True(t, ast.IsIdentifier(anon.SuperClass, "Store"))
}

func TestParseRegExpLiterals(t *testing.T) {
	tests := []struct {
		src, pattern, flags string
	}{
		{`/ab+c/`, `ab+c`, ""},
		{`/[/]\//gi`, `[/]\/`, "gi"},
		{`/=+/`, `=+`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			re := mustExpr(t, tt.src).(*ast.RegExpLiteral)
			assert.Equal(t, tt.pattern, re.Pattern)
			assert.Equal(t, tt.flags, re.Flags)
		})
	}

	// A slash after an operand divides.
	div := mustExpr(t, "a / b / c").(*ast.BinaryExpression)
	assert.Equal(t, "/", div.Operator)

	call := mustExpr(t, "s.replace(/\\s+/g, ' ')").(*ast.CallExpression)
	assert.IsType(t, &ast.RegExpLiteral{}, call.Arguments[0])
}

func TestParseSequenceAndGenerators(t *testing.T) {
	prog := mustParse(t, `
a(), b();
function* ids() {
  const next = yield;
  yield next + 1;
  yield* rest();
}
const o = { *keys() {}, async *stream() {} };
`)
	seq := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.SequenceExpression)
	assert.Len(t, seq.Expressions, 2)

	fn := prog.Body[1].(*ast.FunctionDeclaration)
	assert.True(t, fn.Generator)
	body := fn.Body.(*ast.BlockStatement).Body
	bare := body[0].(*ast.VariableDeclaration).Declarations[0].(*ast.VariableDeclarator).Init.(*ast.YieldExpression)
	assert.Nil(t, bare.Argument)
	assert.IsType(t, &ast.BinaryExpression{}, body[1].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression).Argument)
	assert.True(t, body[2].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression).Delegate)

	props := prog.Body[2].(*ast.VariableDeclaration).Declarations[0].(*ast.VariableDeclarator).Init.(*ast.ObjectExpression).Properties
	keys := props[0].(*ast.ObjectProperty).Value.(*ast.FunctionExpression)
	assert.True(t, keys.Generator)
	assert.False(t, keys.Async)
	stream := props[1].(*ast.ObjectProperty).Value.(*ast.FunctionExpression)
	assert.True(t, stream.Generator)
	assert.True(t, stream.Async)

	paren := mustExpr(t, "(x, y)").(*ast.SequenceExpression)
	assert.Len(t, paren.Expressions, 2)
}
