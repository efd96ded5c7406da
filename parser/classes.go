package parser

import (
	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/scanner"
)

// parseClassDeclaration parses a class statement. anonymous allows the
// name to be omitted, as in export default class {}.
func (p *parser) parseClassDeclaration(anonymous bool) *ast.ClassDeclaration {
	decl := &ast.ClassDeclaration{}
	decl.Loc = p.expect("class")
	if !anonymous || p.classNameAhead() {
		decl.ID = p.ident()
	}
	decl.SuperClass, decl.Body = p.parseClassTail()
	return decl
}

func (p *parser) parseClassExpression() *ast.ClassExpression {
	expr := &ast.ClassExpression{}
	expr.Loc = p.expect("class")
	if p.classNameAhead() {
		expr.ID = p.ident()
	}
	expr.SuperClass, expr.Body = p.parseClassTail()
	return expr
}

func (p *parser) classNameAhead() bool {
	return p.tok.Kind == scanner.Ident && !p.tok.Is("extends")
}

// parseClassTail parses the optional heritage clause and the class body.
func (p *parser) parseClassTail() (superClass ast.Node, body []ast.Node) {
	if p.accept("extends") {
		superClass = p.parseCallMember(true)
	}
	body = []ast.Node{}
	p.expect("{")
	for !p.accept("}") {
		if p.accept(";") {
			continue
		}
		if p.tok.Kind == scanner.EOF {
			p.failf("unterminated class body")
		}
		body = append(body, p.parseClassMember())
	}
	return superClass, body
}

func (p *parser) parseClassMember() ast.Node {
	pos := p.pos()
	static := p.modifier("static")
	async := p.modifier("async")
	generator := p.accept("*")
	kind := "method"
	if !async && !generator {
		switch {
		case p.modifier("get"):
			kind = "get"
		case p.modifier("set"):
			kind = "set"
		}
	}
	key, computed := p.parseClassKey()
	if p.tok.Is("(") {
		if kind == "method" && !static && !computed && isName(key, "constructor") {
			kind = "constructor"
		}
		fn := &ast.FunctionExpression{Async: async, Generator: generator}
		fn.Loc = p.pos()
		fn.Params = p.parseParams()
		fn.Body = p.parseBlock()
		m := &ast.MethodDefinition{Key: key, Value: fn, Kind: kind, Static: static, Computed: computed}
		m.Loc = pos
		return m
	}
	if async || generator || kind != "method" {
		p.failf("expected \"(\", found %s", p.tok)
	}
	prop := &ast.PropertyDefinition{Key: key, Static: static, Computed: computed}
	prop.Loc = pos
	if p.accept("=") {
		prop.Value = p.parseAssign()
	}
	p.semicolon()
	return prop
}

// modifier consumes word when it qualifies the member that follows
// instead of naming a member itself.
func (p *parser) modifier(word string) bool {
	if !p.tok.Is(word) {
		return false
	}
	next := p.lookahead()
	if next.Is("(") || next.Is("=") || next.Is(";") || next.Is("}") || next.Kind == scanner.EOF {
		return false
	}
	if next.NewlineBefore && word != "static" {
		return false
	}
	p.next()
	return true
}

func (p *parser) parseClassKey() (ast.Node, bool) {
	if p.tok.Is("#") {
		return p.privateName(), false
	}
	return p.parsePropertyKey()
}

// privateName parses #name. The result is an identifier whose name keeps
// the leading hash.
func (p *parser) privateName() *ast.Identifier {
	pos := p.expect("#")
	if p.tok.NewlineBefore || p.tok.Pos.Col != pos.Col+1 || p.tok.Pos.Line != pos.Line {
		p.failAt(pos, "invalid private name")
	}
	id := p.propertyName()
	id.Loc = pos
	id.Name = "#" + id.Name
	return id
}

func isName(n ast.Node, name string) bool {
	switch k := n.(type) {
	case *ast.Identifier:
		return k.Name == name
	case *ast.StringLiteral:
		return k.Value == name
	}
	return false
}
