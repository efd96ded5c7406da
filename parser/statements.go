package parser

import (
	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/scanner"
)

// parseStatement parses one statement. Empty statements return nil.
// topLevel enables import and export declarations.
func (p *parser) parseStatement(topLevel bool) ast.Node {
	pos := p.pos()
	switch {
	case p.tok.Is(";"):
		p.next()
		return nil
	case p.tok.Is("{"):
		return p.parseBlock()
	case p.tok.Is("import") && topLevel && !p.lookahead().Is("("):
		return p.parseImport()
	case p.tok.Is("export") && topLevel:
		return p.parseExport()
	case p.tok.Is("const") || p.tok.Is("let") || p.tok.Is("var"):
		decl := p.parseVariableDeclaration()
		p.semicolon()
		return decl
	case p.tok.Is("function"):
		return p.parseFunctionDeclaration(false, false)
	case p.tok.Is("async") && p.lookahead().Is("function"):
		p.next()
		return p.parseFunctionDeclaration(true, false)
	case p.tok.Is("return"):
		p.next()
		ret := &ast.ReturnStatement{}
		ret.Loc = pos
		if !p.tok.Is(";") && !p.tok.Is("}") && p.tok.Kind != scanner.EOF && !p.tok.NewlineBefore {
			ret.Argument = p.parseExpression()
		}
		p.semicolon()
		return ret
	case p.tok.Is("if"):
		return p.parseIf()
	case p.tok.Is("for"):
		return p.parseFor()
	case p.tok.Is("while"):
		p.next()
		stmt := &ast.WhileStatement{Test: p.parseParenExpression()}
		stmt.Loc = pos
		stmt.Body = p.parseStatementOrEmpty()
		return stmt
	case p.tok.Is("do"):
		return p.parseDoWhile()
	case p.tok.Is("switch"):
		return p.parseSwitch()
	case p.tok.Is("try"):
		return p.parseTry()
	case p.tok.Is("throw"):
		p.next()
		if p.tok.NewlineBefore {
			p.failf("illegal newline after throw")
		}
		stmt := &ast.ThrowStatement{Argument: p.parseExpression()}
		stmt.Loc = pos
		p.semicolon()
		return stmt
	case p.tok.Is("break") || p.tok.Is("continue"):
		return p.parseJump()
	case p.tok.Is("debugger"):
		p.next()
		p.semicolon()
		stmt := &ast.DebuggerStatement{}
		stmt.Loc = pos
		return stmt
	case p.tok.Is("class"):
		return p.parseClassDeclaration(false)
	case p.tok.Is("with"):
		p.failf("unsupported statement %q", p.tok.Text)
	case p.tok.Kind == scanner.Ident && !ast.IsReservedWord(p.tok.Text) && p.lookahead().Is(":"):
		stmt := &ast.LabeledStatement{Label: p.ident()}
		stmt.Loc = pos
		p.expect(":")
		stmt.Body = p.parseStatementOrEmpty()
		return stmt
	}
	expr := p.parseExpression()
	p.semicolon()
	stmt := &ast.ExpressionStatement{Expression: expr}
	stmt.Loc = pos
	return stmt
}

func (p *parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Body: []ast.Node{}}
	block.Loc = p.expect("{")
	for !p.tok.Is("}") {
		if p.tok.Kind == scanner.EOF {
			p.failf("unterminated block")
		}
		if stmt := p.parseStatement(false); stmt != nil {
			block.Body = append(block.Body, stmt)
		}
	}
	p.next()
	return block
}

func (p *parser) parseIf() *ast.IfStatement {
	stmt := &ast.IfStatement{}
	stmt.Loc = p.expect("if")
	stmt.Test = p.parseParenExpression()
	stmt.Consequent = p.parseStatementOrEmpty()
	if p.accept("else") {
		stmt.Alternate = p.parseStatementOrEmpty()
	}
	return stmt
}

func (p *parser) parseParenExpression() ast.Node {
	p.expect("(")
	expr := p.parseExpression()
	p.expect(")")
	return expr
}

// parseFor parses the three-part, for-in and for-of loop forms.
func (p *parser) parseFor() ast.Node {
	pos := p.expect("for")
	await := p.accept("await")
	p.expect("(")
	var init ast.Node
	switch {
	case p.tok.Is(";"):
	case p.tok.Is("const") || p.tok.Is("let") || p.tok.Is("var"):
		init = p.parseVariableDeclaration()
	case p.tok.Kind == scanner.Ident && (p.lookahead().Is("in") || p.lookahead().Is("of")):
		init = p.ident()
	default:
		init = p.parseExpression()
	}
	if init != nil && (p.tok.Is("in") || p.tok.Is("of")) {
		of := p.tok.Is("of")
		if decl, ok := init.(*ast.VariableDeclaration); ok && len(decl.Declarations) != 1 {
			p.failAt(decl.Loc, "for-%s loop declares more than one variable", p.tok.Text)
		}
		if await && !of {
			p.failAt(pos, "for await requires an of loop")
		}
		p.next()
		var right ast.Node
		if of {
			right = p.parseAssign()
		} else {
			right = p.parseExpression()
		}
		p.expect(")")
		body := p.parseStatementOrEmpty()
		if of {
			stmt := &ast.ForOfStatement{Left: init, Right: right, Body: body, Await: await}
			stmt.Loc = pos
			return stmt
		}
		stmt := &ast.ForInStatement{Left: init, Right: right, Body: body}
		stmt.Loc = pos
		return stmt
	}
	if await {
		p.failAt(pos, "for await requires an of loop")
	}
	stmt := &ast.ForStatement{Init: init}
	stmt.Loc = pos
	p.expect(";")
	if !p.tok.Is(";") {
		stmt.Test = p.parseExpression()
	}
	p.expect(";")
	if !p.tok.Is(")") {
		stmt.Update = p.parseExpression()
	}
	p.expect(")")
	stmt.Body = p.parseStatementOrEmpty()
	return stmt
}

func (p *parser) parseDoWhile() *ast.DoWhileStatement {
	stmt := &ast.DoWhileStatement{}
	stmt.Loc = p.expect("do")
	stmt.Body = p.parseStatementOrEmpty()
	p.expect("while")
	stmt.Test = p.parseParenExpression()
	p.accept(";")
	return stmt
}

func (p *parser) parseSwitch() *ast.SwitchStatement {
	stmt := &ast.SwitchStatement{Cases: []ast.Node{}}
	stmt.Loc = p.expect("switch")
	stmt.Discriminant = p.parseParenExpression()
	p.expect("{")
	hasDefault := false
	for !p.accept("}") {
		c := &ast.SwitchCase{Consequent: []ast.Node{}}
		c.Loc = p.pos()
		switch {
		case p.accept("case"):
			c.Test = p.parseExpression()
		case p.tok.Is("default"):
			if hasDefault {
				p.failf("multiple default clauses in switch")
			}
			hasDefault = true
			p.next()
		default:
			p.failf("expected \"case\" or \"default\", found %s", p.tok)
		}
		p.expect(":")
		for !p.tok.Is("case") && !p.tok.Is("default") && !p.tok.Is("}") {
			if p.tok.Kind == scanner.EOF {
				p.failf("unterminated switch")
			}
			if s := p.parseStatement(false); s != nil {
				c.Consequent = append(c.Consequent, s)
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	return stmt
}

func (p *parser) parseTry() *ast.TryStatement {
	stmt := &ast.TryStatement{}
	stmt.Loc = p.expect("try")
	stmt.Block = p.parseBlock()
	if p.tok.Is("catch") {
		c := &ast.CatchClause{}
		c.Loc = p.expect("catch")
		if p.accept("(") {
			c.Param = p.parseBindingTarget()
			p.expect(")")
		}
		c.Body = p.parseBlock()
		stmt.Handler = c
	}
	if p.accept("finally") {
		stmt.Finalizer = p.parseBlock()
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.failf("expected \"catch\" or \"finally\", found %s", p.tok)
	}
	return stmt
}

// parseJump parses break and continue with an optional label on the
// same line.
func (p *parser) parseJump() ast.Node {
	pos := p.pos()
	keyword := p.tok.Text
	p.next()
	var label ast.Node
	if p.tok.Kind == scanner.Ident && !p.tok.NewlineBefore && !ast.IsReservedWord(p.tok.Text) {
		label = p.ident()
	}
	p.semicolon()
	if keyword == "break" {
		stmt := &ast.BreakStatement{Label: label}
		stmt.Loc = pos
		return stmt
	}
	stmt := &ast.ContinueStatement{Label: label}
	stmt.Loc = pos
	return stmt
}

// parseStatementOrEmpty keeps "if (x);" representable by substituting an
// empty block.
func (p *parser) parseStatementOrEmpty() ast.Node {
	if s := p.parseStatement(false); s != nil {
		return s
	}
	return &ast.BlockStatement{Body: []ast.Node{}}
}

func (p *parser) parseVariableDeclaration() *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Kind: p.tok.Text}
	decl.Loc = p.pos()
	p.next()
	for {
		d := &ast.VariableDeclarator{}
		d.Loc = p.pos()
		d.ID = p.parseBindingTarget()
		if p.accept("=") {
			d.Init = p.parseAssign()
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.accept(",") {
			return decl
		}
	}
}

func (p *parser) parseFunctionDeclaration(async, anonymous bool) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Async: async}
	fn.Loc = p.expect("function")
	fn.Generator = p.accept("*")
	if !anonymous || !p.tok.Is("(") {
		fn.ID = p.ident()
	}
	fn.Params = p.parseParams()
	fn.Body = p.parseBlock()
	return fn
}

func (p *parser) parseImport() *ast.ImportDeclaration {
	decl := &ast.ImportDeclaration{Specifiers: []ast.Node{}}
	decl.Loc = p.expect("import")
	if p.tok.Kind == scanner.String {
		decl.Source = stringLit(p.tok)
		p.next()
		p.semicolon()
		return decl
	}
	if p.tok.Kind == scanner.Ident {
		spec := &ast.ImportDefaultSpecifier{}
		spec.Loc = p.pos()
		spec.Local = p.ident()
		decl.Specifiers = append(decl.Specifiers, spec)
		p.accept(",")
	}
	switch {
	case p.tok.Is("*"):
		spec := &ast.ImportNamespaceSpecifier{}
		spec.Loc = p.pos()
		p.next()
		p.expect("as")
		spec.Local = p.ident()
		decl.Specifiers = append(decl.Specifiers, spec)
	case p.tok.Is("{"):
		p.next()
		for !p.tok.Is("}") {
			spec := &ast.ImportSpecifier{}
			spec.Loc = p.pos()
			imported := p.propertyName()
			spec.Imported = imported
			if p.accept("as") {
				spec.Local = p.ident()
			} else {
				spec.Local = &ast.Identifier{BaseNode: imported.BaseNode, Name: imported.Name}
			}
			decl.Specifiers = append(decl.Specifiers, spec)
			if !p.accept(",") {
				break
			}
		}
		p.expect("}")
	}
	p.expect("from")
	if p.tok.Kind != scanner.String {
		p.failf("expected module source, found %s", p.tok)
	}
	decl.Source = stringLit(p.tok)
	p.next()
	p.semicolon()
	return decl
}

func (p *parser) parseExport() ast.Node {
	pos := p.expect("export")
	if p.accept("default") {
		decl := &ast.ExportDefaultDeclaration{}
		decl.Loc = pos
		switch {
		case p.tok.Is("function"):
			decl.Declaration = p.parseFunctionDeclaration(false, true)
		case p.tok.Is("async") && p.lookahead().Is("function"):
			p.next()
			decl.Declaration = p.parseFunctionDeclaration(true, true)
		case p.tok.Is("class"):
			decl.Declaration = p.parseClassDeclaration(true)
		default:
			decl.Declaration = p.parseAssign()
			p.semicolon()
		}
		return decl
	}
	decl := &ast.ExportNamedDeclaration{}
	decl.Loc = pos
	switch {
	case p.tok.Is("const") || p.tok.Is("let") || p.tok.Is("var"):
		decl.Declaration = p.parseVariableDeclaration()
		p.semicolon()
	case p.tok.Is("function"):
		decl.Declaration = p.parseFunctionDeclaration(false, false)
	case p.tok.Is("async"):
		p.next()
		decl.Declaration = p.parseFunctionDeclaration(true, false)
	case p.tok.Is("class"):
		decl.Declaration = p.parseClassDeclaration(false)
	case p.tok.Is("{"):
		p.next()
		decl.Specifiers = []ast.Node{}
		for !p.tok.Is("}") {
			spec := &ast.ExportSpecifier{}
			spec.Loc = p.pos()
			local := p.propertyName()
			spec.Local = local
			if p.accept("as") {
				spec.Exported = p.propertyName()
			} else {
				spec.Exported = &ast.Identifier{BaseNode: local.BaseNode, Name: local.Name}
			}
			decl.Specifiers = append(decl.Specifiers, spec)
			if !p.accept(",") {
				break
			}
		}
		p.expect("}")
		if p.accept("from") {
			if p.tok.Kind != scanner.String {
				p.failf("expected module source, found %s", p.tok)
			}
			decl.Source = stringLit(p.tok)
			p.next()
		}
		p.semicolon()
	default:
		p.failf("unsupported export form at %s", p.tok)
	}
	return decl
}

// --- Binding patterns ---

// parseBindingTarget parses an identifier, object pattern or array pattern.
func (p *parser) parseBindingTarget() ast.Node {
	switch {
	case p.tok.Is("{"):
		return p.parseObjectPattern()
	case p.tok.Is("["):
		return p.parseArrayPattern()
	}
	return p.ident()
}

// parseBindingElement parses a binding target with an optional default.
func (p *parser) parseBindingElement() ast.Node {
	pos := p.pos()
	target := p.parseBindingTarget()
	if !p.accept("=") {
		return target
	}
	ap := &ast.AssignmentPattern{Left: target, Right: p.parseAssign()}
	ap.Loc = pos
	return ap
}

func (p *parser) parseRest() *ast.RestElement {
	rest := &ast.RestElement{}
	rest.Loc = p.expect("...")
	rest.Argument = p.parseBindingTarget()
	return rest
}

func (p *parser) parseObjectPattern() *ast.ObjectPattern {
	pat := &ast.ObjectPattern{Properties: []ast.Node{}}
	pat.Loc = p.expect("{")
	for !p.tok.Is("}") {
		if p.tok.Is("...") {
			pat.Properties = append(pat.Properties, p.parseRest())
		} else {
			pat.Properties = append(pat.Properties, p.parsePatternProperty())
		}
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	return pat
}

func (p *parser) parsePatternProperty() *ast.ObjectProperty {
	prop := &ast.ObjectProperty{}
	prop.Loc = p.pos()
	key, computed := p.parsePropertyKey()
	prop.Key, prop.Computed = key, computed
	if p.accept(":") {
		prop.Value = p.parseBindingElement()
		return prop
	}
	id, ok := key.(*ast.Identifier)
	if !ok || computed || ast.IsReservedWord(id.Name) {
		p.failAt(prop.Loc, "invalid shorthand property in pattern")
	}
	prop.Shorthand = true
	var value ast.Node = &ast.Identifier{BaseNode: id.BaseNode, Name: id.Name}
	if p.accept("=") {
		ap := &ast.AssignmentPattern{Left: value, Right: p.parseAssign()}
		ap.Loc = id.Loc
		value = ap
	}
	prop.Value = value
	return prop
}

func (p *parser) parseArrayPattern() *ast.ArrayPattern {
	pat := &ast.ArrayPattern{Elements: []ast.Node{}}
	pat.Loc = p.expect("[")
	for !p.tok.Is("]") {
		switch {
		case p.tok.Is(","):
			pat.Elements = append(pat.Elements, nil)
			p.next()
			continue
		case p.tok.Is("..."):
			pat.Elements = append(pat.Elements, p.parseRest())
		default:
			pat.Elements = append(pat.Elements, p.parseBindingElement())
		}
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return pat
}

// parseParams parses a parenthesized parameter list.
func (p *parser) parseParams() []ast.Node {
	params := []ast.Node{}
	p.expect("(")
	for !p.tok.Is(")") {
		if p.tok.Is("...") {
			params = append(params, p.parseRest())
		} else {
			params = append(params, p.parseBindingElement())
		}
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return params
}
