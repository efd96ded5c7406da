package parser

import (
	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/scanner"
)

// binaryPrec maps binary and logical operators to their precedence.
// Higher binds tighter.
var binaryPrec = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, "&=": true, "|=": true, "^=": true,
	"&&=": true, "||=": true, "??=": true,
}

func isLogical(op string) bool { return op == "&&" || op == "||" || op == "??" }

// parseExpression parses a comma-separated expression.
func (p *parser) parseExpression() ast.Node {
	pos := p.pos()
	expr := p.parseAssign()
	if !p.tok.Is(",") {
		return expr
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Node{expr}}
	seq.Loc = pos
	for p.accept(",") {
		seq.Expressions = append(seq.Expressions, p.parseAssign())
	}
	return seq
}

// parseAssign parses an assignment expression, including arrow functions.
func (p *parser) parseAssign() ast.Node {
	if p.tok.Is("yield") {
		return p.parseYield()
	}
	if p.arrowAhead() {
		return p.parseArrow()
	}
	pos := p.pos()
	left := p.parseConditional()
	if p.tok.Kind != scanner.Punct || !assignOps[p.tok.Text] {
		return left
	}
	op := p.tok.Text
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		p.failAt(pos, "invalid assignment target")
	}
	p.next()
	a := &ast.AssignmentExpression{Operator: op, Left: left, Right: p.parseAssign()}
	a.Loc = pos
	return a
}

// parseYield parses yield and yield*. A bare yield ends at a line break
// or at a token that cannot start an expression.
func (p *parser) parseYield() *ast.YieldExpression {
	y := &ast.YieldExpression{}
	y.Loc = p.expect("yield")
	if p.tok.NewlineBefore {
		return y
	}
	if p.accept("*") {
		y.Delegate = true
		y.Argument = p.parseAssign()
		return y
	}
	switch {
	case p.tok.Kind == scanner.EOF:
	case p.tok.Is(")") || p.tok.Is("]") || p.tok.Is("}") || p.tok.Is(",") || p.tok.Is(";") || p.tok.Is(":"):
	default:
		y.Argument = p.parseAssign()
	}
	return y
}

// arrowAhead reports whether the upcoming tokens start an arrow function.
// It scans a copy of the scanner, so no input is consumed.
func (p *parser) arrowAhead() bool {
	sc := *p.sc
	tok := p.tok
	if tok.Is("async") {
		next, err := sc.Next()
		if err != nil || next.NewlineBefore || !(next.Is("(") || next.Kind == scanner.Ident) {
			return false
		}
		tok = next
	}
	if tok.Kind == scanner.Ident {
		if ast.IsReservedWord(tok.Text) {
			return false
		}
		next, err := sc.Next()
		return err == nil && next.Is("=>") && !next.NewlineBefore
	}
	if !tok.Is("(") {
		return false
	}
	depth := 1
	for depth > 0 {
		t, err := sc.Next()
		if err != nil || t.Kind == scanner.EOF || t.Is("`") {
			return false
		}
		switch {
		case t.Is("(") || t.Is("[") || t.Is("{"):
			depth++
		case t.Is(")") || t.Is("]") || t.Is("}"):
			depth--
		}
	}
	t, err := sc.Next()
	return err == nil && t.Is("=>") && !t.NewlineBefore
}

func (p *parser) parseArrow() *ast.ArrowFunctionExpression {
	fn := &ast.ArrowFunctionExpression{}
	fn.Loc = p.pos()
	if p.tok.Is("async") && !p.lookahead().Is("=>") {
		fn.Async = true
		p.next()
	}
	if p.tok.Is("(") {
		fn.Params = p.parseParams()
	} else {
		fn.Params = []ast.Node{p.ident()}
	}
	p.expect("=>")
	if p.tok.Is("{") {
		fn.Body = p.parseBlock()
	} else {
		fn.Body = p.parseAssign()
	}
	return fn
}

func (p *parser) parseConditional() ast.Node {
	pos := p.pos()
	test := p.parseBinary(1)
	if !p.accept("?") {
		return test
	}
	c := &ast.ConditionalExpression{Test: test}
	c.Loc = pos
	c.Consequent = p.parseAssign()
	p.expect(":")
	c.Alternate = p.parseAssign()
	return c
}

func (p *parser) binaryOp() (string, int) {
	if p.tok.Kind != scanner.Punct && !(p.tok.Is("in") || p.tok.Is("instanceof")) {
		return "", 0
	}
	prec, ok := binaryPrec[p.tok.Text]
	if !ok {
		return "", 0
	}
	return p.tok.Text, prec
}

// parseBinary is a precedence-climbing parser for binary and logical
// operators at or above minPrec.
func (p *parser) parseBinary(minPrec int) ast.Node {
	pos := p.pos()
	parenthesized := p.tok.Is("(")
	left := p.parseUnary()
	for {
		op, prec := p.binaryOp()
		if prec == 0 || prec < minPrec {
			return left
		}
		next := prec + 1
		if op == "**" {
			if _, ok := left.(*ast.UnaryExpression); ok && !parenthesized {
				p.failAt(p.pos(), "unary operator before ** must be parenthesized")
			}
			next = prec
		}
		p.next()
		right := p.parseBinary(next)
		if isLogical(op) {
			l := &ast.LogicalExpression{Operator: op, Left: left, Right: right}
			l.Loc = pos
			left = l
			continue
		}
		b := &ast.BinaryExpression{Operator: op, Left: left, Right: right}
		b.Loc = pos
		left = b
	}
}

func (p *parser) parseUnary() ast.Node {
	pos := p.pos()
	switch {
	case p.tok.Is("!") || p.tok.Is("-") || p.tok.Is("+") || p.tok.Is("~") ||
		p.tok.Is("typeof") || p.tok.Is("void") || p.tok.Is("delete") || p.tok.Is("await"):
		op := p.tok.Text
		p.next()
		u := &ast.UnaryExpression{Operator: op, Argument: p.parseUnary()}
		u.Loc = pos
		return u
	case p.tok.Is("++") || p.tok.Is("--"):
		op := p.tok.Text
		p.next()
		u := &ast.UpdateExpression{Operator: op, Argument: p.parseUnary(), Prefix: true}
		u.Loc = pos
		return u
	}
	expr := p.parseCallMember(true)
	if (p.tok.Is("++") || p.tok.Is("--")) && !p.tok.NewlineBefore {
		u := &ast.UpdateExpression{Operator: p.tok.Text, Argument: expr}
		u.Loc = pos
		p.next()
		return u
	}
	return expr
}

// parseCallMember parses a primary expression followed by member
// accesses and, when calls is set, call suffixes.
func (p *parser) parseCallMember(calls bool) ast.Node {
	pos := p.pos()
	var expr ast.Node
	if p.tok.Is("new") {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	for {
		switch {
		case p.tok.Is("."):
			p.next()
			var prop *ast.Identifier
			if p.tok.Is("#") {
				prop = p.privateName()
			} else {
				prop = p.propertyName()
			}
			m := &ast.MemberExpression{Object: expr, Property: prop}
			m.Loc = pos
			expr = m
		case p.tok.Is("?."):
			p.next()
			switch {
			case p.tok.Is("(") && calls:
				c := &ast.CallExpression{Callee: expr, Arguments: p.parseArguments(), Optional: true}
				c.Loc = pos
				expr = c
			case p.tok.Is("["):
				p.next()
				m := &ast.MemberExpression{Object: expr, Property: p.parseExpression(), Computed: true, Optional: true}
				m.Loc = pos
				p.expect("]")
				expr = m
			default:
				m := &ast.MemberExpression{Object: expr, Property: p.propertyName(), Optional: true}
				m.Loc = pos
				expr = m
			}
		case p.tok.Is("["):
			p.next()
			m := &ast.MemberExpression{Object: expr, Property: p.parseExpression(), Computed: true}
			m.Loc = pos
			p.expect("]")
			expr = m
		case p.tok.Is("(") && calls:
			c := &ast.CallExpression{Callee: expr, Arguments: p.parseArguments()}
			c.Loc = pos
			expr = c
		case p.tok.Is("`"):
			p.failf("tagged templates are not supported")
		default:
			return expr
		}
	}
}

func (p *parser) parseNew() ast.Node {
	n := &ast.NewExpression{Arguments: []ast.Node{}}
	n.Loc = p.expect("new")
	n.Callee = p.parseCallMember(false)
	if p.tok.Is("(") {
		n.Arguments = p.parseArguments()
	}
	return n
}

func (p *parser) parseArguments() []ast.Node {
	args := []ast.Node{}
	p.expect("(")
	for !p.tok.Is(")") {
		args = append(args, p.parseSpreadOrAssign())
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *parser) parseSpreadOrAssign() ast.Node {
	if !p.tok.Is("...") {
		return p.parseAssign()
	}
	s := &ast.SpreadElement{}
	s.Loc = p.expect("...")
	s.Argument = p.parseAssign()
	return s
}

func (p *parser) parsePrimary() ast.Node {
	pos := p.pos()
	tok := p.tok
	switch tok.Kind {
	case scanner.EOF:
		p.failf("unexpected end of input")
	case scanner.Number:
		return p.numberLit()
	case scanner.String:
		p.next()
		return stringLit(tok)
	case scanner.Ident:
		switch tok.Text {
		case "true", "false":
			p.next()
			b := &ast.BooleanLiteral{Value: tok.Text == "true"}
			b.Loc = pos
			return b
		case "null":
			p.next()
			n := &ast.NullLiteral{}
			n.Loc = pos
			return n
		case "this":
			p.next()
			t := &ast.ThisExpression{}
			t.Loc = pos
			return t
		case "super":
			p.next()
			s := &ast.Super{}
			s.Loc = pos
			return s
		case "class":
			return p.parseClassExpression()
		case "function":
			return p.parseFunctionExpression(false)
		case "async":
			if p.lookahead().Is("function") && !p.lookahead().NewlineBefore {
				p.next()
				return p.parseFunctionExpression(true)
			}
		}
		return p.ident()
	case scanner.Punct:
		switch tok.Text {
		case "(":
			p.next()
			expr := p.parseExpression()
			p.expect(")")
			return expr
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		case "<":
			el := p.parseJSX(pos)
			p.next()
			return el
		case "`":
			t := p.parseTemplate(pos)
			p.next()
			return t
		case "/", "/=":
			return p.parseRegExp(pos)
		}
	}
	p.failf("unexpected %s", tok)
	return nil
}

func (p *parser) parseFunctionExpression(async bool) *ast.FunctionExpression {
	fn := &ast.FunctionExpression{Async: async}
	fn.Loc = p.expect("function")
	fn.Generator = p.accept("*")
	if !p.tok.Is("(") {
		fn.ID = p.ident()
	}
	fn.Params = p.parseParams()
	fn.Body = p.parseBlock()
	return fn
}

// parseRegExp reads a regular expression literal. The current token is
// the opening slash, or "/=" when the pattern starts with "=".
func (p *parser) parseRegExp(pos ast.Pos) *ast.RegExpLiteral {
	pattern, flags, err := p.sc.ReadRegExp()
	if err != nil {
		p.failAt(pos, "%s", err.(*scanner.Error).Msg)
	}
	if p.tok.Is("/=") {
		pattern = "=" + pattern
	}
	re := &ast.RegExpLiteral{Pattern: pattern, Flags: flags}
	re.Loc = pos
	p.next()
	return re
}

func (p *parser) parseArray() *ast.ArrayExpression {
	arr := &ast.ArrayExpression{Elements: []ast.Node{}}
	arr.Loc = p.expect("[")
	for !p.tok.Is("]") {
		if p.tok.Is(",") {
			arr.Elements = append(arr.Elements, nil)
			p.next()
			continue
		}
		arr.Elements = append(arr.Elements, p.parseSpreadOrAssign())
		if !p.accept(",") {
			break
		}
	}
	p.expect("]")
	return arr
}

// parsePropertyKey parses an object key: identifier (reserved words
// allowed), string, number or [computed].
func (p *parser) parsePropertyKey() (ast.Node, bool) {
	switch {
	case p.tok.Is("["):
		p.next()
		key := p.parseAssign()
		p.expect("]")
		return key, true
	case p.tok.Kind == scanner.String:
		key := stringLit(p.tok)
		p.next()
		return key, false
	case p.tok.Kind == scanner.Number:
		return p.numberLit(), false
	}
	return p.propertyName(), false
}

func (p *parser) parseObject() *ast.ObjectExpression {
	obj := &ast.ObjectExpression{Properties: []ast.Node{}}
	obj.Loc = p.expect("{")
	for !p.tok.Is("}") {
		if p.tok.Is("...") {
			obj.Properties = append(obj.Properties, p.parseSpreadOrAssign())
		} else {
			obj.Properties = append(obj.Properties, p.parseObjectProperty())
		}
		if !p.accept(",") {
			break
		}
	}
	p.expect("}")
	return obj
}

func (p *parser) parseObjectProperty() *ast.ObjectProperty {
	prop := &ast.ObjectProperty{}
	prop.Loc = p.pos()
	async := false
	if p.tok.Is("async") {
		next := p.lookahead()
		if !next.Is(":") && !next.Is(",") && !next.Is("}") && !next.Is("(") {
			async = true
			p.next()
		}
	}
	generator := p.accept("*")
	key, computed := p.parsePropertyKey()
	prop.Key, prop.Computed = key, computed
	switch {
	case !async && !generator && p.accept(":"):
		prop.Value = p.parseAssign()
	case p.tok.Is("("):
		fn := &ast.FunctionExpression{Async: async, Generator: generator}
		fn.Loc = p.pos()
		fn.Params = p.parseParams()
		fn.Body = p.parseBlock()
		prop.Value = fn
	case async || generator:
		p.failf("expected \"(\", found %s", p.tok)
	default:
		id, ok := key.(*ast.Identifier)
		if !ok || computed || ast.IsReservedWord(id.Name) {
			p.failAt(prop.Loc, "expected \":\" after property key")
		}
		prop.Shorthand = true
		prop.Value = &ast.Identifier{BaseNode: id.BaseNode, Name: id.Name}
	}
	return prop
}

// parseTemplate parses a template literal. The opening backtick is the
// current token; on return the closing backtick has been consumed by the
// raw reader and the caller must advance.
func (p *parser) parseTemplate(pos ast.Pos) *ast.TemplateLiteral {
	t := &ast.TemplateLiteral{Expressions: []ast.Node{}}
	t.Loc = pos
	for {
		raw, closed, err := p.sc.ReadTemplateChunk()
		if err != nil {
			se := err.(*scanner.Error)
			p.failAt(toPos(se.Pos), "%s", se.Msg)
		}
		t.Quasis = append(t.Quasis, raw)
		if closed {
			return t
		}
		p.next()
		t.Expressions = append(t.Expressions, p.parseExpression())
		p.expectClose("}")
	}
}
