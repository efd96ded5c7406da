// Package parser turns JSX component source into an ast.Program.
//
// It is a hand-written recursive-descent parser for the JavaScript that
// component modules use: imports and exports, declarations including
// classes and generators, the statement grammar except with, the
// expression grammar with regular expression literals, and JSX.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/scanner"
)

// Error is a syntax error with its source location.
type Error struct {
	File string
	Pos  ast.Pos
	Msg  string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Col, e.Msg)
}

// bailout unwinds the parser on the first error.
type bailout struct{ err *Error }

type parser struct {
	file string
	sc   *scanner.Scanner
	tok  scanner.Token
}

// ParseFile parses a whole module. name is used in error messages and
// recorded as the program's SourceFile.
func ParseFile(name, src string) (prog *ast.Program, err error) {
	p := &parser{file: name, sc: scanner.New(src)}
	defer p.recover(&err)
	p.next()
	prog = &ast.Program{SourceFile: name, Body: []ast.Node{}}
	prog.Loc = ast.Pos{Line: 1, Col: 1}
	for p.tok.Kind != scanner.EOF {
		if stmt := p.parseStatement(true); stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	return prog, nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (expr ast.Node, err error) {
	p := &parser{sc: scanner.New(src)}
	defer p.recover(&err)
	p.next()
	expr = p.parseAssign()
	if p.tok.Kind != scanner.EOF {
		p.failf("unexpected %s after expression", p.tok)
	}
	return expr, nil
}

// ParseStatements parses src as a statement list, e.g. a prelude to
// prepend to rewritten modules.
func ParseStatements(src string) (stmts []ast.Node, err error) {
	prog, err := ParseFile("", src)
	if err != nil {
		return nil, err
	}
	return prog.Body, nil
}

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

func (p *parser) failAt(pos ast.Pos, format string, args ...any) {
	panic(bailout{&Error{File: p.file, Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

func (p *parser) failf(format string, args ...any) {
	p.failAt(p.pos(), format, args...)
}

func (p *parser) pos() ast.Pos { return toPos(p.tok.Pos) }

func toPos(sp scanner.Position) ast.Pos { return ast.Pos{Line: sp.Line, Col: sp.Col} }

// next advances to the next token.
func (p *parser) next() {
	tok, err := p.sc.Next()
	if err != nil {
		se := err.(*scanner.Error)
		p.failAt(toPos(se.Pos), "%s", se.Msg)
	}
	p.tok = tok
}

// expect consumes the punctuator or keyword text.
func (p *parser) expect(text string) ast.Pos {
	pos := p.pos()
	if !p.tok.Is(text) {
		p.failf("expected %q, found %s", text, p.tok)
	}
	p.next()
	return pos
}

// expectClose checks that the current token is text without scanning
// past it. Used where raw markup or template text follows.
func (p *parser) expectClose(text string) {
	if !p.tok.Is(text) {
		p.failf("expected %q, found %s", text, p.tok)
	}
}

func (p *parser) accept(text string) bool {
	if p.tok.Is(text) {
		p.next()
		return true
	}
	return false
}

// semicolon consumes a statement terminator, applying automatic
// semicolon insertion at line breaks, closing braces and end of input.
func (p *parser) semicolon() {
	if p.accept(";") {
		return
	}
	if p.tok.Is("}") || p.tok.Kind == scanner.EOF || p.tok.NewlineBefore {
		return
	}
	p.failf("expected \";\", found %s", p.tok)
}

// ident consumes a binding or reference identifier.
func (p *parser) ident() *ast.Identifier {
	if p.tok.Kind != scanner.Ident || ast.IsReservedWord(p.tok.Text) {
		p.failf("expected identifier, found %s", p.tok)
	}
	id := &ast.Identifier{Name: p.tok.Text}
	id.Loc = p.pos()
	p.next()
	return id
}

// propertyName consumes an identifier in property position, where
// reserved words are allowed.
func (p *parser) propertyName() *ast.Identifier {
	if p.tok.Kind != scanner.Ident {
		p.failf("expected property name, found %s", p.tok)
	}
	id := &ast.Identifier{Name: p.tok.Text}
	id.Loc = p.pos()
	p.next()
	return id
}

// lookahead returns the token after the current one without consuming.
func (p *parser) lookahead() scanner.Token {
	sc := *p.sc
	tok, err := sc.Next()
	if err != nil {
		return scanner.Token{}
	}
	return tok
}

func stringLit(tok scanner.Token) *ast.StringLiteral {
	s := &ast.StringLiteral{Value: tok.Text}
	s.Loc = toPos(tok.Pos)
	return s
}

func (p *parser) numberLit() *ast.NumericLiteral {
	raw := p.tok.Text
	clean := strings.ReplaceAll(raw, "_", "")
	var v float64
	if len(clean) > 1 && clean[0] == '0' && strings.ContainsAny(clean[1:2], "xXbBoO") {
		n, err := strconv.ParseInt(clean, 0, 64)
		if err != nil {
			p.failf("invalid number %q", raw)
		}
		v = float64(n)
	} else {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			p.failf("invalid number %q", raw)
		}
		v = f
	}
	n := &ast.NumericLiteral{Value: v, Raw: raw}
	n.Loc = p.pos()
	p.next()
	return n
}
