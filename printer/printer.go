// Package printer serializes an ast tree back to JavaScript/JSX source.
//
// Statements are written one per line with indentation; expressions are
// rendered to strings with the minimum parentheses their precedence
// requires. Markup text is emitted verbatim, so the original layout of
// JSX children survives a parse/print round trip.
package printer

import (
	"fmt"
	"strings"

	"github.com/rubiojr/tmplvars/ast"
)

// Options controls output formatting.
type Options struct {
	Indent string // one indentation level, default two spaces
	Quote  byte   // string literal quote, '\'' (default) or '"'
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = "  "
	}
	if o.Quote != '"' {
		o.Quote = '\''
	}
	return o
}

// Print serializes a program with the given options.
func Print(prog *ast.Program, opts Options) string {
	p := &printer{opts: opts.withDefaults()}
	p.printProgram(prog)
	return p.sb.String()
}

// PrintNode serializes any node: statements as lines, everything else as
// a single expression string.
func PrintNode(n ast.Node, opts Options) string {
	p := &printer{opts: opts.withDefaults()}
	if isStatement(n) {
		p.printStmt(n)
		return strings.TrimSuffix(p.sb.String(), "\n")
	}
	return p.expr(n, precLowest)
}

type printer struct {
	sb     strings.Builder
	indent int
	opts   Options
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) blank() {
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString(p.opts.Indent)
	}
}

// nested returns a printer one level deeper sharing the options.
func (p *printer) nested() *printer {
	return &printer{indent: p.indent + 1, opts: p.opts}
}

func isStatement(n ast.Node) bool {
	switch n.(type) {
	case *ast.ImportDeclaration, *ast.ExportNamedDeclaration, *ast.ExportDefaultDeclaration,
		*ast.VariableDeclaration, *ast.FunctionDeclaration, *ast.BlockStatement,
		*ast.ReturnStatement, *ast.IfStatement, *ast.ExpressionStatement,
		*ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement, *ast.WhileStatement,
		*ast.DoWhileStatement, *ast.SwitchStatement, *ast.TryStatement, *ast.ThrowStatement,
		*ast.BreakStatement, *ast.ContinueStatement, *ast.LabeledStatement,
		*ast.DebuggerStatement, *ast.ClassDeclaration:
		return true
	}
	return false
}

func (p *printer) printProgram(prog *ast.Program) {
	var prev ast.Node
	for _, s := range prog.Body {
		if prev != nil && needsBlankLine(prev, s) {
			p.blank()
		}
		p.printStmt(s)
		prev = s
	}
}

// needsBlankLine separates top-level groups: imports from code, and
// function declarations from their neighbours.
func needsBlankLine(prev, cur ast.Node) bool {
	_, prevImport := prev.(*ast.ImportDeclaration)
	_, curImport := cur.(*ast.ImportDeclaration)
	if prevImport != curImport {
		return true
	}
	return isFunctionStmt(prev) || isFunctionStmt(cur)
}

func isFunctionStmt(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		return true
	case *ast.ExportNamedDeclaration:
		return n.Declaration != nil && isFunctionStmt(n.Declaration)
	case *ast.ExportDefaultDeclaration:
		return isFunctionStmt(n.Declaration)
	case *ast.VariableDeclaration:
		for _, d := range n.Declarations {
			if vd, ok := d.(*ast.VariableDeclarator); ok && vd.Init != nil && ast.IsFunction(vd.Init) {
				return true
			}
		}
	}
	return false
}

func (p *printer) printStmt(s ast.Node) {
	switch st := s.(type) {
	case *ast.ImportDeclaration:
		p.line("%s;", p.importStr(st))
	case *ast.ExportNamedDeclaration:
		if st.Declaration != nil {
			p.prefixed("export ", st.Declaration)
			return
		}
		specs := make([]string, len(st.Specifiers))
		for i, sp := range st.Specifiers {
			es := sp.(*ast.ExportSpecifier)
			local, exported := p.expr(es.Local, precLowest), p.expr(es.Exported, precLowest)
			if local == exported {
				specs[i] = local
			} else {
				specs[i] = local + " as " + exported
			}
		}
		out := "export { " + strings.Join(specs, ", ") + " }"
		if len(specs) == 0 {
			out = "export {}"
		}
		if st.Source != nil {
			out += " from " + p.expr(st.Source, precLowest)
		}
		p.line("%s;", out)
	case *ast.ExportDefaultDeclaration:
		switch st.Declaration.(type) {
		case *ast.FunctionDeclaration, *ast.ClassDeclaration:
			p.prefixed("export default ", st.Declaration)
			return
		}
		p.line("export default %s;", p.expr(st.Declaration, precAssign))
	case *ast.VariableDeclaration:
		p.line("%s;", p.declarationStr(st))
	case *ast.FunctionDeclaration:
		p.line("%s", p.functionStr("function", st.ID, st.Params, st.Body, st.Async, st.Generator))
	case *ast.ClassDeclaration:
		p.line("%s", p.classStr(st.ID, st.SuperClass, st.Body))
	case *ast.BlockStatement:
		p.line("%s", p.blockStr(st))
	case *ast.ReturnStatement:
		if st.Argument == nil {
			p.line("return;")
			return
		}
		p.line("return %s;", p.expr(st.Argument, precLowest))
	case *ast.IfStatement:
		p.line("%s", p.ifStr(st))
	case *ast.ForStatement:
		head := p.forPart(st.Init) + ";"
		if st.Test != nil {
			head += " " + p.expr(st.Test, precLowest)
		}
		head += ";"
		if st.Update != nil {
			head += " " + p.expr(st.Update, precLowest)
		}
		p.line("for (%s) %s", head, p.bodyStr(st.Body))
	case *ast.ForInStatement:
		p.line("for (%s in %s) %s", p.forPart(st.Left), p.expr(st.Right, precLowest), p.bodyStr(st.Body))
	case *ast.ForOfStatement:
		keyword := "for"
		if st.Await {
			keyword = "for await"
		}
		p.line("%s (%s of %s) %s", keyword, p.forPart(st.Left), p.expr(st.Right, precAssign), p.bodyStr(st.Body))
	case *ast.WhileStatement:
		p.line("while (%s) %s", p.expr(st.Test, precLowest), p.bodyStr(st.Body))
	case *ast.DoWhileStatement:
		p.line("do %s while (%s);", p.bodyStr(st.Body), p.expr(st.Test, precLowest))
	case *ast.SwitchStatement:
		p.line("%s", p.switchStr(st))
	case *ast.TryStatement:
		p.line("%s", p.tryStr(st))
	case *ast.ThrowStatement:
		p.line("throw %s;", p.expr(st.Argument, precLowest))
	case *ast.BreakStatement:
		p.line("%s;", jumpStr("break", st.Label))
	case *ast.ContinueStatement:
		p.line("%s;", jumpStr("continue", st.Label))
	case *ast.LabeledStatement:
		p.prefixed(p.exprStr(st.Label)+": ", st.Body)
	case *ast.DebuggerStatement:
		p.line("debugger;")
	case *ast.ExpressionStatement:
		out := p.expr(st.Expression, precLowest)
		// A leading "{", "function" or "class" would start a block or
		// declaration.
		if strings.HasPrefix(out, "{") || strings.HasPrefix(out, "function") ||
			strings.HasPrefix(out, "async function") || strings.HasPrefix(out, "class ") {
			out = "(" + out + ")"
		}
		p.line("%s;", out)
	default:
		p.line("%s;", p.expr(s, precLowest))
	}
}

// prefixed prints a declaration statement with a keyword prefix on its
// first line.
func (p *printer) prefixed(prefix string, decl ast.Node) {
	sub := &printer{indent: p.indent, opts: p.opts}
	sub.printStmt(decl)
	out := sub.sb.String()
	ind := strings.Repeat(p.opts.Indent, p.indent)
	p.sb.WriteString(ind + prefix + strings.TrimPrefix(out, ind))
}

// forPart renders a loop head component, which may be a declaration.
func (p *printer) forPart(n ast.Node) string {
	if d, ok := n.(*ast.VariableDeclaration); ok {
		return p.declarationStr(d)
	}
	return p.expr(n, precLowest)
}

func jumpStr(keyword string, label ast.Node) string {
	if id, ok := label.(*ast.Identifier); ok {
		return keyword + " " + id.Name
	}
	return keyword
}

func (p *printer) switchStr(st *ast.SwitchStatement) string {
	head := "switch (" + p.expr(st.Discriminant, precLowest) + ") "
	if len(st.Cases) == 0 {
		return head + "{}"
	}
	sub := p.nested()
	for _, n := range st.Cases {
		c := n.(*ast.SwitchCase)
		if c.Test == nil {
			sub.line("default:")
		} else {
			sub.line("case %s:", sub.expr(c.Test, precLowest))
		}
		body := sub.nested()
		for _, s := range c.Consequent {
			body.printStmt(s)
		}
		sub.sb.WriteString(body.sb.String())
	}
	return head + "{\n" + sub.sb.String() + strings.Repeat(p.opts.Indent, p.indent) + "}"
}

func (p *printer) tryStr(st *ast.TryStatement) string {
	out := "try " + p.blockStr(st.Block.(*ast.BlockStatement))
	if c, ok := st.Handler.(*ast.CatchClause); ok {
		out += " catch "
		if c.Param != nil {
			out += "(" + p.expr(c.Param, precLowest) + ") "
		}
		out += p.blockStr(c.Body.(*ast.BlockStatement))
	}
	if st.Finalizer != nil {
		out += " finally " + p.blockStr(st.Finalizer.(*ast.BlockStatement))
	}
	return out
}

// classStr renders a class with one member per line.
func (p *printer) classStr(id, superClass ast.Node, body []ast.Node) string {
	out := "class"
	if id != nil {
		out += " " + p.expr(id, precLowest)
	}
	if superClass != nil {
		out += " extends " + p.expr(superClass, precCall)
	}
	if len(body) == 0 {
		return out + " {}"
	}
	sub := p.nested()
	for _, m := range body {
		sub.line("%s", sub.classMemberStr(m))
	}
	return out + " {\n" + sub.sb.String() + strings.Repeat(p.opts.Indent, p.indent) + "}"
}

func (p *printer) classMemberStr(n ast.Node) string {
	var prefix string
	switch m := n.(type) {
	case *ast.MethodDefinition:
		if m.Static {
			prefix = "static "
		}
		fn := m.Value.(*ast.FunctionExpression)
		if fn.Async {
			prefix += "async "
		}
		if fn.Generator {
			prefix += "*"
		}
		if m.Kind == "get" || m.Kind == "set" {
			prefix += m.Kind + " "
		}
		return prefix + p.keyStr(m.Key, m.Computed) + p.functionStr("", nil, fn.Params, fn.Body, false, false)
	case *ast.PropertyDefinition:
		if m.Static {
			prefix = "static "
		}
		out := prefix + p.keyStr(m.Key, m.Computed)
		if m.Value != nil {
			out += " = " + p.expr(m.Value, precAssign)
		}
		return out + ";"
	}
	return p.exprStr(n)
}

func (p *printer) importStr(imp *ast.ImportDeclaration) string {
	if len(imp.Specifiers) == 0 {
		return "import " + p.expr(imp.Source, precLowest)
	}
	var parts, named []string
	for _, s := range imp.Specifiers {
		switch sp := s.(type) {
		case *ast.ImportDefaultSpecifier:
			parts = append(parts, p.expr(sp.Local, precLowest))
		case *ast.ImportNamespaceSpecifier:
			parts = append(parts, "* as "+p.expr(sp.Local, precLowest))
		case *ast.ImportSpecifier:
			imported, local := p.expr(sp.Imported, precLowest), p.expr(sp.Local, precLowest)
			if imported == local {
				named = append(named, local)
			} else {
				named = append(named, imported+" as "+local)
			}
		}
	}
	if named != nil {
		parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
	}
	return "import " + strings.Join(parts, ", ") + " from " + p.expr(imp.Source, precLowest)
}

func (p *printer) declarationStr(d *ast.VariableDeclaration) string {
	decls := make([]string, len(d.Declarations))
	for i, n := range d.Declarations {
		vd := n.(*ast.VariableDeclarator)
		decls[i] = p.expr(vd.ID, precLowest)
		if vd.Init != nil {
			decls[i] += " = " + p.expr(vd.Init, precAssign)
		}
	}
	return d.Kind + " " + strings.Join(decls, ", ")
}

func (p *printer) ifStr(st *ast.IfStatement) string {
	out := "if (" + p.expr(st.Test, precLowest) + ") " + p.bodyStr(st.Consequent)
	if st.Alternate == nil {
		return out
	}
	if alt, ok := st.Alternate.(*ast.IfStatement); ok {
		return out + " else " + p.ifStr(alt)
	}
	return out + " else " + p.bodyStr(st.Alternate)
}

// bodyStr renders an if branch; non-block statements are wrapped in a
// block.
func (p *printer) bodyStr(n ast.Node) string {
	if b, ok := n.(*ast.BlockStatement); ok {
		return p.blockStr(b)
	}
	return p.blockStr(&ast.BlockStatement{Body: []ast.Node{n}})
}

// blockStr renders a block whose opening brace continues the current
// line and whose closing brace sits at the current indentation.
func (p *printer) blockStr(b *ast.BlockStatement) string {
	if len(b.Body) == 0 {
		return "{}"
	}
	sub := p.nested()
	for _, s := range b.Body {
		sub.printStmt(s)
	}
	return "{\n" + sub.sb.String() + strings.Repeat(p.opts.Indent, p.indent) + "}"
}

func (p *printer) functionStr(keyword string, id ast.Node, params []ast.Node, body ast.Node, async, generator bool) string {
	var sb strings.Builder
	if async {
		sb.WriteString("async ")
	}
	sb.WriteString(keyword)
	if generator {
		sb.WriteString("*")
	}
	if id != nil {
		sb.WriteString(" " + p.expr(id, precLowest))
	}
	sb.WriteString("(" + p.list(params) + ") ")
	sb.WriteString(p.blockStr(body.(*ast.BlockStatement)))
	return sb.String()
}
