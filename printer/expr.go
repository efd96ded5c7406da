package printer

import (
	"strconv"
	"strings"

	"github.com/rubiojr/tmplvars/ast"
)

// Expression precedence levels. An operand rendered at a level lower than
// its context requires is parenthesized.
const (
	precLowest  = 0
	precSeq     = 1
	precAssign  = 2 // assignment, arrow functions, yield
	precCond    = 3
	precBinary  = 4 // base for binary operators, see binaryPrec
	precUnary   = 17
	precUpdate  = 18
	precCall    = 19 // call, member, new
	precPrimary = 20
)

var binaryPrec = map[string]int{
	"??": 1, "||": 2, "&&": 3, "|": 4, "^": 5, "&": 6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
	"<<": 9, ">>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

func opPrec(op string) int { return precBinary + binaryPrec[op] }

func precOf(n ast.Node) int {
	switch n := n.(type) {
	case *ast.SequenceExpression:
		return precSeq
	case *ast.AssignmentExpression, *ast.ArrowFunctionExpression, *ast.YieldExpression:
		return precAssign
	case *ast.ConditionalExpression:
		return precCond
	case *ast.BinaryExpression:
		return opPrec(n.Operator)
	case *ast.LogicalExpression:
		return opPrec(n.Operator)
	case *ast.UnaryExpression:
		return precUnary
	case *ast.UpdateExpression:
		if n.Prefix {
			return precUnary
		}
		return precUpdate
	case *ast.CallExpression, *ast.MemberExpression, *ast.NewExpression:
		return precCall
	}
	return precPrimary
}

// expr renders n, parenthesized when its precedence is below prec.
func (p *printer) expr(n ast.Node, prec int) string {
	if n == nil {
		return ""
	}
	out := p.exprStr(n)
	if precOf(n) < prec {
		return "(" + out + ")"
	}
	return out
}

func (p *printer) list(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = p.expr(n, precAssign)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) exprStr(n ast.Node) string {
	switch e := n.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.ThisExpression:
		return "this"
	case *ast.Super:
		return "super"
	case *ast.RegExpLiteral:
		return "/" + e.Pattern + "/" + e.Flags
	case *ast.StringLiteral:
		return quote(e.Value, p.opts.Quote)
	case *ast.NumericLiteral:
		if e.Raw != "" {
			return e.Raw
		}
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value)
	case *ast.NullLiteral:
		return "null"
	case *ast.TemplateLiteral:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, q := range e.Quasis {
			sb.WriteString(q)
			if i < len(e.Expressions) {
				sb.WriteString("${" + p.expr(e.Expressions[i], precLowest) + "}")
			}
		}
		sb.WriteByte('`')
		return sb.String()
	case *ast.ArrayExpression:
		return "[" + p.elements(e.Elements) + "]"
	case *ast.ArrayPattern:
		return "[" + p.elements(e.Elements) + "]"
	case *ast.ObjectExpression:
		return p.objectStr(e.Properties)
	case *ast.ObjectPattern:
		return p.objectStr(e.Properties)
	case *ast.ObjectProperty:
		return p.propertyStr(e)
	case *ast.SpreadElement:
		return "..." + p.expr(e.Argument, precAssign)
	case *ast.RestElement:
		return "..." + p.expr(e.Argument, precAssign)
	case *ast.AssignmentPattern:
		return p.expr(e.Left, precCall) + " = " + p.expr(e.Right, precAssign)
	case *ast.FunctionExpression:
		return p.functionStr("function", e.ID, e.Params, e.Body, e.Async, e.Generator)
	case *ast.ClassExpression:
		return p.classStr(e.ID, e.SuperClass, e.Body)
	case *ast.ArrowFunctionExpression:
		return p.arrowStr(e)
	case *ast.CallExpression:
		callee := p.expr(e.Callee, precCall)
		if e.Optional {
			callee += "?."
		}
		return callee + "(" + p.list(e.Arguments) + ")"
	case *ast.NewExpression:
		callee := p.expr(e.Callee, precCall)
		if containsCall(e.Callee) {
			callee = "(" + p.exprStr(e.Callee) + ")"
		}
		return "new " + callee + "(" + p.list(e.Arguments) + ")"
	case *ast.MemberExpression:
		obj := p.expr(e.Object, precCall)
		if num, ok := e.Object.(*ast.NumericLiteral); ok && !strings.ContainsAny(p.exprStr(num), ".eExXbBoO") {
			obj = "(" + obj + ")"
		}
		switch {
		case e.Computed && e.Optional:
			return obj + "?.[" + p.expr(e.Property, precLowest) + "]"
		case e.Computed:
			return obj + "[" + p.expr(e.Property, precLowest) + "]"
		case e.Optional:
			return obj + "?." + p.exprStr(e.Property)
		}
		return obj + "." + p.exprStr(e.Property)
	case *ast.UnaryExpression:
		arg := p.expr(e.Argument, precUnary)
		switch {
		case len(e.Operator) > 1:
			return e.Operator + " " + arg
		case (e.Operator == "-" || e.Operator == "+") && strings.HasPrefix(arg, e.Operator):
			return e.Operator + " " + arg
		}
		return e.Operator + arg
	case *ast.UpdateExpression:
		if e.Prefix {
			return e.Operator + p.expr(e.Argument, precUnary)
		}
		return p.expr(e.Argument, precCall) + e.Operator
	case *ast.BinaryExpression:
		return p.binaryStr(e.Operator, e.Left, e.Right)
	case *ast.LogicalExpression:
		return p.binaryStr(e.Operator, e.Left, e.Right)
	case *ast.ConditionalExpression:
		return p.expr(e.Test, precCond+1) + " ? " + p.expr(e.Consequent, precAssign) + " : " + p.expr(e.Alternate, precAssign)
	case *ast.AssignmentExpression:
		return p.expr(e.Left, precCall) + " " + e.Operator + " " + p.expr(e.Right, precAssign)
	case *ast.SequenceExpression:
		return p.list(e.Expressions)
	case *ast.YieldExpression:
		out := "yield"
		if e.Delegate {
			out += "*"
		}
		if e.Argument != nil {
			out += " " + p.expr(e.Argument, precAssign)
		}
		return out
	case *ast.JSXElement, *ast.JSXFragment:
		return p.jsxStr(n)
	}
	return "/* unsupported " + n.Type() + " */"
}

func (p *printer) binaryStr(op string, left, right ast.Node) string {
	prec := opPrec(op)
	lp, rp := prec, prec+1
	if op == "**" {
		lp, rp = prec+1, prec
	}
	_, unaryBase := left.(*ast.UnaryExpression)
	// ?? cannot be mixed with && or || without parentheses, and a unary
	// operand cannot be the base of **.
	l := p.operand(left, lp, mixesNullish(op, left) || (op == "**" && unaryBase))
	r := p.operand(right, rp, mixesNullish(op, right))
	return l + " " + op + " " + r
}

// operand renders n like expr, parenthesizing it also when force is set.
func (p *printer) operand(n ast.Node, prec int, force bool) string {
	if force && precOf(n) >= prec {
		return "(" + p.exprStr(n) + ")"
	}
	return p.expr(n, prec)
}

func mixesNullish(op string, operand ast.Node) bool {
	l, ok := operand.(*ast.LogicalExpression)
	if !ok {
		return false
	}
	return (op == "??") != (l.Operator == "??")
}

func containsCall(n ast.Node) bool {
	found := false
	ast.Inspect(n, func(c ast.Node) bool {
		if _, ok := c.(*ast.CallExpression); ok {
			found = true
		}
		return !found && !ast.IsFunction(c)
	})
	return found
}

func (p *printer) elements(elems []ast.Node) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		if e != nil {
			parts[i] = p.expr(e, precAssign)
		}
	}
	out := strings.Join(parts, ", ")
	if len(elems) > 0 && elems[len(elems)-1] == nil {
		out += ","
	}
	return out
}

func (p *printer) objectStr(props []ast.Node) string {
	if len(props) == 0 {
		return "{}"
	}
	return "{ " + p.list(props) + " }"
}

// keyStr renders an object or class member key.
func (p *printer) keyStr(key ast.Node, computed bool) string {
	if computed {
		return "[" + p.expr(key, precAssign) + "]"
	}
	return p.exprStr(key)
}

func (p *printer) propertyStr(prop *ast.ObjectProperty) string {
	key := p.keyStr(prop.Key, prop.Computed)
	if prop.Shorthand && !prop.Computed {
		switch v := prop.Value.(type) {
		case *ast.Identifier:
			if v.Name == key {
				return key
			}
		case *ast.AssignmentPattern:
			if id, ok := v.Left.(*ast.Identifier); ok && id.Name == key {
				return p.exprStr(v)
			}
		}
	}
	if fn, ok := prop.Value.(*ast.FunctionExpression); ok && fn.ID == nil {
		method := key + p.functionStr("", nil, fn.Params, fn.Body, false, false)
		if fn.Generator {
			method = "*" + method
		}
		if fn.Async {
			method = "async " + method
		}
		return method
	}
	return key + ": " + p.expr(prop.Value, precAssign)
}

func (p *printer) arrowStr(fn *ast.ArrowFunctionExpression) string {
	params := "(" + p.list(fn.Params) + ")"
	if len(fn.Params) == 1 {
		if id, ok := fn.Params[0].(*ast.Identifier); ok {
			params = id.Name
		}
	}
	if fn.Async {
		params = "async " + params
	}
	if block, ok := fn.Body.(*ast.BlockStatement); ok {
		return params + " => " + p.blockStr(block)
	}
	body := p.expr(fn.Body, precAssign)
	if _, ok := fn.Body.(*ast.ObjectExpression); ok {
		body = "(" + body + ")"
	}
	return params + " => " + body
}

// quote renders s as a JavaScript string literal with the given quote.
func quote(s string, q byte) string {
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 {
				sb.WriteString(`\x`)
				h := strconv.FormatInt(int64(r), 16)
				if len(h) < 2 {
					h = "0" + h
				}
				sb.WriteString(h)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
