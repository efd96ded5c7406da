package rewrite

import (
	"github.com/rubiojr/tmplvars/ast"
)

// component holds the state of one component rewrite. The tables are
// shared by every callback of the single walk over the component; the
// alias table grows while the walk is in progress.
type component struct {
	name   string
	fn     ast.Node
	opts   Options
	f      *ast.Factory
	m      markers
	scope  *ast.Scope
	report Reporter

	desc     *Descriptors
	replace  Allocation
	lists    Allocation
	controls map[string]bool
	renamed  map[string]string // replace identifier -> original name
	listIDs  map[string]string // list identifier -> original name
	aliases  map[string]string // List Alias Table: alias -> original list name

	setup   bool
	handled map[*ast.ConditionalExpression]bool
}

func newComponent(name string, fnPath *ast.Path, desc *Descriptors, opts Options) *component {
	scope := fnPath.Scope()
	f := ast.NewFactory()
	c := &component{
		name:     name,
		fn:       fnPath.Node,
		opts:     opts,
		f:        f,
		scope:    scope,
		report:   opts.Reporter,
		desc:     desc,
		controls: make(map[string]bool),
		aliases:  make(map[string]string),
		handled:  make(map[*ast.ConditionalExpression]bool),
	}
	c.m = markers{f: f, names: opts.Markers, ctx: scope.GenerateUID("context")}
	c.replace = Allocate(scope, desc.Replace)
	c.lists = Allocate(scope, desc.List)
	c.renamed = c.replace.Reverse()
	c.listIDs = c.lists.Reverse()
	for _, v := range desc.Control {
		c.controls[v.Name] = true
	}
	for _, v := range desc.List {
		c.aliases[v.Name] = v.Name
		for _, a := range v.Config.Aliases {
			if a != v.Name {
				c.aliases[a] = v.Name
			}
		}
	}
	return c
}

// rewrite walks the component function once with all callbacks.
func (c *component) rewrite(fnPath *ast.Path) {
	normalizeBody(c.f, c.fn)
	fnPath.Traverse(ast.Visitor{
		"BlockStatement":         c.block,
		"JSXElement":             c.element,
		"Identifier":             c.identifier,
		"JSXExpressionContainer": c.container,
	})
}

// normalizeBody turns an arrow function's expression body into a block
// with a return statement so the setup declarations have a home.
func normalizeBody(f *ast.Factory, fn ast.Node) {
	arrow, ok := fn.(*ast.ArrowFunctionExpression)
	if !ok {
		return
	}
	if _, isBlock := arrow.Body.(*ast.BlockStatement); isBlock {
		return
	}
	arrow.Body = f.Block(f.Return(arrow.Body))
}

func params(fn ast.Node) *[]ast.Node {
	switch fn := fn.(type) {
	case *ast.FunctionDeclaration:
		return &fn.Params
	case *ast.FunctionExpression:
		return &fn.Params
	case *ast.ArrowFunctionExpression:
		return &fn.Params
	}
	return nil
}

// block sets up the component body: only the function's own body block
// is touched, once.
func (c *component) block(p *ast.Path) {
	if c.setup || p.ParentNode() != c.fn {
		return
	}
	c.setup = true

	decls := []ast.Node{c.f.Const(c.m.ctx, c.contextInit())}
	for _, v := range c.desc.List {
		if decl, ok := c.m.listDeclaration(c.lists.IDs[v.Name], v); ok {
			decls = append(decls, decl)
			continue
		}
		report(c.report, v.Pos, CodeUnknownChild, "list %q has unknown child type %q", v.Name, v.Config.ChildType())
	}
	for _, name := range c.replace.Names {
		decls = append(decls, c.f.Const(c.replace.IDs[name], c.m.value(KindFormat, name)))
	}
	p.UnshiftContainer("body", decls...)
}

// contextInit returns the initializer of the context declaration. The
// props parameter supplies the parent's context when it can.
func (c *component) contextInit() ast.Node {
	root := c.f.Number(float64(c.opts.RootContext))
	ps := params(c.fn)
	if ps == nil || len(*ps) == 0 {
		return root
	}
	param := (*ps)[0]
	if ap, ok := param.(*ast.AssignmentPattern); ok {
		param = ap.Left
	}
	switch pt := param.(type) {
	case *ast.ObjectPattern:
		local := existingContextBinding(pt, c.opts.ContextAttribute)
		if local == "" {
			local = c.scope.GenerateUID("parentContext")
			pt.Properties = insertBeforeRest(pt.Properties, c.f.PatternProperty(c.opts.ContextAttribute, local))
		}
		return c.f.Logical("||", c.f.Identifier(local), root)
	case *ast.Identifier:
		return c.f.Logical("||", c.f.Member(c.f.Identifier(pt.Name), c.opts.ContextAttribute), root)
	}
	report(c.report, param.Position(), CodeUnsupportedParam,
		"component %s: %s parameter cannot receive %s; using the root context", c.name, param.Type(), c.opts.ContextAttribute)
	return root
}

func existingContextBinding(pat *ast.ObjectPattern, attr string) string {
	for _, n := range pat.Properties {
		prop, ok := n.(*ast.ObjectProperty)
		if !ok || prop.Computed {
			continue
		}
		if key, ok := ast.PropertyName(prop.Key); ok && key == attr {
			if id, ok := prop.Value.(*ast.Identifier); ok {
				return id.Name
			}
		}
	}
	return ""
}

// insertBeforeRest appends prop, keeping a trailing rest element last.
func insertBeforeRest(props []ast.Node, prop ast.Node) []ast.Node {
	if n := len(props); n > 0 {
		if _, ok := props[n-1].(*ast.RestElement); ok {
			out := append([]ast.Node{}, props[:n-1]...)
			return append(out, prop, props[n-1])
		}
	}
	return append(props, prop)
}

// element injects the render context into component elements and
// duplicates the value attribute of text inputs.
func (c *component) element(p *ast.Path) {
	el := p.Node.(*ast.JSXElement)
	if ast.IsComponentElement(el) && ast.FindJSXAttribute(el, c.opts.ContextAttribute) == nil {
		var ctx ast.Node = c.f.Identifier(c.m.ctx)
		if p.FindParent(c.isRepeatCall, 0) != nil {
			ctx = c.f.Binary("+", ctx, c.f.Number(1))
		}
		el.Attributes = append(el.Attributes, c.f.JSXAttr(c.opts.ContextAttribute, ctx))
	}
	if ast.IsTextInputElement(el) {
		dup := c.opts.ValueAttributePrefix + "value"
		if value := ast.FindJSXAttribute(el, "value"); value != nil && ast.FindJSXAttribute(el, dup) == nil {
			attr := &ast.JSXAttribute{Name: &ast.JSXIdentifier{Name: dup}, Value: ast.Clone(value.Value)}
			el.Attributes = append(el.Attributes, attr)
		}
	}
}

func (c *component) isRepeatCall(p *ast.Path) bool {
	return ast.IsMemberCall(p.Node, c.opts.RepeatMethods...)
}

func (c *component) isRepeatMethod(name string) bool {
	for _, m := range c.opts.RepeatMethods {
		if m == name {
			return true
		}
	}
	return false
}

// identifier handles control, replace and list variable references.
func (c *component) identifier(p *ast.Path) {
	id := p.Node.(*ast.Identifier)
	if c.controls[id.Name] && !isBinding(p) {
		if c.controlIdentifier(p) {
			return
		}
	}
	if uid, ok := c.replace.IDs[id.Name]; ok {
		if !isExcluded(p) {
			c.rename(p, uid)
		}
		return
	}
	if _, ok := c.aliases[id.Name]; ok {
		c.listIdentifier(p)
	}
}

// listIdentifier renames list references. The receiver of a repeat call
// is renamed too, and when the call result is bound to a new name that
// name is registered as an alias of the original list.
func (c *component) listIdentifier(p *ast.Path) {
	id := p.Node.(*ast.Identifier)
	orig := c.aliases[id.Name]
	uid, isList := c.lists.IDs[id.Name]

	if call := c.repeatReceiverCall(p); call != nil {
		if isList {
			c.rename(p, uid)
		}
		if decl, ok := call.ParentNode().(*ast.VariableDeclarator); ok && call.Key == "init" {
			if target, ok := decl.ID.(*ast.Identifier); ok && c.lists.IDs[target.Name] == "" && target.Name != orig {
				c.aliases[target.Name] = orig
			}
		}
		return
	}
	if isList && !isExcluded(p) {
		c.rename(p, uid)
	}
}

// repeatReceiverCall returns the call path when p is the object of
// <p>.map(...).
func (c *component) repeatReceiverCall(p *ast.Path) *ast.Path {
	if p.Key != "object" {
		return nil
	}
	member, ok := p.ParentNode().(*ast.MemberExpression)
	if !ok || member.Computed || p.Parent.Key != "callee" {
		return nil
	}
	prop, ok := member.Property.(*ast.Identifier)
	if !ok || !c.isRepeatMethod(prop.Name) {
		return nil
	}
	return p.Parent.Parent
}

// rename points the identifier at uid. Shorthand object properties
// become longhand so the key keeps its name.
func (c *component) rename(p *ast.Path, uid string) {
	if prop, ok := p.ParentNode().(*ast.ObjectProperty); ok && p.Key == "value" {
		prop.Shorthand = false
	}
	p.ReplaceWith(c.f.Identifier(uid))
}

// listName resolves an identifier to the original list it denotes.
func (c *component) listName(name string) (string, bool) {
	if orig, ok := c.aliases[name]; ok {
		return orig, true
	}
	orig, ok := c.listIDs[name]
	return orig, ok
}

// isBinding reports whether the identifier at p names something rather
// than referencing a value: object keys, pattern bindings, declarator
// ids, function names and parameters, module specifiers.
func isBinding(p *ast.Path) bool {
	switch parent := p.ParentNode().(type) {
	case *ast.ObjectProperty:
		if p.Key == "key" {
			return !parent.Computed
		}
		_, inPattern := p.Parent.ParentNode().(*ast.ObjectPattern)
		return inPattern
	case *ast.ObjectPattern, *ast.ArrayPattern, *ast.RestElement:
		return true
	case *ast.AssignmentPattern:
		return p.Key == "left"
	case *ast.VariableDeclarator:
		return p.Key == "id"
	case *ast.FunctionDeclaration, *ast.FunctionExpression, *ast.ArrowFunctionExpression:
		return p.Key == "id" || p.Key == "params"
	case *ast.ImportSpecifier, *ast.ImportDefaultSpecifier, *ast.ImportNamespaceSpecifier, *ast.ExportSpecifier:
		return true
	case *ast.ClassDeclaration, *ast.ClassExpression:
		return p.Key == "id"
	case *ast.MethodDefinition:
		return p.Key == "key" && !parent.Computed
	case *ast.PropertyDefinition:
		return p.Key == "key" && !parent.Computed
	case *ast.CatchClause:
		return p.Key == "param"
	case *ast.LabeledStatement, *ast.BreakStatement, *ast.ContinueStatement:
		return true
	}
	return false
}

// isExcluded reports whether a variable reference at p must keep its
// name: binding positions plus both sides of a member access other than
// a computed property.
func isExcluded(p *ast.Path) bool {
	if isBinding(p) {
		return true
	}
	if m, ok := p.ParentNode().(*ast.MemberExpression); ok {
		return p.Key == "object" || !m.Computed
	}
	return false
}
