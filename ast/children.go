package ast

// slot is one child position of a node: either a single field or a list.
type slot struct {
	key  string
	ptr  *Node
	list *[]Node
}

func one(key string, ptr *Node) slot     { return slot{key: key, ptr: ptr} }
func many(key string, list *[]Node) slot { return slot{key: key, list: list} }
func slotsOf(ss ...slot) []slot          { return ss }
func noSlots() []slot                    { return nil }

func (s slot) isList() bool { return s.list != nil }
func (s slot) get() Node    { return *s.ptr }

// slots returns the child positions of n in source order.
func slots(n Node) []slot {
	switch n := n.(type) {
	case *Program:
		return slotsOf(many("body", &n.Body))
	case *ImportDeclaration:
		return slotsOf(many("specifiers", &n.Specifiers), one("source", &n.Source))
	case *ImportSpecifier:
		return slotsOf(one("imported", &n.Imported), one("local", &n.Local))
	case *ImportDefaultSpecifier:
		return slotsOf(one("local", &n.Local))
	case *ImportNamespaceSpecifier:
		return slotsOf(one("local", &n.Local))
	case *ExportNamedDeclaration:
		return slotsOf(one("declaration", &n.Declaration), many("specifiers", &n.Specifiers), one("source", &n.Source))
	case *ExportSpecifier:
		return slotsOf(one("local", &n.Local), one("exported", &n.Exported))
	case *ExportDefaultDeclaration:
		return slotsOf(one("declaration", &n.Declaration))
	case *VariableDeclaration:
		return slotsOf(many("declarations", &n.Declarations))
	case *VariableDeclarator:
		return slotsOf(one("id", &n.ID), one("init", &n.Init))
	case *FunctionDeclaration:
		return slotsOf(one("id", &n.ID), many("params", &n.Params), one("body", &n.Body))
	case *BlockStatement:
		return slotsOf(many("body", &n.Body))
	case *ReturnStatement:
		return slotsOf(one("argument", &n.Argument))
	case *IfStatement:
		return slotsOf(one("test", &n.Test), one("consequent", &n.Consequent), one("alternate", &n.Alternate))
	case *ExpressionStatement:
		return slotsOf(one("expression", &n.Expression))
	case *ForStatement:
		return slotsOf(one("init", &n.Init), one("test", &n.Test), one("update", &n.Update), one("body", &n.Body))
	case *ForInStatement:
		return slotsOf(one("left", &n.Left), one("right", &n.Right), one("body", &n.Body))
	case *ForOfStatement:
		return slotsOf(one("left", &n.Left), one("right", &n.Right), one("body", &n.Body))
	case *WhileStatement:
		return slotsOf(one("test", &n.Test), one("body", &n.Body))
	case *DoWhileStatement:
		return slotsOf(one("body", &n.Body), one("test", &n.Test))
	case *SwitchStatement:
		return slotsOf(one("discriminant", &n.Discriminant), many("cases", &n.Cases))
	case *SwitchCase:
		return slotsOf(one("test", &n.Test), many("consequent", &n.Consequent))
	case *TryStatement:
		return slotsOf(one("block", &n.Block), one("handler", &n.Handler), one("finalizer", &n.Finalizer))
	case *CatchClause:
		return slotsOf(one("param", &n.Param), one("body", &n.Body))
	case *ThrowStatement:
		return slotsOf(one("argument", &n.Argument))
	case *BreakStatement:
		return slotsOf(one("label", &n.Label))
	case *ContinueStatement:
		return slotsOf(one("label", &n.Label))
	case *LabeledStatement:
		return slotsOf(one("label", &n.Label), one("body", &n.Body))
	case *ClassDeclaration:
		return slotsOf(one("id", &n.ID), one("superClass", &n.SuperClass), many("body", &n.Body))
	case *ClassExpression:
		return slotsOf(one("id", &n.ID), one("superClass", &n.SuperClass), many("body", &n.Body))
	case *MethodDefinition:
		return slotsOf(one("key", &n.Key), one("value", &n.Value))
	case *PropertyDefinition:
		return slotsOf(one("key", &n.Key), one("value", &n.Value))
	case *SequenceExpression:
		return slotsOf(many("expressions", &n.Expressions))
	case *YieldExpression:
		return slotsOf(one("argument", &n.Argument))
	case *TemplateLiteral:
		return slotsOf(many("expressions", &n.Expressions))
	case *ArrayExpression:
		return slotsOf(many("elements", &n.Elements))
	case *ObjectExpression:
		return slotsOf(many("properties", &n.Properties))
	case *ObjectProperty:
		return slotsOf(one("key", &n.Key), one("value", &n.Value))
	case *SpreadElement:
		return slotsOf(one("argument", &n.Argument))
	case *FunctionExpression:
		return slotsOf(one("id", &n.ID), many("params", &n.Params), one("body", &n.Body))
	case *ArrowFunctionExpression:
		return slotsOf(many("params", &n.Params), one("body", &n.Body))
	case *CallExpression:
		return slotsOf(one("callee", &n.Callee), many("arguments", &n.Arguments))
	case *NewExpression:
		return slotsOf(one("callee", &n.Callee), many("arguments", &n.Arguments))
	case *MemberExpression:
		return slotsOf(one("object", &n.Object), one("property", &n.Property))
	case *UnaryExpression:
		return slotsOf(one("argument", &n.Argument))
	case *UpdateExpression:
		return slotsOf(one("argument", &n.Argument))
	case *BinaryExpression:
		return slotsOf(one("left", &n.Left), one("right", &n.Right))
	case *LogicalExpression:
		return slotsOf(one("left", &n.Left), one("right", &n.Right))
	case *ConditionalExpression:
		return slotsOf(one("test", &n.Test), one("consequent", &n.Consequent), one("alternate", &n.Alternate))
	case *AssignmentExpression:
		return slotsOf(one("left", &n.Left), one("right", &n.Right))
	case *ObjectPattern:
		return slotsOf(many("properties", &n.Properties))
	case *ArrayPattern:
		return slotsOf(many("elements", &n.Elements))
	case *AssignmentPattern:
		return slotsOf(one("left", &n.Left), one("right", &n.Right))
	case *RestElement:
		return slotsOf(one("argument", &n.Argument))
	case *JSXElement:
		return slotsOf(one("name", &n.Name), many("attributes", &n.Attributes), many("children", &n.Children))
	case *JSXFragment:
		return slotsOf(many("children", &n.Children))
	case *JSXAttribute:
		return slotsOf(one("name", &n.Name), one("value", &n.Value))
	case *JSXSpreadAttribute:
		return slotsOf(one("argument", &n.Argument))
	case *JSXMemberExpression:
		return slotsOf(one("object", &n.Object), one("property", &n.Property))
	case *JSXExpressionContainer:
		return slotsOf(one("expression", &n.Expression))
	}
	return noSlots()
}

// Inspect traverses the tree rooted at n depth-first, calling fn for each
// node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, s := range slots(n) {
		if s.isList() {
			for _, c := range *s.list {
				Inspect(c, fn)
			}
			continue
		}
		Inspect(s.get(), fn)
	}
}

// Clone returns a deep copy of n. Positions are preserved.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	cp := shallowCopy(n)
	for _, s := range slots(cp) {
		if s.isList() {
			if *s.list == nil {
				continue
			}
			items := make([]Node, len(*s.list))
			for i, c := range *s.list {
				items[i] = Clone(c)
			}
			*s.list = items
			continue
		}
		*s.ptr = Clone(*s.ptr)
	}
	return cp
}

func shallowCopy(n Node) Node {
	switch n := n.(type) {
	case *Program:
		cp := *n
		return &cp
	case *ImportDeclaration:
		cp := *n
		return &cp
	case *ImportSpecifier:
		cp := *n
		return &cp
	case *ImportDefaultSpecifier:
		cp := *n
		return &cp
	case *ImportNamespaceSpecifier:
		cp := *n
		return &cp
	case *ExportNamedDeclaration:
		cp := *n
		return &cp
	case *ExportSpecifier:
		cp := *n
		return &cp
	case *ExportDefaultDeclaration:
		cp := *n
		return &cp
	case *VariableDeclaration:
		cp := *n
		return &cp
	case *VariableDeclarator:
		cp := *n
		return &cp
	case *FunctionDeclaration:
		cp := *n
		return &cp
	case *BlockStatement:
		cp := *n
		return &cp
	case *ReturnStatement:
		cp := *n
		return &cp
	case *IfStatement:
		cp := *n
		return &cp
	case *ExpressionStatement:
		cp := *n
		return &cp
	case *ForStatement:
		cp := *n
		return &cp
	case *ForInStatement:
		cp := *n
		return &cp
	case *ForOfStatement:
		cp := *n
		return &cp
	case *WhileStatement:
		cp := *n
		return &cp
	case *DoWhileStatement:
		cp := *n
		return &cp
	case *SwitchStatement:
		cp := *n
		return &cp
	case *SwitchCase:
		cp := *n
		return &cp
	case *TryStatement:
		cp := *n
		return &cp
	case *CatchClause:
		cp := *n
		return &cp
	case *ThrowStatement:
		cp := *n
		return &cp
	case *BreakStatement:
		cp := *n
		return &cp
	case *ContinueStatement:
		cp := *n
		return &cp
	case *LabeledStatement:
		cp := *n
		return &cp
	case *DebuggerStatement:
		cp := *n
		return &cp
	case *ClassDeclaration:
		cp := *n
		return &cp
	case *ClassExpression:
		cp := *n
		return &cp
	case *MethodDefinition:
		cp := *n
		return &cp
	case *PropertyDefinition:
		cp := *n
		return &cp
	case *Super:
		cp := *n
		return &cp
	case *RegExpLiteral:
		cp := *n
		return &cp
	case *SequenceExpression:
		cp := *n
		return &cp
	case *YieldExpression:
		cp := *n
		return &cp
	case *Identifier:
		cp := *n
		return &cp
	case *StringLiteral:
		cp := *n
		return &cp
	case *NumericLiteral:
		cp := *n
		return &cp
	case *BooleanLiteral:
		cp := *n
		return &cp
	case *NullLiteral:
		cp := *n
		return &cp
	case *ThisExpression:
		cp := *n
		return &cp
	case *TemplateLiteral:
		cp := *n
		cp.Quasis = append([]string(nil), n.Quasis...)
		return &cp
	case *ArrayExpression:
		cp := *n
		return &cp
	case *ObjectExpression:
		cp := *n
		return &cp
	case *ObjectProperty:
		cp := *n
		return &cp
	case *SpreadElement:
		cp := *n
		return &cp
	case *FunctionExpression:
		cp := *n
		return &cp
	case *ArrowFunctionExpression:
		cp := *n
		return &cp
	case *CallExpression:
		cp := *n
		return &cp
	case *NewExpression:
		cp := *n
		return &cp
	case *MemberExpression:
		cp := *n
		return &cp
	case *UnaryExpression:
		cp := *n
		return &cp
	case *UpdateExpression:
		cp := *n
		return &cp
	case *BinaryExpression:
		cp := *n
		return &cp
	case *LogicalExpression:
		cp := *n
		return &cp
	case *ConditionalExpression:
		cp := *n
		return &cp
	case *AssignmentExpression:
		cp := *n
		return &cp
	case *ObjectPattern:
		cp := *n
		return &cp
	case *ArrayPattern:
		cp := *n
		return &cp
	case *AssignmentPattern:
		cp := *n
		return &cp
	case *RestElement:
		cp := *n
		return &cp
	case *JSXElement:
		cp := *n
		return &cp
	case *JSXFragment:
		cp := *n
		return &cp
	case *JSXAttribute:
		cp := *n
		return &cp
	case *JSXSpreadAttribute:
		cp := *n
		return &cp
	case *JSXIdentifier:
		cp := *n
		return &cp
	case *JSXMemberExpression:
		cp := *n
		return &cp
	case *JSXExpressionContainer:
		cp := *n
		return &cp
	case *JSXEmptyExpression:
		cp := *n
		return &cp
	case *JSXText:
		cp := *n
		return &cp
	}
	return n
}
