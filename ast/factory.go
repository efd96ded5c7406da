package ast

// Factory centralizes node creation for transform passes. Synthesized
// nodes carry a zero position.
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// --- Literals & names ---

func (f *Factory) Identifier(name string) *Identifier { return &Identifier{Name: name} }

func (f *Factory) String(v string) *StringLiteral { return &StringLiteral{Value: v} }

func (f *Factory) Number(v float64) *NumericLiteral { return &NumericLiteral{Value: v} }

func (f *Factory) Bool(v bool) *BooleanLiteral { return &BooleanLiteral{Value: v} }

func (f *Factory) Null() *NullLiteral { return &NullLiteral{} }

// Strings builds an array expression of string literals.
func (f *Factory) Strings(values ...string) *ArrayExpression {
	elems := make([]Node, len(values))
	for i, v := range values {
		elems[i] = f.String(v)
	}
	return f.Array(elems...)
}

// --- Expressions ---

func (f *Factory) Array(elems ...Node) *ArrayExpression {
	if elems == nil {
		elems = []Node{}
	}
	return &ArrayExpression{Elements: elems}
}

func (f *Factory) Object(props ...Node) *ObjectExpression {
	if props == nil {
		props = []Node{}
	}
	return &ObjectExpression{Properties: props}
}

// Property creates a non-computed key: value property. Keys that are not
// valid identifiers are emitted as string literals.
func (f *Factory) Property(key string, value Node) *ObjectProperty {
	var k Node = f.Identifier(key)
	if !isIdentifierName(key) {
		k = f.String(key)
	}
	return &ObjectProperty{Key: k, Value: value}
}

func (f *Factory) Call(callee Node, args ...Node) *CallExpression {
	if args == nil {
		args = []Node{}
	}
	return &CallExpression{Callee: callee, Arguments: args}
}

// CallNamed is shorthand for calling a function by name.
func (f *Factory) CallNamed(name string, args ...Node) *CallExpression {
	return f.Call(f.Identifier(name), args...)
}

// Member creates object.property, or object["property"] when property
// is not an identifier name.
func (f *Factory) Member(object Node, property string) *MemberExpression {
	if !isIdentifierName(property) {
		return &MemberExpression{Object: object, Property: f.String(property), Computed: true}
	}
	return &MemberExpression{Object: object, Property: f.Identifier(property)}
}

func (f *Factory) Binary(op string, left, right Node) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

func (f *Factory) Logical(op string, left, right Node) *LogicalExpression {
	return &LogicalExpression{Operator: op, Left: left, Right: right}
}

func (f *Factory) Unary(op string, arg Node) *UnaryExpression {
	return &UnaryExpression{Operator: op, Argument: arg}
}

func (f *Factory) Conditional(test, consequent, alternate Node) *ConditionalExpression {
	return &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
}

// Concat folds parts into a left-associative chain of "+" expressions.
func (f *Factory) Concat(parts ...Node) Node {
	if len(parts) == 0 {
		return f.String("")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out = f.Binary("+", out, p)
	}
	return out
}

// --- Statements ---

// Const creates `const name = init;`.
func (f *Factory) Const(name string, init Node) *VariableDeclaration {
	return f.Declaration("const", f.Identifier(name), init)
}

// Declaration creates a single-declarator variable declaration.
func (f *Factory) Declaration(kind string, id, init Node) *VariableDeclaration {
	return &VariableDeclaration{
		Kind:         kind,
		Declarations: []Node{&VariableDeclarator{ID: id, Init: init}},
	}
}

func (f *Factory) Return(arg Node) *ReturnStatement { return &ReturnStatement{Argument: arg} }

func (f *Factory) Block(body ...Node) *BlockStatement {
	if body == nil {
		body = []Node{}
	}
	return &BlockStatement{Body: body}
}

func (f *Factory) ExprStmt(e Node) *ExpressionStatement { return &ExpressionStatement{Expression: e} }

// --- Patterns ---

// PatternProperty creates `key: local` inside an object pattern.
func (f *Factory) PatternProperty(key, local string) *ObjectProperty {
	var k Node = f.Identifier(key)
	if !isIdentifierName(key) {
		k = f.String(key)
	}
	return &ObjectProperty{Key: k, Value: f.Identifier(local), Shorthand: key == local}
}

// --- JSX ---

// JSXAttr creates name={value} (or name="value" for string literals).
func (f *Factory) JSXAttr(name string, value Node) *JSXAttribute {
	if _, ok := value.(*StringLiteral); !ok && value != nil {
		if _, isContainer := value.(*JSXExpressionContainer); !isContainer {
			value = f.JSXContainer(value)
		}
	}
	return &JSXAttribute{Name: &JSXIdentifier{Name: name}, Value: value}
}

func (f *Factory) JSXContainer(e Node) *JSXExpressionContainer {
	return &JSXExpressionContainer{Expression: e}
}
