package ast

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

// IsValid reports whether the position was set by the parser.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Node is the interface for all syntax tree nodes. Type returns the
// node-shape name used to key visitors (e.g. "Identifier", "JSXElement").
type Node interface {
	Type() string
	Position() Pos
}

// BaseNode provides the source position shared by all nodes.
type BaseNode struct {
	Loc Pos // zero for synthesized nodes
}

func (b *BaseNode) Position() Pos { return b.Loc }

// --- Program & statements ---

// Program is the root node of a parsed module.
type Program struct {
	BaseNode
	Body       []Node
	SourceFile string // display path of the source file
}

// ImportDeclaration represents import specifiers from "source".
type ImportDeclaration struct {
	BaseNode
	Specifiers []Node // ImportSpecifier, ImportDefaultSpecifier, ImportNamespaceSpecifier
	Source     Node   // StringLiteral
}

// ImportSpecifier represents {imported as local}.
type ImportSpecifier struct {
	BaseNode
	Imported Node
	Local    Node
}

// ImportDefaultSpecifier represents the default binding of an import.
type ImportDefaultSpecifier struct {
	BaseNode
	Local Node
}

// ImportNamespaceSpecifier represents * as local.
type ImportNamespaceSpecifier struct {
	BaseNode
	Local Node
}

// ExportNamedDeclaration represents export <declaration> or
// export { specifiers } [from "source"].
type ExportNamedDeclaration struct {
	BaseNode
	Declaration Node   // nil for specifier lists
	Specifiers  []Node // ExportSpecifier
	Source      Node   // StringLiteral or nil
}

// ExportSpecifier represents local as exported.
type ExportSpecifier struct {
	BaseNode
	Local    Node
	Exported Node
}

// ExportDefaultDeclaration represents export default <declaration|expression>.
type ExportDefaultDeclaration struct {
	BaseNode
	Declaration Node
}

// VariableDeclaration represents const/let/var declarators.
type VariableDeclaration struct {
	BaseNode
	Kind         string // "const", "let" or "var"
	Declarations []Node // VariableDeclarator
}

// VariableDeclarator is one id = init pair of a declaration.
type VariableDeclarator struct {
	BaseNode
	ID   Node
	Init Node // nil when uninitialized
}

// FunctionDeclaration represents function name(params) { body }.
type FunctionDeclaration struct {
	BaseNode
	ID        Node // nil for anonymous default exports
	Params    []Node
	Body      Node // BlockStatement
	Async     bool
	Generator bool
}

// BlockStatement represents { body }.
type BlockStatement struct {
	BaseNode
	Body []Node
}

// ReturnStatement represents return [argument].
type ReturnStatement struct {
	BaseNode
	Argument Node // nil if bare return
}

// IfStatement represents if (test) consequent [else alternate].
type IfStatement struct {
	BaseNode
	Test       Node
	Consequent Node
	Alternate  Node // nil without else
}

// ExpressionStatement is a statement that is just an expression.
type ExpressionStatement struct {
	BaseNode
	Expression Node
}

// ForStatement represents for (init; test; update) body. Any of the
// header parts may be nil.
type ForStatement struct {
	BaseNode
	Init   Node // VariableDeclaration or expression
	Test   Node
	Update Node
	Body   Node
}

// ForInStatement represents for (left in right) body.
type ForInStatement struct {
	BaseNode
	Left  Node // VariableDeclaration or Identifier
	Right Node
	Body  Node
}

// ForOfStatement represents for [await] (left of right) body.
type ForOfStatement struct {
	BaseNode
	Left  Node
	Right Node
	Body  Node
	Await bool
}

type WhileStatement struct {
	BaseNode
	Test Node
	Body Node
}

type DoWhileStatement struct {
	BaseNode
	Body Node
	Test Node
}

// SwitchStatement represents switch (discriminant) { cases }.
type SwitchStatement struct {
	BaseNode
	Discriminant Node
	Cases        []Node // SwitchCase
}

// SwitchCase is one case clause; Test is nil for default.
type SwitchCase struct {
	BaseNode
	Test       Node
	Consequent []Node
}

// TryStatement represents try block [catch] [finally]. At least one of
// Handler and Finalizer is set.
type TryStatement struct {
	BaseNode
	Block     Node // BlockStatement
	Handler   Node // CatchClause or nil
	Finalizer Node // BlockStatement or nil
}

// CatchClause is catch [(param)] body.
type CatchClause struct {
	BaseNode
	Param Node // nil for a bare catch
	Body  Node
}

type ThrowStatement struct {
	BaseNode
	Argument Node
}

// BreakStatement is break [label].
type BreakStatement struct {
	BaseNode
	Label Node
}

// ContinueStatement is continue [label].
type ContinueStatement struct {
	BaseNode
	Label Node
}

// LabeledStatement is label: body.
type LabeledStatement struct {
	BaseNode
	Label Node
	Body  Node
}

type DebuggerStatement struct {
	BaseNode
}

// ClassDeclaration represents class Name [extends Super] { body }.
type ClassDeclaration struct {
	BaseNode
	ID         Node // nil for anonymous default exports
	SuperClass Node
	Body       []Node // MethodDefinition or PropertyDefinition
}

// ClassExpression is a class in expression position.
type ClassExpression struct {
	BaseNode
	ID         Node
	SuperClass Node
	Body       []Node
}

// MethodDefinition is a class method. Kind is "method", "get", "set" or
// "constructor".
type MethodDefinition struct {
	BaseNode
	Key      Node
	Value    Node // FunctionExpression
	Kind     string
	Static   bool
	Computed bool
}

// PropertyDefinition is a class field, key [= value].
type PropertyDefinition struct {
	BaseNode
	Key      Node
	Value    Node // nil without initializer
	Static   bool
	Computed bool
}

// --- Expressions ---

// Identifier is a variable reference or binding name.
type Identifier struct {
	BaseNode
	Name string
}

// StringLiteral is a quoted string with escapes already decoded.
type StringLiteral struct {
	BaseNode
	Value string
}

// NumericLiteral is a number. Raw keeps the source spelling.
type NumericLiteral struct {
	BaseNode
	Value float64
	Raw   string
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	BaseNode
	Value bool
}

// NullLiteral represents null.
type NullLiteral struct {
	BaseNode
}

// ThisExpression is the this keyword.
type ThisExpression struct {
	BaseNode
}

// Super is the super keyword in calls and member accesses.
type Super struct {
	BaseNode
}

// RegExpLiteral is /pattern/flags. Pattern keeps its source spelling.
type RegExpLiteral struct {
	BaseNode
	Pattern string
	Flags   string
}

// TemplateLiteral is `quasi${expr}quasi...`. Quasis keep their raw
// source text and always number len(Expressions)+1.
type TemplateLiteral struct {
	BaseNode
	Quasis      []string
	Expressions []Node
}

// ArrayExpression is [elem, ...].
type ArrayExpression struct {
	BaseNode
	Elements []Node
}

// ObjectExpression is {prop, ...}.
type ObjectExpression struct {
	BaseNode
	Properties []Node // ObjectProperty or SpreadElement
}

// ObjectProperty is key: value inside an object expression or pattern.
// Shorthand properties ({a}) carry distinct Key and Value nodes with
// the same name.
type ObjectProperty struct {
	BaseNode
	Key       Node
	Value     Node
	Computed  bool
	Shorthand bool
}

// SpreadElement is ...argument.
type SpreadElement struct {
	BaseNode
	Argument Node
}

// FunctionExpression is function [name](params) { body } in expression
// position. Object and class methods are FunctionExpressions without ID.
type FunctionExpression struct {
	BaseNode
	ID        Node
	Params    []Node
	Body      Node
	Async     bool
	Generator bool
}

// ArrowFunctionExpression is (params) => body. Body is either a
// BlockStatement or an expression.
type ArrowFunctionExpression struct {
	BaseNode
	Params []Node
	Body   Node
	Async  bool
}

// CallExpression is callee(arguments...). Optional marks callee?.(...).
type CallExpression struct {
	BaseNode
	Callee    Node
	Arguments []Node
	Optional  bool
}

// NewExpression is new callee(arguments...).
type NewExpression struct {
	BaseNode
	Callee    Node
	Arguments []Node
}

// MemberExpression is object.property or object[property]. Optional
// marks object?.property.
type MemberExpression struct {
	BaseNode
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

// UnaryExpression is operator argument (!x, -x, typeof x).
type UnaryExpression struct {
	BaseNode
	Operator string
	Argument Node
}

// UpdateExpression is ++x, x++, --x or x--.
type UpdateExpression struct {
	BaseNode
	Operator string
	Argument Node
	Prefix   bool
}

// BinaryExpression is left operator right for arithmetic and comparison.
type BinaryExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

// LogicalExpression is left (&& | || | ??) right.
type LogicalExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

// ConditionalExpression is test ? consequent : alternate.
type ConditionalExpression struct {
	BaseNode
	Test       Node
	Consequent Node
	Alternate  Node
}

// AssignmentExpression is left operator right (=, +=, ...).
type AssignmentExpression struct {
	BaseNode
	Operator string
	Left     Node
	Right    Node
}

// SequenceExpression is a, b, c.
type SequenceExpression struct {
	BaseNode
	Expressions []Node
}

// YieldExpression is yield [argument] or yield* argument.
type YieldExpression struct {
	BaseNode
	Argument Node // nil for a bare yield
	Delegate bool
}

// --- Patterns ---

// ObjectPattern is a destructuring {a, b: c} binding.
type ObjectPattern struct {
	BaseNode
	Properties []Node // ObjectProperty or RestElement
}

// ArrayPattern is a destructuring [a, b] binding.
type ArrayPattern struct {
	BaseNode
	Elements []Node
}

// AssignmentPattern is left = right (a binding with a default).
type AssignmentPattern struct {
	BaseNode
	Left  Node
	Right Node
}

// RestElement is ...argument in a pattern or parameter list.
type RestElement struct {
	BaseNode
	Argument Node
}

// --- JSX ---

// JSXElement is <Name attrs>children</Name>. Opening and closing tags
// are folded into one node; the closing tag mirrors Name.
type JSXElement struct {
	BaseNode
	Name        Node // JSXIdentifier or JSXMemberExpression
	Attributes  []Node
	Children    []Node
	SelfClosing bool
}

// JSXFragment is <>children</>.
type JSXFragment struct {
	BaseNode
	Children []Node
}

// JSXAttribute is name[=value]. Value is nil, a StringLiteral or a
// JSXExpressionContainer.
type JSXAttribute struct {
	BaseNode
	Name  Node // JSXIdentifier
	Value Node
}

// JSXSpreadAttribute is {...argument} in an attribute list.
type JSXSpreadAttribute struct {
	BaseNode
	Argument Node
}

// JSXIdentifier is a tag or attribute name.
type JSXIdentifier struct {
	BaseNode
	Name string
}

// JSXMemberExpression is a dotted tag name (Foo.Bar).
type JSXMemberExpression struct {
	BaseNode
	Object   Node
	Property Node
}

// JSXExpressionContainer is {expression} inside markup.
type JSXExpressionContainer struct {
	BaseNode
	Expression Node
}

// JSXEmptyExpression is the content of an empty {} container.
type JSXEmptyExpression struct {
	BaseNode
}

// JSXText is raw text between tags.
type JSXText struct {
	BaseNode
	Value string
}

func (*Program) Type() string                  { return "Program" }
func (*ImportDeclaration) Type() string        { return "ImportDeclaration" }
func (*ImportSpecifier) Type() string          { return "ImportSpecifier" }
func (*ImportDefaultSpecifier) Type() string   { return "ImportDefaultSpecifier" }
func (*ImportNamespaceSpecifier) Type() string { return "ImportNamespaceSpecifier" }
func (*ExportNamedDeclaration) Type() string   { return "ExportNamedDeclaration" }
func (*ExportDefaultDeclaration) Type() string { return "ExportDefaultDeclaration" }
func (*ExportSpecifier) Type() string          { return "ExportSpecifier" }
func (*VariableDeclaration) Type() string      { return "VariableDeclaration" }
func (*VariableDeclarator) Type() string       { return "VariableDeclarator" }
func (*FunctionDeclaration) Type() string      { return "FunctionDeclaration" }
func (*BlockStatement) Type() string           { return "BlockStatement" }
func (*ReturnStatement) Type() string          { return "ReturnStatement" }
func (*IfStatement) Type() string              { return "IfStatement" }
func (*ExpressionStatement) Type() string      { return "ExpressionStatement" }
func (*ForStatement) Type() string             { return "ForStatement" }
func (*ForInStatement) Type() string           { return "ForInStatement" }
func (*ForOfStatement) Type() string           { return "ForOfStatement" }
func (*WhileStatement) Type() string           { return "WhileStatement" }
func (*DoWhileStatement) Type() string         { return "DoWhileStatement" }
func (*SwitchStatement) Type() string          { return "SwitchStatement" }
func (*SwitchCase) Type() string               { return "SwitchCase" }
func (*TryStatement) Type() string             { return "TryStatement" }
func (*CatchClause) Type() string              { return "CatchClause" }
func (*ThrowStatement) Type() string           { return "ThrowStatement" }
func (*BreakStatement) Type() string           { return "BreakStatement" }
func (*ContinueStatement) Type() string        { return "ContinueStatement" }
func (*LabeledStatement) Type() string         { return "LabeledStatement" }
func (*DebuggerStatement) Type() string        { return "DebuggerStatement" }
func (*ClassDeclaration) Type() string         { return "ClassDeclaration" }
func (*ClassExpression) Type() string          { return "ClassExpression" }
func (*MethodDefinition) Type() string         { return "MethodDefinition" }
func (*PropertyDefinition) Type() string       { return "PropertyDefinition" }
func (*Super) Type() string                    { return "Super" }
func (*RegExpLiteral) Type() string            { return "RegExpLiteral" }
func (*SequenceExpression) Type() string       { return "SequenceExpression" }
func (*YieldExpression) Type() string          { return "YieldExpression" }
func (*Identifier) Type() string               { return "Identifier" }
func (*StringLiteral) Type() string            { return "StringLiteral" }
func (*NumericLiteral) Type() string           { return "NumericLiteral" }
func (*BooleanLiteral) Type() string           { return "BooleanLiteral" }
func (*NullLiteral) Type() string              { return "NullLiteral" }
func (*ThisExpression) Type() string           { return "ThisExpression" }
func (*TemplateLiteral) Type() string          { return "TemplateLiteral" }
func (*ArrayExpression) Type() string          { return "ArrayExpression" }
func (*ObjectExpression) Type() string         { return "ObjectExpression" }
func (*ObjectProperty) Type() string           { return "ObjectProperty" }
func (*SpreadElement) Type() string            { return "SpreadElement" }
func (*FunctionExpression) Type() string       { return "FunctionExpression" }
func (*ArrowFunctionExpression) Type() string  { return "ArrowFunctionExpression" }
func (*CallExpression) Type() string           { return "CallExpression" }
func (*NewExpression) Type() string            { return "NewExpression" }
func (*MemberExpression) Type() string         { return "MemberExpression" }
func (*UnaryExpression) Type() string          { return "UnaryExpression" }
func (*UpdateExpression) Type() string         { return "UpdateExpression" }
func (*BinaryExpression) Type() string         { return "BinaryExpression" }
func (*LogicalExpression) Type() string        { return "LogicalExpression" }
func (*ConditionalExpression) Type() string    { return "ConditionalExpression" }
func (*AssignmentExpression) Type() string     { return "AssignmentExpression" }
func (*ObjectPattern) Type() string            { return "ObjectPattern" }
func (*ArrayPattern) Type() string             { return "ArrayPattern" }
func (*AssignmentPattern) Type() string        { return "AssignmentPattern" }
func (*RestElement) Type() string              { return "RestElement" }
func (*JSXElement) Type() string               { return "JSXElement" }
func (*JSXFragment) Type() string              { return "JSXFragment" }
func (*JSXAttribute) Type() string             { return "JSXAttribute" }
func (*JSXSpreadAttribute) Type() string       { return "JSXSpreadAttribute" }
func (*JSXIdentifier) Type() string            { return "JSXIdentifier" }
func (*JSXMemberExpression) Type() string      { return "JSXMemberExpression" }
func (*JSXExpressionContainer) Type() string   { return "JSXExpressionContainer" }
func (*JSXEmptyExpression) Type() string       { return "JSXEmptyExpression" }
func (*JSXText) Type() string                  { return "JSXText" }
