package ast

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// reservedWords cannot be used as identifiers.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "yield": true, "await": true, "enum": true,
}

// IsReservedWord reports whether name is a JS reserved word.
func IsReservedWord(name string) bool { return reservedWords[name] }

// IsValidIdentifier reports whether name can be written as a bare identifier.
func IsValidIdentifier(name string) bool {
	if name == "" || reservedWords[name] {
		return false
	}
	for i, r := range name {
		if !isIdentRune(r) || (i == 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// isIdentifierName reports whether name can follow a "." or be an
// unquoted object key. Reserved words qualify.
func isIdentifierName(name string) bool {
	return IsValidIdentifier(name) || reservedWords[name]
}

// IsIdentifier reports whether n is an Identifier, optionally with one of
// the given names.
func IsIdentifier(n Node, names ...string) bool {
	id, ok := n.(*Identifier)
	if !ok {
		return false
	}
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if id.Name == name {
			return true
		}
	}
	return false
}

// IsFunction reports whether n is a function declaration or expression.
func IsFunction(n Node) bool {
	switch n.(type) {
	case *FunctionDeclaration, *FunctionExpression, *ArrowFunctionExpression:
		return true
	}
	return false
}

// IsPattern reports whether n is a destructuring or binding pattern node.
func IsPattern(n Node) bool {
	switch n.(type) {
	case *ObjectPattern, *ArrayPattern, *AssignmentPattern, *RestElement:
		return true
	}
	return false
}

// MemberCallee returns the member expression and static method name when
// n is a call of the form object.method(...).
func MemberCallee(n Node) (*MemberExpression, string, bool) {
	call, ok := n.(*CallExpression)
	if !ok {
		return nil, "", false
	}
	m, ok := call.Callee.(*MemberExpression)
	if !ok || m.Computed {
		return nil, "", false
	}
	prop, ok := m.Property.(*Identifier)
	if !ok {
		return nil, "", false
	}
	return m, prop.Name, true
}

// IsMemberCall reports whether n is object.method(...) for one of methods.
func IsMemberCall(n Node, methods ...string) bool {
	_, name, ok := MemberCallee(n)
	if !ok {
		return false
	}
	for _, m := range methods {
		if m == name {
			return true
		}
	}
	return false
}

// JSXName renders a JSX element name ("div", "Foo.Bar").
func JSXName(n Node) string {
	switch n := n.(type) {
	case *JSXIdentifier:
		return n.Name
	case *JSXMemberExpression:
		return JSXName(n.Object) + "." + JSXName(n.Property)
	}
	return ""
}

// IsComponentElement reports whether n is markup that invokes a component
// rather than a host element: a dotted name or a capitalized identifier.
func IsComponentElement(n Node) bool {
	el, ok := n.(*JSXElement)
	if !ok {
		return false
	}
	switch name := el.Name.(type) {
	case *JSXMemberExpression:
		return true
	case *JSXIdentifier:
		r, _ := utf8.DecodeRuneInString(name.Name)
		return unicode.IsUpper(r)
	}
	return false
}

// textInputTypes are the <input type> values whose live value is hidden
// from serialized markup.
var textInputTypes = map[string]bool{
	"": true, "text": true, "email": true, "search": true, "tel": true,
	"url": true, "password": true, "number": true,
}

// IsTextInputElement reports whether n is a <textarea> or a text-like
// <input>.
func IsTextInputElement(n Node) bool {
	el, ok := n.(*JSXElement)
	if !ok {
		return false
	}
	id, ok := el.Name.(*JSXIdentifier)
	if !ok {
		return false
	}
	switch atom.Lookup([]byte(id.Name)) {
	case atom.Textarea:
		return true
	case atom.Input:
		attr := FindJSXAttribute(el, "type")
		if attr == nil || attr.Value == nil {
			return true
		}
		if s, ok := attr.Value.(*StringLiteral); ok {
			return textInputTypes[strings.ToLower(s.Value)]
		}
		// Dynamic type: assume it may be a text input.
		return true
	}
	return false
}

// FindJSXAttribute returns the attribute named name on el, or nil.
func FindJSXAttribute(el *JSXElement, name string) *JSXAttribute {
	for _, a := range el.Attributes {
		attr, ok := a.(*JSXAttribute)
		if !ok {
			continue
		}
		if id, ok := attr.Name.(*JSXIdentifier); ok && id.Name == name {
			return attr
		}
	}
	return nil
}
