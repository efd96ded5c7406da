package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryMember(t *testing.T) {
	f := NewFactory()

	m := f.Member(f.Identifier("props"), "__context__")
	assert.False(t, m.Computed)
	assert.True(t, IsIdentifier(m.Property, "__context__"))

	m = f.Member(f.Identifier("props"), "data-context")
	assert.True(t, m.Computed)
	require.IsType(t, &StringLiteral{}, m.Property)
	assert.Equal(t, "data-context", m.Property.(*StringLiteral).Value)

	// Reserved words are fine after a dot.
	m = f.Member(f.Identifier("props"), "default")
	assert.False(t, m.Computed)
}

func TestFactoryProperty(t *testing.T) {
	f := NewFactory()

	p := f.Property("type", f.String("identifier"))
	assert.True(t, IsIdentifier(p.Key, "type"))
	assert.False(t, p.Shorthand)

	p = f.Property("aria-label", f.Null())
	assert.IsType(t, &StringLiteral{}, p.Key)
}

func TestFactoryPatternProperty(t *testing.T) {
	f := NewFactory()

	p := f.PatternProperty("__context__", "_parentContext")
	assert.False(t, p.Shorthand)
	assert.True(t, IsIdentifier(p.Value, "_parentContext"))

	p = f.PatternProperty("ctx", "ctx")
	assert.True(t, p.Shorthand)
}

func TestFactoryConcat(t *testing.T) {
	f := NewFactory()

	empty := f.Concat()
	assert.Equal(t, &StringLiteral{Value: ""}, empty)

	single := f.Identifier("a")
	assert.Same(t, single, f.Concat(single))

	out := f.Concat(f.Identifier("a"), f.Identifier("b"), f.Identifier("c"))
	top, ok := out.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", top.Operator)
	assert.True(t, IsIdentifier(top.Right, "c"))
	left, ok := top.Left.(*BinaryExpression)
	require.True(t, ok, "concatenation is left-associative")
	assert.True(t, IsIdentifier(left.Left, "a"))
	assert.True(t, IsIdentifier(left.Right, "b"))
}

func TestFactoryEmptyLists(t *testing.T) {
	f := NewFactory()
	assert.NotNil(t, f.Array().Elements)
	assert.NotNil(t, f.Object().Properties)
	assert.NotNil(t, f.Call(f.Identifier("fn")).Arguments)
	assert.NotNil(t, f.Block().Body)
}

func TestFactoryConst(t *testing.T) {
	f := NewFactory()
	decl := f.Const("_title", f.String("x"))
	assert.Equal(t, "const", decl.Kind)
	require.Len(t, decl.Declarations, 1)
	vd := decl.Declarations[0].(*VariableDeclarator)
	assert.True(t, IsIdentifier(vd.ID, "_title"))
}

func TestFactoryJSXAttr(t *testing.T) {
	f := NewFactory()

	a := f.JSXAttr("__context__", f.Identifier("_context"))
	require.IsType(t, &JSXExpressionContainer{}, a.Value)

	a = f.JSXAttr("id", f.String("main"))
	assert.IsType(t, &StringLiteral{}, a.Value)

	a = f.JSXAttr("disabled", nil)
	assert.Nil(t, a.Value)
}
