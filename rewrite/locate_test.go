package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/parser"
)

// locate runs FindComponent from the top-level statement "Card.x = 1;".
func locate(t *testing.T, src string) *ast.Path {
	t.Helper()
	prog, err := parser.ParseFile("test.jsx", src+"\nCard.x = 1;\n")
	require.NoError(t, err)
	var found *ast.Path
	ran := false
	ast.Traverse(prog, ast.Visitor{
		"ExpressionStatement": func(p *ast.Path) {
			if _, top := p.ParentNode().(*ast.Program); !top {
				return
			}
			if _, _, ok := descriptorTarget(p.Node.(*ast.ExpressionStatement), "x"); ok {
				found = FindComponent(p, "Card")
				ran = true
			}
		},
	})
	require.True(t, ran)
	return found
}

func TestFindComponent(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"function declaration", "function Card() { return null; }", "FunctionDeclaration"},
		{"exported function", "export function Card() { return null; }", "FunctionDeclaration"},
		{"default export", "export default function Card() { return null; }", "FunctionDeclaration"},
		{"arrow", "const Card = () => null;", "ArrowFunctionExpression"},
		{"exported arrow", "export const Card = ({ a }) => a;", "ArrowFunctionExpression"},
		{"function expression", "const Card = function () { return null; };", "FunctionExpression"},
		{"wrapped", "const Card = memo(function Inner() { return null; });", "FunctionExpression"},
		{"wrapped arrow", "const Card = forwardRef((props, ref) => null);", "ArrowFunctionExpression"},
		{"second declarator", "let a = 1, Card = () => null;", "ArrowFunctionExpression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := locate(t, tt.src)
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Node.Type())
		})
	}
}

func TestFindComponentFirstFunctionOnly(t *testing.T) {
	p := locate(t, "const Card = wrap(() => () => 1, () => 2);")
	require.NotNil(t, p)
	arrow := p.Node.(*ast.ArrowFunctionExpression)
	_, nested := arrow.Body.(*ast.ArrowFunctionExpression)
	assert.True(t, nested, "the outermost first function is returned")
}

func TestFindComponentMisses(t *testing.T) {
	tests := map[string]string{
		"absent":          "function Other() { return null; }",
		"not a function":  "const Card = 1;",
		"nested binding":  "const Other = () => { const Card = () => 1; };",
		"nested function": "function Other() { function Card() {} }",
		"other name":      "const Cards = () => null;",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, locate(t, src))
		})
	}
}
