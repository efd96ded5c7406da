package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestToValue(t *testing.T) {
	f := NewFactory()
	tree := f.Array(
		f.String("title"),
		f.Array(f.String("tags"), f.Object(
			f.Property("type", f.String("list")),
			f.Property("child", f.Object(
				f.Property("type", f.String("object")),
				f.Property("props", f.Strings("name", "url")),
			)),
			f.Property("count", f.Number(2)),
			f.Property("on", f.Bool(true)),
			f.Property("none", f.Null()),
			f.Property("missing", f.Identifier("undefined")),
		)),
	)
	got, ok := ToValue(tree)
	assert.True(t, ok)
	want := []any{
		"title",
		[]any{"tags", map[string]any{
			"type": "list",
			"child": map[string]any{
				"type":  "object",
				"props": []any{"name", "url"},
			},
			"count":   2.0,
			"on":      true,
			"none":    nil,
			"missing": nil,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToValue mismatch (-want +got):\n%s", diff)
	}
}

func TestToValueRejectsNonLiterals(t *testing.T) {
	f := NewFactory()
	tests := map[string]Node{
		"identifier": f.Array(f.Identifier("names")),
		"call":       f.Array(f.CallNamed("load")),
		"spread":     f.Array(&SpreadElement{Argument: f.Identifier("rest")}),
		"computed":   f.Object(&ObjectProperty{Key: f.Identifier("k"), Value: f.Null(), Computed: true}),
		"hole":       &ArrayExpression{Elements: []Node{nil}},
	}
	for name, n := range tests {
		_, ok := ToValue(n)
		assert.False(t, ok, name)
	}
}

func TestOperandOf(t *testing.T) {
	f := NewFactory()
	tests := []struct {
		node Node
		want Operand
		ok   bool
	}{
		{f.Identifier("status"), Operand{OperandIdentifier, "status"}, true},
		{f.Identifier("undefined"), Operand{OperandLiteral, "undefined"}, true},
		{f.String("done"), Operand{OperandLiteral, "done"}, true},
		{f.Number(3), Operand{OperandLiteral, "3"}, true},
		{&NumericLiteral{Value: 16, Raw: "0x10"}, Operand{OperandLiteral, "0x10"}, true},
		{f.Bool(false), Operand{OperandLiteral, "false"}, true},
		{f.Null(), Operand{OperandLiteral, "null"}, true},
		{f.Member(f.Identifier("a"), "b"), Operand{}, false},
	}
	for _, tt := range tests {
		got, ok := OperandOf(tt.node)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestComparisonOperands(t *testing.T) {
	f := NewFactory()
	b := f.Binary("===", f.Identifier("status"), f.String("done"))
	assert.Equal(t, []Operand{
		{OperandIdentifier, "status"},
		{OperandLiteral, "done"},
	}, ComparisonOperands(b))

	b = f.Binary("===", f.Member(f.Identifier("a"), "b"), f.Identifier("mode"))
	assert.Equal(t, []Operand{{OperandIdentifier, "mode"}}, ComparisonOperands(b))
}
