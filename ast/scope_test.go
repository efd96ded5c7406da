package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUID(t *testing.T) {
	f := NewFactory()
	root := f.Block(
		f.Const("_title", f.Identifier("title")),
		f.ExprStmt(f.Identifier("_context")),
	)
	s := NewScope(root)

	assert.True(t, s.Has("title"))
	assert.False(t, s.IsUID("title"))

	assert.Equal(t, "_title2", s.GenerateUID("title"), "existing names are avoided")
	assert.Equal(t, "_title3", s.GenerateUID("title"), "earlier uids are avoided")
	assert.Equal(t, "_context2", s.GenerateUID("context"))
	assert.Equal(t, "_tags", s.GenerateUID("tags"))
	assert.True(t, s.IsUID("_tags"))
	assert.True(t, s.Has("_tags"))
}

func TestGenerateUIDNormalizesNames(t *testing.T) {
	s := NewScope(NewFactory().Block())
	tests := []struct {
		in, want string
	}{
		{"__private", "_private"},
		{"item2", "_item"},
		{"data-list", "_dataList"},
		{"9lives", "_lives"},
		{"", "_ref"},
		{"---", "_ref2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.GenerateUID(tt.in), "GenerateUID(%q)", tt.in)
	}
}
