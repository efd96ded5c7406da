package ast

import "strings"

// Transform rewrites a program. Implementations may edit the tree in place
// and return the same program.
type Transform interface {
	Name() string
	Transform(prog *Program) *Program
}

// TransformFunc is a Transform backed by a function.
type TransformFunc struct {
	N string
	F func(*Program) *Program
}

func (t TransformFunc) Name() string                     { return t.N }
func (t TransformFunc) Transform(prog *Program) *Program { return t.F(prog) }

// Chain runs transforms in order, feeding each the program returned by
// the previous one. The chain is named after its members, joined by "+".
func Chain(transforms ...Transform) Transform {
	names := make([]string, len(transforms))
	for i, t := range transforms {
		names[i] = t.Name()
	}
	name := strings.Join(names, "+")
	if name == "" {
		name = "chain"
	}
	return TransformFunc{
		N: name,
		F: func(prog *Program) *Program {
			for _, t := range transforms {
				prog = t.Transform(prog)
			}
			return prog
		},
	}
}

// Prepend returns a transform that inserts stmts at the top of the
// program body, after any leading imports.
func Prepend(name string, stmts ...Node) Transform {
	return TransformFunc{
		N: name,
		F: func(prog *Program) *Program {
			if len(stmts) == 0 {
				return prog
			}
			at := 0
			for at < len(prog.Body) {
				if _, ok := prog.Body[at].(*ImportDeclaration); !ok {
					break
				}
				at++
			}
			prog.Body = spliceNodes(prog.Body, at, stmts)
			return prog
		},
	}
}
