package rewrite

import "github.com/rubiojr/tmplvars/ast"

// Allocation maps original variable names to generated identifiers.
type Allocation struct {
	Names []string          // original names in input order
	IDs   map[string]string // original name -> generated identifier
}

// Allocate generates a scope-unique identifier for every variable, in
// input order. Identifiers never collide with names already in scope or
// with identifiers from earlier calls against the same scope.
func Allocate(scope *ast.Scope, vars []Var) Allocation {
	a := Allocation{IDs: make(map[string]string, len(vars))}
	for _, v := range vars {
		if _, dup := a.IDs[v.Name]; dup {
			continue
		}
		a.Names = append(a.Names, v.Name)
		a.IDs[v.Name] = scope.GenerateUID(v.Name)
	}
	return a
}

// Reverse returns the generated identifier -> original name mapping.
func (a Allocation) Reverse() map[string]string {
	out := make(map[string]string, len(a.IDs))
	for name, id := range a.IDs {
		out[id] = name
	}
	return out
}
