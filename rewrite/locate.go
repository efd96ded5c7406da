package rewrite

import "github.com/rubiojr/tmplvars/ast"

// FindComponent looks through the siblings of p for the declaration that
// binds name: a function declaration or a variable declarator, also when
// exported. Declarations are matched but never descended into. It
// returns the path of the component function, or nil.
//
// A declarator's function is its initializer, or the first function
// inside it for wrapped components such as memo(() => ...).
func FindComponent(p *ast.Path, name string) *ast.Path {
	for _, sib := range p.Siblings() {
		if fn, ok := sib.Node.(*ast.FunctionDeclaration); ok {
			if ast.IsIdentifier(fn.ID, name) {
				return sib
			}
			continue
		}
		var found *ast.Path
		sib.Traverse(ast.Visitor{
			"FunctionDeclaration": func(dp *ast.Path) {
				if found == nil && ast.IsIdentifier(dp.Node.(*ast.FunctionDeclaration).ID, name) {
					found = dp
				}
				dp.Skip()
			},
			"VariableDeclarator": func(dp *ast.Path) {
				if found == nil && ast.IsIdentifier(dp.Node.(*ast.VariableDeclarator).ID, name) {
					found = firstFunction(dp)
				}
				dp.Skip()
			},
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// firstFunction returns the declarator's function initializer.
func firstFunction(dp *ast.Path) *ast.Path {
	var fn *ast.Path
	dp.Traverse(ast.Visitor{
		"FunctionExpression":      func(p *ast.Path) { fn = firstOf(fn, p) },
		"ArrowFunctionExpression": func(p *ast.Path) { fn = firstOf(fn, p) },
	})
	return fn
}

func firstOf(cur, p *ast.Path) *ast.Path {
	p.Skip()
	if cur != nil {
		return cur
	}
	return p
}
