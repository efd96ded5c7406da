package rewrite

import (
	"fmt"
	"strings"

	"github.com/rubiojr/tmplvars/ast"
)

// Residual is an original replace or list name still referenced in a
// rewritten component.
type Residual struct {
	Component string
	Name      string
	Pos       ast.Pos
}

// Residuals walks the rewritten components again and returns the
// references that a second rewrite would still rename. A complete rewrite
// has none.
func (r *Result) Residuals() []Residual {
	var out []Residual
	for _, comp := range r.Components {
		if !comp.Found || comp.fn == nil {
			continue
		}
		ast.Traverse(comp.fn, ast.Visitor{
			"Identifier": func(p *ast.Path) {
				name := p.Node.(*ast.Identifier).Name
				_, isReplace := comp.Replace.IDs[name]
				_, isList := comp.Lists.IDs[name]
				if !isReplace && !isList {
					return
				}
				if isExcluded(p) && !(isList && isRepeatReceiver(p, comp.repeat)) {
					return
				}
				out = append(out, Residual{Component: comp.Name, Name: name, Pos: p.Node.Position()})
			},
		})
	}
	return out
}

// isRepeatReceiver reports whether p is the object of a repeat call, the
// one member position list names are renamed in.
func isRepeatReceiver(p *ast.Path, methods []string) bool {
	return p.Key == "object" && p.Parent != nil && p.Parent.Key == "callee" && ast.IsMemberCall(p.Parent.ParentNode(), methods...)
}

// ResidualCheck returns a check that fails when res has residual
// references.
func ResidualCheck(res *Result) ast.Check {
	return ast.CheckFunc{
		N: "residuals",
		F: func(*ast.Program) error {
			rs := res.Residuals()
			if len(rs) == 0 {
				return nil
			}
			var parts []string
			for _, r := range rs {
				parts = append(parts, fmt.Sprintf("%s.%s at %d:%d", r.Component, r.Name, r.Pos.Line, r.Pos.Col))
			}
			return fmt.Errorf("unrenamed template variables: %s", strings.Join(parts, ", "))
		},
	}
}
