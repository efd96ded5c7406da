// Package rewrite turns JSX components into template sources.
//
// A component opts in with a descriptor statement next to its
// declaration:
//
//	Card.templateVars = ['title', ['visible', {type: 'control'}], ['tags', {type: 'list'}]]
//
// Rewrite removes the statement and rewrites Card in one walk:
// replace variables become value markers, control variables turn
// guarded and ternary markup into always-rendered markup bracketed by
// control markers, and list variables become one-element stand-ins whose
// markup is bracketed by list markers. Nested components receive a render
// context that is incremented inside repeated blocks.
package rewrite

import (
	"github.com/rubiojr/tmplvars/ast"
)

// Component summarizes the rewrite of one descriptor statement.
type Component struct {
	Name        string
	Found       bool
	Descriptors *Descriptors
	Pos         ast.Pos // position of the descriptor statement

	// Context is the generated context identifier; Replace and Lists map
	// original names to generated identifiers. Empty when not found.
	Context string
	Replace Allocation
	Lists   Allocation

	fn     ast.Node
	repeat []string
}

// Result lists the components rewritten in a program, in source order.
type Result struct {
	Components []*Component
}

// Rewritten reports whether at least one component was found and
// rewritten.
func (r *Result) Rewritten() bool {
	for _, c := range r.Components {
		if c.Found {
			return true
		}
	}
	return false
}

// Rewrite rewrites every component of prog that has a descriptor
// statement. The program is edited in place.
func Rewrite(prog *ast.Program, opts Options) *Result {
	opts = opts.withDefaults()
	res := &Result{}
	ast.Traverse(prog, ast.Visitor{
		"ExpressionStatement": func(p *ast.Path) {
			if comp := rewriteDescriptor(p, opts); comp != nil {
				res.Components = append(res.Components, comp)
			}
		},
	})
	return res
}

// Transform returns Rewrite as a named program transform.
func Transform(opts Options) ast.Transform {
	return ast.TransformFunc{
		N: "templatevars",
		F: func(prog *ast.Program) *ast.Program {
			Rewrite(prog, opts)
			return prog
		},
	}
}

// descriptorTarget returns the component name when stmt is
// <Name>.<property> = <rhs>.
func descriptorTarget(stmt *ast.ExpressionStatement, property string) (string, ast.Node, bool) {
	assign, ok := stmt.Expression.(*ast.AssignmentExpression)
	if !ok || assign.Operator != "=" {
		return "", nil, false
	}
	member, ok := assign.Left.(*ast.MemberExpression)
	if !ok || member.Computed || !ast.IsIdentifier(member.Property, property) {
		return "", nil, false
	}
	obj, ok := member.Object.(*ast.Identifier)
	if !ok {
		return "", nil, false
	}
	return obj.Name, assign.Right, true
}

func rewriteDescriptor(p *ast.Path, opts Options) *Component {
	stmt := p.Node.(*ast.ExpressionStatement)
	name, rhs, ok := descriptorTarget(stmt, opts.DescriptorProperty)
	if !ok {
		return nil
	}
	desc, ok := ParseDescriptors(rhs, opts.Reporter)
	if !ok {
		return nil
	}
	comp := &Component{Name: name, Descriptors: desc, Pos: stmt.Position()}
	if fnPath := FindComponent(p, name); fnPath != nil {
		c := newComponent(name, fnPath, desc, opts)
		c.rewrite(fnPath)
		comp.Found = true
		comp.Context = c.m.ctx
		comp.Replace = c.replace
		comp.Lists = c.lists
		comp.fn = c.fn
		comp.repeat = opts.RepeatMethods
	} else {
		report(opts.Reporter, stmt.Position(), CodeComponentNotFound, "component %s not found next to its %s", name, opts.DescriptorProperty)
	}
	p.Remove()
	return comp
}
