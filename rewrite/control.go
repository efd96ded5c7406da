package rewrite

import "github.com/rubiojr/tmplvars/ast"

// Control statement types.
const (
	IfTruthy   = "ifTruthy"
	IfFalsy    = "ifFalsy"
	IfEqual    = "ifEqual"
	IfNotEqual = "ifNotEqual"
)

// Classification is the result of classifying a conditional test.
// StatementType is empty when the test is not a recognized control
// expression.
type Classification struct {
	StatementType string
	Args          []ast.Operand
}

// OK reports whether the test was recognized.
func (c Classification) OK() bool { return c.StatementType != "" }

// controlShape extracts the operands of a test of one node type and maps
// it to a statement type ("" when the shape is recognized but its
// operator is not).
type controlShape func(n ast.Node) (statementType string, args []ast.Operand)

// controlShapes is the closed table of recognized test shapes, keyed by
// node type. New shapes are supported by adding entries.
var controlShapes = map[string]controlShape{
	"Identifier": func(n ast.Node) (string, []ast.Operand) {
		op, _ := ast.OperandOf(n)
		return IfTruthy, []ast.Operand{op}
	},
	"UnaryExpression": func(n ast.Node) (string, []ast.Operand) {
		u := n.(*ast.UnaryExpression)
		id, ok := u.Argument.(*ast.Identifier)
		if !ok {
			return "", nil
		}
		op, _ := ast.OperandOf(id)
		if u.Operator != "!" {
			return "", []ast.Operand{op}
		}
		return IfFalsy, []ast.Operand{op}
	},
	"BinaryExpression": func(n ast.Node) (string, []ast.Operand) {
		b := n.(*ast.BinaryExpression)
		args := ast.ComparisonOperands(b)
		if len(args) != 2 {
			return "", nil
		}
		switch b.Operator {
		case "===":
			return IfEqual, args
		case "!==":
			return IfNotEqual, args
		}
		return "", args
	},
}

// Classify recognizes a control expression. controls holds the control
// variable names; renamed maps generated identifiers back to their
// original names so tests that were already renamed still classify.
//
// Classification fails unless at least one extracted identifier operand
// names a control variable and the node shape maps to a statement type.
func Classify(test ast.Node, controls map[string]bool, renamed map[string]string) Classification {
	shape, ok := controlShapes[test.Type()]
	if !ok {
		return Classification{}
	}
	statementType, args := shape(test)

	known := 0
	out := make([]ast.Operand, len(args))
	for i, a := range args {
		if a.Kind == ast.OperandIdentifier {
			if orig, ok := renamed[a.Value]; ok {
				a.Value = orig
			}
			if controls[a.Value] {
				known++
			}
		}
		out[i] = a
	}
	if known == 0 || statementType == "" {
		return Classification{}
	}
	return Classification{StatementType: statementType, Args: out}
}
