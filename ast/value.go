package ast

import "strconv"

// ToValue converts a literal tree into plain Go data: strings, float64,
// bool, nil, []any and map[string]any. It reports false when any part of
// the tree is not a literal (identifiers other than undefined, calls,
// spreads, computed keys, ...).
func ToValue(n Node) (any, bool) {
	switch n := n.(type) {
	case *StringLiteral:
		return n.Value, true
	case *NumericLiteral:
		return n.Value, true
	case *BooleanLiteral:
		return n.Value, true
	case *NullLiteral:
		return nil, true
	case *Identifier:
		if n.Name == "undefined" {
			return nil, true
		}
		return nil, false
	case *ArrayExpression:
		out := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, ok := ToValue(el)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	case *ObjectExpression:
		out := make(map[string]any, len(n.Properties))
		for _, p := range n.Properties {
			prop, ok := p.(*ObjectProperty)
			if !ok || prop.Computed {
				return nil, false
			}
			key, ok := PropertyName(prop.Key)
			if !ok {
				return nil, false
			}
			v, ok := ToValue(prop.Value)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	}
	return nil, false
}

// PropertyName returns the static name of an object key.
func PropertyName(key Node) (string, bool) {
	switch k := key.(type) {
	case *Identifier:
		return k.Name, true
	case *StringLiteral:
		return k.Value, true
	case *NumericLiteral:
		return k.Raw, true
	}
	return "", false
}

// Operand is a typed argument extracted from a comparison expression.
type Operand struct {
	Kind  string // "identifier" or "literal"
	Value string
}

// Operand kinds.
const (
	OperandIdentifier = "identifier"
	OperandLiteral    = "literal"
)

// OperandOf describes n as an identifier or literal operand. Other shapes
// report false.
func OperandOf(n Node) (Operand, bool) {
	switch n := n.(type) {
	case *Identifier:
		if n.Name == "undefined" {
			return Operand{Kind: OperandLiteral, Value: "undefined"}, true
		}
		return Operand{Kind: OperandIdentifier, Value: n.Name}, true
	case *StringLiteral:
		return Operand{Kind: OperandLiteral, Value: n.Value}, true
	case *NumericLiteral:
		if n.Raw != "" {
			return Operand{Kind: OperandLiteral, Value: n.Raw}, true
		}
		return Operand{Kind: OperandLiteral, Value: strconv.FormatFloat(n.Value, 'g', -1, 64)}, true
	case *BooleanLiteral:
		return Operand{Kind: OperandLiteral, Value: strconv.FormatBool(n.Value)}, true
	case *NullLiteral:
		return Operand{Kind: OperandLiteral, Value: "null"}, true
	}
	return Operand{}, false
}

// ComparisonOperands extracts the operands of a binary comparison in
// left-to-right order, skipping operands that are neither identifiers nor
// literals.
func ComparisonOperands(b *BinaryExpression) []Operand {
	var out []Operand
	for _, side := range []Node{b.Left, b.Right} {
		if op, ok := OperandOf(side); ok {
			out = append(out, op)
		}
	}
	return out
}
