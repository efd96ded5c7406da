package rewrite

import (
	"github.com/rubiojr/tmplvars/ast"
)

// Category is the kind of template variable.
type Category string

const (
	Replace Category = "replace"
	Control Category = "control"
	List    Category = "list"
)

// List child shapes.
const (
	ChildPrimitive = "primitive"
	ChildObject    = "object"
)

// ChildConfig describes the element shape of a list variable.
type ChildConfig struct {
	Type  string
	Props []string
}

// VarConfig is the optional configuration of a descriptor entry.
type VarConfig struct {
	Type    string
	Aliases []string
	Child   *ChildConfig
}

// ChildType returns the list child shape, primitive when unset.
func (c VarConfig) ChildType() string {
	if c.Child == nil || c.Child.Type == "" {
		return ChildPrimitive
	}
	return c.Child.Type
}

// Var is one normalized descriptor entry.
type Var struct {
	Name     string
	Category Category
	Config   VarConfig
	Pos      ast.Pos
}

// Descriptors holds the entries of one descriptor list split into their
// category queues, each in declaration order.
type Descriptors struct {
	Replace []Var
	Control []Var
	List    []Var
}

// Len returns the number of entries across all queues.
func (d *Descriptors) Len() int { return len(d.Replace) + len(d.Control) + len(d.List) }

// ParseDescriptors classifies the right-hand side of a descriptor
// assignment. It reports false when rhs is not an array literal of plain
// data; such statements are not descriptors and must be left alone.
//
// Entries are either a bare name or a [name, config] pair. Entries with
// an unrecognized shape or type are dropped and reported to r.
func ParseDescriptors(rhs ast.Node, r Reporter) (*Descriptors, bool) {
	arr, ok := rhs.(*ast.ArrayExpression)
	if !ok {
		return nil, false
	}
	if _, ok := ast.ToValue(arr); !ok {
		return nil, false
	}
	if r == nil {
		r = Discard
	}
	d := &Descriptors{}
	for _, el := range arr.Elements {
		if el == nil {
			continue
		}
		v, ok := normalizeEntry(el, r)
		if !ok {
			continue
		}
		switch v.Category {
		case Replace:
			d.Replace = append(d.Replace, v)
		case Control:
			d.Control = append(d.Control, v)
		case List:
			d.List = append(d.List, v)
		}
	}
	return d, true
}

// normalizeEntry turns a bare name into [name, {}] and decodes the config.
func normalizeEntry(el ast.Node, r Reporter) (Var, bool) {
	raw, _ := ast.ToValue(el)
	v := Var{Pos: el.Position()}
	var cfg map[string]any
	switch e := raw.(type) {
	case string:
		v.Name = e
	case []any:
		if len(e) == 0 || len(e) > 2 {
			report(r, v.Pos, CodeBadEntry, "descriptor entry must be a name or [name, config]")
			return v, false
		}
		name, ok := e[0].(string)
		if !ok {
			report(r, v.Pos, CodeBadEntry, "descriptor entry name must be a string")
			return v, false
		}
		v.Name = name
		if len(e) == 2 && e[1] != nil {
			if cfg, ok = e[1].(map[string]any); !ok {
				report(r, v.Pos, CodeBadEntry, "config of %q must be an object", name)
				return v, false
			}
		}
	default:
		report(r, v.Pos, CodeBadEntry, "descriptor entry must be a name or [name, config]")
		return v, false
	}
	if v.Name == "" || !ast.IsValidIdentifier(v.Name) {
		report(r, v.Pos, CodeBadEntry, "descriptor name %q is not an identifier", v.Name)
		return v, false
	}

	v.Config = decodeConfig(cfg)
	switch t, has := cfg["type"]; {
	case !has || t == nil:
		v.Category = Replace
	case t == string(Replace) || t == string(Control) || t == string(List):
		v.Category = Category(t.(string))
	default:
		report(r, v.Pos, CodeUnknownType, "template variable %q has unknown type %v", v.Name, t)
		return v, false
	}
	return v, true
}

func decodeConfig(cfg map[string]any) VarConfig {
	var c VarConfig
	if t, ok := cfg["type"].(string); ok {
		c.Type = t
	}
	c.Aliases = stringList(cfg["aliases"])
	if child, ok := cfg["child"].(map[string]any); ok {
		c.Child = &ChildConfig{Props: stringList(child["props"])}
		if t, ok := child["type"].(string); ok {
			c.Child.Type = t
		}
	}
	return c
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
