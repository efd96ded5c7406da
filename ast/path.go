package ast

// VisitFunc is called when the traversal enters a node.
type VisitFunc func(p *Path)

// Visitor maps node type names (see Node.Type) to enter callbacks.
type Visitor map[string]VisitFunc

// maxRequeue bounds how often a single path is re-entered after its node
// is replaced within its own callbacks.
const maxRequeue = 32

// Path is a handle on a node and its position in the tree. Callbacks use
// it to inspect ancestors and to edit the tree in place.
type Path struct {
	Node   Node
	Parent *Path
	Key    string // field name in the parent, e.g. "body" or "test"

	ptr   *Node   // single-field slot
	list  *[]Node // list slot
	index int

	state   *traversal
	removed bool
	skipped bool
}

type traversal struct {
	visitor Visitor
	scope   *Scope
}

// Traverse walks the tree rooted at root depth-first and calls the
// visitor's callbacks on entry to every node, root included. A scope
// holding every identifier name under root is created for uid generation.
//
// Editing semantics:
//   - a node replaced through ReplaceWith is entered again
//   - removed nodes are not descended into
//   - nodes inserted after the current list element are visited;
//     nodes inserted before it are not
//   - when an ancestor is replaced from within a descendant's callback,
//     the ancestor's replacement is traversed once the descendant returns
func Traverse(root Node, v Visitor) *Path {
	p := &Path{Node: root, state: &traversal{visitor: v, scope: NewScope(root)}}
	p.state.visit(p)
	return p
}

// Traverse walks the descendants of p (not p itself) with a different
// visitor, sharing p's scope.
func (p *Path) Traverse(v Visitor) {
	t := &traversal{visitor: v, scope: p.Scope()}
	t.visitChildren(p, p.Node)
}

// Scope returns the scope used for uid generation.
func (p *Path) Scope() *Scope {
	if p.state == nil {
		p.state = &traversal{scope: NewScope(p.Node)}
	}
	return p.state.scope
}

// ParentNode returns the parent's node, or nil at the root.
func (p *Path) ParentNode() Node {
	if p.Parent == nil {
		return nil
	}
	return p.Parent.Node
}

// InList reports whether the node sits in a list slot (statement body,
// JSX children, arguments, ...).
func (p *Path) InList() bool { return p.list != nil }

// Index returns the position in the parent list, or -1.
func (p *Path) Index() int {
	if p.list == nil {
		return -1
	}
	return p.index
}

// Removed reports whether the node was removed from the tree.
func (p *Path) Removed() bool { return p.removed }

// Skip prevents traversal of the current node's children.
func (p *Path) Skip() { p.skipped = true }

// ReplaceWith puts n where the current node was. The new node is
// traversed afterwards.
func (p *Path) ReplaceWith(n Node) {
	switch {
	case p.ptr != nil:
		*p.ptr = n
	case p.list != nil:
		(*p.list)[p.index] = n
	}
	p.Node = n
}

// Remove detaches the current node. For single-field slots the field is
// cleared.
func (p *Path) Remove() {
	switch {
	case p.ptr != nil:
		*p.ptr = nil
	case p.list != nil:
		l := *p.list
		*p.list = append(l[:p.index:p.index], l[p.index+1:]...)
	}
	p.removed = true
}

// InsertBefore places nodes immediately before the current list element.
// It reports false when the node is not in a list.
func (p *Path) InsertBefore(nodes ...Node) bool {
	if p.list == nil {
		return false
	}
	*p.list = spliceNodes(*p.list, p.index, nodes)
	p.index += len(nodes)
	return true
}

// InsertAfter places nodes immediately after the current list element.
// It reports false when the node is not in a list.
func (p *Path) InsertAfter(nodes ...Node) bool {
	if p.list == nil {
		return false
	}
	*p.list = spliceNodes(*p.list, p.index+1, nodes)
	return true
}

// UnshiftContainer prepends nodes to the list field key of the current
// node (e.g. "body" of a BlockStatement). It reports false when the node
// has no such list.
func (p *Path) UnshiftContainer(key string, nodes ...Node) bool {
	for _, s := range slots(p.Node) {
		if s.key == key && s.isList() {
			*s.list = spliceNodes(*s.list, 0, nodes)
			return true
		}
	}
	return false
}

// FindParent walks up at most maxDepth ancestors and returns the first one
// matching pred. A maxDepth of zero or less means unbounded.
func (p *Path) FindParent(pred func(*Path) bool, maxDepth int) *Path {
	depth := 0
	for cur := p.Parent; cur != nil; cur = cur.Parent {
		depth++
		if maxDepth > 0 && depth > maxDepth {
			return nil
		}
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// Siblings returns paths for the other elements of the list the current
// node sits in, in order. The returned paths share the current traversal.
func (p *Path) Siblings() []*Path {
	if p.list == nil {
		return nil
	}
	var out []*Path
	for i, n := range *p.list {
		if i == p.index || n == nil {
			continue
		}
		out = append(out, &Path{Node: n, Parent: p.Parent, Key: p.Key, list: p.list, index: i, state: p.state})
	}
	return out
}

func spliceNodes(list []Node, at int, nodes []Node) []Node {
	out := make([]Node, 0, len(list)+len(nodes))
	out = append(out, list[:at]...)
	out = append(out, nodes...)
	return append(out, list[at:]...)
}

func (t *traversal) visit(p *Path) {
	for i := 0; i < maxRequeue; i++ {
		node := p.Node
		if fn := t.visitor[node.Type()]; fn != nil {
			fn(p)
		}
		if p.removed || p.skipped || p.Node == nil {
			return
		}
		if p.Node == node {
			break
		}
	}
	node := p.Node
	t.visitChildren(p, node)
	if p.removed || p.Node == nil || p.Node == node {
		return
	}
	t.visit(p)
}

func (t *traversal) visitChildren(p *Path, node Node) {
	for _, s := range slots(node) {
		if p.Node != node || p.removed {
			return
		}
		if !s.isList() {
			if s.get() == nil {
				continue
			}
			t.visit(&Path{Node: s.get(), Parent: p, Key: s.key, ptr: s.ptr, state: t})
			continue
		}
		for i := 0; i < len(*s.list); i++ {
			child := (*s.list)[i]
			if child == nil {
				continue
			}
			cp := &Path{Node: child, Parent: p, Key: s.key, list: s.list, index: i, state: t}
			t.visit(cp)
			if p.Node != node || p.removed {
				return
			}
			i = cp.index
			if cp.removed {
				i--
			}
		}
	}
}
