package ast

import (
	"strconv"
	"strings"
	"unicode"
)

// Scope tracks the identifier names in use under a root node so new
// names can be generated without collisions.
type Scope struct {
	names map[string]bool
	uids  map[string]bool
}

// NewScope collects every Identifier name under root.
func NewScope(root Node) *Scope {
	s := &Scope{names: make(map[string]bool), uids: make(map[string]bool)}
	Inspect(root, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			s.names[id.Name] = true
		}
		return true
	})
	return s
}

// Has reports whether name is referenced, bound or already generated.
func (s *Scope) Has(name string) bool {
	return s.names[name] || s.uids[name]
}

// IsUID reports whether name was produced by GenerateUID.
func (s *Scope) IsUID(name string) bool { return s.uids[name] }

// GenerateUID returns a fresh identifier derived from name: "_name",
// then "_name2", "_name3", ... The result is reserved in the scope.
func (s *Scope) GenerateUID(name string) string {
	base := strings.TrimLeft(toIdentifier(name), "_")
	base = strings.TrimRightFunc(base, unicode.IsDigit)
	if base == "" {
		base = "ref"
	}
	for i := 1; ; i++ {
		uid := "_" + base
		if i > 1 {
			uid += strconv.Itoa(i)
		}
		if !s.Has(uid) {
			s.uids[uid] = true
			return uid
		}
	}
}

// toIdentifier turns an arbitrary string into a camel-cased identifier:
// invalid characters are dropped and the following letter is upper-cased.
func toIdentifier(name string) string {
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if !isIdentRune(r) {
			upper = sb.Len() > 0
			continue
		}
		if sb.Len() == 0 && unicode.IsDigit(r) {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
