package rewrite

import (
	"fmt"

	"github.com/rubiojr/tmplvars/ast"
)

// Diagnostic codes.
const (
	CodeUnknownType       = "unknown-type"        // descriptor entry with an unrecognized type
	CodeBadEntry          = "bad-entry"           // descriptor entry that is not a name or [name, config]
	CodeUnknownChild      = "unknown-child"       // list child shape other than primitive/object
	CodeComponentNotFound = "component-not-found" // descriptor names no sibling declaration
	CodeUnsupportedParam  = "unsupported-param"   // props parameter cannot carry a context
)

// Diagnostic describes an irregularity that was skipped during a rewrite.
// Diagnostics never stop a rewrite.
type Diagnostic struct {
	Pos     ast.Pos
	Code    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s (%s)", d.Pos.Line, d.Pos.Col, d.Message, d.Code)
	}
	return fmt.Sprintf("%s (%s)", d.Message, d.Code)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// Collector records diagnostics in order. It is not safe for concurrent
// use; give each rewrite its own Collector.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) { c.Diagnostics = append(c.Diagnostics, d) }

// Codes returns the codes of the collected diagnostics in order.
func (c *Collector) Codes() []string {
	codes := make([]string, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}

func report(r Reporter, pos ast.Pos, code, format string, args ...any) {
	r.Report(Diagnostic{Pos: pos, Code: code, Message: fmt.Sprintf(format, args...)})
}
