package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rubiojr/tmplvars/rewrite"
)

// Colors
var (
	errorColor   = lipgloss.Color("#ef4444")
	warningColor = lipgloss.Color("#f59e0b")
	successColor = lipgloss.Color("#10b981")
	mutedColor   = lipgloss.Color("#94a3b8")
)

type diagStyles struct {
	error   lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

func newDiagStyles(color bool) diagStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return diagStyles{error: plain, warning: plain, success: plain, muted: plain}
	}
	return diagStyles{
		error:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		warning: lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		success: lipgloss.NewStyle().Foreground(successColor),
		muted:   lipgloss.NewStyle().Foreground(mutedColor),
	}
}

// diagPrinter writes diagnostics and errors to the CLI's error stream.
type diagPrinter struct {
	w      io.Writer
	styles diagStyles
}

// newDiagPrinter colors output only when w is a terminal and neither
// --no-color nor NO_COLOR is set.
func newDiagPrinter(w io.Writer, noColor bool) *diagPrinter {
	color := false
	if f, ok := w.(*os.File); ok && !noColor && os.Getenv("NO_COLOR") == "" {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &diagPrinter{w: w, styles: newDiagStyles(color)}
}

func (p *diagPrinter) diagnostic(file string, d rewrite.Diagnostic) {
	loc := file
	if d.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%d:%d", file, d.Pos.Line, d.Pos.Col)
	}
	fmt.Fprintf(p.w, "%s: %s %s %s\n",
		loc,
		p.styles.warning.Render("warning:"),
		d.Message,
		p.styles.muted.Render("("+d.Code+")"))
}

func (p *diagPrinter) error(err error) {
	fmt.Fprintf(p.w, "%s %v\n", p.styles.error.Render("error:"), err)
}

func (p *diagPrinter) success(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.success.Render(fmt.Sprintf(format, args...)))
}
