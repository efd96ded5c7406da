package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rubiojr/tmplvars/ast"
	"github.com/rubiojr/tmplvars/config"
	"github.com/rubiojr/tmplvars/parser"
	"github.com/rubiojr/tmplvars/printer"
	"github.com/rubiojr/tmplvars/rewrite"
)

// pipeline parses, rewrites and prints one file at a time. It is safe for
// concurrent use; every call builds its own tree and collector.
type pipeline struct {
	cfg     *config.Config
	prelude []ast.Node
}

type fileResult struct {
	file   string
	output string
	result *rewrite.Result
	diags  []rewrite.Diagnostic
	err    error
}

func newPipeline(cfg *config.Config, preludePath string) (*pipeline, error) {
	pl := &pipeline{cfg: cfg}
	if preludePath == "" {
		preludePath = cfg.Output.Prelude
	}
	if preludePath == "" {
		return pl, nil
	}
	src, err := os.ReadFile(preludePath)
	if err != nil {
		return nil, fmt.Errorf("reading prelude: %w", err)
	}
	stmts, err := parser.ParseStatements(string(src))
	if err != nil {
		return nil, fmt.Errorf("prelude %s: %w", preludePath, err)
	}
	pl.prelude = stmts
	return pl, nil
}

func (pl *pipeline) process(file string) fileResult {
	src, err := os.ReadFile(file)
	if err != nil {
		return fileResult{file: file, err: fmt.Errorf("reading %s: %w", file, err)}
	}
	return pl.transform(file, src)
}

func (pl *pipeline) transform(file string, src []byte) fileResult {
	r := fileResult{file: file}
	prog, err := parser.ParseFile(file, string(src))
	if err != nil {
		r.err = err
		return r
	}

	var diags rewrite.Collector
	opts := pl.cfg.Options(&diags)
	prog = ast.Chain(
		ast.TransformFunc{N: "templatevars", F: func(p *ast.Program) *ast.Program {
			r.result = rewrite.Rewrite(p, opts)
			return p
		}},
		ast.TransformFunc{N: "prelude", F: func(p *ast.Program) *ast.Program {
			if !r.result.Rewritten() || len(pl.prelude) == 0 {
				return p
			}
			return ast.Prepend("prelude", pl.preludeCopy()...).Transform(p)
		}},
	).Transform(prog)
	r.diags = diags.Diagnostics

	if err := (ast.CheckChain{rewrite.ResidualCheck(r.result)}).Run(prog); err != nil {
		r.err = fmt.Errorf("%s: %w", file, err)
		return r
	}
	r.output = printer.Print(prog, pl.cfg.PrinterOptions())
	return r
}

// preludeCopy clones the prelude so programs never share nodes.
func (pl *pipeline) preludeCopy() []ast.Node {
	out := make([]ast.Node, len(pl.prelude))
	for i, n := range pl.prelude {
		out[i] = ast.Clone(n)
	}
	return out
}

// runOrdered processes files with up to jobs workers and hands results to
// emit in input order, as soon as every earlier file is done.
func runOrdered(files []string, jobs int, process func(string) fileResult, emit func(fileResult)) {
	if jobs < 1 {
		jobs = 1
	}
	if jobs == 1 {
		for _, f := range files {
			emit(process(f))
		}
		return
	}

	type asyncResult struct {
		res  fileResult
		done chan struct{}
	}
	async := make([]asyncResult, len(files))
	for i := range async {
		async[i].done = make(chan struct{})
	}
	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				async[i].res = process(files[i])
				close(async[i].done)
			}
		}()
	}
	for i := range async {
		<-async[i].done
		emit(async[i].res)
	}
	wg.Wait()
}

// summarize renders one line per component for the check command.
func summarize(file string, comp *rewrite.Component) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s: %s", file, comp.Name)
	if !comp.Found {
		b.WriteString(": not found")
		return b.String()
	}
	d := comp.Descriptors
	fmt.Fprintf(&b, ": %d replace, %d control, %d list", len(d.Replace), len(d.Control), len(d.List))
	if len(comp.Lists.Names) > 0 {
		lists := make([]string, 0, len(comp.Lists.Names))
		for _, name := range comp.Lists.Names {
			lists = append(lists, name+"->"+comp.Lists.IDs[name])
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(lists, " "))
	}
	fmt.Fprintf(&b, " (context %s)", comp.Context)
	return b.String()
}
