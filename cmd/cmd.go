package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/tmplvars/config"
)

// Execute runs the tmplvars CLI with the given version string.
func Execute(version string) {
	if err := newApp(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(version string) *cli.Command {
	return &cli.Command{
		Name:                   "tmplvars",
		Usage:                  "Rewrite JSX components into template sources",
		Version:                version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			{
				Name:      "rewrite",
				Usage:     "Rewrite components and print or write the result",
				ArgsUsage: "<file.jsx | directory>...",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write results into this directory instead of stdout",
					},
					&cli.StringFlag{
						Name:  "prelude",
						Usage: "Prepend the statements of this file to every rewritten output",
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Files rewritten in parallel",
						Value:   1,
					},
				),
				Action: rewriteAction,
			},
			{
				Name:      "check",
				Usage:     "Report descriptors and diagnostics without writing",
				ArgsUsage: "<file.jsx | directory>...",
				Flags:     commonFlags(),
				Action:    checkAction,
			},
			{
				Name:      "watch",
				Usage:     "Rewrite files in a directory whenever they change",
				ArgsUsage: "<directory>",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "out",
						Usage:    "Directory that receives rewritten files",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "prelude",
						Usage: "Prepend the statements of this file to every rewritten output",
					},
				),
				Action: watchAction,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Directory holding " + config.FileName + " (default: first input's directory)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail when diagnostics are reported",
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Aliases: []string{"C"},
			Usage:   "Disable colored diagnostics",
		},
	}
}

// loadConfig reads the configuration from --config, falling back to the
// directory of the first target. --strict overrides the file.
func loadConfig(cmd *cli.Command, targets []string) (*config.Config, error) {
	dir := cmd.String("config")
	if dir == "" && len(targets) > 0 {
		dir = targets[0]
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if cmd.Bool("strict") {
		cfg.Strict = true
	}
	return cfg, nil
}

// collectFiles expands directories into the files carrying ext. Explicit
// file arguments are kept whatever their extension.
func collectFiles(targets []string, ext string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", target, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ext) {
				files = append(files, filepath.Join(target, e.Name()))
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", ext)
	}
	return files, nil
}

func rewriteAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: tmplvars rewrite [-o dir] <file.jsx>...")
	}
	targets := cmd.Args().Slice()
	cfg, err := loadConfig(cmd, targets)
	if err != nil {
		return err
	}
	files, err := collectFiles(targets, cfg.Output.Extension)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg, cmd.String("prelude"))
	if err != nil {
		return err
	}
	jobs := cmd.Int("jobs")
	if !cmd.IsSet("jobs") && cfg.Output.Concurrency > 0 {
		jobs = cfg.Output.Concurrency
	}

	stdout, stderr := cmd.Root().Writer, cmd.Root().ErrWriter
	dp := newDiagPrinter(stderr, cmd.Bool("no-color"))
	outDir := cmd.String("output")
	var names map[string]string
	if outDir != "" {
		if names, err = outputNames(files); err != nil {
			return err
		}
	}

	var failed, diagnosed int
	runOrdered(files, jobs, pl.process, func(r fileResult) {
		if r.err != nil {
			dp.error(r.err)
			failed++
			return
		}
		for _, d := range r.diags {
			dp.diagnostic(r.file, d)
		}
		diagnosed += len(r.diags)
		if outDir == "" {
			if len(files) > 1 {
				fmt.Fprintf(stderr, "=== %s ===\n", r.file)
			}
			fmt.Fprint(stdout, r.output)
			return
		}
		if err := writeOutput(outDir, names[r.file], r.output); err != nil {
			dp.error(err)
			failed++
		}
	})

	return outcome(cfg, failed, diagnosed)
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: tmplvars check <file.jsx>...")
	}
	targets := cmd.Args().Slice()
	cfg, err := loadConfig(cmd, targets)
	if err != nil {
		return err
	}
	files, err := collectFiles(targets, cfg.Output.Extension)
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg, "")
	if err != nil {
		return err
	}

	stdout := cmd.Root().Writer
	dp := newDiagPrinter(cmd.Root().ErrWriter, cmd.Bool("no-color"))
	var failed, diagnosed int
	runOrdered(files, 1, pl.process, func(r fileResult) {
		if r.err != nil {
			dp.error(r.err)
			failed++
			return
		}
		for _, comp := range r.result.Components {
			fmt.Fprintln(stdout, summarize(r.file, comp))
		}
		for _, d := range r.diags {
			dp.diagnostic(r.file, d)
		}
		diagnosed += len(r.diags)
	})
	return outcome(cfg, failed, diagnosed)
}

func outcome(cfg *config.Config, failed, diagnosed int) error {
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	if cfg.Strict && diagnosed > 0 {
		return fmt.Errorf("%d diagnostic(s) reported in strict mode", diagnosed)
	}
	return nil
}

// outputNames maps every file to its path relative to the deepest
// directory containing all of them, so same-named files from different
// directories never land on the same output.
func outputNames(files []string) (map[string]string, error) {
	abs := make([]string, len(files))
	for i, f := range files {
		a, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		abs[i] = a
	}
	base := filepath.Dir(abs[0])
	for _, a := range abs[1:] {
		for !within(base, a) {
			base = filepath.Dir(base)
		}
	}
	names := make(map[string]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(base, abs[i])
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		names[f] = rel
	}
	return names, nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeOutput(dir, name, src string) error {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
