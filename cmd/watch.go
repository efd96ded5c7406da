package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
)

const debounceDelay = 100 * time.Millisecond

func watchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: tmplvars watch --out <dir> <directory>")
	}
	dir := cmd.Args().First()
	cfg, err := loadConfig(cmd, []string{dir})
	if err != nil {
		return err
	}
	pl, err := newPipeline(cfg, cmd.String("prelude"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &dirWatcher{
		src: dir,
		out: cmd.String("out"),
		ext: cfg.Output.Extension,
		pl:  pl,
		dp:  newDiagPrinter(cmd.Root().ErrWriter, cmd.Bool("no-color")),
	}
	return w.run(ctx, nil)
}

// dirWatcher mirrors the rewritten form of every source file under src
// into out, keeping relative paths.
type dirWatcher struct {
	src string
	out string
	ext string
	pl  *pipeline
	dp  *diagPrinter

	watcher *fsnotify.Watcher
}

// run rewrites every file once, then watches until ctx is done. ready, if
// non-nil, is closed once the watches are in place.
func (w *dirWatcher) run(ctx context.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()
	w.watcher = watcher

	files, err := w.addDirs(w.src)
	if err != nil {
		return fmt.Errorf("watching %s: %w", w.src, err)
	}
	w.build(files)
	w.dp.success("watching %s (%d files)", w.src, len(files))
	if ready != nil {
		close(ready)
	}

	debounce := time.NewTimer(0)
	<-debounce.C

	// Only this loop touches pending.
	pending := changeSet{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					added, err := w.addDirs(event.Name)
					if err != nil {
						w.dp.error(err)
					}
					for _, f := range added {
						pending.add(f, fsnotify.Create)
					}
					debounce.Reset(debounceDelay)
					continue
				}
			}
			if !w.isRelevantFile(event.Name) {
				continue
			}
			pending.add(event.Name, event.Op)
			debounce.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.dp.error(fmt.Errorf("watcher: %w", err))

		case <-debounce.C:
			w.apply(pending.take())
		}
	}
}

// changeSet accumulates the operations seen per path between two
// debounce ticks.
type changeSet map[string]fsnotify.Op

func (c changeSet) add(path string, op fsnotify.Op) { c[path] |= op }

// take returns the accumulated changes and empties the set.
func (c changeSet) take() map[string]fsnotify.Op {
	out := make(map[string]fsnotify.Op, len(c))
	for path, op := range c {
		out[path] = op
		delete(c, path)
	}
	return out
}

// addDirs watches root and its subdirectories, skipping hidden ones,
// node_modules and the output directory. It returns the relevant files
// found on the way.
func (w *dirWatcher) addDirs(root string) ([]string, error) {
	outAbs, _ := filepath.Abs(w.out)
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && (strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if abs, _ := filepath.Abs(path); abs == outAbs {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		if w.isRelevantFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (w *dirWatcher) isRelevantFile(path string) bool {
	return strings.HasSuffix(path, w.ext) && !strings.HasPrefix(filepath.Base(path), ".")
}

// apply handles one debounced batch of changes in path order.
func (w *dirWatcher) apply(changed map[string]fsnotify.Op) {
	if len(changed) == 0 {
		return
	}
	var files []string
	for path := range changed {
		if _, err := os.Stat(path); err != nil {
			w.remove(path)
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	w.build(files)
}

func (w *dirWatcher) build(files []string) {
	runOrdered(files, 1, w.pl.process, func(r fileResult) {
		if r.err != nil {
			w.dp.error(r.err)
			return
		}
		for _, d := range r.diags {
			w.dp.diagnostic(r.file, d)
		}
		target, err := w.target(r.file)
		if err != nil {
			w.dp.error(err)
			return
		}
		if err := writeOutput(filepath.Dir(target), filepath.Base(target), r.output); err != nil {
			w.dp.error(err)
			return
		}
		w.dp.success("rewrote %s", r.file)
	})
}

func (w *dirWatcher) remove(path string) {
	target, err := w.target(path)
	if err != nil {
		return
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		w.dp.error(fmt.Errorf("removing %s: %w", target, err))
	}
}

// target maps a source path to its output path.
func (w *dirWatcher) target(path string) (string, error) {
	rel, err := filepath.Rel(w.src, path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Join(w.out, rel), nil
}
