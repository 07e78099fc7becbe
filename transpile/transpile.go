// Package transpile turns Parseltongue sources into Python files.
package transpile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/parseltongue/format"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/project"
)

// ErrChanged is returned by Check when an output file is missing or
// differs from what transpiling its source would produce.
var ErrChanged = errors.New("output is out of date")

// Source transpiles Parseltongue text to Python text.
func Source(src string, opts ...parser.Option) (string, error) {
	mod, err := parser.File(src, opts...)
	if err != nil {
		return "", err
	}
	return format.Python(mod)
}

// Result describes what happened to one source file.
type Result struct {
	Source string
	Output string
	// Changed is set when the output file did not exist or had different
	// content.
	Changed bool
	// Written is set when the output file was written.
	Written bool
	Err     error
}

// Transpiler transpiles the modules of a project.
type Transpiler struct {
	Project *project.Project
	// Jobs bounds the number of files processed at once. Zero means the
	// project's setting, or the number of CPUs.
	Jobs int
	// Progress, when set, is called once per file as it finishes. Calls are
	// serialized.
	Progress func(Result)
	Log      commonlog.Logger

	mu sync.Mutex
}

func New(proj *project.Project) *Transpiler {
	return &Transpiler{
		Project: proj,
		Log:     commonlog.GetLogger("parseltongue.transpile"),
	}
}

func (t *Transpiler) jobs() int {
	switch {
	case t.Jobs > 0:
		return t.Jobs
	case t.Project.Config.Jobs > 0:
		return t.Project.Config.Jobs
	}
	return runtime.NumCPU()
}

// render produces the output bytes for a module, with the newline style of
// its source.
func (t *Transpiler) render(m *project.Module) ([]byte, error) {
	src, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", m.Path, err)
	}
	opts := append(t.Project.Config.ParserOptions(), parser.WithFile(m.Path))
	text, err := Source(string(src), opts...)
	if err != nil {
		return nil, err
	}
	return project.RenderOutput(text, project.DetectNewline(src)), nil
}

// changed reports whether dst is missing or differs from content.
func changed(dst string, content []byte) bool {
	existing, err := os.ReadFile(dst)
	return err != nil || !bytes.Equal(existing, content)
}

// File transpiles one module and writes its output. The file mode of the
// source is carried over.
func (t *Transpiler) File(m *project.Module) Result {
	res := Result{Source: m.Path, Output: m.OutputPath()}
	t.Log.Debugf("transpiling %s", m.Path)

	content, err := t.render(m)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = changed(res.Output, content)
	if err := project.WriteOutput(res.Output, content, project.SourceMode(m.Path)); err != nil {
		res.Err = err
		return res
	}
	res.Written = true
	t.Log.Infof("wrote %s", res.Output)
	return res
}

// CheckFile transpiles one module in memory and compares the result with
// the existing output.
func (t *Transpiler) CheckFile(m *project.Module) Result {
	res := Result{Source: m.Path, Output: m.OutputPath()}
	content, err := t.render(m)
	if err != nil {
		res.Err = err
		return res
	}
	res.Changed = changed(res.Output, content)
	if res.Changed {
		t.Log.Infof("%s is out of date", res.Output)
	}
	return res
}

// Files transpiles modules in parallel. Results are in the order of
// modules. A failing file does not stop the others; the returned error
// joins every failure.
func (t *Transpiler) Files(ctx context.Context, modules []*project.Module) ([]Result, error) {
	results, err := t.each(ctx, modules, t.File)
	if err != nil {
		return results, err
	}
	return results, failures(results)
}

// Check compares every module's output with what Files would write,
// without writing anything. It returns ErrChanged when any output would
// change and no file failed.
func (t *Transpiler) Check(ctx context.Context, modules []*project.Module) ([]Result, error) {
	results, err := t.each(ctx, modules, t.CheckFile)
	if err != nil {
		return results, err
	}
	if err := failures(results); err != nil {
		return results, err
	}
	n := 0
	for _, res := range results {
		if res.Changed {
			n++
		}
	}
	if n > 0 {
		return results, fmt.Errorf("%d of %d files: %w", n, len(results), ErrChanged)
	}
	return results, nil
}

func (t *Transpiler) each(ctx context.Context, modules []*project.Module, do func(*project.Module) Result) ([]Result, error) {
	results := make([]Result, len(modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.jobs())

	for i, m := range modules {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := do(m)
			results[i] = res
			if res.Err != nil {
				t.Log.Warningf("%s: %s", res.Source, res.Err)
			}
			t.report(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (t *Transpiler) report(res Result) {
	if t.Progress == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Progress(res)
}

func failures(results []Result) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed: %w", len(errs), len(results), errors.Join(errs...))
}
