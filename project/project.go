package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/python/ast"
)

// SourceExt is the extension of Parseltongue source files.
const SourceExt = ".pt"

// ErrNoSources is returned when discovery finds nothing to transpile.
var ErrNoSources = errors.New("no Parseltongue sources found")

var log = commonlog.GetLogger("parseltongue.project")

// Project is a directory tree of Parseltongue sources sharing one
// configuration.
type Project struct {
	RootDir string
	// ConfigFile is empty when the defaults are in effect.
	ConfigFile string
	Config     *Config
}

// Module is a single Parseltongue source file within a project.
type Module struct {
	// Name is the dotted Python module name, relative to the project root.
	Name string
	Path string
	// Imports are the absolute module names the source imports. Filled in
	// by Analyze.
	Imports []string
	// Entrypoint is set by Analyze when the module has a top-level
	// `if __name__ == "__main__":` guard.
	Entrypoint bool
	Project    *Project
	isPackage  bool
}

// Load looks for a project configuration starting in the current
// directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom looks for a configuration file in dir and its parents. The
// directory holding the file becomes the project root; without one, dir
// is the root and the defaults apply.
func LoadFrom(dir string) (*Project, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		root, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		log.Debugf("no configuration file above %s, using defaults", root)
		return &Project{RootDir: root, Config: DefaultConfig()}, nil
	}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded configuration from %s", path)
	return &Project{
		RootDir:    filepath.Dir(path),
		ConfigFile: path,
		Config:     config,
	}, nil
}

// Discover returns the modules named by paths. Directories are searched
// recursively for .pt files, skipping hidden directories and excluded
// paths; files are taken as given. With no paths the project root is
// searched.
func (p *Project) Discover(paths ...string) ([]*Module, error) {
	if len(paths) == 0 {
		paths = []string{p.RootDir}
	}

	seen := make(map[string]bool)
	var modules []*Module
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		modules = append(modules, p.module(path))
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if file != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if file != path && p.Config.Excluded(p.rel(file)) {
					log.Debugf("skipping excluded directory %s", file)
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(file) != SourceExt {
				return nil
			}
			if p.Config.Excluded(p.rel(file)) {
				log.Debugf("skipping excluded file %s", file)
				return nil
			}
			add(file)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
	}

	if len(modules) == 0 {
		return nil, ErrNoSources
	}
	log.Debugf("discovered %d sources", len(modules))
	return modules, nil
}

// within returns path relative to the project root. ok is false when the
// path lies outside the root.
func (p *Project) within(path string) (rel string, ok bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, false
	}
	rel, err = filepath.Rel(p.RootDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path, false
	}
	return rel, true
}

// rel is within without the flag, for matching exclude patterns.
func (p *Project) rel(path string) string {
	rel, _ := p.within(path)
	return rel
}

func (p *Project) module(path string) *Module {
	rel, ok := p.within(path)
	if !ok {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")

	m := &Module{Path: path, Project: p}
	if len(parts) > 1 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
		m.isPackage = true
	}
	m.Name = strings.Join(parts, ".")
	return m
}

// OutputPath returns where the Python rendering of the module is written.
func (m *Module) OutputPath() string {
	return m.Project.OutputPath(m.Path)
}

// OutputPath maps a source file to its output file. Without an output
// directory the output sits next to the source; otherwise the source's
// position below the project root is kept inside the output directory.
func (p *Project) OutputPath(src string) string {
	outDir := p.Config.OutputDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(p.RootDir, outDir)
	}
	sub := "."
	if rel, ok := p.within(src); ok {
		sub = filepath.Dir(rel)
	}
	return OutputPath(src, outDir, sub)
}

// Package returns the dotted name relative imports are resolved against.
func (m *Module) Package() string {
	if m.isPackage {
		return m.Name
	}
	if i := strings.LastIndexByte(m.Name, '.'); i >= 0 {
		return m.Name[:i]
	}
	return ""
}

// Slug is the module's last name component in kebab case, suitable as a
// command name.
func (m *Module) Slug() string {
	name := m.Name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strcase.ToKebab(name)
}

// Analyze parses the module and records its imports and whether it can
// be run as a script.
func (m *Module) Analyze() error {
	src, err := os.ReadFile(m.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", m.Path, err)
	}
	opts := append(m.Project.Config.ParserOptions(), parser.WithFile(m.Path))
	mod, err := parser.File(string(src), opts...)
	if err != nil {
		return err
	}
	m.Imports = imports(mod, m.Package())
	m.Entrypoint = hasMainGuard(mod)
	return nil
}

// imports collects the modules a tree imports, at any depth. For
// `from X import a` both X and X.a are listed since a may be a submodule.
func imports(mod *ast.Module, pkg string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	ast.Inspect(mod, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Import:
			for _, alias := range n.Names {
				add(alias.Name)
			}
		case *ast.ImportFrom:
			base, ok := resolveRelative(pkg, n.Module, n.Level)
			if !ok {
				return true
			}
			add(base)
			for _, alias := range n.Names {
				if alias.Name != "*" {
					add(joinName(base, alias.Name))
				}
			}
		}
		return true
	})
	return names
}

// resolveRelative turns the target of a from-import into an absolute
// module name. ok is false when level climbs above the top package.
func resolveRelative(pkg, module string, level int) (string, bool) {
	if level == 0 {
		return module, true
	}
	var parts []string
	if pkg != "" {
		parts = strings.Split(pkg, ".")
	}
	if level-1 > len(parts) {
		return "", false
	}
	parts = parts[:len(parts)-(level-1)]
	return joinName(strings.Join(parts, "."), module), true
}

func joinName(base, name string) string {
	switch {
	case base == "":
		return name
	case name == "":
		return base
	}
	return base + "." + name
}

// hasMainGuard reports whether the module body has a top-level
// `if __name__ == "__main__":` statement, in either operand order.
func hasMainGuard(mod *ast.Module) bool {
	for _, stmt := range mod.Body {
		ifStmt, ok := stmt.(*ast.If)
		if !ok {
			continue
		}
		cmp, ok := ifStmt.Test.(*ast.Compare)
		if !ok || len(cmp.Ops) != 1 || cmp.Ops[0] != ast.Eq {
			continue
		}
		left, right := cmp.Left, cmp.Comparators[0]
		if isName(left, "__name__") && isString(right, "__main__") ||
			isName(right, "__name__") && isString(left, "__main__") {
			return true
		}
	}
	return false
}

func isName(e ast.Expr, id string) bool {
	n, ok := e.(*ast.Name)
	return ok && n.Id == id
}

func isString(e ast.Expr, value string) bool {
	c, ok := e.(*ast.Constant)
	if !ok {
		return false
	}
	s, ok := c.Value.(string)
	return ok && s == value
}

// ModulesInOrder returns modules sorted in dependency order (dependencies
// first). Only imports between the given modules count. Modules that are
// part of an import cycle keep their original order.
func ModulesInOrder(modules []*Module) []*Module {
	byName := make(map[string]*Module)
	for _, m := range modules {
		byName[m.Name] = m
	}

	// Topological sort using Kahn's algorithm
	inDegree := make(map[*Module]int)
	dependents := make(map[*Module][]*Module)
	for _, m := range modules {
		seen := make(map[*Module]bool)
		for _, name := range m.Imports {
			dep := byName[name]
			if dep == nil || dep == m || seen[dep] {
				continue
			}
			seen[dep] = true
			inDegree[m]++
			dependents[dep] = append(dependents[dep], m)
		}
	}

	var queue []*Module
	for _, m := range modules {
		if inDegree[m] == 0 {
			queue = append(queue, m)
		}
	}

	var result []*Module
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		result = append(result, m)
		for _, dependent := range dependents[m] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) == len(modules) {
		return result
	}
	// Append the modules stuck in cycles in their original order.
	placed := make(map[*Module]bool, len(result))
	for _, m := range result {
		placed[m] = true
	}
	for _, m := range modules {
		if !placed[m] {
			result = append(result, m)
		}
	}
	return result
}
