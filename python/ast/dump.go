package ast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dhamidi/parseltongue/python/literal"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// IncludeAttributes appends lineno, col_offset, end_lineno and
	// end_col_offset to located nodes.
	IncludeAttributes bool
	// Indent, when non-empty, pretty-prints nested nodes one field per line.
	Indent string
}

// Dump renders n like Python's ast.dump with default arguments.
func Dump(n Node) string {
	return DumpWith(n, DumpOptions{})
}

// DumpWith renders n like Python's ast.dump.
func DumpWith(n Node, opts DumpOptions) string {
	d := &dumper{opts: opts}
	s, _ := d.node(n, 0)
	return s
}

type dumper struct {
	opts DumpOptions
}

func (d *dumper) separators(level int) (prefix, sep string) {
	if d.opts.Indent == "" {
		return "", ", "
	}
	pad := strings.Repeat(d.opts.Indent, level)
	return "\n" + pad, ",\n" + pad
}

// node returns the rendering and whether it is simple enough to keep on
// one line.
func (d *dumper) node(n Node, level int) (string, bool) {
	if d.opts.Indent != "" {
		level++
	}
	prefix, sep := d.separators(level)

	var args []string
	allSimple := true
	for _, f := range Fields(n) {
		if f.Optional && isAbsent(f.Value) {
			continue
		}
		s, simple := d.value(f.Value, level)
		allSimple = allSimple && simple
		args = append(args, f.Name+"="+s)
	}
	if l, ok := n.(Located); ok && d.opts.IncludeAttributes {
		p := l.Location()
		args = append(args,
			fmt.Sprintf("lineno=%d", p.Lineno),
			fmt.Sprintf("col_offset=%d", p.ColOffset),
			fmt.Sprintf("end_lineno=%d", p.EndLineno),
			fmt.Sprintf("end_col_offset=%d", p.EndColOffset),
		)
	}

	name := TypeName(n)
	if allSimple && len(args) <= 3 {
		return name + "(" + strings.Join(args, ", ") + ")", len(args) == 0
	}
	return name + "(" + prefix + strings.Join(args, sep) + ")", false
}

func (d *dumper) value(v reflect.Value, level int) (string, bool) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return "None", true
		}
		if n, ok := v.Interface().(Node); ok {
			return d.node(n, level)
		}
		return literal.Repr(v.Interface()), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return literal.Repr(v.Bytes()), true
		}
		if v.Len() == 0 {
			return "[]", true
		}
		if d.opts.Indent != "" {
			level++
		}
		prefix, sep := d.separators(level)
		items := make([]string, v.Len())
		for i := range items {
			items[i], _ = d.value(v.Index(i), level)
		}
		return "[" + prefix + strings.Join(items, sep) + "]", false
	case reflect.String:
		return literal.Quote(v.String()), true
	case reflect.Int:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String() + "()", true
		}
		return fmt.Sprint(v.Int()), true
	default:
		return fmt.Sprint(v.Interface()), true
	}
}

func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	}
	return false
}
