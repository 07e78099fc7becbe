package ast

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Field is one named child slot of a node, in Python field order.
type Field struct {
	Name     string
	Optional bool
	Value    reflect.Value
}

var pythonTypeNames = map[string]string{
	"ExprStmt":      "Expr",
	"Arguments":     "arguments",
	"Arg":           "arg",
	"Keyword":       "keyword",
	"Alias":         "alias",
	"Comprehension": "comprehension",
	"WithItem":      "withitem",
	"MatchCase":     "match_case",
}

// TypeName returns the Python class name of the node, e.g. "Expr" for
// *ExprStmt and "arg" for *Arg.
func TypeName(n Node) string {
	t := reflect.TypeOf(n)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name, ok := pythonTypeNames[t.Name()]; ok {
		return name
	}
	return t.Name()
}

// Fields lists the Python fields of n. The embedded Pos is not a field;
// see Located.
func Fields(n Node) []Field {
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	t := v.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			continue
		}
		name, optional := fieldName(sf)
		fields = append(fields, Field{Name: name, Optional: optional, Value: v.Field(i)})
	}
	return fields
}

// FieldName is the Python name of a Go struct field: the `py` tag when
// present, the snake-cased Go name otherwise.
func FieldName(sf reflect.StructField) string {
	name, _ := fieldName(sf)
	return name
}

func fieldName(sf reflect.StructField) (string, bool) {
	name, opts, _ := strings.Cut(sf.Tag.Get("py"), ",")
	if name == "" {
		name = strcase.ToSnake(sf.Name)
	}
	return name, opts == "optional"
}

// Inspect traverses the tree in depth-first order. It calls f(n); when f
// returns true it visits each child and then calls f(nil).
func Inspect(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) {
		return
	}
	if !f(n) {
		return
	}
	for _, field := range Fields(n) {
		inspectValue(field.Value, f)
	}
	f(nil)
}

// Children returns the direct child nodes of n in field order.
func Children(n Node) []Node {
	var out []Node
	for _, field := range Fields(n) {
		collect(field.Value, &out)
	}
	return out
}

func inspectValue(v reflect.Value, f func(Node) bool) {
	var children []Node
	collect(v, &children)
	for _, c := range children {
		Inspect(c, f)
	}
}

func collect(v reflect.Value, out *[]Node) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return
		}
		if n, ok := v.Interface().(Node); ok {
			*out = append(*out, n)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			collect(v.Index(i), out)
		}
	}
}

func isNilNode(n Node) bool {
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Walk calls f for every located node in the tree rooted at n.
func Walk(n Node, f func(Located)) {
	Inspect(n, func(n Node) bool {
		if l, ok := n.(Located); ok {
			f(l)
		}
		return true
	})
}
