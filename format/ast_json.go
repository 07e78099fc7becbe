package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"reflect"

	"github.com/dhamidi/parseltongue/python/ast"
	"github.com/dhamidi/parseltongue/python/literal"
)

// ASTJSONEncoder writes a syntax tree as JSON. Every node becomes an object
// whose "_type" member holds the Python class name, followed by its fields
// in Python order.
type ASTJSONEncoder struct {
	w io.Writer
	// IncludePositions adds lineno, col_offset, end_lineno and
	// end_col_offset to located nodes.
	IncludePositions bool
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(node), "", "  ")
}

// jsonObject keeps its members in insertion order when marshaled.
type jsonObject []jsonMember

type jsonMember struct {
	Key   string
	Value any
}

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", m.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *ASTJSONEncoder) nodeToJSON(n ast.Node) jsonObject {
	obj := jsonObject{{"_type", ast.TypeName(n)}}
	for _, f := range ast.Fields(n) {
		obj = append(obj, jsonMember{f.Name, e.valueToJSON(f.Value)})
	}
	if l, ok := n.(ast.Located); ok && e.IncludePositions {
		pos := l.Location()
		obj = append(obj,
			jsonMember{"lineno", pos.Lineno},
			jsonMember{"col_offset", pos.ColOffset},
			jsonMember{"end_lineno", pos.EndLineno},
			jsonMember{"end_col_offset", pos.EndColOffset},
		)
	}
	return obj
}

func (e *ASTJSONEncoder) valueToJSON(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return e.nodeToJSON(n)
		}
		return constantToJSON(v.Interface())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return constantToJSON(v.Bytes())
		}
		items := make([]any, v.Len())
		for i := range items {
			items[i] = e.valueToJSON(v.Index(i))
		}
		return items
	case reflect.Int:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return jsonObject{{"_type", s.String()}}
		}
		return v.Int()
	case reflect.String:
		return v.String()
	}
	return v.Interface()
}

// constantToJSON maps a Constant value to JSON. Values without a JSON
// counterpart are tagged objects carrying their Python repr.
func constantToJSON(v any) any {
	switch v := v.(type) {
	case nil, bool, string:
		return v
	case *big.Int:
		return json.Number(v.String())
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return jsonObject{{"_type", "float"}, {"repr", literal.Repr(v)}}
		}
		return v
	case complex128:
		return jsonObject{{"_type", "complex"}, {"repr", literal.Repr(v)}}
	case []byte:
		return jsonObject{{"_type", "bytes"}, {"repr", literal.Repr(v)}}
	case ast.Ellipsis:
		return jsonObject{{"_type", "Ellipsis"}}
	}
	return literal.Repr(v)
}
