package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	expr, err := parser.Eval("f(1, b'x', ...)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(expr); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "{\n  \"_type\": \"Expression\",\n  \"body\": {\n    \"_type\": \"Call\"") {
		t.Errorf("members out of order:\n%s", out)
	}
	for _, want := range []string{`"value": 1`, `"_type": "bytes"`, `"repr": "b'x'"`, `"_type": "Ellipsis"`, `"_type": "Load"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "lineno") {
		t.Errorf("positions written without IncludePositions:\n%s", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestASTJSONEncoderPositions(t *testing.T) {
	mod, err := parser.File("x = 1\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	enc := NewASTJSONEncoder(nil)
	enc.IncludePositions = true
	text, err := enc.MarshalText(mod)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"lineno": 1`, `"col_offset": 4`, `"end_col_offset": 5`} {
		if !strings.Contains(string(text), want) {
			t.Errorf("output lacks %s:\n%s", want, text)
		}
	}
}

func TestLineEncoder(t *testing.T) {
	tokens, err := lexer.Tokenize("x = [1,\n  2]\ny\n")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(tokens); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "1 NAME'x' OP'=' OP'[' NUMBER'1' OP','\n" +
		"2 NUMBER'2' OP']' NEWLINE'\\n'\n" +
		"3 NAME'y' NEWLINE'\\n'\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	tokens, err := lexer.Tokenize("x\n")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	text, err := NewJSONEncoder(nil).MarshalText(tokens)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []struct {
		Kind  string `json:"kind"`
		Text  string `json:"text"`
		Start struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"start"`
	}
	if err := json.Unmarshal(text, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Kind != "NAME" || decoded[0].Text != "x" || decoded[1].Kind != "NEWLINE" {
		t.Errorf("unexpected tokens: %+v", decoded)
	}
}
