// Package format renders Python syntax trees and token streams.
//
// PythonPrinter turns a tree back into Python source. ASTJSONEncoder and
// the token encoders produce the machine- and human-readable listings used
// by the pt command.
package format

import (
	"bytes"

	"github.com/dhamidi/parseltongue/python/ast"
)

// Encoder writes one syntax tree to an underlying writer.
type Encoder interface {
	Encode(node ast.Node) error
}

// Python renders node as Python source.
func Python(node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := NewPythonPrinter(&buf).Print(node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
