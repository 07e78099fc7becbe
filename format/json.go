package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/parseltongue/parseltongue/lexer"
)

// JSONEncoder writes a token stream as a JSON array.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tokens []lexer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(tokens []lexer.Token) ([]byte, error) {
	data := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		data[i] = jsonToken{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: jsonPosition{Line: tok.Start.Line, Column: tok.Start.Column},
			End:   jsonPosition{Line: tok.End.Line, Column: tok.End.Column},
		}
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonToken struct {
	Kind  string       `json:"kind"`
	Text  string       `json:"text"`
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}
