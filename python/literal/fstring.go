package literal

import (
	"fmt"
	"strings"
)

// Part is a piece of an f-string body: either literal text or a
// replacement field.
type Part struct {
	Literal string

	// Expr is the source of a replacement field, without braces. Offset is
	// its byte offset in the body passed to SplitFString.
	Expr   string
	Offset int
	// Conversion is -1, 's', 'r' or 'a'.
	Conversion int
	// Spec holds the parsed format spec; HasSpec distinguishes an empty
	// spec (`{x:}`) from none.
	Spec    []Part
	HasSpec bool
	// Debug is the field text up to and including '=' for `{expr=}`.
	Debug string
}

// IsField reports whether the part is a replacement field.
func (p Part) IsField() bool {
	return p.Expr != ""
}

const maxFStringNesting = 2

// SplitFString breaks an f-string body into literal runs and replacement
// fields. Literal text is unescaped unless raw is set.
func SplitFString(body string, raw bool) ([]Part, error) {
	s := &fscanner{body: body, raw: raw}
	parts, err := s.parts(0, false)
	if err != nil {
		return nil, err
	}
	if s.pos < len(body) {
		return nil, s.errorf("f-string: single '}' is not allowed")
	}
	return parts, nil
}

type fscanner struct {
	body string
	raw  bool
	pos  int
}

func (s *fscanner) errorf(format string, args ...any) error {
	return &Error{Text: s.body, Offset: s.pos, Msg: fmt.Sprintf(format, args...)}
}

// parts scans literal text and fields until end of input, or until the
// closing '}' of an enclosing format spec when inSpec is set.
func (s *fscanner) parts(depth int, inSpec bool) ([]Part, error) {
	var parts []Part
	var lit strings.Builder

	flush := func() error {
		if lit.Len() == 0 {
			return nil
		}
		text := lit.String()
		lit.Reset()
		if !s.raw {
			decoded, err := decodeEscapes(text, false)
			if err != nil {
				return err
			}
			text = decoded
		}
		parts = append(parts, Part{Literal: text, Conversion: -1})
		return nil
	}

	for s.pos < len(s.body) {
		c := s.body[s.pos]
		switch {
		case c == '\\' && !s.raw && strings.HasPrefix(s.body[s.pos:], `\N{`):
			end := strings.IndexByte(s.body[s.pos:], '}')
			if end < 0 {
				return nil, s.errorf(`malformed \N character escape`)
			}
			lit.WriteString(s.body[s.pos : s.pos+end+1])
			s.pos += end + 1
		case c == '\\' && s.pos+1 < len(s.body):
			lit.WriteString(s.body[s.pos : s.pos+2])
			s.pos += 2
		case c == '{':
			if !inSpec && s.pos+1 < len(s.body) && s.body[s.pos+1] == '{' {
				lit.WriteByte('{')
				s.pos += 2
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			if depth >= maxFStringNesting {
				return nil, s.errorf("f-string: expressions nested too deeply")
			}
			field, err := s.field(depth + 1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, field)
		case c == '}':
			if inSpec {
				if err := flush(); err != nil {
					return nil, err
				}
				return parts, nil
			}
			if s.pos+1 < len(s.body) && s.body[s.pos+1] == '}' {
				lit.WriteByte('}')
				s.pos += 2
				continue
			}
			return nil, s.errorf("f-string: single '}' is not allowed")
		default:
			lit.WriteByte(c)
			s.pos++
		}
	}
	if inSpec {
		return nil, s.errorf("f-string: expecting '}'")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return parts, nil
}

// field scans a replacement field; s.pos is at the opening '{'.
func (s *fscanner) field(depth int) (Part, error) {
	s.pos++
	start := s.pos
	var nest []byte
	var quote string

scan:
	for s.pos < len(s.body) {
		c := s.body[s.pos]
		if quote != "" {
			if strings.HasPrefix(s.body[s.pos:], quote) {
				s.pos += len(quote)
				quote = ""
				continue
			}
			if c == '\\' {
				return Part{}, s.errorf("f-string expression part cannot include a backslash")
			}
			s.pos++
			continue
		}
		switch c {
		case '\\':
			return Part{}, s.errorf("f-string expression part cannot include a backslash")
		case '#':
			return Part{}, s.errorf("f-string expression part cannot include '#'")
		case '\'', '"':
			quote = string(c)
			if strings.HasPrefix(s.body[s.pos:], quote+quote+quote) {
				quote = quote + quote + quote
			}
			s.pos += len(quote)
			continue
		case '(', '[', '{':
			nest = append(nest, c)
		case ')', ']', '}':
			if len(nest) == 0 {
				if c == '}' {
					break scan
				}
				return Part{}, s.errorf("f-string: unmatched '%c'", c)
			}
			open := nest[len(nest)-1]
			if (open == '(' && c != ')') || (open == '[' && c != ']') || (open == '{' && c != '}') {
				return Part{}, s.errorf("f-string: closing parenthesis '%c' does not match opening parenthesis '%c'", c, open)
			}
			nest = nest[:len(nest)-1]
		case '!':
			if len(nest) == 0 && !strings.HasPrefix(s.body[s.pos:], "!=") {
				break scan
			}
			if strings.HasPrefix(s.body[s.pos:], "!=") {
				s.pos++
			}
		case ':':
			if len(nest) == 0 {
				break scan
			}
		case '=':
			if len(nest) == 0 {
				next := byte(0)
				if s.pos+1 < len(s.body) {
					next = s.body[s.pos+1]
				}
				prev := byte(0)
				if s.pos > start {
					prev = s.body[s.pos-1]
				}
				if next != '=' && prev != '=' && prev != '!' && prev != '<' && prev != '>' {
					break scan
				}
			}
		}
		s.pos++
	}
	if quote != "" {
		return Part{}, s.errorf("f-string: unterminated string")
	}
	if s.pos >= len(s.body) {
		return Part{}, s.errorf("f-string: expecting '}'")
	}

	expr := s.body[start:s.pos]
	if strings.TrimSpace(expr) == "" {
		return Part{}, s.errorf("f-string: empty expression not allowed")
	}
	part := Part{Expr: expr, Offset: start, Conversion: -1}

	if s.body[s.pos] == '=' {
		s.pos++
		part.Debug = s.body[start:s.pos]
	}
	if s.pos < len(s.body) && s.body[s.pos] == '!' {
		s.pos++
		if s.pos >= len(s.body) {
			return Part{}, s.errorf("f-string: expecting '}'")
		}
		switch conv := s.body[s.pos]; conv {
		case 's', 'r', 'a':
			part.Conversion = int(conv)
		default:
			return Part{}, s.errorf("f-string: invalid conversion character: expected 's', 'r', or 'a'")
		}
		s.pos++
	}
	if s.pos < len(s.body) && s.body[s.pos] == ':' {
		s.pos++
		spec, err := s.parts(depth, true)
		if err != nil {
			return Part{}, err
		}
		part.Spec = spec
		part.HasSpec = true
	}
	if s.pos >= len(s.body) || s.body[s.pos] != '}' {
		return Part{}, s.errorf("f-string: expecting '}'")
	}
	s.pos++

	if part.Debug != "" && part.Conversion == -1 && !part.HasSpec {
		part.Conversion = 'r'
	}
	return part, nil
}
