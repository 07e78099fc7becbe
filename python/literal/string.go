package literal

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// String is a decoded STRING token.
type String struct {
	Value    string
	Bytes    []byte
	IsBytes  bool
	IsRaw    bool
	IsFormat bool
	// Kind is "u" for literals spelled with a u prefix.
	Kind string
	// Body is the undecoded text between the quotes and BodyOffset its
	// byte offset in the token text. F-strings are decoded from Body.
	Body       string
	BodyOffset int
}

// ParseString decodes the text of a STRING token, including its prefix
// and quotes.
func ParseString(text string) (*String, error) {
	s := &String{}
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		switch text[i] {
		case 'r', 'R':
			s.IsRaw = true
		case 'b', 'B':
			s.IsBytes = true
		case 'f', 'F':
			s.IsFormat = true
		case 'u', 'U':
			s.Kind = "u"
		default:
			return nil, &Error{Text: text, Offset: i, Msg: fmt.Sprintf("invalid string prefix %q", text[:i+1])}
		}
		i++
	}
	if i >= len(text) {
		return nil, &Error{Text: text, Offset: -1, Msg: "missing string quotes"}
	}
	if s.IsBytes && s.IsFormat {
		return nil, &Error{Text: text, Offset: 0, Msg: "bytes literals cannot be f-strings"}
	}

	quote := text[i : i+1]
	if strings.HasPrefix(text[i:], quote+quote+quote) && len(text)-i >= 6 {
		quote = quote + quote + quote
	}
	if !strings.HasSuffix(text, quote) || len(text)-i < 2*len(quote) {
		return nil, &Error{Text: text, Offset: i, Msg: "unterminated string literal"}
	}
	s.BodyOffset = i + len(quote)
	s.Body = text[s.BodyOffset : len(text)-len(quote)]

	switch {
	case s.IsFormat:
		s.Value = s.Body
	case s.IsBytes:
		for j := 0; j < len(s.Body); j++ {
			if s.Body[j] >= utf8.RuneSelf {
				return nil, &Error{Text: text, Offset: s.BodyOffset + j, Msg: "bytes can only contain ASCII literal characters"}
			}
		}
		if s.IsRaw {
			s.Bytes = []byte(s.Body)
		} else {
			b, err := decodeEscapes(s.Body, true)
			if err != nil {
				return nil, err
			}
			s.Bytes = []byte(b)
		}
	case s.IsRaw:
		s.Value = s.Body
	default:
		v, err := decodeEscapes(s.Body, false)
		if err != nil {
			return nil, err
		}
		s.Value = v
	}
	return s, nil
}

// Unescape decodes backslash escapes in non-raw string text.
func Unescape(text string) (string, error) {
	return decodeEscapes(text, false)
}

func decodeEscapes(body string, bytes bool) (string, error) {
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			i++
			continue
		}
		e := body[i+1]
		i += 2
		switch e {
		case '\n':
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(e - '0')
			for n := 1; n < 3 && i < len(body) && body[i] >= '0' && body[i] <= '7'; n++ {
				v = v*8 + int(body[i]-'0')
				i++
			}
			if bytes {
				sb.WriteByte(byte(v))
			} else {
				sb.WriteRune(rune(v))
			}
		case 'x':
			v, err := hexEscape(body, i, 2, `\x`)
			if err != nil {
				return "", err
			}
			i += 2
			if bytes {
				sb.WriteByte(byte(v))
			} else {
				sb.WriteRune(rune(v))
			}
		case 'u', 'U', 'N':
			if bytes {
				sb.WriteByte('\\')
				sb.WriteByte(e)
				continue
			}
			if e == 'N' {
				r, n, err := namedEscape(body, i)
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
				i += n
				continue
			}
			width := 4
			if e == 'U' {
				width = 8
			}
			v, err := hexEscape(body, i, width, `\`+string(e))
			if err != nil {
				return "", err
			}
			if v > utf8.MaxRune {
				return "", &Error{Text: body, Offset: i - 2, Msg: "illegal Unicode character"}
			}
			i += width
			sb.WriteRune(rune(v))
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

func hexEscape(body string, i, width int, name string) (uint64, error) {
	if i+width > len(body) {
		return 0, &Error{Text: body, Offset: i - 2, Msg: fmt.Sprintf("truncated %sXX escape", name)}
	}
	v, err := strconv.ParseUint(body[i:i+width], 16, 32)
	if err != nil {
		return 0, &Error{Text: body, Offset: i - 2, Msg: fmt.Sprintf("truncated %sXX escape", name)}
	}
	return v, nil
}

func namedEscape(body string, i int) (rune, int, error) {
	if i >= len(body) || body[i] != '{' {
		return 0, 0, &Error{Text: body, Offset: i - 2, Msg: `malformed \N character escape`}
	}
	end := strings.IndexByte(body[i:], '}')
	if end < 0 {
		return 0, 0, &Error{Text: body, Offset: i - 2, Msg: `malformed \N character escape`}
	}
	name := body[i+1 : i+end]
	r, ok := LookupRuneName(name)
	if !ok {
		return 0, 0, &Error{Text: body, Offset: i - 2, Msg: fmt.Sprintf("unknown Unicode character name %q", name)}
	}
	return r, end + 1, nil
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// LookupRuneName resolves a Unicode character name as used by \N{...}.
// The reverse table is built on first use.
func LookupRuneName(name string) (rune, bool) {
	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune, 40000)
		for r := rune(0); r <= utf8.MaxRune; r++ {
			n := runenames.Name(r)
			if n == "" || n[0] == '<' {
				continue
			}
			if _, dup := runeNames[n]; !dup {
				runeNames[n] = r
			}
		}
	})
	r, ok := runeNames[strings.ToUpper(name)]
	return r, ok
}
