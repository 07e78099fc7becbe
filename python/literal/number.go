// Package literal turns NUMBER and STRING token text into Python values.
//
// Integers become *big.Int, floats float64 and imaginary literals
// complex128. Strings are decoded according to their prefix: raw strings
// keep backslashes, bytes literals produce []byte, and f-strings are left
// for SplitFString to break into literal text and replacement fields.
package literal

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Error reports a literal that cannot be decoded. Offset is a byte offset
// into the token text, or -1 when the whole literal is at fault.
type Error struct {
	Text   string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// ParseNumber decodes the text of a NUMBER token.
func ParseNumber(text string) (any, error) {
	s := strings.ReplaceAll(text, "_", "")
	if s == "" {
		return nil, &Error{Text: text, Offset: -1, Msg: "empty number literal"}
	}

	if last := s[len(s)-1]; last == 'j' || last == 'J' {
		f, err := parseFloat(s[:len(s)-1])
		if err != nil {
			return nil, &Error{Text: text, Offset: -1, Msg: fmt.Sprintf("invalid imaginary literal %q", text)}
		}
		return complex(0, f), nil
	}

	if len(s) > 1 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return nil, &Error{Text: text, Offset: -1, Msg: fmt.Sprintf("invalid integer literal %q", text)}
			}
			return n, nil
		}
	}

	if strings.ContainsAny(s, ".eE") {
		f, err := parseFloat(s)
		if err != nil {
			return nil, &Error{Text: text, Offset: -1, Msg: fmt.Sprintf("invalid float literal %q", text)}
		}
		return f, nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &Error{Text: text, Offset: -1, Msg: fmt.Sprintf("invalid decimal literal %q", text)}
	}
	return n, nil
}

// parseFloat accepts out-of-range values the way Python does: they
// saturate to infinity or zero.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}
