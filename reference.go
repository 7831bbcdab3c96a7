package xmltok

import (
	"bytes"
	"unicode/utf8"
)

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": `"`,
}

// Unescape replaces the five predefined entities and character references
// in b. If b contains no references it is returned as is.
func Unescape(b []byte) ([]byte, error) {
	return UnescapeFunc(b, nil)
}

// UnescapeFunc is like Unescape, but asks resolve for the replacement of
// entities that are not predefined. resolve may be nil.
func UnescapeFunc(b []byte, resolve func(name []byte) ([]byte, bool)) ([]byte, error) {
	i := bytes.IndexByte(b, '&')
	if i < 0 {
		return b, nil
	}

	out := make([]byte, 0, len(b))
	offset := 0
	for i >= 0 {
		out = append(out, b[:i]...)
		offset += i

		rest := b[i+1:]
		end := bytes.IndexByte(rest, ';')
		if end < 0 {
			return nil, ErrUnterminatedEntity{Offset: offset}
		}

		name := rest[:end]
		switch {
		case len(name) > 0 && name[0] == '#':
			r, err := parseCharRef(name[1:])
			if err != nil {
				return nil, err
			}
			out = utf8.AppendRune(out, r)
		default:
			if v, ok := predefinedEntities[string(name)]; ok {
				out = append(out, v...)
				break
			}
			if resolve != nil {
				if v, ok := resolve(name); ok {
					out = append(out, v...)
					break
				}
			}
			return nil, ErrUnrecognizedEntity{Name: string(name)}
		}

		offset += end + 2
		b = rest[end+1:]
		i = bytes.IndexByte(b, '&')
	}
	return append(out, b...), nil
}

// parseCharRef parses the part of a character reference after "&#"
//
//	[66] CharRef ::= '&#' [0-9]+ ';' | '&#x' [0-9a-fA-F]+ ';'
func parseCharRef(ref []byte) (rune, error) {
	digits := ref
	base := int32(10)
	if len(digits) > 0 && digits[0] == 'x' {
		digits = digits[1:]
		base = 16
	}
	if len(digits) == 0 {
		return utf8.RuneError, ErrInvalidCodepoint{Value: string(ref)}
	}

	var val int32
	for _, c := range digits {
		var d int32
		switch {
		case c >= '0' && c <= '9':
			d = int32(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = int32(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = int32(c-'A') + 10
		default:
			return utf8.RuneError, ErrInvalidCodepoint{Value: string(ref)}
		}
		val = val*base + d
		if val > utf8.MaxRune {
			return utf8.RuneError, ErrInvalidCodepoint{Value: string(ref)}
		}
	}

	if val == 0 {
		return utf8.RuneError, ErrEntityWithNull
	}
	if !isChar(rune(val)) {
		return utf8.RuneError, ErrInvalidCodepoint{Value: string(ref)}
	}
	return rune(val), nil
}

func isChar(r rune) bool {
	if r == utf8.RuneError {
		return false
	}

	c := uint32(r)
	if c < 0x100 {
		return (0x9 <= c && c <= 0xa) || c == 0xd || 0x20 <= c
	}
	return (0x100 <= c && c <= 0xd7ff) || (0xe000 <= c && c <= 0xfffd) || (0x10000 <= c && c <= 0x10ffff)
}

// Escape replaces the characters that may not appear literally in text or
// attribute values with the predefined entities. If b contains none of
// them it is returned as is.
func Escape(b []byte) []byte {
	i := bytes.IndexAny(b, `<>&'"`)
	if i < 0 {
		return b
	}

	out := make([]byte, 0, len(b)+16)
	out = append(out, b[:i]...)
	for _, c := range b[i:] {
		switch c {
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '\'':
			out = append(out, "&apos;"...)
		case '"':
			out = append(out, "&quot;"...)
		default:
			out = append(out, c)
		}
	}
	return out
}
