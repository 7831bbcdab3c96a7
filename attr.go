package xmltok

import (
	"bytes"
	"iter"
)

// Attribute is one name="value" pair of a start tag or of the XML
// declaration. Value is still escaped; see Unescape.
type Attribute struct {
	Key   []byte
	Value []byte
}

// Unescaped returns Value with entity and character references replaced
func (a Attribute) Unescaped() ([]byte, error) {
	return Unescape(a.Value)
}

// Attributes iterates over the attributes of a Start, Empty or Decl
// event. Iteration stops after the first error.
func (e Event) Attributes() iter.Seq2[Attribute, error] {
	return attributes(e.RawAttributes())
}

// Attribute returns the value of the attribute named key
func (e Event) Attribute(key string) ([]byte, bool, error) {
	for attr, err := range e.Attributes() {
		if err != nil {
			return nil, false, err
		}
		if string(attr.Key) == key {
			return attr.Value, true, nil
		}
	}
	return nil, false, nil
}

func attributes(b []byte) iter.Seq2[Attribute, error] {
	return func(yield func(Attribute, error) bool) {
		var seen [][]byte
		pos := 0
		for {
			attr, next, err := nextAttribute(b, pos)
			if err != nil {
				yield(Attribute{}, err)
				return
			}
			if next < 0 {
				return
			}
			for _, k := range seen {
				if bytes.Equal(k, attr.Key) {
					yield(Attribute{}, ErrDuplicateAttribute{Name: string(attr.Key)})
					return
				}
			}
			seen = append(seen, attr.Key)
			if !yield(attr, nil) {
				return
			}
			pos = next
		}
	}
}

// nextAttribute parses the attribute starting at or after pos. It returns
// the position after the attribute, or -1 when only whitespace is left.
func nextAttribute(b []byte, pos int) (Attribute, int, error) {
	pos = skipBlanks(b, pos)
	if pos >= len(b) {
		return Attribute{}, -1, nil
	}

	start := pos
	for pos < len(b) && b[pos] != '=' && !isBlank(b[pos]) {
		if b[pos] == '"' || b[pos] == '\'' {
			return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "quote inside attribute name"}
		}
		pos++
	}
	key := b[start:pos]
	if len(key) == 0 {
		return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "attribute name required"}
	}

	pos = skipBlanks(b, pos)
	if pos >= len(b) || b[pos] != '=' {
		return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "'=' required after '" + string(key) + "'"}
	}
	pos = skipBlanks(b, pos+1)
	if pos >= len(b) || (b[pos] != '"' && b[pos] != '\'') {
		return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "quoted value required for '" + string(key) + "'"}
	}

	qch := b[pos]
	end := bytes.IndexByte(b[pos+1:], qch)
	if end < 0 {
		return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "unterminated value for '" + string(key) + "'"}
	}
	value := b[pos+1 : pos+1+end]
	pos += end + 2
	if pos < len(b) && !isBlank(b[pos]) {
		return Attribute{}, -1, ErrMalformedAttribute{Offset: pos, Reason: "whitespace required between attributes"}
	}
	return Attribute{Key: key, Value: value}, pos, nil
}

func skipBlanks(b []byte, pos int) int {
	for pos < len(b) && isBlank(b[pos]) {
		pos++
	}
	return pos
}
