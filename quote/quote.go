// Package quote implements the terminator search shared by the document
// and the declaration tokenizers: it finds the first occurrence of a
// terminator byte that is not inside a '...' or "..." span.
//
// The scan is resumable. A State left over from a scan that ran out of
// bytes is carried into the scan of the next chunk, so a quoted value that
// is split across two chunks is still treated as quoted.
package quote

// State is the quoting context of a scan
type State int

const (
	Outside State = iota
	InSingle
	InDouble
)

func (s State) String() string {
	switch s {
	case Outside:
		return "Outside"
	case InSingle:
		return "InSingle"
	case InDouble:
		return "InDouble"
	default:
		return "Unknown"
	}
}

// Index returns the index of the first term in b that occurs while the
// scan is Outside of any quoted span, or -1 if there is none. s is updated
// to the quoting context right after the returned index, or at the end of
// b when nothing was found.
func (s *State) Index(b []byte, term byte) int {
	st := *s
	for i, c := range b {
		switch st {
		case Outside:
			switch c {
			case term:
				*s = st
				return i
			case '\'':
				st = InSingle
			case '"':
				st = InDouble
			}
		case InSingle:
			if c == '\'' {
				st = Outside
			}
		case InDouble:
			if c == '"' {
				st = Outside
			}
		}
	}
	*s = st
	return -1
}

// Index is a convenience for a scan starting Outside of any quotes.
func Index(b []byte, term byte) int {
	var s State
	return s.Index(b, term)
}
