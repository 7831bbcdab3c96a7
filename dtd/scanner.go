// Package dtd splits the internal subset of a DOCTYPE declaration into
// markup declarations: <!ELEMENT>, <!ATTLIST>, <!ENTITY>, <!NOTATION>,
// comments and processing instructions.
//
// Scanner is a resumable automaton. It can be fed the subset in chunks of
// any size and reports the same declarations regardless of how the input
// was split. Declarations are recognized, not validated.
package dtd

import (
	"bytes"

	"github.com/lestrrat-go/xmltok/quote"
)

type ResultKind int

const (
	// NeedData means that all fed bytes were consumed without completing a
	// declaration
	NeedData ResultKind = iota
	EmitElement
	EmitEntity
	EmitAttList
	EmitNotation
	EmitPI
	EmitComment
	// Unexpected means that a byte did not fit the grammar. The Scanner
	// is back at its start state; the caller decides where to resume,
	// usually at the next '<'.
	Unexpected
)

func (k ResultKind) String() string {
	switch k {
	case NeedData:
		return "NeedData"
	case EmitElement:
		return "Element"
	case EmitEntity:
		return "Entity"
	case EmitAttList:
		return "AttList"
	case EmitNotation:
		return "Notation"
	case EmitPI:
		return "PI"
	case EmitComment:
		return "Comment"
	case Unexpected:
		return "Unexpected"
	default:
		return "Unknown"
	}
}

// FeedResult is the outcome of one call to Scanner.Feed.
//
// For the Emit kinds N is the number of bytes of the fed slice that belong
// to the declaration, up to and including its closing '>'. For NeedData N
// is the length of the fed slice. For Unexpected N is the offset of the
// offending byte, which is Byte.
type FeedResult struct {
	Kind ResultKind
	N    int
	Byte byte
}

// Scanner recognizes declarations in an internal subset. The zero value
// is ready to use.
type Scanner struct {
	state state
	quote quote.State
	// how much of "--" (comments) or "?" (PIs) was seen right before the
	// current position
	matched int
}

func isBlank(c byte) bool {
	return c == 0x20 || c == 0x9 || c == 0xa || c == 0xd
}

// Reset puts the Scanner back into its start state
func (s *Scanner) Reset() {
	s.state = stStart
	s.quote = quote.Outside
	s.matched = 0
}

// InProgress reports whether the Scanner is inside of a declaration
func (s *Scanner) InProgress() bool {
	return s.state != stStart
}

func (s *Scanner) emit(kind ResultKind, n int) FeedResult {
	s.Reset()
	return FeedResult{Kind: kind, N: n}
}

func (s *Scanner) unexpected(i int, c byte) FeedResult {
	s.Reset()
	return FeedResult{Kind: Unexpected, N: i, Byte: c}
}

// Feed advances the Scanner over b. It stops at the end of the first
// declaration that completes in b, at the first unexpected byte, or at
// the end of b. Callers feed b[N:] next after an Emit result.
func (s *Scanner) Feed(b []byte) FeedResult {
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch s.state {
		case stStart:
			switch {
			case c == '<':
				s.state = stSawLt
			case isBlank(c):
			default:
				return s.unexpected(i, c)
			}
		case stSawLt:
			switch c {
			case '!':
				s.state = stSawBang
			case '?':
				s.state = stPIBody
				s.matched = 0
			default:
				return s.unexpected(i, c)
			}
		case stSawBang:
			switch c {
			case 'E':
				s.state = stE
			case 'A':
				s.state = stA
			case 'N':
				s.state = stN
			case '-':
				s.state = stDash
			default:
				return s.unexpected(i, c)
			}
		case stE:
			switch c {
			case 'L':
				s.state = stEL
			case 'N':
				s.state = stEN
			default:
				return s.unexpected(i, c)
			}
		case stDash:
			if c != '-' {
				return s.unexpected(i, c)
			}
			s.state = stCommentBody
			s.matched = 0
		case stELEMENT, stENTITY, stATTLIST, stNOTATION:
			if !isBlank(c) {
				return s.unexpected(i, c)
			}
			s.state = keywordBodies[s.state]
			s.quote = quote.Outside
		case stElementBody:
			// element content models have nothing quoted
			j := bytes.IndexByte(b[i:], '>')
			if j < 0 {
				return FeedResult{Kind: NeedData, N: len(b)}
			}
			return s.emit(EmitElement, i+j+1)
		case stEntityBody, stAttListBody, stNotationBody:
			kind := bodyKind(s.state)
			j := s.quote.Index(b[i:], '>')
			if j < 0 {
				return FeedResult{Kind: NeedData, N: len(b)}
			}
			return s.emit(kind, i+j+1)
		case stCommentBody:
			for ; i < len(b); i++ {
				switch c := b[i]; {
				case c == '>' && s.matched == 2:
					return s.emit(EmitComment, i+1)
				case c == '-':
					if s.matched < 2 {
						s.matched++
					}
				default:
					s.matched = 0
				}
			}
			return FeedResult{Kind: NeedData, N: len(b)}
		case stPIBody:
			for ; i < len(b); i++ {
				switch c := b[i]; {
				case c == '>' && s.matched == 1:
					return s.emit(EmitPI, i+1)
				case c == '?':
					s.matched = 1
				default:
					s.matched = 0
				}
			}
			return FeedResult{Kind: NeedData, N: len(b)}
		default:
			t, ok := keywordTransitions[s.state]
			if !ok || c != t.c {
				return s.unexpected(i, c)
			}
			s.state = t.next
		}
	}
	return FeedResult{Kind: NeedData, N: len(b)}
}

func bodyKind(s state) ResultKind {
	switch s {
	case stEntityBody:
		return EmitEntity
	case stAttListBody:
		return EmitAttList
	default:
		return EmitNotation
	}
}
