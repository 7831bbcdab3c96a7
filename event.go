package xmltok

import (
	"bytes"
	"strconv"
)

// EventType identifies the kind of token an Event carries
type EventType int

const (
	// StartTextEvent is text found before the first markup of a document
	StartTextEvent EventType = iota + 1
	StartEvent
	EndEvent
	EmptyEvent
	TextEvent
	CommentEvent
	CDataEvent
	DeclEvent
	PIEvent
	DocTypeEvent
	EOFEvent
)

func (t EventType) String() string {
	switch t {
	case StartTextEvent:
		return "StartText"
	case StartEvent:
		return "Start"
	case EndEvent:
		return "End"
	case EmptyEvent:
		return "Empty"
	case TextEvent:
		return "Text"
	case CommentEvent:
		return "Comment"
	case CDataEvent:
		return "CData"
	case DeclEvent:
		return "Decl"
	case PIEvent:
		return "PI"
	case DocTypeEvent:
		return "DocType"
	case EOFEvent:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Event is one token of an XML document.
//
// The bytes of an Event point into the tokenizer's input window. They stay
// valid until the next call to Next (or Feed) on the tokenizer that
// produced the Event; copy them if they are needed for longer.
type Event struct {
	typ     EventType
	data    []byte
	nameLen int
}

func newEvent(typ EventType, data []byte) Event {
	return Event{typ: typ, data: data, nameLen: nameLength(data)}
}

func nameLength(b []byte) int {
	for i, c := range b {
		if isBlank(c) {
			return i
		}
	}
	return len(b)
}

func (e Event) Type() EventType {
	return e.typ
}

// Bytes returns the content of the event:
//
//   - Start, Empty: the name followed by the raw attributes
//   - End: the name
//   - StartText, Text: the text, still escaped
//   - Comment: the bytes between "<!--" and "-->"
//   - CData: the bytes between "<![CDATA[" and "]]>"
//   - Decl, PI: the bytes between "<?" and "?>"
//   - DocType: the bytes after "<!DOCTYPE" and the whitespace following it
func (e Event) Bytes() []byte {
	return e.data
}

// Name returns the element name of Start, Empty and End events, the
// target of PI events and "xml" for Decl events
func (e Event) Name() []byte {
	switch e.typ {
	case StartEvent, EmptyEvent, EndEvent, PIEvent, DeclEvent:
		return e.data[:e.nameLen]
	}
	return nil
}

// LocalName returns the part of Name after the namespace prefix
func (e Event) LocalName() []byte {
	name := e.Name()
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Prefix returns the namespace prefix of Name, or nil
func (e Event) Prefix() []byte {
	name := e.Name()
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return nil
}

// RawAttributes returns the bytes after the name of Start, Empty and Decl
// events
func (e Event) RawAttributes() []byte {
	switch e.typ {
	case StartEvent, EmptyEvent, DeclEvent:
		return e.data[e.nameLen:]
	}
	return nil
}

// Target returns the bytes after the target of a PI event, with leading
// whitespace removed
func (e Event) Target() []byte {
	if e.typ != PIEvent {
		return nil
	}
	return bytes.TrimLeft(e.data[e.nameLen:], blanks)
}

// Unescaped returns the text of a StartText or Text event with the
// predefined entities and character references replaced. Other event
// types return their Bytes unchanged.
func (e Event) Unescaped() ([]byte, error) {
	switch e.typ {
	case StartTextEvent, TextEvent:
		return Unescape(e.data)
	}
	return e.data, nil
}

// InternalSubset returns the bytes between '[' and ']' of a DocType
// event, or nil if the declaration has no internal subset
func (e Event) InternalSubset() ([]byte, error) {
	if e.typ != DocTypeEvent {
		return nil, ErrNotDocType
	}
	var q quoteState
	start := q.Index(e.data, '[')
	if start < 0 {
		return nil, nil
	}
	end := bytes.LastIndexByte(e.data, ']')
	if end < start {
		return nil, ErrInvalidMarkup{Construct: "DOCTYPE"}
	}
	return e.data[start+1 : end], nil
}

// Copy returns an Event whose bytes are owned by the caller
func (e Event) Copy() Event {
	if e.data != nil {
		e.data = bytes.Clone(e.data)
	}
	return e
}

func (e Event) String() string {
	switch e.typ {
	case EOFEvent:
		return e.typ.String()
	case StartEvent, EmptyEvent, EndEvent:
		return e.typ.String() + "(" + string(e.Name()) + ")"
	default:
		return e.typ.String() + "(" + strconv.Quote(string(e.data)) + ")"
	}
}
