package xmltok

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrNeedMoreData is returned by Feeder.Next when the fed bytes end
	// before the next event is complete. Feed more bytes (or Close) and
	// call Next again.
	ErrNeedMoreData = errors.New("need more data")

	ErrEntityWithNull      = errors.New("entity resolves to a null character")
	ErrInvalidXMLDecl      = errors.New("invalid XML declaration")
	ErrVersionRequired     = errors.New("XML declaration requires a version")
	ErrInvalidStandalone   = errors.New("standalone must be 'yes' or 'no'")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrDoubleHyphen        = errors.New("'--' not allowed in comment")
	ErrNotDocType          = errors.New("event is not a DOCTYPE")
	ErrNotDecl             = errors.New("event is not an XML declaration")
	ErrClosed              = errors.New("feeder is closed")
)

// SyntaxError is a fatal tokenizing error. After it is returned the
// tokenizer only produces EOFEvent.
type SyntaxError struct {
	// Offset is the absolute byte offset of the start of the construct
	// that could not be tokenized.
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml syntax error at offset %d: %s", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ErrUnexpectedEOF reports that the input ended inside of a construct
type ErrUnexpectedEOF struct {
	Construct string
}

func (e ErrUnexpectedEOF) Error() string {
	return "unexpected end of input inside " + e.Construct
}

// ErrUnexpectedBang reports a byte after "<!" that does not start a
// comment, a CDATA section or a DOCTYPE declaration
type ErrUnexpectedBang struct {
	Byte byte
}

func (e ErrUnexpectedBang) Error() string {
	return "unexpected byte " + strconv.QuoteRune(rune(e.Byte)) + " after '<!'"
}

// ErrInvalidMarkup reports markup whose opening sequence is not valid,
// such as "<!-x" or "<![CDATUM["
type ErrInvalidMarkup struct {
	Construct string
}

func (e ErrInvalidMarkup) Error() string {
	return "invalid " + e.Construct + " markup"
}

// ErrMismatchedEndTag reports an end tag that does not close the
// innermost open element
type ErrMismatchedEndTag struct {
	Expected string
	Found    string
}

func (e ErrMismatchedEndTag) Error() string {
	return "closing tag does not match ('" + e.Expected + "' != '" + e.Found + "')"
}

// ErrUnmatchedEndTag reports an end tag while no element is open
type ErrUnmatchedEndTag struct {
	Found string
}

func (e ErrUnmatchedEndTag) Error() string {
	return "closing tag '" + e.Found + "' without an open element"
}

// ErrUnrecognizedEntity reports an entity reference that is neither
// predefined nor known to the resolver
type ErrUnrecognizedEntity struct {
	Name string
}

func (e ErrUnrecognizedEntity) Error() string {
	return "unrecognized entity '&" + e.Name + ";'"
}

// ErrUnterminatedEntity reports an '&' without a closing ';'
type ErrUnterminatedEntity struct {
	Offset int
}

func (e ErrUnterminatedEntity) Error() string {
	return "unterminated entity reference starting at offset " + strconv.Itoa(e.Offset)
}

// ErrInvalidCodepoint reports a character reference that does not name a
// valid character
type ErrInvalidCodepoint struct {
	Value string
}

func (e ErrInvalidCodepoint) Error() string {
	return "invalid character reference '&#" + e.Value + ";'"
}

// ErrDuplicateAttribute reports an attribute name that appears twice in
// one tag
type ErrDuplicateAttribute struct {
	Name string
}

func (e ErrDuplicateAttribute) Error() string {
	return "attribute '" + e.Name + "' duplicated"
}

// ErrMalformedAttribute reports attribute bytes that cannot be split into
// name="value" pairs
type ErrMalformedAttribute struct {
	Offset int
	Reason string
}

func (e ErrMalformedAttribute) Error() string {
	return "malformed attribute at offset " + strconv.Itoa(e.Offset) + ": " + e.Reason
}
