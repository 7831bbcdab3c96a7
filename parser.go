package xmltok

import (
	"bytes"
	"io"

	"github.com/lestrrat-go/pdebug/v3"
	"github.com/lestrrat-go/xmltok/encoding"
	"github.com/lestrrat-go/xmltok/quote"
	"github.com/pkg/errors"
)

type quoteState = quote.State

type parserState int

const (
	// stateClosed: about to scan for '<'
	stateClosed parserState = iota
	// stateOpened: '<' consumed, about to classify the markup
	stateOpened
	// stateExit: terminal, only EOFEvent from here on
	stateExit
)

func (s parserState) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpened:
		return "opened"
	case stateExit:
		return "exit"
	default:
		return "unknown"
	}
}

type bangKind int

const (
	bangNone bangKind = iota
	bangComment
	bangCData
	bangDocType
)

const blanks = " \t\r\n"

func isBlank(c byte) bool {
	return c == 0x20 || c == 0x9 || c == 0xa || c == 0xd
}

// source is the byte fetching glue between the parser and wherever the
// bytes come from. The parser never looks at bytes before window()[0]
// again once they are consumed.
type source interface {
	// window returns the bytes available but not yet consumed
	window() []byte
	// consume marks the first n bytes of the window as read
	consume(n int)
	// fill makes more bytes available. It returns io.EOF once the input
	// is exhausted, and ErrNeedMoreData if the caller has to push more
	// bytes first. Slices obtained from window before the call are
	// invalid afterwards.
	fill() error
	// offset returns the absolute offset of window()[0]
	offset() int64
	// switchEncoding decodes the rest of the input from the named
	// encoding
	switchEncoding(name string) error
}

// parser is the tokenizer automaton. Everything it needs to resume after
// a source ran dry is stored here.
type parser struct {
	cfg   config
	state parserState
	tags  tagStack

	// the Start of an expanded empty element was returned, the End is due
	pendingEnd bool
	sawMarkup  bool
	checkedBOM bool
	// encoding switched because of a BOM or a declaration
	switched bool
	encoding string

	// resumable terminator search over the current construct
	scanned int
	quote   quoteState
	bang    bangKind
	depth   int
	// inside a comment or a PI of the internal subset, and how much of
	// its terminator was seen
	opaque  opaqueKind
	matched int
}

func newParser(options []TokenizerOption) parser {
	return parser{cfg: newConfig(options)}
}

func (p *parser) resetScan() {
	p.scanned = 0
	p.quote = quote.Outside
	p.bang = bangNone
	p.depth = 0
	p.opaque = opaqueNone
	p.matched = 0
}

func (p *parser) next(src source) (ev Event, err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("parser.next (state = %s, offset = %d)", p.state, src.offset()).BindError(&err)
		defer g.End()
	}

	if p.pendingEnd {
		p.pendingEnd = false
		name, _ := p.tags.Pop()
		return Event{typ: EndEvent, data: name, nameLen: len(name)}, nil
	}

	for {
		switch p.state {
		case stateExit:
			return Event{typ: EOFEvent}, nil
		case stateClosed:
			ev, ok, err := p.readText(src)
			if err != nil {
				return Event{}, p.handleError(err)
			}
			if ok {
				return ev, nil
			}
		case stateOpened:
			ev, err := p.readMarkup(src)
			if err != nil {
				return Event{}, p.handleError(err)
			}
			return ev, nil
		}
	}
}

// handleError moves the parser to stateExit for anything but a request
// for more data
func (p *parser) handleError(err error) error {
	if errors.Is(err, ErrNeedMoreData) {
		return err
	}
	p.state = stateExit
	p.pendingEnd = false
	if _, ok := err.(*SyntaxError); ok {
		return err
	}
	return errors.Wrap(err, "failed to read input")
}

func syntaxError(offset int64, err error) error {
	return &SyntaxError{Offset: offset, Err: err}
}

// detectBOM consumes a byte order mark at the very start of the input
func (p *parser) detectBOM(src source) error {
	for len(src.window()) < 3 {
		if err := src.fill(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
	}
	p.checkedBOM = true

	name, n := encoding.DetectBOM(src.window())
	if n == 0 {
		return nil
	}
	if pdebug.Enabled {
		pdebug.Printf("byte order mark for %s", name)
	}
	src.consume(n)
	p.encoding = name
	p.switched = true
	if name != encoding.UTF8 && p.cfg.decodeInput {
		return src.switchEncoding(name)
	}
	return nil
}

// readText scans for the next '<'. The bytes before it become a text
// event, unless they are empty (after trimming). The second return value
// is false if no event was produced and the caller should go on with the
// markup.
func (p *parser) readText(src source) (Event, bool, error) {
	if !p.checkedBOM {
		if err := p.detectBOM(src); err != nil {
			return Event{}, false, err
		}
	}

	for {
		b := src.window()
		if i := bytes.IndexByte(b[p.scanned:], '<'); i >= 0 {
			i += p.scanned
			p.scanned = 0
			src.consume(i + 1)
			p.state = stateOpened
			ev, ok := p.textEvent(b[:i])
			p.sawMarkup = true
			return ev, ok, nil
		}

		p.scanned = len(b)
		if err := src.fill(); err != nil {
			if err != io.EOF {
				return Event{}, false, err
			}

			p.scanned = 0
			b = src.window()
			src.consume(len(b))
			if ev, ok := p.textEvent(b); ok {
				return ev, true, nil
			}
			p.state = stateExit
			return Event{typ: EOFEvent}, true, nil
		}
	}
}

func (p *parser) textEvent(text []byte) (Event, bool) {
	if len(text) == 0 {
		return Event{}, false
	}

	if p.cfg.trimTextStart {
		text = bytes.TrimLeft(text, blanks)
	}
	if p.cfg.trimTextEnd {
		text = bytes.TrimRight(text, blanks)
	}
	if len(text) == 0 && p.cfg.dropEmptyText {
		return Event{}, false
	}

	typ := TextEvent
	if !p.sawMarkup {
		typ = StartTextEvent
	}
	return Event{typ: typ, data: text}, true
}

// peek makes sure that at least n bytes after the '<' of the current
// markup are available
func (p *parser) peek(src source, n int, construct string) ([]byte, error) {
	for {
		b := src.window()
		if len(b) >= n {
			return b, nil
		}
		if err := src.fill(); err != nil {
			if err == io.EOF {
				return nil, syntaxError(src.offset()-1, ErrUnexpectedEOF{Construct: construct})
			}
			return nil, err
		}
	}
}

// scan runs find over the window until it reports the position of the
// '>' that closes the current markup. find is handed the number of bytes
// examined by earlier calls so that no byte is looked at twice. The
// returned markup excludes the '>', which is consumed.
func (p *parser) scan(src source, construct string, find func(b []byte, from int) int) ([]byte, error) {
	for {
		b := src.window()
		if end := find(b, p.scanned); end >= 0 {
			p.resetScan()
			src.consume(end + 1)
			return b[:end], nil
		}

		p.scanned = len(b)
		if err := src.fill(); err != nil {
			if err == io.EOF {
				return nil, syntaxError(src.offset()-1, ErrUnexpectedEOF{Construct: construct})
			}
			return nil, err
		}
	}
}

func (p *parser) readMarkup(src source) (Event, error) {
	// the '<' is already consumed
	start := src.offset() - 1
	b, err := p.peek(src, 1, "markup")
	if err != nil {
		return Event{}, err
	}

	var ev Event
	switch b[0] {
	case '/':
		ev, err = p.readEnd(src, start)
	case '!':
		ev, err = p.readBang(src, start)
	case '?':
		ev, err = p.readQuestionMark(src, start)
	default:
		ev, err = p.readStart(src, start)
	}

	// only a declaration in front of all other markup may switch the
	// encoding
	if err == nil {
		p.switched = true
	}
	return ev, err
}

func findGt(b []byte, from int) int {
	if i := bytes.IndexByte(b[from:], '>'); i >= 0 {
		return from + i
	}
	return -1
}

// findSuffixed finds a '>' preceded by suffix, where suffix may not
// overlap the first min bytes of the markup
func findSuffixed(b []byte, from int, suffix string, min int) int {
	for {
		i := findGt(b, from)
		if i < 0 {
			return -1
		}
		if i >= min && string(b[i-len(suffix):i]) == suffix {
			return i
		}
		from = i + 1
	}
}

func (p *parser) readEnd(src source, start int64) (Event, error) {
	markup, err := p.scan(src, "closing tag", findGt)
	if err != nil {
		return Event{}, err
	}
	p.state = stateClosed

	name := markup[1:]
	if p.cfg.trimMarkupNames {
		name = bytes.TrimRight(name, blanks)
	}

	if p.cfg.checkEndNames {
		expected, ok := p.tags.Top()
		switch {
		case !ok:
			return Event{}, syntaxError(start, ErrUnmatchedEndTag{Found: string(name)})
		case !bytes.Equal(expected, name):
			return Event{}, syntaxError(start, ErrMismatchedEndTag{Expected: string(expected), Found: string(name)})
		}
	}
	p.tags.Pop()
	return Event{typ: EndEvent, data: name, nameLen: len(name)}, nil
}

const (
	cdataPrefix   = "![CDATA["
	doctypePrefix = "!DOCTYPE"
	commentPrefix = "!--"
)

func (p *parser) readBang(src source, start int64) (Event, error) {
	if p.bang == bangNone {
		b, err := p.peek(src, 2, "markup")
		if err != nil {
			return Event{}, err
		}

		var n int
		switch b[1] {
		case '-':
			p.bang, n = bangComment, len(commentPrefix)
		case '[':
			p.bang, n = bangCData, len(cdataPrefix)
		case 'D', 'd':
			p.bang, n = bangDocType, len(doctypePrefix)
		default:
			return Event{}, syntaxError(start, ErrUnexpectedBang{Byte: b[1]})
		}

		b, err = p.peek(src, n, p.bang.construct())
		if err != nil {
			p.bang = bangNone
			return Event{}, err
		}
		if !p.bang.hasPrefix(b) {
			construct := p.bang.construct()
			p.bang = bangNone
			return Event{}, syntaxError(start, ErrInvalidMarkup{Construct: construct})
		}
	}

	var find func([]byte, int) int
	switch p.bang {
	case bangComment:
		find = func(b []byte, from int) int {
			return findSuffixed(b, from, "--", len(commentPrefix)+2)
		}
	case bangCData:
		find = func(b []byte, from int) int {
			return findSuffixed(b, from, "]]", len(cdataPrefix)+2)
		}
	case bangDocType:
		find = p.findDocTypeEnd
	}

	kind := p.bang
	markup, err := p.scan(src, kind.construct(), find)
	if err != nil {
		return Event{}, err
	}
	p.state = stateClosed

	switch kind {
	case bangComment:
		content := markup[len(commentPrefix) : len(markup)-2]
		if p.cfg.checkComments {
			if bytes.Contains(content, []byte("--")) || bytes.HasSuffix(content, []byte("-")) {
				return Event{}, syntaxError(start, ErrDoubleHyphen)
			}
		}
		return Event{typ: CommentEvent, data: content}, nil
	case bangCData:
		return Event{typ: CDataEvent, data: markup[len(cdataPrefix) : len(markup)-2]}, nil
	default:
		content := markup[len(doctypePrefix):]
		if len(content) == 0 || !isBlank(content[0]) {
			return Event{}, syntaxError(start, ErrInvalidMarkup{Construct: "DOCTYPE"})
		}
		content = bytes.TrimLeft(content, blanks)
		if len(content) == 0 {
			return Event{}, syntaxError(start, ErrInvalidMarkup{Construct: "DOCTYPE"})
		}
		return Event{typ: DocTypeEvent, data: content}, nil
	}
}

type opaqueKind int

const (
	opaqueNone opaqueKind = iota
	opaqueComment
	opaquePI
)

// findDocTypeEnd counts nested '<' so that the '>' of declarations in the
// internal subset does not end the DOCTYPE. Quoted literals are skipped,
// and so are comments and PIs, where quotes do not pair up.
func (p *parser) findDocTypeEnd(b []byte, from int) int {
	for i := from; i < len(b); i++ {
		c := b[i]
		switch p.opaque {
		case opaqueComment:
			switch {
			case c == '>' && p.matched >= 2:
				p.opaque = opaqueNone
				p.depth--
			case c == '-':
				p.matched++
			default:
				p.matched = 0
			}
			continue
		case opaquePI:
			switch {
			case c == '>' && p.matched == 1:
				p.opaque = opaqueNone
				p.depth--
			case c == '?':
				p.matched = 1
			default:
				p.matched = 0
			}
			continue
		}

		switch p.quote {
		case quote.InSingle:
			if c == '\'' {
				p.quote = quote.Outside
			}
			continue
		case quote.InDouble:
			if c == '"' {
				p.quote = quote.Outside
			}
			continue
		}

		switch c {
		case '\'':
			p.quote = quote.InSingle
		case '"':
			p.quote = quote.InDouble
		case '<':
			p.depth++
		case '?':
			if i > 0 && b[i-1] == '<' {
				p.opaque, p.matched = opaquePI, 0
			}
		case '-':
			if i >= 3 && string(b[i-3:i+1]) == "<!--" {
				p.opaque, p.matched = opaqueComment, 0
			}
		case '>':
			if p.depth == 0 {
				return i
			}
			p.depth--
		}
	}
	return -1
}

func (k bangKind) construct() string {
	switch k {
	case bangComment:
		return "comment"
	case bangCData:
		return "CDATA"
	case bangDocType:
		return "DOCTYPE"
	default:
		return "markup"
	}
}

func (k bangKind) hasPrefix(b []byte) bool {
	switch k {
	case bangComment:
		return bytes.HasPrefix(b, []byte(commentPrefix))
	case bangCData:
		return bytes.HasPrefix(b, []byte(cdataPrefix))
	case bangDocType:
		return len(b) >= len(doctypePrefix) && bytes.EqualFold(b[:len(doctypePrefix)], []byte(doctypePrefix))
	}
	return false
}

func (p *parser) readQuestionMark(src source, start int64) (Event, error) {
	markup, err := p.scan(src, "processing instruction", func(b []byte, from int) int {
		return findSuffixed(b, from, "?", 2)
	})
	if err != nil {
		return Event{}, err
	}
	p.state = stateClosed

	content := markup[1 : len(markup)-1]
	// a bare "xml" target is an ordinary PI
	if len(content) <= 3 || !bytes.HasPrefix(content, []byte("xml")) || !isBlank(content[3]) {
		return newEvent(PIEvent, content), nil
	}

	ev := Event{typ: DeclEvent, data: content, nameLen: 3}
	if p.switched || !p.cfg.decodeInput {
		return ev, nil
	}

	// a broken declaration is reported by XMLDecl, not here
	decl, err := ev.XMLDecl()
	if err != nil || decl.Encoding == nil {
		return ev, nil
	}
	p.switched = true
	p.encoding = string(decl.Encoding)
	if encoding.IsUTF8(p.encoding) {
		return ev, nil
	}
	if err := src.switchEncoding(p.encoding); err != nil {
		return Event{}, syntaxError(start, err)
	}
	return ev, nil
}

func (p *parser) readStart(src source, start int64) (Event, error) {
	markup, err := p.scan(src, "element", func(b []byte, from int) int {
		if i := p.quote.Index(b[from:], '>'); i >= 0 {
			return from + i
		}
		return -1
	})
	if err != nil {
		return Event{}, err
	}
	p.state = stateClosed

	typ := StartEvent
	if l := len(markup); l > 0 && markup[l-1] == '/' {
		typ = EmptyEvent
		markup = markup[:l-1]
	}

	ev := newEvent(typ, markup)
	if ev.nameLen == 0 {
		return Event{}, syntaxError(start, ErrInvalidMarkup{Construct: "element"})
	}

	if typ == EmptyEvent {
		if !p.cfg.expandEmpty {
			return ev, nil
		}
		ev.typ = StartEvent
		p.pendingEnd = true
	}
	p.tags.Push(ev.Name())
	return ev, nil
}
