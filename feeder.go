package xmltok

import (
	"io"
)

// Feeder is the push counterpart of Reader: the caller hands over input in
// chunks of any size with Feed, and Next returns ErrNeedMoreData whenever
// the fed bytes end before the next event does. Feeding the same input
// in different chunks produces the same events.
//
// Events point into the most recently fed chunk when the whole construct
// is inside of it. Only a construct that crosses a chunk boundary is
// copied into storage owned by the Feeder. A chunk must therefore not be
// modified until Next has returned ErrNeedMoreData for it.
//
// A Feeder does not decode its input; the encoding announced by a byte
// order mark or the XML declaration is only recorded.
type Feeder struct {
	p   parser
	src feederSource
}

func NewFeeder(options ...TokenizerOption) *Feeder {
	return &Feeder{p: newParser(options)}
}

// Feed appends chunk to the input
func (f *Feeder) Feed(chunk []byte) error {
	if f.src.closed {
		return ErrClosed
	}
	f.src.feed(chunk)
	return nil
}

// Close marks the end of the input. Bytes fed before Close are still
// tokenized.
func (f *Feeder) Close() {
	f.src.closed = true
}

// Next returns the next event, or ErrNeedMoreData. Once Close was called
// Next never returns ErrNeedMoreData, and the end of input is reported
// with an EOFEvent.
func (f *Feeder) Next() (Event, error) {
	return f.p.next(&f.src)
}

// Offset returns the absolute offset of the next byte to be tokenized
func (f *Feeder) Offset() int64 {
	return f.src.offset()
}

// Encoding returns the name of the encoding announced by a byte order
// mark or the XML declaration, or "" if there was none
func (f *Feeder) Encoding() string {
	return f.p.encoding
}

// Depth returns the number of elements that are open
func (f *Feeder) Depth() int {
	return f.p.tags.Len()
}

// feederSource is either borrowing the caller's chunk (data is that chunk)
// or working on its own accumulator (data is acc).
type feederSource struct {
	data     []byte
	pos      int
	acc      []byte
	borrowed bool
	closed   bool
	base     int64
}

func (s *feederSource) window() []byte {
	return s.data[s.pos:]
}

func (s *feederSource) consume(n int) {
	s.pos += n
}

func (s *feederSource) offset() int64 {
	return s.base + int64(s.pos)
}

func (s *feederSource) fill() error {
	if s.closed {
		return io.EOF
	}
	s.detach()
	return ErrNeedMoreData
}

// detach moves the unconsumed bytes into the accumulator, so that the
// caller is free to reuse its chunk
func (s *feederSource) detach() {
	rest := s.data[s.pos:]
	n := len(rest)
	if s.borrowed {
		s.acc = append(s.acc[:0], rest...)
	} else {
		copy(s.acc, rest)
		s.acc = s.acc[:n]
	}
	s.base += int64(s.pos)
	s.data = s.acc
	s.pos = 0
	s.borrowed = false
}

func (s *feederSource) feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	if s.pos == len(s.data) {
		s.base += int64(s.pos)
		s.data = chunk
		s.pos = 0
		s.borrowed = true
		return
	}
	if s.borrowed {
		s.detach()
	}
	s.acc = append(s.acc, chunk...)
	s.data = s.acc
}

func (s *feederSource) switchEncoding(string) error {
	return nil
}
