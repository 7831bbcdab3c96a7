package xmltok

import (
	"bytes"
	"io"
	"iter"

	"github.com/lestrrat-go/xmltok/encoding"
	"github.com/pkg/errors"
	"golang.org/x/text/transform"
)

// Reader tokenizes XML read from an io.Reader, or from a byte slice that
// is already in memory. Next blocks while the io.Reader does.
type Reader struct {
	p   parser
	src readerSource
}

// NewReader creates a Reader that pulls input from r as needed
func NewReader(r io.Reader, options ...TokenizerOption) *Reader {
	rdr := &Reader{p: newParser(options)}
	rdr.src.r = r
	rdr.src.size = rdr.p.cfg.bufferSize
	return rdr
}

// NewBytesReader creates a Reader over data. Events point directly into
// data, which must not be modified while the Reader is in use.
func NewBytesReader(data []byte, options ...TokenizerOption) *Reader {
	rdr := &Reader{p: newParser(options)}
	rdr.src.buf = data
	rdr.src.eof = true
	rdr.src.size = rdr.p.cfg.bufferSize
	return rdr
}

// Next returns the next event. At the end of the input it returns an
// EOFEvent, and keeps doing so on subsequent calls. After an error the
// Reader is done, and later calls return EOFEvent.
//
// The bytes of the returned Event are only valid until the next call.
func (r *Reader) Next() (Event, error) {
	return r.p.next(&r.src)
}

// All iterates over the events until EOFEvent (which is not yielded) or
// the first error
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := r.Next()
			if err != nil {
				yield(ev, err)
				return
			}
			if ev.Type() == EOFEvent {
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Offset returns the absolute offset of the next byte to be tokenized.
// After the input was switched to another encoding, offsets count
// decoded bytes.
func (r *Reader) Offset() int64 {
	return r.src.offset()
}

// Encoding returns the name of the encoding announced by a byte order
// mark or the XML declaration, or "" if there was none
func (r *Reader) Encoding() string {
	return r.p.encoding
}

// Depth returns the number of elements that are open
func (r *Reader) Depth() int {
	return r.p.tags.Len()
}

type readerSource struct {
	r    io.Reader
	buf  []byte
	pos  int
	base int64
	size int
	eof  bool
	err  error
}

func (s *readerSource) window() []byte {
	return s.buf[s.pos:]
}

func (s *readerSource) consume(n int) {
	s.pos += n
}

func (s *readerSource) offset() int64 {
	return s.base + int64(s.pos)
}

const maxEmptyReads = 100

func (s *readerSource) fill() error {
	if s.eof {
		return io.EOF
	}
	if s.err != nil {
		return s.err
	}

	// consumed bytes are never looked at again
	if s.pos > 0 {
		n := copy(s.buf, s.buf[s.pos:])
		s.buf = s.buf[:n]
		s.base += int64(s.pos)
		s.pos = 0
	}

	if cap(s.buf)-len(s.buf) < s.size {
		nb := make([]byte, len(s.buf), 2*cap(s.buf)+s.size)
		copy(nb, s.buf)
		s.buf = nb
	}

	for range maxEmptyReads {
		n, err := s.r.Read(s.buf[len(s.buf):cap(s.buf)])
		s.buf = s.buf[:len(s.buf)+n]
		if err != nil {
			if err == io.EOF {
				s.eof = true
			} else {
				s.err = err
			}
			if n > 0 {
				return nil
			}
			return err
		}
		if n > 0 {
			return nil
		}
	}
	s.err = io.ErrNoProgress
	return s.err
}

func (s *readerSource) switchEncoding(name string) error {
	e := encoding.Load(name)
	if e == nil {
		return errors.Wrapf(ErrUnsupportedEncoding, "encoding '%s'", name)
	}

	// the events handed out so far still point into the old buffer, so
	// the decoded input goes into a new one
	rest := bytes.Clone(s.window())
	s.base += int64(s.pos)
	s.pos = 0
	if s.r == nil {
		decoded, err := e.NewDecoder().Bytes(rest)
		if err != nil {
			return errors.Wrapf(err, "failed to decode input as '%s'", name)
		}
		s.buf = decoded
		return nil
	}

	s.r = transform.NewReader(io.MultiReader(bytes.NewReader(rest), s.r), e.NewDecoder())
	s.buf = make([]byte, 0, s.size)
	s.eof = false
	return nil
}
