package dtd

import (
	"bytes"
	"io"
	"iter"

	"github.com/lestrrat-go/pdebug/v3"
)

// Reader splits an internal subset read from an io.Reader into
// declarations. Whitespace between declarations is skipped. Bytes that
// cannot start a declaration are skipped up to the next '<'.
type Reader struct {
	cfg     config
	scanner Scanner
	r       io.Reader
	buf     []byte
	pos     int
	base    int64
	eof     bool

	// bytes of a declaration that started in an earlier buffer
	decl     []byte
	start    int64
	skipping bool
	skipped  int
}

func NewReader(r io.Reader, options ...ReaderOption) *Reader {
	cfg := newConfig(options)
	return &Reader{
		cfg: cfg,
		r:   r,
		buf: make([]byte, 0, cfg.bufferSize),
	}
}

// Skipped returns how many times input had to be skipped to recover from
// an unexpected byte
func (r *Reader) Skipped() int {
	return r.skipped
}

func (r *Reader) offset() int64 {
	return r.base + int64(r.pos)
}

const maxEmptyReads = 100

// fill is only called once the buffer is exhausted
func (r *Reader) fill() error {
	if r.eof {
		return io.EOF
	}
	r.base += int64(len(r.buf))
	r.buf = r.buf[:0]
	r.pos = 0
	for range maxEmptyReads {
		n, err := r.r.Read(r.buf[:cap(r.buf)])
		r.buf = r.buf[:n]
		if err == io.EOF {
			r.eof = true
			if n > 0 {
				return nil
			}
			return io.EOF
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return io.ErrNoProgress
}

// Next returns the next declaration, or io.EOF at the end of the input.
// The bytes of the returned Declaration are only valid until the next
// call.
func (r *Reader) Next() (Declaration, error) {
	if !r.scanner.InProgress() {
		r.decl = r.decl[:0]
	}

	for {
		if r.pos == len(r.buf) {
			if err := r.fill(); err != nil {
				if err == io.EOF && r.scanner.InProgress() {
					r.scanner.Reset()
					r.decl = r.decl[:0]
					return Declaration{}, &IncompleteError{Offset: r.start}
				}
				return Declaration{}, err
			}
			continue
		}

		b := r.buf[r.pos:]
		if r.skipping {
			i := bytes.IndexByte(b, '<')
			if i < 0 {
				r.pos = len(r.buf)
				continue
			}
			r.pos += i
			r.skipping = false
			continue
		}

		if !r.scanner.InProgress() {
			i := 0
			for i < len(b) && isBlank(b[i]) {
				i++
			}
			r.pos += i
			if i == len(b) {
				continue
			}
			b = b[i:]
			r.start = r.offset()
		}

		res := r.scanner.Feed(b)
		switch res.Kind {
		case NeedData:
			r.decl = append(r.decl, b...)
			r.pos = len(r.buf)
		case Unexpected:
			err := &UnexpectedByteError{Offset: r.offset() + int64(res.N), Byte: res.Byte}
			r.decl = r.decl[:0]
			r.pos += res.N
			r.skipping = true
			r.skipped++
			if pdebug.Enabled {
				pdebug.Printf("dtd.Reader: %s, skipping to the next '<'", err)
			}
			if !r.cfg.skipInvalid {
				return Declaration{}, err
			}
		default:
			r.pos += res.N
			d := Declaration{Kind: res.Kind, Offset: r.start}
			if len(r.decl) == 0 {
				d.Bytes = b[:res.N]
			} else {
				r.decl = append(r.decl, b[:res.N]...)
				d.Bytes = r.decl
			}
			return d, nil
		}
	}
}

// All iterates over the declarations until the end of the input. An
// error is yielded once and ends the iteration, except for
// *UnexpectedByteError after which the Reader has already recovered.
func (r *Reader) All() iter.Seq2[Declaration, error] {
	return func(yield func(Declaration, error) bool) {
		for {
			d, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				if !yield(d, err) {
					return
				}
				if _, ok := err.(*UnexpectedByteError); ok {
					continue
				}
				return
			}
			if !yield(d, nil) {
				return
			}
		}
	}
}

// Parse splits subset, usually the result of Event.InternalSubset, into
// declarations. The Bytes of the returned declarations point into subset.
func Parse(subset []byte, options ...ReaderOption) ([]Declaration, error) {
	cfg := newConfig(options)

	var s Scanner
	var decls []Declaration
	pos := 0
	for {
		for pos < len(subset) && isBlank(subset[pos]) {
			pos++
		}
		if pos == len(subset) {
			return decls, nil
		}

		res := s.Feed(subset[pos:])
		switch res.Kind {
		case NeedData:
			return decls, &IncompleteError{Offset: int64(pos)}
		case Unexpected:
			at := pos + res.N
			if !cfg.skipInvalid {
				return decls, &UnexpectedByteError{Offset: int64(at), Byte: res.Byte}
			}
			i := bytes.IndexByte(subset[at:], '<')
			if i < 0 {
				return decls, nil
			}
			pos = at + i
		default:
			decls = append(decls, Declaration{Kind: res.Kind, Offset: int64(pos), Bytes: subset[pos : pos+res.N]})
			pos += res.N
		}
	}
}
