package dtd

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identBufferSize struct{}
type identSkipInvalid struct{}

// ReaderOption configures a Reader or Parse
type ReaderOption interface {
	Option
	readerOption()
}

type readerOption struct{ Option }

func (*readerOption) readerOption() {}

// WithSkipInvalid specifies if bytes that do not start a declaration are
// skipped silently. When false, the Reader reports them as an
// *UnexpectedByteError before skipping ahead to the next '<'.
func WithSkipInvalid(v bool) ReaderOption {
	return &readerOption{option.New(identSkipInvalid{}, v)}
}

// WithBufferSize specifies how many bytes a Reader asks its io.Reader for
// at a time
func WithBufferSize(v int) ReaderOption {
	return &readerOption{option.New(identBufferSize{}, v)}
}

type config struct {
	bufferSize  int
	skipInvalid bool
}

func newConfig(options []ReaderOption) config {
	cfg := config{
		bufferSize:  4096,
		skipInvalid: true,
	}
	for _, o := range options {
		switch o.Ident() {
		case identBufferSize{}:
			if v := o.Value().(int); v > 0 {
				cfg.bufferSize = v
			}
		case identSkipInvalid{}:
			cfg.skipInvalid = o.Value().(bool)
		}
	}
	return cfg
}
