package xmltok

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identBufferSize struct{}
type identCheckComments struct{}
type identCheckEndNames struct{}
type identDecodeInput struct{}
type identDropEmptyText struct{}
type identExpandEmptyElements struct{}
type identTrimMarkupNames struct{}
type identTrimText struct{}
type identTrimTextEnd struct{}

// TokenizerOption configures a Reader, a Feeder or Tokenize
type TokenizerOption interface {
	Option
	tokenizerOption()
}

type tokenizerOption struct{ Option }

func (*tokenizerOption) tokenizerOption() {}

// WithTrimText specifies if leading and trailing whitespace is removed from
// text events
func WithTrimText(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identTrimText{}, v)}
}

// WithTrimTextEnd specifies if trailing whitespace is removed from text
// events. Leading whitespace is kept unless WithTrimText is also given.
func WithTrimTextEnd(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identTrimTextEnd{}, v)}
}

// WithDropEmptyText specifies if text that is empty after trimming is
// swallowed instead of being returned as an empty text event
func WithDropEmptyText(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identDropEmptyText{}, v)}
}

// WithExpandEmptyElements specifies if <a/> is reported as a StartEvent
// followed by an EndEvent instead of an EmptyEvent
func WithExpandEmptyElements(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identExpandEmptyElements{}, v)}
}

// WithCheckEndNames specifies if end tags are checked against the open
// start tags. Only disable this for input that is known to be well formed.
func WithCheckEndNames(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identCheckEndNames{}, v)}
}

// WithTrimMarkupNames specifies if trailing whitespace in end tags
// (</a  >) is removed from the name
func WithTrimMarkupNames(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identTrimMarkupNames{}, v)}
}

// WithCheckComments specifies if comments containing "--" are rejected
func WithCheckComments(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identCheckComments{}, v)}
}

// WithDecodeInput specifies if a Reader converts input to UTF-8 when a
// byte order mark or the XML declaration announces another encoding.
// Feeders never decode.
func WithDecodeInput(v bool) TokenizerOption {
	return &tokenizerOption{option.New(identDecodeInput{}, v)}
}

// WithBufferSize specifies how many bytes a Reader asks its io.Reader for
// at a time
func WithBufferSize(v int) TokenizerOption {
	return &tokenizerOption{option.New(identBufferSize{}, v)}
}

const defaultBufferSize = 4096

type config struct {
	bufferSize      int
	checkComments   bool
	checkEndNames   bool
	decodeInput     bool
	dropEmptyText   bool
	expandEmpty     bool
	trimMarkupNames bool
	trimTextStart   bool
	trimTextEnd     bool
}

func newConfig(options []TokenizerOption) config {
	cfg := config{
		bufferSize:      defaultBufferSize,
		checkEndNames:   true,
		decodeInput:     true,
		dropEmptyText:   true,
		trimMarkupNames: true,
	}

	for _, o := range options {
		switch o.Ident() {
		case identBufferSize{}:
			if v := o.Value().(int); v > 0 {
				cfg.bufferSize = v
			}
		case identCheckComments{}:
			cfg.checkComments = o.Value().(bool)
		case identCheckEndNames{}:
			cfg.checkEndNames = o.Value().(bool)
		case identDecodeInput{}:
			cfg.decodeInput = o.Value().(bool)
		case identDropEmptyText{}:
			cfg.dropEmptyText = o.Value().(bool)
		case identExpandEmptyElements{}:
			cfg.expandEmpty = o.Value().(bool)
		case identTrimMarkupNames{}:
			cfg.trimMarkupNames = o.Value().(bool)
		case identTrimText{}:
			v := o.Value().(bool)
			cfg.trimTextStart = v
			cfg.trimTextEnd = v
		case identTrimTextEnd{}:
			cfg.trimTextEnd = o.Value().(bool)
		}
	}
	return cfg
}
