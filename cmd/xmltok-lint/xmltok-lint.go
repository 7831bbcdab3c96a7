package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/xmltok"
	"github.com/lestrrat-go/xmltok/dtd"
	"github.com/lestrrat-go/xmltok/internal/pool"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type cmdopts struct {
	Trim            bool `long:"trim" description:"trim whitespace around text"`
	ExpandEmpty     bool `long:"expand-empty" description:"report <a/> as a start and an end tag"`
	NoCheckEndNames bool `long:"no-check-end-names" description:"do not check end tags against start tags"`
	CheckComments   bool `long:"check-comments" description:"reject comments containing '--'"`
	NoDecode        bool `long:"no-decode" description:"do not convert non UTF-8 input"`
	ChunkSize       int  `long:"chunk-size" description:"push input to the tokenizer in chunks of this size"`
	DTD             bool `long:"dtd" description:"print the declarations of DOCTYPE internal subsets"`
	Unescape        bool `long:"unescape" description:"print text with references replaced, using the internal subset's entities"`
	Jobs            int  `long:"jobs" short:"j" default:"1" description:"number of files tokenized concurrently"`
	Verbose         bool `long:"verbose" short:"v" description:"log progress to stderr"`
	Trace           bool `long:"trace" description:"log every event to stderr"`
	Version         bool `long:"version" description:"display the version of the tokenizer"`
}

var logger = logrus.New()

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xmltok-lint: using xmltok version %s\n", xmltok.Version)
}

func showUsage() {
	fmt.Printf(`Usage : xmltok-lint [options] XMLfiles ...
	Tokenize the XML files and print one line per event
	--trim : trim whitespace around text
	--expand-empty : report <a/> as a start and an end tag
	--no-check-end-names : do not check end tags against start tags
	--check-comments : reject comments containing '--'
	--no-decode : do not convert non UTF-8 input
	--chunk-size N : push input to the tokenizer in chunks of N bytes
	--dtd : print the declarations of DOCTYPE internal subsets
	--unescape : print text with references replaced
	--jobs N : number of files tokenized concurrently
	--verbose : log progress to stderr
	--trace : log every event to stderr
	--version : display the version of the tokenizer
`)
}

func (opts *cmdopts) tokenizerOptions() []xmltok.TokenizerOption {
	return []xmltok.TokenizerOption{
		xmltok.WithTrimText(opts.Trim),
		xmltok.WithExpandEmptyElements(opts.ExpandEmpty),
		xmltok.WithCheckEndNames(!opts.NoCheckEndNames),
		xmltok.WithCheckComments(opts.CheckComments),
		xmltok.WithDecodeInput(!opts.NoDecode),
	}
}

type input struct {
	name string
	r    io.Reader
}

// result is the output of one input, printed in input order
type result struct {
	out bytes.Buffer
	err error
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	logger.SetOutput(os.Stderr)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	var inputs []input
	switch {
	case len(args) > 0: // filename present
		for _, f := range args {
			fh, err := os.Open(f)
			if err != nil {
				logger.WithError(err).WithField("file", f).Error("failed to open input")
				return 1
			}
			defer fh.Close()
			inputs = append(inputs, input{name: f, r: fh})
		}
	case !term.IsTerminal(int(os.Stdin.Fd())):
		inputs = append(inputs, input{name: "-", r: os.Stdin})
	default:
		showUsage()
		return 1
	}

	ctx := context.Background()
	if opts.Trace {
		ctx = xmltok.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	results := make([]result, len(inputs))
	if err := runAll(ctx, &opts, inputs, results); err != nil {
		logger.WithError(err).Error("failed to schedule inputs")
		return 1
	}

	status := 0
	for i, res := range results {
		if _, err := res.out.WriteTo(os.Stdout); err != nil {
			logger.WithError(err).Error("failed to write output")
			return 1
		}
		if res.err != nil {
			logger.WithError(res.err).WithField("file", inputs[i].name).Error("tokenizing failed")
			status = 1
		}
	}
	return status
}

func runAll(ctx context.Context, opts *cmdopts, inputs []input, results []result) error {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	pool, err := ants.NewPool(jobs)
	if err != nil {
		return errors.Wrap(err, "failed to create worker pool")
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			logger.WithField("file", in.name).Debug("tokenizing")
			results[i].err = lint(ctx, opts, in.r, &results[i].out)
			logger.WithField("file", in.name).Debug("done")
		})
		if err != nil {
			wg.Done()
			results[i].err = errors.Wrap(err, "failed to submit input")
		}
	}
	wg.Wait()
	return nil
}

// linter holds the state of one input
type linter struct {
	opts     *cmdopts
	out      io.Writer
	entities *dtd.Index
}

func lint(ctx context.Context, opts *cmdopts, r io.Reader, out io.Writer) error {
	l := &linter{opts: opts, out: out}
	if opts.ChunkSize > 0 {
		return feed(r, opts.ChunkSize, l.printEvent, opts.tokenizerOptions()...)
	}
	return xmltok.Tokenize(ctx, r, l.printEvent, opts.tokenizerOptions()...)
}

// feed pushes r through a Feeder, chunkSize bytes at a time
func feed(r io.Reader, chunkSize int, fn func(xmltok.Event) error, options ...xmltok.TokenizerOption) error {
	bs := pool.ByteSlice()
	chunk := bs.GetCapacity(chunkSize)[:chunkSize]
	defer bs.Put(chunk)

	f := xmltok.NewFeeder(options...)
	for {
		ev, err := f.Next()
		switch {
		case errors.Is(err, xmltok.ErrNeedMoreData):
			n, rerr := io.ReadFull(r, chunk)
			if n > 0 {
				if err := f.Feed(chunk[:n]); err != nil {
					return err
				}
			}
			if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
				f.Close()
			} else if rerr != nil {
				return errors.Wrap(rerr, "failed to read input")
			}
			continue
		case err != nil:
			return err
		}

		if ev.Type() == xmltok.EOFEvent {
			return nil
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}

func (l *linter) printEvent(ev xmltok.Event) error {
	switch ev.Type() {
	case xmltok.StartTextEvent, xmltok.TextEvent:
		if l.opts.Unescape {
			var resolve func([]byte) ([]byte, bool)
			if l.entities != nil {
				resolve = l.entities.EntityValue
			}
			text, err := xmltok.UnescapeFunc(ev.Bytes(), resolve)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(l.out, "%s(%q)\n", ev.Type(), text)
			return err
		}
	case xmltok.DocTypeEvent:
		if _, err := fmt.Fprintln(l.out, ev.String()); err != nil {
			return err
		}
		return l.doctype(ev)
	}

	_, err := fmt.Fprintln(l.out, ev.String())
	return err
}

func (l *linter) doctype(ev xmltok.Event) error {
	if !l.opts.DTD && !l.opts.Unescape {
		return nil
	}

	subset, err := ev.InternalSubset()
	if err != nil {
		return err
	}
	decls, err := dtd.Parse(subset)
	if err != nil {
		return err
	}
	if l.opts.Unescape {
		if l.entities, err = dtd.NewIndex(decls); err != nil {
			return err
		}
	}
	if !l.opts.DTD {
		return nil
	}
	for _, d := range decls {
		if _, err := fmt.Fprintf(l.out, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}
