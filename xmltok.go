// Package xmltok is an incremental XML tokenizer.
//
// Input is accepted in chunks of any size, either pulled from an
// io.Reader (Reader) or pushed by the caller (Feeder), and is turned into
// a sequence of Events: start, end and empty tags, text, comments, CDATA
// sections, processing instructions, the XML declaration and the DOCTYPE
// declaration. The sequence does not depend on how the input was split.
//
// The tokenizer does not unescape text, resolve namespaces or parse the
// DOCTYPE internal subset. See Unescape, the ns package and the dtd
// package for those.
package xmltok

import (
	"context"
	"io"
	"log/slog"
)

const Version = "v0.1.0"

// Tokenize reads r to the end and calls fn for every event except the
// final EOFEvent. It stops at the first error, whether it comes from the
// tokenizer, from fn or from ctx being canceled.
func Tokenize(ctx context.Context, r io.Reader, fn func(Event) error, options ...TokenizerOption) error {
	tlog := getTraceLogFromContext(ctx)
	rdr := NewReader(r, options...)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		offset := rdr.Offset()
		ev, err := rdr.Next()
		if err != nil {
			tlog.LogAttrs(ctx, slog.LevelError, "tokenize failed", slog.Int64("offset", offset), slog.String("error", err.Error()))
			return err
		}
		if ev.Type() == EOFEvent {
			tlog.LogAttrs(ctx, slog.LevelDebug, "end of input", slog.Int64("offset", rdr.Offset()))
			return nil
		}

		tlog.LogAttrs(ctx, slog.LevelDebug, "event",
			slog.String("type", ev.Type().String()),
			slog.Int64("offset", offset),
			slog.Int("depth", rdr.Depth()),
		)
		if err := fn(ev); err != nil {
			return err
		}
	}
}
