package iter

import (
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/optional"
)

const runeChunk = 4096

// NewRunes decodes a file body into code points. Bytes that are not valid
// UTF-8 come out as utf8.RuneError, one per byte. The context is used for
// every read of the body.
func NewRunes(ctx context.Context, b idl.FileBody) idl.Iterator[idl.CodePoint] {
	return &runes{ctx: ctx, body: b}
}

type runes struct {
	ctx  context.Context
	body idl.FileBody
	buf  []byte
	done bool
	err  error
}

// fill reads until buf holds at least one whole rune or the body ends.
func (r *runes) fill() {
	for !r.done && !utf8.FullRune(r.buf) {
		chunk, err := r.body.Read(r.ctx, runeChunk)
		r.buf = append(r.buf, chunk...)
		if err != nil {
			r.done = true
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
		}
	}
}

func (r *runes) Next(ctx context.Context) optional.Optional[idl.CodePoint] {
	r.fill()
	if len(r.buf) == 0 {
		return optional.None[idl.CodePoint]()
	}
	v, size := utf8.DecodeRune(r.buf)
	r.buf = r.buf[size:]
	return optional.Some(idl.CodePoint(v))
}

// Close releases the body and reports the first read failure, if any.
func (r *runes) Close(ctx context.Context) error {
	closeErr := r.body.Close(r.ctx)
	if r.err != nil {
		return r.err
	}
	return closeErr
}
