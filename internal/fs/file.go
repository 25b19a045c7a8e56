// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

// StdinPath is the conventional name for standard input.
const StdinPath = "-"

type fileFunc struct {
	path string
	kind idl.FileKind
	open func() (io.ReadCloser, error)
}

// NewFileFN wraps content that open produces. Every call to Body calls
// open again, so it must hand out a fresh reader each time.
func NewFileFN(path string, open func() (io.ReadCloser, error), kind idl.FileKind) idl.File {
	return &fileFunc{path: path, kind: kind, open: open}
}

// NewFileString wraps static string content in idl.File.
func NewFileString(path string, content string, kind idl.FileKind) idl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

// NewFileStdin exposes standard input as a file named "-". The content can
// only be consumed once; see Buffer.
func NewFileStdin() idl.File {
	return NewFileFN(StdinPath, func() (io.ReadCloser, error) {
		return io.NopCloser(os.Stdin), nil
	}, idl.FileKindIFC)
}

func (f *fileFunc) Path(ctx context.Context) string {
	return f.path
}

func (f *fileFunc) Kind(ctx context.Context) idl.FileKind {
	return f.kind
}

func (f *fileFunc) Body(ctx context.Context) (idl.FileBody, error) {
	rc, err := f.open()
	if err != nil {
		return nil, fsErr(f.path, err)
	}
	return &body{path: f.path, r: bufio.NewReader(rc), c: rc}, nil
}

// body fills each chunk completely unless the content runs out. The last
// chunk comes back together with a CodeEOF exception.
type body struct {
	path string
	r    io.Reader
	c    io.Closer
}

func (b *body) Read(ctx context.Context, size int32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: b.path}, err)
	}
	chunk := make([]byte, size)
	n, err := io.ReadFull(b.r, chunk)
	switch {
	case err == nil:
		return chunk, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return chunk[:n], exc.Wrap(exc.Location{URI: b.path}, exc.CodeEOF, io.EOF)
	default:
		return chunk[:n], exc.WrapUnknown(exc.Location{URI: b.path}, err)
	}
}

func (b *body) Close(ctx context.Context) error {
	return b.c.Close()
}

// IsEOF tells whether err marks the end of a file body.
func IsEOF(err error) bool {
	var e exc.Exception
	return errors.As(err, &e) && e.Code() == exc.CodeEOF
}

// ReadAll drains the body of f.
func ReadAll(ctx context.Context, f idl.File) (string, error) {
	b, err := f.Body(ctx)
	if err != nil {
		return "", err
	}
	defer b.Close(ctx)
	var out strings.Builder
	for {
		chunk, err := b.Read(ctx, 4096)
		out.Write(chunk)
		if IsEOF(err) {
			return out.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Buffer reads f once and returns a copy that can be read any number of
// times. Used for standard input.
func Buffer(ctx context.Context, f idl.File) (idl.File, error) {
	content, err := ReadAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return NewFileString(f.Path(ctx), content, f.Kind(ctx)), nil
}
