package idl

import (
	"context"

	"github.com/ifcstep/ifcstep/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	// FileKindIFC is an exchange file using the .ifc extension.
	FileKindIFC
	// FileKindSTEP is the same clear text encoding saved as .stp or .step.
	FileKindSTEP
)

func (k FileKind) String() string {
	switch k {
	case FileKindIFC:
		return "ifc"
	case FileKindSTEP:
		return "step"
	default:
		return "none"
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

type LexerFile interface {
	File
	Tokens(ctx context.Context) (Iterator[*Token], error)
}

type Lexer interface {
	Lex(ctx context.Context, f File) (LexerFile, error)
}
