// Package loader parses many exchange files at once. Each file gets its own
// store and its own error report.
package loader

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/ifcstep/ifcstep/internal/ctxlog"
	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/iter"
	"github.com/ifcstep/ifcstep/internal/step"
	"github.com/ifcstep/ifcstep/internal/target"
)

type Option func(l *Loader) error

func OptionWithFS(fs idl.FileSystem) Option {
	return func(l *Loader) error {
		l.FS = fs
		return nil
	}
}

func OptionWithRegistry(registry step.Registry) Option {
	return func(l *Loader) error {
		l.Registry = registry
		return nil
	}
}

func OptionWithMaxConcurrency(n int) Option {
	return func(l *Loader) error {
		if n < 0 {
			return fmt.Errorf("max concurrency must not be negative: %d", n)
		}
		l.MaxConcurrency = n
		return nil
	}
}

// OptionWithStdin replaces standard input for the "-" target.
func OptionWithStdin(open func() idl.File) Option {
	return func(l *Loader) error {
		l.Stdin = open
		return nil
	}
}

// OptionWithTokenWriter sets where token dumps go.
func OptionWithTokenWriter(w io.Writer) Option {
	return func(l *Loader) error {
		l.TokenWriter = w
		return nil
	}
}

type Request struct {
	Files      []string
	SkipVerify bool
	DumpTokens bool
}

// Result is the outcome for one file. Model is nil when Err is set.
type Result struct {
	URI   string
	Model *step.Model
	Err   error
}

type Response struct {
	// Results follow the order of the request, one per opened file.
	Results []Result
}

type Loader struct {
	FS             idl.FileSystem
	Registry       step.Registry
	MaxConcurrency int
	Semaphore      *semaphore
	Stdin          func() idl.File
	TokenWriter    io.Writer

	dumpMu sync.Mutex
}

func New(opts ...Option) (*Loader, error) {
	l := &Loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if l.FS == nil {
		local, err := fs.NewFileSystemLocal("/")
		if err != nil {
			return nil, err
		}
		l.FS = local
	}
	if l.Registry == nil {
		l.Registry = step.RegistryMap{}
	}
	if l.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		l.MaxConcurrency = max
	}
	if l.Semaphore == nil {
		l.Semaphore = newSemaphore(l.MaxConcurrency)
	}
	if l.Stdin == nil {
		l.Stdin = fs.NewFileStdin
	}
	if l.TokenWriter == nil {
		l.TokenWriter = io.Discard
	}
	return l, nil
}

// Load parses every requested file. The response always lists every file
// that could be opened; the error, when not nil, is an exc.MultiException
// with the failures of all files.
func (l *Loader) Load(ctx context.Context, req *Request) (*Response, error) {
	logger := ctxlog.FromContext(ctx)
	var results []Result
	var files []idl.File
	seen := map[string]bool{}
	for _, f := range req.Files {
		uri := target.Normalize(f)
		opened, err := l.open(ctx, uri)
		if err != nil {
			results = append(results, Result{URI: uri, Err: err})
			files = append(files, nil)
			continue
		}
		for _, file := range opened {
			path := file.Path(ctx)
			if seen[path] {
				continue
			}
			seen[path] = true
			results = append(results, Result{URI: path})
			files = append(files, file)
		}
	}

	var wg sync.WaitGroup
	for x, file := range files {
		if file == nil {
			continue
		}
		wg.Add(1)
		go func(result *Result, file idl.File) {
			defer wg.Done()
			result.Model, result.Err = l.loadFile(ctx, file, req)
		}(&results[x], file)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var caught exc.MultiException
	for _, result := range results {
		if result.Err != nil {
			logger.Debug("file failed", "uri", result.URI, "error", result.Err)
			caught = append(caught, exc.Flatten(exc.Location{URI: result.URI}, result.Err)...)
			continue
		}
		logger.Debug("file loaded", "uri", result.URI, "records", result.Model.Data.Len())
	}
	resp := &Response{Results: results}
	if len(caught) > 0 {
		return resp, caught
	}
	return resp, nil
}

func (l *Loader) open(ctx context.Context, uri string) ([]idl.File, error) {
	if uri == target.Stdin {
		f, err := fs.Buffer(ctx, l.Stdin())
		if err != nil {
			return nil, err
		}
		return []idl.File{f}, nil
	}
	return l.FS.Open(ctx, uri)
}

func (l *Loader) loadFile(ctx context.Context, file idl.File, req *Request) (*step.Model, error) {
	l.Semaphore.Lock()
	defer l.Semaphore.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	uri := file.Path(ctx)
	if file.Kind(ctx) == idl.FileKindNone {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, "unsupported file format")
	}
	if req.DumpTokens {
		if err := l.dumpTokens(ctx, file); err != nil {
			return nil, err
		}
	}
	options := []step.Option{
		step.OptionWithURI(uri),
		step.OptionWithLogger(ctxlog.FromContext(ctx).With("uri", uri)),
	}
	if req.SkipVerify {
		options = append(options, step.OptionSkipVerify())
	}
	return step.ParseFile(ctx, file, l.Registry, options...)
}

// dumpTokens writes the token stream of one file, comments included. The
// output of one file is never interleaved with another.
func (l *Loader) dumpTokens(ctx context.Context, file idl.File) error {
	lf, err := step.NewLexerStep().Lex(ctx, file)
	if err != nil {
		return err
	}
	stream, err := lf.Tokens(ctx)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)
	l.dumpMu.Lock()
	defer l.dumpMu.Unlock()
	fmt.Fprintf(l.TokenWriter, "# %s\n", file.Path(ctx))
	for token := range iter.All(ctx, stream) {
		fmt.Fprintf(l.TokenWriter, "%-8s %-22s %s\n", token.Span.Start, token.Type, token)
	}
	return nil
}
