package step

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ifcstep/ifcstep/internal/ctxlog"
	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/iter"
)

// Model is one exchange file: its header and the records of its data
// section.
type Model struct {
	Header Header
	Data   *Store
}

func NewModel(schema Schema) *Model {
	return &Model{Header: NewHeader(schema), Data: NewStore()}
}

// String writes the model in the layout it is parsed from. Records appear
// in insertion order as "#id= KEYWORD(params);" one per line.
func (m *Model) String() string {
	var b strings.Builder
	b.WriteString(keywordMagic)
	b.WriteString(";\n")
	m.Header.write(&b)
	b.WriteString("\n")
	b.WriteString(keywordData)
	b.WriteString(";\n")
	for id, e := range m.Data.All() {
		b.WriteString(id.String())
		b.WriteString("= ")
		writeEntity(&b, e)
		b.WriteByte('\n')
	}
	b.WriteString(keywordEndSec)
	b.WriteString(";\n")
	b.WriteString(keywordFooter)
	b.WriteString(";\n")
	return b.String()
}

func (m *Model) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}

// Verify checks every reference in the data section. Problems are collected
// and returned together as an exc.MultiException.
func (m *Model) Verify(ctx context.Context, uri string) error {
	reporter := exc.NewReporter(nil)
	if Verify(ctx, m.Data, reporter, uri) > 0 {
		return exc.MultiException(reporter.Reported())
	}
	return nil
}

type parseOptions struct {
	skipVerify bool
	reporter   exc.Reporter
	uri        string
	logger     *slog.Logger
}

type Option func(*parseOptions)

// OptionSkipVerify returns the parsed model without checking references.
func OptionSkipVerify() Option {
	return func(o *parseOptions) {
		o.skipVerify = true
	}
}

// OptionWithReporter collects exceptions into r instead of a private
// reporter. A parse fails while r holds any exception, including ones
// reported before it started.
func OptionWithReporter(r exc.Reporter) Option {
	return func(o *parseOptions) {
		o.reporter = r
	}
}

// OptionWithURI names text passed to Parse in error locations.
func OptionWithURI(uri string) Option {
	return func(o *parseOptions) {
		o.uri = uri
	}
}

// OptionWithLogger overrides the logger carried by the context.
func OptionWithLogger(logger *slog.Logger) Option {
	return func(o *parseOptions) {
		o.logger = logger
	}
}

func newParseOptions(ctx context.Context, options []Option) *parseOptions {
	o := &parseOptions{}
	for _, option := range options {
		option(o)
	}
	if o.reporter == nil {
		o.reporter = exc.NewReporter(nil)
	}
	if o.logger == nil {
		o.logger = ctxlog.FromContext(ctx)
	}
	return o
}

// Parse reads a whole exchange file. Unless verification is skipped the
// model is only returned when every reference resolves to an accepted type.
func Parse(ctx context.Context, text string, registry Registry, options ...Option) (*Model, error) {
	o := newParseOptions(ctx, options)
	return parseFile(ctx, fs.NewFileString(o.uri, text, idl.FileKindIFC), registry, o)
}

func ParseFile(ctx context.Context, f idl.File, registry Registry, options ...Option) (*Model, error) {
	return parseFile(ctx, f, registry, newParseOptions(ctx, options))
}

func parseFile(ctx context.Context, f idl.File, registry Registry, o *parseOptions) (*Model, error) {
	uri := f.Path(ctx)
	lf, err := NewLexerStep().Lex(ctx, f)
	if err != nil {
		return nil, err
	}
	p, err := NewParserStep(o.reporter, registry, o.logger).PrepareParse(ctx, lf)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: uri}, err)
	}
	model := p.ParseFile()
	_ = p.Close()
	if reported := o.reporter.Reported(); len(reported) > 0 {
		return nil, exc.MultiException(reported)
	}
	if model == nil {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeUnknownFatal, "parse failed without a reported cause")
	}
	if o.skipVerify {
		return model, nil
	}
	if Verify(ctx, model.Data, o.reporter, uri) > 0 {
		return nil, exc.MultiException(o.reporter.Reported())
	}
	return model, nil
}

// ParseEntity reads a single "KEYWORD(params);" without an id.
func ParseEntity(ctx context.Context, text string, registry Registry) (Entity, error) {
	tokens, err := Tokenize(ctx, "", text)
	if err != nil {
		return nil, err
	}
	reporter := exc.NewReporter(nil)
	p := NewParserStep(reporter, registry, ctxlog.FromContext(ctx)).prepare(ctx, "", iter.NewSlice(tokens))
	e := p.parseEntity(p.pickData)
	if e != nil && p.peek() != nil {
		p.unexpected("end of input")
	}
	if reported := reporter.Reported(); len(reported) > 0 {
		return nil, exc.MultiException(reported)
	}
	return e, nil
}
