package step

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/iter"
)

const (
	keywordMagic  = "ISO-10303-21"
	keywordFooter = "END-ISO-10303-21"
	keywordHeader = "HEADER"
	keywordData   = "DATA"
	keywordEndSec = "ENDSEC"
)

type ParserStep struct {
	reporter exc.Reporter
	registry Registry
	logger   *slog.Logger
}

func NewParserStep(reporter exc.Reporter, registry Registry, logger *slog.Logger) *ParserStep {
	return &ParserStep{reporter: reporter, registry: registry, logger: logger}
}

func dropComments(it idl.Iterator[*idl.Token]) idl.Iterator[*idl.Token] {
	return iter.NewIteratorFilter(it, idl.Filter[*idl.Token](iter.FilterFunc[*idl.Token](func(ctx context.Context, t *idl.Token) bool {
		return t.Type != idl.TokenTypeComment
	})))
}

func (self *ParserStep) PrepareParse(ctx context.Context, f idl.LexerFile) (*parserStepTokens, error) {
	ft, err := f.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	return self.prepare(ctx, f.Path(ctx), ft), nil
}

func (self *ParserStep) prepare(ctx context.Context, uri string, it idl.Iterator[*idl.Token]) *parserStepTokens {
	return &parserStepTokens{
		reporter: self.reporter,
		registry: self.registry,
		logger:   self.logger,
		ctx:      ctx,
		uri:      uri,
		tokens:   iter.NewLookahead(dropComments(it), 1),
		unknown:  make(map[string]int),
	}
}

type parserStepTokens struct {
	reporter exc.Reporter
	registry Registry
	logger   *slog.Logger
	ctx      context.Context
	uri      string
	// end of the last consumed token, used for EOF errors
	loc    idl.Location
	tokens idl.Lookahead[*idl.Token]
	// keywords kept as generic records, with their counts
	unknown   map[string]int
	fallbacks int
}

func (p *parserStepTokens) Close() error {
	return p.tokens.Close(p.ctx)
}

func (p *parserStepTokens) report(tok *idl.Token, code string, message string) {
	loc := p.loc
	if tok != nil {
		loc = tok.Span.Start
	}
	_ = p.reporter.Report(exc.New(exc.Location{
		URI:      p.uri,
		Location: loc,
	}, code, message))
}

func (p *parserStepTokens) advance() {
	if tok, ok := p.tokens.Lookahead(p.ctx, 0).Get(); ok {
		p.loc = tok.Span.End
	}
	_ = p.tokens.Next(p.ctx)
}

func (p *parserStepTokens) peek() *idl.Token {
	tok, _ := p.tokens.Lookahead(p.ctx, 0).Get()
	return tok
}

// unexpected reports the current token, or EOF, as not matching rule.
func (p *parserStepTokens) unexpected(rule string) {
	tok := p.peek()
	switch {
	case tok == nil:
		p.report(nil, exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF (expecting %s)", rule))
	case tok.Type == idl.TokenTypeInvalid:
		p.report(tok, exc.CodeInvalidToken, tok.Value)
	default:
		p.report(tok, exc.CodeUnexpectedToken, fmt.Sprintf("unexpected %s (expecting %s)", tok, rule))
	}
}

// reports an error if the current token isn't of the expected type.
// advances on success
func (p *parserStepTokens) expectOne(expectedType idl.TokenType, rule string) *idl.Token {
	tok := p.peek()
	if tok == nil || tok.Type != expectedType {
		p.unexpected(rule)
		return nil
	}
	p.advance()
	return tok
}

// expects a keyword with the given spelling, ignoring case.
func (p *parserStepTokens) expectKeyword(keyword string) bool {
	tok := p.peek()
	if tok == nil || tok.Type != idl.TokenTypeKeyword || !strings.EqualFold(tok.Value, keyword) {
		p.unexpected(keyword)
		return false
	}
	p.advance()
	return true
}

func (p *parserStepTokens) expectStatement(keyword string) bool {
	return p.expectKeyword(keyword) && p.expectOne(idl.TokenTypeSemicolon, "';'") != nil
}

func (p *parserStepTokens) atKeyword(keyword string) bool {
	tok := p.peek()
	return tok != nil && tok.Type == idl.TokenTypeKeyword && strings.EqualFold(tok.Value, keyword)
}

// collectParams buffers the tokens of one parameter list, parentheses
// included, so that the decoder can backtrack within it.
func (p *parserStepTokens) collectParams() []*idl.Token {
	open := p.expectOne(idl.TokenTypeParenOpen, "'('")
	if open == nil {
		return nil
	}
	tokens := []*idl.Token{open}
	depth := 1
	for depth > 0 {
		tok := p.peek()
		if tok == nil {
			p.unexpected("')'")
			return nil
		}
		switch tok.Type {
		case idl.TokenTypeParenOpen:
			depth++
		case idl.TokenTypeParenClose:
			depth--
		case idl.TokenTypeSemicolon:
			p.unexpected("')'")
			return nil
		case idl.TokenTypeInvalid:
			p.unexpected("parameter")
			return nil
		}
		p.advance()
		tokens = append(tokens, tok)
	}
	return tokens
}

func (p *parserStepTokens) decode(e Entity, tokens []*idl.Token) bool {
	d := NewDecoder(p.uri, tokens)
	decodeEntity(d, e)
	p.fallbacks += d.Fallbacks()
	if ex := d.Exception(); ex != nil {
		_ = p.reporter.Report(ex)
		return false
	}
	return true
}

// parseEntity reads KEYWORD(params); into the entity chosen by pick.
func (p *parserStepTokens) parseEntity(pick func(keyword string) Entity) Entity {
	kw := p.expectOne(idl.TokenTypeKeyword, "entity keyword")
	if kw == nil {
		return nil
	}
	tokens := p.collectParams()
	if tokens == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon, "';'") == nil {
		return nil
	}
	e := pick(kw.Value)
	if !p.decode(e, tokens) {
		return nil
	}
	return e
}

func (p *parserStepTokens) pickData(keyword string) Entity {
	if p.registry != nil {
		if e, ok := p.registry.New(keyword); ok {
			return e
		}
	}
	p.unknown[keyword]++
	return NewRecord(keyword)
}

// ParseFile reads a whole exchange structure. It stops at the first
// syntax error and returns nil.
func (p *parserStepTokens) ParseFile() *Model {
	if !p.expectStatement(keywordMagic) {
		return nil
	}
	header, ok := p.parseHeader()
	if !ok {
		return nil
	}
	model := &Model{Header: header, Data: NewStore()}
	if !p.parseData(model.Data) {
		return nil
	}
	if !p.expectStatement(keywordFooter) {
		return nil
	}
	if tok := p.peek(); tok != nil {
		p.unexpected("end of file")
		return nil
	}
	for keyword, count := range p.unknown {
		p.logger.Debug("kept unbound entities as generic records", "uri", p.uri, "keyword", keyword, "count", count)
	}
	if p.fallbacks > 0 {
		p.logger.Debug("degraded out of range values to inherited", "uri", p.uri, "count", p.fallbacks)
	}
	p.logger.Debug("parsed data section", "uri", p.uri, "records", model.Data.Len())
	return model
}

func (p *parserStepTokens) parseHeader() (Header, bool) {
	var h Header
	if !p.expectStatement(keywordHeader) {
		return h, false
	}
	seen := map[string]bool{}
	for !p.atKeyword(keywordEndSec) {
		e := p.parseEntity(func(keyword string) Entity {
			switch strings.ToUpper(keyword) {
			case KeywordFileDescription:
				return &h.Description
			case KeywordFileName:
				return &h.Name
			case KeywordFileSchema:
				return &h.Schema
			}
			r := NewRecord(keyword)
			h.Extra = append(h.Extra, r)
			return r
		})
		if e == nil {
			return h, false
		}
		seen[strings.ToUpper(e.Keyword())] = true
	}
	for _, required := range []string{KeywordFileDescription, KeywordFileName, KeywordFileSchema} {
		if !seen[required] {
			p.report(p.peek(), exc.CodeMissingHeader, fmt.Sprintf("missing %s in HEADER section", required))
			return h, false
		}
	}
	return h, p.expectStatement(keywordEndSec)
}

func (p *parserStepTokens) parseData(s *Store) bool {
	if !p.expectStatement(keywordData) {
		return false
	}
	for {
		tok := p.peek()
		if tok == nil || tok.Type != idl.TokenTypeReference {
			break
		}
		if !p.parseRecord(s) {
			return false
		}
	}
	return p.expectStatement(keywordEndSec)
}

// parseRecord reads #id= KEYWORD(params);
func (p *parserStepTokens) parseRecord(s *Store) bool {
	ref := p.expectOne(idl.TokenTypeReference, "entity id")
	if ref == nil {
		return false
	}
	v, err := strconv.ParseUint(ref.Value, 10, 64)
	if err != nil || v == 0 {
		p.report(ref, exc.CodeInvalidReference, fmt.Sprintf("invalid entity id %s", ref))
		return false
	}
	if p.expectOne(idl.TokenTypeEqual, "'='") == nil {
		return false
	}
	e := p.parseEntity(p.pickData)
	if e == nil {
		return false
	}
	if !s.insertAt(ID(v), e, ref.Span.Start) {
		p.report(ref, exc.CodeDuplicateReference, fmt.Sprintf("duplicate entity id %s", ref))
		return false
	}
	return true
}

// Tokenize lexes text and drops comments. A lexical error is returned as
// an exception.
func Tokenize(ctx context.Context, uri string, text string) ([]*idl.Token, error) {
	lf, err := NewLexerStep().Lex(ctx, fs.NewFileString(uri, text, idl.FileKindIFC))
	if err != nil {
		return nil, err
	}
	it, err := lf.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	tokens, err := iter.Collect(ctx, dropComments(it))
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		if tok.Type == idl.TokenTypeInvalid {
			return nil, exc.New(exc.Location{URI: uri, Location: tok.Span.Start}, exc.CodeInvalidToken, tok.Value)
		}
	}
	return tokens, nil
}
