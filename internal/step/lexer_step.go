package step

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/iter"
	"github.com/ifcstep/ifcstep/internal/optional"
)

// LexerStep splits the ISO-10303-21 clear text encoding into tokens.
type LexerStep struct{}

func NewLexerStep() *LexerStep {
	return &LexerStep{}
}

func (self *LexerStep) Lex(ctx context.Context, f idl.File) (idl.LexerFile, error) {
	return &lexerFileStep{File: f}, nil
}

type lexerFileStep struct {
	idl.File
}

func (self *lexerFileStep) Tokens(ctx context.Context) (idl.Iterator[*idl.Token], error) {
	b, err := self.File.Body(ctx)
	if err != nil {
		return nil, err
	}
	return &lexerFileStepTokens{
		body: iter.NewLookahead(iter.NewRunes(ctx, b), 1),
		pos:  idl.Location{Line: 1, Column: 1},
	}, nil
}

type lexerFileStepTokens struct {
	body idl.Lookahead[idl.CodePoint]
	// position of the next unread code point
	pos idl.Location
}

func (self *lexerFileStepTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func (self *lexerFileStepTokens) next(ctx context.Context) optional.Optional[rune] {
	point := self.body.Next(ctx)
	if !point.IsPresent() {
		return optional.None[rune]()
	}
	r := rune(point.Value())
	size := utf8.RuneLen(r)
	if size < 0 {
		size = 1
	}
	self.pos.Offset += int64(size)
	if r == '\n' {
		self.pos.Line++
		self.pos.Column = 1
	} else {
		self.pos.Column++
	}
	return optional.Some(r)
}

// peek returns the next unread code point or zero at the end of input.
func (self *lexerFileStepTokens) peek(ctx context.Context) rune {
	point := self.body.Lookahead(ctx, 1)
	return rune(point.OrElse(0))
}

func (self *lexerFileStepTokens) token(start idl.Location, kind idl.TokenType, value string) optional.Optional[*idl.Token] {
	return optional.Some(&idl.Token{
		Span:  &idl.Span{Start: start, End: self.pos},
		Type:  kind,
		Value: value,
	})
}

func (self *lexerFileStepTokens) invalid(start idl.Location, message string) optional.Optional[*idl.Token] {
	return self.token(start, idl.TokenTypeInvalid, message)
}

func (self *lexerFileStepTokens) Next(ctx context.Context) optional.Optional[*idl.Token] {
	for {
		start := self.pos
		maybe := self.next(ctx)
		if !maybe.IsPresent() {
			return optional.None[*idl.Token]()
		}
		r := maybe.Value()
		switch r {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			continue
		case '(':
			return self.token(start, idl.TokenTypeParenOpen, "(")
		case ')':
			return self.token(start, idl.TokenTypeParenClose, ")")
		case ',':
			return self.token(start, idl.TokenTypeComma, ",")
		case ';':
			return self.token(start, idl.TokenTypeSemicolon, ";")
		case '=':
			return self.token(start, idl.TokenTypeEqual, "=")
		case '$':
			return self.token(start, idl.TokenTypeDollar, "$")
		case '*':
			return self.token(start, idl.TokenTypeStar, "*")
		case '/':
			if self.peek(ctx) != '*' {
				return self.invalid(start, "unexpected '/'")
			}
			self.next(ctx)
			return self.readComment(ctx, start)
		case '\'':
			return self.readString(ctx, start)
		case '#':
			return self.readReference(ctx, start)
		case '.':
			return self.readEnumeration(ctx, start)
		case '+', '-':
			if !isDigit(self.peek(ctx)) {
				return self.invalid(start, fmt.Sprintf("unexpected %q", r))
			}
			return self.readNumber(ctx, start, r)
		case '!':
			return self.readKeyword(ctx, start, r)
		}
		switch {
		case isDigit(r):
			return self.readNumber(ctx, start, r)
		case isKeywordStart(r):
			return self.readKeyword(ctx, start, r)
		}
		return self.invalid(start, fmt.Sprintf("unexpected %q", r))
	}
}

func (self *lexerFileStepTokens) readComment(ctx context.Context, start idl.Location) optional.Optional[*idl.Token] {
	var b strings.Builder
	for {
		maybe := self.next(ctx)
		if !maybe.IsPresent() {
			return self.invalid(start, "unexpected EOF (expecting '*/')")
		}
		r := maybe.Value()
		if r == '*' && self.peek(ctx) == '/' {
			self.next(ctx)
			return self.token(start, idl.TokenTypeComment, b.String())
		}
		b.WriteRune(r)
	}
}

// strings keep their raw content; a doubled quote is an escaped quote and
// stays doubled so that output reproduces it.
func (self *lexerFileStepTokens) readString(ctx context.Context, start idl.Location) optional.Optional[*idl.Token] {
	var b strings.Builder
	for {
		maybe := self.next(ctx)
		if !maybe.IsPresent() {
			return self.invalid(start, "unexpected EOF (expecting closing quote)")
		}
		r := maybe.Value()
		if r == '\'' {
			if self.peek(ctx) == '\'' {
				self.next(ctx)
				b.WriteString("''")
				continue
			}
			return self.token(start, idl.TokenTypeString, b.String())
		}
		b.WriteRune(r)
	}
}

func (self *lexerFileStepTokens) readReference(ctx context.Context, start idl.Location) optional.Optional[*idl.Token] {
	digits := self.readDigits(ctx)
	if digits == "" {
		return self.invalid(start, "expecting digits after '#'")
	}
	return self.token(start, idl.TokenTypeReference, digits)
}

func (self *lexerFileStepTokens) readEnumeration(ctx context.Context, start idl.Location) optional.Optional[*idl.Token] {
	var b strings.Builder
	for {
		r := self.peek(ctx)
		if r == '.' {
			self.next(ctx)
			break
		}
		if !isKeywordPart(r) || r == '-' {
			return self.invalid(start, "unterminated enumeration (expecting '.')")
		}
		self.next(ctx)
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return self.invalid(start, "empty enumeration")
	}
	return self.token(start, idl.TokenTypeEnumeration, b.String())
}

func (self *lexerFileStepTokens) readNumber(ctx context.Context, start idl.Location, first rune) optional.Optional[*idl.Token] {
	var b strings.Builder
	b.WriteRune(first)
	b.WriteString(self.readDigits(ctx))
	kind := idl.TokenTypeInteger
	if self.peek(ctx) == '.' {
		kind = idl.TokenTypeReal
		self.next(ctx)
		b.WriteByte('.')
		b.WriteString(self.readDigits(ctx))
	}
	if r := self.peek(ctx); r == 'E' || r == 'e' {
		kind = idl.TokenTypeReal
		self.next(ctx)
		b.WriteRune(r)
		if sign := self.peek(ctx); sign == '+' || sign == '-' {
			self.next(ctx)
			b.WriteRune(sign)
		}
		exponent := self.readDigits(ctx)
		if exponent == "" {
			return self.invalid(start, fmt.Sprintf("malformed exponent in %q", b.String()))
		}
		b.WriteString(exponent)
	}
	return self.token(start, kind, b.String())
}

func (self *lexerFileStepTokens) readKeyword(ctx context.Context, start idl.Location, first rune) optional.Optional[*idl.Token] {
	var b strings.Builder
	b.WriteRune(first)
	for isKeywordPart(self.peek(ctx)) {
		r := self.next(ctx).Value()
		b.WriteRune(r)
	}
	if b.Len() == 1 && first == '!' {
		return self.invalid(start, "expecting user defined keyword after '!'")
	}
	return self.token(start, idl.TokenTypeKeyword, b.String())
}

func (self *lexerFileStepTokens) readDigits(ctx context.Context) string {
	var b strings.Builder
	for isDigit(self.peek(ctx)) {
		b.WriteRune(self.next(ctx).Value())
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isKeywordStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
}

// keyword bodies allow '-' so that ISO-10303-21 and END-ISO-10303-21 lex as
// single keywords.
func isKeywordPart(r rune) bool {
	return isKeywordStart(r) || isDigit(r) || r == '-'
}
