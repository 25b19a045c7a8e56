package step

import (
	"fmt"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

// Decoder reads the parameter list of a single record. It works on the
// buffered tokens of that record so that alternative readings can be tried
// and rewound. The first failure sticks and turns every later call into a
// no-op; callers check Err once at the end.
type Decoder struct {
	uri    string
	tokens []*idl.Token
	pos    int
	// number of parameters started in each open list, outermost first
	levels []int
	// set when the separator for the current parameter has been consumed
	claimed   bool
	fallbacks int
	err       exc.Exception
}

// NewDecoder returns a decoder over the tokens of one parameter list,
// starting with its opening parenthesis. Comments must already be removed.
func NewDecoder(uri string, tokens []*idl.Token) *Decoder {
	return &Decoder{
		uri:    uri,
		tokens: tokens,
		levels: []int{0},
	}
}

func (d *Decoder) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

func (d *Decoder) Exception() exc.Exception {
	return d.err
}

func (d *Decoder) Failed() bool {
	return d.err != nil
}

// Fallbacks counts the optional parameters that were degraded to inherited
// by a lenient fallback.
func (d *Decoder) Fallbacks() int {
	return d.fallbacks
}

func (d *Decoder) peekN(n int) *idl.Token {
	if d.pos+n >= len(d.tokens) {
		return nil
	}
	return d.tokens[d.pos+n]
}

func (d *Decoder) peek() *idl.Token {
	return d.peekN(0)
}

func (d *Decoder) location(tok *idl.Token) exc.Location {
	loc := exc.Location{URI: d.uri}
	switch {
	case tok != nil:
		loc.Location = tok.Span.Start
	case len(d.tokens) > 0:
		loc.Location = d.tokens[len(d.tokens)-1].Span.End
	}
	return loc
}

// FailAt records a failure at the given token. Only the first failure is
// kept.
func (d *Decoder) FailAt(tok *idl.Token, code string, message string) {
	if d.err != nil {
		return
	}
	d.err = exc.New(d.location(tok), code, message)
}

// Fail records that the current token does not match rule.
func (d *Decoder) Fail(rule string) {
	tok := d.peek()
	if tok == nil {
		d.FailAt(nil, exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected end of parameters (expecting %s)", rule))
		return
	}
	if tok.Type == idl.TokenTypeInvalid {
		d.FailAt(tok, exc.CodeInvalidToken, tok.Value)
		return
	}
	d.FailAt(tok, exc.CodeUnexpectedToken, fmt.Sprintf("unexpected %s (expecting %s)", tok, rule))
}

func (d *Decoder) expect(rule string, types ...idl.TokenType) *idl.Token {
	if d.err != nil {
		return nil
	}
	tok := d.peek()
	if tok != nil {
		for _, t := range types {
			if tok.Type == t {
				d.pos++
				return tok
			}
		}
	}
	d.Fail(rule)
	return nil
}

// slot consumes the separator in front of the next parameter of the
// innermost open list.
func (d *Decoder) slot() bool {
	if d.err != nil {
		return false
	}
	if d.claimed {
		return true
	}
	top := len(d.levels) - 1
	if d.levels[top] > 0 && d.expect("','", idl.TokenTypeComma) == nil {
		return false
	}
	d.levels[top]++
	d.claimed = true
	return true
}

// Next reads one parameter made of a single token of one of the given types.
func (d *Decoder) Next(rule string, types ...idl.TokenType) *idl.Token {
	if !d.slot() {
		return nil
	}
	tok := d.expect(rule, types...)
	d.claimed = false
	return tok
}

// keyword reads the keyword of a typed parameter. The parameter stays open
// for the list that follows.
func (d *Decoder) keyword() *idl.Token {
	if !d.slot() {
		return nil
	}
	return d.expect("keyword", idl.TokenTypeKeyword)
}

// peekType returns the type of the token a parameter would start with.
func (d *Decoder) peekType() idl.TokenType {
	tok := d.peek()
	if tok == nil {
		return idl.TokenTypeEOF
	}
	return tok.Type
}

// Open starts a nested list as the next parameter.
func (d *Decoder) Open() bool {
	if !d.slot() || d.expect("'('", idl.TokenTypeParenOpen) == nil {
		return false
	}
	d.claimed = false
	d.levels = append(d.levels, 0)
	return true
}

// AtListEnd reports whether the innermost list has no more parameters. A
// trailing comma before the closing parenthesis is tolerated.
func (d *Decoder) AtListEnd() bool {
	tok := d.peek()
	if tok == nil {
		return false
	}
	if tok.Type == idl.TokenTypeParenClose {
		return true
	}
	if tok.Type == idl.TokenTypeComma && d.levels[len(d.levels)-1] > 0 {
		next := d.peekN(1)
		return next != nil && next.Type == idl.TokenTypeParenClose
	}
	return false
}

// Close ends the innermost list.
func (d *Decoder) Close() bool {
	if d.err != nil {
		return false
	}
	top := len(d.levels) - 1
	if d.levels[top] > 0 && d.AtListEnd() && d.peekType() == idl.TokenTypeComma {
		d.pos++
	}
	if d.expect("')'", idl.TokenTypeParenClose) == nil {
		return false
	}
	if top > 0 {
		d.levels = d.levels[:top]
	}
	d.claimed = false
	return true
}

// Finish fails if any token is left after the outermost list.
func (d *Decoder) Finish() {
	if d.err == nil && d.pos < len(d.tokens) {
		d.Fail("end of record")
	}
}

type decoderMark struct {
	pos     int
	depth   int
	count   int
	claimed bool
}

func (d *Decoder) mark() decoderMark {
	return decoderMark{
		pos:     d.pos,
		depth:   len(d.levels),
		count:   d.levels[len(d.levels)-1],
		claimed: d.claimed,
	}
}

// reset rewinds to m and forgets any failure recorded since.
func (d *Decoder) reset(m decoderMark) {
	d.pos = m.pos
	d.levels = d.levels[:m.depth]
	d.levels[m.depth-1] = m.count
	d.claimed = m.claimed
	d.err = nil
}
