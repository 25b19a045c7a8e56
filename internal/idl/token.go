package idl

import "fmt"

// Location is a position within a source file. Lines and columns start at
// one, offsets are in bytes and start at zero.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

type Span struct {
	Start Location
	End   Location
}

type Token struct {
	Span  *Span
	Type  TokenType
	Value string
}

func (t *Token) String() string {
	switch t.Type {
	case TokenTypeString:
		return "'" + t.Value + "'"
	case TokenTypeReference:
		return "#" + t.Value
	case TokenTypeEnumeration:
		return "." + t.Value + "."
	case TokenTypeComment:
		return "/*" + t.Value + "*/"
	case TokenTypeInvalid:
		return t.Value
	default:
		return t.Value
	}
}

type TokenType uint16

const (
	TokenTypeUnknown     TokenType = 0
	TokenTypeKeyword     TokenType = 1
	TokenTypeReference   TokenType = 2
	TokenTypeString      TokenType = 3
	TokenTypeInteger     TokenType = 4
	TokenTypeReal        TokenType = 5
	TokenTypeEnumeration TokenType = 6
	TokenTypeDollar      TokenType = 7
	TokenTypeStar        TokenType = 8
	TokenTypeParenOpen   TokenType = 9
	TokenTypeParenClose  TokenType = 10
	TokenTypeComma       TokenType = 11
	TokenTypeSemicolon   TokenType = 12
	TokenTypeEqual       TokenType = 13
	TokenTypeComment     TokenType = 14
	// TokenTypeInvalid carries a lexical error message in its value.
	TokenTypeInvalid TokenType = 15
	TokenTypeEOF     TokenType = 16
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeUnknown:     "TokenTypeUnknown",
	TokenTypeKeyword:     "TokenTypeKeyword",
	TokenTypeReference:   "TokenTypeReference",
	TokenTypeString:      "TokenTypeString",
	TokenTypeInteger:     "TokenTypeInteger",
	TokenTypeReal:        "TokenTypeReal",
	TokenTypeEnumeration: "TokenTypeEnumeration",
	TokenTypeDollar:      "TokenTypeDollar",
	TokenTypeStar:        "TokenTypeStar",
	TokenTypeParenOpen:   "TokenTypeParenOpen",
	TokenTypeParenClose:  "TokenTypeParenClose",
	TokenTypeComma:       "TokenTypeComma",
	TokenTypeSemicolon:   "TokenTypeSemicolon",
	TokenTypeEqual:       "TokenTypeEqual",
	TokenTypeComment:     "TokenTypeComment",
	TokenTypeInvalid:     "TokenTypeInvalid",
	TokenTypeEOF:         "TokenTypeEOF",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", uint16(t))
}
