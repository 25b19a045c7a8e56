package step

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifcstep/ifcstep/internal/fs"
	"github.com/ifcstep/ifcstep/internal/idl"
	"github.com/ifcstep/ifcstep/internal/iter"
)

type lexed struct {
	kind  idl.TokenType
	value string
}

func lexAll(t *testing.T, input string) []*idl.Token {
	t.Helper()
	ctx := context.Background()
	lf, err := NewLexerStep().Lex(ctx, fs.NewFileString("/test.ifc", input, idl.FileKindIFC))
	require.NoError(t, err)
	it, err := lf.Tokens(ctx)
	require.NoError(t, err)
	tokens, err := iter.Collect(ctx, it)
	require.NoError(t, err)
	return tokens
}

func TestLexer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []lexed
	}{
		{
			name:     "empty file",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    " \t\r\n\n  ",
			expected: nil,
		},
		{
			name:  "record",
			input: "#12= IFCWALL('a',$,*,.T.,(1,2.5),-3.E-05);",
			expected: []lexed{
				{idl.TokenTypeReference, "12"},
				{idl.TokenTypeEqual, "="},
				{idl.TokenTypeKeyword, "IFCWALL"},
				{idl.TokenTypeParenOpen, "("},
				{idl.TokenTypeString, "a"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeDollar, "$"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeStar, "*"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeEnumeration, "T"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeParenOpen, "("},
				{idl.TokenTypeInteger, "1"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeReal, "2.5"},
				{idl.TokenTypeParenClose, ")"},
				{idl.TokenTypeComma, ","},
				{idl.TokenTypeReal, "-3.E-05"},
				{idl.TokenTypeParenClose, ")"},
				{idl.TokenTypeSemicolon, ";"},
			},
		},
		{
			name:  "section keywords",
			input: "ISO-10303-21; END-ISO-10303-21;",
			expected: []lexed{
				{idl.TokenTypeKeyword, "ISO-10303-21"},
				{idl.TokenTypeSemicolon, ";"},
				{idl.TokenTypeKeyword, "END-ISO-10303-21"},
				{idl.TokenTypeSemicolon, ";"},
			},
		},
		{
			name:  "escaped quote stays doubled",
			input: "'it''s'",
			expected: []lexed{
				{idl.TokenTypeString, "it''s"},
			},
		},
		{
			name:  "empty string",
			input: "''",
			expected: []lexed{
				{idl.TokenTypeString, ""},
			},
		},
		{
			name:  "comment between tokens",
			input: "#1/* note */=",
			expected: []lexed{
				{idl.TokenTypeReference, "1"},
				{idl.TokenTypeComment, " note "},
				{idl.TokenTypeEqual, "="},
			},
		},
		{
			name:  "numbers",
			input: "0 +7 1.5E3 2e-2 10.",
			expected: []lexed{
				{idl.TokenTypeInteger, "0"},
				{idl.TokenTypeInteger, "+7"},
				{idl.TokenTypeReal, "1.5E3"},
				{idl.TokenTypeReal, "2e-2"},
				{idl.TokenTypeReal, "10."},
			},
		},
		{
			name:  "typed parameter",
			input: "IFCLABEL('x')",
			expected: []lexed{
				{idl.TokenTypeKeyword, "IFCLABEL"},
				{idl.TokenTypeParenOpen, "("},
				{idl.TokenTypeString, "x"},
				{idl.TokenTypeParenClose, ")"},
			},
		},
		{
			name:  "unterminated string",
			input: "'abc",
			expected: []lexed{
				{idl.TokenTypeInvalid, "unexpected EOF (expecting closing quote)"},
			},
		},
		{
			name:  "unterminated comment",
			input: "/* abc",
			expected: []lexed{
				{idl.TokenTypeInvalid, "unexpected EOF (expecting '*/')"},
			},
		},
		{
			name:  "reference without digits",
			input: "#x",
			expected: []lexed{
				{idl.TokenTypeInvalid, "expecting digits after '#'"},
				{idl.TokenTypeKeyword, "x"},
			},
		},
		{
			name:  "stray character",
			input: "@",
			expected: []lexed{
				{idl.TokenTypeInvalid, `unexpected '@'`},
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			tokens := lexAll(t, testCase.input)
			var actual []lexed
			for _, tok := range tokens {
				actual = append(actual, lexed{tok.Type, tok.Value})
			}
			require.Equal(t, testCase.expected, actual)
		})
	}
}

func TestLexerSpans(t *testing.T) {
	t.Parallel()

	tokens := lexAll(t, "#1=\n  IFCX('é');")
	require.Len(t, tokens, 7)

	require.Equal(t, idl.Span{
		Start: idl.Location{Line: 1, Column: 1, Offset: 0},
		End:   idl.Location{Line: 1, Column: 3, Offset: 2},
	}, *tokens[0].Span)
	require.Equal(t, idl.Span{
		Start: idl.Location{Line: 2, Column: 3, Offset: 6},
		End:   idl.Location{Line: 2, Column: 7, Offset: 10},
	}, *tokens[2].Span)
	// multi-byte content advances the offset by its encoded size
	require.Equal(t, idl.Span{
		Start: idl.Location{Line: 2, Column: 8, Offset: 11},
		End:   idl.Location{Line: 2, Column: 11, Offset: 15},
	}, *tokens[4].Span)
}
