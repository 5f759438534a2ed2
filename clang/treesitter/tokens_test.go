package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/csonar/clang"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	type tok struct {
		kind     clang.TokenKind
		spelling string
	}
	for name, tc := range map[string]struct {
		input string
		want  []tok
	}{
		"integer": {"A 4", []tok{{clang.TokenIdentifier, "A"}, {clang.TokenLiteral, "4"}}},
		"negative": {"B -322", []tok{
			{clang.TokenIdentifier, "B"}, {clang.TokenPunctuation, "-"}, {clang.TokenLiteral, "322"},
		}},
		"exponent":  {"E 1.5e-3f", []tok{{clang.TokenIdentifier, "E"}, {clang.TokenLiteral, "1.5e-3f"}}},
		"hex float": {"H 0x1p+4", []tok{{clang.TokenIdentifier, "H"}, {clang.TokenLiteral, "0x1p+4"}}},
		"separator": {"M 1'000'000", []tok{{clang.TokenIdentifier, "M"}, {clang.TokenLiteral, "1'000'000"}}},
		"string":    {`S L"a \" b"`, []tok{{clang.TokenIdentifier, "S"}, {clang.TokenLiteral, `L"a \" b"`}}},
		"char":      {"C '\\n'", []tok{{clang.TokenIdentifier, "C"}, {clang.TokenLiteral, "'\\n'"}}},
		"keyword":   {"T unsigned int", []tok{
			{clang.TokenIdentifier, "T"}, {clang.TokenKeyword, "unsigned"}, {clang.TokenKeyword, "int"},
		}},
		"punctuators": {"P a->b <<= ...", []tok{
			{clang.TokenIdentifier, "P"}, {clang.TokenIdentifier, "a"}, {clang.TokenPunctuation, "->"},
			{clang.TokenIdentifier, "b"}, {clang.TokenPunctuation, "<<="}, {clang.TokenPunctuation, "..."},
		}},
		"comments": {"X 1 /* one */ // trailing", []tok{{clang.TokenIdentifier, "X"}, {clang.TokenLiteral, "1"}}},
		"continuation": {"Y 1 \\\n + 2", []tok{
			{clang.TokenIdentifier, "Y"}, {clang.TokenLiteral, "1"}, {clang.TokenPunctuation, "+"}, {clang.TokenLiteral, "2"},
		}},
		"leading dot": {"D .5", []tok{{clang.TokenIdentifier, "D"}, {clang.TokenLiteral, ".5"}}},
	} {
		var got []tok
		for _, tk := range tokenize(tc.input) {
			got = append(got, tok{tk.Kind(), tk.Spelling()})
		}
		assert.Equal(t, tc.want, got, name)
	}
}
