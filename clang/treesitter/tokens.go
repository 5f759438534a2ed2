package treesitter

import (
	"strings"

	"github.com/dhamidi/csonar/clang"
)

var keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true, "_Bool": true, "_Complex": true,
	"_Alignas": true, "_Alignof": true, "_Atomic": true, "_Generic": true,
	"_Noreturn": true, "_Static_assert": true, "_Thread_local": true,
	"bool": true, "true": true, "false": true, "nullptr": true,
}

// punctuators is ordered longest first so that the first match wins.
var punctuators = []string{
	"%:%:", "...", "<<=", ">>=",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##", "<:", ":>",
	"<%", "%>", "%:", "::",
}

// lexer splits preprocessor text into tokens. Comments and whitespace are
// dropped; line continuations are treated as whitespace.
type lexer struct {
	input string
	pos   int
}

func tokenize(text string) []clang.Token {
	l := &lexer{input: strings.ReplaceAll(text, "\\\n", " ")}
	var tokens []clang.Token
	for {
		tok, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.input) {
		return token{}, false
	}
	start := l.pos
	ch := l.input[l.pos]
	switch {
	case isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])):
		l.scanNumber()
		return token{kind: clang.TokenLiteral, spelling: l.input[start:l.pos]}, true
	case ch == '"' || ch == '\'':
		l.scanQuoted(ch)
		return token{kind: clang.TokenLiteral, spelling: l.input[start:l.pos]}, true
	case isIdentStart(ch):
		for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
			l.pos++
		}
		word := l.input[start:l.pos]
		// Encoding prefixes of string and character literals.
		if l.pos < len(l.input) && (l.input[l.pos] == '"' || l.input[l.pos] == '\'') &&
			(word == "L" || word == "u" || word == "U" || word == "u8") {
			l.scanQuoted(l.input[l.pos])
			return token{kind: clang.TokenLiteral, spelling: l.input[start:l.pos]}, true
		}
		if keywords[word] {
			return token{kind: clang.TokenKeyword, spelling: word}, true
		}
		return token{kind: clang.TokenIdentifier, spelling: word}, true
	}
	for _, p := range punctuators {
		if strings.HasPrefix(l.input[l.pos:], p) {
			l.pos += len(p)
			return token{kind: clang.TokenPunctuation, spelling: p}, true
		}
	}
	l.pos++
	return token{kind: clang.TokenPunctuation, spelling: l.input[start:l.pos]}, true
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		switch {
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r' || rest[0] == '\f' || rest[0] == '\v':
			l.pos++
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				l.pos = len(l.input)
			} else {
				l.pos += end
			}
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				l.pos = len(l.input)
			} else {
				l.pos += end + 4
			}
		default:
			return
		}
	}
}

// scanNumber consumes a preprocessing number: digits, letters, '.', '\''
// and signs that follow an exponent marker.
func (l *lexer) scanNumber() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case (ch == '+' || ch == '-') && l.pos > 0 && strings.IndexByte("eEpP", l.input[l.pos-1]) >= 0:
			l.pos++
		case isIdentChar(ch) || ch == '.' || ch == '\'':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) scanQuoted(quote byte) {
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case quote:
			l.pos++
			return
		}
		l.pos++
	}
	l.pos = len(l.input)
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isIdentStart(ch byte) bool { return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isIdentChar(ch byte) bool  { return isIdentStart(ch) || isDigit(ch) }
