package sonar

import (
	"strconv"
	"strings"

	"github.com/dhamidi/csonar/clang"
)

// Value is the value of a macro definition: Integer or Real.
type Value interface {
	value()
	String() string
}

// Integer is an integer literal. Literal tokens are unsigned, so a leading
// minus sign is kept in Negative.
type Integer struct {
	Negative  bool
	Magnitude uint64
}

// Real is a floating-point literal, sign included.
type Real struct {
	Value float64
}

func (Integer) value() {}
func (Real) value()    {}

func (i Integer) String() string {
	s := strconv.FormatUint(i.Magnitude, 10)
	if i.Negative {
		return "-" + s
	}
	return s
}

func (r Real) String() string {
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// parseValue classifies the tokens following a macro's name. It returns
// false for anything that is not a single optionally negated number.
func parseValue(tokens []clang.Token) (Value, bool) {
	negative := false
	switch len(tokens) {
	case 1:
	case 2:
		if tokens[0].Kind() != clang.TokenPunctuation || tokens[0].Spelling() != "-" {
			return nil, false
		}
		negative = true
		tokens = tokens[1:]
	default:
		return nil, false
	}
	if tokens[0].Kind() != clang.TokenLiteral {
		return nil, false
	}

	lit := tokens[0].Spelling()
	if !validNumber(lit) {
		return nil, false
	}
	if n, ok := parseInteger(lit); ok {
		return Integer{Negative: negative, Magnitude: n}, true
	}
	if f, ok := parseReal(lit); ok {
		if negative {
			f = -f
		}
		return Real{Value: f}, true
	}
	return nil, false
}

func parseInteger(lit string) (uint64, bool) {
	s := strings.ReplaceAll(lit, "'", "")
	s = strings.TrimRight(s, "uUlL")
	if !validNumber(s) || strings.ContainsAny(s, "oO") {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseReal(lit string) (float64, bool) {
	s := strings.ReplaceAll(lit, "'", "")
	hex := strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
	if hex && !strings.ContainsAny(s, "pP") {
		return 0, false
	}
	if !hex && !strings.ContainsAny(s, ".eE") {
		return 0, false
	}
	s = strings.TrimRight(s, "fFlL")
	if !validNumber(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// validNumber rejects spellings strconv accepts but C does not, such as
// underscores, signs, inf and nan.
func validNumber(s string) bool {
	if s == "" || strings.Contains(s, "_") {
		return false
	}
	c := s[0]
	return c == '.' || (c >= '0' && c <= '9')
}
