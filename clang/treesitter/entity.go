package treesitter

import (
	"github.com/dhamidi/csonar/clang"
)

// entity is a declaration extracted from the syntax tree.
type entity struct {
	kind       clang.EntityKind
	name       string
	typ        *ctype
	children   []clang.Entity
	location   clang.Location
	system     bool
	tokens     []clang.Token
	comment    clang.Comment
	underlying *ctype

	// definition is true for tags with a body and functions with a body.
	definition bool
	// params holds parameter names for functions and function-like macros.
	params       []string
	variadic     bool
	functionLike bool
	// start and end delimit the declaring node in the source.
	start, end uint
	// parent is the enclosing record or enum of fields and enumerators.
	parent *entity
}

var _ clang.Entity = (*entity)(nil)

func (e *entity) Kind() clang.EntityKind { return e.kind }

func (e *entity) Name() (string, bool) {
	if e.name == "" {
		return "", false
	}
	return e.name, true
}

func (e *entity) Type() clang.Type {
	if e.typ == nil {
		return nil
	}
	return e.typ
}

func (e *entity) TypedefUnderlyingType() clang.Type {
	if e.underlying == nil {
		return nil
	}
	return e.underlying
}

func (e *entity) Children() []clang.Entity { return e.children }
func (e *entity) Location() clang.Location { return e.location }
func (e *entity) InSystemHeader() bool     { return e.system }
func (e *entity) IsBuiltinMacro() bool     { return false }
func (e *entity) Tokens() []clang.Token    { return e.tokens }
func (e *entity) Comment() clang.Comment   { return e.comment }

// IsDefinition reports whether the entity is a tag or function definition.
func (e *entity) IsDefinition() bool { return e.definition }

// token is one preprocessing token of a macro definition.
type token struct {
	kind     clang.TokenKind
	spelling string
}

func (t token) Kind() clang.TokenKind { return t.kind }
func (t token) Spelling() string      { return t.spelling }
