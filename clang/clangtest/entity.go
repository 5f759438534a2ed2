// Package clangtest provides in-memory implementations of the clang
// capability surface for tests.
package clangtest

import (
	"fmt"
	"sync/atomic"

	"github.com/dhamidi/csonar/clang"
)

var anonymousIDs atomic.Int64

// Entity is a fake clang.Entity. An empty name means anonymous.
type Entity struct {
	kind       clang.EntityKind
	name       string
	typ        clang.Type
	children   []clang.Entity
	location   clang.Location
	system     bool
	builtin    bool
	tokens     []clang.Token
	comment    clang.Comment
	underlying clang.Type
}

var _ clang.Entity = (*Entity)(nil)

func (e *Entity) Kind() clang.EntityKind { return e.kind }

func (e *Entity) Name() (string, bool) {
	if e.name == "" {
		return "", false
	}
	return e.name, true
}

func (e *Entity) Type() clang.Type                  { return e.typ }
func (e *Entity) Children() []clang.Entity          { return e.children }
func (e *Entity) Location() clang.Location          { return e.location }
func (e *Entity) InSystemHeader() bool              { return e.system }
func (e *Entity) IsBuiltinMacro() bool              { return e.builtin }
func (e *Entity) Tokens() []clang.Token             { return e.tokens }
func (e *Entity) Comment() clang.Comment            { return e.comment }
func (e *Entity) TypedefUnderlyingType() clang.Type { return e.underlying }

// NewEntity returns an entity of the given kind without a type.
func NewEntity(kind clang.EntityKind, name string) *Entity {
	return &Entity{kind: kind, name: name}
}

// Tag returns a struct, union or enum declaration whose type is owned by
// the entity. Anonymous tags get a unique type key.
func Tag(kind clang.EntityKind, name string) *Entity {
	e := &Entity{kind: kind, name: name}
	tk := clang.TypeRecord
	prefix := "struct"
	switch kind {
	case clang.EntityUnionDecl:
		prefix = "union"
	case clang.EntityEnumDecl:
		prefix = "enum"
		tk = clang.TypeEnum
	}
	key := prefix + ":" + name
	spelling := prefix + " " + name
	if name == "" {
		id := anonymousIDs.Add(1)
		key = fmt.Sprintf("%s:@%d", prefix, id)
		spelling = fmt.Sprintf("%s (unnamed %d)", prefix, id)
	}
	e.typ = &Type{kind: tk, spelling: spelling, key: key, decl: e}
	return e
}

// Struct returns a struct declaration.
func Struct(name string) *Entity { return Tag(clang.EntityStructDecl, name) }

// Union returns a union declaration.
func Union(name string) *Entity { return Tag(clang.EntityUnionDecl, name) }

// Enum returns an enum declaration.
func Enum(name string) *Entity { return Tag(clang.EntityEnumDecl, name) }

// Typedef returns a typedef of underlying.
func Typedef(name string, underlying clang.Type) *Entity {
	e := &Entity{kind: clang.EntityTypedefDecl, name: name, underlying: underlying}
	e.typ = &Type{kind: clang.TypeTypedef, spelling: name, key: "typedef:" + name, decl: e}
	return e
}

// Function returns a function declaration.
func Function(name string) *Entity {
	return &Entity{
		kind: clang.EntityFunctionDecl,
		name: name,
		typ:  &Type{kind: clang.TypeFunction, spelling: "void (void)", key: "fn:void(void)"},
	}
}

// Macro returns a macro definition whose tokens start with its name.
func Macro(name string, value ...clang.Token) *Entity {
	tokens := append([]clang.Token{Ident(name)}, value...)
	return &Entity{kind: clang.EntityMacroDefinition, name: name, tokens: tokens}
}

// BuiltinMacro returns a macro definition flagged as builtin.
func BuiltinMacro(name string, value ...clang.Token) *Entity {
	e := Macro(name, value...)
	e.builtin = true
	return e
}

// WithChildren sets the entity's children.
func (e *Entity) WithChildren(children ...clang.Entity) *Entity {
	e.children = children
	return e
}

// WithComment attaches a documentation comment.
func (e *Entity) WithComment(c clang.Comment) *Entity {
	e.comment = c
	return e
}

// WithType replaces the entity's type.
func (e *Entity) WithType(t clang.Type) *Entity {
	e.typ = t
	return e
}

// InSystem flags the entity as declared in a system header.
func (e *Entity) InSystem() *Entity {
	e.system = true
	return e
}

// At sets the entity's location.
func (e *Entity) At(file string, line, column int) *Entity {
	e.location = clang.Location{File: file, Line: line, Column: column}
	return e
}

// Entities converts fakes to a clang.Entity slice.
func Entities(es ...*Entity) []clang.Entity {
	out := make([]clang.Entity, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Type is a fake clang.Type.
type Type struct {
	kind     clang.TypeKind
	spelling string
	key      string
	decl     clang.Entity
}

var _ clang.Type = (*Type)(nil)

// NewType returns a type with the given identity key.
func NewType(kind clang.TypeKind, spelling, key string) *Type {
	return &Type{kind: kind, spelling: spelling, key: key}
}

// Builtin returns a builtin type such as int.
func Builtin(spelling string) *Type {
	return &Type{kind: clang.TypeBuiltin, spelling: spelling, key: "builtin:" + spelling}
}

// PointerTo returns a pointer to t.
func PointerTo(t clang.Type) *Type {
	return &Type{kind: clang.TypePointer, spelling: t.Spelling() + " *", key: "ptr(" + t.Key() + ")"}
}

func (t *Type) Kind() clang.TypeKind      { return t.kind }
func (t *Type) Spelling() string          { return t.spelling }
func (t *Type) Declaration() clang.Entity { return t.decl }
func (t *Type) Key() string               { return t.key }

// Token is a fake clang.Token.
type Token struct {
	kind     clang.TokenKind
	spelling string
}

var _ clang.Token = Token{}

func (t Token) Kind() clang.TokenKind { return t.kind }
func (t Token) Spelling() string      { return t.spelling }

// Punct returns a punctuation token.
func Punct(s string) Token { return Token{kind: clang.TokenPunctuation, spelling: s} }

// Lit returns a literal token.
func Lit(s string) Token { return Token{kind: clang.TokenLiteral, spelling: s} }

// Ident returns an identifier token.
func Ident(s string) Token { return Token{kind: clang.TokenIdentifier, spelling: s} }

// Keyword returns a keyword token.
func Keyword(s string) Token { return Token{kind: clang.TokenKeyword, spelling: s} }
