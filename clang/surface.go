// Package clang describes the capability surface a C/C++ compiler frontend
// exposes to csonar: entities, types, tokens, raw documentation comments and
// raw code-completion results.
//
// The interfaces are implemented by frontend adapters (see the treesitter,
// astdump and ccomplete subpackages) and consumed by the comment, completion
// and sonar decoders. A translation unit's handles are not safe for
// concurrent use; callers serialize access per translation unit.
package clang

import (
	"strconv"
)

// Location is a position inside a source file. Lines and columns are 1-based.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Entity is a node in a translation unit's declaration graph.
type Entity interface {
	Kind() EntityKind
	// Name returns the entity's spelling, or false for anonymous entities.
	Name() (string, bool)
	// Type returns the entity's type, or nil when it has none.
	Type() Type
	Children() []Entity
	Location() Location
	InSystemHeader() bool
	IsBuiltinMacro() bool
	// Tokens returns the tokens spanned by the entity. For macro
	// definitions the first token is the macro name.
	Tokens() []Token
	// Comment returns the attached documentation comment, or nil.
	Comment() Comment
	// TypedefUnderlyingType returns the aliased type of a typedef, or nil.
	TypedefUnderlyingType() Type
}

// Type is a frontend type.
type Type interface {
	Kind() TypeKind
	Spelling() string
	// Declaration returns the entity declaring the type, or nil.
	Declaration() Entity
	// Key identifies the type. Two types are equal iff their keys are equal.
	Key() string
}

// EqualTypes reports whether a and b denote the same type.
func EqualTypes(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Key() == b.Key()
}

// Token is one preprocessing token.
type Token interface {
	Kind() TokenKind
	Spelling() string
}

// Attr is one HTML attribute of a comment start tag.
type Attr struct {
	Name  string
	Value string
}

// Comment is a raw documentation-comment node. Which accessors are
// meaningful depends on Kind; the rest return zero values.
type Comment interface {
	Kind() CommentKind
	Children() []Comment

	// Text, VerbatimBlockLine and VerbatimLine nodes.
	Text() string

	// InlineCommand, BlockCommand, ParamCommand, TParamCommand and
	// VerbatimBlockCommand nodes.
	CommandName() string
	Args() []string
	RenderKind() RenderKind

	// HTMLStartTag and HTMLEndTag nodes.
	TagName() string
	Attrs() []Attr
	SelfClosing() bool

	// ParamCommand and TParamCommand nodes.
	ParamName() string
	// ParamIndex returns false when the parameter was not resolved.
	ParamIndex() (int, bool)
	// Direction returns false unless the direction was written explicitly.
	Direction() (Direction, bool)
	// TParamPosition returns the nesting depth and the index at the
	// innermost level, or false when the template parameter was not found.
	TParamPosition() (depth, index int, ok bool)

	// HTML and XML renderings of a Full comment.
	HTML() string
	XML() string
}

// Severity of a Diagnostic.
type Severity int

const (
	SeverityIgnored Severity = iota
	SeverityNote
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal error"
	default:
		return "ignored"
	}
}

// Diagnostic is a message the frontend reported while processing a request.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
}

// CompletionResults is the raw result of one code-completion request.
type CompletionResults interface {
	Len() int
	Result(i int) (EntityKind, CompletionString)
	Diagnostics() []Diagnostic
	// ContainerKind returns the kind of the entity containing the completion
	// point and whether that container is incomplete. ok is false when the
	// frontend has no container information.
	ContainerKind() (kind EntityKind, incomplete bool, ok bool)
	ContextMask() uint64
}

// CompletionString is the raw form of one completion proposal.
type CompletionString interface {
	NumChunks() int
	ChunkKind(i int) ChunkKind
	ChunkText(i int) string
	// ChunkString returns the nested string of an Optional chunk.
	ChunkString(i int) CompletionString
	Priority() uint
	Availability() Availability
	ParentName() (string, bool)
	TypedText() (string, bool)
	BriefComment() (string, bool)
	Annotations() []string
}
