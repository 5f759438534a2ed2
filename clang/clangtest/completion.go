package clangtest

import (
	"github.com/dhamidi/csonar/clang"
)

// Chunk is one chunk of a fake completion string.
type Chunk struct {
	Kind   clang.ChunkKind
	Text   string
	Nested *String
}

// String is a fake clang.CompletionString. Nil pointers read as absent.
type String struct {
	Chunks       []Chunk
	Prio         uint
	Avail        clang.Availability
	Parent       *string
	Typed        *string
	Brief        *string
	Notes        []string
	ChunkQueries int
}

var _ clang.CompletionString = (*String)(nil)

func (s *String) NumChunks() int { return len(s.Chunks) }

func (s *String) ChunkKind(i int) clang.ChunkKind {
	s.ChunkQueries++
	return s.Chunks[i].Kind
}

func (s *String) ChunkText(i int) string { return s.Chunks[i].Text }

func (s *String) ChunkString(i int) clang.CompletionString {
	if s.Chunks[i].Nested == nil {
		return nil
	}
	return s.Chunks[i].Nested
}

func (s *String) Priority() uint                   { return s.Prio }
func (s *String) Availability() clang.Availability { return s.Avail }
func (s *String) Annotations() []string            { return s.Notes }

func (s *String) ParentName() (string, bool)   { return deref(s.Parent) }
func (s *String) TypedText() (string, bool)    { return deref(s.Typed) }
func (s *String) BriefComment() (string, bool) { return deref(s.Brief) }

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// Item is one fake completion result.
type Item struct {
	Kind   clang.EntityKind
	String *String
}

// Results is a fake clang.CompletionResults.
type Results struct {
	Items      []Item
	Diags      []clang.Diagnostic
	Container  clang.EntityKind
	Incomplete bool
	HasKind    bool
	Mask       uint64
}

var _ clang.CompletionResults = (*Results)(nil)

func (r *Results) Len() int { return len(r.Items) }

func (r *Results) Result(i int) (clang.EntityKind, clang.CompletionString) {
	return r.Items[i].Kind, r.Items[i].String
}

func (r *Results) Diagnostics() []clang.Diagnostic { return r.Diags }

func (r *Results) ContainerKind() (clang.EntityKind, bool, bool) {
	return r.Container, r.Incomplete, r.HasKind
}

func (r *Results) ContextMask() uint64 { return r.Mask }
