package ccomplete

import (
	"github.com/dhamidi/csonar/clang"
)

// Results holds one parsed completion run. It implements
// clang.CompletionResults.
type Results struct {
	proposals    []proposal
	diagnostics  []clang.Diagnostic
	mask         uint64
	container    clang.EntityKind
	hasContainer bool
	incomplete   bool
}

var _ clang.CompletionResults = (*Results)(nil)

type proposal struct {
	kind clang.EntityKind
	str  *completionString
}

func (r *Results) Len() int { return len(r.proposals) }

func (r *Results) Result(i int) (clang.EntityKind, clang.CompletionString) {
	p := r.proposals[i]
	return p.kind, p.str
}

func (r *Results) Diagnostics() []clang.Diagnostic { return r.diagnostics }
func (r *Results) ContextMask() uint64             { return r.mask }

func (r *Results) ContainerKind() (clang.EntityKind, bool, bool) {
	return r.container, r.incomplete, r.hasContainer
}

type chunk struct {
	kind   clang.ChunkKind
	text   string
	nested *completionString
}

type completionString struct {
	chunks       []chunk
	priority     uint
	availability clang.Availability
	parent       *string
	typed        *string
	brief        *string
	annotations  []string
}

var _ clang.CompletionString = (*completionString)(nil)

func (s *completionString) NumChunks() int                  { return len(s.chunks) }
func (s *completionString) ChunkKind(i int) clang.ChunkKind { return s.chunks[i].kind }
func (s *completionString) ChunkText(i int) string          { return s.chunks[i].text }

func (s *completionString) ChunkString(i int) clang.CompletionString {
	if s.chunks[i].nested == nil {
		return nil
	}
	return s.chunks[i].nested
}

func (s *completionString) Priority() uint                   { return s.priority }
func (s *completionString) Availability() clang.Availability { return s.availability }
func (s *completionString) ParentName() (string, bool)       { return deref(s.parent) }
func (s *completionString) TypedText() (string, bool)        { return deref(s.typed) }
func (s *completionString) BriefComment() (string, bool)     { return deref(s.brief) }
func (s *completionString) Annotations() []string            { return s.annotations }

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
