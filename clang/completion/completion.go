// Package completion decodes raw code-completion results into typed
// proposals, chunk sequences and context flags.
package completion

import (
	"strings"

	"github.com/dhamidi/csonar/clang"
)

// Result is one completion proposal.
type Result struct {
	Kind   clang.EntityKind
	String *String
}

// Container describes the entity enclosing the completion point.
type Container struct {
	Kind       clang.EntityKind
	Incomplete bool
}

// Results is the decoded form of one completion request.
type Results struct {
	raw     clang.CompletionResults
	results []Result
}

// Decode wraps a raw completion-results handle. Results are kept in
// frontend order; see Sort for a deterministic ordering.
func Decode(r clang.CompletionResults) *Results {
	res := &Results{raw: r}
	if r == nil {
		return res
	}
	n := r.Len()
	res.results = make([]Result, 0, n)
	for i := range n {
		kind, s := r.Result(i)
		res.results = append(res.results, Result{Kind: kind, String: NewString(s)})
	}
	return res
}

// All returns every result.
func (r *Results) All() []Result {
	return r.results
}

// Len returns the number of results.
func (r *Results) Len() int {
	return len(r.results)
}

// Context decodes the completion context flags.
func (r *Results) Context() Context {
	if r.raw == nil {
		return Context{}
	}
	return DecodeContext(r.raw.ContextMask())
}

// ContainerKind returns the container of the completion point, if the
// frontend reported one.
func (r *Results) ContainerKind() (Container, bool) {
	if r.raw == nil {
		return Container{}, false
	}
	kind, incomplete, ok := r.raw.ContainerKind()
	if !ok {
		return Container{}, false
	}
	return Container{Kind: kind, Incomplete: incomplete}, true
}

// Diagnostics returns the diagnostics reported with the completion request.
func (r *Results) Diagnostics() []clang.Diagnostic {
	if r.raw == nil {
		return nil
	}
	return r.raw.Diagnostics()
}

// Chunk is one fragment of a completion string. Optional is set only for
// clang.ChunkOptional chunks.
type Chunk struct {
	Kind     clang.ChunkKind
	Text     string
	Optional *String
}

// String is a completion string. Every accessor queries the frontend on
// each call.
type String struct {
	raw clang.CompletionString
}

// NewString wraps a raw completion-string handle.
func NewString(s clang.CompletionString) *String {
	return &String{raw: s}
}

func (s *String) Priority() uint {
	return s.raw.Priority()
}

func (s *String) Availability() clang.Availability {
	return s.raw.Availability()
}

// BriefComment returns false when the proposal has no brief comment.
func (s *String) BriefComment() (string, bool) {
	return s.raw.BriefComment()
}

// ParentName returns false when the proposal has no parent context.
func (s *String) ParentName() (string, bool) {
	return s.raw.ParentName()
}

// TypedText returns false when the proposal has no typed-text chunk.
func (s *String) TypedText() (string, bool) {
	return s.raw.TypedText()
}

func (s *String) Annotations() []string {
	return append([]string(nil), s.raw.Annotations()...)
}

// Chunks decodes the chunk list. An unknown chunk kind is a contract
// violation and no chunks are returned.
func (s *String) Chunks() ([]Chunk, error) {
	n := s.raw.NumChunks()
	chunks := make([]Chunk, 0, n)
	for i := range n {
		kind := s.raw.ChunkKind(i)
		if !kind.Valid() {
			return nil, clang.ContractViolationf("completion chunk %d has unknown kind %d", i, int(kind))
		}
		chunk := Chunk{Kind: kind, Text: s.raw.ChunkText(i)}
		if kind == clang.ChunkOptional {
			nested := s.raw.ChunkString(i)
			if nested == nil {
				return nil, clang.ContractViolationf("optional completion chunk %d has no nested string", i)
			}
			chunk.Optional = NewString(nested)
			// surface errors in nested strings now
			if _, err := chunk.Optional.Chunks(); err != nil {
				return nil, err
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// Render joins the text of the proposal's chunks the way an editor would
// insert it. Informative and result-type chunks are skipped and optional
// chunks are rendered inline.
func (s *String) Render() (string, error) {
	chunks, err := s.Chunks()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, c := range chunks {
		switch c.Kind {
		case clang.ChunkInformative, clang.ChunkResultType:
		case clang.ChunkOptional:
			nested, err := c.Optional.Render()
			if err != nil {
				return "", err
			}
			sb.WriteString(nested)
		case clang.ChunkHorizontalSpace:
			sb.WriteString(" ")
		case clang.ChunkVerticalSpace:
			sb.WriteString("\n")
		default:
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}

// Label is the typed text, or the rendered string when the proposal has no
// typed-text chunk.
func (s *String) Label() string {
	if t, ok := s.TypedText(); ok {
		return t
	}
	text, _ := s.Render()
	return text
}
