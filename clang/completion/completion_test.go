package completion

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang"
	ct "github.com/dhamidi/csonar/clang/clangtest"
)

func openString() *ct.String {
	return &ct.String{
		Prio:  50,
		Avail: clang.Available,
		Typed: ct.StrPtr("open"),
		Brief: ct.StrPtr("Opens a file."),
		Notes: []string{"posix"},
		Chunks: []ct.Chunk{
			{Kind: clang.ChunkResultType, Text: "int"},
			{Kind: clang.ChunkTypedText, Text: "open"},
			{Kind: clang.ChunkLeftParen, Text: "("},
			{Kind: clang.ChunkPlaceholder, Text: "const char *path"},
			{Kind: clang.ChunkOptional, Nested: &ct.String{Chunks: []ct.Chunk{
				{Kind: clang.ChunkComma, Text: ", "},
				{Kind: clang.ChunkPlaceholder, Text: "int flags"},
				{Kind: clang.ChunkOptional, Nested: &ct.String{Chunks: []ct.Chunk{
					{Kind: clang.ChunkComma, Text: ", "},
					{Kind: clang.ChunkPlaceholder, Text: "mode_t mode"},
				}}},
			}}},
			{Kind: clang.ChunkRightParen, Text: ")"},
		},
	}
}

func TestChunksDecodeNestedOptional(t *testing.T) {
	t.Parallel()

	chunks, err := NewString(openString()).Chunks()
	require.NoError(t, err)
	require.Len(t, chunks, 6)

	assert.Equal(t, clang.ChunkResultType, chunks[0].Kind)
	assert.Equal(t, "open", chunks[1].Text)
	assert.Nil(t, chunks[1].Optional)

	opt := chunks[4]
	require.Equal(t, clang.ChunkOptional, opt.Kind)
	require.NotNil(t, opt.Optional)

	nested, err := opt.Optional.Chunks()
	require.NoError(t, err)
	require.Len(t, nested, 3)
	assert.Equal(t, "int flags", nested[1].Text)
	require.NotNil(t, nested[2].Optional)

	inner, err := nested[2].Optional.Chunks()
	require.NoError(t, err)
	assert.Equal(t, "mode_t mode", inner[1].Text)
}

func TestChunksAreIdempotent(t *testing.T) {
	t.Parallel()

	s := NewString(openString())
	first, err := s.Chunks()
	require.NoError(t, err)
	second, err := s.Chunks()
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(flatten(t, first), flatten(t, second)))
}

func TestChunksQueryTheFrontendEachTime(t *testing.T) {
	t.Parallel()

	raw := &ct.String{Chunks: []ct.Chunk{{Kind: clang.ChunkTypedText, Text: "x"}}}
	s := NewString(raw)
	assert.Equal(t, 0, raw.ChunkQueries)

	_, err := s.Chunks()
	require.NoError(t, err)
	_, err = s.Chunks()
	require.NoError(t, err)
	assert.Equal(t, 2, raw.ChunkQueries)
}

func TestUnknownChunkKindIsContractViolation(t *testing.T) {
	t.Parallel()

	raw := &ct.String{Chunks: []ct.Chunk{
		{Kind: clang.ChunkTypedText, Text: "x"},
		{Kind: clang.ChunkKind(42), Text: "?"},
	}}
	chunks, err := NewString(raw).Chunks()
	require.Error(t, err)
	assert.True(t, clang.IsContractViolation(err))
	assert.True(t, errors.IsAssertionFailure(err))
	assert.Nil(t, chunks)
}

func TestUnknownNestedChunkKindIsContractViolation(t *testing.T) {
	t.Parallel()

	raw := &ct.String{Chunks: []ct.Chunk{
		{Kind: clang.ChunkOptional, Nested: &ct.String{Chunks: []ct.Chunk{{Kind: clang.ChunkKind(-1)}}}},
	}}
	_, err := NewString(raw).Chunks()
	assert.True(t, clang.IsContractViolation(err))
}

func TestOptionalFieldsDistinguishAbsentFromEmpty(t *testing.T) {
	t.Parallel()

	empty := NewString(&ct.String{Parent: ct.StrPtr(""), Typed: ct.StrPtr(""), Brief: ct.StrPtr("")})
	absent := NewString(&ct.String{})

	for _, get := range []func(*String) (string, bool){
		(*String).ParentName,
		(*String).TypedText,
		(*String).BriefComment,
	} {
		text, ok := get(empty)
		assert.True(t, ok)
		assert.Equal(t, "", text)

		_, ok = get(absent)
		assert.False(t, ok)
	}
}

func TestScalarFields(t *testing.T) {
	t.Parallel()

	raw := openString()
	raw.Avail = clang.Deprecated
	s := NewString(raw)

	assert.Equal(t, uint(50), s.Priority())
	assert.Equal(t, clang.Deprecated, s.Availability())
	assert.Equal(t, []string{"posix"}, s.Annotations())
	brief, ok := s.BriefComment()
	assert.True(t, ok)
	assert.Equal(t, "Opens a file.", brief)
}

func TestRender(t *testing.T) {
	t.Parallel()

	text, err := NewString(openString()).Render()
	require.NoError(t, err)
	assert.Equal(t, "open(const char *path, int flags, mode_t mode)", text)
}

func TestDecodeResults(t *testing.T) {
	t.Parallel()

	raw := &ct.Results{
		Items: []ct.Item{
			{Kind: clang.EntityFunctionDecl, String: openString()},
			{Kind: clang.EntityMacroDefinition, String: &ct.String{Prio: 70, Typed: ct.StrPtr("O_RDONLY")}},
		},
		Diags:      []clang.Diagnostic{{Severity: clang.SeverityWarning, Message: "unused"}},
		Container:  clang.EntityStructDecl,
		Incomplete: true,
		HasKind:    true,
		Mask:       clang.ContextAnyValue | clang.ContextMacroName,
	}

	res := Decode(raw)
	require.Equal(t, 2, res.Len())
	assert.Equal(t, clang.EntityFunctionDecl, res.All()[0].Kind)
	assert.Equal(t, clang.EntityMacroDefinition, res.All()[1].Kind)

	container, ok := res.ContainerKind()
	require.True(t, ok)
	assert.Equal(t, Container{Kind: clang.EntityStructDecl, Incomplete: true}, container)

	assert.Equal(t, Context{AnyValues: true, MacroNames: true}, res.Context())
	assert.Len(t, res.Diagnostics(), 1)
}

func TestDecodeWithoutContainer(t *testing.T) {
	t.Parallel()

	res := Decode(&ct.Results{})
	_, ok := res.ContainerKind()
	assert.False(t, ok)
	assert.Empty(t, res.All())
	assert.Empty(t, res.Diagnostics())
}

func TestSortByPriorityThenLabel(t *testing.T) {
	t.Parallel()

	mk := func(prio uint, label string) Result {
		return Result{Kind: clang.EntityFunctionDecl, String: NewString(&ct.String{Prio: prio, Typed: ct.StrPtr(label)})}
	}
	results := []Result{mk(50, "write"), mk(10, "zeta"), mk(50, "read"), mk(10, "alpha")}
	Sort(results)

	var labels []string
	for _, r := range results {
		labels = append(labels, r.String.Label())
	}
	assert.Equal(t, []string{"alpha", "zeta", "read", "write"}, labels)

	assert.Len(t, Filter(results, "re"), 1)
	assert.Len(t, Filter(results, ""), 4)
}

type flatChunk struct {
	Kind   clang.ChunkKind
	Text   string
	Nested []flatChunk
}

func flatten(t *testing.T, chunks []Chunk) []flatChunk {
	t.Helper()
	var out []flatChunk
	for _, c := range chunks {
		fc := flatChunk{Kind: c.Kind, Text: c.Text}
		if c.Optional != nil {
			nested, err := c.Optional.Chunks()
			require.NoError(t, err)
			fc.Nested = flatten(t, nested)
		}
		out = append(out, fc)
	}
	return out
}
