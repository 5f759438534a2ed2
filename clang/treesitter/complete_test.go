package treesitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/completion"
)

const completionSource = `struct Point { int x; int y; };
typedef struct Point Point;
/** Makes a point. */
Point make(int x, int y);
#define MAX(a, b) ((a) > (b) ? (a) : (b))
enum Colour { RED, GREEN };
int counter;
void use(Point *p) { p->x = co; }
`

func labels(results []completion.Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.String.Label())
	}
	return out
}

func TestCompleteOrdinaryContext(t *testing.T) {
	t.Parallel()

	tu := parse(t, completionSource)
	c := tu.CompleteAt(8, 31)
	assert.Equal(t, "co", c.Prefix())

	results := completion.Decode(c)
	ctx := results.Context()
	assert.True(t, ctx.AnyValues)
	assert.True(t, ctx.MacroNames)
	assert.False(t, ctx.ArrowMembers)
	_, ok := results.ContainerKind()
	assert.False(t, ok)

	assert.Equal(t, []string{"p", "Point", "make", "MAX", "RED", "GREEN", "counter", "use"}, labels(results.All()))

	byLabel := make(map[string]completion.Result)
	for _, r := range results.All() {
		byLabel[r.String.Label()] = r
	}

	mk := byLabel["make"]
	assert.Equal(t, clang.EntityFunctionDecl, mk.Kind)
	rendered, err := mk.String.Render()
	require.NoError(t, err)
	assert.Equal(t, "make(int x, int y)", rendered)
	brief, ok := mk.String.BriefComment()
	assert.True(t, ok)
	assert.Equal(t, "Makes a point.", brief)

	macro := byLabel["MAX"]
	assert.Equal(t, clang.EntityMacroDefinition, macro.Kind)
	assert.EqualValues(t, priorityMacro, macro.String.Priority())
	rendered, err = macro.String.Render()
	require.NoError(t, err)
	assert.Equal(t, "MAX(a, b)", rendered)

	red := byLabel["RED"]
	assert.Equal(t, clang.EntityEnumConstantDecl, red.Kind)
	chunks, err := red.String.Chunks()
	require.NoError(t, err)
	assert.Equal(t, completion.Chunk{Kind: clang.ChunkResultType, Text: "enum Colour"}, chunks[0])

	_, ok = byLabel["counter"].String.ParentName()
	assert.False(t, ok)

	filtered := completion.Filter(results.All(), c.Prefix())
	assert.Equal(t, []string{"counter"}, labels(filtered))
}

func TestCompleteArrowMembers(t *testing.T) {
	t.Parallel()

	tu := parse(t, completionSource)
	results := completion.Decode(tu.CompleteAt(8, 25))

	assert.True(t, results.Context().ArrowMembers)
	container, ok := results.ContainerKind()
	require.True(t, ok)
	assert.Equal(t, clang.EntityStructDecl, container.Kind)

	assert.Equal(t, []string{"x", "y"}, labels(results.All()))
	parent, ok := results.All()[0].String.ParentName()
	assert.True(t, ok)
	assert.Equal(t, "Point", parent)
	assert.EqualValues(t, priorityMember, results.All()[0].String.Priority())
}

func TestCompleteTags(t *testing.T) {
	t.Parallel()

	tu := parse(t, completionSource)
	results := completion.Decode(tu.CompleteAt(2, 16))

	ctx := results.Context()
	assert.True(t, ctx.StructTags)
	assert.False(t, ctx.AnyValues)
	require.Len(t, results.All(), 1)
	assert.Equal(t, clang.EntityStructDecl, results.All()[0].Kind)
	assert.Equal(t, "Point", results.All()[0].String.Label())
}

func TestCompleteUnresolvedMemberAccessListsAllFields(t *testing.T) {
	t.Parallel()

	tu := parse(t, "struct A { int a; };\nunion B { int b; };\nvoid f(void) { q.z; }\n")
	results := completion.Decode(tu.CompleteAt(3, 18))

	assert.True(t, results.Context().DotMembers)
	_, ok := results.ContainerKind()
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, labels(results.All()))
}
