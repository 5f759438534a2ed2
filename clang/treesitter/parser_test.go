package treesitter

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/sonar"
)

// Test Plan for the tree-sitter frontend:
// - Anonymous tags are emitted before the typedef naming them and share its key
// - A qualified typedef does not name the anonymous tag it qualifies
// - Macro definitions carry their tokens, name first
// - Every declarator of a function declaration becomes its own entity
// - Every typedef declarator becomes its own typedef, with no collapsing
// - Types are built compositionally from specifiers and declarators
// - Leading and trailing doc comments attach to the right declarations
// - Syntax errors are diagnostics, not failures
// - Files under system directories are flagged as system headers

func parse(t *testing.T, src string) *TranslationUnit {
	t.Helper()
	tu, err := Parse(context.Background(), "test.h", []byte(src))
	require.NoError(t, err)
	return tu
}

func names(decls []sonar.Declaration) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

func find(tu *TranslationUnit, kind clang.EntityKind, name string) *entity {
	for _, e := range tu.entities {
		if e.kind == kind && e.name == name {
			return e
		}
	}
	return nil
}

func TestSonarOverParsedTags(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
struct Named { int x; };
typedef struct { int a; } C;
union U { int i; float f; };
typedef union { int i; } V;
enum Colour { RED, GREEN };
typedef enum { LOW, HIGH } Level;
void multiple(void);
void multiple(void);
`)
	entities := tu.Entities()

	structs := slices.Collect(sonar.FindStructs(entities))
	require.Equal(t, []string{"Named", "C"}, names(structs))
	assert.Nil(t, structs[0].Source)

	anon := structs[1]
	_, named := anon.Entity.Name()
	assert.False(t, named)
	require.NotNil(t, anon.Source)
	sourceName, ok := anon.Source.Name()
	assert.True(t, ok)
	assert.Equal(t, "C", sourceName)

	assert.Equal(t, []string{"U", "V"}, names(slices.Collect(sonar.FindUnions(entities))))
	assert.Equal(t, []string{"Colour", "Level"}, names(slices.Collect(sonar.FindEnums(entities))))
	assert.Equal(t, []string{"multiple", "multiple"}, names(slices.Collect(sonar.FindFunctions(entities))))
}

func TestAnonymousTagPrecedesTypedef(t *testing.T) {
	t.Parallel()

	tu := parse(t, "typedef struct { int a; } C;")
	entities := tu.Entities()

	require.Len(t, entities, 2)
	assert.Equal(t, clang.EntityStructDecl, entities[0].Kind())
	assert.Equal(t, clang.EntityTypedefDecl, entities[1].Kind())
	assert.True(t, clang.EqualTypes(entities[0].Type(), entities[1].TypedefUnderlyingType()))
	assert.Same(t, entities[0], entities[1].TypedefUnderlyingType().Declaration())
}

func TestQualifiedTypedefDoesNotNameTag(t *testing.T) {
	t.Parallel()

	tu := parse(t, "typedef const struct { int a; } CS;\ntypedef struct { int b; } S;")
	entities := tu.Entities()

	require.Len(t, entities, 4)
	assert.False(t, clang.EqualTypes(entities[0].Type(), entities[1].TypedefUnderlyingType()))
	assert.Equal(t, []string{"S"}, names(slices.Collect(sonar.FindStructs(entities))))
}

func TestMacroDefinitions(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
#define A 4
#define B -322
#define C 3.14159
#define F(x) ((x) + 1)
#define S "str"
#define EMPTY
`)

	b := find(tu, clang.EntityMacroDefinition, "B")
	require.NotNil(t, b)
	var spellings []string
	var kinds []clang.TokenKind
	for _, tok := range b.Tokens() {
		spellings = append(spellings, tok.Spelling())
		kinds = append(kinds, tok.Kind())
	}
	assert.Equal(t, []string{"B", "-", "322"}, spellings)
	assert.Equal(t, []clang.TokenKind{clang.TokenIdentifier, clang.TokenPunctuation, clang.TokenLiteral}, kinds)

	defs := slices.Collect(sonar.FindDefinitions(tu.Entities()))
	require.Len(t, defs, 3)
	assert.Equal(t, "A", defs[0].Name)
	assert.Equal(t, sonar.Integer{Magnitude: 4}, defs[0].Value)
	assert.Equal(t, "B", defs[1].Name)
	assert.Equal(t, sonar.Integer{Negative: true, Magnitude: 322}, defs[1].Value)
	assert.Equal(t, "C", defs[2].Name)
	assert.Equal(t, sonar.Real{Value: 3.14159}, defs[2].Value)

	f := find(tu, clang.EntityMacroDefinition, "F")
	require.NotNil(t, f)
	assert.True(t, f.functionLike)
	assert.Equal(t, []string{"x"}, f.params)
}

func TestTypedefCompleteness(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
typedef int Integer;
typedef Integer Chained;
typedef int *IntPtr;
typedef int (*Callback)(int, char *);
typedef void (*Handler)(void);
typedef struct Pair { int a, b; } Pair;
typedef struct Pair *PairPtr;
typedef struct Pair PairArray[4];
typedef struct { int x; } Anon;
typedef Anon AnonArray[2];
typedef Anon *AnonPtr;
typedef union Cell { int i; } Cell;
typedef union Cell CellArray[8];
typedef enum Mode { ON, OFF } Mode;
typedef enum Mode ModeArray[3];
typedef unsigned long Size, *SizePtr;
typedef const char *String;
`)

	typedefs := slices.Collect(sonar.FindTypedefs(tu.Entities()))
	assert.Equal(t, []string{
		"Integer", "Chained", "IntPtr", "Callback", "Handler",
		"Pair", "PairPtr", "PairArray", "Anon", "AnonArray", "AnonPtr",
		"Cell", "CellArray", "Mode", "ModeArray", "Size", "SizePtr", "String",
	}, names(typedefs))

	assert.Equal(t, []string{"Pair", "Anon"}, names(slices.Collect(sonar.FindStructs(tu.Entities()))))

	chained := find(tu, clang.EntityTypedefDecl, "Chained")
	assert.Equal(t, "typedef:Integer", chained.TypedefUnderlyingType().Key())
	assert.Same(t, find(tu, clang.EntityTypedefDecl, "Integer"), chained.TypedefUnderlyingType().Declaration())

	callback := find(tu, clang.EntityTypedefDecl, "Callback")
	assert.Equal(t, "ptr(fn(builtin:int;builtin:int,ptr(builtin:char)))", callback.TypedefUnderlyingType().Key())

	array := find(tu, clang.EntityTypedefDecl, "PairArray")
	assert.Equal(t, clang.TypeArray, array.TypedefUnderlyingType().Kind())
	assert.Equal(t, "array[4](struct:Pair)", array.TypedefUnderlyingType().Key())

	str := find(tu, clang.EntityTypedefDecl, "String")
	assert.Equal(t, "ptr(const(builtin:char))", str.TypedefUnderlyingType().Key())
	assert.Equal(t, "const char *", str.TypedefUnderlyingType().Spelling())
}

func TestFunctionDeclarations(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
char *name(const char *s, ...);
int (*fp)(int);
static int counter = 0, limit;
int sum(int a, int b) { return a + b; }
`)

	name := find(tu, clang.EntityFunctionDecl, "name")
	require.NotNil(t, name)
	assert.False(t, name.IsDefinition())
	assert.Equal(t, "fn(ptr(builtin:char);ptr(const(builtin:char)),...)", name.Type().Key())
	assert.Equal(t, "char * (const char *, ...)", name.Type().Spelling())
	require.Len(t, name.Children(), 1)
	param, _ := name.Children()[0].Name()
	assert.Equal(t, "s", param)
	assert.True(t, name.variadic)

	fp := find(tu, clang.EntityVarDecl, "fp")
	require.NotNil(t, fp)
	assert.Equal(t, clang.TypePointer, fp.Type().Kind())

	assert.NotNil(t, find(tu, clang.EntityVarDecl, "counter"))
	assert.NotNil(t, find(tu, clang.EntityVarDecl, "limit"))

	sum := find(tu, clang.EntityFunctionDecl, "sum")
	require.NotNil(t, sum)
	assert.True(t, sum.IsDefinition())
	assert.Equal(t, []string{"a", "b"}, sum.params)
	assert.Equal(t, clang.Location{File: "test.h", Line: 5, Column: 5}, sum.Location())
}

func TestForwardDeclarationsFoldIntoDefinitions(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
struct Opaque;
struct Later;
struct Later { int x; };
struct Later *make(void);
`)

	structs := slices.Collect(sonar.FindStructs(tu.Entities()))
	assert.Equal(t, []string{"Opaque", "Later"}, names(structs))

	require.NotNil(t, find(tu, clang.EntityFunctionDecl, "make"))
	later := find(tu, clang.EntityStructDecl, "Later")
	assert.True(t, later.IsDefinition())
	assert.Len(t, later.Children(), 1)
}

func TestDocComments(t *testing.T) {
	t.Parallel()

	tu := parse(t, `
/**
 * \brief Adds numbers.
 * \param a first
 * \param b second
 */
int add(int a, int b);

int plain(void);

/// Line documented.
/// Second line.
int lines(void);

/** Detached. */

int detached(void);

struct S {
	int x; ///< the x
	/** the y */
	int y;
};
`)

	add := find(tu, clang.EntityFunctionDecl, "add")
	require.NotNil(t, add.Comment())
	nodes, err := comment.Parse(add.Comment())
	require.NoError(t, err)
	assert.Equal(t, "Adds numbers.", comment.Brief(nodes))
	p, ok := nodes[2].(comment.ParamCommand)
	require.True(t, ok)
	require.NotNil(t, p.Index)
	assert.Equal(t, 1, *p.Index)

	assert.Nil(t, find(tu, clang.EntityFunctionDecl, "plain").Comment())
	assert.Nil(t, find(tu, clang.EntityFunctionDecl, "detached").Comment())

	lines := find(tu, clang.EntityFunctionDecl, "lines")
	require.NotNil(t, lines.Comment())
	nodes, err = comment.Parse(lines.Comment())
	require.NoError(t, err)
	assert.Equal(t, "Line documented. Second line.", comment.Brief(nodes))

	s := find(tu, clang.EntityStructDecl, "S")
	require.Len(t, s.Children(), 2)
	for i, want := range []string{"the x", "the y"} {
		c := s.Children()[i].Comment()
		require.NotNil(t, c, want)
		nodes, err := comment.Parse(c)
		require.NoError(t, err)
		assert.Equal(t, want, comment.Brief(nodes))
	}
}

func TestSyntaxErrorsAreDiagnostics(t *testing.T) {
	t.Parallel()

	tu := parse(t, "int ok(void);\nint broken( {\n")

	require.NotEmpty(t, tu.Diagnostics())
	assert.Equal(t, clang.SeverityError, tu.Diagnostics()[0].Severity)
	assert.NotNil(t, find(tu, clang.EntityFunctionDecl, "ok"))
}

func TestSystemHeaders(t *testing.T) {
	t.Parallel()

	p := NewParser()
	p.SystemDirs = []string{"/usr/include"}
	tu, err := p.Parse(context.Background(), "/usr/include/stdio.h", []byte("int printf(const char *, ...);"))
	require.NoError(t, err)

	require.Len(t, tu.Entities(), 1)
	assert.True(t, tu.Entities()[0].InSystemHeader())
	assert.Empty(t, sonar.UserEntities(tu.Entities()))
}

func TestParseHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, "test.h", []byte("int x;"))
	require.ErrorIs(t, err, context.Canceled)
}
