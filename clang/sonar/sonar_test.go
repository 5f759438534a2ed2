package sonar

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang"
	ct "github.com/dhamidi/csonar/clang/clangtest"
)

func TestNamedTagsHaveNoSource(t *testing.T) {
	t.Parallel()

	entities := ct.Entities(ct.Enum("A"), ct.Struct("A"), ct.Union("A"))

	for name, find := range map[string]func([]clang.Entity) []Declaration{
		"enum":   collect(FindEnums),
		"struct": collect(FindStructs),
		"union":  collect(FindUnions),
	} {
		decls := find(entities)
		require.Len(t, decls, 1, name)
		assert.Equal(t, "A", decls[0].Name, name)
		assert.Nil(t, decls[0].Source, name)
	}
}

func TestAnonymousTagResolvedThroughTypedef(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		tag  *ct.Entity
		find func([]clang.Entity) []Declaration
	}{
		"enum":   {ct.Enum(""), collect(FindEnums)},
		"struct": {ct.Struct(""), collect(FindStructs)},
		"union":  {ct.Union(""), collect(FindUnions)},
	} {
		typedef := ct.Typedef("C", tc.tag.Type())
		decls := tc.find(ct.Entities(tc.tag, typedef))

		require.Len(t, decls, 1, name)
		decl := decls[0]
		assert.Equal(t, "C", decl.Name, name)
		assert.Same(t, tc.tag, decl.Entity, name)

		_, named := decl.Entity.Name()
		assert.False(t, named, name)

		require.NotNil(t, decl.Source, name)
		sourceName, ok := decl.Source.Name()
		assert.True(t, ok, name)
		assert.Equal(t, "C", sourceName, name)
	}
}

func TestAnonymousTagWithoutTypedefIsExcluded(t *testing.T) {
	t.Parallel()

	other := ct.Struct("Other")
	entities := ct.Entities(
		ct.Struct(""),
		other,
		ct.Typedef("Alias", other.Type()),
		ct.Typedef("Int", ct.Builtin("int")),
	)

	decls := slices.Collect(FindStructs(entities))
	require.Len(t, decls, 1)
	assert.Equal(t, "Other", decls[0].Name)
}

func TestFirstNamingTypedefWins(t *testing.T) {
	t.Parallel()

	tag := ct.Struct("")
	entities := ct.Entities(
		tag,
		ct.Typedef("First", tag.Type()),
		ct.Typedef("Second", tag.Type()),
	)

	decls := slices.Collect(FindStructs(entities))
	require.Len(t, decls, 1)
	assert.Equal(t, "First", decls[0].Name)
}

func TestNamingTypedefMayPrecedeTag(t *testing.T) {
	t.Parallel()

	tag := ct.Struct("")
	entities := ct.Entities(ct.Typedef("Early", tag.Type()), tag)

	decls := slices.Collect(FindStructs(entities))
	require.Len(t, decls, 1)
	assert.Equal(t, "Early", decls[0].Name)
}

func TestPointerTypedefDoesNotNameTag(t *testing.T) {
	t.Parallel()

	tag := ct.Struct("")
	entities := ct.Entities(tag, ct.Typedef("Ptr", ct.PointerTo(tag.Type())))

	assert.Empty(t, slices.Collect(FindStructs(entities)))
}

func TestFindDefinitions(t *testing.T) {
	t.Parallel()

	entities := ct.Entities(
		ct.Macro("A", ct.Lit("4")),
		ct.Macro("B", ct.Punct("-"), ct.Lit("322")),
		ct.Macro("C", ct.Lit("3.14159")),
		ct.Macro("EMPTY"),
		ct.Macro("STR", ct.Lit(`"text"`)),
		ct.Macro("PAREN", ct.Punct("("), ct.Lit("1"), ct.Punct(")")),
		ct.Macro("SUM", ct.Lit("1"), ct.Punct("+"), ct.Lit("2")),
		ct.Macro("NEGNAME", ct.Punct("-"), ct.Ident("A")),
		ct.Macro("ALIAS", ct.Ident("A")),
		ct.BuiltinMacro("__STDC__", ct.Lit("1")),
		ct.Struct("NotAMacro"),
	)

	defs := slices.Collect(FindDefinitions(entities))
	require.Len(t, defs, 3)

	assert.Equal(t, "A", defs[0].Name)
	assert.Equal(t, Integer{Negative: false, Magnitude: 4}, defs[0].Value)
	assert.Equal(t, "B", defs[1].Name)
	assert.Equal(t, Integer{Negative: true, Magnitude: 322}, defs[1].Value)
	assert.Equal(t, "C", defs[2].Name)
	assert.Equal(t, Real{Value: 3.14159}, defs[2].Value)
}

func TestMacroLiteralGrammar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lit  string
		want Value
	}{
		{"0", Integer{Magnitude: 0}},
		{"0x1F", Integer{Magnitude: 31}},
		{"0XffU", Integer{Magnitude: 255}},
		{"0b101", Integer{Magnitude: 5}},
		{"017", Integer{Magnitude: 15}},
		{"10UL", Integer{Magnitude: 10}},
		{"42ll", Integer{Magnitude: 42}},
		{"1'000'000", Integer{Magnitude: 1000000}},
		{"18446744073709551615ULL", Integer{Magnitude: 18446744073709551615}},
		{"1e3", Real{Value: 1000}},
		{"2.5f", Real{Value: 2.5}},
		{".5", Real{Value: 0.5}},
		{"1.", Real{Value: 1}},
		{"6.02e+23L", Real{Value: 6.02e23}},
		{"0x1p4", Real{Value: 16}},
		{"0x1.8p1f", Real{Value: 3}},
		{"08", nil},
		{"1_000", nil},
		{"0o17", nil},
		{"inf", nil},
		{"'a'", nil},
		{"'1'", nil},
		{"18446744073709551616", nil},
	}

	for _, tt := range tests {
		got, ok := parseValue([]clang.Token{ct.Lit(tt.lit)})
		if tt.want == nil {
			assert.False(t, ok, "%s parsed as %v", tt.lit, got)
			continue
		}
		if assert.True(t, ok, tt.lit) {
			assert.Equal(t, tt.want, got, tt.lit)
		}
	}
}

func TestNegativeReal(t *testing.T) {
	t.Parallel()

	got, ok := parseValue([]clang.Token{ct.Punct("-"), ct.Lit("0.25")})
	require.True(t, ok)
	assert.Equal(t, Real{Value: -0.25}, got)
	assert.Equal(t, "-0.25", got.String())
}

func TestOnlyMinusSignQualifies(t *testing.T) {
	t.Parallel()

	got, ok := parseValue([]clang.Token{ct.Punct("-"), ct.Lit("4")})
	require.True(t, ok)
	assert.Equal(t, Integer{Negative: true, Magnitude: 4}, got)

	_, ok = parseValue([]clang.Token{ct.Punct("+"), ct.Lit("4")})
	assert.False(t, ok)
	_, ok = parseValue([]clang.Token{ct.Punct("-"), ct.Punct("-"), ct.Lit("4")})
	assert.False(t, ok)
}

func TestFunctionsAreNotDeduplicated(t *testing.T) {
	t.Parallel()

	entities := ct.Entities(ct.Function("multiple"), ct.Function("multiple"), ct.Function("single"))

	decls := slices.Collect(FindFunctions(entities))
	require.Len(t, decls, 3)
	assert.Equal(t, "multiple", decls[0].Name)
	assert.Equal(t, "multiple", decls[1].Name)
	assert.NotSame(t, decls[0].Entity, decls[1].Entity)
	assert.Equal(t, "single", decls[2].Name)
}

func TestTypedefsAreAllReported(t *testing.T) {
	t.Parallel()

	intType := ct.Builtin("int")
	tag := ct.Struct("")
	named := ct.Struct("S")
	first := ct.Typedef("Int", intType)

	entities := ct.Entities(
		first,
		ct.Typedef("IntPtr", ct.PointerTo(intType)),
		ct.Typedef("Chain", first.Type()),
		tag,
		ct.Typedef("Anon", tag.Type()),
		named,
		ct.Typedef("Named", named.Type()),
		ct.Function("f"),
	)

	var names []string
	for decl := range FindTypedefs(entities) {
		names = append(names, decl.Name)
		assert.Nil(t, decl.Source)
	}
	assert.Equal(t, []string{"Int", "IntPtr", "Chain", "Anon", "Named"}, names)
}

func TestFindStopsWhenConsumerStops(t *testing.T) {
	t.Parallel()

	entities := ct.Entities(ct.Function("a"), ct.Function("b"), ct.Function("c"))

	var seen []string
	for decl := range FindFunctions(entities) {
		seen = append(seen, decl.Name)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestScanAndUserEntities(t *testing.T) {
	t.Parallel()

	tag := ct.Struct("")
	entities := ct.Entities(
		ct.Macro("N", ct.Lit("1")),
		ct.Enum("E"),
		tag,
		ct.Typedef("T", tag.Type()),
		ct.Union("U"),
		ct.Function("f"),
		ct.Function("sys").InSystem(),
	)

	report := Scan(entities)
	assert.Len(t, report.Definitions, 1)
	assert.Len(t, report.Enums, 1)
	assert.Len(t, report.Structs, 1)
	assert.Len(t, report.Unions, 1)
	assert.Len(t, report.Functions, 2)
	assert.Len(t, report.Typedefs, 1)
	assert.Equal(t, 7, report.Len())

	user := Scan(UserEntities(entities))
	require.Len(t, user.Functions, 1)
	assert.Equal(t, "f", user.Functions[0].Name)
}

func collect(find func([]clang.Entity) iter.Seq[Declaration]) func([]clang.Entity) []Declaration {
	return func(entities []clang.Entity) []Declaration {
		return slices.Collect(find(entities))
	}
}
