package astdump

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/sonar"
)

// Test Plan for the AST-dump frontend:
// - Omitted file and line fields are filled from the previous location
// - Implicit declarations are reported as system declarations
// - An anonymous struct resolves to the typedef naming it
// - Full comments decode through the comment parser
// - Pointer typedefs do not name the tag they point to
// - Forward tag declarations fold into the definition in the same dump
// - A dump whose root is not a translation unit is rejected

func decodeSample(t *testing.T) *TranslationUnit {
	t.Helper()
	f, err := os.Open("testdata/sample.json")
	require.NoError(t, err)
	defer f.Close()
	tu, err := Decode(f)
	require.NoError(t, err)
	return tu
}

func TestDecodeLocations(t *testing.T) {
	t.Parallel()

	tu := decodeSample(t)
	entities := tu.Entities()
	require.Len(t, entities, 6)

	assert.Equal(t, clang.Location{File: "sample.h", Line: 3, Column: 5}, entities[1].Location())
	params := entities[1].Children()
	require.Len(t, params, 2)
	assert.Equal(t, clang.EntityParmDecl, params[0].Kind())
	assert.Equal(t, clang.Location{File: "sample.h", Line: 3, Column: 13}, params[0].Location())
	assert.Equal(t, clang.Location{File: "sample.h", Line: 4, Column: 22}, entities[2].Children()[0].Location())
}

func TestDecodeSystemDeclarations(t *testing.T) {
	t.Parallel()

	tu := decodeSample(t)
	assert.True(t, tu.Entities()[0].InSystemHeader())

	user := sonar.UserEntities(tu.Entities())
	require.Len(t, user, 5)
	name, _ := user[0].Name()
	assert.Equal(t, "add", name)
}

func TestDecodeSystemDirs(t *testing.T) {
	t.Parallel()

	d := &Decoder{SystemDirs: []string{"/usr/include"}}
	tu, err := d.Decode(strings.NewReader(`{"id":"0x1","kind":"TranslationUnitDecl","inner":[
		{"id":"0x2","kind":"FunctionDecl","loc":{"file":"/usr/include/stdio.h","line":1,"col":5},"name":"puts","type":{"qualType":"int (const char *)"}},
		{"id":"0x3","kind":"FunctionDecl","loc":{"file":"main.c","line":1,"col":5},"name":"main","type":{"qualType":"int (void)"}}
	]}`))
	require.NoError(t, err)

	require.Len(t, tu.Entities(), 2)
	assert.True(t, tu.Entities()[0].InSystemHeader())
	assert.False(t, tu.Entities()[1].InSystemHeader())
	assert.Equal(t, clang.TypeFunction, tu.Entities()[1].Type().Kind())
	assert.Equal(t, "int (void)", tu.Entities()[1].Type().Spelling())
}

func TestDecodeAnonymousStruct(t *testing.T) {
	t.Parallel()

	tu := decodeSample(t)
	structs := slices.Collect(sonar.FindStructs(tu.Entities()))
	require.Len(t, structs, 2)

	assert.Equal(t, "C", structs[0].Name)
	_, named := structs[0].Entity.Name()
	assert.False(t, named)
	require.NotNil(t, structs[0].Source)
	source, _ := structs[0].Source.Name()
	assert.Equal(t, "C", source)
	assert.Same(t, structs[0].Entity, structs[0].Source.TypedefUnderlyingType().Declaration())

	assert.Equal(t, "Named", structs[1].Name)
	assert.Nil(t, structs[1].Source)
}

func TestDecodeTypedefs(t *testing.T) {
	t.Parallel()

	tu := decodeSample(t)
	typedefs := slices.Collect(sonar.FindTypedefs(tu.Entities()))
	var got []string
	for _, d := range typedefs {
		got = append(got, d.Name)
	}
	assert.Equal(t, []string{"__int128_t", "C", "NamedPtr"}, got)

	ptr := typedefs[2].Entity.TypedefUnderlyingType()
	assert.Equal(t, clang.TypePointer, ptr.Kind())
	assert.Equal(t, "struct Named *", ptr.Key())
	assert.False(t, clang.EqualTypes(ptr, tu.Entities()[4].Type()))
	assert.Equal(t, "struct Named", tu.Entities()[4].Type().Key())
}

func TestDecodeFoldsForwardDeclarations(t *testing.T) {
	t.Parallel()

	tu, err := Decode(strings.NewReader(`{"id":"0x1","kind":"TranslationUnitDecl","inner":[
		{"id":"0x2","kind":"RecordDecl","loc":{"file":"a.h","line":1,"col":8},"name":"A","tagUsed":"struct"},
		{"id":"0x3","kind":"RecordDecl","loc":{"file":"a.h","line":2,"col":8},"name":"A","tagUsed":"struct","completeDefinition":true,
			"inner":[{"id":"0x4","kind":"FieldDecl","loc":{"col":18},"name":"x","type":{"qualType":"int"}}]},
		{"id":"0x5","kind":"RecordDecl","loc":{"file":"a.h","line":3,"col":8},"name":"Opaque","tagUsed":"struct"},
		{"id":"0x6","kind":"RecordDecl","loc":{"file":"a.h","line":4,"col":9},"tagUsed":"struct","completeDefinition":true},
		{"id":"0x7","kind":"TypedefDecl","loc":{"file":"a.h","line":4,"col":20},"name":"C","type":{"qualType":"C"},
			"inner":[{"id":"0x8","kind":"ElaboratedType","type":{"qualType":"struct C"},"ownedTagDecl":{"id":"0x6","kind":"RecordDecl","name":""}}]}
	]}`))
	require.NoError(t, err)

	require.Len(t, tu.Entities(), 4)
	var got []string
	for d := range sonar.FindStructs(tu.Entities()) {
		got = append(got, d.Name)
	}
	assert.Equal(t, []string{"A", "Opaque", "C"}, got)

	a := tu.Entities()[0]
	assert.Equal(t, clang.Location{File: "a.h", Line: 2, Column: 8}, a.Location())
	require.Len(t, a.Children(), 1)
	assert.Same(t, a, a.Type().Declaration())
}

func TestDecodeComments(t *testing.T) {
	t.Parallel()

	tu := decodeSample(t)
	add := tu.Entities()[1]
	require.NotNil(t, add.Comment())
	assert.Equal(t, clang.CommentFull, add.Comment().Kind())

	nodes, err := comment.Parse(add.Comment())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Adds two numbers.", comment.Brief(nodes))

	param, ok := nodes[1].(comment.ParamCommand)
	require.True(t, ok)
	assert.Equal(t, "a", param.Name)
	require.NotNil(t, param.Index)
	assert.Equal(t, 0, *param.Index)
	require.NotNil(t, param.Direction)
	assert.Equal(t, comment.Out, *param.Direction)
	assert.Equal(t, []comment.Node{comment.Text{Text: " first"}}, param.Children)

	assert.Nil(t, tu.Entities()[2].Comment())
}

func TestDecodeUnknownCommentKind(t *testing.T) {
	t.Parallel()

	tu, err := Decode(strings.NewReader(`{"id":"0x1","kind":"TranslationUnitDecl","inner":[
		{"id":"0x2","kind":"VarDecl","name":"v","type":{"qualType":"int"},"inner":[
			{"id":"0x3","kind":"FullComment","inner":[{"id":"0x4","kind":"FancyComment"}]}
		]}
	]}`))
	require.NoError(t, err)

	_, err = comment.Parse(tu.Entities()[0].Comment())
	require.Error(t, err)
	assert.True(t, clang.IsContractViolation(err))
}

func TestDecodeRejectsOtherRoots(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"id":"0x1","kind":"FunctionDecl"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TranslationUnitDecl")

	_, err = Decode(strings.NewReader(`{"id":`))
	require.Error(t, err)
}
