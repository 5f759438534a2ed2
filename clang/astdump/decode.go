// Package astdump is a frontend over clang's JSON AST dump
// (clang -Xclang -ast-dump=json -fsyntax-only). It exposes the top-level
// declarations of the dump through the clang capability surface, including
// the documentation comments clang attached to them.
//
// The dump carries no preprocessor information: macro definitions and
// tokens are not available from this frontend.
package astdump

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/csonar/clang"
)

var log = commonlog.GetLogger("csonar.astdump")

// Decoder decodes JSON AST dumps.
type Decoder struct {
	// SystemDirs lists directories whose declarations are reported as
	// coming from system headers. Implicit declarations always are.
	SystemDirs []string
}

// NewDecoder returns a Decoder treating /usr/include and /usr/local/include
// as system directories.
func NewDecoder() *Decoder {
	return &Decoder{SystemDirs: []string{"/usr/include", "/usr/local/include"}}
}

// Decode decodes a dump with a default Decoder.
func Decode(r io.Reader) (*TranslationUnit, error) {
	return NewDecoder().Decode(r)
}

// Decode reads one TranslationUnitDecl from r.
func (d *Decoder) Decode(r io.Reader) (*TranslationUnit, error) {
	var root node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(err, "decode clang AST dump")
	}
	if root.Kind != "TranslationUnitDecl" {
		return nil, errors.Newf("decode clang AST dump: root is %q, not TranslationUnitDecl", root.Kind)
	}
	(&decompressor{}).node(&root)

	tu := &TranslationUnit{
		byID:     make(map[string]*entity),
		tags:     make(map[string]*entity),
		typedefs: make(map[string]*entity),
		dirs:     d.SystemDirs,
	}
	tu.root = tu.entity(&root, nil)
	tu.fold()
	log.Debugf("decoded AST dump: %d top-level entities", len(tu.root.children))
	return tu, nil
}

// TranslationUnit is a decoded dump. It is not safe for concurrent use.
type TranslationUnit struct {
	root     *entity
	byID     map[string]*entity
	tags     map[string]*entity
	typedefs map[string]*entity
	dirs     []string
}

// Root returns the translation-unit entity.
func (tu *TranslationUnit) Root() clang.Entity { return tu.root }

// Entities returns the top-level declarations in dump order.
func (tu *TranslationUnit) Entities() []clang.Entity { return tu.root.children }

// fold drops top-level forward declarations of tags defined in the same
// dump.
func (tu *TranslationUnit) fold() {
	kept := tu.root.children[:0]
	for _, c := range tu.root.children {
		e := c.(*entity)
		if e.kind.IsTag() && !e.node.CompleteDefinition && tu.tags[e.tagKey()] != e {
			continue
		}
		kept = append(kept, e)
	}
	tu.root.children = kept
}

func (tu *TranslationUnit) isSystem(file string) bool {
	if file == "" {
		return false
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	for _, dir := range tu.dirs {
		if rel, err := filepath.Rel(dir, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

var tagKinds = map[string]clang.EntityKind{
	"struct": clang.EntityStructDecl,
	"union":  clang.EntityUnionDecl,
	"class":  clang.EntityClassDecl,
	"enum":   clang.EntityEnumDecl,
}

// entity converts a declaration node. Comment and type children become the
// entity's comment and underlying type; other children become entities.
func (tu *TranslationUnit) entity(n *node, parent *entity) *entity {
	e := &entity{node: n, tu: tu, parent: parent}
	switch n.Kind {
	case "RecordDecl", "CXXRecordDecl":
		e.kind = tagKinds[n.TagUsed]
	case "EnumDecl":
		e.kind = clang.EntityEnumDecl
	default:
		kind, ok := clang.ParseEntityKind(n.Kind)
		if !ok {
			kind = clang.EntityUnexposed
		}
		e.kind = kind
	}
	if n.Loc != nil {
		e.location = clang.Location{File: n.Loc.File, Line: int(n.Loc.Line), Column: int(n.Loc.Col)}
	}
	e.system = n.IsImplicit || tu.isSystem(e.location.File)
	if parent != nil && parent.system {
		e.system = true
	}
	if n.ID != "" {
		tu.byID[n.ID] = e
	}

	for _, child := range n.Inner {
		switch {
		case child.Kind == "FullComment":
			e.comment = newComment(child)
		case strings.HasSuffix(child.Kind, "Type"):
			if e.kind == clang.EntityTypedefDecl {
				e.underlyingNode = child
			}
		case strings.HasSuffix(child.Kind, "Decl"):
			e.children = append(e.children, tu.entity(child, e))
		}
	}

	switch {
	case e.kind.IsTag():
		if prev, ok := tu.tags[e.tagKey()]; !ok || (!prev.node.CompleteDefinition && n.CompleteDefinition) {
			tu.tags[e.tagKey()] = e
		}
	case e.kind == clang.EntityTypedefDecl && n.Name != "":
		if _, ok := tu.typedefs[n.Name]; !ok {
			tu.typedefs[n.Name] = e
		}
	}
	return e
}

// entity is one declaration of the dump.
type entity struct {
	node           *node
	tu             *TranslationUnit
	parent         *entity
	kind           clang.EntityKind
	children       []clang.Entity
	location       clang.Location
	system         bool
	comment        clang.Comment
	underlyingNode *node
}

var _ clang.Entity = (*entity)(nil)

func (e *entity) Kind() clang.EntityKind { return e.kind }

func (e *entity) Name() (string, bool) {
	if e.node.Name == "" {
		return "", false
	}
	return e.node.Name, true
}

func (e *entity) Type() clang.Type {
	switch {
	case e.kind.IsTag():
		return &ctype{kind: tagTypeKind(e.kind), spelling: e.tagSpelling(), key: e.tagKey(), tu: e.tu}
	case e.kind == clang.EntityTypedefDecl:
		return &ctype{kind: clang.TypeTypedef, spelling: e.node.Name, key: e.node.Name, tu: e.tu, decl: e}
	case e.node.Type != nil:
		kind := clang.TypeUnexposed
		if e.kind == clang.EntityFunctionDecl {
			kind = clang.TypeFunction
		}
		return &ctype{kind: kind, spelling: e.node.Type.QualType, key: e.node.Type.QualType, tu: e.tu}
	}
	return nil
}

func (e *entity) TypedefUnderlyingType() clang.Type {
	if e.kind != clang.EntityTypedefDecl {
		return nil
	}
	if e.underlyingNode != nil {
		return e.tu.typeOf(e.underlyingNode)
	}
	if q := e.node.Type; q != nil {
		return &ctype{kind: clang.TypeUnexposed, spelling: q.QualType, key: q.QualType, tu: e.tu}
	}
	return nil
}

func (e *entity) Children() []clang.Entity { return e.children }
func (e *entity) Location() clang.Location { return e.location }
func (e *entity) InSystemHeader() bool     { return e.system }
func (e *entity) IsBuiltinMacro() bool     { return false }
func (e *entity) Tokens() []clang.Token    { return nil }
func (e *entity) Comment() clang.Comment   { return e.comment }

// IsDefinition reports whether the entity is a complete tag definition.
func (e *entity) IsDefinition() bool { return e.kind.IsTag() && e.node.CompleteDefinition }

// tagKey identifies a tag type: named tags by keyword and name, which is
// also how clang spells them in C, anonymous ones by declaration id.
func (e *entity) tagKey() string {
	if e.node.Name == "" {
		return "@" + e.node.ID
	}
	return e.keyword() + " " + e.node.Name
}

func (e *entity) tagSpelling() string {
	if e.node.Name == "" {
		return e.keyword() + " (unnamed at " + e.location.String() + ")"
	}
	return e.keyword() + " " + e.node.Name
}

func (e *entity) keyword() string {
	if e.kind == clang.EntityEnumDecl {
		return "enum"
	}
	return e.node.TagUsed
}

func tagTypeKind(k clang.EntityKind) clang.TypeKind {
	if k == clang.EntityEnumDecl {
		return clang.TypeEnum
	}
	return clang.TypeRecord
}

// typeOf converts a type node. Elaborated and record types resolve to the
// key of the tag they name so that typedefs of anonymous tags compare equal
// to the tag's own type.
func (tu *TranslationUnit) typeOf(n *node) *ctype {
	spelling := ""
	if n.Type != nil {
		spelling = n.Type.QualType
	}
	switch n.Kind {
	case "ElaboratedType":
		if n.OwnedTagDecl != nil {
			if tag := tu.byID[n.OwnedTagDecl.ID]; tag != nil {
				return tag.Type().(*ctype)
			}
		}
		if len(n.Inner) > 0 {
			return tu.typeOf(n.Inner[0])
		}
	case "RecordType", "EnumType":
		if n.Decl != nil {
			if tag := tu.byID[n.Decl.ID]; tag != nil {
				return tag.Type().(*ctype)
			}
		}
	case "TypedefType":
		if n.Decl != nil && n.Decl.Name != "" {
			return &ctype{kind: clang.TypeTypedef, spelling: n.Decl.Name, key: n.Decl.Name, tu: tu}
		}
	}
	return &ctype{kind: typeKinds[n.Kind], spelling: spelling, key: spelling, tu: tu}
}

var typeKinds = map[string]clang.TypeKind{
	"BuiltinType":         clang.TypeBuiltin,
	"PointerType":         clang.TypePointer,
	"ConstantArrayType":   clang.TypeArray,
	"IncompleteArrayType": clang.TypeArray,
	"FunctionProtoType":   clang.TypeFunction,
	"FunctionNoProtoType": clang.TypeFunction,
	"RecordType":          clang.TypeRecord,
	"EnumType":            clang.TypeEnum,
	"TypedefType":         clang.TypeTypedef,
	"ElaboratedType":      clang.TypeElaborated,
	"ParenType":           clang.TypeUnexposed,
	"QualType":            clang.TypeUnexposed,
}

// ctype is a type of the dump. Keys are clang's qualified type spellings
// except for tags, which use the tag key.
type ctype struct {
	kind     clang.TypeKind
	spelling string
	key      string
	tu       *TranslationUnit
	decl     *entity
}

var _ clang.Type = (*ctype)(nil)

func (t *ctype) Kind() clang.TypeKind { return t.kind }
func (t *ctype) Spelling() string     { return t.spelling }
func (t *ctype) Key() string          { return t.key }

func (t *ctype) Declaration() clang.Entity {
	if t.decl != nil {
		return t.decl
	}
	var e *entity
	switch t.kind {
	case clang.TypeRecord, clang.TypeEnum:
		e = t.tu.tags[t.key]
	case clang.TypeTypedef:
		e = t.tu.typedefs[t.key]
	}
	if e == nil {
		return nil
	}
	return e
}
