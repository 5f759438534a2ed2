// Package treesitter is a C frontend built on tree-sitter-c. It exposes a
// parsed file through the clang capability surface: top-level entities with
// compositional type keys, macro tokens, attached documentation comments and
// a declaration-based completion source.
//
// The frontend does not preprocess. Included files are not followed and
// macros are not expanded, so entities come from the parsed file only.
package treesitter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/dhamidi/csonar/clang"
)

var log = commonlog.GetLogger("csonar.treesitter")

// DefaultSystemDirs are the directories NewParser treats as system headers.
var DefaultSystemDirs = []string{"/usr/include", "/usr/local/include"}

// Parser parses C sources. A Parser may be shared; every Parse call uses its
// own tree-sitter parser.
type Parser struct {
	language *sitter.Language

	// SystemDirs lists directories whose files are reported as system
	// headers.
	SystemDirs []string
}

// NewParser returns a Parser for C.
func NewParser() *Parser {
	return &Parser{
		language:   sitter.NewLanguage(tsc.Language()),
		SystemDirs: DefaultSystemDirs,
	}
}

// Parse parses source with a default Parser.
func Parse(ctx context.Context, path string, source []byte) (*TranslationUnit, error) {
	return NewParser().Parse(ctx, path, source)
}

// ParseFile reads path and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (*TranslationUnit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return p.Parse(ctx, path, source)
}

// Parse parses source, reporting entities as declared in path. Syntax errors
// do not fail the parse; they are reported as diagnostics.
func (p *Parser) Parse(ctx context.Context, path string, source []byte) (*TranslationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.language); err != nil {
		return nil, errors.Wrap(err, "load C grammar")
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.Newf("parse %s: no syntax tree", path)
	}
	defer tree.Close()

	tu := newTranslationUnit(path, source, p.isSystem(path))
	b := &builder{ctx: ctx, tu: tu, source: source}
	root := tree.RootNode()
	var docs docTracker
	b.items(root, &docs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root.HasError() {
		b.syntaxErrors(root)
	}
	tu.finish()

	log.Debugf("parsed %s: %d entities, %d diagnostics", path, len(tu.entities), len(tu.diagnostics))
	return tu, nil
}

func (p *Parser) isSystem(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, dir := range p.SystemDirs {
		if rel, err := filepath.Rel(dir, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// TranslationUnit is one parsed file. It is not safe for concurrent use.
type TranslationUnit struct {
	path   string
	source []byte
	system bool

	root        *entity
	entities    []*entity
	tags        map[string]*entity
	typedefs    map[string]*entity
	diagnostics []clang.Diagnostic
	lineStarts  []int
}

func newTranslationUnit(path string, source []byte, system bool) *TranslationUnit {
	tu := &TranslationUnit{
		path:     path,
		source:   source,
		system:   system,
		tags:     make(map[string]*entity),
		typedefs: make(map[string]*entity),
	}
	tu.lineStarts = append(tu.lineStarts, 0)
	for i, b := range source {
		if b == '\n' {
			tu.lineStarts = append(tu.lineStarts, i+1)
		}
	}
	return tu
}

// Path returns the path the unit was parsed as.
func (tu *TranslationUnit) Path() string { return tu.path }

// Source returns the parsed bytes.
func (tu *TranslationUnit) Source() []byte { return tu.source }

// Root returns the translation-unit entity whose children are the
// top-level entities.
func (tu *TranslationUnit) Root() clang.Entity { return tu.root }

// Entities returns the top-level entities in source order.
func (tu *TranslationUnit) Entities() []clang.Entity { return tu.root.children }

// Diagnostics returns the syntax errors found while parsing.
func (tu *TranslationUnit) Diagnostics() []clang.Diagnostic { return tu.diagnostics }

func (tu *TranslationUnit) add(e *entity) {
	tu.entities = append(tu.entities, e)
	tu.index(e)
}

// index records tags and typedefs for type resolution. Definitions replace
// earlier forward declarations; otherwise the first entity wins.
func (tu *TranslationUnit) index(e *entity) {
	switch {
	case e.kind.IsTag():
		if prev, ok := tu.tags[e.typ.key]; !ok || (!prev.definition && e.definition) {
			tu.tags[e.typ.key] = e
		}
	case e.kind == clang.EntityTypedefDecl:
		if _, ok := tu.typedefs[e.name]; !ok {
			tu.typedefs[e.name] = e
		}
	}
}

// finish drops forward declarations of tags defined in the same unit and
// builds the root entity.
func (tu *TranslationUnit) finish() {
	children := make([]clang.Entity, 0, len(tu.entities))
	kept := tu.entities[:0]
	for _, e := range tu.entities {
		if e.kind.IsTag() && !e.definition && tu.tags[e.typ.key] != e {
			continue
		}
		kept = append(kept, e)
		children = append(children, e)
	}
	tu.entities = kept
	tu.root = &entity{
		kind:     clang.EntityTranslationUnit,
		name:     tu.path,
		children: children,
		location: clang.Location{File: tu.path, Line: 1, Column: 1},
		system:   tu.system,
	}
}

// offset converts a 1-based line and byte column to a byte offset, clamped
// to the source.
func (tu *TranslationUnit) offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(tu.lineStarts) {
		return len(tu.source)
	}
	off := tu.lineStarts[line-1] + column - 1
	end := len(tu.source)
	if line < len(tu.lineStarts) {
		end = tu.lineStarts[line] - 1
	}
	return max(tu.lineStarts[line-1], min(off, end))
}
