package treesitter

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/doxygen"
)

// builder converts syntax nodes into entities.
type builder struct {
	ctx    context.Context
	tu     *TranslationUnit
	source []byte
}

// docTracker collects documentation comments for the declarations of one
// container. Leading comments attach when they end on the line before the
// declaration; trailing ones (///<, /**<) attach to the declarations that
// ended on the same line.
type docTracker struct {
	lines   []string
	endRow  uint
	last    []*entity
	lastRow uint
}

func (d *docTracker) comment(text string, startRow, endRow uint) {
	if !doxygen.IsDocComment(text) {
		d.lines = nil
		return
	}
	if doxygen.IsTrailing(text) {
		if len(d.last) > 0 && startRow == d.lastRow {
			for _, e := range d.last {
				if e.comment == nil {
					e.comment = parseDoc(text, e)
				}
			}
		}
		return
	}
	if len(d.lines) > 0 && d.endRow+1 < startRow {
		d.lines = nil
	}
	d.lines = append(d.lines, text)
	d.endRow = endRow
}

// declared attaches pending leading comments to entities starting at
// startRow and remembers them for trailing comments.
func (d *docTracker) declared(entities []*entity, startRow, endRow uint) {
	if len(d.lines) > 0 && d.endRow+1 >= startRow {
		text := strings.Join(d.lines, "\n")
		for _, e := range entities {
			e.comment = parseDoc(text, e)
		}
	}
	d.lines = nil
	d.last = entities
	d.lastRow = endRow
}

func (d *docTracker) reset() {
	d.lines = nil
	d.last = nil
}

func parseDoc(text string, e *entity) clang.Comment {
	return doxygen.Parse(text, doxygen.Options{Params: e.params, Variadic: e.variadic})
}

// items walks the children of a translation unit or of a block that holds
// top-level items (preprocessor conditionals, extern "C" blocks).
func (b *builder) items(n *sitter.Node, docs *docTracker) {
	for i := uint(0); i < n.ChildCount(); i++ {
		if b.ctx.Err() != nil {
			return
		}
		child := n.Child(i)
		var entities []*entity
		switch child.Kind() {
		case "comment":
			docs.comment(b.text(child), child.StartPosition().Row, child.EndPosition().Row)
			continue
		case ";":
			continue
		case "preproc_def", "preproc_function_def":
			entities = []*entity{b.macro(child)}
		case "function_definition":
			entities = b.declaration(child, true)
		case "declaration":
			entities = b.declaration(child, false)
		case "type_definition":
			entities = b.typedef(child)
		case "struct_specifier", "union_specifier", "enum_specifier":
			if tag := b.tag(child, true); tag != nil {
				entities = []*entity{tag}
			}
		case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif", "preproc_elifdef",
			"linkage_specification", "declaration_list", "ERROR":
			docs.reset()
			b.items(child, docs)
			continue
		default:
			docs.reset()
			continue
		}
		for _, e := range entities {
			b.tu.add(e)
		}
		docs.declared(entities, child.StartPosition().Row, child.EndPosition().Row)
	}
}

func (b *builder) syntaxErrors(n *sitter.Node) {
	switch {
	case n.IsMissing():
		b.diagnose(n, "expected "+n.Kind())
		return
	case n.IsError():
		b.diagnose(n, "syntax error")
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.HasError() {
			b.syntaxErrors(child)
		}
	}
}

func (b *builder) diagnose(n *sitter.Node, message string) {
	b.tu.diagnostics = append(b.tu.diagnostics, clang.Diagnostic{
		Severity: clang.SeverityError,
		Location: b.location(n),
		Message:  message,
	})
}

func (b *builder) macro(n *sitter.Node) *entity {
	name := n.ChildByFieldName("name")
	e := &entity{
		kind:     clang.EntityMacroDefinition,
		name:     b.text(name),
		location: b.location(name),
		system:   b.tu.system,
		tokens:   tokenize(string(b.source[name.StartByte():n.EndByte()])),
		start:    n.StartByte(),
		end:      n.EndByte(),
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		e.functionLike = true
		for i := uint(0); i < params.ChildCount(); i++ {
			p := params.Child(i)
			switch {
			case p.Kind() == "identifier":
				e.params = append(e.params, b.text(p))
			case b.text(p) == "...":
				e.variadic = true
			}
		}
	}
	return e
}

// declaration handles declarations and function definitions: tags defined
// in the specifier come first, then one entity per declarator.
func (b *builder) declaration(n *sitter.Node, definition bool) []*entity {
	cursor := n.Walk()
	defer cursor.Close()
	declarators := n.ChildrenByFieldName("declarator", cursor)

	var out []*entity
	if tag := b.specifierTag(n, len(declarators) == 0); tag != nil {
		out = append(out, tag)
	}
	base := b.baseType(n)
	for _, d := range declarators {
		r := b.declarator(&d, base)
		if r.name == "" {
			continue
		}
		e := b.declared(r, clang.EntityVarDecl)
		if r.typ.kind == clang.TypeFunction {
			e.kind = clang.EntityFunctionDecl
			e.definition = definition
		}
		e.start, e.end = n.StartByte(), n.EndByte()
		out = append(out, e)
	}
	return out
}

func (b *builder) typedef(n *sitter.Node) []*entity {
	var out []*entity
	if tag := b.specifierTag(n, false); tag != nil {
		out = append(out, tag)
	}
	base := b.baseType(n)
	cursor := n.Walk()
	defer cursor.Close()
	for _, d := range n.ChildrenByFieldName("declarator", cursor) {
		r := b.declarator(&d, base)
		if r.name == "" {
			continue
		}
		e := b.declared(r, clang.EntityTypedefDecl)
		e.underlying = r.typ
		e.typ = typedefRef(b.tu, r.name)
		e.start, e.end = n.StartByte(), n.EndByte()
		out = append(out, e)
	}
	return out
}

func (b *builder) declared(r declarator, kind clang.EntityKind) *entity {
	e := &entity{
		kind:     kind,
		name:     r.name,
		typ:      r.typ,
		location: r.location,
		system:   b.tu.system,
		variadic: r.variadic,
	}
	for _, p := range r.params {
		e.params = append(e.params, p.name)
		e.children = append(e.children, &entity{
			kind:     clang.EntityParmDecl,
			name:     p.name,
			typ:      p.typ,
			location: p.location,
			system:   b.tu.system,
			parent:   e,
		})
	}
	return e
}

// specifierTag returns the tag entity for a struct, union or enum defined
// in the type specifier of n, or nil. A standalone specifier declares a tag
// even without a body.
func (b *builder) specifierTag(n *sitter.Node, standalone bool) *entity {
	spec := n.ChildByFieldName("type")
	if spec == nil {
		return nil
	}
	switch spec.Kind() {
	case "struct_specifier", "union_specifier", "enum_specifier":
		return b.tag(spec, standalone)
	}
	return nil
}

// tag builds the entity for a tag specifier. Specifiers without a body only
// declare an entity when they stand alone.
func (b *builder) tag(spec *sitter.Node, standalone bool) *entity {
	body := spec.ChildByFieldName("body")
	if body == nil && !standalone {
		return nil
	}
	keyword := strings.TrimSuffix(spec.Kind(), "_specifier")
	e := &entity{
		kind:       tagKinds[keyword],
		typ:        b.tagType(spec),
		location:   b.location(spec),
		system:     b.tu.system,
		definition: body != nil,
		start:      spec.StartByte(),
		end:        spec.EndByte(),
	}
	if name := spec.ChildByFieldName("name"); name != nil {
		e.name = b.text(name)
		e.location = b.location(name)
	}
	if body == nil {
		return e
	}
	if keyword == "enum" {
		b.enumerators(e, body)
	} else {
		b.fields(e, body)
	}
	return e
}

var tagKinds = map[string]clang.EntityKind{
	"struct": clang.EntityStructDecl,
	"union":  clang.EntityUnionDecl,
	"enum":   clang.EntityEnumDecl,
}

func (b *builder) fields(record *entity, body *sitter.Node) {
	var docs docTracker
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "comment":
			docs.comment(b.text(child), child.StartPosition().Row, child.EndPosition().Row)
			continue
		case "field_declaration":
		default:
			docs.reset()
			continue
		}
		var entities []*entity
		if nested := b.specifierTag(child, false); nested != nil {
			nested.parent = record
			b.tu.index(nested)
			record.children = append(record.children, nested)
		}
		base := b.baseType(child)
		cursor := child.Walk()
		for _, d := range child.ChildrenByFieldName("declarator", cursor) {
			r := b.declarator(&d, base)
			if r.name == "" {
				continue
			}
			f := b.declared(r, clang.EntityFieldDecl)
			f.parent = record
			entities = append(entities, f)
			record.children = append(record.children, f)
		}
		cursor.Close()
		docs.declared(entities, child.StartPosition().Row, child.EndPosition().Row)
	}
}

func (b *builder) enumerators(enum *entity, body *sitter.Node) {
	var docs docTracker
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "comment":
			docs.comment(b.text(child), child.StartPosition().Row, child.EndPosition().Row)
		case "enumerator":
			name := child.ChildByFieldName("name")
			c := &entity{
				kind:     clang.EntityEnumConstantDecl,
				name:     b.text(name),
				typ:      enum.typ,
				location: b.location(name),
				system:   b.tu.system,
				parent:   enum,
			}
			if value := child.ChildByFieldName("value"); value != nil {
				c.tokens = tokenize(b.text(value))
			}
			enum.children = append(enum.children, c)
			docs.declared([]*entity{c}, child.StartPosition().Row, child.EndPosition().Row)
		}
	}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(b.source[n.StartByte():n.EndByte()])
}

func (b *builder) location(n *sitter.Node) clang.Location {
	p := n.StartPosition()
	return clang.Location{File: b.tu.path, Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
