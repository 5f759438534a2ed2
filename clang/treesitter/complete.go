package treesitter

import (
	"strings"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
)

// Priorities follow clang's code-completion priorities; lower is better.
const (
	priorityMember   = 35
	priorityDecl     = 50
	priorityConstant = 65
	priorityMacro    = 70
)

// Completion is the result of CompleteAt. It implements
// clang.CompletionResults.
type Completion struct {
	prefix       string
	proposals    []proposal
	container    clang.EntityKind
	hasContainer bool
	mask         uint64
	diagnostics  []clang.Diagnostic
}

var _ clang.CompletionResults = (*Completion)(nil)

type proposal struct {
	kind clang.EntityKind
	str  *completionString
}

func (c *Completion) Len() int { return len(c.proposals) }

func (c *Completion) Result(i int) (clang.EntityKind, clang.CompletionString) {
	p := c.proposals[i]
	return p.kind, p.str
}

func (c *Completion) Diagnostics() []clang.Diagnostic { return c.diagnostics }
func (c *Completion) ContextMask() uint64             { return c.mask }

func (c *Completion) ContainerKind() (clang.EntityKind, bool, bool) {
	return c.container, false, c.hasContainer
}

// Prefix returns the partial identifier before the completion point.
// Proposals are not filtered by it.
func (c *Completion) Prefix() string { return c.prefix }

// CompleteAt proposes the declarations visible at line:column (1-based,
// byte column). After '.' or '->' it proposes the fields of the record the
// base identifier resolves to, or of every record when it does not resolve.
// After struct, union or enum it proposes tags of that kind.
func (tu *TranslationUnit) CompleteAt(line, column int) *Completion {
	off := tu.offset(line, column)
	start := off
	for start > 0 && isIdentChar(tu.source[start-1]) {
		start--
	}
	c := &Completion{prefix: string(tu.source[start:off]), diagnostics: tu.diagnostics}

	before := strings.TrimRight(string(tu.source[:start]), " \t\r\n")
	switch {
	case strings.HasSuffix(before, "."):
		c.mask = clang.ContextDotMemberAccess
		tu.completeMembers(c, strings.TrimSuffix(before, "."), false, off)
	case strings.HasSuffix(before, "->"):
		c.mask = clang.ContextArrowMemberAccess
		tu.completeMembers(c, strings.TrimSuffix(before, "->"), true, off)
	case hasWordSuffix(before, "struct"):
		c.mask = clang.ContextStructTag
		tu.completeTags(c, clang.EntityStructDecl)
	case hasWordSuffix(before, "union"):
		c.mask = clang.ContextUnionTag
		tu.completeTags(c, clang.EntityUnionDecl)
	case hasWordSuffix(before, "enum"):
		c.mask = clang.ContextEnumTag
		tu.completeTags(c, clang.EntityEnumDecl)
	default:
		c.mask = clang.ContextAnyType | clang.ContextAnyValue | clang.ContextEnumTag |
			clang.ContextUnionTag | clang.ContextStructTag | clang.ContextMacroName
		tu.completeOrdinary(c, off)
	}
	log.Debugf("completion at %s:%d:%d: prefix %q, %d proposals", tu.path, line, column, c.prefix, len(c.proposals))
	return c
}

func hasWordSuffix(s, word string) bool {
	if !strings.HasSuffix(s, word) {
		return false
	}
	rest := s[:len(s)-len(word)]
	return rest == "" || !isIdentChar(rest[len(rest)-1])
}

func (tu *TranslationUnit) completeOrdinary(c *Completion, off int) {
	seen := make(map[string]bool)
	add := func(e *entity) {
		if e.name == "" {
			return
		}
		key := e.kind.String() + ":" + e.name
		if seen[key] {
			return
		}
		seen[key] = true
		c.proposals = append(c.proposals, proposalFor(e))
	}
	if fn := tu.enclosingFunction(off); fn != nil {
		for _, p := range fn.children {
			add(p.(*entity))
		}
	}
	for _, e := range tu.entities {
		switch e.kind {
		case clang.EntityMacroDefinition, clang.EntityFunctionDecl, clang.EntityVarDecl, clang.EntityTypedefDecl:
			add(e)
		case clang.EntityEnumDecl:
			for _, child := range e.children {
				add(child.(*entity))
			}
		}
	}
}

func (tu *TranslationUnit) completeTags(c *Completion, kind clang.EntityKind) {
	for _, e := range tu.entities {
		if e.kind == kind && e.name != "" {
			c.proposals = append(c.proposals, proposalFor(e))
		}
	}
}

func (tu *TranslationUnit) completeMembers(c *Completion, before string, arrow bool, off int) {
	end := len(before)
	start := end
	for start > 0 && isIdentChar(before[start-1]) {
		start--
	}
	if record := tu.resolveRecord(before[start:end], arrow, off); record != nil {
		c.container, c.hasContainer = record.kind, true
		tu.addFields(c, record)
		return
	}
	for _, e := range tu.entities {
		if e.kind == clang.EntityStructDecl || e.kind == clang.EntityUnionDecl {
			tu.addFields(c, e)
		}
	}
}

func (tu *TranslationUnit) addFields(c *Completion, record *entity) {
	for _, child := range record.children {
		if f := child.(*entity); f.kind == clang.EntityFieldDecl {
			c.proposals = append(c.proposals, proposalFor(f))
		}
	}
}

// resolveRecord finds the record type of the variable or parameter named
// name, looking through typedefs and, for arrow access, one pointer.
func (tu *TranslationUnit) resolveRecord(name string, arrow bool, off int) *entity {
	if name == "" {
		return nil
	}
	var t *ctype
	if fn := tu.enclosingFunction(off); fn != nil {
		for _, p := range fn.children {
			if p := p.(*entity); p.name == name {
				t = p.typ
			}
		}
	}
	if t == nil {
		for _, e := range tu.entities {
			if e.kind == clang.EntityVarDecl && e.name == name {
				t = e.typ
				break
			}
		}
	}
	t = tu.desugar(t)
	if arrow {
		if t == nil || t.kind != clang.TypePointer {
			return nil
		}
		t = tu.desugar(t.elem)
	}
	if t == nil || t.kind != clang.TypeRecord {
		return nil
	}
	if record := tu.tags[t.key]; record != nil && record.definition {
		return record
	}
	return nil
}

// desugar follows typedef names to the type they alias.
func (tu *TranslationUnit) desugar(t *ctype) *ctype {
	for range len(tu.typedefs) + 1 {
		if t == nil || t.kind != clang.TypeTypedef {
			return t
		}
		td := tu.typedefs[strings.TrimPrefix(t.key, "typedef:")]
		if td == nil {
			return t
		}
		t = td.underlying
	}
	return t
}

func (tu *TranslationUnit) enclosingFunction(off int) *entity {
	for _, e := range tu.entities {
		if e.kind == clang.EntityFunctionDecl && e.definition && uint(off) > e.start && uint(off) < e.end {
			return e
		}
	}
	return nil
}

func proposalFor(e *entity) proposal {
	s := &completionString{priority: priorityDecl}
	switch e.kind {
	case clang.EntityFunctionDecl:
		s.add(clang.ChunkResultType, e.typ.elem.spelling)
		s.add(clang.ChunkTypedText, e.name)
		s.add(clang.ChunkLeftParen, "(")
		for i, p := range e.children {
			if i > 0 {
				s.add(clang.ChunkComma, ", ")
			}
			s.add(clang.ChunkPlaceholder, placeholder(p.(*entity)))
		}
		if e.variadic {
			if len(e.children) > 0 {
				s.add(clang.ChunkComma, ", ")
			}
			s.add(clang.ChunkPlaceholder, "...")
		}
		s.add(clang.ChunkRightParen, ")")
	case clang.EntityMacroDefinition:
		s.priority = priorityMacro
		s.add(clang.ChunkTypedText, e.name)
		if e.functionLike {
			s.add(clang.ChunkLeftParen, "(")
			for i, p := range e.params {
				if i > 0 {
					s.add(clang.ChunkComma, ", ")
				}
				s.add(clang.ChunkPlaceholder, p)
			}
			if e.variadic {
				if len(e.params) > 0 {
					s.add(clang.ChunkComma, ", ")
				}
				s.add(clang.ChunkPlaceholder, "...")
			}
			s.add(clang.ChunkRightParen, ")")
		}
	case clang.EntityEnumConstantDecl:
		s.priority = priorityConstant
		s.add(clang.ChunkResultType, e.typ.spelling)
		s.add(clang.ChunkTypedText, e.name)
	case clang.EntityFieldDecl:
		s.priority = priorityMember
		s.add(clang.ChunkResultType, e.typ.spelling)
		s.add(clang.ChunkTypedText, e.name)
		parent := e.parent.name
		s.parent = &parent
	case clang.EntityVarDecl, clang.EntityParmDecl:
		s.add(clang.ChunkResultType, e.typ.spelling)
		s.add(clang.ChunkTypedText, e.name)
	default:
		s.add(clang.ChunkTypedText, e.name)
	}
	if e.comment != nil {
		if nodes, err := comment.Parse(e.comment); err == nil {
			if brief := comment.Brief(nodes); brief != "" {
				s.brief = &brief
			}
		}
	}
	return proposal{kind: e.kind, str: s}
}

func placeholder(p *entity) string {
	if p.name == "" {
		return p.typ.spelling
	}
	return p.typ.spelling + " " + p.name
}

type chunk struct {
	kind clang.ChunkKind
	text string
}

// completionString implements clang.CompletionString.
type completionString struct {
	chunks   []chunk
	priority uint
	parent   *string
	brief    *string
}

var _ clang.CompletionString = (*completionString)(nil)

func (s *completionString) add(kind clang.ChunkKind, text string) {
	s.chunks = append(s.chunks, chunk{kind: kind, text: text})
}

func (s *completionString) NumChunks() int                         { return len(s.chunks) }
func (s *completionString) ChunkKind(i int) clang.ChunkKind        { return s.chunks[i].kind }
func (s *completionString) ChunkText(i int) string                 { return s.chunks[i].text }
func (s *completionString) ChunkString(int) clang.CompletionString { return nil }
func (s *completionString) Priority() uint                         { return s.priority }
func (s *completionString) Availability() clang.Availability       { return clang.Available }
func (s *completionString) Annotations() []string                  { return nil }

func (s *completionString) ParentName() (string, bool)   { return deref(s.parent) }
func (s *completionString) BriefComment() (string, bool) { return deref(s.brief) }

func (s *completionString) TypedText() (string, bool) {
	for _, c := range s.chunks {
		if c.kind == clang.ChunkTypedText {
			return c.text, true
		}
	}
	return "", false
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
