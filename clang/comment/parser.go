package comment

import (
	"github.com/dhamidi/csonar/clang"
)

// Parse decodes the raw comment tree rooted at c. A nil or null comment
// yields an empty result. Kind tags or arities the decoder does not
// understand yield an error matching clang.ErrContractViolation.
func Parse(c clang.Comment) ([]Node, error) {
	if c == nil || c.Kind() == clang.CommentNull {
		return nil, nil
	}
	if c.Kind() != clang.CommentFull {
		return nil, clang.ContractViolationf("comment root has kind %s, want %s", c.Kind(), clang.CommentFull)
	}

	p := &parser{}
	nodes := p.parseBlocks(c.Children())
	if p.err != nil {
		return nil, p.err
	}
	return nodes, nil
}

// ParseDocument parses c and attaches the frontend's HTML and XML renderings.
func ParseDocument(c clang.Comment) (*Document, error) {
	children, err := Parse(c)
	if err != nil {
		return nil, err
	}
	doc := &Document{Children: children}
	if c != nil && c.Kind() == clang.CommentFull {
		doc.HTML = c.HTML()
		doc.XML = c.XML()
	}
	return doc, nil
}

// ParseEntity parses the documentation comment attached to e.
func ParseEntity(e clang.Entity) (*Document, error) {
	if e == nil {
		return &Document{}, nil
	}
	return ParseDocument(e.Comment())
}

// parser records the first contract violation; once set, parsing unwinds
// without building further nodes.
type parser struct {
	err error
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// parseBlocks parses the top-level children of a full comment.
func (p *parser) parseBlocks(raw []clang.Comment) []Node {
	nodes := make([]Node, 0, len(raw))
	for _, c := range raw {
		if p.err != nil {
			return nil
		}
		var node Node
		switch c.Kind() {
		case clang.CommentParagraph:
			node = Paragraph{Children: p.parseInline(c.Children())}
		case clang.CommentBlockCommand:
			node = p.parseBlockCommand(c)
		case clang.CommentParamCommand:
			node = p.parseParamCommand(c)
		case clang.CommentTParamCommand:
			node = p.parseTParamCommand(c)
		case clang.CommentVerbatimBlockCommand:
			node = p.parseVerbatim(c)
		case clang.CommentVerbatimLine:
			p.expectLeaf(c)
			node = VerbatimLine{Text: c.Text()}
		default:
			p.fail(clang.ContractViolationf("unexpected %s node at comment top level", c.Kind()))
			return nil
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// parseInline parses paragraph content.
func (p *parser) parseInline(raw []clang.Comment) []Node {
	nodes := make([]Node, 0, len(raw))
	for _, c := range raw {
		if p.err != nil {
			return nil
		}
		p.expectLeaf(c)
		switch c.Kind() {
		case clang.CommentText:
			nodes = append(nodes, Text{Text: c.Text()})
		case clang.CommentInlineCommand:
			nodes = append(nodes, InlineCommand{
				Name:  c.CommandName(),
				Args:  copyStrings(c.Args()),
				Style: styleOf(c.RenderKind()),
			})
		case clang.CommentHTMLStartTag:
			nodes = append(nodes, HTMLStartTag{
				Name:        c.TagName(),
				Attributes:  attributesOf(c.Attrs()),
				SelfClosing: c.SelfClosing(),
			})
		case clang.CommentHTMLEndTag:
			nodes = append(nodes, HTMLEndTag{Name: c.TagName()})
		default:
			p.fail(clang.ContractViolationf("unexpected %s node inside a paragraph", c.Kind()))
			return nil
		}
	}
	return nodes
}

func (p *parser) parseBlockCommand(c clang.Comment) Node {
	return BlockCommand{
		Name:     c.CommandName(),
		Args:     copyStrings(c.Args()),
		Children: p.parseCommandParagraph(c),
	}
}

func (p *parser) parseParamCommand(c clang.Comment) Node {
	cmd := ParamCommand{Name: c.ParamName()}
	if idx, ok := c.ParamIndex(); ok {
		cmd.Index = &idx
	}
	if dir, ok := c.Direction(); ok {
		d, known := directionOf(dir)
		if !known {
			p.fail(clang.ContractViolationf("unknown parameter direction %d", dir))
			return nil
		}
		cmd.Direction = &d
	}
	cmd.Children = p.parseCommandParagraph(c)
	return cmd
}

func (p *parser) parseTParamCommand(c clang.Comment) Node {
	cmd := TParamCommand{Name: c.ParamName()}
	if depth, index, ok := c.TParamPosition(); ok {
		cmd.Position = &Position{Depth: depth, Index: index}
	}
	cmd.Children = p.parseCommandParagraph(c)
	return cmd
}

// parseCommandParagraph returns the inline content of a command's paragraph.
// A command without a paragraph has no children.
func (p *parser) parseCommandParagraph(c clang.Comment) []Node {
	children := c.Children()
	switch len(children) {
	case 0:
		return nil
	case 1:
		if children[0].Kind() != clang.CommentParagraph {
			p.fail(clang.ContractViolationf("%s %q has a %s child, want a paragraph", c.Kind(), c.CommandName(), children[0].Kind()))
			return nil
		}
		return p.parseInline(children[0].Children())
	default:
		p.fail(clang.ContractViolationf("%s %q has %d children, want at most one paragraph", c.Kind(), c.CommandName(), len(children)))
		return nil
	}
}

func (p *parser) parseVerbatim(c clang.Comment) Node {
	children := c.Children()
	lines := make([]string, 0, len(children))
	for _, line := range children {
		if line.Kind() != clang.CommentVerbatimBlockLine {
			p.fail(clang.ContractViolationf("verbatim block %q has a %s child", c.CommandName(), line.Kind()))
			return nil
		}
		p.expectLeaf(line)
		lines = append(lines, line.Text())
	}
	return VerbatimCommand{Lines: lines}
}

func (p *parser) expectLeaf(c clang.Comment) {
	if n := len(c.Children()); n != 0 {
		p.fail(clang.ContractViolationf("%s node has %d children, want none", c.Kind(), n))
	}
}

func styleOf(kind clang.RenderKind) *Style {
	var s Style
	switch kind {
	case clang.RenderBold:
		s = Bold
	case clang.RenderMonospaced:
		s = Monospace
	case clang.RenderEmphasized:
		s = Emphasized
	default:
		return nil
	}
	return &s
}

func directionOf(d clang.Direction) (Direction, bool) {
	switch d {
	case clang.DirectionIn:
		return In, true
	case clang.DirectionOut:
		return Out, true
	case clang.DirectionInOut:
		return InOut, true
	}
	return 0, false
}

func attributesOf(attrs []clang.Attr) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = Attribute{Name: a.Name, Value: a.Value}
	}
	return out
}

func copyStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
