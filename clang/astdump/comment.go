package astdump

import (
	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/doxygen"
)

var commentKinds = map[string]clang.CommentKind{
	"TextComment":              clang.CommentText,
	"InlineCommandComment":     clang.CommentInlineCommand,
	"HTMLStartTagComment":      clang.CommentHTMLStartTag,
	"HTMLEndTagComment":        clang.CommentHTMLEndTag,
	"ParagraphComment":         clang.CommentParagraph,
	"BlockCommandComment":      clang.CommentBlockCommand,
	"ParamCommandComment":      clang.CommentParamCommand,
	"TParamCommandComment":     clang.CommentTParamCommand,
	"VerbatimBlockComment":     clang.CommentVerbatimBlockCommand,
	"VerbatimBlockLineComment": clang.CommentVerbatimBlockLine,
	"VerbatimLineComment":      clang.CommentVerbatimLine,
	"FullComment":              clang.CommentFull,
}

var renderKinds = map[string]clang.RenderKind{
	"normal":     clang.RenderNormal,
	"bold":       clang.RenderBold,
	"monospaced": clang.RenderMonospaced,
	"emphasized": clang.RenderEmphasized,
	"anchor":     clang.RenderAnchor,
}

var directions = map[string]clang.Direction{
	"in":     clang.DirectionIn,
	"out":    clang.DirectionOut,
	"in,out": clang.DirectionInOut,
}

// docNode adapts a comment node of the dump. Unknown comment kinds read as
// CommentNull.
type docNode struct {
	n        *node
	children []clang.Comment
}

var _ clang.Comment = (*docNode)(nil)

func newComment(n *node) *docNode {
	c := &docNode{n: n}
	for _, child := range n.Inner {
		c.children = append(c.children, newComment(child))
	}
	return c
}

func (c *docNode) Kind() clang.CommentKind {
	if k, ok := commentKinds[c.n.Kind]; ok {
		return k
	}
	return clang.CommentNull
}

func (c *docNode) Children() []clang.Comment { return c.children }
func (c *docNode) Text() string              { return c.n.Text }
func (c *docNode) CommandName() string       { return c.n.Name }
func (c *docNode) Args() []string            { return c.n.Args }
func (c *docNode) RenderKind() clang.RenderKind {
	return renderKinds[c.n.RenderKind]
}

func (c *docNode) TagName() string   { return c.n.Name }
func (c *docNode) SelfClosing() bool { return c.n.SelfClosing }

func (c *docNode) Attrs() []clang.Attr {
	if len(c.n.Attrs) == 0 {
		return nil
	}
	attrs := make([]clang.Attr, len(c.n.Attrs))
	for i, a := range c.n.Attrs {
		attrs[i] = clang.Attr{Name: a.Name, Value: a.Value}
	}
	return attrs
}

func (c *docNode) ParamName() string { return c.n.Param }

func (c *docNode) ParamIndex() (int, bool) {
	if c.n.ParamIdx == nil {
		return 0, false
	}
	return *c.n.ParamIdx, true
}

func (c *docNode) Direction() (clang.Direction, bool) {
	if !c.n.Explicit {
		return clang.DirectionIn, false
	}
	d, ok := directions[c.n.Direction]
	return d, ok
}

func (c *docNode) TParamPosition() (int, int, bool) {
	if len(c.n.Positions) == 0 {
		return 0, 0, false
	}
	return len(c.n.Positions), c.n.Positions[len(c.n.Positions)-1], true
}

func (c *docNode) HTML() string { return doxygen.HTML(c) }
func (c *docNode) XML() string  { return doxygen.XML(c) }
