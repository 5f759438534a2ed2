package clangtest

import (
	"github.com/dhamidi/csonar/clang"
)

// Comment is a fake raw comment node. Fields left unset read as absent.
type Comment struct {
	NodeKind   clang.CommentKind
	Nodes      []*Comment
	Content    string
	Command    string
	Arguments  []string
	Render     clang.RenderKind
	Tag        string
	Attributes []clang.Attr
	Closing    bool
	Param      string
	Index      *int
	Dir        *clang.Direction
	Depth      int
	Position   int
	HasPos     bool
	Html       string
	Xml        string
}

var _ clang.Comment = (*Comment)(nil)

func (c *Comment) Kind() clang.CommentKind { return c.NodeKind }

func (c *Comment) Children() []clang.Comment {
	out := make([]clang.Comment, len(c.Nodes))
	for i, n := range c.Nodes {
		out[i] = n
	}
	return out
}

func (c *Comment) Text() string                 { return c.Content }
func (c *Comment) CommandName() string          { return c.Command }
func (c *Comment) Args() []string               { return c.Arguments }
func (c *Comment) RenderKind() clang.RenderKind { return c.Render }
func (c *Comment) TagName() string              { return c.Tag }
func (c *Comment) Attrs() []clang.Attr          { return c.Attributes }
func (c *Comment) SelfClosing() bool            { return c.Closing }
func (c *Comment) ParamName() string            { return c.Param }
func (c *Comment) HTML() string                 { return c.Html }
func (c *Comment) XML() string                  { return c.Xml }

func (c *Comment) ParamIndex() (int, bool) {
	if c.Index == nil {
		return 0, false
	}
	return *c.Index, true
}

func (c *Comment) Direction() (clang.Direction, bool) {
	if c.Dir == nil {
		return 0, false
	}
	return *c.Dir, true
}

func (c *Comment) TParamPosition() (int, int, bool) {
	return c.Depth, c.Position, c.HasPos
}

// Full returns a full comment with the given top-level children.
func Full(children ...*Comment) *Comment {
	return &Comment{NodeKind: clang.CommentFull, Nodes: children}
}

// Para returns a paragraph.
func Para(children ...*Comment) *Comment {
	return &Comment{NodeKind: clang.CommentParagraph, Nodes: children}
}

// Text returns a text node.
func Text(s string) *Comment {
	return &Comment{NodeKind: clang.CommentText, Content: s}
}

// Block returns a block command whose only child is para.
func Block(name string, args []string, para *Comment) *Comment {
	c := &Comment{NodeKind: clang.CommentBlockCommand, Command: name, Arguments: args}
	if para != nil {
		c.Nodes = []*Comment{para}
	}
	return c
}

// Inline returns an inline command.
func Inline(name string, render clang.RenderKind, args ...string) *Comment {
	return &Comment{NodeKind: clang.CommentInlineCommand, Command: name, Render: render, Arguments: args}
}

// Param returns a \param command.
func Param(name string, index *int, dir *clang.Direction, para *Comment) *Comment {
	c := &Comment{NodeKind: clang.CommentParamCommand, Command: "param", Param: name, Index: index, Dir: dir}
	if para != nil {
		c.Nodes = []*Comment{para}
	}
	return c
}

// TParam returns a \tparam command resolved at depth/index.
func TParam(name string, depth, index int, para *Comment) *Comment {
	c := &Comment{NodeKind: clang.CommentTParamCommand, Command: "tparam", Param: name, Depth: depth, Position: index, HasPos: true}
	if para != nil {
		c.Nodes = []*Comment{para}
	}
	return c
}

// Verbatim returns a verbatim block with one line node per line.
func Verbatim(name string, lines ...string) *Comment {
	c := &Comment{NodeKind: clang.CommentVerbatimBlockCommand, Command: name}
	for _, l := range lines {
		c.Nodes = append(c.Nodes, &Comment{NodeKind: clang.CommentVerbatimBlockLine, Content: l})
	}
	return c
}

// VerbatimLine returns a verbatim line command.
func VerbatimLine(name, text string) *Comment {
	return &Comment{NodeKind: clang.CommentVerbatimLine, Command: name, Content: text}
}

// StartTag returns an HTML start tag.
func StartTag(name string, selfClosing bool, attrs ...clang.Attr) *Comment {
	return &Comment{NodeKind: clang.CommentHTMLStartTag, Tag: name, Closing: selfClosing, Attributes: attrs}
}

// EndTag returns an HTML end tag.
func EndTag(name string) *Comment {
	return &Comment{NodeKind: clang.CommentHTMLEndTag, Tag: name}
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// DirPtr returns a pointer to d.
func DirPtr(d clang.Direction) *clang.Direction { return &d }
