// Package doxygen parses Doxygen-style documentation comments into the raw
// comment-node tree of the clang capability surface, and renders any such
// tree as HTML or XML.
package doxygen

import (
	"github.com/dhamidi/csonar/clang"
)

// Node is one raw comment node produced by Parse.
type Node struct {
	kind     clang.CommentKind
	children []*Node

	text   string
	name   string
	args   []string
	render clang.RenderKind

	attrs       []clang.Attr
	selfClosing bool

	param     string
	index     int
	hasIndex  bool
	direction clang.Direction
	explicit  bool
	depth     int
	position  int
	hasPos    bool

	html string
	xml  string
}

var _ clang.Comment = (*Node)(nil)

func (n *Node) Kind() clang.CommentKind { return n.kind }

func (n *Node) Children() []clang.Comment {
	out := make([]clang.Comment, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Text() string                 { return n.text }
func (n *Node) CommandName() string          { return n.name }
func (n *Node) Args() []string               { return n.args }
func (n *Node) RenderKind() clang.RenderKind { return n.render }
func (n *Node) TagName() string              { return n.name }
func (n *Node) Attrs() []clang.Attr          { return n.attrs }
func (n *Node) SelfClosing() bool            { return n.selfClosing }
func (n *Node) ParamName() string            { return n.param }
func (n *Node) HTML() string                 { return n.html }
func (n *Node) XML() string                  { return n.xml }

func (n *Node) ParamIndex() (int, bool) {
	return n.index, n.hasIndex
}

func (n *Node) Direction() (clang.Direction, bool) {
	return n.direction, n.explicit
}

func (n *Node) TParamPosition() (int, int, bool) {
	return n.depth, n.position, n.hasPos
}

// Empty reports whether a Full comment has no content.
func (n *Node) Empty() bool {
	return len(n.children) == 0
}

func newNode(kind clang.CommentKind, children ...*Node) *Node {
	return &Node{kind: kind, children: children}
}

func textNode(s string) *Node {
	return &Node{kind: clang.CommentText, text: s}
}
