package format

import (
	"github.com/dhamidi/csonar/clang/comment"
)

// commentNode is the JSON shape of every comment node; kind says which
// fields are set.
type commentNode struct {
	Kind        string          `json:"kind"`
	Text        string          `json:"text,omitempty"`
	Name        string          `json:"name,omitempty"`
	Args        []string        `json:"args,omitempty"`
	Style       string          `json:"style,omitempty"`
	Index       *int            `json:"index,omitempty"`
	Direction   string          `json:"direction,omitempty"`
	Position    *jsonPosition   `json:"position,omitempty"`
	Lines       []string        `json:"lines,omitempty"`
	Attrs       []jsonAttribute `json:"attrs,omitempty"`
	SelfClosing bool            `json:"selfClosing,omitempty"`
	Children    []*commentNode  `json:"children,omitempty"`
}

type jsonPosition struct {
	Depth int `json:"depth"`
	Index int `json:"index"`
}

type jsonAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func commentNodes(nodes []comment.Node) []*commentNode {
	out := make([]*commentNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, commentToJSON(n))
	}
	return out
}

func commentToJSON(n comment.Node) *commentNode {
	switch n := n.(type) {
	case comment.Text:
		return &commentNode{Kind: "text", Text: n.Text}
	case comment.Paragraph:
		return &commentNode{Kind: "paragraph", Children: commentNodes(n.Children)}
	case comment.BlockCommand:
		return &commentNode{Kind: "blockCommand", Name: n.Name, Args: n.Args, Children: commentNodes(n.Children)}
	case comment.InlineCommand:
		jn := &commentNode{Kind: "inlineCommand", Name: n.Name, Args: n.Args}
		if n.Style != nil {
			jn.Style = n.Style.String()
		}
		return jn
	case comment.ParamCommand:
		jn := &commentNode{Kind: "paramCommand", Name: n.Name, Index: n.Index, Children: commentNodes(n.Children)}
		if n.Direction != nil {
			jn.Direction = n.Direction.String()
		}
		return jn
	case comment.TParamCommand:
		jn := &commentNode{Kind: "tparamCommand", Name: n.Name, Children: commentNodes(n.Children)}
		if n.Position != nil {
			jn.Position = &jsonPosition{Depth: n.Position.Depth, Index: n.Position.Index}
		}
		return jn
	case comment.VerbatimCommand:
		return &commentNode{Kind: "verbatimCommand", Lines: n.Lines}
	case comment.VerbatimLine:
		return &commentNode{Kind: "verbatimLine", Text: n.Text}
	case comment.HTMLStartTag:
		jn := &commentNode{Kind: "htmlStartTag", Name: n.Name, SelfClosing: n.SelfClosing}
		for _, a := range n.Attributes {
			jn.Attrs = append(jn.Attrs, jsonAttribute{Name: a.Name, Value: a.Value})
		}
		return jn
	case comment.HTMLEndTag:
		return &commentNode{Kind: "htmlEndTag", Name: n.Name}
	}
	return &commentNode{Kind: "unknown"}
}
