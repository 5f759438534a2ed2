package comment

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/csonar/clang"
	ct "github.com/dhamidi/csonar/clang/clangtest"
)

func TestParseNilComment(t *testing.T) {
	nodes, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestParseEmptyComment(t *testing.T) {
	nodes, err := Parse(ct.Full())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestParseTopLevelOrder(t *testing.T) {
	raw := ct.Full(
		ct.Para(ct.Text(" Adds two numbers.")),
		ct.Block("brief", nil, ct.Para(ct.Text(" Sum."))),
		ct.Param("a", ct.IntPtr(0), nil, ct.Para(ct.Text(" first"))),
		ct.Block("return", nil, ct.Para(ct.Text(" the sum"))),
	)

	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 top-level nodes, got %d: %+v", len(nodes), nodes)
	}

	if _, ok := nodes[0].(Paragraph); !ok {
		t.Errorf("expected Paragraph, got %T", nodes[0])
	}
	brief, ok := nodes[1].(BlockCommand)
	if !ok {
		t.Fatalf("expected BlockCommand, got %T", nodes[1])
	}
	if brief.Name != "brief" {
		t.Errorf("expected command 'brief', got %q", brief.Name)
	}
	if len(brief.Children) != 1 || brief.Children[0] != (Text{Text: " Sum."}) {
		t.Errorf("unexpected brief children: %+v", brief.Children)
	}
	if _, ok := nodes[2].(ParamCommand); !ok {
		t.Errorf("expected ParamCommand, got %T", nodes[2])
	}
	ret, ok := nodes[3].(BlockCommand)
	if !ok || ret.Name != "return" {
		t.Errorf("expected return BlockCommand, got %+v", nodes[3])
	}
}

func TestParseParamDirection(t *testing.T) {
	raw := ct.Full(
		ct.Param("in", ct.IntPtr(0), ct.DirPtr(clang.DirectionIn), nil),
		ct.Param("out", ct.IntPtr(1), ct.DirPtr(clang.DirectionOut), nil),
		ct.Param("both", ct.IntPtr(2), ct.DirPtr(clang.DirectionInOut), nil),
		ct.Param("missing", nil, nil, nil),
	)

	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		name  string
		index *int
		dir   *Direction
	}{
		{"in", intp(0), dirp(In)},
		{"out", intp(1), dirp(Out)},
		{"both", intp(2), dirp(InOut)},
		{"missing", nil, nil},
	}

	for i, w := range want {
		param, ok := nodes[i].(ParamCommand)
		if !ok {
			t.Fatalf("node %d: expected ParamCommand, got %T", i, nodes[i])
		}
		if param.Name != w.name {
			t.Errorf("node %d: expected name %q, got %q", i, w.name, param.Name)
		}
		if !reflect.DeepEqual(param.Index, w.index) {
			t.Errorf("node %d: expected index %v, got %v", i, w.index, param.Index)
		}
		if !reflect.DeepEqual(param.Direction, w.dir) {
			t.Errorf("node %d: expected direction %v, got %v", i, w.dir, param.Direction)
		}
	}
}

func TestParseTParamPosition(t *testing.T) {
	raw := ct.Full(
		ct.TParam("T", 1, 0, ct.Para(ct.Text(" element type"))),
		&ct.Comment{NodeKind: clang.CommentTParamCommand, Param: "U"},
	)

	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved := nodes[0].(TParamCommand)
	if resolved.Position == nil || *resolved.Position != (Position{Depth: 1, Index: 0}) {
		t.Errorf("expected position (1, 0), got %v", resolved.Position)
	}
	unresolved := nodes[1].(TParamCommand)
	if unresolved.Position != nil {
		t.Errorf("expected nil position, got %v", unresolved.Position)
	}
}

func TestParseVerbatimKeepsWhitespace(t *testing.T) {
	lines := []string{"int main() {", "    return  0;", "", "}"}
	nodes, err := Parse(ct.Full(ct.Verbatim("code", lines...)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	verbatim, ok := nodes[0].(VerbatimCommand)
	if !ok {
		t.Fatalf("expected VerbatimCommand, got %T", nodes[0])
	}
	if !reflect.DeepEqual(verbatim.Lines, lines) {
		t.Errorf("expected lines %q, got %q", lines, verbatim.Lines)
	}
}

func TestParseInlineContent(t *testing.T) {
	raw := ct.Full(ct.Para(
		ct.Text(" "),
		ct.Inline("b", clang.RenderBold, "bold"),
		ct.Inline("c", clang.RenderMonospaced, "mono"),
		ct.Inline("e", clang.RenderEmphasized, "em"),
		ct.Inline("anchor", clang.RenderAnchor, "here"),
		ct.StartTag("a", false, clang.Attr{Name: "href", Value: "x"}, clang.Attr{Name: "id", Value: "y"}),
		ct.EndTag("a"),
		ct.StartTag("br", true),
	))

	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	para := nodes[0].(Paragraph)
	if len(para.Children) != 8 {
		t.Fatalf("expected 8 inline nodes, got %d", len(para.Children))
	}

	if text := para.Children[0].(Text); text.Text != " " {
		t.Errorf("expected whitespace text to be preserved, got %q", text.Text)
	}

	styles := []*Style{stylep(Bold), stylep(Monospace), stylep(Emphasized), nil}
	for i, want := range styles {
		cmd := para.Children[i+1].(InlineCommand)
		if !reflect.DeepEqual(cmd.Style, want) {
			t.Errorf("inline %d: expected style %v, got %v", i, want, cmd.Style)
		}
	}

	start := para.Children[5].(HTMLStartTag)
	wantAttrs := []Attribute{{Name: "href", Value: "x"}, {Name: "id", Value: "y"}}
	if !reflect.DeepEqual(start.Attributes, wantAttrs) {
		t.Errorf("expected attributes %v, got %v", wantAttrs, start.Attributes)
	}
	if start.SelfClosing {
		t.Error("expected <a> not to be self-closing")
	}
	if end := para.Children[6].(HTMLEndTag); end.Name != "a" {
		t.Errorf("expected end tag 'a', got %q", end.Name)
	}
	if br := para.Children[7].(HTMLStartTag); !br.SelfClosing {
		t.Error("expected <br/> to be self-closing")
	}
}

func TestParseUnknownKindIsContractViolation(t *testing.T) {
	raw := ct.Full(ct.Para(&ct.Comment{NodeKind: clang.CommentKind(99)}))

	nodes, err := Parse(raw)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !clang.IsContractViolation(err) {
		t.Errorf("expected contract violation, got %v", err)
	}
	if !errors.IsAssertionFailure(err) {
		t.Errorf("expected assertion failure, got %v", err)
	}
	if nodes != nil {
		t.Errorf("expected no partial tree, got %+v", nodes)
	}
}

func TestParseBadArityIsContractViolation(t *testing.T) {
	text := ct.Text("x")
	text.Nodes = []*ct.Comment{ct.Text("y")}

	_, err := Parse(ct.Full(ct.Para(text)))
	if !clang.IsContractViolation(err) {
		t.Errorf("expected contract violation, got %v", err)
	}
	if !errors.IsAssertionFailure(err) {
		t.Errorf("expected assertion failure, got %v", err)
	}
}

func TestParseDocumentPassesRenderingsThrough(t *testing.T) {
	raw := ct.Full(ct.Para(ct.Text(" hi")))
	raw.Html = "<p> hi</p>"
	raw.Xml = "<FullComment/>"

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.HTML != raw.Html || doc.XML != raw.Xml {
		t.Errorf("renderings changed: %q %q", doc.HTML, doc.XML)
	}
}

func intp(i int) *int             { return &i }
func dirp(d Direction) *Direction { return &d }
func stylep(s Style) *Style       { return &s }
