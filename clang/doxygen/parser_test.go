package doxygen

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/csonar/clang"
)

func TestParseSimpleText(t *testing.T) {
	doc := Parse("/** Simple text. */", Options{})

	if len(doc.children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(doc.children))
	}
	para := doc.children[0]
	if para.kind != clang.CommentParagraph {
		t.Fatalf("expected paragraph, got %v", para.kind)
	}
	if len(para.children) != 1 || para.children[0].text != " Simple text. " {
		t.Errorf("unexpected paragraph content: %+v", para.children)
	}
}

func TestParseEmptyComment(t *testing.T) {
	for _, raw := range []string{"/** */", "/**\n *\n */", "///", ""} {
		if doc := Parse(raw, Options{}); !doc.Empty() {
			t.Errorf("%q: expected empty comment, got %d children", raw, len(doc.children))
		}
	}
}

func TestParseSplitsParagraphsOnBlankLines(t *testing.T) {
	doc := Parse(`/**
 * First paragraph
 * continues here.
 *
 * Second paragraph.
 */`, Options{})

	if len(doc.children) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %+v", len(doc.children), doc.children)
	}
	first := doc.children[0]
	if len(first.children) != 2 {
		t.Fatalf("expected one text node per line, got %d", len(first.children))
	}
	if first.children[0].text != " First paragraph" || first.children[1].text != " continues here." {
		t.Errorf("unexpected text nodes: %q %q", first.children[0].text, first.children[1].text)
	}
}

func TestParseLineComments(t *testing.T) {
	doc := Parse("/// Brief line.\n/// \\return nothing", Options{})

	if len(doc.children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.children))
	}
	if doc.children[1].kind != clang.CommentBlockCommand || doc.children[1].name != "return" {
		t.Errorf("expected return block command, got %+v", doc.children[1])
	}
}

func TestParseBlockCommands(t *testing.T) {
	doc := Parse(`/**
 * \brief Adds two numbers.
 * @throws overflow when too large
 * \return the sum
 */`, Options{})

	if len(doc.children) != 3 {
		t.Fatalf("expected 3 block commands, got %d: %+v", len(doc.children), doc.children)
	}

	brief := doc.children[0]
	if brief.name != "brief" || len(brief.children) != 1 {
		t.Fatalf("unexpected brief: %+v", brief)
	}
	if got := brief.children[0].children[0].text; got != " Adds two numbers." {
		t.Errorf("expected ' Adds two numbers.', got %q", got)
	}

	throws := doc.children[1]
	if !reflect.DeepEqual(throws.args, []string{"overflow"}) {
		t.Errorf("expected throws args [overflow], got %q", throws.args)
	}
}

func TestParseParamCommands(t *testing.T) {
	doc := Parse(`/**
 * \param[in] src source buffer
 * \param [out] dst destination
 * \param[in,out] n length
 * \param missing not a parameter
 * \param ... more
 */`, Options{Params: []string{"src", "dst", "n"}, Variadic: true})

	want := []struct {
		name     string
		index    int
		hasIndex bool
		dir      clang.Direction
		explicit bool
	}{
		{"src", 0, true, clang.DirectionIn, true},
		{"dst", 1, true, clang.DirectionOut, true},
		{"n", 2, true, clang.DirectionInOut, true},
		{"missing", 0, false, clang.DirectionIn, false},
		{"...", 3, true, clang.DirectionIn, false},
	}

	if len(doc.children) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(doc.children))
	}
	for i, w := range want {
		param := doc.children[i]
		if param.kind != clang.CommentParamCommand {
			t.Fatalf("child %d: expected param command, got %v", i, param.kind)
		}
		if param.ParamName() != w.name {
			t.Errorf("child %d: expected name %q, got %q", i, w.name, param.ParamName())
		}
		if idx, ok := param.ParamIndex(); ok != w.hasIndex || (ok && idx != w.index) {
			t.Errorf("child %d: expected index (%d, %v), got (%d, %v)", i, w.index, w.hasIndex, idx, ok)
		}
		if dir, ok := param.Direction(); ok != w.explicit || (ok && dir != w.dir) {
			t.Errorf("child %d: expected direction (%v, %v), got (%v, %v)", i, w.dir, w.explicit, dir, ok)
		}
	}
}

func TestParseTParam(t *testing.T) {
	doc := Parse("/// \\tparam T element type\n/// \\tparam U other", Options{TemplateParams: []string{"T"}})

	depth, index, ok := doc.children[0].TParamPosition()
	if !ok || depth != 1 || index != 0 {
		t.Errorf("expected (1, 0, true), got (%d, %d, %v)", depth, index, ok)
	}
	if _, _, ok := doc.children[1].TParamPosition(); ok {
		t.Error("expected U to be unresolved")
	}
}

func TestParseVerbatimKeepsLinesExactly(t *testing.T) {
	doc := Parse(`/**
 * Example:
 * \code
 * int main() {
 *     return  0;
 *
 * }
 * \endcode
 */`, Options{})

	if len(doc.children) != 2 {
		t.Fatalf("expected paragraph and verbatim block, got %d", len(doc.children))
	}
	block := doc.children[1]
	if block.kind != clang.CommentVerbatimBlockCommand || block.name != "code" {
		t.Fatalf("expected code block, got %+v", block)
	}
	var lines []string
	for _, line := range block.children {
		lines = append(lines, line.text)
	}
	want := []string{" int main() {", "     return  0;", "", " }"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected lines %q, got %q", want, lines)
	}
}

func TestParseVerbatimLine(t *testing.T) {
	doc := Parse("/**\n * \\fn int f(void)\n * Body.\n */", Options{})

	if len(doc.children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.children))
	}
	line := doc.children[0]
	if line.kind != clang.CommentVerbatimLine || line.text != " int f(void)" {
		t.Errorf("unexpected verbatim line: %+v", line)
	}
}

func TestParseInlineCommands(t *testing.T) {
	doc := Parse(`/** Use \c open, \b bold, \e emph and \anchor here \unknown. */`, Options{})

	para := doc.children[0]
	var commands []*Node
	for _, c := range para.children {
		if c.kind == clang.CommentInlineCommand {
			commands = append(commands, c)
		}
	}
	if len(commands) != 5 {
		t.Fatalf("expected 5 inline commands, got %d", len(commands))
	}

	want := []struct {
		name   string
		args   []string
		render clang.RenderKind
	}{
		{"c", []string{"open,"}, clang.RenderMonospaced},
		{"b", []string{"bold,"}, clang.RenderBold},
		{"e", []string{"emph"}, clang.RenderEmphasized},
		{"anchor", []string{"here"}, clang.RenderAnchor},
		{"unknown", nil, clang.RenderNormal},
	}
	for i, w := range want {
		c := commands[i]
		if c.name != w.name || !reflect.DeepEqual(c.args, w.args) || c.render != w.render {
			t.Errorf("command %d: expected %+v, got name=%q args=%q render=%v", i, w, c.name, c.args, c.render)
		}
	}
}

func TestParseHTMLTags(t *testing.T) {
	doc := Parse(`/** See <a href="x.html" id='y'>here</a>, a<br/>b and 1 < 2. */`, Options{})

	para := doc.children[0]
	var tags []*Node
	for _, c := range para.children {
		if c.kind == clang.CommentHTMLStartTag || c.kind == clang.CommentHTMLEndTag {
			tags = append(tags, c)
		}
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d: %+v", len(tags), para.children)
	}

	wantAttrs := []clang.Attr{{Name: "href", Value: "x.html"}, {Name: "id", Value: "y"}}
	if tags[0].TagName() != "a" || !reflect.DeepEqual(tags[0].Attrs(), wantAttrs) {
		t.Errorf("unexpected start tag: %+v", tags[0])
	}
	if tags[1].kind != clang.CommentHTMLEndTag || tags[1].TagName() != "a" {
		t.Errorf("unexpected end tag: %+v", tags[1])
	}
	if !tags[2].SelfClosing() || tags[2].TagName() != "br" {
		t.Errorf("expected self-closing br, got %+v", tags[2])
	}

	last := para.children[len(para.children)-1]
	if !strings.Contains(last.text, "1 < 2.") {
		t.Errorf("expected stray '<' to stay text, got %q", last.text)
	}
}

func TestParseEscapesAndAddresses(t *testing.T) {
	doc := Parse(`/** Mail me@example.com about \\ and \@ and a::b. */`, Options{})

	para := doc.children[0]
	if len(para.children) != 1 {
		t.Fatalf("expected a single text node, got %+v", para.children)
	}
	if got := para.children[0].text; got != ` Mail me@example.com about \ and @ and a::b. ` {
		t.Errorf("unexpected text %q", got)
	}
}

func TestParseKeepsWhitespaceText(t *testing.T) {
	doc := Parse(`/** \c a \c b */`, Options{})

	para := doc.children[0]
	if len(para.children) != 5 {
		t.Fatalf("expected 5 nodes, got %d: %+v", len(para.children), para.children)
	}
	if para.children[0].text != " " || para.children[2].text != " " {
		t.Errorf("expected whitespace text nodes to be preserved, got %q and %q",
			para.children[0].text, para.children[2].text)
	}
}

func TestIsDocComment(t *testing.T) {
	tests := map[string]bool{
		"/** doc */":  true,
		"/*! doc */":  true,
		"/// doc":     true,
		"//! doc":     true,
		"/**< after":  true,
		"/* plain */": false,
		"// plain":    false,
		"/**/":        false,
		"//// rule":   false,
	}
	for raw, want := range tests {
		if got := IsDocComment(raw); got != want {
			t.Errorf("IsDocComment(%q) = %v, want %v", raw, got, want)
		}
	}
	if !IsTrailing("///< after") || IsTrailing("/// before") {
		t.Error("IsTrailing misclassified line comments")
	}
}
