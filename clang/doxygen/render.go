package doxygen

import (
	"encoding/xml"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/dhamidi/csonar/clang"
)

// sections groups the top-level nodes of a Full comment the way both
// renderers lay them out.
type sections struct {
	brief   clang.Comment
	params  []clang.Comment
	tparams []clang.Comment
	returns []clang.Comment
	rest    []clang.Comment
}

func split(full clang.Comment) sections {
	var s sections
	for _, c := range full.Children() {
		switch c.Kind() {
		case clang.CommentParamCommand:
			s.params = append(s.params, c)
		case clang.CommentTParamCommand:
			s.tparams = append(s.tparams, c)
		case clang.CommentBlockCommand:
			switch c.CommandName() {
			case "brief", "short":
				if s.brief == nil {
					s.brief = c
					continue
				}
			case "return", "returns", "result":
				s.returns = append(s.returns, c)
				continue
			}
			s.rest = append(s.rest, c)
		default:
			s.rest = append(s.rest, c)
		}
	}
	if s.brief == nil && len(s.rest) > 0 && s.rest[0].Kind() == clang.CommentParagraph {
		s.brief, s.rest = s.rest[0], s.rest[1:]
	}
	return s
}

// HTML renders a Full comment as an HTML fragment. It returns "" for nil.
func HTML(full clang.Comment) string {
	if full == nil {
		return ""
	}
	s := split(full)
	var sb strings.Builder

	if s.brief != nil {
		sb.WriteString(`<p class="para-brief">`)
		writeHTMLInline(&sb, paragraphOf(s.brief))
		sb.WriteString("</p>")
	}
	if len(s.params) > 0 {
		sb.WriteString("<dl>")
		for _, c := range s.params {
			idx := "invalid"
			if i, ok := c.ParamIndex(); ok {
				idx = strconv.Itoa(i)
			}
			fmt.Fprintf(&sb, `<dt class="param-name-index-%s">%s</dt>`, idx, html.EscapeString(c.ParamName()))
			fmt.Fprintf(&sb, `<dd class="param-descr-index-%s">`, idx)
			writeHTMLInline(&sb, paragraphOf(c))
			sb.WriteString("</dd>")
		}
		sb.WriteString("</dl>")
	}
	if len(s.tparams) > 0 {
		sb.WriteString("<dl>")
		for _, c := range s.tparams {
			class := "tparam-name-index-invalid"
			if depth, i, ok := c.TParamPosition(); ok {
				class = fmt.Sprintf("tparam-name-index-%d", i)
				if depth > 1 {
					class = "tparam-name-index-other"
				}
			}
			fmt.Fprintf(&sb, `<dt class="%s">%s</dt>`, class, html.EscapeString(c.ParamName()))
			sb.WriteString(`<dd class="tparam-descr-index-other">`)
			writeHTMLInline(&sb, paragraphOf(c))
			sb.WriteString("</dd>")
		}
		sb.WriteString("</dl>")
	}
	if len(s.returns) > 0 {
		sb.WriteString(`<div class="result-discussion">`)
		for _, c := range s.returns {
			sb.WriteString(`<p class="para-returns"><span class="word-returns">Returns</span> `)
			writeHTMLInline(&sb, paragraphOf(c))
			sb.WriteString("</p>")
		}
		sb.WriteString("</div>")
	}
	for _, c := range s.rest {
		writeHTMLBlock(&sb, c)
	}
	return sb.String()
}

func writeHTMLBlock(sb *strings.Builder, c clang.Comment) {
	switch c.Kind() {
	case clang.CommentParagraph:
		sb.WriteString("<p>")
		writeHTMLInline(sb, c.Children())
		sb.WriteString("</p>")
	case clang.CommentBlockCommand:
		sb.WriteString("<p>")
		writeHTMLInline(sb, paragraphOf(c))
		sb.WriteString("</p>")
	case clang.CommentVerbatimBlockCommand:
		sb.WriteString("<pre>")
		sb.WriteString(html.EscapeString(strings.Join(verbatimLines(c), "\n")))
		sb.WriteString("</pre>")
	case clang.CommentVerbatimLine:
		sb.WriteString("<pre>")
		sb.WriteString(html.EscapeString(c.Text()))
		sb.WriteString("</pre>")
	}
}

func writeHTMLInline(sb *strings.Builder, nodes []clang.Comment) {
	for _, c := range nodes {
		switch c.Kind() {
		case clang.CommentText:
			sb.WriteString(html.EscapeString(c.Text()))
		case clang.CommentInlineCommand:
			arg := html.EscapeString(strings.Join(c.Args(), " "))
			switch c.RenderKind() {
			case clang.RenderBold:
				sb.WriteString("<b>" + arg + "</b>")
			case clang.RenderMonospaced:
				sb.WriteString("<tt>" + arg + "</tt>")
			case clang.RenderEmphasized:
				sb.WriteString("<em>" + arg + "</em>")
			case clang.RenderAnchor:
				sb.WriteString(`<span id="` + arg + `"></span>`)
			default:
				sb.WriteString(arg)
			}
		case clang.CommentHTMLStartTag:
			sb.WriteString(startTag(c))
		case clang.CommentHTMLEndTag:
			sb.WriteString("</" + c.TagName() + ">")
		}
	}
}

// XML renders a Full comment in the layout of clang's comment-to-XML
// converter, without the declaration header. It returns "" for nil.
func XML(full clang.Comment) string {
	if full == nil {
		return ""
	}
	s := split(full)
	var sb strings.Builder

	sb.WriteString("<Comment>")
	if s.brief != nil {
		sb.WriteString("<Abstract><Para>")
		writeXMLInline(&sb, paragraphOf(s.brief))
		sb.WriteString("</Para></Abstract>")
	}
	if len(s.tparams) > 0 {
		sb.WriteString("<TemplateParameters>")
		for _, c := range s.tparams {
			sb.WriteString("<Parameter><Name>")
			xmlText(&sb, c.ParamName())
			sb.WriteString("</Name>")
			if depth, i, ok := c.TParamPosition(); ok && depth == 1 {
				fmt.Fprintf(&sb, "<Index>%d</Index>", i)
			}
			sb.WriteString("<Discussion><Para>")
			writeXMLInline(&sb, paragraphOf(c))
			sb.WriteString("</Para></Discussion></Parameter>")
		}
		sb.WriteString("</TemplateParameters>")
	}
	if len(s.params) > 0 {
		sb.WriteString("<Parameters>")
		for _, c := range s.params {
			sb.WriteString("<Parameter><Name>")
			xmlText(&sb, c.ParamName())
			sb.WriteString("</Name>")
			if i, ok := c.ParamIndex(); ok {
				fmt.Fprintf(&sb, "<Index>%d</Index>", i)
			}
			if d, ok := c.Direction(); ok {
				fmt.Fprintf(&sb, `<Direction isExplicit="1">%s</Direction>`, d)
			} else {
				sb.WriteString(`<Direction isExplicit="0">in</Direction>`)
			}
			sb.WriteString("<Discussion><Para>")
			writeXMLInline(&sb, paragraphOf(c))
			sb.WriteString("</Para></Discussion></Parameter>")
		}
		sb.WriteString("</Parameters>")
	}
	if len(s.returns) > 0 {
		sb.WriteString("<ResultDiscussion>")
		for _, c := range s.returns {
			sb.WriteString("<Para>")
			writeXMLInline(&sb, paragraphOf(c))
			sb.WriteString("</Para>")
		}
		sb.WriteString("</ResultDiscussion>")
	}
	if len(s.rest) > 0 {
		sb.WriteString("<Discussion>")
		for _, c := range s.rest {
			writeXMLBlock(&sb, c)
		}
		sb.WriteString("</Discussion>")
	}
	sb.WriteString("</Comment>")
	return sb.String()
}

func writeXMLBlock(sb *strings.Builder, c clang.Comment) {
	switch c.Kind() {
	case clang.CommentParagraph:
		sb.WriteString("<Para>")
		writeXMLInline(sb, c.Children())
		sb.WriteString("</Para>")
	case clang.CommentBlockCommand:
		fmt.Fprintf(sb, `<Para kind="%s">`, c.CommandName())
		writeXMLInline(sb, paragraphOf(c))
		sb.WriteString("</Para>")
	case clang.CommentVerbatimBlockCommand:
		fmt.Fprintf(sb, `<Verbatim xml:space="preserve" kind="%s">`, c.CommandName())
		xmlText(sb, strings.Join(verbatimLines(c), "\n"))
		sb.WriteString("</Verbatim>")
	case clang.CommentVerbatimLine:
		fmt.Fprintf(sb, `<Verbatim xml:space="preserve" kind="%s">`, c.CommandName())
		xmlText(sb, c.Text())
		sb.WriteString("</Verbatim>")
	}
}

func writeXMLInline(sb *strings.Builder, nodes []clang.Comment) {
	for _, c := range nodes {
		switch c.Kind() {
		case clang.CommentText:
			xmlText(sb, c.Text())
		case clang.CommentInlineCommand:
			var arg strings.Builder
			xmlText(&arg, strings.Join(c.Args(), " "))
			switch c.RenderKind() {
			case clang.RenderBold:
				sb.WriteString("<bold>" + arg.String() + "</bold>")
			case clang.RenderMonospaced:
				sb.WriteString("<monospaced>" + arg.String() + "</monospaced>")
			case clang.RenderEmphasized:
				sb.WriteString("<emphasized>" + arg.String() + "</emphasized>")
			case clang.RenderAnchor:
				sb.WriteString(`<anchor name="` + arg.String() + `"></anchor>`)
			default:
				sb.WriteString(arg.String())
			}
		case clang.CommentHTMLStartTag:
			sb.WriteString("<rawHTML><![CDATA[" + startTag(c) + "]]></rawHTML>")
		case clang.CommentHTMLEndTag:
			sb.WriteString("<rawHTML><![CDATA[</" + c.TagName() + ">]]></rawHTML>")
		}
	}
}

func startTag(c clang.Comment) string {
	var sb strings.Builder
	sb.WriteString("<" + c.TagName())
	for _, a := range c.Attrs() {
		sb.WriteString(" " + a.Name + `="` + html.EscapeString(a.Value) + `"`)
	}
	if c.SelfClosing() {
		sb.WriteString("/")
	}
	sb.WriteString(">")
	return sb.String()
}

// paragraphOf returns the inline children of a command's paragraph, or the
// children of a paragraph itself.
func paragraphOf(c clang.Comment) []clang.Comment {
	if c.Kind() == clang.CommentParagraph {
		return c.Children()
	}
	for _, child := range c.Children() {
		if child.Kind() == clang.CommentParagraph {
			return child.Children()
		}
	}
	return nil
}

func verbatimLines(c clang.Comment) []string {
	var lines []string
	for _, child := range c.Children() {
		lines = append(lines, child.Text())
	}
	return lines
}

func xmlText(sb *strings.Builder, s string) {
	_ = xml.EscapeText(sb, []byte(s))
}
