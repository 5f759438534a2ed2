package comment

import (
	"strings"
)

// Markdown renders a comment tree as Markdown for editor hovers.
func Markdown(nodes []Node) string {
	var body strings.Builder
	var params []string
	var tail []string

	for _, node := range nodes {
		switch n := node.(type) {
		case Paragraph:
			text := strings.TrimSpace(formatNodes(n.Children))
			if text != "" {
				body.WriteString(text)
				body.WriteString("\n\n")
			}
		case BlockCommand:
			s := formatBlockCommand(n)
			if isBrief(n.Name) {
				body.WriteString(s)
				body.WriteString("\n\n")
			} else if s != "" {
				tail = append(tail, s)
			}
		case ParamCommand:
			params = append(params, formatParam(n))
		case TParamCommand:
			desc := strings.TrimSpace(formatNodes(n.Children))
			params = append(params, "- `<"+n.Name+">` "+desc)
		case VerbatimCommand:
			body.WriteString("```\n")
			body.WriteString(strings.Join(n.Lines, "\n"))
			body.WriteString("\n```\n\n")
		case VerbatimLine:
			body.WriteString("`" + strings.TrimSpace(n.Text) + "`\n\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(normalizeWhitespace(body.String()))
	if len(params) > 0 {
		sb.WriteString("\n\n**Parameters**\n\n")
		sb.WriteString(strings.Join(params, "\n"))
	}
	for _, s := range tail {
		sb.WriteString("\n\n")
		sb.WriteString(s)
	}
	return strings.TrimSpace(sb.String())
}

// PlainText renders a comment tree as plain text without markup or commands.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Paragraph:
			sb.WriteString(formatNodesPlain(n.Children))
			sb.WriteString("\n\n")
		case BlockCommand:
			if isBrief(n.Name) {
				sb.WriteString(formatNodesPlain(n.Children))
				sb.WriteString("\n\n")
			}
		case VerbatimCommand:
			sb.WriteString(strings.Join(n.Lines, "\n"))
			sb.WriteString("\n\n")
		}
	}
	return strings.TrimSpace(normalizeWhitespace(sb.String()))
}

// Brief returns the text of the first \brief command, or of the first
// non-empty paragraph when there is none.
func Brief(nodes []Node) string {
	for _, node := range nodes {
		if b, ok := node.(BlockCommand); ok && isBrief(b.Name) {
			return collapseSpace(formatNodesPlain(b.Children))
		}
	}
	for _, node := range nodes {
		if p, ok := node.(Paragraph); ok {
			if s := collapseSpace(formatNodesPlain(p.Children)); s != "" {
				return s
			}
		}
	}
	return ""
}

func isBrief(name string) bool {
	return name == "brief" || name == "short"
}

func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(formatNode(node))
	}
	return sb.String()
}

func formatNodesPlain(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(formatNodePlain(node))
	}
	return sb.String()
}

func formatNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Text
	case InlineCommand:
		arg := strings.Join(n.Args, " ")
		if n.Style == nil || arg == "" {
			return arg
		}
		switch *n.Style {
		case Bold:
			return "**" + arg + "**"
		case Monospace:
			return "`" + arg + "`"
		case Emphasized:
			return "*" + arg + "*"
		}
		return arg
	case HTMLStartTag:
		return formatStartTag(n)
	case HTMLEndTag:
		return formatEndTag(n)
	default:
		return ""
	}
}

func formatNodePlain(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Text
	case InlineCommand:
		return strings.Join(n.Args, " ")
	default:
		return ""
	}
}

func formatStartTag(t HTMLStartTag) string {
	switch strings.ToLower(t.Name) {
	case "p":
		return "\n\n"
	case "br":
		return "\n"
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "b", "strong":
		return "**"
	case "i", "em":
		return "*"
	case "ul", "ol":
		return "\n"
	case "li":
		return "\n- "
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n\n"
	default:
		return ""
	}
}

func formatEndTag(t HTMLEndTag) string {
	switch strings.ToLower(t.Name) {
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "b", "strong":
		return "**"
	case "i", "em":
		return "*"
	case "ul", "ol":
		return "\n"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n"
	default:
		return ""
	}
}

func formatParam(p ParamCommand) string {
	var sb strings.Builder
	sb.WriteString("- `" + p.Name + "`")
	if p.Direction != nil {
		sb.WriteString(" [" + p.Direction.String() + "]")
	}
	if desc := strings.TrimSpace(formatNodes(p.Children)); desc != "" {
		sb.WriteString(" " + collapseSpace(desc))
	}
	return sb.String()
}

func formatBlockCommand(b BlockCommand) string {
	desc := collapseSpace(formatNodes(b.Children))
	switch b.Name {
	case "brief", "short":
		return desc
	case "return", "returns", "result":
		return "**Returns** " + desc
	case "note":
		return "**Note** " + desc
	case "warning":
		return "**Warning** " + desc
	case "deprecated":
		return "**Deprecated** " + desc
	case "see", "sa":
		return "**See also** " + desc
	default:
		head := "**\\" + b.Name + "**"
		if len(b.Args) > 0 {
			head += " " + strings.Join(b.Args, " ")
		}
		if desc == "" {
			return head
		}
		return head + " " + desc
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeWhitespace(s string) string {
	// Replace multiple consecutive blank lines with one
	lines := strings.Split(s, "\n")
	var result []string
	prevEmpty := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !prevEmpty {
				result = append(result, "")
				prevEmpty = true
			}
		} else {
			result = append(result, line)
			prevEmpty = false
		}
	}

	return strings.Join(result, "\n")
}
