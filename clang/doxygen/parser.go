package doxygen

import (
	"strings"
	"unicode"

	"github.com/dhamidi/csonar/clang"
)

// Options resolves parameter references against the documented declaration.
type Options struct {
	// Params are the declaration's parameter names in order.
	Params []string
	// Variadic is set for declarations ending in "...".
	Variadic bool
	// TemplateParams are the declaration's template parameter names.
	TemplateParams []string
}

// Parser is a recursive-descent parser for Doxygen comments.
type Parser struct {
	input []rune
	pos   int
	len   int
	opts  Options
}

// Parse parses a documentation comment, with or without its comment
// delimiters, and returns the Full root node. The HTML and XML renderings
// of the tree are attached to the root.
func Parse(raw string, opts Options) *Node {
	p := &Parser{
		input: []rune(strings.Join(clean(raw), "\n")),
		opts:  opts,
	}
	p.len = len(p.input)

	full := p.parseFull()
	full.html = HTML(full)
	full.xml = XML(full)
	return full
}

func (p *Parser) parseFull() *Node {
	full := newNode(clang.CommentFull)
	for {
		p.skipBlankLines()
		if p.pos >= p.len {
			break
		}
		if name, cmd, ok := p.peekCommand(); ok && cmd.class != inlineCommand {
			full.children = append(full.children, p.parseBlock(name, cmd))
			continue
		}
		para := p.parseParagraph()
		if !isWhitespaceParagraph(para) {
			full.children = append(full.children, para)
		}
	}
	return full
}

// parseParagraph parses inline content up to a blank line, a block-level
// command or the end of the comment.
func (p *Parser) parseParagraph() *Node {
	para := newNode(clang.CommentParagraph)
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			para.children = append(para.children, textNode(textBuf.String()))
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		switch ch {
		case '\n':
			flushText()
			p.advance(1)
			if p.atBlankLine() {
				return para
			}

		case '\\', '@':
			if next := p.peekAt(1); next != 0 && strings.ContainsRune(escapes, next) {
				if next == ':' && p.peekAt(2) == ':' {
					textBuf.WriteString("::")
					p.advance(3)
				} else {
					textBuf.WriteRune(next)
					p.advance(2)
				}
				continue
			}
			name, cmd, ok := p.peekCommand()
			switch {
			case !ok:
				textBuf.WriteRune(ch)
				p.advance(1)
			case cmd.class != inlineCommand:
				if !p.indentOnly(textBuf.String()) {
					flushText()
				}
				return para
			default:
				flushText()
				para.children = append(para.children, p.parseInlineCommand(name, cmd))
			}

		case '<':
			if node := p.parseHTML(); node != nil {
				flushText()
				para.children = append(para.children, node)
			} else {
				textBuf.WriteRune(ch)
				p.advance(1)
			}

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return para
}

// peekCommand reports the command at the current position without
// consuming it. Unknown commands are recognized only at the start of a word
// and are treated as inline commands without arguments.
func (p *Parser) peekCommand() (string, command, bool) {
	ch := p.peek()
	if ch != '\\' && ch != '@' {
		return "", command{}, false
	}
	for _, special := range []string{"f$", "f[", "f{"} {
		if p.matchAt(1, special) {
			return special, commands[special], true
		}
	}
	end := p.pos + 1
	for end < p.len && isCommandChar(p.input[end]) {
		end++
	}
	name := string(p.input[p.pos+1 : end])
	if name == "" {
		return "", command{}, false
	}
	if cmd, ok := commands[name]; ok {
		return name, cmd, true
	}
	if p.pos > 0 && !unicode.IsSpace(p.input[p.pos-1]) {
		return "", command{}, false
	}
	return name, command{class: inlineCommand}, true
}

func (p *Parser) parseInlineCommand(name string, cmd command) *Node {
	p.advance(1 + len([]rune(name)))
	node := &Node{kind: clang.CommentInlineCommand, name: name, render: cmd.render}
	for range cmd.numArgs {
		p.skipHorizontalWhitespace()
		word := p.readWord()
		if word == "" {
			break
		}
		node.args = append(node.args, word)
	}
	return node
}

func (p *Parser) parseBlock(name string, cmd command) *Node {
	p.advance(1 + len([]rune(name)))
	switch cmd.class {
	case paramCommand:
		return p.parseParamCommand(name)
	case tparamCommand:
		return p.parseTParamCommand(name)
	case verbatimBlock:
		return p.parseVerbatimBlock(name, cmd.end)
	case verbatimLine:
		return p.parseVerbatimLine(name)
	}

	node := &Node{kind: clang.CommentBlockCommand, name: name}
	for range cmd.numArgs {
		p.skipHorizontalWhitespace()
		word := p.readWord()
		if word == "" {
			break
		}
		node.args = append(node.args, word)
	}
	node.children = []*Node{p.parseParagraph()}
	return node
}

func (p *Parser) parseParamCommand(name string) *Node {
	node := &Node{kind: clang.CommentParamCommand, name: name}

	p.skipHorizontalWhitespace()
	if p.peek() == '[' {
		p.advance(1)
		start := p.pos
		for p.pos < p.len && p.peek() != ']' && p.peek() != '\n' {
			p.advance(1)
		}
		spec := string(p.input[start:p.pos])
		if p.peek() == ']' {
			p.advance(1)
		}
		node.direction, node.explicit = parseDirection(spec)
	}

	p.skipHorizontalWhitespace()
	node.param = p.readWord()
	if node.param != "" {
		node.index, node.hasIndex = p.resolveParam(node.param)
	}

	node.children = []*Node{p.parseParagraph()}
	return node
}

func (p *Parser) parseTParamCommand(name string) *Node {
	node := &Node{kind: clang.CommentTParamCommand, name: name}

	p.skipHorizontalWhitespace()
	node.param = p.readWord()
	for i, tp := range p.opts.TemplateParams {
		if tp == node.param {
			node.depth, node.position, node.hasPos = 1, i, true
			break
		}
	}

	node.children = []*Node{p.parseParagraph()}
	return node
}

// parseVerbatimBlock reads lines verbatim up to the closing command. A
// missing closing command extends the block to the end of the comment.
func (p *Parser) parseVerbatimBlock(name, end string) *Node {
	node := &Node{kind: clang.CommentVerbatimBlockCommand, name: name}

	start := p.pos
	stop := p.len
	next := p.len
	for i := p.pos; i < p.len; i++ {
		if (p.input[i] == '\\' || p.input[i] == '@') && p.matchFrom(i+1, end) {
			stop = i
			next = i + 1 + len([]rune(end))
			break
		}
	}
	p.pos = next

	lines := strings.Split(string(p.input[start:stop]), "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 1 && strings.TrimSpace(lines[0]) == "" {
		lines = nil
	}
	for _, line := range lines {
		node.children = append(node.children, &Node{kind: clang.CommentVerbatimBlockLine, text: line})
	}
	return node
}

func (p *Parser) parseVerbatimLine(name string) *Node {
	start := p.pos
	for p.pos < p.len && p.peek() != '\n' {
		p.advance(1)
	}
	return &Node{kind: clang.CommentVerbatimLine, name: name, text: string(p.input[start:p.pos])}
}

// parseHTML parses an HTML start or end tag. It returns nil, consuming
// nothing, when the input is not a well-formed tag with a known name.
func (p *Parser) parseHTML() *Node {
	save := p.pos
	p.advance(1)

	if p.peek() == '/' {
		p.advance(1)
		name := p.readHTMLName()
		p.skipHorizontalWhitespace()
		if !htmlTags[strings.ToLower(name)] || p.peek() != '>' {
			p.pos = save
			return nil
		}
		p.advance(1)
		return &Node{kind: clang.CommentHTMLEndTag, name: name}
	}

	name := p.readHTMLName()
	if !htmlTags[strings.ToLower(name)] {
		p.pos = save
		return nil
	}
	node := &Node{kind: clang.CommentHTMLStartTag, name: name}

	for {
		p.skipWhitespace()
		switch {
		case p.peek() == '>':
			p.advance(1)
			return node
		case p.match("/>"):
			p.advance(2)
			node.selfClosing = true
			return node
		}

		attr := p.readHTMLName()
		if attr == "" {
			p.pos = save
			return nil
		}
		var value string
		p.skipWhitespace()
		if p.peek() == '=' {
			p.advance(1)
			p.skipWhitespace()
			var ok bool
			if value, ok = p.readQuotedString(); !ok {
				p.pos = save
				return nil
			}
		}
		node.attrs = append(node.attrs, clang.Attr{Name: attr, Value: value})
	}
}

func (p *Parser) resolveParam(name string) (int, bool) {
	for i, param := range p.opts.Params {
		if param == name {
			return i, true
		}
	}
	if name == "..." && p.opts.Variadic {
		return len(p.opts.Params), true
	}
	return 0, false
}

func parseDirection(spec string) (clang.Direction, bool) {
	spec = strings.ToLower(strings.Join(strings.Fields(spec), ""))
	switch spec {
	case "in":
		return clang.DirectionIn, true
	case "out":
		return clang.DirectionOut, true
	case "in,out", "out,in":
		return clang.DirectionInOut, true
	}
	return clang.DirectionIn, false
}

func isWhitespaceParagraph(n *Node) bool {
	for _, c := range n.children {
		if c.kind != clang.CommentText || strings.TrimSpace(c.text) != "" {
			return false
		}
	}
	return true
}

// Helper methods for reading tokens

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	return p.matchFrom(p.pos, s)
}

func (p *Parser) matchAt(offset int, s string) bool {
	return p.matchFrom(p.pos+offset, s)
}

func (p *Parser) matchFrom(pos int, s string) bool {
	rs := []rune(s)
	if pos < 0 || pos+len(rs) > p.len {
		return false
	}
	for i, ch := range rs {
		if p.input[pos+i] != ch {
			return false
		}
	}
	return true
}

// atBlankLine reports whether the line starting at the current position
// holds only whitespace.
func (p *Parser) atBlankLine() bool {
	for i := p.pos; i < p.len; i++ {
		switch p.input[i] {
		case '\n':
			return true
		case ' ', '\t', '\r', '\f', '\v':
		default:
			return false
		}
	}
	return true
}

// indentOnly reports whether text is the whitespace that precedes the
// current position on its line.
func (p *Parser) indentOnly(text string) bool {
	if strings.TrimSpace(text) != "" {
		return false
	}
	for i := p.pos - 1; i >= 0; i-- {
		switch p.input[i] {
		case '\n':
			return true
		case ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func (p *Parser) skipBlankLines() {
	for p.pos < p.len && p.atBlankLine() {
		for p.pos < p.len && p.peek() != '\n' {
			p.advance(1)
		}
		p.advance(1)
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && unicode.IsSpace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

func (p *Parser) readWord() string {
	start := p.pos
	for p.pos < p.len && !unicode.IsSpace(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readHTMLName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' || ch == ':' {
			p.advance(1)
		} else {
			break
		}
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readQuotedString() (string, bool) {
	quote := p.peek()
	if quote != '"' && quote != '\'' {
		return "", false
	}
	p.advance(1)

	start := p.pos
	for p.pos < p.len && p.peek() != quote {
		p.advance(1)
	}
	if p.pos >= p.len {
		return "", false
	}
	result := string(p.input[start:p.pos])
	p.advance(1)
	return result, true
}

func isCommandChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
