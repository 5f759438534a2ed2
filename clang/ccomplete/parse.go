// Package ccomplete reads the output of c-index-test -code-completion-at and
// exposes it as clang.CompletionResults.
//
// A proposal line looks like
//
//	FunctionDecl:{ResultType int}{TypedText add}{LeftParen (}{Placeholder int a}{RightParen )} (50)
//
// and may be followed by an availability, annotations, a parent context and a
// brief comment. The proposals are followed by the completion contexts and,
// when clang knows it, the container kind.
package ccomplete

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/csonar/clang"
)

var log = commonlog.GetLogger("csonar.ccomplete")

// invalidChunk is the kind of a chunk whose spelling is not a known chunk
// kind. The completion decoder rejects it.
const invalidChunk clang.ChunkKind = -1

// Parse reads proposals, contexts and container information from out and
// compiler diagnostics from diagnostics, which may be nil.
func Parse(out io.Reader, diagnostics io.Reader) (*Results, error) {
	r := &Results{}
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	section := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == "":
			section = ""
		case line == "Completion contexts:":
			section = "contexts"
		case strings.HasPrefix(line, "Container Kind: "):
			kind, ok := clang.ParseEntityKind(strings.TrimPrefix(line, "Container Kind: "))
			if ok {
				r.container, r.hasContainer = kind, true
			}
		case line == "Container is incomplete":
			r.incomplete = true
		case line == "Container is complete":
			r.incomplete = false
		case strings.HasPrefix(line, "Container USR: "), strings.HasPrefix(line, "Objective-C selector: "):
		case section == "contexts":
			bit, ok := contextBit(line)
			if !ok {
				log.Debugf("ignoring unknown completion context %q", line)
				continue
			}
			r.mask |= bit
		case isProposal(line):
			p, err := parseProposal(line)
			if err != nil {
				return nil, errors.Wrapf(err, "completion output line %d", lineNo)
			}
			r.proposals = append(r.proposals, p)
		default:
			log.Debugf("ignoring completion output line %d: %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read completion output")
	}
	if diagnostics != nil {
		diags, err := ParseDiagnostics(diagnostics)
		if err != nil {
			return nil, err
		}
		r.diagnostics = diags
	}
	log.Debugf("parsed %d completion proposals", len(r.proposals))
	return r, nil
}

func contextBit(name string) (uint64, bool) {
	if name == "Unknown" {
		return clang.ContextUnknown, true
	}
	for _, c := range clang.ContextNames {
		if c.Name == name {
			return c.Bit, true
		}
	}
	return 0, false
}

// isProposal reports whether line starts with a kind spelling followed by
// ":{".
func isProposal(line string) bool {
	i := strings.Index(line, ":")
	return i > 0 && strings.HasPrefix(line[i+1:], "{")
}

func parseProposal(line string) (proposal, error) {
	i := strings.Index(line, ":")
	kind, ok := clang.ParseEntityKind(line[:i])
	if !ok {
		kind = clang.EntityNotImplemented
	}
	p := &chunkParser{s: line, pos: i + 1}
	str, err := p.chunks()
	if err != nil {
		return proposal{}, err
	}
	if err := p.trailer(str); err != nil {
		return proposal{}, err
	}
	return proposal{kind: kind, str: str}, nil
}

type chunkParser struct {
	s   string
	pos int
}

func (p *chunkParser) peek(prefix string) bool {
	return strings.HasPrefix(p.s[p.pos:], prefix)
}

// chunks reads a run of {Kind text} groups. It stops at the first character
// that does not open a group.
func (p *chunkParser) chunks() (*completionString, error) {
	s := &completionString{}
	for p.peek("{") {
		start := p.pos
		p.pos++
		end := strings.IndexAny(p.s[p.pos:], " }")
		if end < 0 {
			return nil, errors.Newf("unterminated chunk at column %d", start+1)
		}
		name := p.s[p.pos : p.pos+end]
		p.pos += end
		if p.peek(" ") {
			p.pos++
		}
		kind, ok := clang.ParseChunkKind(name)
		if !ok {
			kind = invalidChunk
		}
		c := chunk{kind: kind}
		switch kind {
		case clang.ChunkOptional:
			nested, err := p.chunks()
			if err != nil {
				return nil, err
			}
			c.nested = nested
		case clang.ChunkLeftBrace:
			c.text = "{"
			p.pos++
		case clang.ChunkRightBrace:
			c.text = "}"
			p.pos++
		default:
			c.text = p.text()
		}
		if !p.peek("}") {
			return nil, errors.Newf("unterminated %s chunk at column %d", name, start+1)
		}
		p.pos++
		if kind == clang.ChunkTypedText && s.typed == nil {
			typed := c.text
			s.typed = &typed
		}
		s.chunks = append(s.chunks, c)
	}
	return s, nil
}

// text reads chunk text up to the closing brace, keeping balanced braces.
func (p *chunkParser) text() string {
	start := p.pos
	depth := 0
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return p.s[start:p.pos]
			}
			depth--
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

var priorityPattern = regexp.MustCompile(`^ \((\d+)\)`)

var availabilities = map[string]clang.Availability{
	"(deprecated)":   clang.Deprecated,
	"(unavailable)":  clang.NotAvailable,
	"(inaccessible)": clang.NotAccessible,
}

// trailer reads the priority and the optional annotations that follow the
// chunks.
func (p *chunkParser) trailer(s *completionString) error {
	rest := p.s[p.pos:]
	m := priorityPattern.FindStringSubmatch(rest)
	if m == nil {
		return errors.Newf("missing priority after chunks: %q", rest)
	}
	prio, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return errors.Wrapf(err, "priority %q", m[1])
	}
	s.priority = uint(prio)
	rest = rest[len(m[0]):]

	for {
		rest = strings.TrimLeft(rest, " ")
		switch {
		case rest == "":
			return nil
		case strings.HasPrefix(rest, "(brief comment: "):
			brief := strings.TrimSuffix(strings.TrimPrefix(rest, "(brief comment: "), ")")
			s.brief = &brief
			return nil
		case strings.HasPrefix(rest, "(parent: '"):
			end := strings.Index(rest, "')")
			if end < 0 {
				return errors.Newf("unterminated parent context: %q", rest)
			}
			parent := rest[len("(parent: '"):end]
			s.parent = &parent
			rest = rest[end+2:]
		case strings.HasPrefix(rest, `("`):
			end := strings.Index(rest, `")`)
			if end < 0 {
				return errors.Newf("unterminated annotations: %q", rest)
			}
			s.annotations = append(s.annotations, strings.Split(rest[2:end], `", "`)...)
			rest = rest[end+2:]
		default:
			matched := false
			for text, a := range availabilities {
				if strings.HasPrefix(rest, text) {
					s.availability = a
					rest = rest[len(text):]
					matched = true
					break
				}
			}
			if !matched {
				return errors.Newf("unexpected text after priority: %q", rest)
			}
		}
	}
}

var diagnosticPattern = regexp.MustCompile(`^(.*?):(\d+):(\d+): (note|warning|error|fatal error): (.*)$`)

var severities = map[string]clang.Severity{
	"note":        clang.SeverityNote,
	"warning":     clang.SeverityWarning,
	"error":       clang.SeverityError,
	"fatal error": clang.SeverityFatal,
}

// ParseDiagnostics reads compiler diagnostics of the form
// file:line:col: severity: message. Other lines, such as source excerpts,
// are skipped.
func ParseDiagnostics(r io.Reader) ([]clang.Diagnostic, error) {
	var diags []clang.Diagnostic
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := diagnosticPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		diags = append(diags, clang.Diagnostic{
			Severity: severities[m[4]],
			Location: clang.Location{File: m[1], Line: line, Column: col},
			Message:  m[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read diagnostics")
	}
	return diags, nil
}
