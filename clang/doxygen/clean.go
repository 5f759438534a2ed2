package doxygen

import (
	"strings"
)

// IsDocComment reports whether raw is a documentation comment: /** */,
// /*! */, /// or //!.
func IsDocComment(raw string) bool {
	s := strings.TrimLeft(raw, " \t")
	switch {
	case strings.HasPrefix(s, "/**/"):
		return false
	case strings.HasPrefix(s, "/**"), strings.HasPrefix(s, "/*!"):
		return true
	case strings.HasPrefix(s, "////"):
		return false
	case strings.HasPrefix(s, "///"), strings.HasPrefix(s, "//!"):
		return true
	}
	return false
}

// IsTrailing reports whether raw documents the declaration before it
// (/**<, ///<).
func IsTrailing(raw string) bool {
	s := strings.TrimLeft(raw, " \t")
	return len(s) > 3 && s[3] == '<' && IsDocComment(s)
}

// clean strips comment delimiters and line decorations, returning the
// comment's text with one entry per source line. Text without comment
// delimiters is returned as is.
func clean(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))

	inBlock := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case !inBlock && (strings.HasPrefix(trimmed, "/**") || strings.HasPrefix(trimmed, "/*!")):
			inBlock = true
			line = strings.TrimPrefix(trimmed[3:], "<")
		case !inBlock && (strings.HasPrefix(trimmed, "///") || strings.HasPrefix(trimmed, "//!")):
			out = append(out, strings.TrimPrefix(trimmed[3:], "<"))
			continue
		case inBlock && i > 0:
			if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/") {
				line = trimmed[1:]
			}
		}
		if inBlock {
			if end := strings.LastIndex(line, "*/"); end >= 0 {
				line = line[:end]
				inBlock = false
			}
		}
		out = append(out, line)
	}
	return out
}
