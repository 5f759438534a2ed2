package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
)

// MarkdownEncoder writes human-readable Markdown.
type MarkdownEncoder struct {
	w io.Writer
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

var familyTitles = []struct {
	family string
	title  string
}{
	{"definition", "Definitions"},
	{"enum", "Enums"},
	{"struct", "Structs"},
	{"union", "Unions"},
	{"function", "Functions"},
	{"typedef", "Typedefs"},
}

func (e *MarkdownEncoder) EncodeReport(r sonar.Report) error {
	records := reportRecords(r)
	var sb strings.Builder
	for _, f := range familyTitles {
		var section []declRecord
		for _, rec := range records {
			if rec.Family == f.family {
				section = append(section, rec)
			}
		}
		if len(section) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", f.title)
		for _, rec := range section {
			sb.WriteString("- `" + rec.Name + "`")
			if rec.Value != "" {
				sb.WriteString(" = `" + rec.Value + "`")
			}
			if rec.Source != "" {
				sb.WriteString(" (via typedef `" + rec.Source + "`)")
			}
			if rec.Brief != "" {
				sb.WriteString(": " + rec.Brief)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return e.write(sb.String())
}

func (e *MarkdownEncoder) EncodeCompletions(r *completion.Results) error {
	records, err := completionRecords(r)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString("- `" + rec.Text + "`")
		if rec.Parent != "" {
			sb.WriteString(" in `" + rec.Parent + "`")
		}
		if rec.Brief != "" {
			sb.WriteString(": " + rec.Brief)
		}
		sb.WriteString("\n")
	}
	if names := contextNames(r.Context()); len(names) > 0 {
		sb.WriteString("\n**Contexts:** " + strings.Join(names, ", ") + "\n")
	}
	return e.write(sb.String())
}

func (e *MarkdownEncoder) EncodeComment(name string, doc *comment.Document) error {
	text := "### " + name + "\n\n" + comment.Markdown(doc.Children) + "\n"
	return e.write(text)
}

func (e *MarkdownEncoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}
