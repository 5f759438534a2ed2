package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
)

// LineEncoder writes one tab-separated record per line. Empty fields are
// written as "-".
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) EncodeReport(r sonar.Report) error {
	var sb strings.Builder
	for _, rec := range reportRecords(r) {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Family,
			rec.Name,
			rec.Kind,
			locationStr(rec.File, rec.Line, rec.Column),
			dash(rec.Source),
			dash(rec.Value),
		)
	}
	return e.write(sb.String())
}

func (e *LineEncoder) EncodeCompletions(r *completion.Results) error {
	records, err := completionRecords(r)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&sb, "%s\t%s\t%d\t%s\t%s\n",
			rec.Kind,
			rec.Label,
			rec.Priority,
			rec.Text,
			rec.Availability,
		)
	}
	for _, name := range contextNames(r.Context()) {
		fmt.Fprintf(&sb, "context\t%s\n", name)
	}
	if c, ok := r.ContainerKind(); ok {
		state := "complete"
		if c.Incomplete {
			state = "incomplete"
		}
		fmt.Fprintf(&sb, "container\t%s\t%s\n", c.Kind, state)
	}
	writeDiagnostics(&sb, r.Diagnostics())
	return e.write(sb.String())
}

func (e *LineEncoder) EncodeComment(name string, doc *comment.Document) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "comment\t%s\t%s\n", name, dash(comment.Brief(doc.Children)))
	for _, n := range doc.Children {
		switch n := n.(type) {
		case comment.ParamCommand:
			index, direction := "-", "-"
			if n.Index != nil {
				index = strconv.Itoa(*n.Index)
			}
			if n.Direction != nil {
				direction = n.Direction.String()
			}
			fmt.Fprintf(&sb, "param\t%s\t%s\t%s\t%s\n", n.Name, index, direction, dash(inlineText(n.Children)))
		case comment.TParamCommand:
			fmt.Fprintf(&sb, "tparam\t%s\t%s\n", n.Name, dash(inlineText(n.Children)))
		case comment.BlockCommand:
			fmt.Fprintf(&sb, "block\t%s\t%s\n", n.Name, dash(inlineText(n.Children)))
		}
	}
	return e.write(sb.String())
}

func (e *LineEncoder) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func writeDiagnostics(sb *strings.Builder, diags []clang.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(sb, "diagnostic\t%s\t%s\t%s\n",
			d.Severity,
			locationStr(d.Location.File, d.Location.Line, d.Location.Column),
			d.Message,
		)
	}
}

func inlineText(nodes []comment.Node) string {
	return comment.PlainText([]comment.Node{comment.Paragraph{Children: nodes}})
}

func locationStr(file string, line, column int) string {
	if file == "" {
		return "-"
	}
	return clang.Location{File: file, Line: line, Column: column}.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
