package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
)

// JSONEncoder writes indented JSON documents.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) EncodeReport(r sonar.Report) error {
	return e.write(jsonReport{Declarations: reportRecords(r)})
}

func (e *JSONEncoder) EncodeCompletions(r *completion.Results) error {
	records, err := completionRecords(r)
	if err != nil {
		return err
	}
	out := jsonCompletions{
		Results:     records,
		Context:     r.Context(),
		Diagnostics: diagnosticRecords(r.Diagnostics()),
	}
	if c, ok := r.ContainerKind(); ok {
		out.Container = &jsonContainer{Kind: c.Kind.String(), Incomplete: c.Incomplete}
	}
	return e.write(out)
}

func (e *JSONEncoder) EncodeComment(name string, doc *comment.Document) error {
	return e.write(jsonComment{
		Name:     name,
		Brief:    comment.Brief(doc.Children),
		Children: commentNodes(doc.Children),
		HTML:     doc.HTML,
		XML:      doc.XML,
	})
}

func (e *JSONEncoder) write(v any) error {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

type jsonReport struct {
	Declarations []declRecord `json:"declarations"`
}

type jsonCompletions struct {
	Results     []completionRecord `json:"results"`
	Context     completion.Context `json:"context"`
	Container   *jsonContainer     `json:"container,omitempty"`
	Diagnostics []jsonDiagnostic   `json:"diagnostics,omitempty"`
}

type jsonContainer struct {
	Kind       string `json:"kind"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

func diagnosticRecords(diags []clang.Diagnostic) []jsonDiagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = jsonDiagnostic{
			Severity: d.Severity.String(),
			File:     d.Location.File,
			Line:     d.Location.Line,
			Column:   d.Location.Column,
			Message:  d.Message,
		}
	}
	return out
}

type jsonComment struct {
	Name     string         `json:"name"`
	Brief    string         `json:"brief,omitempty"`
	Children []*commentNode `json:"children"`
	HTML     string         `json:"html,omitempty"`
	XML      string         `json:"xml,omitempty"`
}
