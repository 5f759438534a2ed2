// Package format encodes csonar results: declaration reports, completion
// proposals and documentation comments.
package format

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
)

// Encoder writes one output format.
type Encoder interface {
	EncodeReport(r sonar.Report) error
	EncodeCompletions(r *completion.Results) error
	// EncodeComment writes the documentation of the entity called name.
	EncodeComment(name string, doc *comment.Document) error
}

// Names lists the formats New accepts.
var Names = []string{"json", "line", "markdown"}

// New returns the encoder called name writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "markdown":
		return NewMarkdownEncoder(w), nil
	}
	return nil, errors.Newf("unknown output format %q", name)
}
