// Package comment decodes a frontend's raw documentation-comment tree into
// a typed, immutable node tree.
package comment

// Node is the interface implemented by all comment nodes.
type Node interface {
	node()
}

// Document is a parsed documentation comment together with the frontend's
// HTML and XML renderings of the same comment.
type Document struct {
	Children []Node
	HTML     string
	XML      string
}

// Text represents literal prose. Whitespace is kept as the frontend reported it.
type Text struct {
	Text string
}

func (Text) node() {}

// Paragraph represents a run of inline content.
type Paragraph struct {
	Children []Node
}

func (Paragraph) node() {}

// BlockCommand represents a block command such as \brief or \return.
type BlockCommand struct {
	Name     string
	Args     []string
	Children []Node
}

func (BlockCommand) node() {}

// Style is the rendering requested by an inline command.
type Style int

const (
	Bold Style = iota
	Monospace
	Emphasized
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Monospace:
		return "monospace"
	case Emphasized:
		return "emphasized"
	default:
		return "unknown"
	}
}

// InlineCommand represents an inline command such as \c or \b.
type InlineCommand struct {
	Name  string
	Args  []string
	Style *Style // nil for normal rendering
}

func (InlineCommand) node() {}

// Direction is the data-flow direction of a parameter.
type Direction int

const (
	In Direction = iota
	Out
	InOut
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "in,out"
	default:
		return "unknown"
	}
}

// ParamCommand represents a \param command.
type ParamCommand struct {
	Index     *int       // nil when the parameter was not resolved
	Name      string
	Direction *Direction // nil unless written explicitly
	Children  []Node
}

func (ParamCommand) node() {}

// Position locates a template parameter: Depth levels of template nesting,
// Index within the innermost level.
type Position struct {
	Depth int
	Index int
}

// TParamCommand represents a \tparam command.
type TParamCommand struct {
	Position *Position // nil when the template parameter was not resolved
	Name     string
	Children []Node
}

func (TParamCommand) node() {}

// VerbatimCommand represents a verbatim block such as \code ... \endcode.
type VerbatimCommand struct {
	Lines []string
}

func (VerbatimCommand) node() {}

// VerbatimLine represents a single-line verbatim command such as \fn.
type VerbatimLine struct {
	Text string
}

func (VerbatimLine) node() {}

// Attribute represents an HTML attribute.
type Attribute struct {
	Name  string
	Value string
}

// HTMLStartTag represents the start of an HTML element.
type HTMLStartTag struct {
	Name        string
	Attributes  []Attribute
	SelfClosing bool
}

func (HTMLStartTag) node() {}

// HTMLEndTag represents the end of an HTML element.
type HTMLEndTag struct {
	Name string
}

func (HTMLEndTag) node() {}
