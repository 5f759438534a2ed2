package astdump

// node is one object of clang's -ast-dump=json output. Declarations, types
// and comments share the shape; which fields are set depends on Kind.
type node struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Loc   *loc    `json:"loc,omitempty"`
	Range *span   `json:"range,omitempty"`
	Inner []*node `json:"inner,omitempty"`

	Name               string    `json:"name,omitempty"`
	Type               *qualType `json:"type,omitempty"`
	TagUsed            string    `json:"tagUsed,omitempty"`
	IsImplicit         bool      `json:"isImplicit,omitempty"`
	CompleteDefinition bool      `json:"completeDefinition,omitempty"`
	Variadic           bool      `json:"variadic,omitempty"`
	Decl               *declRef  `json:"decl,omitempty"`
	OwnedTagDecl       *declRef  `json:"ownedTagDecl,omitempty"`

	// Comment nodes.
	Text        string   `json:"text,omitempty"`
	RenderKind  string   `json:"renderKind,omitempty"`
	Args        []string `json:"args,omitempty"`
	Attrs       []attr   `json:"attrs,omitempty"`
	SelfClosing bool     `json:"selfClosing,omitempty"`
	Param       string   `json:"param,omitempty"`
	ParamIdx    *int     `json:"paramIdx,omitempty"`
	Direction   string   `json:"direction,omitempty"`
	Explicit    bool     `json:"explicit,omitempty"`
	Positions   []int    `json:"positions,omitempty"`
	CloseName   string   `json:"closeName,omitempty"`
}

type qualType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType,omitempty"`
}

type declRef struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
	Name string `json:"name,omitempty"`
}

type attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type span struct {
	Begin *loc `json:"begin,omitempty"`
	End   *loc `json:"end,omitempty"`
}

type loc struct {
	Offset       uint          `json:"offset,omitempty"`
	File         string        `json:"file,omitempty"`
	Line         uint          `json:"line,omitempty"`
	Col          uint          `json:"col,omitempty"`
	TokLen       uint          `json:"tokLen,omitempty"`
	IncludedFrom *includedFrom `json:"includedFrom,omitempty"`
	SpellingLoc  *loc          `json:"spellingLoc,omitempty"`
	ExpansionLoc *loc          `json:"expansionLoc,omitempty"`
}

type includedFrom struct {
	File string `json:"file"`
}

// decompressor fills in the file and line fields clang omits when they
// repeat the previously printed location.
type decompressor struct {
	file string
	line uint
}

func (d *decompressor) node(n *node) {
	d.loc(n.Loc)
	if n.Range != nil {
		d.loc(n.Range.Begin)
		d.loc(n.Range.End)
	}
	for _, child := range n.Inner {
		d.node(child)
	}
}

func (d *decompressor) loc(l *loc) {
	if l == nil {
		return
	}
	if l.SpellingLoc != nil || l.ExpansionLoc != nil {
		d.loc(l.SpellingLoc)
		d.loc(l.ExpansionLoc)
		if exp := l.ExpansionLoc; exp != nil && l.File == "" && l.Line == 0 {
			l.File, l.Line, l.Col = exp.File, exp.Line, exp.Col
		}
		return
	}
	if l.Col == 0 && l.Line == 0 && l.File == "" {
		return
	}
	if l.File == "" {
		l.File = d.file
	}
	if l.Line == 0 {
		l.Line = d.line
	}
	d.file, d.line = l.File, l.Line
}
