package clang

// EntityKind identifies what an entity declares or references.
type EntityKind int

const (
	EntityUnexposed EntityKind = iota
	EntityStructDecl
	EntityUnionDecl
	EntityClassDecl
	EntityEnumDecl
	EntityFieldDecl
	EntityEnumConstantDecl
	EntityFunctionDecl
	EntityVarDecl
	EntityParmDecl
	EntityTypedefDecl
	EntityMethodDecl
	EntityNamespace
	EntityConstructor
	EntityDestructor
	EntityFunctionTemplate
	EntityClassTemplate
	EntityTemplateTypeParameter
	EntityMacroDefinition
	EntityMacroExpansion
	EntityInclusionDirective
	EntityTranslationUnit
	EntityNotImplemented
)

var entityKindNames = map[EntityKind]string{
	EntityUnexposed:             "UnexposedDecl",
	EntityStructDecl:            "StructDecl",
	EntityUnionDecl:             "UnionDecl",
	EntityClassDecl:             "ClassDecl",
	EntityEnumDecl:              "EnumDecl",
	EntityFieldDecl:             "FieldDecl",
	EntityEnumConstantDecl:      "EnumConstantDecl",
	EntityFunctionDecl:          "FunctionDecl",
	EntityVarDecl:               "VarDecl",
	EntityParmDecl:              "ParmDecl",
	EntityTypedefDecl:           "TypedefDecl",
	EntityMethodDecl:            "CXXMethod",
	EntityNamespace:             "Namespace",
	EntityConstructor:           "CXXConstructor",
	EntityDestructor:            "CXXDestructor",
	EntityFunctionTemplate:      "FunctionTemplate",
	EntityClassTemplate:         "ClassTemplate",
	EntityTemplateTypeParameter: "TemplateTypeParameter",
	EntityMacroDefinition:       "macro definition",
	EntityMacroExpansion:        "macro expansion",
	EntityInclusionDirective:    "inclusion directive",
	EntityTranslationUnit:       "TranslationUnit",
	EntityNotImplemented:        "NotImplemented",
}

var entityKindsByName = func() map[string]EntityKind {
	m := make(map[string]EntityKind, len(entityKindNames))
	for k, name := range entityKindNames {
		m[name] = k
	}
	// clang's JSON dumper and libclang disagree on a few spellings.
	m["MacroDefinition"] = EntityMacroDefinition
	m["ParmVarDecl"] = EntityParmDecl
	m["CXXMethodDecl"] = EntityMethodDecl
	m["NamespaceDecl"] = EntityNamespace
	m["CXXConstructorDecl"] = EntityConstructor
	m["CXXDestructorDecl"] = EntityDestructor
	m["FunctionTemplateDecl"] = EntityFunctionTemplate
	m["ClassTemplateDecl"] = EntityClassTemplate
	m["TemplateTypeParmDecl"] = EntityTemplateTypeParameter
	m["TranslationUnitDecl"] = EntityTranslationUnit
	return m
}()

func (k EntityKind) String() string {
	if name, ok := entityKindNames[k]; ok {
		return name
	}
	return "UnexposedDecl"
}

// IsTag reports whether k declares a struct, union, class or enum.
func (k EntityKind) IsTag() bool {
	switch k {
	case EntityStructDecl, EntityUnionDecl, EntityClassDecl, EntityEnumDecl:
		return true
	}
	return false
}

// ParseEntityKind maps a libclang or clang JSON kind spelling to an EntityKind.
func ParseEntityKind(s string) (EntityKind, bool) {
	k, ok := entityKindsByName[s]
	return k, ok
}

// TypeKind classifies a Type.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeUnexposed
	TypeBuiltin
	TypePointer
	TypeArray
	TypeFunction
	TypeRecord
	TypeEnum
	TypeTypedef
	TypeElaborated
)

func (k TypeKind) String() string {
	switch k {
	case TypeUnexposed:
		return "Unexposed"
	case TypeBuiltin:
		return "Builtin"
	case TypePointer:
		return "Pointer"
	case TypeArray:
		return "Array"
	case TypeFunction:
		return "Function"
	case TypeRecord:
		return "Record"
	case TypeEnum:
		return "Enum"
	case TypeTypedef:
		return "Typedef"
	case TypeElaborated:
		return "Elaborated"
	default:
		return "Invalid"
	}
}

// TokenKind classifies a Token.
type TokenKind int

const (
	TokenPunctuation TokenKind = iota
	TokenKeyword
	TokenIdentifier
	TokenLiteral
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenPunctuation:
		return "Punctuation"
	case TokenKeyword:
		return "Keyword"
	case TokenIdentifier:
		return "Identifier"
	case TokenLiteral:
		return "Literal"
	case TokenComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// CommentKind is the kind tag of a raw comment node.
type CommentKind int

const (
	CommentNull CommentKind = iota
	CommentText
	CommentInlineCommand
	CommentHTMLStartTag
	CommentHTMLEndTag
	CommentParagraph
	CommentBlockCommand
	CommentParamCommand
	CommentTParamCommand
	CommentVerbatimBlockCommand
	CommentVerbatimBlockLine
	CommentVerbatimLine
	CommentFull
)

func (k CommentKind) String() string {
	switch k {
	case CommentNull:
		return "Null"
	case CommentText:
		return "Text"
	case CommentInlineCommand:
		return "InlineCommand"
	case CommentHTMLStartTag:
		return "HTMLStartTag"
	case CommentHTMLEndTag:
		return "HTMLEndTag"
	case CommentParagraph:
		return "Paragraph"
	case CommentBlockCommand:
		return "BlockCommand"
	case CommentParamCommand:
		return "ParamCommand"
	case CommentTParamCommand:
		return "TParamCommand"
	case CommentVerbatimBlockCommand:
		return "VerbatimBlockCommand"
	case CommentVerbatimBlockLine:
		return "VerbatimBlockLine"
	case CommentVerbatimLine:
		return "VerbatimLine"
	case CommentFull:
		return "FullComment"
	default:
		return "Unknown"
	}
}

// RenderKind is how an inline command asks its argument to be rendered.
type RenderKind int

const (
	RenderNormal RenderKind = iota
	RenderBold
	RenderMonospaced
	RenderEmphasized
	RenderAnchor
)

// Direction is the data-flow direction of a documented parameter.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionInOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "in,out"
	default:
		return "unknown"
	}
}

// ChunkKind is the kind tag of one completion string chunk.
type ChunkKind int

const (
	ChunkOptional ChunkKind = iota
	ChunkTypedText
	ChunkText
	ChunkPlaceholder
	ChunkInformative
	ChunkCurrentParameter
	ChunkLeftParen
	ChunkRightParen
	ChunkLeftBracket
	ChunkRightBracket
	ChunkLeftBrace
	ChunkRightBrace
	ChunkLeftAngle
	ChunkRightAngle
	ChunkComma
	ChunkResultType
	ChunkColon
	ChunkSemiColon
	ChunkEqual
	ChunkHorizontalSpace
	ChunkVerticalSpace
)

var chunkKindNames = [...]string{
	ChunkOptional:         "Optional",
	ChunkTypedText:        "TypedText",
	ChunkText:             "Text",
	ChunkPlaceholder:      "Placeholder",
	ChunkInformative:      "Informative",
	ChunkCurrentParameter: "CurrentParameter",
	ChunkLeftParen:        "LeftParen",
	ChunkRightParen:       "RightParen",
	ChunkLeftBracket:      "LeftBracket",
	ChunkRightBracket:     "RightBracket",
	ChunkLeftBrace:        "LeftBrace",
	ChunkRightBrace:       "RightBrace",
	ChunkLeftAngle:        "LeftAngle",
	ChunkRightAngle:       "RightAngle",
	ChunkComma:            "Comma",
	ChunkResultType:       "ResultType",
	ChunkColon:            "Colon",
	ChunkSemiColon:        "SemiColon",
	ChunkEqual:            "Equal",
	ChunkHorizontalSpace:  "HorizontalSpace",
	ChunkVerticalSpace:    "VerticalSpace",
}

func (k ChunkKind) String() string {
	if k >= 0 && int(k) < len(chunkKindNames) {
		return chunkKindNames[k]
	}
	return "Unknown"
}

// Valid reports whether k is one of the chunk kinds defined above.
func (k ChunkKind) Valid() bool {
	return k >= 0 && int(k) < len(chunkKindNames)
}

// ParseChunkKind maps a c-index-test chunk spelling to a ChunkKind.
func ParseChunkKind(s string) (ChunkKind, bool) {
	for i, name := range chunkKindNames {
		if name == s {
			return ChunkKind(i), true
		}
	}
	return 0, false
}

// Availability says whether a completion proposal may be used.
type Availability int

const (
	Available Availability = iota
	Deprecated
	NotAvailable
	NotAccessible
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Deprecated:
		return "deprecated"
	case NotAvailable:
		return "unavailable"
	case NotAccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}
