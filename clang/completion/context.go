package completion

import (
	"github.com/dhamidi/csonar/clang"
)

// Context is the set of syntactic categories that are valid at a completion
// point. Each field reflects exactly one bit of the frontend's context mask.
type Context struct {
	AnyTypes             bool `json:"anyTypes,omitempty"`
	AnyValues            bool `json:"anyValues,omitempty"`
	ObjCObjectValues     bool `json:"objcObjectValues,omitempty"`
	ObjCSelectorValues   bool `json:"objcSelectorValues,omitempty"`
	ClassTypeValues      bool `json:"classTypeValues,omitempty"`
	DotMembers           bool `json:"dotMembers,omitempty"`
	ArrowMembers         bool `json:"arrowMembers,omitempty"`
	ObjCPropertyMembers  bool `json:"objcPropertyMembers,omitempty"`
	EnumTags             bool `json:"enumTags,omitempty"`
	UnionTags            bool `json:"unionTags,omitempty"`
	StructTags           bool `json:"structTags,omitempty"`
	ClassNames           bool `json:"classNames,omitempty"`
	Namespaces           bool `json:"namespaces,omitempty"`
	NestedNameSpecifiers bool `json:"nestedNameSpecifiers,omitempty"`
	ObjCInterfaces       bool `json:"objcInterfaces,omitempty"`
	ObjCProtocols        bool `json:"objcProtocols,omitempty"`
	ObjCCategories       bool `json:"objcCategories,omitempty"`
	ObjCInstanceMessages bool `json:"objcInstanceMessages,omitempty"`
	ObjCClassMessages    bool `json:"objcClassMessages,omitempty"`
	ObjCSelectorNames    bool `json:"objcSelectorNames,omitempty"`
	MacroNames           bool `json:"macroNames,omitempty"`
	NaturalLanguage      bool `json:"naturalLanguage,omitempty"`
	IncludedFiles        bool `json:"includedFiles,omitempty"`
}

// DecodeContext decodes a context mask. Bits outside the known set are ignored.
func DecodeContext(mask uint64) Context {
	has := func(bit uint64) bool { return mask&bit != 0 }
	return Context{
		AnyTypes:             has(clang.ContextAnyType),
		AnyValues:            has(clang.ContextAnyValue),
		ObjCObjectValues:     has(clang.ContextObjCObjectValue),
		ObjCSelectorValues:   has(clang.ContextObjCSelectorValue),
		ClassTypeValues:      has(clang.ContextCXXClassTypeValue),
		DotMembers:           has(clang.ContextDotMemberAccess),
		ArrowMembers:         has(clang.ContextArrowMemberAccess),
		ObjCPropertyMembers:  has(clang.ContextObjCPropertyAccess),
		EnumTags:             has(clang.ContextEnumTag),
		UnionTags:            has(clang.ContextUnionTag),
		StructTags:           has(clang.ContextStructTag),
		ClassNames:           has(clang.ContextClassTag),
		Namespaces:           has(clang.ContextNamespace),
		NestedNameSpecifiers: has(clang.ContextNestedNameSpecifier),
		ObjCInterfaces:       has(clang.ContextObjCInterface),
		ObjCProtocols:        has(clang.ContextObjCProtocol),
		ObjCCategories:       has(clang.ContextObjCCategory),
		ObjCInstanceMessages: has(clang.ContextObjCInstanceMessage),
		ObjCClassMessages:    has(clang.ContextObjCClassMessage),
		ObjCSelectorNames:    has(clang.ContextObjCSelectorName),
		MacroNames:           has(clang.ContextMacroName),
		NaturalLanguage:      has(clang.ContextNaturalLanguage),
		IncludedFiles:        has(clang.ContextIncludedFile),
	}
}
