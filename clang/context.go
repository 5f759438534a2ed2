package clang

// Completion context bits, as reported by CompletionResults.ContextMask.
const (
	ContextAnyType uint64 = 1 << iota
	ContextAnyValue
	ContextObjCObjectValue
	ContextObjCSelectorValue
	ContextCXXClassTypeValue
	ContextDotMemberAccess
	ContextArrowMemberAccess
	ContextObjCPropertyAccess
	ContextEnumTag
	ContextUnionTag
	ContextStructTag
	ContextClassTag
	ContextNamespace
	ContextNestedNameSpecifier
	ContextObjCInterface
	ContextObjCProtocol
	ContextObjCCategory
	ContextObjCInstanceMessage
	ContextObjCClassMessage
	ContextObjCSelectorName
	ContextMacroName
	ContextNaturalLanguage
	ContextIncludedFile

	// ContextUnknown is every bit above set.
	ContextUnknown = ContextIncludedFile<<1 - 1
)

// ContextNames maps each context bit to the spelling c-index-test prints.
var ContextNames = []struct {
	Bit  uint64
	Name string
}{
	{ContextAnyType, "Any type"},
	{ContextAnyValue, "Any value"},
	{ContextObjCObjectValue, "Objective-C object value"},
	{ContextObjCSelectorValue, "Objective-C selector value"},
	{ContextCXXClassTypeValue, "C++ class type value"},
	{ContextDotMemberAccess, "Dot member access"},
	{ContextArrowMemberAccess, "Arrow member access"},
	{ContextObjCPropertyAccess, "Objective-C property access"},
	{ContextEnumTag, "Enum tag"},
	{ContextUnionTag, "Union tag"},
	{ContextStructTag, "Struct tag"},
	{ContextClassTag, "Class name"},
	{ContextNamespace, "Namespace or namespace alias"},
	{ContextNestedNameSpecifier, "Nested name specifier"},
	{ContextObjCInterface, "Objective-C interface"},
	{ContextObjCProtocol, "Objective-C protocol"},
	{ContextObjCCategory, "Objective-C category"},
	{ContextObjCInstanceMessage, "Objective-C instance method"},
	{ContextObjCClassMessage, "Objective-C class method"},
	{ContextObjCSelectorName, "Objective-C selector name"},
	{ContextMacroName, "Macro name"},
	{ContextNaturalLanguage, "Natural language"},
	{ContextIncludedFile, "Included file"},
}
