package treesitter

import (
	"strconv"
	"strings"

	"github.com/dhamidi/csonar/clang"
)

// ctype is a C type built from declaration specifiers and declarators.
// Keys are compositional: two types have the same key iff they are built
// from the same specifier and the same chain of derivations.
type ctype struct {
	kind     clang.TypeKind
	spelling string
	key      string

	// elem is the pointee, element or return type of derived types.
	elem   *ctype
	params []*ctype

	tu *TranslationUnit
}

var _ clang.Type = (*ctype)(nil)

func (t *ctype) Kind() clang.TypeKind { return t.kind }
func (t *ctype) Spelling() string     { return t.spelling }
func (t *ctype) Key() string          { return t.key }

// Declaration resolves record, enum and typedef types against the
// translation unit they were built in.
func (t *ctype) Declaration() clang.Entity {
	if t.tu == nil {
		return nil
	}
	var e *entity
	switch t.kind {
	case clang.TypeRecord, clang.TypeEnum:
		e = t.tu.tags[t.key]
	case clang.TypeTypedef:
		e = t.tu.typedefs[strings.TrimPrefix(t.key, "typedef:")]
	}
	if e == nil {
		return nil
	}
	return e
}

func builtinType(spelling string) *ctype {
	spelling = strings.Join(strings.Fields(spelling), " ")
	return &ctype{kind: clang.TypeBuiltin, spelling: spelling, key: "builtin:" + spelling}
}

func typedefRef(tu *TranslationUnit, name string) *ctype {
	return &ctype{kind: clang.TypeTypedef, spelling: name, key: "typedef:" + name, tu: tu}
}

// tagRef is the type of a struct, union or enum specifier. Anonymous tags are
// keyed by the byte offset of their specifier.
func tagRef(tu *TranslationUnit, keyword, name string, offset uint, loc clang.Location) *ctype {
	kind := clang.TypeRecord
	if keyword == "enum" {
		kind = clang.TypeEnum
	}
	if name == "" {
		return &ctype{
			kind:     kind,
			spelling: keyword + " (unnamed at " + loc.String() + ")",
			key:      keyword + ":@" + strconv.FormatUint(uint64(offset), 10),
			tu:       tu,
		}
	}
	return &ctype{kind: kind, spelling: keyword + " " + name, key: keyword + ":" + name, tu: tu}
}

func unexposedType(spelling string) *ctype {
	return &ctype{kind: clang.TypeUnexposed, spelling: spelling, key: "unexposed:" + spelling}
}

func qualified(t *ctype, qualifiers []string) *ctype {
	if len(qualifiers) == 0 {
		return t
	}
	q := strings.Join(qualifiers, " ")
	return &ctype{
		kind:     t.kind,
		spelling: q + " " + t.spelling,
		key:      q + "(" + t.key + ")",
		elem:     t.elem,
		params:   t.params,
		tu:       t.tu,
	}
}

func pointerTo(t *ctype) *ctype {
	spelling := t.spelling + " *"
	if t.kind == clang.TypeFunction {
		spelling = t.elem.spelling + " (*)" + paramSpelling(t.params)
	}
	return &ctype{kind: clang.TypePointer, spelling: spelling, key: "ptr(" + t.key + ")", elem: t}
}

func arrayOf(t *ctype, size string) *ctype {
	size = strings.TrimSpace(size)
	return &ctype{
		kind:     clang.TypeArray,
		spelling: t.spelling + " [" + size + "]",
		key:      "array[" + size + "](" + t.key + ")",
		elem:     t,
	}
}

func functionOf(ret *ctype, params []*ctype, variadic bool) *ctype {
	keys := make([]string, 0, len(params)+1)
	for _, p := range params {
		keys = append(keys, p.key)
	}
	spelling := paramSpelling(params)
	if variadic {
		keys = append(keys, "...")
		if len(params) == 0 {
			spelling = "(...)"
		} else {
			spelling = strings.TrimSuffix(spelling, ")") + ", ...)"
		}
	}
	return &ctype{
		kind:     clang.TypeFunction,
		spelling: ret.spelling + " " + spelling,
		key:      "fn(" + ret.key + ";" + strings.Join(keys, ",") + ")",
		elem:     ret,
		params:   params,
	}
}

func paramSpelling(params []*ctype) string {
	if len(params) == 0 {
		return "(void)"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.spelling
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
