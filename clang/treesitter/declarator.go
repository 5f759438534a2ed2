package treesitter

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/csonar/clang"
)

// declarator is the result of applying a declarator to a base type.
type declarator struct {
	name     string
	location clang.Location
	typ      *ctype
	// params and variadic describe the innermost function declarator, which
	// declares the parameters of the named function.
	params   []param
	variadic bool
}

type param struct {
	name     string
	typ      *ctype
	location clang.Location
}

// baseType builds the type named by the specifier and qualifiers of a
// declaration-like node. A missing specifier is implicit int.
func (b *builder) baseType(n *sitter.Node) *ctype {
	var t *ctype
	spec := n.ChildByFieldName("type")
	switch {
	case spec == nil:
		t = builtinType("int")
	case spec.Kind() == "primitive_type", spec.Kind() == "sized_type_specifier":
		t = builtinType(b.text(spec))
	case spec.Kind() == "type_identifier":
		t = typedefRef(b.tu, b.text(spec))
	case spec.Kind() == "struct_specifier", spec.Kind() == "union_specifier", spec.Kind() == "enum_specifier":
		t = b.tagType(spec)
	default:
		t = unexposedType(b.text(spec))
	}

	var qualifiers []string
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.Kind() == "type_qualifier" {
			qualifiers = append(qualifiers, b.text(child))
		}
	}
	return qualified(t, qualifiers)
}

func (b *builder) tagType(spec *sitter.Node) *ctype {
	keyword := strings.TrimSuffix(spec.Kind(), "_specifier")
	return tagRef(b.tu, keyword, b.text(spec.ChildByFieldName("name")), spec.StartByte(), b.location(spec))
}

// declarator applies d to t, outermost derivation first, until it reaches
// the declared name. Abstract declarators leave the name empty.
func (b *builder) declarator(d *sitter.Node, t *ctype) declarator {
	var r declarator
	for d != nil {
		switch d.Kind() {
		case "identifier", "type_identifier", "field_identifier", "primitive_type":
			r.name = b.text(d)
			r.location = b.location(d)
			d = nil
		case "pointer_declarator", "abstract_pointer_declarator":
			t = pointerTo(t)
			d = d.ChildByFieldName("declarator")
		case "array_declarator", "abstract_array_declarator":
			t = arrayOf(t, b.text(d.ChildByFieldName("size")))
			d = d.ChildByFieldName("declarator")
		case "function_declarator", "abstract_function_declarator":
			params, variadic := b.parameters(d.ChildByFieldName("parameters"))
			types := make([]*ctype, len(params))
			for i, p := range params {
				types[i] = p.typ
			}
			t = functionOf(t, types, variadic)
			r.params, r.variadic = params, variadic
			d = d.ChildByFieldName("declarator")
		case "init_declarator":
			d = d.ChildByFieldName("declarator")
		case "parenthesized_declarator", "abstract_parenthesized_declarator", "attributed_declarator":
			d = innerDeclarator(d)
		default:
			d = nil
		}
	}
	r.typ = t
	return r
}

// innerDeclarator returns the declarator wrapped by parentheses or
// attributes.
func innerDeclarator(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch kind := child.Kind(); {
		case kind == "identifier", kind == "type_identifier", kind == "field_identifier",
			strings.HasSuffix(kind, "_declarator"):
			return child
		}
	}
	return nil
}

// parameters reads a parameter list. A lone void parameter declares none.
func (b *builder) parameters(list *sitter.Node) ([]param, bool) {
	if list == nil {
		return nil, false
	}
	var params []param
	variadic := false
	for i := uint(0); i < list.ChildCount(); i++ {
		child := list.Child(i)
		switch child.Kind() {
		case "parameter_declaration":
			base := b.baseType(child)
			d := child.ChildByFieldName("declarator")
			if d == nil {
				params = append(params, param{typ: base, location: b.location(child)})
				continue
			}
			r := b.declarator(d, base)
			loc := r.location
			if r.name == "" {
				loc = b.location(child)
			}
			params = append(params, param{name: r.name, typ: r.typ, location: loc})
		case "variadic_parameter", "...":
			variadic = true
		}
	}
	if len(params) == 1 && params[0].name == "" && params[0].typ.key == "builtin:void" {
		params = nil
	}
	return params, variadic
}
