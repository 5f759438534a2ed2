// Package sonar discovers and classifies the declarations found among a
// sequence of sibling entities, usually the children of a translation unit.
//
// Every Find function is a lazy filter: results follow input order, nothing
// is deduplicated and no state survives between iterations.
package sonar

import (
	"iter"

	"github.com/dhamidi/csonar/clang"
)

// Declaration is an enum, struct, union, function or typedef declaration.
//
// Source is set only when Entity is an anonymous tag that gets its name from
// a typedef; Source is then that typedef, so Source.Name() equals Name while
// Entity.Name() reports no name.
type Declaration struct {
	Name   string
	Entity clang.Entity
	Source clang.Entity
}

// Definition is a macro definition whose body is a numeric literal.
type Definition struct {
	Name   string
	Entity clang.Entity
	Value  Value
}

// FindDefinitions yields the macro definitions whose body is a possibly
// negated integer or floating-point literal. Builtin macros and macros with
// an empty body are skipped.
func FindDefinitions(entities []clang.Entity) iter.Seq[Definition] {
	return func(yield func(Definition) bool) {
		for _, e := range entities {
			if e.Kind() != clang.EntityMacroDefinition || e.IsBuiltinMacro() {
				continue
			}
			tokens := e.Tokens()
			if len(tokens) < 2 {
				continue
			}
			value, ok := parseValue(tokens[1:])
			if !ok {
				continue
			}
			name, ok := e.Name()
			if !ok {
				name = tokens[0].Spelling()
			}
			if !yield(Definition{Name: name, Entity: e, Value: value}) {
				return
			}
		}
	}
}

// FindEnums yields enum declarations, resolving anonymous enums through
// their naming typedef.
func FindEnums(entities []clang.Entity) iter.Seq[Declaration] {
	return findTags(entities, clang.EntityEnumDecl)
}

// FindStructs yields struct declarations, resolving anonymous structs
// through their naming typedef.
func FindStructs(entities []clang.Entity) iter.Seq[Declaration] {
	return findTags(entities, clang.EntityStructDecl)
}

// FindUnions yields union declarations, resolving anonymous unions through
// their naming typedef.
func FindUnions(entities []clang.Entity) iter.Seq[Declaration] {
	return findTags(entities, clang.EntityUnionDecl)
}

// FindFunctions yields every function declaration. Redeclarations each
// produce their own record.
func FindFunctions(entities []clang.Entity) iter.Seq[Declaration] {
	return findKind(entities, clang.EntityFunctionDecl)
}

// FindTypedefs yields every typedef declaration, including typedefs of
// other typedefs.
func FindTypedefs(entities []clang.Entity) iter.Seq[Declaration] {
	return findKind(entities, clang.EntityTypedefDecl)
}

func findKind(entities []clang.Entity, kind clang.EntityKind) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for _, e := range entities {
			if e.Kind() != kind {
				continue
			}
			name, ok := e.Name()
			if !ok {
				continue
			}
			if !yield(Declaration{Name: name, Entity: e}) {
				return
			}
		}
	}
}

func findTags(entities []clang.Entity, kind clang.EntityKind) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		var typedefs typedefIndex
		for _, e := range entities {
			if e.Kind() != kind {
				continue
			}
			decl := Declaration{Entity: e}
			if name, ok := e.Name(); ok {
				decl.Name = name
			} else {
				if typedefs == nil {
					typedefs = indexTypedefs(entities)
				}
				source, ok := typedefs.lookup(e.Type())
				if !ok {
					continue
				}
				decl.Name, _ = source.Name()
				decl.Source = source
			}
			if !yield(decl) {
				return
			}
		}
	}
}

// typedefIndex maps the identity key of a typedef's underlying type to the
// first typedef in source order that aliases it.
type typedefIndex map[string]clang.Entity

func indexTypedefs(entities []clang.Entity) typedefIndex {
	index := make(typedefIndex)
	for _, e := range entities {
		if e.Kind() != clang.EntityTypedefDecl {
			continue
		}
		if _, ok := e.Name(); !ok {
			continue
		}
		underlying := e.TypedefUnderlyingType()
		if underlying == nil {
			continue
		}
		key := underlying.Key()
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = e
		}
	}
	return index
}

func (idx typedefIndex) lookup(t clang.Type) (clang.Entity, bool) {
	if t == nil || t.Key() == "" {
		return nil, false
	}
	e, ok := idx[t.Key()]
	return e, ok
}
