package sonar

import (
	"slices"

	"github.com/dhamidi/csonar/clang"
)

// Report holds every declaration family found among a set of entities.
type Report struct {
	Definitions []Definition
	Enums       []Declaration
	Structs     []Declaration
	Unions      []Declaration
	Functions   []Declaration
	Typedefs    []Declaration
}

// Len returns the total number of records in r.
func (r Report) Len() int {
	return len(r.Definitions) + len(r.Enums) + len(r.Structs) +
		len(r.Unions) + len(r.Functions) + len(r.Typedefs)
}

// Scan runs every Find function over entities.
func Scan(entities []clang.Entity) Report {
	return Report{
		Definitions: slices.Collect(FindDefinitions(entities)),
		Enums:       slices.Collect(FindEnums(entities)),
		Structs:     slices.Collect(FindStructs(entities)),
		Unions:      slices.Collect(FindUnions(entities)),
		Functions:   slices.Collect(FindFunctions(entities)),
		Typedefs:    slices.Collect(FindTypedefs(entities)),
	}
}

// UserEntities returns the entities that were not declared in a system
// header.
func UserEntities(entities []clang.Entity) []clang.Entity {
	out := make([]clang.Entity, 0, len(entities))
	for _, e := range entities {
		if !e.InSystemHeader() {
			out = append(out, e)
		}
	}
	return out
}
