package format

import (
	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
)

// declRecord is one sonar record flattened for encoding.
type declRecord struct {
	Family string `json:"family"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Source string `json:"source,omitempty"`
	Value  string `json:"value,omitempty"`
	Brief  string `json:"brief,omitempty"`
}

func reportRecords(r sonar.Report) []declRecord {
	records := make([]declRecord, 0, r.Len())
	for _, d := range r.Definitions {
		rec := entityRecord("definition", d.Name, d.Entity)
		rec.Value = d.Value.String()
		records = append(records, rec)
	}
	families := []struct {
		name  string
		decls []sonar.Declaration
	}{
		{"enum", r.Enums},
		{"struct", r.Structs},
		{"union", r.Unions},
		{"function", r.Functions},
		{"typedef", r.Typedefs},
	}
	for _, f := range families {
		for _, d := range f.decls {
			rec := entityRecord(f.name, d.Name, d.Entity)
			if d.Source != nil {
				rec.Source, _ = d.Source.Name()
			}
			records = append(records, rec)
		}
	}
	return records
}

func entityRecord(family, name string, e clang.Entity) declRecord {
	loc := e.Location()
	rec := declRecord{
		Family: family,
		Name:   name,
		Kind:   e.Kind().String(),
		File:   loc.File,
		Line:   loc.Line,
		Column: loc.Column,
	}
	if nodes, err := comment.Parse(e.Comment()); err == nil {
		rec.Brief = comment.Brief(nodes)
	}
	return rec
}

// completionRecord is one completion proposal flattened for encoding.
type completionRecord struct {
	Kind         string        `json:"kind"`
	Label        string        `json:"label"`
	Text         string        `json:"text"`
	Priority     uint          `json:"priority"`
	Availability string        `json:"availability"`
	Parent       string        `json:"parent,omitempty"`
	Brief        string        `json:"brief,omitempty"`
	Annotations  []string      `json:"annotations,omitempty"`
	Chunks       []chunkRecord `json:"chunks"`
}

type chunkRecord struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text,omitempty"`
	Optional []chunkRecord `json:"optional,omitempty"`
}

func completionRecords(r *completion.Results) ([]completionRecord, error) {
	records := make([]completionRecord, 0, r.Len())
	for _, res := range r.All() {
		s := res.String
		chunks, err := s.Chunks()
		if err != nil {
			return nil, err
		}
		text, err := s.Render()
		if err != nil {
			return nil, err
		}
		rec := completionRecord{
			Kind:         res.Kind.String(),
			Label:        s.Label(),
			Text:         text,
			Priority:     s.Priority(),
			Availability: s.Availability().String(),
			Annotations:  s.Annotations(),
		}
		rec.Parent, _ = s.ParentName()
		rec.Brief, _ = s.BriefComment()
		if rec.Chunks, err = chunkRecords(chunks); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func chunkRecords(chunks []completion.Chunk) ([]chunkRecord, error) {
	out := make([]chunkRecord, 0, len(chunks))
	for _, c := range chunks {
		rec := chunkRecord{Kind: c.Kind.String(), Text: c.Text}
		if c.Optional != nil {
			nested, err := c.Optional.Chunks()
			if err != nil {
				return nil, err
			}
			if rec.Optional, err = chunkRecords(nested); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// contextNames lists the set flags of c by their libclang spelling.
func contextNames(c completion.Context) []string {
	flags := []bool{
		c.AnyTypes, c.AnyValues, c.ObjCObjectValues, c.ObjCSelectorValues,
		c.ClassTypeValues, c.DotMembers, c.ArrowMembers, c.ObjCPropertyMembers,
		c.EnumTags, c.UnionTags, c.StructTags, c.ClassNames, c.Namespaces,
		c.NestedNameSpecifiers, c.ObjCInterfaces, c.ObjCProtocols,
		c.ObjCCategories, c.ObjCInstanceMessages, c.ObjCClassMessages,
		c.ObjCSelectorNames, c.MacroNames, c.NaturalLanguage, c.IncludedFiles,
	}
	var names []string
	for i, on := range flags {
		if on {
			names = append(names, clang.ContextNames[i].Name)
		}
	}
	return names
}
