package main

import (
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/sonar"
	"github.com/dhamidi/csonar/format"
)

func newCommentCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <file> [name...]",
		Short: "Print the parsed doc comments of a file's declarations",
		Long: `Print the parsed documentation comments of the declarations in a C file.

Top-level declarations, struct and union fields, and enumerators are
considered. With names, only declarations with those names are printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFrontend(opts.cfg)
			if err != nil {
				return err
			}
			entities, err := f.entities(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc, err := format.New(opts.cfg.Output.Format, os.Stdout)
			if err != nil {
				return err
			}
			return printComments(enc, sonar.UserEntities(entities), args[1:])
		},
	}

	return cmd
}

func printComments(enc format.Encoder, entities []clang.Entity, names []string) error {
	for _, e := range documented(entities) {
		name, _ := e.Name()
		if len(names) > 0 && !slices.Contains(names, name) {
			continue
		}
		doc, err := comment.ParseEntity(e)
		if err != nil {
			return errors.Wrapf(err, "comment of %s", name)
		}
		if err := enc.EncodeComment(name, doc); err != nil {
			return err
		}
	}
	return nil
}

// documented lists the named entities carrying a comment, with record
// members after their record.
func documented(entities []clang.Entity) []clang.Entity {
	var out []clang.Entity
	var visit func(es []clang.Entity)
	visit = func(es []clang.Entity) {
		for _, e := range es {
			if _, ok := e.Name(); ok && e.Comment() != nil && e.Kind() != clang.EntityParmDecl {
				out = append(out, e)
			}
			if e.Kind().IsTag() {
				visit(e.Children())
			}
		}
	}
	visit(entities)
	return out
}
