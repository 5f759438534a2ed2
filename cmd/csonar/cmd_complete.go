package main

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/csonar/format"
)

func newCompleteCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <file> <line> <column>",
		Short: "List code-completion proposals at a position",
		Long: `List code-completion proposals at a 1-based line and byte column.

The treesitter frontend proposes declarations of the file itself; the
astdump frontend runs c-index-test with the configured compiler arguments.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "line %q", args[1])
			}
			column, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.Wrapf(err, "column %q", args[2])
			}
			if line < 1 || column < 1 {
				return errors.Newf("position %d:%d: line and column start at 1", line, column)
			}

			f, err := newFrontend(opts.cfg)
			if err != nil {
				return err
			}
			results, err := f.complete(cmd.Context(), args[0], line, column)
			if err != nil {
				return err
			}
			enc, err := format.New(opts.cfg.Output.Format, os.Stdout)
			if err != nil {
				return err
			}
			return enc.EncodeCompletions(results)
		},
	}

	return cmd
}
