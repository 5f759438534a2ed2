package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/sonar"
	"github.com/dhamidi/csonar/format"
)

func newSonarCmd(opts *options) *cobra.Command {
	var system bool

	cmd := &cobra.Command{
		Use:   "sonar [file...]",
		Short: "Report macro constants, tags, functions and typedefs",
		Long: `Report the declarations of C files: macros with numeric values, enums,
structs, unions, functions and typedefs.

Without files, every file under the project root matching sonar.include
and not sonar.exclude is scanned. Entities from system headers are left
out unless --system is given or sonar.system_headers is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				root, err := filepath.Abs(opts.root)
				if err != nil {
					return errors.Wrap(err, "resolve project root")
				}
				d, err := newDiscovery(opts.cfg, root)
				if err != nil {
					return err
				}
				if files, err = d.Discover(); err != nil {
					return errors.Wrapf(err, "discover files under %s", root)
				}
			}

			f, err := newFrontend(opts.cfg)
			if err != nil {
				return err
			}
			var entities []clang.Entity
			for _, file := range files {
				es, err := f.entities(cmd.Context(), file)
				if err != nil {
					return err
				}
				entities = append(entities, es...)
			}
			if !system && !opts.cfg.Sonar.SystemHeaders {
				entities = sonar.UserEntities(entities)
			}

			enc, err := format.New(opts.cfg.Output.Format, os.Stdout)
			if err != nil {
				return err
			}
			return enc.EncodeReport(sonar.Scan(entities))
		},
	}

	cmd.Flags().BoolVar(&system, "system", false, "include entities declared in system headers")

	return cmd
}
