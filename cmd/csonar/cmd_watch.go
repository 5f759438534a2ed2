package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dhamidi/csonar/format"
	"github.com/dhamidi/csonar/workspace"
)

func newWatchCmd(opts *options) *cobra.Command {
	var system bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan the project on every change and report changed files",
		Long: `Scan the project with the tree-sitter frontend, then watch it for changes.

After every batch of changes the declaration report of each changed file is
printed. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			root, err := filepath.Abs(opts.root)
			if err != nil {
				return errors.Wrap(err, "resolve project root")
			}
			d, err := newDiscovery(opts.cfg, root)
			if err != nil {
				return err
			}
			enc, err := format.New(opts.cfg.Output.Format, os.Stdout)
			if err != nil {
				return err
			}

			ws := workspace.New(root, newParser(opts.cfg))
			if _, err := ws.ScanAll(ctx, d); err != nil {
				return err
			}
			w, err := workspace.NewWatcher(ws, d)
			if err != nil {
				return err
			}
			w.OnChange = func(paths []string) {
				reportChanges(ws, enc, paths, system || opts.cfg.Sonar.SystemHeaders)
			}
			w.Start(ctx)
			defer w.Stop()

			<-ctx.Done()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		},
	}

	cmd.Flags().BoolVar(&system, "system", false, "include entities declared in system headers")

	return cmd
}

func reportChanges(ws *workspace.Workspace, enc format.Encoder, paths []string, system bool) {
	for _, p := range paths {
		report, err := ws.Report(p, system)
		if errors.Is(err, workspace.ErrUnknownDocument) {
			log.Infof("%s removed", p)
			continue
		}
		if err != nil {
			log.Errorf("report %s: %s", p, err)
			continue
		}
		if err := enc.EncodeReport(report); err != nil {
			log.Errorf("encode %s: %s", p, err)
		}
	}
}
