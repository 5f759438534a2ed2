package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/csonar/workspace"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			server := workspace.NewLSPServer(version, newParser(cfg), func(root string) (*workspace.Discovery, error) {
				return newDiscovery(cfg, root)
			})
			return server.RunStdio()
		},
	}
}
