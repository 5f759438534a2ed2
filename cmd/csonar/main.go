package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/csonar/config"
)

var log = commonlog.GetLogger("csonar")

var version = "0.1.0"

// options are the persistent flags shared by every command.
type options struct {
	root     string
	verbose  int
	format   string
	frontend string

	cfg *config.Config
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "csonar",
		Short:         "Read declarations, doc comments and completions out of C sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", ".", "project root holding .csonar/config.yaml")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: json, line or markdown")
	flags.StringVar(&opts.frontend, "frontend", "", "C frontend: treesitter or astdump")

	rootCmd.AddCommand(newCommentCmd(opts))
	rootCmd.AddCommand(newCompleteCmd(opts))
	rootCmd.AddCommand(newSonarCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

// load reads the configuration, applies command-line overrides and sets up
// logging.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(o.root).Load()
	if err != nil {
		return errors.WithHint(err, "check "+config.Dir+"/config.yaml and CSONAR_* variables")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = o.verbose
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.frontend != "" {
		cfg.Frontend = o.frontend
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	o.cfg = cfg

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logFile)
	return nil
}
