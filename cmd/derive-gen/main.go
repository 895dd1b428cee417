// Package main provides the CLI entrypoint for derive-gen.
//
// derive-gen generates builders and debug formatters for Go structs:
//   - Finds structs marked with //derive:builder or //derive:debug, or
//     listed in derive.yaml
//   - Classifies each field as required or derive.Optional
//   - Writes <type>_derive.go next to the declaring file
//
// Typical use is a go:generate line in the package:
//
//	//go:generate go run derive-generator/cmd/derive-gen gen .
package main

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"derive-generator/internal/logger"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	verbose    bool
	jsonLog    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "derive-gen",
		Short:         "Generate builders and debug formatters for Go structs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logger.DefaultConfig()
			cfg.Output = stderr
			cfg.JSON = opts.jsonLog

			if opts.verbose {
				cfg.Level = charmlog.DebugLevel
			}

			logger.Init(cfg)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "derive.yaml", "Path to the config file (optional)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "Log in JSON")

	cmd.AddCommand(newGenCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newInitCmd(opts))

	return cmd
}

// run executes the CLI and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Flag errors are reported before PersistentPreRun configures logging.
	logCfg := logger.DefaultConfig()
	logCfg.Output = stderr
	logger.Init(logCfg)

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
