package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"derive-generator/internal/analyze"
	"derive-generator/internal/config"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/gen"
	"derive-generator/internal/logger"
)

type genOptions struct {
	*rootOptions

	suffix        string
	runtimeImport string
	outDir        string
	concurrency   int
	dryRun        bool
}

func newGenCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate code for the selected types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.suffix, "suffix", "", "Generated filename suffix (overrides config)")
	cmd.Flags().StringVar(&opts.runtimeImport, "runtime-import", "", "Import path of the runtime package (overrides config)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Write all files into this directory instead of next to their sources")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Records generated in parallel (overrides config)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print generated code instead of writing files")

	return cmd
}

func runGen(cmd *cobra.Command, opts *genOptions, patterns []string) error {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return err
	}

	genCfg := gen.GeneratorConfig{
		RuntimeImport: cfg.RuntimeImport,
		Suffix:        cfg.Suffix,
		OutputDir:     opts.outDir,
		Concurrency:   cfg.Concurrency,
	}

	if opts.suffix != "" {
		genCfg.Suffix = opts.suffix
	}

	if opts.runtimeImport != "" {
		genCfg.RuntimeImport = opts.runtimeImport
	}

	if opts.concurrency != 0 {
		genCfg.Concurrency = opts.concurrency
	}

	an := analyze.NewAnalyzer()

	records, err := loadRecords(cmd.Context(), an, cfg, patterns)
	if err != nil {
		return err
	}

	logger.Debug("records selected", "count", len(records))

	files, diags, err := gen.NewGenerator(genCfg).Generate(cmd.Context(), records)
	if err != nil {
		return err
	}

	diags.Merge(an.Diagnostics())

	if opts.dryRun {
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "// === %s ===\n%s\n", f.Path(), f.Content)
		}
	} else {
		written, err := gen.WriteFiles(files, opts.outDir)
		for _, p := range written {
			logger.Info("wrote", "file", p)
		}

		if err != nil {
			return err
		}
	}

	report(&diags)

	if err := diags.Err(); err != nil {
		return fmt.Errorf("generation failed for %d record(s)", len(diags.Errors))
	}

	return nil
}

// report logs every diagnostic, errors first.
func report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		log := logger.With("code", d.Code)
		if d.Record != "" {
			log = log.With("record", d.Record)
		}

		if d.Position != "" {
			log = log.With("pos", d.Position)
		}

		if d.Severity == diagnostic.DiagnosticError {
			log.Error(d.Message)
		} else {
			log.Warn(d.Message)
		}
	}
}
