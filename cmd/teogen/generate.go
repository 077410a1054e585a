package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/compiler/load"
	"github.com/syssam/teogen/ledger"
)

func generateCmd(root *rootOptions) *cobra.Command {
	var (
		schemaPath string
		only       []string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every configured target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root.configFile)
			if err != nil {
				return err
			}
			if schemaPath != "" {
				cfg.Schema = schemaPath
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.DryRun = dryRun
			}
			report, err := runGenerate(cmd.Context(), cfg, only, root.logger(cmd))
			if report != nil {
				printReport(cmd.OutOrStdout(), report, cfg.DryRun)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (overrides the config)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "generate only the named targets")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without writing files")
	return cmd
}

// runGenerate loads the schema and runs the configured targets. The run is
// recorded in the ledger when one is configured, even if it failed.
func runGenerate(ctx context.Context, cfg *fileConfig, only []string, log zerolog.Logger) (*gen.Report, error) {
	ns, err := load.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.options(only)
	if err != nil {
		return nil, err
	}
	opts = append(opts, gen.WithLogger(log))

	l, err := openLedger(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if l != nil {
		defer l.Close()
		opts = append(opts, gen.WithLedger(l))
	}

	log.Debug().Str("schema", cfg.Schema).Msg("generating")
	report, err := gen.Generate(ctx, ns, opts...)
	if l != nil && report != nil && !cfg.DryRun {
		if rerr := l.RecordRun(ctx, report, err); rerr != nil {
			log.Warn().Err(rerr).Msg("record run")
		}
	}
	return report, err
}

// openLedger opens the configured ledger. It returns nil without error when
// no ledger is configured.
func openLedger(ctx context.Context, cfg *fileConfig, log zerolog.Logger) (*ledger.Ledger, error) {
	if cfg.Ledger.Dialect == "" {
		return nil, nil
	}
	d, err := ledger.ParseDialect(cfg.Ledger.Dialect)
	if err != nil {
		return nil, gen.NewConfigError("ledger.dialect", cfg.Ledger.Dialect, err.Error())
	}
	return ledger.Open(ctx, d, cfg.Ledger.DSN,
		ledger.WithTablePrefix(cfg.Ledger.TablePrefix),
		ledger.WithLogger(log),
	)
}

func printReport(w io.Writer, r *gen.Report, dryRun bool) {
	m := r.Metrics
	suffix := ""
	if dryRun {
		suffix = " (dry run)"
	}
	fmt.Fprintf(w, "run %s: %d targets, %d written, %d unchanged, %d skipped, %d patched, %d bytes in %s%s\n",
		r.Run, len(r.Targets), m.FilesWritten, m.FilesUnchanged, m.FilesSkipped, m.FilesPatched, m.TotalBytes,
		r.Took.Round(time.Millisecond), suffix)
}
