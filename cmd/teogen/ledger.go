package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var errNoLedger = errors.New("no ledger configured: set ledger.dialect and ledger.dsn")

func ledgerCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the generation ledger",
	}
	cmd.AddCommand(ledgerListCmd(root))
	cmd.AddCommand(ledgerForgetCmd(root))
	return cmd
}

func ledgerListCmd(root *rootOptions) *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the recorded files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root.configFile)
			if err != nil {
				return err
			}
			l, err := openLedger(cmd.Context(), cfg, root.logger(cmd))
			if err != nil {
				return err
			}
			if l == nil {
				return errNoLedger
			}
			defer l.Close()

			entries, err := l.Files(cmd.Context(), targetName)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTARGET\tCHECKSUM\tUPDATED")
			for _, e := range entries {
				sum := e.Checksum
				if len(sum) > 12 {
					sum = sum[:12]
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Path, e.Target, sum, e.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "list only the files of this target")
	return cmd
}

func ledgerForgetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "forget PATH...",
		Short: "Drop the records of files so the next run rewrites them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configFile)
			if err != nil {
				return err
			}
			l, err := openLedger(cmd.Context(), cfg, root.logger(cmd))
			if err != nil {
				return err
			}
			if l == nil {
				return errNoLedger
			}
			defer l.Close()

			if err := l.Forget(cmd.Context(), args...); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "forgot %d files\n", len(args))
			return err
		},
	}
}
