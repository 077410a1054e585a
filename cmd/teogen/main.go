// Command teogen generates typed clients and entity bindings from a teo
// schema.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	verbose    bool
}

// logger returns a console logger writing to the command's error stream.
func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "teogen",
		Short: "teogen - multi-target code generator for teo schemas",
		Long: `teogen renders a loaded teo schema into TypeScript, Dart, Kotlin,
Swift, Rust, Python, Go and GraphQL bindings and the admin dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default ./teogen.{yaml,toml,json})")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every file")

	cmd.AddCommand(generateCmd(opts))
	cmd.AddCommand(outlineCmd(opts))
	cmd.AddCommand(lookupCmd())
	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(ledgerCmd(opts))
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the teogen version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "teogen %s\n", version)
			return err
		},
	}
}
