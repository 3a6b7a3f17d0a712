package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/blackline/pkg/client"
	"github.com/walteh/blackline/pkg/format"
	"github.com/walteh/blackline/pkg/status"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blackline [flags] src...",
		Short: "Reformat Python source files through a blackd daemon",
		Long: `blackline sends each source file to a running blackd daemon over HTTP
and atomically replaces the file with the reformatted result. Files that
are already well formatted are left alone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	addRootFlags(rootCmd)

	// Per-file failures are reported inline and never change the exit
	// code; only flag-level misuse errors out here.
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	printer := status.NewPrinter(cmd.OutOrStdout(), *log.Ctx(ctx))

	if len(args) == 0 {
		printer.Notice("Error: No target source file(s) specified!")
		return nil
	}

	paths := expandSources(args)

	processor, err := format.NewProcessor(format.Options{
		Client: client.New(cfg),
		Diff:   cfg.Diff,
	})
	if err != nil {
		return err
	}

	runner, err := format.NewRunner(processor, printer)
	if err != nil {
		return err
	}

	summary := runner.Run(ctx, paths)
	printer.Summary(summary.Reformatted, summary.Unchanged)

	return nil
}
